package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/primordia/genome"
)

// TurnStats is one CSV row of per-turn aggregates.
type TurnStats struct {
	Turn       int32 `csv:"turn"`
	Population int   `csv:"population"`
	Births     int   `csv:"births"`
	Deaths     int   `csv:"deaths"`

	DeathsStarvation int `csv:"deaths_starvation"`
	DeathsToxin      int `csv:"deaths_toxin"`

	EP       float64 `csv:"ep"`
	EPEarned float64 `csv:"ep_earned"`
	EPSpent  float64 `csv:"ep_spent"`

	EnergyMean float64 `csv:"energy_mean"`
	EnergyP10  float64 `csv:"energy_p10"`
	EnergyP50  float64 `csv:"energy_p50"`
	EnergyP90  float64 `csv:"energy_p90"`

	MeanMetabolismRate   float64 `csv:"mean_metabolism_rate"`
	MeanBaseMetabolism   float64 `csv:"mean_base_metabolism"`
	MeanMovementCost     float64 `csv:"mean_movement_cost"`
	MeanSensoryRange     float64 `csv:"mean_sensory_range"`
	MeanToxinBResistance float64 `csv:"mean_toxin_resistance"`
	MeanReproThreshold   float64 `csv:"mean_repro_threshold"`

	TotalNutrient float64 `csv:"total_nutrient"`
	TotalToxin    float64 `csv:"total_toxin"`

	WorldEvent string `csv:"world_event"`
	Extinct    bool   `csv:"extinct"`
}

// ComputeTurnStats derives the per-turn CSV row from a finished snapshot and
// the turn's drained counters.
func ComputeTurnStats(snap *Snapshot, counters TurnCounters) TurnStats {
	ts := TurnStats{
		Turn:             snap.Turn,
		Population:       len(snap.Organisms),
		Births:           counters.Births,
		Deaths:           counters.Deaths,
		DeathsStarvation: counters.DeathsStarvation,
		DeathsToxin:      counters.DeathsToxin,
		EP:               snap.Lineage.EP,
		EPEarned:         counters.EPEarned,
		EPSpent:          counters.EPSpent,
		WorldEvent:       snap.ActiveWorldEvent,
		Extinct:          snap.Extinct,
	}

	if n := len(snap.Organisms); n > 0 {
		energies := make([]float64, n)
		for i, o := range snap.Organisms {
			energies[i] = o.Energy
		}
		sort.Float64s(energies)
		ts.EnergyMean = stat.Mean(energies, nil)
		ts.EnergyP10 = stat.Quantile(0.10, stat.Empirical, energies, nil)
		ts.EnergyP50 = stat.Quantile(0.50, stat.Empirical, energies, nil)
		ts.EnergyP90 = stat.Quantile(0.90, stat.Empirical, energies, nil)
	}

	means := snap.Lineage.MeanGenes
	ts.MeanMetabolismRate = means[genome.MetabolismRate]
	ts.MeanBaseMetabolism = means[genome.BaseMetabolism]
	ts.MeanMovementCost = means[genome.MovementCost]
	ts.MeanSensoryRange = means[genome.SensoryRange]
	ts.MeanToxinBResistance = means[genome.ToxinBResistance]
	ts.MeanReproThreshold = means[genome.ReproductionThreshold]

	for _, v := range snap.Nutrient {
		ts.TotalNutrient += v
	}
	for _, v := range snap.Toxin {
		ts.TotalToxin += v
	}

	return ts
}

// MeanGenes computes the per-gene mean over a set of organisms.
func MeanGenes(organisms []OrganismState) [genome.GeneCount]float64 {
	var means [genome.GeneCount]float64
	n := len(organisms)
	if n == 0 {
		return means
	}

	values := make([]float64, n)
	for g := 0; g < genome.GeneCount; g++ {
		for i, o := range organisms {
			values[i] = o.Genome.Value(genome.Gene(g))
		}
		means[g] = stat.Mean(values, nil)
	}
	return means
}

// LogValue implements slog.LogValuer for structured logging.
func (s TurnStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("turn", int(s.Turn)),
		slog.Int("population", s.Population),
		slog.Int("births", s.Births),
		slog.Int("deaths", s.Deaths),
		slog.Int("deaths_starvation", s.DeathsStarvation),
		slog.Int("deaths_toxin", s.DeathsToxin),
		slog.Float64("ep", s.EP),
		slog.Float64("ep_earned", s.EPEarned),
		slog.Float64("ep_spent", s.EPSpent),
		slog.Float64("energy_mean", s.EnergyMean),
		slog.Float64("energy_p10", s.EnergyP10),
		slog.Float64("energy_p50", s.EnergyP50),
		slog.Float64("energy_p90", s.EnergyP90),
		slog.Float64("mean_metabolism_rate", s.MeanMetabolismRate),
		slog.Float64("mean_base_metabolism", s.MeanBaseMetabolism),
		slog.Float64("mean_movement_cost", s.MeanMovementCost),
		slog.Float64("mean_sensory_range", s.MeanSensoryRange),
		slog.Float64("mean_toxin_resistance", s.MeanToxinBResistance),
		slog.Float64("mean_repro_threshold", s.MeanReproThreshold),
		slog.Float64("total_nutrient", s.TotalNutrient),
		slog.Float64("total_toxin", s.TotalToxin),
		slog.String("world_event", s.WorldEvent),
		slog.Bool("extinct", s.Extinct),
	)
}

// LogStats logs the turn stats using slog.
func (s TurnStats) LogStats() {
	slog.Info("turn", "stats", s)
}
