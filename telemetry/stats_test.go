package telemetry

import (
	"math"
	"testing"

	"github.com/pthm-cable/primordia/genome"
)

func organismWith(id uint64, energy float64, g genome.Genome) OrganismState {
	return OrganismState{ID: id, Energy: energy, Health: 100, Genome: g, GeneValues: g.Values()}
}

func TestComputeTurnStats(t *testing.T) {
	g := genome.Default()
	snap := &Snapshot{
		Turn:     7,
		Width:    2,
		Height:   2,
		Nutrient: []float64{1, 2, 3, 4},
		Toxin:    []float64{0.5, 0, 0, 0.5},
		Organisms: []OrganismState{
			organismWith(1, 10, g),
			organismWith(2, 20, g),
			organismWith(3, 30, g),
		},
		Lineage:          LineageStats{EP: 40, MeanGenes: MeanGenes(nil)},
		ActiveWorldEvent: "ice_age",
	}
	snap.Lineage.MeanGenes = MeanGenes(snap.Organisms)

	counters := TurnCounters{Births: 1, Deaths: 2, DeathsStarvation: 2, EPSpent: 60}
	ts := ComputeTurnStats(snap, counters)

	if ts.Turn != 7 || ts.Population != 3 {
		t.Errorf("turn/population = %d/%d, want 7/3", ts.Turn, ts.Population)
	}
	if ts.Births != 1 || ts.Deaths != 2 || ts.DeathsStarvation != 2 || ts.DeathsToxin != 0 {
		t.Errorf("counters not carried: %+v", ts)
	}
	if ts.EP != 40 || ts.EPSpent != 60 {
		t.Errorf("EP fields = %g/%g, want 40/60", ts.EP, ts.EPSpent)
	}
	if math.Abs(ts.EnergyMean-20) > 1e-12 {
		t.Errorf("EnergyMean = %g, want 20", ts.EnergyMean)
	}
	if ts.EnergyP10 != 10 || ts.EnergyP50 != 20 || ts.EnergyP90 != 30 {
		t.Errorf("energy quantiles = %g/%g/%g, want 10/20/30", ts.EnergyP10, ts.EnergyP50, ts.EnergyP90)
	}
	if ts.TotalNutrient != 10 || ts.TotalToxin != 1 {
		t.Errorf("field totals = %g/%g, want 10/1", ts.TotalNutrient, ts.TotalToxin)
	}
	if ts.MeanBaseMetabolism != g.Value(genome.BaseMetabolism) {
		t.Errorf("MeanBaseMetabolism = %g, want %g", ts.MeanBaseMetabolism, g.Value(genome.BaseMetabolism))
	}
	if ts.WorldEvent != "ice_age" {
		t.Errorf("WorldEvent = %q, want ice_age", ts.WorldEvent)
	}
}

func TestComputeTurnStatsEmptyPopulation(t *testing.T) {
	snap := &Snapshot{Turn: 1, Extinct: true}
	ts := ComputeTurnStats(snap, TurnCounters{Deaths: 3, DeathsStarvation: 3})
	if ts.Population != 0 || !ts.Extinct {
		t.Errorf("stats = %+v, want empty extinct population", ts)
	}
	if ts.EnergyMean != 0 || ts.EnergyP50 != 0 {
		t.Errorf("energy stats over nobody = %g/%g, want zeros", ts.EnergyMean, ts.EnergyP50)
	}
}

func TestMeanGenes(t *testing.T) {
	if got := MeanGenes(nil); got != ([genome.GeneCount]float64{}) {
		t.Errorf("MeanGenes(nil) = %v, want zeros", got)
	}

	a := genome.Default().With(genome.SensoryRange, 1)
	b := genome.Default().With(genome.SensoryRange, 3)
	got := MeanGenes([]OrganismState{organismWith(1, 0, a), organismWith(2, 0, b)})
	if math.Abs(got[genome.SensoryRange]-2) > 1e-12 {
		t.Errorf("mean SensoryRange = %g, want 2", got[genome.SensoryRange])
	}
	if math.Abs(got[genome.MetabolismRate]-a.Value(genome.MetabolismRate)) > 1e-12 {
		t.Errorf("mean MetabolismRate = %g, want %g", got[genome.MetabolismRate], a.Value(genome.MetabolismRate))
	}
}
