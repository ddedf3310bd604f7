package sim

import (
	"github.com/pthm-cable/primordia/telemetry"
)

// buildSnapshot freezes the post-turn state into an immutable snapshot and
// refreshes the per-turn aggregate stats. Field slices and organism states
// are copies; callers can hold snapshots across turns.
func (e *Engine) buildSnapshot() *telemetry.Snapshot {
	snap := &telemetry.Snapshot{
		Turn:             e.turn,
		Width:            e.cfg.World.Width,
		Height:           e.cfg.World.Height,
		Nutrient:         e.fields.Nutrient.CopyCells(),
		Toxin:            e.fields.Toxin.CopyCells(),
		Organisms:        make([]telemetry.OrganismState, 0, len(e.order)),
		ActiveWorldEvent: e.fields.ActiveEvent().String(),
		Extinct:          e.extinct,
	}

	for _, ent := range e.order {
		pos := e.posMap.Get(ent)
		vit := e.vitMap.Get(ent)
		her := e.herMap.Get(ent)
		snap.Organisms = append(snap.Organisms, telemetry.OrganismState{
			ID:         her.ID,
			X:          pos.X,
			Y:          pos.Y,
			Energy:     vit.Energy,
			Health:     vit.Health,
			Age:        vit.Age,
			Genome:     her.Genome,
			GeneValues: her.Genome.Values(),
		})
	}

	counters := e.collector.DrainTurn()
	snap.Events = counters.Events
	snap.Lineage = telemetry.LineageStats{
		Population: len(snap.Organisms),
		EP:         e.lineage.EP(),
		Births:     counters.Births,
		Deaths:     counters.Deaths,
		MeanGenes:  telemetry.MeanGenes(snap.Organisms),
		BaseGenome: e.lineage.BaseGenome(),
		BaseGenes:  e.lineage.BaseGenome().Values(),
	}

	e.lastStats = telemetry.ComputeTurnStats(snap, counters)
	return snap
}
