// Package sim implements the turn-based simulation engine: the organism
// life cycle, lineage bookkeeping, and the turn orchestrator.
package sim

import (
	"fmt"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/primordia/components"
	"github.com/pthm-cable/primordia/config"
	"github.com/pthm-cable/primordia/genome"
	"github.com/pthm-cable/primordia/telemetry"
	"github.com/pthm-cable/primordia/world"
)

// Engine owns the complete simulation state: fields, population, lineage,
// and RNG. It advances one turn at a time; nothing runs concurrently and no
// state leaks out except through immutable snapshots.
type Engine struct {
	cfg    *config.Config
	fields *world.Fields
	rng    *rand.Rand
	seed   int64

	world  *ecs.World
	mapper *ecs.Map3[components.Position, components.Vitals, components.Heredity]
	posMap *ecs.Map1[components.Position]
	vitMap *ecs.Map1[components.Vitals]
	herMap *ecs.Map1[components.Heredity]

	// order holds living organisms in creation order, which is ascending-ID
	// order. Turn resolution iterates it so results are deterministic for a
	// fixed seed.
	order  []ecs.Entity
	occ    []int // living organisms per cell, for the crowding check
	nextID uint64

	lineage   *Lineage
	collector *telemetry.Collector
	options   []SpendOption

	turn      int32
	extinct   bool
	lastStats telemetry.TurnStats
}

// NewEngine builds a simulation from validated configuration and a seed.
// The same (config, seed) pair always produces the same run.
func NewEngine(cfg *config.Config, seed int64) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	fields := world.NewFields(cfg)
	if cfg.Terrain.Enabled {
		world.ApplyTerrain(fields.Nutrient, seed, cfg.Terrain.Scale, cfg.Terrain.Amplitude)
		fields.Nutrient.Clamp(cfg.World.NutrientMax)
	}

	ecsWorld := ecs.NewWorld()
	e := &Engine{
		cfg:    cfg,
		fields: fields,
		rng:    rand.New(rand.NewSource(seed)),
		seed:   seed,
		world:  ecsWorld,
		mapper: ecs.NewMap3[components.Position, components.Vitals, components.Heredity](ecsWorld),
		posMap: ecs.NewMap1[components.Position](ecsWorld),
		vitMap: ecs.NewMap1[components.Vitals](ecsWorld),
		herMap: ecs.NewMap1[components.Heredity](ecsWorld),

		occ:       make([]int, cfg.World.Width*cfg.World.Height),
		lineage:   NewLineage(genome.Default(), cfg.Potential.Initial),
		collector: telemetry.NewCollector(),
		options:   DefaultSpendOptions(),
	}

	for i := 0; i < cfg.Population.Initial; i++ {
		x := e.rng.Intn(cfg.World.Width)
		y := e.rng.Intn(cfg.World.Height)
		e.spawn(x, y, cfg.Population.InitialEnergy, cfg.Population.InitialHealth,
			e.lineage.BaseGenome(), 0)
	}

	return e, nil
}

// Step advances exactly one turn and returns the immutable snapshot of the
// resulting state. Phase order is fixed: environment, organism resolution in
// ascending ID, deferred births, removal and stats, snapshot. A genome
// contract violation aborts the turn with the underlying error; once the
// lineage is extinct every further call returns ErrExtinct.
func (e *Engine) Step() (*telemetry.Snapshot, error) {
	if e.extinct {
		return nil, ErrExtinct
	}
	e.turn++

	// Phase 1: world events and field diffusion.
	prev := e.fields.ActiveEvent()
	if ev := e.fields.RollEvent(e.rng); ev != world.EventNone && ev != prev {
		e.collector.RecordWorldEvent(e.turn, ev.String())
	}
	e.fields.Step()

	// Phase 2: per-organism resolution. Organisms born this turn are
	// appended later and do not act.
	for _, ent := range e.order {
		vit := e.vitMap.Get(ent)
		if !vit.Alive {
			continue
		}
		if err := e.resolveOrganism(ent); err != nil {
			return nil, fmt.Errorf("turn %d aborted: %w", e.turn, err)
		}
	}

	// Phase 3: births, after all movement and energy resolution.
	e.spawnBirths()

	// Phase 4: removal and lineage accounting.
	e.removeDead()
	e.checkMilestones()

	if len(e.order) == 0 {
		e.extinct = true
	}

	// Phase 5: snapshot.
	snap := e.buildSnapshot()
	return snap, nil
}

// SpendEP validates and applies one spend-menu option against the lineage.
// The resulting base genome governs only organisms born afterwards; living
// genomes are untouched. The spend shows up in the next turn's event list.
func (e *Engine) SpendEP(opt SpendOption) error {
	if err := e.lineage.Spend(opt); err != nil {
		return err
	}
	e.collector.RecordEPSpend(e.turn+1, opt.Gene.String(), opt.Cost)
	return nil
}

// SpendOptions returns the current spend menu.
func (e *Engine) SpendOptions() []SpendOption {
	out := make([]SpendOption, len(e.options))
	copy(out, e.options)
	return out
}

// ChoiceOptions returns the spend menu in the narrator's wire form.
func (e *Engine) ChoiceOptions() []telemetry.ChoiceOption {
	out := make([]telemetry.ChoiceOption, 0, len(e.options))
	for _, opt := range e.options {
		out = append(out, telemetry.ChoiceOption{
			Choice: opt.Name,
			Gene:   opt.Gene.String(),
			Delta:  opt.Delta,
			Cost:   opt.Cost,
		})
	}
	return out
}

// Turn returns the number of completed turns.
func (e *Engine) Turn() int32 { return e.turn }

// Population returns the number of living organisms.
func (e *Engine) Population() int { return len(e.order) }

// EP returns the lineage's current balance.
func (e *Engine) EP() float64 { return e.lineage.EP() }

// BaseGenome returns the lineage template.
func (e *Engine) BaseGenome() genome.Genome { return e.lineage.BaseGenome() }

// Extinct reports whether the lineage has died out.
func (e *Engine) Extinct() bool { return e.extinct }

// Seed returns the run seed.
func (e *Engine) Seed() int64 { return e.seed }

// LastStats returns the per-turn aggregates computed with the most recent
// snapshot.
func (e *Engine) LastStats() telemetry.TurnStats { return e.lastStats }

// checkMilestones awards one-shot EP milestones.
func (e *Engine) checkMilestones() {
	pop := e.cfg.Potential.MilestonePopulation
	if pop > 0 && len(e.order) > pop && e.lineage.markMilestone() {
		e.lineage.EarnEP(e.cfg.Potential.MilestoneReward)
		e.collector.RecordEPMilestone(e.turn,
			fmt.Sprintf("population_%d", pop), e.cfg.Potential.MilestoneReward)
	}
}
