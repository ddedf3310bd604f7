package sim

import (
	"fmt"
	"math"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/primordia/components"
	"github.com/pthm-cable/primordia/genome"
	"github.com/pthm-cable/primordia/world"
)

// spawn creates one organism and registers it in the iteration order and the
// occupancy grid. Coordinates must already be wrapped.
func (e *Engine) spawn(x, y int, energy, health float64, g genome.Genome, parentID uint64) uint64 {
	e.nextID++
	id := e.nextID

	pos := components.Position{X: x, Y: y}
	vit := components.Vitals{Energy: energy, Health: health, Alive: true}
	her := components.Heredity{ID: id, ParentID: parentID, Genome: g}
	ent := e.mapper.NewEntity(&pos, &vit, &her)

	e.order = append(e.order, ent)
	e.occ[y*e.cfg.World.Width+x]++
	return id
}

// resolveOrganism runs one organism's full turn: sense and move, feed, pay
// upkeep, take toxin damage, age, and die if depleted. The genome is checked
// against its gene ranges first; a violation is a contract breach that aborts
// the whole turn.
func (e *Engine) resolveOrganism(ent ecs.Entity) error {
	pos := e.posMap.Get(ent)
	vit := e.vitMap.Get(ent)
	her := e.herMap.Get(ent)

	if err := her.Genome.Validate(); err != nil {
		return fmt.Errorf("organism %d: %w", her.ID, err)
	}

	moved := e.chooseMove(pos, her.Genome)
	if moved {
		vit.Energy -= her.Genome.Value(genome.MovementCost)
	}

	// Uptake saturates at the organism's metabolic rate; whatever is eaten
	// leaves the field, so nutrient mass is conserved.
	want := her.Genome.Value(genome.MetabolismRate) * e.cfg.Energy.UptakeScale
	consumed := e.fields.Nutrient.Consume(pos.X, pos.Y, want)
	vit.Energy += consumed * e.cfg.Energy.FeedEfficiency

	vit.Energy -= her.Genome.Value(genome.BaseMetabolism)

	toxin := e.fields.Toxin.At(pos.X, pos.Y)
	dmg := math.Max(0, toxin-her.Genome.Value(genome.ToxinBResistance)) * e.cfg.Energy.ToxinDamageScale
	if dmg > 0 {
		vit.Energy -= dmg
		vit.Health -= dmg * e.cfg.Energy.HealthDamageFraction
	}

	vit.Age++

	if vit.Energy <= 0 || vit.Health <= 0 {
		vit.Alive = false
		cause := "starvation"
		if dmg > 0 && (vit.Health <= 0 || vit.Energy+dmg > 0) {
			cause = "toxin"
		}
		e.occ[pos.Y*e.cfg.World.Width+pos.X]--
		e.collector.RecordDeath(e.turn, her.ID, cause)
	}
	return nil
}

// chooseMove senses nutrient within the genome's sensory range and takes one
// step toward the richest cell, but only if it strictly beats the current
// cell. On a flat gradient the organism stays put, except for an occasional
// random wander step. Reports whether the organism moved.
func (e *Engine) chooseMove(pos *components.Position, g genome.Genome) bool {
	w, h := e.cfg.World.Width, e.cfg.World.Height
	r := int(g.Value(genome.SensoryRange))
	if r < 1 {
		r = 1
	}

	best := e.fields.Nutrient.At(pos.X, pos.Y)
	bestDX, bestDY := 0, 0
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			if n := e.fields.Nutrient.At(pos.X+dx, pos.Y+dy); n > best {
				best, bestDX, bestDY = n, dx, dy
			}
		}
	}

	if bestDX == 0 && bestDY == 0 {
		if e.cfg.Behavior.WanderChance > 0 && e.rng.Float64() < e.cfg.Behavior.WanderChance {
			bestDX, bestDY = e.rng.Intn(3)-1, e.rng.Intn(3)-1
		}
		if bestDX == 0 && bestDY == 0 {
			return false
		}
	}

	// One step toward the target cell, Chebyshev style.
	nx, ny := world.Wrap(pos.X+sign(bestDX), pos.Y+sign(bestDY), w, h)
	e.occ[pos.Y*w+pos.X]--
	e.occ[ny*w+nx]++
	pos.X, pos.Y = nx, ny
	return true
}

// spawnBirths handles reproduction after all organisms have resolved.
// Parents at or above their reproduction threshold split their energy with
// one mutated child placed in a random adjacent cell, unless the 3x3
// neighborhood is already at local capacity. Children join the iteration
// order at the end and first act next turn.
func (e *Engine) spawnBirths() {
	parents := e.order // births append to e.order; iterate only pre-birth entries
	n := len(parents)
	for i := 0; i < n; i++ {
		ent := parents[i]
		vit := e.vitMap.Get(ent)
		if !vit.Alive {
			continue
		}
		her := e.herMap.Get(ent)
		if vit.Energy < her.Genome.Value(genome.ReproductionThreshold) {
			continue
		}
		pos := e.posMap.Get(ent)
		if e.neighborCount(pos.X, pos.Y) >= e.cfg.Reproduction.LocalCapacity {
			continue
		}

		vit.Energy /= 2
		childEnergy := vit.Energy * e.cfg.Reproduction.ChildEnergyFraction

		// Directed EP edits come from the lineage template; everything else
		// drifts from the parent.
		childGenome := e.lineage.ChildTemplate(her.Genome).
			Mutate(e.rng, e.cfg.Reproduction.MutationRange)

		dx, dy := e.rng.Intn(3)-1, e.rng.Intn(3)-1
		if dx == 0 && dy == 0 {
			dx = 1
		}
		cx, cy := world.Wrap(pos.X+dx, pos.Y+dy, e.cfg.World.Width, e.cfg.World.Height)

		childID := e.spawn(cx, cy, childEnergy, e.cfg.Population.InitialHealth, childGenome, her.ID)
		e.collector.RecordBirth(e.turn, childID, her.ID)
	}
}

// neighborCount returns the number of living organisms in the 3x3 block
// around (x, y), excluding the occupant of (x, y) itself.
func (e *Engine) neighborCount(x, y int) int {
	w, h := e.cfg.World.Width, e.cfg.World.Height
	count := 0
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			nx, ny := world.Wrap(x+dx, y+dy, w, h)
			count += e.occ[ny*w+nx]
		}
	}
	return count - 1
}

// removeDead drops dead organisms from the iteration order and the ECS world.
// Occupancy was already released at death time.
func (e *Engine) removeDead() {
	live := e.order[:0]
	for _, ent := range e.order {
		if e.vitMap.Get(ent).Alive {
			live = append(live, ent)
			continue
		}
		e.mapper.Remove(ent)
	}
	e.order = live
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
