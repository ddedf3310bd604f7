package sim

import (
	"github.com/pthm-cable/primordia/genome"
)

// toxinResistanceUpkeep is the metabolic trade-off applied alongside any
// directed edit of ToxinBResistance: hardier membranes cost upkeep.
const toxinResistanceUpkeep = 0.01

// SpendOption is one entry of the EP spend menu: a directed edit of a single
// gene at a fixed price.
type SpendOption struct {
	Name  string
	Gene  genome.Gene
	Delta float64
	Cost  float64
}

// DefaultSpendOptions returns the standard spend menu.
func DefaultSpendOptions() []SpendOption {
	return []SpendOption{
		{Name: "increase_toxin_resistance", Gene: genome.ToxinBResistance, Delta: 0.05, Cost: 60},
		{Name: "decrease_metabolism", Gene: genome.BaseMetabolism, Delta: -0.02, Cost: 40},
		{Name: "improve_sensing", Gene: genome.SensoryRange, Delta: 1.0, Cost: 30},
	}
}

// Lineage is the set of all organisms descended from the founders. It owns
// the base genome template and the EP balance. The base genome changes only
// through Spend; ordinary reproduction never touches it.
type Lineage struct {
	base    genome.Genome
	evolved [genome.GeneCount]bool // genes pinned to the template by directed edits
	ep      float64

	milestoneHit bool
}

// NewLineage creates a lineage from a founder template and starting EP.
func NewLineage(base genome.Genome, initialEP float64) *Lineage {
	return &Lineage{base: base, ep: initialEP}
}

// BaseGenome returns the current lineage template.
func (l *Lineage) BaseGenome() genome.Genome {
	return l.base
}

// EP returns the current evolutionary potential balance.
func (l *Lineage) EP() float64 {
	return l.ep
}

// EarnEP credits the balance. Awards are always non-negative; the only way
// the balance drops is a spend.
func (l *Lineage) EarnEP(amount float64) {
	if amount < 0 {
		panic("sim: negative EP award")
	}
	l.ep += amount
}

// Spend debits EP and applies the directed edit to the base genome. On
// InsufficientEPError, balance and base genome are unchanged. The edited
// gene becomes pinned: future children inherit it from the template rather
// than from parental drift.
func (l *Lineage) Spend(opt SpendOption) error {
	if l.ep < opt.Cost {
		return &InsufficientEPError{Required: opt.Cost, Available: l.ep}
	}

	l.ep -= opt.Cost
	l.base = l.base.Edit(opt.Gene, opt.Delta)
	l.evolved[opt.Gene] = true

	if opt.Gene == genome.ToxinBResistance {
		l.base = l.base.Edit(genome.BaseMetabolism, toxinResistanceUpkeep)
		l.evolved[genome.BaseMetabolism] = true
	}

	return nil
}

// ChildTemplate merges the parent's genome with the base template: genes
// evolved via EP spends come from the template, everything else drifts with
// the parent. The result is what a newborn mutates from.
func (l *Lineage) ChildTemplate(parent genome.Genome) genome.Genome {
	t := parent
	for g, pinned := range l.evolved {
		if pinned {
			t = t.With(genome.Gene(g), l.base.Value(genome.Gene(g)))
		}
	}
	return t
}

// markMilestone flips the one-shot population milestone flag; returns false
// if it was already claimed.
func (l *Lineage) markMilestone() bool {
	if l.milestoneHit {
		return false
	}
	l.milestoneHit = true
	return true
}
