// Package genome defines the bounded gene set that drives organism traits.
package genome

import (
	"fmt"
	"math/rand"
)

// Gene identifies one heritable trait coefficient.
type Gene uint8

const (
	MetabolismRate        Gene = iota // nutrient uptake rate
	BaseMetabolism                    // constant upkeep per turn
	MovementCost                      // energy cost of a one-cell step
	SensoryRange                      // neighborhood radius scanned when choosing a move
	ToxinBResistance                  // toxin concentration absorbed without damage
	ReproductionThreshold             // energy level that triggers reproduction

	GeneCount = int(ReproductionThreshold) + 1
)

// geneNames in Gene order.
var geneNames = [GeneCount]string{
	"MetabolismRate",
	"BaseMetabolism",
	"MovementCost",
	"SensoryRange",
	"ToxinBResistance",
	"ReproductionThreshold",
}

// String returns the gene's name.
func (g Gene) String() string {
	if int(g) >= GeneCount {
		return fmt.Sprintf("Gene(%d)", uint8(g))
	}
	return geneNames[g]
}

// Range holds the valid band for a gene value.
type Range struct {
	Min, Max float64
}

// ranges declares the valid band per gene. Values outside these bands are a
// contract violation, not a tunable.
var ranges = [GeneCount]Range{
	MetabolismRate:        {0.01, 1.0},
	BaseMetabolism:        {0.05, 5.0},
	MovementCost:          {0.01, 2.0},
	SensoryRange:          {1.0, 5.0},
	ToxinBResistance:      {0.0, 1.0},
	ReproductionThreshold: {60.0, 400.0},
}

// RangeOf returns the declared valid range for a gene.
func RangeOf(g Gene) Range {
	return ranges[g]
}

// Genome is an immutable mapping from gene to bounded value. It is a
// comparable value type: equality is structural and it can key a map.
// All mutating operations return a new Genome.
type Genome struct {
	values [GeneCount]float64
}

// Default returns the founder genome.
func Default() Genome {
	var g Genome
	g.values[MetabolismRate] = 0.1
	g.values[BaseMetabolism] = 0.5
	g.values[MovementCost] = 0.2
	g.values[SensoryRange] = 1.0
	g.values[ToxinBResistance] = 0.0
	g.values[ReproductionThreshold] = 150.0
	return g
}

// New builds a genome from explicit values, clamped into each gene's range.
func New(values [GeneCount]float64) Genome {
	var g Genome
	for i, v := range values {
		g.values[i] = clamp(v, ranges[i])
	}
	return g
}

// Value returns the current value of a gene.
func (g Genome) Value(gene Gene) float64 {
	return g.values[gene]
}

// Values returns a copy of all gene values in Gene order.
func (g Genome) Values() [GeneCount]float64 {
	return g.values
}

// With returns a copy with one gene set to v, clamped to the gene's range.
func (g Genome) With(gene Gene, v float64) Genome {
	g.values[gene] = clamp(v, ranges[gene])
	return g
}

// Edit returns a copy with delta added to one gene, clamped to the gene's
// range. Directed edits are the EP-spend path; ordinary inheritance goes
// through Mutate.
func (g Genome) Edit(gene Gene, delta float64) Genome {
	return g.With(gene, g.values[gene]+delta)
}

// Mutate returns a child genome where every gene is scaled by an independent
// factor drawn from 1 + U(-r, r), then clamped. One draw per gene; a shared
// draw would collapse trait diversity.
func (g Genome) Mutate(rng *rand.Rand, r float64) Genome {
	var child Genome
	for i, v := range g.values {
		factor := 1.0 + (rng.Float64()*2.0-1.0)*r
		child.values[i] = clamp(v*factor, ranges[i])
	}
	return child
}

// Validate checks every gene against its declared range. A failure signals a
// bug in mutation or clamping logic, not bad input.
func (g Genome) Validate() error {
	for i, v := range g.values {
		rg := ranges[i]
		if v < rg.Min || v > rg.Max {
			return &GeneRangeError{Gene: Gene(i), Value: v, Min: rg.Min, Max: rg.Max}
		}
	}
	return nil
}

// GeneRangeError reports a gene value outside its declared range.
// It is a contract violation: callers should abort, not clamp.
type GeneRangeError struct {
	Gene     Gene
	Value    float64
	Min, Max float64
}

func (e *GeneRangeError) Error() string {
	return fmt.Sprintf("genome: %s value %g outside range [%g, %g]", e.Gene, e.Value, e.Min, e.Max)
}

func clamp(v float64, r Range) float64 {
	if v < r.Min {
		return r.Min
	}
	if v > r.Max {
		return r.Max
	}
	return v
}
