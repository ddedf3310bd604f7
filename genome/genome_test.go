package genome

import (
	"errors"
	"math/rand"
	"testing"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("default genome invalid: %v", err)
	}
}

func TestNewClampsOutOfRangeValues(t *testing.T) {
	var vals [GeneCount]float64
	vals[MetabolismRate] = 99.0   // above max
	vals[ToxinBResistance] = -5.0 // below min
	g := New(vals)

	if got := g.Value(MetabolismRate); got != RangeOf(MetabolismRate).Max {
		t.Errorf("MetabolismRate = %g, want clamped to %g", got, RangeOf(MetabolismRate).Max)
	}
	if got := g.Value(ToxinBResistance); got != RangeOf(ToxinBResistance).Min {
		t.Errorf("ToxinBResistance = %g, want clamped to %g", got, RangeOf(ToxinBResistance).Min)
	}
	if err := g.Validate(); err != nil {
		t.Errorf("clamped genome should validate: %v", err)
	}
}

func TestMutateStaysInRange(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	g := Default()
	for i := 0; i < 1000; i++ {
		g = g.Mutate(rng, 0.1)
		if err := g.Validate(); err != nil {
			t.Fatalf("mutation %d produced invalid genome: %v", i, err)
		}
	}
}

func TestMutateDeterministicUnderFixedSeed(t *testing.T) {
	parent := Default()

	a := parent.Mutate(rand.New(rand.NewSource(7)), 0.1)
	b := parent.Mutate(rand.New(rand.NewSource(7)), 0.1)
	if a != b {
		t.Error("same seed should produce identical children")
	}

	c := parent.Mutate(rand.New(rand.NewSource(8)), 0.1)
	if a == c {
		t.Error("different seeds should produce different children")
	}
}

func TestMutateDrawsPerGene(t *testing.T) {
	// If all genes shared one factor, the ratios child/parent would be equal
	// across genes. With per-gene draws they almost surely differ.
	rng := rand.New(rand.NewSource(3))
	parent := Default()
	child := parent.Mutate(rng, 0.1)

	r0 := child.Value(MetabolismRate) / parent.Value(MetabolismRate)
	r1 := child.Value(BaseMetabolism) / parent.Value(BaseMetabolism)
	if r0 == r1 {
		t.Errorf("expected independent per-gene factors, got shared ratio %g", r0)
	}
}

func TestEditChangesExactlyOneGene(t *testing.T) {
	g := Default()
	edited := g.Edit(ToxinBResistance, 0.05)

	for i := 0; i < GeneCount; i++ {
		gene := Gene(i)
		want := g.Value(gene)
		if gene == ToxinBResistance {
			want += 0.05
		}
		if got := edited.Value(gene); got != want {
			t.Errorf("%s = %g, want %g", gene, got, want)
		}
	}
	// Original untouched.
	if g.Value(ToxinBResistance) != 0.0 {
		t.Error("Edit must not modify the receiver")
	}
}

func TestEditClamps(t *testing.T) {
	g := Default().Edit(ToxinBResistance, 100.0)
	if got := g.Value(ToxinBResistance); got != RangeOf(ToxinBResistance).Max {
		t.Errorf("edit should clamp to max, got %g", got)
	}
}

func TestStructuralEquality(t *testing.T) {
	a := Default()
	b := Default()
	if a != b {
		t.Error("genomes with equal values must compare equal")
	}
	seen := map[Genome]int{a: 1}
	if seen[b] != 1 {
		t.Error("equal genomes must hash to the same map key")
	}
}

func TestValidateReportsGene(t *testing.T) {
	g := Genome{} // zero values: MetabolismRate 0 is below its min
	err := g.Validate()
	if err == nil {
		t.Fatal("expected range error for zero genome")
	}
	var rangeErr *GeneRangeError
	if !errors.As(err, &rangeErr) {
		t.Fatalf("expected *GeneRangeError, got %T", err)
	}
	if rangeErr.Gene != MetabolismRate {
		t.Errorf("reported gene = %s, want MetabolismRate", rangeErr.Gene)
	}
}
