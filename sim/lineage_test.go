package sim

import (
	"errors"
	"math"
	"testing"

	"github.com/pthm-cable/primordia/genome"
)

func TestSpendDebitsAndEditsBase(t *testing.T) {
	l := NewLineage(genome.Default(), 100)

	opt := SpendOption{Name: "improve_sensing", Gene: genome.SensoryRange, Delta: 1.0, Cost: 30}
	if err := l.Spend(opt); err != nil {
		t.Fatalf("Spend() error = %v", err)
	}
	if got := l.EP(); got != 70 {
		t.Errorf("EP after spend = %g, want 70", got)
	}
	if got := l.BaseGenome().Value(genome.SensoryRange); got != 2.0 {
		t.Errorf("SensoryRange after spend = %g, want 2", got)
	}
}

func TestSpendExactBalanceSucceeds(t *testing.T) {
	l := NewLineage(genome.Default(), 30)
	opt := SpendOption{Name: "improve_sensing", Gene: genome.SensoryRange, Delta: 1.0, Cost: 30}
	if err := l.Spend(opt); err != nil {
		t.Fatalf("Spend() with exact balance error = %v", err)
	}
	if l.EP() != 0 {
		t.Errorf("EP = %g, want 0", l.EP())
	}
}

func TestSpendInsufficientLeavesStateUnchanged(t *testing.T) {
	base := genome.Default()
	l := NewLineage(base, 20)

	opt := SpendOption{Name: "improve_sensing", Gene: genome.SensoryRange, Delta: 1.0, Cost: 30}
	err := l.Spend(opt)
	if err == nil {
		t.Fatal("Spend() with 20 EP against cost 30 succeeded")
	}
	var insErr *InsufficientEPError
	if !errors.As(err, &insErr) {
		t.Fatalf("Spend() error = %T, want *InsufficientEPError", err)
	}
	if insErr.Required != 30 || insErr.Available != 20 {
		t.Errorf("error = {Required: %g, Available: %g}, want {30, 20}", insErr.Required, insErr.Available)
	}
	if l.EP() != 20 {
		t.Errorf("EP after failed spend = %g, want 20", l.EP())
	}
	if l.BaseGenome() != base {
		t.Error("base genome changed by a failed spend")
	}
}

func TestSpendToxinResistanceTradeOff(t *testing.T) {
	l := NewLineage(genome.Default(), 100)

	opt := SpendOption{Name: "increase_toxin_resistance", Gene: genome.ToxinBResistance, Delta: 0.05, Cost: 60}
	if err := l.Spend(opt); err != nil {
		t.Fatalf("Spend() error = %v", err)
	}
	base := l.BaseGenome()
	if got := base.Value(genome.ToxinBResistance); math.Abs(got-0.05) > 1e-12 {
		t.Errorf("ToxinBResistance = %g, want 0.05", got)
	}
	if got := base.Value(genome.BaseMetabolism); math.Abs(got-0.51) > 1e-12 {
		t.Errorf("BaseMetabolism = %g, want 0.51 (resistance upkeep)", got)
	}
}

func TestChildTemplatePinsEvolvedGenes(t *testing.T) {
	l := NewLineage(genome.Default(), 100)
	opt := SpendOption{Name: "improve_sensing", Gene: genome.SensoryRange, Delta: 1.0, Cost: 30}
	if err := l.Spend(opt); err != nil {
		t.Fatalf("Spend() error = %v", err)
	}

	// A parent whose genome has drifted away from the template on both an
	// evolved gene and a free one.
	parent := genome.Default().
		With(genome.SensoryRange, 4.0).
		With(genome.MetabolismRate, 0.3)

	tpl := l.ChildTemplate(parent)
	if got := tpl.Value(genome.SensoryRange); got != 2.0 {
		t.Errorf("evolved gene SensoryRange = %g, want template value 2", got)
	}
	if got := tpl.Value(genome.MetabolismRate); got != 0.3 {
		t.Errorf("free gene MetabolismRate = %g, want parental value 0.3", got)
	}
}

func TestChildTemplateWithoutSpendsIsParent(t *testing.T) {
	l := NewLineage(genome.Default(), 100)
	parent := genome.Default().With(genome.MovementCost, 0.7)
	if got := l.ChildTemplate(parent); got != parent {
		t.Errorf("ChildTemplate() = %+v, want parent genome unchanged", got.Values())
	}
}

func TestEarnEPPanicsOnNegative(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("EarnEP(-1) did not panic")
		}
	}()
	NewLineage(genome.Default(), 0).EarnEP(-1)
}

func TestMarkMilestoneIsOneShot(t *testing.T) {
	l := NewLineage(genome.Default(), 0)
	if !l.markMilestone() {
		t.Error("first markMilestone() = false")
	}
	if l.markMilestone() {
		t.Error("second markMilestone() = true, want one-shot")
	}
}

func TestDefaultSpendOptions(t *testing.T) {
	opts := DefaultSpendOptions()
	if len(opts) != 3 {
		t.Fatalf("len(DefaultSpendOptions()) = %d, want 3", len(opts))
	}
	want := map[string]genome.Gene{
		"increase_toxin_resistance": genome.ToxinBResistance,
		"decrease_metabolism":       genome.BaseMetabolism,
		"improve_sensing":           genome.SensoryRange,
	}
	for _, opt := range opts {
		gene, ok := want[opt.Name]
		if !ok {
			t.Errorf("unexpected option %q", opt.Name)
			continue
		}
		if opt.Gene != gene {
			t.Errorf("option %q edits %v, want %v", opt.Name, opt.Gene, gene)
		}
		if opt.Cost <= 0 {
			t.Errorf("option %q has non-positive cost %g", opt.Name, opt.Cost)
		}
	}
}
