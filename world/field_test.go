package world

import (
	"math"
	"testing"
)

func TestDiffuseConservesTotalQuantity(t *testing.T) {
	f := NewField(16, 16)
	f.Set(3, 4, 50.0)
	f.Set(10, 12, 25.0)

	before := f.Sum()
	for i := 0; i < 20; i++ {
		f.Diffuse(0.2)
	}
	after := f.Sum()

	if math.Abs(before-after) > 1e-9 {
		t.Errorf("diffusion changed total quantity: before %g, after %g", before, after)
	}
}

func TestDiffuseSpreadsAcrossTorus(t *testing.T) {
	// Mass at a corner must reach wrapped neighbors, not vanish at an edge.
	f := NewField(8, 8)
	f.Set(0, 0, 100.0)

	f.Diffuse(0.25)

	wrapped := []struct{ x, y int }{{7, 0}, {1, 0}, {0, 7}, {0, 1}}
	for _, n := range wrapped {
		if f.At(n.x, n.y) <= 0 {
			t.Errorf("neighbor (%d,%d) got no mass across the wrap", n.x, n.y)
		}
	}
	if f.At(0, 0) >= 100.0 {
		t.Error("source cell should lose mass")
	}
}

func TestDiffuseStencil(t *testing.T) {
	f := NewField(5, 5)
	f.Set(2, 2, 10.0)

	f.Diffuse(0.1)

	// Center: 10 + 0.1*(0-40) = 6; each neighbor: 0 + 0.1*10 = 1.
	if got := f.At(2, 2); math.Abs(got-6.0) > 1e-12 {
		t.Errorf("center = %g, want 6", got)
	}
	for _, n := range []struct{ x, y int }{{1, 2}, {3, 2}, {2, 1}, {2, 3}} {
		if got := f.At(n.x, n.y); math.Abs(got-1.0) > 1e-12 {
			t.Errorf("neighbor (%d,%d) = %g, want 1", n.x, n.y, got)
		}
	}
	// Diagonals are not part of the 4-neighbor stencil.
	if got := f.At(1, 1); got != 0 {
		t.Errorf("diagonal = %g, want 0", got)
	}
}

func TestDiffusePanicsOutsideStabilityBound(t *testing.T) {
	for _, rate := range []float64{0, -0.1, 0.26, 1.0} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("Diffuse(%g) should panic", rate)
				}
			}()
			NewField(4, 4).Diffuse(rate)
		}()
	}
}

func TestToroidalIndexing(t *testing.T) {
	f := NewField(10, 6)
	f.Set(-1, -1, 7.0)
	if got := f.At(9, 5); got != 7.0 {
		t.Errorf("At(9,5) = %g, want 7 via negative wrap", got)
	}
	if got := f.At(19, 11); got != 7.0 {
		t.Errorf("At(19,11) = %g, want 7 via positive wrap", got)
	}
}

func TestConsume(t *testing.T) {
	f := NewField(4, 4)
	f.Set(1, 1, 3.0)

	if got := f.Consume(1, 1, 2.0); got != 2.0 {
		t.Errorf("consumed %g, want 2", got)
	}
	if got := f.Consume(1, 1, 2.0); got != 1.0 {
		t.Errorf("consumed %g, want remaining 1", got)
	}
	if got := f.At(1, 1); got != 0 {
		t.Errorf("cell = %g, want 0 after exhaustion", got)
	}
}

func TestClamp(t *testing.T) {
	f := NewField(2, 2)
	f.Set(0, 0, -5.0)
	f.Set(1, 1, 200.0)

	f.Clamp(100.0)

	if got := f.At(0, 0); got != 0 {
		t.Errorf("negative cell = %g, want 0", got)
	}
	if got := f.At(1, 1); got != 100.0 {
		t.Errorf("oversized cell = %g, want 100", got)
	}
}

func TestCopyCellsIsDetached(t *testing.T) {
	f := NewField(3, 3)
	f.Set(0, 0, 1.0)

	snap := f.CopyCells()
	f.Set(0, 0, 9.0)

	if snap[0] != 1.0 {
		t.Error("copy must not alias the internal buffer")
	}
}

func TestWrap(t *testing.T) {
	tests := []struct {
		x, y, w, h   int
		wantX, wantY int
	}{
		{10, 0, 10, 10, 0, 0},
		{-1, 5, 10, 10, 9, 5},
		{5, -1, 10, 10, 5, 9},
		{0, 10, 10, 10, 0, 0},
		{23, 47, 10, 10, 3, 7},
	}
	for _, tt := range tests {
		gotX, gotY := Wrap(tt.x, tt.y, tt.w, tt.h)
		if gotX != tt.wantX || gotY != tt.wantY {
			t.Errorf("Wrap(%d,%d,%d,%d) = (%d,%d), want (%d,%d)",
				tt.x, tt.y, tt.w, tt.h, gotX, gotY, tt.wantX, tt.wantY)
		}
	}
}
