package world

import (
	opensimplex "github.com/ojrac/opensimplex-go"
)

// ApplyTerrain overlays smooth noise onto a field, giving the founders
// scattered nutrient patches beyond the single source cell. Values added are
// in [0, amplitude]. Seeded, so runs replay identically.
func ApplyTerrain(f *Field, seed int64, scale, amplitude float64) {
	if scale <= 0 || amplitude <= 0 {
		return
	}

	noise := opensimplex.NewNormalized(seed)
	for y := 0; y < f.H; y++ {
		for x := 0; x < f.W; x++ {
			v := noise.Eval2(float64(x)/scale, float64(y)/scale)
			f.Add(x, y, v*amplitude)
		}
	}
}
