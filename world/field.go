// Package world owns the toroidal scalar fields the simulation runs on.
package world

// Field is a single scalar grid over a fixed-size toroidal lattice. All
// coordinate arithmetic wraps modulo width/height. The grid's identity is
// fixed for the simulation's lifetime; only its contents mutate.
type Field struct {
	W, H  int
	cells []float64
	tmp   []float64 // write buffer for double-buffered diffusion
}

// NewField creates a zeroed field of the given dimensions.
func NewField(w, h int) *Field {
	return &Field{
		W:     w,
		H:     h,
		cells: make([]float64, w*h),
		tmp:   make([]float64, w*h),
	}
}

// idx maps toroidal coordinates to a cell index.
func (f *Field) idx(x, y int) int {
	return modInt(y, f.H)*f.W + modInt(x, f.W)
}

// At returns the value at toroidal coordinates (x, y).
func (f *Field) At(x, y int) float64 {
	return f.cells[f.idx(x, y)]
}

// Set writes the value at toroidal coordinates (x, y).
func (f *Field) Set(x, y int, v float64) {
	f.cells[f.idx(x, y)] = v
}

// Add adds v to the cell at toroidal coordinates (x, y).
func (f *Field) Add(x, y int, v float64) {
	f.cells[f.idx(x, y)] += v
}

// Consume removes up to amount from the cell and returns what was actually
// removed. Cells never go negative.
func (f *Field) Consume(x, y int, amount float64) float64 {
	i := f.idx(x, y)
	avail := f.cells[i]
	if amount > avail {
		amount = avail
	}
	f.cells[i] = avail - amount
	return amount
}

// Diffuse applies one Forward-Time Central-Space step on the toroidal grid:
// each cell gains rate * (sum of four neighbors - 4*self). Reads the old
// buffer, writes the new one, then swaps. The rate must satisfy the explicit
// stability bound (0, 0.25]; violating it is a caller contract error.
func (f *Field) Diffuse(rate float64) {
	if rate <= 0 || rate > 0.25 {
		panic("world: diffusion rate outside stability bound (0, 0.25]")
	}

	w, h := f.W, f.H
	src := f.cells
	dst := f.tmp

	for y := 0; y < h; y++ {
		yN := modInt(y-1, h)
		yS := modInt(y+1, h)
		for x := 0; x < w; x++ {
			xW := modInt(x-1, w)
			xE := modInt(x+1, w)

			i := y*w + x
			c := src[i]
			lap := src[yN*w+x] + src[yS*w+x] + src[y*w+xE] + src[y*w+xW] - 4*c
			dst[i] = c + rate*lap
		}
	}

	f.cells, f.tmp = f.tmp, f.cells
}

// Clamp bounds every cell into [0, max], modeling saturation and decay.
func (f *Field) Clamp(max float64) {
	for i, v := range f.cells {
		if v < 0 {
			f.cells[i] = 0
		} else if v > max {
			f.cells[i] = max
		}
	}
}

// Scale multiplies every cell by k.
func (f *Field) Scale(k float64) {
	for i := range f.cells {
		f.cells[i] *= k
	}
}

// AddUniform adds v to every cell.
func (f *Field) AddUniform(v float64) {
	for i := range f.cells {
		f.cells[i] += v
	}
}

// Sum returns the total quantity held by the field.
func (f *Field) Sum() float64 {
	var sum float64
	for _, v := range f.cells {
		sum += v
	}
	return sum
}

// Max returns the largest cell value.
func (f *Field) Max() float64 {
	var max float64
	for _, v := range f.cells {
		if v > max {
			max = v
		}
	}
	return max
}

// CopyCells returns a copy of the raw grid, row-major. External consumers
// never see the internal buffers.
func (f *Field) CopyCells() []float64 {
	out := make([]float64, len(f.cells))
	copy(out, f.cells)
	return out
}

// modInt wraps a into [0, m).
func modInt(a, m int) int {
	r := a % m
	if r < 0 {
		r += m
	}
	return r
}

// Wrap maps arbitrary coordinates onto the torus.
func Wrap(x, y, w, h int) (int, int) {
	return modInt(x, w), modInt(y, h)
}
