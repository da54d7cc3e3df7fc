package noise

import gomath "math"

// Grid is a row-major rectangle of samples.
type Grid struct {
	Width  int
	Height int
	Values []float32
}

// NewGrid allocates a zeroed grid.
func NewGrid(width, height int) *Grid {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Grid{
		Width:  width,
		Height: height,
		Values: make([]float32, width*height),
	}
}

// At returns the sample at (x, y).
func (g *Grid) At(x, y int) float32 {
	return g.Values[y*g.Width+x]
}

// Set stores v at (x, y).
func (g *Grid) Set(x, y int, v float32) {
	g.Values[y*g.Width+x] = v
}

// MinMax returns the smallest and largest sample. An empty grid returns (0, 0).
func (g *Grid) MinMax() (float32, float32) {
	if len(g.Values) == 0 {
		return 0, 0
	}
	lo, hi := float32(gomath.Inf(1)), float32(gomath.Inf(-1))
	for _, v := range g.Values {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	return lo, hi
}
