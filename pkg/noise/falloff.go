package noise

import gomath "math"

// Shape of the falloff curve f(d) = d^a / (d^a + (b - b*d)^a).
const (
	FalloffExponent   = 3.0
	FalloffMultiplier = 2.2
)

// Falloff returns a size x size mask that is 0 at the centre and rises to 1
// toward the square's edges. Subtracting it from a height grid sinks the
// borders, producing an island.
func Falloff(size int) *Grid {
	grid := NewGrid(size, size)
	for j := 0; j < grid.Height; j++ {
		for i := 0; i < grid.Width; i++ {
			x := falloffCoord(i, size)
			y := falloffCoord(j, size)
			d := gomath.Max(gomath.Abs(x), gomath.Abs(y))
			grid.Set(i, j, float32(FalloffCurve(d)))
		}
	}
	return grid
}

// FalloffCurve evaluates the falloff shaping function for d in [0, 1].
func FalloffCurve(d float64) float64 {
	num := gomath.Pow(d, FalloffExponent)
	den := num + gomath.Pow(FalloffMultiplier-FalloffMultiplier*d, FalloffExponent)
	if den == 0 {
		return 0
	}
	return num / den
}

// falloffCoord maps grid index i to [-1, 1].
func falloffCoord(i, size int) float64 {
	if size <= 1 {
		return 0
	}
	return float64(i)/float64(size-1)*2 - 1
}
