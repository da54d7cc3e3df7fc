package noise

import (
	gomath "math"
	"math/rand"
)

// octaveOffsetRange bounds the per-octave sampling offsets drawn from the seed.
const octaveOffsetRange = 100000

// OctaveOffsets returns the sampling offset of every octave. The offsets are
// drawn from a generator seeded with p.Seed before any sampling happens, and
// the caller's offset is folded in (Y is inverted so positive offsets move
// the window up the terrain plane).
func OctaveOffsets(p Params) [][2]float64 {
	p = p.Sanitized()
	prng := rand.New(rand.NewSource(p.Seed))
	offsets := make([][2]float64, p.Octaves)
	for i := range offsets {
		offsets[i][0] = float64(prng.Intn(2*octaveOffsetRange)-octaveOffsetRange) + p.OffsetX
		offsets[i][1] = float64(prng.Intn(2*octaveOffsetRange)-octaveOffsetRange) - p.OffsetY
	}
	return offsets
}

// GlobalDivisor is the largest magnitude an octave sum can reach:
// the sum of persistence^i over all octaves. NormalizeGlobal divides by it.
func GlobalDivisor(octaves int, persistence float64) float64 {
	var total float64
	amplitude := 1.0
	for i := 0; i < octaves; i++ {
		total += amplitude
		amplitude *= persistence
	}
	return total
}

// Generate fills a width x height grid with fractal noise in [0, 1].
//
// Sample coordinates are centred on the grid midpoint, so changing the scale
// zooms around the middle of the grid. With zero octaves every cell is 0 in
// both normalization modes, as is every cell of a perfectly flat grid in
// NormalizeLocal.
func Generate(width, height int, p Params) *Grid {
	p = p.Sanitized()
	grid := NewGrid(width, height)
	if grid.Width == 0 || grid.Height == 0 || p.Octaves == 0 {
		return grid
	}

	offsets := OctaveOffsets(p)
	sampler := NewSampler(p.Basis, p.Seed)

	halfW := float64(width) / 2
	halfH := float64(height) / 2

	raw := make([]float64, len(grid.Values))
	minRaw, maxRaw := gomath.Inf(1), gomath.Inf(-1)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			amplitude, frequency := 1.0, 1.0
			var sum float64
			for _, o := range offsets {
				sx := (float64(x) - halfW + o[0]) / p.Scale * frequency
				sy := (float64(y) - halfH + o[1]) / p.Scale * frequency
				sum += (sampler.Sample(sx, sy)*2 - 1) * amplitude

				amplitude *= p.Persistence
				frequency *= p.Lacunarity
			}

			raw[y*width+x] = sum
			minRaw = gomath.Min(minRaw, sum)
			maxRaw = gomath.Max(maxRaw, sum)
		}
	}

	switch p.Mode {
	case NormalizeLocal:
		normalizeLocal(grid, raw, minRaw, maxRaw)
	default:
		normalizeGlobal(grid, raw, GlobalDivisor(p.Octaves, p.Persistence))
	}
	return grid
}

func normalizeLocal(grid *Grid, raw []float64, lo, hi float64) {
	span := hi - lo
	if span <= 0 || gomath.IsInf(span, 0) || gomath.IsNaN(span) {
		return
	}
	for i, v := range raw {
		grid.Values[i] = float32(clamp01((v - lo) / span))
	}
}

func normalizeGlobal(grid *Grid, raw []float64, divisor float64) {
	if divisor <= 0 {
		return
	}
	for i, v := range raw {
		grid.Values[i] = float32(clamp01((v/divisor + 1) / 2))
	}
}

func clamp01(v float64) float64 {
	if gomath.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
