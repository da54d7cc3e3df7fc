package noise

import (
	gomath "math"

	"github.com/aquilax/go-perlin"
	"github.com/ojrac/opensimplex-go"
)

// Sampler returns coherent noise in [0, 1] for a 2D coordinate.
type Sampler interface {
	Sample(x, y float64) float64
}

// NewSampler returns the lattice noise for basis, seeded with seed.
func NewSampler(basis Basis, seed int64) Sampler {
	switch basis {
	case BasisSimplex:
		return simplexSampler{noise: opensimplex.NewNormalized(seed)}
	default:
		return perlinSampler{noise: perlin.NewPerlin(perlinAlpha, perlinBeta, 1, seed)}
	}
}

const (
	perlinAlpha = 2
	perlinBeta  = 2

	// go-perlin's permutation table repeats every 256 lattice units.
	perlinPeriod = 256
)

type perlinSampler struct {
	noise *perlin.Perlin
}

// Sample wraps the coordinate into the lattice period first. go-perlin
// truncates toward zero, which breaks continuity for inputs below its
// internal bias, and octave offsets reach far into negative space.
func (s perlinSampler) Sample(x, y float64) float64 {
	v := s.noise.Noise2D(wrap(x), wrap(y))
	v = (v*gomath.Sqrt2 + 1) / 2
	return gomath.Max(0, gomath.Min(1, v))
}

func wrap(v float64) float64 {
	v = gomath.Mod(v, perlinPeriod)
	if v < 0 {
		v += perlinPeriod
	}
	return v
}

type simplexSampler struct {
	noise opensimplex.Noise
}

func (s simplexSampler) Sample(x, y float64) float64 {
	return s.noise.Eval2(x, y)
}
