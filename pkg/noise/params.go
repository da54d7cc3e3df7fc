// Package noise generates deterministic fractal noise grids and falloff masks.
//
// Every function here is pure: the same inputs always produce bit-identical
// output, and nothing is shared between calls, so grids can be generated
// from any goroutine.
package noise

import (
	"fmt"
	"strings"
)

// MinScale replaces non-positive scales.
const MinScale = 0.0001

// NormalizeMode selects how raw octave sums are mapped into [0, 1].
type NormalizeMode int

const (
	// NormalizeLocal stretches each grid over its own min/max. Adjacent grids
	// will not line up.
	NormalizeLocal NormalizeMode = iota
	// NormalizeGlobal divides by the theoretical amplitude sum, so grids
	// generated independently agree where they overlap.
	NormalizeGlobal
)

func (m NormalizeMode) String() string {
	switch m {
	case NormalizeLocal:
		return "local"
	case NormalizeGlobal:
		return "global"
	default:
		return fmt.Sprintf("NormalizeMode(%d)", int(m))
	}
}

// ParseNormalizeMode parses "local" or "global" (case-insensitive).
func ParseNormalizeMode(s string) (NormalizeMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "local":
		return NormalizeLocal, nil
	case "global", "":
		return NormalizeGlobal, nil
	}
	return NormalizeGlobal, fmt.Errorf("unknown normalize mode %q", s)
}

// Basis selects the lattice noise summed by each octave.
type Basis int

const (
	BasisPerlin Basis = iota
	BasisSimplex
)

func (b Basis) String() string {
	switch b {
	case BasisPerlin:
		return "perlin"
	case BasisSimplex:
		return "simplex"
	default:
		return fmt.Sprintf("Basis(%d)", int(b))
	}
}

// ParseBasis parses "perlin" or "simplex" (case-insensitive).
func ParseBasis(s string) (Basis, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "perlin", "":
		return BasisPerlin, nil
	case "simplex", "opensimplex":
		return BasisSimplex, nil
	}
	return BasisPerlin, fmt.Errorf("unknown noise basis %q", s)
}

// Params configures Generate.
type Params struct {
	Seed        int64
	Scale       float64
	Octaves     int
	Persistence float64
	Lacunarity  float64

	// OffsetX/OffsetY shift the sampled window. Chunks pass their centre here.
	OffsetX float64
	OffsetY float64

	Mode  NormalizeMode
	Basis Basis
}

// Sanitized returns a copy of p with out-of-range values clamped:
// scale <= 0 becomes MinScale, negative octaves become 0, lacunarity is at
// least 1 and persistence is limited to [0, 1].
func (p Params) Sanitized() Params {
	if p.Scale <= 0 {
		p.Scale = MinScale
	}
	if p.Octaves < 0 {
		p.Octaves = 0
	}
	if p.Lacunarity < 1 {
		p.Lacunarity = 1
	}
	if p.Persistence < 0 {
		p.Persistence = 0
	}
	if p.Persistence > 1 {
		p.Persistence = 1
	}
	return p
}
