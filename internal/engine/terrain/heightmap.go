package terrain

import (
	"image/color"

	"github.com/Faultbox/midgard-terrain/pkg/math"
	"github.com/Faultbox/midgard-terrain/pkg/noise"
)

// Settings configures height map generation.
type Settings struct {
	Noise noise.Params

	// ChunkSize is the number of samples per side of a chunk's mesh.
	ChunkSize int

	Falloff bool

	// Regions must be sorted by ascending threshold (see SortRegions).
	Regions []Region
}

// BorderedSize returns the side length of the grid Build produces.
func (s Settings) BorderedSize() int {
	return s.ChunkSize + 2*Border
}

// Builder produces chunk height maps. It is immutable after NewBuilder and
// may be shared by any number of goroutines.
type Builder struct {
	settings Settings
	falloff  *noise.Grid
}

// NewBuilder returns a Builder for s. The regions are copied.
func NewBuilder(s Settings) *Builder {
	regions := make([]Region, len(s.Regions))
	copy(regions, s.Regions)
	s.Regions = regions

	b := &Builder{settings: s}
	if s.Falloff {
		b.falloff = noise.Falloff(s.BorderedSize())
	}
	return b
}

// Settings returns the builder's configuration.
func (b *Builder) Settings() Settings {
	return b.settings
}

// Build generates the bordered height map for the chunk centred at center.
func (b *Builder) Build(center math.Vec2) *HeightMap {
	size := b.settings.BorderedSize()

	p := b.settings.Noise
	p.OffsetX += float64(center.X)
	p.OffsetY += float64(center.Y)
	grid := noise.Generate(size, size, p)

	hm := &HeightMap{
		Size:    size,
		Heights: grid.Values,
		Colors:  make([]color.RGBA, len(grid.Values)),
	}
	for i, h := range hm.Heights {
		if b.falloff != nil {
			h = math.Clamp01(h - b.falloff.Values[i])
			hm.Heights[i] = h
		}
		hm.Colors[i] = Classify(b.settings.Regions, h)
	}
	return hm
}

// Build is a one-shot NewBuilder(s).Build(center).
func Build(center math.Vec2, s Settings) *HeightMap {
	return NewBuilder(s).Build(center)
}
