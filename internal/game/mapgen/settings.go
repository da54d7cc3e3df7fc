// Package mapgen turns configuration into terrain data: it runs height map
// and mesh generation on worker goroutines for the streamer, and renders
// single previews for the editor.
package mapgen

import (
	"fmt"
	"image/color"

	"github.com/Faultbox/midgard-terrain/internal/config"
	"github.com/Faultbox/midgard-terrain/internal/engine/terrain"
	"github.com/Faultbox/midgard-terrain/pkg/math"
	"github.com/Faultbox/midgard-terrain/pkg/noise"
)

// missingColor marks regions whose colour could not be parsed.
var missingColor = color.RGBA{0xff, 0x00, 0xff, 0xff}

// Settings is everything needed to produce chunk height maps and meshes.
type Settings struct {
	Terrain terrain.Settings

	HeightMultiplier float32
	HeightCurve      math.Curve
	FlatShading      bool
	PreviewLOD       int

	// QueueCapacity bounds completed results waiting for Drain.
	QueueCapacity int
}

// SettingsFromConfig converts cfg into generation settings. cfg should have
// been sanitized; anything still unusable is replaced and reported in notes.
func SettingsFromConfig(cfg *config.Config) (Settings, []string) {
	var notes []string

	n := cfg.Terrain.Noise
	mode, err := noise.ParseNormalizeMode(n.NormalizeMode)
	if err != nil {
		notes = append(notes, err.Error())
	}
	basis, err := noise.ParseBasis(n.Basis)
	if err != nil {
		notes = append(notes, err.Error())
	}

	regions := make([]terrain.Region, 0, len(cfg.Terrain.Regions))
	for _, r := range cfg.Terrain.Regions {
		c, err := terrain.ParseHexColor(r.Color)
		if err != nil {
			notes = append(notes, fmt.Sprintf("region %q: %v, drawn as %s", r.Name, err, terrain.HexColor(missingColor)))
			c = missingColor
		}
		regions = append(regions, terrain.Region{Name: r.Name, Height: r.Height, Color: c})
	}
	regions, ordered := terrain.SortRegions(regions)
	if !ordered {
		notes = append(notes, "regions sorted by ascending height")
	}

	curve := CurveFromConfig(cfg.Terrain.Mesh.HeightCurve)
	if !curveKeysOrdered(cfg.Terrain.Mesh.HeightCurve, curve) {
		notes = append(notes, "height curve keys sorted by time")
	}

	return Settings{
		Terrain: terrain.Settings{
			Noise: noise.Params{
				Seed:        n.Seed,
				Scale:       n.Scale,
				Octaves:     n.Octaves,
				Persistence: n.Persistence,
				Lacunarity:  n.Lacunarity,
				OffsetX:     n.Offset.X,
				OffsetY:     n.Offset.Y,
				Mode:        mode,
				Basis:       basis,
			}.Sanitized(),
			ChunkSize: cfg.Terrain.Mesh.ChunkSize,
			Falloff:   cfg.Terrain.Falloff.Enabled,
			Regions:   regions,
		},
		HeightMultiplier: cfg.Terrain.Mesh.HeightMultiplier,
		HeightCurve:      curve,
		FlatShading:      cfg.Terrain.Mesh.FlatShading,
		PreviewLOD:       cfg.Terrain.Mesh.EditorPreviewLOD,
		QueueCapacity:    max(cfg.Streaming.QueueCapacity, 1),
	}, notes
}

// CurveFromConfig builds the height curve. No keys means identity.
func CurveFromConfig(keys []config.CurveKey) math.Curve {
	if len(keys) == 0 {
		return math.LinearCurve()
	}
	frames := make([]math.Keyframe, len(keys))
	for i, k := range keys {
		frames[i] = math.Keyframe{
			Time:       k.Time,
			Value:      k.Value,
			InTangent:  k.InTangent,
			OutTangent: k.OutTangent,
		}
	}
	return math.NewCurve(frames...)
}

// curveKeysOrdered reports whether keys were already in the order c holds
// them.
func curveKeysOrdered(keys []config.CurveKey, c math.Curve) bool {
	sorted := c.Keys()
	if len(keys) != len(sorted) {
		return len(keys) == 0
	}
	for i, k := range keys {
		if k.Time != sorted[i].Time || k.Value != sorted[i].Value {
			return false
		}
	}
	return true
}
