package world

import (
	"sort"

	"github.com/Faultbox/midgard-terrain/internal/config"
	"github.com/Faultbox/midgard-terrain/internal/game/mapgen"
)

// OptionsFromConfig derives streamer options from the streaming section and
// the generation settings the chunks will be built with.
func OptionsFromConfig(sc config.StreamingConfig, s mapgen.Settings) Options {
	levels := make([]LODInfo, 0, len(sc.Levels))
	for _, l := range sc.Levels {
		levels = append(levels, LODInfo{LOD: l.LOD, VisibleDistance: l.Distance})
	}
	sort.SliceStable(levels, func(i, j int) bool {
		return levels[i].VisibleDistance < levels[j].VisibleDistance
	})

	return Options{
		MapChunkSize:     s.Terrain.ChunkSize,
		Scale:            sc.Scale,
		MoveThreshold:    sc.MoveThreshold,
		Levels:           levels,
		HeightMultiplier: s.HeightMultiplier,
		HeightCurve:      s.HeightCurve,
	}
}
