package config

import (
	"fmt"
	"sort"
	"strings"
)

// Limits applied by Sanitize.
const (
	MinScale             = 0.0001
	MinChunkSize         = 2
	MaxLOD               = 6
	DefaultMoveThreshold = 25
)

// Sanitize clamps out-of-range values in place and returns one note per
// change. Bad settings are corrected, never rejected.
func (c *Config) Sanitize() []string {
	var notes []string
	note := func(format string, args ...any) {
		notes = append(notes, fmt.Sprintf(format, args...))
	}

	n := &c.Terrain.Noise
	if n.Scale <= 0 {
		note("terrain.noise.scale %v <= 0, using %v", n.Scale, MinScale)
		n.Scale = MinScale
	}
	if n.Octaves < 0 {
		note("terrain.noise.octaves %d < 0, using 0", n.Octaves)
		n.Octaves = 0
	}
	if n.Lacunarity < 1 {
		note("terrain.noise.lacunarity %v < 1, using 1", n.Lacunarity)
		n.Lacunarity = 1
	}
	if n.Persistence < 0 || n.Persistence > 1 {
		p := min(max(n.Persistence, 0), 1)
		note("terrain.noise.persistence %v outside [0, 1], using %v", n.Persistence, p)
		n.Persistence = p
	}
	if !oneOf(n.NormalizeMode, "local", "global") {
		note("terrain.noise.normalize_mode %q unknown, using global", n.NormalizeMode)
		n.NormalizeMode = "global"
	}
	if !oneOf(n.Basis, "perlin", "simplex") {
		note("terrain.noise.basis %q unknown, using perlin", n.Basis)
		n.Basis = "perlin"
	}

	m := &c.Terrain.Mesh
	if m.ChunkSize < MinChunkSize {
		note("terrain.mesh.chunk_size %d < %d, using %d", m.ChunkSize, MinChunkSize, MinChunkSize)
		m.ChunkSize = MinChunkSize
	}
	if lod := clampLOD(m.EditorPreviewLOD); lod != m.EditorPreviewLOD {
		note("terrain.mesh.editor_preview_lod %d outside [0, %d], using %d", m.EditorPreviewLOD, MaxLOD, lod)
		m.EditorPreviewLOD = lod
	}

	regions := c.Terrain.Regions
	if !sort.SliceIsSorted(regions, func(i, j int) bool { return regions[i].Height < regions[j].Height }) {
		note("terrain.regions not in ascending height order, sorting")
		sort.SliceStable(regions, func(i, j int) bool { return regions[i].Height < regions[j].Height })
	}

	s := &c.Streaming
	if s.Scale <= 0 {
		note("streaming.scale %v <= 0, using 1", s.Scale)
		s.Scale = 1
	}
	if s.MoveThreshold <= 0 {
		note("streaming.move_threshold %v <= 0, using %v", s.MoveThreshold, DefaultMoveThreshold)
		s.MoveThreshold = DefaultMoveThreshold
	}
	if s.QueueCapacity < 1 {
		note("streaming.queue_capacity %d < 1, using 1", s.QueueCapacity)
		s.QueueCapacity = 1
	}
	if len(s.Levels) == 0 {
		note("streaming.levels empty, using defaults")
		s.Levels = Default().Streaming.Levels
	}
	for i := range s.Levels {
		if lod := clampLOD(s.Levels[i].LOD); lod != s.Levels[i].LOD {
			note("streaming.levels[%d].lod %d outside [0, %d], using %d", i, s.Levels[i].LOD, MaxLOD, lod)
			s.Levels[i].LOD = lod
		}
	}
	levels := s.Levels
	if !sort.SliceIsSorted(levels, func(i, j int) bool { return levels[i].Distance < levels[j].Distance }) {
		note("streaming.levels not in ascending distance order, sorting")
		sort.SliceStable(levels, func(i, j int) bool { return levels[i].Distance < levels[j].Distance })
	}

	e := &c.Editor
	if !oneOf(e.DrawMode, "noise", "color", "mesh", "falloff") {
		note("editor.draw_mode %q unknown, using mesh", e.DrawMode)
		e.DrawMode = "mesh"
	}

	return notes
}

func clampLOD(lod int) int {
	return min(max(lod, 0), MaxLOD)
}

func oneOf(v string, options ...string) bool {
	v = strings.ToLower(strings.TrimSpace(v))
	for _, o := range options {
		if v == o {
			return true
		}
	}
	return false
}
