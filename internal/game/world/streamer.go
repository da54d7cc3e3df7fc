// Package world streams terrain chunks around a moving viewer.
package world

import (
	gomath "math"
	"slices"

	"go.uber.org/zap"

	"github.com/Faultbox/midgard-terrain/internal/engine/terrain"
	"github.com/Faultbox/midgard-terrain/internal/game/mapgen"
	"github.com/Faultbox/midgard-terrain/pkg/math"
)

// Source generates chunk data asynchronously. Callbacks must run on the
// goroutine that calls Streamer.Update.
type Source interface {
	RequestHeightData(center math.Vec2, callback func(*terrain.HeightMap)) *mapgen.Ticket
	RequestMeshData(hm *terrain.HeightMap, lod int, callback func(*terrain.Mesh)) *mapgen.Ticket
}

// LODInfo shows mesh detail LOD for chunks whose nearest edge is at most
// VisibleDistance away.
type LODInfo struct {
	LOD             int
	VisibleDistance float32
}

// Options configures a Streamer.
type Options struct {
	// MapChunkSize is the number of height samples per chunk side. Chunks
	// are MapChunkSize-1 units wide so neighbours share their edge samples.
	MapChunkSize int

	// Scale multiplies every terrain unit into world space.
	Scale float32

	// MoveThreshold is how far, in terrain units, the viewer must move
	// before the visible set is recomputed.
	MoveThreshold float32

	// Levels must be sorted by ascending VisibleDistance. The last distance
	// is the view distance.
	Levels []LODInfo

	// Used by GroundHeight.
	HeightMultiplier float32
	HeightCurve      terrain.HeightCurve
}

// Streamer keeps the chunks around the viewer generated, visible and at
// the right level of detail. It is not safe for concurrent use; Update and
// the Source callbacks must run on the same goroutine.
type Streamer struct {
	opts   Options
	source Source
	scene  Scene
	log    *zap.Logger

	chunkSize        float32
	maxViewDistance  float32
	chunksInView     int
	moveThresholdSqr float32

	chunks            map[ChunkKey]*Chunk
	visibleLastUpdate []*Chunk

	viewer         math.Vec2
	viewerLast     math.Vec2
	started        bool
	recomputations int
}

// NewStreamer returns a Streamer drawing chunk data from source and
// creating chunk objects in scene.
func NewStreamer(opts Options, source Source, scene Scene, log *zap.Logger) *Streamer {
	if log == nil {
		log = zap.NewNop()
	}
	if opts.Scale <= 0 {
		opts.Scale = 1
	}
	if len(opts.Levels) == 0 {
		opts.Levels = []LODInfo{{LOD: 0, VisibleDistance: float32(opts.MapChunkSize)}}
	}

	chunkSize := float32(max(opts.MapChunkSize-1, 1))
	maxView := opts.Levels[len(opts.Levels)-1].VisibleDistance

	return &Streamer{
		opts:             opts,
		source:           source,
		scene:            scene,
		log:              log,
		chunkSize:        chunkSize,
		maxViewDistance:  maxView,
		chunksInView:     ringsInView(maxView, chunkSize),
		moveThresholdSqr: opts.MoveThreshold * opts.MoveThreshold,
		chunks:           make(map[ChunkKey]*Chunk),
	}
}

// Update moves the viewer to pos (world units). The visible set is only
// recomputed on the first call and after the viewer has moved further than
// the move threshold since the last recomputation.
func (s *Streamer) Update(pos math.Vec2) {
	s.viewer = pos.Scale(1 / s.opts.Scale)

	if s.started && s.viewer.SqrDistance(s.viewerLast) <= s.moveThresholdSqr {
		return
	}
	s.started = true
	s.viewerLast = s.viewer
	s.updateVisibleChunks()
}

func (s *Streamer) updateVisibleChunks() {
	s.recomputations++

	for _, c := range s.visibleLastUpdate {
		c.setVisible(false)
		c.listed = false
	}
	s.visibleLastUpdate = s.visibleLastUpdate[:0]

	cx, cy := s.viewer.Scale(1 / s.chunkSize).Round()
	for yOff := -s.chunksInView; yOff <= s.chunksInView; yOff++ {
		for xOff := -s.chunksInView; xOff <= s.chunksInView; xOff++ {
			key := ChunkKey{cx + xOff, cy + yOff}
			if c, ok := s.chunks[key]; ok {
				s.updateChunk(c)
				continue
			}
			s.chunks[key] = s.newChunk(key)
		}
	}
}

func (s *Streamer) newChunk(key ChunkKey) *Chunk {
	pos := math.Vec2{X: float32(key.X) * s.chunkSize, Y: float32(key.Y) * s.chunkSize}
	world := math.Vec3{X: pos.X * s.opts.Scale, Z: pos.Y * s.opts.Scale}

	c := &Chunk{
		key:      key,
		position: pos,
		bounds:   math.RectFromCenter(pos, s.chunkSize),
		object:   s.scene.SpawnChunk(key, world, s.opts.Scale),
		lodIndex: -1,
	}
	for _, l := range s.opts.Levels {
		c.lodMeshes = append(c.lodMeshes, &lodMesh{lod: l.LOD})
	}
	c.setVisible(false)

	s.log.Debug("chunk created", zap.Int("x", key.X), zap.Int("y", key.Y))
	s.source.RequestHeightData(pos, func(hm *terrain.HeightMap) {
		s.onHeightData(c, hm)
	})
	return c
}

func (s *Streamer) onHeightData(c *Chunk, hm *terrain.HeightMap) {
	c.heightMap = hm
	c.object.SetTexture(hm.ColorTexture())
	s.updateChunk(c)
}

// updateChunk recomputes a chunk's visibility and level of detail against
// the current viewer position.
func (s *Streamer) updateChunk(c *Chunk) {
	if c.heightMap == nil {
		return
	}

	d := float32(gomath.Sqrt(float64(c.bounds.SqrDistance(s.viewer))))
	visible := d <= s.maxViewDistance

	if visible {
		idx := s.lodIndexFor(d)
		if idx != c.lodIndex {
			m := c.lodMeshes[idx]
			switch {
			case m.ready():
				c.lodIndex = idx
				c.object.SetMesh(m.mesh)
			case !m.requested:
				s.requestMesh(c, m)
			}
		}
		if !c.listed {
			c.listed = true
			s.visibleLastUpdate = append(s.visibleLastUpdate, c)
		}
	}
	c.setVisible(visible)
}

// lodIndexFor returns the first level whose distance covers d.
func (s *Streamer) lodIndexFor(d float32) int {
	for i, l := range s.opts.Levels {
		if d <= l.VisibleDistance {
			return i
		}
	}
	return len(s.opts.Levels) - 1
}

func (s *Streamer) requestMesh(c *Chunk, m *lodMesh) {
	m.requested = true
	s.source.RequestMeshData(c.heightMap, m.lod, func(mesh *terrain.Mesh) {
		m.mesh = mesh
		s.updateChunk(c)
	})
}

// Chunk returns the chunk at key, if it has been created.
func (s *Streamer) Chunk(key ChunkKey) (*Chunk, bool) {
	c, ok := s.chunks[key]
	return c, ok
}

// ChunkCount returns how many chunks exist.
func (s *Streamer) ChunkCount() int {
	return len(s.chunks)
}

// VisibleCount returns how many chunks are shown.
func (s *Streamer) VisibleCount() int {
	return len(s.visibleLastUpdate)
}

// VisibleChunks returns the chunks shown after the last update.
func (s *Streamer) VisibleChunks() []*Chunk {
	return slices.Clone(s.visibleLastUpdate)
}

// Recomputations returns how many times the visible set was rebuilt.
func (s *Streamer) Recomputations() int {
	return s.recomputations
}

// MaxViewDistance returns the view distance in terrain units.
func (s *Streamer) MaxViewDistance() float32 {
	return s.maxViewDistance
}

// ringsInView returns how many rings of chunks around the viewer's cell can
// come within maxView. The viewer may stand anywhere in its cell, so ring k
// can be as close as (k-1)*chunkSize.
func ringsInView(maxView, chunkSize float32) int {
	return int(maxView/chunkSize) + 1
}

// ChunksInView returns the number of chunk rings kept around the viewer.
func (s *Streamer) ChunksInView() int {
	return s.chunksInView
}

// GroundHeight returns the terrain height in world units under the world
// position pos. It reports false when the chunk there has no height data yet.
func (s *Streamer) GroundHeight(pos math.Vec2) (float32, bool) {
	p := pos.Scale(1 / s.opts.Scale)
	x, y := p.Scale(1 / s.chunkSize).Round()
	c, ok := s.chunks[ChunkKey{x, y}]
	if !ok || c.heightMap == nil {
		return 0, false
	}

	half := s.chunkSize / 2
	local := p.Sub(c.position)
	gx := local.X + half + terrain.Border
	gy := half - local.Y + terrain.Border

	h := c.heightMap.Interpolate(gx, gy)
	if s.opts.HeightCurve != nil {
		h = s.opts.HeightCurve.Evaluate(h)
	}
	return h * s.opts.HeightMultiplier * s.opts.Scale, true
}
