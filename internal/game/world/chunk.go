package world

import (
	"image"

	"github.com/Faultbox/midgard-terrain/internal/engine/terrain"
	"github.com/Faultbox/midgard-terrain/pkg/math"
)

// ChunkKey is a chunk's position on the chunk grid.
type ChunkKey struct {
	X, Y int
}

// ChunkObject is the scene-side representation of a chunk.
type ChunkObject interface {
	SetVisible(visible bool)
	SetMesh(mesh *terrain.Mesh)
	SetTexture(texture *image.RGBA)
}

// Scene creates chunk objects. position is the chunk centre in world space
// and scale the uniform scale applied to its mesh.
type Scene interface {
	SpawnChunk(key ChunkKey, position math.Vec3, scale float32) ChunkObject
}

// lodMesh caches the mesh of one detail level for one chunk.
type lodMesh struct {
	lod       int
	mesh      *terrain.Mesh
	requested bool
}

func (m *lodMesh) ready() bool {
	return m.mesh != nil
}

// Chunk is one streamed terrain chunk. Chunks are created the first time
// they come into range and are kept for the streamer's lifetime.
type Chunk struct {
	key      ChunkKey
	position math.Vec2 // centre, in unscaled terrain units
	bounds   math.Rect
	object   ChunkObject

	heightMap *terrain.HeightMap
	visible   bool
	lodIndex  int
	lodMeshes []*lodMesh

	// listed is set while the chunk is in the streamer's visible list.
	listed bool
}

// Key returns the chunk's grid position.
func (c *Chunk) Key() ChunkKey {
	return c.key
}

// Bounds returns the chunk's extent on the terrain plane, unscaled.
func (c *Chunk) Bounds() math.Rect {
	return c.bounds
}

// Visible reports whether the chunk is currently shown.
func (c *Chunk) Visible() bool {
	return c.visible
}

// HasHeightData reports whether the chunk's height map has arrived.
func (c *Chunk) HasHeightData() bool {
	return c.heightMap != nil
}

// LODIndex returns the index into the streamer's levels of the mesh being
// shown, or -1 before the first mesh is assigned.
func (c *Chunk) LODIndex() int {
	return c.lodIndex
}

// MeshRequested reports whether the mesh for level index i has been requested.
func (c *Chunk) MeshRequested(i int) bool {
	return c.lodMeshes[i].requested
}

func (c *Chunk) setVisible(v bool) {
	c.visible = v
	c.object.SetVisible(v)
}
