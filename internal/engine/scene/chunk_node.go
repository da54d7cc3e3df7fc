package scene

import (
	"image"

	"github.com/Faultbox/midgard-terrain/internal/engine/terrain"
	"github.com/Faultbox/midgard-terrain/internal/engine/texture"
	"github.com/Faultbox/midgard-terrain/pkg/math"
)

// ChunkNode is one terrain chunk in the scene. Meshes are uploaded once and
// kept, so switching back to an earlier level of detail costs no upload.
type ChunkNode struct {
	model   math.Mat4
	visible bool

	current *GPUMesh
	meshes  map[*terrain.Mesh]*GPUMesh
	texture uint32
}

func newChunkNode(position math.Vec3, scale float32) *ChunkNode {
	return &ChunkNode{
		model:  math.Model(position, scale),
		meshes: make(map[*terrain.Mesh]*GPUMesh),
	}
}

// SetVisible shows or hides the node.
func (n *ChunkNode) SetVisible(visible bool) {
	n.visible = visible
}

// Visible reports whether the node is shown.
func (n *ChunkNode) Visible() bool {
	return n.visible
}

// SetMesh makes mesh the drawn geometry, uploading it on first use.
func (n *ChunkNode) SetMesh(mesh *terrain.Mesh) {
	g, ok := n.meshes[mesh]
	if !ok {
		g = UploadMesh(mesh)
		n.meshes[mesh] = g
	}
	n.current = g
}

// SetTexture replaces the node's colour texture.
func (n *ChunkNode) SetTexture(img *image.RGBA) {
	texture.Delete(n.texture)
	n.texture = texture.Upload(img, texture.Nearest)
}

// ClearMeshes drops every uploaded mesh. The map editor calls it before
// showing a regenerated preview.
func (n *ChunkNode) ClearMeshes() {
	for _, g := range n.meshes {
		g.Destroy()
	}
	n.meshes = make(map[*terrain.Mesh]*GPUMesh)
	n.current = nil
}

func (n *ChunkNode) drawable() bool {
	return n.visible && n.current != nil && n.current.vao != 0
}

func (n *ChunkNode) destroy() {
	n.ClearMeshes()
	texture.Delete(n.texture)
	n.texture = 0
}
