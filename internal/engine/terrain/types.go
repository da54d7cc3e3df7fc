// Package terrain turns noise into chunk height samples and renderable meshes.
package terrain

import "image/color"

// Border is the number of extra samples kept on every side of a chunk's
// height grid. They are only used to compute normals at the chunk edge.
const Border = 1

// MaxLOD is the coarsest supported level of detail.
const MaxLOD = 6

// Vertex is one interleaved vertex as uploaded to the GPU.
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
	TexCoord [2]float32
}

// Mesh holds the drawable part of a tessellated chunk.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32
	Bounds   Bounds

	LOD        int
	FlatShaded bool
}

// TriangleCount returns the number of triangles in the index buffer.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// Bounds holds the axis-aligned bounding box of a mesh.
type Bounds struct {
	Min [3]float32
	Max [3]float32
}

// HeightMap is the height and region colour grid of one chunk, including its
// border ring. Grids are row-major and Size x Size. A HeightMap is never
// modified after Build returns it.
type HeightMap struct {
	Size    int
	Heights []float32
	Colors  []color.RGBA
}

// At returns the height at bordered grid position (x, y).
func (h *HeightMap) At(x, y int) float32 {
	return h.Heights[y*h.Size+x]
}

// ColorAt returns the region colour at bordered grid position (x, y).
func (h *HeightMap) ColorAt(x, y int) color.RGBA {
	return h.Colors[y*h.Size+x]
}

// ChunkSize returns the number of samples per side without the border.
func (h *HeightMap) ChunkSize() int {
	return max(h.Size-2*Border, 0)
}

// Interpolate bilinearly samples the height at a fractional bordered grid
// position. Positions outside the grid are clamped to its edge.
func (h *HeightMap) Interpolate(fx, fy float32) float32 {
	if h.Size == 0 {
		return 0
	}
	if h.Size == 1 {
		return h.Heights[0]
	}

	x0 := clampi(int(fx), 0, h.Size-2)
	y0 := clampi(int(fy), 0, h.Size-2)
	tx := clampf(fx-float32(x0), 0, 1)
	ty := clampf(fy-float32(y0), 0, 1)

	top := h.At(x0, y0)*(1-tx) + h.At(x0+1, y0)*tx
	bottom := h.At(x0, y0+1)*(1-tx) + h.At(x0+1, y0+1)*tx
	return top*(1-ty) + bottom*ty
}

func clampf(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampi(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
