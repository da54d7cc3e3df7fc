package terrain

import (
	"github.com/Faultbox/midgard-terrain/pkg/math"
)

// HeightCurve reshapes a normalized height before it is scaled.
// Implementations must be safe for concurrent use.
type HeightCurve interface {
	Evaluate(t float32) float32
}

// VertexRef points at either a drawable vertex or a border vertex.
type VertexRef struct {
	Border bool
	Index  int
}

// LODStride returns the sample step used at level of detail lod.
func LODStride(lod int) int {
	lod = clampi(lod, 0, MaxLOD)
	if lod == 0 {
		return 1
	}
	return lod * 2
}

// VerticesPerSide returns how many drawable vertices a chunk of chunkSize
// samples has along one side at lod.
func VerticesPerSide(chunkSize, lod int) int {
	if chunkSize <= 1 {
		return max(chunkSize, 0)
	}
	stride := LODStride(lod)
	return (chunkSize-2)/stride + 2
}

// meshData is the full tessellation including the border ring.
type meshData struct {
	positions []math.Vec3
	uvs       [][2]float32
	normals   []math.Vec3
	triangles []uint32

	borderPositions []math.Vec3
	borderTriangles []VertexRef

	// edgeNormals replace the accumulated normal of drawable vertices on the
	// chunk edge when lod > 0.
	edgeNormals map[int]math.Vec3
}

func (md *meshData) position(r VertexRef) math.Vec3 {
	if r.Border {
		return md.borderPositions[r.Index]
	}
	return md.positions[r.Index]
}

// Tessellate converts a bordered height map into a drawable mesh.
//
// lod selects the sample stride (1 at lod 0, otherwise 2*lod). Heights are
// mapped through curve (nil means identity) and scaled by multiplier. The
// mesh is centred on the origin with +Z pointing at the first grid row.
// Border samples take part in normal computation so that neighbouring chunks
// shade identically along the shared edge, but never reach the result. Above
// lod 0 the quads next to the edge are uneven, so edge vertices take their
// normal from the unit-spaced samples on both sides of the edge instead.
//
// With flatShading every triangle gets its own three vertices and face normal.
func Tessellate(hm *HeightMap, multiplier float32, curve HeightCurve, lod int, flatShading bool) *Mesh {
	lod = clampi(lod, 0, MaxLOD)
	md := buildMeshData(hm, multiplier, curve, lod)

	var mesh *Mesh
	if flatShading {
		mesh = md.flatShaded()
	} else {
		md.computeNormals()
		mesh = md.smoothShaded()
	}
	mesh.LOD = lod
	mesh.FlatShaded = flatShading
	return mesh
}

// axisCoords lists the bordered grid indices sampled along one axis: the
// border sample, every stride-th drawable sample, the last drawable sample,
// and the far border sample.
func axisCoords(size, stride int) []int {
	last := size - 1 - Border
	coords := []int{0}
	for i := Border; i < last; i += stride {
		coords = append(coords, i)
	}
	if last >= Border {
		coords = append(coords, last)
	}
	return append(coords, size-1)
}

func buildMeshData(hm *HeightMap, multiplier float32, curve HeightCurve, lod int) *meshData {
	md := &meshData{}
	chunkSize := hm.ChunkSize()
	if chunkSize == 0 {
		return md
	}

	axis := axisCoords(hm.Size, LODStride(lod))
	n := len(axis)
	last := hm.Size - 1 - Border

	height := func(x, y int) float32 {
		h := hm.At(x, y)
		if curve != nil {
			h = curve.Evaluate(h)
		}
		return h * multiplier
	}

	topLeftX := -float32(chunkSize-1) / 2
	topLeftZ := float32(chunkSize-1) / 2
	span := float32(max(chunkSize-1, 1))

	refs := make([]VertexRef, n*n)
	for yi, y := range axis {
		for xi, x := range axis {
			pos := math.Vec3{
				X: topLeftX + float32(x-Border),
				Y: height(x, y),
				Z: topLeftZ - float32(y-Border),
			}

			border := xi == 0 || yi == 0 || xi == n-1 || yi == n-1
			if border {
				refs[yi*n+xi] = VertexRef{Border: true, Index: len(md.borderPositions)}
				md.borderPositions = append(md.borderPositions, pos)
				continue
			}

			if lod > 0 && (x == Border || y == Border || x == last || y == last) {
				if md.edgeNormals == nil {
					md.edgeNormals = make(map[int]math.Vec3)
				}
				md.edgeNormals[len(md.positions)] = gridNormal(height, x, y)
			}

			refs[yi*n+xi] = VertexRef{Index: len(md.positions)}
			md.positions = append(md.positions, pos)
			md.uvs = append(md.uvs, [2]float32{
				float32(x-Border) / span,
				float32(y-Border) / span,
			})
		}
	}

	for yi := 0; yi < n-1; yi++ {
		for xi := 0; xi < n-1; xi++ {
			a := refs[yi*n+xi]
			b := refs[yi*n+xi+1]
			c := refs[(yi+1)*n+xi]
			d := refs[(yi+1)*n+xi+1]
			md.addTriangle(a, d, c)
			md.addTriangle(d, a, b)
		}
	}
	return md
}

// gridNormal is the central-difference normal at sample (x, y). Samples are
// one unit apart; rows run towards -Z.
func gridNormal(height func(x, y int) float32, x, y int) math.Vec3 {
	dx := height(x+1, y) - height(x-1, y)
	dy := height(x, y+1) - height(x, y-1)
	return math.Vec3{X: -dx, Y: 2, Z: dy}.Normalize()
}

func (md *meshData) addTriangle(a, b, c VertexRef) {
	if a.Border || b.Border || c.Border {
		md.borderTriangles = append(md.borderTriangles, a, b, c)
		return
	}
	md.triangles = append(md.triangles, uint32(a.Index), uint32(b.Index), uint32(c.Index))
}

// surfaceNormal returns the unnormalized normal of triangle (a, b, c). Its
// length is twice the triangle's area, which weights the vertex average.
func surfaceNormal(a, b, c math.Vec3) math.Vec3 {
	return b.Sub(a).Cross(c.Sub(a))
}

func (md *meshData) computeNormals() {
	md.normals = make([]math.Vec3, len(md.positions))

	for i := 0; i+2 < len(md.triangles); i += 3 {
		ia, ib, ic := md.triangles[i], md.triangles[i+1], md.triangles[i+2]
		n := surfaceNormal(md.positions[ia], md.positions[ib], md.positions[ic])
		md.normals[ia] = md.normals[ia].Add(n)
		md.normals[ib] = md.normals[ib].Add(n)
		md.normals[ic] = md.normals[ic].Add(n)
	}

	for i := 0; i+2 < len(md.borderTriangles); i += 3 {
		tri := md.borderTriangles[i : i+3]
		n := surfaceNormal(md.position(tri[0]), md.position(tri[1]), md.position(tri[2]))
		for _, r := range tri {
			if !r.Border {
				md.normals[r.Index] = md.normals[r.Index].Add(n)
			}
		}
	}

	for i, n := range md.normals {
		md.normals[i] = n.Normalize()
	}
	for i, n := range md.edgeNormals {
		md.normals[i] = n
	}
}

func (md *meshData) smoothShaded() *Mesh {
	mesh := &Mesh{
		Vertices: make([]Vertex, len(md.positions)),
		Indices:  make([]uint32, len(md.triangles)),
		Bounds:   emptyBounds(),
	}
	for i, p := range md.positions {
		mesh.Vertices[i] = Vertex{
			Position: p.Array(),
			Normal:   md.normals[i].Array(),
			TexCoord: md.uvs[i],
		}
		updateBounds(&mesh.Bounds, mesh.Vertices[i].Position)
	}
	copy(mesh.Indices, md.triangles)
	return mesh
}

func (md *meshData) flatShaded() *Mesh {
	mesh := &Mesh{
		Vertices: make([]Vertex, 0, len(md.triangles)),
		Indices:  make([]uint32, len(md.triangles)),
		Bounds:   emptyBounds(),
	}
	for i := 0; i+2 < len(md.triangles); i += 3 {
		tri := md.triangles[i : i+3]
		normal := surfaceNormal(md.positions[tri[0]], md.positions[tri[1]], md.positions[tri[2]]).Normalize()
		for k, idx := range tri {
			v := Vertex{
				Position: md.positions[idx].Array(),
				Normal:   normal.Array(),
				TexCoord: md.uvs[idx],
			}
			mesh.Indices[i+k] = uint32(len(mesh.Vertices))
			mesh.Vertices = append(mesh.Vertices, v)
			updateBounds(&mesh.Bounds, v.Position)
		}
	}
	return mesh
}

func emptyBounds() Bounds {
	return Bounds{
		Min: [3]float32{1e10, 1e10, 1e10},
		Max: [3]float32{-1e10, -1e10, -1e10},
	}
}

func updateBounds(b *Bounds, p [3]float32) {
	for i := range 3 {
		b.Min[i] = min(b.Min[i], p[i])
		b.Max[i] = max(b.Max[i], p[i])
	}
}
