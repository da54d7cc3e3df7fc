package terrain

import (
	gomath "math"
	"testing"

	"github.com/Faultbox/midgard-terrain/pkg/math"
	"github.com/Faultbox/midgard-terrain/pkg/noise"
)

// 121 samples per side: 120 is divisible by every LOD stride.
const testChunkSize = 121

func flatHeightMap(chunkSize int, h float32) *HeightMap {
	size := chunkSize + 2*Border
	hm := &HeightMap{Size: size, Heights: make([]float32, size*size)}
	for i := range hm.Heights {
		hm.Heights[i] = h
	}
	return hm
}

func rampHeightMap(chunkSize int) *HeightMap {
	size := chunkSize + 2*Border
	hm := &HeightMap{Size: size, Heights: make([]float32, size*size)}
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			hm.Heights[y*size+x] = float32(x*x+y) / float32(size*size+size)
		}
	}
	return hm
}

func TestVerticesPerSide(t *testing.T) {
	for lod := 0; lod <= MaxLOD; lod++ {
		mesh := Tessellate(flatHeightMap(testChunkSize, 0), 1, nil, lod, false)
		perSide := VerticesPerSide(testChunkSize, lod)

		want := testChunkSize
		if lod > 0 {
			want = (testChunkSize-1)/(2*lod) + 1
		}
		if perSide != want {
			t.Errorf("VerticesPerSide(%d, %d) = %d, want %d", testChunkSize, lod, perSide, want)
		}
		if got := len(mesh.Vertices); got != want*want {
			t.Errorf("lod %d: len(Vertices) = %d, want %d", lod, got, want*want)
		}
		if got := mesh.TriangleCount(); got != 2*(want-1)*(want-1) {
			t.Errorf("lod %d: TriangleCount() = %d, want %d", lod, got, 2*(want-1)*(want-1))
		}
	}
}

func TestVerticesPerSideUnevenStride(t *testing.T) {
	// 24 is not a multiple of 10; the last column is still emitted.
	const chunkSize = 25
	mesh := Tessellate(flatHeightMap(chunkSize, 0), 1, nil, 5, false)
	perSide := VerticesPerSide(chunkSize, 5)
	if perSide != 4 {
		t.Fatalf("VerticesPerSide(25, 5) = %d, want 4", perSide)
	}
	if len(mesh.Vertices) != perSide*perSide {
		t.Errorf("len(Vertices) = %d, want %d", len(mesh.Vertices), perSide*perSide)
	}
	half := float32(chunkSize-1) / 2
	if mesh.Bounds.Min[0] != -half || mesh.Bounds.Max[0] != half {
		t.Errorf("Bounds X = [%v, %v], want [%v, %v]", mesh.Bounds.Min[0], mesh.Bounds.Max[0], -half, half)
	}
}

func TestWindingFacesUp(t *testing.T) {
	for _, lod := range []int{0, 1, 3} {
		hm := flatHeightMap(testChunkSize, 0)
		md := buildMeshData(hm, 1, nil, lod)

		check := func(a, b, c math.Vec3) {
			n := surfaceNormal(a, b, c)
			if n.Y <= 0 {
				t.Fatalf("lod %d: triangle normal %v does not face +Y", lod, n)
			}
		}
		for i := 0; i < len(md.triangles); i += 3 {
			check(md.positions[md.triangles[i]], md.positions[md.triangles[i+1]], md.positions[md.triangles[i+2]])
		}
		for i := 0; i < len(md.borderTriangles); i += 3 {
			check(md.position(md.borderTriangles[i]), md.position(md.borderTriangles[i+1]), md.position(md.borderTriangles[i+2]))
		}
	}
}

func TestFlatInputNormalsPointUp(t *testing.T) {
	mesh := Tessellate(flatHeightMap(testChunkSize, 0.5), 10, nil, 0, false)
	for i, v := range mesh.Vertices {
		if v.Normal != [3]float32{0, 1, 0} {
			t.Fatalf("Vertices[%d].Normal = %v, want (0, 1, 0)", i, v.Normal)
		}
		if v.Position[1] != 5 {
			t.Fatalf("Vertices[%d].Position.Y = %v, want 5", i, v.Position[1])
		}
	}
}

func TestBorderVerticesExcluded(t *testing.T) {
	hm := rampHeightMap(testChunkSize)
	for _, lod := range []int{0, 2} {
		md := buildMeshData(hm, 1, nil, lod)
		n := VerticesPerSide(testChunkSize, lod) + 2
		if got, want := len(md.borderPositions), 4*(n-1); got != want {
			t.Errorf("lod %d: border vertices = %d, want %d", lod, got, want)
		}
		if len(md.borderTriangles) == 0 {
			t.Errorf("lod %d: no border triangles", lod)
		}

		mesh := Tessellate(hm, 1, nil, lod, false)
		half := float32(testChunkSize-1) / 2
		for i, v := range mesh.Vertices {
			if absf(v.Position[0]) > half || absf(v.Position[2]) > half {
				t.Fatalf("lod %d: Vertices[%d] = %v lies outside the drawable extent", lod, i, v.Position)
			}
		}
		for i, idx := range mesh.Indices {
			if int(idx) >= len(mesh.Vertices) {
				t.Fatalf("lod %d: Indices[%d] = %d out of range", lod, i, idx)
			}
		}
	}
}

func TestUVsSpanUnitSquare(t *testing.T) {
	mesh := Tessellate(flatHeightMap(testChunkSize, 0), 1, nil, 0, false)
	first := mesh.Vertices[0].TexCoord
	last := mesh.Vertices[len(mesh.Vertices)-1].TexCoord
	if first != [2]float32{0, 0} || last != [2]float32{1, 1} {
		t.Errorf("UV corners = %v, %v, want (0,0), (1,1)", first, last)
	}
}

func TestHeightCurveApplied(t *testing.T) {
	curve := math.NewCurve(
		math.Keyframe{Time: 0, Value: 0, InTangent: 0, OutTangent: 0},
		math.Keyframe{Time: 1, Value: 0, InTangent: 0, OutTangent: 0},
	)
	mesh := Tessellate(rampHeightMap(testChunkSize), 50, curve, 0, false)
	for i, v := range mesh.Vertices {
		if v.Position[1] != 0 {
			t.Fatalf("Vertices[%d].Y = %v, want 0 under a zero curve", i, v.Position[1])
		}
	}
}

func TestFlatShadingMatchesSmoothBounds(t *testing.T) {
	hm := rampHeightMap(testChunkSize)
	for _, lod := range []int{0, 1, 6} {
		smooth := Tessellate(hm, 20, nil, lod, false)
		flat := Tessellate(hm, 20, nil, lod, true)

		if smooth.Bounds != flat.Bounds {
			t.Errorf("lod %d: bounds differ: smooth %v, flat %v", lod, smooth.Bounds, flat.Bounds)
		}
		perSide := VerticesPerSide(testChunkSize, lod)
		if len(smooth.Vertices) != perSide*perSide {
			t.Errorf("lod %d: smooth vertices = %d, want %d", lod, len(smooth.Vertices), perSide*perSide)
		}
		if len(flat.Vertices) != 3*flat.TriangleCount() {
			t.Errorf("lod %d: flat vertices = %d, want %d", lod, len(flat.Vertices), 3*flat.TriangleCount())
		}
		if flat.TriangleCount() != smooth.TriangleCount() {
			t.Errorf("lod %d: triangle counts differ: %d vs %d", lod, flat.TriangleCount(), smooth.TriangleCount())
		}
		if !flat.FlatShaded || smooth.FlatShaded {
			t.Errorf("lod %d: FlatShaded flags = %v/%v", lod, flat.FlatShaded, smooth.FlatShaded)
		}
	}
}

func TestFlatShadingUsesFaceNormals(t *testing.T) {
	mesh := Tessellate(rampHeightMap(25), 30, nil, 0, true)
	for i := 0; i < len(mesh.Indices); i += 3 {
		n0 := mesh.Vertices[mesh.Indices[i]].Normal
		for k := 1; k < 3; k++ {
			if nk := mesh.Vertices[mesh.Indices[i+k]].Normal; nk != n0 {
				t.Fatalf("triangle %d: normals differ: %v vs %v", i/3, n0, nk)
			}
		}
	}
}

// Chunks built independently must agree on the heights and normals of the
// vertices along their shared edges, at every level of detail.
func TestAdjacentChunksShareEdgeNormals(t *testing.T) {
	settings := Settings{
		Noise: noise.Params{
			Seed: 9, Scale: 20, Octaves: 4, Persistence: 0.5, Lacunarity: 2,
			Mode: noise.NormalizeGlobal,
		},
		ChunkSize: 41,
		Regions:   DefaultRegions(),
	}
	b := NewBuilder(settings)
	step := float32(settings.ChunkSize - 1)

	centre := b.Build(math.Vec2{})
	east := b.Build(math.Vec2{X: step})
	north := b.Build(math.Vec2{Y: step})

	for lod := 0; lod <= MaxLOD; lod++ {
		c := Tessellate(centre, 40, nil, lod, false)
		e := Tessellate(east, 40, nil, lod, false)
		nm := Tessellate(north, 40, nil, lod, false)
		perSide := VerticesPerSide(settings.ChunkSize, lod)

		for i := 0; i < perSide; i++ {
			// centre's right column against east's left column
			assertSharedVertex(t, lod, "east", i,
				c.Vertices[i*perSide+perSide-1], e.Vertices[i*perSide], [3]float32{step, 0, 0})
			// centre's first row against north's last row
			assertSharedVertex(t, lod, "north", i,
				c.Vertices[i], nm.Vertices[(perSide-1)*perSide+i], [3]float32{0, 0, step})
		}
	}
}

// assertSharedVertex checks that a and b are the same point of two chunks
// whose local frames are offset apart.
func assertSharedVertex(t *testing.T, lod int, side string, i int, a, b Vertex, offset [3]float32) {
	t.Helper()
	if a.Position[1] != b.Position[1] {
		t.Fatalf("lod %d %s vertex %d: heights differ: %v vs %v", lod, side, i, a.Position[1], b.Position[1])
	}
	if a.Position[0]-b.Position[0] != offset[0] || a.Position[2]-b.Position[2] != offset[2] {
		t.Fatalf("lod %d %s vertex %d: positions %v and %v are not %v apart", lod, side, i, a.Position, b.Position, offset)
	}
	for k := range 3 {
		if gomath.Abs(float64(a.Normal[k]-b.Normal[k])) > 1e-5 {
			t.Fatalf("lod %d %s vertex %d: normals differ: %v vs %v", lod, side, i, a.Normal, b.Normal)
		}
	}
}

func TestEdgeNormalsOnPlane(t *testing.T) {
	size := testChunkSize + 2*Border
	hm := &HeightMap{Size: size, Heights: make([]float32, size*size)}
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			hm.Heights[y*size+x] = float32(x+2*y) / float32(3*size)
		}
	}

	for _, lod := range []int{1, 2, 5} {
		mesh := Tessellate(hm, 30, nil, lod, false)
		// the centre vertex is far from any edge
		perSide := VerticesPerSide(testChunkSize, lod)
		want := mesh.Vertices[(perSide/2)*perSide+perSide/2].Normal
		for i, v := range mesh.Vertices {
			for k := range 3 {
				if absf(v.Normal[k]-want[k]) > 1e-4 {
					t.Fatalf("lod %d: Vertices[%d].Normal = %v, want %v", lod, i, v.Normal, want)
				}
			}
		}
	}
}

func TestTessellateEmpty(t *testing.T) {
	mesh := Tessellate(&HeightMap{}, 1, nil, 0, false)
	if len(mesh.Vertices) != 0 || len(mesh.Indices) != 0 {
		t.Errorf("Tessellate(empty) = %d vertices, %d indices, want none", len(mesh.Vertices), len(mesh.Indices))
	}
}

func TestLODStride(t *testing.T) {
	tests := []struct{ lod, want int }{
		{-1, 1}, {0, 1}, {1, 2}, {3, 6}, {6, 12}, {9, 12},
	}
	for _, tt := range tests {
		if got := LODStride(tt.lod); got != tt.want {
			t.Errorf("LODStride(%d) = %d, want %d", tt.lod, got, tt.want)
		}
	}
}

func absf(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
