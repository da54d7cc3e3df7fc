// Package debug provides debug visualization utilities.
package debug

// LineVertex is one endpoint of a coloured debug line.
type LineVertex struct {
	X, Y, Z float32 // Position
	R, G, B float32 // Color
}

// BBoxWireframeVertexCount is the number of vertices for a bbox wireframe (12 edges × 2).
const BBoxWireframeVertexCount = 24

// GenerateBBoxWireframeVertices creates line vertices for a wireframe bounding box.
// Returns 24 vertices (12 edges × 2 endpoints), format: [x, y, z] per vertex.
// minX, minY, minZ, maxX, maxY, maxZ define the box corners in world space.
func GenerateBBoxWireframeVertices(minX, minY, minZ, maxX, maxY, maxZ float32) []float32 {
	return []float32{
		// Bottom face (4 edges)
		minX, minY, minZ, maxX, minY, minZ,
		maxX, minY, minZ, maxX, minY, maxZ,
		maxX, minY, maxZ, minX, minY, maxZ,
		minX, minY, maxZ, minX, minY, minZ,
		// Top face (4 edges)
		minX, maxY, minZ, maxX, maxY, minZ,
		maxX, maxY, minZ, maxX, maxY, maxZ,
		maxX, maxY, maxZ, minX, maxY, maxZ,
		minX, maxY, maxZ, minX, maxY, minZ,
		// Vertical edges (4 edges)
		minX, minY, minZ, minX, maxY, minZ,
		maxX, minY, minZ, maxX, maxY, minZ,
		maxX, minY, maxZ, maxX, maxY, maxZ,
		minX, minY, maxZ, minX, maxY, maxZ,
	}
}

// AppendBox appends a coloured wireframe box to dst. Inverted corners are
// swapped first.
func AppendBox(dst []LineVertex, bmin, bmax [3]float32, color [3]float32) []LineVertex {
	for i := range 3 {
		if bmin[i] > bmax[i] {
			bmin[i], bmax[i] = bmax[i], bmin[i]
		}
	}
	coords := GenerateBBoxWireframeVertices(bmin[0], bmin[1], bmin[2], bmax[0], bmax[1], bmax[2])
	for i := 0; i < len(coords); i += 3 {
		dst = append(dst, LineVertex{
			X: coords[i], Y: coords[i+1], Z: coords[i+2],
			R: color[0], G: color[1], B: color[2],
		})
	}
	return dst
}
