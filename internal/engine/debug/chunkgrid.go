package debug

import (
	"github.com/Faultbox/midgard-terrain/pkg/math"
)

// ChunkOutline describes one streamed chunk for the overlay.
type ChunkOutline struct {
	Bounds  math.Rect // terrain plane, unscaled
	Level   int       // detail level index, -1 before a mesh is shown
	Visible bool
}

// lodColors tints outlines by detail level, finest first.
var lodColors = [][3]float32{
	{0.2, 0.9, 0.2},
	{0.9, 0.9, 0.2},
	{0.9, 0.6, 0.1},
	{0.9, 0.3, 0.1},
	{0.8, 0.1, 0.6},
	{0.5, 0.2, 0.9},
	{0.2, 0.4, 0.9},
}

var (
	pendingColor = [3]float32{0.6, 0.6, 0.6}
	hiddenColor  = [3]float32{0.3, 0.3, 0.35}
	viewerColor  = [3]float32{1, 1, 1}
)

// OutlineColor returns the overlay colour of a chunk.
func OutlineColor(c ChunkOutline) [3]float32 {
	switch {
	case !c.Visible:
		return hiddenColor
	case c.Level < 0:
		return pendingColor
	default:
		return lodColors[min(c.Level, len(lodColors)-1)]
	}
}

// ChunkGridLines builds boxes around chunks in world space. The terrain
// plane's Y axis maps to world Z, everything is multiplied by scale and
// the boxes span height vertically. The chunk under viewer, given on the
// unscaled terrain plane, is drawn in white.
func ChunkGridLines(chunks []ChunkOutline, viewer math.Vec2, scale, height float32) []LineVertex {
	vertices := make([]LineVertex, 0, len(chunks)*BBoxWireframeVertexCount)
	marked := false
	for _, c := range chunks {
		b := c.Bounds
		color := OutlineColor(c)
		// neighbours share edges; only the first match is marked
		if !marked && b.Contains(viewer) {
			color = viewerColor
			marked = true
		}
		vertices = AppendBox(vertices,
			[3]float32{b.Min.X * scale, 0, b.Min.Y * scale},
			[3]float32{b.Max.X * scale, height, b.Max.Y * scale},
			color,
		)
	}
	return vertices
}
