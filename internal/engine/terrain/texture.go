package terrain

import (
	"image"
	"image/color"

	"github.com/Faultbox/midgard-terrain/pkg/math"
	"github.com/Faultbox/midgard-terrain/pkg/noise"
)

// TextureFromColorMap copies a row-major colour grid into an image.
func TextureFromColorMap(colors []color.RGBA, width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetRGBA(x, y, colors[y*width+x])
		}
	}
	return img
}

// TextureFromHeightMap renders a [0, 1] grid as greyscale, black at 0 and
// white at 1.
func TextureFromHeightMap(g *noise.Grid) *image.RGBA {
	colors := make([]color.RGBA, len(g.Values))
	for i, v := range g.Values {
		colors[i] = grey(v)
	}
	return TextureFromColorMap(colors, g.Width, g.Height)
}

func grey(v float32) color.RGBA {
	l := uint8(math.Lerp(0, 255, v) + 0.5)
	return color.RGBA{l, l, l, 255}
}

// ColorTexture returns the region colours of the drawable area, border
// excluded. Pixel (0, 0) is the chunk's first drawable sample, which lines
// up with texture coordinate (0, 0) of a tessellated mesh.
func (h *HeightMap) ColorTexture() *image.RGBA {
	size := h.ChunkSize()
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			img.SetRGBA(x, y, h.ColorAt(x+Border, y+Border))
		}
	}
	return img
}

// HeightTexture returns the drawable heights as a greyscale image.
func (h *HeightMap) HeightTexture() *image.RGBA {
	size := h.ChunkSize()
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			img.SetRGBA(x, y, grey(h.At(x+Border, y+Border)))
		}
	}
	return img
}
