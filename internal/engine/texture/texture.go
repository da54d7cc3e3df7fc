// Package texture uploads images to OpenGL textures.
package texture

import (
	"image"
	"image/draw"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Filter selects how a texture is sampled.
type Filter int

const (
	// Nearest keeps every texel sharp. Chunk colour maps use it so region
	// boundaries stay crisp.
	Nearest Filter = iota
	Linear
)

func (f Filter) gl() int32 {
	if f == Linear {
		return gl.LINEAR
	}
	return gl.NEAREST
}

// Upload creates a clamped 2D texture from img and returns its id.
func Upload(img *image.RGBA, filter Filter) uint32 {
	var id uint32
	gl.GenTextures(1, &id)
	gl.BindTexture(gl.TEXTURE_2D, id)

	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, filter.gl())
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, filter.gl())
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)

	Update(id, img)
	return id
}

// Update replaces the contents of texture id with img.
func Update(id uint32, img *image.RGBA) {
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	if w == 0 || h == 0 {
		return
	}
	img = Tight(img)

	gl.BindTexture(gl.TEXTURE_2D, id)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(w), int32(h),
		0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
}

// Delete releases a texture. A zero id is ignored.
func Delete(id uint32) {
	if id != 0 {
		gl.DeleteTextures(1, &id)
	}
}

// Tight returns img itself when its pixels are contiguous and start at the
// origin, otherwise a packed copy.
func Tight(img *image.RGBA) *image.RGBA {
	b := img.Bounds()
	if b.Min == (image.Point{}) && img.Stride == 4*b.Dx() {
		return img
	}
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), img, b.Min, draw.Src)
	return out
}

// ToRGBA converts any image to a packed *image.RGBA.
func ToRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok {
		return Tight(rgba)
	}
	b := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), img, b.Min, draw.Src)
	return out
}

// FlipVertical returns a copy of img with its rows reversed. OpenGL reads
// pixels bottom row first.
func FlipVertical(img *image.RGBA) *image.RGBA {
	img = Tight(img)
	b := img.Bounds()
	out := image.NewRGBA(b)
	for y := 0; y < b.Dy(); y++ {
		src := img.Pix[y*img.Stride : (y+1)*img.Stride]
		dst := out.Pix[(b.Dy()-1-y)*out.Stride:]
		copy(dst, src)
	}
	return out
}
