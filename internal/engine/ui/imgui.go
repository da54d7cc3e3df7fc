// Package ui provides ImGui-based user interface components.
package ui

import (
	"fmt"
	"image"

	"github.com/AllenDang/cimgui-go/backend"
	"github.com/AllenDang/cimgui-go/backend/sdlbackend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/midgard-terrain/internal/engine/texture"
)

// Backend wraps the ImGui SDL backend used by the map editor.
type Backend struct {
	backend backend.Backend[sdlbackend.SDLWindowFlags]
}

// NewBackend creates the backend window and initialises OpenGL.
func NewBackend(title string, width, height int) (*Backend, error) {
	b := &Backend{}

	var err error
	b.backend, err = backend.CreateBackend(sdlbackend.NewSDLBackend())
	if err != nil {
		return nil, fmt.Errorf("create backend: %w", err)
	}

	b.backend.SetBgColor(imgui.NewVec4(0.1, 0.1, 0.12, 1.0))
	b.backend.CreateWindow(title, width, height)

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("init opengl: %w", err)
	}

	return b, nil
}

// Run starts the main render loop.
func (b *Backend) Run(renderFunc func()) {
	b.backend.Run(renderFunc)
}

// SetWindowTitle updates the window title.
func (b *Backend) SetWindowTitle(title string) {
	b.backend.SetWindowTitle(title)
}

// Viewport returns the main viewport work area.
func Viewport() (posX, posY, width, height float32) {
	viewport := imgui.MainViewport()
	workPos := viewport.WorkPos()
	workSize := viewport.WorkSize()
	return workPos.X, workPos.Y, workSize.X, workSize.Y
}

// ImageTexture is a backend texture shown by ImGui.
type ImageTexture struct {
	tex           *backend.Texture
	Width, Height int
}

// Set replaces the texture contents with img.
func (t *ImageTexture) Set(img *image.RGBA) {
	t.Release()
	t.tex = backend.NewTextureFromRgba(texture.Tight(img))
	t.Width, t.Height = img.Bounds().Dx(), img.Bounds().Dy()
}

// Release frees the texture.
func (t *ImageTexture) Release() {
	if t.tex != nil {
		t.tex.Release()
		t.tex = nil
	}
}

// Draw shows the texture scaled to fit the available region.
func (t *ImageTexture) Draw() {
	if t.tex == nil {
		return
	}
	Image(t.tex.ID, t.Width, t.Height, false)
}

// GLTexture returns a reference to a raw OpenGL texture, such as a
// framebuffer colour attachment.
func GLTexture(id uint32) imgui.TextureRef {
	return *imgui.NewTextureRefTextureID(imgui.TextureID(id))
}

// Image draws a texture scaled to fit the available region, keeping its
// aspect ratio. flipV is needed for framebuffer textures.
func Image(ref imgui.TextureRef, width, height int, flipV bool) {
	if width == 0 || height == 0 {
		return
	}
	avail := imgui.ContentRegionAvail()
	w := avail.X
	h := w * float32(height) / float32(width)
	if avail.Y > 0 && h > avail.Y {
		h = avail.Y
		w = h * float32(width) / float32(height)
	}

	uv0, uv1 := imgui.NewVec2(0, 0), imgui.NewVec2(1, 1)
	if flipV {
		uv0, uv1 = imgui.NewVec2(0, 1), imgui.NewVec2(1, 0)
	}
	imgui.ImageWithBgV(
		ref,
		imgui.NewVec2(w, h),
		uv0,
		uv1,
		imgui.NewVec4(0.15, 0.15, 0.15, 1.0),
		imgui.NewVec4(1, 1, 1, 1),
	)
}

// IsKeyPressed checks if a key was pressed this frame.
func IsKeyPressed(key imgui.Key) bool {
	return imgui.IsKeyChordPressed(imgui.KeyChord(key))
}
