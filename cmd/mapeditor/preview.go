package main

import (
	"fmt"
	"image"
	gomath "math"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/midgard-terrain/internal/engine/camera"
	"github.com/Faultbox/midgard-terrain/internal/engine/framebuffer"
	"github.com/Faultbox/midgard-terrain/internal/engine/renderer"
	"github.com/Faultbox/midgard-terrain/internal/engine/scene"
	"github.com/Faultbox/midgard-terrain/internal/engine/terrain"
	"github.com/Faultbox/midgard-terrain/internal/engine/ui"
	"github.com/Faultbox/midgard-terrain/internal/game/mapgen"
	"github.com/Faultbox/midgard-terrain/pkg/math"
)

const previewFOV = float32(45 * gomath.Pi / 180)

// previewDisplay shows generator output inside the editor. Flat maps go
// straight to an ImGui texture; meshes are rendered into a framebuffer
// with an orbit camera.
type previewDisplay struct {
	image ui.ImageTexture

	scene  *scene.Scene
	node   *scene.ChunkNode
	mesh   *terrain.Mesh
	fb     *framebuffer.Framebuffer
	orbit  *camera.OrbitCamera
	lastMP imgui.Vec2
}

func newPreviewDisplay() (*previewDisplay, error) {
	sc, err := scene.New(scene.Config{})
	if err != nil {
		return nil, err
	}
	fb, err := framebuffer.New(512, 512)
	if err != nil {
		sc.Destroy()
		return nil, err
	}
	return &previewDisplay{
		scene: sc,
		node:  sc.SpawnChunk(math.Vec3{}, 1),
		fb:    fb,
		orbit: camera.NewOrbitCamera(),
	}, nil
}

// DrawTexture implements mapgen.Display.
func (p *previewDisplay) DrawTexture(img *image.RGBA) {
	p.image.Set(img)
}

// DrawMesh implements mapgen.Display.
func (p *previewDisplay) DrawMesh(mesh *terrain.Mesh, img *image.RGBA) {
	// Old uploads are never shown again.
	p.node.ClearMeshes()
	p.node.SetMesh(mesh)
	p.node.SetTexture(img)
	p.node.SetVisible(true)

	refit := p.mesh == nil || p.mesh.Bounds != mesh.Bounds
	p.mesh = mesh
	if refit {
		p.orbit.FitToBounds(mesh.Bounds.Min, mesh.Bounds.Max)
	}
	p.image.Set(img)
}

// Draw shows the preview for mode in the current ImGui window.
func (p *previewDisplay) Draw(mode mapgen.DrawMode) {
	if mode != mapgen.DrawMesh {
		if p.image.Width == 0 {
			imgui.TextDisabled("Nothing generated yet")
			return
		}
		p.image.Draw()
		return
	}
	if p.mesh == nil {
		imgui.TextDisabled("Nothing generated yet")
		return
	}

	avail := imgui.ContentRegionAvail()
	w, h := int32(max(avail.X, 1)), int32(max(avail.Y-24, 1))
	if fw, fh := p.fb.Size(); fw != w || fh != h {
		p.fb.Resize(w, h)
	}
	p.renderMesh(float32(w) / float32(h))

	ui.Image(ui.GLTexture(p.fb.ColorTexture()), int(w), int(h), true)
	p.handleOrbit()

	imgui.TextDisabled(fmt.Sprintf("(Drag to rotate, scroll to zoom) LOD %d, %d triangles",
		p.mesh.LOD, p.mesh.TriangleCount()))
}

func (p *previewDisplay) renderMesh(aspect float32) {
	restore := p.fb.Bind()
	defer restore()

	sky := renderer.SkyColor
	p.fb.Clear(sky[0], sky[1], sky[2], 1)

	gl.Enable(gl.DEPTH_TEST)
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)

	proj := math.Perspective(previewFOV, aspect, 1, p.orbit.MaxDistance*4)
	p.scene.Render(proj.Mul(p.orbit.ViewMatrix()), p.orbit.Position())

	// ImGui draws with its own state and expects these off.
	gl.Disable(gl.CULL_FACE)
	gl.Disable(gl.DEPTH_TEST)
}

func (p *previewDisplay) handleOrbit() {
	mousePos := imgui.MousePos()
	if imgui.IsItemHovered() {
		if imgui.IsMouseDragging(imgui.MouseButtonLeft) {
			p.orbit.HandleDrag(mousePos.X-p.lastMP.X, mousePos.Y-p.lastMP.Y)
		}
		if wheel := imgui.CurrentIO().MouseWheel(); wheel != 0 {
			p.orbit.HandleZoom(wheel)
		}
	}
	p.lastMP = mousePos
}

// Snapshot returns the last rendered mesh preview, or nil before any mesh.
func (p *previewDisplay) Snapshot() *image.RGBA {
	if p.mesh == nil {
		return nil
	}
	return p.fb.Snapshot()
}

// Summary describes what the preview currently holds.
func (p *previewDisplay) Summary() string {
	if p.mesh != nil {
		st := p.scene.Stats()
		return fmt.Sprintf("%dx%d px, %d triangles drawn", p.image.Width, p.image.Height, st.Triangles)
	}
	return fmt.Sprintf("%dx%d px", p.image.Width, p.image.Height)
}

// Destroy releases GPU resources.
func (p *previewDisplay) Destroy() {
	p.image.Release()
	if p.fb != nil {
		p.fb.Destroy()
	}
	if p.scene != nil {
		p.scene.Destroy()
	}
}
