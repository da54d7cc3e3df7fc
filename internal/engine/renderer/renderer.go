// Package renderer owns frame-level OpenGL state.
package renderer

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-terrain/internal/logger"
)

// SkyColor is the clear colour of the viewer, also used as fog colour.
var SkyColor = [3]float32{0.62, 0.76, 0.9}

// Config holds renderer configuration.
type Config struct {
	Width     int
	Height    int
	Wireframe bool
}

// Renderer sets up OpenGL and frames each draw.
type Renderer struct {
	config Config
	log    *zap.Logger
}

// New initialises OpenGL. It must be called after the context is created.
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		config: cfg,
		log:    logger.Named("renderer"),
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	r.log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	// Terrain triangles are wound so their front faces point up.
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)
	gl.ClearColor(SkyColor[0], SkyColor[1], SkyColor[2], 1.0)

	r.SetWireframe(cfg.Wireframe)
	r.Resize(cfg.Width, cfg.Height)
	return r, nil
}

// Close logs renderer shutdown.
func (r *Renderer) Close() {
	r.log.Info("closing renderer")
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	r.log.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// SetWireframe toggles line rasterisation.
func (r *Renderer) SetWireframe(on bool) {
	r.config.Wireframe = on
	mode := uint32(gl.FILL)
	if on {
		mode = gl.LINE
	}
	gl.PolygonMode(gl.FRONT_AND_BACK, mode)
}

// Wireframe reports whether wireframe mode is on.
func (r *Renderer) Wireframe() bool {
	return r.config.Wireframe
}

// Begin starts a new frame.
func (r *Renderer) Begin() {
	gl.ClearColor(SkyColor[0], SkyColor[1], SkyColor[2], 1.0)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// End finishes the current frame.
func (r *Renderer) End() {}
