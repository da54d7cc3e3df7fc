// Package game implements the endless terrain viewer loop.
package game

import (
	"fmt"
	gomath "math"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-terrain/internal/config"
	"github.com/Faultbox/midgard-terrain/internal/engine/camera"
	"github.com/Faultbox/midgard-terrain/internal/engine/debug"
	"github.com/Faultbox/midgard-terrain/internal/engine/input"
	"github.com/Faultbox/midgard-terrain/internal/engine/renderer"
	"github.com/Faultbox/midgard-terrain/internal/engine/scene"
	"github.com/Faultbox/midgard-terrain/internal/engine/window"
	"github.com/Faultbox/midgard-terrain/internal/game/mapgen"
	"github.com/Faultbox/midgard-terrain/internal/game/world"
	"github.com/Faultbox/midgard-terrain/internal/logger"
	"github.com/Faultbox/midgard-terrain/pkg/math"
)

const title = "Midgard Terrain"

// chunkScene adapts the GL scene to the streamer's Scene interface.
type chunkScene struct {
	scene *scene.Scene
}

func (c chunkScene) SpawnChunk(_ world.ChunkKey, position math.Vec3, scale float32) world.ChunkObject {
	return c.scene.SpawnChunk(position, scale)
}

// Game is the viewer: a fly camera over terrain streamed around it.
type Game struct {
	cfg     *config.Config
	log     *zap.Logger
	running bool

	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	scene    *scene.Scene
	camera   *camera.FlyCamera

	coordinator *mapgen.Coordinator
	streamer    *world.Streamer

	// Chunk outline overlay, toggled with F3.
	overlay     *debug.LineRenderer
	showChunks  bool
	scale       float32
	chunkHeight float32

	fog             bool
	fogNear, fogFar float32

	screenshots    *debug.ScreenshotCapture
	wantScreenshot bool

	mouseCaptured bool
}

// New creates the window, GL resources and terrain pipeline for cfg.
func New(cfg *config.Config) (*Game, error) {
	g := &Game{
		cfg: cfg,
		log: logger.Named("game"),
	}

	settings, notes := mapgen.SettingsFromConfig(cfg)
	for _, n := range notes {
		g.log.Warn("terrain settings adjusted", zap.String("note", n))
	}

	var err error
	g.window, err = window.New(window.Config{
		Title:      title,
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	w, h := g.window.Size()
	g.renderer, err = renderer.New(renderer.Config{
		Width:     w,
		Height:    h,
		Wireframe: cfg.Graphics.Wireframe,
	})
	if err != nil {
		g.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	opts := world.OptionsFromConfig(cfg.Streaming, settings)
	viewDistance := opts.Levels[len(opts.Levels)-1].VisibleDistance * opts.Scale

	g.fog, g.fogNear, g.fogFar = true, viewDistance*0.6, viewDistance
	g.scene, err = scene.New(scene.Config{
		FogEnabled: g.fog,
		FogNear:    g.fogNear,
		FogFar:     g.fogFar,
		FogColor:   renderer.SkyColor,
	})
	if err != nil {
		g.Close()
		return nil, fmt.Errorf("failed to create scene: %w", err)
	}

	g.overlay, err = debug.NewLineRenderer()
	if err != nil {
		g.Close()
		return nil, fmt.Errorf("failed to create overlay: %w", err)
	}
	g.scale = opts.Scale
	g.chunkHeight = settings.HeightMultiplier * opts.Scale
	g.screenshots = debug.NewScreenshotCapture(cfg.Editor.ExportDir, "terrain")

	g.coordinator = mapgen.NewCoordinator(settings, logger.Named("mapgen"))
	g.streamer = world.NewStreamer(opts, g.coordinator, chunkScene{g.scene}, logger.Named("world"))

	g.camera = camera.NewFlyCamera(math.Vec3{Y: settings.HeightMultiplier*opts.Scale + 20})
	g.camera.Speed = cfg.Graphics.MoveSpeed
	g.camera.FOV = cfg.Graphics.FOV * gomath.Pi / 180
	g.camera.Far = viewDistance * 1.5

	g.input = input.New()

	g.log.Info("viewer initialized",
		zap.Int64("seed", settings.Terrain.Noise.Seed),
		zap.Int("chunk_size", settings.Terrain.ChunkSize),
		zap.Float32("view_distance", viewDistance),
		zap.Int("chunks_in_view", g.streamer.ChunksInView()),
	)
	return g, nil
}

// Run starts the main loop and returns when the window is closed.
func (g *Game) Run() error {
	g.running = true
	g.setMouseCaptured(true)

	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()

	g.log.Info("starting viewer loop")

	for g.running {
		now := time.Now()
		dt := float32(now.Sub(lastTime).Seconds())
		lastTime = now

		if g.input.Update() {
			g.running = false
			break
		}
		g.handleEvents()

		g.update(dt)
		g.render()
		g.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			g.updateTitle(frameCount)
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

func (g *Game) handleEvents() {
	for _, event := range g.input.Events() {
		switch event.Type {
		case input.EventWindowResize:
			w, h := g.window.Size()
			g.renderer.Resize(w, h)
		case input.EventKeyDown:
			switch event.Key {
			case sdl.SCANCODE_ESCAPE:
				g.running = false
			case sdl.SCANCODE_TAB:
				g.setMouseCaptured(!g.mouseCaptured)
			case sdl.SCANCODE_F1:
				g.renderer.SetWireframe(!g.renderer.Wireframe())
			case sdl.SCANCODE_F2:
				g.scene.UseTextures = !g.scene.UseTextures
			case sdl.SCANCODE_F3:
				g.showChunks = !g.showChunks
			case sdl.SCANCODE_F4:
				g.fog = !g.fog
				g.scene.SetFog(g.fog, g.fogNear, g.fogFar)
			case sdl.SCANCODE_F12:
				g.wantScreenshot = true
			}
		}
	}
}

func (g *Game) setMouseCaptured(captured bool) {
	g.mouseCaptured = captured
	g.window.SetMouseCaptured(captured)
}

// update moves the camera, streams chunks around it and applies finished
// generation results.
func (g *Game) update(dt float32) {
	if g.mouseCaptured {
		g.camera.HandleLook(g.input.MouseDelta())
	}
	g.camera.HandleMovement(
		g.input.Axis(sdl.SCANCODE_S, sdl.SCANCODE_W),
		g.input.Axis(sdl.SCANCODE_A, sdl.SCANCODE_D),
		g.input.Axis(sdl.SCANCODE_LCTRL, sdl.SCANCODE_SPACE),
		g.input.IsKeyHeld(sdl.SCANCODE_LSHIFT),
		dt,
	)

	viewer := g.camera.Position.XZ()
	if ground, ok := g.streamer.GroundHeight(viewer); ok {
		g.camera.FollowGround(ground)
	}

	g.streamer.Update(viewer)
	g.coordinator.Drain()
}

func (g *Game) render() {
	g.renderer.Begin()

	proj := g.camera.ProjectionMatrix(g.window.AspectRatio())
	viewProj := proj.Mul(g.camera.ViewMatrix())
	g.scene.Render(viewProj, g.camera.Position)

	if g.showChunks {
		viewer := g.camera.Position.XZ().Scale(1 / g.scale)
		g.overlay.Set(debug.ChunkGridLines(g.chunkOutlines(), viewer, g.scale, g.chunkHeight))
		g.overlay.Render(viewProj)
	}

	g.renderer.End()

	if g.wantScreenshot {
		g.wantScreenshot = false
		w, h := g.window.Size()
		path, err := g.screenshots.Capture(w, h)
		if err != nil {
			g.log.Error("screenshot failed", zap.Error(err))
			return
		}
		g.log.Info("screenshot saved", zap.String("path", path))
	}
}

// chunkOutlines describes the visible chunks for the overlay.
func (g *Game) chunkOutlines() []debug.ChunkOutline {
	chunks := g.streamer.VisibleChunks()
	out := make([]debug.ChunkOutline, len(chunks))
	for i, c := range chunks {
		out[i] = debug.ChunkOutline{
			Bounds:  c.Bounds(),
			Level:   c.LODIndex(),
			Visible: c.Visible(),
		}
	}
	return out
}

func (g *Game) updateTitle(fps int) {
	st := g.coordinator.Stats()
	rs := g.scene.Stats()
	g.window.SetTitle(fmt.Sprintf("%s | %d fps | chunks %d/%d | pending %d | %d tris",
		title, fps, g.streamer.VisibleCount(), g.streamer.ChunkCount(), st.Pending(), rs.Triangles))

	g.log.Debug("frame stats",
		zap.Int("fps", fps),
		zap.Int("chunks", g.streamer.ChunkCount()),
		zap.Int("visible", g.streamer.VisibleCount()),
		zap.Int("drawn", rs.Drawn),
		zap.Int64("failed", st.Failed),
		zap.Int("recomputations", g.streamer.Recomputations()),
	)
}

// Close releases everything New created.
func (g *Game) Close() {
	g.log.Info("closing viewer")

	if g.coordinator != nil {
		g.coordinator.Close()
	}
	if g.overlay != nil {
		g.overlay.Destroy()
	}
	if g.scene != nil {
		g.scene.Destroy()
	}
	if g.renderer != nil {
		g.renderer.Close()
	}
	if g.window != nil {
		g.window.Close()
	}
}
