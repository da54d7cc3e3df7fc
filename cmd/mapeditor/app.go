package main

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/sqweek/dialog"
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-terrain/internal/config"
	"github.com/Faultbox/midgard-terrain/internal/engine/ui"
	"github.com/Faultbox/midgard-terrain/internal/export"
	"github.com/Faultbox/midgard-terrain/internal/game/mapgen"
	"github.com/Faultbox/midgard-terrain/internal/logger"
)

const editorTitle = "Midgard Map Editor"

const (
	controlsPanelWidth = float32(380)
	statusBarHeight    = float32(30)
)

type dialogKind int

const (
	dialogExport dialogKind = iota
	dialogSaveConfig
	dialogLoadConfig
)

type dialogResult struct {
	kind dialogKind
	path string
}

// App is the map editor: a settings panel on the left and the generated
// preview on the right.
type App struct {
	backend *ui.Backend
	cfg     *config.Config
	log     *zap.Logger

	mode    mapgen.DrawMode
	gen     *mapgen.Generator
	preview *previewDisplay

	// dirty is set when a setting changed and the preview is stale.
	dirty bool

	seedText string

	// Native dialogs run on their own goroutine; results are applied on
	// the main thread.
	pendingMu sync.Mutex
	pending   []dialogResult

	statusMsg  string
	statusTime time.Time
}

// NewApp creates the editor window and the first preview.
func NewApp(cfg *config.Config) (*App, error) {
	app := &App{
		cfg: cfg,
		log: logger.Named("mapeditor"),
	}

	var err error
	app.backend, err = ui.NewBackend(editorTitle, cfg.Graphics.Width, cfg.Graphics.Height)
	if err != nil {
		return nil, fmt.Errorf("create backend: %w", err)
	}

	app.preview, err = newPreviewDisplay()
	if err != nil {
		return nil, fmt.Errorf("create preview: %w", err)
	}

	app.syncFromConfig()
	app.regenerate()
	return app, nil
}

// Close releases GPU resources.
func (app *App) Close() {
	if app.preview != nil {
		app.preview.Destroy()
		app.preview = nil
	}
}

// Run starts the main application loop.
func (app *App) Run() {
	app.backend.Run(app.render)
}

// syncFromConfig refreshes UI state that mirrors the config.
func (app *App) syncFromConfig() {
	for _, note := range app.cfg.Sanitize() {
		app.log.Warn("config adjusted", zap.String("note", note))
	}
	mode, err := mapgen.ParseDrawMode(app.cfg.Editor.DrawMode)
	if err != nil {
		app.log.Warn("bad draw mode", zap.Error(err))
	}
	app.mode = mode
	app.seedText = fmt.Sprint(app.cfg.Terrain.Noise.Seed)
}

// regenerate rebuilds the generator from the config and redraws the
// preview.
func (app *App) regenerate() {
	for _, note := range app.cfg.Sanitize() {
		app.log.Warn("config adjusted", zap.String("note", note))
	}
	settings, notes := mapgen.SettingsFromConfig(app.cfg)
	for _, note := range notes {
		app.log.Warn("terrain settings adjusted", zap.String("note", note))
	}

	start := time.Now()
	app.gen = mapgen.NewGenerator(settings, app.log)
	app.gen.DrawMapInEditor(app.preview, app.mode)
	app.dirty = false

	app.log.Debug("preview generated",
		zap.Stringer("mode", app.mode),
		zap.Duration("took", time.Since(start)))
}

// changed records a settings edit, regenerating at once in auto-update mode.
func (app *App) changed() {
	app.dirty = true
	if app.cfg.Editor.AutoUpdate {
		app.regenerate()
	}
}

func (app *App) setStatus(format string, args ...any) {
	app.statusMsg = fmt.Sprintf(format, args...)
	app.statusTime = time.Now()
}

func (app *App) render() {
	app.applyDialogResults()

	if ui.IsKeyPressed(imgui.KeyF5) {
		app.regenerate()
	}

	x, y, w, h := ui.Viewport()
	contentHeight := h - statusBarHeight
	flags := imgui.WindowFlagsNoMove | imgui.WindowFlagsNoResize | imgui.WindowFlagsNoCollapse

	imgui.SetNextWindowPos(imgui.NewVec2(x, y))
	imgui.SetNextWindowSize(imgui.NewVec2(controlsPanelWidth, contentHeight))
	if imgui.BeginV("Terrain", nil, flags) {
		app.renderControls()
	}
	imgui.End()

	imgui.SetNextWindowPos(imgui.NewVec2(x+controlsPanelWidth, y))
	imgui.SetNextWindowSize(imgui.NewVec2(w-controlsPanelWidth, contentHeight))
	if imgui.BeginV("Preview", nil, flags) {
		app.preview.Draw(app.mode)
	}
	imgui.End()

	imgui.SetNextWindowPos(imgui.NewVec2(x, y+contentHeight))
	imgui.SetNextWindowSize(imgui.NewVec2(w, statusBarHeight))
	if imgui.BeginV("##StatusBar", nil, flags|imgui.WindowFlagsNoTitleBar|imgui.WindowFlagsNoScrollbar) {
		app.renderStatus()
	}
	imgui.End()
}

func (app *App) renderStatus() {
	s := app.gen.Settings()
	imgui.Text(fmt.Sprintf("seed %d | chunk %d | mode %s | %s",
		s.Terrain.Noise.Seed, s.Terrain.ChunkSize, app.mode, app.preview.Summary()))
	if app.dirty {
		imgui.SameLine()
		imgui.TextDisabled("(stale, press Generate)")
	}
	if app.statusMsg != "" && time.Since(app.statusTime) < 5*time.Second {
		imgui.SameLine()
		imgui.Text("| " + app.statusMsg)
	}
}

// openDialog shows a native file dialog without blocking the UI.
func (app *App) openDialog(kind dialogKind) {
	meshMode := app.mode == mapgen.DrawMesh
	go func() {
		var (
			path string
			err  error
		)
		switch kind {
		case dialogExport:
			b := dialog.File().Title("Export preview")
			if meshMode {
				b = b.Filter("Wavefront OBJ", "obj")
			} else {
				b = b.Filter("PNG image", "png").Filter("BMP image", "bmp")
			}
			path, err = b.Save()
		case dialogSaveConfig:
			path, err = dialog.File().Filter("YAML config", "yaml", "yml").Title("Save settings").Save()
		case dialogLoadConfig:
			path, err = dialog.File().Filter("YAML config", "yaml", "yml").Title("Load settings").Load()
		}
		if err != nil {
			if err != dialog.ErrCancelled {
				app.log.Error("file dialog failed", zap.Error(err))
			}
			return
		}

		app.pendingMu.Lock()
		app.pending = append(app.pending, dialogResult{kind: kind, path: path})
		app.pendingMu.Unlock()
	}()
}

func (app *App) applyDialogResults() {
	app.pendingMu.Lock()
	results := app.pending
	app.pending = nil
	app.pendingMu.Unlock()

	for _, r := range results {
		switch r.kind {
		case dialogExport:
			app.exportTo(r.path)
		case dialogSaveConfig:
			if err := app.cfg.SaveTo(r.path); err != nil {
				app.log.Error("save settings failed", zap.Error(err))
				app.setStatus("save failed: %v", err)
				continue
			}
			app.setStatus("settings saved to %s", r.path)
		case dialogLoadConfig:
			cfg, err := config.LoadFile(r.path)
			if err != nil {
				app.log.Error("load settings failed", zap.Error(err))
				app.setStatus("load failed: %v", err)
				continue
			}
			cfg.Logging = app.cfg.Logging
			cfg.Graphics = app.cfg.Graphics
			app.cfg = cfg
			app.syncFromConfig()
			app.regenerate()
			app.backend.SetWindowTitle(editorTitle + " - " + filepath.Base(r.path))
			app.setStatus("settings loaded from %s", r.path)
		}
	}
}

// exportTo writes the current draw mode's artefact next to path.
func (app *App) exportTo(path string) {
	dir := filepath.Dir(path)
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	format := export.FormatForPath(path)
	d := export.NewFileDisplay(dir, name, format, app.log)
	app.gen.DrawMapInEditor(d, app.mode)

	if err := d.Err(); err != nil {
		app.setStatus("export failed: %v", err)
		return
	}
	app.setStatus("exported %d file(s) to %s", len(d.Written()), dir)
}

// exportDefault exports into the configured export directory without a
// dialog.
func (app *App) exportDefault() {
	name := fmt.Sprintf("%s_%d", app.mode, app.cfg.Terrain.Noise.Seed)
	ext := export.PNG.Ext()
	if app.mode == mapgen.DrawMesh {
		ext = ".obj"
	}
	app.exportTo(filepath.Join(app.cfg.Editor.ExportDir, name+ext))
}

// saveSnapshot writes the rendered mesh preview to the export directory.
func (app *App) saveSnapshot() {
	img := app.preview.Snapshot()
	if img == nil {
		app.setStatus("no mesh preview to save")
		return
	}
	path := filepath.Join(app.cfg.Editor.ExportDir,
		fmt.Sprintf("snapshot_%s.png", time.Now().Format("20060102_150405")))
	if err := export.SaveImage(path, img); err != nil {
		app.log.Error("snapshot failed", zap.Error(err))
		app.setStatus("snapshot failed: %v", err)
		return
	}
	app.setStatus("snapshot saved to %s", path)
}
