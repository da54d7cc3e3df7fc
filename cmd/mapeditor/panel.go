package main

import (
	"strconv"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/Faultbox/midgard-terrain/internal/engine/terrain"
	"github.com/Faultbox/midgard-terrain/internal/game/mapgen"
	"github.com/Faultbox/midgard-terrain/pkg/noise"
)

// chunkSizes are offered by the chunk size combo. 121 and 241 tessellate
// evenly at every level of detail.
var chunkSizes = []int32{49, 97, 121, 241}

func (app *App) renderControls() {
	cfg := app.cfg
	changed := false

	imgui.SeparatorText("Noise")

	imgui.SetNextItemWidth(-1)
	if imgui.InputTextWithHint("##seed", "Seed", &app.seedText, 0, nil) {
		if seed, err := strconv.ParseInt(strings.TrimSpace(app.seedText), 10, 64); err == nil {
			cfg.Terrain.Noise.Seed = seed
			changed = true
		}
	}

	changed = sliderFloat64("Scale", &cfg.Terrain.Noise.Scale, 1, 500, "%.1f") || changed

	octaves := int32(cfg.Terrain.Noise.Octaves)
	if imgui.SliderIntV("Octaves", &octaves, 1, 10, "%d", imgui.SliderFlagsNone) {
		cfg.Terrain.Noise.Octaves = int(octaves)
		changed = true
	}

	changed = sliderFloat64("Persistence", &cfg.Terrain.Noise.Persistence, 0, 1, "%.2f") || changed
	changed = sliderFloat64("Lacunarity", &cfg.Terrain.Noise.Lacunarity, 1, 4, "%.2f") || changed
	changed = sliderFloat64("Offset X", &cfg.Terrain.Noise.Offset.X, -1000, 1000, "%.1f") || changed
	changed = sliderFloat64("Offset Y", &cfg.Terrain.Noise.Offset.Y, -1000, 1000, "%.1f") || changed

	imgui.Text("Normalize")
	for _, m := range []noise.NormalizeMode{noise.NormalizeLocal, noise.NormalizeGlobal} {
		imgui.SameLine()
		if imgui.RadioButtonBool(m.String(), cfg.Terrain.Noise.NormalizeMode == m.String()) {
			cfg.Terrain.Noise.NormalizeMode = m.String()
			changed = true
		}
	}
	imgui.Text("Basis    ")
	for _, b := range []noise.Basis{noise.BasisPerlin, noise.BasisSimplex} {
		imgui.SameLine()
		if imgui.RadioButtonBool(b.String(), cfg.Terrain.Noise.Basis == b.String()) {
			cfg.Terrain.Noise.Basis = b.String()
			changed = true
		}
	}

	imgui.SeparatorText("Mesh")

	if imgui.BeginCombo("Chunk size", strconv.Itoa(cfg.Terrain.Mesh.ChunkSize)) {
		for _, size := range chunkSizes {
			selected := int(size) == cfg.Terrain.Mesh.ChunkSize
			if imgui.SelectableBoolV(strconv.Itoa(int(size)), selected, imgui.SelectableFlagsNone, imgui.NewVec2(0, 0)) {
				cfg.Terrain.Mesh.ChunkSize = int(size)
				changed = true
			}
		}
		imgui.EndCombo()
	}

	if imgui.SliderFloatV("Height", &cfg.Terrain.Mesh.HeightMultiplier, 0, 200, "%.1f", imgui.SliderFlagsNone) {
		changed = true
	}

	lod := int32(cfg.Terrain.Mesh.EditorPreviewLOD)
	if imgui.SliderIntV("Preview LOD", &lod, 0, terrain.MaxLOD, "%d", imgui.SliderFlagsNone) {
		cfg.Terrain.Mesh.EditorPreviewLOD = int(lod)
		changed = true
	}

	if imgui.Checkbox("Flat shading", &cfg.Terrain.Mesh.FlatShading) {
		changed = true
	}
	if imgui.Checkbox("Island falloff", &cfg.Terrain.Falloff.Enabled) {
		changed = true
	}

	imgui.SeparatorText("Draw mode")
	for i, m := range mapgen.DrawModes() {
		if i > 0 {
			imgui.SameLine()
		}
		if imgui.RadioButtonBool(m.String(), app.mode == m) {
			app.mode = m
			cfg.Editor.DrawMode = m.String()
			changed = true
		}
	}

	imgui.SeparatorText("Regions")
	app.renderRegions()

	imgui.Separator()
	imgui.Checkbox("Auto update", &cfg.Editor.AutoUpdate)
	imgui.SameLine()
	if imgui.ButtonV("Generate", imgui.NewVec2(-1, 0)) {
		app.regenerate()
	}

	imgui.Spacing()
	if imgui.ButtonV("Export...", imgui.NewVec2(-1, 0)) {
		app.openDialog(dialogExport)
	}
	if imgui.ButtonV("Export to "+cfg.Editor.ExportDir, imgui.NewVec2(-1, 0)) {
		app.exportDefault()
	}
	if app.mode == mapgen.DrawMesh {
		if imgui.ButtonV("Save preview image", imgui.NewVec2(-1, 0)) {
			app.saveSnapshot()
		}
	}
	if imgui.Button("Save config...") {
		app.openDialog(dialogSaveConfig)
	}
	imgui.SameLine()
	if imgui.Button("Load config...") {
		app.openDialog(dialogLoadConfig)
	}

	if changed {
		app.changed()
	}
}

// renderRegions lists the colour regions as read-only swatches.
func (app *App) renderRegions() {
	for _, r := range app.gen.Settings().Terrain.Regions {
		c := imgui.NewVec4(float32(r.Color.R)/255, float32(r.Color.G)/255, float32(r.Color.B)/255, 1)
		imgui.ColorButtonV("##"+r.Name, c, imgui.ColorEditFlagsNoTooltip, imgui.NewVec2(14, 14))
		if imgui.IsItemHovered() {
			imgui.SetTooltip(terrain.HexColor(r.Color))
		}
		imgui.SameLine()
		imgui.Text(r.Name)
		imgui.SameLine()
		imgui.TextDisabled("<= " + strconv.FormatFloat(float64(r.Height), 'f', 2, 32))
	}
}

// sliderFloat64 edits a float64 setting with a float32 slider.
func sliderFloat64(label string, v *float64, lo, hi float32, format string) bool {
	f := float32(*v)
	if !imgui.SliderFloatV(label, &f, lo, hi, format, imgui.SliderFlagsNone) {
		return false
	}
	*v = float64(f)
	return true
}
