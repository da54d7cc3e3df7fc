package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Terrain.Mesh.ChunkSize != 241 {
		t.Errorf("expected chunk size 241, got %d", cfg.Terrain.Mesh.ChunkSize)
	}
	if cfg.Terrain.Noise.NormalizeMode != "global" {
		t.Errorf("expected global normalization, got %s", cfg.Terrain.Noise.NormalizeMode)
	}
	if len(cfg.Terrain.Regions) != 8 {
		t.Errorf("expected 8 regions, got %d", len(cfg.Terrain.Regions))
	}
	if cfg.Streaming.MoveThreshold != DefaultMoveThreshold {
		t.Errorf("expected move threshold %v, got %v", DefaultMoveThreshold, cfg.Streaming.MoveThreshold)
	}
	if n := len(cfg.Streaming.Levels); n != 3 || cfg.Streaming.Levels[n-1].Distance != 600 {
		t.Errorf("unexpected default levels %v", cfg.Streaming.Levels)
	}
	if cfg.Graphics.Width != 1280 || cfg.Graphics.Height != 720 {
		t.Errorf("expected 1280x720, got %dx%d", cfg.Graphics.Width, cfg.Graphics.Height)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}

	if notes := cfg.Sanitize(); len(notes) != 0 {
		t.Errorf("Default().Sanitize() = %v, want no notes", notes)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
terrain:
  noise:
    seed: 1234
    scale: 80
    octaves: 6
    offset: {x: 10, y: -4}
    normalize_mode: local
    basis: simplex
  mesh:
    height_multiplier: 45
    flat_shading: true
    height_curve:
      - {time: 0, value: 0}
      - {time: 1, value: 1, in_tangent: 1}
  falloff:
    enabled: true
  regions:
    - {name: Water, height: 0.4, color: "#0000ff"}
    - {name: Land, height: 1, color: "#00ff00"}

streaming:
  move_threshold: 10
  levels:
    - {lod: 0, distance: 100}
    - {lod: 2, distance: 300}

editor:
  draw_mode: noise

logging:
  level: "debug"
  log_file: "terrain.log"
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	n := cfg.Terrain.Noise
	if n.Seed != 1234 || n.Scale != 80 || n.Octaves != 6 {
		t.Errorf("unexpected noise %+v", n)
	}
	if n.Offset != (OffsetConfig{X: 10, Y: -4}) {
		t.Errorf("expected offset (10, -4), got %+v", n.Offset)
	}
	if n.Persistence != 0.5 {
		t.Errorf("expected persistence kept from defaults, got %v", n.Persistence)
	}
	if n.NormalizeMode != "local" || n.Basis != "simplex" {
		t.Errorf("expected local/simplex, got %s/%s", n.NormalizeMode, n.Basis)
	}
	if !cfg.Terrain.Mesh.FlatShading || cfg.Terrain.Mesh.HeightMultiplier != 45 {
		t.Errorf("unexpected mesh %+v", cfg.Terrain.Mesh)
	}
	if len(cfg.Terrain.Mesh.HeightCurve) != 2 || cfg.Terrain.Mesh.HeightCurve[1].InTangent != 1 {
		t.Errorf("unexpected curve %+v", cfg.Terrain.Mesh.HeightCurve)
	}
	if !cfg.Terrain.Falloff.Enabled {
		t.Error("expected falloff enabled")
	}
	if len(cfg.Terrain.Regions) != 2 || cfg.Terrain.Regions[1].Name != "Land" {
		t.Errorf("expected file regions to replace defaults, got %+v", cfg.Terrain.Regions)
	}
	if len(cfg.Streaming.Levels) != 2 || cfg.Streaming.MoveThreshold != 10 {
		t.Errorf("unexpected streaming %+v", cfg.Streaming)
	}
	if cfg.Editor.DrawMode != "noise" {
		t.Errorf("expected draw mode noise, got %s", cfg.Editor.DrawMode)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.LogFile != "terrain.log" {
		t.Errorf("unexpected logging %+v", cfg.Logging)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
terrain:
  noise:
    octaves: not a number
  invalid syntax here
`
	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	if _, err := LoadFile("/nonexistent/path/config.yaml"); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestSanitize(t *testing.T) {
	cfg := Default()
	cfg.Terrain.Noise.Scale = -2
	cfg.Terrain.Noise.Octaves = -3
	cfg.Terrain.Noise.Lacunarity = 0.5
	cfg.Terrain.Noise.Persistence = 1.7
	cfg.Terrain.Noise.NormalizeMode = "sideways"
	cfg.Terrain.Mesh.ChunkSize = 0
	cfg.Terrain.Mesh.EditorPreviewLOD = 9
	cfg.Terrain.Regions = []RegionConfig{
		{Name: "high", Height: 0.9},
		{Name: "low", Height: 0.1},
	}
	cfg.Streaming.MoveThreshold = 0
	cfg.Streaming.Levels = []LODLevel{{LOD: 8, Distance: 500}, {LOD: 0, Distance: 100}}
	cfg.Editor.DrawMode = "?"

	notes := cfg.Sanitize()
	if len(notes) != 12 {
		t.Errorf("expected 12 notes, got %d: %s", len(notes), strings.Join(notes, "; "))
	}

	n := cfg.Terrain.Noise
	if n.Scale != MinScale || n.Octaves != 0 || n.Lacunarity != 1 || n.Persistence != 1 {
		t.Errorf("noise not clamped: %+v", n)
	}
	if n.NormalizeMode != "global" {
		t.Errorf("expected normalize mode reset to global, got %s", n.NormalizeMode)
	}
	if cfg.Terrain.Mesh.ChunkSize != MinChunkSize || cfg.Terrain.Mesh.EditorPreviewLOD != MaxLOD {
		t.Errorf("mesh not clamped: %+v", cfg.Terrain.Mesh)
	}
	if cfg.Terrain.Regions[0].Name != "low" {
		t.Errorf("regions not sorted: %+v", cfg.Terrain.Regions)
	}
	if cfg.Streaming.MoveThreshold != DefaultMoveThreshold {
		t.Errorf("expected move threshold %v, got %v", DefaultMoveThreshold, cfg.Streaming.MoveThreshold)
	}
	if l := cfg.Streaming.Levels; l[0].Distance != 100 || l[1].LOD != MaxLOD {
		t.Errorf("levels not sanitized: %+v", l)
	}
	if cfg.Editor.DrawMode != "mesh" {
		t.Errorf("expected draw mode mesh, got %s", cfg.Editor.DrawMode)
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()
	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	tmpDir := t.TempDir()
	os.Chdir(tmpDir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "xdg"))

	if path := findConfigFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("graphics:\n  width: 800\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}
	if path := findConfigFile(); path == "" {
		t.Error("expected to find config.yaml in current directory")
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*testing.T, *Config)
		teardown func()
		wantErr  bool
	}{
		{
			name:  "debug flag",
			setup: func() { *flagDebug = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() { *flagDebug = false },
		},
		{
			name:  "seed flag",
			setup: func() { *flagSeed = "-77" },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Terrain.Noise.Seed != -77 {
					t.Errorf("expected seed -77, got %d", cfg.Terrain.Noise.Seed)
				}
			},
			teardown: func() { *flagSeed = "" },
		},
		{
			name:  "malformed seed rejected",
			setup: func() { *flagSeed = "abc" },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Terrain.Noise.Seed != Default().Terrain.Noise.Seed {
					t.Errorf("expected default seed, got %d", cfg.Terrain.Noise.Seed)
				}
			},
			teardown: func() { *flagSeed = "" },
			wantErr:  true,
		},
		{
			name:  "flat flag",
			setup: func() { *flagFlat = true },
			verify: func(t *testing.T, cfg *Config) {
				if !cfg.Terrain.Mesh.FlatShading {
					t.Error("expected flat shading with flat flag")
				}
			},
			teardown: func() { *flagFlat = false },
		},
		{
			name:  "fullscreen flag",
			setup: func() { *flagFullscreen = true },
			verify: func(t *testing.T, cfg *Config) {
				if !cfg.Graphics.Fullscreen {
					t.Error("expected fullscreen to be true with fullscreen flag")
				}
			},
			teardown: func() { *flagFullscreen = false },
		},
		{
			name: "width and height flags",
			setup: func() {
				*flagWidth = 2560
				*flagHeight = 1440
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Graphics.Width != 2560 || cfg.Graphics.Height != 1440 {
					t.Errorf("expected 2560x1440, got %dx%d", cfg.Graphics.Width, cfg.Graphics.Height)
				}
			},
			teardown: func() {
				*flagWidth = 0
				*flagHeight = 0
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			err := applyFlags(cfg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("applyFlags() error = %v, wantErr %v", err, tt.wantErr)
			}
			tt.verify(t, cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
graphics:
  width: 1600
  height: 900
terrain:
  noise:
    seed: 5
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	*flagWidth = 1920
	*flagSeed = "6"
	defer func() {
		*flagConfig = ""
		*flagWidth = 0
		*flagSeed = ""
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.Graphics.Width != 1920 {
		t.Errorf("expected width 1920 from flag, got %d", cfg.Graphics.Width)
	}
	if cfg.Graphics.Height != 900 {
		t.Errorf("expected height 900 from file, got %d", cfg.Graphics.Height)
	}
	if cfg.Terrain.Noise.Seed != 6 {
		t.Errorf("expected seed 6 from flag, got %d", cfg.Terrain.Noise.Seed)
	}
}

func TestLoadMalformedSeed(t *testing.T) {
	*flagConfig = filepath.Join(t.TempDir(), "seed.yaml")
	*flagSeed = "12x"
	defer func() {
		*flagConfig = ""
		*flagSeed = ""
	}()

	if err := os.WriteFile(*flagConfig, []byte("terrain:\n  noise:\n    seed: 1\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := Load()
	if err == nil {
		t.Fatalf("Load() with -seed 12x = %+v, want error", cfg.Terrain.Noise)
	}
	if !strings.Contains(err.Error(), "12x") {
		t.Errorf("Load() error = %v, want it to name the bad seed", err)
	}
}

func TestSaveToRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "preset.yaml")

	cfg := Default()
	cfg.Terrain.Noise.Seed = 99
	cfg.Terrain.Regions = cfg.Terrain.Regions[:2]
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo() error = %v", err)
	}

	got, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if got.Terrain.Noise.Seed != 99 || len(got.Terrain.Regions) != 2 {
		t.Errorf("round trip lost data: seed %d, %d regions", got.Terrain.Noise.Seed, len(got.Terrain.Regions))
	}
}
