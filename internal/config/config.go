// Package config handles terrain, viewer and editor configuration.
package config

// Config holds all settings.
type Config struct {
	Terrain   TerrainConfig   `yaml:"terrain"`
	Streaming StreamingConfig `yaml:"streaming"`
	Editor    EditorConfig    `yaml:"editor"`
	Graphics  GraphicsConfig  `yaml:"graphics"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// TerrainConfig describes how chunk height maps and meshes are generated.
type TerrainConfig struct {
	Noise   NoiseConfig    `yaml:"noise"`
	Mesh    MeshConfig     `yaml:"mesh"`
	Falloff FalloffConfig  `yaml:"falloff"`
	Regions []RegionConfig `yaml:"regions"`
}

// NoiseConfig holds fractal noise parameters.
type NoiseConfig struct {
	Seed          int64        `yaml:"seed"`
	Scale         float64      `yaml:"scale"`
	Octaves       int          `yaml:"octaves"`
	Persistence   float64      `yaml:"persistence"`
	Lacunarity    float64      `yaml:"lacunarity"`
	Offset        OffsetConfig `yaml:"offset"`
	NormalizeMode string       `yaml:"normalize_mode"` // local | global
	Basis         string       `yaml:"basis"`          // perlin | simplex
}

// OffsetConfig is a 2D sampling offset.
type OffsetConfig struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// MeshConfig holds tessellation settings.
type MeshConfig struct {
	ChunkSize        int        `yaml:"chunk_size"` // samples per side, without border
	HeightMultiplier float32    `yaml:"height_multiplier"`
	HeightCurve      []CurveKey `yaml:"height_curve"`
	FlatShading      bool       `yaml:"flat_shading"`
	EditorPreviewLOD int        `yaml:"editor_preview_lod"`
}

// CurveKey is one keyframe of the height response curve. Omitted tangents
// are flat.
type CurveKey struct {
	Time       float32 `yaml:"time"`
	Value      float32 `yaml:"value"`
	InTangent  float32 `yaml:"in_tangent,omitempty"`
	OutTangent float32 `yaml:"out_tangent,omitempty"`
}

// FalloffConfig toggles the island falloff mask.
type FalloffConfig struct {
	Enabled bool `yaml:"enabled"`
}

// RegionConfig colours every height up to Height.
type RegionConfig struct {
	Name   string  `yaml:"name"`
	Height float32 `yaml:"height"`
	Color  string  `yaml:"color"` // #RRGGBB
}

// StreamingConfig controls the endless terrain around the viewer.
type StreamingConfig struct {
	Scale         float32    `yaml:"scale"`
	MoveThreshold float32    `yaml:"move_threshold"`
	QueueCapacity int        `yaml:"queue_capacity"`
	Levels        []LODLevel `yaml:"levels"`
}

// LODLevel uses mesh detail LOD for chunks up to Distance away.
type LODLevel struct {
	LOD      int     `yaml:"lod"`
	Distance float32 `yaml:"distance"`
}

// EditorConfig holds map editor settings.
type EditorConfig struct {
	DrawMode   string `yaml:"draw_mode"` // noise | color | mesh | falloff
	AutoUpdate bool   `yaml:"auto_update"`
	ExportDir  string `yaml:"export_dir"`
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width      int     `yaml:"width"`
	Height     int     `yaml:"height"`
	Fullscreen bool    `yaml:"fullscreen"`
	VSync      bool    `yaml:"vsync"`
	Wireframe  bool    `yaml:"wireframe"`
	FOV        float32 `yaml:"fov"`
	MoveSpeed  float32 `yaml:"move_speed"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Terrain: TerrainConfig{
			Noise: NoiseConfig{
				Seed:          0,
				Scale:         50,
				Octaves:       5,
				Persistence:   0.5,
				Lacunarity:    2,
				NormalizeMode: "global",
				Basis:         "perlin",
			},
			Mesh: MeshConfig{
				ChunkSize:        241,
				HeightMultiplier: 30,
				HeightCurve: []CurveKey{
					{Time: 0, Value: 0},
					{Time: 0.4, Value: 0.02, InTangent: 0.1, OutTangent: 0.1},
					{Time: 1, Value: 1, InTangent: 2, OutTangent: 2},
				},
				EditorPreviewLOD: 0,
			},
			Regions: []RegionConfig{
				{Name: "Deep Water", Height: 0.3, Color: "#3263c3"},
				{Name: "Shallow Water", Height: 0.4, Color: "#3666c6"},
				{Name: "Sand", Height: 0.45, Color: "#d2d07d"},
				{Name: "Grass", Height: 0.55, Color: "#56961a"},
				{Name: "Grass 2", Height: 0.6, Color: "#3e6b12"},
				{Name: "Rock", Height: 0.7, Color: "#5a453c"},
				{Name: "Rock 2", Height: 0.9, Color: "#4b3c35"},
				{Name: "Snow", Height: 1, Color: "#ffffff"},
			},
		},
		Streaming: StreamingConfig{
			Scale:         2,
			MoveThreshold: DefaultMoveThreshold,
			QueueCapacity: 256,
			Levels: []LODLevel{
				{LOD: 0, Distance: 200},
				{LOD: 1, Distance: 400},
				{LOD: 4, Distance: 600},
			},
		},
		Editor: EditorConfig{
			DrawMode:   "mesh",
			AutoUpdate: true,
			ExportDir:  "export",
		},
		Graphics: GraphicsConfig{
			Width:     1280,
			Height:    720,
			VSync:     true,
			FOV:       60,
			MoveSpeed: 120,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}
