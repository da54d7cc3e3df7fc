package mapgen

import (
	"fmt"
	"image"
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/midgard-terrain/internal/engine/terrain"
	"github.com/Faultbox/midgard-terrain/pkg/math"
	"github.com/Faultbox/midgard-terrain/pkg/noise"
)

// DrawMode selects what DrawMapInEditor shows.
type DrawMode int

const (
	DrawNoiseMap DrawMode = iota
	DrawColorMap
	DrawMesh
	DrawFalloffMap
)

var drawModeNames = []string{"noise", "color", "mesh", "falloff"}

func (m DrawMode) String() string {
	if m < 0 || int(m) >= len(drawModeNames) {
		return fmt.Sprintf("DrawMode(%d)", int(m))
	}
	return drawModeNames[m]
}

// ParseDrawMode parses a draw mode name.
func ParseDrawMode(s string) (DrawMode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range drawModeNames {
		if s == name {
			return DrawMode(i), nil
		}
	}
	return DrawMesh, fmt.Errorf("unknown draw mode %q", s)
}

// DrawModes lists every mode in declaration order.
func DrawModes() []DrawMode {
	return []DrawMode{DrawNoiseMap, DrawColorMap, DrawMesh, DrawFalloffMap}
}

// Display shows finished previews. It owns any GPU resources it creates.
type Display interface {
	DrawTexture(texture *image.RGBA)
	DrawMesh(mesh *terrain.Mesh, texture *image.RGBA)
}

// Generator produces single, synchronous previews of the chunk at the
// origin for the editor and the command line.
type Generator struct {
	settings Settings
	builder  *terrain.Builder
	log      *zap.Logger
}

// NewGenerator returns a Generator for s.
func NewGenerator(s Settings, log *zap.Logger) *Generator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Generator{
		settings: s,
		builder:  terrain.NewBuilder(s.Terrain),
		log:      log,
	}
}

// Settings returns the generator's settings.
func (g *Generator) Settings() Settings {
	return g.settings
}

// GenerateMap builds the height map of the chunk at the origin.
func (g *Generator) GenerateMap() *terrain.HeightMap {
	return g.builder.Build(math.Vec2{})
}

// GenerateMesh tessellates hm with the preview level of detail.
func (g *Generator) GenerateMesh(hm *terrain.HeightMap) *terrain.Mesh {
	s := g.settings
	return terrain.Tessellate(hm, s.HeightMultiplier, s.HeightCurve, s.PreviewLOD, s.FlatShading)
}

// DrawMapInEditor generates the origin chunk and hands the artefact selected
// by mode to d.
func (g *Generator) DrawMapInEditor(d Display, mode DrawMode) {
	hm := g.GenerateMap()

	switch mode {
	case DrawNoiseMap:
		d.DrawTexture(hm.HeightTexture())
		g.logRange("noise map", &noise.Grid{Width: hm.Size, Height: hm.Size, Values: hm.Heights})
	case DrawColorMap:
		d.DrawTexture(hm.ColorTexture())
	case DrawMesh:
		mesh := g.GenerateMesh(hm)
		d.DrawMesh(mesh, hm.ColorTexture())
		g.log.Debug("preview mesh",
			zap.Int("lod", mesh.LOD),
			zap.Int("vertices", len(mesh.Vertices)),
			zap.Int("triangles", mesh.TriangleCount()))
	case DrawFalloffMap:
		falloff := noise.Falloff(hm.ChunkSize())
		d.DrawTexture(terrain.TextureFromHeightMap(falloff))
		g.logRange("falloff map", falloff)
	default:
		g.log.Warn("unknown draw mode", zap.Stringer("mode", mode))
	}
}

// logRange reports the sample range of a drawn grid at debug level.
func (g *Generator) logRange(msg string, grid *noise.Grid) {
	lo, hi := grid.MinMax()
	g.log.Debug(msg, zap.Float32("min", lo), zap.Float32("max", hi))
}
