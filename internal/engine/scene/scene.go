// Package scene renders streamed terrain chunks with OpenGL.
package scene

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-terrain/internal/engine/lighting"
	"github.com/Faultbox/midgard-terrain/internal/engine/scene/shaders"
	"github.com/Faultbox/midgard-terrain/internal/engine/shader"
	"github.com/Faultbox/midgard-terrain/internal/logger"
	"github.com/Faultbox/midgard-terrain/pkg/math"
)

// Config contains scene configuration options.
type Config struct {
	FogEnabled bool
	FogNear    float32
	FogFar     float32
	FogColor   [3]float32
}

// Stats describes the last rendered frame.
type Stats struct {
	Nodes     int
	Drawn     int
	Triangles int
}

// Scene owns the terrain shader and every chunk node.
type Scene struct {
	config  Config
	program *shader.Program
	log     *zap.Logger

	Sun lighting.Sun

	// UseTextures selects the chunk colour maps. When false chunks are
	// drawn in flat grey, which shows the shading alone.
	UseTextures bool

	nodes []*ChunkNode
	stats Stats
}

// New compiles the terrain shader. It must be called with a current OpenGL
// context.
func New(cfg Config) (*Scene, error) {
	program, err := shader.NewProgram(shaders.TerrainVertexShader, shaders.TerrainFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("terrain shader: %w", err)
	}

	return &Scene{
		config:      cfg,
		program:     program,
		log:         logger.Named("scene"),
		Sun:         lighting.DefaultSun(),
		UseTextures: true,
	}, nil
}

// SpawnChunk adds a hidden node whose mesh is placed at position and
// uniformly scaled by scale.
func (s *Scene) SpawnChunk(position math.Vec3, scale float32) *ChunkNode {
	n := newChunkNode(position, scale)
	s.nodes = append(s.nodes, n)
	s.log.Debug("chunk node spawned",
		zap.Float32("x", position.X),
		zap.Float32("z", position.Z),
		zap.Int("nodes", len(s.nodes)),
	)
	return n
}

// SetFog updates the fog range.
func (s *Scene) SetFog(enabled bool, near, far float32) {
	s.config.FogEnabled = enabled
	s.config.FogNear = near
	s.config.FogFar = far
}

// Render draws every visible node.
func (s *Scene) Render(viewProj math.Mat4, cameraPos math.Vec3) {
	s.stats = Stats{Nodes: len(s.nodes)}

	p := s.program
	p.Use()
	p.SetMat4("uViewProj", viewProj)
	p.SetVec3("uCameraPos", cameraPos)
	p.SetVec3("uLightDir", math.FromArray(s.Sun.Direction()))
	p.SetVec3("uAmbient", math.FromArray(s.Sun.Ambient))
	p.SetVec3("uDiffuse", math.FromArray(s.Sun.Diffuse))
	p.SetBool("uFogUse", s.config.FogEnabled)
	if s.config.FogEnabled {
		p.SetFloat("uFogNear", s.config.FogNear)
		p.SetFloat("uFogFar", s.config.FogFar)
		p.SetVec3("uFogColor", math.FromArray(s.config.FogColor))
	}

	gl.ActiveTexture(gl.TEXTURE0)
	p.SetInt("uTexture", 0)

	for _, n := range s.nodes {
		if !n.drawable() {
			continue
		}
		p.SetMat4("uModel", n.model)
		p.SetBool("uUseTexture", s.UseTextures && n.texture != 0)
		gl.BindTexture(gl.TEXTURE_2D, n.texture)
		n.current.Draw()

		s.stats.Drawn++
		s.stats.Triangles += n.current.triangles
	}
}

// Stats returns counters for the last Render.
func (s *Scene) Stats() Stats {
	return s.stats
}

// Destroy releases all resources.
func (s *Scene) Destroy() {
	for _, n := range s.nodes {
		n.destroy()
	}
	s.nodes = nil
	if s.program != nil {
		s.program.Delete()
	}
}
