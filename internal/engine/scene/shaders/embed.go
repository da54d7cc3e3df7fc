// Package shaders provides embedded GLSL shader sources.
package shaders

import _ "embed"

// TerrainVertexShader is the vertex shader for terrain chunks.
//
//go:embed terrain.vert
var TerrainVertexShader string

// TerrainFragmentShader is the fragment shader for terrain chunks.
//
//go:embed terrain.frag
var TerrainFragmentShader string

// LinesVertexShader is the vertex shader for coloured debug lines.
//
//go:embed lines.vert
var LinesVertexShader string

// LinesFragmentShader is the fragment shader for coloured debug lines.
//
//go:embed lines.frag
var LinesFragmentShader string
