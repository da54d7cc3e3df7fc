package debug

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/midgard-terrain/internal/engine/scene/shaders"
	"github.com/Faultbox/midgard-terrain/internal/engine/shader"
	"github.com/Faultbox/midgard-terrain/pkg/math"
)

// LineRenderer draws coloured line lists. Vertices are re-uploaded on
// every Set.
type LineRenderer struct {
	program *shader.Program
	vao     uint32
	vbo     uint32
	count   int32
}

// NewLineRenderer compiles the line shader. It needs a current OpenGL
// context.
func NewLineRenderer() (*LineRenderer, error) {
	program, err := shader.NewProgram(shaders.LinesVertexShader, shaders.LinesFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("line shader: %w", err)
	}

	r := &LineRenderer{program: program}
	gl.GenVertexArrays(1, &r.vao)
	gl.GenBuffers(1, &r.vbo)

	gl.BindVertexArray(r.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	stride := int32(unsafe.Sizeof(LineVertex{}))
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, stride, 3*4)
	gl.EnableVertexAttribArray(1)
	gl.BindVertexArray(0)

	return r, nil
}

// Set replaces the lines to draw.
func (r *LineRenderer) Set(vertices []LineVertex) {
	r.count = int32(len(vertices))
	if r.count == 0 {
		return
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*int(unsafe.Sizeof(LineVertex{})),
		unsafe.Pointer(&vertices[0]), gl.DYNAMIC_DRAW)
}

// Render draws the lines with the given view-projection matrix.
func (r *LineRenderer) Render(viewProj math.Mat4) {
	if r.count == 0 {
		return
	}
	r.program.Use()
	r.program.SetMat4("uViewProj", viewProj)

	gl.BindVertexArray(r.vao)
	gl.DrawArrays(gl.LINES, 0, r.count)
	gl.BindVertexArray(0)
}

// Destroy releases GPU resources.
func (r *LineRenderer) Destroy() {
	if r.vao != 0 {
		gl.DeleteVertexArrays(1, &r.vao)
		r.vao = 0
	}
	if r.vbo != 0 {
		gl.DeleteBuffers(1, &r.vbo)
		r.vbo = 0
	}
	if r.program != nil {
		r.program.Delete()
		r.program = nil
	}
}
