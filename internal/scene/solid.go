package scene

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/1broseidon/wlframe/internal/platform"
)

const solidVertex = `attribute vec4 position;
void main() {
    gl_Position = position;
}
`

const solidFragment = `precision mediump float;
void main() {
    gl_FragColor = vec4(1.0, 0.0, 0.0, 1.0);
}
`

// Solid fills the window with red using a GLES2 program.
type Solid struct {
	log *slog.Logger
	gl  platform.GL

	program  platform.Program
	vbo      platform.Buffer
	position uint32
	hasPos   bool
}

// NewSolid returns an unprepared solid scene.
func NewSolid(logger *slog.Logger) *Solid {
	return &Solid{log: discardLogger(logger)}
}

func (s *Solid) Name() string         { return "solid" }
func (s *Solid) ClientVersion() int32 { return 2 }

func (s *Solid) Setup(gl platform.GL) error {
	s.gl = gl

	p, err := gl.CompileProgram(solidVertex, solidFragment)
	if err != nil {
		return fmt.Errorf("solid: %w", err)
	}
	s.program = p
	gl.UseProgram(p)
	s.position, s.hasPos = attrib(s.log, "position", gl.AttribLocation(p, "position"))

	vbo, err := gl.CreateBuffer(quad)
	if err != nil {
		s.Close()
		return fmt.Errorf("solid: vertex buffer: %w", err)
	}
	s.vbo = vbo
	return nil
}

func (s *Solid) Draw(context.Context) error {
	gl := s.gl
	clearFrame(gl)
	gl.UseProgram(s.program)
	gl.BindBuffer(s.vbo)
	if s.hasPos {
		gl.VertexAttribPointer(s.position, 2, 0, 0)
		gl.EnableVertexAttribArray(s.position)
	}
	gl.DrawTriangleStrip(0, 4)
	return gl.Err()
}

func (s *Solid) Close() {
	if s.gl == nil {
		return
	}
	if s.vbo != 0 {
		s.gl.DeleteBuffer(s.vbo)
		s.vbo = 0
	}
	if s.program != 0 {
		s.gl.DeleteProgram(s.program)
		s.program = 0
	}
}
