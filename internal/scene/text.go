package scene

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/1broseidon/wlframe/internal/platform"
	"github.com/1broseidon/wlframe/internal/texture"
)

const textVertex = `attribute vec4 position;
attribute vec2 texCoord;
varying vec2 v_texCoord;
void main() {
    gl_Position = position;
    v_texCoord = texCoord;
}
`

const textFragment = `precision mediump float;
varying vec2 v_texCoord;
uniform sampler2D tex;
void main() {
    gl_FragColor = texture2D(tex, v_texCoord);
}
`

// Text shows a line of text rendered into a texture on a GLES2 quad.
type Text struct {
	log  *slog.Logger
	opts texture.TextOptions
	gl   platform.GL

	program  platform.Program
	vbo      platform.Buffer
	tex      platform.Texture
	sampler  int32
	position uint32
	texCoord uint32
	hasPos   bool
	hasTex   bool
}

// NewText returns an unprepared text scene drawing content at points size.
func NewText(content string, points float64, logger *slog.Logger) *Text {
	return &Text{
		log:  discardLogger(logger),
		opts: texture.TextOptions{Content: content, Points: points},
	}
}

func (t *Text) Name() string         { return "text" }
func (t *Text) ClientVersion() int32 { return 2 }

func (t *Text) Setup(gl platform.GL) error {
	t.gl = gl

	img, err := texture.Text(t.opts)
	if err != nil {
		return fmt.Errorf("text: render texture: %w", err)
	}

	p, err := gl.CompileProgram(textVertex, textFragment)
	if err != nil {
		return fmt.Errorf("text: %w", err)
	}
	t.program = p
	gl.UseProgram(p)
	t.position, t.hasPos = attrib(t.log, "position", gl.AttribLocation(p, "position"))
	t.texCoord, t.hasTex = attrib(t.log, "texCoord", gl.AttribLocation(p, "texCoord"))
	t.sampler = gl.UniformLocation(p, "tex")

	if t.vbo, err = gl.CreateBuffer(texturedQuad); err != nil {
		t.Close()
		return fmt.Errorf("text: vertex buffer: %w", err)
	}
	if t.tex, err = gl.CreateTexture(img); err != nil {
		t.Close()
		return fmt.Errorf("text: texture: %w", err)
	}
	t.log.Debug("text texture uploaded", "content", t.opts.Content, "points", t.opts.Points)
	return nil
}

func (t *Text) Draw(context.Context) error {
	gl := t.gl
	clearFrame(gl)
	gl.UseProgram(t.program)

	gl.BindTexture(0, t.tex)
	gl.Uniform1i(t.sampler, 0)

	gl.BindBuffer(t.vbo)
	if t.hasPos {
		gl.VertexAttribPointer(t.position, 2, 4, 0)
		gl.EnableVertexAttribArray(t.position)
	}
	if t.hasTex {
		gl.VertexAttribPointer(t.texCoord, 2, 4, 2)
		gl.EnableVertexAttribArray(t.texCoord)
	}
	gl.DrawTriangleStrip(0, 4)
	return gl.Err()
}

func (t *Text) Close() {
	if t.gl == nil {
		return
	}
	if t.tex != 0 {
		t.gl.DeleteTexture(t.tex)
		t.tex = 0
	}
	if t.vbo != 0 {
		t.gl.DeleteBuffer(t.vbo)
		t.vbo = 0
	}
	if t.program != 0 {
		t.gl.DeleteProgram(t.program)
		t.program = 0
	}
}
