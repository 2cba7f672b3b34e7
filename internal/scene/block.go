package scene

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/1broseidon/wlframe/internal/platform"
	"github.com/1broseidon/wlframe/internal/render"
	"github.com/1broseidon/wlframe/internal/texture"
)

const blockVertex = `#version 300 es
layout(location = 0) in vec4 position;
layout(location = 1) in vec2 texCoord;
out vec2 v_texCoord;
void main() {
    gl_Position = position;
    v_texCoord = texCoord;
}
`

const blockFragment = `#version 300 es
precision mediump float;
in vec2 v_texCoord;
uniform sampler2D texSampler;
out vec4 fragColor;
void main() {
    fragColor = texture(texSampler, v_texCoord);
}
`

// Attribute locations fixed by the layout qualifiers above.
const (
	blockPosition = 0
	blockTexCoord = 1
)

// Block draws a red textured quad with GLES3 and waits for each frame on a
// GPU fence before it is presented.
type Block struct {
	log    *slog.Logger
	fences platform.FenceAPI
	sync   render.SyncConfig
	gl     platform.GL

	program platform.Program
	vao     platform.VertexArray
	vbo     platform.Buffer
	tex     platform.Texture
	sampler int32
	frames  *render.FrameSync

	// Signaled and TimedOut count fence wait outcomes.
	Signaled int
	TimedOut int
}

// NewBlock returns an unprepared block scene pacing frames on fences.
func NewBlock(fences platform.FenceAPI, sync render.SyncConfig, logger *slog.Logger) *Block {
	logger = discardLogger(logger)
	if sync.Logger == nil {
		sync.Logger = logger
	}
	return &Block{log: logger, fences: fences, sync: sync}
}

func (b *Block) Name() string         { return "block" }
func (b *Block) ClientVersion() int32 { return 3 }

func (b *Block) Setup(gl platform.GL) error {
	b.gl = gl

	p, err := gl.CompileProgram(blockVertex, blockFragment)
	if err != nil {
		return fmt.Errorf("block: %w", err)
	}
	b.program = p
	gl.UseProgram(p)
	b.sampler = gl.UniformLocation(p, "texSampler")

	if b.vao, err = gl.CreateVertexArray(); err != nil {
		b.Close()
		return fmt.Errorf("block: vertex array: %w", err)
	}
	gl.BindVertexArray(b.vao)
	if b.vbo, err = gl.CreateBuffer(texturedQuad); err != nil {
		b.Close()
		return fmt.Errorf("block: vertex buffer: %w", err)
	}
	gl.VertexAttribPointer(blockPosition, 2, 4, 0)
	gl.EnableVertexAttribArray(blockPosition)
	gl.VertexAttribPointer(blockTexCoord, 2, 4, 2)
	gl.EnableVertexAttribArray(blockTexCoord)

	if b.tex, err = gl.CreateTexture(texture.ColorBlock(texture.DefaultSize, texture.Red)); err != nil {
		b.Close()
		return fmt.Errorf("block: texture: %w", err)
	}

	b.frames = render.NewFrameSync(b.fences, b.sync)
	return nil
}

// Draw issues the frame and blocks until the GPU finishes it or the fence
// poll budget runs out.
func (b *Block) Draw(ctx context.Context) error {
	gl := b.gl
	clearFrame(gl)
	gl.UseProgram(b.program)
	gl.BindVertexArray(b.vao)
	gl.BindTexture(0, b.tex)
	gl.Uniform1i(b.sampler, 0)
	gl.DrawTriangleStrip(0, 4)
	if err := gl.Err(); err != nil {
		return err
	}

	outcome, err := b.frames.Wait(ctx)
	if err != nil {
		return fmt.Errorf("frame fence: %w", err)
	}
	if outcome == render.OutcomeSignaled {
		b.Signaled++
	} else {
		b.TimedOut++
	}
	return nil
}

func (b *Block) Close() {
	if b.gl == nil {
		return
	}
	if b.frames != nil {
		b.frames.Close()
	}
	if b.tex != 0 {
		b.gl.DeleteTexture(b.tex)
		b.tex = 0
	}
	if b.program != 0 {
		b.gl.DeleteProgram(b.program)
		b.program = 0
	}
	if b.vao != 0 {
		b.gl.DeleteVertexArray(b.vao)
		b.vao = 0
	}
	if b.vbo != 0 {
		b.gl.DeleteBuffer(b.vbo)
		b.vbo = 0
	}
}
