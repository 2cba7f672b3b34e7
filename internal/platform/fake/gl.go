package fake

import (
	"errors"
	"image"

	"github.com/1broseidon/wlframe/internal/platform"
)

// GL records drawing calls and hands out sequential object names.
type GL struct {
	Log *Log

	// Attribs and Uniforms map names to locations; unknown names yield -1.
	Attribs  map[string]int32
	Uniforms map[string]int32

	ProgramErr     error
	BufferErr      error
	VertexArrayErr error
	TextureErr     error
	// Errs is consumed one entry per Err call.
	Errs []error

	Sources  [][2]string
	Buffers  [][]float32
	Textures []*image.RGBA
	// Deleted counts deletions per object kind.
	Deleted map[string]int

	next uint32
}

func (g *GL) name() uint32 {
	g.next++
	return g.next
}

func (g *GL) deleted(kind string) {
	if g.Deleted == nil {
		g.Deleted = make(map[string]int)
	}
	g.Deleted[kind]++
}

// Live returns created minus deleted objects across all kinds.
func (g *GL) Live() int {
	n := int(g.next)
	for _, d := range g.Deleted {
		n -= d
	}
	return n
}

func (g *GL) CompileProgram(vertex, fragment string) (platform.Program, error) {
	g.Log.add("gl.compile_program")
	g.Sources = append(g.Sources, [2]string{vertex, fragment})
	if g.ProgramErr != nil {
		return 0, g.ProgramErr
	}
	return platform.Program(g.name()), nil
}

func (g *GL) UseProgram(p platform.Program) { g.Log.add("gl.use_program %d", p) }

func (g *GL) AttribLocation(p platform.Program, name string) int32 {
	if loc, ok := g.Attribs[name]; ok {
		return loc
	}
	return -1
}

func (g *GL) UniformLocation(p platform.Program, name string) int32 {
	if loc, ok := g.Uniforms[name]; ok {
		return loc
	}
	return -1
}

func (g *GL) Uniform1i(location, v int32) { g.Log.add("gl.uniform1i %d %d", location, v) }

func (g *GL) CreateBuffer(data []float32) (platform.Buffer, error) {
	g.Log.add("gl.create_buffer")
	if g.BufferErr != nil {
		return 0, g.BufferErr
	}
	g.Buffers = append(g.Buffers, append([]float32(nil), data...))
	return platform.Buffer(g.name()), nil
}

func (g *GL) BindBuffer(b platform.Buffer) { g.Log.add("gl.bind_buffer %d", b) }

func (g *GL) CreateVertexArray() (platform.VertexArray, error) {
	g.Log.add("gl.create_vertex_array")
	if g.VertexArrayErr != nil {
		return 0, g.VertexArrayErr
	}
	return platform.VertexArray(g.name()), nil
}

func (g *GL) BindVertexArray(v platform.VertexArray) { g.Log.add("gl.bind_vertex_array %d", v) }

func (g *GL) VertexAttribPointer(index uint32, size, stride, offset int) {
	g.Log.add("gl.vertex_attrib_pointer %d %d %d %d", index, size, stride, offset)
}

func (g *GL) EnableVertexAttribArray(index uint32) {
	g.Log.add("gl.enable_vertex_attrib_array %d", index)
}

func (g *GL) CreateTexture(img *image.RGBA) (platform.Texture, error) {
	g.Log.add("gl.create_texture")
	if g.TextureErr != nil {
		return 0, g.TextureErr
	}
	if img == nil {
		return 0, errors.New("fake: nil texture image")
	}
	g.Textures = append(g.Textures, img)
	return platform.Texture(g.name()), nil
}

func (g *GL) BindTexture(unit int, t platform.Texture) { g.Log.add("gl.bind_texture %d %d", unit, t) }

func (g *GL) ClearColor(r, gr, b, a float32) { g.Log.add("gl.clear_color %g %g %g %g", r, gr, b, a) }

func (g *GL) Clear() { g.Log.add("gl.clear") }

func (g *GL) DrawTriangleStrip(first, count int) { g.Log.add("gl.draw_triangle_strip %d %d", first, count) }

func (g *GL) DeleteProgram(p platform.Program) {
	g.Log.add("gl.delete_program %d", p)
	g.deleted("program")
}

func (g *GL) DeleteBuffer(b platform.Buffer) {
	g.Log.add("gl.delete_buffer %d", b)
	g.deleted("buffer")
}

func (g *GL) DeleteVertexArray(v platform.VertexArray) {
	g.Log.add("gl.delete_vertex_array %d", v)
	g.deleted("vertex_array")
}

func (g *GL) DeleteTexture(t platform.Texture) {
	g.Log.add("gl.delete_texture %d", t)
	g.deleted("texture")
}

func (g *GL) Err() error {
	if len(g.Errs) == 0 {
		return nil
	}
	err := g.Errs[0]
	g.Errs = g.Errs[1:]
	return err
}

var _ platform.GL = (*GL)(nil)
