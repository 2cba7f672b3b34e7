//go:build linux

// Package gles binds the OpenGL ES calls the scenes draw with and the ES 3
// fence objects used for frame pacing.
package gles

/*
#cgo linux pkg-config: glesv2

#include <stdint.h>
#include <stdlib.h>
#include <GLES3/gl3.h>

static GLuint wlframe_compile(GLenum stage, const char *src, GLint *ok) {
	GLuint shader = glCreateShader(stage);
	if (shader == 0)
		return 0;
	glShaderSource(shader, 1, &src, NULL);
	glCompileShader(shader);
	glGetShaderiv(shader, GL_COMPILE_STATUS, ok);
	return shader;
}

static void wlframe_vertex_attrib(GLuint index, GLint size, GLsizei stride, uintptr_t offset) {
	glVertexAttribPointer(index, size, GL_FLOAT, GL_FALSE, stride, (const void *)offset);
}

static uintptr_t wlframe_fence(void) {
	return (uintptr_t)glFenceSync(GL_SYNC_GPU_COMMANDS_COMPLETE, 0);
}

static GLenum wlframe_client_wait(uintptr_t sync, GLbitfield flags, GLuint64 timeout) {
	return glClientWaitSync((GLsync)sync, flags, timeout);
}

static void wlframe_delete_sync(uintptr_t sync) {
	glDeleteSync((GLsync)sync);
}
*/
import "C"

import (
	"errors"
	"image"
	"log/slog"
	"time"
	"unsafe"

	"github.com/1broseidon/wlframe/internal/logging"
	"github.com/1broseidon/wlframe/internal/platform"
)

const floatSize = 4

// Context implements platform.GL for the current ES context.
type Context struct {
	log *slog.Logger
}

var _ platform.GL = (*Context)(nil)

// New returns a GL binding. The caller must have made a context current.
func New(logger *slog.Logger) *Context {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Context{log: logger}
}

func (c *Context) compile(stage C.GLenum, name, src string) C.GLuint {
	csrc := C.CString(src)
	defer C.free(unsafe.Pointer(csrc))

	var ok C.GLint
	shader := C.wlframe_compile(stage, csrc, &ok)
	if shader != 0 && ok == C.GL_FALSE {
		c.log.Warn("shader compile failed", "error", &CompileError{Stage: name, Log: shaderLog(shader)})
	}
	return shader
}

func shaderLog(shader C.GLuint) string {
	var n C.GLint
	C.glGetShaderiv(shader, C.GL_INFO_LOG_LENGTH, &n)
	if n <= 1 {
		return ""
	}
	buf := make([]byte, int(n))
	C.glGetShaderInfoLog(shader, C.GLsizei(n), nil, (*C.GLchar)(unsafe.Pointer(&buf[0])))
	return string(buf[:n-1])
}

func programLog(p C.GLuint) string {
	var n C.GLint
	C.glGetProgramiv(p, C.GL_INFO_LOG_LENGTH, &n)
	if n <= 1 {
		return ""
	}
	buf := make([]byte, int(n))
	C.glGetProgramInfoLog(p, C.GLsizei(n), nil, (*C.GLchar)(unsafe.Pointer(&buf[0])))
	return string(buf[:n-1])
}

// CompileProgram compiles both stages and links them. Compile and link
// failures are logged; the program object is returned regardless.
func (c *Context) CompileProgram(vertex, fragment string) (platform.Program, error) {
	vs := c.compile(C.GL_VERTEX_SHADER, "vertex shader", vertex)
	fs := c.compile(C.GL_FRAGMENT_SHADER, "fragment shader", fragment)
	defer func() {
		if vs != 0 {
			C.glDeleteShader(vs)
		}
		if fs != 0 {
			C.glDeleteShader(fs)
		}
	}()

	p := C.glCreateProgram()
	if p == 0 {
		return 0, errors.New("gles: glCreateProgram failed")
	}
	if vs != 0 {
		C.glAttachShader(p, vs)
	}
	if fs != 0 {
		C.glAttachShader(p, fs)
	}
	C.glLinkProgram(p)

	var ok C.GLint
	C.glGetProgramiv(p, C.GL_LINK_STATUS, &ok)
	if ok == C.GL_FALSE {
		c.log.Warn("program link failed", "error", &CompileError{Stage: "link", Log: programLog(p)})
	}
	return platform.Program(p), nil
}

func (c *Context) UseProgram(p platform.Program) { C.glUseProgram(C.GLuint(p)) }

func (c *Context) AttribLocation(p platform.Program, name string) int32 {
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))
	return int32(C.glGetAttribLocation(C.GLuint(p), (*C.GLchar)(unsafe.Pointer(cname))))
}

func (c *Context) UniformLocation(p platform.Program, name string) int32 {
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))
	return int32(C.glGetUniformLocation(C.GLuint(p), (*C.GLchar)(unsafe.Pointer(cname))))
}

func (c *Context) Uniform1i(location, v int32) { C.glUniform1i(C.GLint(location), C.GLint(v)) }

func (c *Context) CreateBuffer(data []float32) (platform.Buffer, error) {
	var b C.GLuint
	C.glGenBuffers(1, &b)
	if b == 0 {
		return 0, errors.New("gles: glGenBuffers failed")
	}
	C.glBindBuffer(C.GL_ARRAY_BUFFER, b)
	if len(data) > 0 {
		C.glBufferData(C.GL_ARRAY_BUFFER, C.GLsizeiptr(len(data)*floatSize), unsafe.Pointer(&data[0]), C.GL_STATIC_DRAW)
	}
	return platform.Buffer(b), nil
}

func (c *Context) BindBuffer(b platform.Buffer) { C.glBindBuffer(C.GL_ARRAY_BUFFER, C.GLuint(b)) }

func (c *Context) CreateVertexArray() (platform.VertexArray, error) {
	var v C.GLuint
	C.glGenVertexArrays(1, &v)
	if v == 0 {
		return 0, errors.New("gles: glGenVertexArrays failed")
	}
	C.glBindVertexArray(v)
	return platform.VertexArray(v), nil
}

func (c *Context) BindVertexArray(v platform.VertexArray) { C.glBindVertexArray(C.GLuint(v)) }

func (c *Context) VertexAttribPointer(index uint32, size, stride, offset int) {
	C.wlframe_vertex_attrib(C.GLuint(index), C.GLint(size), C.GLsizei(stride*floatSize), C.uintptr_t(offset*floatSize))
}

func (c *Context) EnableVertexAttribArray(index uint32) {
	C.glEnableVertexAttribArray(C.GLuint(index))
}

func (c *Context) CreateTexture(img *image.RGBA) (platform.Texture, error) {
	b := img.Bounds()
	if b.Empty() {
		return 0, errors.New("gles: empty texture image")
	}
	pix := img.Pix
	if img.Stride != 4*b.Dx() {
		pix = make([]byte, 0, 4*b.Dx()*b.Dy())
		for y := b.Min.Y; y < b.Max.Y; y++ {
			off := img.PixOffset(b.Min.X, y)
			pix = append(pix, img.Pix[off:off+4*b.Dx()]...)
		}
	}

	var t C.GLuint
	C.glGenTextures(1, &t)
	if t == 0 {
		return 0, errors.New("gles: glGenTextures failed")
	}
	C.glBindTexture(C.GL_TEXTURE_2D, t)
	C.glPixelStorei(C.GL_UNPACK_ALIGNMENT, 1)
	C.glTexImage2D(C.GL_TEXTURE_2D, 0, C.GL_RGBA, C.GLsizei(b.Dx()), C.GLsizei(b.Dy()), 0,
		C.GL_RGBA, C.GL_UNSIGNED_BYTE, unsafe.Pointer(&pix[0]))
	C.glTexParameteri(C.GL_TEXTURE_2D, C.GL_TEXTURE_MIN_FILTER, C.GL_LINEAR)
	C.glTexParameteri(C.GL_TEXTURE_2D, C.GL_TEXTURE_MAG_FILTER, C.GL_LINEAR)
	C.glTexParameteri(C.GL_TEXTURE_2D, C.GL_TEXTURE_WRAP_S, C.GL_CLAMP_TO_EDGE)
	C.glTexParameteri(C.GL_TEXTURE_2D, C.GL_TEXTURE_WRAP_T, C.GL_CLAMP_TO_EDGE)
	return platform.Texture(t), nil
}

func (c *Context) BindTexture(unit int, t platform.Texture) {
	C.glActiveTexture(C.GLenum(C.GL_TEXTURE0 + unit))
	C.glBindTexture(C.GL_TEXTURE_2D, C.GLuint(t))
}

func (c *Context) ClearColor(r, g, b, a float32) {
	C.glClearColor(C.GLfloat(r), C.GLfloat(g), C.GLfloat(b), C.GLfloat(a))
}

func (c *Context) Clear() { C.glClear(C.GL_COLOR_BUFFER_BIT) }

func (c *Context) DrawTriangleStrip(first, count int) {
	C.glDrawArrays(C.GL_TRIANGLE_STRIP, C.GLint(first), C.GLsizei(count))
}

func (c *Context) DeleteProgram(p platform.Program) { C.glDeleteProgram(C.GLuint(p)) }

func (c *Context) DeleteBuffer(b platform.Buffer) {
	n := C.GLuint(b)
	C.glDeleteBuffers(1, &n)
}

func (c *Context) DeleteVertexArray(v platform.VertexArray) {
	n := C.GLuint(v)
	C.glDeleteVertexArrays(1, &n)
}

func (c *Context) DeleteTexture(t platform.Texture) {
	n := C.GLuint(t)
	C.glDeleteTextures(1, &n)
}

func (c *Context) Err() error {
	code := uint32(C.glGetError())
	if code == codeNoError {
		return nil
	}
	return &Error{Code: code}
}

// Fences implements platform.FenceAPI with ES 3 sync objects.
type Fences struct{}

var _ platform.FenceAPI = Fences{}

func (Fences) FenceSync() (platform.Sync, error) {
	s := C.wlframe_fence()
	if s == 0 {
		return 0, &Error{Code: uint32(C.glGetError())}
	}
	return platform.Sync(s), nil
}

func (Fences) ClientWaitSync(s platform.Sync, flush bool, timeout time.Duration) platform.WaitResult {
	var flags C.GLbitfield
	if flush {
		flags = C.GL_SYNC_FLUSH_COMMANDS_BIT
	}
	if timeout < 0 {
		timeout = 0
	}
	return waitResult(uint32(C.wlframe_client_wait(C.uintptr_t(s), flags, C.GLuint64(timeout.Nanoseconds()))))
}

func (Fences) DeleteSync(s platform.Sync) { C.wlframe_delete_sync(C.uintptr_t(s)) }
