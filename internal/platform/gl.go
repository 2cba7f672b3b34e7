package platform

import "image"

// GPU object names. Zero is never a valid object.
type (
	Program     uint32
	Buffer      uint32
	VertexArray uint32
	Texture     uint32
)

// GL is the subset of OpenGL ES the payload scenes draw with. All calls must
// come from the thread the context is current on.
type GL interface {
	// CompileProgram compiles and links a program. Compile and link
	// diagnostics are reported but not fatal; an error means no program
	// object could be created at all.
	CompileProgram(vertex, fragment string) (Program, error)
	UseProgram(p Program)
	AttribLocation(p Program, name string) int32
	UniformLocation(p Program, name string) int32
	Uniform1i(location, v int32)

	// CreateBuffer uploads data into a static array buffer.
	CreateBuffer(data []float32) (Buffer, error)
	BindBuffer(b Buffer)
	// CreateVertexArray requires ES 3.
	CreateVertexArray() (VertexArray, error)
	BindVertexArray(v VertexArray)
	// VertexAttribPointer describes float attributes in the bound buffer.
	// stride and offset are in floats.
	VertexAttribPointer(index uint32, size, stride, offset int)
	EnableVertexAttribArray(index uint32)

	// CreateTexture uploads img with LINEAR min/mag filtering.
	CreateTexture(img *image.RGBA) (Texture, error)
	BindTexture(unit int, t Texture)

	ClearColor(r, g, b, a float32)
	Clear()
	DrawTriangleStrip(first, count int)

	DeleteProgram(p Program)
	DeleteBuffer(b Buffer)
	DeleteVertexArray(v VertexArray)
	DeleteTexture(t Texture)

	// Err returns and clears the pending GL error, if any.
	Err() error
}
