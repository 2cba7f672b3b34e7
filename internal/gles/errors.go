package gles

import "fmt"

// GL error codes as returned by glGetError.
const (
	codeNoError                     = 0
	codeInvalidEnum                 = 0x0500
	codeInvalidValue                = 0x0501
	codeInvalidOperation            = 0x0502
	codeOutOfMemory                 = 0x0505
	codeInvalidFramebufferOperation = 0x0506
)

var codeNames = map[uint32]string{
	codeInvalidEnum:                 "GL_INVALID_ENUM",
	codeInvalidValue:                "GL_INVALID_VALUE",
	codeInvalidOperation:            "GL_INVALID_OPERATION",
	codeOutOfMemory:                 "GL_OUT_OF_MEMORY",
	codeInvalidFramebufferOperation: "GL_INVALID_FRAMEBUFFER_OPERATION",
}

// Error is a pending glGetError code.
type Error struct {
	Code uint32
}

func (e *Error) Error() string {
	if name, ok := codeNames[e.Code]; ok {
		return "gles: " + name
	}
	return fmt.Sprintf("gles: error 0x%04x", e.Code)
}

// CompileError carries the info log of a shader stage that failed to compile
// or a program that failed to link.
type CompileError struct {
	Stage string
	Log   string
}

func (e *CompileError) Error() string {
	if e.Log == "" {
		return fmt.Sprintf("gles: %s failed", e.Stage)
	}
	return fmt.Sprintf("gles: %s failed: %s", e.Stage, e.Log)
}
