package egl

import (
	"fmt"

	"github.com/1broseidon/wlframe/internal/platform"
)

// EGL error codes as returned by eglGetError.
const (
	codeSuccess           = 0x3000
	codeNotInitialized    = 0x3001
	codeBadAccess         = 0x3002
	codeBadAlloc          = 0x3003
	codeBadAttribute      = 0x3004
	codeBadConfig         = 0x3005
	codeBadContext        = 0x3006
	codeBadCurrentSurface = 0x3007
	codeBadDisplay        = 0x3008
	codeBadMatch          = 0x3009
	codeBadNativePixmap   = 0x300A
	codeBadNativeWindow   = 0x300B
	codeBadParameter      = 0x300C
	codeBadSurface        = 0x300D
	codeContextLost       = 0x300E
)

var codeNames = map[int]string{
	codeSuccess:           "EGL_SUCCESS",
	codeNotInitialized:    "EGL_NOT_INITIALIZED",
	codeBadAccess:         "EGL_BAD_ACCESS",
	codeBadAlloc:          "EGL_BAD_ALLOC",
	codeBadAttribute:      "EGL_BAD_ATTRIBUTE",
	codeBadConfig:         "EGL_BAD_CONFIG",
	codeBadContext:        "EGL_BAD_CONTEXT",
	codeBadCurrentSurface: "EGL_BAD_CURRENT_SURFACE",
	codeBadDisplay:        "EGL_BAD_DISPLAY",
	codeBadMatch:          "EGL_BAD_MATCH",
	codeBadNativePixmap:   "EGL_BAD_NATIVE_PIXMAP",
	codeBadNativeWindow:   "EGL_BAD_NATIVE_WINDOW",
	codeBadParameter:      "EGL_BAD_PARAMETER",
	codeBadSurface:        "EGL_BAD_SURFACE",
	codeContextLost:       "EGL_CONTEXT_LOST",
}

// Error is a failed EGL call and the error code it left behind.
type Error struct {
	Op   string
	Code int
}

func (e *Error) Error() string {
	name, ok := codeNames[e.Code]
	if !ok {
		name = "unknown EGL error"
	}
	return fmt.Sprintf("egl: %s: %s (0x%x)", e.Op, name, e.Code)
}

// Is reports EGL_CONTEXT_LOST as platform.ErrContextLost.
func (e *Error) Is(target error) bool {
	return target == platform.ErrContextLost && e.Code == codeContextLost
}
