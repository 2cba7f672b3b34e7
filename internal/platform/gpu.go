package platform

import (
	"errors"
	"time"
)

var (
	// ErrMissingGlobal reports a required registry global that was never advertised.
	ErrMissingGlobal = errors.New("required global not advertised")
	// ErrNoDisplay reports that no GPU display could be obtained.
	ErrNoDisplay = errors.New("no GPU display")
	// ErrNoConfig reports that no GPU configuration matched the requested attributes.
	ErrNoConfig = errors.New("no matching GPU config")
	// ErrContextLost reports that the GPU context was lost and must not be used again.
	ErrContextLost = errors.New("GPU context lost")
)

// Opaque driver handles. Zero is the null handle for each.
type (
	DisplayHandle uintptr
	ConfigHandle  uintptr
	ContextHandle uintptr
	SurfaceHandle uintptr
	WindowHandle  uintptr
	Sync          uintptr
)

// Config attribute keys understood by GPU.ChooseConfigs.
type Attrib int32

const (
	AttribSurfaceType Attrib = iota + 1
	AttribRedSize
	AttribGreenSize
	AttribBlueSize
	AttribRenderableType
	AttribClientVersion
)

// Attribute values.
const (
	SurfaceTypeWindow    int32 = 1
	RenderableOpenGLES2  int32 = 1
	DefaultClientVersion int32 = 2
)

// AttribValue is a single key/value attribute pair.
type AttribValue struct {
	Key   Attrib
	Value int32
}

// GPU abstracts the GPU driver context API (EGL on Linux).
type GPU interface {
	// GetPlatformDisplay uses the platform-display extension when the driver
	// exposes it. ok is false when the extension is unavailable.
	GetPlatformDisplay(native uintptr) (d DisplayHandle, ok bool)
	GetDisplay(native uintptr) DisplayHandle
	Initialize(d DisplayHandle) (major, minor int, err error)
	// ChooseConfigs returns every config matching attribs, in driver order.
	ChooseConfigs(d DisplayHandle, attribs []AttribValue) ([]ConfigHandle, error)
	CreateContext(d DisplayHandle, cfg ConfigHandle, attribs []AttribValue) (ContextHandle, error)
	CreateWindow(surface uintptr, width, height int) (WindowHandle, error)
	CreateWindowSurface(d DisplayHandle, cfg ConfigHandle, w WindowHandle) (SurfaceHandle, error)
	MakeCurrent(d DisplayHandle, s SurfaceHandle, c ContextHandle) error
	SwapBuffers(d DisplayHandle, s SurfaceHandle) error

	DestroySurface(d DisplayHandle, s SurfaceHandle)
	DestroyWindow(w WindowHandle)
	DestroyContext(d DisplayHandle, c ContextHandle)
	Terminate(d DisplayHandle)
}

// WaitResult is the status of a single fence poll.
type WaitResult int

const (
	WaitTimeoutExpired WaitResult = iota
	WaitAlreadySignaled
	WaitConditionSatisfied
	WaitFailed
)

func (r WaitResult) String() string {
	switch r {
	case WaitTimeoutExpired:
		return "timeout-expired"
	case WaitAlreadySignaled:
		return "already-signaled"
	case WaitConditionSatisfied:
		return "condition-satisfied"
	case WaitFailed:
		return "wait-failed"
	default:
		return "unknown"
	}
}

// FenceAPI abstracts GPU fence objects.
type FenceAPI interface {
	FenceSync() (Sync, error)
	ClientWaitSync(s Sync, flush bool, timeout time.Duration) WaitResult
	DeleteSync(s Sync)
}
