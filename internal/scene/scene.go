// Package scene holds the demo payloads drawn by the frame loop. Each scene
// owns its GL objects; nothing is kept in package state.
package scene

import (
	"context"
	"log/slog"

	"github.com/1broseidon/wlframe/internal/logging"
	"github.com/1broseidon/wlframe/internal/platform"
)

// Scene is a draw payload. Setup runs once after the GPU context is current,
// Draw once per frame, Close after the loop returns.
type Scene interface {
	Name() string
	// ClientVersion is the GLES major version the scene's shaders need.
	ClientVersion() int32
	Setup(gl platform.GL) error
	Draw(ctx context.Context) error
	Close()
}

// Full-window quad as a triangle strip: bottom-left, bottom-right, top-left,
// top-right.
var quad = []float32{
	-1, -1,
	1, -1,
	-1, 1,
	1, 1,
}

// Quad interleaved with texture coordinates. Rows are stored top first, so t
// is flipped relative to clip space.
var texturedQuad = []float32{
	-1, -1, 0, 1,
	1, -1, 1, 1,
	-1, 1, 0, 0,
	1, 1, 1, 0,
}

func discardLogger(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return logging.Discard()
	}
	return logger
}

// attrib converts a queried attribute location. A failed link leaves every
// location at -1; the scene keeps drawing with whatever the program does.
func attrib(log *slog.Logger, name string, loc int32) (uint32, bool) {
	if loc < 0 {
		log.Warn("vertex attribute not found", "attribute", name)
		return 0, false
	}
	return uint32(loc), true
}

func clearFrame(gl platform.GL) {
	gl.ClearColor(0, 0, 0, 1)
	gl.Clear()
}
