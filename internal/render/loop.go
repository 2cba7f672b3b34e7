package render

import (
	"context"
	"errors"
	"fmt"

	"github.com/1broseidon/wlframe/internal/platform"
)

// DrawFunc issues the GPU commands for one frame. It must not block
// indefinitely. An error wrapping platform.ErrContextLost stops the loop; any
// other error is logged and the frame is still presented.
type DrawFunc func() error

// Loop runs the frame loop: drain queued protocol events without blocking,
// draw, present. Frames are strictly serialized.
//
// Loop has no shutdown path of its own. It returns only on a fatal error
// (lost connection or lost GPU context) or when ctx is done; callers that
// pass context.Background() get a loop that runs until the process exits.
func (c *Context) Loop(ctx context.Context, draw DrawFunc) error {
	if err := c.ready(ctx); err != nil {
		return err
	}
	c.running = true
	defer func() { c.running = false }()

	c.log.Info("entering frame loop")
	for frame := uint64(0); ; frame++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		if err := c.conn.DispatchPending(); err != nil {
			return fmt.Errorf("dispatch pending events: %w", err)
		}

		if err := draw(); err != nil {
			if errors.Is(err, platform.ErrContextLost) {
				return fmt.Errorf("draw frame %d: %w", frame, err)
			}
			c.log.Warn("draw failed", "frame", frame, "error", err)
		}

		if err := c.gpu.SwapBuffers(c.display, c.gpuSurface); err != nil {
			if errors.Is(err, platform.ErrContextLost) {
				return fmt.Errorf("present frame %d: %w", frame, err)
			}
			c.log.Warn("present failed", "frame", frame, "error", err)
		}
	}
}
