package render

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/1broseidon/wlframe/internal/platform"
	"github.com/1broseidon/wlframe/internal/platform/fake"
)

// cancelAfter returns a draw func that records each frame and cancels after n.
func cancelAfter(h *harness, n int, cancel context.CancelFunc) DrawFunc {
	frames := 0
	return func() error {
		h.log.Record("draw")
		frames++
		if frames == n {
			cancel()
		}
		return nil
	}
}

func TestLoop_DispatchDrawSwapOrder(t *testing.T) {
	h := newHarness()
	c := h.mustInit(t, Config{})
	start := len(h.log.Calls())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	err := c.Loop(ctx, cancelAfter(h, 3, cancel))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Loop() error = %v, want context.Canceled", err)
	}

	got := h.log.Calls()[start:]
	want := []string{
		"conn.dispatch_pending", "draw", "gpu.swap",
		"conn.dispatch_pending", "draw", "gpu.swap",
		"conn.dispatch_pending", "draw", "gpu.swap",
	}
	if !equalStrings(got, want) {
		t.Fatalf("frame calls = %v, want %v", got, want)
	}
}

func TestLoop_NeverBlocksInDispatch(t *testing.T) {
	h := newHarness()
	c := h.mustInit(t, Config{})
	dispatches := h.conn.DispatchCalls

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	_ = c.Loop(ctx, cancelAfter(h, 5, cancel))

	if h.conn.DispatchCalls != dispatches {
		t.Fatalf("loop issued %d blocking dispatches", h.conn.DispatchCalls-dispatches)
	}
	if h.conn.PendingCalls != 5 {
		t.Fatalf("expected 5 non-blocking dispatches, got %d", h.conn.PendingCalls)
	}
}

func TestLoop_TransientSwapErrorContinues(t *testing.T) {
	h := newHarness()
	h.gpu.SwapErrs = []error{errors.New("bad surface"), nil, errors.New("bad surface")}
	c := h.mustInit(t, Config{})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	err := c.Loop(ctx, cancelAfter(h, 4, cancel))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Loop() error = %v, want context.Canceled", err)
	}
	if h.gpu.Swaps != 4 {
		t.Fatalf("expected 4 swaps, got %d", h.gpu.Swaps)
	}
}

func TestLoop_DrawErrorStillPresents(t *testing.T) {
	h := newHarness()
	c := h.mustInit(t, Config{})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	frames := 0
	err := c.Loop(ctx, func() error {
		frames++
		if frames == 2 {
			cancel()
		}
		return errors.New("shader missing")
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Loop() error = %v, want context.Canceled", err)
	}
	if h.gpu.Swaps != 2 {
		t.Fatalf("expected every frame presented, got %d swaps", h.gpu.Swaps)
	}
}

func TestLoop_ContextLostIsFatal(t *testing.T) {
	lost := fmt.Errorf("swap: %w", platform.ErrContextLost)

	t.Run("swap", func(t *testing.T) {
		h := newHarness()
		h.gpu.SwapErrs = []error{nil, lost}
		c := h.mustInit(t, Config{})

		err := c.Loop(context.Background(), func() error { return nil })
		if !errors.Is(err, platform.ErrContextLost) {
			t.Fatalf("Loop() error = %v, want ErrContextLost", err)
		}
		if h.gpu.Swaps != 2 {
			t.Fatalf("expected loop to stop at second swap, got %d", h.gpu.Swaps)
		}
	})

	t.Run("draw", func(t *testing.T) {
		h := newHarness()
		c := h.mustInit(t, Config{})

		err := c.Loop(context.Background(), func() error { return lost })
		if !errors.Is(err, platform.ErrContextLost) {
			t.Fatalf("Loop() error = %v, want ErrContextLost", err)
		}
		if h.gpu.Swaps != 0 {
			t.Fatalf("expected no swap after lost context, got %d", h.gpu.Swaps)
		}
	})
}

func TestLoop_DispatchErrorIsFatal(t *testing.T) {
	h := newHarness()
	c := h.mustInit(t, Config{})
	h.conn.PendingErr = errors.New("connection reset")

	err := c.Loop(context.Background(), func() error {
		t.Fatalf("draw must not run after dispatch failure")
		return nil
	})
	if !errors.Is(err, h.conn.PendingErr) {
		t.Fatalf("Loop() error = %v, want dispatch error", err)
	}
}

func TestLoop_AnswersPingBeforeDraw(t *testing.T) {
	h := newHarness()
	h.conn.PendingScript = func(n int) []fake.Event {
		if n == 1 {
			return []fake.Event{fake.PingEvent(99)}
		}
		return nil
	}
	c := h.mustInit(t, Config{})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	_ = c.Loop(ctx, cancelAfter(h, 2, cancel))

	pong := h.log.Index("wmbase.pong 99")
	if pong < 0 {
		t.Fatalf("expected pong, calls: %v", h.log.Calls())
	}
	draws := 0
	for _, call := range h.log.Calls()[:pong] {
		if call == "draw" {
			draws++
		}
	}
	if draws != 1 {
		t.Fatalf("expected pong during second frame before its draw, saw %d draws first", draws)
	}
}

func TestLoop_CancelledBeforeStart(t *testing.T) {
	h := newHarness()
	c := h.mustInit(t, Config{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := c.Loop(ctx, func() error {
		t.Fatalf("draw must not run")
		return nil
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Loop() error = %v, want context.Canceled", err)
	}
	if h.conn.PendingCalls != 0 {
		t.Fatalf("expected no dispatch, got %d", h.conn.PendingCalls)
	}
}

func TestLoop_DestroyedContext(t *testing.T) {
	h := newHarness()
	c := h.mustInit(t, Config{})
	c.Destroy()

	err := c.Loop(context.Background(), func() error { return nil })
	if !errors.Is(err, errNotReady) {
		t.Fatalf("Loop() error = %v, want errNotReady", err)
	}
}

func TestLoop_NotReentrant(t *testing.T) {
	h := newHarness()
	c := h.mustInit(t, Config{})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var inner error
	_ = c.Loop(ctx, func() error {
		inner = c.Loop(ctx, func() error { return nil })
		cancel()
		return nil
	})
	if !errors.Is(inner, errNotReady) {
		t.Fatalf("nested Loop() error = %v, want errNotReady", inner)
	}
}

func TestLoop_FencedFrames(t *testing.T) {
	h := newHarness()
	c := h.mustInit(t, Config{})
	fences := &fake.Fences{Log: h.log, Default: platform.WaitConditionSatisfied}
	sync := NewFrameSync(fences, SyncConfig{MaxPolls: 1})
	defer sync.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	frames := 0
	err := c.Loop(ctx, func() error {
		frames++
		h.log.Record("draw")
		if _, err := sync.Wait(ctx); err != nil {
			return err
		}
		if frames == 3 {
			cancel()
		}
		return nil
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Loop() error = %v, want context.Canceled", err)
	}
	if fences.MaxLive != 1 {
		t.Fatalf("expected at most one live fence, got %d", fences.MaxLive)
	}

	// Each frame's fence wait completes before that frame is presented.
	calls := h.log.Calls()
	waits, swaps := 0, 0
	for _, call := range calls {
		switch call {
		case "fence.wait":
			waits++
		case "gpu.swap":
			swaps++
			if waits != swaps {
				t.Fatalf("swap %d before its fence wait: %v", swaps, calls)
			}
		}
	}
}
