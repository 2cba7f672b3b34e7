package render

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/1broseidon/wlframe/internal/platform"
)

// DefaultFenceTimeout bounds a single fence poll.
const DefaultFenceTimeout = time.Second

// Outcome is the result of a frame fence wait.
type Outcome int

const (
	OutcomeSignaled Outcome = iota
	OutcomeTimeout
)

func (o Outcome) String() string {
	if o == OutcomeSignaled {
		return "signaled"
	}
	return "timeout"
}

// SyncConfig configures a FrameSync.
type SyncConfig struct {
	// Timeout bounds each poll. Zero selects DefaultFenceTimeout.
	Timeout time.Duration
	// MaxPolls bounds the number of polls per wait. Zero polls until the
	// fence signals.
	MaxPolls int
	Logger   *slog.Logger
}

// FrameSync paces frames on GPU completion. It keeps at most one live fence:
// each Wait deletes the previous frame's fence before creating a new one.
type FrameSync struct {
	api      platform.FenceAPI
	timeout  time.Duration
	maxPolls int
	log      *slog.Logger

	fence platform.Sync
}

// NewFrameSync returns a FrameSync over api.
func NewFrameSync(api platform.FenceAPI, cfg SyncConfig) *FrameSync {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultFenceTimeout
	}
	if cfg.MaxPolls < 0 {
		cfg.MaxPolls = 1
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &FrameSync{
		api:      api,
		timeout:  cfg.Timeout,
		maxPolls: cfg.MaxPolls,
		log:      logger,
	}
}

// Wait fences the commands issued so far and blocks until they complete or
// the poll budget runs out. Pending commands are flushed on the first poll.
func (s *FrameSync) Wait(ctx context.Context) (Outcome, error) {
	s.release()

	fence, err := s.api.FenceSync()
	if err != nil {
		return OutcomeTimeout, fmt.Errorf("create fence: %w", err)
	}
	s.fence = fence

	polls := 0
	for s.maxPolls == 0 || polls < s.maxPolls {
		if err := ctx.Err(); err != nil {
			return OutcomeTimeout, err
		}
		r := s.api.ClientWaitSync(fence, polls == 0, s.timeout)
		polls++
		switch r {
		case platform.WaitAlreadySignaled, platform.WaitConditionSatisfied:
			s.log.Debug("GPU sync: frame completed", "result", r.String(), "polls", polls)
			return OutcomeSignaled, nil
		case platform.WaitFailed:
			return OutcomeTimeout, fmt.Errorf("client wait sync: %s", r)
		}
	}

	s.log.Warn("GPU sync: timeout waiting for frame to complete", "polls", polls, "timeout", s.timeout)
	return OutcomeTimeout, nil
}

// Close deletes the live fence, if any.
func (s *FrameSync) Close() {
	s.release()
}

func (s *FrameSync) release() {
	if s.fence != 0 {
		s.api.DeleteSync(s.fence)
		s.fence = 0
	}
}
