// Package render establishes a window surface on a Wayland compositor, binds
// a GPU context to it and drives the per-frame dispatch/draw/present loop.
//
// Everything in this package runs on the single thread that called Init. No
// state is shared with other goroutines, and no locks are taken.
package render

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"runtime"

	"github.com/1broseidon/wlframe/internal/platform"
)

// Config describes the window and GPU context to establish.
type Config struct {
	Width  int
	Height int
	Title  string
	AppID  string

	// ClientVersion is the GLES client API version requested for the
	// context. Zero selects platform.DefaultClientVersion.
	ClientVersion int32

	Logger *slog.Logger
}

// Context owns every protocol and GPU handle of the single render window.
type Context struct {
	cfg Config
	log *slog.Logger
	gpu platform.GPU

	conn       platform.Conn
	compositor platform.Compositor
	wmBase     platform.WMBase
	surface    platform.Surface
	shell      platform.ShellSurface
	toplevel   platform.Toplevel

	display    platform.DisplayHandle
	gpuConfig  platform.ConfigHandle
	gpuContext platform.ContextHandle
	window     platform.WindowHandle
	gpuSurface platform.SurfaceHandle

	width      int
	height     int
	configured bool

	// Compositor-suggested toplevel size; informational only.
	suggestedWidth  int32
	suggestedHeight int32

	bindErr   error
	running   bool
	destroyed bool
}

// Init connects to the display server, negotiates a toplevel window and binds
// a GPU context to it. The calling goroutine is locked to its OS thread until
// Destroy; all further calls on the returned Context must come from it.
//
// On failure every handle acquired so far is released.
func Init(dial platform.Dialer, gpu platform.GPU, cfg Config) (*Context, error) {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("invalid window size %dx%d", cfg.Width, cfg.Height)
	}
	if cfg.ClientVersion == 0 {
		cfg.ClientVersion = platform.DefaultClientVersion
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	runtime.LockOSThread()

	c := &Context{
		cfg:    cfg,
		log:    logger,
		gpu:    gpu,
		width:  cfg.Width,
		height: cfg.Height,
	}

	if err := c.connect(dial); err != nil {
		c.Destroy()
		return nil, err
	}
	if err := c.negotiate(); err != nil {
		c.Destroy()
		return nil, err
	}
	if err := c.bindGraphics(); err != nil {
		c.Destroy()
		return nil, err
	}

	c.log.Info("render context ready", "width", c.width, "height", c.height)
	return c, nil
}

// Size returns the negotiated window size.
func (c *Context) Size() (width, height int) {
	return c.width, c.height
}

// Configured reports whether the compositor has acknowledged the window.
func (c *Context) Configured() bool {
	return c.configured
}

// SuggestedSize returns the last toplevel size suggested by the compositor.
// Zero means the compositor left the choice to the client.
func (c *Context) SuggestedSize() (width, height int32) {
	return c.suggestedWidth, c.suggestedHeight
}

// Destroy releases every owned handle in reverse order of acquisition. It is
// safe to call more than once and on a partially initialised Context.
func (c *Context) Destroy() {
	if c == nil || c.destroyed {
		return
	}
	c.destroyed = true

	if c.gpuSurface != 0 {
		c.gpu.DestroySurface(c.display, c.gpuSurface)
		c.gpuSurface = 0
	}
	if c.window != 0 {
		c.gpu.DestroyWindow(c.window)
		c.window = 0
	}
	if c.gpuContext != 0 {
		c.gpu.DestroyContext(c.display, c.gpuContext)
		c.gpuContext = 0
	}
	if c.display != 0 {
		c.gpu.Terminate(c.display)
		c.display = 0
	}
	if c.toplevel != nil {
		c.toplevel.Destroy()
		c.toplevel = nil
	}
	if c.shell != nil {
		c.shell.Destroy()
		c.shell = nil
	}
	if c.surface != nil {
		c.surface.Destroy()
		c.surface = nil
	}
	if c.wmBase != nil {
		c.wmBase.Destroy()
		c.wmBase = nil
	}
	if c.compositor != nil {
		c.compositor.Destroy()
		c.compositor = nil
	}
	if c.conn != nil {
		c.conn.Disconnect()
		c.conn = nil
	}

	runtime.UnlockOSThread()
}

// errNotReady is returned by Loop on a Context that is destroyed or already
// running.
var errNotReady = errors.New("render context not ready")

func (c *Context) ready(ctx context.Context) error {
	if c.destroyed || c.gpuSurface == 0 {
		return fmt.Errorf("%w: not initialised", errNotReady)
	}
	if c.running {
		return fmt.Errorf("%w: loop already running", errNotReady)
	}
	return ctx.Err()
}
