package render

import (
	"fmt"

	"github.com/1broseidon/wlframe/internal/platform"
)

// Protocol versions bound for each required global.
const (
	compositorVersion = 1
	wmBaseVersion     = 1
)

// sink routes protocol events to the Context. It is the only EventSink the
// connection ever sees.
type sink struct {
	c *Context
}

var _ platform.EventSink = sink{}

// Global binds the compositor and wm-base the first time each is advertised.
// Everything else is ignored.
func (s sink) Global(g platform.Global) {
	c := s.c
	switch g.Interface {
	case platform.InterfaceCompositor:
		if c.compositor != nil {
			c.log.Debug("ignoring duplicate global", "interface", g.Interface, "name", g.Name)
			return
		}
		g.Version = compositorVersion
		comp, err := c.conn.BindCompositor(g)
		if err != nil {
			c.recordBindErr(g, err)
			return
		}
		c.compositor = comp
		c.log.Debug("bound global", "interface", g.Interface, "name", g.Name)
	case platform.InterfaceWMBase:
		if c.wmBase != nil {
			c.log.Debug("ignoring duplicate global", "interface", g.Interface, "name", g.Name)
			return
		}
		g.Version = wmBaseVersion
		wm, err := c.conn.BindWMBase(g)
		if err != nil {
			c.recordBindErr(g, err)
			return
		}
		c.wmBase = wm
		c.log.Debug("bound global", "interface", g.Interface, "name", g.Name)
	}
}

// GlobalRemove is accepted but changes nothing: a removed compositor or
// wm-base keeps its now-stale reference.
func (s sink) GlobalRemove(name uint32) {
	s.c.log.Debug("global removed", "name", name)
}

func (c *Context) recordBindErr(g platform.Global, err error) {
	if c.bindErr == nil {
		c.bindErr = fmt.Errorf("bind %s: %w", g.Interface, err)
	}
}

// connect opens the connection and binds the required globals.
func (c *Context) connect(dial platform.Dialer) error {
	conn, err := dial(sink{c})
	if err != nil {
		return fmt.Errorf("connect to display server: %w", err)
	}
	c.conn = conn

	if err := conn.Registry(); err != nil {
		return fmt.Errorf("get registry: %w", err)
	}
	if err := conn.Roundtrip(); err != nil {
		return fmt.Errorf("registry roundtrip: %w", err)
	}
	if c.bindErr != nil {
		return c.bindErr
	}
	if c.compositor == nil {
		return fmt.Errorf("%w: %s", platform.ErrMissingGlobal, platform.InterfaceCompositor)
	}
	if c.wmBase == nil {
		return fmt.Errorf("%w: %s", platform.ErrMissingGlobal, platform.InterfaceWMBase)
	}
	return nil
}
