package render

import "fmt"

// Ping answers a liveness check immediately with the same serial.
func (s sink) Ping(serial uint32) {
	if s.c.wmBase != nil {
		s.c.wmBase.Pong(serial)
	}
}

// Configure acknowledges the configure and only then marks the window
// configured.
func (s sink) Configure(serial uint32) {
	c := s.c
	if c.shell == nil {
		return
	}
	c.shell.AckConfigure(serial)
	if !c.configured {
		c.configured = true
		c.log.Debug("surface configured", "serial", serial)
	}
}

// ToplevelConfigure records the compositor's size suggestion. The requested
// size stays authoritative.
func (s sink) ToplevelConfigure(width, height int32) {
	s.c.suggestedWidth, s.c.suggestedHeight = width, height
	s.c.log.Debug("toplevel configure", "width", width, "height", height)
}

// ToplevelClose is logged only; the frame loop has no shutdown path.
func (s sink) ToplevelClose() {
	s.c.log.Info("compositor requested window close; ignoring")
}

// negotiate creates the shell-managed toplevel and blocks in dispatch until
// the first configure has been acknowledged.
func (c *Context) negotiate() error {
	surface, err := c.compositor.CreateSurface()
	if err != nil {
		return fmt.Errorf("create surface: %w", err)
	}
	c.surface = surface

	shell, err := c.wmBase.ShellSurface(surface)
	if err != nil {
		return fmt.Errorf("create shell surface: %w", err)
	}
	c.shell = shell

	toplevel, err := shell.Toplevel()
	if err != nil {
		return fmt.Errorf("create toplevel: %w", err)
	}
	c.toplevel = toplevel
	if c.cfg.Title != "" {
		toplevel.SetTitle(c.cfg.Title)
	}
	if c.cfg.AppID != "" {
		toplevel.SetAppID(c.cfg.AppID)
	}

	shell.SetWindowGeometry(0, 0, c.width, c.height)
	surface.Commit()

	dispatches := 0
	for !c.configured {
		dispatches++
		if err := c.conn.Dispatch(); err != nil {
			return fmt.Errorf("wait for configure: %w", err)
		}
	}
	c.log.Debug("configure handshake complete", "dispatches", dispatches)
	return nil
}
