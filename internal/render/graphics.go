package render

import (
	"fmt"

	"github.com/1broseidon/wlframe/internal/platform"
)

// configAttribs selects window-capable, 8-bit RGB, ES2-renderable configs.
var configAttribs = []platform.AttribValue{
	{Key: platform.AttribSurfaceType, Value: platform.SurfaceTypeWindow},
	{Key: platform.AttribRedSize, Value: 8},
	{Key: platform.AttribGreenSize, Value: 8},
	{Key: platform.AttribBlueSize, Value: 8},
	{Key: platform.AttribRenderableType, Value: platform.RenderableOpenGLES2},
}

// bindGraphics creates the GPU display, context and window surface and makes
// them current. It must only run once the surface is configured.
func (c *Context) bindGraphics() error {
	if !c.configured {
		return fmt.Errorf("bind graphics: surface not configured")
	}

	native := c.conn.Native()
	display, ok := c.gpu.GetPlatformDisplay(native)
	if !ok {
		c.log.Debug("platform display extension unavailable, using generic display")
		display = c.gpu.GetDisplay(native)
	}
	if display == 0 {
		return platform.ErrNoDisplay
	}
	c.display = display

	major, minor, err := c.gpu.Initialize(display)
	if err != nil {
		return fmt.Errorf("initialize GPU display: %w", err)
	}
	c.log.Info("GPU display initialized", "version", fmt.Sprintf("%d.%d", major, minor))

	configs, err := c.gpu.ChooseConfigs(display, configAttribs)
	if err != nil {
		return fmt.Errorf("choose GPU config: %w", err)
	}
	if len(configs) == 0 {
		return platform.ErrNoConfig
	}
	// The driver's first match wins, whatever its ordering.
	c.gpuConfig = configs[0]
	c.log.Debug("GPU config selected", "matches", len(configs))

	ctxAttribs := []platform.AttribValue{
		{Key: platform.AttribClientVersion, Value: c.cfg.ClientVersion},
	}
	gpuCtx, err := c.gpu.CreateContext(display, c.gpuConfig, ctxAttribs)
	if err != nil {
		return fmt.Errorf("create GPU context: %w", err)
	}
	c.gpuContext = gpuCtx

	window, err := c.gpu.CreateWindow(c.surface.Native(), c.width, c.height)
	if err != nil {
		return fmt.Errorf("create native window: %w", err)
	}
	c.window = window

	gpuSurface, err := c.gpu.CreateWindowSurface(display, c.gpuConfig, window)
	if err != nil {
		return fmt.Errorf("create window surface: %w", err)
	}
	c.gpuSurface = gpuSurface

	if err := c.gpu.MakeCurrent(display, gpuSurface, gpuCtx); err != nil {
		return fmt.Errorf("make context current: %w", err)
	}
	return nil
}
