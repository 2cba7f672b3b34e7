package platform

// Well-known global interface names advertised by the registry.
const (
	InterfaceCompositor = "wl_compositor"
	InterfaceWMBase     = "xdg_wm_base"
)

// Global is a single registry advertisement.
type Global struct {
	Name      uint32
	Interface string
	Version   uint32
}

// EventSink receives protocol events delivered by a connection's dispatch
// calls. Handlers run on the dispatching thread and must not block.
type EventSink interface {
	Global(g Global)
	GlobalRemove(name uint32)
	Ping(serial uint32)
	Configure(serial uint32)
	ToplevelConfigure(width, height int32)
	ToplevelClose()
}

// Dialer opens a display-server connection that reports events to sink.
type Dialer func(sink EventSink) (Conn, error)

// Conn abstracts a display-server connection.
type Conn interface {
	// Registry requests the global registry. Globals are delivered to the
	// sink by subsequent dispatch calls.
	Registry() error
	BindCompositor(g Global) (Compositor, error)
	BindWMBase(g Global) (WMBase, error)

	// Dispatch blocks until at least one event batch has been processed.
	Dispatch() error
	// DispatchPending processes already-queued events without blocking.
	DispatchPending() error
	// Roundtrip blocks until the server has processed all prior requests.
	Roundtrip() error

	// Native returns the native display handle for the GPU driver.
	Native() uintptr
	Disconnect()
}

// Compositor is a bound wl_compositor.
type Compositor interface {
	CreateSurface() (Surface, error)
	Destroy()
}

// WMBase is a bound xdg_wm_base.
type WMBase interface {
	ShellSurface(s Surface) (ShellSurface, error)
	Pong(serial uint32)
	Destroy()
}

// Surface is a compositor surface.
type Surface interface {
	Commit()
	Native() uintptr
	Destroy()
}

// ShellSurface is an xdg_surface wrapping a Surface.
type ShellSurface interface {
	Toplevel() (Toplevel, error)
	SetWindowGeometry(x, y, width, height int)
	AckConfigure(serial uint32)
	Destroy()
}

// Toplevel is an xdg_toplevel role object.
type Toplevel interface {
	SetTitle(title string)
	SetAppID(id string)
	Destroy()
}
