//go:build linux

// Package wayland is the libwayland-client binding: the display connection,
// the registry and the core and xdg-shell objects a single toplevel needs.
// Events are delivered to a platform.EventSink from within the dispatch
// calls.
package wayland

//go:generate wayland-scanner client-header /usr/share/wayland-protocols/stable/xdg-shell/xdg-shell.xml xdg_shell.h
//go:generate wayland-scanner private-code /usr/share/wayland-protocols/stable/xdg-shell/xdg-shell.xml xdg_shell.c

/*
#cgo linux pkg-config: wayland-client

#include <stdlib.h>
#include <wayland-client.h>
#include "xdg_shell.h"
#include "listener.h"
*/
import "C"

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"runtime/cgo"
	"unsafe"

	"github.com/1broseidon/wlframe/internal/platform"
	"github.com/1broseidon/wlframe/internal/runtimepath"
	"golang.org/x/sys/unix"
)

// Highest interface versions described by the bundled protocol tables.
const (
	maxCompositorVersion = 4
	maxWMBaseVersion     = 1
)

// Conn is a client connection to a Wayland compositor.
type Conn struct {
	log    *slog.Logger
	sink   platform.EventSink
	handle cgo.Handle

	display  *C.struct_wl_display
	registry *C.struct_wl_registry
}

var _ platform.Conn = (*Conn)(nil)

// Dialer returns a platform.Dialer that connects to the named display. An
// empty name lets libwayland pick (WAYLAND_SOCKET, WAYLAND_DISPLAY, then
// wayland-0).
func Dialer(display string, logger *slog.Logger) platform.Dialer {
	return func(sink platform.EventSink) (platform.Conn, error) {
		return Dial(display, sink, logger)
	}
}

// Dial connects to the named display and routes its events to sink.
func Dial(display string, sink platform.EventSink, logger *slog.Logger) (*Conn, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	var cname *C.char
	if display != "" {
		cname = C.CString(display)
		defer C.free(unsafe.Pointer(cname))
	}

	d, err := C.wl_display_connect(cname)
	if d == nil {
		name := runtimepath.DisplayName(display)
		if cause := runtimepath.CheckSocket(display); cause != nil {
			return nil, fmt.Errorf("connect to %s: %w", name, cause)
		}
		if err == nil {
			err = errors.New("wl_display_connect failed")
		}
		return nil, fmt.Errorf("connect to %s: %w", name, err)
	}

	c := &Conn{
		log:     logger,
		sink:    sink,
		display: d,
	}
	c.handle = cgo.NewHandle(c)
	logger.Debug("connected to compositor", "display", runtimepath.DisplayName(display))
	return c, nil
}

// Registry requests the global registry and installs its listener.
func (c *Conn) Registry() error {
	if c.registry != nil {
		return nil
	}
	c.registry = C.wl_display_get_registry(c.display)
	if c.registry == nil {
		return c.fail("get registry", nil)
	}
	C.wlframe_registry_add_listener(c.registry, C.uintptr_t(c.handle))
	return nil
}

func (c *Conn) BindCompositor(g platform.Global) (platform.Compositor, error) {
	version := min(g.Version, maxCompositorVersion)
	p := C.wl_registry_bind(c.registry, C.uint32_t(g.Name), &C.wl_compositor_interface, C.uint32_t(version))
	if p == nil {
		return nil, c.fail("bind "+g.Interface, nil)
	}
	return &compositor{c: c, ptr: (*C.struct_wl_compositor)(p)}, nil
}

func (c *Conn) BindWMBase(g platform.Global) (platform.WMBase, error) {
	version := min(g.Version, maxWMBaseVersion)
	p := C.wl_registry_bind(c.registry, C.uint32_t(g.Name), &C.xdg_wm_base_interface, C.uint32_t(version))
	if p == nil {
		return nil, c.fail("bind "+g.Interface, nil)
	}
	wm := (*C.struct_xdg_wm_base)(p)
	C.wlframe_wm_base_add_listener(wm, C.uintptr_t(c.handle))
	return &wmBase{c: c, ptr: wm}, nil
}

// Dispatch blocks until events arrive, then dispatches them.
func (c *Conn) Dispatch() error {
	if ret, err := C.wl_display_dispatch(c.display); ret < 0 {
		return c.fail("dispatch", err)
	}
	return nil
}

// DispatchPending dispatches already-read events and flushes queued
// requests (pongs, acks) without blocking.
func (c *Conn) DispatchPending() error {
	if ret, err := C.wl_display_dispatch_pending(c.display); ret < 0 {
		return c.fail("dispatch pending", err)
	}
	if ret, err := C.wl_display_flush(c.display); ret < 0 && !errors.Is(err, unix.EAGAIN) {
		return c.fail("flush", err)
	}
	return nil
}

func (c *Conn) Roundtrip() error {
	if ret, err := C.wl_display_roundtrip(c.display); ret < 0 {
		return c.fail("roundtrip", err)
	}
	return nil
}

// Native returns the wl_display pointer.
func (c *Conn) Native() uintptr {
	return uintptr(unsafe.Pointer(c.display))
}

func (c *Conn) Disconnect() {
	if c.display == nil {
		return
	}
	if c.registry != nil {
		C.wl_registry_destroy(c.registry)
		c.registry = nil
	}
	C.wl_display_disconnect(c.display)
	c.display = nil
	c.handle.Delete()
}

// fail builds an *Error from the display's error state, falling back to the
// errno of the failed call.
func (c *Conn) fail(op string, callErr error) error {
	e := &Error{Op: op, Errno: errnoOf(callErr)}
	if code := C.wl_display_get_error(c.display); code != 0 {
		e.Errno = unix.Errno(code)
	}
	if e.Errno == unix.EPROTO {
		var iface *C.struct_wl_interface
		var id C.uint32_t
		e.Code = uint32(C.wl_display_get_protocol_error(c.display, &iface, &id))
		e.ObjectID = uint32(id)
		if iface != nil {
			e.Interface = C.GoString(iface.name)
		}
	}
	c.log.Error("wayland connection failed", "op", op, "error", e)
	return e
}

type compositor struct {
	c   *Conn
	ptr *C.struct_wl_compositor
}

func (o *compositor) CreateSurface() (platform.Surface, error) {
	s := C.wl_compositor_create_surface(o.ptr)
	if s == nil {
		return nil, o.c.fail("create surface", nil)
	}
	return &surface{ptr: s}, nil
}

func (o *compositor) Destroy() { C.wl_compositor_destroy(o.ptr) }

type wmBase struct {
	c   *Conn
	ptr *C.struct_xdg_wm_base
}

func (o *wmBase) ShellSurface(s platform.Surface) (platform.ShellSurface, error) {
	surf, ok := s.(*surface)
	if !ok {
		return nil, ErrForeignObject
	}
	xs := C.xdg_wm_base_get_xdg_surface(o.ptr, surf.ptr)
	if xs == nil {
		return nil, o.c.fail("get xdg surface", nil)
	}
	C.wlframe_xdg_surface_add_listener(xs, C.uintptr_t(o.c.handle))
	return &shellSurface{c: o.c, ptr: xs}, nil
}

func (o *wmBase) Pong(serial uint32) { C.xdg_wm_base_pong(o.ptr, C.uint32_t(serial)) }

func (o *wmBase) Destroy() { C.xdg_wm_base_destroy(o.ptr) }

type surface struct {
	ptr *C.struct_wl_surface
}

func (o *surface) Commit() { C.wl_surface_commit(o.ptr) }

// Native returns the wl_surface pointer.
func (o *surface) Native() uintptr { return uintptr(unsafe.Pointer(o.ptr)) }

func (o *surface) Destroy() { C.wl_surface_destroy(o.ptr) }

type shellSurface struct {
	c   *Conn
	ptr *C.struct_xdg_surface
}

func (o *shellSurface) Toplevel() (platform.Toplevel, error) {
	t := C.xdg_surface_get_toplevel(o.ptr)
	if t == nil {
		return nil, o.c.fail("get toplevel", nil)
	}
	C.wlframe_toplevel_add_listener(t, C.uintptr_t(o.c.handle))
	return &toplevel{ptr: t}, nil
}

func (o *shellSurface) SetWindowGeometry(x, y, width, height int) {
	C.xdg_surface_set_window_geometry(o.ptr, C.int32_t(x), C.int32_t(y), C.int32_t(width), C.int32_t(height))
}

func (o *shellSurface) AckConfigure(serial uint32) {
	C.xdg_surface_ack_configure(o.ptr, C.uint32_t(serial))
}

func (o *shellSurface) Destroy() { C.xdg_surface_destroy(o.ptr) }

type toplevel struct {
	ptr *C.struct_xdg_toplevel
}

func (o *toplevel) SetTitle(title string) {
	s := C.CString(title)
	defer C.free(unsafe.Pointer(s))
	C.xdg_toplevel_set_title(o.ptr, s)
}

func (o *toplevel) SetAppID(id string) {
	s := C.CString(id)
	defer C.free(unsafe.Pointer(s))
	C.xdg_toplevel_set_app_id(o.ptr, s)
}

func (o *toplevel) Destroy() { C.xdg_toplevel_destroy(o.ptr) }
