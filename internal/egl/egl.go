//go:build linux

// Package egl binds EGL and wayland-egl: display, config, context and window
// surface for a wl_surface.
package egl

/*
#cgo linux pkg-config: egl wayland-egl
#cgo CFLAGS: -DWL_EGL_PLATFORM

#include <stdlib.h>
#include <stdint.h>
#include <EGL/egl.h>
#include <EGL/eglext.h>
#include <wayland-egl.h>

static uintptr_t wlframe_get_platform_display(uintptr_t native, int *ok) {
	PFNEGLGETPLATFORMDISPLAYEXTPROC get =
		(PFNEGLGETPLATFORMDISPLAYEXTPROC)eglGetProcAddress("eglGetPlatformDisplayEXT");
	if (get == NULL) {
		*ok = 0;
		return 0;
	}
	*ok = 1;
	return (uintptr_t)get(EGL_PLATFORM_WAYLAND_KHR, (void *)native, NULL);
}

static uintptr_t wlframe_get_display(uintptr_t native) {
	return (uintptr_t)eglGetDisplay((EGLNativeDisplayType)native);
}

static EGLBoolean wlframe_initialize(uintptr_t dpy, EGLint *major, EGLint *minor) {
	return eglInitialize((EGLDisplay)dpy, major, minor);
}

static EGLBoolean wlframe_choose_configs(uintptr_t dpy, const EGLint *attribs,
					 uintptr_t *out, EGLint size, EGLint *n) {
	EGLConfig *configs = NULL;
	if (size > 0) {
		configs = calloc(size, sizeof(EGLConfig));
		if (configs == NULL)
			return EGL_FALSE;
	}
	EGLBoolean ok = eglChooseConfig((EGLDisplay)dpy, attribs, configs, size, n);
	for (EGLint i = 0; ok && configs != NULL && i < *n; i++)
		out[i] = (uintptr_t)configs[i];
	free(configs);
	return ok;
}

static uintptr_t wlframe_create_context(uintptr_t dpy, uintptr_t cfg, const EGLint *attribs) {
	return (uintptr_t)eglCreateContext((EGLDisplay)dpy, (EGLConfig)cfg, EGL_NO_CONTEXT, attribs);
}

static uintptr_t wlframe_window_create(uintptr_t surface, int width, int height) {
	return (uintptr_t)wl_egl_window_create((struct wl_surface *)surface, width, height);
}

static void wlframe_window_destroy(uintptr_t win) {
	wl_egl_window_destroy((struct wl_egl_window *)win);
}

static uintptr_t wlframe_create_window_surface(uintptr_t dpy, uintptr_t cfg, uintptr_t win) {
	return (uintptr_t)eglCreateWindowSurface((EGLDisplay)dpy, (EGLConfig)cfg,
						 (EGLNativeWindowType)win, NULL);
}

static EGLBoolean wlframe_make_current(uintptr_t dpy, uintptr_t surf, uintptr_t ctx) {
	return eglMakeCurrent((EGLDisplay)dpy, (EGLSurface)surf, (EGLSurface)surf, (EGLContext)ctx);
}

static EGLBoolean wlframe_swap_buffers(uintptr_t dpy, uintptr_t surf) {
	return eglSwapBuffers((EGLDisplay)dpy, (EGLSurface)surf);
}

static void wlframe_destroy_surface(uintptr_t dpy, uintptr_t surf) {
	eglDestroySurface((EGLDisplay)dpy, (EGLSurface)surf);
}

static void wlframe_destroy_context(uintptr_t dpy, uintptr_t ctx) {
	eglDestroyContext((EGLDisplay)dpy, (EGLContext)ctx);
}

static void wlframe_terminate(uintptr_t dpy) {
	eglMakeCurrent((EGLDisplay)dpy, EGL_NO_SURFACE, EGL_NO_SURFACE, EGL_NO_CONTEXT);
	eglTerminate((EGLDisplay)dpy);
}
*/
import "C"

import (
	"fmt"
	"log/slog"

	"github.com/1broseidon/wlframe/internal/logging"
	"github.com/1broseidon/wlframe/internal/platform"
)

// Driver implements platform.GPU over libEGL.
type Driver struct {
	log *slog.Logger
}

var _ platform.GPU = (*Driver)(nil)

// New returns an EGL driver.
func New(logger *slog.Logger) *Driver {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Driver{log: logger}
}

func lastError(op string) error {
	return &Error{Op: op, Code: int(C.eglGetError())}
}

func (d *Driver) GetPlatformDisplay(native uintptr) (platform.DisplayHandle, bool) {
	var ok C.int
	dpy := C.wlframe_get_platform_display(C.uintptr_t(native), &ok)
	if ok == 0 {
		d.log.Debug("eglGetPlatformDisplayEXT not available")
		return 0, false
	}
	return platform.DisplayHandle(dpy), true
}

func (d *Driver) GetDisplay(native uintptr) platform.DisplayHandle {
	return platform.DisplayHandle(C.wlframe_get_display(C.uintptr_t(native)))
}

func (d *Driver) Initialize(dpy platform.DisplayHandle) (int, int, error) {
	var major, minor C.EGLint
	if C.wlframe_initialize(C.uintptr_t(dpy), &major, &minor) == C.EGL_FALSE {
		return 0, 0, lastError("initialize")
	}
	return int(major), int(minor), nil
}

func (d *Driver) ChooseConfigs(dpy platform.DisplayHandle, attribs []platform.AttribValue) ([]platform.ConfigHandle, error) {
	list, err := encodeAttribs(attribs)
	if err != nil {
		return nil, fmt.Errorf("egl: choose config: %w", err)
	}
	cattribs := make([]C.EGLint, len(list))
	for i, v := range list {
		cattribs[i] = C.EGLint(v)
	}

	var n C.EGLint
	if C.wlframe_choose_configs(C.uintptr_t(dpy), &cattribs[0], nil, 0, &n) == C.EGL_FALSE {
		return nil, lastError("choose config")
	}
	if n == 0 {
		return nil, nil
	}

	out := make([]C.uintptr_t, int(n))
	if C.wlframe_choose_configs(C.uintptr_t(dpy), &cattribs[0], &out[0], n, &n) == C.EGL_FALSE {
		return nil, lastError("choose config")
	}
	configs := make([]platform.ConfigHandle, int(n))
	for i := range configs {
		configs[i] = platform.ConfigHandle(out[i])
	}
	return configs, nil
}

func (d *Driver) CreateContext(dpy platform.DisplayHandle, cfg platform.ConfigHandle, attribs []platform.AttribValue) (platform.ContextHandle, error) {
	list, err := encodeAttribs(attribs)
	if err != nil {
		return 0, fmt.Errorf("egl: create context: %w", err)
	}
	cattribs := make([]C.EGLint, len(list))
	for i, v := range list {
		cattribs[i] = C.EGLint(v)
	}
	ctx := C.wlframe_create_context(C.uintptr_t(dpy), C.uintptr_t(cfg), &cattribs[0])
	if ctx == 0 {
		return 0, lastError("create context")
	}
	return platform.ContextHandle(ctx), nil
}

// CreateWindow wraps a wl_surface pointer in a wl_egl_window.
func (d *Driver) CreateWindow(surface uintptr, width, height int) (platform.WindowHandle, error) {
	win := C.wlframe_window_create(C.uintptr_t(surface), C.int(width), C.int(height))
	if win == 0 {
		return 0, fmt.Errorf("egl: wl_egl_window_create failed")
	}
	return platform.WindowHandle(win), nil
}

func (d *Driver) CreateWindowSurface(dpy platform.DisplayHandle, cfg platform.ConfigHandle, w platform.WindowHandle) (platform.SurfaceHandle, error) {
	s := C.wlframe_create_window_surface(C.uintptr_t(dpy), C.uintptr_t(cfg), C.uintptr_t(w))
	if s == 0 {
		return 0, lastError("create window surface")
	}
	return platform.SurfaceHandle(s), nil
}

func (d *Driver) MakeCurrent(dpy platform.DisplayHandle, s platform.SurfaceHandle, c platform.ContextHandle) error {
	if C.wlframe_make_current(C.uintptr_t(dpy), C.uintptr_t(s), C.uintptr_t(c)) == C.EGL_FALSE {
		return lastError("make current")
	}
	return nil
}

func (d *Driver) SwapBuffers(dpy platform.DisplayHandle, s platform.SurfaceHandle) error {
	if C.wlframe_swap_buffers(C.uintptr_t(dpy), C.uintptr_t(s)) == C.EGL_FALSE {
		return lastError("swap buffers")
	}
	return nil
}

func (d *Driver) DestroySurface(dpy platform.DisplayHandle, s platform.SurfaceHandle) {
	C.wlframe_destroy_surface(C.uintptr_t(dpy), C.uintptr_t(s))
}

func (d *Driver) DestroyWindow(w platform.WindowHandle) {
	C.wlframe_window_destroy(C.uintptr_t(w))
}

func (d *Driver) DestroyContext(dpy platform.DisplayHandle, c platform.ContextHandle) {
	C.wlframe_destroy_context(C.uintptr_t(dpy), C.uintptr_t(c))
}

// Terminate releases the current context and terminates the display.
func (d *Driver) Terminate(dpy platform.DisplayHandle) {
	C.wlframe_terminate(C.uintptr_t(dpy))
}
