//go:build linux

package main

import (
	"log/slog"

	"github.com/1broseidon/wlframe/internal/egl"
	"github.com/1broseidon/wlframe/internal/gles"
	"github.com/1broseidon/wlframe/internal/platform"
	"github.com/1broseidon/wlframe/internal/wayland"
)

func nativeBackend() backend {
	return backend{
		dial: wayland.Dialer,
		gpu:  func(log *slog.Logger) platform.GPU { return egl.New(log) },
		gl:   func(log *slog.Logger) platform.GL { return gles.New(log) },
		fences: func() platform.FenceAPI {
			return gles.Fences{}
		},
	}
}
