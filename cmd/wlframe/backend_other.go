//go:build !linux

package main

// Wayland and EGL are only bound on Linux.
func nativeBackend() backend { return backend{} }
