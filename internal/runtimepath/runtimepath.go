package runtimepath

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// DefaultDisplay is the socket name libwayland falls back to when
// WAYLAND_DISPLAY is unset.
const DefaultDisplay = "wayland-0"

// ErrNoRuntimeDir is returned when no runtime directory can be found.
var ErrNoRuntimeDir = errors.New("no runtime directory: XDG_RUNTIME_DIR is unset")

// Dir returns the runtime directory that holds compositor sockets. Priority:
// 1) XDG_RUNTIME_DIR (if set)
// 2) /run/user/<uid> (if present)
//
// Unlike a private state dir nothing is created here; the compositor owns it.
func Dir() (string, error) {
	if runtimeDir := os.Getenv("XDG_RUNTIME_DIR"); runtimeDir != "" {
		return runtimeDir, nil
	}

	runUserDir := fmt.Sprintf("/run/user/%d", os.Getuid())
	if info, err := os.Stat(runUserDir); err == nil && info.IsDir() {
		return runUserDir, nil
	}
	return "", ErrNoRuntimeDir
}

// DisplayName resolves the display to connect to: name if non-empty, then
// WAYLAND_DISPLAY, then DefaultDisplay.
func DisplayName(name string) string {
	if name != "" {
		return name
	}
	if env := os.Getenv("WAYLAND_DISPLAY"); env != "" {
		return env
	}
	return DefaultDisplay
}

// SocketPath returns the socket path for the given display name. Absolute
// names are used as-is.
func SocketPath(name string) (string, error) {
	name = DisplayName(name)
	if filepath.IsAbs(name) {
		return name, nil
	}
	runtimeDir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(runtimeDir, name), nil
}

// CheckSocket reports why a connection to the named display would fail, or
// nil if a socket is present.
func CheckSocket(name string) error {
	path, err := SocketPath(name)
	if err != nil {
		return err
	}
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("no compositor socket at %s", path)
		}
		return fmt.Errorf("stat compositor socket: %w", err)
	}
	if info.Mode()&os.ModeSocket == 0 {
		return fmt.Errorf("%s is not a socket", path)
	}
	return nil
}
