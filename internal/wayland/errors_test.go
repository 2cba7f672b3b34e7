//go:build linux

package wayland

import (
	"errors"
	"fmt"
	"testing"

	"golang.org/x/sys/unix"
)

func TestError_Format(t *testing.T) {
	tests := []struct {
		err  *Error
		want string
	}{
		{&Error{Op: "dispatch", Errno: unix.EPIPE}, "wayland: dispatch: broken pipe"},
		{
			&Error{Op: "dispatch", Errno: unix.EPROTO, Interface: "xdg_surface", ObjectID: 5, Code: 3},
			"wayland: dispatch: protocol error 3 on xdg_surface@5",
		},
		{&Error{Op: "roundtrip", Errno: unix.EPROTO}, "wayland: roundtrip: " + unix.EPROTO.Error()},
	}
	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Fatalf("Error() = %q, want %q", got, tt.want)
		}
	}
}

func TestError_MatchesErrno(t *testing.T) {
	err := fmt.Errorf("wait for configure: %w", &Error{Op: "dispatch", Errno: unix.ECONNRESET})

	if !errors.Is(err, unix.ECONNRESET) {
		t.Fatalf("expected errors.Is to match ECONNRESET")
	}
	var werr *Error
	if !errors.As(err, &werr) || werr.Op != "dispatch" {
		t.Fatalf("expected *Error, got %v", err)
	}
}

func TestErrnoOf(t *testing.T) {
	if got := errnoOf(fmt.Errorf("x: %w", unix.EAGAIN)); got != unix.EAGAIN {
		t.Fatalf("errnoOf = %v, want EAGAIN", got)
	}
	if got := errnoOf(nil); got != unix.EIO {
		t.Fatalf("errnoOf(nil) = %v, want EIO", got)
	}
}
