//go:build linux

package wayland

import (
	"errors"
	"fmt"

	"golang.org/x/sys/unix"
)

// ErrForeignObject is returned when an object from another backend is passed
// to this connection.
var ErrForeignObject = errors.New("wayland: object does not belong to this connection")

// Error is a fatal connection error. Once returned, the connection is dead
// and every further request fails.
type Error struct {
	Op    string
	Errno unix.Errno

	// Set only for protocol errors (Errno == EPROTO).
	Interface string
	ObjectID  uint32
	Code      uint32
}

func (e *Error) Error() string {
	if e.Errno == unix.EPROTO && e.Interface != "" {
		return fmt.Sprintf("wayland: %s: protocol error %d on %s@%d", e.Op, e.Code, e.Interface, e.ObjectID)
	}
	return fmt.Sprintf("wayland: %s: %v", e.Op, e.Errno)
}

// Unwrap exposes the errno so callers can match with errors.Is.
func (e *Error) Unwrap() error { return e.Errno }

func errnoOf(err error) unix.Errno {
	var errno unix.Errno
	if errors.As(err, &errno) {
		return errno
	}
	return unix.EIO
}
