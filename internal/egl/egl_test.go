package egl

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/1broseidon/wlframe/internal/platform"
)

func TestError_ContextLostMatchesSentinel(t *testing.T) {
	err := fmt.Errorf("present frame 3: %w", &Error{Op: "swap buffers", Code: codeContextLost})
	if !errors.Is(err, platform.ErrContextLost) {
		t.Fatalf("expected ErrContextLost match")
	}

	other := &Error{Op: "swap buffers", Code: codeBadSurface}
	if errors.Is(other, platform.ErrContextLost) {
		t.Fatalf("EGL_BAD_SURFACE must not match ErrContextLost")
	}
}

func TestError_Format(t *testing.T) {
	got := (&Error{Op: "make current", Code: codeBadMatch}).Error()
	if got != "egl: make current: EGL_BAD_MATCH (0x3009)" {
		t.Fatalf("Error() = %q", got)
	}
	if got := (&Error{Op: "x", Code: 0x1}).Error(); !strings.Contains(got, "unknown EGL error") {
		t.Fatalf("Error() = %q", got)
	}
}

func TestEncodeAttribs(t *testing.T) {
	got, err := encodeAttribs([]platform.AttribValue{
		{Key: platform.AttribSurfaceType, Value: platform.SurfaceTypeWindow},
		{Key: platform.AttribRedSize, Value: 8},
		{Key: platform.AttribGreenSize, Value: 8},
		{Key: platform.AttribBlueSize, Value: 8},
		{Key: platform.AttribRenderableType, Value: platform.RenderableOpenGLES2},
	})
	if err != nil {
		t.Fatalf("encodeAttribs: %v", err)
	}
	want := []int32{
		attrSurfaceType, windowBit,
		attrRedSize, 8,
		attrGreenSize, 8,
		attrBlueSize, 8,
		attrRenderableType, openGLES2Bit,
		attrNone,
	}
	if len(got) != len(want) {
		t.Fatalf("encodeAttribs = %#x, want %#x", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("encodeAttribs = %#x, want %#x", got, want)
		}
	}
}

func TestEncodeAttribs_ContextVersion(t *testing.T) {
	got, err := encodeAttribs([]platform.AttribValue{{Key: platform.AttribClientVersion, Value: 3}})
	if err != nil {
		t.Fatalf("encodeAttribs: %v", err)
	}
	if len(got) != 3 || got[0] != attrContextClientVersion || got[1] != 3 || got[2] != attrNone {
		t.Fatalf("encodeAttribs = %#x", got)
	}
}

func TestEncodeAttribs_Rejects(t *testing.T) {
	bad := [][]platform.AttribValue{
		{{Key: platform.AttribSurfaceType, Value: 99}},
		{{Key: platform.AttribRenderableType, Value: 99}},
		{{Key: platform.Attrib(99), Value: 1}},
	}
	for _, attribs := range bad {
		if _, err := encodeAttribs(attribs); err == nil {
			t.Fatalf("expected error for %v", attribs)
		}
	}
}
