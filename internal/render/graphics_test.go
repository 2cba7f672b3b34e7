package render

import (
	"errors"
	"testing"

	"github.com/1broseidon/wlframe/internal/platform"
	"github.com/1broseidon/wlframe/internal/platform/fake"
)

func TestBindGraphics_PrefersPlatformDisplay(t *testing.T) {
	h := newHarness()

	c := h.mustInit(t, Config{})

	if c.display != fake.PlatformDisplay {
		t.Fatalf("display = %#x, want platform display", c.display)
	}
	if h.log.Count("gpu.get_display") != 0 {
		t.Fatalf("expected no generic lookup, calls: %v", h.log.Filter("gpu."))
	}
}

func TestBindGraphics_FallsBackToGenericDisplay(t *testing.T) {
	h := newHarness()
	h.gpu.PlatformExt = false

	c := h.mustInit(t, Config{})

	if c.display != fake.GenericDisplay {
		t.Fatalf("display = %#x, want generic display", c.display)
	}
}

func TestBindGraphics_NullDisplayIsFatal(t *testing.T) {
	for _, ext := range []bool{true, false} {
		h := newHarness()
		h.gpu.PlatformExt = ext
		h.gpu.NullDisplay = true

		_, err := h.init(t, Config{})
		if !errors.Is(err, platform.ErrNoDisplay) {
			t.Fatalf("ext=%v: expected ErrNoDisplay, got %v", ext, err)
		}
		if h.log.Count("gpu.initialize") != 0 || h.log.Count("gpu.terminate") != 0 {
			t.Fatalf("ext=%v: unexpected calls on null display: %v", ext, h.log.Filter("gpu."))
		}
	}
}

func TestBindGraphics_FirstConfigWins(t *testing.T) {
	h := newHarness()
	h.gpu.Configs = []platform.ConfigHandle{0x30, 0x10, 0x20}

	h.mustInit(t, Config{})

	if h.gpu.ChosenConfig != 0x30 {
		t.Fatalf("chosen config = %#x, want first entry 0x30", h.gpu.ChosenConfig)
	}
}

func TestBindGraphics_ZeroConfigsIsFatal(t *testing.T) {
	h := newHarness()
	h.gpu.Configs = []platform.ConfigHandle{}

	c, err := h.init(t, Config{})
	if !errors.Is(err, platform.ErrNoConfig) {
		t.Fatalf("expected ErrNoConfig, got %v", err)
	}
	if c != nil {
		t.Fatalf("expected nil context")
	}
	if h.log.Count("gpu.create_context") != 0 {
		t.Fatalf("expected no context creation")
	}
	if h.log.Count("gpu.terminate") != 1 {
		t.Fatalf("expected display terminated, calls: %v", h.log.Filter("gpu."))
	}
}

func TestBindGraphics_ConfigAndContextAttributes(t *testing.T) {
	h := newHarness()
	h.mustInit(t, Config{})

	want := []platform.AttribValue{
		{Key: platform.AttribSurfaceType, Value: platform.SurfaceTypeWindow},
		{Key: platform.AttribRedSize, Value: 8},
		{Key: platform.AttribGreenSize, Value: 8},
		{Key: platform.AttribBlueSize, Value: 8},
		{Key: platform.AttribRenderableType, Value: platform.RenderableOpenGLES2},
	}
	if len(h.gpu.ConfigAttribs) != len(want) {
		t.Fatalf("config attribs = %v, want %v", h.gpu.ConfigAttribs, want)
	}
	for i := range want {
		if h.gpu.ConfigAttribs[i] != want[i] {
			t.Fatalf("config attribs = %v, want %v", h.gpu.ConfigAttribs, want)
		}
	}

	ctx := h.gpu.ContextAttribs
	if len(ctx) != 1 || ctx[0].Key != platform.AttribClientVersion || ctx[0].Value != 2 {
		t.Fatalf("context attribs = %v, want client version 2", ctx)
	}
}

func TestBindGraphics_ClientVersionOverride(t *testing.T) {
	h := newHarness()
	h.mustInit(t, Config{ClientVersion: 3})

	if v := h.gpu.ContextAttribs[0].Value; v != 3 {
		t.Fatalf("client version = %d, want 3", v)
	}
}

func TestBindGraphics_WindowUsesNegotiatedSurfaceAndSize(t *testing.T) {
	h := newHarness()
	h.conn.NativeSurface = 0x1234

	h.mustInit(t, Config{})

	if h.gpu.WindowSurface != 0x1234 {
		t.Fatalf("window surface = %#x, want 0x1234", h.gpu.WindowSurface)
	}
	if h.gpu.WindowSize != [2]int{640, 480} {
		t.Fatalf("window size = %v, want [640 480]", h.gpu.WindowSize)
	}

	got := h.log.Filter("gpu.")
	want := []string{
		"gpu.get_platform_display",
		"gpu.initialize",
		"gpu.choose_configs",
		"gpu.create_context",
		"gpu.create_window",
		"gpu.create_window_surface",
		"gpu.make_current",
	}
	if !equalStrings(got, want) {
		t.Fatalf("gpu calls = %v, want %v", got, want)
	}
}

func TestBindGraphics_MakeCurrentErrorReleasesEverything(t *testing.T) {
	h := newHarness()
	h.gpu.MakeCurrentErr = errors.New("bad match")

	if _, err := h.init(t, Config{}); err == nil {
		t.Fatalf("expected error")
	}

	for _, call := range []string{"gpu.destroy_surface", "gpu.destroy_window", "gpu.destroy_context", "gpu.terminate"} {
		if h.log.Count(call) != 1 {
			t.Fatalf("expected %s once, calls: %v", call, h.log.Calls())
		}
	}
}
