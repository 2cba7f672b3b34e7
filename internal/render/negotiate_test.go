package render

import (
	"errors"
	"strings"
	"testing"

	"github.com/1broseidon/wlframe/internal/platform/fake"
)

func TestInit_ConfigureAlreadyQueuedDispatchesOnce(t *testing.T) {
	h := newHarness()

	c := h.mustInit(t, Config{})

	if h.conn.DispatchCalls != 1 {
		t.Fatalf("expected exactly one blocking dispatch, got %d", h.conn.DispatchCalls)
	}
	if !c.Configured() {
		t.Fatalf("expected context to be configured")
	}
}

func TestInit_AcksConfigureBeforeAnyGPUCall(t *testing.T) {
	h := newHarness()

	h.mustInit(t, Config{})

	calls := h.log.Calls()
	ack := h.log.Index("shell.ack_configure 7")
	if ack < 0 {
		t.Fatalf("expected configure ack, calls: %v", calls)
	}
	if first := firstIndex(calls, "gpu."); first < ack {
		t.Fatalf("GPU call at %d before configure ack at %d: %v", first, ack, calls)
	}
	if win := h.log.Index("gpu.create_window"); win < ack {
		t.Fatalf("window created before configure ack: %v", calls)
	}
}

func TestInit_WaitsAcrossBatchesUntilConfigure(t *testing.T) {
	h := newHarness()
	h.conn.Batches = [][]fake.Event{
		{fake.PingEvent(1)},
		{fake.ToplevelConfigureEvent(800, 600)},
		{fake.ConfigureEvent(9)},
	}

	c := h.mustInit(t, Config{})

	if h.conn.DispatchCalls != 3 {
		t.Fatalf("expected 3 dispatches, got %d", h.conn.DispatchCalls)
	}
	calls := h.log.Calls()
	if first := firstIndex(calls, "gpu."); first < h.log.Index("shell.ack_configure 9") {
		t.Fatalf("GPU used before configure: %v", calls)
	}
	if w, hgt := c.SuggestedSize(); w != 800 || hgt != 600 {
		t.Fatalf("SuggestedSize() = %dx%d, want 800x600", w, hgt)
	}
	if w, hgt := c.Size(); w != 640 || hgt != 480 {
		t.Fatalf("Size() = %dx%d, requested size must stay authoritative", w, hgt)
	}
}

func TestInit_AnswersPingWithSameSerial(t *testing.T) {
	h := newHarness()
	h.conn.Batches = [][]fake.Event{{fake.PingEvent(42), fake.PingEvent(43), fake.ConfigureEvent(7)}}

	h.mustInit(t, Config{})

	got := h.conn.WMBase.Pongs
	if len(got) != 2 || got[0] != 42 || got[1] != 43 {
		t.Fatalf("pongs = %v, want [42 43]", got)
	}
}

func TestInit_ConfiguredOnlyOnce(t *testing.T) {
	h := newHarness()
	h.conn.Batches = [][]fake.Event{{fake.ConfigureEvent(7), fake.ConfigureEvent(8)}}

	c := h.mustInit(t, Config{})

	acks := h.conn.WMBase.Shell.Acks
	if len(acks) != 2 || acks[0] != 7 || acks[1] != 8 {
		t.Fatalf("acks = %v, want every configure acked", acks)
	}
	if !c.Configured() {
		t.Fatalf("expected configured")
	}
}

func TestInit_CommitsGeometryTitleAndAppID(t *testing.T) {
	h := newHarness()

	h.mustInit(t, Config{Width: 320, Height: 200, Title: "demo", AppID: "org.example.demo"})

	shell := h.conn.WMBase.Shell
	if shell.Geometry != [4]int{0, 0, 320, 200} {
		t.Fatalf("geometry = %v, want [0 0 320 200]", shell.Geometry)
	}
	if shell.Role.Title != "demo" || shell.Role.AppID != "org.example.demo" {
		t.Fatalf("title/app id = %q/%q", shell.Role.Title, shell.Role.AppID)
	}
	calls := h.log.Calls()
	if h.log.Index("surface.commit") > h.log.Index("conn.dispatch") {
		t.Fatalf("expected commit before configure wait: %v", calls)
	}
	if h.log.Index("shell.set_window_geometry 0 0 320 200") > h.log.Index("surface.commit") {
		t.Fatalf("expected geometry before commit: %v", calls)
	}
}

func TestInit_DispatchErrorAbortsBeforeGPU(t *testing.T) {
	h := newHarness()
	h.conn.DispatchErr = errors.New("broken pipe")

	_, err := h.init(t, Config{})
	if err == nil || !strings.Contains(err.Error(), "broken pipe") {
		t.Fatalf("expected dispatch error, got %v", err)
	}
	if n := h.log.Count("gpu."); n != 0 {
		t.Fatalf("expected no GPU calls, got %v", h.log.Filter("gpu."))
	}

	want := []string{
		"toplevel.destroy",
		"shell.destroy",
		"surface.destroy",
		"wmbase.destroy",
		"compositor.destroy",
		"conn.disconnect",
	}
	got := h.log.Calls()
	got = got[len(got)-len(want):]
	if !equalStrings(got, want) {
		t.Fatalf("teardown = %v, want %v", got, want)
	}
}

func TestInit_ShellObjectErrorsAreFatal(t *testing.T) {
	tests := []struct {
		name string
		set  func(c *fake.Conn)
	}{
		{"surface", func(c *fake.Conn) { c.CreateSurfErr = errors.New("nope") }},
		{"shell surface", func(c *fake.Conn) { c.ShellSurfErr = errors.New("nope") }},
		{"toplevel", func(c *fake.Conn) { c.ToplevelErr = errors.New("nope") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness()
			tt.set(h.conn)

			if _, err := h.init(t, Config{}); err == nil {
				t.Fatalf("expected error")
			}
			if h.conn.DispatchCalls != 0 {
				t.Fatalf("expected no dispatch, got %d", h.conn.DispatchCalls)
			}
		})
	}
}
