// Package fake provides in-memory implementations of the platform interfaces
// that record every call in a shared, ordered log.
package fake

import (
	"errors"
	"fmt"
	"strings"

	"github.com/1broseidon/wlframe/internal/platform"
)

// ErrWouldBlock is returned by Conn.Dispatch when no event batch is scripted;
// a real connection would block forever.
var ErrWouldBlock = errors.New("fake: dispatch would block forever")

// Log is an ordered record of calls across all fakes sharing it.
type Log struct {
	calls []string
}

func (l *Log) add(format string, args ...any) {
	if l == nil {
		return
	}
	l.calls = append(l.calls, fmt.Sprintf(format, args...))
}

// Record appends a caller-defined entry, such as a draw callback marker.
func (l *Log) Record(name string) {
	l.add("%s", name)
}

// Calls returns a copy of the recorded calls.
func (l *Log) Calls() []string {
	if l == nil {
		return nil
	}
	return append([]string(nil), l.calls...)
}

// Index returns the position of the first call equal to name, or -1.
func (l *Log) Index(name string) int {
	for i, c := range l.Calls() {
		if c == name {
			return i
		}
	}
	return -1
}

// Count returns the number of calls with the given prefix.
func (l *Log) Count(prefix string) int {
	n := 0
	for _, c := range l.Calls() {
		if strings.HasPrefix(c, prefix) {
			n++
		}
	}
	return n
}

// Filter returns the calls with the given prefix, in order.
func (l *Log) Filter(prefix string) []string {
	var out []string
	for _, c := range l.Calls() {
		if strings.HasPrefix(c, prefix) {
			out = append(out, c)
		}
	}
	return out
}

type eventKind int

const (
	evGlobal eventKind = iota
	evGlobalRemove
	evPing
	evConfigure
	evToplevelConfigure
	evToplevelClose
)

// Event is a scripted protocol event.
type Event struct {
	kind   eventKind
	global platform.Global
	serial uint32
	width  int32
	height int32
}

// GlobalEvent advertises a registry global.
func GlobalEvent(name uint32, iface string, version uint32) Event {
	return Event{kind: evGlobal, global: platform.Global{Name: name, Interface: iface, Version: version}}
}

// GlobalRemoveEvent announces removal of a registry global.
func GlobalRemoveEvent(name uint32) Event {
	return Event{kind: evGlobalRemove, global: platform.Global{Name: name}}
}

// PingEvent is a wm-base liveness ping.
func PingEvent(serial uint32) Event { return Event{kind: evPing, serial: serial} }

// ConfigureEvent is a shell-surface configure.
func ConfigureEvent(serial uint32) Event { return Event{kind: evConfigure, serial: serial} }

// ToplevelConfigureEvent is a toplevel size suggestion.
func ToplevelConfigureEvent(w, h int32) Event {
	return Event{kind: evToplevelConfigure, width: w, height: h}
}

// ToplevelCloseEvent is a toplevel close request.
func ToplevelCloseEvent() Event { return Event{kind: evToplevelClose} }

// Conn is a scripted display connection.
type Conn struct {
	Log  *Log
	Sink platform.EventSink

	// Globals are delivered by the first Roundtrip after Registry.
	Globals []platform.Global
	// Batches are delivered one per Dispatch call.
	Batches [][]Event
	// Pending is drained by each DispatchPending call.
	Pending []Event
	// PendingScript, when set, supplies the events for the n-th
	// DispatchPending call (0-based) instead of Pending.
	PendingScript func(n int) []Event

	DialErr        error
	RegistryErr    error
	DispatchErr    error
	PendingErr     error
	BindErr        error
	CreateSurfErr  error
	ShellSurfErr   error
	ToplevelErr    error
	NativeDisplay  uintptr
	NativeSurface  uintptr
	DispatchCalls  int
	PendingCalls   int
	RoundtripCalls int

	Compositor *Compositor
	WMBase     *WMBase

	registryRequested bool
	globalsDelivered  bool
}

// Dialer returns a platform.Dialer that hands out c.
func (c *Conn) Dialer() platform.Dialer {
	return func(sink platform.EventSink) (platform.Conn, error) {
		c.Log.add("conn.dial")
		if c.DialErr != nil {
			return nil, c.DialErr
		}
		c.Sink = sink
		return c, nil
	}
}

func (c *Conn) Registry() error {
	c.Log.add("conn.registry")
	if c.RegistryErr != nil {
		return c.RegistryErr
	}
	c.registryRequested = true
	return nil
}

func (c *Conn) BindCompositor(g platform.Global) (platform.Compositor, error) {
	c.Log.add("conn.bind %s %d", g.Interface, g.Name)
	if c.BindErr != nil {
		return nil, c.BindErr
	}
	c.Compositor = &Compositor{log: c.Log, conn: c, Global: g}
	return c.Compositor, nil
}

func (c *Conn) BindWMBase(g platform.Global) (platform.WMBase, error) {
	c.Log.add("conn.bind %s %d", g.Interface, g.Name)
	if c.BindErr != nil {
		return nil, c.BindErr
	}
	c.WMBase = &WMBase{log: c.Log, conn: c, Global: g}
	return c.WMBase, nil
}

func (c *Conn) Dispatch() error {
	c.DispatchCalls++
	c.Log.add("conn.dispatch")
	if c.DispatchErr != nil {
		return c.DispatchErr
	}
	if len(c.Batches) == 0 {
		return ErrWouldBlock
	}
	batch := c.Batches[0]
	c.Batches = c.Batches[1:]
	c.deliver(batch)
	return nil
}

func (c *Conn) DispatchPending() error {
	n := c.PendingCalls
	c.PendingCalls++
	c.Log.add("conn.dispatch_pending")
	if c.PendingErr != nil {
		return c.PendingErr
	}
	var events []Event
	if c.PendingScript != nil {
		events = c.PendingScript(n)
	} else {
		events = c.Pending
		c.Pending = nil
	}
	c.deliver(events)
	return nil
}

func (c *Conn) Roundtrip() error {
	c.RoundtripCalls++
	c.Log.add("conn.roundtrip")
	if c.registryRequested && !c.globalsDelivered {
		c.globalsDelivered = true
		for _, g := range c.Globals {
			c.Sink.Global(g)
		}
	}
	return nil
}

func (c *Conn) Native() uintptr {
	if c.NativeDisplay == 0 {
		return 0xd15
	}
	return c.NativeDisplay
}

func (c *Conn) Disconnect() { c.Log.add("conn.disconnect") }

func (c *Conn) deliver(events []Event) {
	for _, ev := range events {
		switch ev.kind {
		case evGlobal:
			c.Sink.Global(ev.global)
		case evGlobalRemove:
			c.Sink.GlobalRemove(ev.global.Name)
		case evPing:
			c.Sink.Ping(ev.serial)
		case evConfigure:
			c.Sink.Configure(ev.serial)
		case evToplevelConfigure:
			c.Sink.ToplevelConfigure(ev.width, ev.height)
		case evToplevelClose:
			c.Sink.ToplevelClose()
		}
	}
}

// Compositor is a fake wl_compositor.
type Compositor struct {
	Global  platform.Global
	Surface *Surface

	log  *Log
	conn *Conn
}

func (c *Compositor) CreateSurface() (platform.Surface, error) {
	c.log.add("compositor.create_surface")
	if c.conn.CreateSurfErr != nil {
		return nil, c.conn.CreateSurfErr
	}
	native := c.conn.NativeSurface
	if native == 0 {
		native = 0x5f
	}
	c.Surface = &Surface{log: c.log, native: native}
	return c.Surface, nil
}

func (c *Compositor) Destroy() { c.log.add("compositor.destroy") }

// WMBase is a fake xdg_wm_base.
type WMBase struct {
	Global platform.Global
	Pongs  []uint32
	Shell  *ShellSurface

	log  *Log
	conn *Conn
}

func (w *WMBase) ShellSurface(s platform.Surface) (platform.ShellSurface, error) {
	w.log.add("wmbase.shell_surface")
	if w.conn.ShellSurfErr != nil {
		return nil, w.conn.ShellSurfErr
	}
	w.Shell = &ShellSurface{log: w.log, conn: w.conn}
	return w.Shell, nil
}

func (w *WMBase) Pong(serial uint32) {
	w.log.add("wmbase.pong %d", serial)
	w.Pongs = append(w.Pongs, serial)
}

func (w *WMBase) Destroy() { w.log.add("wmbase.destroy") }

// Surface is a fake wl_surface.
type Surface struct {
	Commits int

	log    *Log
	native uintptr
}

func (s *Surface) Commit() {
	s.Commits++
	s.log.add("surface.commit")
}

func (s *Surface) Native() uintptr { return s.native }

func (s *Surface) Destroy() { s.log.add("surface.destroy") }

// ShellSurface is a fake xdg_surface.
type ShellSurface struct {
	Geometry [4]int
	Acks     []uint32
	Role     *Toplevel

	log  *Log
	conn *Conn
}

func (s *ShellSurface) Toplevel() (platform.Toplevel, error) {
	s.log.add("shell.toplevel")
	if s.conn.ToplevelErr != nil {
		return nil, s.conn.ToplevelErr
	}
	s.Role = &Toplevel{log: s.log}
	return s.Role, nil
}

func (s *ShellSurface) SetWindowGeometry(x, y, width, height int) {
	s.log.add("shell.set_window_geometry %d %d %d %d", x, y, width, height)
	s.Geometry = [4]int{x, y, width, height}
}

func (s *ShellSurface) AckConfigure(serial uint32) {
	s.log.add("shell.ack_configure %d", serial)
	s.Acks = append(s.Acks, serial)
}

func (s *ShellSurface) Destroy() { s.log.add("shell.destroy") }

// Toplevel is a fake xdg_toplevel.
type Toplevel struct {
	Title string
	AppID string

	log *Log
}

func (t *Toplevel) SetTitle(title string) {
	t.log.add("toplevel.set_title")
	t.Title = title
}

func (t *Toplevel) SetAppID(id string) {
	t.log.add("toplevel.set_app_id")
	t.AppID = id
}

func (t *Toplevel) Destroy() { t.log.add("toplevel.destroy") }

var (
	_ platform.Conn         = (*Conn)(nil)
	_ platform.Compositor   = (*Compositor)(nil)
	_ platform.WMBase       = (*WMBase)(nil)
	_ platform.Surface      = (*Surface)(nil)
	_ platform.ShellSurface = (*ShellSurface)(nil)
	_ platform.Toplevel     = (*Toplevel)(nil)
)
