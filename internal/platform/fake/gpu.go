package fake

import (
	"time"

	"github.com/1broseidon/wlframe/internal/platform"
)

// GPU is a scripted GPU driver.
type GPU struct {
	Log *Log

	// PlatformExt reports whether the platform-display extension exists.
	PlatformExt bool
	// NullDisplay makes both display lookups return the null handle.
	NullDisplay bool
	// Configs is returned by ChooseConfigs. Nil means one config (0xc1).
	Configs []platform.ConfigHandle

	InitErr        error
	ChooseErr      error
	ContextErr     error
	WindowErr      error
	SurfaceErr     error
	MakeCurrentErr error
	// SwapErrs is consumed one entry per SwapBuffers call.
	SwapErrs []error

	ConfigAttribs  []platform.AttribValue
	ContextAttribs []platform.AttribValue
	ChosenConfig   platform.ConfigHandle
	WindowSize     [2]int
	WindowSurface  uintptr
	Swaps          int
}

// Handles returned by the extension and fallback display lookups.
const (
	PlatformDisplay platform.DisplayHandle = 0xe1
	GenericDisplay  platform.DisplayHandle = 0xe2
)

func (g *GPU) GetPlatformDisplay(native uintptr) (platform.DisplayHandle, bool) {
	g.Log.add("gpu.get_platform_display")
	if !g.PlatformExt {
		return 0, false
	}
	if g.NullDisplay {
		return 0, true
	}
	return PlatformDisplay, true
}

func (g *GPU) GetDisplay(native uintptr) platform.DisplayHandle {
	g.Log.add("gpu.get_display")
	if g.NullDisplay {
		return 0
	}
	return GenericDisplay
}

func (g *GPU) Initialize(d platform.DisplayHandle) (int, int, error) {
	g.Log.add("gpu.initialize")
	if g.InitErr != nil {
		return 0, 0, g.InitErr
	}
	return 1, 5, nil
}

func (g *GPU) ChooseConfigs(d platform.DisplayHandle, attribs []platform.AttribValue) ([]platform.ConfigHandle, error) {
	g.Log.add("gpu.choose_configs")
	g.ConfigAttribs = append([]platform.AttribValue(nil), attribs...)
	if g.ChooseErr != nil {
		return nil, g.ChooseErr
	}
	if g.Configs == nil {
		return []platform.ConfigHandle{0xc1}, nil
	}
	return g.Configs, nil
}

func (g *GPU) CreateContext(d platform.DisplayHandle, cfg platform.ConfigHandle, attribs []platform.AttribValue) (platform.ContextHandle, error) {
	g.Log.add("gpu.create_context")
	g.ChosenConfig = cfg
	g.ContextAttribs = append([]platform.AttribValue(nil), attribs...)
	if g.ContextErr != nil {
		return 0, g.ContextErr
	}
	return 0xcc, nil
}

func (g *GPU) CreateWindow(surface uintptr, width, height int) (platform.WindowHandle, error) {
	g.Log.add("gpu.create_window")
	g.WindowSurface = surface
	g.WindowSize = [2]int{width, height}
	if g.WindowErr != nil {
		return 0, g.WindowErr
	}
	return 0xaa, nil
}

func (g *GPU) CreateWindowSurface(d platform.DisplayHandle, cfg platform.ConfigHandle, w platform.WindowHandle) (platform.SurfaceHandle, error) {
	g.Log.add("gpu.create_window_surface")
	if g.SurfaceErr != nil {
		return 0, g.SurfaceErr
	}
	return 0xbb, nil
}

func (g *GPU) MakeCurrent(d platform.DisplayHandle, s platform.SurfaceHandle, c platform.ContextHandle) error {
	g.Log.add("gpu.make_current")
	return g.MakeCurrentErr
}

func (g *GPU) SwapBuffers(d platform.DisplayHandle, s platform.SurfaceHandle) error {
	g.Swaps++
	g.Log.add("gpu.swap")
	if len(g.SwapErrs) == 0 {
		return nil
	}
	err := g.SwapErrs[0]
	g.SwapErrs = g.SwapErrs[1:]
	return err
}

func (g *GPU) DestroySurface(d platform.DisplayHandle, s platform.SurfaceHandle) {
	g.Log.add("gpu.destroy_surface")
}

func (g *GPU) DestroyWindow(w platform.WindowHandle) { g.Log.add("gpu.destroy_window") }

func (g *GPU) DestroyContext(d platform.DisplayHandle, c platform.ContextHandle) {
	g.Log.add("gpu.destroy_context")
}

func (g *GPU) Terminate(d platform.DisplayHandle) { g.Log.add("gpu.terminate") }

// Poll records a single ClientWaitSync call.
type Poll struct {
	Sync    platform.Sync
	Flush   bool
	Timeout time.Duration
}

// Fences is a scripted fence API.
type Fences struct {
	Log *Log

	// Results is consumed one entry per poll; Default applies afterwards.
	Results []platform.WaitResult
	Default platform.WaitResult

	CreateErr error
	Polls     []Poll
	Created   int
	Deleted   []platform.Sync
	// MaxLive is the highest number of simultaneously live fences seen.
	MaxLive int

	next platform.Sync
	live map[platform.Sync]bool
}

// Live returns the number of fences created and not yet deleted.
func (f *Fences) Live() int { return len(f.live) }

func (f *Fences) FenceSync() (platform.Sync, error) {
	f.Log.add("fence.create")
	if f.CreateErr != nil {
		return 0, f.CreateErr
	}
	if f.live == nil {
		f.live = make(map[platform.Sync]bool)
	}
	f.next++
	f.Created++
	f.live[f.next] = true
	if len(f.live) > f.MaxLive {
		f.MaxLive = len(f.live)
	}
	return f.next, nil
}

func (f *Fences) ClientWaitSync(s platform.Sync, flush bool, timeout time.Duration) platform.WaitResult {
	f.Log.add("fence.wait")
	f.Polls = append(f.Polls, Poll{Sync: s, Flush: flush, Timeout: timeout})
	if len(f.Results) == 0 {
		return f.Default
	}
	r := f.Results[0]
	f.Results = f.Results[1:]
	return r
}

func (f *Fences) DeleteSync(s platform.Sync) {
	f.Log.add("fence.delete")
	f.Deleted = append(f.Deleted, s)
	delete(f.live, s)
}

var (
	_ platform.GPU      = (*GPU)(nil)
	_ platform.FenceAPI = (*Fences)(nil)
)
