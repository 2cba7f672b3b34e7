//go:build linux

package wayland

/*
#include <stdint.h>
*/
import "C"

import (
	"runtime/cgo"

	"github.com/1broseidon/wlframe/internal/platform"
)

func connFor(handle C.uintptr_t) *Conn {
	return cgo.Handle(uintptr(handle)).Value().(*Conn)
}

//export wlframeRegistryGlobal
func wlframeRegistryGlobal(handle C.uintptr_t, name C.uint32_t, iface *C.char, version C.uint32_t) {
	connFor(handle).sink.Global(platform.Global{
		Name:      uint32(name),
		Interface: C.GoString(iface),
		Version:   uint32(version),
	})
}

//export wlframeRegistryGlobalRemove
func wlframeRegistryGlobalRemove(handle C.uintptr_t, name C.uint32_t) {
	connFor(handle).sink.GlobalRemove(uint32(name))
}

//export wlframeWMBasePing
func wlframeWMBasePing(handle C.uintptr_t, serial C.uint32_t) {
	connFor(handle).sink.Ping(uint32(serial))
}

//export wlframeSurfaceConfigure
func wlframeSurfaceConfigure(handle C.uintptr_t, serial C.uint32_t) {
	connFor(handle).sink.Configure(uint32(serial))
}

//export wlframeToplevelConfigure
func wlframeToplevelConfigure(handle C.uintptr_t, width, height C.int32_t) {
	connFor(handle).sink.ToplevelConfigure(int32(width), int32(height))
}

//export wlframeToplevelClose
func wlframeToplevelClose(handle C.uintptr_t) {
	connFor(handle).sink.ToplevelClose()
}
