package egl

import (
	"fmt"

	"github.com/1broseidon/wlframe/internal/platform"
)

// EGL attribute names and values.
const (
	attrNone                 = 0x3038
	attrSurfaceType          = 0x3033
	attrRedSize              = 0x3024
	attrGreenSize            = 0x3023
	attrBlueSize             = 0x3022
	attrRenderableType       = 0x3040
	attrContextClientVersion = 0x3098

	windowBit    = 0x0004
	openGLES2Bit = 0x0004
)

// encodeAttribs translates attribs into an EGL_NONE-terminated list.
func encodeAttribs(attribs []platform.AttribValue) ([]int32, error) {
	out := make([]int32, 0, 2*len(attribs)+1)
	for _, a := range attribs {
		switch a.Key {
		case platform.AttribSurfaceType:
			if a.Value != platform.SurfaceTypeWindow {
				return nil, fmt.Errorf("unsupported surface type %d", a.Value)
			}
			out = append(out, attrSurfaceType, windowBit)
		case platform.AttribRedSize:
			out = append(out, attrRedSize, a.Value)
		case platform.AttribGreenSize:
			out = append(out, attrGreenSize, a.Value)
		case platform.AttribBlueSize:
			out = append(out, attrBlueSize, a.Value)
		case platform.AttribRenderableType:
			if a.Value != platform.RenderableOpenGLES2 {
				return nil, fmt.Errorf("unsupported renderable type %d", a.Value)
			}
			out = append(out, attrRenderableType, openGLES2Bit)
		case platform.AttribClientVersion:
			out = append(out, attrContextClientVersion, a.Value)
		default:
			return nil, fmt.Errorf("unknown attribute %d", a.Key)
		}
	}
	return append(out, attrNone), nil
}
