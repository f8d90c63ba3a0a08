package proto

import (
	"github.com/veilproto/wlveil/internal/dispatch"
	"github.com/veilproto/wlveil/internal/object"
)

// Registry returns the complete dispatch.Registry for every interface
// this package models, for session wiring to pass to dispatch.One.
func Registry() dispatch.Registry {
	return dispatch.Registry{
		object.WlDisplay:                 WlDisplayTable,
		object.WlRegistry:                WlRegistryTable,
		object.WlCallback:                WlCallbackTable,
		object.WlCompositor:              WlCompositorTable,
		object.WlSurface:                 WlSurfaceTable,
		object.WlRegion:                  WlRegionTable,
		object.WlOutput:                  WlOutputTable,
		object.WlSeat:                    WlSeatTable,
		object.WlShm:                     WlShmTable,
		object.WlShmPool:                 WlShmPoolTable,
		object.WlBuffer:                  WlBufferTable,
		object.WpColorManagerV1:          WpColorManagerV1Table,
		object.WpColorManagementOutputV1: WpColorManagementOutputV1Table,
		object.ZwpTextInputV1:            ZwpTextInputV1Table,
		object.ZwpVirtualKeyboardV1:      ZwpVirtualKeyboardV1Table,
		object.ZwlrVirtualPointerV1:      ZwlrVirtualPointerV1Table,
		object.ZwpPointerConstraintsV1:   ZwpPointerConstraintsV1Table,
		object.ZwpLockedPointerV1:        ZwpLockedPointerV1Table,
		object.ZwpConfinedPointerV1:      ZwpConfinedPointerV1Table,
	}
}
