package object

// Interface names the representative slice of Wayland interfaces this
// proxy understands well enough to validate and, where configured,
// intercept. An object whose interface is not in this table is tagged
// InterfaceUnknown: events addressed to it are relayed byte-for-byte with
// only the receiver rewritten, while requests addressed to it have no
// dispatch table and fail with UnknownMessageID.
type Interface int

const (
	InterfaceUnknown Interface = iota
	WlDisplay
	WlRegistry
	WlCallback
	WlCompositor
	WlSurface
	WlRegion
	WlOutput
	WlSeat
	WlShm
	WlShmPool
	WlBuffer
	WpColorManagerV1
	WpColorManagementOutputV1
	ZwpTextInputV1
	ZwpVirtualKeyboardV1
	ZwlrVirtualPointerV1
	ZwpPointerConstraintsV1
	ZwpLockedPointerV1
	ZwpConfinedPointerV1
)

var interfaceNames = map[Interface]string{
	WlDisplay:                 "wl_display",
	WlRegistry:                "wl_registry",
	WlCallback:                "wl_callback",
	WlCompositor:              "wl_compositor",
	WlSurface:                 "wl_surface",
	WlRegion:                  "wl_region",
	WlOutput:                  "wl_output",
	WlSeat:                    "wl_seat",
	WlShm:                     "wl_shm",
	WlShmPool:                 "wl_shm_pool",
	WlBuffer:                  "wl_buffer",
	WpColorManagerV1:          "wp_color_manager_v1",
	WpColorManagementOutputV1: "wp_color_management_output_v1",
	ZwpTextInputV1:            "zwp_text_input_v1",
	ZwpVirtualKeyboardV1:      "zwp_virtual_keyboard_v1",
	ZwlrVirtualPointerV1:      "zwlr_virtual_pointer_v1",
	ZwpPointerConstraintsV1:   "zwp_pointer_constraints_v1",
	ZwpLockedPointerV1:        "zwp_locked_pointer_v1",
	ZwpConfinedPointerV1:      "zwp_confined_pointer_v1",
}

func (i Interface) String() string {
	if n, ok := interfaceNames[i]; ok {
		return n
	}
	return "unknown"
}

var namesToInterface = func() map[string]Interface {
	m := make(map[string]Interface, len(interfaceNames))
	for i, n := range interfaceNames {
		m[n] = i
	}
	return m
}()

// LookupInterface resolves an interface name (as it appears in a
// wl_registry.global event or a bind request) to its Interface value. The
// second return is false for any interface this proxy does not model,
// which the caller treats as InterfaceUnknown.
func LookupInterface(name string) (Interface, bool) {
	i, ok := namesToInterface[name]
	return i, ok
}
