package proto

import (
	"github.com/veilproto/wlveil/internal/dispatch"
	"github.com/veilproto/wlveil/internal/object"
	"github.com/veilproto/wlveil/internal/wire"
)

// WlCallback has no requests; it exists only to carry a single "done"
// event, after which the server implicitly destroys it (wl_display's
// delete_id event frees its client ID; no explicit destroy request
// exists for this interface).
type WlCallback struct {
	*object.Core
}

// NewWlCallback wraps core as a WlCallback.
func NewWlCallback(core *object.Core) *WlCallback {
	return &WlCallback{Core: core}
}

// WlCallbackDoneEvent is the decoded body of a wl_callback.done event.
type WlCallbackDoneEvent struct {
	// CallbackData's meaning depends on what created the callback: an
	// opaque serial for wl_display.sync, a timestamp for wl_surface.frame.
	CallbackData uint32
}

// DecodeDone decodes a wl_callback.done event body.
func DecodeDone(r *wire.Reader) (WlCallbackDoneEvent, error) {
	data, err := r.ReadUint32()
	if err != nil {
		return WlCallbackDoneEvent{}, err
	}
	return WlCallbackDoneEvent{CallbackData: data}, nil
}

// WlCallbackTable is empty: wl_callback has no client-to-server requests.
var WlCallbackTable = dispatch.Table{}
