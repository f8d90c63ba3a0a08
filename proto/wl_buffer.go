package proto

import (
	"github.com/veilproto/wlveil/internal/dispatch"
	"github.com/veilproto/wlveil/internal/object"
	"github.com/veilproto/wlveil/internal/wire"
)

// WlBuffer is a pixel buffer ready to attach to a surface; its one
// request destroys it, and its one event (release) tells the client the
// compositor is done reading it.
type WlBuffer struct {
	*object.Core
}

// NewWlBuffer wraps core as a WlBuffer.
func NewWlBuffer(core *object.Core) *WlBuffer {
	return &WlBuffer{Core: core}
}

// TrySendDestroy forwards a destroy request.
func (b *WlBuffer) TrySendDestroy() *object.Error {
	b.MarkDestroyed()
	return b.SendToServer(0, wire.NewWriter())
}

// WlBufferTable is the request-side dispatch table.
var WlBufferTable = dispatch.Table{
	{
		Name: "destroy", Since: 1,
		Handle: func(core *object.Core, r *wire.Reader) error {
			return errOrNil((&WlBuffer{core}).TrySendDestroy())
		},
	},
}
