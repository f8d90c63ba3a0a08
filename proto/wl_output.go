package proto

import (
	"github.com/veilproto/wlveil/internal/dispatch"
	"github.com/veilproto/wlveil/internal/object"
	"github.com/veilproto/wlveil/internal/wire"
)

const MsgWlOutputReleaseSince uint32 = 3

// WlOutput describes one display; its requests are a single late-added
// release, and the rest of its surface is server-originated events
// (geometry/mode/scale/done/name/description) this proxy relays
// byte-for-byte without decoding, since nothing here needs translation:
// every argument is a plain value, never an object id.
type WlOutput struct {
	*object.Core
}

// NewWlOutput wraps core as a WlOutput.
func NewWlOutput(core *object.Core) *WlOutput {
	return &WlOutput{Core: core}
}

// TrySendRelease forwards a release request.
func (o *WlOutput) TrySendRelease() *object.Error {
	o.MarkDestroyed()
	return o.SendToServer(0, wire.NewWriter())
}

// WlOutputTable is the request-side dispatch table.
var WlOutputTable = dispatch.Table{
	{
		Name: "release", Since: 3,
		Handle: func(core *object.Core, r *wire.Reader) error {
			return errOrNil((&WlOutput{core}).TrySendRelease())
		},
	},
}
