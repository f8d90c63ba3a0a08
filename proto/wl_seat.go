package proto

import (
	"github.com/veilproto/wlveil/internal/dispatch"
	"github.com/veilproto/wlveil/internal/object"
	"github.com/veilproto/wlveil/internal/wire"
)

const (
	MsgWlSeatGetPointerSince  uint32 = 1
	MsgWlSeatGetKeyboardSince uint32 = 1
	MsgWlSeatGetTouchSince    uint32 = 1
	MsgWlSeatReleaseSince     uint32 = 5
)

// WlSeat groups the input devices one user has; its requests each bind a
// new_id to one input-device interface.
type WlSeat struct {
	*object.Core
}

// NewWlSeat wraps core as a WlSeat.
func NewWlSeat(core *object.Core) *WlSeat {
	return &WlSeat{Core: core}
}

// TrySendRelease forwards a release request.
func (s *WlSeat) TrySendRelease() *object.Error {
	s.MarkDestroyed()
	return s.SendToServer(3, wire.NewWriter())
}

// WlSeatCapabilities is the bitfield wl_seat.capabilities events carry.
type WlSeatCapabilities uint32

const (
	WlSeatCapabilityPointer  WlSeatCapabilities = 1
	WlSeatCapabilityKeyboard WlSeatCapabilities = 2
	WlSeatCapabilityTouch    WlSeatCapabilities = 4
)

func (c WlSeatCapabilities) String() string {
	return renderBitfield(uint32(c), nil, []namedBit{
		{uint32(WlSeatCapabilityPointer), "pointer"},
		{uint32(WlSeatCapabilityKeyboard), "keyboard"},
		{uint32(WlSeatCapabilityTouch), "touch"},
	}, "none")
}

// WlSeatTable is the request-side dispatch table. get_pointer,
// get_keyboard, and get_touch decode but do not forward: wl_pointer,
// wl_keyboard, and wl_touch aren't among the interfaces this proxy
// models (see object.Interface), so there is no Core type to adopt the
// new_id into. A deployment that needs input-device passthrough would
// add those three interfaces the same way wl_surface was added.
var WlSeatTable = dispatch.Table{
	{
		Name:      "get_pointer",
		Signature: []wire.ArgKind{wire.ArgNewID},
		Since:     1,
		Handle: func(c *object.Core, r *wire.Reader) error {
			_, err := r.ReadUint32()
			return err
		},
	},
	{
		Name:      "get_keyboard",
		Signature: []wire.ArgKind{wire.ArgNewID},
		Since:     1,
		Handle: func(c *object.Core, r *wire.Reader) error {
			_, err := r.ReadUint32()
			return err
		},
	},
	{
		Name:      "get_touch",
		Signature: []wire.ArgKind{wire.ArgNewID},
		Since:     1,
		Handle: func(c *object.Core, r *wire.Reader) error {
			_, err := r.ReadUint32()
			return err
		},
	},
	{
		Name: "release", Since: 5,
		Handle: func(core *object.Core, r *wire.Reader) error {
			return errOrNil((&WlSeat{core}).TrySendRelease())
		},
	},
}
