package proto

import (
	"github.com/veilproto/wlveil/internal/dispatch"
	"github.com/veilproto/wlveil/internal/object"
	"github.com/veilproto/wlveil/internal/wire"
)

// wl_display is the one object every connection has from the moment it
// opens (client ID 1, implicitly bound, never destroyed). Its two events,
// error and delete_id, are handled specially by veil's RunServerEvents
// rather than through a per-object Handler, the same way
// wlclient.Display.handleDisplayEvent special-cases opcode 0 and 1
// instead of dispatching them through the generic listener path.
const (
	MsgWlDisplaySyncSince       uint32 = 1
	MsgWlDisplayGetRegistrySince uint32 = 1
)

// WlDisplay is the display object's stub.
type WlDisplay struct {
	*object.Core
}

// NewWlDisplay wraps core as a WlDisplay. Every connection's display
// object is ClientID 1, version 1, created implicitly by
// session.State.AcceptOne rather than via a bind request.
func NewWlDisplay(core *object.Core) *WlDisplay {
	return &WlDisplay{Core: core}
}

// WlDisplayErrorEvent is the decoded body of a wl_display.error event:
// the offending object's ID (in whichever namespace the sending side
// uses), a protocol-defined error code, and a human-readable message.
type WlDisplayErrorEvent struct {
	ObjectID uint32
	Code     uint32
	Message  string
}

// WlDisplayDeleteIDEvent is the decoded body of a wl_display.delete_id
// event: the ID (in whichever namespace the sending side uses) that the
// sender now considers free to reuse.
type WlDisplayDeleteIDEvent struct {
	ID uint32
}

// DecodeError decodes a wl_display.error event body.
func DecodeError(r *wire.Reader) (WlDisplayErrorEvent, error) {
	objID, err := r.ReadUint32()
	if err != nil {
		return WlDisplayErrorEvent{}, err
	}
	code, err := r.ReadUint32()
	if err != nil {
		return WlDisplayErrorEvent{}, err
	}
	msg, _, err := r.ReadString(false)
	if err != nil {
		return WlDisplayErrorEvent{}, err
	}
	return WlDisplayErrorEvent{ObjectID: objID, Code: code, Message: msg}, nil
}

// DecodeDeleteID decodes a wl_display.delete_id event body.
func DecodeDeleteID(r *wire.Reader) (WlDisplayDeleteIDEvent, error) {
	id, err := r.ReadUint32()
	if err != nil {
		return WlDisplayDeleteIDEvent{}, err
	}
	return WlDisplayDeleteIDEvent{ID: id}, nil
}

// NewSendSync forwards a sync request, adopting the wl_callback child
// the call's new_id names.
func (d *WlDisplay) NewSendSync(newCallbackClientID uint32) (*WlCallback, *object.Error) {
	child, adoptErr := d.AdoptNewID(object.WlCallback, d.Version, newCallbackClientID)
	if adoptErr != nil {
		return nil, adoptErr
	}
	serverID, err := d.AllocServerID()
	if err != nil {
		return nil, err
	}
	d.Owner.BindServerID(child, serverID)
	if sendErr := d.SendToServer(0, wire.NewWriter().Uint32(serverID)); sendErr != nil {
		return nil, sendErr
	}
	return NewWlCallback(child), nil
}

// NewSendGetRegistry forwards a get_registry request, adopting the
// wl_registry child the call's new_id names.
func (d *WlDisplay) NewSendGetRegistry(newRegistryClientID uint32) (*WlRegistry, *object.Error) {
	child, adoptErr := d.AdoptNewID(object.WlRegistry, d.Version, newRegistryClientID)
	if adoptErr != nil {
		return nil, adoptErr
	}
	serverID, err := d.AllocServerID()
	if err != nil {
		return nil, err
	}
	d.Owner.BindServerID(child, serverID)
	if sendErr := d.SendToServer(1, wire.NewWriter().Uint32(serverID)); sendErr != nil {
		return nil, sendErr
	}
	return NewWlRegistry(child), nil
}

// WlDisplayTable is the request-side dispatch table: sync (opcode 0)
// takes a new_id for a wl_callback that fires once the server has
// processed every request before it; get_registry (opcode 1) takes a
// new_id for the wl_registry. Both decode the new_id and immediately
// forward through the matching NewSend* method above, which allocates
// the shadow object so later events addressed to the new id can be
// resolved.
var WlDisplayTable = dispatch.Table{
	{
		Name:      "sync",
		Signature: []wire.ArgKind{wire.ArgNewID},
		Since:     1,
		Handle: func(core *object.Core, r *wire.Reader) error {
			newID, err := r.ReadUint32()
			if err != nil {
				return err
			}
			_, sendErr := (&WlDisplay{core}).NewSendSync(newID)
			return errOrNil(sendErr)
		},
	},
	{
		Name:      "get_registry",
		Signature: []wire.ArgKind{wire.ArgNewID},
		Since:     1,
		Handle: func(core *object.Core, r *wire.Reader) error {
			newID, err := r.ReadUint32()
			if err != nil {
				return err
			}
			_, sendErr := (&WlDisplay{core}).NewSendGetRegistry(newID)
			return errOrNil(sendErr)
		},
	},
}
