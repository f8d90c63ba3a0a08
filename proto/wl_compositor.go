package proto

import (
	"github.com/veilproto/wlveil/internal/dispatch"
	"github.com/veilproto/wlveil/internal/object"
	"github.com/veilproto/wlveil/internal/wire"
)

const (
	MsgWlCompositorCreateSurfaceSince uint32 = 1
	MsgWlCompositorCreateRegionSince  uint32 = 1
)

// WlCompositor has no events; its two requests each create a new object.
type WlCompositor struct {
	*object.Core
}

// NewWlCompositor wraps core as a WlCompositor.
func NewWlCompositor(core *object.Core) *WlCompositor {
	return &WlCompositor{Core: core}
}

// NewSendCreateSurface forwards a create_surface request, adopting the
// new wl_surface child object.
func (c *WlCompositor) NewSendCreateSurface(newSurfaceClientID uint32) (*WlSurface, *object.Error) {
	child, adoptErr := c.AdoptNewID(object.WlSurface, c.Version, newSurfaceClientID)
	if adoptErr != nil {
		return nil, adoptErr
	}
	serverID, err := c.AllocServerID()
	if err != nil {
		return nil, err
	}
	c.Owner.BindServerID(child, serverID)
	if sendErr := c.SendToServer(0, wire.NewWriter().Uint32(serverID)); sendErr != nil {
		return nil, sendErr
	}
	return NewWlSurface(child), nil
}

// NewSendCreateRegion forwards a create_region request, adopting the new
// wl_region child object.
func (c *WlCompositor) NewSendCreateRegion(newRegionClientID uint32) (*WlRegion, *object.Error) {
	child, adoptErr := c.AdoptNewID(object.WlRegion, c.Version, newRegionClientID)
	if adoptErr != nil {
		return nil, adoptErr
	}
	serverID, err := c.AllocServerID()
	if err != nil {
		return nil, err
	}
	c.Owner.BindServerID(child, serverID)
	if sendErr := c.SendToServer(1, wire.NewWriter().Uint32(serverID)); sendErr != nil {
		return nil, sendErr
	}
	return NewWlRegion(child), nil
}

// WlCompositorTable is the request-side dispatch table.
var WlCompositorTable = dispatch.Table{
	{
		Name:      "create_surface",
		Signature: []wire.ArgKind{wire.ArgNewID},
		Since:     1,
		Handle: func(core *object.Core, r *wire.Reader) error {
			newID, err := r.ReadUint32()
			if err != nil {
				return err
			}
			_, sendErr := (&WlCompositor{core}).NewSendCreateSurface(newID)
			return errOrNil(sendErr)
		},
	},
	{
		Name:      "create_region",
		Signature: []wire.ArgKind{wire.ArgNewID},
		Since:     1,
		Handle: func(core *object.Core, r *wire.Reader) error {
			newID, err := r.ReadUint32()
			if err != nil {
				return err
			}
			_, sendErr := (&WlCompositor{core}).NewSendCreateRegion(newID)
			return errOrNil(sendErr)
		},
	},
}
