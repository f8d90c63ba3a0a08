package proto

import (
	"github.com/veilproto/wlveil/internal/dispatch"
	"github.com/veilproto/wlveil/internal/object"
	"github.com/veilproto/wlveil/internal/wire"
)

// WlShmPool carves wl_buffer objects out of one mmap'd region.
type WlShmPool struct {
	*object.Core
}

// NewWlShmPool wraps core as a WlShmPool.
func NewWlShmPool(core *object.Core) *WlShmPool {
	return &WlShmPool{Core: core}
}

// NewSendCreateBuffer forwards a create_buffer request and adopts the
// new wl_buffer child object.
func (p *WlShmPool) NewSendCreateBuffer(newBufferClientID uint32, offset, width, height, stride int32, format uint32) (*WlBuffer, *object.Error) {
	child, adoptErr := p.AdoptNewID(object.WlBuffer, p.Version, newBufferClientID)
	if adoptErr != nil {
		return nil, adoptErr
	}
	serverID, err := p.AllocServerID()
	if err != nil {
		return nil, err
	}
	p.Owner.BindServerID(child, serverID)
	w := wire.NewWriter().Uint32(serverID).Int32(offset).Int32(width).Int32(height).Int32(stride).Uint32(format)
	if sendErr := p.SendToServer(0, w); sendErr != nil {
		return nil, sendErr
	}
	return NewWlBuffer(child), nil
}

// TrySendDestroy forwards a destroy request.
func (p *WlShmPool) TrySendDestroy() *object.Error {
	p.MarkDestroyed()
	return p.SendToServer(1, wire.NewWriter())
}

// TrySendResize forwards a resize request.
func (p *WlShmPool) TrySendResize(size int32) *object.Error {
	return p.SendToServer(2, wire.NewWriter().Int32(size))
}

// WlShmPoolTable is the request-side dispatch table.
var WlShmPoolTable = dispatch.Table{
	{
		Name:      "create_buffer",
		Signature: []wire.ArgKind{wire.ArgNewID, wire.ArgInt, wire.ArgInt, wire.ArgInt, wire.ArgInt, wire.ArgUint},
		Since:     1,
		Handle: func(core *object.Core, r *wire.Reader) error {
			newID, err := r.ReadUint32()
			if err != nil {
				return err
			}
			offset, err := r.ReadInt32()
			if err != nil {
				return err
			}
			width, err := r.ReadInt32()
			if err != nil {
				return err
			}
			height, err := r.ReadInt32()
			if err != nil {
				return err
			}
			stride, err := r.ReadInt32()
			if err != nil {
				return err
			}
			format, err := r.ReadUint32()
			if err != nil {
				return err
			}
			_, sendErr := (&WlShmPool{core}).NewSendCreateBuffer(newID, offset, width, height, stride, format)
			return errOrNil(sendErr)
		},
	},
	{
		Name: "destroy", Since: 1,
		Handle: func(core *object.Core, r *wire.Reader) error {
			return errOrNil((&WlShmPool{core}).TrySendDestroy())
		},
	},
	{
		Name:      "resize",
		Signature: []wire.ArgKind{wire.ArgInt},
		Since:     1,
		Handle: func(core *object.Core, r *wire.Reader) error {
			size, err := r.ReadInt32()
			if err != nil {
				return err
			}
			return errOrNil((&WlShmPool{core}).TrySendResize(size))
		},
	},
}
