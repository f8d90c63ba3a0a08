package proto

import (
	"github.com/veilproto/wlveil/internal/dispatch"
	"github.com/veilproto/wlveil/internal/object"
	"github.com/veilproto/wlveil/internal/wire"
)

// MSG__X__SINCE constants for wl_surface's versioned requests, grounded
// on original_source/wl-proxy/src/protocols/wayland/wl_surface.rs.
const (
	MsgWlSurfaceDestroySince           uint32 = 1
	MsgWlSurfaceAttachSince            uint32 = 1
	MsgWlSurfaceDamageSince            uint32 = 1
	MsgWlSurfaceFrameSince             uint32 = 1
	MsgWlSurfaceSetOpaqueRegionSince   uint32 = 1
	MsgWlSurfaceSetInputRegionSince    uint32 = 1
	MsgWlSurfaceCommitSince            uint32 = 1
	MsgWlSurfaceSetBufferTransformSince uint32 = 2
	MsgWlSurfaceSetBufferScaleSince    uint32 = 3
	MsgWlSurfaceDamageBufferSince      uint32 = 4
)

// WlSurface is the wl_surface object's stub.
type WlSurface struct {
	*object.Core
}

// NewWlSurface wraps core as a WlSurface.
func NewWlSurface(core *object.Core) *WlSurface {
	return &WlSurface{Core: core}
}

// WlSurfaceHandler intercepts wl_surface requests before the proxy
// forwards them, mirroring the original's WlSurfaceHandler trait. Every
// method's default behavior (DefaultHandler) is to forward unmodified,
// subject to the object's and config's forwarding toggles.
type WlSurfaceHandler interface {
	Destroy(s *WlSurface) *object.Error
	Attach(s *WlSurface, bufferClientID uint32, x, y int32) *object.Error
	Damage(s *WlSurface, x, y, width, height int32) *object.Error
	Frame(s *WlSurface, newCallbackID uint32) *object.Error
	SetOpaqueRegion(s *WlSurface, regionClientID uint32) *object.Error
	SetInputRegion(s *WlSurface, regionClientID uint32) *object.Error
	Commit(s *WlSurface) *object.Error
	SetBufferTransform(s *WlSurface, transform int32) *object.Error
	SetBufferScale(s *WlSurface, scale int32) *object.Error
	DamageBuffer(s *WlSurface, x, y, width, height int32) *object.Error
}

// DefaultHandler forwards every request to the server unmodified, once
// the veil policy, consulted by the caller before invoking this handler
// (see veil.Policy.AllowRequest), has already approved it.
type DefaultHandler struct{}

func (DefaultHandler) Destroy(s *WlSurface) *object.Error {
	s.MarkDestroyed()
	return s.TrySendDestroy()
}

func (DefaultHandler) Attach(s *WlSurface, bufferClientID uint32, x, y int32) *object.Error {
	return s.TrySendAttach(bufferClientID, x, y)
}

func (DefaultHandler) Damage(s *WlSurface, x, y, width, height int32) *object.Error {
	return s.TrySendDamage(x, y, width, height)
}

func (DefaultHandler) Frame(s *WlSurface, newCallbackID uint32) *object.Error {
	_, err := s.NewSendFrame(newCallbackID)
	return err
}

func (DefaultHandler) SetOpaqueRegion(s *WlSurface, regionClientID uint32) *object.Error {
	return s.TrySendSetOpaqueRegion(regionClientID)
}

func (DefaultHandler) SetInputRegion(s *WlSurface, regionClientID uint32) *object.Error {
	return s.TrySendSetInputRegion(regionClientID)
}

func (DefaultHandler) Commit(s *WlSurface) *object.Error {
	return s.TrySendCommit()
}

func (DefaultHandler) SetBufferTransform(s *WlSurface, transform int32) *object.Error {
	return s.TrySendSetBufferTransform(transform)
}

func (DefaultHandler) SetBufferScale(s *WlSurface, scale int32) *object.Error {
	return s.TrySendSetBufferScale(scale)
}

func (DefaultHandler) DamageBuffer(s *WlSurface, x, y, width, height int32) *object.Error {
	return s.TrySendDamageBuffer(x, y, width, height)
}

// TrySendDestroy forwards a destroy request to the server.
func (s *WlSurface) TrySendDestroy() *object.Error {
	s.MarkDestroyed()
	return s.SendToServer(0, wire.NewWriter())
}

// TrySendAttach forwards an attach request, translating the (nullable)
// buffer argument from its client ID to the server ID the upstream
// connection knows it by.
func (s *WlSurface) TrySendAttach(bufferClientID uint32, x, y int32) *object.Error {
	serverID, err := s.ResolveForServer(bufferClientID)
	if err != nil {
		return err
	}
	w := wire.NewWriter().Uint32(serverID).Int32(x).Int32(y)
	return s.SendToServer(1, w)
}

// TrySendDamage forwards a damage request.
func (s *WlSurface) TrySendDamage(x, y, width, height int32) *object.Error {
	w := wire.NewWriter().Int32(x).Int32(y).Int32(width).Int32(height)
	return s.SendToServer(2, w)
}

// NewSendFrame allocates the wl_callback child object the frame request
// names via new_id, registers it under the client's table, and forwards
// the request with the callback's freshly assigned server ID.
func (s *WlSurface) NewSendFrame(newCallbackClientID uint32) (*WlCallback, *object.Error) {
	child, adoptErr := s.AdoptNewID(object.WlCallback, s.Version, newCallbackClientID)
	if adoptErr != nil {
		return nil, adoptErr
	}
	serverID, err := s.AllocServerID()
	if err != nil {
		return nil, err
	}
	s.Owner.BindServerID(child, serverID)
	w := wire.NewWriter().Uint32(serverID)
	if sendErr := s.SendToServer(3, w); sendErr != nil {
		return nil, sendErr
	}
	return NewWlCallback(child), nil
}

// TrySendSetOpaqueRegion forwards a set_opaque_region request.
func (s *WlSurface) TrySendSetOpaqueRegion(regionClientID uint32) *object.Error {
	serverID, err := s.ResolveForServer(regionClientID)
	if err != nil {
		return err
	}
	return s.SendToServer(4, wire.NewWriter().Uint32(serverID))
}

// TrySendSetInputRegion forwards a set_input_region request.
func (s *WlSurface) TrySendSetInputRegion(regionClientID uint32) *object.Error {
	serverID, err := s.ResolveForServer(regionClientID)
	if err != nil {
		return err
	}
	return s.SendToServer(5, wire.NewWriter().Uint32(serverID))
}

// TrySendCommit forwards a commit request.
func (s *WlSurface) TrySendCommit() *object.Error {
	return s.SendToServer(6, wire.NewWriter())
}

// TrySendSetBufferTransform forwards a set_buffer_transform request.
func (s *WlSurface) TrySendSetBufferTransform(transform int32) *object.Error {
	return s.SendToServer(7, wire.NewWriter().Int32(transform))
}

// TrySendSetBufferScale forwards a set_buffer_scale request.
func (s *WlSurface) TrySendSetBufferScale(scale int32) *object.Error {
	return s.SendToServer(8, wire.NewWriter().Int32(scale))
}

// TrySendDamageBuffer forwards a damage_buffer request.
func (s *WlSurface) TrySendDamageBuffer(x, y, width, height int32) *object.Error {
	w := wire.NewWriter().Int32(x).Int32(y).Int32(width).Int32(height)
	return s.SendToServer(9, w)
}

// WlSurfaceEnterEvent / WlSurfaceLeaveEvent are the decoded bodies of
// wl_surface's two output-tracking events.
type WlSurfaceEnterEvent struct{ OutputClientID uint32 }
type WlSurfaceLeaveEvent struct{ OutputClientID uint32 }

// DecodeEnter decodes a wl_surface.enter event body.
func DecodeEnter(r *wire.Reader) (WlSurfaceEnterEvent, error) {
	id, err := r.ReadUint32()
	return WlSurfaceEnterEvent{OutputClientID: id}, err
}

// DecodeLeave decodes a wl_surface.leave event body.
func DecodeLeave(r *wire.Reader) (WlSurfaceLeaveEvent, error) {
	id, err := r.ReadUint32()
	return WlSurfaceLeaveEvent{OutputClientID: id}, err
}

// WlSurfaceTable is the request-side dispatch table, one entry per
// opcode exactly as enumerated in the original's handle_request match.
// Each Handle closure decodes its arguments, then invokes DefaultHandler,
// the installation point left open for a future policy that wraps a
// different WlSurfaceHandler around specific objects.
var WlSurfaceTable = dispatch.Table{
	{
		Name: "destroy", Since: 1,
		Handle: func(core *object.Core, r *wire.Reader) error {
			return errOrNil(DefaultHandler{}.Destroy(&WlSurface{core}))
		},
	},
	{
		Name:      "attach",
		Signature: []wire.ArgKind{wire.ArgNullObject, wire.ArgInt, wire.ArgInt},
		Since:     1,
		Handle: func(core *object.Core, r *wire.Reader) error {
			bufID, err := r.ReadUint32()
			if err != nil {
				return err
			}
			x, err := r.ReadInt32()
			if err != nil {
				return err
			}
			y, err := r.ReadInt32()
			if err != nil {
				return err
			}
			return errOrNil(DefaultHandler{}.Attach(&WlSurface{core}, bufID, x, y))
		},
	},
	{
		Name:      "damage",
		Signature: []wire.ArgKind{wire.ArgInt, wire.ArgInt, wire.ArgInt, wire.ArgInt},
		Since:     1,
		Handle: func(core *object.Core, r *wire.Reader) error {
			x, y, w, h, err := read4Int(r)
			if err != nil {
				return err
			}
			return errOrNil(DefaultHandler{}.Damage(&WlSurface{core}, x, y, w, h))
		},
	},
	{
		Name:      "frame",
		Signature: []wire.ArgKind{wire.ArgNewID},
		Since:     1,
		Handle: func(core *object.Core, r *wire.Reader) error {
			newID, err := r.ReadUint32()
			if err != nil {
				return err
			}
			return errOrNil(DefaultHandler{}.Frame(&WlSurface{core}, newID))
		},
	},
	{
		Name:      "set_opaque_region",
		Signature: []wire.ArgKind{wire.ArgNullObject},
		Since:     1,
		Handle: func(core *object.Core, r *wire.Reader) error {
			regionID, err := r.ReadUint32()
			if err != nil {
				return err
			}
			return errOrNil(DefaultHandler{}.SetOpaqueRegion(&WlSurface{core}, regionID))
		},
	},
	{
		Name:      "set_input_region",
		Signature: []wire.ArgKind{wire.ArgNullObject},
		Since:     1,
		Handle: func(core *object.Core, r *wire.Reader) error {
			regionID, err := r.ReadUint32()
			if err != nil {
				return err
			}
			return errOrNil(DefaultHandler{}.SetInputRegion(&WlSurface{core}, regionID))
		},
	},
	{
		Name: "commit", Since: 1,
		Handle: func(core *object.Core, r *wire.Reader) error {
			return errOrNil(DefaultHandler{}.Commit(&WlSurface{core}))
		},
	},
	{
		Name:      "set_buffer_transform",
		Signature: []wire.ArgKind{wire.ArgInt},
		Since:     2,
		Handle: func(core *object.Core, r *wire.Reader) error {
			transform, err := r.ReadInt32()
			if err != nil {
				return err
			}
			return errOrNil(DefaultHandler{}.SetBufferTransform(&WlSurface{core}, transform))
		},
	},
	{
		Name:      "set_buffer_scale",
		Signature: []wire.ArgKind{wire.ArgInt},
		Since:     3,
		Handle: func(core *object.Core, r *wire.Reader) error {
			scale, err := r.ReadInt32()
			if err != nil {
				return err
			}
			return errOrNil(DefaultHandler{}.SetBufferScale(&WlSurface{core}, scale))
		},
	},
	{
		Name:      "damage_buffer",
		Signature: []wire.ArgKind{wire.ArgInt, wire.ArgInt, wire.ArgInt, wire.ArgInt},
		Since:     4,
		Handle: func(core *object.Core, r *wire.Reader) error {
			x, y, w, h, err := read4Int(r)
			if err != nil {
				return err
			}
			return errOrNil(DefaultHandler{}.DamageBuffer(&WlSurface{core}, x, y, w, h))
		},
	},
}
