package proto

import (
	"github.com/veilproto/wlveil/internal/dispatch"
	"github.com/veilproto/wlveil/internal/object"
	"github.com/veilproto/wlveil/internal/wire"
)

// Lifetime and error constants for pointer-constraints-unstable-v1.
// Adapted from the original pointer_constraints package's constant
// tables; that package modeled the manager/locked/confined objects as
// Go interfaces with stub method bodies rather than wire requests,
// which doesn't apply to a proxy that only relays, so only the
// constants survive here.
const (
	LifetimeOneshot    uint32 = 1
	LifetimePersistent uint32 = 2
)

const (
	PointerConstraintErrorAlreadyConstrained uint32 = 0
)

const (
	MsgZwpPointerConstraintsV1DestroySince       uint32 = 1
	MsgZwpPointerConstraintsV1LockPointerSince    uint32 = 1
	MsgZwpPointerConstraintsV1ConfinePointerSince uint32 = 1
)

// ZwpPointerConstraintsV1 is the pointer-constraints manager global's
// stub: it has no events, only a destroy request and the two
// constructors for the locked/confined pointer objects.
type ZwpPointerConstraintsV1 struct {
	*object.Core
}

// NewZwpPointerConstraintsV1 wraps core as a ZwpPointerConstraintsV1.
func NewZwpPointerConstraintsV1(core *object.Core) *ZwpPointerConstraintsV1 {
	return &ZwpPointerConstraintsV1{Core: core}
}

// TrySendDestroy forwards a destroy request.
func (m *ZwpPointerConstraintsV1) TrySendDestroy() *object.Error {
	m.MarkDestroyed()
	return m.SendToServer(0, wire.NewWriter())
}

// NewSendLockPointer forwards a lock_pointer request, adopting the new
// zwp_locked_pointer_v1 child object and translating the surface,
// pointer, and (nullable) region arguments from client IDs to the
// server IDs the upstream connection knows them by.
func (m *ZwpPointerConstraintsV1) NewSendLockPointer(newLockClientID, surfaceClientID, pointerClientID, regionClientID uint32, lifetime uint32) (*ZwpLockedPointerV1, *object.Error) {
	surfaceServerID, err := m.ResolveForServer(surfaceClientID)
	if err != nil {
		return nil, err
	}
	pointerServerID, err := m.ResolveForServer(pointerClientID)
	if err != nil {
		return nil, err
	}
	regionServerID, err := m.ResolveForServer(regionClientID)
	if err != nil {
		return nil, err
	}
	child, adoptErr := m.AdoptNewID(object.ZwpLockedPointerV1, m.Version, newLockClientID)
	if adoptErr != nil {
		return nil, adoptErr
	}
	serverID, err := m.AllocServerID()
	if err != nil {
		return nil, err
	}
	m.Owner.BindServerID(child, serverID)
	w := wire.NewWriter().Uint32(serverID).Uint32(surfaceServerID).Uint32(pointerServerID).Uint32(regionServerID).Uint32(lifetime)
	if sendErr := m.SendToServer(1, w); sendErr != nil {
		return nil, sendErr
	}
	return NewZwpLockedPointerV1(child), nil
}

// NewSendConfinePointer forwards a confine_pointer request, mirroring
// NewSendLockPointer's argument translation.
func (m *ZwpPointerConstraintsV1) NewSendConfinePointer(newConfineClientID, surfaceClientID, pointerClientID, regionClientID uint32, lifetime uint32) (*ZwpConfinedPointerV1, *object.Error) {
	surfaceServerID, err := m.ResolveForServer(surfaceClientID)
	if err != nil {
		return nil, err
	}
	pointerServerID, err := m.ResolveForServer(pointerClientID)
	if err != nil {
		return nil, err
	}
	regionServerID, err := m.ResolveForServer(regionClientID)
	if err != nil {
		return nil, err
	}
	child, adoptErr := m.AdoptNewID(object.ZwpConfinedPointerV1, m.Version, newConfineClientID)
	if adoptErr != nil {
		return nil, adoptErr
	}
	serverID, err := m.AllocServerID()
	if err != nil {
		return nil, err
	}
	m.Owner.BindServerID(child, serverID)
	w := wire.NewWriter().Uint32(serverID).Uint32(surfaceServerID).Uint32(pointerServerID).Uint32(regionServerID).Uint32(lifetime)
	if sendErr := m.SendToServer(2, w); sendErr != nil {
		return nil, sendErr
	}
	return NewZwpConfinedPointerV1(child), nil
}

// ZwpPointerConstraintsV1Table is the request-side dispatch table.
var ZwpPointerConstraintsV1Table = dispatch.Table{
	{
		Name: "destroy", Since: 1,
		Handle: func(core *object.Core, r *wire.Reader) error {
			return errOrNil((&ZwpPointerConstraintsV1{core}).TrySendDestroy())
		},
	},
	{
		Name:      "lock_pointer",
		Signature: []wire.ArgKind{wire.ArgNewID, wire.ArgObject, wire.ArgObject, wire.ArgNullObject, wire.ArgUint},
		Since:     1,
		Handle: func(core *object.Core, r *wire.Reader) error {
			newID, err := r.ReadUint32()
			if err != nil {
				return err
			}
			surface, err := r.ReadUint32()
			if err != nil {
				return err
			}
			pointer, err := r.ReadUint32()
			if err != nil {
				return err
			}
			region, err := r.ReadUint32()
			if err != nil {
				return err
			}
			lifetime, err := r.ReadUint32()
			if err != nil {
				return err
			}
			_, sendErr := (&ZwpPointerConstraintsV1{core}).NewSendLockPointer(newID, surface, pointer, region, lifetime)
			return errOrNil(sendErr)
		},
	},
	{
		Name:      "confine_pointer",
		Signature: []wire.ArgKind{wire.ArgNewID, wire.ArgObject, wire.ArgObject, wire.ArgNullObject, wire.ArgUint},
		Since:     1,
		Handle: func(core *object.Core, r *wire.Reader) error {
			newID, err := r.ReadUint32()
			if err != nil {
				return err
			}
			surface, err := r.ReadUint32()
			if err != nil {
				return err
			}
			pointer, err := r.ReadUint32()
			if err != nil {
				return err
			}
			region, err := r.ReadUint32()
			if err != nil {
				return err
			}
			lifetime, err := r.ReadUint32()
			if err != nil {
				return err
			}
			_, sendErr := (&ZwpPointerConstraintsV1{core}).NewSendConfinePointer(newID, surface, pointer, region, lifetime)
			return errOrNil(sendErr)
		},
	},
}

const (
	MsgZwpLockedPointerV1DestroySince              uint32 = 1
	MsgZwpLockedPointerV1SetCursorPositionHintSince uint32 = 1
	MsgZwpLockedPointerV1SetRegionSince             uint32 = 1
)

// ZwpLockedPointerV1 is the locked-pointer object's stub. Its locked/
// unlocked events carry no arguments, so they fall through the raw
// event relay untranslated like any other unmodeled event.
type ZwpLockedPointerV1 struct {
	*object.Core
}

// NewZwpLockedPointerV1 wraps core as a ZwpLockedPointerV1.
func NewZwpLockedPointerV1(core *object.Core) *ZwpLockedPointerV1 {
	return &ZwpLockedPointerV1{Core: core}
}

// TrySendDestroy forwards a destroy request.
func (l *ZwpLockedPointerV1) TrySendDestroy() *object.Error {
	l.MarkDestroyed()
	return l.SendToServer(0, wire.NewWriter())
}

// TrySendSetCursorPositionHint forwards a set_cursor_position_hint request.
func (l *ZwpLockedPointerV1) TrySendSetCursorPositionHint(surfaceX, surfaceY wire.Fixed) *object.Error {
	w := wire.NewWriter().Fixed(surfaceX).Fixed(surfaceY)
	return l.SendToServer(1, w)
}

// TrySendSetRegion forwards a set_region request, translating the
// (nullable) region argument from its client ID to the upstream
// connection's server ID.
func (l *ZwpLockedPointerV1) TrySendSetRegion(regionClientID uint32) *object.Error {
	serverID, err := l.ResolveForServer(regionClientID)
	if err != nil {
		return err
	}
	return l.SendToServer(2, wire.NewWriter().Uint32(serverID))
}

// ZwpLockedPointerV1Table is the request-side dispatch table.
var ZwpLockedPointerV1Table = dispatch.Table{
	{
		Name: "destroy", Since: 1,
		Handle: func(core *object.Core, r *wire.Reader) error {
			return errOrNil((&ZwpLockedPointerV1{core}).TrySendDestroy())
		},
	},
	{
		Name:      "set_cursor_position_hint",
		Signature: []wire.ArgKind{wire.ArgFixed, wire.ArgFixed},
		Since:     1,
		Handle: func(core *object.Core, r *wire.Reader) error {
			x, err := r.ReadFixed()
			if err != nil {
				return err
			}
			y, err := r.ReadFixed()
			if err != nil {
				return err
			}
			return errOrNil((&ZwpLockedPointerV1{core}).TrySendSetCursorPositionHint(x, y))
		},
	},
	{
		Name:      "set_region",
		Signature: []wire.ArgKind{wire.ArgNullObject},
		Since:     1,
		Handle: func(core *object.Core, r *wire.Reader) error {
			region, err := r.ReadUint32()
			if err != nil {
				return err
			}
			return errOrNil((&ZwpLockedPointerV1{core}).TrySendSetRegion(region))
		},
	},
}

const (
	MsgZwpConfinedPointerV1DestroySince  uint32 = 1
	MsgZwpConfinedPointerV1SetRegionSince uint32 = 1
)

// ZwpConfinedPointerV1 is the confined-pointer object's stub. Its
// confined/unconfined events carry no arguments and fall through the
// raw event relay like ZwpLockedPointerV1's.
type ZwpConfinedPointerV1 struct {
	*object.Core
}

// NewZwpConfinedPointerV1 wraps core as a ZwpConfinedPointerV1.
func NewZwpConfinedPointerV1(core *object.Core) *ZwpConfinedPointerV1 {
	return &ZwpConfinedPointerV1{Core: core}
}

// TrySendDestroy forwards a destroy request.
func (c *ZwpConfinedPointerV1) TrySendDestroy() *object.Error {
	c.MarkDestroyed()
	return c.SendToServer(0, wire.NewWriter())
}

// TrySendSetRegion forwards a set_region request, translating the
// (nullable) region argument from its client ID to the upstream
// connection's server ID.
func (c *ZwpConfinedPointerV1) TrySendSetRegion(regionClientID uint32) *object.Error {
	serverID, err := c.ResolveForServer(regionClientID)
	if err != nil {
		return err
	}
	return c.SendToServer(1, wire.NewWriter().Uint32(serverID))
}

// ZwpConfinedPointerV1Table is the request-side dispatch table.
var ZwpConfinedPointerV1Table = dispatch.Table{
	{
		Name: "destroy", Since: 1,
		Handle: func(core *object.Core, r *wire.Reader) error {
			return errOrNil((&ZwpConfinedPointerV1{core}).TrySendDestroy())
		},
	},
	{
		Name:      "set_region",
		Signature: []wire.ArgKind{wire.ArgNullObject},
		Since:     1,
		Handle: func(core *object.Core, r *wire.Reader) error {
			region, err := r.ReadUint32()
			if err != nil {
				return err
			}
			return errOrNil((&ZwpConfinedPointerV1{core}).TrySendSetRegion(region))
		},
	},
}
