package proto

import (
	"github.com/veilproto/wlveil/internal/dispatch"
	"github.com/veilproto/wlveil/internal/object"
	"github.com/veilproto/wlveil/internal/wire"
)

// Button codes (from linux/input-event-codes.h), axis, and axis-source
// constants the zwlr_virtual_pointer_v1 wire format carries. Adapted
// from the original virtual_pointer package's constant tables; that
// package used them to build its own client-side injection helpers
// (MoveRelative, LeftClick, ...), which don't apply to a proxy that only
// relays. The proxy never originates pointer input, so only the
// constants survive here, as documentation for what's being forwarded.
const (
	BtnLeft   = 0x110
	BtnRight  = 0x111
	BtnMiddle = 0x112
	BtnSide   = 0x113
	BtnExtra  = 0x114
)

const (
	ButtonStateReleased = 0
	ButtonStatePressed  = 1
)

const (
	AxisVerticalScroll   = 0
	AxisHorizontalScroll = 1
)

const (
	AxisSourceWheel      = 0
	AxisSourceFinger     = 1
	AxisSourceContinuous = 2
	AxisSourceWheelTilt  = 3
)

const (
	MsgZwlrVirtualPointerV1MotionSince         uint32 = 1
	MsgZwlrVirtualPointerV1MotionAbsoluteSince uint32 = 1
	MsgZwlrVirtualPointerV1ButtonSince         uint32 = 1
	MsgZwlrVirtualPointerV1AxisSince           uint32 = 1
	MsgZwlrVirtualPointerV1FrameSince          uint32 = 1
	MsgZwlrVirtualPointerV1AxisSourceSince     uint32 = 1
	MsgZwlrVirtualPointerV1AxisStopSince       uint32 = 1
	MsgZwlrVirtualPointerV1AxisDiscreteSince   uint32 = 1
	MsgZwlrVirtualPointerV1DestroySince        uint32 = 1
)

// ZwlrVirtualPointerV1 is the virtual-pointer object's stub.
type ZwlrVirtualPointerV1 struct {
	*object.Core
}

// NewZwlrVirtualPointerV1 wraps core as a ZwlrVirtualPointerV1.
func NewZwlrVirtualPointerV1(core *object.Core) *ZwlrVirtualPointerV1 {
	return &ZwlrVirtualPointerV1{Core: core}
}

// TrySendMotion forwards a motion request.
func (p *ZwlrVirtualPointerV1) TrySendMotion(time uint32, dx, dy wire.Fixed) *object.Error {
	w := wire.NewWriter().Uint32(time).Fixed(dx).Fixed(dy)
	return p.SendToServer(0, w)
}

// TrySendMotionAbsolute forwards a motion_absolute request.
func (p *ZwlrVirtualPointerV1) TrySendMotionAbsolute(time, x, y, xExtent, yExtent uint32) *object.Error {
	w := wire.NewWriter().Uint32(time).Uint32(x).Uint32(y).Uint32(xExtent).Uint32(yExtent)
	return p.SendToServer(1, w)
}

// TrySendButton forwards a button request.
func (p *ZwlrVirtualPointerV1) TrySendButton(time, button, state uint32) *object.Error {
	w := wire.NewWriter().Uint32(time).Uint32(button).Uint32(state)
	return p.SendToServer(2, w)
}

// TrySendAxis forwards an axis request.
func (p *ZwlrVirtualPointerV1) TrySendAxis(time, axis uint32, value wire.Fixed) *object.Error {
	w := wire.NewWriter().Uint32(time).Uint32(axis).Fixed(value)
	return p.SendToServer(3, w)
}

// TrySendFrame forwards a frame request.
func (p *ZwlrVirtualPointerV1) TrySendFrame() *object.Error {
	return p.SendToServer(4, wire.NewWriter())
}

// TrySendAxisSource forwards an axis_source request.
func (p *ZwlrVirtualPointerV1) TrySendAxisSource(source uint32) *object.Error {
	return p.SendToServer(5, wire.NewWriter().Uint32(source))
}

// TrySendAxisStop forwards an axis_stop request.
func (p *ZwlrVirtualPointerV1) TrySendAxisStop(time, axis uint32) *object.Error {
	w := wire.NewWriter().Uint32(time).Uint32(axis)
	return p.SendToServer(6, w)
}

// TrySendAxisDiscrete forwards an axis_discrete request.
func (p *ZwlrVirtualPointerV1) TrySendAxisDiscrete(time, axis uint32, value wire.Fixed, discrete int32) *object.Error {
	w := wire.NewWriter().Uint32(time).Uint32(axis).Fixed(value).Int32(discrete)
	return p.SendToServer(7, w)
}

// TrySendDestroy forwards a destroy request.
func (p *ZwlrVirtualPointerV1) TrySendDestroy() *object.Error {
	p.MarkDestroyed()
	return p.SendToServer(8, wire.NewWriter())
}

// ZwlrVirtualPointerV1Table is the request-side dispatch table.
var ZwlrVirtualPointerV1Table = dispatch.Table{
	{
		Name:      "motion",
		Signature: []wire.ArgKind{wire.ArgUint, wire.ArgFixed, wire.ArgFixed},
		Since:     1,
		Handle: func(core *object.Core, r *wire.Reader) error {
			time, err := r.ReadUint32()
			if err != nil {
				return err
			}
			dx, err := r.ReadFixed()
			if err != nil {
				return err
			}
			dy, err := r.ReadFixed()
			if err != nil {
				return err
			}
			return errOrNil((&ZwlrVirtualPointerV1{core}).TrySendMotion(time, dx, dy))
		},
	},
	{
		Name:      "motion_absolute",
		Signature: []wire.ArgKind{wire.ArgUint, wire.ArgUint, wire.ArgUint, wire.ArgUint, wire.ArgUint},
		Since:     1,
		Handle: func(core *object.Core, r *wire.Reader) error {
			var v [5]uint32
			for i := range v {
				val, err := r.ReadUint32()
				if err != nil {
					return err
				}
				v[i] = val
			}
			p := &ZwlrVirtualPointerV1{core}
			return errOrNil(p.TrySendMotionAbsolute(v[0], v[1], v[2], v[3], v[4]))
		},
	},
	{
		Name:      "button",
		Signature: []wire.ArgKind{wire.ArgUint, wire.ArgUint, wire.ArgUint},
		Since:     1,
		Handle: func(core *object.Core, r *wire.Reader) error {
			time, button, state, err := read3Uint(r)
			if err != nil {
				return err
			}
			return errOrNil((&ZwlrVirtualPointerV1{core}).TrySendButton(time, button, state))
		},
	},
	{
		Name:      "axis",
		Signature: []wire.ArgKind{wire.ArgUint, wire.ArgUint, wire.ArgFixed},
		Since:     1,
		Handle: func(core *object.Core, r *wire.Reader) error {
			time, err := r.ReadUint32()
			if err != nil {
				return err
			}
			axis, err := r.ReadUint32()
			if err != nil {
				return err
			}
			value, err := r.ReadFixed()
			if err != nil {
				return err
			}
			return errOrNil((&ZwlrVirtualPointerV1{core}).TrySendAxis(time, axis, value))
		},
	},
	{
		Name: "frame", Since: 1,
		Handle: func(core *object.Core, r *wire.Reader) error {
			return errOrNil((&ZwlrVirtualPointerV1{core}).TrySendFrame())
		},
	},
	{
		Name:      "axis_source",
		Signature: []wire.ArgKind{wire.ArgUint},
		Since:     1,
		Handle: func(core *object.Core, r *wire.Reader) error {
			source, err := r.ReadUint32()
			if err != nil {
				return err
			}
			return errOrNil((&ZwlrVirtualPointerV1{core}).TrySendAxisSource(source))
		},
	},
	{
		Name:      "axis_stop",
		Signature: []wire.ArgKind{wire.ArgUint, wire.ArgUint},
		Since:     1,
		Handle: func(core *object.Core, r *wire.Reader) error {
			time, err := r.ReadUint32()
			if err != nil {
				return err
			}
			axis, err := r.ReadUint32()
			if err != nil {
				return err
			}
			return errOrNil((&ZwlrVirtualPointerV1{core}).TrySendAxisStop(time, axis))
		},
	},
	{
		Name:      "axis_discrete",
		Signature: []wire.ArgKind{wire.ArgUint, wire.ArgUint, wire.ArgFixed, wire.ArgInt},
		Since:     1,
		Handle: func(core *object.Core, r *wire.Reader) error {
			time, err := r.ReadUint32()
			if err != nil {
				return err
			}
			axis, err := r.ReadUint32()
			if err != nil {
				return err
			}
			value, err := r.ReadFixed()
			if err != nil {
				return err
			}
			discrete, err := r.ReadInt32()
			if err != nil {
				return err
			}
			return errOrNil((&ZwlrVirtualPointerV1{core}).TrySendAxisDiscrete(time, axis, value, discrete))
		},
	},
	{
		Name: "destroy", Since: 1,
		Handle: func(core *object.Core, r *wire.Reader) error {
			return errOrNil((&ZwlrVirtualPointerV1{core}).TrySendDestroy())
		},
	},
}
