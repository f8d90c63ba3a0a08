package proto

import (
	"github.com/veilproto/wlveil/internal/dispatch"
	"github.com/veilproto/wlveil/internal/object"
	"github.com/veilproto/wlveil/internal/wire"
)

// WlRegion accumulates add/subtract rectangles; it has no events.
type WlRegion struct {
	*object.Core
}

// NewWlRegion wraps core as a WlRegion.
func NewWlRegion(core *object.Core) *WlRegion {
	return &WlRegion{Core: core}
}

// TrySendDestroy forwards a destroy request.
func (r *WlRegion) TrySendDestroy() *object.Error {
	r.MarkDestroyed()
	return r.SendToServer(0, wire.NewWriter())
}

// TrySendAdd forwards an add request.
func (r *WlRegion) TrySendAdd(x, y, width, height int32) *object.Error {
	w := wire.NewWriter().Int32(x).Int32(y).Int32(width).Int32(height)
	return r.SendToServer(1, w)
}

// TrySendSubtract forwards a subtract request.
func (r *WlRegion) TrySendSubtract(x, y, width, height int32) *object.Error {
	w := wire.NewWriter().Int32(x).Int32(y).Int32(width).Int32(height)
	return r.SendToServer(2, w)
}

// WlRegionTable is the request-side dispatch table.
var WlRegionTable = dispatch.Table{
	{
		Name: "destroy", Since: 1,
		Handle: func(core *object.Core, r *wire.Reader) error {
			return errOrNil((&WlRegion{core}).TrySendDestroy())
		},
	},
	{
		Name:      "add",
		Signature: []wire.ArgKind{wire.ArgInt, wire.ArgInt, wire.ArgInt, wire.ArgInt},
		Since:     1,
		Handle: func(core *object.Core, r *wire.Reader) error {
			x, y, w, h, err := read4Int(r)
			if err != nil {
				return err
			}
			return errOrNil((&WlRegion{core}).TrySendAdd(x, y, w, h))
		},
	},
	{
		Name:      "subtract",
		Signature: []wire.ArgKind{wire.ArgInt, wire.ArgInt, wire.ArgInt, wire.ArgInt},
		Since:     1,
		Handle: func(core *object.Core, r *wire.Reader) error {
			x, y, w, h, err := read4Int(r)
			if err != nil {
				return err
			}
			return errOrNil((&WlRegion{core}).TrySendSubtract(x, y, w, h))
		},
	},
}
