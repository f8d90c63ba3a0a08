package proto

import (
	"github.com/veilproto/wlveil/internal/dispatch"
	"github.com/veilproto/wlveil/internal/object"
	"github.com/veilproto/wlveil/internal/wire"
)

// WpColorManagementOutputV1 exposes one output's color-description
// events; its only request tears the feedback object down.
type WpColorManagementOutputV1 struct {
	*object.Core
}

// NewWpColorManagementOutputV1 wraps core as a
// WpColorManagementOutputV1.
func NewWpColorManagementOutputV1(core *object.Core) *WpColorManagementOutputV1 {
	return &WpColorManagementOutputV1{Core: core}
}

// TrySendDestroy forwards a destroy request.
func (o *WpColorManagementOutputV1) TrySendDestroy() *object.Error {
	o.MarkDestroyed()
	return o.SendToServer(0, wire.NewWriter())
}

// WpColorManagementOutputV1Table is the request-side dispatch table.
var WpColorManagementOutputV1Table = dispatch.Table{
	{
		Name: "destroy", Since: 1,
		Handle: func(core *object.Core, r *wire.Reader) error {
			return errOrNil((&WpColorManagementOutputV1{core}).TrySendDestroy())
		},
	},
}
