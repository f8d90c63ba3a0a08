package proto

import (
	"github.com/veilproto/wlveil/internal/dispatch"
	"github.com/veilproto/wlveil/internal/object"
	"github.com/veilproto/wlveil/internal/wire"
)

// WpColorManagerV1 is the color-management global: clients bind it once
// and use get_output to obtain a per-output feedback object. Grounded on
// original_source/wl-proxy/src/protocols/color_management_v1/wp_color_manager_v1.rs.
type WpColorManagerV1 struct {
	*object.Core
}

// NewWpColorManagerV1 wraps core as a WpColorManagerV1.
func NewWpColorManagerV1(core *object.Core) *WpColorManagerV1 {
	return &WpColorManagerV1{Core: core}
}

// TrySendDestroy forwards a destroy request.
func (m *WpColorManagerV1) TrySendDestroy() *object.Error {
	m.MarkDestroyed()
	return m.SendToServer(0, wire.NewWriter())
}

// NewSendGetOutput forwards a get_output request, translating the
// wl_output argument and adopting the new
// wp_color_management_output_v1 child object.
func (m *WpColorManagerV1) NewSendGetOutput(newID uint32, outputClientID uint32) (*WpColorManagementOutputV1, *object.Error) {
	outputServerID, err := m.ResolveForServer(outputClientID)
	if err != nil {
		return nil, err
	}
	child, adoptErr := m.AdoptNewID(object.WpColorManagementOutputV1, m.Version, newID)
	if adoptErr != nil {
		return nil, adoptErr
	}
	serverID, err := m.AllocServerID()
	if err != nil {
		return nil, err
	}
	m.Owner.BindServerID(child, serverID)
	w := wire.NewWriter().Uint32(serverID).Uint32(outputServerID)
	if sendErr := m.SendToServer(1, w); sendErr != nil {
		return nil, sendErr
	}
	return NewWpColorManagementOutputV1(child), nil
}

// WpColorManagerV1Table is the request-side dispatch table.
var WpColorManagerV1Table = dispatch.Table{
	{
		Name: "destroy", Since: 1,
		Handle: func(core *object.Core, r *wire.Reader) error {
			return errOrNil((&WpColorManagerV1{core}).TrySendDestroy())
		},
	},
	{
		Name:      "get_output",
		Signature: []wire.ArgKind{wire.ArgNewID, wire.ArgObject},
		Since:     1,
		Handle: func(core *object.Core, r *wire.Reader) error {
			newID, err := r.ReadUint32()
			if err != nil {
				return err
			}
			outputID, err := r.ReadUint32()
			if err != nil {
				return err
			}
			_, sendErr := (&WpColorManagerV1{core}).NewSendGetOutput(newID, outputID)
			return errOrNil(sendErr)
		},
	},
}
