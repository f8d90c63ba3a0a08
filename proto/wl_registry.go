package proto

import (
	"github.com/veilproto/wlveil/internal/dispatch"
	"github.com/veilproto/wlveil/internal/object"
	"github.com/veilproto/wlveil/internal/wire"
)

const MsgWlRegistryBindSince uint32 = 1

// WlRegistry is the registry object's stub, adapted from the global
// bookkeeping in wlclient.Registry (handleGlobal/handleGlobalRemove) but
// simplified to what a transparent proxy needs: it doesn't have to track
// every global for its own use, only decode bind requests well enough to
// allocate the bound object's Core.
type WlRegistry struct {
	*object.Core
}

// NewWlRegistry wraps core as a WlRegistry.
func NewWlRegistry(core *object.Core) *WlRegistry {
	return &WlRegistry{Core: core}
}

// WlRegistryGlobalEvent is the decoded body of a wl_registry.global
// event.
type WlRegistryGlobalEvent struct {
	Name      uint32
	Interface string
	Version   uint32
}

// WlRegistryGlobalRemoveEvent is the decoded body of a
// wl_registry.global_remove event.
type WlRegistryGlobalRemoveEvent struct {
	Name uint32
}

// DecodeGlobal decodes a wl_registry.global event body.
func DecodeGlobal(r *wire.Reader) (WlRegistryGlobalEvent, error) {
	name, err := r.ReadUint32()
	if err != nil {
		return WlRegistryGlobalEvent{}, err
	}
	iface, _, err := r.ReadString(false)
	if err != nil {
		return WlRegistryGlobalEvent{}, err
	}
	version, err := r.ReadUint32()
	if err != nil {
		return WlRegistryGlobalEvent{}, err
	}
	return WlRegistryGlobalEvent{Name: name, Interface: iface, Version: version}, nil
}

// DecodeGlobalRemove decodes a wl_registry.global_remove event body.
func DecodeGlobalRemove(r *wire.Reader) (WlRegistryGlobalRemoveEvent, error) {
	name, err := r.ReadUint32()
	if err != nil {
		return WlRegistryGlobalRemoveEvent{}, err
	}
	return WlRegistryGlobalRemoveEvent{Name: name}, nil
}

// WlBindRequest is the decoded body of a wl_registry.bind request: the
// global's numeric name, the interface string and version the client
// claims (the proxy trusts this only to size its own Core; the upstream
// server is the ultimate authority and will raise a protocol error of
// its own if the client lied), and the new_id the bound object will use.
type WlBindRequest struct {
	Name      uint32
	Interface string
	Version   uint32
	NewID     uint32
}

// NewSendBind forwards a bind request, adopting a child object of
// whatever interface the client named. An interface name this proxy
// doesn't model still gets a Core (tagged object.InterfaceUnknown) so
// the id is reserved and later delete_id bookkeeping still works; it
// simply can't be dispatched to if the client later sends it requests.
func (g *WlRegistry) NewSendBind(req WlBindRequest) *object.Error {
	iface, _ := object.LookupInterface(req.Interface)
	child, adoptErr := g.AdoptNewID(iface, req.Version, req.NewID)
	if adoptErr != nil {
		return adoptErr
	}
	serverID, err := g.AllocServerID()
	if err != nil {
		return err
	}
	g.Owner.BindServerID(child, serverID)
	w := wire.NewWriter().Uint32(req.Name).String(req.Interface, false).Uint32(req.Version).Uint32(serverID)
	return g.SendToServer(0, w)
}

// WlRegistryTable is the request-side dispatch table: bind is the
// registry's only request, and its wire encoding is itself an
// "untyped new_id": interface name and version precede the id word,
// unlike every other new_id argument in the protocol.
var WlRegistryTable = dispatch.Table{
	{
		Name:      "bind",
		Signature: []wire.ArgKind{wire.ArgUint, wire.ArgString, wire.ArgUint, wire.ArgNewID},
		Since:     1,
		Handle: func(core *object.Core, r *wire.Reader) error {
			name, err := r.ReadUint32()
			if err != nil {
				return err
			}
			iface, _, err := r.ReadString(false)
			if err != nil {
				return err
			}
			version, err := r.ReadUint32()
			if err != nil {
				return err
			}
			newID, err := r.ReadUint32()
			if err != nil {
				return err
			}
			req := WlBindRequest{Name: name, Interface: iface, Version: version, NewID: newID}
			return errOrNil((&WlRegistry{core}).NewSendBind(req))
		},
	},
}
