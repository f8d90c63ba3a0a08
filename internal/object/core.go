package object

import "github.com/veilproto/wlveil/internal/endpoint"

// Client-allocated IDs run 1..ClientIDMax; the server-allocated range
// starts at ServerIDBase, mirroring the split the real protocol reserves
// for objects a server creates without an explicit client request (the
// proxy uses the same range for IDs it allocates on the client<->proxy
// connection to represent objects that only exist on the upstream side).
const (
	ClientIDMax  uint32 = 0xfeffffff
	ServerIDBase uint32 = 0xff000000
)

// Core is the data every proxied object carries regardless of interface,
// embedded by every proto/ stub. ClientID is the object's identity on
// the client<->proxy connection; ServerID is its identity on the
// proxy<->upstream-server connection. A freshly created object always
// has a ClientID; ServerID is assigned lazily the first time a request
// needs to cross to the server: an object is usable for server-bound
// forwarding only once ServerID is non-zero.
type Core struct {
	Interface Interface
	Version   uint32

	ClientID uint32
	ServerID uint32

	// Destroyed marks an object whose destructor (wl_callback.done-style
	// one-shot, or an explicit `destroy` request) has already run. This
	// is local bookkeeping only: the authoritative signal that an id is
	// free to reuse is still the server's delete_id event, which is
	// forwarded unconditionally regardless of this flag.
	Destroyed bool

	// ForwardToServer/ForwardToClient are the per-object policy toggles
	// veil/ consults before relaying a request or event; they start true
	// (transparent by default) and are only ever narrowed by config.
	ForwardToServer bool
	ForwardToClient bool

	ClientEndpoint *endpoint.Endpoint
	ServerEndpoint *endpoint.Endpoint

	// Owner is the object table this Core is registered in (a
	// *session.Client, satisfying Registry structurally so this package
	// never has to import session). Handle closures use it to resolve
	// sibling object-typed arguments without a dispatch.Context.
	Owner Registry

	// AllocServerID mints a fresh server-range ID; set to
	// (*session.State).NextServerID by whatever constructs the session.
	AllocServerID func() (uint32, *Error)

	// MarkDirty records that an endpoint now has queued bytes; set to
	// (*session.State).MarkFlushable so the owning event-loop iteration
	// knows to flush it. Falls back to ep.MarkFlushable alone if nil,
	// which still works for single-client tests and tools that poll
	// every endpoint themselves.
	MarkDirty func(*endpoint.Endpoint)
}

// Registry is the subset of session.Client's ID-table API a Core needs to
// resolve and register sibling objects while handling a request.
type Registry interface {
	LookupClientID(id uint32) (*Core, bool)
	Insert(o *Core)
	BindServerID(o *Core, serverID uint32)
	CheckClientID(id uint32) *Error
}

// NewCore builds a Core with both forwarding directions enabled,
// matching the proxy's "transparent by default" invariant.
func NewCore(iface Interface, version uint32, clientID uint32, clientEP, serverEP *endpoint.Endpoint) *Core {
	return &Core{
		Interface:       iface,
		Version:         version,
		ClientID:        clientID,
		ForwardToServer: true,
		ForwardToClient: true,
		ClientEndpoint:  clientEP,
		ServerEndpoint:  serverEP,
	}
}

// RequireServerID returns the object's ServerID, or ReceiverNoServerID if
// it has none yet.
func (c *Core) RequireServerID() (uint32, *Error) {
	if c.ServerID == 0 {
		return 0, NewError(ReceiverNoServerID, c.Interface, 0, "")
	}
	return c.ServerID, nil
}

// RequireClientID returns the object's ClientID, or ReceiverNoClient if it
// has none (an object the proxy created server-side that was never bound
// on the client connection).
func (c *Core) RequireClientID() (uint32, *Error) {
	if c.ClientID == 0 {
		return 0, NewError(ReceiverNoClient, c.Interface, 0, "")
	}
	return c.ClientID, nil
}

// MarkDestroyed flips Destroyed; idempotent.
func (c *Core) MarkDestroyed() {
	c.Destroyed = true
}
