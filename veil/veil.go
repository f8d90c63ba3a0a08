// Package veil implements the forwarding policy that RunClient (through
// dispatch.One's allow callback) and RunServerEvents consult before
// relaying a request or event: the proxy is fully transparent by
// default, and config can narrow either direction per interface. veil
// never decides whether a message is well-formed (that's
// internal/dispatch's job), only whether a message should cross to the
// other side; a request is checked before its arguments are decoded.
package veil

import (
	"github.com/veilproto/wlveil/internal/config"
	"github.com/veilproto/wlveil/internal/object"
)

// Policy resolves forwarding decisions against the Config snapshot it
// holds in its Config field (set by New). A reloaded Config takes effect
// only once that field is replaced or a new Policy is built.
type Policy struct {
	Config *config.Config
}

// New builds a Policy around a config snapshot.
func New(cfg *config.Config) *Policy {
	return &Policy{Config: cfg}
}

// AllowRequest reports whether a client request on core should be
// forwarded to the upstream server.
func (p *Policy) AllowRequest(core *object.Core) bool {
	if !core.ForwardToServer {
		return false
	}
	return p.Config.ForwardToServer(core.Interface.String())
}

// AllowEvent reports whether a server event on core should be forwarded
// to the client. wl_display.delete_id never goes through here: veil/
// loop.go's forwardDeleteID delivers it unconditionally for any object
// the proxy still has a mapping for, since narrowing that one event
// would corrupt the client's view of which ids are free to reuse.
func (p *Policy) AllowEvent(core *object.Core) bool {
	if !core.ForwardToClient {
		return false
	}
	return p.Config.ForwardToClient(core.Interface.String())
}

// ApplyOverride narrows core's own toggles directly, for interception
// points that want to mute one specific object regardless of its
// interface's config-level default (e.g. a future policy that silences
// one noisy wl_pointer.motion stream without touching wl_pointer
// globally).
func ApplyOverride(core *object.Core, forwardToServer, forwardToClient bool) {
	core.ForwardToServer = forwardToServer
	core.ForwardToClient = forwardToClient
}
