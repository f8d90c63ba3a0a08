package veil

import (
	"github.com/veilproto/wlveil/internal/dispatch"
	"github.com/veilproto/wlveil/internal/object"
	"github.com/veilproto/wlveil/internal/session"
	"github.com/veilproto/wlveil/internal/wire"
	"github.com/veilproto/wlveil/proto"
)

// RunClient drains every fully buffered request a client has sent,
// validating and forwarding each through registry (ordinarily
// proto.Registry()) subject to this Policy, until the endpoint has
// nothing more buffered or a fatal object.Error is hit. It returns every
// non-fatal error encountered too, for the caller to log.
func (p *Policy) RunClient(client *session.Client, registry dispatch.Registry) []*object.Error {
	var errs []*object.Error
	for {
		core, derr := dispatch.One(client.ClientEndpoint, registry, client.LookupClientID, p.AllowRequest, object.NoClientObject)
		if core == nil && derr == nil {
			return errs
		}
		if derr != nil {
			errs = append(errs, derr)
			if derr.Kind.Fatal() {
				return errs
			}
		}
	}
}

// RunServerEvents drains every fully buffered event waiting on the
// shared upstream connection, routes each to the Client that owns its
// receiver's server-assigned id, and forwards it translated into that
// client's own id space. Events have no per-interface dispatch table the
// way requests do (proto/ only exposes Decode* readers for them), so
// this loop special-cases the events that carry an id needing
// translation (wl_display.error, wl_display.delete_id, and
// wl_surface.enter/leave) and relays everything else with only the
// receiver field rewritten.
//
// None of the interfaces this proxy models send an event carrying a file
// descriptor, so every TakeMessage call below assumes zero fds.
func (p *Policy) RunServerEvents(state *session.State) []*object.Error {
	ep := state.ServerEndpoint
	var errs []*object.Error
	for {
		h, ok := ep.PeekHeader()
		if !ok {
			return errs
		}
		body, _, err := ep.TakeMessage(0)
		if err != nil {
			errs = append(errs, object.NewError(object.WrongMessageSize, object.InterfaceUnknown, h.Opcode, err.Error()))
			return errs
		}

		core, client, ok := state.ResolveServerEvent(h.Receiver)
		if !ok {
			// The object was already torn down client-side (or this proxy
			// never learned its server id); nothing to deliver to.
			continue
		}

		switch {
		case core.Interface == object.WlDisplay && h.Opcode == 0:
			p.forwardDisplayError(state, client, core, body, &errs)
		case core.Interface == object.WlDisplay && h.Opcode == 1:
			p.forwardDeleteID(state, client, core, body, &errs)
		case core.Interface == object.WlSurface && (h.Opcode == 0 || h.Opcode == 1):
			p.forwardSurfaceOutputEvent(state, client, core, h.Opcode, body, &errs)
		default:
			if !p.AllowEvent(core) {
				continue
			}
			msg := wire.Encode(core.ClientID, h.Opcode, rawWriter(body))
			client.ClientEndpoint.QueueSend(msg, nil)
			state.MarkFlushable(client.ClientEndpoint)
		}
	}
}

// forwardDeleteID relays wl_display.delete_id unconditionally: it is the
// server's authoritative signal that an id is free to reuse, so unlike
// every other event it is never subject to config-level narrowing or an
// object's own Destroyed state. A server id this proxy no longer (or
// never did) have a mapping for is a duplicate or unknown delete_id;
// there is nothing left to translate or recycle, so it is dropped.
func (p *Policy) forwardDeleteID(state *session.State, client *session.Client, display *object.Core, body []byte, errs *[]*object.Error) {
	ev, derr := proto.DecodeDeleteID(wire.NewReader(body, nil))
	if derr != nil {
		*errs = append(*errs, object.NewError(object.TrailingBytes, object.WlDisplay, 1, derr.Error()))
		return
	}

	target, found := client.LookupServerID(ev.ID)
	if !found {
		return
	}
	clientFacingID := target.ClientID
	client.Remove(target)

	msg := wire.Encode(display.ClientID, 1, wire.NewWriter().Uint32(clientFacingID))
	client.ClientEndpoint.QueueSend(msg, nil)
	state.MarkFlushable(client.ClientEndpoint)
}

// forwardDisplayError translates the offending object's id from the
// server's namespace to the client's before relaying a fatal
// wl_display.error event. An id this proxy never bound on the server
// side (e.g. the display itself, or an object that predates this
// connection) is passed through untranslated since there's no mapping to
// apply; the event is diagnostic only and the connection is about to
// close regardless.
func (p *Policy) forwardDisplayError(state *session.State, client *session.Client, display *object.Core, body []byte, errs *[]*object.Error) {
	ev, derr := proto.DecodeError(wire.NewReader(body, nil))
	if derr != nil {
		*errs = append(*errs, object.NewError(object.TrailingBytes, object.WlDisplay, 0, derr.Error()))
		return
	}

	objID := ev.ObjectID
	if target, ok := client.LookupServerID(ev.ObjectID); ok {
		objID = target.ClientID
	}

	w := wire.NewWriter().Uint32(objID).Uint32(ev.Code).String(ev.Message, false)
	msg := wire.Encode(display.ClientID, 0, w)
	client.ClientEndpoint.QueueSend(msg, nil)
	state.MarkFlushable(client.ClientEndpoint)
}

func (p *Policy) forwardSurfaceOutputEvent(state *session.State, client *session.Client, surface *object.Core, opcode uint16, body []byte, errs *[]*object.Error) {
	if !p.AllowEvent(surface) {
		return
	}

	var outputServerID uint32
	var derr error
	if opcode == 0 {
		ev, e := proto.DecodeEnter(wire.NewReader(body, nil))
		outputServerID, derr = ev.OutputClientID, e
	} else {
		ev, e := proto.DecodeLeave(wire.NewReader(body, nil))
		outputServerID, derr = ev.OutputClientID, e
	}
	if derr != nil {
		*errs = append(*errs, object.NewError(object.TrailingBytes, object.WlSurface, opcode, derr.Error()))
		return
	}

	outputClientID := outputServerID
	if output, ok := client.LookupServerID(outputServerID); ok {
		outputClientID = output.ClientID
	}

	msg := wire.Encode(surface.ClientID, opcode, wire.NewWriter().Uint32(outputClientID))
	client.ClientEndpoint.QueueSend(msg, nil)
	state.MarkFlushable(client.ClientEndpoint)
}

// rawWriter wraps an already-encoded message body (arguments only, no
// header) so wire.Encode can prefix a freshly rewritten header onto it
// without this package needing to duplicate wire.Writer's internals.
func rawWriter(body []byte) *wire.Writer {
	w := wire.NewWriter()
	w.RawBytes(body)
	return w
}
