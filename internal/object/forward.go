package object

import (
	"github.com/veilproto/wlveil/internal/endpoint"
	"github.com/veilproto/wlveil/internal/wire"
)

// ResolveForServer translates a client-ID object argument into the
// server ID the upstream connection knows it by, assigning one lazily
// (via AllocServerID + BindServerID) the first time an object crosses.
// A zero clientID represents a null object argument and translates to
// zero without consulting Owner.
func (c *Core) ResolveForServer(clientID uint32) (uint32, *Error) {
	if clientID == 0 {
		return 0, nil
	}
	arg, ok := c.Owner.LookupClientID(clientID)
	if !ok {
		return 0, NewError(NoClientObject, c.Interface, 0, "")
	}
	if arg.ServerID != 0 {
		return arg.ServerID, nil
	}
	if c.AllocServerID == nil {
		return 0, NewError(ArgNoServerID, c.Interface, 0, "")
	}
	id, err := c.AllocServerID()
	if err != nil {
		return 0, err
	}
	c.Owner.BindServerID(arg, id)
	return id, nil
}

// AdoptNewID validates clientID against the owning registry's
// monotonic-allocation rule, then registers a freshly created child
// object (the target of a new_id request argument) under it, inheriting
// this object's endpoints and owner so it's immediately reachable by
// later messages addressed to it.
func (c *Core) AdoptNewID(iface Interface, version uint32, clientID uint32) (*Core, *Error) {
	if err := c.Owner.CheckClientID(clientID); err != nil {
		return nil, err
	}
	child := NewCore(iface, version, clientID, c.ClientEndpoint, c.ServerEndpoint)
	child.Owner = c.Owner
	child.AllocServerID = c.AllocServerID
	child.MarkDirty = c.MarkDirty
	c.Owner.Insert(child)
	return child, nil
}

// SendToServer encodes opcode with the given body/fds and queues it on
// the server endpoint using this object's server ID, returning
// ReceiverNoServerID if one hasn't been assigned yet.
func (c *Core) SendToServer(opcode uint16, w *wire.Writer) *Error {
	serverID, err := c.RequireServerID()
	if err != nil {
		return err
	}
	msg := wire.Encode(serverID, opcode, w)
	c.ServerEndpoint.QueueSend(msg, w.FDs())
	c.markDirty(c.ServerEndpoint)
	return nil
}

func (c *Core) markDirty(ep *endpoint.Endpoint) {
	if c.MarkDirty != nil {
		c.MarkDirty(ep)
		return
	}
	ep.MarkFlushable()
}

// SendToClient encodes opcode with the given body/fds and queues it on
// the client endpoint using this object's client ID, returning
// ReceiverNoClient if the client never bound this object.
func (c *Core) SendToClient(opcode uint16, w *wire.Writer) *Error {
	clientID, err := c.RequireClientID()
	if err != nil {
		return err
	}
	msg := wire.Encode(clientID, opcode, w)
	c.ClientEndpoint.QueueSend(msg, w.FDs())
	c.markDirty(c.ClientEndpoint)
	return nil
}
