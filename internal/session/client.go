// Package session ties the wire codec, object registry, and dispatcher
// together into a running client connection: one Client per accepted
// socket, pairing that client's endpoint with the shared upstream server
// endpoint, plus the process-wide State every Client shares.
package session

import (
	"fmt"
	"sync"

	"github.com/veilproto/wlveil/internal/endpoint"
	"github.com/veilproto/wlveil/internal/object"
)

// Client is one proxied connection: a client-facing endpoint and the
// shared server endpoint it forwards to, plus the two ID tables the
// object lifetime model requires: one keyed by client-allocated ID, one
// by the server ID the proxy assigned when it first needed to forward
// an object's identity upstream.
type Client struct {
	ID uint64

	ClientEndpoint *endpoint.Endpoint
	ServerEndpoint *endpoint.Endpoint

	// Owner, when set (AcceptOne always sets it), is notified of every
	// server-ID assignment so the single shared upstream connection's
	// event reader can route an incoming message to the right Client
	// without iterating every connection's table.
	Owner *State

	mu           sync.Mutex
	byClientID   map[uint32]*object.Core
	byServerID   map[uint32]*object.Core
	lastClientID uint32
}

// NewClient builds a Client pairing a freshly accepted client endpoint
// with the process's shared server endpoint.
func NewClient(id uint64, clientEP, serverEP *endpoint.Endpoint) *Client {
	return &Client{
		ID:             id,
		ClientEndpoint: clientEP,
		ServerEndpoint: serverEP,
		byClientID:     make(map[uint32]*object.Core),
		byServerID:     make(map[uint32]*object.Core),
	}
}

// Insert registers a newly created object under its client ID, and under
// its server ID too if one has already been assigned.
func (c *Client) Insert(o *object.Core) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if o.ClientID != 0 {
		c.byClientID[o.ClientID] = o
	}
	if o.ServerID != 0 {
		c.byServerID[o.ServerID] = o
	}
}

// LookupClientID resolves a client-allocated object ID.
func (c *Client) LookupClientID(id uint32) (*object.Core, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	o, ok := c.byClientID[id]
	return o, ok
}

// LookupServerID resolves a proxy-assigned server object ID.
func (c *Client) LookupServerID(id uint32) (*object.Core, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	o, ok := c.byServerID[id]
	return o, ok
}

// BindServerID records that o now also has a server ID (assigned by
// State.NextServerID), making it reachable via LookupServerID.
func (c *Client) BindServerID(o *object.Core, serverID uint32) {
	c.mu.Lock()
	o.ServerID = serverID
	c.byServerID[serverID] = o
	c.mu.Unlock()
	if c.Owner != nil {
		c.Owner.indexServerID(serverID, c)
	}
}

// CheckClientID validates that a newly claimed client-allocated ID falls
// in range and is strictly greater than every ID the client has used
// before: client IDs increase monotonically within a connection.
func (c *Client) CheckClientID(id uint32) *object.Error {
	if id == 0 || id > object.ClientIDMax {
		return object.NewError(object.SetClientID, object.InterfaceUnknown, 0,
			fmt.Sprintf("id %d outside client-allocated range", id))
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if id <= c.lastClientID {
		return object.NewError(object.SetClientID, object.InterfaceUnknown, 0,
			fmt.Sprintf("id %d is not greater than last-used %d", id, c.lastClientID))
	}
	c.lastClientID = id
	return nil
}

// Remove deletes an object from both tables once its destructor has run.
func (c *Client) Remove(o *object.Core) {
	c.mu.Lock()
	delete(c.byClientID, o.ClientID)
	serverID := o.ServerID
	if serverID != 0 {
		delete(c.byServerID, serverID)
	}
	c.mu.Unlock()
	if serverID != 0 && c.Owner != nil {
		c.Owner.unindexServerID(serverID)
	}
}

// Close closes the client endpoint of the pairing. The server endpoint is
// owned by State, not this Client, so Close leaves it open;
// callers that also need to drop the server connection go through State.
func (c *Client) Close() error {
	return c.ClientEndpoint.Close()
}
