package session

import (
	"fmt"
	"net"
	"os"

	"github.com/veilproto/wlveil/internal/endpoint"
	"github.com/veilproto/wlveil/internal/object"
)

// Listen opens the proxy's client-facing Unix socket at path, removing
// any stale socket file left behind by a previous run first (matching
// the usual Wayland-compositor convention of owning that path outright).
func Listen(path string) (*net.UnixListener, error) {
	_ = os.Remove(path)
	l, err := net.ListenUnix("unix", &net.UnixAddr{Name: path, Net: "unix"})
	if err != nil {
		return nil, fmt.Errorf("session: listen %s: %w", path, err)
	}
	return l, nil
}

// AcceptOne accepts one client connection and builds the Client session
// around it, wiring every freshly created object's Owner/AllocServerID/
// MarkDirty to this State so proto/ stubs can resolve siblings and flush
// without further plumbing.
func (s *State) AcceptOne(l *net.UnixListener) (*Client, error) {
	conn, err := l.AcceptUnix()
	if err != nil {
		return nil, err
	}
	clientNum := s.NextClientID()
	clientEP := endpoint.New(clientNum, conn)
	client := NewClient(clientNum, clientEP, s.ServerEndpoint)
	client.Owner = s
	s.RegisterClient(client)

	display := object.NewCore(object.WlDisplay, 1, 1, clientEP, s.ServerEndpoint)
	display.Owner = client
	display.AllocServerID = s.NextServerID
	display.MarkDirty = s.MarkFlushable
	client.Insert(display)
	// wl_display is always object id 1 on both the client and the
	// upstream server connection, never handed out by NextServerID.
	client.BindServerID(display, 1)

	return client, nil
}

// NewObject is the constructor every proto/ new-id request handler
// should reach for via object.Core.AdoptNewID instead of calling
// object.NewCore directly, so the wiring above stays in one place; kept
// here for callers that build the very first object of a connection
// (the display) rather than a child of an existing one.
func (s *State) NewObject(iface object.Interface, version uint32, clientID uint32, client *Client) *object.Core {
	core := object.NewCore(iface, version, clientID, client.ClientEndpoint, client.ServerEndpoint)
	core.Owner = client
	core.AllocServerID = s.NextServerID
	core.MarkDirty = s.MarkFlushable
	return core
}
