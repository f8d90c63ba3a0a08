package dispatch

import (
	"net"
	"os"
	"testing"

	"golang.org/x/sys/unix"

	"github.com/veilproto/wlveil/internal/endpoint"
	"github.com/veilproto/wlveil/internal/object"
	"github.com/veilproto/wlveil/internal/wire"
)

func unixPipe(t *testing.T) (*endpoint.Endpoint, *net.UnixConn) {
	t.Helper()
	fds, err := unix.Socketpair(unix.AF_UNIX, unix.SOCK_STREAM, 0)
	if err != nil {
		t.Fatalf("Socketpair: %v", err)
	}
	f0 := os.NewFile(uintptr(fds[0]), "ep")
	c0, err := net.FileConn(f0)
	f0.Close()
	if err != nil {
		t.Fatalf("FileConn: %v", err)
	}
	f1 := os.NewFile(uintptr(fds[1]), "peer")
	c1, err := net.FileConn(f1)
	f1.Close()
	if err != nil {
		t.Fatalf("FileConn: %v", err)
	}
	ep := endpoint.New(1, c0.(*net.UnixConn))
	t.Cleanup(func() { ep.Close(); c1.Close() })
	return ep, c1.(*net.UnixConn)
}

func TestDispatchOneDecodesAndInvokes(t *testing.T) {
	ep, peer := unixPipe(t)

	var gotArg uint32
	table := Table{
		{
			Name:      "commit",
			Signature: nil,
			Handle: func(core *object.Core, r *wire.Reader) error {
				return nil
			},
		},
		{
			Name:      "set_scale",
			Signature: []wire.ArgKind{wire.ArgUint},
			Handle: func(core *object.Core, r *wire.Reader) error {
				v, err := r.ReadUint32()
				if err != nil {
					return err
				}
				gotArg = v
				return nil
			},
		},
	}
	registry := Registry{object.WlSurface: table}

	core := object.NewCore(object.WlSurface, 1, 5, nil, nil)
	lookup := func(id uint32) (*object.Core, bool) {
		if id == 5 {
			return core, true
		}
		return nil, false
	}

	w := wire.NewWriter()
	w.Uint32(42)
	msg := wire.Encode(5, 1, w)
	if _, _, err := peer.WriteMsgUnix(msg, nil, nil); err != nil {
		t.Fatalf("WriteMsgUnix: %v", err)
	}
	if _, _, err := ep.FillBuffer(); err != nil {
		t.Fatalf("FillBuffer: %v", err)
	}

	gotCore, derr := One(ep, registry, lookup, nil, object.NoClientObject)
	if derr != nil {
		t.Fatalf("One returned error: %v", derr)
	}
	if gotCore != core {
		t.Fatal("One returned the wrong core")
	}
	if gotArg != 42 {
		t.Errorf("handler saw arg %d, want 42", gotArg)
	}
}

func TestDispatchUnknownReceiver(t *testing.T) {
	ep, peer := unixPipe(t)

	w := wire.NewWriter()
	msg := wire.Encode(99, 0, w)
	if _, _, err := peer.WriteMsgUnix(msg, nil, nil); err != nil {
		t.Fatalf("WriteMsgUnix: %v", err)
	}
	if _, _, err := ep.FillBuffer(); err != nil {
		t.Fatalf("FillBuffer: %v", err)
	}

	_, derr := One(ep, Registry{}, func(uint32) (*object.Core, bool) { return nil, false }, nil, object.NoClientObject)
	if derr == nil || derr.Kind != object.NoClientObject {
		t.Fatalf("got %v, want NoClientObject", derr)
	}
}

func TestDispatchUnknownReceiverReportsRequestedKind(t *testing.T) {
	ep, peer := unixPipe(t)

	w := wire.NewWriter()
	msg := wire.Encode(0xff000099, 0, w)
	if _, _, err := peer.WriteMsgUnix(msg, nil, nil); err != nil {
		t.Fatalf("WriteMsgUnix: %v", err)
	}
	if _, _, err := ep.FillBuffer(); err != nil {
		t.Fatalf("FillBuffer: %v", err)
	}

	_, derr := One(ep, Registry{}, func(uint32) (*object.Core, bool) { return nil, false }, nil, object.NoServerObject)
	if derr == nil || derr.Kind != object.NoServerObject {
		t.Fatalf("got %v, want NoServerObject for a server-direction resolver", derr)
	}
}

func TestDispatchUnknownOpcode(t *testing.T) {
	ep, peer := unixPipe(t)
	core := object.NewCore(object.WlSurface, 1, 5, nil, nil)
	registry := Registry{object.WlSurface: Table{{Name: "destroy", Handle: func(*object.Core, *wire.Reader) error { return nil }}}}

	w := wire.NewWriter()
	msg := wire.Encode(5, 9, w)
	if _, _, err := peer.WriteMsgUnix(msg, nil, nil); err != nil {
		t.Fatalf("WriteMsgUnix: %v", err)
	}
	if _, _, err := ep.FillBuffer(); err != nil {
		t.Fatalf("FillBuffer: %v", err)
	}

	_, derr := One(ep, registry, func(uint32) (*object.Core, bool) { return core, true }, nil, object.NoClientObject)
	if derr == nil || derr.Kind != object.UnknownMessageID {
		t.Fatalf("got %v, want UnknownMessageID", derr)
	}
}

func TestDispatchPolicyDeniedStillConsumesMessage(t *testing.T) {
	ep, peer := unixPipe(t)
	called := false
	table := Table{
		{Name: "commit", Handle: func(*object.Core, *wire.Reader) error {
			called = true
			return nil
		}},
	}
	registry := Registry{object.WlSurface: table}
	core := object.NewCore(object.WlSurface, 1, 5, nil, nil)
	lookup := func(id uint32) (*object.Core, bool) { return core, true }

	msg := wire.Encode(5, 0, wire.NewWriter())
	if _, _, err := peer.WriteMsgUnix(msg, nil, nil); err != nil {
		t.Fatalf("WriteMsgUnix: %v", err)
	}
	if _, _, err := ep.FillBuffer(); err != nil {
		t.Fatalf("FillBuffer: %v", err)
	}

	gotCore, derr := One(ep, registry, lookup, func(*object.Core) bool { return false }, object.NoClientObject)
	if derr != nil {
		t.Fatalf("denied message should not report an error: %v", derr)
	}
	if gotCore != core {
		t.Fatal("One should still return the resolved core when denied")
	}
	if called {
		t.Fatal("Handle must not run when policy denies the message")
	}
	if _, ok := ep.PeekHeader(); ok {
		t.Fatal("denied message must still be consumed from the endpoint")
	}
}

func TestDispatchNoBufferedMessage(t *testing.T) {
	ep, _ := unixPipe(t)
	core, derr := One(ep, Registry{}, func(uint32) (*object.Core, bool) { return nil, false }, nil, object.NoClientObject)
	if core != nil || derr != nil {
		t.Fatalf("One with nothing buffered should return nil, nil; got %v, %v", core, derr)
	}
}
