package session

import (
	"io"
	"net"
	"os"
	"testing"

	"github.com/rs/zerolog"
	"golang.org/x/sys/unix"

	"github.com/veilproto/wlveil/internal/endpoint"
	"github.com/veilproto/wlveil/internal/object"
)

func testLogger() zerolog.Logger {
	return zerolog.New(io.Discard)
}

func unixPipe(t *testing.T) *endpoint.Endpoint {
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
	return ep
}

func TestClientCheckClientIDMonotonic(t *testing.T) {
	c := NewClient(1, unixPipe(t), unixPipe(t))
	if err := c.CheckClientID(5); err != nil {
		t.Fatalf("CheckClientID(5) error: %v", err)
	}
	if err := c.CheckClientID(5); err == nil {
		t.Fatal("expected SetClientID error reusing id 5")
	}
	if err := c.CheckClientID(3); err == nil {
		t.Fatal("expected SetClientID error going backwards to id 3")
	}
	if err := c.CheckClientID(6); err != nil {
		t.Fatalf("CheckClientID(6) error: %v", err)
	}
}

func TestClientCheckClientIDRange(t *testing.T) {
	c := NewClient(1, unixPipe(t), unixPipe(t))
	if err := c.CheckClientID(0); err == nil {
		t.Fatal("expected SetClientID error for id 0")
	}
	if err := c.CheckClientID(object.ServerIDBase); err == nil {
		t.Fatal("expected SetClientID error for an id in the server range")
	}
}

func TestClientInsertAndLookup(t *testing.T) {
	c := NewClient(1, unixPipe(t), unixPipe(t))
	core := object.NewCore(object.WlSurface, 1, 7, nil, nil)
	c.Insert(core)

	got, ok := c.LookupClientID(7)
	if !ok || got != core {
		t.Fatal("LookupClientID did not find the inserted core")
	}
	if _, ok := c.LookupServerID(99); ok {
		t.Fatal("LookupServerID should miss before BindServerID")
	}

	c.BindServerID(core, 99)
	got, ok = c.LookupServerID(99)
	if !ok || got != core {
		t.Fatal("LookupServerID did not find the core after BindServerID")
	}
}

func TestClientRemove(t *testing.T) {
	c := NewClient(1, unixPipe(t), unixPipe(t))
	core := object.NewCore(object.WlSurface, 1, 7, nil, nil)
	c.Insert(core)
	c.BindServerID(core, 99)
	c.Remove(core)

	if _, ok := c.LookupClientID(7); ok {
		t.Fatal("Remove should drop the client-id entry")
	}
	if _, ok := c.LookupServerID(99); ok {
		t.Fatal("Remove should drop the server-id entry")
	}
}

func TestStateNextServerIDIncreases(t *testing.T) {
	s := NewState(nil, testLogger(), unixPipe(t))
	a, err := s.NextServerID()
	if err != nil {
		t.Fatalf("NextServerID error: %v", err)
	}
	b, err := s.NextServerID()
	if err != nil {
		t.Fatalf("NextServerID error: %v", err)
	}
	if a == 0 || b <= a {
		t.Fatalf("NextServerID sequence not increasing: %d then %d", a, b)
	}
	if a < object.ServerIDBase {
		t.Fatalf("NextServerID %d below ServerIDBase", a)
	}
}

func TestStateDrainFlushable(t *testing.T) {
	ep := unixPipe(t)
	s := NewState(nil, testLogger(), ep)

	s.MarkFlushable(ep)
	if errs := s.DrainFlushable(); len(errs) != 0 {
		t.Fatalf("DrainFlushable errors: %v", errs)
	}
	// A second drain with nothing newly marked must be a no-op.
	if errs := s.DrainFlushable(); len(errs) != 0 {
		t.Fatalf("second DrainFlushable errors: %v", errs)
	}
}
