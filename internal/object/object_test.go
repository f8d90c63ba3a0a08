package object

import (
	"sync"
	"testing"
)

func TestSlotBorrowRunsHandler(t *testing.T) {
	var s Slot[func()]
	var ran bool
	s.Set(func() { ran = true })

	ok, err := s.Borrow(func(h func()) { h() })
	if err != nil {
		t.Fatalf("Borrow error: %v", err)
	}
	if !ok {
		t.Fatal("Borrow reported no handler installed")
	}
	if !ran {
		t.Fatal("handler did not run")
	}
}

func TestSlotBorrowNoHandler(t *testing.T) {
	var s Slot[func()]
	ok, err := s.Borrow(func(h func()) { t.Fatal("handler ran with none installed") })
	if err != nil {
		t.Fatalf("Borrow error: %v", err)
	}
	if ok {
		t.Fatal("Borrow reported a handler installed when none was")
	}
}

func TestSlotBorrowReentrant(t *testing.T) {
	var s Slot[func()]
	var innerErr error
	s.Set(func() {
		_, innerErr = s.Borrow(func(func()) {})
	})

	ok, err := s.Borrow(func(h func()) { h() })
	if err != nil {
		t.Fatalf("outer Borrow error: %v", err)
	}
	if !ok {
		t.Fatal("outer Borrow reported no handler")
	}
	if innerErr == nil {
		t.Fatal("expected HandlerBorrowed on re-entrant Borrow")
	}
	if oe, ok := innerErr.(*Error); !ok || oe.Kind != HandlerBorrowed {
		t.Fatalf("got error %v, want HandlerBorrowed", innerErr)
	}
}

func TestSlotBorrowReleasesAfterRun(t *testing.T) {
	var s Slot[func()]
	s.Set(func() {})
	if _, err := s.Borrow(func(h func()) { h() }); err != nil {
		t.Fatalf("first Borrow error: %v", err)
	}
	if _, err := s.Borrow(func(h func()) { h() }); err != nil {
		t.Fatalf("second Borrow error: %v", err)
	}
}

func TestSlotConcurrentBorrowOneWins(t *testing.T) {
	var s Slot[func()]
	release := make(chan struct{})
	s.Set(func() { <-release })

	var wg sync.WaitGroup
	errs := make(chan error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.Borrow(func(h func()) { h() })
			errs <- err
		}()
	}
	close(release)
	wg.Wait()
	close(errs)

	var borrowedCount int
	for err := range errs {
		if err != nil {
			if oe, ok := err.(*Error); ok && oe.Kind == HandlerBorrowed {
				borrowedCount++
			}
		}
	}
	if borrowedCount > 1 {
		t.Fatalf("expected at most one HandlerBorrowed, got %d", borrowedCount)
	}
}

func TestCoreTransparentByDefault(t *testing.T) {
	c := NewCore(WlSurface, 4, 5, nil, nil)
	if !c.ForwardToServer || !c.ForwardToClient {
		t.Fatal("new core must forward in both directions by default")
	}
}

func TestCoreRequireServerIDMissing(t *testing.T) {
	c := NewCore(WlSurface, 4, 5, nil, nil)
	if _, err := c.RequireServerID(); err == nil {
		t.Fatal("expected ReceiverNoServerID before a server id is assigned")
	} else if err.Kind != ReceiverNoServerID {
		t.Fatalf("got %v, want ReceiverNoServerID", err.Kind)
	}
}

func TestCoreMarkDestroyedIsIdempotent(t *testing.T) {
	c := NewCore(WlCallback, 1, 7, nil, nil)
	if c.Destroyed {
		t.Fatal("a freshly created object must not start destroyed")
	}
	c.MarkDestroyed()
	c.MarkDestroyed()
	if !c.Destroyed {
		t.Fatal("MarkDestroyed must leave the object marked destroyed")
	}
}

func TestInterfaceLookupRoundtrip(t *testing.T) {
	for name, iface := range namesToInterface {
		if iface.String() != name {
			t.Errorf("Interface(%d).String() = %q, want %q", iface, iface.String(), name)
		}
		got, ok := LookupInterface(name)
		if !ok || got != iface {
			t.Errorf("LookupInterface(%q) = %v, %v, want %v, true", name, got, ok, iface)
		}
	}
	if _, ok := LookupInterface("xdg_toplevel_decoration_unstable_v1"); ok {
		t.Fatal("LookupInterface should not resolve an interface outside the modeled slice")
	}
}

func TestErrorKindFatalSplit(t *testing.T) {
	if !WrongMessageSize.Fatal() {
		t.Fatal("WrongMessageSize must be fatal")
	}
	if ReceiverNoServerID.Fatal() {
		t.Fatal("ReceiverNoServerID must not be fatal")
	}
}
