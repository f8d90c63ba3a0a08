package object

import "sync"

// Slot is a one-shot-borrow handler cell, the Go stand-in for a
// reference-counted `RefCell<Option<Box<dyn Handler>>>`. Go's GC makes
// the Rc/weak-self dance unnecessary, but the RefCell's runtime borrow
// check still matters: a handler that (directly or via a re-entrant
// event loop iteration) tries to dispatch into itself while already
// running must fail loudly rather than corrupt state. Slot enforces
// that with a mutex and a borrowed flag; under the proxy's
// single-threaded-per-client dispatch the mutex is never contended, so
// this costs nothing in practice.
type Slot[T any] struct {
	mu       sync.Mutex
	handler  T
	set      bool
	borrowed bool
}

// Set installs h as the slot's handler, replacing any previous one.
func (s *Slot[T]) Set(h T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handler = h
	s.set = true
}

// Clear removes any installed handler.
func (s *Slot[T]) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	var zero T
	s.handler = zero
	s.set = false
}

// Borrow hands the caller the installed handler for the duration of fn.
// If no handler is installed, ok is false and fn does not run. If the
// slot is already borrowed (a re-entrant call arrived while fn from an
// outer Borrow is still executing), Borrow returns HandlerBorrowed
// instead of running fn again.
func (s *Slot[T]) Borrow(fn func(T)) (ok bool, err error) {
	s.mu.Lock()
	if !s.set {
		s.mu.Unlock()
		return false, nil
	}
	if s.borrowed {
		s.mu.Unlock()
		return true, &Error{Kind: HandlerBorrowed}
	}
	s.borrowed = true
	h := s.handler
	s.mu.Unlock()

	fn(h)

	s.mu.Lock()
	s.borrowed = false
	s.mu.Unlock()
	return true, nil
}
