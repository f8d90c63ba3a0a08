// Package proto contains one file per modeled Wayland interface
// implementing a common stub contract: an opaque object type
// embedding *object.Core, TrySend*/NewSend* methods for the
// interface's requests that return any *object.Error to the caller,
// and a dispatch.Table for the request opcodes it models. Some files
// also declare Msg*Since version constants. There are no Send* methods
// that log and discard errors, and only wl_surface has a Handler
// interface (WlSurfaceHandler) with a DefaultHandler; the other tables
// call the TrySend*/NewSend* methods directly. Each file is small and
// mechanical by design; codegen/ demonstrates generating this shape
// from a descriptor.
package proto

import (
	"github.com/veilproto/wlveil/internal/object"
	"github.com/veilproto/wlveil/internal/wire"
)

// errOrNil converts a possibly-nil *object.Error to the error interface,
// so a dispatch.Entry.Handle closure (which returns plain error) can
// return the result of a TrySend/NewSend call directly without a typed
// nil pointer masquerading as a non-nil error interface value.
func errOrNil(err *object.Error) error {
	if err == nil {
		return nil
	}
	return err
}

// read4Int decodes the four int32 arguments shared by several requests
// (region add/subtract, surface damage/damage_buffer) in one call.
func read4Int(r *wire.Reader) (a, b, c, d int32, err error) {
	if a, err = r.ReadInt32(); err != nil {
		return
	}
	if b, err = r.ReadInt32(); err != nil {
		return
	}
	if c, err = r.ReadInt32(); err != nil {
		return
	}
	d, err = r.ReadInt32()
	return
}
