// Package dispatch is the generic per-interface message router: given a
// buffered message and the receiving object's interface, it looks up
// the opcode in that interface's dispatch table, decodes the arguments
// per the table's declared signature, and invokes the table entry's
// handler closure. No per-interface switch statement exists anywhere in
// this package; proto/ stubs only ever contribute a literal Table value.
package dispatch

import (
	"github.com/veilproto/wlveil/internal/endpoint"
	"github.com/veilproto/wlveil/internal/object"
	"github.com/veilproto/wlveil/internal/wire"
)

// Entry describes one opcode of one interface: its name (for logging and
// UnknownMessageID detail), the argument signature (used to count fds the
// endpoint must have buffered before decoding can start), the protocol
// version it was introduced in, and the closure that decodes the body and
// invokes whatever handler is installed.
type Entry struct {
	Name      string
	Signature []wire.ArgKind
	Since     uint32
	Handle    func(core *object.Core, r *wire.Reader) error
}

// Table is one interface's complete opcode table, indexed by opcode.
type Table []Entry

// FDCount returns how many ArgFD entries a signature declares, i.e. how
// many file descriptors must already be buffered before a message using
// this signature can be decoded.
func FDCount(sig []wire.ArgKind) int {
	n := 0
	for _, k := range sig {
		if k == wire.ArgFD {
			n++
		}
	}
	return n
}

// Resolver looks up the object a message's receiver ID names. Dispatch is
// agnostic to whether the ID is a client ID or a server ID; the caller
// (a Client forwarding a request, or State forwarding a server event)
// passes the lookup appropriate to the direction.
type Resolver func(receiverID uint32) (*object.Core, bool)

// Registry maps each modeled interface to its opcode table. Built once at
// startup from the proto/ package's generated tables.
type Registry map[object.Interface]Table

// PolicyFunc gates whether a resolved receiver's message should be
// decoded and handled at all. A nil PolicyFunc (pass allow=nil to One)
// always allows; the caller otherwise supplies something like
// veil.Policy.AllowRequest. A denied message is still consumed from the
// endpoint so stream framing stays intact; it is silently dropped
// rather than forwarded.
type PolicyFunc func(core *object.Core) bool

// One processes exactly one fully buffered message from ep, using lookup
// to resolve the receiver and registry to find its dispatch table. It
// returns the receiver object (for forwarding-policy decisions by the
// caller) plus any object.Error encountered; a nil Core with a nil error
// means no complete message was buffered. unknownReceiver is the
// ErrorKind reported when lookup fails to resolve h.Receiver: object.NoClientObject for a caller
// resolving client-assigned ids, object.NoServerObject for one resolving
// server-assigned ids.
func One(ep *endpoint.Endpoint, registry Registry, lookup Resolver, allow PolicyFunc, unknownReceiver object.ErrorKind) (*object.Core, *object.Error) {
	h, ok := ep.PeekHeader()
	if !ok {
		return nil, nil
	}

	core, ok := lookup(h.Receiver)
	if !ok {
		// The receiver ID names no live object. We still have to consume
		// the message (we don't know its fd count without a table), so
		// conservatively assume it carries no fds: a message to an
		// unknown receiver carrying fds will desync the fd queue, but
		// that receiver ID is itself already a fatal protocol violation.
		_, _, _ = ep.TakeMessage(0)
		return nil, object.NewError(unknownReceiver, object.InterfaceUnknown, h.Opcode, "")
	}

	table, ok := registry[core.Interface]
	if !ok || int(h.Opcode) >= len(table) {
		fdCount := 0
		if ok && int(h.Opcode) < len(table) {
			fdCount = FDCount(table[h.Opcode].Signature)
		}
		_, _, _ = ep.TakeMessage(fdCount)
		return core, object.NewError(object.UnknownMessageID, core.Interface, h.Opcode, "")
	}

	entry := table[h.Opcode]
	if core.Version < entry.Since {
		_, _, _ = ep.TakeMessage(FDCount(entry.Signature))
		return core, object.NewError(object.UnknownMessageID, core.Interface, h.Opcode,
			"opcode requires version "+itoa(entry.Since)+", object is version "+itoa(core.Version))
	}

	body, fds, err := ep.TakeMessage(FDCount(entry.Signature))
	if err != nil {
		return core, object.NewError(object.WrongMessageSize, core.Interface, h.Opcode, err.Error())
	}

	if allow != nil && !allow(core) {
		return core, nil
	}

	r := wire.NewReader(body, fds)
	if herr := entry.Handle(core, r); herr != nil {
		if oe, ok := herr.(*object.Error); ok {
			return core, oe
		}
		return core, object.NewError(object.MissingArgument, core.Interface, h.Opcode, herr.Error())
	}
	if derr := r.Done(); derr != nil {
		return core, object.NewError(object.TrailingBytes, core.Interface, h.Opcode, derr.Error())
	}
	return core, nil
}

func itoa(v uint32) string {
	if v == 0 {
		return "0"
	}
	var buf [10]byte
	i := len(buf)
	for v > 0 {
		i--
		buf[i] = byte('0' + v%10)
		v /= 10
	}
	return string(buf[i:])
}
