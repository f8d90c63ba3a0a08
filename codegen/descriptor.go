// Package codegen is the development-time tool that demonstrates the
// §6.3 interface descriptor contract: it takes a Descriptor describing
// one Wayland interface's requests and emits a proto/*.go-shaped stub
// from it. The real per-interface slice in proto/ was written by hand
// against this same contract; an XML-to-source generator is the
// out-of-scope external collaborator this package stands in for.
package codegen

import "github.com/veilproto/wlveil/internal/wire"

// Arg is one message argument: its name (used for readability in the
// generated decode call only; the wire carries no argument names) and
// wire encoding.
type Arg struct {
	Name string
	Kind wire.ArgKind
}

// Message is one request opcode: its name, the arguments it decodes in
// positional order, and the interface version it was introduced in. A
// message whose last Arg has Kind ArgNewID is treated as constructing a
// child object (emits a NewSend* method); every other message emits a
// TrySend* method.
type Message struct {
	Name  string
	Since uint32
	Args  []Arg
}

// Descriptor is one interface's complete descriptor, the unit the
// generator consumes per §6.3: INTERFACE (Go identifier), INTERFACE_NAME
// (wire string), XML_VERSION, and the request set. Events are not part
// of this descriptor: every modeled interface's events are either
// raw-relayed or hand-written (see veil/loop.go), so the generator's
// contract only needs to cover the request side proto/ actually dispatches.
type Descriptor struct {
	GoName   string // e.g. "WlRegion"
	WireName string // e.g. "wl_region"
	Version  uint32
	Requests []Message
}

// NewID reports whether m constructs a child object.
func (m Message) NewID() bool {
	return len(m.Args) > 0 && m.Args[len(m.Args)-1].Kind == wire.ArgNewID
}

// ChildArgs returns every argument except a trailing new_id, the
// signature the generated TrySend*/NewSend* method's parameter list uses.
func (m Message) ChildArgs() []Arg {
	if m.NewID() {
		return m.Args[:len(m.Args)-1]
	}
	return m.Args
}
