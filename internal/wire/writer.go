package wire

// MaxFDsPerSendmsg is the largest number of file descriptors the kernel
// reliably delivers in a single SCM_RIGHTS ancillary message (see
// /proc/sys/net/core/scm_max_fds on Linux). The endpoint starts a new
// sendmsg call at a message boundary before a batch's fds would exceed
// this; a single message is never split, so one carrying more fds than
// this still goes out in one call.
const MaxFDsPerSendmsg = 253

// Writer builds one message's argument body, matching the original's
// formatter() helper: word-at-a-time accumulation plus a side list of fds
// to hand the endpoint for the accompanying SCM_RIGHTS control message.
type Writer struct {
	body []byte
	fds  []int
}

// NewWriter returns an empty Writer.
func NewWriter() *Writer {
	return &Writer{}
}

// Uint32 appends a one-word int, uint, object, or new_id argument.
func (w *Writer) Uint32(v uint32) *Writer {
	var b [4]byte
	putLE32(b[:], v)
	w.body = append(w.body, b[:]...)
	return w
}

// Int32 appends a one-word signed int argument.
func (w *Writer) Int32(v int32) *Writer {
	return w.Uint32(uint32(v))
}

// Fixed appends a 24.8 fixed-point argument.
func (w *Writer) Fixed(v Fixed) *Writer {
	return w.Uint32(uint32(v))
}

// String appends a length-prefixed, NUL-terminated, 4-byte-padded string.
// A nil/absent nullable string must be encoded by the caller as length 0
// with no body, which this produces when s == "" and null is true.
func (w *Writer) String(s string, null bool) *Writer {
	if s == "" && null {
		return w.Uint32(0)
	}
	n := uint32(len(s) + 1)
	w.Uint32(n)
	w.body = append(w.body, s...)
	w.body = append(w.body, 0)
	w.body = append(w.body, make([]byte, Pad4(int(n)))...)
	return w
}

// Array appends a length-prefixed, 4-byte-padded opaque byte array.
func (w *Writer) Array(b []byte) *Writer {
	w.Uint32(uint32(len(b)))
	w.body = append(w.body, b...)
	w.body = append(w.body, make([]byte, Pad4(len(b)))...)
	return w
}

// FD queues a file descriptor to accompany this message out of band. It
// contributes no bytes to the body.
func (w *Writer) FD(fd int) *Writer {
	w.fds = append(w.fds, fd)
	return w
}

// RawBytes appends an already-encoded argument body verbatim, for
// messages this proxy relays without decoding (see veil.RunServerEvents).
func (w *Writer) RawBytes(b []byte) *Writer {
	w.body = append(w.body, b...)
	return w
}

// Bytes returns the accumulated argument body.
func (w *Writer) Bytes() []byte {
	return w.body
}

// FDs returns the fds queued for this message, in argument order.
func (w *Writer) FDs() []int {
	return w.fds
}

// Encode assembles the full wire message: header followed by body.
func Encode(receiver uint32, opcode uint16, w *Writer) []byte {
	length := HeaderSize + len(w.body)
	out := make([]byte, length)
	EncodeHeader(out, Header{Receiver: receiver, Opcode: opcode, Length: uint16(length)})
	copy(out[HeaderSize:], w.body)
	return out
}
