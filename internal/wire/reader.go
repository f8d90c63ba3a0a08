package wire

// Reader decodes arguments from a single message's body, in order. It
// does not own the underlying byte slice; callers slice off one
// message's body (Header.Length - HeaderSize bytes) and hand it in.
// File descriptors arrive out of band (SCM_RIGHTS) and are queued
// separately by the endpoint; ReadFD just pops the next one in order.
type Reader struct {
	body []byte
	pos  int
	fds  []int
	fdAt int
}

// NewReader wraps body (a single message's argument bytes, header already
// stripped) and the fds that accompanied the underlying recvmsg call.
func NewReader(body []byte, fds []int) *Reader {
	return &Reader{body: body, fds: fds}
}

// Remaining reports how many undecoded bytes are left in the body.
func (r *Reader) Remaining() int {
	return len(r.body) - r.pos
}

func (r *Reader) take(n int) ([]byte, error) {
	if r.Remaining() < n {
		return nil, &CodecError{Kind: UnexpectedEOF}
	}
	b := r.body[r.pos : r.pos+n]
	r.pos += n
	return b, nil
}

// ReadUint32 decodes an int, uint, object, or new_id argument, all the
// same one-word encoding on the wire.
func (r *Reader) ReadUint32() (uint32, error) {
	b, err := r.take(4)
	if err != nil {
		return 0, err
	}
	return le32(b), nil
}

// ReadInt32 decodes a signed int argument.
func (r *Reader) ReadInt32() (int32, error) {
	v, err := r.ReadUint32()
	return int32(v), err
}

// ReadFixed decodes a 24.8 fixed-point argument.
func (r *Reader) ReadFixed() (Fixed, error) {
	v, err := r.ReadUint32()
	return Fixed(v), err
}

// ReadString decodes a length-prefixed, NUL-terminated, 4-byte-padded
// string argument. nullable controls whether a declared length of 0 is
// accepted as "absent" (returning "", false) instead of an empty string.
func (r *Reader) ReadString(nullable bool) (string, bool, error) {
	n, err := r.ReadUint32()
	if err != nil {
		return "", false, err
	}
	length := int32(n)
	if length < 0 {
		return "", false, &CodecError{Kind: NegativeLength, Arg: "string length"}
	}
	if length == 0 {
		if nullable {
			return "", false, nil
		}
		// A declared length of 0 carries no body bytes; a non-nullable
		// field decodes it as the empty string.
		return "", true, nil
	}
	if int(length) > r.Remaining() {
		return "", false, &CodecError{Kind: LengthExceedsMessage, Arg: "string"}
	}
	raw, err := r.take(int(length))
	if err != nil {
		return "", false, err
	}
	if raw[length-1] != 0 {
		return "", false, &CodecError{Kind: StringNotNulTerminated, Arg: "string"}
	}
	if _, err := r.take(Pad4(int(length))); err != nil {
		return "", false, err
	}
	return string(raw[:length-1]), true, nil
}

// ReadArray decodes a length-prefixed, 4-byte-padded opaque byte array.
func (r *Reader) ReadArray() ([]byte, error) {
	n, err := r.ReadUint32()
	if err != nil {
		return nil, err
	}
	length := int32(n)
	if length < 0 {
		return nil, &CodecError{Kind: NegativeLength, Arg: "array length"}
	}
	if int(length) > r.Remaining() {
		return nil, &CodecError{Kind: LengthExceedsMessage, Arg: "array"}
	}
	raw, err := r.take(int(length))
	if err != nil {
		return nil, err
	}
	out := make([]byte, length)
	copy(out, raw)
	if _, err := r.take(Pad4(int(length))); err != nil {
		return nil, err
	}
	return out, nil
}

// ReadFD pops the next file descriptor queued for this message. Unlike
// every other argument kind it consumes no body bytes; fds travel
// alongside the message on the SCM_RIGHTS side channel, in argument order.
func (r *Reader) ReadFD() (int, error) {
	if r.fdAt >= len(r.fds) {
		return -1, &CodecError{Kind: UnexpectedEOF, Arg: "fd"}
	}
	fd := r.fds[r.fdAt]
	r.fdAt++
	return fd, nil
}

// Done reports a TrailingBytes condition: the decoder consumed the full
// declared signature but bytes remain in the body.
func (r *Reader) Done() error {
	if r.Remaining() != 0 {
		return &CodecError{Kind: LengthExceedsMessage, Arg: "trailing bytes"}
	}
	return nil
}
