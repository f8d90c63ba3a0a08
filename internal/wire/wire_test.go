package wire

import "testing"

func TestFixedRoundtrip(t *testing.T) {
	cases := []float64{0, 1, -1, 3.5, -3.5, 0.25, 127.99609375}
	for _, v := range cases {
		f := FixedFromFloat64(v)
		got := f.Float64()
		if got != v {
			t.Errorf("FixedFromFloat64(%v).Float64() = %v, want %v", v, got, v)
		}
	}
}

func TestHeaderRoundtrip(t *testing.T) {
	h := Header{Receiver: 42, Opcode: 3, Length: 16}
	b := make([]byte, HeaderSize)
	EncodeHeader(b, h)
	got := DecodeHeader(b)
	if got != h {
		t.Errorf("DecodeHeader(EncodeHeader(%+v)) = %+v", h, got)
	}
}

func TestPad4(t *testing.T) {
	cases := map[int]int{0: 0, 1: 3, 2: 2, 3: 1, 4: 0, 5: 3}
	for n, want := range cases {
		if got := Pad4(n); got != want {
			t.Errorf("Pad4(%d) = %d, want %d", n, got, want)
		}
	}
}

func TestStringRoundtrip(t *testing.T) {
	for _, s := range []string{"", "hello", "wl_surface", "x"} {
		w := NewWriter()
		w.String(s, false)
		r := NewReader(w.Bytes(), nil)
		got, ok, err := r.ReadString(false)
		if err != nil {
			t.Fatalf("ReadString(%q) error: %v", s, err)
		}
		if !ok || got != s {
			t.Errorf("ReadString roundtrip: got %q, ok=%v, want %q", got, ok, s)
		}
		if err := r.Done(); err != nil {
			t.Errorf("unexpected trailing bytes after string %q: %v", s, err)
		}
	}
}

func TestNullStringRoundtrip(t *testing.T) {
	w := NewWriter()
	w.String("", true)
	r := NewReader(w.Bytes(), nil)
	got, ok, err := r.ReadString(true)
	if err != nil {
		t.Fatalf("ReadString(null) error: %v", err)
	}
	if ok || got != "" {
		t.Errorf("ReadString(null) = %q, ok=%v, want \"\", ok=false", got, ok)
	}
}

func TestStringNotNulTerminated(t *testing.T) {
	// Hand-build a body claiming length 4 ("abc\xff") with no trailing NUL.
	body := []byte{4, 0, 0, 0, 'a', 'b', 'c', 0xff}
	r := NewReader(body, nil)
	if _, _, err := r.ReadString(false); err == nil {
		t.Fatal("expected StringNotNulTerminated error, got nil")
	} else if ce, ok := err.(*CodecError); !ok || ce.Kind != StringNotNulTerminated {
		t.Errorf("got error %v, want CodecError{StringNotNulTerminated}", err)
	}
}

func TestArrayRoundtrip(t *testing.T) {
	data := []byte{1, 2, 3, 4, 5}
	w := NewWriter()
	w.Array(data)
	r := NewReader(w.Bytes(), nil)
	got, err := r.ReadArray()
	if err != nil {
		t.Fatalf("ReadArray error: %v", err)
	}
	if len(got) != len(data) {
		t.Fatalf("ReadArray length = %d, want %d", len(got), len(data))
	}
	for i := range data {
		if got[i] != data[i] {
			t.Errorf("ReadArray[%d] = %d, want %d", i, got[i], data[i])
		}
	}
}

func TestReadFDOrder(t *testing.T) {
	r := NewReader(nil, []int{7, 8, 9})
	for _, want := range []int{7, 8, 9} {
		got, err := r.ReadFD()
		if err != nil {
			t.Fatalf("ReadFD error: %v", err)
		}
		if got != want {
			t.Errorf("ReadFD = %d, want %d", got, want)
		}
	}
	if _, err := r.ReadFD(); err == nil {
		t.Fatal("expected UnexpectedEOF once fds are exhausted")
	}
}

func TestUnexpectedEOF(t *testing.T) {
	r := NewReader([]byte{1, 2, 3}, nil)
	if _, err := r.ReadUint32(); err == nil {
		t.Fatal("expected UnexpectedEOF reading uint32 from 3 bytes")
	}
}

func TestEncodeIncludesHeader(t *testing.T) {
	w := NewWriter()
	w.Uint32(99)
	msg := Encode(1, 2, w)
	if len(msg) != HeaderSize+4 {
		t.Fatalf("Encode length = %d, want %d", len(msg), HeaderSize+4)
	}
	h := DecodeHeader(msg)
	if h.Receiver != 1 || h.Opcode != 2 || int(h.Length) != len(msg) {
		t.Errorf("Encode header = %+v, want receiver=1 opcode=2 length=%d", h, len(msg))
	}
}
