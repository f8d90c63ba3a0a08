package endpoint

import (
	"bytes"
	"net"
	"os"
	"testing"

	"golang.org/x/sys/unix"

	"github.com/veilproto/wlveil/internal/wire"
)

func unixPipe(t *testing.T) (*Endpoint, *net.UnixConn) {
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
	ep := New(1, c0.(*net.UnixConn))
	t.Cleanup(func() { ep.Close(); c1.Close() })
	return ep, c1.(*net.UnixConn)
}

func encodeMessage(receiver uint32, opcode uint16, body []byte) []byte {
	msg := make([]byte, wire.HeaderSize+len(body))
	wire.EncodeHeader(msg, wire.Header{Receiver: receiver, Opcode: opcode, Length: uint16(len(msg))})
	copy(msg[wire.HeaderSize:], body)
	return msg
}

func TestFillBufferThenTakeMessage(t *testing.T) {
	ep, peer := unixPipe(t)

	msg := encodeMessage(7, 3, []byte{1, 2, 3, 4})
	if _, err := peer.Write(msg); err != nil {
		t.Fatalf("peer.Write: %v", err)
	}

	n, ok, err := ep.FillBuffer()
	if err != nil {
		t.Fatalf("FillBuffer: %v", err)
	}
	if !ok || n != len(msg) {
		t.Fatalf("FillBuffer: n=%d ok=%v, want n=%d ok=true", n, ok, len(msg))
	}

	h, ok := ep.PeekHeader()
	if !ok {
		t.Fatal("PeekHeader: no header buffered")
	}
	if h.Receiver != 7 || h.Opcode != 3 || int(h.Length) != len(msg) {
		t.Fatalf("PeekHeader = %+v, want receiver=7 opcode=3 length=%d", h, len(msg))
	}

	body, fds, err := ep.TakeMessage(0)
	if err != nil {
		t.Fatalf("TakeMessage: %v", err)
	}
	if len(fds) != 0 {
		t.Fatalf("TakeMessage fds = %v, want none", fds)
	}
	if !bytes.Equal(body, []byte{1, 2, 3, 4}) {
		t.Fatalf("TakeMessage body = %v, want [1 2 3 4]", body)
	}

	if _, ok := ep.PeekHeader(); ok {
		t.Fatal("PeekHeader reports a second message after the only one was taken")
	}
}

func TestTakeMessageSplitsMultipleMessagesFromOneRead(t *testing.T) {
	ep, peer := unixPipe(t)

	msg1 := encodeMessage(1, 0, nil)
	msg2 := encodeMessage(2, 1, []byte{9, 9, 9, 9})
	if _, err := peer.Write(append(msg1, msg2...)); err != nil {
		t.Fatalf("peer.Write: %v", err)
	}

	if _, ok, err := ep.FillBuffer(); err != nil || !ok {
		t.Fatalf("FillBuffer: ok=%v err=%v", ok, err)
	}

	h1, ok := ep.PeekHeader()
	if !ok || h1.Receiver != 1 {
		t.Fatalf("PeekHeader #1 = %+v, ok=%v", h1, ok)
	}
	if _, _, err := ep.TakeMessage(0); err != nil {
		t.Fatalf("TakeMessage #1: %v", err)
	}

	h2, ok := ep.PeekHeader()
	if !ok || h2.Receiver != 2 {
		t.Fatalf("PeekHeader #2 = %+v, ok=%v", h2, ok)
	}
	body, _, err := ep.TakeMessage(0)
	if err != nil {
		t.Fatalf("TakeMessage #2: %v", err)
	}
	if !bytes.Equal(body, []byte{9, 9, 9, 9}) {
		t.Fatalf("TakeMessage #2 body = %v", body)
	}
}

func TestPeekHeaderFalseUntilFullyBuffered(t *testing.T) {
	ep, peer := unixPipe(t)

	msg := encodeMessage(1, 0, []byte{1, 2, 3, 4})
	// Write only the header's first three bytes; the rest arrives later.
	if _, err := peer.Write(msg[:3]); err != nil {
		t.Fatalf("peer.Write: %v", err)
	}
	if _, _, err := ep.FillBuffer(); err != nil {
		t.Fatalf("FillBuffer: %v", err)
	}
	if _, ok := ep.PeekHeader(); ok {
		t.Fatal("PeekHeader reports a complete header before one is buffered")
	}

	if _, err := peer.Write(msg[3:]); err != nil {
		t.Fatalf("peer.Write: %v", err)
	}
	if _, _, err := ep.FillBuffer(); err != nil {
		t.Fatalf("FillBuffer: %v", err)
	}
	if _, ok := ep.PeekHeader(); !ok {
		t.Fatal("PeekHeader still false once the rest of the message arrived")
	}
}

func TestQueueSendFlushRoundTrip(t *testing.T) {
	ep, peer := unixPipe(t)

	msg := encodeMessage(4, 2, []byte{5, 6, 7, 8})
	ep.QueueSend(msg, nil)
	if err := ep.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	buf := make([]byte, 64)
	n, err := peer.Read(buf)
	if err != nil {
		t.Fatalf("peer.Read: %v", err)
	}
	if !bytes.Equal(buf[:n], msg) {
		t.Fatalf("peer received %v, want %v", buf[:n], msg)
	}
}

func TestQueueSendCarriesFDs(t *testing.T) {
	ep, peer := unixPipe(t)

	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe: %v", err)
	}
	defer r.Close()
	defer w.Close()
	if _, err := w.Write([]byte("hi")); err != nil {
		t.Fatalf("w.Write: %v", err)
	}

	msg := encodeMessage(1, 0, nil)
	ep.QueueSend(msg, []int{int(r.Fd())})
	if err := ep.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	buf := make([]byte, 64)
	oob := make([]byte, unix.CmsgSpace(4))
	n, oobn, _, _, err := peer.ReadMsgUnix(buf, oob)
	if err != nil {
		t.Fatalf("ReadMsgUnix: %v", err)
	}
	if !bytes.Equal(buf[:n], msg) {
		t.Fatalf("received body %v, want %v", buf[:n], msg)
	}
	msgs, err := unix.ParseSocketControlMessage(oob[:oobn])
	if err != nil {
		t.Fatalf("ParseSocketControlMessage: %v", err)
	}
	if len(msgs) == 0 {
		t.Fatal("no control message received, expected the passed fd")
	}
	gotFDs, err := unix.ParseUnixRights(&msgs[0])
	if err != nil {
		t.Fatalf("ParseUnixRights: %v", err)
	}
	if len(gotFDs) != 1 {
		t.Fatalf("got %d fds, want 1", len(gotFDs))
	}
	defer unix.Close(gotFDs[0])

	got := make([]byte, 2)
	if _, err := unix.Read(gotFDs[0], got); err != nil {
		t.Fatalf("read from passed fd: %v", err)
	}
	if string(got) != "hi" {
		t.Fatalf("passed fd content = %q, want %q", got, "hi")
	}
}

func TestQueueSendSplitsOverflowFDsOnMessageBoundary(t *testing.T) {
	ep, peer := unixPipe(t)

	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe: %v", err)
	}
	defer r.Close()
	defer w.Close()

	const n = wire.MaxFDsPerSendmsg + 1
	msgSize := wire.HeaderSize
	for i := 0; i < n; i++ {
		msg := encodeMessage(1, 0, nil)
		ep.QueueSend(msg, []int{int(r.Fd())})
	}
	if err := ep.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	var gotFDs, gotBytes int
	buf := make([]byte, 4096)
	oob := make([]byte, unix.CmsgSpace(4*wire.MaxFDsPerSendmsg))
	for gotBytes < n*msgSize {
		bn, oobn, _, _, err := peer.ReadMsgUnix(buf, oob)
		if err != nil {
			t.Fatalf("ReadMsgUnix: %v", err)
		}
		if bn == 0 {
			t.Fatal("a batch carrying fds must never have a zero-byte body")
		}
		gotBytes += bn
		if oobn > 0 {
			msgs, err := unix.ParseSocketControlMessage(oob[:oobn])
			if err != nil {
				t.Fatalf("ParseSocketControlMessage: %v", err)
			}
			for _, m := range msgs {
				fds, err := unix.ParseUnixRights(&m)
				if err != nil {
					t.Fatalf("ParseUnixRights: %v", err)
				}
				for _, fd := range fds {
					unix.Close(fd)
				}
				gotFDs += len(fds)
			}
		}
	}
	if gotFDs != n {
		t.Fatalf("received %d fds across all batches, want %d", gotFDs, n)
	}
}

func TestMarkFlushableTakeFlushable(t *testing.T) {
	ep, _ := unixPipe(t)

	if ep.TakeFlushable() {
		t.Fatal("TakeFlushable true before MarkFlushable was ever called")
	}
	ep.MarkFlushable()
	if !ep.TakeFlushable() {
		t.Fatal("TakeFlushable false right after MarkFlushable")
	}
	if ep.TakeFlushable() {
		t.Fatal("TakeFlushable true a second time without an intervening MarkFlushable")
	}
}
