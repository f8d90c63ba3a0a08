// Package endpoint owns one side of a proxied connection: the raw Unix
// socket, its byte and file-descriptor buffers, and the framing loop that
// turns a stream of bytes into whole messages. It knows nothing about
// objects or interfaces; internal/object and internal/session build the
// protocol model on top of it.
package endpoint

import (
	"fmt"
	"net"
	"sync"

	"golang.org/x/sys/unix"

	"github.com/veilproto/wlveil/internal/wire"
)

// readChunk is the size of each recvmsg call, matching the original's
// buffering granularity; a message spanning several chunks is reassembled
// in recvBuf before the caller sees it.
const readChunk = 4096

// Endpoint is one end of a Unix-domain Wayland connection: a client's
// socket to the proxy, or the proxy's socket to the real server.
type Endpoint struct {
	// ID distinguishes endpoints in log lines; it is not protocol-visible.
	ID uint64

	conn *net.UnixConn

	mu       sync.Mutex
	recvBuf  []byte
	recvFDs  []int
	sendBuf  []byte
	sendMsgs []pendingSend
	flushing bool

	msgCount uint64
}

// pendingSend records where one queued message's bytes end within sendBuf
// and the fds it carries, so Flush can split a flush batch on a message
// boundary rather than ever sending a bare fd-only message with no body.
type pendingSend struct {
	end int
	fds []int
}

// New wraps an already-connected Unix socket.
func New(id uint64, conn *net.UnixConn) *Endpoint {
	return &Endpoint{ID: id, conn: conn}
}

// Dial connects to a Unix socket at path and wraps it as an Endpoint.
func Dial(id uint64, path string) (*Endpoint, error) {
	conn, err := net.DialUnix("unix", nil, &net.UnixAddr{Name: path, Net: "unix"})
	if err != nil {
		return nil, fmt.Errorf("endpoint: dial %s: %w", path, err)
	}
	return New(id, conn), nil
}

// Close closes the underlying socket.
func (e *Endpoint) Close() error {
	return e.conn.Close()
}

// Conn exposes the underlying connection for callers that need the raw fd
// (e.g. to select/poll alongside other endpoints).
func (e *Endpoint) Conn() *net.UnixConn {
	return e.conn
}

// FillBuffer performs one recvmsg call, appending any bytes and fds read
// onto the endpoint's internal buffers. It returns the number of bytes
// read and false once the peer has closed the connection cleanly.
func (e *Endpoint) FillBuffer() (int, bool, error) {
	buf := make([]byte, readChunk)
	oob := make([]byte, unix.CmsgSpace(wire.MaxFDsPerSendmsg*4))

	n, oobn, _, _, err := e.conn.ReadMsgUnix(buf, oob)
	if err != nil {
		return 0, false, err
	}
	if n == 0 && oobn == 0 {
		return 0, false, nil
	}

	fds, err := parseFDs(oob[:oobn])
	if err != nil {
		return 0, false, err
	}

	e.mu.Lock()
	e.recvBuf = append(e.recvBuf, buf[:n]...)
	e.recvFDs = append(e.recvFDs, fds...)
	e.mu.Unlock()

	return n, true, nil
}

func parseFDs(oob []byte) ([]int, error) {
	if len(oob) == 0 {
		return nil, nil
	}
	msgs, err := unix.ParseSocketControlMessage(oob)
	if err != nil {
		return nil, fmt.Errorf("endpoint: parse control message: %w", err)
	}
	var fds []int
	for _, m := range msgs {
		got, err := unix.ParseUnixRights(&m)
		if err != nil {
			continue
		}
		fds = append(fds, got...)
	}
	return fds, nil
}

// PeekHeader reports whether a whole message (its header plus the body
// its length word declares) is buffered, and if so returns that header.
func (e *Endpoint) PeekHeader() (wire.Header, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.recvBuf) < wire.HeaderSize {
		return wire.Header{}, false
	}
	h := wire.DecodeHeader(e.recvBuf)
	if len(e.recvBuf) < int(h.Length) {
		return wire.Header{}, false
	}
	return h, true
}

// TakeMessage removes and returns one complete message's body (header
// stripped) plus the fds consumed by it, once PeekHeader reports one is
// fully buffered. fdCount is the number of fd arguments the caller's
// interface table says this opcode carries; it is the caller's
// responsibility to know this since fds are not self-describing on the
// wire.
func (e *Endpoint) TakeMessage(fdCount int) ([]byte, []int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if len(e.recvBuf) < wire.HeaderSize {
		return nil, nil, fmt.Errorf("endpoint: TakeMessage called with no buffered header")
	}
	h := wire.DecodeHeader(e.recvBuf)
	total := int(h.Length)
	if len(e.recvBuf) < total {
		return nil, nil, fmt.Errorf("endpoint: TakeMessage called before body fully buffered")
	}
	if fdCount > len(e.recvFDs) {
		return nil, nil, fmt.Errorf("endpoint: message declares %d fds, only %d buffered", fdCount, len(e.recvFDs))
	}

	body := make([]byte, total-wire.HeaderSize)
	copy(body, e.recvBuf[wire.HeaderSize:total])
	e.recvBuf = e.recvBuf[total:]

	fds := make([]int, fdCount)
	copy(fds, e.recvFDs[:fdCount])
	e.recvFDs = e.recvFDs[fdCount:]

	e.msgCount++
	return body, fds, nil
}

// QueueSend appends a fully encoded message (header + body) and its
// accompanying fds to the outgoing buffer. Nothing is written to the
// socket until Flush runs; this lets a client session batch several
// forwarded messages (e.g. a burst of requests processed in one dispatch
// pass) into fewer syscalls.
func (e *Endpoint) QueueSend(msg []byte, fds []int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.sendBuf = append(e.sendBuf, msg...)
	e.sendMsgs = append(e.sendMsgs, pendingSend{end: len(e.sendBuf), fds: fds})
}

// Flush writes any queued outgoing messages to the socket, batching
// consecutive messages into one sendmsg call as long as their combined fds
// stay within wire.MaxFDsPerSendmsg. A batch always ends on a message
// boundary, so every sendmsg carries at least the one message whose fds it
// is delivering: unlike splitting the fd channel independently of the byte
// stream, this never has to emit a zero-byte WriteMsgUnix, which Linux can
// silently drop the ancillary data of.
func (e *Endpoint) Flush() error {
	e.mu.Lock()
	buf := e.sendBuf
	msgs := e.sendMsgs
	e.sendBuf = nil
	e.sendMsgs = nil
	e.mu.Unlock()

	if len(buf) == 0 {
		return nil
	}

	batchStart := 0
	var batchEnd int
	var batchFDs []int
	for _, m := range msgs {
		if len(batchFDs) > 0 && len(batchFDs)+len(m.fds) > wire.MaxFDsPerSendmsg {
			if err := e.writeBatch(buf[batchStart:batchEnd], batchFDs); err != nil {
				return err
			}
			batchStart = batchEnd
			batchFDs = nil
		}
		batchFDs = append(batchFDs, m.fds...)
		batchEnd = m.end
	}
	return e.writeBatch(buf[batchStart:batchEnd], batchFDs)
}

// writeBatch sends one contiguous slice of queued message bytes plus the
// fds those messages carry. A single message declaring more fds than
// wire.MaxFDsPerSendmsg (never true of any interface this proxy models)
// still gets them all in one call rather than silently dropped.
func (e *Endpoint) writeBatch(body []byte, fds []int) error {
	if len(fds) == 0 {
		_, _, err := e.conn.WriteMsgUnix(body, nil, nil)
		return err
	}
	_, _, err := e.conn.WriteMsgUnix(body, unix.UnixRights(fds...), nil)
	return err
}

// MarkFlushable and Flushable implement the cooperative flush-queue
// protocol: a dispatcher marks an endpoint dirty as it queues sends, and
// the owning session drains every dirty endpoint once per event-loop
// iteration rather than flushing after every single message.
func (e *Endpoint) MarkFlushable() {
	e.mu.Lock()
	e.flushing = true
	e.mu.Unlock()
}

// TakeFlushable reports and clears the flushable flag.
func (e *Endpoint) TakeFlushable() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	v := e.flushing
	e.flushing = false
	return v
}
