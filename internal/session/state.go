package session

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/veilproto/wlveil/internal/config"
	"github.com/veilproto/wlveil/internal/endpoint"
	"github.com/veilproto/wlveil/internal/object"
)

// State is the process-wide state every Client shares: the loaded
// config, the logger, a cancellation context for shutdown, the
// server-ID allocator, and the set of endpoints with queued-but-unsent
// bytes. This is the one place the otherwise single-threaded-per-client
// dispatch model needs real locking, because several client goroutines
// can all originate objects that need fresh server IDs or can all queue
// sends to the single shared server endpoint in the same event-loop
// tick.
type State struct {
	Config *config.Config
	Log    zerolog.Logger
	Ctx    context.Context
	Cancel context.CancelFunc

	ServerEndpoint *endpoint.Endpoint

	mu            sync.Mutex
	nextServerID  uint32
	flushable     map[*endpoint.Endpoint]struct{}
	nextClientNum uint64
	byServerID    map[uint32]*Client
	clients       map[uint64]*Client
}

// NewState builds process-wide State around an already-dialed server
// endpoint and a loaded config.
func NewState(cfg *config.Config, log zerolog.Logger, serverEP *endpoint.Endpoint) *State {
	ctx, cancel := context.WithCancel(context.Background())
	return &State{
		Config:         cfg,
		Log:            log,
		Ctx:            ctx,
		Cancel:         cancel,
		ServerEndpoint: serverEP,
		nextServerID:   object.ServerIDBase,
		flushable:      make(map[*endpoint.Endpoint]struct{}),
		byServerID:     make(map[uint32]*Client),
		clients:        make(map[uint64]*Client),
	}
}

// indexServerID records that serverID now belongs to client, so the
// shared server-endpoint reader can route an event addressed to it
// without asking every connected Client in turn.
func (s *State) indexServerID(serverID uint32, client *Client) {
	s.mu.Lock()
	s.byServerID[serverID] = client
	s.mu.Unlock()
}

func (s *State) unindexServerID(serverID uint32) {
	s.mu.Lock()
	delete(s.byServerID, serverID)
	s.mu.Unlock()
}

// ResolveServerEvent finds the object a server-originated message's
// receiver ID names, across every connected client, along with the
// Client that owns it (so the caller can translate any further ids the
// event body carries and forward on that client's own endpoint).
func (s *State) ResolveServerEvent(serverID uint32) (*object.Core, *Client, bool) {
	s.mu.Lock()
	client, ok := s.byServerID[serverID]
	s.mu.Unlock()
	if !ok {
		return nil, nil, false
	}
	core, ok := client.LookupServerID(serverID)
	if !ok {
		return nil, nil, false
	}
	return core, client, true
}

// RegisterClient and UnregisterClient track every live connection so
// Shutdown and diagnostics can enumerate them.
func (s *State) RegisterClient(client *Client) {
	s.mu.Lock()
	s.clients[client.ID] = client
	s.mu.Unlock()
}

func (s *State) UnregisterClient(client *Client) {
	s.mu.Lock()
	delete(s.clients, client.ID)
	s.mu.Unlock()
}

// NextServerID hands out the next ID in the server-allocated range. It
// never returns 0 and, within a single process lifetime, never repeats;
// exhausting the 24-bit range is reported as GenerateServerID rather than
// wrapping into the client-allocated range.
func (s *State) NextServerID() (uint32, *object.Error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.nextServerID == 0 {
		return 0, object.NewError(object.GenerateServerID, object.InterfaceUnknown, 0, "server id range exhausted")
	}
	id := s.nextServerID
	s.nextServerID++
	if s.nextServerID == 0 {
		// Wrapped past 0xffffffff: mark exhausted so the next call fails
		// cleanly instead of reissuing IDs that may still be live.
		s.nextServerID = 0
	}
	return id, nil
}

// NextClientID hands out a process-unique sequence number for a freshly
// accepted connection; used only for log correlation, not wire IDs.
func (s *State) NextClientID() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextClientNum++
	return s.nextClientNum
}

// MarkFlushable records that ep has queued bytes waiting to be written.
func (s *State) MarkFlushable(ep *endpoint.Endpoint) {
	ep.MarkFlushable()
	s.mu.Lock()
	s.flushable[ep] = struct{}{}
	s.mu.Unlock()
}

// DrainFlushable flushes and clears every endpoint marked dirty since the
// last call, the single per-iteration step the cooperative event loop
// uses instead of flushing after every individual message.
func (s *State) DrainFlushable() []error {
	s.mu.Lock()
	pending := make([]*endpoint.Endpoint, 0, len(s.flushable))
	for ep := range s.flushable {
		pending = append(pending, ep)
	}
	s.flushable = make(map[*endpoint.Endpoint]struct{})
	s.mu.Unlock()

	var errs []error
	for _, ep := range pending {
		ep.TakeFlushable()
		if err := ep.Flush(); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}

// Shutdown cancels State's context. No accept or read loop in this module
// waits on that context, so blocking accepts and reads are not
// interrupted by it.
func (s *State) Shutdown() {
	s.Cancel()
}
