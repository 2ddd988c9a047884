package connection

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/yndnr/foldershare-go/internal/core/domain"
	"github.com/yndnr/foldershare-go/internal/protocol"
)

// Connection describes a host to connect to.
type Connection struct {
	Server      string
	Password    string
	CallTimeout time.Duration
	QueueSize   int
}

// Dialer builds the Caller for a server address.
type Dialer func(server string) Caller

// DefaultDialer returns a Connect client for server.
func DefaultDialer(server string) Caller {
	return NewClient(server, nil)
}

// Session is a live connection: one bridge plus the tree fetched when it
// was established. Requests on one session are serialized.
type Session struct {
	conn   Connection
	bridge *Bridge
	cancel context.CancelFunc
	tree   []domain.Node

	mu        sync.Mutex
	abandoned int // results owed to callers that gave up
}

// Server returns the address the session is connected to.
func (s *Session) Server() string {
	return s.conn.Server
}

// Tree returns the tree fetched on connect. Callers must not modify it.
func (s *Session) Tree() []domain.Node {
	return s.tree
}

// Done is closed when the session's bridge has ended.
func (s *Session) Done() <-chan struct{} {
	return s.bridge.Done()
}

// Err returns why the session ended, once Done is closed.
func (s *Session) Err() error {
	return s.bridge.Err()
}

// Request submits req and waits for its result.
func (s *Session) Request(ctx context.Context, req protocol.ClientRequest) (protocol.ServerReply, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.bridge.Submit(ctx, req); err != nil {
		return protocol.ServerReply{}, s.closedErr(err)
	}

	for {
		select {
		case res, ok := <-s.bridge.Results():
			if !ok {
				return protocol.ServerReply{}, s.closedErr(domain.ErrBridgeClosed)
			}
			if s.abandoned > 0 {
				s.abandoned--
				continue
			}
			return res.Reply()
		case <-ctx.Done():
			// The result still arrives in order; the next caller skips it.
			s.abandoned++
			return protocol.ServerReply{}, ctx.Err()
		}
	}
}

// List fetches a fresh tree from the host.
func (s *Session) List(ctx context.Context) ([]domain.Node, error) {
	reply, err := s.Request(ctx, protocol.ListRequest())
	if err != nil {
		return nil, err
	}
	if reply.Kind != protocol.ReplyList {
		return nil, domain.ErrMalformedReply.WithDetails("expected list reply, got " + string(reply.Kind))
	}
	return reply.Nodes, nil
}

// Fetch requests one file. A host-side read failure is returned as an
// error carrying the host's message.
func (s *Session) Fetch(ctx context.Context, path string) ([]byte, error) {
	reply, err := s.Request(ctx, protocol.FileRequest(path))
	if err != nil {
		return nil, err
	}
	if reply.Kind != protocol.ReplyFile {
		return nil, domain.ErrMalformedReply.WithDetails("expected file reply, got " + string(reply.Kind))
	}
	if !reply.File.OK() {
		return nil, &RemoteFileError{Path: reply.File.Path, Message: reply.File.Error}
	}
	return reply.File.Bytes, nil
}

// Close stops the bridge after pending requests and waits for it to end.
func (s *Session) Close(ctx context.Context) error {
	if err := s.bridge.Stop(ctx); err != nil {
		s.cancel()
		return err
	}

	select {
	case <-s.bridge.Done():
		s.cancel()
		return nil
	case <-ctx.Done():
		s.cancel()
		<-s.bridge.Done()
		return ctx.Err()
	}
}

// closedErr prefers the bridge's terminal cause over ErrBridgeClosed.
func (s *Session) closedErr(err error) error {
	if errors.Is(err, domain.ErrBridgeClosed) {
		<-s.bridge.Done()
		if cause := s.bridge.Err(); cause != nil {
			return cause
		}
	}
	return err
}

// RemoteFileError is a file read failure reported by the host.
type RemoteFileError struct {
	Path    string
	Message string
}

func (e *RemoteFileError) Error() string {
	return e.Message
}

// Manager holds at most one live session.
type Manager struct {
	dial   Dialer
	logger *slog.Logger

	mu      sync.Mutex
	current *Session
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithDialer replaces the Connect client, mainly for tests.
func WithDialer(d Dialer) ManagerOption {
	return func(m *Manager) {
		m.dial = d
	}
}

// WithLogger sets the logger handed to bridges.
func WithLogger(l *slog.Logger) ManagerOption {
	return func(m *Manager) {
		if l != nil {
			m.logger = l
		}
	}
}

// NewManager creates a new connection manager.
func NewManager(opts ...ManagerOption) *Manager {
	m := &Manager{dial: DefaultDialer, logger: slog.Default()}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Connect closes any current session, starts a bridge to conn.Server and
// waits for the initial tree. An authentication failure or unreachable
// host is returned as an error and leaves the manager disconnected.
func (m *Manager) Connect(ctx context.Context, conn Connection) (*Session, error) {
	if err := m.Disconnect(ctx); err != nil {
		return nil, err
	}

	runCtx, cancel := context.WithCancel(context.Background())
	bridge := NewBridge(BridgeConfig{
		Caller:      m.dial(conn.Server),
		Password:    conn.Password,
		QueueSize:   conn.QueueSize,
		CallTimeout: conn.CallTimeout,
		Logger:      m.logger.With("server", conn.Server),
	})
	go bridge.Run(runCtx)

	var first Result
	select {
	case res, ok := <-bridge.Results():
		if !ok {
			cancel()
			return nil, bridge.Err()
		}
		first = res
	case <-ctx.Done():
		cancel()
		<-bridge.Done()
		return nil, ctx.Err()
	}

	reply, err := first.Reply()
	if err == nil && reply.Kind != protocol.ReplyList {
		err = domain.ErrMalformedReply.WithDetails("expected list reply")
	}
	if err != nil {
		cancel()
		<-bridge.Done()
		return nil, err
	}

	s := &Session{conn: conn, bridge: bridge, cancel: cancel, tree: reply.Nodes}

	m.mu.Lock()
	m.current = s
	m.mu.Unlock()

	go m.watch(s)
	return s, nil
}

// watch clears the current session when its bridge ends on its own.
func (m *Manager) watch(s *Session) {
	<-s.Done()
	s.cancel()

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current == s {
		m.current = nil
		if err := s.Err(); err != nil {
			m.logger.Warn("session ended", "server", s.Server(), "error", err)
		}
	}
}

// Disconnect stops the current session, if any, and waits for it to end.
func (m *Manager) Disconnect(ctx context.Context) error {
	m.mu.Lock()
	s := m.current
	m.current = nil
	m.mu.Unlock()

	if s == nil {
		return nil
	}
	return s.Close(ctx)
}

// Current returns the current session, or nil.
func (m *Manager) Current() *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

// IsConnected returns true if a session is live.
func (m *Manager) IsConnected() bool {
	return m.Current() != nil
}
