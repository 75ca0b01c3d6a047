package sessions

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/ggoodman/zendesk-mcp-server-go/internal/engine"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
)

const (
	DefaultTimeout         = 30 * time.Minute
	DefaultCleanupInterval = 5 * time.Minute
)

// ErrSessionNotFound is returned when an identifier has no Active session.
var ErrSessionNotFound = errors.New("sessions: session not found")

// CloseReason says why a session left the map.
type CloseReason string

const (
	ReasonClosed   CloseReason = "closed"
	ReasonStale    CloseReason = "stale"
	ReasonShutdown CloseReason = "shutdown"
)

// BuildFunc creates the isolated engine and transport for a new session.
type BuildFunc func(id string) (*engine.Engine, Transport, error)

// ClientInfo is what the transport knows about the peer at creation time.
type ClientInfo struct {
	RemoteAddr string `json:"remote_addr,omitempty"`
	UserAgent  string `json:"user_agent,omitempty"`
}

// Observer is notified synchronously at session transitions.
type Observer interface {
	SessionCreated(s *Session)
	SessionClosed(s *Session, reason CloseReason)
}

// Session is one client's server and transport pairing.
type Session struct {
	ID        string
	Client    ClientInfo
	CreatedAt time.Time

	engine    *engine.Engine
	transport Transport
}

// Engine returns the server instance bound to the session.
func (s *Session) Engine() *engine.Engine { return s.engine }

// Transport returns the transport bound to the session.
func (s *Session) Transport() Transport { return s.transport }

// Info is a point-in-time view of a session for introspection.
type Info struct {
	ID              string        `json:"id"`
	Client          ClientInfo    `json:"client"`
	CreatedAt       time.Time     `json:"created_at"`
	Age             time.Duration `json:"-"`
	AgeSeconds      int64         `json:"age_seconds"`
	Initialized     bool          `json:"initialized"`
	ProtocolVersion string        `json:"protocol_version,omitempty"`
	ClientName      string        `json:"client_name,omitempty"`
}

// Manager tracks Active sessions and evicts stale ones.
type Manager struct {
	build    BuildFunc
	timeout  time.Duration
	interval time.Duration
	clock    clockwork.Clock
	log      *slog.Logger
	observer Observer

	mu       sync.RWMutex
	sessions map[string]*Session
}

// Option configures a Manager.
type Option func(*Manager)

// WithTimeout sets the maximum session age.
func WithTimeout(d time.Duration) Option {
	return func(m *Manager) {
		if d > 0 {
			m.timeout = d
		}
	}
}

// WithCleanupInterval sets how often Run sweeps.
func WithCleanupInterval(d time.Duration) Option {
	return func(m *Manager) {
		if d > 0 {
			m.interval = d
		}
	}
}

// WithClock replaces the wall clock, mainly for tests.
func WithClock(c clockwork.Clock) Option {
	return func(m *Manager) { m.clock = c }
}

func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.log = l
		}
	}
}

func WithObserver(o Observer) Option {
	return func(m *Manager) { m.observer = o }
}

// NewManager returns a Manager that creates sessions with build.
func NewManager(build BuildFunc, opts ...Option) *Manager {
	m := &Manager{
		build:    build,
		timeout:  DefaultTimeout,
		interval: DefaultCleanupInterval,
		clock:    clockwork.NewRealClock(),
		log:      slog.Default(),
		sessions: make(map[string]*Session),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Acquire returns the session for id, creating it when id is unknown. An
// empty id gets a freshly generated identifier. created reports whether a new
// session was built.
func (m *Manager) Acquire(ctx context.Context, id string, client ClientInfo) (*Session, bool, error) {
	if id == "" {
		id = uuid.NewString()
	}

	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()
	if ok {
		return s, false, nil
	}

	eng, tr, err := m.build(id)
	if err != nil {
		m.log.ErrorContext(ctx, "session.create.fail", slog.String("session_id", id), slog.String("err", err.Error()))
		return nil, false, fmt.Errorf("build session %s: %w", id, err)
	}
	fresh := &Session{ID: id, Client: client, CreatedAt: m.clock.Now(), engine: eng, transport: tr}

	m.mu.Lock()
	if s, ok := m.sessions[id]; ok {
		m.mu.Unlock()
		_ = tr.Close()
		return s, false, nil
	}
	m.sessions[id] = fresh
	active := len(m.sessions)
	m.mu.Unlock()

	m.log.InfoContext(ctx, "session.create",
		slog.String("session_id", id),
		slog.String("remote_addr", client.RemoteAddr),
		slog.Int("active", active))
	if m.observer != nil {
		m.observer.SessionCreated(fresh)
	}
	return fresh, true, nil
}

// Get returns the Active session for id.
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

// Close removes the session for id and closes its transport.
func (m *Manager) Close(id string) error {
	m.mu.Lock()
	s, ok := m.sessions[id]
	if ok {
		delete(m.sessions, id)
	}
	m.mu.Unlock()
	if !ok {
		return ErrSessionNotFound
	}
	m.finish(s, ReasonClosed)
	return nil
}

// Sweep evicts every session whose age exceeds the timeout and returns the
// number evicted.
func (m *Manager) Sweep() int {
	now := m.clock.Now()

	m.mu.Lock()
	var stale []*Session
	for id, s := range m.sessions {
		if now.Sub(s.CreatedAt) > m.timeout {
			stale = append(stale, s)
			delete(m.sessions, id)
		}
	}
	remaining := len(m.sessions)
	m.mu.Unlock()

	for _, s := range stale {
		m.finish(s, ReasonStale)
	}
	m.log.Info("session.sweep", slog.Int("evicted", len(stale)), slog.Int("active", remaining))
	return len(stale)
}

// Run sweeps every cleanup interval until ctx is done.
func (m *Manager) Run(ctx context.Context) error {
	t := m.clock.NewTicker(m.interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.Chan():
			m.Sweep()
		}
	}
}

// Shutdown closes every Active session.
func (m *Manager) Shutdown() {
	m.mu.Lock()
	all := make([]*Session, 0, len(m.sessions))
	for id, s := range m.sessions {
		all = append(all, s)
		delete(m.sessions, id)
	}
	m.mu.Unlock()

	for _, s := range all {
		m.finish(s, ReasonShutdown)
	}
	m.log.Info("session.shutdown", slog.Int("closed", len(all)))
}

func (m *Manager) finish(s *Session, reason CloseReason) {
	if err := s.transport.Close(); err != nil {
		m.log.Warn("session.transport.close.fail", slog.String("session_id", s.ID), slog.String("err", err.Error()))
	}
	m.log.Info("session.close", slog.String("session_id", s.ID), slog.String("reason", string(reason)))
	if m.observer != nil {
		m.observer.SessionClosed(s, reason)
	}
}

// Len returns the number of Active sessions.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Snapshot lists Active sessions, oldest first.
func (m *Manager) Snapshot() []Info {
	now := m.clock.Now()
	m.mu.RLock()
	out := make([]Info, 0, len(m.sessions))
	for _, s := range m.sessions {
		age := now.Sub(s.CreatedAt)
		info := Info{
			ID:         s.ID,
			Client:     s.Client,
			CreatedAt:  s.CreatedAt,
			Age:        age,
			AgeSeconds: int64(age / time.Second),
		}
		if s.engine != nil {
			info.Initialized = s.engine.Initialized()
			info.ProtocolVersion = s.engine.ProtocolVersion()
			info.ClientName = s.engine.ClientInfo().Name
		}
		out = append(out, info)
	}
	m.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}
