package session

import (
	"context"
	"sync"
	"time"

	"github.com/room4-2/frontdesk/domain"
)

// Manager holds the single active session.
type Manager struct {
	mu          sync.RWMutex
	active      *Session
	mirror      *RedisMirror
	historySize int
}

// NewManager creates a manager. mirror may be nil.
func NewManager(mirror *RedisMirror, historySize int) *Manager {
	return &Manager{mirror: mirror, historySize: historySize}
}

// Begin binds id to a new session. It fails with domain.ErrSessionActive
// while another session is running.
func (m *Manager) Begin(ctx context.Context, id domain.Identity, now time.Time) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.active != nil {
		return nil, domain.ErrSessionActive
	}
	s := New(id, m.historySize, now)
	m.active = s
	m.mirror.Store(ctx, s)
	return s, nil
}

// Active returns the running session, if any.
func (m *Manager) Active() (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.active, m.active != nil
}

// Touch records caller activity on s.
func (m *Manager) Touch(ctx context.Context, s *Session, now time.Time) {
	s.touch(now)
	m.mirror.Touch(ctx, s)
}

// End destroys s. Ending a session that is not active does nothing.
func (m *Manager) End(ctx context.Context, s *Session) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.active == nil || m.active.ID != s.ID {
		return
	}
	m.active = nil
	m.mirror.Remove(ctx, s.ID)
}

// Shutdown ends any active session and closes the mirror.
func (m *Manager) Shutdown(ctx context.Context) {
	if s, ok := m.Active(); ok {
		m.End(ctx, s)
	}
	_ = m.mirror.Close()
}
