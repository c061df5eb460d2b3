package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/room4-2/frontdesk/domain"
)

// Session is one conversation with one identified person. The identity is
// bound at creation and never changes.
type Session struct {
	ID        string
	CreatedAt time.Time
	History   *History

	identity domain.Identity

	mu           sync.RWMutex
	phase        domain.Phase
	lastActivity time.Time
}

// New creates a session for id keeping at most historySize turns.
func New(id domain.Identity, historySize int, now time.Time) *Session {
	return &Session{
		ID:           uuid.New().String(),
		CreatedAt:    now,
		History:      NewHistory(historySize),
		identity:     id,
		phase:        domain.PhaseIdentifying,
		lastActivity: now,
	}
}

// Identity returns the bound identity.
func (s *Session) Identity() domain.Identity {
	return s.identity
}

// ShortID is the prefix used in log lines.
func (s *Session) ShortID() string {
	if len(s.ID) < 8 {
		return s.ID
	}
	return s.ID[:8]
}

// Phase returns the current phase.
func (s *Session) Phase() domain.Phase {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.phase
}

func (s *Session) setPhase(p domain.Phase) {
	s.mu.Lock()
	s.phase = p
	s.mu.Unlock()
}

// LastActivity is the time the caller was last heard.
func (s *Session) LastActivity() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastActivity
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastActivity = now
	s.mu.Unlock()
}
