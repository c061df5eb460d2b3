package session

import (
	"sync"
	"time"

	"github.com/room4-2/frontdesk/domain"
)

const defaultHistorySize = 50

// Speakers in a turn.
const (
	SpeakerCaller       = "caller"
	SpeakerReceptionist = "receptionist"
)

// Turn is one line of the conversation.
type Turn struct {
	At      time.Time        `json:"at"`
	Speaker string           `json:"speaker"`
	Text    string           `json:"text"`
	Intent  domain.IntentTag `json:"intent,omitempty"`
}

// History keeps the most recent turns of a session, dropping the oldest
// once full.
type History struct {
	turns   []Turn
	maxSize int
	mu      sync.Mutex
}

// NewHistory creates a history holding at most maxSize turns.
func NewHistory(maxSize int) *History {
	if maxSize <= 0 {
		maxSize = defaultHistorySize
	}
	return &History{
		turns:   make([]Turn, 0, maxSize),
		maxSize: maxSize,
	}
}

// MaxSize returns the capacity.
func (h *History) MaxSize() int {
	return h.maxSize
}

// Append adds a turn, evicting the oldest when full.
func (h *History) Append(t Turn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.turns) == h.maxSize {
		copy(h.turns, h.turns[1:])
		h.turns = h.turns[:len(h.turns)-1]
	}
	h.turns = append(h.turns, t)
}

// Turns returns a copy of the turns, oldest first.
func (h *History) Turns() []Turn {
	h.mu.Lock()
	defer h.mu.Unlock()

	out := make([]Turn, len(h.turns))
	copy(out, h.turns)
	return out
}

// Len returns the number of stored turns.
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.turns)
}

// Clear empties the history.
func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.turns = h.turns[:0]
}
