package attendance

import (
	"context"
	"sync"
	"time"

	"github.com/room4-2/frontdesk/domain"
)

// Serialized wraps a store so that writes for the same employee and date
// never run concurrently.
type Serialized struct {
	domain.AttendanceStore

	mu    sync.Mutex
	locks map[string]*keyLock
}

type keyLock struct {
	mu   sync.Mutex
	refs int
}

// NewSerialized wraps store.
func NewSerialized(store domain.AttendanceStore) *Serialized {
	return &Serialized{AttendanceStore: store, locks: make(map[string]*keyLock)}
}

// Record forwards to the wrapped store while holding the per-key lock.
func (s *Serialized) Record(ctx context.Context, employeeID string, at time.Time) error {
	k := key(employeeID, domain.DateKey(at))
	l := s.acquire(k)
	defer s.release(k, l)
	return s.AttendanceStore.Record(ctx, employeeID, at)
}

func (s *Serialized) acquire(k string) *keyLock {
	s.mu.Lock()
	l, ok := s.locks[k]
	if !ok {
		l = &keyLock{}
		s.locks[k] = l
	}
	l.refs++
	s.mu.Unlock()

	l.mu.Lock()
	return l
}

func (s *Serialized) release(k string, l *keyLock) {
	l.mu.Unlock()

	s.mu.Lock()
	l.refs--
	if l.refs == 0 {
		delete(s.locks, k)
	}
	s.mu.Unlock()
}
