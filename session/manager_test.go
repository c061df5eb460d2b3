package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/room4-2/frontdesk/domain"
)

func TestManagerAllowsOneSession(t *testing.T) {
	ctx := context.Background()
	m := NewManager(nil, 10)
	now := time.Now()

	s, err := m.Begin(ctx, domain.Visitor(""), now)
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	if _, err := m.Begin(ctx, domain.Visitor(""), now); !errors.Is(err, domain.ErrSessionActive) {
		t.Fatalf("second begin err = %v, want ErrSessionActive", err)
	}

	m.Touch(ctx, s, now.Add(time.Minute))
	if !s.LastActivity().Equal(now.Add(time.Minute)) {
		t.Errorf("last activity not updated")
	}

	m.End(ctx, s)
	if _, ok := m.Active(); ok {
		t.Fatal("session still active after End")
	}
	if _, err := m.Begin(ctx, domain.Employee("E1", "Raj"), now); err != nil {
		t.Fatalf("begin after end: %v", err)
	}
	m.Shutdown(ctx)
	if _, ok := m.Active(); ok {
		t.Error("session active after Shutdown")
	}
}

func TestSessionIdentityIsBound(t *testing.T) {
	s := New(domain.Employee("E1", "Raj"), 5, time.Now())
	if !s.Identity().IsEmployee() || s.Identity().EmployeeID != "E1" {
		t.Errorf("identity = %+v", s.Identity())
	}
	if len(s.ShortID()) != 8 {
		t.Errorf("short id = %q", s.ShortID())
	}
}

func TestHistoryIsBounded(t *testing.T) {
	h := NewHistory(3)
	for _, text := range []string{"a", "b", "c", "d", "e"} {
		h.Append(Turn{Speaker: SpeakerCaller, Text: text})
	}
	turns := h.Turns()
	if len(turns) != 3 {
		t.Fatalf("len = %d, want 3", len(turns))
	}
	for i, want := range []string{"c", "d", "e"} {
		if turns[i].Text != want {
			t.Errorf("turn %d = %q, want %q", i, turns[i].Text, want)
		}
	}
	h.Clear()
	if h.Len() != 0 {
		t.Errorf("len after clear = %d", h.Len())
	}
	if NewHistory(0).MaxSize() != defaultHistorySize {
		t.Error("zero size not defaulted")
	}
}

func TestNilMirrorIsSafe(t *testing.T) {
	var m *RedisMirror
	s := New(domain.Visitor(""), 1, time.Now())
	m.Store(context.Background(), s)
	m.Touch(context.Background(), s)
	m.Remove(context.Background(), s.ID)
	if err := m.Close(); err != nil {
		t.Errorf("close: %v", err)
	}
	if got := NewRedisMirror(context.Background(), nil, time.Minute); got != nil {
		t.Error("mirror without client should be nil")
	}
}
