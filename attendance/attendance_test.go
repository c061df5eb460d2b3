package attendance

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/room4-2/frontdesk/domain"
)

func newTestSQLite(t *testing.T) *SQLite {
	t.Helper()
	s, err := NewSQLite(filepath.Join(t.TempDir(), "attendance.db"))
	if err != nil {
		t.Fatalf("create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func stores(t *testing.T) map[string]domain.AttendanceStore {
	return map[string]domain.AttendanceStore{
		"memory":     NewMemory(),
		"sqlite":     newTestSQLite(t),
		"serialized": NewSerialized(NewMemory()),
	}
}

func TestRecordIsIdempotentPerDay(t *testing.T) {
	ctx := context.Background()
	first := time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			if err := s.Record(ctx, "E001", first); err != nil {
				t.Fatalf("record: %v", err)
			}
			if err := s.Record(ctx, "E001", first.Add(2*time.Hour)); err != nil {
				t.Fatalf("second record: %v", err)
			}
			got, err := s.ListPresent(ctx, "2024-03-04")
			if err != nil {
				t.Fatalf("list: %v", err)
			}
			if len(got) != 1 {
				t.Fatalf("expected 1 record, got %d", len(got))
			}
			if !got[0].FirstSeen.Equal(first) {
				t.Errorf("first seen = %v, want %v", got[0].FirstSeen, first)
			}
		})
	}
}

func TestListPresentOrdersByArrival(t *testing.T) {
	ctx := context.Background()
	day := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			_ = s.Record(ctx, "E003", day.Add(11*time.Hour))
			_ = s.Record(ctx, "E001", day.Add(9*time.Hour))
			_ = s.Record(ctx, "E002", day.Add(10*time.Hour))
			_ = s.Record(ctx, "E001", day.Add(33*time.Hour)) // next day

			got, err := s.ListPresent(ctx, "2024-03-04")
			if err != nil {
				t.Fatalf("list: %v", err)
			}
			want := []string{"E001", "E002", "E003"}
			if len(got) != len(want) {
				t.Fatalf("got %d records, want %d", len(got), len(want))
			}
			for i, id := range want {
				if got[i].EmployeeID != id {
					t.Errorf("record %d = %s, want %s", i, got[i].EmployeeID, id)
				}
			}

			next, _ := s.ListPresent(ctx, "2024-03-05")
			if len(next) != 1 {
				t.Errorf("next day records = %d, want 1", len(next))
			}
		})
	}
}

func TestSerializedConcurrentRecords(t *testing.T) {
	ctx := context.Background()
	s := NewSerialized(newTestSQLite(t))
	base := time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if err := s.Record(ctx, "E001", base.Add(time.Duration(i)*time.Second)); err != nil {
				t.Errorf("record: %v", err)
			}
		}(i)
	}
	wg.Wait()

	got, err := s.ListPresent(ctx, "2024-03-04")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("expected 1 record, got %d", len(got))
	}
	if len(s.locks) != 0 {
		t.Errorf("lock table not drained: %d entries", len(s.locks))
	}
}

func TestDayKey(t *testing.T) {
	if got := dayKey("2024-03-04"); got != "attendance:2024-03-04" {
		t.Errorf("dayKey = %q", got)
	}
}

func TestBackendsKeepArrivalWallClock(t *testing.T) {
	ctx := context.Background()
	ist := time.FixedZone("IST", 5*3600+1800)
	arrived := time.Date(2024, 3, 4, 9, 30, 0, 0, ist)
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			if err := s.Record(ctx, "E001", arrived); err != nil {
				t.Fatalf("record: %v", err)
			}
			got, err := s.ListPresent(ctx, "2024-03-04")
			if err != nil || len(got) != 1 {
				t.Fatalf("list = %v, %v", got, err)
			}
			if clock := got[0].FirstSeen.Format("3:04 PM"); clock != "9:30 AM" {
				t.Errorf("arrival clock = %s, want 9:30 AM", clock)
			}
			if !got[0].FirstSeen.Equal(arrived) {
				t.Errorf("first seen = %v, want %v", got[0].FirstSeen, arrived)
			}
		})
	}
}

func TestSQLiteSkipsCorruptRows(t *testing.T) {
	ctx := context.Background()
	s := newTestSQLite(t)
	if err := s.Record(ctx, "E001", time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)); err != nil {
		t.Fatalf("record: %v", err)
	}
	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO attendance (id, employee_id, day, first_seen) VALUES ('bad', 'E002', '2024-03-04', 'yesterday-ish')`); err != nil {
		t.Fatalf("insert corrupt row: %v", err)
	}

	got, err := s.ListPresent(ctx, "2024-03-04")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 1 || got[0].EmployeeID != "E001" {
		t.Fatalf("expected only E001, got %+v", got)
	}
}
