package attendance

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/room4-2/frontdesk/domain"
)

// Fixed width so that text ordering matches time ordering.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// SQLite is an AttendanceStore backed by a SQLite file. Idempotence comes
// from the UNIQUE(employee_id, day) constraint.
type SQLite struct {
	db *sql.DB
}

// NewSQLite opens or creates the database at path.
func NewSQLite(path string) (*SQLite, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	s := &SQLite{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

func (s *SQLite) migrate() error {
	_, err := s.db.Exec(`
	CREATE TABLE IF NOT EXISTS attendance (
		id          TEXT PRIMARY KEY,
		employee_id TEXT NOT NULL,
		day         TEXT NOT NULL,
		first_seen  TEXT NOT NULL,
		utc_offset  INTEGER NOT NULL DEFAULT 0,
		UNIQUE (employee_id, day)
	);
	CREATE INDEX IF NOT EXISTS idx_attendance_day ON attendance(day, first_seen);
	`)
	return err
}

// Record inserts the first sighting; later sightings the same day are ignored.
func (s *SQLite) Record(ctx context.Context, employeeID string, at time.Time) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO attendance (id, employee_id, day, first_seen, utc_offset) VALUES (?, ?, ?, ?, ?)`,
		newID(at), employeeID, domain.DateKey(at), at.UTC().Format(timeLayout), offsetOf(at))
	if err != nil {
		return fmt.Errorf("record attendance: %w", err)
	}
	return nil
}

// ListPresent returns the records for date ordered by arrival.
func (s *SQLite) ListPresent(ctx context.Context, date string) ([]domain.AttendanceRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, employee_id, day, first_seen, utc_offset FROM attendance WHERE day = ? ORDER BY first_seen, employee_id`, date)
	if err != nil {
		return nil, fmt.Errorf("list attendance: %w", err)
	}
	defer rows.Close()

	var out []domain.AttendanceRecord
	for rows.Next() {
		var r domain.AttendanceRecord
		var seen string
		var offset int
		if err := rows.Scan(&r.ID, &r.EmployeeID, &r.Date, &seen, &offset); err != nil {
			return nil, err
		}
		t, err := time.Parse(timeLayout, seen)
		if err != nil {
			log.Printf("⚠️ Skipping attendance row %s: bad first_seen %q: %v", r.ID, seen, err)
			continue
		}
		r.FirstSeen = inOffset(t, offset)
		out = append(out, r)
	}
	return out, rows.Err()
}

func offsetOf(t time.Time) int {
	_, offset := t.Zone()
	return offset
}

// inOffset restores the wall clock the sighting was recorded in. The local
// zone is preferred when it has the same offset, so zone names survive.
func inOffset(t time.Time, offset int) time.Time {
	if local := t.In(time.Local); offsetOf(local) == offset {
		return local
	}
	return t.In(time.FixedZone("", offset))
}

// Close closes the database.
func (s *SQLite) Close() error {
	return s.db.Close()
}
