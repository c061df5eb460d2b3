// Package directory looks up employee records in Postgres or SQLite.
package directory

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"github.com/room4-2/frontdesk/domain"
)

// Store is an EmployeeDirectory over database/sql. The same schema is used
// for the Postgres primary and the SQLite secondary.
type Store struct {
	db   *sql.DB
	name string
	bind func(n int) string
}

// OpenPostgres connects to the primary directory.
func OpenPostgres(ctx context.Context, dsn string) (*Store, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	s := &Store{db: db, name: "postgres", bind: func(n int) string { return fmt.Sprintf("$%d", n) }}
	if err := s.migrate(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

// OpenSQLite opens or creates the secondary directory file.
func OpenSQLite(ctx context.Context, path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	s := &Store{db: db, name: "sqlite", bind: func(int) string { return "?" }}
	if err := s.migrate(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

// Name identifies the backend in logs.
func (s *Store) Name() string { return s.name }

// Close closes the database.
func (s *Store) Close() error { return s.db.Close() }

func (s *Store) migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
	CREATE TABLE IF NOT EXISTS employees (
		id          TEXT PRIMARY KEY,
		name        TEXT NOT NULL,
		department  TEXT NOT NULL DEFAULT '',
		email       TEXT NOT NULL DEFAULT '',
		phone       TEXT NOT NULL DEFAULT '',
		position    TEXT NOT NULL DEFAULT '',
		joined_on   TEXT NOT NULL DEFAULT ''
	)`)
	return err
}

const columns = `id, name, department, email, phone, position, joined_on`

// Lookup matches the full name case-insensitively, then the first name.
func (s *Store) Lookup(ctx context.Context, name string) (*domain.EmployeeRecord, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return nil, nil
	}
	rec, err := s.one(ctx, `SELECT `+columns+` FROM employees WHERE lower(name) = `+s.bind(1)+` ORDER BY id LIMIT 1`, name)
	if rec != nil || err != nil {
		return rec, err
	}
	return s.one(ctx, `SELECT `+columns+` FROM employees WHERE lower(name) LIKE `+s.bind(1)+` ESCAPE '\' ORDER BY name, id LIMIT 1`, likeEscaper.Replace(name)+" %")
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// GetByID returns the employee with id, or nil.
func (s *Store) GetByID(ctx context.Context, id string) (*domain.EmployeeRecord, error) {
	return s.one(ctx, `SELECT `+columns+` FROM employees WHERE id = `+s.bind(1), id)
}

// Upsert inserts or replaces a record.
func (s *Store) Upsert(ctx context.Context, rec domain.EmployeeRecord) error {
	q := fmt.Sprintf(`INSERT INTO employees (%s) VALUES (%s, %s, %s, %s, %s, %s, %s)
	ON CONFLICT (id) DO UPDATE SET name = excluded.name, department = excluded.department,
	email = excluded.email, phone = excluded.phone, position = excluded.position, joined_on = excluded.joined_on`,
		columns, s.bind(1), s.bind(2), s.bind(3), s.bind(4), s.bind(5), s.bind(6), s.bind(7))
	_, err := s.db.ExecContext(ctx, q, rec.ID, rec.Name, rec.Department, rec.Email, rec.Phone, rec.Position, rec.JoinedOn)
	if err != nil {
		return fmt.Errorf("upsert %s: %w", rec.ID, err)
	}
	return nil
}

// List returns all employees ordered by name.
func (s *Store) List(ctx context.Context) ([]domain.EmployeeRecord, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+columns+` FROM employees ORDER BY name, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []domain.EmployeeRecord
	for rows.Next() {
		var r domain.EmployeeRecord
		if err := rows.Scan(&r.ID, &r.Name, &r.Department, &r.Email, &r.Phone, &r.Position, &r.JoinedOn); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *Store) one(ctx context.Context, q string, arg string) (*domain.EmployeeRecord, error) {
	var r domain.EmployeeRecord
	err := s.db.QueryRowContext(ctx, q, arg).Scan(&r.ID, &r.Name, &r.Department, &r.Email, &r.Phone, &r.Position, &r.JoinedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s directory: %w", s.name, err)
	}
	return &r, nil
}
