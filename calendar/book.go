// Package calendar answers "do I have any appointments" for employees.
package calendar

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/room4-2/frontdesk/domain"
)

// Book is an in-memory AppointmentBook.
type Book struct {
	mu    sync.RWMutex
	items []domain.Appointment
}

// NewBook returns an empty book.
func NewBook() *Book {
	return &Book{}
}

// Add stores an appointment.
func (b *Book) Add(a domain.Appointment) {
	b.mu.Lock()
	b.items = append(b.items, a)
	b.mu.Unlock()
}

// Appointments lists employeeID's appointments on date ordered by time.
func (b *Book) Appointments(_ context.Context, employeeID, date string) ([]domain.Appointment, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	var out []domain.Appointment
	for _, a := range b.items {
		if a.EmployeeID == employeeID && domain.DateKey(a.At) == date {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].At.Before(out[j].At) })
	return out, nil
}

type fileEntry struct {
	EmployeeID string `yaml:"employee_id"`
	With       string `yaml:"with"`
	At         string `yaml:"at"`
	Subject    string `yaml:"subject"`
}

// Load reads a YAML list of appointments. Times are RFC 3339 or
// "2006-01-02 15:04" in local time. An empty path gives an empty book.
func Load(path string) (*Book, error) {
	b := NewBook()
	if strings.TrimSpace(path) == "" {
		return b, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("calendar: read %s: %w", path, err)
	}
	var entries []fileEntry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("calendar: parse %s: %w", path, err)
	}
	for i, e := range entries {
		at, err := parseTime(e.At)
		if err != nil {
			return nil, fmt.Errorf("calendar: entry %d: %w", i, err)
		}
		b.Add(domain.Appointment{EmployeeID: e.EmployeeID, With: e.With, At: at, Subject: e.Subject})
	}
	return b, nil
}

func parseTime(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.ParseInLocation("2006-01-02 15:04", s, time.Local)
}
