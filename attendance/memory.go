// Package attendance stores the first sighting of each employee per day.
package attendance

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/room4-2/frontdesk/domain"
)

// Memory is an in-process AttendanceStore.
type Memory struct {
	mu      sync.RWMutex
	records map[string]domain.AttendanceRecord
}

// NewMemory returns an empty store.
func NewMemory() *Memory {
	return &Memory{records: make(map[string]domain.AttendanceRecord)}
}

// Record keeps the first sighting of employeeID on the date of at.
func (m *Memory) Record(_ context.Context, employeeID string, at time.Time) error {
	date := domain.DateKey(at)
	k := key(employeeID, date)

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.records[k]; ok {
		return nil
	}
	m.records[k] = domain.AttendanceRecord{
		ID:         newID(at),
		EmployeeID: employeeID,
		Date:       date,
		FirstSeen:  at,
	}
	return nil
}

// ListPresent returns the records for date ordered by arrival.
func (m *Memory) ListPresent(_ context.Context, date string) ([]domain.AttendanceRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []domain.AttendanceRecord
	for _, r := range m.records {
		if r.Date == date {
			out = append(out, r)
		}
	}
	sortByArrival(out)
	return out, nil
}

func key(employeeID, date string) string {
	return employeeID + "|" + date
}

func sortByArrival(records []domain.AttendanceRecord) {
	sort.Slice(records, func(i, j int) bool {
		if records[i].FirstSeen.Equal(records[j].FirstSeen) {
			return records[i].EmployeeID < records[j].EmployeeID
		}
		return records[i].FirstSeen.Before(records[j].FirstSeen)
	})
}
