package calendar

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/room4-2/frontdesk/domain"
)

func TestAppointments(t *testing.T) {
	b := NewBook()
	day := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	b.Add(domain.Appointment{EmployeeID: "E1", With: "Globex", At: day.Add(15 * time.Hour)})
	b.Add(domain.Appointment{EmployeeID: "E1", With: "Initech", At: day.Add(10 * time.Hour)})
	b.Add(domain.Appointment{EmployeeID: "E2", With: "Umbrella", At: day.Add(11 * time.Hour)})
	b.Add(domain.Appointment{EmployeeID: "E1", With: "Hooli", At: day.Add(34 * time.Hour)})

	got, err := b.Appointments(context.Background(), "E1", "2024-03-04")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0].With != "Initech" || got[1].With != "Globex" {
		t.Errorf("appointments = %+v", got)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "appointments.yaml")
	data := []byte(`
- employee_id: E1
  with: Globex
  at: "2024-03-04T10:00:00Z"
  subject: contract review
`)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	b, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	got, _ := b.Appointments(context.Background(), "E1", "2024-03-04")
	if len(got) != 1 || got[0].Subject != "contract review" {
		t.Errorf("appointments = %+v", got)
	}

	empty, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if got, _ := empty.Appointments(context.Background(), "E1", "2024-03-04"); len(got) != 0 {
		t.Errorf("empty book returned %d", len(got))
	}
}
