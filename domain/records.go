package domain

import "time"

// EmployeeRecord is the directory view of an employee. Salary is never carried.
type EmployeeRecord struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Department string `json:"department,omitempty"`
	Email      string `json:"email,omitempty"`
	Phone      string `json:"phone,omitempty"`
	Position   string `json:"position,omitempty"`
	JoinedOn   string `json:"joined_on,omitempty"`
}

// AttendanceRecord is the first sighting of an employee on a date.
// At most one exists per (EmployeeID, Date).
type AttendanceRecord struct {
	ID         string    `json:"id,omitempty"`
	EmployeeID string    `json:"employee_id"`
	Date       string    `json:"date"` // YYYY-MM-DD
	FirstSeen  time.Time `json:"first_seen"`
}

// DateKey formats t as the attendance date key.
func DateKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// NotificationRequest asks for a message to be delivered to a person.
type NotificationRequest struct {
	TargetID   string `json:"target_id,omitempty"`
	TargetName string `json:"target_name"`
	Contact    string `json:"contact"`
	Message    string `json:"message"`
	Reason     string `json:"reason"`
}

// NotificationResult reports a delivery attempt. Cause is set on failure.
type NotificationResult struct {
	OK    bool  `json:"ok"`
	Cause error `json:"-"`
}

// Appointment is a calendar entry for an employee.
type Appointment struct {
	EmployeeID string    `json:"employee_id"`
	With       string    `json:"with"`
	At         time.Time `json:"at"`
	Subject    string    `json:"subject,omitempty"`
}
