package domain

import (
	"context"
	"time"
)

// WakeDetector blocks until the wake phrase is heard. false means stop.
type WakeDetector interface {
	Detect(ctx context.Context) (bool, error)
}

// Frame is a single captured camera image.
type Frame struct {
	Data       []byte
	CapturedAt time.Time
}

// Device is a scoped hardware resource.
type Device interface {
	Acquire(ctx context.Context) error
	Release() error
}

// Camera is a Device that captures frames.
type Camera interface {
	Device
	Capture(ctx context.Context) (Frame, error)
}

// FaceIdentifier matches a frame against enrolled employees.
// A nil Identity means no match.
type FaceIdentifier interface {
	Identify(ctx context.Context, frame Frame) (*Identity, float64, error)
}

// VoiceInput captures one utterance. It returns ErrInputTimeout or
// ErrRecognitionFailure when nothing usable was heard.
type VoiceInput interface {
	Listen(ctx context.Context, timeout time.Duration) (string, error)
}

// VoiceOutput speaks text.
type VoiceOutput interface {
	Speak(ctx context.Context, text string) error
}

// KnowledgeService answers general questions.
type KnowledgeService interface {
	Ask(ctx context.Context, prompt string) (string, error)
}

// EmployeeDirectory looks up employee records. Not found is (nil, nil).
type EmployeeDirectory interface {
	Lookup(ctx context.Context, name string) (*EmployeeRecord, error)
	GetByID(ctx context.Context, id string) (*EmployeeRecord, error)
}

// AttendanceStore records first sightings. Record is idempotent per day.
type AttendanceStore interface {
	Record(ctx context.Context, employeeID string, at time.Time) error
	ListPresent(ctx context.Context, date string) ([]AttendanceRecord, error)
}

// Notifier delivers a message to a contact.
type Notifier interface {
	Send(ctx context.Context, req NotificationRequest) error
}

// Presenter displays the avatar state.
type Presenter interface {
	SetState(state AvatarState)
}

// Captioner is implemented by presenters that can also show spoken text.
type Captioner interface {
	Caption(text string)
}

// AppointmentBook lists appointments for an employee on a date.
type AppointmentBook interface {
	Appointments(ctx context.Context, employeeID string, date string) ([]Appointment, error)
}
