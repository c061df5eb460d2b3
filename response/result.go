// Package response renders access decisions and handler results into the
// words the receptionist speaks.
package response

import (
	"time"

	"github.com/bytedance/sonic"

	"github.com/room4-2/frontdesk/domain"
)

// Result is what a handler produced for one sub-query. Only the fields that
// matter for the intent are set.
type Result struct {
	// Found reports whether the named subject was resolved in the directory.
	Found  bool
	Record *domain.EmployeeRecord
	// Answer carries free text: a knowledge answer, a facility answer or a
	// department location.
	Answer string
	// Target is the person a notification was sent to.
	Target   string
	Notified *domain.NotificationResult
	// Absent is set when a meeting subject has not checked in today.
	Absent       bool
	Present      []Presence
	Appointments []domain.Appointment
	// Unavailable is set when the backing collaborator could not be reached.
	Unavailable bool
}

// Presence is one employee seen today.
type Presence struct {
	Name      string    `json:"name"`
	FirstSeen time.Time `json:"first_seen"`
}

// Field is one key/value pair of a structured reply.
type Field struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Reply is a composed answer. Fields is set only for structured replies;
// Text is always the spoken rendering.
type Reply struct {
	Format domain.Format `json:"format"`
	Text   string        `json:"text"`
	Fields []Field       `json:"fields,omitempty"`
}

// Structured reports whether the reply carries field-keyed data.
func (r Reply) Structured() bool {
	return r.Format == domain.FormatStructured && len(r.Fields) > 0
}

// JSON encodes the reply for presenters and the CLI.
func (r Reply) JSON() ([]byte, error) {
	return sonic.Marshal(r)
}

func natural(text string) Reply {
	return Reply{Format: domain.FormatNatural, Text: text}
}
