package domain

import "time"

// IntentTag is drawn from the fixed classification taxonomy.
type IntentTag string

const (
	IntentExit               IntentTag = "exit"
	IntentSensitiveInfo      IntentTag = "sensitive-employee-info"
	IntentEmployeeRecord     IntentTag = "employee-record-query"
	IntentDepartmentLocation IntentTag = "department-location"
	IntentMeetingRequest     IntentTag = "meeting-request"
	IntentEmployeeNameCheck  IntentTag = "employee-name-check"
	IntentAttendanceQuery    IntentTag = "attendance-query"
	IntentGreeting           IntentTag = "greeting"
	IntentFacilityQuery      IntentTag = "facility-query"
	IntentAppointmentQuery   IntentTag = "appointment-query"
	IntentGeneralKnowledge   IntentTag = "general-knowledge"
)

// AllIntents lists the taxonomy in priority order.
var AllIntents = []IntentTag{
	IntentExit,
	IntentSensitiveInfo,
	IntentEmployeeRecord,
	IntentDepartmentLocation,
	IntentMeetingRequest,
	IntentEmployeeNameCheck,
	IntentAttendanceQuery,
	IntentGreeting,
	IntentFacilityQuery,
	IntentAppointmentQuery,
	IntentGeneralKnowledge,
}

// Slot names extracted alongside intents.
const (
	SlotPersonName = "person_name"
	SlotDepartment = "department"
	SlotField      = "field"
	SlotFacility   = "facility"
)

// Intent is a classified tag plus the slots extracted for it.
type Intent struct {
	Tag   IntentTag         `json:"tag"`
	Slots map[string]string `json:"slots,omitempty"`
}

// Slot returns the named slot or "".
func (i Intent) Slot(name string) string {
	if i.Slots == nil {
		return ""
	}
	return i.Slots[name]
}

// Utterance is raw recognised text. It is never mutated after capture.
type Utterance struct {
	Text       string    `json:"text"`
	CapturedAt time.Time `json:"captured_at"`
}

// SubQuery is one atomic question of an utterance. Ordinal is 1-based.
type SubQuery struct {
	Ordinal int    `json:"ordinal"`
	Text    string `json:"text"`
}

// ClassifiedQuery pairs a sub-query with its intent.
type ClassifiedQuery struct {
	SubQuery SubQuery `json:"sub_query"`
	Intent   Intent   `json:"intent"`
}
