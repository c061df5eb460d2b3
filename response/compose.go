package response

import (
	"fmt"
	"strings"
	"time"

	"github.com/room4-2/frontdesk/domain"
)

var fieldLabels = map[string]string{
	"name":       "Name",
	"department": "Department",
	"position":   "Position",
	"email":      "Email",
	"phone":      "Phone",
	"joined_on":  "Joining date",
}

// recordOrder is the order fields are rendered in. Salary is never part of it.
var recordOrder = []string{"name", "department", "position", "email", "phone", "joined_on"}

// Compose renders one sub-query answer. The wording depends only on the
// decision, the intent and the result, so equal inputs give equal replies.
func Compose(decision domain.AccessDecision, in domain.Intent, res Result, role domain.Role) Reply {
	switch decision.Outcome {
	case domain.Deny:
		return natural(GenericRefusal)
	case domain.DenyWithOffer:
		if name := in.Slot(domain.SlotPersonName); name != "" {
			return natural(Offer(name))
		}
		return natural(GenericRefusal)
	}

	if res.Unavailable {
		if in.Tag == domain.IntentGeneralKnowledge {
			return natural(KnowledgeFallback)
		}
		return natural(LookupUnavailable)
	}

	name := in.Slot(domain.SlotPersonName)
	if res.Record != nil && res.Record.Name != "" {
		name = res.Record.Name
	}

	switch in.Tag {
	case domain.IntentExit:
		return natural("Goodbye, have a great day!")
	case domain.IntentGreeting:
		return natural("Hello! How can I help you?")
	case domain.IntentGeneralKnowledge:
		if res.Answer == "" {
			return natural("I'm not sure about that one.")
		}
		return natural(res.Answer)
	case domain.IntentEmployeeRecord:
		return composeRecord(decision, name, res)
	case domain.IntentSensitiveInfo:
		return composeSensitive(decision, in.Slot(domain.SlotField), name, res)
	case domain.IntentEmployeeNameCheck:
		return composeNameCheck(name, res)
	case domain.IntentDepartmentLocation:
		return composeLocation(in.Slot(domain.SlotDepartment), res)
	case domain.IntentMeetingRequest:
		return composeMeeting(name, res)
	case domain.IntentAttendanceQuery:
		return composeAttendance(name, res)
	case domain.IntentFacilityQuery:
		if res.Answer == "" {
			return natural("I'm sorry, I don't have information about that.")
		}
		return natural(res.Answer)
	case domain.IntentAppointmentQuery:
		return composeAppointments(res)
	}
	return natural(KnowledgeFallback)
}

// NotFound is the line for a name the directory does not know.
func NotFound(name string) string {
	if name == "" {
		return "Who are you looking for?"
	}
	return fmt.Sprintf("I couldn't find anyone named %s here.", name)
}

func notFound(name string) Reply {
	return natural(NotFound(name))
}

func composeNameCheck(name string, res Result) Reply {
	if !res.Found {
		return notFound(name)
	}
	return natural(fmt.Sprintf("Yes, %s works here.", name))
}

func composeRecord(decision domain.AccessDecision, name string, res Result) Reply {
	if !res.Found || res.Record == nil {
		return notFound(name)
	}
	if decision.Outcome == domain.AllowPartial {
		return composeNameCheck(name, res)
	}
	return structured(decision, recordFields(res.Record, recordOrder))
}

func composeSensitive(decision domain.AccessDecision, field, name string, res Result) Reply {
	if field == "salary" {
		return natural("I'm sorry, salary information is confidential.")
	}
	if !res.Found || res.Record == nil {
		return notFound(name)
	}
	if field == "" {
		return structured(decision, recordFields(res.Record, recordOrder))
	}
	fields := recordFields(res.Record, []string{"name", field})
	if len(fields) < 2 {
		return natural(fmt.Sprintf("I don't have the %s of %s on record.", strings.ToLower(fieldLabels[field]), name))
	}
	return structured(decision, fields)
}

func composeLocation(dept string, res Result) Reply {
	if dept == "" {
		return natural("Which department are you looking for?")
	}
	if res.Answer == "" {
		return natural(fmt.Sprintf("I'm sorry, I don't know where the %s department is.", dept))
	}
	text := fmt.Sprintf("The %s department is %s.", dept, strings.TrimSuffix(res.Answer, "."))
	if res.Notified != nil && res.Target != "" {
		if res.Notified.OK {
			text += fmt.Sprintf(" Please wait here, %s will come and assist you.", res.Target)
		} else {
			text += fmt.Sprintf(" I'm sorry, I couldn't reach %s to come and assist you.", res.Target)
		}
	}
	return natural(text)
}

func composeMeeting(name string, res Result) Reply {
	if name == "" {
		return natural("Who would you like to meet?")
	}
	if !res.Found {
		return notFound(name)
	}
	if res.Absent {
		return natural(fmt.Sprintf("%s is not in the office today. Please check back another day.", name))
	}
	if res.Notified == nil || !res.Notified.OK {
		return natural(fmt.Sprintf("I'm sorry, I couldn't reach %s right now. Please try again in a moment.", name))
	}
	return natural(fmt.Sprintf("I've let %s know you're here. Please have a seat in the reception.", name))
}

func composeAttendance(name string, res Result) Reply {
	if name != "" {
		if !res.Found {
			return notFound(name)
		}
		for _, p := range res.Present {
			if strings.EqualFold(p.Name, name) {
				return natural(fmt.Sprintf("Yes, %s is present today. They arrived at %s.", p.Name, clock(p.FirstSeen)))
			}
		}
		return natural(fmt.Sprintf("%s hasn't checked in today.", name))
	}
	if len(res.Present) == 0 {
		return natural("No one has checked in yet today.")
	}
	parts := make([]string, 0, len(res.Present))
	for _, p := range res.Present {
		parts = append(parts, fmt.Sprintf("%s (arrived %s)", p.Name, clock(p.FirstSeen)))
	}
	return natural("Today, the following employees are present: " + strings.Join(parts, ", ") + ".")
}

func composeAppointments(res Result) Reply {
	switch len(res.Appointments) {
	case 0:
		return natural("You have no appointments today.")
	case 1:
		return natural("You have 1 appointment today: " + appointment(res.Appointments[0]) + ".")
	}
	parts := make([]string, 0, len(res.Appointments))
	for _, a := range res.Appointments {
		parts = append(parts, appointment(a))
	}
	return natural(fmt.Sprintf("You have %d appointments today: %s.", len(res.Appointments), strings.Join(parts, ", ")))
}

func appointment(a domain.Appointment) string {
	s := fmt.Sprintf("%s with %s", clock(a.At), a.With)
	if a.Subject != "" {
		s += " about " + a.Subject
	}
	return s
}

func recordFields(rec *domain.EmployeeRecord, keys []string) []Field {
	values := map[string]string{
		"name":       rec.Name,
		"department": rec.Department,
		"position":   rec.Position,
		"email":      rec.Email,
		"phone":      rec.Phone,
		"joined_on":  rec.JoinedOn,
	}
	fields := make([]Field, 0, len(keys))
	for _, k := range keys {
		if v := values[k]; v != "" {
			fields = append(fields, Field{Key: k, Value: v})
		}
	}
	return fields
}

func structured(decision domain.AccessDecision, fields []Field) Reply {
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", fieldLabels[f.Key], f.Value))
	}
	text := strings.Join(parts, ". ") + "."
	if decision.Format != domain.FormatStructured {
		return natural(text)
	}
	return Reply{Format: domain.FormatStructured, Text: text, Fields: fields}
}

func clock(t time.Time) string {
	return t.Format("3:04 PM")
}
