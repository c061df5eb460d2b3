// Package policy decides who may receive which answer.
package policy

import "github.com/room4-2/frontdesk/domain"

type entry struct {
	employee domain.Outcome
	visitor  domain.Outcome
}

var table = map[domain.IntentTag]entry{
	domain.IntentGeneralKnowledge:   {domain.Allow, domain.Allow},
	domain.IntentEmployeeRecord:     {domain.Allow, domain.AllowPartial},
	domain.IntentSensitiveInfo:      {domain.Allow, domain.DenyWithOffer},
	domain.IntentDepartmentLocation: {domain.Allow, domain.Allow},
	domain.IntentMeetingRequest:     {domain.Allow, domain.Allow},
	domain.IntentEmployeeNameCheck:  {domain.Allow, domain.Allow},
	domain.IntentAttendanceQuery:    {domain.Allow, domain.Deny},
	domain.IntentAppointmentQuery:   {domain.Allow, domain.Deny},
	domain.IntentGreeting:           {domain.Allow, domain.Allow},
	domain.IntentFacilityQuery:      {domain.Allow, domain.Allow},
	domain.IntentExit:               {domain.Allow, domain.Allow},
}

// Decide returns the access decision for an intent asked by a caller with
// the given role. Unknown tags are denied.
func Decide(tag domain.IntentTag, role domain.Role) domain.AccessDecision {
	e, ok := table[tag]
	if !ok {
		return domain.AccessDecision{Outcome: domain.Deny, Format: domain.FormatNatural}
	}
	outcome := e.visitor
	if role == domain.RoleEmployee {
		outcome = e.employee
	}
	return domain.AccessDecision{Outcome: outcome, Format: formatFor(tag, role, outcome)}
}

// Employee record answers are field-keyed for employees; everything else is
// spoken prose.
func formatFor(tag domain.IntentTag, role domain.Role, outcome domain.Outcome) domain.Format {
	if role != domain.RoleEmployee {
		return domain.FormatNatural
	}
	if tag != domain.IntentEmployeeRecord && tag != domain.IntentSensitiveInfo {
		return domain.FormatNatural
	}
	if outcome != domain.Allow && outcome != domain.AllowPartial {
		return domain.FormatNatural
	}
	return domain.FormatStructured
}
