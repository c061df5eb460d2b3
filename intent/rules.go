package intent

import "github.com/room4-2/frontdesk/domain"

// Rule maps text to an intent tag. Rules are evaluated in order and the
// first match wins.
//
// A rule matches when any keyword or any pattern matches and, if Requires is
// set, at least one of the required keywords is also present. Keywords match
// on word boundaries, case-insensitively. A pattern's first capture group, if
// it has one, must not be a pronoun or article, so "looking for the restroom"
// is not read as a person.
type Rule struct {
	Tag      domain.IntentTag
	Keywords []string
	Patterns []string
	Requires []string
}

var locationPhrases = []string{
	"where is", "where's", "where are", "location of", "directions to",
	"direction to", "how to get to", "how do i get to", "how can i get to",
	"where can i find", "where do i go", "way to", "take me to",
	"i need to find", "i'm looking for", "i am looking for",
}

const nameVerbs = `meet|see|visit|talk to|speak to|speak with|talk with|here to see|looking for|waiting for|connect me to|connect me with|connect with|ping|call`

// DefaultRules is the canonical priority list:
// exit > sensitive-employee-info > employee-record-query > department-location
// > meeting-request > employee-name-check > attendance-query > greeting
// > facility-query > appointment-query. Anything else is general-knowledge.
func DefaultRules() []Rule {
	return []Rule{
		{
			Tag: domain.IntentExit,
			Keywords: []string{
				"bye", "goodbye", "good bye", "bye bye", "see you", "see ya",
				"quit", "that's all", "that is all", "nothing else",
				"i'm done", "i am done", "stop listening",
			},
		},
		{
			Tag: domain.IntentSensitiveInfo,
			Keywords: []string{
				"email", "e-mail", "email id", "mail", "gmail",
				"phone", "phone number", "mobile", "mobile number", "contact number", "telephone",
				"salary", "ctc", "compensation", "income",
				"joining date", "join date", "date of joining",
				"position", "designation", "job title",
			},
		},
		{
			Tag: domain.IntentEmployeeRecord,
			Patterns: []string{
				`\b(?:details?|record|profile|information|info)\s+(?:of|for|about|on)\s+([a-z]+)`,
				`\b[a-z]+'s\s+(?:details?|record|profile|information|info|department|team)\b`,
				`\b(?:which|what)\s+(?:department|team)\s+(?:is|does)\s+([a-z]+)`,
			},
		},
		{
			Tag:      domain.IntentDepartmentLocation,
			Keywords: locationPhrases,
			Requires: append(departmentAliasList(), "department"),
		},
		{
			Tag: domain.IntentMeetingRequest,
			Patterns: []string{
				`\b(?:` + nameVerbs + `)\s+(?:with\s+)?(?:(?:mr|mrs|ms|dr)\.?\s+)?([a-z]+)`,
			},
		},
		{
			Tag: domain.IntentEmployeeNameCheck,
			Keywords: []string{
				"work here", "works here", "working here", "employed here", "work for you",
				"employee named", "anyone named", "someone named", "somebody named",
				"staff named", "person named",
			},
			Patterns: []string{
				`\bis there (?:an? )?(?:employee|someone|somebody|anyone|person) (?:called|named|by the name)\b`,
			},
		},
		{
			Tag: domain.IntentAttendanceQuery,
			Keywords: []string{
				"present", "attendance", "arrived", "came in", "come in", "in office",
				"in the office", "at work", "checked in", "in today",
			},
		},
		{
			Tag: domain.IntentGreeting,
			Keywords: []string{
				"hello", "hi", "hey", "hiya", "good morning", "good afternoon",
				"good evening", "how are you", "thanks", "thank you", "nice to meet you",
			},
		},
		{
			Tag:      domain.IntentFacilityQuery,
			Keywords: facilityAliasList(),
		},
		{
			Tag: domain.IntentAppointmentQuery,
			Keywords: []string{
				"appointment", "appointments", "meeting", "meetings", "schedule",
				"calendar", "booked", "booking",
			},
		},
	}
}

// Alias groups a canonical name with the phrases that refer to it.
type Alias struct {
	Name    string
	Phrases []string
}

// DepartmentAliases are checked in order; the first hit names the department.
var DepartmentAliases = []Alias{
	{Name: "HR", Phrases: []string{"hr", "h r", "human resources", "human resource"}},
	{Name: "IT", Phrases: []string{"it department", "it team", "it desk", "it support", "information technology"}},
	{Name: "Engineering", Phrases: []string{"engineering"}},
	{Name: "Finance", Phrases: []string{"finance", "accounts", "accounting"}},
	{Name: "Marketing", Phrases: []string{"marketing"}},
	{Name: "Sales", Phrases: []string{"sales"}},
	{Name: "Operations", Phrases: []string{"operations", "ops"}},
	{Name: "Support", Phrases: []string{"customer support", "support"}},
	{Name: "Legal", Phrases: []string{"legal"}},
	{Name: "Admin", Phrases: []string{"admin", "administration"}},
}

// FacilityAliases map facility phrases to catalog keys.
var FacilityAliases = []Alias{
	{Name: "restroom", Phrases: []string{"restroom", "rest room", "washroom", "toilet", "bathroom", "restrooms"}},
	{Name: "wifi", Phrases: []string{"wifi", "wi-fi", "wireless", "internet"}},
	{Name: "parking", Phrases: []string{"parking", "car park"}},
	{Name: "cafeteria", Phrases: []string{"cafeteria", "canteen", "pantry", "coffee", "drinking water"}},
	{Name: "elevator", Phrases: []string{"lift", "elevator", "stairs"}},
}

func departmentAliasList() []string {
	return flatten(DepartmentAliases)
}

func facilityAliasList() []string {
	return flatten(FacilityAliases)
}

func flatten(aliases []Alias) []string {
	var out []string
	for _, a := range aliases {
		out = append(out, a.Phrases...)
	}
	return out
}
