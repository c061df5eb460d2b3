package intent

import (
	"regexp"
	"strings"

	"github.com/room4-2/frontdesk/domain"
)

const namePart = `([a-z][a-z\-]*(?:\s+[a-z][a-z\-]*)?)`

var namePatterns = compileAll(
	`\b`+namePart+`'s\b`,
	`\b(?:email|e-mail|mail|phone|mobile|number|contact|salary|position|designation|details?|record|profile|information|info|department|team|joining date|join date)\s+(?:of|for|about)\s+`+namePart,
	`\b(?:`+nameVerbs+`|notify|inform)\s+(?:with\s+)?(?:(?:mr|mrs|ms|dr)\.?\s+)?`+namePart,
	`\b(?:named|called)\s+`+namePart,
	`\b(?:does|is|did|has|was)\s+`+namePart+`\s+(?:work|works|working|present|here|in|arrive|arrived|come|came|employed|at)\b`,
	`\b(?:which|what)\s+(?:department|team)\s+(?:is|does)\s+`+namePart,
	`\bwho\s+is\s+`+namePart,
)

var fieldAliases = []Alias{
	{Name: "email", Phrases: []string{"email", "e-mail", "email id", "mail", "gmail"}},
	{Name: "phone", Phrases: []string{"phone", "mobile", "contact number", "telephone", "number"}},
	{Name: "salary", Phrases: []string{"salary", "ctc", "compensation", "income", "pay"}},
	{Name: "position", Phrases: []string{"position", "designation", "job title", "role"}},
	{Name: "joined_on", Phrases: []string{"joining date", "join date", "date of joining"}},
	{Name: "department", Phrases: []string{"department", "team"}},
}

var (
	departmentMatchers = compileAliases(DepartmentAliases)
	facilityMatchers   = compileAliases(FacilityAliases)
	fieldMatchers      = compileAliases(fieldAliases)
)

func extractSlots(tag domain.IntentTag, text string) map[string]string {
	slots := map[string]string{}
	switch tag {
	case domain.IntentSensitiveInfo, domain.IntentEmployeeRecord:
		setIf(slots, domain.SlotPersonName, ExtractPersonName(text))
		setIf(slots, domain.SlotField, matchAlias(fieldMatchers, text))
	case domain.IntentMeetingRequest, domain.IntentEmployeeNameCheck, domain.IntentAttendanceQuery:
		setIf(slots, domain.SlotPersonName, ExtractPersonName(text))
	case domain.IntentDepartmentLocation:
		setIf(slots, domain.SlotDepartment, ExtractDepartment(text))
	case domain.IntentFacilityQuery:
		setIf(slots, domain.SlotFacility, matchAlias(facilityMatchers, text))
	}
	if len(slots) == 0 {
		return nil
	}
	return slots
}

// ExtractPersonName returns the title-cased person name mentioned in text,
// or "" when none is found.
func ExtractPersonName(text string) string {
	text = normalize(text)
	for _, re := range namePatterns {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			if name := cleanName(m[1]); name != "" {
				return name
			}
		}
	}
	return ""
}

// ExtractDepartment returns the canonical department named in text.
func ExtractDepartment(text string) string {
	return matchAlias(departmentMatchers, normalize(text))
}

func cleanName(raw string) string {
	words := strings.Fields(strings.ToLower(raw))
	for len(words) > 0 && nameStopwords[words[0]] {
		words = words[1:]
	}
	for len(words) > 0 && nameStopwords[words[len(words)-1]] {
		words = words[:len(words)-1]
	}
	for _, w := range words {
		if nameStopwords[w] {
			return ""
		}
	}
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

type aliasMatcher struct {
	name string
	re   *regexp.Regexp
}

func compileAliases(aliases []Alias) []aliasMatcher {
	out := make([]aliasMatcher, 0, len(aliases))
	for _, a := range aliases {
		out = append(out, aliasMatcher{name: a.Name, re: phraseRegexp(a.Phrases)})
	}
	return out
}

func matchAlias(matchers []aliasMatcher, text string) string {
	for _, m := range matchers {
		if m.re.MatchString(text) {
			return m.name
		}
	}
	return ""
}

func compileAll(patterns ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(patterns))
	for i, p := range patterns {
		out[i] = regexp.MustCompile(`(?i)` + p)
	}
	return out
}

func setIf(m map[string]string, k, v string) {
	if v != "" {
		m[k] = v
	}
}

var nameStopwords = func() map[string]bool {
	words := []string{
		"a", "an", "the", "is", "are", "was", "were", "do", "does", "did", "has", "have",
		"to", "for", "of", "with", "about", "me", "my", "you", "your", "i", "im", "please",
		"today", "now", "here", "there", "present", "in", "at", "office", "work", "works",
		"working", "what", "where", "who", "how", "when", "why", "which", "that", "this",
		"it", "someone", "somebody", "anyone", "anybody", "employee", "staff", "person",
		"mr", "mrs", "ms", "dr", "and", "also", "email", "phone", "number", "mobile",
		"details", "detail", "department", "team", "can", "could", "would", "tell", "know",
		"okay", "ok", "hi", "hello", "hey", "sir", "madam", "want", "need", "like", "see",
		"meet", "visit", "call", "him", "her", "them", "us", "we", "they", "he", "she",
		"his", "their", "our", "let", "it", "that", "there", "name", "named", "called",
		"record", "profile", "information", "info", "salary", "position", "contact",
		"come", "came", "arrived", "arrive", "employed", "again", "later", "soon",
		"the", "some", "any", "all", "everyone", "people", "today's", "restroom",
		"washroom", "toilet", "bathroom", "reception", "receptionist", "manager",
	}
	m := make(map[string]bool, len(words))
	for _, w := range words {
		m[w] = true
	}
	return m
}()
