package intent

import (
	"strconv"
)

var (
	affirmative = phraseRegexp([]string{
		"yes", "yeah", "yep", "yup", "sure", "please do", "ok", "okay",
		"go ahead", "of course", "absolutely", "please",
	})
	negative = phraseRegexp([]string{
		"no", "nope", "nah", "not", "don't", "dont", "never mind", "no thanks",
	})
)

// IsAffirmative reports whether a follow-up reply means yes. Any negative
// word wins over an affirmative one.
func IsAffirmative(reply string) bool {
	reply = normalize(reply)
	if negative.MatchString(reply) {
		return false
	}
	return affirmative.MatchString(reply)
}

// Ordinal renders n as 1st, 2nd, 3rd, 4th, ... 11th, 12th, 13th, 21st.
func Ordinal(n int) string {
	suffix := "th"
	if n%100 < 11 || n%100 > 13 {
		switch n % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return strconv.Itoa(n) + suffix
}
