package notify

import "strings"

// DefaultCountryCode is used when a number carries no country prefix.
const DefaultCountryCode = "+91"

// E164 normalises a phone number to E.164. A number with an explicit "+" is
// kept as is; ten digit national numbers get countryCode; a number that
// already starts with the country digits is only prefixed with "+".
func E164(number, countryCode string) string {
	if countryCode == "" {
		countryCode = DefaultCountryCode
	}
	if !strings.HasPrefix(countryCode, "+") {
		countryCode = "+" + countryCode
	}
	number = strings.TrimSpace(number)
	digits := digitsOnly(number)
	if digits == "" {
		return ""
	}
	if strings.HasPrefix(number, "+") {
		return "+" + digits
	}
	if strings.HasPrefix(digits, "00") {
		return "+" + digits[2:]
	}
	cc := countryCode[1:]
	if len(digits) == len(cc)+10 && strings.HasPrefix(digits, cc) {
		return "+" + digits
	}
	if len(digits) == 11 && digits[0] == '0' {
		digits = digits[1:]
	}
	return countryCode + digits
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
