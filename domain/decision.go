package domain

// Outcome is the result of an access-policy decision.
type Outcome string

const (
	Allow         Outcome = "allow"
	AllowPartial  Outcome = "allow-partial"
	DenyWithOffer Outcome = "deny-with-offer"
	Deny          Outcome = "deny"
)

// Format selects how a reply is rendered.
type Format string

const (
	FormatNatural    Format = "natural"
	FormatStructured Format = "structured"
)

// AccessDecision pairs an outcome with the response format to use.
type AccessDecision struct {
	Outcome Outcome `json:"outcome"`
	Format  Format  `json:"format"`
}

// Allowed reports whether the caller may receive an answer (full or partial).
func (d AccessDecision) Allowed() bool {
	return d.Outcome == Allow || d.Outcome == AllowPartial
}
