package response

import (
	"fmt"
	"time"

	"github.com/room4-2/frontdesk/domain"
	"github.com/room4-2/frontdesk/intent"
)

// Fixed lines spoken outside of sub-query answers.
const (
	VisitorWelcome    = "Hello! Welcome. May I know your name, or how can I assist you today?"
	RetryPrompt       = "I didn't catch that. Could you please repeat?"
	ListenApology     = "I'm sorry, I still couldn't hear you. I'm here whenever you're ready."
	IdleFarewell      = "I haven't heard from you in a while, so I'll end our conversation here. Goodbye!"
	OfferDeclined     = "Okay. If you need anything else, let me know."
	GenericRefusal    = "I'm sorry, I can't provide you that information."
	LookupUnavailable = "I'm sorry, I can't look that up right now. Please try again later."
	KnowledgeFallback = "I'm sorry, I can't answer that right now."
)

// TimeOfDay returns the greeting word for the hour of now.
func TimeOfDay(now time.Time) string {
	h := now.Hour()
	switch {
	case h >= 5 && h < 12:
		return "Good Morning"
	case h >= 12 && h < 17:
		return "Good Afternoon"
	default:
		return "Good Evening"
	}
}

// Greeting is the first line of a session.
func Greeting(id domain.Identity, now time.Time) string {
	if !id.IsEmployee() {
		return VisitorWelcome
	}
	return fmt.Sprintf("Hi %s, %s! How can I help you today?", id.DisplayName(), TimeOfDay(now))
}

// Farewell closes a session after an exit request.
func Farewell(id domain.Identity) string {
	if id.IsEmployee() {
		return fmt.Sprintf("Goodbye %s, have a great day!", id.DisplayName())
	}
	return "Goodbye, have a great day!"
}

// Announce tells the caller several questions were heard.
func Announce(n int) string {
	return fmt.Sprintf("I heard you ask %d questions. Let me address them one by one.", n)
}

// Lead introduces the answer to the k-th sub-query. The first one has no lead.
func Lead(ordinal int) string {
	if ordinal <= 1 {
		return ""
	}
	return fmt.Sprintf("Now for your %s question:", intent.Ordinal(ordinal))
}

// Offer asks a visitor whether the subject should be told they are here.
func Offer(name string) string {
	return fmt.Sprintf("%s Do you want me to notify %s that you are here?", GenericRefusal, name)
}

// OfferAccepted reports the outcome of notifying the subject.
func OfferAccepted(name string, res domain.NotificationResult) string {
	if !res.OK {
		return fmt.Sprintf("I'm sorry, I couldn't reach %s right now. Please check with the front desk staff.", name)
	}
	return fmt.Sprintf("I've notified %s. Please wait in the reception.", name)
}
