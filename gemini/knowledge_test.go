package gemini

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/room4-2/frontdesk/domain"
	"github.com/room4-2/frontdesk/site"
)

func TestSystemPromptNamesCompany(t *testing.T) {
	p := SystemPrompt(site.Default().Company)
	if !strings.Contains(p, "Acme Technologies") {
		t.Error("prompt does not name the company")
	}
	if !strings.Contains(p, "Never share personal details") {
		t.Error("prompt lost the privacy rule")
	}
	if !strings.Contains(SystemPrompt(site.Company{}), "the company") {
		t.Error("empty company not handled")
	}
}

func TestSpeakable(t *testing.T) {
	got := Speakable("**Paris** is the capital.\n\n- It is in `France`.")
	want := "Paris is the capital. It is in France."
	if got != want {
		t.Errorf("Speakable = %q, want %q", got, want)
	}
}

func TestUnavailable(t *testing.T) {
	_, err := Unavailable{}.Ask(context.Background(), "hi")
	if !errors.Is(err, domain.ErrKnowledgeUnavailable) {
		t.Errorf("err = %v", err)
	}
}

func TestNewKnowledgeRequiresKey(t *testing.T) {
	if _, err := NewKnowledge(context.Background(), "", "", "", 0); err == nil {
		t.Error("expected error without API key")
	}
}
