package avatar

import (
	"bytes"
	"strings"
	"testing"

	"github.com/room4-2/frontdesk/domain"
	"github.com/room4-2/frontdesk/response"
)

func TestTerminalPrintsStateChangesOnce(t *testing.T) {
	var buf bytes.Buffer
	term := NewTerminal(&buf)

	term.SetState(domain.AvatarListening)
	term.SetState(domain.AvatarListening)
	term.SetState(domain.AvatarSpeaking)

	out := buf.String()
	if strings.Count(out, "LISTENING") != 1 {
		t.Errorf("expected one LISTENING line, got %q", out)
	}
	if !strings.Contains(out, "SPEAKING") {
		t.Errorf("missing SPEAKING in %q", out)
	}
}

func TestTerminalCaptionAndReply(t *testing.T) {
	var buf bytes.Buffer
	term := NewTerminal(&buf)

	term.Caption("Good Morning")
	term.ShowReply(response.Reply{
		Format: domain.FormatStructured,
		Fields: []response.Field{{Key: "Email", Value: "raj@acme.test"}},
	})
	term.ShowReply(response.Reply{Format: domain.FormatNatural, Text: "plain"})

	out := buf.String()
	for _, want := range []string{"Good Morning", "Email:", "raj@acme.test"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in %q", want, out)
		}
	}
	if strings.Contains(out, "plain") {
		t.Errorf("natural language reply should not be boxed: %q", out)
	}
}
