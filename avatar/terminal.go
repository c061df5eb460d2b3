package avatar

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/room4-2/frontdesk/domain"
	"github.com/room4-2/frontdesk/response"
)

var (
	stateStyles = map[domain.AvatarState]lipgloss.Style{
		domain.AvatarIdle:       lipgloss.NewStyle().Foreground(lipgloss.Color("#999999")),
		domain.AvatarListening:  lipgloss.NewStyle().Foreground(lipgloss.Color("#4CAF50")).Bold(true),
		domain.AvatarThinking:   lipgloss.NewStyle().Foreground(lipgloss.Color("#F7B801")).Bold(true),
		domain.AvatarProcessing: lipgloss.NewStyle().Foreground(lipgloss.Color("#F7B801")),
		domain.AvatarSpeaking:   lipgloss.NewStyle().Foreground(lipgloss.Color("#5B8DEF")).Bold(true),
		domain.AvatarHappy:      lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true),
	}
	captionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#CCCCCC"))
	keyStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#A0AEC0")).Bold(true)
	replyBox     = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444444")).
			Padding(0, 1)
)

var faces = map[domain.AvatarState]string{
	domain.AvatarIdle:       "(-_-)",
	domain.AvatarListening:  "(o_o)",
	domain.AvatarThinking:   "(~_~)",
	domain.AvatarProcessing: "(._.)",
	domain.AvatarSpeaking:   "(^o^)",
	domain.AvatarHappy:      "(^_^)",
}

// Terminal draws the avatar on a text console. It is the fallback when no
// display is attached.
type Terminal struct {
	mu   sync.Mutex
	out  io.Writer
	last domain.AvatarState
}

// NewTerminal draws onto out.
func NewTerminal(out io.Writer) *Terminal {
	return &Terminal{out: out}
}

// SetState prints the new state. Repeats are ignored.
func (t *Terminal) SetState(state domain.AvatarState) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if state == t.last {
		return
	}
	t.last = state
	style, ok := stateStyles[state]
	if !ok {
		style = captionStyle
	}
	fmt.Fprintln(t.out, style.Render(fmt.Sprintf("%s %s", faces[state], strings.ToUpper(string(state)))))
}

// Caption prints a spoken line.
func (t *Terminal) Caption(text string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprintln(t.out, captionStyle.Render("» "+text))
}

// ShowReply boxes a structured reply as key/value lines.
func (t *Terminal) ShowReply(r response.Reply) {
	if !r.Structured() {
		return
	}
	lines := make([]string, 0, len(r.Fields))
	for _, f := range r.Fields {
		lines = append(lines, keyStyle.Render(f.Key+":")+" "+f.Value)
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprintln(t.out, replyBox.Render(strings.Join(lines, "\n")))
}
