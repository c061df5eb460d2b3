package console

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/room4-2/frontdesk/domain"
)

// Wake waits for a line containing the wake phrase.
type Wake struct {
	Lines *Lines
	Out   io.Writer
	Word  string
}

// Detect returns false once input ends or ctx is cancelled.
func (w *Wake) Detect(ctx context.Context) (bool, error) {
	fmt.Fprintf(w.Out, "\nSay %q to begin.\n", w.Word)
	word := strings.ToLower(strings.TrimSpace(w.Word))
	for {
		select {
		case <-ctx.Done():
			return false, nil
		case <-w.Lines.Done():
			return false, nil
		case line := <-w.Lines.ch:
			if strings.Contains(strings.ToLower(line), word) {
				return true, nil
			}
		}
	}
}

// Voice reads utterances from typed lines and prints spoken text.
type Voice struct {
	Lines *Lines
	mu    sync.Mutex
	Out   io.Writer
}

// Listen waits up to timeout for a line. A blank line is a recognition
// failure. Once input has ended it behaves like silence.
func (v *Voice) Listen(ctx context.Context, timeout time.Duration) (string, error) {
	v.print("you> ")
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	done := v.Lines.Done()
	for {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-timer.C:
			v.print("\n")
			return "", domain.ErrInputTimeout
		case <-done:
			done = nil
		case line := <-v.Lines.ch:
			if line == "" {
				return "", domain.ErrRecognitionFailure
			}
			return line, nil
		}
	}
}

// Speak prints text as the receptionist's line.
func (v *Voice) Speak(ctx context.Context, text string) error {
	v.print("receptionist> " + text + "\n")
	return nil
}

func (v *Voice) print(s string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	fmt.Fprint(v.Out, s)
}
