package console

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/room4-2/frontdesk/domain"
)

type directory map[string]domain.EmployeeRecord

func (d directory) GetByID(ctx context.Context, id string) (*domain.EmployeeRecord, error) {
	rec, ok := d[id]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func TestWakeMatchesPhrase(t *testing.T) {
	var out bytes.Buffer
	w := &Wake{Lines: NewLines(strings.NewReader("good day\nHello Receptionist please\n")), Out: &out, Word: "hello receptionist"}

	woke, err := w.Detect(context.Background())
	if err != nil || !woke {
		t.Fatalf("Detect = %v, %v", woke, err)
	}
	woke, _ = w.Detect(context.Background())
	if woke {
		t.Fatal("expected false once input ends")
	}
}

func TestWakeIgnoresPhraseCase(t *testing.T) {
	var out bytes.Buffer
	w := &Wake{Lines: NewLines(strings.NewReader("hello receptionist\n")), Out: &out, Word: "  Hello Receptionist "}

	woke, err := w.Detect(context.Background())
	if err != nil || !woke {
		t.Fatalf("Detect = %v, %v", woke, err)
	}
}

func TestVoiceListen(t *testing.T) {
	var out bytes.Buffer
	v := &Voice{Lines: NewLines(strings.NewReader("where is HR\n\n")), Out: &out}
	ctx := context.Background()

	text, err := v.Listen(ctx, time.Second)
	if err != nil || text != "where is HR" {
		t.Fatalf("Listen = %q, %v", text, err)
	}
	if _, err := v.Listen(ctx, time.Second); !errors.Is(err, domain.ErrRecognitionFailure) {
		t.Fatalf("blank line: %v", err)
	}
	if _, err := v.Listen(ctx, 20*time.Millisecond); !errors.Is(err, domain.ErrInputTimeout) {
		t.Fatalf("after EOF: %v", err)
	}

	if err := v.Speak(ctx, "Hello there"); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "receptionist> Hello there") {
		t.Errorf("output %q", out.String())
	}
}

func TestVoiceListenTimesOut(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()
	v := &Voice{Lines: NewLines(pr), Out: io.Discard}

	if _, err := v.Listen(context.Background(), 10*time.Millisecond); !errors.Is(err, domain.ErrInputTimeout) {
		t.Fatalf("got %v", err)
	}
}

func TestBadgeIdentification(t *testing.T) {
	dir := directory{"E002": {ID: "E002", Name: "Raj Patel"}}
	cam := &BadgeCamera{Lines: NewLines(strings.NewReader("E002\nE999\n\n")), Out: io.Discard}
	faces := &BadgeFaces{Directory: dir}
	ctx := context.Background()

	frame, err := cam.Capture(ctx)
	if err != nil {
		t.Fatalf("Capture: %v", err)
	}
	who, conf, err := faces.Identify(ctx, frame)
	if err != nil || who == nil || who.Name != "Raj Patel" || conf != 1 {
		t.Fatalf("Identify = %+v, %v, %v", who, conf, err)
	}

	for i := 0; i < 2; i++ {
		frame, _ = cam.Capture(ctx)
		who, conf, err = faces.Identify(ctx, frame)
		if err != nil || who != nil || conf != 0 {
			t.Fatalf("expected no match for %q, got %+v", frame.Data, who)
		}
	}
}
