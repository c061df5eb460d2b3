package console

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/room4-2/frontdesk/domain"
)

// Device is a no-op scoped resource.
type Device struct{}

func (Device) Acquire(ctx context.Context) error { return nil }
func (Device) Release() error                    { return nil }

// BadgeCamera "captures" a frame by asking for a typed employee id.
type BadgeCamera struct {
	Device
	Lines *Lines
	Out   io.Writer
}

func (c *BadgeCamera) Capture(ctx context.Context) (domain.Frame, error) {
	fmt.Fprint(c.Out, "badge id (blank for visitor)> ")
	select {
	case <-ctx.Done():
		fmt.Fprintln(c.Out)
		return domain.Frame{}, ctx.Err()
	case <-c.Lines.Done():
		return domain.Frame{}, io.EOF
	case line := <-c.Lines.ch:
		return domain.Frame{Data: []byte(line), CapturedAt: time.Now()}, nil
	}
}

// IDReader is the part of the directory BadgeFaces needs.
type IDReader interface {
	GetByID(ctx context.Context, id string) (*domain.EmployeeRecord, error)
}

// BadgeFaces resolves a badge frame against the directory. A known id is
// a certain match.
type BadgeFaces struct {
	Directory IDReader
}

func (f *BadgeFaces) Identify(ctx context.Context, frame domain.Frame) (*domain.Identity, float64, error) {
	id := strings.TrimSpace(string(frame.Data))
	if id == "" {
		return nil, 0, nil
	}
	rec, err := f.Directory.GetByID(ctx, id)
	if err != nil {
		return nil, 0, err
	}
	if rec == nil {
		return nil, 0, nil
	}
	who := domain.Employee(rec.ID, rec.Name)
	return &who, 1, nil
}
