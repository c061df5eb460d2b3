// Package notify delivers messages to employees and turns delivery failures
// into results instead of errors.
package notify

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/room4-2/frontdesk/domain"
)

const defaultTimeout = 10 * time.Second

// Dispatcher wraps a Notifier with a bounded, non-failing call.
type Dispatcher struct {
	notifier domain.Notifier
	timeout  time.Duration
}

// NewDispatcher returns a dispatcher bounding each send by timeout.
func NewDispatcher(n domain.Notifier, timeout time.Duration) *Dispatcher {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Dispatcher{notifier: n, timeout: timeout}
}

// Notify sends req and reports the outcome. It never returns an error and
// never blocks longer than the dispatcher timeout.
func (d *Dispatcher) Notify(ctx context.Context, req domain.NotificationRequest) domain.NotificationResult {
	if req.Contact == "" {
		log.Printf("⚠️ [notify] no contact for %s (%s)", req.TargetName, req.Reason)
		return domain.NotificationResult{Cause: domain.ErrNoContact}
	}
	if d.notifier == nil {
		return domain.NotificationResult{Cause: fmt.Errorf("no notifier configured")}
	}

	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- fmt.Errorf("notifier panic: %v", r)
			}
		}()
		done <- d.notifier.Send(ctx, req)
	}()

	select {
	case err := <-done:
		if err != nil {
			log.Printf("❌ [notify] send to %s failed: %v", req.TargetName, err)
			return domain.NotificationResult{Cause: err}
		}
		log.Printf("📨 [notify] sent to %s (%s)", req.TargetName, req.Reason)
		return domain.NotificationResult{OK: true}
	case <-ctx.Done():
		log.Printf("⏱️ [notify] send to %s timed out", req.TargetName)
		return domain.NotificationResult{Cause: ctx.Err()}
	}
}

// Log is a Notifier that only writes to the process log. It is used when no
// SMS credentials are configured.
type Log struct{}

// Send logs the delivery.
func (Log) Send(_ context.Context, req domain.NotificationRequest) error {
	log.Printf("📝 [notify] would message %s at %s (%s)", req.TargetName, req.Contact, req.Reason)
	return nil
}
