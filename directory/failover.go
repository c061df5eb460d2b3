package directory

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/room4-2/frontdesk/domain"
)

// Failover asks the primary first and falls back to the secondary when the
// primary errors or has no match. Either source may be nil.
type Failover struct {
	Primary   domain.EmployeeDirectory
	Secondary domain.EmployeeDirectory
	Timeout   time.Duration
}

// Lookup implements domain.EmployeeDirectory.
func (f *Failover) Lookup(ctx context.Context, name string) (*domain.EmployeeRecord, error) {
	return f.query(ctx, "lookup", func(ctx context.Context, d domain.EmployeeDirectory) (*domain.EmployeeRecord, error) {
		return d.Lookup(ctx, name)
	})
}

// GetByID implements domain.EmployeeDirectory.
func (f *Failover) GetByID(ctx context.Context, id string) (*domain.EmployeeRecord, error) {
	return f.query(ctx, "get", func(ctx context.Context, d domain.EmployeeDirectory) (*domain.EmployeeRecord, error) {
		return d.GetByID(ctx, id)
	})
}

func (f *Failover) query(ctx context.Context, op string, fn func(context.Context, domain.EmployeeDirectory) (*domain.EmployeeRecord, error)) (*domain.EmployeeRecord, error) {
	var primaryErr error
	if f.Primary != nil {
		rec, err := f.call(ctx, f.Primary, fn)
		if err == nil && rec != nil {
			return rec, nil
		}
		if err != nil {
			log.Printf("⚠️ [directory] primary %s failed, trying secondary: %v", op, err)
			primaryErr = err
		}
	}
	if f.Secondary == nil {
		if primaryErr != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrDirectoryUnavailable, primaryErr)
		}
		if f.Primary == nil {
			return nil, domain.ErrDirectoryUnavailable
		}
		return nil, nil
	}
	rec, err := f.call(ctx, f.Secondary, fn)
	if err != nil {
		if primaryErr != nil || f.Primary == nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrDirectoryUnavailable, err)
		}
		// The primary already answered "no such employee".
		log.Printf("⚠️ [directory] secondary %s failed: %v", op, err)
		return nil, nil
	}
	return rec, nil
}

func (f *Failover) call(ctx context.Context, d domain.EmployeeDirectory, fn func(context.Context, domain.EmployeeDirectory) (*domain.EmployeeRecord, error)) (*domain.EmployeeRecord, error) {
	if f.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.Timeout)
		defer cancel()
	}
	return fn(ctx, d)
}
