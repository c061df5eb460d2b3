package attendance

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/room4-2/frontdesk/domain"
)

const redisRetention = 7 * 24 * time.Hour

// Redis keeps one hash per day, field employee id, value first-seen time.
// HSETNX makes the first write win.
type Redis struct {
	client *redis.Client
}

// NewRedis wraps an existing client.
func NewRedis(client *redis.Client) *Redis {
	return &Redis{client: client}
}

func dayKey(date string) string {
	return "attendance:" + date
}

// Record stores the first sighting for the day of at.
func (r *Redis) Record(ctx context.Context, employeeID string, at time.Time) error {
	k := dayKey(domain.DateKey(at))
	pipe := r.client.TxPipeline()
	pipe.HSetNX(ctx, k, employeeID, at.Format(time.RFC3339Nano))
	pipe.Expire(ctx, k, redisRetention)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("record attendance: %w", err)
	}
	return nil
}

// ListPresent returns the records for date ordered by arrival.
func (r *Redis) ListPresent(ctx context.Context, date string) ([]domain.AttendanceRecord, error) {
	fields, err := r.client.HGetAll(ctx, dayKey(date)).Result()
	if err != nil {
		return nil, fmt.Errorf("list attendance: %w", err)
	}
	out := make([]domain.AttendanceRecord, 0, len(fields))
	for id, seen := range fields {
		t, err := time.Parse(time.RFC3339Nano, seen)
		if err != nil {
			log.Printf("⚠️ Skipping attendance for %s: bad first seen %q: %v", id, seen, err)
			continue
		}
		out = append(out, domain.AttendanceRecord{EmployeeID: id, Date: date, FirstSeen: t})
	}
	sortByArrival(out)
	return out, nil
}
