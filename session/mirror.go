package session

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisMirror publishes the active session to Redis so other processes can
// see whether the desk is busy. All methods are no-ops on a nil mirror.
type RedisMirror struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisMirror connects to Redis. It returns nil when Redis is not
// reachable; the desk works without it.
func NewRedisMirror(ctx context.Context, client *redis.Client, ttl time.Duration) *RedisMirror {
	if client == nil {
		return nil
	}
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		log.Printf("⚠️ Redis unavailable, session mirror disabled: %v", err)
		return nil
	}
	return &RedisMirror{client: client, ttl: ttl}
}

func sessionKey(id string) string {
	return "session:" + id
}

// Store writes the session hash and adds it to the active set.
func (m *RedisMirror) Store(ctx context.Context, s *Session) {
	if m == nil {
		return
	}
	id := s.Identity()
	pipe := m.client.TxPipeline()
	pipe.HSet(ctx, sessionKey(s.ID), map[string]interface{}{
		"created_at":    s.CreatedAt.Format(time.RFC3339),
		"last_activity": s.LastActivity().Format(time.RFC3339),
		"status":        "active",
		"role":          string(id.Role()),
		"employee_id":   id.EmployeeID,
		"phase":         string(s.Phase()),
	})
	pipe.SAdd(ctx, "active_sessions", s.ID)
	pipe.Expire(ctx, sessionKey(s.ID), m.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		log.Printf("⚠️ [%s] Redis store failed: %v", s.ShortID(), err)
	}
}

// Touch refreshes activity, phase and TTL.
func (m *RedisMirror) Touch(ctx context.Context, s *Session) {
	if m == nil {
		return
	}
	pipe := m.client.TxPipeline()
	pipe.HSet(ctx, sessionKey(s.ID),
		"last_activity", s.LastActivity().Format(time.RFC3339),
		"phase", string(s.Phase()))
	pipe.Expire(ctx, sessionKey(s.ID), m.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		log.Printf("⚠️ [%s] Redis touch failed: %v", s.ShortID(), err)
	}
}

// Remove deletes the session hash and set entry.
func (m *RedisMirror) Remove(ctx context.Context, id string) {
	if m == nil {
		return
	}
	m.client.Del(ctx, sessionKey(id))
	m.client.SRem(ctx, "active_sessions", id)
}

// Close closes the Redis client.
func (m *RedisMirror) Close() error {
	if m == nil {
		return nil
	}
	return m.client.Close()
}
