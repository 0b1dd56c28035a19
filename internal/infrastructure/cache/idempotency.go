package cache

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// IdempotencyStore remembers processed webhook event keys so redelivered
// notifications are acknowledged without being applied twice.
type IdempotencyStore interface {
	// MarkProcessed records the key. Returns false when the key was
	// already recorded.
	MarkProcessed(ctx context.Context, key string, ttl time.Duration) (bool, error)
	// Release forgets the key so a later delivery is processed again.
	// Called when applying the event failed after the key was marked.
	Release(ctx context.Context, key string) error
}

// RedisIdempotencyStore backs the store with Redis SET NX
type RedisIdempotencyStore struct {
	client *redis.Client
	prefix string
}

// NewRedisIdempotencyStore creates a Redis-backed store
func NewRedisIdempotencyStore(client *redis.Client) *RedisIdempotencyStore {
	return &RedisIdempotencyStore{
		client: client,
		prefix: "webhook:processed:",
	}
}

// MarkProcessed records the key atomically
func (s *RedisIdempotencyStore) MarkProcessed(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	return s.client.SetNX(ctx, s.prefix+key, 1, ttl).Result()
}

// Release deletes the key
func (s *RedisIdempotencyStore) Release(ctx context.Context, key string) error {
	return s.client.Del(ctx, s.prefix+key).Err()
}

// MemoryIdempotencyStore is an in-process store for single-instance
// deployments and tests.
type MemoryIdempotencyStore struct {
	mu      sync.Mutex
	entries map[string]time.Time
}

// NewMemoryIdempotencyStore creates an in-memory store
func NewMemoryIdempotencyStore() *MemoryIdempotencyStore {
	return &MemoryIdempotencyStore{
		entries: make(map[string]time.Time),
	}
}

// MarkProcessed records the key, expiring stale entries as it goes
func (s *MemoryIdempotencyStore) MarkProcessed(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	for k, expiry := range s.entries {
		if now.After(expiry) {
			delete(s.entries, k)
		}
	}

	if _, exists := s.entries[key]; exists {
		return false, nil
	}
	s.entries[key] = now.Add(ttl)
	return true, nil
}

// Release forgets the key
func (s *MemoryIdempotencyStore) Release(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
	return nil
}
