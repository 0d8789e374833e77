package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store is a JSON cache over Redis. A Store with a nil client is a no-op, so
// callers work unchanged when Redis is unavailable.
type Store struct {
	client *redis.Client
}

// NewStore wraps client; client may be nil.
func NewStore(client *redis.Client) *Store {
	return &Store{client: client}
}

// GetJSON attempts to get the key from Redis and unmarshal into dest.
// Returns (true, nil) if found and unmarshaled, (false, nil) if not found.
func (s *Store) GetJSON(ctx context.Context, key string, dest any) (bool, error) {
	if s == nil || s.client == nil {
		return false, nil
	}
	raw, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, err
	}
	return true, nil
}

// SetJSON marshals v and sets the key with TTL.
func (s *Store) SetJSON(ctx context.Context, key string, v any, ttl time.Duration) error {
	if s == nil || s.client == nil {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, key, b, ttl).Err()
}

// Aside tries Redis first, on miss it calls fetch (which must populate
// dest), then stores dest with ttl. Cache read and write failures fall
// through to fetch.
func (s *Store) Aside(ctx context.Context, key string, dest any, ttl time.Duration, fetch func() error) error {
	if found, err := s.GetJSON(ctx, key, dest); err == nil && found {
		return nil
	}

	if err := fetch(); err != nil {
		return err
	}

	_ = s.SetJSON(ctx, key, dest, ttl)
	return nil
}

// Invalidate deletes keys, ignoring errors.
func (s *Store) Invalidate(ctx context.Context, keys ...string) {
	if s == nil || s.client == nil || len(keys) == 0 {
		return
	}
	s.client.Del(ctx, keys...)
}
