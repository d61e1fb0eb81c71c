package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Compile-time interface guard.
var _ Store[struct{}] = (*RedisStore[struct{}])(nil)

// keyPrefix namespaces session keys in Redis.
const keyPrefix = "stampcat:session:"

// RedisStore keeps sessions as JSON in Redis (or Valkey) with a TTL, so
// several server replicas can share viewers.
type RedisStore[T any] struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore creates a RedisStore on client.
func NewRedisStore[T any](client *redis.Client, ttl time.Duration) *RedisStore[T] {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisStore[T]{client: client, ttl: ttl}
}

// ConnectRedis creates a client and verifies the connection with a ping.
func ConnectRedis(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", addr, err)
	}
	return client, nil
}

// Get implements Store.
func (s *RedisStore[T]) Get(ctx context.Context, id string) (T, error) {
	var value T
	payload, err := s.client.Get(ctx, keyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return value, ErrNotFound
	}
	if err != nil {
		return value, fmt.Errorf("session get: %w", err)
	}
	if err := json.Unmarshal(payload, &value); err != nil {
		return value, fmt.Errorf("session unmarshal: %w", err)
	}
	return value, nil
}

// Save implements Store.
func (s *RedisStore[T]) Save(ctx context.Context, id string, value T) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("session marshal: %w", err)
	}
	if err := s.client.Set(ctx, keyPrefix+id, payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("session save: %w", err)
	}
	return nil
}

// Delete implements Store.
func (s *RedisStore[T]) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, keyPrefix+id).Err(); err != nil {
		return fmt.Errorf("session delete: %w", err)
	}
	return nil
}
