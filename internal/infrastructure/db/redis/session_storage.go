package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tokobarang/inventory-dashboard/internal/core/ports"
)

// SessionStorage keeps per-client session values in Redis.
// Key format: session:<client_id>:<key>
type SessionStorage struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSessionStorage wraps client. A zero ttl stores values without expiry.
func NewSessionStorage(client *redis.Client, ttl time.Duration) *SessionStorage {
	return &SessionStorage{client: client, ttl: ttl}
}

// ForClient returns the namespace of clientID.
func (s *SessionStorage) ForClient(clientID string) ports.SessionStorage {
	return &clientStorage{parent: s, clientID: clientID}
}

// Ping verifies Redis connectivity.
func (s *SessionStorage) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

type clientStorage struct {
	parent   *SessionStorage
	clientID string
}

func (c *clientStorage) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := c.parent.client.Get(ctx, c.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("session get: %w", err)
	}
	return v, true, nil
}

func (c *clientStorage) Set(ctx context.Context, key, value string) error {
	if err := c.parent.client.Set(ctx, c.key(key), value, c.parent.ttl).Err(); err != nil {
		return fmt.Errorf("session set: %w", err)
	}
	return nil
}

func (c *clientStorage) Delete(ctx context.Context, key string) error {
	if err := c.parent.client.Del(ctx, c.key(key)).Err(); err != nil {
		return fmt.Errorf("session delete: %w", err)
	}
	return nil
}

func (c *clientStorage) key(key string) string {
	return fmt.Sprintf("session:%s:%s", c.clientID, key)
}
