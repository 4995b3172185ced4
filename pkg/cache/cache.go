package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache TTLs
const (
	TTLContacts  = 30 * time.Second // chat contact lists (kept short; explicit invalidation is the primary mechanism)
	TTLDashboard = 1 * time.Minute  // dashboard aggregates
)

// Cache key prefixes
const (
	PrefixContacts  = "chat:contacts:"
	PrefixDashboard = "dashboard:"
)

// Service Redis cache service interface.
// Every method is a no-op (or a miss) when Redis is unavailable,
// so callers never need a nil check.
type Service interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error

	// Chat contact-list cache
	GetContacts(ctx context.Context, userID string, dest interface{}) error
	SetContacts(ctx context.Context, userID string, data interface{}) error
	InvalidateContacts(ctx context.Context, userIDs ...string) error

	// Dashboard stats cache
	GetDashboardStats(ctx context.Context, dest interface{}) error
	SetDashboardStats(ctx context.Context, data interface{}) error
	InvalidateDashboardStats(ctx context.Context) error

	IsAvailable() bool
	Ping(ctx context.Context) error
}

type redisCache struct {
	client *redis.Client
}

// NewService creates a cache service. A nil client yields a degraded
// pass-through service.
func NewService(client *redis.Client) Service {
	return &redisCache{client: client}
}

// IsAvailable reports whether a Redis connection is configured
func (c *redisCache) IsAvailable() bool {
	return c.client != nil
}

// Ping tests the Redis connection
func (c *redisCache) Ping(ctx context.Context) error {
	if c.client == nil {
		return fmt.Errorf("redis client is nil")
	}
	return c.client.Ping(ctx).Err()
}

// Get fetches and unmarshals a cached value
func (c *redisCache) Get(ctx context.Context, key string, dest interface{}) error {
	if c.client == nil {
		return redis.Nil
	}

	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return err
	}

	return json.Unmarshal(data, dest)
}

// Set marshals and stores a value
func (c *redisCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if c.client == nil {
		return nil
	}

	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	return c.client.Set(ctx, key, data, ttl).Err()
}

// Delete removes cached keys
func (c *redisCache) Delete(ctx context.Context, keys ...string) error {
	if c.client == nil || len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}

func contactsKey(userID string) string {
	return PrefixContacts + userID
}

func (c *redisCache) GetContacts(ctx context.Context, userID string, dest interface{}) error {
	return c.Get(ctx, contactsKey(userID), dest)
}

func (c *redisCache) SetContacts(ctx context.Context, userID string, data interface{}) error {
	return c.Set(ctx, contactsKey(userID), data, TTLContacts)
}

// InvalidateContacts drops the cached contact list of every given user.
// Called after a send or a mark-read, for both sides of the conversation.
func (c *redisCache) InvalidateContacts(ctx context.Context, userIDs ...string) error {
	keys := make([]string, len(userIDs))
	for i, id := range userIDs {
		keys[i] = contactsKey(id)
	}
	return c.Delete(ctx, keys...)
}

func (c *redisCache) GetDashboardStats(ctx context.Context, dest interface{}) error {
	return c.Get(ctx, PrefixDashboard+"stats", dest)
}

func (c *redisCache) SetDashboardStats(ctx context.Context, data interface{}) error {
	return c.Set(ctx, PrefixDashboard+"stats", data, TTLDashboard)
}

func (c *redisCache) InvalidateDashboardStats(ctx context.Context) error {
	return c.Delete(ctx, PrefixDashboard+"stats")
}
