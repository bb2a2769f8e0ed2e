// Package cache provides optional caching of computed schedule responses.
// The engine is deterministic, so a cache hit reproduces the pure function's
// output exactly; the engine itself stays stateless.
package cache

import (
	"context"
	"sync"

	"github.com/redis/go-redis/v9"
)

// Cache stores serialized schedule responses keyed by loan parameters.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key string, value string) error
}

// RedisCache backs the cache with a Redis server.
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache connects to the Redis server at addr.
func NewRedisCache(addr string) *RedisCache {
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
	})
	return &RedisCache{client: rdb}
}

// Get returns the cached value for key, reporting a miss on any error.
func (r *RedisCache) Get(ctx context.Context, key string) (string, bool) {
	val, err := r.client.Get(ctx, key).Result()
	if err != nil {
		return "", false
	}
	return val, true
}

// Set stores value under key with no expiration.
func (r *RedisCache) Set(ctx context.Context, key string, value string) error {
	return r.client.Set(ctx, key, value, 0).Err()
}

// MemoryCache is a process-local Cache used when Redis is not configured.
type MemoryCache struct {
	mu   sync.RWMutex
	data map[string]string
}

// NewMemoryCache returns an empty in-memory cache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{data: make(map[string]string)}
}

// Get returns the cached value for key.
func (m *MemoryCache) Get(ctx context.Context, key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	val, ok := m.data[key]
	return val, ok
}

// Set stores value under key.
func (m *MemoryCache) Set(ctx context.Context, key string, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}
