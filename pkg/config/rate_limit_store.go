package config

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
)

// RateLimitStore counts hits per key inside a fixed window.
type RateLimitStore interface {
	// Hit records one request for key and returns the number of requests in
	// the current window and when that window ends.
	Hit(ctx context.Context, key string, window time.Duration) (int, time.Time, error)
	Close() error
}

func NewRateLimitStore(cfg RateLimitConfig) (RateLimitStore, error) {
	switch cfg.Backend {
	case "", "memory":
		return NewMemoryRateLimitStore(), nil
	case "redis":
		return NewRedisRateLimitStore(cfg.RedisURL)
	}

	return nil, fmt.Errorf("unsupported rate limit backend %q", cfg.Backend)
}

type RateLimitEntry struct {
	Count     int
	ResetTime time.Time
}

type MemoryRateLimitStore struct {
	cache *cache.Cache
	mutex sync.Mutex
}

func NewMemoryRateLimitStore() *MemoryRateLimitStore {
	return &MemoryRateLimitStore{
		cache: cache.New(5*time.Minute, 10*time.Minute),
	}
}

func (s *MemoryRateLimitStore) Hit(ctx context.Context, key string, window time.Duration) (int, time.Time, error) {
	now := time.Now()

	s.mutex.Lock()
	defer s.mutex.Unlock()

	if item, found := s.cache.Get(key); found {
		entry := item.(RateLimitEntry)

		if now.Before(entry.ResetTime) {
			entry.Count++
			s.cache.Set(key, entry, time.Until(entry.ResetTime))
			return entry.Count, entry.ResetTime, nil
		}
	}

	entry := RateLimitEntry{Count: 1, ResetTime: now.Add(window)}
	s.cache.Set(key, entry, window)

	return entry.Count, entry.ResetTime, nil
}

func (s *MemoryRateLimitStore) ItemCount() int {
	return s.cache.ItemCount()
}

func (s *MemoryRateLimitStore) Close() error {
	s.cache.Flush()
	return nil
}

// RedisRateLimitStore shares counters between instances.
type RedisRateLimitStore struct {
	client *redis.Client
}

func NewRedisRateLimitStore(url string) (*RedisRateLimitStore, error) {
	opts, err := redis.ParseURL(url)

	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	return NewRedisRateLimitStoreWithClient(redis.NewClient(opts)), nil
}

func NewRedisRateLimitStoreWithClient(client *redis.Client) *RedisRateLimitStore {
	return &RedisRateLimitStore{client: client}
}

func (s *RedisRateLimitStore) Hit(ctx context.Context, key string, window time.Duration) (int, time.Time, error) {
	count, err := s.client.Incr(ctx, key).Result()

	if err != nil {
		return 0, time.Time{}, fmt.Errorf("redis incr %s: %w", key, err)
	}

	if count == 1 {
		if err := s.client.PExpire(ctx, key, window).Err(); err != nil {
			return 0, time.Time{}, fmt.Errorf("redis pexpire %s: %w", key, err)
		}
	}

	ttl, err := s.client.PTTL(ctx, key).Result()

	if err != nil {
		return 0, time.Time{}, fmt.Errorf("redis pttl %s: %w", key, err)
	}

	// a key left without expiry would never reset
	if ttl < 0 {
		if err := s.client.PExpire(ctx, key, window).Err(); err != nil {
			return 0, time.Time{}, fmt.Errorf("redis pexpire %s: %w", key, err)
		}
		ttl = window
	}

	return int(count), time.Now().Add(ttl), nil
}

func (s *RedisRateLimitStore) Close() error {
	return s.client.Close()
}
