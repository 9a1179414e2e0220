package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"CommentsAnalyzer/internal/domain"
	"CommentsAnalyzer/internal/ports"
)

const keyPrefix = "comments:stats:"

// RedisStatsCache stores JSON-encoded stats reports with a TTL.
type RedisStatsCache struct {
	client *redis.Client
	ttl    time.Duration
}

var _ ports.StatsCache = (*RedisStatsCache)(nil)

// NewRedisStatsCache wraps an existing client. ttl <= 0 keeps entries until invalidated.
func NewRedisStatsCache(client *redis.Client, ttl time.Duration) *RedisStatsCache {
	if ttl < 0 {
		ttl = 0
	}
	return &RedisStatsCache{client: client, ttl: ttl}
}

// Dial connects to addr and verifies the server answers.
func Dial(ctx context.Context, addr, password string, db int, ttl time.Duration) (*RedisStatsCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return NewRedisStatsCache(client, ttl), nil
}

// Get returns the cached report and whether it was present.
func (c *RedisStatsCache) Get(ctx context.Context, id string) (domain.StatsReport, bool, error) {
	raw, err := c.client.Get(ctx, keyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.StatsReport{}, false, nil
	}
	if err != nil {
		return domain.StatsReport{}, false, fmt.Errorf("get stats: %w", err)
	}

	var report domain.StatsReport
	if err := json.Unmarshal(raw, &report); err != nil {
		return domain.StatsReport{}, false, fmt.Errorf("decode stats: %w", err)
	}
	return report, true, nil
}

// Set stores report under id.
func (c *RedisStatsCache) Set(ctx context.Context, id string, report domain.StatsReport) error {
	raw, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("encode stats: %w", err)
	}
	if err := c.client.Set(ctx, keyPrefix+id, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("set stats: %w", err)
	}
	return nil
}

// Invalidate drops the entry for id, if any.
func (c *RedisStatsCache) Invalidate(ctx context.Context, id string) error {
	if err := c.client.Del(ctx, keyPrefix+id).Err(); err != nil {
		return fmt.Errorf("invalidate stats: %w", err)
	}
	return nil
}

// Close releases the client.
func (c *RedisStatsCache) Close() error {
	return c.client.Close()
}
