// Package cache keeps generated reports in Redis under keys that embed a ledger version.
// Bumping the version orphans every older key, which then expires by TTL.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	portssvc "github.com/SscSPs/distributor_ledger_app/internal/core/ports/services"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

const (
	keyPrefix  = "dla:reports:"
	versionKey = keyPrefix + "version"
)

// ReportCache is a Redis-backed portssvc.ReportCache.
type ReportCache struct {
	client *redis.Client
	ttl    time.Duration
	group  singleflight.Group
	logger *slog.Logger
}

var _ portssvc.ReportCache = (*ReportCache)(nil)

// NewReportCache wraps an existing client.
func NewReportCache(client *redis.Client, ttl time.Duration, logger *slog.Logger) *ReportCache {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReportCache{client: client, ttl: ttl, logger: logger}
}

// NewRedisClient parses a redis:// URL and verifies the server answers.
func NewRedisClient(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_URL: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}
	return client, nil
}

// Version returns the current ledger version; a missing counter reads as 0.
func (c *ReportCache) Version(ctx context.Context) (int64, error) {
	v, err := c.client.Get(ctx, versionKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return v, err
}

// Bump invalidates every cached report.
func (c *ReportCache) Bump(ctx context.Context) error {
	return c.client.Incr(ctx, versionKey).Err()
}

// Fetch decodes the cached value for key into dest, computing and storing it on a miss.
// Concurrent misses on one key share a single compute. Redis failures degrade to computing directly.
func (c *ReportCache) Fetch(ctx context.Context, key string, dest any, compute func(ctx context.Context) (any, error)) error {
	version, err := c.Version(ctx)
	if err != nil {
		c.logger.WarnContext(ctx, "Report cache unavailable, computing directly", slog.String("error", err.Error()))
		return computeInto(ctx, dest, compute)
	}
	fullKey := keyPrefix + strconv.FormatInt(version, 10) + ":" + key

	raw, err := c.client.Get(ctx, fullKey).Bytes()
	if err == nil {
		if jsonErr := json.Unmarshal(raw, dest); jsonErr == nil {
			return nil
		}
		c.logger.WarnContext(ctx, "Discarding undecodable cache entry", slog.String("key", fullKey))
	} else if !errors.Is(err, redis.Nil) {
		c.logger.WarnContext(ctx, "Report cache read failed", slog.String("key", fullKey), slog.String("error", err.Error()))
	}

	shared, err, _ := c.group.Do(fullKey, func() (any, error) {
		value, err := compute(ctx)
		if err != nil {
			return nil, err
		}
		encoded, err := json.Marshal(value)
		if err != nil {
			return nil, fmt.Errorf("failed to encode report: %w", err)
		}
		if setErr := c.client.Set(ctx, fullKey, encoded, c.ttl).Err(); setErr != nil {
			c.logger.WarnContext(ctx, "Report cache write failed", slog.String("key", fullKey), slog.String("error", setErr.Error()))
		}
		return encoded, nil
	})
	if err != nil {
		return err
	}
	return json.Unmarshal(shared.([]byte), dest)
}

func computeInto(ctx context.Context, dest any, compute func(ctx context.Context) (any, error)) error {
	value, err := compute(ctx)
	if err != nil {
		return err
	}
	encoded, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return json.Unmarshal(encoded, dest)
}
