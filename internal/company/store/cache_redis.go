package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"tenure/internal/company/models"
	"tenure/internal/platform/redis"
	id "tenure/pkg/domain"
	"tenure/pkg/platform/sentinel"
)

// StatsCache caches computed company statistics in Redis so repeated
// reads do not rescan contracts and reviews.
type StatsCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStatsCache constructs a Redis-backed stats cache. A zero ttl
// disables expiry.
func NewStatsCache(client *redis.Client, ttl time.Duration) *StatsCache {
	return &StatsCache{client: client, ttl: ttl}
}

func statsKey(companyID id.CompanyID) string {
	return fmt.Sprintf("tenure:company:%d:stats", companyID)
}

// Get returns cached stats for the company or sentinel.ErrNotFound on a miss.
func (c *StatsCache) Get(ctx context.Context, companyID id.CompanyID) (*models.Stats, error) {
	raw, err := c.client.Get(ctx, statsKey(companyID)).Bytes()
	if err == goredis.Nil {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("stats cache get: %w", err)
	}

	var stats models.Stats
	if err := json.Unmarshal(raw, &stats); err != nil {
		return nil, fmt.Errorf("stats cache decode: %w", err)
	}
	return &stats, nil
}

// Set stores stats for the company under the configured TTL.
func (c *StatsCache) Set(ctx context.Context, companyID id.CompanyID, stats *models.Stats) error {
	raw, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("stats cache encode: %w", err)
	}
	if err := c.client.Set(ctx, statsKey(companyID), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("stats cache set: %w", err)
	}
	return nil
}

// Invalidate drops the cached stats for the company.
func (c *StatsCache) Invalidate(ctx context.Context, companyID id.CompanyID) error {
	if err := c.client.Del(ctx, statsKey(companyID)).Err(); err != nil {
		return fmt.Errorf("stats cache invalidate: %w", err)
	}
	return nil
}
