package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mikededo/hubbl-sub002/internal/logger"
	"github.com/mikededo/hubbl-sub002/internal/metrics"
	"github.com/mikededo/hubbl-sub002/internal/schedule"
)

// AvailabilityCache stores computed availability grids in redis, keyed by
// zone, date and duration. Alongside the value keys it maintains a per
// (zone, date) index set of cached durations so Invalidate can drop every
// duration variant in one pass, without a SCAN.
//
// All operations are best effort: redis being down degrades to recomputing,
// never to an error surfaced to the caller.
type AvailabilityCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewAvailabilityCache(client *redis.Client, ttl time.Duration) *AvailabilityCache {
	return &AvailabilityCache{client: client, ttl: ttl}
}

func (c *AvailabilityCache) Get(ctx context.Context, zoneID int, date schedule.Date, durationMinutes int) ([]schedule.TimeOfDay, bool) {
	payload, err := c.client.Get(ctx, valueKey(zoneID, date, durationMinutes)).Result()
	if err != nil {
		if err != redis.Nil {
			logger.Debugf("availability cache get failed: %v", err)
		}
		metrics.RecordCacheLookup(false)
		return nil, false
	}

	var starts []schedule.TimeOfDay
	if err := json.Unmarshal([]byte(payload), &starts); err != nil {
		logger.Debugf("availability cache payload corrupt: %v", err)
		metrics.RecordCacheLookup(false)
		return nil, false
	}

	metrics.RecordCacheLookup(true)
	return starts, true
}

func (c *AvailabilityCache) Set(ctx context.Context, zoneID int, date schedule.Date, durationMinutes int, starts []schedule.TimeOfDay) {
	payload, err := json.Marshal(starts)
	if err != nil {
		logger.Debugf("availability cache marshal failed: %v", err)
		return
	}

	if err := c.client.Set(ctx, valueKey(zoneID, date, durationMinutes), payload, c.ttl).Err(); err != nil {
		logger.Debugf("availability cache set failed: %v", err)
		return
	}

	idx := indexKey(zoneID, date)
	if err := c.client.SAdd(ctx, idx, durationMinutes).Err(); err != nil {
		logger.Debugf("availability cache index add failed: %v", err)
		return
	}
	if err := c.client.Expire(ctx, idx, c.ttl).Err(); err != nil {
		logger.Debugf("availability cache index expire failed: %v", err)
	}
}

func (c *AvailabilityCache) Invalidate(ctx context.Context, zoneID int, date schedule.Date) {
	idx := indexKey(zoneID, date)

	durations, err := c.client.SMembers(ctx, idx).Result()
	if err != nil {
		if err != redis.Nil {
			logger.Debugf("availability cache invalidate failed: %v", err)
		}
		return
	}

	keys := make([]string, 0, len(durations)+1)
	for _, d := range durations {
		keys = append(keys, fmt.Sprintf("availability:%d:%s:%s", zoneID, date, d))
	}
	keys = append(keys, idx)

	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		logger.Debugf("availability cache delete failed: %v", err)
	}
}

func valueKey(zoneID int, date schedule.Date, durationMinutes int) string {
	return fmt.Sprintf("availability:%d:%s:%d", zoneID, date, durationMinutes)
}

func indexKey(zoneID int, date schedule.Date) string {
	return fmt.Sprintf("availability:%d:%s:durations", zoneID, date)
}
