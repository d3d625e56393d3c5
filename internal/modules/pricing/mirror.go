// README: Redis mirror of zone state and policy so other processes can read live pricing.
package pricing

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	zoneKeyPrefix = "pricing:zone:%s"
	zoneIndexKey  = "pricing:zones"
	policyKey     = "pricing:policy"
	// Zone hashes expire if the ticker stops, so readers never see stale surge forever.
	zoneKeyTTL = time.Minute
)

type RedisMirror struct {
	redis *redis.Client
}

func NewRedisMirror(client *redis.Client) *RedisMirror {
	return &RedisMirror{redis: client}
}

func zoneKey(name string) string {
	return fmt.Sprintf(zoneKeyPrefix, name)
}

func (m *RedisMirror) ZonesUpdated(ctx context.Context, zones []ZoneSurge) error {
	pipe := m.redis.TxPipeline()
	for _, z := range zones {
		key := zoneKey(z.Name)
		pipe.HSet(ctx, key, map[string]any{
			"demand":     z.Demand,
			"supply":     z.Supply,
			"multiplier": z.Multiplier,
		})
		pipe.Expire(ctx, key, zoneKeyTTL)
		pipe.SAdd(ctx, zoneIndexKey, z.Name)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("mirror zones to redis: %w", err)
	}
	return nil
}

func (m *RedisMirror) PolicyUpdated(ctx context.Context, p Policy) error {
	err := m.redis.HSet(ctx, policyKey, map[string]any{
		"max_surge_cap":        p.MaxSurgeCap,
		"peak_hour_multiplier": p.PeakHourMultiplier,
	}).Err()
	if err != nil {
		return fmt.Errorf("mirror policy to redis: %w", err)
	}
	return nil
}
