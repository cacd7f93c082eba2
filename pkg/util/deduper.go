package util

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Deduper holds short-lived named locks in Redis so the same job is not
// started twice while a previous run is still going.
type Deduper struct {
	rdb    *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

func NewDeduper(rdb *redis.Client, ttl time.Duration, logger *zap.Logger) *Deduper {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Deduper{
		rdb:    rdb,
		ttl:    ttl,
		logger: logger,
	}
}

func dedupKey(job string) string {
	return fmt.Sprintf("dedup:%s", job)
}

// AcquireOnce returns true if the caller now owns the lock for job.
// When Redis is unreachable it returns true so work is never blocked by the cache.
func (d *Deduper) AcquireOnce(ctx context.Context, job string) bool {
	key := dedupKey(job)

	ok, err := d.rdb.SetNX(ctx, key, 1, d.ttl).Result()
	if err != nil {
		d.logger.Warn("Redis dedup check failed, allowing processing",
			zap.String("job", job),
			zap.Error(err),
		)
		return true
	}

	if !ok {
		d.logger.Info("Skipped duplicated job",
			zap.String("job", job),
			zap.String("dedup_key", key),
		)
	}
	return ok
}

// Release drops the lock so the job can run again before the TTL expires.
func (d *Deduper) Release(ctx context.Context, job string) {
	if err := d.rdb.Del(ctx, dedupKey(job)).Err(); err != nil {
		d.logger.Warn("Failed to release dedup lock",
			zap.String("job", job),
			zap.Error(err),
		)
	}
}
