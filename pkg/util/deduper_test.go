package util

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

func TestDeduperFailsOpenWhenRedisUnavailable(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer rdb.Close()

	d := NewDeduper(rdb, time.Minute, nil)
	ctx := context.Background()

	assert.True(t, d.AcquireOnce(ctx, "process-all"))
	assert.True(t, d.AcquireOnce(ctx, "process-all"))
	d.Release(ctx, "process-all")
}

func TestDedupKey(t *testing.T) {
	assert.Equal(t, "dedup:process-all", dedupKey("process-all"))
}
