package prompt

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/mukheshvadlamudi/MailFlow/internal/model"
)

const (
	cacheKeyPrefix      = "prompt:active:"
	generationKeyPrefix = "prompt:gen:"
)

// RedisCache stores resolved templates as JSON with a short TTL. Entries are
// keyed by a per-purpose generation counter; Invalidate bumps the counter so
// a write that raced with it lands under a key nobody reads. Redis failures
// are logged and behave like a miss.
type RedisCache struct {
	rdb    *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

func NewRedisCache(rdb *redis.Client, ttl time.Duration, log *zap.Logger) *RedisCache {
	return &RedisCache{rdb: rdb, ttl: ttl, logger: log}
}

func entryKey(purpose string, gen int64) string {
	return cacheKeyPrefix + purpose + ":" + strconv.FormatInt(gen, 10)
}

func (c *RedisCache) generation(ctx context.Context, purpose string) (int64, error) {
	gen, err := c.rdb.Get(ctx, generationKeyPrefix+purpose).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

func (c *RedisCache) Get(ctx context.Context, purpose string) (*model.PromptTemplate, int64, bool) {
	gen, err := c.generation(ctx, purpose)
	if err != nil {
		c.logger.Warn("Prompt cache read failed", zap.String("purpose", purpose), zap.Error(err))
		return nil, NoGeneration, false
	}

	data, err := c.rdb.Get(ctx, entryKey(purpose, gen)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("Prompt cache read failed", zap.String("purpose", purpose), zap.Error(err))
			return nil, NoGeneration, false
		}
		return nil, gen, false
	}

	var t model.PromptTemplate
	if err := json.Unmarshal(data, &t); err != nil {
		c.logger.Warn("Prompt cache entry corrupt", zap.String("purpose", purpose), zap.Error(err))
		return nil, gen, false
	}
	return &t, gen, true
}

func (c *RedisCache) Set(ctx context.Context, purpose string, gen int64, t *model.PromptTemplate) {
	if gen == NoGeneration {
		return
	}
	data, err := json.Marshal(t)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, entryKey(purpose, gen), data, c.ttl).Err(); err != nil {
		c.logger.Warn("Prompt cache write failed", zap.String("purpose", purpose), zap.Error(err))
	}
}

func (c *RedisCache) Invalidate(ctx context.Context, purposes ...string) {
	pipe := c.rdb.TxPipeline()
	for _, p := range purposes {
		pipe.Incr(ctx, generationKeyPrefix+p)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		c.logger.Warn("Prompt cache invalidation failed", zap.Strings("purposes", purposes), zap.Error(err))
	}
}

var _ Cache = (*RedisCache)(nil)
