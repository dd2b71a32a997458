package service

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"blog-backend/pkg/cache"
)

// readThrough đọc key từ cache, miss thì gọi load và ghi lại với ttl.
// Lỗi cache chỉ được log, request vẫn đi tiếp xuống database.
func readThrough[T any](ctx context.Context, c cache.Cache, key string, ttl time.Duration, load func() (T, error)) (T, error) {
	if c == nil {
		return load()
	}

	var cached T
	found, err := c.Get(ctx, key, &cached)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("cache get failed")
	} else if found {
		log.Debug().Str("key", key).Msg("cache hit")
		return cached, nil
	}

	value, err := load()
	if err != nil {
		return value, err
	}

	if err := c.Set(ctx, key, value, ttl); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("cache set failed")
	}
	return value, nil
}

// invalidator xóa keys/patterns, lỗi chỉ được log
type invalidator struct {
	cache cache.Cache
}

func (i invalidator) keys(ctx context.Context, keys ...string) {
	if i.cache == nil || len(keys) == 0 {
		return
	}
	if err := i.cache.Delete(ctx, keys...); err != nil {
		log.Warn().Err(err).Strs("keys", keys).Msg("cache delete failed")
	}
}

func (i invalidator) patterns(ctx context.Context, patterns ...string) {
	if i.cache == nil {
		return
	}
	for _, p := range patterns {
		if err := i.cache.DeletePattern(ctx, p); err != nil {
			log.Warn().Err(err).Str("pattern", p).Msg("cache delete pattern failed")
		}
	}
}
