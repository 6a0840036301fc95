package ratelimit

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	domrepo "TravelPulse/internal/domain/repository"
)

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	Prefix   string
}

// RedisLimiter is a fixed-window counter shared by every replica.
type RedisLimiter struct {
	cli    redis.Cmdable
	prefix string
	limit  int64
	window time.Duration
	now    func() time.Time
}

func NewRedisLimiter(cfg RedisConfig, limit int, window time.Duration) *RedisLimiter {
	rdb := redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB})
	return NewRedisLimiterWithClient(rdb, cfg.Prefix, limit, window)
}

func NewRedisLimiterWithClient(cli redis.Cmdable, prefix string, limit int, window time.Duration) *RedisLimiter {
	return &RedisLimiter{cli: cli, prefix: prefix, limit: int64(limit), window: window, now: time.Now}
}

// Allow increments the counter of the current window for key.
func (r *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	slot := r.now().UnixNano() / int64(r.window)
	k := r.prefix + key + ":" + strconv.FormatInt(slot, 10)

	var incr *redis.IntCmd
	_, err := r.cli.TxPipelined(ctx, func(p redis.Pipeliner) error {
		incr = p.Incr(ctx, k)
		p.Expire(ctx, k, r.window)
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("rate limit %s: %w", key, err)
	}
	return incr.Val() <= r.limit, nil
}

// Close releases the underlying client when it owns one.
func (r *RedisLimiter) Close() error {
	if c, ok := r.cli.(*redis.Client); ok {
		return c.Close()
	}
	return nil
}

var _ domrepo.RateLimiter = (*RedisLimiter)(nil)
