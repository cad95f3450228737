package ratelimit

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/BinarniyKot/book-library-api/pkg/circuitbreaker"
)

// Counter 固定窗口计数器(由persistence/redis.WindowCounter实现)
type Counter interface {
	Hit(ctx context.Context, identity string, window time.Duration) (int64, time.Duration, error)
}

// RedisLimiter 基于Redis固定窗口的限流,多实例共享计数
// Redis不可用时退回到内存限流,不拒绝请求;
// 连续失败后熔断,熔断期间不再访问Redis
type RedisLimiter struct {
	counter  Counter
	limit    int
	fallback Limiter
	breaker  *circuitbreaker.Breaker
	log      zerolog.Logger
}

// NewRedisLimiter 创建Redis限流器,breaker为nil时使用默认熔断配置
func NewRedisLimiter(counter Counter, perMinute int, fallback Limiter, breaker *circuitbreaker.Breaker, log zerolog.Logger) *RedisLimiter {
	if breaker == nil {
		breaker = circuitbreaker.New(circuitbreaker.Settings{})
	}
	return &RedisLimiter{
		counter:  counter,
		limit:    perMinute,
		fallback: fallback,
		breaker:  breaker,
		log:      log,
	}
}

// Allow 窗口内计数不超过limit时放行
func (r *RedisLimiter) Allow(ctx context.Context, key string) (Result, error) {
	var (
		count int64
		ttl   time.Duration
	)
	err := r.breaker.Execute(func() error {
		var hitErr error
		count, ttl, hitErr = r.counter.Hit(ctx, key, Window)
		return hitErr
	})
	if err != nil {
		if !errors.Is(err, circuitbreaker.ErrOpenState) {
			r.log.Warn().Err(err).Str("key", key).Msg("Redis限流不可用,使用内存限流")
		}
		return r.fallback.Allow(ctx, key)
	}

	res := Result{Limit: r.limit}
	if count > int64(r.limit) {
		res.RetryAfter = ttl
		return res, nil
	}

	res.Allowed = true
	res.Remaining = r.limit - int(count)
	return res, nil
}

// Run 清理内存回退限流器中的空闲条目
func (r *RedisLimiter) Run(ctx context.Context) {
	if runner, ok := r.fallback.(Runner); ok {
		runner.Run(ctx)
	}
}
