package ratelimit

import (
	"context"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/BinarniyKot/book-library-api/internal/infrastructure/config"
	"github.com/BinarniyKot/book-library-api/internal/infrastructure/persistence/redis"
	"github.com/BinarniyKot/book-library-api/pkg/circuitbreaker"
)

// Window 限流窗口,配置的是每分钟请求数
const Window = time.Minute

// Result 一次限流判定的结果,用于写响应头
type Result struct {
	Allowed    bool
	Limit      int
	Remaining  int
	RetryAfter time.Duration // 被拒绝时距离可重试的时间
}

// Limiter 按客户端标识限流
type Limiter interface {
	Allow(ctx context.Context, key string) (Result, error)
}

// Runner 需要后台清理的限流器
type Runner interface {
	Run(ctx context.Context)
}

// New 根据rate_limit.driver创建限流器
// redis驱动需要client不为nil,否则退回内存实现
func New(cfg *config.Config, client *goredis.Client, log zerolog.Logger) Limiter {
	memory := NewMemoryLimiter(cfg.Books.ThrottlePerMinute)

	if cfg.RateLimit.Driver == config.RateLimitDriverRedis && client != nil {
		counter := redis.NewWindowCounter(client, "throttle:books")
		breaker := circuitbreaker.New(circuitbreaker.Settings{
			MaxFailures: uint32(cfg.RateLimit.BreakerMaxFailures),
			Timeout:     cfg.RateLimit.BreakerTimeout,
			OnStateChange: func(from, to circuitbreaker.State) {
				log.Warn().Str("from", from.String()).Str("to", to.String()).Msg("Redis限流熔断器状态变化")
			},
		})
		return NewRedisLimiter(counter, cfg.Books.ThrottlePerMinute, memory, breaker, log)
	}
	return memory
}
