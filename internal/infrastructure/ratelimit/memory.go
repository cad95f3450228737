package ratelimit

import (
	"context"
	"math"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// MemoryLimiter 进程内令牌桶限流(每个客户端一个桶)
// 容量为每分钟请求数,按 limit/60 每秒匀速补充
// 多实例部署时各实例独立计数,需要共享计数请使用RedisLimiter
type MemoryLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	limit    int
	every    rate.Limit
	idle     time.Duration
	now      func() time.Time
}

// NewMemoryLimiter 创建内存限流器
func NewMemoryLimiter(perMinute int) *MemoryLimiter {
	return &MemoryLimiter{
		visitors: make(map[string]*visitor),
		limit:    perMinute,
		every:    rate.Limit(float64(perMinute) / Window.Seconds()),
		idle:     5 * time.Minute,
		now:      time.Now,
	}
}

// Allow 消耗一个令牌
func (m *MemoryLimiter) Allow(_ context.Context, key string) (Result, error) {
	now := m.now()

	m.mu.Lock()
	defer m.mu.Unlock()

	v, ok := m.visitors[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(m.every, m.limit)}
		m.visitors[key] = v
	}
	v.lastSeen = now

	res := Result{Limit: m.limit}

	r := v.limiter.ReserveN(now, 1)
	if delay := r.DelayFrom(now); !r.OK() || delay > 0 {
		r.CancelAt(now)
		res.RetryAfter = delay
		return res, nil
	}

	res.Allowed = true
	res.Remaining = int(math.Max(0, math.Floor(v.limiter.TokensAt(now))))
	return res, nil
}

// Cleanup 清理长时间没有请求的客户端,返回清理数量
func (m *MemoryLimiter) Cleanup() int {
	now := m.now()

	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for key, v := range m.visitors {
		if now.Sub(v.lastSeen) > m.idle {
			delete(m.visitors, key)
			removed++
		}
	}
	return removed
}

// Run 定期清理,直到ctx取消
func (m *MemoryLimiter) Run(ctx context.Context) {
	ticker := time.NewTicker(m.idle)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Cleanup()
		}
	}
}
