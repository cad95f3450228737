// Package circuitbreaker 熔断器
//
// 用于保护对外部存储(Redis)的调用：连续失败达到阈值后打开，
// 打开期间直接返回ErrOpenState，调用方立即走降级逻辑而不是等待超时。
// 超时后进入半开状态放行少量探测请求，探测成功则关闭。
package circuitbreaker

import (
	"errors"
	"sync"
	"time"
)

// State 熔断器状态
type State int

const (
	StateClosed   State = iota // 正常放行，统计失败次数
	StateOpen                  // 熔断，直接失败
	StateHalfOpen              // 探测，放行有限个请求
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half_open"
	default:
		return "unknown"
	}
}

// ErrOpenState 熔断器打开(或半开探测名额已满)
var ErrOpenState = errors.New("circuit breaker is open")

// Settings 熔断器配置
type Settings struct {
	// MaxFailures 连续失败多少次后打开
	MaxFailures uint32
	// Timeout 打开状态持续时间，之后转为半开
	Timeout time.Duration
	// HalfOpenRequests 半开状态允许的探测请求数
	HalfOpenRequests uint32
	// OnStateChange 状态变化回调，在持有锁时调用，不能再调用熔断器方法
	OnStateChange func(from, to State)
}

// Breaker 连续失败计数的熔断器，并发安全
type Breaker struct {
	settings Settings
	now      func() time.Time

	mu          sync.Mutex
	state       State
	generation  uint64 // 每次状态切换递增，丢弃切换前发出的请求结果
	failures    uint32 // 关闭状态下的连续失败数
	inFlight    uint32 // 半开状态下已放行的探测数
	openedUntil time.Time
}

// New 创建熔断器，未设置的字段使用默认值(5次失败，30秒，1个探测)
func New(settings Settings) *Breaker {
	if settings.MaxFailures == 0 {
		settings.MaxFailures = 5
	}
	if settings.Timeout <= 0 {
		settings.Timeout = 30 * time.Second
	}
	if settings.HalfOpenRequests == 0 {
		settings.HalfOpenRequests = 1
	}
	return &Breaker{settings: settings, now: time.Now}
}

// Execute 在熔断器保护下执行fn
// 熔断时不调用fn，返回ErrOpenState；否则返回fn的错误并记录结果
func (b *Breaker) Execute(fn func() error) error {
	generation, err := b.before()
	if err != nil {
		return err
	}

	err = fn()
	b.after(generation, err == nil)
	return err
}

// State 当前状态
func (b *Breaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.current(b.now())
}

func (b *Breaker) before() (uint64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.current(b.now()) {
	case StateOpen:
		return b.generation, ErrOpenState
	case StateHalfOpen:
		if b.inFlight >= b.settings.HalfOpenRequests {
			return b.generation, ErrOpenState
		}
		b.inFlight++
	}
	return b.generation, nil
}

func (b *Breaker) after(generation uint64, success bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := b.now()
	state := b.current(now)
	if generation != b.generation {
		return
	}

	switch {
	case success && state == StateHalfOpen:
		b.setState(StateClosed, now)
	case success:
		b.failures = 0
	case state == StateHalfOpen:
		b.setState(StateOpen, now)
	default:
		b.failures++
		if b.failures >= b.settings.MaxFailures {
			b.setState(StateOpen, now)
		}
	}
}

// current 打开超时后转为半开，调用方需持有锁
func (b *Breaker) current(now time.Time) State {
	if b.state == StateOpen && !now.Before(b.openedUntil) {
		b.setState(StateHalfOpen, now)
	}
	return b.state
}

func (b *Breaker) setState(state State, now time.Time) {
	if b.state == state {
		return
	}

	prev := b.state
	b.state = state
	b.generation++
	b.failures = 0
	b.inFlight = 0
	if state == StateOpen {
		b.openedUntil = now.Add(b.settings.Timeout)
	}

	if b.settings.OnStateChange != nil {
		b.settings.OnStateChange(prev, state)
	}
}
