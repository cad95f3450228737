package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	apperrors "github.com/BinarniyKot/book-library-api/pkg/errors"
)

// windowScript 固定窗口计数:第一次INCR时设置过期时间,返回当前计数和剩余毫秒
var windowScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return {current, redis.call("PTTL", KEYS[1])}
`)

// WindowCounter 基于Redis的固定窗口计数器
// Key设计:{prefix}:{identity}
// 多个API实例共享同一个计数,适合水平扩容部署
type WindowCounter struct {
	client *redis.Client
	prefix string
}

// NewWindowCounter 创建计数器
func NewWindowCounter(client *redis.Client, prefix string) *WindowCounter {
	return &WindowCounter{client: client, prefix: prefix}
}

// Hit 计数加一,返回窗口内的累计次数和窗口剩余时间
func (c *WindowCounter) Hit(ctx context.Context, identity string, window time.Duration) (int64, time.Duration, error) {
	key := fmt.Sprintf("%s:%s", c.prefix, identity)

	values, err := windowScript.Run(ctx, c.client, []string{key}, window.Milliseconds()).Int64Slice()
	if err != nil {
		return 0, 0, apperrors.WithCode(err, apperrors.ErrCodeRedisError, "限流计数失败")
	}
	if len(values) != 2 {
		return 0, 0, apperrors.New(apperrors.ErrCodeRedisError, "限流计数返回值异常")
	}

	ttl := time.Duration(values[1]) * time.Millisecond
	if ttl < 0 {
		ttl = window
	}
	return values[0], ttl, nil
}
