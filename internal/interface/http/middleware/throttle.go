package middleware

import (
	"math"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/BinarniyKot/book-library-api/internal/infrastructure/ratelimit"
	apperrors "github.com/BinarniyKot/book-library-api/pkg/errors"
	"github.com/BinarniyKot/book-library-api/pkg/metrics"
	"github.com/BinarniyKot/book-library-api/pkg/response"
)

// 限流响应头
const (
	HeaderRateLimitLimit     = "X-RateLimit-Limit"
	HeaderRateLimitRemaining = "X-RateLimit-Remaining"
	HeaderRateLimitReset     = "X-RateLimit-Reset"
	HeaderRetryAfter         = "Retry-After"
)

// Throttle 按客户端IP限流
// 每个响应都带上限额和剩余次数;超限返回429和Retry-After(秒)
// 限流器本身出错时放行请求,只记录日志
func Throttle(limiter ratelimit.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		res, err := limiter.Allow(c.Request.Context(), c.ClientIP())
		if err != nil {
			zerolog.Ctx(c.Request.Context()).Warn().Err(err).Msg("限流器不可用,放行请求")
			c.Next()
			return
		}

		c.Header(HeaderRateLimitLimit, strconv.Itoa(res.Limit))
		c.Header(HeaderRateLimitRemaining, strconv.Itoa(res.Remaining))

		if !res.Allowed {
			seconds := int(math.Ceil(res.RetryAfter.Seconds()))
			if seconds < 1 {
				seconds = 1
			}
			c.Header(HeaderRetryAfter, strconv.Itoa(seconds))
			c.Header(HeaderRateLimitReset, strconv.FormatInt(time.Now().Add(time.Duration(seconds)*time.Second).Unix(), 10))

			metrics.RecordRateLimitRejection()
			response.Error(c, apperrors.ErrTooManyRequests)
			return
		}

		c.Next()
	}
}
