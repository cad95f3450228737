package middleware

import (
	"fmt"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	apperrors "github.com/BinarniyKot/book-library-api/pkg/errors"
	"github.com/BinarniyKot/book-library-api/pkg/response"
)

// Recovery 捕获panic,记录堆栈并返回500
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				zerolog.Ctx(c.Request.Context()).Error().
					Str("panic", fmt.Sprint(r)).
					Bytes("stack", debug.Stack()).
					Msg("请求处理panic")

				response.Error(c, apperrors.Wrap(fmt.Errorf("panic: %v", r), apperrors.ErrInternal.Message))
			}
		}()
		c.Next()
	}
}
