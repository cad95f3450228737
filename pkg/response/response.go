package response

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	apperrors "github.com/BinarniyKot/book-library-api/pkg/errors"
)

// Envelope 成功响应结构
// 设计说明:
// 1. 单个资源和创建结果都包在data里
// 2. 分页列表直接返回分页器结构(见paginator.go),数据同样在data字段
type Envelope struct {
	Data interface{} `json:"data"`
}

// ErrorBody 错误响应结构
// Errors只在参数校验失败(422)时出现,键为字段名
type ErrorBody struct {
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors,omitempty"`
}

// Success 200 {"data": ...}
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Envelope{Data: data})
}

// Created 201 {"data": ...}
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Envelope{Data: data})
}

// NoContent 204,无响应体
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
	c.Writer.WriteHeaderNow()
}

// FieldError 单个字段的校验错误
type FieldError struct {
	Field    string
	Messages []string
}

// ValidationFailed 422,按字段返回全部错误信息
// message取第一个字段的第一条错误,多于一条时追加剩余数量
func ValidationFailed(c *gin.Context, errs []FieldError) {
	body := ErrorBody{
		Message: validationSummary(errs),
		Errors:  make(map[string][]string, len(errs)),
	}
	for _, e := range errs {
		body.Errors[e.Field] = append(body.Errors[e.Field], e.Messages...)
	}
	c.AbortWithStatusJSON(http.StatusUnprocessableEntity, body)
}

// Error 错误响应(自动处理AppError)
// 用法:
//
//	b, err := h.getBook.Execute(ctx, id)
//	if err != nil {
//	    response.Error(c, err)
//	    return
//	}
func Error(c *gin.Context, err error) {
	appErr := apperrors.GetAppError(err)
	status := appErr.HTTPStatus()

	// 内部错误只记录日志,不返回给客户端
	message := appErr.Message
	if status >= http.StatusInternalServerError {
		zerolog.Ctx(c.Request.Context()).Error().
			Err(err).
			Int("code", appErr.Code).
			Str("path", c.FullPath()).
			Msg("请求处理失败")
		message = apperrors.ErrInternal.Message
	}

	_ = c.Error(err)
	c.AbortWithStatusJSON(status, ErrorBody{Message: message})
}

func validationSummary(errs []FieldError) string {
	total := 0
	first := ""
	for _, e := range errs {
		if first == "" && len(e.Messages) > 0 {
			first = e.Messages[0]
		}
		total += len(e.Messages)
	}
	if first == "" {
		return apperrors.ErrValidation.Message
	}

	switch rest := total - 1; {
	case rest == 1:
		return fmt.Sprintf("%s (and 1 more error)", first)
	case rest > 1:
		return fmt.Sprintf("%s (and %d more errors)", first, rest)
	default:
		return first
	}
}
