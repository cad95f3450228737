package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"

	appbook "github.com/BinarniyKot/book-library-api/internal/application/book"
	"github.com/BinarniyKot/book-library-api/internal/domain/book"
	"github.com/BinarniyKot/book-library-api/pkg/response"
)

const (
	// BookParam 路由参数名,如 /api/books/:book
	BookParam = "book"

	bookKey = "book"
)

// BindBook 路由模型绑定:把:book参数解析为图书实体
// 1. 非数字ID与不存在的ID一样返回404
// 2. 查询失败(数据库错误)返回500
// 3. 成功后实体写入Context,Handler通过MustGetBook读取
func BindBook(getBook *appbook.GetBookUseCase) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param(BookParam), 10, 64)
		if err != nil || id == 0 {
			response.Error(c, book.ErrBookNotFound)
			return
		}

		b, err := getBook.Execute(c.Request.Context(), uint(id))
		if err != nil {
			response.Error(c, err)
			return
		}

		c.Set(bookKey, b)
		c.Next()
	}
}

// GetBook 从Context获取已绑定的图书
func GetBook(c *gin.Context) (*book.Book, bool) {
	v, exists := c.Get(bookKey)
	if !exists {
		return nil, false
	}
	b, ok := v.(*book.Book)
	return b, ok
}

// MustGetBook 从Context获取图书(不存在则panic)
// 说明:用于已经通过BindBook中间件的Handler
func MustGetBook(c *gin.Context) *book.Book {
	b, ok := GetBook(c)
	if !ok {
		panic("book not found in context")
	}
	return b
}
