package book

import (
	"fmt"
	"strings"

	apperrors "github.com/BinarniyKot/book-library-api/pkg/errors"
)

// 图书领域错误定义
var (
	// ErrBookNotFound 图书不存在
	ErrBookNotFound = apperrors.New(apperrors.ErrCodeBookNotFound, "Book not found.")
)

// incompleteAttributes 创建图书时缺少必填字段
func incompleteAttributes(missing []string) error {
	return apperrors.New(apperrors.ErrCodeValidation,
		fmt.Sprintf("Missing book attributes: %s.", strings.Join(missing, ", ")))
}
