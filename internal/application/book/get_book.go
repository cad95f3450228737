package book

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"github.com/BinarniyKot/book-library-api/internal/domain/book"
	"github.com/BinarniyKot/book-library-api/pkg/tracing"
)

// GetBookUseCase 按ID查询图书
// HTTP层的路由绑定中间件用它把:book参数解析为实体
type GetBookUseCase struct {
	repo book.Repository
}

func NewGetBookUseCase(repo book.Repository) *GetBookUseCase {
	return &GetBookUseCase{repo: repo}
}

// Execute 不存在时返回book.ErrBookNotFound
func (uc *GetBookUseCase) Execute(ctx context.Context, id uint) (*book.Book, error) {
	ctx, span := tracing.StartSpan(ctx, "books.find", attribute.Int("book.id", int(id)))
	defer span.End()

	b, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		tracing.RecordError(span, err)
		return nil, err
	}
	return b, nil
}
