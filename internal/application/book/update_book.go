package book

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"github.com/BinarniyKot/book-library-api/internal/domain/book"
	"github.com/BinarniyKot/book-library-api/pkg/metrics"
	"github.com/BinarniyKot/book-library-api/pkg/tracing"
)

// UpdateBookUseCase 部分更新图书
// 业务规则:
// 1. 只有提供的字段会被修改
// 2. 提供的值与原值相同时不写库,也不计入写操作指标
type UpdateBookUseCase struct {
	repo book.Repository
}

func NewUpdateBookUseCase(repo book.Repository) *UpdateBookUseCase {
	return &UpdateBookUseCase{repo: repo}
}

// Execute 更新b并返回最新状态
// 返回值changed表示数据是否发生变化
func (uc *UpdateBookUseCase) Execute(ctx context.Context, b *book.Book, attrs book.Attributes) (changed bool, err error) {
	ctx, span := tracing.StartSpan(ctx, "books.update", attribute.Int("book.id", int(b.ID)))
	defer span.End()

	changed, err = uc.repo.Update(ctx, b, attrs)
	if err != nil {
		tracing.RecordError(span, err)
		return false, err
	}

	span.SetAttributes(attribute.Bool("books.changed", changed))
	if changed {
		metrics.RecordBookMutation(metrics.OperationUpdate)
	}
	return changed, nil
}
