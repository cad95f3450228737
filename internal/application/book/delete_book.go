package book

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"github.com/BinarniyKot/book-library-api/internal/domain/book"
	"github.com/BinarniyKot/book-library-api/pkg/metrics"
	"github.com/BinarniyKot/book-library-api/pkg/tracing"
)

// DeleteBookUseCase 删除图书(物理删除)
type DeleteBookUseCase struct {
	repo book.Repository
}

func NewDeleteBookUseCase(repo book.Repository) *DeleteBookUseCase {
	return &DeleteBookUseCase{repo: repo}
}

// Execute 删除图书
// 并发删除时行可能已经不存在,此时不算错误,调用方仍返回204
func (uc *DeleteBookUseCase) Execute(ctx context.Context, b *book.Book) error {
	ctx, span := tracing.StartSpan(ctx, "books.delete", attribute.Int("book.id", int(b.ID)))
	defer span.End()

	deleted, err := uc.repo.Delete(ctx, b)
	if err != nil {
		tracing.RecordError(span, err)
		return err
	}

	if deleted {
		metrics.RecordBookMutation(metrics.OperationDelete)
	}
	return nil
}
