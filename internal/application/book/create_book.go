package book

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"github.com/BinarniyKot/book-library-api/internal/domain/book"
	"github.com/BinarniyKot/book-library-api/pkg/metrics"
	"github.com/BinarniyKot/book-library-api/pkg/tracing"
)

// CreateBookUseCase 创建图书用例
type CreateBookUseCase struct {
	repo book.Repository
}

// NewCreateBookUseCase 创建用例
func NewCreateBookUseCase(repo book.Repository) *CreateBookUseCase {
	return &CreateBookUseCase{repo: repo}
}

// Execute 创建图书,attrs必须包含全部字段(已由HTTP层校验)
func (uc *CreateBookUseCase) Execute(ctx context.Context, attrs book.Attributes) (*book.Book, error) {
	ctx, span := tracing.StartSpan(ctx, "books.create")
	defer span.End()

	b, err := uc.repo.Create(ctx, attrs)
	if err != nil {
		tracing.RecordError(span, err)
		return nil, err
	}

	span.SetAttributes(attribute.Int("book.id", int(b.ID)))
	metrics.RecordBookMutation(metrics.OperationCreate)
	return b, nil
}
