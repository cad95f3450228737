package book

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"github.com/BinarniyKot/book-library-api/internal/domain/book"
	"github.com/BinarniyKot/book-library-api/pkg/tracing"
)

// ListBooksUseCase 图书列表查询用例
// 设计说明:
// 1. 参数已由HTTP层校验(per_page范围、search长度)
// 2. per_page未提供时由仓储使用配置的默认值
type ListBooksUseCase struct {
	repo book.Repository
}

// NewListBooksUseCase 创建列表查询用例
func NewListBooksUseCase(repo book.Repository) *ListBooksUseCase {
	return &ListBooksUseCase{repo: repo}
}

// ListBooksRequest 列表查询请求
type ListBooksRequest struct {
	Search  string // 搜索关键词(标题、作者、类型)
	PerPage int    // 每页数量,0表示使用默认值
	Page    int    // 页码(从1开始)
}

// Execute 执行列表查询
func (uc *ListBooksUseCase) Execute(ctx context.Context, req ListBooksRequest) (*book.Page, error) {
	ctx, span := tracing.StartSpan(ctx, "books.list",
		attribute.String("books.search", req.Search),
		attribute.Int("books.per_page", req.PerPage),
		attribute.Int("books.page", req.Page),
	)
	defer span.End()

	page, err := uc.repo.Paginate(ctx, book.ListParams{
		Search:  req.Search,
		PerPage: req.PerPage,
		Page:    req.Page,
	})
	if err != nil {
		tracing.RecordError(span, err)
		return nil, err
	}

	span.SetAttributes(attribute.Int64("books.total", page.Total))
	return page, nil
}
