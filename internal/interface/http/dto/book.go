package dto

import (
	"time"

	"github.com/BinarniyKot/book-library-api/internal/domain/book"
	"github.com/BinarniyKot/book-library-api/pkg/response"
)

// BookRequest 创建/更新图书的请求体(仅用于API文档)
// 实际校验见 request.BookValidator:创建时全部必填,更新时只校验出现的字段
type BookRequest struct {
	Title           string `json:"title" example:"Dune"`
	Publisher       string `json:"publisher" example:"Chilton Books"`
	Author          string `json:"author" example:"Frank Herbert"`
	Genre           string `json:"genre" example:"Science"`
	PublicationDate string `json:"publication_date" example:"1965-08-01"`
	WordsCount      uint   `json:"words_count" example:"188000"`
	PriceUSD        string `json:"price_usd" example:"9.99"`
}

// BookResponse HTTP图书响应
type BookResponse struct {
	ID              uint   `json:"id" example:"1"`
	Title           string `json:"title" example:"Dune"`
	Publisher       string `json:"publisher" example:"Chilton Books"`
	Author          string `json:"author" example:"Frank Herbert"`
	Genre           string `json:"genre" example:"Science"`
	PublicationDate string `json:"publication_date" example:"1965-08-01"`
	WordsCount      uint   `json:"words_count" example:"188000"`
	PriceUSD        string `json:"price_usd" example:"9.99"` // 按配置的小数位输出,避免浮点误差
	CreatedAt       string `json:"created_at" example:"2024-01-15T10:30:00Z"`
	UpdatedAt       string `json:"updated_at" example:"2024-01-15T10:30:00Z"`
}

// NewBookResponse 领域实体 → 响应DTO
// places为价格小数位(books.price_decimal_precision)
func NewBookResponse(b *book.Book, places int) *BookResponse {
	return &BookResponse{
		ID:              b.ID,
		Title:           b.Title,
		Publisher:       b.Publisher,
		Author:          b.Author,
		Genre:           b.Genre,
		PublicationDate: b.PublicationDate.Format(book.DateLayout),
		WordsCount:      b.WordsCount,
		PriceUSD:        b.PriceUSD.StringFixed(int32(places)),
		CreatedAt:       formatTimestamp(b.CreatedAt),
		UpdatedAt:       formatTimestamp(b.UpdatedAt),
	}
}

// NewBookCollection 列表转换,空列表输出[]而不是null
func NewBookCollection(books []*book.Book, places int) []*BookResponse {
	out := make([]*BookResponse, 0, len(books))
	for _, b := range books {
		out = append(out, NewBookResponse(b, places))
	}
	return out
}

// NewPageInfo 分页结果 → 分页器输入
func NewPageInfo(page *book.Page, places int) response.PageInfo {
	return response.PageInfo{
		Items:   NewBookCollection(page.Items, places),
		Count:   len(page.Items),
		Total:   page.Total,
		Page:    page.Page,
		PerPage: page.PerPage,
	}
}

func formatTimestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

// BookEnvelope 单个图书响应(仅用于API文档)
type BookEnvelope struct {
	Data BookResponse `json:"data"`
}

// BookPage 图书分页响应(仅用于API文档)
type BookPage struct {
	CurrentPage  int             `json:"current_page" example:"1"`
	Data         []BookResponse  `json:"data"`
	FirstPageURL string          `json:"first_page_url" example:"http://localhost:8080/api/books?page=1"`
	From         *int            `json:"from" example:"1"`
	LastPage     int             `json:"last_page" example:"4"`
	LastPageURL  string          `json:"last_page_url" example:"http://localhost:8080/api/books?page=4"`
	Links        []response.Link `json:"links"`
	NextPageURL  *string         `json:"next_page_url" example:"http://localhost:8080/api/books?page=2"`
	Path         string          `json:"path" example:"http://localhost:8080/api/books"`
	PerPage      int             `json:"per_page" example:"15"`
	PrevPageURL  *string         `json:"prev_page_url"`
	To           *int            `json:"to" example:"15"`
	Total        int64           `json:"total" example:"50"`
}
