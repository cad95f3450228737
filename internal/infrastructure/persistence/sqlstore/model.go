package sqlstore

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/BinarniyKot/book-library-api/internal/domain/book"
)

// BookModel GORM图书模型
// 设计说明:
// 1. 这是infrastructure层的数据模型,包含GORM tag
// 2. domain/book/entity.go是领域实体,不依赖GORM
// 3. 字符串长度和price_usd的小数位在Migrate中按配置调整
// 4. created_at带索引,列表默认按它倒序
type BookModel struct {
	ID              uint            `gorm:"primaryKey"`
	Title           string          `gorm:"size:255;not null;comment:书名"`
	Publisher       string          `gorm:"size:255;not null;comment:出版社"`
	Author          string          `gorm:"size:255;not null;comment:作者"`
	Genre           string          `gorm:"size:255;not null;comment:类型"`
	PublicationDate time.Time       `gorm:"type:date;not null;comment:出版日期"`
	WordsCount      uint            `gorm:"size:32;not null;comment:字数"`
	PriceUSD        decimal.Decimal `gorm:"column:price_usd;type:decimal(10,2);not null;comment:价格(美元)"`
	CreatedAt       time.Time       `gorm:"index;comment:创建时间"`
	UpdatedAt       time.Time       `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (BookModel) TableName() string {
	return "books"
}

// toBookEntity GORM模型 → 领域实体
func toBookEntity(m *BookModel) *book.Book {
	y, mo, d := m.PublicationDate.Date()
	return &book.Book{
		ID:              m.ID,
		Title:           m.Title,
		Publisher:       m.Publisher,
		Author:          m.Author,
		Genre:           m.Genre,
		PublicationDate: time.Date(y, mo, d, 0, 0, 0, 0, time.UTC),
		WordsCount:      m.WordsCount,
		PriceUSD:        m.PriceUSD,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

// toBookModel 领域实体 → GORM模型
func toBookModel(b *book.Book) *BookModel {
	return &BookModel{
		ID:              b.ID,
		Title:           b.Title,
		Publisher:       b.Publisher,
		Author:          b.Author,
		Genre:           b.Genre,
		PublicationDate: b.PublicationDate,
		WordsCount:      b.WordsCount,
		PriceUSD:        b.PriceUSD,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
}
