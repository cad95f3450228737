package book

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout 出版日期的存储与传输格式
const DateLayout = "2006-01-02"

// Book 图书实体
// 设计说明:
// 1. 价格使用decimal定点数(避免浮点数精度问题),小数位数由配置决定
// 2. 出版日期只保留日期部分(UTC零点)
// 3. CreatedAt/UpdatedAt由持久化层维护
type Book struct {
	ID              uint
	Title           string
	Publisher       string
	Author          string
	Genre           string
	PublicationDate time.Time
	WordsCount      uint
	PriceUSD        decimal.Decimal
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// NewBook 由完整的属性集合创建图书(工厂方法)
// 业务规则:创建时七个字段都必须提供
func NewBook(attrs Attributes) (*Book, error) {
	if missing := attrs.Missing(); len(missing) > 0 {
		return nil, incompleteAttributes(missing)
	}

	b := &Book{}
	attrs.ApplyTo(b)
	return b, nil
}

// ParseDate 解析出版日期(YYYY-MM-DD)
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.UTC)
}

// normalizeDate 只保留日期部分,避免时区导致的比较偏差
func normalizeDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
