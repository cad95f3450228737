package book

import (
	"time"

	"github.com/shopspring/decimal"
)

// 可批量赋值的字段(列名)
const (
	FieldTitle           = "title"
	FieldPublisher       = "publisher"
	FieldAuthor          = "author"
	FieldGenre           = "genre"
	FieldPublicationDate = "publication_date"
	FieldWordsCount      = "words_count"
	FieldPriceUSD        = "price_usd"
)

// Fillable 按声明顺序列出所有可批量赋值字段
var Fillable = []string{
	FieldTitle,
	FieldPublisher,
	FieldAuthor,
	FieldGenre,
	FieldPublicationDate,
	FieldWordsCount,
	FieldPriceUSD,
}

// Attributes 图书属性集合
// nil 表示调用方没有提供该字段:创建时视为缺失,更新时保持原值不变
type Attributes struct {
	Title           *string
	Publisher       *string
	Author          *string
	Genre           *string
	PublicationDate *time.Time
	WordsCount      *uint
	PriceUSD        *decimal.Decimal
}

// Missing 返回未提供的字段
func (a Attributes) Missing() []string {
	var missing []string
	present := a.present()
	for _, f := range Fillable {
		if !present[f] {
			missing = append(missing, f)
		}
	}
	return missing
}

// Empty 是否一个字段都没有提供
func (a Attributes) Empty() bool {
	return len(a.Missing()) == len(Fillable)
}

func (a Attributes) present() map[string]bool {
	return map[string]bool{
		FieldTitle:           a.Title != nil,
		FieldPublisher:       a.Publisher != nil,
		FieldAuthor:          a.Author != nil,
		FieldGenre:           a.Genre != nil,
		FieldPublicationDate: a.PublicationDate != nil,
		FieldWordsCount:      a.WordsCount != nil,
		FieldPriceUSD:        a.PriceUSD != nil,
	}
}

// RoundPrice 按小数位数对价格四舍五入
func (a Attributes) RoundPrice(places int) Attributes {
	if a.PriceUSD != nil {
		p := a.PriceUSD.Round(int32(places))
		a.PriceUSD = &p
	}
	return a
}

// Changes 计算与当前实体不同的字段,键为列名
// 与原值相同的字段不会出现在结果中
func (a Attributes) Changes(b *Book) map[string]interface{} {
	changes := make(map[string]interface{})

	if a.Title != nil && *a.Title != b.Title {
		changes[FieldTitle] = *a.Title
	}
	if a.Publisher != nil && *a.Publisher != b.Publisher {
		changes[FieldPublisher] = *a.Publisher
	}
	if a.Author != nil && *a.Author != b.Author {
		changes[FieldAuthor] = *a.Author
	}
	if a.Genre != nil && *a.Genre != b.Genre {
		changes[FieldGenre] = *a.Genre
	}
	if a.PublicationDate != nil {
		if d := normalizeDate(*a.PublicationDate); !d.Equal(normalizeDate(b.PublicationDate)) {
			changes[FieldPublicationDate] = d
		}
	}
	if a.WordsCount != nil && *a.WordsCount != b.WordsCount {
		changes[FieldWordsCount] = *a.WordsCount
	}
	if a.PriceUSD != nil && !a.PriceUSD.Equal(b.PriceUSD) {
		changes[FieldPriceUSD] = *a.PriceUSD
	}

	return changes
}

// ApplyTo 将已提供的字段写入实体
func (a Attributes) ApplyTo(b *Book) {
	if a.Title != nil {
		b.Title = *a.Title
	}
	if a.Publisher != nil {
		b.Publisher = *a.Publisher
	}
	if a.Author != nil {
		b.Author = *a.Author
	}
	if a.Genre != nil {
		b.Genre = *a.Genre
	}
	if a.PublicationDate != nil {
		b.PublicationDate = normalizeDate(*a.PublicationDate)
	}
	if a.WordsCount != nil {
		b.WordsCount = *a.WordsCount
	}
	if a.PriceUSD != nil {
		b.PriceUSD = *a.PriceUSD
	}
}
