package book

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/shopspring/decimal"
)

var factoryGenres = []string{"Fiction", "Non-Fiction", "Science", "History", "Biography", "Romance"}

var factoryWords = []string{
	"silent", "river", "empire", "garden", "shadow", "winter", "glass", "harbor",
	"letters", "machine", "orchard", "north", "memory", "paper", "storm", "kingdom",
}

var factoryNames = []string{
	"Ada Lane", "Tomas Reyes", "Mira Okafor", "Jon Halvorsen", "Lena Fischer",
	"Priya Natarajan", "Samuel Ortiz", "Yuki Tanaka", "Noor Haddad", "Elena Petrova",
}

var factoryPublishers = []string{
	"Northwind Press", "Blue Harbor Books", "Granite House", "Lantern Publishing", "Meridian & Co",
}

// Factory 生成随机但合法的图书属性,用于填充测试数据和cmd/seed
// 取值范围:字数10000~200000,价格5~50美元,出版日期在最近50年内
type Factory struct {
	rnd *rand.Rand
}

// NewFactory 创建图书工厂,相同seed生成相同序列
func NewFactory(seed uint64) *Factory {
	return &Factory{rnd: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Make 生成一组完整的图书属性
func (f *Factory) Make() Attributes {
	title := fmt.Sprintf("The %s %s", f.pick(factoryWords), f.pick(factoryWords))
	publisher := f.pick(factoryPublishers)
	author := f.pick(factoryNames)
	genre := f.pick(factoryGenres)

	days := f.rnd.IntN(50 * 365)
	published := normalizeDate(time.Now().UTC().AddDate(0, 0, -days))

	words := uint(10000 + f.rnd.IntN(190001))
	price := decimal.New(int64(500+f.rnd.IntN(4501)), -2)

	return Attributes{
		Title:           &title,
		Publisher:       &publisher,
		Author:          &author,
		Genre:           &genre,
		PublicationDate: &published,
		WordsCount:      &words,
		PriceUSD:        &price,
	}
}

func (f *Factory) pick(values []string) string {
	return values[f.rnd.IntN(len(values))]
}
