package request

import (
	"errors"
	"net/url"
	"strconv"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/shopspring/decimal"

	"github.com/BinarniyKot/book-library-api/internal/domain/book"
	"github.com/BinarniyKot/book-library-api/internal/infrastructure/config"
	"github.com/BinarniyKot/book-library-api/pkg/response"
)

// 列表查询参数名
const (
	ParamSearch  = "search"
	ParamPerPage = "per_page"
	ParamPage    = "page"
)

// BookValidator 图书请求校验
// 设计说明:
// 1. 一张基础规则表(类型、长度、范围),store在前面加必填,update只校验出现的字段
// 2. 校验通过后转换为domain层的Attributes,不在规则表里的字段被忽略
// 3. 错误信息按字段返回,顺序与Fillable一致
type BookValidator struct {
	maxStringLength int
	maxPerPage      int
	pricePlaces     int
}

// NewBookValidator 创建校验器,限制值来自books配置
func NewBookValidator(cfg *config.Config) *BookValidator {
	return &BookValidator{
		maxStringLength: cfg.Books.MaxStringLength,
		maxPerPage:      cfg.Books.MaxPerPage,
		pricePlaces:     cfg.Books.PriceDecimalPrecision,
	}
}

// attributeRules 基础规则(不含required)
func (v *BookValidator) attributeRules(field string) []validation.Rule {
	switch field {
	case book.FieldTitle, book.FieldPublisher, book.FieldAuthor, book.FieldGenre:
		return []validation.Rule{isString(field), maxLength(field, v.maxStringLength)}
	case book.FieldPublicationDate:
		return []validation.Rule{isDate(field)}
	case book.FieldWordsCount:
		return []validation.Rule{integerBetween(field, 0, maxWordsCount)}
	case book.FieldPriceUSD:
		return []validation.Rule{numericBetween(field, decimal.Zero, maxPrice(v.pricePlaces))}
	}
	return nil
}

// Store 创建图书:全部字段必填
func (v *BookValidator) Store(body map[string]interface{}) (book.Attributes, []response.FieldError) {
	return v.validate(body, true)
}

// Update 更新图书:只校验出现的字段("sometimes")
func (v *BookValidator) Update(body map[string]interface{}) (book.Attributes, []response.FieldError) {
	return v.validate(body, false)
}

func (v *BookValidator) validate(body map[string]interface{}, store bool) (book.Attributes, []response.FieldError) {
	var (
		attrs book.Attributes
		errs  []response.FieldError
	)

	for _, field := range book.Fillable {
		raw, present := body[field]
		if !present && !store {
			continue
		}
		value := normalize(raw)

		rules := v.attributeRules(field)
		// update时出现但为空的字段由类型规则报错
		if store {
			rules = append([]validation.Rule{required(field)}, rules...)
		}

		if err := validation.Validate(value, rules...); err != nil {
			errs = append(errs, response.FieldError{Field: field, Messages: []string{messageOf(err)}})
			continue
		}
		assign(&attrs, field, value)
	}

	return attrs, errs
}

// assign 把已通过校验的值写入Attributes
func assign(attrs *book.Attributes, field string, value interface{}) {
	switch field {
	case book.FieldTitle:
		s := value.(string)
		attrs.Title = &s
	case book.FieldPublisher:
		s := value.(string)
		attrs.Publisher = &s
	case book.FieldAuthor:
		s := value.(string)
		attrs.Author = &s
	case book.FieldGenre:
		s := value.(string)
		attrs.Genre = &s
	case book.FieldPublicationDate:
		d, _ := parseDate(value)
		attrs.PublicationDate = &d
	case book.FieldWordsCount:
		n, _ := parseInteger(value)
		words := uint(n)
		attrs.WordsCount = &words
	case book.FieldPriceUSD:
		d, _ := parseNumeric(value)
		attrs.PriceUSD = &d
	}
}

// ListQuery 已校验的列表查询参数
type ListQuery struct {
	Search  string
	PerPage int // 0表示未提供
	Page    int
}

// Index 校验列表查询参数
// page不合法时按第1页处理,不报错
func (v *BookValidator) Index(query url.Values) (ListQuery, []response.FieldError) {
	var (
		q    ListQuery
		errs []response.FieldError
	)

	if search := normalize(query.Get(ParamSearch)); search != nil {
		if err := validation.Validate(search, maxLength(ParamSearch, v.maxStringLength)); err != nil {
			errs = append(errs, response.FieldError{Field: ParamSearch, Messages: []string{messageOf(err)}})
		} else {
			q.Search = search.(string)
		}
	}

	if perPage := normalize(query.Get(ParamPerPage)); perPage != nil {
		if err := validation.Validate(perPage, integerBetween(ParamPerPage, 1, int64(v.maxPerPage))); err != nil {
			errs = append(errs, response.FieldError{Field: ParamPerPage, Messages: []string{messageOf(err)}})
		} else {
			n, _ := parseInteger(perPage)
			q.PerPage = int(n)
		}
	}

	q.Page = 1
	if page, err := strconv.Atoi(strings.TrimSpace(query.Get(ParamPage))); err == nil && page > 1 {
		q.Page = page
	}

	return q, errs
}

func messageOf(err error) string {
	var verr validation.Error
	if errors.As(err, &verr) {
		return verr.Message()
	}
	return err.Error()
}
