package request

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/shopspring/decimal"

	"github.com/BinarniyKot/book-library-api/internal/domain/book"
)

// 错误码(ozzo-validation的Error.Code)
const (
	codeRequired = "validation_required"
	codeString   = "validation_string"
	codeInteger  = "validation_integer"
	codeNumeric  = "validation_numeric"
	codeDate     = "validation_date"
	codeMin      = "validation_min"
	codeMax      = "validation_max"
)

// maxWordsCount words_count列为int unsigned
const maxWordsCount = math.MaxUint32

// displayName 字段名转为提示信息中的名称(per_page → per page)
func displayName(field string) string {
	return strings.ReplaceAll(field, "_", " ")
}

func newError(code, format string, args ...interface{}) validation.Error {
	return validation.NewError(code, fmt.Sprintf(format, args...))
}

// normalize 去掉字符串首尾空白,空字符串视为未填写(nil)
func normalize(value interface{}) interface{} {
	s, ok := value.(string)
	if !ok {
		return value
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return s
}

func required(field string) validation.Rule {
	return validation.Required.Error(fmt.Sprintf("The %s field is required.", displayName(field)))
}

func isString(field string) validation.Rule {
	return validation.By(func(value interface{}) error {
		if _, ok := value.(string); !ok {
			return newError(codeString, "The %s field must be a string.", displayName(field))
		}
		return nil
	})
}

func maxLength(field string, max int) validation.Rule {
	return validation.RuneLength(0, max).
		ErrorObject(newError(codeMax, "The %s field must not be greater than %d characters.", displayName(field), max))
}

func isDate(field string) validation.Rule {
	return validation.By(func(value interface{}) error {
		if _, ok := parseDate(value); !ok {
			return newError(codeDate, "The %s field must be a valid date.", displayName(field))
		}
		return nil
	})
}

// integerBetween 整数且在[min, max]之间
func integerBetween(field string, min, max int64) validation.Rule {
	return validation.By(func(value interface{}) error {
		n, ok := parseInteger(value)
		if !ok {
			return newError(codeInteger, "The %s field must be an integer.", displayName(field))
		}
		if n < min {
			return newError(codeMin, "The %s field must be at least %d.", displayName(field), min)
		}
		if n > max {
			return newError(codeMax, "The %s field must not be greater than %d.", displayName(field), max)
		}
		return nil
	})
}

// numericBetween 数字且在[min, max]之间
func numericBetween(field string, min, max decimal.Decimal) validation.Rule {
	return validation.By(func(value interface{}) error {
		d, ok := parseNumeric(value)
		if !ok {
			return newError(codeNumeric, "The %s field must be a number.", displayName(field))
		}
		if d.LessThan(min) {
			return newError(codeMin, "The %s field must be at least %s.", displayName(field), min)
		}
		if d.GreaterThan(max) {
			return newError(codeMax, "The %s field must not be greater than %s.", displayName(field), max)
		}
		return nil
	})
}

// parseInteger 接受JSON整数或整数字符串,拒绝小数和布尔值
func parseInteger(value interface{}) (int64, bool) {
	var s string
	switch v := value.(type) {
	case json.Number:
		s = v.String()
	case string:
		s = v
	default:
		return 0, false
	}
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	return n, err == nil
}

// parseNumeric 接受JSON数字或数字字符串
func parseNumeric(value interface{}) (decimal.Decimal, bool) {
	var s string
	switch v := value.(type) {
	case json.Number:
		s = v.String()
	case string:
		s = v
	default:
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	return d, err == nil
}

// parseDate 接受YYYY-MM-DD或RFC3339时间(取日期部分)
func parseDate(value interface{}) (time.Time, bool) {
	s, ok := value.(string)
	if !ok {
		return time.Time{}, false
	}
	if t, err := book.ParseDate(s); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		y, m, d := t.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), true
	}
	return time.Time{}, false
}

// maxPrice decimal(10, places)能存储的最大值
func maxPrice(places int) decimal.Decimal {
	unit := decimal.New(1, -int32(places))
	return decimal.New(1, int32(10-places)).Sub(unit)
}
