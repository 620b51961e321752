package projection

import (
	"encoding/json"
	"math"
	"strconv"

	"github.com/shopspring/decimal"

	"nexora_backend/internal/feature/reports/domain/entity"
)

// NA is the placeholder shown for any missing leaf value.
// It is a display sentinel; consumers must not read it as zero.
const NA = "N/A"

var hundred = decimal.NewFromInt(100)

// Text returns s, or NA when s is empty.
func Text(s string) string {
	if s == "" {
		return NA
	}
	return s
}

// firstText returns the first non-empty value, or NA.
func firstText(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return NA
}

// Number is a numeric row value that renders as NA when absent.
// Zero is a present value.
type Number struct {
	value float64
	valid bool
}

// NumberOf wraps an optional float. Nil, NaN and infinities are absent.
func NumberOf(p *float64) Number {
	if p == nil || math.IsNaN(*p) || math.IsInf(*p, 0) {
		return Number{}
	}
	return Number{value: *p, valid: true}
}

// Value returns the number and whether it is present.
func (n Number) Value() (float64, bool) { return n.value, n.valid }

func (n Number) String() string {
	if !n.valid {
		return NA
	}
	return strconv.FormatFloat(n.value, 'f', -1, 64)
}

// MarshalJSON encodes a present number as a JSON number and an absent one as "N/A".
func (n Number) MarshalJSON() ([]byte, error) {
	if !n.valid {
		return json.Marshal(NA)
	}
	return json.Marshal(n.value)
}

// FormatRatio renders a fraction as a percentage with the given number of
// decimals, e.g. FormatRatio(0.1234, 2) == "12.34%". Nil renders as NA.
func FormatRatio(ratio *float64, decimals int32) string {
	if ratio == nil || math.IsNaN(*ratio) || math.IsInf(*ratio, 0) {
		return NA
	}
	return decimal.NewFromFloat(*ratio).Mul(hundred).StringFixed(decimals) + "%"
}

// The accessors below navigate optional structs and return a zero value when
// any link is missing, so every leaf defaults on its own.

func about(c entity.Company) entity.About {
	if c.Firmographics == nil || c.Firmographics.About == nil {
		return entity.About{}
	}
	return *c.Firmographics.About
}

func location(c entity.Company) entity.Location {
	if c.Firmographics == nil || c.Firmographics.Location == nil {
		return entity.Location{}
	}
	return *c.Firmographics.Location
}

func finance(c entity.Company) entity.Finance {
	if c.FinancialData == nil || c.FinancialData.Finance == nil {
		return entity.Finance{}
	}
	return *c.FinancialData.Finance
}

func dividend(c entity.Company) entity.Dividend {
	if c.FinancialData == nil || c.FinancialData.Dividend == nil {
		return entity.Dividend{}
	}
	return *c.FinancialData.Dividend
}

func firstBar(bars []entity.Bar) entity.Bar {
	if len(bars) == 0 {
		return entity.Bar{}
	}
	return bars[0]
}
