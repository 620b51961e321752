package rowfilter

import (
	"fmt"
	"math"
	"sort"
)

// Band は (Min, Max] の範囲に名前を付けたものです。
type Band struct {
	Name string
	Min  float64
	Max  float64
}

// Contains はvが (Min, Max] に含まれるかを返します。
func (b Band) Contains(v float64) bool {
	return v > b.Min && v <= b.Max
}

// Group は1つのフィールドに対する帯域の集合です。
type Group struct {
	Field string
	Bands []Band
}

// Groups はダッシュボードの絞り込みで使う帯域の定義です。
var Groups = map[string]Group{
	"stockPerformance": {
		Field: "revenueGrowth",
		Bands: []Band{
			{Name: "High", Min: 10, Max: math.Inf(1)},
			{Name: "Medium", Min: 5, Max: 10},
			{Name: "Low", Min: math.Inf(-1), Max: 5},
		},
	},
	"buyerHolder": {
		Field: "marketCap",
		Bands: []Band{
			{Name: "Institutional", Min: 10, Max: math.Inf(1)},
			{Name: "Retail", Min: math.Inf(-1), Max: 10},
		},
	},
	"mutualFundHolders": {
		Field: "marketCap",
		Bands: []Band{
			{Name: "High", Min: 20, Max: math.Inf(1)},
			{Name: "Medium", Min: 5, Max: 20},
			{Name: "Low", Min: math.Inf(-1), Max: 5},
		},
	},
	"growth": {
		Field: "profitGrowth",
		Bands: []Band{
			{Name: "High", Min: 15, Max: math.Inf(1)},
			{Name: "Medium", Min: 8, Max: 15},
			{Name: "Low", Min: math.Inf(-1), Max: 8},
		},
	},
}

// GroupNames は定義済みの帯域グループ名を名前順で返します。
func GroupNames() []string {
	names := make([]string, 0, len(Groups))
	for n := range Groups {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// InBand はgroupのband帯域に入る行を選びます。bandが空なら常に一致します。
// フィールドが無い、空、または数値として読めない値（"N/A"など）の行は一致しません。
func InBand(group, band string) (Predicate, error) {
	if band == "" {
		return All(), nil
	}
	g, ok := Groups[group]
	if !ok {
		return nil, fmt.Errorf("unknown band group %q", group)
	}
	for _, b := range g.Bands {
		if b.Name == band {
			return fieldIn(g.Field, b), nil
		}
	}
	return nil, fmt.Errorf("unknown band %q for group %q", band, group)
}

func fieldIn(field string, b Band) Predicate {
	return func(r Row) bool {
		v, ok := r[field]
		if !ok {
			return false
		}
		var f float64
		switch x := v.(type) {
		case float64:
			f = x
		case string:
			if x == "" {
				return false
			}
			parsed, ok := ParseFloat(x)
			if !ok {
				return false
			}
			f = parsed
		default:
			return false
		}
		return b.Contains(f)
	}
}
