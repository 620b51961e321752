// Package rowfilter はレポート行に対する検索・絞り込み述語を提供します。
// 行はJSONオブジェクトをデコードしたmap[string]anyとして扱います。
// 結果は表示用の目安であり、集計の根拠にはしません。
package rowfilter

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Row はJSONデコード済みの1行です。
type Row = map[string]any

// Predicate は行が条件を満たすかを判定します。
type Predicate func(Row) bool

var (
	nonNumeric   = regexp.MustCompile(`[^0-9.\-]`)
	numberPrefix = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)
)

// ParseLoose は表示用の値を数値に変換します。
// 数値はそのまま、文字列は数字・小数点・マイナス以外を除去してから先頭の数値部分を読みます。
// 読めない場合は0を返します。
func ParseLoose(v any) float64 {
	switch n := v.(type) {
	case float64:
		return finite(n)
	case float32:
		return finite(float64(n))
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case string:
		f, ok := parsePrefix(nonNumeric.ReplaceAllString(n, ""))
		if !ok {
			return 0
		}
		return f
	case fmt.Stringer:
		return ParseLoose(n.String())
	default:
		return 0
	}
}

// ParseFloat は先頭の空白を除いた文字列の先頭にある数値を読みます（"12.5%" -> 12.5）。
// "N/A"のように数値で始まらない場合はfalseを返します。
func ParseFloat(s string) (float64, bool) {
	return parsePrefix(strings.TrimLeft(s, " \t\n\r"))
}

func parsePrefix(s string) (float64, bool) {
	m := numberPrefix.FindString(s)
	if m == "" {
		return 0, false
	}
	d, err := decimal.NewFromString(strings.TrimPrefix(m, "+"))
	if err != nil {
		// 指数が大きすぎる場合など
		f, perr := strconv.ParseFloat(m, 64)
		if perr != nil {
			return 0, false
		}
		return f, true
	}
	return d.InexactFloat64(), true
}

func finite(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// Search は大文字小文字を区別せず、行のいずれかの値（入れ子オブジェクトは1段まで）に
// termを含む行を選びます。空のtermはすべての行に一致します。
func Search(term string) Predicate {
	needle := strings.ToLower(term)
	return func(r Row) bool {
		if needle == "" {
			return true
		}
		for _, v := range r {
			if nested, ok := v.(map[string]any); ok {
				for _, nv := range nested {
					if strings.Contains(strings.ToLower(Format(nv)), needle) {
						return true
					}
				}
				continue
			}
			if strings.Contains(strings.ToLower(Format(v)), needle) {
				return true
			}
		}
		return false
	}
}

// Equals はfieldの表示値がvalueと完全一致する行を選びます。valueが空なら常に一致します。
func Equals(field, value string) Predicate {
	return func(r Row) bool {
		if value == "" {
			return true
		}
		v, ok := r[field]
		return ok && Format(v) == value
	}
}

// All は全述語を満たす行を選びます。
func All(preds ...Predicate) Predicate {
	return func(r Row) bool {
		for _, p := range preds {
			if p != nil && !p(r) {
				return false
			}
		}
		return true
	}
}

// Apply はpredを満たす行を順序を保って返します。
func Apply(rows []Row, pred Predicate) []Row {
	return Filter(rows, pred)
}

// Filter はkeepを満たす要素を順序を保って返します。結果は空でもnilではありません。
func Filter[T any](items []T, keep func(T) bool) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if keep == nil || keep(it) {
			out = append(out, it)
		}
	}
	return out
}

// Format は値を検索・比較用の文字列にします。
func Format(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	case map[string]any:
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		return "[object " + strings.Join(keys, ",") + "]"
	default:
		return fmt.Sprint(x)
	}
}
