// Package export はレポート行を表・CSV・JSONとして書き出します。
package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"nexora_backend/internal/shared/rowfilter"
)

// 出力形式
const (
	FormatTable = "table"
	FormatCSV   = "csv"
	FormatJSON  = "json"
)

// Formats はサポートする出力形式です。
var Formats = []string{FormatTable, FormatCSV, FormatJSON}

type record struct {
	raw  json.RawMessage
	row  rowfilter.Row // 絞り込み用（入れ子のまま）
	flat rowfilter.Row // 表示用（parent.child に平坦化）
}

// Table はJSONフィールド順の列を持つ行の集合です。
type Table struct {
	Columns []string
	records []record
}

// FromRows は任意の行スライスをJSON経由でTableに変換します。
// 列はJSONのフィールド順で、入れ子オブジェクトは parent.child に展開されます。
func FromRows(rows any) (*Table, error) {
	data, err := json.Marshal(rows)
	if err != nil {
		return nil, fmt.Errorf("encode rows: %w", err)
	}
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("rows must be a JSON array: %w", err)
	}

	t := &Table{records: make([]record, 0, len(items))}
	seen := map[string]struct{}{}
	for i, raw := range items {
		keys, err := orderedKeys(raw)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		for _, k := range keys {
			if _, ok := seen[k]; !ok {
				seen[k] = struct{}{}
				t.Columns = append(t.Columns, k)
			}
		}
		var row rowfilter.Row
		if err := json.Unmarshal(raw, &row); err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		flat := rowfilter.Row{}
		flatten("", row, flat)
		t.records = append(t.records, record{raw: raw, row: row, flat: flat})
	}
	return t, nil
}

// Len は行数を返します。
func (t *Table) Len() int { return len(t.records) }

// Filter はpredを満たす行だけを残した新しいTableを返します。
func (t *Table) Filter(pred rowfilter.Predicate) *Table {
	return &Table{
		Columns: t.Columns,
		records: rowfilter.Filter(t.records, func(r record) bool { return pred(r.row) }),
	}
}

// Render は指定形式でwに書き出します。
func (t *Table) Render(w io.Writer, format string) error {
	switch format {
	case FormatTable, "":
		tw := t.writer(w)
		tw.SetStyle(table.StyleLight)
		tw.Render()
		return nil
	case FormatCSV:
		return t.renderCSV(w)
	case FormatJSON:
		out := make([]json.RawMessage, 0, len(t.records))
		for _, r := range t.records {
			out = append(out, r.raw)
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	default:
		return fmt.Errorf("unknown format %q (want %s)", format, strings.Join(Formats, ", "))
	}
}

func (t *Table) writer(w io.Writer) table.Writer {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)

	hdr := make(table.Row, len(t.Columns))
	for i, c := range t.Columns {
		hdr[i] = c
	}
	tw.AppendHeader(hdr)

	for _, r := range t.records {
		row := make(table.Row, len(t.Columns))
		for i, c := range t.Columns {
			row[i] = rowfilter.Format(r.flat[c])
		}
		tw.AppendRow(row)
	}
	return tw
}

// renderCSV はRFC 4180形式で書き出します。カンマや引用符を含むセルは "" でエスケープされます。
func (t *Table) renderCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Columns); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	rec := make([]string, len(t.Columns))
	for _, r := range t.records {
		for i, c := range t.Columns {
			rec[i] = rowfilter.Format(r.flat[c])
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func flatten(prefix string, in map[string]any, out rowfilter.Row) {
	for k, v := range in {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		if nested, ok := v.(map[string]any); ok {
			flatten(key, nested, out)
			continue
		}
		out[key] = v
	}
}

// orderedKeys はJSONオブジェクトの葉のキーを出現順に parent.child 形式で返します。
func orderedKeys(data []byte) ([]string, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, errors.New("row is not a JSON object")
	}
	var keys []string
	if err := objectKeys(dec, "", &keys); err != nil {
		return nil, err
	}
	return keys, nil
}

// objectKeys は開き括弧の直後から閉じ括弧までを読みます。
func objectKeys(dec *json.Decoder, prefix string, keys *[]string) error {
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := tok.(string)
		if !ok {
			return fmt.Errorf("unexpected token %v", tok)
		}
		if prefix != "" {
			name = prefix + "." + name
		}

		tok, err = dec.Token()
		if err != nil {
			return err
		}
		switch d := tok.(type) {
		case json.Delim:
			switch d {
			case '{':
				before := len(*keys)
				if err := objectKeys(dec, name, keys); err != nil {
					return err
				}
				if len(*keys) == before {
					// 空オブジェクトも列として残す
					*keys = append(*keys, name)
				}
			case '[':
				*keys = append(*keys, name)
				if err := skipArray(dec); err != nil {
					return err
				}
			}
		default:
			*keys = append(*keys, name)
		}
	}
	_, err := dec.Token() // '}'
	return err
}

func skipArray(dec *json.Decoder) error {
	depth := 1
	for depth > 0 {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		if d, ok := tok.(json.Delim); ok {
			switch d {
			case '[', '{':
				depth++
			case ']', '}':
				depth--
			}
		}
	}
	return nil
}
