package projection

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func f64(v float64) *float64 { return &v }

func TestFormatRatio(t *testing.T) {
	tests := []struct {
		name     string
		ratio    *float64
		decimals int32
		want     string
	}{
		{"growth two decimals", f64(0.1234), 2, "12.34%"},
		{"holding four decimals", f64(0.123456), 4, "12.3456%"},
		{"pads trailing zeros", f64(0.12), 2, "12.00%"},
		{"negative", f64(-0.05), 2, "-5.00%"},
		{"zero is a value", f64(0), 4, "0.0000%"},
		{"rounds", f64(0.123456789), 4, "12.3457%"},
		{"nil", nil, 2, NA},
		{"NaN", f64(math.NaN()), 2, NA},
		{"infinity", f64(math.Inf(1)), 2, NA},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatRatio(tt.ratio, tt.decimals))
		})
	}
}

func TestText(t *testing.T) {
	assert.Equal(t, NA, Text(""))
	assert.Equal(t, "acme.com", Text("acme.com"))
	assert.Equal(t, " ", Text(" "), "only the empty string is missing")
}

func TestFirstText(t *testing.T) {
	assert.Equal(t, "a", firstText("", "a", "b"))
	assert.Equal(t, NA, firstText("", ""))
	assert.Equal(t, NA, firstText())
}

func TestNumber(t *testing.T) {
	tests := []struct {
		name     string
		in       *float64
		wantJSON string
		wantStr  string
		valid    bool
	}{
		{"present", f64(1200), `1200`, "1200", true},
		{"fraction", f64(87.5), `87.5`, "87.5", true},
		{"zero is present", f64(0), `0`, "0", true},
		{"absent", nil, `"N/A"`, NA, false},
		{"NaN is absent", f64(math.NaN()), `"N/A"`, NA, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := NumberOf(tt.in)

			b, err := json.Marshal(n)
			require.NoError(t, err)
			assert.JSONEq(t, tt.wantJSON, string(b))
			assert.Equal(t, tt.wantStr, n.String())
			_, ok := n.Value()
			assert.Equal(t, tt.valid, ok)
		})
	}
}
