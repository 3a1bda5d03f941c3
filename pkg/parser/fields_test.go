package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFields(t *testing.T) {
	tests := []struct {
		name   string
		line   string
		want   []string
		wantOK bool
	}{
		{"simple", "1, 2, 3", []string{"1", "2", "3"}, true},
		{"trims", "   1,'BUS 1   ',  138.0 ", []string{"1", "'BUS 1   '", "138.0"}, true},
		{"quoted comma", "1,'A, B',2", []string{"1", "'A, B'", "2"}, true},
		{"quoted slash", `1,"N/S",2`, []string{"1", `"N/S"`, "2"}, true},
		{"comment", "0, 100.0, 33 / PSS(R)E-33, rev", []string{"0", "100.0", "33"}, true},
		{"empty fields", "1,,3,", []string{"1", "", "3", ""}, true},
		{"empty line", "", []string{""}, true},
		{"unterminated quote", "1,'open, 2", []string{"1", "'open, 2"}, true},
		{"invalid utf8", "1,\xff,2", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Fields([]byte(tt.line))
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestUnquote(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"'BUS 1   '", "BUS 1"},
		{`"RATE1 "`, "RATE1"},
		{"plain", "plain"},
		{"  ' padded '  ", "padded"},
		{"'unbalanced", "unbalanced"},
		{"''", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Unquote(tt.in))
		})
	}
}

func TestParseInt(t *testing.T) {
	tests := []struct {
		in     string
		want   int
		wantOK bool
	}{
		{"42", 42, true},
		{"-7", -7, true},
		{" 3 ", 3, true},
		{"'5'", 5, true},
		{"1.0", 1, true},
		{"2.00000E+0", 2, true},
		{"1.5", 0, false},
		{"abc", 0, false},
		{"", 0, false},
		{"1e20", 0, false},
		{"NaN", 0, false},
		{"Inf", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseInt(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseFloat(t *testing.T) {
	tests := []struct {
		in     string
		want   float64
		wantOK bool
	}{
		{"1.5", 1.5, true},
		{"9.087000E-03", 0.009087, true},
		{"-9900.000", -9900, true},
		{"1.5D+02", 150, true},
		{"2.5d-1", 0.25, true},
		{"'3.0'", 3, true},
		{"x", 0, false},
		{"", 0, false},
		{"NaN", 0, false},
		{"Inf", 0, false},
		{"-infinity", 0, false},
		{"+INF", 0, false},
		{"1e400", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseFloat(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			assert.InDelta(t, tt.want, got, 1e-12)
		})
	}
}

func TestToken(t *testing.T) {
	tokens := []string{"a", "b"}
	assert.Equal(t, "a", Token(tokens, 0))
	assert.Equal(t, "b", Token(tokens, 1))
	assert.Equal(t, "", Token(tokens, 2))
	assert.Equal(t, "", Token(tokens, -1))
	assert.Equal(t, "", Token(nil, 0))
}
