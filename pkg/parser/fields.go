package parser

import (
	"math"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Fields splits a line on commas and trims each token. Text inside single or
// double quotes is kept whole, so quoted names may contain commas and slashes.
// An unquoted "/" starts a trailing comment that is dropped.
//
// Fields returns false when the line is not valid UTF-8.
func Fields(line []byte) ([]string, bool) {
	if !utf8.Valid(line) {
		return nil, false
	}
	tokens := make([]string, 0, 16)
	start := 0
	var quote byte
	for i := 0; i < len(line); i++ {
		c := line[i]
		if quote != 0 {
			if c == quote {
				quote = 0
			}
			continue
		}
		switch c {
		case '\'', '"':
			quote = c
		case ',':
			tokens = append(tokens, strings.TrimSpace(string(line[start:i])))
			start = i + 1
		case '/':
			return append(tokens, strings.TrimSpace(string(line[start:i]))), true
		}
	}
	return append(tokens, strings.TrimSpace(string(line[start:]))), true
}

// Unquote removes one layer of enclosing quotes from a token and trims the
// result. An unbalanced leading quote is dropped as well.
func Unquote(tok string) string {
	tok = strings.TrimSpace(tok)
	if tok == "" {
		return tok
	}
	if q := tok[0]; q == '\'' || q == '"' {
		tok = tok[1:]
		if n := len(tok); n > 0 && tok[n-1] == q {
			tok = tok[:n-1]
		}
	}
	return strings.TrimSpace(tok)
}

// ParseInt parses an integer token. Integral floats such as "1.0" are accepted.
func ParseInt(tok string) (int, bool) {
	tok = Unquote(tok)
	if tok == "" {
		return 0, false
	}
	if n, err := strconv.Atoi(tok); err == nil {
		return n, true
	}
	f, err := strconv.ParseFloat(tok, 64)
	if err != nil || f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
		return 0, false
	}
	return int(f), true
}

// ParseFloat parses a floating-point token, including Fortran-style exponents.
// NaN and infinities are rejected.
func ParseFloat(tok string) (float64, bool) {
	tok = Unquote(tok)
	if tok == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		f, err = strconv.ParseFloat(strings.NewReplacer("D", "E", "d", "e").Replace(tok), 64)
		if err != nil {
			return 0, false
		}
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// Token returns tokens[i], or "" when i is out of range.
func Token(tokens []string, i int) string {
	if i < 0 || i >= len(tokens) {
		return ""
	}
	return tokens[i]
}

// numericStart reports whether a token begins like a number.
func numericStart(tok string) bool {
	if tok == "" {
		return false
	}
	c := tok[0]
	if c == '-' || c == '+' {
		if len(tok) == 1 {
			return false
		}
		c = tok[1]
	}
	return c >= '0' && c <= '9'
}
