package decoder

import (
	"github.com/ccollicutt/pssraw/pkg/model"
	"github.com/ccollicutt/pssraw/pkg/parser"
)

// Layout places a field's values on a line: Count values starting at column
// Start, Stride columns apart. Scalars have a count of one.
type Layout struct {
	Start  int
	Stride int
	Count  int
}

// None is the layout of a field an era does not carry.
var None = Layout{Start: Absent}

// Run lays out count adjacent columns from start.
func Run(start, count int) Layout {
	return Layout{Start: start, Stride: 1, Count: count}
}

// Every lays out count columns from start, stride apart.
func Every(start, stride, count int) Layout {
	return Layout{Start: start, Stride: stride, Count: count}
}

func at(col int) Layout {
	if col == Absent {
		return None
	}
	return Run(col, 1)
}

func (l Layout) columns() []int {
	if l.Start == Absent {
		return nil
	}
	cols := make([]int, l.Count)
	for i := range cols {
		cols[i] = l.Start + i*l.Stride
	}
	return cols
}

// Field is one schema entry: where a value sits in each era, how it parses
// and what it defaults to.
type Field[T any] struct {
	Name string

	// Line is the line of the logical record the field is read from.
	Line int

	// Legacy and Modern are the first columns of the field, or Absent.
	Legacy int
	Modern int

	// Required fields reject the record when missing or unreadable.
	Required bool

	layouts [2]Layout
	decode  func(rec *T, tokens []string, era model.Era) (ok bool, malformed int)
}

// On moves the field to another line of the record.
func (f Field[T]) On(line int) Field[T] {
	f.Line = line
	return f
}

// Require marks the field as identifying the record.
func (f Field[T]) Require() Field[T] {
	f.Required = true
	return f
}

func (f Field[T]) legacyCols() []int { return f.layouts[model.Legacy].columns() }
func (f Field[T]) modernCols() []int { return f.layouts[model.Modern].columns() }

func newField[T any](name string, legacy, modern Layout) Field[T] {
	return Field[T]{
		Name:    name,
		Legacy:  legacy.Start,
		Modern:  modern.Start,
		layouts: [2]Layout{model.Legacy: legacy, model.Modern: modern},
	}
}

// Int declares an integer field.
func Int[T any](name string, legacy, modern, def int, ptr func(*T) *int) Field[T] {
	return scalar(name, legacy, modern, def, parser.ParseInt, ptr)
}

// Float declares a floating-point field.
func Float[T any](name string, legacy, modern int, def float64, ptr func(*T) *float64) Field[T] {
	return scalar(name, legacy, modern, def, parser.ParseFloat, ptr)
}

// String declares a text field. One layer of quotes is removed and a value
// that is empty once unquoted takes the default.
func String[T any](name string, legacy, modern int, def string, ptr func(*T) *string) Field[T] {
	f := newField[T](name, at(legacy), at(modern))
	cols := [2]int{model.Legacy: legacy, model.Modern: modern}
	f.decode = func(rec *T, tokens []string, era model.Era) (bool, int) {
		v := parser.Unquote(token(tokens, cols[era]))
		if v == "" {
			*ptr(rec) = def
			return false, 0
		}
		*ptr(rec) = v
		return true, 0
	}
	return f
}

// IntList declares a fixed-size integer list. Slot i defaults to defs[i], or
// zero past the end of defs.
func IntList[T any](name string, legacy, modern Layout, defs []int, ptr func(*T) []int) Field[T] {
	return list(name, legacy, modern, defs, parser.ParseInt, ptr)
}

// FloatList declares a fixed-size floating-point list.
func FloatList[T any](name string, legacy, modern Layout, defs []float64, ptr func(*T) []float64) Field[T] {
	return list(name, legacy, modern, defs, parser.ParseFloat, ptr)
}

func scalar[T, V any](name string, legacy, modern int, def V, parse func(string) (V, bool), ptr func(*T) *V) Field[T] {
	f := newField[T](name, at(legacy), at(modern))
	cols := [2]int{model.Legacy: legacy, model.Modern: modern}
	f.decode = func(rec *T, tokens []string, era model.Era) (bool, int) {
		v, ok, malformed := read(tokens, cols[era], parse)
		if !ok {
			v = def
		}
		*ptr(rec) = v
		return ok, malformed
	}
	return f
}

func list[T, V any](name string, legacy, modern Layout, defs []V, parse func(string) (V, bool), ptr func(*T) []V) Field[T] {
	f := newField[T](name, legacy, modern)
	f.decode = func(rec *T, tokens []string, era model.Era) (bool, int) {
		dst := ptr(rec)
		var zero V
		for i := range dst {
			dst[i] = zero
			if i < len(defs) {
				dst[i] = defs[i]
			}
		}
		malformed := 0
		for i, col := range f.layouts[era].columns() {
			if i >= len(dst) {
				break
			}
			v, ok, bad := read(tokens, col, parse)
			malformed += bad
			if ok {
				dst[i] = v
			}
		}
		return true, malformed
	}
	return f
}

// read looks up a column. A missing column or empty token is absent; a token
// that does not parse is malformed.
func read[V any](tokens []string, col int, parse func(string) (V, bool)) (V, bool, int) {
	var zero V
	tok := token(tokens, col)
	if tok == "" {
		return zero, false, 0
	}
	v, ok := parse(tok)
	if !ok {
		return zero, false, 1
	}
	return v, true, 0
}

func token(tokens []string, col int) string {
	if col < 0 || col >= len(tokens) {
		return ""
	}
	return tokens[col]
}

// Nest lifts the fields of a nested struct into a parent schema. Inner line
// numbers are offset by line.
func Nest[T, S any](line int, sel func(*T) *S, fields ...Field[S]) []Field[T] {
	out := make([]Field[T], len(fields))
	for i, f := range fields {
		inner := f.decode
		out[i] = Field[T]{
			Name:     f.Name,
			Line:     line + f.Line,
			Legacy:   f.Legacy,
			Modern:   f.Modern,
			Required: f.Required,
			layouts:  f.layouts,
			decode: func(rec *T, tokens []string, era model.Era) (bool, int) {
				return inner(sel(rec), tokens, era)
			},
		}
	}
	return out
}

// repeat returns n copies of v, for list defaults.
func repeat[V any](v V, n int) []V {
	out := make([]V, n)
	for i := range out {
		out[i] = v
	}
	return out
}
