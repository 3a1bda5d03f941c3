// Package decoder turns grouped RAW lines into typed records using declarative,
// revision-aware column schemas.
package decoder

import (
	"fmt"

	"github.com/ccollicutt/pssraw/pkg/model"
	"github.com/ccollicutt/pssraw/pkg/parser"
)

// Absent marks a column that does not exist in an era's layout.
const Absent = -1

// Outcome reports how a record decoded.
type Outcome struct {
	// OK is false when an identifying field was missing or unreadable.
	OK bool

	// Malformed counts non-empty tokens that failed to parse and were defaulted.
	Malformed int
}

func (o *Outcome) merge(other Outcome) {
	o.OK = o.OK && other.OK
	o.Malformed += other.Malformed
}

// Decoder decodes one logical record.
type Decoder[T any] interface {
	Decode(era model.Era, g parser.Group) (T, Outcome)
}

// Schema is an ordered field list for a record type. Its Decode applies every
// field to a zero record.
type Schema[T any] struct {
	Kind   model.SectionKind
	Fields []Field[T]
}

// Decode decodes a group. It never fails on short or damaged input: missing
// values take their defaults and only required fields can reject the record.
func (s *Schema[T]) Decode(era model.Era, g parser.Group) (T, Outcome) {
	var rec T
	out := s.decodeInto(&rec, era, g)
	return rec, out
}

func (s *Schema[T]) decodeInto(rec *T, era model.Era, g parser.Group) Outcome {
	out := Outcome{OK: true}
	for i := range s.Fields {
		f := &s.Fields[i]
		ok, malformed := f.decode(rec, g.Tokens(f.Line), era)
		out.Malformed += malformed
		if !ok && f.Required {
			out.OK = false
		}
	}
	return out
}

// Check verifies the schema's column tables: a field's Modern column is never
// left of its Legacy column and no two fields of one line share a column.
func (s *Schema[T]) Check() error {
	type slot struct{ line, col int }
	seen := [2]map[slot]string{{}, {}}
	for _, f := range s.Fields {
		if f.Legacy != Absent && f.Modern < f.Legacy {
			return fmt.Errorf("%s.%s: modern column %d precedes legacy column %d", s.Kind, f.Name, f.Modern, f.Legacy)
		}
		for era, cols := range [2][]int{f.legacyCols(), f.modernCols()} {
			for _, c := range cols {
				k := slot{f.Line, c}
				if prev, dup := seen[era][k]; dup {
					return fmt.Errorf("%s.%s: line %d column %d already used by %s", s.Kind, f.Name, f.Line, c, prev)
				}
				seen[era][k] = f.Name
			}
		}
	}
	return nil
}
