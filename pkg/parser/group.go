package parser

import (
	"github.com/ccollicutt/pssraw/pkg/model"
)

// Line is one tokenized data line of a section.
type Line struct {
	Index  int
	Tokens []string
}

// Group is the lines of one logical record, in file order.
type Group struct {
	Lines []Line
}

// Tokens returns the tokens of the group's i-th line, or nil when the group is shorter.
func (g Group) Tokens(i int) []string {
	if i < 0 || i >= len(g.Lines) {
		return nil
	}
	return g.Lines[i].Tokens
}

// Len returns the number of lines in the group.
func (g Group) Len() int {
	return len(g.Lines)
}

// Policy selects how a section's lines become logical records.
type Policy int

const (
	// PolicySingle makes every line its own record.
	PolicySingle Policy = iota
	// PolicyFixed chunks lines into records of a fixed size.
	PolicyFixed
	// PolicyTransformer reads the tertiary bus of each record to choose four or five lines.
	PolicyTransformer
	// PolicyCorrectionTable reads sentinel-terminated impedance correction tables.
	PolicyCorrectionTable
	// PolicyMultiTerminal reads the line counts declared by each record's first line.
	PolicyMultiTerminal
	// PolicyNone leaves the section undecoded.
	PolicyNone
)

// GroupPolicy pairs a policy with its record size where one applies.
type GroupPolicy struct {
	Policy Policy
	Size   int
}

// Record sizes of the fixed and discriminated multi-line kinds.
const (
	dcLineSize        = 3
	twoWindingSize    = 4
	threeWindingSize  = 5
	tertiaryBusColumn = 2
	correctionWidth   = 3
)

// PolicyFor returns the grouping policy of a kind.
func PolicyFor(kind model.SectionKind) GroupPolicy {
	switch kind {
	case model.KindHeader, model.KindGneDevice:
		return GroupPolicy{Policy: PolicyNone}
	case model.KindTwoTerminalDc, model.KindVscDc:
		return GroupPolicy{Policy: PolicyFixed, Size: dcLineSize}
	case model.KindTransformer:
		return GroupPolicy{Policy: PolicyTransformer}
	case model.KindImpedanceCorrection:
		return GroupPolicy{Policy: PolicyCorrectionTable}
	case model.KindMultiTerminalDc:
		return GroupPolicy{Policy: PolicyMultiTerminal}
	default:
		return GroupPolicy{Policy: PolicySingle, Size: 1}
	}
}

// Assembly is the grouped content of one section.
type Assembly struct {
	Section model.Section
	Groups  []Group

	// Lines is the number of data lines in the section.
	Lines int

	// Discarded counts lines that were not valid text or belonged to an
	// incomplete trailing record.
	Discarded int
}

// Assemble tokenizes the data lines of a section and groups them into logical
// records. Blank, comment and legend lines are dropped first.
func Assemble(lines *Lines, sec model.Section, era model.Era) Assembly {
	asm := Assembly{Section: sec}
	data := make([]Line, 0, sec.Len())
	for i := sec.Start; i < sec.End; i++ {
		if classify(lines.At(i)) != lineData {
			continue
		}
		tokens, ok := lines.Tokens(i)
		if !ok {
			asm.Discarded++
			continue
		}
		data = append(data, Line{Index: i, Tokens: tokens})
	}
	asm.Lines = len(data)

	var rest int
	switch p := PolicyFor(sec.Kind); p.Policy {
	case PolicyNone:
		return asm
	case PolicySingle:
		asm.Groups = fixedGroups(data, 1)
	case PolicyFixed:
		asm.Groups = fixedGroups(data, p.Size)
		rest = len(data) % p.Size
	case PolicyTransformer:
		asm.Groups, rest = sizedGroups(data, transformerSize)
	case PolicyMultiTerminal:
		asm.Groups, rest = sizedGroups(data, multiTerminalSize)
	case PolicyCorrectionTable:
		asm.Groups = correctionGroups(data, era)
	}
	asm.Discarded += rest
	return asm
}

// fixedGroups chunks lines into groups of n. A trailing partial chunk is dropped.
func fixedGroups(data []Line, n int) []Group {
	groups := make([]Group, 0, len(data)/n)
	for i := 0; i+n <= len(data); i += n {
		groups = append(groups, Group{Lines: data[i : i+n : i+n]})
	}
	return groups
}

// sizedGroups groups lines using a size read from each group's first line. It
// returns the groups and the number of lines left over at the end.
func sizedGroups(data []Line, size func(first []string, left int) int) ([]Group, int) {
	var groups []Group
	i := 0
	for i < len(data) {
		n := size(data[i].Tokens, len(data)-i)
		if i+n > len(data) {
			break
		}
		groups = append(groups, Group{Lines: data[i : i+n : i+n]})
		i += n
	}
	return groups, len(data) - i
}

// transformerSize is four lines for a two-winding record and five when the
// tertiary bus is set.
func transformerSize(first []string, _ int) int {
	if k, ok := ParseInt(Token(first, tertiaryBusColumn)); ok && k != 0 {
		return threeWindingSize
	}
	return twoWindingSize
}

// multiTerminalSize is the header line plus the declared converter, DC bus and
// DC link lines. Each count is capped at the lines left.
func multiTerminalSize(first []string, left int) int {
	n := 1
	for _, v := range MultiTerminalCounts(first, left) {
		n += v
	}
	return n
}

// MultiTerminalCounts reads the converter, DC bus and DC link counts of a
// multi-terminal DC header line. Missing or negative counts read as 0 and
// none exceeds limit.
func MultiTerminalCounts(first []string, limit int) [3]int {
	var counts [3]int
	for i := range counts {
		if v, ok := ParseInt(Token(first, i+1)); ok && v > 0 {
			counts[i] = min(v, max(limit, 0))
		}
	}
	return counts
}

// correctionGroups splits impedance correction data into tables. Modern tables
// run across lines until an all-zero triple; each Legacy line is a table.
func correctionGroups(data []Line, era model.Era) []Group {
	if era != model.Modern {
		return fixedGroups(data, 1)
	}
	var groups []Group
	for i := 0; i < len(data); {
		r := tupleReader{width: correctionWidth}
		j := i
		for ; j < len(data); j++ {
			tokens := data[j].Tokens
			if j == i {
				tokens = tokens[min(1, len(tokens)):]
			}
			r.add(tokens)
			if r.done {
				break
			}
		}
		end := min(j+1, len(data))
		groups = append(groups, Group{Lines: data[i:end:end]})
		i = end
	}
	return groups
}

// CorrectionTuples returns the raw (T, Re F, Im F) entries of one correction
// table. Legacy tables end with their line. Reading stops at the first
// all-zero entry, which is not returned. Missing trailing values of the last
// entry read as "".
func CorrectionTuples(g Group, era model.Era) [][]string {
	r := tupleReader{width: correctionWidth}
	for i, l := range g.Lines {
		tokens := l.Tokens
		if i == 0 {
			tokens = tokens[min(1, len(tokens)):]
		}
		r.add(tokens)
		if r.done || era != model.Modern {
			break
		}
	}
	r.finish()
	return r.tuples
}

// tupleReader collects fixed-width tuples across lines until it meets an
// all-zero tuple.
type tupleReader struct {
	width   int
	partial []string
	tuples  [][]string
	done    bool
}

func (r *tupleReader) add(tokens []string) {
	for len(tokens) > 0 && tokens[len(tokens)-1] == "" {
		tokens = tokens[:len(tokens)-1]
	}
	for _, tok := range tokens {
		if r.done {
			return
		}
		r.partial = append(r.partial, tok)
		if len(r.partial) == r.width {
			r.flush()
		}
	}
}

func (r *tupleReader) finish() {
	if r.done || len(r.partial) == 0 {
		return
	}
	for len(r.partial) < r.width {
		r.partial = append(r.partial, "")
	}
	r.flush()
}

func (r *tupleReader) flush() {
	t := r.partial
	r.partial = nil
	if t[0] == "" {
		return
	}
	if allZero(t) {
		r.done = true
		return
	}
	r.tuples = append(r.tuples, t)
}

// allZero treats empty tokens as zero and unreadable tokens as non-zero.
func allZero(tuple []string) bool {
	for _, tok := range tuple {
		if tok == "" {
			continue
		}
		if v, ok := ParseFloat(tok); !ok || v != 0 {
			return false
		}
	}
	return true
}
