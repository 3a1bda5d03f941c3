package model

// Section is the half-open line range [Start, End) holding one kind's records.
type Section struct {
	Kind  SectionKind `json:"kind" yaml:"kind"`
	Start int         `json:"start" yaml:"start"`
	End   int         `json:"end" yaml:"end"`
}

// Len returns the number of physical lines in the range.
func (s Section) Len() int {
	if s.End < s.Start {
		return 0
	}
	return s.End - s.Start
}

// Empty reports whether the range holds no lines.
func (s Section) Empty() bool {
	return s.Len() == 0
}
