package model

// Diagnostics tallies what happened while decoding one section.
type Diagnostics struct {
	Kind SectionKind

	// Lines is the number of data lines in the section, excluding blank and comment lines.
	Lines int

	// Groups is the number of logical records the lines were grouped into.
	Groups int

	// Decoded is the number of records kept.
	Decoded int

	// Skipped counts records rejected because an identifying field was missing or unreadable.
	Skipped int

	// MalformedFields counts non-empty tokens that failed to parse and were defaulted.
	MalformedFields int

	// DiscardedLines counts lines dropped as undecodable text or as an incomplete trailing group.
	DiscardedLines int
}

// Clean reports whether the section decoded without losing or defaulting anything.
func (d Diagnostics) Clean() bool {
	return d.Skipped == 0 && d.MalformedFields == 0 && d.DiscardedLines == 0
}
