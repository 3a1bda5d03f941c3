// Package model defines the decoded form of a PSS/E RAW case.
package model

import "fmt"

// Era classifies a case revision into one of the two column-layout generations.
type Era int

const (
	// Legacy covers revisions below 34.
	Legacy Era = iota
	// Modern covers revision 34 and later, which insert columns into several record kinds.
	Modern
)

// ModernRevision is the first revision laid out in the Modern era.
const ModernRevision = 34

// DefaultRevision is assumed when a header carries no readable revision.
const DefaultRevision = 33

// EraOf classifies a revision number.
func EraOf(revision int) Era {
	if revision >= ModernRevision {
		return Modern
	}
	return Legacy
}

func (e Era) String() string {
	switch e {
	case Legacy:
		return "legacy"
	case Modern:
		return "modern"
	default:
		return fmt.Sprintf("era(%d)", int(e))
	}
}
