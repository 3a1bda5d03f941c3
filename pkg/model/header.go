package model

// Header is the case identification record.
type Header struct {
	// NewCase is the IC flag: 0 for a new case, 1 to add to a working case.
	NewCase int

	// BaseMVA is the system base in MVA.
	BaseMVA float64

	// Revision is the format revision the file declares.
	Revision int

	// TransformerRating selects percent (0), MVA (1) or current-expressed (2) transformer ratings.
	TransformerRating int

	// BranchRating selects the unit of non-transformer branch ratings.
	BranchRating int

	// BaseFrequency is the system base frequency in Hz.
	BaseFrequency float64

	// Titles holds the two case title lines.
	Titles [2]string
}

// Header field defaults.
const (
	DefaultBaseMVA       = 100.0
	DefaultBaseFrequency = 60.0
)

// DefaultHeader returns the header used when none can be read.
func DefaultHeader(revision int) Header {
	return Header{
		BaseMVA:       DefaultBaseMVA,
		Revision:      revision,
		BaseFrequency: DefaultBaseFrequency,
	}
}

// Era classifies the header's revision.
func (h Header) Era() Era {
	return EraOf(h.Revision)
}
