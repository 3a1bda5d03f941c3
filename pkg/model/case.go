package model

// Case is a fully decoded RAW case. Every record slice is in file order and is
// empty, never nil, when the file holds no records of that kind.
type Case struct {
	Header   Header
	Sections []Section

	// Lines is the number of physical lines in the source.
	Lines int

	Buses               []Bus
	Loads               []Load
	FixedShunts         []FixedShunt
	Generators          []Generator
	Branches            []Branch
	SwitchingDevices    []SwitchingDevice
	Transformers        []Transformer
	Areas               []Area
	TwoTerminalDcs      []TwoTerminalDc
	VscDcs              []VscDc
	ImpedanceCorrection []ImpedanceCorrection
	MultiTerminalDcs    []MultiTerminalDc
	MultiSectionLines   []MultiSectionLine
	Zones               []Zone
	InterAreaTransfers  []InterAreaTransfer
	Owners              []Owner
	Facts               []Facts
	SwitchedShunts      []SwitchedShunt
	InductionMachines   []InductionMachine

	// Diagnostics has one entry per scanned section, in section order.
	Diagnostics []Diagnostics
}

// NewCase returns a case with the given header and every record slice allocated.
func NewCase(h Header) *Case {
	return &Case{
		Header:              h,
		Buses:               []Bus{},
		Loads:               []Load{},
		FixedShunts:         []FixedShunt{},
		Generators:          []Generator{},
		Branches:            []Branch{},
		SwitchingDevices:    []SwitchingDevice{},
		Transformers:        []Transformer{},
		Areas:               []Area{},
		TwoTerminalDcs:      []TwoTerminalDc{},
		VscDcs:              []VscDc{},
		ImpedanceCorrection: []ImpedanceCorrection{},
		MultiTerminalDcs:    []MultiTerminalDc{},
		MultiSectionLines:   []MultiSectionLine{},
		Zones:               []Zone{},
		InterAreaTransfers:  []InterAreaTransfer{},
		Owners:              []Owner{},
		Facts:               []Facts{},
		SwitchedShunts:      []SwitchedShunt{},
		InductionMachines:   []InductionMachine{},
	}
}

// Count returns the number of decoded records of a kind.
func (c *Case) Count(kind SectionKind) int {
	switch kind {
	case KindBus:
		return len(c.Buses)
	case KindLoad:
		return len(c.Loads)
	case KindFixedShunt:
		return len(c.FixedShunts)
	case KindGenerator:
		return len(c.Generators)
	case KindBranch:
		return len(c.Branches)
	case KindSwitchingDevice:
		return len(c.SwitchingDevices)
	case KindTransformer:
		return len(c.Transformers)
	case KindArea:
		return len(c.Areas)
	case KindTwoTerminalDc:
		return len(c.TwoTerminalDcs)
	case KindVscDc:
		return len(c.VscDcs)
	case KindImpedanceCorrection:
		return len(c.ImpedanceCorrection)
	case KindMultiTerminalDc:
		return len(c.MultiTerminalDcs)
	case KindMultiSectionLine:
		return len(c.MultiSectionLines)
	case KindZone:
		return len(c.Zones)
	case KindInterAreaTransfer:
		return len(c.InterAreaTransfers)
	case KindOwner:
		return len(c.Owners)
	case KindFacts:
		return len(c.Facts)
	case KindSwitchedShunt:
		return len(c.SwitchedShunts)
	case KindInductionMachine:
		return len(c.InductionMachines)
	default:
		return 0
	}
}

// Section returns the scanned range of a kind, if the case's era lists it.
func (c *Case) Section(kind SectionKind) (Section, bool) {
	for _, s := range c.Sections {
		if s.Kind == kind {
			return s, true
		}
	}
	return Section{}, false
}

// DiagnosticsFor returns the decode diagnostics of a kind.
func (c *Case) DiagnosticsFor(kind SectionKind) Diagnostics {
	for _, d := range c.Diagnostics {
		if d.Kind == kind {
			return d
		}
	}
	return Diagnostics{Kind: kind}
}

// Skipped returns the number of records rejected across all kinds.
func (c *Case) Skipped() int {
	total := 0
	for _, d := range c.Diagnostics {
		total += d.Skipped
	}
	return total
}

// Records returns the number of decoded records across all kinds.
func (c *Case) Records() int {
	total := 0
	for _, d := range c.Diagnostics {
		total += d.Decoded
	}
	return total
}
