package model

import "strings"

// SectionKind identifies one record category of a RAW case.
type SectionKind int

// Kinds in file order. SwitchingDevice only appears in Modern files.
const (
	KindHeader SectionKind = iota
	KindBus
	KindLoad
	KindFixedShunt
	KindGenerator
	KindBranch
	KindSwitchingDevice
	KindTransformer
	KindArea
	KindTwoTerminalDc
	KindVscDc
	KindImpedanceCorrection
	KindMultiTerminalDc
	KindMultiSectionLine
	KindZone
	KindInterAreaTransfer
	KindOwner
	KindFacts
	KindSwitchedShunt
	KindGneDevice
	KindInductionMachine

	numKinds
)

var kindNames = [numKinds]string{
	KindHeader:              "header",
	KindBus:                 "bus",
	KindLoad:                "load",
	KindFixedShunt:          "fixed_shunt",
	KindGenerator:           "generator",
	KindBranch:              "branch",
	KindSwitchingDevice:     "switching_device",
	KindTransformer:         "transformer",
	KindArea:                "area",
	KindTwoTerminalDc:       "two_terminal_dc",
	KindVscDc:               "vsc_dc",
	KindImpedanceCorrection: "impedance_correction",
	KindMultiTerminalDc:     "multi_terminal_dc",
	KindMultiSectionLine:    "multi_section_line",
	KindZone:                "zone",
	KindInterAreaTransfer:   "inter_area_transfer",
	KindOwner:               "owner",
	KindFacts:               "facts",
	KindSwitchedShunt:       "switched_shunt",
	KindGneDevice:           "gne_device",
	KindInductionMachine:    "induction_machine",
}

func (k SectionKind) String() string {
	if k < 0 || k >= numKinds {
		return "unknown"
	}
	return kindNames[k]
}

// ParseKind resolves a kind name as printed by String. Dashes are accepted in place of underscores.
func ParseKind(name string) (SectionKind, bool) {
	name = strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "-", "_")
	for k, n := range kindNames {
		if n == name {
			return SectionKind(k), true
		}
	}
	return 0, false
}

// Decodable reports whether records of this kind are decoded into the case.
// Header lines and GNE device lines are only located, never decoded.
func (k SectionKind) Decodable() bool {
	return k > KindHeader && k < numKinds && k != KindGneDevice
}

// KindOrder returns the kinds in the order a file of the given era lists them.
func KindOrder(era Era) []SectionKind {
	order := make([]SectionKind, 0, numKinds)
	for k := KindHeader; k < numKinds; k++ {
		if k == KindSwitchingDevice && era != Modern {
			continue
		}
		order = append(order, k)
	}
	return order
}

// AllKinds returns every kind, including those absent from Legacy files.
func AllKinds() []SectionKind {
	return KindOrder(Modern)
}
