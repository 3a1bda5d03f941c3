package decoder

import "github.com/ccollicutt/pssraw/pkg/model"

// Area decodes interchange area records.
var Area = &Schema[model.Area]{
	Kind: model.KindArea,
	Fields: []Field[model.Area]{
		Int("I", 0, 0, 0, func(r *model.Area) *int { return &r.Number }).Require(),
		Int("ISW", 1, 1, 0, func(r *model.Area) *int { return &r.SlackBus }),
		Float("PDES", 2, 2, 0, func(r *model.Area) *float64 { return &r.PDesired }),
		Float("PTOL", 3, 3, 10, func(r *model.Area) *float64 { return &r.PTolerance }),
		String("ARNAME", 4, 4, "", func(r *model.Area) *string { return &r.Name }),
	},
}

// MultiSectionLine decodes multi-section line groupings.
var MultiSectionLine = &Schema[model.MultiSectionLine]{
	Kind: model.KindMultiSectionLine,
	Fields: []Field[model.MultiSectionLine]{
		Int("I", 0, 0, 0, func(r *model.MultiSectionLine) *int { return &r.From }).Require(),
		Int("J", 1, 1, 0, func(r *model.MultiSectionLine) *int { return &r.To }).Require(),
		String("ID", 2, 2, "&1", func(r *model.MultiSectionLine) *string { return &r.ID }),
		Int("MET", 3, 3, 1, func(r *model.MultiSectionLine) *int { return &r.MeterEnd }),
		IntList("DUM", Run(4, 9), Run(4, 9), nil, func(r *model.MultiSectionLine) []int { return r.DummyBuses[:] }),
	},
}

// Zone decodes zone records.
var Zone = &Schema[model.Zone]{
	Kind: model.KindZone,
	Fields: []Field[model.Zone]{
		Int("I", 0, 0, 0, func(r *model.Zone) *int { return &r.Number }).Require(),
		String("ZONAME", 1, 1, "", func(r *model.Zone) *string { return &r.Name }),
	},
}

// InterAreaTransfer decodes scheduled transfers.
var InterAreaTransfer = &Schema[model.InterAreaTransfer]{
	Kind: model.KindInterAreaTransfer,
	Fields: []Field[model.InterAreaTransfer]{
		Int("ARFROM", 0, 0, 0, func(r *model.InterAreaTransfer) *int { return &r.FromArea }).Require(),
		Int("ARTO", 1, 1, 0, func(r *model.InterAreaTransfer) *int { return &r.ToArea }).Require(),
		String("TRID", 2, 2, "1", func(r *model.InterAreaTransfer) *string { return &r.ID }),
		Float("PTRAN", 3, 3, 0, func(r *model.InterAreaTransfer) *float64 { return &r.Power }),
	},
}

// Owner decodes owner records.
var Owner = &Schema[model.Owner]{
	Kind: model.KindOwner,
	Fields: []Field[model.Owner]{
		Int("I", 0, 0, 0, func(r *model.Owner) *int { return &r.Number }).Require(),
		String("OWNAME", 1, 1, "", func(r *model.Owner) *string { return &r.Name }),
	},
}

// Facts decodes FACTS devices. Modern files add a regulated node ahead of the
// master device name.
var Facts = &Schema[model.Facts]{
	Kind: model.KindFacts,
	Fields: []Field[model.Facts]{
		String("NAME", 0, 0, "", func(r *model.Facts) *string { return &r.Name }).Require(),
		Int("I", 1, 1, 0, func(r *model.Facts) *int { return &r.SendingBus }),
		Int("J", 2, 2, 0, func(r *model.Facts) *int { return &r.TerminalBus }),
		Int("MODE", 3, 3, 1, func(r *model.Facts) *int { return &r.Mode }),
		Float("PDES", 4, 4, 0, func(r *model.Facts) *float64 { return &r.PDesired }),
		Float("QDES", 5, 5, 0, func(r *model.Facts) *float64 { return &r.QDesired }),
		Float("VSET", 6, 6, 1.0, func(r *model.Facts) *float64 { return &r.VoltageSetpoint }),
		Float("SHMX", 7, 7, 9999, func(r *model.Facts) *float64 { return &r.ShuntMax }),
		Float("TRMX", 8, 8, 9999, func(r *model.Facts) *float64 { return &r.BridgeMax }),
		Float("VTMN", 9, 9, 0.9, func(r *model.Facts) *float64 { return &r.VTMin }),
		Float("VTMX", 10, 10, 1.1, func(r *model.Facts) *float64 { return &r.VTMax }),
		Float("VSMX", 11, 11, 1.0, func(r *model.Facts) *float64 { return &r.VSeriesMax }),
		Float("IMX", 12, 12, 0, func(r *model.Facts) *float64 { return &r.IMax }),
		Float("LINX", 13, 13, 0.05, func(r *model.Facts) *float64 { return &r.LinkX }),
		Float("RMPCT", 14, 14, 100, func(r *model.Facts) *float64 { return &r.RegulationPercent }),
		Int("OWNER", 15, 15, 1, func(r *model.Facts) *int { return &r.Owner }),
		Float("SET1", 16, 16, 0, func(r *model.Facts) *float64 { return &r.Set1 }),
		Float("SET2", 17, 17, 0, func(r *model.Facts) *float64 { return &r.Set2 }),
		Int("VSREF", 18, 18, 0, func(r *model.Facts) *int { return &r.VoltageReference }),
		Int("REMOT", 19, 19, 0, func(r *model.Facts) *int { return &r.RegulatedBus }),
		Int("NREG", Absent, 20, 0, func(r *model.Facts) *int { return &r.RegulatedNode }),
		String("MNAME", 20, 21, "", func(r *model.Facts) *string { return &r.MasterName }),
	},
}

// SwitchedShunt decodes switched shunts. Modern files add an ID, a regulated
// node and a status per block, which shifts the block table to column 12 and
// widens it from pairs to triples.
var SwitchedShunt = &Schema[model.SwitchedShunt]{
	Kind: model.KindSwitchedShunt,
	Fields: []Field[model.SwitchedShunt]{
		Int("I", 0, 0, 0, func(r *model.SwitchedShunt) *int { return &r.Bus }).Require(),
		String("ID", Absent, 1, "1", func(r *model.SwitchedShunt) *string { return &r.ID }),
		Int("MODSW", 1, 2, 1, func(r *model.SwitchedShunt) *int { return &r.ControlMode }),
		Int("ADJM", 2, 3, 0, func(r *model.SwitchedShunt) *int { return &r.AdjustMethod }),
		Int("STAT", 3, 4, 1, func(r *model.SwitchedShunt) *int { return &r.Status }),
		Float("VSWHI", 4, 5, 1.0, func(r *model.SwitchedShunt) *float64 { return &r.VHigh }),
		Float("VSWLO", 5, 6, 1.0, func(r *model.SwitchedShunt) *float64 { return &r.VLow }),
		Int("SWREG", 6, 7, 0, func(r *model.SwitchedShunt) *int { return &r.RegulatedBus }),
		Int("NREG", Absent, 8, 0, func(r *model.SwitchedShunt) *int { return &r.RegulatedNode }),
		Float("RMPCT", 7, 9, 100, func(r *model.SwitchedShunt) *float64 { return &r.RegulationPercent }),
		String("RMIDNT", 8, 10, "", func(r *model.SwitchedShunt) *string { return &r.RegulatingDevice }),
		Float("BINIT", 9, 11, 0, func(r *model.SwitchedShunt) *float64 { return &r.InitialB }),
		IntList("S", None, Every(12, 3, 8), repeat(1, 8), func(r *model.SwitchedShunt) []int { return r.BlockStatus[:] }),
		IntList("N", Every(10, 2, 8), Every(13, 3, 8), nil, func(r *model.SwitchedShunt) []int { return r.Steps[:] }),
		FloatList("B", Every(11, 2, 8), Every(14, 3, 8), nil, func(r *model.SwitchedShunt) []float64 { return r.BIncrement[:] }),
	},
}

// InductionMachine decodes induction machines. The layout is the same in both eras.
var InductionMachine = &Schema[model.InductionMachine]{
	Kind: model.KindInductionMachine,
	Fields: []Field[model.InductionMachine]{
		Int("I", 0, 0, 0, func(r *model.InductionMachine) *int { return &r.Bus }).Require(),
		String("ID", 1, 1, "1", func(r *model.InductionMachine) *string { return &r.ID }),
		Int("STAT", 2, 2, 1, func(r *model.InductionMachine) *int { return &r.Status }),
		Int("SCODE", 3, 3, 1, func(r *model.InductionMachine) *int { return &r.StandardCode }),
		Int("DCODE", 4, 4, 2, func(r *model.InductionMachine) *int { return &r.DesignCode }),
		Int("AREA", 5, 5, 1, func(r *model.InductionMachine) *int { return &r.Area }),
		Int("ZONE", 6, 6, 1, func(r *model.InductionMachine) *int { return &r.Zone }),
		Int("OWNER", 7, 7, 1, func(r *model.InductionMachine) *int { return &r.Owner }),
		Int("TCODE", 8, 8, 1, func(r *model.InductionMachine) *int { return &r.TorqueCode }),
		Int("BCODE", 9, 9, 1, func(r *model.InductionMachine) *int { return &r.BaseCode }),
		Float("MBASE", 10, 10, 100, func(r *model.InductionMachine) *float64 { return &r.MBase }),
		Float("RATEKV", 11, 11, 0, func(r *model.InductionMachine) *float64 { return &r.RatedKV }),
		Int("PCODE", 12, 12, 1, func(r *model.InductionMachine) *int { return &r.PowerCode }),
		Float("PSET", 13, 13, 0, func(r *model.InductionMachine) *float64 { return &r.PSet }),
		Float("H", 14, 14, 1.0, func(r *model.InductionMachine) *float64 { return &r.Inertia }),
		FloatList("ABDE", Run(15, 4), Run(15, 4), repeat(1.0, 4), func(r *model.InductionMachine) []float64 { return r.TorqueCoefficients[:] }),
		Float("RA", 19, 19, 0, func(r *model.InductionMachine) *float64 { return &r.RA }),
		Float("XA", 20, 20, 0, func(r *model.InductionMachine) *float64 { return &r.XA }),
		Float("XM", 21, 21, 2.5, func(r *model.InductionMachine) *float64 { return &r.XM }),
		Float("R1", 22, 22, 999, func(r *model.InductionMachine) *float64 { return &r.R1 }),
		Float("X1", 23, 23, 999, func(r *model.InductionMachine) *float64 { return &r.X1 }),
		Float("R2", 24, 24, 999, func(r *model.InductionMachine) *float64 { return &r.R2 }),
		Float("X2", 25, 25, 999, func(r *model.InductionMachine) *float64 { return &r.X2 }),
		Float("X3", 26, 26, 0, func(r *model.InductionMachine) *float64 { return &r.X3 }),
		Float("E1", 27, 27, 1.0, func(r *model.InductionMachine) *float64 { return &r.E1 }),
		Float("SE1", 28, 28, 0, func(r *model.InductionMachine) *float64 { return &r.SE1 }),
		Float("E2", 29, 29, 1.2, func(r *model.InductionMachine) *float64 { return &r.E2 }),
		Float("SE2", 30, 30, 0, func(r *model.InductionMachine) *float64 { return &r.SE2 }),
		Float("IA1", 31, 31, 0, func(r *model.InductionMachine) *float64 { return &r.IA1 }),
		Float("IA2", 32, 32, 0, func(r *model.InductionMachine) *float64 { return &r.IA2 }),
		Float("XAMULT", 33, 33, 1.0, func(r *model.InductionMachine) *float64 { return &r.XAMult }),
	},
}
