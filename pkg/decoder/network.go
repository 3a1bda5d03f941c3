package decoder

import "github.com/ccollicutt/pssraw/pkg/model"

// Bus decodes bus records. The layout is the same in both eras.
var Bus = &Schema[model.Bus]{
	Kind: model.KindBus,
	Fields: []Field[model.Bus]{
		Int("I", 0, 0, 0, func(r *model.Bus) *int { return &r.Number }).Require(),
		String("NAME", 1, 1, "", func(r *model.Bus) *string { return &r.Name }),
		Float("BASKV", 2, 2, 0, func(r *model.Bus) *float64 { return &r.BaseKV }),
		Int("IDE", 3, 3, 1, func(r *model.Bus) *int { return &r.Type }),
		Int("AREA", 4, 4, 1, func(r *model.Bus) *int { return &r.Area }),
		Int("ZONE", 5, 5, 1, func(r *model.Bus) *int { return &r.Zone }),
		Int("OWNER", 6, 6, 1, func(r *model.Bus) *int { return &r.Owner }),
		Float("VM", 7, 7, 1.0, func(r *model.Bus) *float64 { return &r.VoltageMagnitude }),
		Float("VA", 8, 8, 0, func(r *model.Bus) *float64 { return &r.VoltageAngle }),
		Float("NVHI", 9, 9, 1.1, func(r *model.Bus) *float64 { return &r.NormalVMax }),
		Float("NVLO", 10, 10, 0.9, func(r *model.Bus) *float64 { return &r.NormalVMin }),
		Float("EVHI", 11, 11, 1.1, func(r *model.Bus) *float64 { return &r.EmergencyVMax }),
		Float("EVLO", 12, 12, 0.9, func(r *model.Bus) *float64 { return &r.EmergencyVMin }),
	},
}

// Load decodes load records. Modern files append distributed generation and load type.
var Load = &Schema[model.Load]{
	Kind: model.KindLoad,
	Fields: []Field[model.Load]{
		Int("I", 0, 0, 0, func(r *model.Load) *int { return &r.Bus }).Require(),
		String("ID", 1, 1, "1", func(r *model.Load) *string { return &r.ID }),
		Int("STATUS", 2, 2, 1, func(r *model.Load) *int { return &r.Status }),
		Int("AREA", 3, 3, 1, func(r *model.Load) *int { return &r.Area }),
		Int("ZONE", 4, 4, 1, func(r *model.Load) *int { return &r.Zone }),
		Float("PL", 5, 5, 0, func(r *model.Load) *float64 { return &r.PL }),
		Float("QL", 6, 6, 0, func(r *model.Load) *float64 { return &r.QL }),
		Float("IP", 7, 7, 0, func(r *model.Load) *float64 { return &r.IP }),
		Float("IQ", 8, 8, 0, func(r *model.Load) *float64 { return &r.IQ }),
		Float("YP", 9, 9, 0, func(r *model.Load) *float64 { return &r.YP }),
		Float("YQ", 10, 10, 0, func(r *model.Load) *float64 { return &r.YQ }),
		Int("OWNER", 11, 11, 1, func(r *model.Load) *int { return &r.Owner }),
		Int("SCALE", 12, 12, 1, func(r *model.Load) *int { return &r.Scale }),
		Int("INTRPT", 13, 13, 0, func(r *model.Load) *int { return &r.Interruptible }),
		Float("DGENP", Absent, 14, 0, func(r *model.Load) *float64 { return &r.DistGenP }),
		Float("DGENQ", Absent, 15, 0, func(r *model.Load) *float64 { return &r.DistGenQ }),
		Int("DGENM", Absent, 16, 0, func(r *model.Load) *int { return &r.DistGenMode }),
		String("LOADTYPE", Absent, 17, "", func(r *model.Load) *string { return &r.LoadType }),
	},
}

// FixedShunt decodes fixed shunt records.
var FixedShunt = &Schema[model.FixedShunt]{
	Kind: model.KindFixedShunt,
	Fields: []Field[model.FixedShunt]{
		Int("I", 0, 0, 0, func(r *model.FixedShunt) *int { return &r.Bus }).Require(),
		String("ID", 1, 1, "1", func(r *model.FixedShunt) *string { return &r.ID }),
		Int("STATUS", 2, 2, 1, func(r *model.FixedShunt) *int { return &r.Status }),
		Float("GL", 3, 3, 0, func(r *model.FixedShunt) *float64 { return &r.GL }),
		Float("BL", 4, 4, 0, func(r *model.FixedShunt) *float64 { return &r.BL }),
	},
}

// Generator decodes generator records. Modern files insert NREG after IREG and
// BASLOD after PB, shifting everything behind them.
var Generator = &Schema[model.Generator]{
	Kind: model.KindGenerator,
	Fields: []Field[model.Generator]{
		Int("I", 0, 0, 0, func(r *model.Generator) *int { return &r.Bus }).Require(),
		String("ID", 1, 1, "1", func(r *model.Generator) *string { return &r.ID }),
		Float("PG", 2, 2, 0, func(r *model.Generator) *float64 { return &r.PG }),
		Float("QG", 3, 3, 0, func(r *model.Generator) *float64 { return &r.QG }),
		Float("QT", 4, 4, 9999, func(r *model.Generator) *float64 { return &r.QMax }),
		Float("QB", 5, 5, -9999, func(r *model.Generator) *float64 { return &r.QMin }),
		Float("VS", 6, 6, 1.0, func(r *model.Generator) *float64 { return &r.VoltageSetpoint }),
		Int("IREG", 7, 7, 0, func(r *model.Generator) *int { return &r.RegulatedBus }),
		Int("NREG", Absent, 8, 0, func(r *model.Generator) *int { return &r.RegulatedNode }),
		Float("MBASE", 8, 9, 100, func(r *model.Generator) *float64 { return &r.MBase }),
		Float("ZR", 9, 10, 0, func(r *model.Generator) *float64 { return &r.ZR }),
		Float("ZX", 10, 11, 1.0, func(r *model.Generator) *float64 { return &r.ZX }),
		Float("RT", 11, 12, 0, func(r *model.Generator) *float64 { return &r.RT }),
		Float("XT", 12, 13, 0, func(r *model.Generator) *float64 { return &r.XT }),
		Float("GTAP", 13, 14, 1.0, func(r *model.Generator) *float64 { return &r.TransformerTap }),
		Int("STAT", 14, 15, 1, func(r *model.Generator) *int { return &r.Status }),
		Float("RMPCT", 15, 16, 100, func(r *model.Generator) *float64 { return &r.RegulationPercent }),
		Float("PT", 16, 17, 9999, func(r *model.Generator) *float64 { return &r.PMax }),
		Float("PB", 17, 18, -9999, func(r *model.Generator) *float64 { return &r.PMin }),
		Int("BASLOD", Absent, 19, 0, func(r *model.Generator) *int { return &r.BaseLoaded }),
		IntList("O", Every(18, 2, 4), Every(20, 2, 4), []int{1}, func(r *model.Generator) []int { return r.Owners[:] }),
		FloatList("F", Every(19, 2, 4), Every(21, 2, 4), []float64{1}, func(r *model.Generator) []float64 { return r.Fractions[:] }),
		Int("WMOD", 26, 28, 0, func(r *model.Generator) *int { return &r.WindMode }),
		Float("WPF", 27, 29, 1.0, func(r *model.Generator) *float64 { return &r.WindPowerFactor }),
	},
}

// Branch decodes non-transformer branch records. Modern files insert a name
// and widen the ratings from three to twelve.
var Branch = &Schema[model.Branch]{
	Kind: model.KindBranch,
	Fields: []Field[model.Branch]{
		Int("I", 0, 0, 0, func(r *model.Branch) *int { return &r.From }).Require(),
		Int("J", 1, 1, 0, func(r *model.Branch) *int { return &r.To }).Require(),
		String("CKT", 2, 2, "1", func(r *model.Branch) *string { return &r.Circuit }),
		Float("R", 3, 3, 0, func(r *model.Branch) *float64 { return &r.R }),
		Float("X", 4, 4, 0, func(r *model.Branch) *float64 { return &r.X }),
		Float("B", 5, 5, 0, func(r *model.Branch) *float64 { return &r.B }),
		String("NAME", Absent, 6, "", func(r *model.Branch) *string { return &r.Name }),
		FloatList("RATE", Run(6, 3), Run(7, 12), nil, func(r *model.Branch) []float64 { return r.Ratings[:] }),
		Float("GI", 9, 19, 0, func(r *model.Branch) *float64 { return &r.GI }),
		Float("BI", 10, 20, 0, func(r *model.Branch) *float64 { return &r.BI }),
		Float("GJ", 11, 21, 0, func(r *model.Branch) *float64 { return &r.GJ }),
		Float("BJ", 12, 22, 0, func(r *model.Branch) *float64 { return &r.BJ }),
		Int("ST", 13, 23, 1, func(r *model.Branch) *int { return &r.Status }),
		Int("MET", 14, 24, 1, func(r *model.Branch) *int { return &r.MeterEnd }),
		Float("LEN", 15, 25, 0, func(r *model.Branch) *float64 { return &r.Length }),
		IntList("O", Every(16, 2, 4), Every(26, 2, 4), []int{1}, func(r *model.Branch) []int { return r.Owners[:] }),
		FloatList("F", Every(17, 2, 4), Every(27, 2, 4), []float64{1}, func(r *model.Branch) []float64 { return r.Fractions[:] }),
	},
}

// SwitchingDevice decodes system switching devices, which only Modern files carry.
var SwitchingDevice = &Schema[model.SwitchingDevice]{
	Kind: model.KindSwitchingDevice,
	Fields: []Field[model.SwitchingDevice]{
		Int("I", 0, 0, 0, func(r *model.SwitchingDevice) *int { return &r.From }).Require(),
		Int("J", 1, 1, 0, func(r *model.SwitchingDevice) *int { return &r.To }).Require(),
		String("CKT", 2, 2, "1", func(r *model.SwitchingDevice) *string { return &r.Circuit }),
		Float("X", 3, 3, 0.0001, func(r *model.SwitchingDevice) *float64 { return &r.X }),
		FloatList("RATE", Run(4, 12), Run(4, 12), nil, func(r *model.SwitchingDevice) []float64 { return r.Ratings[:] }),
		Int("STAT", 16, 16, 1, func(r *model.SwitchingDevice) *int { return &r.Status }),
		Int("NSTAT", 17, 17, 1, func(r *model.SwitchingDevice) *int { return &r.NormalStatus }),
		Int("MET", 18, 18, 1, func(r *model.SwitchingDevice) *int { return &r.MeterEnd }),
		Int("STYPE", 19, 19, 1, func(r *model.SwitchingDevice) *int { return &r.Type }),
		String("NAME", 20, 20, "", func(r *model.SwitchingDevice) *string { return &r.Name }),
	},
}
