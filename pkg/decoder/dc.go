package decoder

import (
	"github.com/ccollicutt/pssraw/pkg/model"
	"github.com/ccollicutt/pssraw/pkg/parser"
)

// dcConverter is a rectifier or inverter line. Modern files insert the
// commutating node after the controlled bus.
var dcConverter = []Field[model.DcConverter]{
	Int("IP", 0, 0, 0, func(r *model.DcConverter) *int { return &r.Bus }),
	Int("NB", 1, 1, 0, func(r *model.DcConverter) *int { return &r.Bridges }),
	Float("ANMX", 2, 2, 0, func(r *model.DcConverter) *float64 { return &r.AngleMax }),
	Float("ANMN", 3, 3, 0, func(r *model.DcConverter) *float64 { return &r.AngleMin }),
	Float("RC", 4, 4, 0, func(r *model.DcConverter) *float64 { return &r.R }),
	Float("XC", 5, 5, 0, func(r *model.DcConverter) *float64 { return &r.X }),
	Float("EBAS", 6, 6, 0, func(r *model.DcConverter) *float64 { return &r.BaseKV }),
	Float("TR", 7, 7, 1.0, func(r *model.DcConverter) *float64 { return &r.TurnsRatio }),
	Float("TAP", 8, 8, 1.0, func(r *model.DcConverter) *float64 { return &r.Tap }),
	Float("TMX", 9, 9, 1.5, func(r *model.DcConverter) *float64 { return &r.TapMax }),
	Float("TMN", 10, 10, 0.51, func(r *model.DcConverter) *float64 { return &r.TapMin }),
	Float("STP", 11, 11, 0.00625, func(r *model.DcConverter) *float64 { return &r.TapStep }),
	Int("IC", 12, 12, 0, func(r *model.DcConverter) *int { return &r.ControlledBus }),
	Int("ND", Absent, 13, 0, func(r *model.DcConverter) *int { return &r.ControlledNode }),
	Int("IF", 13, 14, 0, func(r *model.DcConverter) *int { return &r.FromBus }),
	Int("IT", 14, 15, 0, func(r *model.DcConverter) *int { return &r.ToBus }),
	String("ID", 15, 16, "1", func(r *model.DcConverter) *string { return &r.CircuitID }),
	Float("XCAP", 16, 17, 0, func(r *model.DcConverter) *float64 { return &r.Capacitance }),
}

// TwoTerminalDc decodes the three-line two-terminal DC record.
var TwoTerminalDc = &Schema[model.TwoTerminalDc]{
	Kind: model.KindTwoTerminalDc,
	Fields: concat(
		[]Field[model.TwoTerminalDc]{
			String("NAME", 0, 0, "", func(r *model.TwoTerminalDc) *string { return &r.Name }).Require(),
			Int("MDC", 1, 1, 0, func(r *model.TwoTerminalDc) *int { return &r.ControlMode }),
			Float("RDC", 2, 2, 0, func(r *model.TwoTerminalDc) *float64 { return &r.R }),
			Float("SETVL", 3, 3, 0, func(r *model.TwoTerminalDc) *float64 { return &r.Setpoint }),
			Float("VSCHD", 4, 4, 0, func(r *model.TwoTerminalDc) *float64 { return &r.ScheduledVoltage }),
			Float("VCMOD", 5, 5, 0, func(r *model.TwoTerminalDc) *float64 { return &r.ModeSwitchVoltage }),
			Float("RCOMP", 6, 6, 0, func(r *model.TwoTerminalDc) *float64 { return &r.CompoundingR }),
			Float("DELTI", 7, 7, 0, func(r *model.TwoTerminalDc) *float64 { return &r.MarginCurrent }),
			String("METER", 8, 8, "I", func(r *model.TwoTerminalDc) *string { return &r.Meter }),
			Float("DCVMIN", 9, 9, 0, func(r *model.TwoTerminalDc) *float64 { return &r.MinCompoundingVoltage }),
			Int("CCCITMX", 10, 10, 20, func(r *model.TwoTerminalDc) *int { return &r.MaxIterations }),
			Float("CCCACC", 11, 11, 1.0, func(r *model.TwoTerminalDc) *float64 { return &r.Acceleration }),
		},
		Nest(1, func(r *model.TwoTerminalDc) *model.DcConverter { return &r.Rectifier }, dcConverter...),
		Nest(2, func(r *model.TwoTerminalDc) *model.DcConverter { return &r.Inverter }, dcConverter...),
	),
}

var vscConverter = []Field[model.VscConverter]{
	Int("IBUS", 0, 0, 0, func(r *model.VscConverter) *int { return &r.Bus }),
	Int("TYPE", 1, 1, 0, func(r *model.VscConverter) *int { return &r.Type }),
	Int("MODE", 2, 2, 1, func(r *model.VscConverter) *int { return &r.Mode }),
	Float("DCSET", 3, 3, 0, func(r *model.VscConverter) *float64 { return &r.DCSetpoint }),
	Float("ACSET", 4, 4, 1.0, func(r *model.VscConverter) *float64 { return &r.ACSetpoint }),
	Float("ALOSS", 5, 5, 0, func(r *model.VscConverter) *float64 { return &r.ALoss }),
	Float("BLOSS", 6, 6, 0, func(r *model.VscConverter) *float64 { return &r.BLoss }),
	Float("MINLOSS", 7, 7, 0, func(r *model.VscConverter) *float64 { return &r.MinLoss }),
	Float("SMAX", 8, 8, 0, func(r *model.VscConverter) *float64 { return &r.SMax }),
	Float("IMAX", 9, 9, 0, func(r *model.VscConverter) *float64 { return &r.IMax }),
	Float("PWF", 10, 10, 1.0, func(r *model.VscConverter) *float64 { return &r.PowerWeight }),
	Float("MAXQ", 11, 11, 9999, func(r *model.VscConverter) *float64 { return &r.QMax }),
	Float("MINQ", 12, 12, -9999, func(r *model.VscConverter) *float64 { return &r.QMin }),
	Int("VSREG", 13, 13, 0, func(r *model.VscConverter) *int { return &r.RegulatedBus }),
	Int("NREG", Absent, 14, 0, func(r *model.VscConverter) *int { return &r.RegulatedNode }),
	Float("RMPCT", 14, 15, 100, func(r *model.VscConverter) *float64 { return &r.RegulationPercent }),
}

func vscSide(i int) func(*model.VscDc) *model.VscConverter {
	return func(r *model.VscDc) *model.VscConverter { return &r.Converters[i] }
}

// VscDc decodes the three-line VSC DC record.
var VscDc = &Schema[model.VscDc]{
	Kind: model.KindVscDc,
	Fields: concat(
		[]Field[model.VscDc]{
			String("NAME", 0, 0, "", func(r *model.VscDc) *string { return &r.Name }).Require(),
			Int("MDC", 1, 1, 1, func(r *model.VscDc) *int { return &r.ControlMode }),
			Float("RDC", 2, 2, 0, func(r *model.VscDc) *float64 { return &r.R }),
			IntList("O", Every(3, 2, 4), Every(3, 2, 4), []int{1}, func(r *model.VscDc) []int { return r.Owners[:] }),
			FloatList("F", Every(4, 2, 4), Every(4, 2, 4), []float64{1}, func(r *model.VscDc) []float64 { return r.Fractions[:] }),
		},
		Nest(1, vscSide(0), vscConverter...),
		Nest(2, vscSide(1), vscConverter...),
	),
}

var correctionIndex = &Schema[model.ImpedanceCorrection]{
	Kind: model.KindImpedanceCorrection,
	Fields: []Field[model.ImpedanceCorrection]{
		Int("I", 0, 0, 0, func(r *model.ImpedanceCorrection) *int { return &r.Table }).Require(),
	},
}

// ImpedanceCorrection decodes one correction table. Entries keep file order;
// the terminating all-zero entry is never stored.
var ImpedanceCorrection Decoder[model.ImpedanceCorrection] = correctionDecoder{}

type correctionDecoder struct{}

func (correctionDecoder) Decode(era model.Era, g parser.Group) (model.ImpedanceCorrection, Outcome) {
	rec, out := correctionIndex.Decode(era, g)
	tuples := parser.CorrectionTuples(g, era)
	rec.Entries = make([]model.CorrectionPoint, 0, len(tuples))
	for _, t := range tuples {
		var p model.CorrectionPoint
		dst := []*float64{&p.Tap, &p.Real, &p.Imag}
		for i, tok := range t {
			v, ok, bad := read([]string{tok}, 0, parser.ParseFloat)
			out.Malformed += bad
			if ok {
				*dst[i] = v
			}
		}
		rec.Entries = append(rec.Entries, p)
	}
	return rec, out
}

var mtdcHead = &Schema[model.MultiTerminalDc]{
	Kind: model.KindMultiTerminalDc,
	Fields: []Field[model.MultiTerminalDc]{
		String("NAME", 0, 0, "", func(r *model.MultiTerminalDc) *string { return &r.Name }).Require(),
		Int("MDC", 4, 4, 0, func(r *model.MultiTerminalDc) *int { return &r.ControlMode }),
		Int("VCONV", 5, 5, 0, func(r *model.MultiTerminalDc) *int { return &r.VoltageConverter }),
		Float("VCMOD", 6, 6, 0, func(r *model.MultiTerminalDc) *float64 { return &r.ModeSwitchVoltage }),
		Int("VCONVN", 7, 7, 0, func(r *model.MultiTerminalDc) *int { return &r.AltVoltageConverter }),
	},
}

var mtdcConverter = &Schema[model.MtdcConverter]{
	Kind: model.KindMultiTerminalDc,
	Fields: []Field[model.MtdcConverter]{
		Int("IB", 0, 0, 0, func(r *model.MtdcConverter) *int { return &r.Bus }),
		Int("N", 1, 1, 0, func(r *model.MtdcConverter) *int { return &r.Bridges }),
		Float("ANGMX", 2, 2, 0, func(r *model.MtdcConverter) *float64 { return &r.AngleMax }),
		Float("ANGMN", 3, 3, 0, func(r *model.MtdcConverter) *float64 { return &r.AngleMin }),
		Float("RC", 4, 4, 0, func(r *model.MtdcConverter) *float64 { return &r.R }),
		Float("XC", 5, 5, 0, func(r *model.MtdcConverter) *float64 { return &r.X }),
		Float("EBAS", 6, 6, 0, func(r *model.MtdcConverter) *float64 { return &r.BaseKV }),
		Float("TR", 7, 7, 1.0, func(r *model.MtdcConverter) *float64 { return &r.TurnsRatio }),
		Float("TAP", 8, 8, 1.0, func(r *model.MtdcConverter) *float64 { return &r.Tap }),
		Float("TPMX", 9, 9, 1.5, func(r *model.MtdcConverter) *float64 { return &r.TapMax }),
		Float("TPMN", 10, 10, 0.51, func(r *model.MtdcConverter) *float64 { return &r.TapMin }),
		Float("TSTP", 11, 11, 0.00625, func(r *model.MtdcConverter) *float64 { return &r.TapStep }),
		Float("SETVL", 12, 12, 0, func(r *model.MtdcConverter) *float64 { return &r.Setpoint }),
		Float("DCPF", 13, 13, 1.0, func(r *model.MtdcConverter) *float64 { return &r.ParticipationPF }),
		Float("MARG", 14, 14, 0, func(r *model.MtdcConverter) *float64 { return &r.Margin }),
		Int("CNVCOD", 15, 15, 1, func(r *model.MtdcConverter) *int { return &r.Code }),
	},
}

var mtdcBus = &Schema[model.MtdcBus]{
	Kind: model.KindMultiTerminalDc,
	Fields: []Field[model.MtdcBus]{
		Int("IDC", 0, 0, 0, func(r *model.MtdcBus) *int { return &r.Number }),
		Int("IB", 1, 1, 0, func(r *model.MtdcBus) *int { return &r.ACBus }),
		Int("AREA", 2, 2, 1, func(r *model.MtdcBus) *int { return &r.Area }),
		Int("ZONE", 3, 3, 1, func(r *model.MtdcBus) *int { return &r.Zone }),
		String("DCNAME", 4, 4, "", func(r *model.MtdcBus) *string { return &r.Name }),
		Int("IDC2", 5, 5, 0, func(r *model.MtdcBus) *int { return &r.SecondBus }),
		Float("RGRND", 6, 6, 0, func(r *model.MtdcBus) *float64 { return &r.GroundR }),
		Int("OWNER", 7, 7, 1, func(r *model.MtdcBus) *int { return &r.Owner }),
	},
}

var mtdcLink = &Schema[model.MtdcLink]{
	Kind: model.KindMultiTerminalDc,
	Fields: []Field[model.MtdcLink]{
		Int("IDC", 0, 0, 0, func(r *model.MtdcLink) *int { return &r.From }),
		Int("JDC", 1, 1, 0, func(r *model.MtdcLink) *int { return &r.To }),
		String("DCCKT", 2, 2, "1", func(r *model.MtdcLink) *string { return &r.Circuit }),
		Int("MET", 3, 3, 1, func(r *model.MtdcLink) *int { return &r.MeterEnd }),
		Float("RDC", 4, 4, 0, func(r *model.MtdcLink) *float64 { return &r.R }),
		Float("LDC", 5, 5, 0, func(r *model.MtdcLink) *float64 { return &r.L }),
	},
}

// MultiTerminalDc decodes a multi-terminal DC record. The first line declares
// how many converter, DC bus and DC link lines follow, in that order.
var MultiTerminalDc Decoder[model.MultiTerminalDc] = mtdcDecoder{}

type mtdcDecoder struct{}

func (mtdcDecoder) Decode(era model.Era, g parser.Group) (model.MultiTerminalDc, Outcome) {
	rec, out := mtdcHead.Decode(era, g)
	counts := parser.MultiTerminalCounts(g.Tokens(0), g.Len())
	rec.Converters = decodeRun(mtdcConverter, era, g, 1, counts[0], &out)
	rec.Buses = decodeRun(mtdcBus, era, g, 1+counts[0], counts[1], &out)
	rec.Links = decodeRun(mtdcLink, era, g, 1+counts[0]+counts[1], counts[2], &out)
	return rec, out
}

// decodeRun decodes n single-line sub-records starting at line from of g.
func decodeRun[T any](s *Schema[T], era model.Era, g parser.Group, from, n int, out *Outcome) []T {
	recs := make([]T, 0, n)
	for i := from; i < from+n && i < g.Len(); i++ {
		rec, o := s.Decode(era, parser.Group{Lines: g.Lines[i : i+1]})
		out.merge(o)
		recs = append(recs, rec)
	}
	return recs
}
