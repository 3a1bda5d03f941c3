package decoder

import (
	"github.com/ccollicutt/pssraw/pkg/model"
	"github.com/ccollicutt/pssraw/pkg/parser"
)

type xf = model.Transformer

var transformerHead = []Field[xf]{
	Int("I", 0, 0, 0, func(r *xf) *int { return &r.From }).Require(),
	Int("J", 1, 1, 0, func(r *xf) *int { return &r.To }).Require(),
	Int("K", 2, 2, 0, func(r *xf) *int { return &r.Tertiary }),
	String("CKT", 3, 3, "1", func(r *xf) *string { return &r.Circuit }),
	Int("CW", 4, 4, 1, func(r *xf) *int { return &r.WindingCode }),
	Int("CZ", 5, 5, 1, func(r *xf) *int { return &r.ImpedanceCode }),
	Int("CM", 6, 6, 1, func(r *xf) *int { return &r.AdmittanceCode }),
	Float("MAG1", 7, 7, 0, func(r *xf) *float64 { return &r.MagG }),
	Float("MAG2", 8, 8, 0, func(r *xf) *float64 { return &r.MagB }),
	Int("NMETR", 9, 9, 2, func(r *xf) *int { return &r.MeterEnd }),
	String("NAME", 10, 10, "", func(r *xf) *string { return &r.Name }),
	Int("STAT", 11, 11, 1, func(r *xf) *int { return &r.Status }),
	IntList("O", Every(12, 2, 4), Every(12, 2, 4), []int{1}, func(r *xf) []int { return r.Owners[:] }),
	FloatList("F", Every(13, 2, 4), Every(13, 2, 4), []float64{1}, func(r *xf) []float64 { return r.Fractions[:] }),
	String("VECGRP", 20, 20, "", func(r *xf) *string { return &r.VectorGroup }),
	Int("ZCOD", Absent, 21, 0, func(r *xf) *int { return &r.ZeroSeqCode }),
}

var twoWindingImpedance = []Field[xf]{
	Float("R1-2", 0, 0, 0, func(r *xf) *float64 { return &r.R12 }).On(1),
	Float("X1-2", 1, 1, 0, func(r *xf) *float64 { return &r.X12 }).On(1),
	Float("SBASE1-2", 2, 2, 100, func(r *xf) *float64 { return &r.SBase12 }).On(1),
}

var threeWindingImpedance = append(append([]Field[xf]{}, twoWindingImpedance...),
	Float("R2-3", 3, 3, 0, func(r *xf) *float64 { return &r.R23 }).On(1),
	Float("X2-3", 4, 4, 0, func(r *xf) *float64 { return &r.X23 }).On(1),
	Float("SBASE2-3", 5, 5, 100, func(r *xf) *float64 { return &r.SBase23 }).On(1),
	Float("R3-1", 6, 6, 0, func(r *xf) *float64 { return &r.R31 }).On(1),
	Float("X3-1", 7, 7, 0, func(r *xf) *float64 { return &r.X31 }).On(1),
	Float("SBASE3-1", 8, 8, 100, func(r *xf) *float64 { return &r.SBase31 }).On(1),
	Float("VMSTAR", 9, 9, 1.0, func(r *xf) *float64 { return &r.StarVoltage }).On(1),
	Float("ANSTAR", 10, 10, 0, func(r *xf) *float64 { return &r.StarAngle }).On(1),
)

// windingRatio is the part of a winding line every transformer carries.
var windingRatio = []Field[model.Winding]{
	Float("WINDV", 0, 0, 1.0, func(r *model.Winding) *float64 { return &r.Ratio }),
	Float("NOMV", 1, 1, 0, func(r *model.Winding) *float64 { return &r.NominalKV }),
}

// windingControl follows the ratio on fully specified winding lines. Modern
// files carry twelve ratings and a controlled node.
var windingControl = []Field[model.Winding]{
	Float("ANG", 2, 2, 0, func(r *model.Winding) *float64 { return &r.Angle }),
	FloatList("RATE", Run(3, 3), Run(3, 12), nil, func(r *model.Winding) []float64 { return r.Ratings[:] }),
	Int("COD", 6, 15, 0, func(r *model.Winding) *int { return &r.ControlMode }),
	Int("CONT", 7, 16, 0, func(r *model.Winding) *int { return &r.ControlledBus }),
	Int("NODE", Absent, 17, 0, func(r *model.Winding) *int { return &r.ControlledNode }),
	Float("RMA", 8, 18, 1.1, func(r *model.Winding) *float64 { return &r.RMax }),
	Float("RMI", 9, 19, 0.9, func(r *model.Winding) *float64 { return &r.RMin }),
	Float("VMA", 10, 20, 1.1, func(r *model.Winding) *float64 { return &r.VMax }),
	Float("VMI", 11, 21, 0.9, func(r *model.Winding) *float64 { return &r.VMin }),
	Int("NTP", 12, 22, 33, func(r *model.Winding) *int { return &r.TapPositions }),
	Int("TAB", 13, 23, 0, func(r *model.Winding) *int { return &r.ImpedanceTable }),
	Float("CR", 14, 24, 0, func(r *model.Winding) *float64 { return &r.LoadDropR }),
	Float("CX", 15, 25, 0, func(r *model.Winding) *float64 { return &r.LoadDropX }),
	Float("CNXA", 16, 26, 0, func(r *model.Winding) *float64 { return &r.CorrectionAngle }),
}

var windingFull = append(append([]Field[model.Winding]{}, windingRatio...), windingControl...)

func winding(i int) func(*xf) *model.Winding {
	return func(r *xf) *model.Winding { return &r.Windings[i] }
}

func concat[T any](parts ...[]Field[T]) []Field[T] {
	var out []Field[T]
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

// TwoWinding decodes the four-line form. Its last line holds only the second
// winding's ratio and nominal voltage.
var TwoWinding = &Schema[xf]{
	Kind: model.KindTransformer,
	Fields: concat(
		transformerHead,
		twoWindingImpedance,
		Nest(2, winding(0), windingFull...),
		Nest(3, winding(1), windingRatio...),
	),
}

// ThreeWinding decodes the five-line form.
var ThreeWinding = &Schema[xf]{
	Kind: model.KindTransformer,
	Fields: concat(
		transformerHead,
		threeWindingImpedance,
		Nest(2, winding(0), windingFull...),
		Nest(3, winding(1), windingFull...),
		Nest(4, winding(2), windingFull...),
	),
}

// Transformer picks the two or three winding schema by group length.
var Transformer Decoder[xf] = transformerDecoder{}

type transformerDecoder struct{}

func (transformerDecoder) Decode(era model.Era, g parser.Group) (xf, Outcome) {
	if g.Len() >= 5 {
		return ThreeWinding.Decode(era, g)
	}
	return TwoWinding.Decode(era, g)
}
