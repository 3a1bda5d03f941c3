// Package engine decodes a complete RAW case from an in-memory buffer.
package engine

import (
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/ccollicutt/pssraw/pkg/decoder"
	"github.com/ccollicutt/pssraw/pkg/model"
	"github.com/ccollicutt/pssraw/pkg/parser"
)

// minChunk is the smallest number of groups handed to one decode task.
const minChunk = 256

// Engine orchestrates scanning, grouping and decoding of a case.
type Engine struct {
	workers         int
	defaultRevision int
	kinds           []model.SectionKind // nil means all kinds
}

// Option configures engine behavior.
type Option func(*Engine)

// WithWorkers bounds the number of concurrent decode tasks. Values below one
// select GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.workers = n
		}
	}
}

// WithDefaultRevision sets the revision assumed when the header has none.
func WithDefaultRevision(rev int) Option {
	return func(e *Engine) {
		if rev > 0 {
			e.defaultRevision = rev
		}
	}
}

// WithKinds limits decoding to the given kinds. Sections of other kinds are
// still located.
func WithKinds(kinds ...model.SectionKind) Option {
	return func(e *Engine) {
		if len(kinds) > 0 {
			e.kinds = append([]model.SectionKind(nil), kinds...)
		}
	}
}

// New creates an engine.
func New(opts ...Option) *Engine {
	e := &Engine{
		workers:         runtime.GOMAXPROCS(0),
		defaultRevision: model.DefaultRevision,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Workers returns the decode concurrency bound.
func (e *Engine) Workers() int {
	return e.workers
}

func (e *Engine) wants(kind model.SectionKind) bool {
	if e.kinds == nil {
		return true
	}
	for _, k := range e.kinds {
		if k == kind {
			return true
		}
	}
	return false
}

// Parse decodes a case. It never fails: damaged input yields fewer records
// and non-zero diagnostics. data is not modified and must not change while
// Parse runs.
func (e *Engine) Parse(data []byte) *model.Case {
	lines := parser.NewLines(data)
	layout := parser.Scan(lines, e.defaultRevision)
	era := layout.Era()

	c := model.NewCase(layout.Header)
	c.Sections = layout.Sections
	c.Lines = lines.Len()

	for _, sec := range layout.Sections {
		if !sec.Kind.Decodable() {
			continue
		}
		d := model.Diagnostics{Kind: sec.Kind}
		if sec.Empty() || !e.wants(sec.Kind) {
			c.Diagnostics = append(c.Diagnostics, d)
			continue
		}
		asm := parser.Assemble(lines, sec, era)
		d.Lines = asm.Lines
		d.Groups = len(asm.Groups)
		d.DiscardedLines = asm.Discarded
		e.decodeSection(c, era, asm.Groups, &d)
		c.Diagnostics = append(c.Diagnostics, d)
	}
	return c
}

func (e *Engine) decodeSection(c *model.Case, era model.Era, groups []parser.Group, d *model.Diagnostics) {
	switch d.Kind {
	case model.KindBus:
		c.Buses = decodeKind[model.Bus](e, decoder.Bus, era, groups, d)
	case model.KindLoad:
		c.Loads = decodeKind[model.Load](e, decoder.Load, era, groups, d)
	case model.KindFixedShunt:
		c.FixedShunts = decodeKind[model.FixedShunt](e, decoder.FixedShunt, era, groups, d)
	case model.KindGenerator:
		c.Generators = decodeKind[model.Generator](e, decoder.Generator, era, groups, d)
	case model.KindBranch:
		c.Branches = decodeKind[model.Branch](e, decoder.Branch, era, groups, d)
	case model.KindSwitchingDevice:
		c.SwitchingDevices = decodeKind[model.SwitchingDevice](e, decoder.SwitchingDevice, era, groups, d)
	case model.KindTransformer:
		c.Transformers = decodeKind[model.Transformer](e, decoder.Transformer, era, groups, d)
	case model.KindArea:
		c.Areas = decodeKind[model.Area](e, decoder.Area, era, groups, d)
	case model.KindTwoTerminalDc:
		c.TwoTerminalDcs = decodeKind[model.TwoTerminalDc](e, decoder.TwoTerminalDc, era, groups, d)
	case model.KindVscDc:
		c.VscDcs = decodeKind[model.VscDc](e, decoder.VscDc, era, groups, d)
	case model.KindImpedanceCorrection:
		c.ImpedanceCorrection = decodeKind[model.ImpedanceCorrection](e, decoder.ImpedanceCorrection, era, groups, d)
	case model.KindMultiTerminalDc:
		c.MultiTerminalDcs = decodeKind[model.MultiTerminalDc](e, decoder.MultiTerminalDc, era, groups, d)
	case model.KindMultiSectionLine:
		c.MultiSectionLines = decodeKind[model.MultiSectionLine](e, decoder.MultiSectionLine, era, groups, d)
	case model.KindZone:
		c.Zones = decodeKind[model.Zone](e, decoder.Zone, era, groups, d)
	case model.KindInterAreaTransfer:
		c.InterAreaTransfers = decodeKind[model.InterAreaTransfer](e, decoder.InterAreaTransfer, era, groups, d)
	case model.KindOwner:
		c.Owners = decodeKind[model.Owner](e, decoder.Owner, era, groups, d)
	case model.KindFacts:
		c.Facts = decodeKind[model.Facts](e, decoder.Facts, era, groups, d)
	case model.KindSwitchedShunt:
		c.SwitchedShunts = decodeKind[model.SwitchedShunt](e, decoder.SwitchedShunt, era, groups, d)
	case model.KindInductionMachine:
		c.InductionMachines = decodeKind[model.InductionMachine](e, decoder.InductionMachine, era, groups, d)
	}
}

// slot is one decoded group awaiting compaction.
type slot[T any] struct {
	rec T
	out decoder.Outcome
}

// decodeKind decodes groups in parallel and returns the accepted records in
// group order. Each task owns a contiguous chunk of result slots, so no two
// tasks write the same memory.
func decodeKind[T any](e *Engine, dec decoder.Decoder[T], era model.Era, groups []parser.Group, d *model.Diagnostics) []T {
	slots := make([]slot[T], len(groups))

	chunk := max(minChunk, (len(groups)+e.workers-1)/e.workers)
	var g errgroup.Group
	g.SetLimit(e.workers)
	for lo := 0; lo < len(groups); lo += chunk {
		lo, hi := lo, min(lo+chunk, len(groups))
		g.Go(func() error {
			for i := lo; i < hi; i++ {
				slots[i].rec, slots[i].out = dec.Decode(era, groups[i])
			}
			return nil
		})
	}
	_ = g.Wait() // tasks never fail

	recs := make([]T, 0, len(slots))
	for i := range slots {
		d.MalformedFields += slots[i].out.Malformed
		if !slots[i].out.OK {
			d.Skipped++
			continue
		}
		recs = append(recs, slots[i].rec)
	}
	d.Decoded = len(recs)
	return recs
}
