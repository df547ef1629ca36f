package acmg

import (
	"math"

	"github.com/inodb/vibe-acmg/internal/datasource/repeatmasker"
	"github.com/inodb/vibe-acmg/internal/variant"
)

// MatchRepeat reports whether a length-changing variant spanning
// [start, end] lies mostly inside a repeat region, i.e. whether its midpoint
// (rounded half to even) falls inside the nearest repeat starting at or before
// it. It returns (pm4, bp3); exactly one is true.
func MatchRepeat(index *repeatmasker.Index, chrom string, start, end int64) (pm4, bp3 bool) {
	mid := int64(math.RoundToEven(float64(start+end) / 2))
	if index != nil && index.Contains(chrom, mid) {
		return false, true
	}
	return true, false
}

// Repeat assigns PM4 to protein length changes outside repeat regions and
// BP3 to in-frame indels inside them.
type Repeat struct {
	index *repeatmasker.Index
}

// NewRepeat creates the repeat region rule.
func NewRepeat(index *repeatmasker.Index) *Repeat {
	return &Repeat{index: index}
}

func (p *Repeat) Name() string { return "PM4/BP3" }

func (p *Repeat) Codes() []variant.Code { return []variant.Code{variant.PM4, variant.BP3} }

// Apply leaves records that are neither in-frame indels nor stop losses
// unevaluated.
func (p *Repeat) Apply(r *variant.Record) {
	var pm4, bp3 bool
	switch {
	case variant.IsInframe(r.Consequence):
		pm4, bp3 = MatchRepeat(p.index, r.Chrom, r.Start, r.End)
	case variant.IsStopLost(r.Consequence):
		pm4 = true
	default:
		return
	}
	r.Flags.Set(variant.PM4, pm4)
	r.Flags.Set(variant.BP3, bp3)
}
