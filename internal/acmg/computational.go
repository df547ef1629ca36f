package acmg

import (
	"github.com/inodb/vibe-acmg/internal/datasource/spliceai"
	"github.com/inodb/vibe-acmg/internal/variant"
)

const (
	revelThreshold    = 0.5
	spliceAIThreshold = 0.5
)

// PredictMissense grades a missense variant from its REVEL score and, when
// REVEL does not already call it damaging, its SpliceAI deltas. It returns
// (pp3, bp4). A benign REVEL score yields a provisional bp4 that a damaging
// SpliceAI prediction overrides. found is false when SpliceAI has no entry
// for the variant and gene; nil deltas are placeholder scores and change
// nothing.
func PredictMissense(revel *float64, deltas *spliceai.Deltas, found bool) (pp3, bp4 bool) {
	if revel != nil {
		if *revel >= revelThreshold {
			return true, false
		}
		bp4 = true
	}
	if found && deltas != nil {
		return splicing(deltas)
	}
	return pp3, bp4
}

// PredictSplicing grades a non-missense variant from SpliceAI alone and
// returns (pp3, bp4). Both are false without a usable prediction.
func PredictSplicing(deltas *spliceai.Deltas, found bool) (pp3, bp4 bool) {
	if !found || deltas == nil {
		return false, false
	}
	return splicing(deltas)
}

func splicing(deltas *spliceai.Deltas) (pp3, bp4 bool) {
	if deltas.Max() >= spliceAIThreshold {
		return true, false
	}
	return false, true
}

// Computational assigns PP3/BP4 from in-silico predictors, and BP7 to
// synonymous variants predicted to have no splicing impact.
type Computational struct {
	spliceai spliceai.DB
}

// NewComputational creates the computational prediction rule. REVEL scores
// are read from the records.
func NewComputational(db spliceai.DB) *Computational {
	return &Computational{spliceai: db}
}

func (c *Computational) Name() string { return "PP3/BP4/BP7" }

func (c *Computational) Codes() []variant.Code {
	return []variant.Code{variant.PP3, variant.BP4, variant.BP7}
}

func (c *Computational) Apply(r *variant.Record) {
	deltas, found := c.spliceai.Lookup(r.VariantID, r.Symbol)

	var pp3, bp4, bp7 bool
	if r.IsMissense() {
		pp3, bp4 = PredictMissense(r.REVEL, deltas, found)
	} else {
		pp3, bp4 = PredictSplicing(deltas, found)
		bp7 = bp4 && variant.IsSynonymous(r.Consequence)
	}

	r.Flags.Set(variant.PP3, pp3)
	r.Flags.Set(variant.BP4, bp4)
	r.Flags.Set(variant.BP7, bp7)
}
