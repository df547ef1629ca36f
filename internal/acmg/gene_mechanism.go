package acmg

import (
	"github.com/inodb/vibe-acmg/internal/datasource/clinvar"
	"github.com/inodb/vibe-acmg/internal/variant"
)

// MechanismRule assigns PP2 to missense variants in genes where pathogenic
// variation is mostly missense, and BP1 to missense variants in genes where
// it is mostly truncating.
type MechanismRule struct {
	clinvar clinvar.DB
}

// NewMechanism creates the gene mechanism rule.
func NewMechanism(db clinvar.DB) *MechanismRule {
	return &MechanismRule{clinvar: db}
}

func (m *MechanismRule) Name() string { return "PP2/BP1" }

func (m *MechanismRule) Codes() []variant.Code { return []variant.Code{variant.PP2, variant.BP1} }

func (m *MechanismRule) Apply(r *variant.Record) {
	var pp2, bp1 bool
	if r.IsMissense() && r.HasSymbol() {
		if gene, ok := m.clinvar.Gene(r.Symbol); ok {
			switch GeneMechanism(gene) {
			case MechanismMissense:
				pp2 = true
			case MechanismNull:
				bp1 = true
			}
		}
	}
	r.Flags.Set(variant.PP2, pp2)
	r.Flags.Set(variant.BP1, bp1)
}
