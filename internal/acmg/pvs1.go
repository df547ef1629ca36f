package acmg

import (
	"strconv"
	"strings"

	"github.com/inodb/vibe-acmg/internal/datasource/clinvar"
	"github.com/inodb/vibe-acmg/internal/variant"
)

// Truncation is how much of the protein a null variant removes.
type Truncation uint8

const (
	TruncationUnknown Truncation = iota
	// TruncationUnder90 means more than 10% of the protein is removed.
	TruncationUnder90
	// TruncationOver90 means the variant lies in the last 10% of the protein.
	TruncationOver90
)

// ClassifyTruncation grades a VEP Protein_position such as "77/97" or
// "987-988/4911" by the start position's fraction of the protein length.
func ClassifyTruncation(proteinPosition string) Truncation {
	pos, length, ok := strings.Cut(proteinPosition, "/")
	if !ok {
		return TruncationUnknown
	}
	pos, _, _ = strings.Cut(pos, "-")
	p, err := strconv.Atoi(pos)
	if err != nil {
		return TruncationUnknown
	}
	n, err := strconv.Atoi(length)
	if err != nil || n <= 0 {
		return TruncationUnknown
	}
	if float64(p)/float64(n) < 0.9 {
		return TruncationUnder90
	}
	return TruncationOver90
}

// TruncationStrength maps a truncation class to PVS1 strength. All classes
// currently grade VeryStrong.
func TruncationStrength(t Truncation) variant.Strength {
	switch t {
	case TruncationOver90:
		// TODO: grade Strong when the stop codon escapes nonsense-mediated decay.
		return variant.StrengthVeryStrong
	default:
		return variant.StrengthVeryStrong
	}
}

// PVS1 assigns null variants in genes whose known disease mechanism is loss
// of function.
type PVS1 struct {
	clinvar clinvar.DB
}

// NewPVS1 creates the null-variant rule.
func NewPVS1(db clinvar.DB) *PVS1 {
	return &PVS1{clinvar: db}
}

func (p *PVS1) Name() string { return "PVS1" }

func (p *PVS1) Codes() []variant.Code { return []variant.Code{variant.PVS1} }

func (p *PVS1) Apply(r *variant.Record) {
	r.Flags.SetStrength(p.strength(r))
}

func (p *PVS1) strength(r *variant.Record) variant.Strength {
	if !variant.IsNull(r.Consequence) || !r.HasSymbol() {
		return variant.StrengthNone
	}
	gene, ok := p.clinvar.Gene(r.Symbol)
	if !ok || !Predominant(gene, IsNullReport) {
		return variant.StrengthNone
	}
	return TruncationStrength(ClassifyTruncation(r.ProteinPosition))
}
