package acmg

import (
	"github.com/inodb/vibe-acmg/internal/datasource/clinvar"
)

// Report classifies a single ClinVar entry, e.g. as a null-variant report.
type Report func(e *clinvar.Entry) bool

// IsNullReport reports whether more than half of an entry's consequence
// counts are loss-of-function terms.
func IsNullReport(e *clinvar.Entry) bool {
	return e.Fraction(clinvar.NullTerms...) > 0.5
}

// IsMissenseReport reports whether more than half of an entry's consequence
// counts are missense.
func IsMissenseReport(e *clinvar.Entry) bool {
	return e.Fraction(clinvar.TermMissense) > 0.5
}

// Predominant reports whether match describes the gene's disease mechanism:
// at least two pathogenic entries match, and they are more than half of all
// pathogenic entries.
func Predominant(gene clinvar.Gene, match Report) bool {
	pathogenic, matched := 0, 0
	for _, e := range gene {
		if !e.IsPathogenic() {
			continue
		}
		pathogenic++
		if match(e) {
			matched++
		}
	}
	if pathogenic == 0 {
		return false
	}
	return matched >= 2 && float64(matched)/float64(pathogenic) > 0.5
}

// Mechanism is the predominant pathogenic variant class of a gene.
type Mechanism uint8

const (
	MechanismUnknown Mechanism = iota
	MechanismMissense
	MechanismNull
)

func (m Mechanism) String() string {
	switch m {
	case MechanismMissense:
		return "missense"
	case MechanismNull:
		return "null"
	}
	return "unknown"
}

// GeneMechanism returns the gene's mechanism. Missense takes precedence when
// both predicates would hold.
func GeneMechanism(gene clinvar.Gene) Mechanism {
	if Predominant(gene, IsMissenseReport) {
		return MechanismMissense
	}
	if Predominant(gene, IsNullReport) {
		return MechanismNull
	}
	return MechanismUnknown
}
