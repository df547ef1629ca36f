package acmg

import (
	"strings"

	"github.com/inodb/vibe-acmg/internal/datasource/clinvar"
	"github.com/inodb/vibe-acmg/internal/variant"
)

// codonWindow is how far outside the affected codons a ClinVar variant may
// start and still be substituted into them.
const codonWindow = 3

// AminoAcidMatch is the outcome of comparing a missense variant with the
// pathogenic ClinVar variants of its gene.
type AminoAcidMatch struct {
	Same      bool // PS1: same amino-acid change as a pathogenic report
	Different bool // PM5: different change at the same residue
}

// MatchAminoAcid applies each same-length ClinVar variant of gene to the
// record's reference codons and compares the resulting amino acids with the
// record's own change. ClinVar variants that leave the reference residue
// unchanged are ignored.
func MatchAminoAcid(r *variant.Record, gene clinvar.Gene) AminoAcidMatch {
	var m AminoAcidMatch

	id, err := variant.ParseID(r.VariantID)
	if err != nil {
		return m
	}
	refCodon, altCodon, ok := strings.Cut(r.Codons, "/")
	if !ok {
		return m
	}
	refAA, altAA, ok := strings.Cut(r.AminoAcids, "/")
	if !ok {
		return m
	}
	if r.MinusStrand() {
		refCodon = ReverseComplement(refCodon)
		altCodon = ReverseComplement(altCodon)
	}

	// Changed bases are upper-case in VEP codons, so the alt allele locates
	// the codon start on the genome.
	altStart := strings.Index(altCodon, id.Alt)
	if altStart < 0 || len(refCodon)%3 != 0 {
		return m
	}
	first := id.Pos - int64(altStart)
	last := first + int64(len(refCodon)) - 1

	for cvID, e := range gene {
		if cvID == variant.UnknownSymbol || !e.IsPathogenic() {
			continue
		}
		cv, err := variant.ParseID(cvID)
		if err != nil || len(cv.Ref) != len(cv.Alt) {
			continue
		}
		if cv.Chrom != id.Chrom || cv.Pos < first-codonWindow || cv.Pos > last+codonWindow {
			continue
		}

		altered := []byte(strings.ToUpper(refCodon))
		for i := range altered {
			off := first + int64(i) - cv.Pos
			if off >= 0 && off < int64(len(cv.Alt)) {
				altered[i] = upper(cv.Alt[off])
			}
		}
		aa := translateGenomic(string(altered), r.MinusStrand())
		if aa == refAA {
			continue
		}
		if aa == altAA {
			m.Same = true
		} else {
			m.Different = true
		}
	}
	return m
}

// translateGenomic translates codons given in genome orientation for a
// transcript on the given strand.
func translateGenomic(seq string, minus bool) string {
	if minus {
		seq = ReverseComplement(seq)
	}
	return TranslateSequence(seq)
}

func upper(b byte) byte {
	if 'a' <= b && b <= 'z' {
		return b - ('a' - 'A')
	}
	return b
}

// ClinVarMatch assigns PS1/PM5 to missense variants that share a residue
// with pathogenic ClinVar reports, and PP5/BP6 to other variants that ClinVar
// reports directly.
type ClinVarMatch struct {
	clinvar clinvar.DB
}

// NewClinVarMatch creates the ClinVar matching rule.
func NewClinVarMatch(db clinvar.DB) *ClinVarMatch {
	return &ClinVarMatch{clinvar: db}
}

func (c *ClinVarMatch) Name() string { return "PS1/PM5/PP5/BP6" }

func (c *ClinVarMatch) Codes() []variant.Code {
	return []variant.Code{variant.PS1, variant.PM5, variant.PP5, variant.BP6}
}

func (c *ClinVarMatch) Apply(r *variant.Record) {
	var ps1, pm5, pp5, bp6 bool

	gene, known := c.clinvar.Gene(r.Symbol)
	known = known && r.HasSymbol()

	if r.IsMissense() {
		if known {
			m := MatchAminoAcid(r, gene)
			ps1, pm5 = m.Same, m.Different
		}
	} else if known {
		if e, ok := gene[r.VariantID]; ok {
			pp5 = e.IsPathogenic()
			bp6 = !pp5 && e.IsBenign()
		}
	}

	r.Flags.Set(variant.PS1, ps1)
	r.Flags.Set(variant.PM5, pm5)
	r.Flags.Set(variant.PP5, pp5)
	r.Flags.Set(variant.BP6, bp6)
}
