package acmg

import (
	"github.com/inodb/vibe-acmg/internal/variant"
	"github.com/inodb/vibe-acmg/internal/vcf"
)

// DeNovo assigns PS2 to proband variants that neither parent carries.
type DeNovo struct {
	proband vcf.Genotypes
	father  vcf.Genotypes
	mother  vcf.Genotypes
}

// NewDeNovo creates the de novo rule from the trio's genotypes. A nil parent
// map is treated as a parent carrying nothing.
func NewDeNovo(proband, father, mother vcf.Genotypes) *DeNovo {
	return &DeNovo{proband: proband, father: father, mother: mother}
}

func (d *DeNovo) Name() string { return "PS2" }

func (d *DeNovo) Codes() []variant.Code { return []variant.Code{variant.PS2} }

// Apply leaves records the proband does not carry unevaluated.
func (d *DeNovo) Apply(r *variant.Record) {
	if !d.proband.Has(r.VariantID) {
		return
	}
	r.Flags.Set(variant.PS2, IsDeNovo(r.VariantID, d.father, d.mother))
}

// IsDeNovo reports whether neither parent carries a non-reference allele at
// variantID. Hom-ref and missing parental calls count as not carrying.
// Homozygous, heterozygous and partially missing proband calls are treated
// alike, so a homozygous proband with one carrier parent is not de novo.
func IsDeNovo(variantID string, father, mother vcf.Genotypes) bool {
	return !father.Has(variantID) && !mother.Has(variantID)
}
