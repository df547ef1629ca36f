package vcf

import (
	"strconv"

	"github.com/inodb/vibe-acmg/internal/variant"
)

// Variant represents a single site from a VCF file.
type Variant struct {
	Chrom  string            // Chromosome name (e.g., "12", "chr12")
	Pos    int64             // 1-based genomic position
	ID     string            // Variant identifier
	Ref    string            // Reference allele
	Alt    string            // Alternate allele(s)
	Filter string            // Filter status (PASS or filter name)
	Info   map[string]string // INFO field key-value pairs
}

// NormalizeChrom returns the chromosome name without "chr" prefix.
func (v *Variant) NormalizeChrom() string {
	return variant.NormalizeChrom(v.Chrom)
}

// Key returns the chrom-pos-ref-alt identifier used by the variant store.
func (v *Variant) Key() string {
	return variant.ID{Chrom: v.NormalizeChrom(), Pos: v.Pos, Ref: v.Ref, Alt: v.Alt}.String()
}

// InfoInt returns an integer INFO value.
func (v *Variant) InfoInt(key string) (int64, bool) {
	s, ok := v.Info[key]
	if !ok {
		return 0, false
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// InfoFloat returns a floating-point INFO value.
func (v *Variant) InfoFloat(key string) (float64, bool) {
	s, ok := v.Info[key]
	if !ok {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
