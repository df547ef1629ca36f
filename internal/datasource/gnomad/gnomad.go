// Package gnomad patches population allele counts from a gnomAD sites VCF
// into the variant store.
package gnomad

import (
	"fmt"

	"github.com/inodb/vibe-acmg/internal/variant"
	"github.com/inodb/vibe-acmg/internal/vcf"
)

// INFO keys read from the gnomAD VCF.
const (
	InfoAC = "AC"
	InfoAN = "AN"
	InfoAF = "AF"
)

// Patch streams the gnomAD VCF at path and fills Population on every
// transcript record of each matching variant. It returns the number of
// variants patched.
func Patch(path string, store *variant.Store) (int, error) {
	p, err := vcf.NewParser(path)
	if err != nil {
		return 0, fmt.Errorf("open gnomad: %w", err)
	}
	defer p.Close()
	return PatchFrom(p, store)
}

// PatchFrom is Patch over an already open site reader.
func PatchFrom(r vcf.SiteReader, store *variant.Store) (int, error) {
	patched := 0
	for {
		site, err := r.Next()
		if err != nil {
			return patched, fmt.Errorf("reading gnomad: %w", err)
		}
		if site == nil {
			break
		}
		for _, v := range vcf.SplitMultiAllelic(site, InfoAC, InfoAF) {
			records := store.Transcripts(v.Key())
			if len(records) == 0 {
				continue
			}
			pop := population(v)
			for _, rec := range records {
				rec.Population = pop
			}
			patched++
		}
	}
	return patched, nil
}

func population(v *vcf.Variant) variant.Population {
	var pop variant.Population
	pop.AC, _ = v.InfoInt(InfoAC)
	pop.AN, _ = v.InfoInt(InfoAN)
	if af, ok := v.InfoFloat(InfoAF); ok {
		pop.AF = &af
	}
	return pop
}
