package acmg

import (
	"github.com/inodb/vibe-acmg/internal/datasource/clinvar"
	"github.com/inodb/vibe-acmg/internal/variant"
)

func entry(id, pathogenicity string, consequences map[string]int) *clinvar.Entry {
	return &clinvar.Entry{VariantID: id, Pathogenicity: pathogenicity, Consequences: consequences}
}

func geneOf(entries ...*clinvar.Entry) clinvar.Gene {
	g := make(clinvar.Gene, len(entries))
	for _, e := range entries {
		g[e.VariantID] = e
	}
	return g
}

func nullGene() clinvar.Gene {
	return geneOf(
		entry("13-32921028-CTTTCGG-C", "Pathogenic", map[string]int{clinvar.TermSpliceDonor: 1}),
		entry("13-32930600-C-T", "Likely pathogenic", map[string]int{clinvar.TermNonsense: 2, clinvar.TermIntron: 1}),
		entry("13-32950906-C-A", "Pathogenic", map[string]int{clinvar.TermMissense: 2, clinvar.TermIntron: 1}),
		entry("13-32953000-G-A", "Benign", map[string]int{clinvar.TermSynonymous: 1}),
	)
}

func missenseGene() clinvar.Gene {
	return geneOf(
		entry("7-100-A-G", "Pathogenic", map[string]int{clinvar.TermMissense: 2, clinvar.TermIntron: 1}),
		entry("7-200-C-T", "Pathogenic/Likely pathogenic", map[string]int{clinvar.TermMissense: 1}),
		entry("7-300-G-GA", "Pathogenic", map[string]int{clinvar.TermFrameshift: 1}),
	)
}

func record(id, consequence, symbol string) *variant.Record {
	r := &variant.Record{
		VariantID:    id,
		TranscriptID: "ENST00000000001",
		Consequence:  consequence,
		Symbol:       symbol,
		Strand:       "1",
	}
	if vid, err := variant.ParseID(id); err == nil {
		r.Chrom = vid.Chrom
		r.Start = vid.Pos
		r.End = vid.Pos + int64(len(vid.Ref)) - 1
	}
	return r
}

func ptr(f float64) *float64 { return &f }
