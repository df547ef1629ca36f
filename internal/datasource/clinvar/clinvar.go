// Package clinvar loads ClinVar variant reports grouped by gene symbol.
package clinvar

import (
	"fmt"
	"io"
	"strings"

	"github.com/inodb/vibe-acmg/internal/fileio"
)

// ClinVar TSV column names
const (
	ColVariant       = "normalized_variant:GRCh37:CPRA"
	ColPathogenicity = "pathogenicity"
	ColConsequence   = "variant:molecular_consequence"
	ColProteinChange = "variant:Protein1LetterCode"
	ColGeneSymbol    = "variant:gene:symbol"
)

// Molecular consequence terms as ClinVar spells them.
const (
	TermMissense       = "missense variant"
	TermNonsense       = "nonsense"
	TermFrameshift     = "frameshift variant"
	TermSpliceDonor    = "splice donor variant"
	TermSpliceAcceptor = "splice acceptor variant"
	TermInitiatorCodon = "initiator codon variant"
	TermSynonymous     = "synonymous variant"
	TermIntron         = "intron variant"
)

// NullTerms are the loss-of-function consequence terms.
var NullTerms = []string{
	TermNonsense,
	TermFrameshift,
	TermSpliceDonor,
	TermSpliceAcceptor,
	TermInitiatorCodon,
}

// Entry is one ClinVar variant report.
type Entry struct {
	VariantID     string
	Pathogenicity string
	Consequences  map[string]int // term -> occurrences across submissions
	ProteinChange string         // e.g. "G245R::G289R"
}

// IsPathogenic reports a pathogenic or likely pathogenic classification.
func (e *Entry) IsPathogenic() bool {
	return IsPathogenic(e.Pathogenicity)
}

// IsBenign reports a benign or likely benign classification.
func (e *Entry) IsBenign() bool {
	return IsBenign(e.Pathogenicity)
}

// Fraction returns the share of the entry's consequence counts that fall on
// terms. It is 0 when the entry has no consequences.
func (e *Entry) Fraction(terms ...string) float64 {
	total := 0
	for _, n := range e.Consequences {
		total += n
	}
	if total == 0 {
		return 0
	}
	matched := 0
	for _, term := range terms {
		matched += e.Consequences[term]
	}
	return float64(matched) / float64(total)
}

// IsPathogenic reports whether a ClinVar clinical significance is pathogenic.
func IsPathogenic(significance string) bool {
	switch significance {
	case "Pathogenic", "Likely pathogenic", "Pathogenic/Likely pathogenic":
		return true
	}
	return false
}

// IsBenign reports whether a ClinVar clinical significance is benign.
func IsBenign(significance string) bool {
	switch significance {
	case "Benign", "Likely benign", "Benign/Likely benign":
		return true
	}
	return false
}

// Gene maps variant id to report for one gene.
type Gene map[string]*Entry

// DB maps gene symbol to its reports.
type DB map[string]Gene

// Gene returns the reports for symbol.
func (db DB) Gene(symbol string) (Gene, bool) {
	g, ok := db[symbol]
	return g, ok
}

// Len returns the number of distinct variants across genes.
func (db DB) Len() int {
	seen := make(map[string]bool)
	for _, g := range db {
		for id := range g {
			seen[id] = true
		}
	}
	return len(seen)
}

// Load reads a ClinVar TSV export.
func Load(path string) (DB, error) {
	r, err := fileio.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open clinvar: %w", err)
	}
	defer r.Close()
	return Read(r)
}

// Read parses ClinVar TSV rows. Each gene listed in the symbol column
// receives its own reference to the entry.
func Read(r *fileio.Reader) (DB, error) {
	var cols fileio.Columns
	for cols == nil {
		line, err := r.ReadLine()
		if err == io.EOF {
			return nil, r.Errorf("no header line found")
		}
		if err != nil {
			return nil, err
		}
		if strings.HasPrefix(line, "##") || line == "" {
			continue
		}
		cols = fileio.NewColumns(strings.Split(line, "\t"))
		if err := cols.Require(ColVariant, ColPathogenicity, ColConsequence, ColProteinChange, ColGeneSymbol); err != nil {
			return nil, r.Errorf("%v", err)
		}
	}

	db := make(DB)
	for {
		line, err := r.ReadLine()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading clinvar: %w", err)
		}
		if line == "" {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) < len(cols) {
			return nil, r.Errorf("expected %d columns, found %d", len(cols), len(fields))
		}

		e := &Entry{
			VariantID:     cols.Field(fields, ColVariant),
			Pathogenicity: cols.Field(fields, ColPathogenicity),
			Consequences:  parseConsequences(cols.Field(fields, ColConsequence)),
			ProteinChange: cols.Field(fields, ColProteinChange),
		}
		for _, symbol := range strings.Split(cols.Field(fields, ColGeneSymbol), "::") {
			if symbol == "" {
				continue
			}
			g, ok := db[symbol]
			if !ok {
				g = make(Gene)
				db[symbol] = g
			}
			g[e.VariantID] = e
		}
	}
	return db, nil
}

// parseConsequences counts "::"-separated consequence annotations. Each
// annotation may carry an ontology prefix ("SO:0001583:missense variant");
// only the text after the last ':' is kept.
func parseConsequences(s string) map[string]int {
	counts := make(map[string]int)
	if s == "" || s == "-" {
		return counts
	}
	for _, c := range strings.Split(s, "::") {
		if i := strings.LastIndexByte(c, ':'); i >= 0 {
			c = c[i+1:]
		}
		if c == "" {
			continue
		}
		counts[c]++
	}
	return counts
}
