// Package disease loads gene-disease associations with inheritance modes.
package disease

import (
	"fmt"
	"io"
	"strings"

	"github.com/inodb/vibe-acmg/internal/fileio"
)

// Disease TSV column names
const (
	ColTitle        = "title"
	ColGeneSymbol   = "geneSymbol"
	ColInheritances = "inheritances:value"
	ColOnsetAges    = "onsetAges:value"
	ColSymptomIDs   = "symptoms:id"
	ColSymptoms     = "symptoms:name"
)

// Entry is one disease associated with a gene.
type Entry struct {
	Title        string
	Inheritances []string // e.g. "Autosomal recessive"
	OnsetAges    []string
	SymptomIDs   []string
	Symptoms     []string
}

// String renders the entry as "title (inheritance, ...)".
func (e *Entry) String() string {
	if len(e.Inheritances) == 0 {
		return e.Title
	}
	return e.Title + " (" + strings.Join(e.Inheritances, ", ") + ")"
}

// DB maps gene symbol to its diseases in file order.
type DB map[string][]*Entry

// Entries returns the diseases of symbol.
func (db DB) Entries(symbol string) []*Entry {
	return db[symbol]
}

// Load reads a disease TSV.
func Load(path string) (DB, error) {
	r, err := fileio.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open disease db: %w", err)
	}
	defer r.Close()
	return Read(r)
}

// Read parses disease TSV rows. Multi-valued columns are "||"-delimited and
// the gene column may list several "::"-joined symbols.
func Read(r *fileio.Reader) (DB, error) {
	line, err := r.ReadLine()
	if err == io.EOF {
		return nil, r.Errorf("no header line found")
	}
	if err != nil {
		return nil, err
	}
	cols := fileio.NewColumns(strings.Split(line, "\t"))
	if err := cols.Require(ColTitle, ColGeneSymbol, ColInheritances); err != nil {
		return nil, r.Errorf("%v", err)
	}

	db := make(DB)
	for {
		line, err := r.ReadLine()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading disease db: %w", err)
		}
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) <= cols[ColInheritances] || len(fields) <= cols[ColGeneSymbol] {
			return nil, r.Errorf("expected %d columns, found %d", len(cols), len(fields))
		}

		e := &Entry{
			Title:        cols.Field(fields, ColTitle),
			Inheritances: splitValues(cols.Field(fields, ColInheritances)),
			OnsetAges:    splitValues(cols.Field(fields, ColOnsetAges)),
			SymptomIDs:   splitValues(cols.Field(fields, ColSymptomIDs)),
			Symptoms:     splitValues(cols.Field(fields, ColSymptoms)),
		}
		for _, symbol := range strings.Split(cols.Field(fields, ColGeneSymbol), "::") {
			if symbol == "" {
				continue
			}
			db[symbol] = append(db[symbol], e)
		}
	}
	return db, nil
}

func splitValues(s string) []string {
	if s == "" || s == "-" {
		return nil
	}
	return strings.Split(s, "||")
}
