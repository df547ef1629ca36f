// Package vep reads VEP tab-delimited annotation output into a variant store.
package vep

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/inodb/vibe-acmg/internal/fileio"
	"github.com/inodb/vibe-acmg/internal/variant"
)

// Standard VEP tab column names
const (
	ColUploadedVariation = "Uploaded_variation"
	ColLocation          = "Location"
	ColGene              = "Gene"
	ColFeature           = "Feature"
	ColConsequence       = "Consequence"
	ColCDNAPosition      = "cDNA_position"
	ColCDSPosition       = "CDS_position"
	ColProteinPosition   = "Protein_position"
	ColAminoAcids        = "Amino_acids"
	ColCodons            = "Codons"
	ColExtra             = "Extra"
)

var requiredColumns = []string{
	ColUploadedVariation, ColLocation, ColGene, ColFeature, ColConsequence,
	ColCDNAPosition, ColCDSPosition, ColProteinPosition, ColAminoAcids,
	ColCodons, ColExtra,
}

// Parser reads records from a VEP tab file.
type Parser struct {
	r    *fileio.Reader
	cols fileio.Columns
}

// NewParser reads the header of r and returns a parser positioned at the
// first data line. "##" metadata lines are skipped.
func NewParser(r *fileio.Reader) (*Parser, error) {
	p := &Parser{r: r}
	for {
		line, err := r.ReadLine()
		if err == io.EOF {
			return nil, r.Errorf("no #Uploaded_variation header line found")
		}
		if err != nil {
			return nil, err
		}
		if strings.HasPrefix(line, "##") {
			continue
		}
		if !strings.HasPrefix(line, "#") {
			return nil, r.Errorf("expected header line, found data")
		}
		p.cols = fileio.NewColumns(strings.Split(line, "\t"))
		if err := p.cols.Require(requiredColumns...); err != nil {
			return nil, r.Errorf("%v", err)
		}
		return p, nil
	}
}

// Next returns the next record. Returns nil, nil when there are no more records.
func (p *Parser) Next() (*variant.Record, error) {
	for {
		line, err := p.r.ReadLine()
		if err == io.EOF {
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		return p.parseLine(line)
	}
}

func (p *Parser) parseLine(line string) (*variant.Record, error) {
	fields := strings.Split(line, "\t")
	if len(fields) < len(p.cols) {
		return nil, p.r.Errorf("expected %d columns, found %d", len(p.cols), len(fields))
	}
	field := func(name string) string { return p.cols.Field(fields, name) }

	chrom, start, end, err := ParseLocation(field(ColLocation))
	if err != nil {
		return nil, p.r.Errorf("%v", err)
	}

	extra := ParseExtra(field(ColExtra))
	symbol := extra["SYMBOL"]
	if symbol == "" {
		symbol = variant.UnknownSymbol
	}

	return &variant.Record{
		VariantID:       field(ColUploadedVariation),
		TranscriptID:    field(ColFeature),
		Chrom:           chrom,
		Start:           start,
		End:             end,
		GeneID:          field(ColGene),
		Consequence:     field(ColConsequence),
		CDNAPosition:    field(ColCDNAPosition),
		CDSPosition:     field(ColCDSPosition),
		ProteinPosition: field(ColProteinPosition),
		AminoAcids:      field(ColAminoAcids),
		Codons:          field(ColCodons),
		Symbol:          symbol,
		Strand:          extra["STRAND"],
	}, nil
}

// Close closes the underlying reader.
func (p *Parser) Close() error {
	return p.r.Close()
}

// ReadFile loads every record of a VEP tab file into a new store.
func ReadFile(path string) (*variant.Store, error) {
	r, err := fileio.Open(path)
	if err != nil {
		return nil, err
	}
	p, err := NewParser(r)
	if err != nil {
		r.Close()
		return nil, err
	}
	defer p.Close()

	store := variant.NewStore()
	for {
		rec, err := p.Next()
		if err != nil {
			return nil, err
		}
		if rec == nil {
			break
		}
		store.Add(rec)
	}
	return store, nil
}

// ParseLocation parses "chrom:pos" or "chrom:start-end".
func ParseLocation(loc string) (chrom string, start, end int64, err error) {
	i := strings.LastIndexByte(loc, ':')
	if i <= 0 {
		return "", 0, 0, fmt.Errorf("invalid location %q", loc)
	}
	chrom = variant.NormalizeChrom(loc[:i])
	span := loc[i+1:]

	first, second, ranged := strings.Cut(span, "-")
	start, err = strconv.ParseInt(first, 10, 64)
	if err != nil {
		return "", 0, 0, fmt.Errorf("invalid location %q", loc)
	}
	end = start
	if ranged {
		end, err = strconv.ParseInt(second, 10, 64)
		if err != nil {
			return "", 0, 0, fmt.Errorf("invalid location %q", loc)
		}
	}
	return chrom, start, end, nil
}

// ParseExtra splits the semicolon-delimited key=value Extra column.
func ParseExtra(extra string) map[string]string {
	result := make(map[string]string)
	if extra == "" || extra == "-" {
		return result
	}
	for _, kv := range strings.Split(extra, ";") {
		k, v, ok := strings.Cut(kv, "=")
		if !ok {
			result[k] = ""
			continue
		}
		result[k] = v
	}
	return result
}
