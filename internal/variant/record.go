// Package variant holds the in-memory variant-transcript records that the
// evidence rules annotate.
package variant

import (
	"fmt"
	"strconv"
	"strings"
)

// UnknownSymbol is the placeholder VEP writes when a transcript has no gene symbol.
const UnknownSymbol = "-"

// Record is one variant on one transcript.
type Record struct {
	VariantID    string // chrom-pos-ref-alt
	TranscriptID string // VEP Feature column

	Chrom string
	Start int64
	End   int64 // equal to Start for single-position locations

	GeneID          string
	Consequence     string // comma-delimited SO terms
	CDNAPosition    string // "pos/total" or "-"
	CDSPosition     string
	ProteinPosition string
	AminoAcids      string // "K/E"
	Codons          string // "aAAg/aGAg"
	Symbol          string
	Strand          string // "1" or "-1"

	REVEL      *float64
	Population Population

	Flags Flags
}

// Population holds allele counts patched in from a population database.
type Population struct {
	AC int64
	AN int64
	AF *float64
}

// HasSymbol reports whether the record has a known gene symbol.
func (r *Record) HasSymbol() bool {
	return r.Symbol != "" && r.Symbol != UnknownSymbol
}

// IsMissense reports whether the record is a missense variant.
func (r *Record) IsMissense() bool {
	return IsMissense(r.Consequence)
}

// MinusStrand reports whether the transcript is on the reverse strand.
func (r *Record) MinusStrand() bool {
	return r.Strand == "-1"
}

// ID is a parsed chrom-pos-ref-alt variant identifier.
type ID struct {
	Chrom string
	Pos   int64
	Ref   string
	Alt   string
}

// ParseID splits a "chrom-pos-ref-alt" identifier.
func ParseID(s string) (ID, error) {
	parts := strings.Split(s, "-")
	if len(parts) != 4 {
		return ID{}, fmt.Errorf("variant id %q: expected chrom-pos-ref-alt", s)
	}
	pos, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return ID{}, fmt.Errorf("variant id %q: invalid position: %w", s, err)
	}
	return ID{Chrom: parts[0], Pos: pos, Ref: parts[2], Alt: parts[3]}, nil
}

// String formats the identifier as chrom-pos-ref-alt.
func (id ID) String() string {
	return id.Chrom + "-" + strconv.FormatInt(id.Pos, 10) + "-" + id.Ref + "-" + id.Alt
}

// NormalizeChrom returns the chromosome name without "chr" prefix.
func NormalizeChrom(chrom string) string {
	if len(chrom) > 3 && strings.EqualFold(chrom[:3], "chr") {
		return chrom[3:]
	}
	return chrom
}
