// Package spliceai loads SpliceAI delta scores from an annotated VCF.
package spliceai

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/inodb/vibe-acmg/internal/vcf"
)

// InfoKey is the INFO field written by SpliceAI.
const InfoKey = "SpliceAI"

// Deltas holds DS_AG, DS_AL, DS_DG and DS_DL.
type Deltas [4]float64

// Max returns the largest delta score.
func (d Deltas) Max() float64 {
	m := d[0]
	for _, v := range d[1:] {
		if v > m {
			m = v
		}
	}
	return m
}

// DB maps variant id to per-gene deltas. A nil *Deltas means SpliceAI
// reported the gene with placeholder scores.
type DB map[string]map[string]*Deltas

// Lookup returns the deltas for a variant in gene symbol. ok is false when
// SpliceAI has no prediction for the pair.
func (db DB) Lookup(variantID, symbol string) (d *Deltas, ok bool) {
	genes, found := db[variantID]
	if !found {
		return nil, false
	}
	d, ok = genes[symbol]
	return d, ok
}

// Load reads a SpliceAI-annotated VCF. When keep is non-nil only variant ids
// for which it returns true are retained.
func Load(path string, keep func(variantID string) bool) (DB, error) {
	p, err := vcf.NewParser(path)
	if err != nil {
		return nil, fmt.Errorf("open spliceai: %w", err)
	}
	defer p.Close()
	return Read(p, keep)
}

// Read builds the DB from a site reader. Sites are keyed by their ID
// column, or by chrom-pos-ref-alt when the ID is missing.
func Read(r vcf.SiteReader, keep func(variantID string) bool) (DB, error) {
	db := make(DB)
	for {
		v, err := r.Next()
		if err != nil {
			return nil, fmt.Errorf("reading spliceai: %w", err)
		}
		if v == nil {
			break
		}
		id := v.ID
		if id == "" || id == "." {
			id = v.Key()
		}
		if keep != nil && !keep(id) {
			continue
		}
		db[id] = ParseInfo(v.Info[InfoKey])
	}
	return db, nil
}

// ParseInfo parses a SpliceAI INFO value:
//
//	ALLELE|SYMBOL|DS_AG|DS_AL|DS_DG|DS_DL|DP_AG|DP_AL|DP_DG|DP_DL[,...]
//
// Tuples whose scores do not parse map to nil.
func ParseInfo(value string) map[string]*Deltas {
	genes := make(map[string]*Deltas)
	if value == "" {
		return genes
	}
	for _, tuple := range strings.Split(value, ",") {
		parts := strings.Split(tuple, "|")
		if len(parts) < 6 {
			continue
		}
		symbol := parts[1]
		var d Deltas
		ok := true
		for i := range d {
			f, err := strconv.ParseFloat(parts[2+i], 64)
			if err != nil {
				ok = false
				break
			}
			d[i] = f
		}
		if !ok {
			genes[symbol] = nil
			continue
		}
		genes[symbol] = &d
	}
	return genes
}
