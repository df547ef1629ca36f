// Package vcf provides streaming VCF parsing for reference databases and
// genotype extraction for trio samples.
package vcf

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/inodb/vibe-acmg/internal/fileio"
)

// Parser reads sites from a VCF file, one data line at a time.
type Parser struct {
	r *fileio.Reader
}

// NewParser opens a VCF file. Plain, gzip and BGZF input are supported.
func NewParser(path string) (*Parser, error) {
	r, err := fileio.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open vcf file: %w", err)
	}
	p, err := NewParserFromReader(r)
	if err != nil {
		r.Close()
		return nil, err
	}
	return p, nil
}

// NewParserFromReader creates a parser from an open reader.
func NewParserFromReader(r *fileio.Reader) (*Parser, error) {
	p := &Parser{r: r}
	if err := p.parseHeader(); err != nil {
		return nil, err
	}
	return p, nil
}

// parseHeader skips the meta-information lines up to and including #CHROM.
func (p *Parser) parseHeader() error {
	for {
		line, err := p.r.ReadLine()
		if err == io.EOF {
			return p.r.Errorf("no #CHROM header line found")
		}
		if err != nil {
			return fmt.Errorf("read header: %w", err)
		}

		if strings.HasPrefix(line, "##") {
			continue
		}
		if strings.HasPrefix(line, "#CHROM") {
			return nil
		}

		return p.r.Errorf("expected #CHROM header line")
	}
}

// Next reads the next site. Returns nil, nil when there are no more sites.
func (p *Parser) Next() (*Variant, error) {
	for {
		line, err := p.r.ReadLine()
		if err == io.EOF {
			return nil, nil
		}
		if err != nil {
			return nil, fmt.Errorf("read variant line: %w", err)
		}
		if line == "" {
			continue
		}
		return p.parseLine(line)
	}
}

// parseLine parses the eight fixed columns of a data line. Sample columns
// are not retained.
func (p *Parser) parseLine(line string) (*Variant, error) {
	fields := strings.SplitN(line, "\t", 9)
	if len(fields) < 8 {
		return nil, p.r.Errorf("expected at least 8 columns, found %d", len(fields))
	}

	pos, err := strconv.ParseInt(fields[1], 10, 64)
	if err != nil {
		return nil, p.r.Errorf("invalid position: %s", fields[1])
	}

	return &Variant{
		Chrom:  fields[0],
		Pos:    pos,
		ID:     fields[2],
		Ref:    fields[3],
		Alt:    fields[4],
		Filter: fields[6],
		Info:   parseInfo(fields[7]),
	}, nil
}

// parseInfo parses the INFO field into a map. Flag-type keys map to "".
func parseInfo(info string) map[string]string {
	result := make(map[string]string)
	if info == "." {
		return result
	}

	for _, kv := range strings.Split(info, ";") {
		k, v, _ := strings.Cut(kv, "=")
		result[k] = v
	}

	return result
}

// SplitMultiAllelic splits a multi-allelic site into one variant per ALT.
// Number=A INFO values are split alongside; other keys are shared.
func SplitMultiAllelic(v *Variant, perAllele ...string) []*Variant {
	alts := strings.Split(v.Alt, ",")
	if len(alts) == 1 {
		return []*Variant{v}
	}

	variants := make([]*Variant, len(alts))
	for i, alt := range alts {
		info := make(map[string]string, len(v.Info))
		for k, val := range v.Info {
			info[k] = val
		}
		for _, key := range perAllele {
			vals := strings.Split(v.Info[key], ",")
			if i < len(vals) && len(vals) == len(alts) {
				info[key] = vals[i]
			}
		}
		variants[i] = &Variant{
			Chrom:  v.Chrom,
			Pos:    v.Pos,
			ID:     v.ID,
			Ref:    v.Ref,
			Alt:    alt,
			Filter: v.Filter,
			Info:   info,
		}
	}

	return variants
}

// Close closes the parser and underlying file.
func (p *Parser) Close() error {
	return p.r.Close()
}
