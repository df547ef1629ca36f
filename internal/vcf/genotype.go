package vcf

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/brentp/vcfgo"
	"go.uber.org/zap"

	"github.com/inodb/vibe-acmg/internal/fileio"
	"github.com/inodb/vibe-acmg/internal/variant"
)

// Genotypes maps variant id to the GT string of one sample (e.g. "0/1").
type Genotypes map[string]string

// Has reports whether the sample carries a non-reference allele at
// variantID. Hom-ref and no-calls do not count.
func (g Genotypes) Has(variantID string) bool {
	return HasAlt(g[variantID])
}

// HasAlt reports whether a GT string calls at least one non-reference allele.
func HasAlt(gt string) bool {
	for _, a := range strings.FieldsFunc(gt, isAlleleSep) {
		if a != "0" && a != "." {
			return true
		}
	}
	return false
}

func isAlleleSep(r rune) bool { return r == '/' || r == '|' }

// GenotypeReader extracts a single sample's genotypes from a VCF.
type GenotypeReader struct {
	logger *zap.Logger
}

// NewGenotypeReader creates a reader that logs through logger.
func NewGenotypeReader(logger *zap.Logger) *GenotypeReader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GenotypeReader{logger: logger}
}

// ReadGenotypes reads the GT of sample for every site in path, keyed by the
// ID column. Sites without an ID are keyed chrom-pos-ref-alt per ALT allele.
// An empty sample name selects the first sample column.
func (g *GenotypeReader) ReadGenotypes(path, sample string) (Genotypes, error) {
	r, err := fileio.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open genotype vcf: %w", err)
	}
	defer r.Close()

	rdr, err := vcfgo.NewReader(r, false)
	if err != nil {
		return nil, fmt.Errorf("read genotype vcf header %s: %w", path, err)
	}

	idx := 0
	if sample != "" {
		idx = -1
		for i, name := range rdr.Header.SampleNames {
			if name == sample {
				idx = i
				break
			}
		}
		if idx < 0 {
			return nil, fmt.Errorf("sample %q not found in %s", sample, path)
		}
	} else if len(rdr.Header.SampleNames) == 0 {
		return nil, fmt.Errorf("no sample columns in %s", path)
	}

	gts := make(Genotypes)
	for {
		v := rdr.Read()
		if v == nil {
			break
		}
		if idx >= len(v.Samples) || v.Samples[idx] == nil {
			continue
		}
		gt := FormatGenotype(v.Samples[idx].GT, v.Samples[idx].Phased)
		if gt == "" {
			continue
		}
		if id := v.Id(); id != "" && id != "." {
			gts[id] = gt
			continue
		}
		for _, alt := range v.Alternate {
			key := variant.ID{
				Chrom: variant.NormalizeChrom(v.Chromosome),
				Pos:   int64(v.Pos),
				Ref:   v.Reference,
				Alt:   alt,
			}
			gts[key.String()] = gt
		}
	}
	if err := rdr.Error(); err != nil {
		// vcfgo accumulates recoverable per-line problems here.
		g.logger.Warn("genotype vcf reported problems",
			zap.String("path", path),
			zap.Error(err))
	}

	g.logger.Info("loaded genotypes",
		zap.String("path", path),
		zap.String("sample", sample),
		zap.Int("sites", len(gts)))

	return gts, nil
}

// FormatGenotype renders allele indices as a GT string; -1 is a missing call.
func FormatGenotype(alleles []int, phased bool) string {
	if len(alleles) == 0 {
		return ""
	}
	sep := "/"
	if phased {
		sep = "|"
	}
	parts := make([]string, len(alleles))
	for i, a := range alleles {
		if a < 0 {
			parts[i] = "."
		} else {
			parts[i] = strconv.Itoa(a)
		}
	}
	return strings.Join(parts, sep)
}
