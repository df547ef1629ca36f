package acmg

import (
	"strings"

	"github.com/inodb/vibe-acmg/internal/datasource/disease"
	"github.com/inodb/vibe-acmg/internal/variant"
)

// Population frequency thresholds.
const (
	minAlleleNumber = 1000 // allele numbers below this are too small to judge

	standAloneAF = 0.05

	dominantRareAF   = 0.00002
	dominantCommonAF = 0.0002

	recessiveRareAF   = 0.0001
	recessiveCommonAF = 0.001
)

// Inheritance is a gene's dominant mode of inheritance.
type Inheritance uint8

const (
	InheritanceUnknown Inheritance = iota
	AutosomalDominant
	AutosomalRecessive
	XLinkedDominant
	XLinkedRecessive
	YLinked
)

func (i Inheritance) String() string {
	switch i {
	case AutosomalDominant:
		return "AD"
	case AutosomalRecessive:
		return "AR"
	case XLinkedDominant:
		return "XD"
	case XLinkedRecessive:
		return "XR"
	case YLinked:
		return "YD"
	}
	return "Unknown"
}

// Dominant reports whether one altered allele suffices for disease.
func (i Inheritance) Dominant() bool {
	return i == AutosomalDominant || i == XLinkedDominant || i == YLinked
}

// Recessive reports whether two altered alleles are needed for disease.
func (i Inheritance) Recessive() bool {
	return i == AutosomalRecessive || i == XLinkedRecessive
}

// InferInheritance votes over the inheritance annotations of a gene's
// diseases. X-linked modes win over autosomal ones, Y-linked over autosomal,
// and dominant wins ties.
func InferInheritance(entries []*disease.Entry) Inheritance {
	var ad, ar, xd, xr, y int
	for _, e := range entries {
		for _, mode := range e.Inheritances {
			switch mode {
			case "Autosomal dominant":
				ad++
			case "Autosomal recessive":
				ar++
			case "X-linked dominant":
				xd++
			case "X-linked recessive":
				xr++
			}
			if strings.Contains(mode, "Y-linked") {
				y++
			}
		}
	}

	switch {
	case xd+xr > 0:
		if xd >= xr {
			return XLinkedDominant
		}
		return XLinkedRecessive
	case y > 0:
		return YLinked
	case ad == 0 && ar == 0:
		return InheritanceUnknown
	case ad >= ar:
		return AutosomalDominant
	default:
		return AutosomalRecessive
	}
}

// AssignBA1 reports a stand-alone benign frequency.
func AssignBA1(an int64, af float64) bool {
	return an >= minAlleleNumber && af >= standAloneAF
}

// CompareInheritance compares a population frequency with the thresholds of
// the given inheritance mode and returns (pm2, bs1). Frequencies between the
// two thresholds assign neither.
func CompareInheritance(an int64, af float64, mode Inheritance) (pm2, bs1 bool) {
	if an < minAlleleNumber {
		return false, false
	}
	var rare, common float64
	switch {
	case mode.Dominant():
		rare, common = dominantRareAF, dominantCommonAF
	case mode.Recessive():
		rare, common = recessiveRareAF, recessiveCommonAF
	default:
		return false, false
	}
	return af < rare, af > common
}

// Population assigns BA1, PM2 and BS1 from population allele frequencies and
// the gene's inheritance mode.
type Population struct {
	disease disease.DB
}

// NewPopulation creates the population frequency rule.
func NewPopulation(db disease.DB) *Population {
	return &Population{disease: db}
}

func (p *Population) Name() string { return "PM2/BA1/BS1" }

func (p *Population) Codes() []variant.Code {
	return []variant.Code{variant.PM2, variant.BA1, variant.BS1}
}

// Apply leaves records without a non-zero allele frequency unevaluated.
func (p *Population) Apply(r *variant.Record) {
	if r.Population.AF == nil || *r.Population.AF == 0 {
		return
	}
	an, af := r.Population.AN, *r.Population.AF

	ba1 := AssignBA1(an, af)
	var pm2, bs1 bool
	if !ba1 && r.HasSymbol() {
		pm2, bs1 = CompareInheritance(an, af, InferInheritance(p.disease.Entries(r.Symbol)))
	}

	r.Flags.Set(variant.BA1, ba1)
	r.Flags.Set(variant.PM2, pm2)
	r.Flags.Set(variant.BS1, bs1)
}
