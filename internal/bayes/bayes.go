// Package bayes combines assigned evidence codes into a posterior probability
// of pathogenicity using the Bayesian adaptation of the ACMG/AMP framework
// (Tavtigian et al. 2018).
package bayes

import (
	"math"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/inodb/vibe-acmg/internal/datasource/disease"
	"github.com/inodb/vibe-acmg/internal/variant"
)

const (
	// OddsVeryStrong is the odds of pathogenicity of one very strong criterion.
	OddsVeryStrong = 350.0
	// Prior is the prior probability of pathogenicity.
	Prior = 0.1
)

// Counts is the number of assigned codes per strength tier.
type Counts struct {
	PVS, PS, PM, PP int
	BA, BS, BP      int
}

// Count tallies the assigned codes of flags by tier, using the code name
// prefix (pvs, ps, pm, pp, ba, bs, bp).
func Count(flags variant.Flags) Counts {
	var c Counts
	for _, code := range flags.Codes() {
		key := code.Key()
		switch {
		case strings.HasPrefix(key, "pvs"):
			c.PVS++
		case strings.HasPrefix(key, "ps"):
			c.PS++
		case strings.HasPrefix(key, "pm"):
			c.PM++
		case strings.HasPrefix(key, "pp"):
			c.PP++
		case strings.HasPrefix(key, "ba"):
			c.BA++
		case strings.HasPrefix(key, "bs"):
			c.BS++
		case strings.HasPrefix(key, "bp"):
			c.BP++
		}
	}
	return c
}

// OddsPath returns the combined odds of pathogenicity. BA counts do not
// contribute.
func OddsPath(c Counts) float64 {
	exp := float64(c.PP)/8 + float64(c.PM)/4 + float64(c.PS)/2 + float64(c.PVS) -
		float64(c.BP)/8 - float64(c.BS)/2
	return math.Pow(OddsVeryStrong, exp)
}

// Posterior converts odds of pathogenicity into a posterior probability.
func Posterior(odds float64) float64 {
	return odds * Prior / ((odds-1)*Prior + 1)
}

// Class is a five-tier pathogenicity classification.
type Class string

const (
	Pathogenic       Class = "Pathogenic"
	LikelyPathogenic Class = "Likely pathogenic"
	VUS              Class = "VUS"
	LikelyBenign     Class = "Likely benign"
	Benign           Class = "Benign"
)

// Classes lists the tiers from most to least pathogenic.
var Classes = []Class{Pathogenic, LikelyPathogenic, VUS, LikelyBenign, Benign}

// Classify maps a posterior probability to its tier.
func Classify(p float64) Class {
	switch {
	case p >= 0.99:
		return Pathogenic
	case p >= 0.9:
		return LikelyPathogenic
	case p <= 0.01:
		return Benign
	case p <= 0.1:
		return LikelyBenign
	default:
		return VUS
	}
}

// Row is the classification of one variant-transcript record.
type Row struct {
	VariantID   string
	Feature     string
	Consequence string
	Symbol      string
	Codes       []variant.Code
	Posterior   float64
	Class       Class
	Diseases    []*disease.Entry
}

// RuleString joins the assigned codes with "||".
func (r *Row) RuleString() string {
	names := make([]string, len(r.Codes))
	for i, c := range r.Codes {
		names[i] = c.String()
	}
	return strings.Join(names, "||")
}

// DiseaseString joins the gene's diseases with "||", or returns "-".
func (r *Row) DiseaseString() string {
	if len(r.Diseases) == 0 {
		return "-"
	}
	parts := make([]string, len(r.Diseases))
	for i, d := range r.Diseases {
		parts[i] = d.String()
	}
	return strings.Join(parts, "||")
}

// Aggregator classifies every record of a store.
type Aggregator struct {
	disease disease.DB
	logger  *zap.Logger
}

// NewAggregator creates an aggregator that annotates rows with diseases from db.
func NewAggregator(db disease.DB) *Aggregator {
	return &Aggregator{disease: db, logger: zap.NewNop()}
}

// SetLogger sets the logger for the classification summary.
func (a *Aggregator) SetLogger(logger *zap.Logger) {
	a.logger = logger
}

// Rows classifies the store's records in store order. Records whose only
// assigned code is BA1 are omitted.
func (a *Aggregator) Rows(store *variant.Store) []Row {
	records := store.Records()
	rows := make([]Row, 0, len(records))
	skipped := 0
	for _, r := range records {
		if r.Flags.Only(variant.BA1) {
			skipped++
			continue
		}
		rows = append(rows, a.Row(r))
	}

	tally := Tally(rows)
	fields := []zap.Field{
		zap.Int("rows", len(rows)),
		zap.Int("ba1_only", skipped),
	}
	for _, c := range Classes {
		fields = append(fields, zap.Int(string(c), tally[c]))
	}
	a.logger.Info("classified records", fields...)

	return rows
}

// Row classifies a single record.
func (a *Aggregator) Row(r *variant.Record) Row {
	p := Posterior(OddsPath(Count(r.Flags)))
	row := Row{
		VariantID:   r.VariantID,
		Feature:     r.TranscriptID,
		Consequence: r.Consequence,
		Symbol:      r.Symbol,
		Codes:       r.Flags.Codes(),
		Posterior:   p,
		Class:       Classify(p),
	}
	if r.HasSymbol() {
		row.Diseases = a.disease.Entries(r.Symbol)
	}
	return row
}

// SortByPosterior orders rows by descending posterior, keeping the input
// order among equal posteriors.
func SortByPosterior(rows []Row) {
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Posterior > rows[j].Posterior
	})
}

// Tally counts rows per class.
func Tally(rows []Row) map[Class]int {
	t := make(map[Class]int, len(Classes))
	for i := range rows {
		t[rows[i].Class]++
	}
	return t
}
