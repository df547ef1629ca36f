// Package output writes classification reports and compares them with
// reference evidence assignments.
package output

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/inodb/vibe-acmg/internal/bayes"
	"github.com/inodb/vibe-acmg/internal/fileio"
	"github.com/inodb/vibe-acmg/internal/variant"
)

// Report column names.
const (
	ColVariantID     = "Variant_ID"
	ColFeature       = "Feature"
	ColConsequence   = "Consequence"
	ColSymbol        = "Symbol"
	ColRule          = "ACMG_rule"
	ColBayesian      = "ACMG_bayesian"
	ColPathogenicity = "Pathogenicity"
	ColDisease       = "Related disease_info"
)

// ReportColumns is the report header in order.
var ReportColumns = []string{
	ColVariantID,
	ColFeature,
	ColConsequence,
	ColSymbol,
	ColRule,
	ColBayesian,
	ColPathogenicity,
	ColDisease,
}

// ReportWriter writes classification rows in tab-delimited format.
type ReportWriter struct {
	w    *bufio.Writer
	rows int
}

// NewReportWriter creates a new report writer.
func NewReportWriter(w io.Writer) *ReportWriter {
	return &ReportWriter{w: bufio.NewWriter(w)}
}

// WriteHeader writes the header line.
func (rw *ReportWriter) WriteHeader() error {
	_, err := rw.w.WriteString("#" + strings.Join(ReportColumns, "\t") + "\n")
	return err
}

// Write writes a single row. An empty rule list is written as "-".
func (rw *ReportWriter) Write(row *bayes.Row) error {
	rules := row.RuleString()
	if rules == "" {
		rules = "-"
	}

	values := []string{
		row.VariantID,
		row.Feature,
		row.Consequence,
		row.Symbol,
		rules,
		strconv.FormatFloat(row.Posterior, 'f', 6, 64),
		string(row.Class),
		row.DiseaseString(),
	}

	rw.rows++
	_, err := rw.w.WriteString(strings.Join(values, "\t") + "\n")
	return err
}

// WriteAll writes the header followed by rows.
func (rw *ReportWriter) WriteAll(rows []bayes.Row) error {
	if err := rw.WriteHeader(); err != nil {
		return err
	}
	for i := range rows {
		if err := rw.Write(&rows[i]); err != nil {
			return err
		}
	}
	return nil
}

// Rows returns the number of rows written.
func (rw *ReportWriter) Rows() int {
	return rw.rows
}

// Flush flushes any buffered data to the underlying writer.
func (rw *ReportWriter) Flush() error {
	return rw.w.Flush()
}

// Evidence maps a variant-transcript pair to its assigned codes.
type Evidence map[variant.Key][]variant.Code

// ReadReport reads the assigned codes of a report written by ReportWriter.
func ReadReport(r *fileio.Reader) (Evidence, error) {
	return readEvidence(r, ColVariantID, ColFeature, ColRule)
}

// Reference tool column names.
const (
	ColRefVariant = "Uploaded_variation"
	ColRefFeature = "Feature"
	ColRefRule    = "ACMG_RULE"
)

// ReadReference reads evidence assigned by another classifier. Codes ending
// in "-" are criteria the tool evaluated as not met and are skipped; suffixed
// codes such as "PM2_Supporting" count as their base code.
func ReadReference(r *fileio.Reader) (Evidence, error) {
	return readEvidence(r, ColRefVariant, ColRefFeature, ColRefRule)
}

// LoadReport opens and reads a report file.
func LoadReport(path string) (Evidence, error) {
	return loadEvidence(path, ReadReport)
}

// LoadReference opens and reads a reference evidence file.
func LoadReference(path string) (Evidence, error) {
	return loadEvidence(path, ReadReference)
}

func loadEvidence(path string, read func(*fileio.Reader) (Evidence, error)) (Evidence, error) {
	r, err := fileio.Open(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return read(r)
}

func readEvidence(r *fileio.Reader, idCol, featureCol, ruleCol string) (Evidence, error) {
	var cols fileio.Columns
	ev := make(Evidence)
	for {
		line, err := r.ReadLine()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if line == "" || strings.HasPrefix(line, "##") {
			continue
		}
		fields := strings.Split(line, "\t")
		if cols == nil {
			cols = fileio.NewColumns(fields)
			if err := cols.Require(idCol, featureCol, ruleCol); err != nil {
				return nil, r.Errorf("%v", err)
			}
			continue
		}
		key := variant.Key{
			VariantID:    cols.Field(fields, idCol),
			TranscriptID: cols.Field(fields, featureCol),
		}
		if key.VariantID == "" {
			return nil, r.Errorf("missing %s", idCol)
		}
		ev[key] = ParseRules(cols.Field(fields, ruleCol))
	}
	if cols == nil {
		return nil, fmt.Errorf("%s: no header line", r.Path)
	}
	return ev, nil
}

// ParseRules splits a "||"-joined rule list into known codes.
func ParseRules(s string) []variant.Code {
	var codes []variant.Code
	for _, token := range strings.Split(s, "||") {
		token = strings.ToUpper(strings.TrimSpace(token))
		if token == "" || token == "-" || strings.HasSuffix(token, "-") {
			continue
		}
		if c, ok := matchCode(token); ok {
			codes = append(codes, c)
		}
	}
	return codes
}

func matchCode(token string) (variant.Code, bool) {
	if c, ok := variant.ParseCode(token); ok {
		return c, true
	}
	for _, c := range variant.AllCodes() {
		if strings.HasPrefix(token, c.String()) {
			return c, true
		}
	}
	return 0, false
}
