package output

import (
	"fmt"
	"io"
	"slices"
	"text/tabwriter"

	"github.com/inodb/vibe-acmg/internal/variant"
)

// CodeConcordance counts agreement on one evidence code.
type CodeConcordance struct {
	Code variant.Code

	Both      int // assigned by both
	Ours      int // assigned by us, on records the reference also covers
	Reference int // assigned by the reference
}

// ReferenceRatio is the share of reference assignments we reproduce.
func (c CodeConcordance) ReferenceRatio() (float64, bool) {
	if c.Reference == 0 {
		return 0, false
	}
	return float64(c.Both) / float64(c.Reference), true
}

// OursRatio is the share of our assignments the reference confirms.
func (c CodeConcordance) OursRatio() (float64, bool) {
	if c.Ours == 0 {
		return 0, false
	}
	return float64(c.Both) / float64(c.Ours), true
}

// Concordance compares our evidence with a reference for every code.
// Reference records we did not classify still count toward Reference.
func Concordance(ours, reference Evidence) []CodeConcordance {
	result := make([]CodeConcordance, variant.NumCodes)
	for i := range result {
		result[i].Code = variant.Code(i)
	}

	for key, refCodes := range reference {
		ourCodes, shared := ours[key]
		for _, c := range variant.AllCodes() {
			inRef := slices.Contains(refCodes, c)
			inOurs := shared && slices.Contains(ourCodes, c)
			if inRef {
				result[c].Reference++
			}
			if inOurs {
				result[c].Ours++
			}
			if inRef && inOurs {
				result[c].Both++
			}
		}
	}
	return result
}

// ConcordanceWriter writes an aligned concordance table.
type ConcordanceWriter struct {
	w *tabwriter.Writer
}

// NewConcordanceWriter creates a new concordance writer.
func NewConcordanceWriter(w io.Writer) *ConcordanceWriter {
	return &ConcordanceWriter{w: tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)}
}

// Write writes the table for all codes.
func (cw *ConcordanceWriter) Write(rows []CodeConcordance) error {
	if _, err := fmt.Fprintln(cw.w, "Code\tBoth\tOurs\tReference\tBoth/Reference\tBoth/Ours"); err != nil {
		return err
	}
	for _, r := range rows {
		refRatio, ok1 := r.ReferenceRatio()
		oursRatio, ok2 := r.OursRatio()
		if _, err := fmt.Fprintf(cw.w, "%s\t%d\t%d\t%d\t%s\t%s\n",
			r.Code, r.Both, r.Ours, r.Reference,
			formatRatio(refRatio, ok1), formatRatio(oursRatio, ok2)); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the writer.
func (cw *ConcordanceWriter) Flush() error {
	return cw.w.Flush()
}

// WriteSummary writes overall agreement across codes.
func WriteSummary(w io.Writer, rows []CodeConcordance, records int) {
	var both, ours, ref int
	for _, r := range rows {
		both += r.Both
		ours += r.Ours
		ref += r.Reference
	}
	total := CodeConcordance{Both: both, Ours: ours, Reference: ref}
	refRatio, ok1 := total.ReferenceRatio()
	oursRatio, ok2 := total.OursRatio()

	fmt.Fprintf(w, "\nConcordance Summary:\n")
	fmt.Fprintf(w, "  Reference records:  %d\n", records)
	fmt.Fprintf(w, "  Both/Reference:     %s\n", formatRatio(refRatio, ok1))
	fmt.Fprintf(w, "  Both/Ours:          %s\n", formatRatio(oursRatio, ok2))
}

func formatRatio(r float64, ok bool) string {
	if !ok {
		return "-"
	}
	return fmt.Sprintf("%.4f", r)
}
