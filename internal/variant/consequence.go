package variant

import "strings"

// Consequence types (Sequence Ontology terms) as reported by VEP.
const (
	ConsequenceStopGained        = "stop_gained"
	ConsequenceFrameshiftVariant = "frameshift_variant"
	ConsequenceStopLost          = "stop_lost"
	ConsequenceStartLost         = "start_lost"

	ConsequenceMissenseVariant  = "missense_variant"
	ConsequenceInframeInsertion = "inframe_insertion"
	ConsequenceInframeDeletion  = "inframe_deletion"

	ConsequenceSynonymousVariant = "synonymous_variant"
)

// nullTerms are the consequences that truncate the protein or remove its
// initiator codon.
var nullTerms = []string{
	ConsequenceStopGained,
	ConsequenceFrameshiftVariant,
	ConsequenceStartLost,
}

// HasTerm reports whether a comma-delimited consequence string contains term.
func HasTerm(consequence, term string) bool {
	for rest := consequence; rest != ""; {
		t := rest
		if i := strings.IndexByte(rest, ','); i >= 0 {
			t = rest[:i]
			rest = rest[i+1:]
		} else {
			rest = ""
		}
		if strings.TrimSpace(t) == term {
			return true
		}
	}
	return false
}

// HasAnyTerm reports whether consequence contains at least one of terms.
func HasAnyTerm(consequence string, terms ...string) bool {
	for _, term := range terms {
		if HasTerm(consequence, term) {
			return true
		}
	}
	return false
}

// IsMissense returns true if the consequence includes missense_variant.
func IsMissense(consequence string) bool {
	return HasTerm(consequence, ConsequenceMissenseVariant)
}

// IsNull returns true for truncating or initiator-loss consequences.
func IsNull(consequence string) bool {
	return HasAnyTerm(consequence, nullTerms...)
}

// IsInframe returns true for in-frame insertions and deletions.
func IsInframe(consequence string) bool {
	return HasAnyTerm(consequence, ConsequenceInframeInsertion, ConsequenceInframeDeletion)
}

// IsStopLost returns true if the consequence includes stop_lost.
func IsStopLost(consequence string) bool {
	return HasTerm(consequence, ConsequenceStopLost)
}

// IsSynonymous returns true if the consequence includes synonymous_variant.
func IsSynonymous(consequence string) bool {
	return HasTerm(consequence, ConsequenceSynonymousVariant)
}
