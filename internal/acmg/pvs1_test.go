package acmg

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/inodb/vibe-acmg/internal/datasource/clinvar"
	"github.com/inodb/vibe-acmg/internal/variant"
)

func TestClassifyTruncation(t *testing.T) {
	tests := []struct {
		pos  string
		want Truncation
	}{
		{"77/97", TruncationUnder90},
		{"95/97", TruncationOver90},
		{"987-988/4911", TruncationUnder90},
		{"4900-4901/4911", TruncationOver90},
		{"-", TruncationUnknown},
		{"?-12/300", TruncationUnknown},
		{"5/0", TruncationUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.pos, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyTruncation(tt.pos))
		})
	}
}

// Every truncation class currently grades VeryStrong.
func TestTruncationStrength(t *testing.T) {
	for _, tr := range []Truncation{TruncationUnknown, TruncationUnder90, TruncationOver90} {
		assert.Equal(t, variant.StrengthVeryStrong, TruncationStrength(tr))
	}
}

func TestPVS1(t *testing.T) {
	db := clinvar.DB{"BRCA2": nullGene(), "KCNQ1": missenseGene()}
	rule := NewPVS1(db)

	tests := []struct {
		name     string
		r        *variant.Record
		protein  string
		want     variant.Strength
		assigned bool
	}{
		{"stop gained early", record("13-32911000-C-T", "stop_gained", "BRCA2"), "77/97", variant.StrengthVeryStrong, true},
		{"stop gained late", record("13-32911000-C-T", "stop_gained,NMD_transcript_variant", "BRCA2"), "95/97", variant.StrengthVeryStrong, true},
		{"frameshift", record("13-32911000-CA-C", "frameshift_variant", "BRCA2"), "987-988/4911", variant.StrengthVeryStrong, true},
		{"start lost without position", record("13-32890598-A-G", "start_lost", "BRCA2"), "-", variant.StrengthVeryStrong, true},
		{"gene mechanism is missense", record("7-100-C-T", "stop_gained", "KCNQ1"), "10/600", variant.StrengthNone, false},
		{"gene not in clinvar", record("1-100-C-T", "stop_gained", "SAMD11"), "10/600", variant.StrengthNone, false},
		{"unknown symbol", record("13-32911000-C-T", "stop_gained", variant.UnknownSymbol), "77/97", variant.StrengthNone, false},
		{"not a null variant", record("13-32911000-C-T", "missense_variant", "BRCA2"), "77/97", variant.StrengthNone, false},
		{"splice donor is not consulted", record("13-32911000-C-T", "splice_donor_variant", "BRCA2"), "-", variant.StrengthNone, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.r.ProteinPosition = tt.protein
			rule.Apply(tt.r)
			assigned, evaluated := tt.r.Flags.Get(variant.PVS1)
			assert.True(t, evaluated)
			assert.Equal(t, tt.assigned, assigned)
			assert.Equal(t, tt.want, tt.r.Flags.Strength())
		})
	}
}
