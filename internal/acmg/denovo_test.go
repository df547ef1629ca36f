package acmg

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/inodb/vibe-acmg/internal/variant"
	"github.com/inodb/vibe-acmg/internal/vcf"
)

func TestDeNovo(t *testing.T) {
	proband := vcf.Genotypes{
		"1-909073-C-T":     "1/1",
		"1-982941-T-C":     "1/1",
		"6-32151443-C-T":   "1/0",
		"6-32170464-AG-A":  "1/0",
		"8-76468309-GTT-G": "0/1",
		"9-132897231-G-A":  "0/1",
		"15-48807637-C-T":  "./1",
		"15-48807637-C-A":  "1/.",
	}
	father := vcf.Genotypes{
		"1-909073-C-T":   "0/1",
		"1-982941-T-C":   "0/1",
		"6-32151443-C-T": "0/1",
	}
	mother := vcf.Genotypes{
		"9-132897231-G-A": "0/1",
		"15-48807637-C-T": "1/1",
	}
	rule := NewDeNovo(proband, father, mother)

	tests := []struct {
		id        string
		ps2       bool
		evaluated bool
	}{
		{"1-909073-C-T", false, true}, // homozygous, one carrier parent
		{"1-982941-T-C", false, true},
		{"6-32151443-C-T", false, true},
		{"6-32170464-AG-A", true, true},
		{"8-76468309-GTT-G", true, true},
		{"9-132897231-G-A", false, true},
		{"15-48807637-C-T", false, true},
		{"15-48807637-C-A", true, true},
		{"2-100-A-G", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			r := record(tt.id, "missense_variant", "GENE")
			rule.Apply(r)
			ps2, evaluated := r.Flags.Get(variant.PS2)
			assert.Equal(t, tt.evaluated, evaluated)
			assert.Equal(t, tt.ps2, ps2)
		})
	}
}

func TestDeNovo_JointCalls(t *testing.T) {
	// A jointly called trio has a GT for every sample at every site.
	proband := vcf.Genotypes{
		"13-32911000-C-T": "0/1",
		"13-32912000-G-A": "0/1",
		"13-32913000-A-C": "0/0",
		"13-32914000-T-G": "./.",
		"13-32915000-C-G": "0|1",
	}
	father := vcf.Genotypes{
		"13-32911000-C-T": "0/0",
		"13-32912000-G-A": "0/1",
		"13-32913000-A-C": "0/0",
		"13-32914000-T-G": "0/0",
		"13-32915000-C-G": "./.",
	}
	mother := vcf.Genotypes{
		"13-32911000-C-T": "0/0",
		"13-32912000-G-A": "0/0",
		"13-32913000-A-C": "0/1",
		"13-32914000-T-G": "0/0",
		"13-32915000-C-G": "0|0",
	}
	rule := NewDeNovo(proband, father, mother)

	tests := []struct {
		id        string
		ps2       bool
		evaluated bool
	}{
		{"13-32911000-C-T", true, true},
		{"13-32912000-G-A", false, true},
		{"13-32913000-A-C", false, false}, // proband hom-ref
		{"13-32914000-T-G", false, false}, // proband no-call
		{"13-32915000-C-G", true, true},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			r := record(tt.id, "stop_gained", "BRCA2")
			rule.Apply(r)
			ps2, evaluated := r.Flags.Get(variant.PS2)
			assert.Equal(t, tt.evaluated, evaluated)
			assert.Equal(t, tt.ps2, ps2)
		})
	}
}

func TestDeNovo_MissingParents(t *testing.T) {
	rule := NewDeNovo(vcf.Genotypes{"1-100-A-G": "0/1"}, nil, nil)
	r := record("1-100-A-G", "intron_variant", "GENE")
	rule.Apply(r)
	assert.True(t, r.Flags.Assigned(variant.PS2))
}
