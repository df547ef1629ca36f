package vcf

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVariant_Key(t *testing.T) {
	tests := []struct {
		name string
		v    Variant
		want string
	}{
		{"plain", Variant{Chrom: "1", Pos: 866319, Ref: "G", Alt: "A"}, "1-866319-G-A"},
		{"chr prefix", Variant{Chrom: "chr17", Pos: 39742898, Ref: "GC", Alt: "AT"}, "17-39742898-GC-AT"},
		{"sex chromosome", Variant{Chrom: "chrX", Pos: 44202890, Ref: "G", Alt: "GC"}, "X-44202890-G-GC"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.v.Key())
		})
	}
}

func TestVariant_InfoInt_Malformed(t *testing.T) {
	v := &Variant{Info: map[string]string{"AN": "abc"}}
	_, ok := v.InfoInt("AN")
	assert.False(t, ok)
}
