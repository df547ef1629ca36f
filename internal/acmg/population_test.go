package acmg

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/inodb/vibe-acmg/internal/datasource/disease"
	"github.com/inodb/vibe-acmg/internal/variant"
)

func TestAssignBA1(t *testing.T) {
	tests := []struct {
		an   int64
		af   float64
		want bool
	}{
		{100, 0.6, false},
		{100, 0.03, false},
		{1001, 0.0014, false},
		{10023, 0.06, true},
		{1000, 0.05, true},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, AssignBA1(tt.an, tt.af), "AN=%d AF=%g", tt.an, tt.af)
	}
}

func TestCompareInheritance(t *testing.T) {
	tests := []struct {
		an       int64
		af       float64
		mode     Inheritance
		pm2, bs1 bool
	}{
		{100, 0.6, AutosomalDominant, false, false},
		{10001, 0.00001, XLinkedDominant, true, false},
		{10001, 0.0001, XLinkedDominant, false, false},
		{10001, 0.0005, AutosomalDominant, false, true},
		{1002221, 0.00001, AutosomalRecessive, true, false},
		{10023, 0.0002, XLinkedRecessive, false, false},
		{55212, 0.01, XLinkedRecessive, false, true},
		{122222, 0.00001, YLinked, true, false},
		{122222, 0.00001, InheritanceUnknown, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			pm2, bs1 := CompareInheritance(tt.an, tt.af, tt.mode)
			assert.Equal(t, tt.pm2, pm2, "pm2")
			assert.Equal(t, tt.bs1, bs1, "bs1")
		})
	}
}

func diseases(modes ...[]string) []*disease.Entry {
	var entries []*disease.Entry
	for i, m := range modes {
		entries = append(entries, &disease.Entry{Title: string(rune('A' + i)), Inheritances: m})
	}
	return entries
}

func TestInferInheritance(t *testing.T) {
	tests := []struct {
		name    string
		entries []*disease.Entry
		want    Inheritance
	}{
		{"recessive", diseases([]string{"Autosomal recessive"}, []string{"Autosomal recessive"}), AutosomalRecessive},
		{"dominant wins ties", diseases([]string{"Autosomal recessive"}, []string{"Autosomal dominant"}), AutosomalDominant},
		{"recessive majority", diseases([]string{"Autosomal recessive", "Autosomal dominant"}, []string{"Autosomal recessive"}), AutosomalRecessive},
		{"x-linked first", diseases([]string{"Autosomal dominant", "Autosomal dominant"}, []string{"X-linked recessive"}), XLinkedRecessive},
		{"x-linked tie", diseases([]string{"X-linked recessive", "X-linked dominant"}), XLinkedDominant},
		{"y-linked", diseases([]string{"Y-linked inheritance"}, []string{"Autosomal dominant"}), YLinked},
		{"other modes only", diseases([]string{"Mitochondrial"}, []string{"Somatic mutation"}), InheritanceUnknown},
		{"none", nil, InheritanceUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, InferInheritance(tt.entries))
		})
	}
}

func TestPopulation(t *testing.T) {
	db := disease.DB{
		"TBCE": diseases([]string{"Autosomal recessive"}),
		"MT":   diseases([]string{"Mitochondrial"}),
	}
	rule := NewPopulation(db)

	tests := []struct {
		name      string
		symbol    string
		an        int64
		af        *float64
		want      []variant.Code
		evaluated bool
	}{
		{"common", "TBCE", 20000, ptr(0.2), []variant.Code{variant.BA1}, true},
		{"rare recessive", "TBCE", 20000, ptr(0.00005), []variant.Code{variant.PM2}, true},
		{"frequent recessive", "TBCE", 20000, ptr(0.002), []variant.Code{variant.BS1}, true},
		{"unknown inheritance", "MT", 20000, ptr(0.00001), nil, true},
		{"unknown symbol", variant.UnknownSymbol, 20000, ptr(0.00001), nil, true},
		{"small sample", "TBCE", 500, ptr(0.00001), nil, true},
		{"absent from population", "TBCE", 0, nil, nil, false},
		{"zero frequency", "TBCE", 20000, ptr(0), nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := record("1-1000-A-G", "missense_variant", tt.symbol)
			r.Population = variant.Population{AN: tt.an, AF: tt.af}
			rule.Apply(r)
			assert.Equal(t, tt.want, r.Flags.Codes())
			for _, c := range rule.Codes() {
				assert.Equal(t, tt.evaluated, r.Flags.Evaluated(c), c.String())
			}
		})
	}
}
