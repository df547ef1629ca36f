package spliceai

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testVCF = `##fileformat=VCFv4.2
##INFO=<ID=SpliceAI,Number=.,Type=String,Description="SpliceAIv1.3.1 variant annotation. Format: ALLELE|SYMBOL|DS_AG|DS_AL|DS_DG|DS_DL|DP_AG|DP_AL|DP_DG|DP_DL">
#CHROM	POS	ID	REF	ALT	QUAL	FILTER	INFO	FORMAT	ETD21-RWNY
1	69270	1-69270-A-G	A	G	197.8	SNP_FILTER	AC=2;AF=1;AN=2;DP=7;set=FilteredInAll;SpliceAI=G|OR4F5|0.01|0.08|0.00|0.00|-10|26|-28|-25	GT:AD:DP:GQ:PL	1/1:0,7:7:21:226,21,0
1	69511	1-69511-A-G	A	G	2934.77	PASS	AC=2;AF=1;AN=2;DP=97;set=variant;SpliceAI=G|OR4F5|0.00|0.00|0.02|0.00|26|32|26|34	GT:AD:DP:GQ:PL	1/1:0,97:97:99:2963,291,0
1	865738	1-865738-A-G	A	G	2970.77	PASS	AC=1;AF=0.5;AN=2;set=variant;SpliceAI=G|SAMD11|0.00|0.00|0.00|0.00|-8|2|-22|-50,G|AL645608.1|0.00|0.00|0.00|0.00|-7|-19|-17|-41	GT:AD:DP:GQ:PL	0/1:131,105:236:99:2999,0,3791
7	135347239	7-135347239-G-GC	G	GC	2201.73	PASS	AC=1;AF=0.5;AN=2;set=variant2;OLD_MULTIALLELIC=7:135347239:GC/G/GCC	GT:AD:DP:GQ:PL	./1:0,53:84:99:2239,924,975
1	111436857	1-111436857-TC-GT	TC	GT	1495.77	PASS	AC=2;AF=1;AN=2;set=variant;SpliceAI=GT|CD53|.|.|.|.|.|.|.|.	GT:AD:DP:GQ:PGT:PID:PL	1/1:0,34:34:99:1|1:111436857_T_G:1524,102,0
2	1000	.	A	T	50	PASS	SpliceAI=T|GENE2|0.70|0.10|0.00|0.00|1|2|3|4	GT	0/1
`

func writeVCF(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "spliceai.vcf")
	require.NoError(t, os.WriteFile(path, []byte(testVCF), 0644))
	return path
}

func TestLoad(t *testing.T) {
	db, err := Load(writeVCF(t), nil)
	require.NoError(t, err)

	assert.Equal(t, map[string]*Deltas{"OR4F5": {0.01, 0.08, 0.00, 0.00}}, db["1-69270-A-G"])
	assert.Equal(t, map[string]*Deltas{"OR4F5": {0.00, 0.00, 0.02, 0.00}}, db["1-69511-A-G"])
	assert.Len(t, db["1-865738-A-G"], 2)
	assert.Empty(t, db["7-135347239-G-GC"])

	d, ok := db.Lookup("1-111436857-TC-GT", "CD53")
	assert.True(t, ok)
	assert.Nil(t, d, "placeholder scores map to nil")

	d, ok = db.Lookup("2-1000-A-T", "GENE2")
	require.True(t, ok, "sites without an ID are keyed by coordinates")
	assert.InDelta(t, 0.70, d.Max(), 1e-9)

	_, ok = db.Lookup("1-69270-A-G", "SAMD11")
	assert.False(t, ok)
	_, ok = db.Lookup("9-1-A-G", "OR4F5")
	assert.False(t, ok)
}

func TestLoad_Keep(t *testing.T) {
	keep := map[string]bool{"1-69511-A-G": true}
	db, err := Load(writeVCF(t), func(id string) bool { return keep[id] })
	require.NoError(t, err)
	assert.Len(t, db, 1)
	assert.Contains(t, db, "1-69511-A-G")
}

func TestParseInfo(t *testing.T) {
	genes := ParseInfo("G|SAMD11|0.00|0.61|0.00|0.00|-8|2|-22|-50,G|AL645608.1|x|0.00|0.00|0.00|-7|-19|-17|-41,truncated")
	require.Contains(t, genes, "SAMD11")
	assert.InDelta(t, 0.61, genes["SAMD11"].Max(), 1e-9)
	assert.Contains(t, genes, "AL645608.1")
	assert.Nil(t, genes["AL645608.1"])
	assert.Len(t, genes, 2)
	assert.Empty(t, ParseInfo(""))
}
