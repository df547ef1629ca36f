package revel

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inodb/vibe-acmg/internal/variant"
)

// Small test fixture in REVEL CSV format.
const testCSV = `chr,hg19_pos,grch38_pos,ref,alt,aaref,aaalt,REVEL,Ensembl_transcriptid
1,35142,35142,G,A,T,M,0.027,ENST00000417324
1,69728,69728,T,C,I,T,0.035,ENST00000534990;ENST00000335137
1,.,889455,A,G,K,E,0.9,ENST00000379410
2,47641559,47414420,C,T,R,W,0.52,ENST00000233146
2,47641560,47414421,G,A,R,Q,0,ENST00000233146
`

func writeCSV(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "revel.csv")
	require.NoError(t, os.WriteFile(path, []byte(testCSV), 0644))
	return path
}

func newStore() *variant.Store {
	s := variant.NewStore()
	s.Add(&variant.Record{VariantID: "1-69728-T-C", TranscriptID: "ENST00000335137"})
	s.Add(&variant.Record{VariantID: "1-69728-T-C", TranscriptID: "ENST00000641515"})
	s.Add(&variant.Record{VariantID: "2-47641559-C-T", TranscriptID: "ENST00000233146.7"})
	s.Add(&variant.Record{VariantID: "2-47641560-G-A", TranscriptID: "ENST00000233146"})
	s.Add(&variant.Record{VariantID: "1-889455-A-G", TranscriptID: "ENST00000379410"})
	return s
}

func assertScores(t *testing.T, store *variant.Store) {
	t.Helper()

	r, _ := store.Get("1-69728-T-C", "ENST00000335137")
	require.NotNil(t, r.REVEL)
	assert.InDelta(t, 0.035, *r.REVEL, 1e-9)

	r, _ = store.Get("1-69728-T-C", "ENST00000641515")
	assert.Nil(t, r.REVEL, "transcript not listed for the variant")

	r, _ = store.Get("2-47641559-C-T", "ENST00000233146.7")
	require.NotNil(t, r.REVEL, "version suffix is ignored")
	assert.InDelta(t, 0.52, *r.REVEL, 1e-9)

	r, _ = store.Get("2-47641560-G-A", "ENST00000233146")
	require.NotNil(t, r.REVEL, "a zero score is still a score")
	assert.Zero(t, *r.REVEL)

	r, _ = store.Get("1-889455-A-G", "ENST00000379410")
	assert.Nil(t, r.REVEL, "rows without a GRCh37 position are skipped")
}

func TestPatch(t *testing.T) {
	store := newStore()
	n, err := Patch(writeCSV(t), store)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assertScores(t, store)
}

func TestPatch_MissingColumn(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.csv")
	require.NoError(t, os.WriteFile(path, []byte("chr,hg19_pos,ref,alt\n"), 0644))
	_, err := Patch(path, newStore())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "REVEL")
}

func TestStore_LoadAndPatch(t *testing.T) {
	s, err := Open("")
	require.NoError(t, err)
	defer s.Close()

	assert.False(t, s.Loaded(), "should be empty before load")

	csvPath := writeCSV(t)
	assert.False(t, s.Current(csvPath))
	require.NoError(t, s.Load(csvPath))
	assert.True(t, s.Loaded())
	assert.True(t, s.Current(csvPath))

	n, err := s.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(4), n)

	store := newStore()
	scored, err := s.Patch(store)
	require.NoError(t, err)
	assert.Equal(t, 3, scored)
	assertScores(t, store)
}

func TestStore_LoadIdempotent(t *testing.T) {
	s, err := Open("")
	require.NoError(t, err)
	defer s.Close()

	csvPath := writeCSV(t)
	require.NoError(t, s.Load(csvPath))
	require.NoError(t, s.Load(csvPath))

	n, err := s.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(4), n)
}

func TestStore_PatchEmpty(t *testing.T) {
	s, err := Open("")
	require.NoError(t, err)
	defer s.Close()

	n, err := s.Patch(variant.NewStore())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestStore_ReopenAndReload(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "revel.duckdb")
	csvPath := writeCSV(t)

	s, err := Open(dbPath)
	require.NoError(t, err)
	require.NoError(t, s.Load(csvPath))
	require.NoError(t, s.Close())

	// Reopening finds the existing tables and lookup index.
	s, err = Open(dbPath)
	require.NoError(t, err)
	defer s.Close()
	assert.True(t, s.Current(csvPath))

	require.NoError(t, s.Load(csvPath))
	n, err := s.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(4), n, "reload replaces rows")

	for i := 0; i < 2; i++ {
		store := newStore()
		scored, err := s.Patch(store)
		require.NoError(t, err)
		assert.Equal(t, 3, scored)
		assertScores(t, store)
	}
}
