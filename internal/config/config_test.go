package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, nil, 0644))
	return path
}

func TestLoad_File(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, FileName)
	require.NoError(t, os.WriteFile(cfgPath, []byte(`vep: in.vep.txt
proband:
  vcf: trio.vcf
  sample: CHILD
db:
  clinvar: clinvar.tsv
  revel_index: revel.duckdb
workers: 4
log:
  level: debug
`), 0644))

	v := viper.New()
	SetDefaults(v)
	v.SetConfigFile(cfgPath)
	require.NoError(t, v.ReadInConfig())

	c, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, "in.vep.txt", c.VEP)
	assert.Equal(t, Sample{VCF: "trio.vcf", Sample: "CHILD"}, c.Proband)
	assert.Equal(t, "clinvar.tsv", c.DB.ClinVar)
	assert.Equal(t, "revel.duckdb", c.DB.REVELIndex)
	assert.Equal(t, 4, c.Workers)
	assert.Equal(t, "debug", c.Log.Level)
	assert.Equal(t, "-", c.Output)
	assert.False(t, c.Trio())
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("VIBE_ACMG_DB_DISEASE", "/data/disease.tsv")
	t.Setenv("VIBE_ACMG_SORT", "true")

	v := viper.New()
	SetDefaults(v)
	BindEnv(v)

	c, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, "/data/disease.tsv", c.DB.Disease)
	assert.True(t, c.Sort)
}

func TestValidate(t *testing.T) {
	dir := t.TempDir()
	vep := touch(t, dir, "in.vep.txt")
	clinvar := touch(t, dir, "clinvar.tsv")
	disease := touch(t, dir, "disease.tsv")
	father := touch(t, dir, "father.vcf")

	valid := Config{VEP: vep, DB: Databases{ClinVar: clinvar, Disease: disease}}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		modify func(c *Config)
		errMsg string
	}{
		{"missing vep", func(c *Config) { c.VEP = "" }, "vep is required"},
		{"missing clinvar", func(c *Config) { c.DB.ClinVar = "" }, "db.clinvar is required"},
		{"absent gnomad file", func(c *Config) { c.DB.GnomAD = filepath.Join(dir, "nope.vcf.gz") }, "db.gnomad"},
		{"parents without proband", func(c *Config) { c.Father.VCF = father }, "proband.vcf is required"},
		{"negative workers", func(c *Config) { c.Workers = -1 }, "workers"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid
			tt.modify(&c)
			err := c.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}
