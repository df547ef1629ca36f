// Package config holds the settings of a classification run, read from the
// config file, VIBE_ACMG_* environment variables and command-line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment overrides, e.g. VIBE_ACMG_DB_CLINVAR.
const EnvPrefix = "VIBE_ACMG"

// FileName is the config file name in the user's home directory.
const FileName = ".vibe-acmg.yaml"

// Sample selects one sample column of a VCF.
type Sample struct {
	VCF    string `mapstructure:"vcf" yaml:"vcf"`
	Sample string `mapstructure:"sample" yaml:"sample"`
}

// Databases lists the reference data files.
type Databases struct {
	ClinVar      string `mapstructure:"clinvar" yaml:"clinvar"`
	Disease      string `mapstructure:"disease" yaml:"disease"`
	GnomAD       string `mapstructure:"gnomad" yaml:"gnomad"`
	REVEL        string `mapstructure:"revel" yaml:"revel"`
	REVELIndex   string `mapstructure:"revel_index" yaml:"revel_index"`
	SpliceAI     string `mapstructure:"spliceai" yaml:"spliceai"`
	RepeatMasker string `mapstructure:"repeatmasker" yaml:"repeatmasker"`
}

// Log configures the logger.
type Log struct {
	Level string `mapstructure:"level" yaml:"level"`
	JSON  bool   `mapstructure:"json" yaml:"json"`
}

// Config is the full run configuration.
type Config struct {
	VEP     string    `mapstructure:"vep" yaml:"vep"`
	Proband Sample    `mapstructure:"proband" yaml:"proband"`
	Father  Sample    `mapstructure:"father" yaml:"father"`
	Mother  Sample    `mapstructure:"mother" yaml:"mother"`
	DB      Databases `mapstructure:"db" yaml:"db"`
	Output  string    `mapstructure:"output" yaml:"output"`
	Workers int       `mapstructure:"workers" yaml:"workers"`
	Sort    bool      `mapstructure:"sort" yaml:"sort"`
	Log     Log       `mapstructure:"log" yaml:"log"`
}

// Keys lists every configuration key.
var Keys = []string{
	"vep",
	"proband.vcf", "proband.sample",
	"father.vcf", "father.sample",
	"mother.vcf", "mother.sample",
	"db.clinvar", "db.disease", "db.gnomad", "db.revel", "db.revel_index",
	"db.spliceai", "db.repeatmasker",
	"output", "workers", "sort", "log.level", "log.json",
}

// SetDefaults registers default values on v. Every key gets a default so
// that environment overrides are visible to Unmarshal.
func SetDefaults(v *viper.Viper) {
	for _, k := range Keys {
		v.SetDefault(k, "")
	}
	v.SetDefault("output", "-")
	v.SetDefault("workers", 0)
	v.SetDefault("sort", false)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.json", false)
}

// BindEnv makes every key overridable through VIBE_ACMG_* variables.
func BindEnv(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// Load unmarshals v into a Config.
func Load(v *viper.Viper) (Config, error) {
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	return c, nil
}

// Trio reports whether parent genotypes are configured.
func (c Config) Trio() bool {
	return c.Father.VCF != "" || c.Mother.VCF != ""
}

// Validate checks that the inputs a classification run needs are present.
func (c Config) Validate() error {
	var errs []error

	required := []struct{ key, path string }{
		{"vep", c.VEP},
		{"db.clinvar", c.DB.ClinVar},
		{"db.disease", c.DB.Disease},
	}
	for _, r := range required {
		if r.path == "" {
			errs = append(errs, fmt.Errorf("%s is required", r.key))
		}
	}

	optional := []struct{ key, path string }{
		{"vep", c.VEP},
		{"db.clinvar", c.DB.ClinVar},
		{"db.disease", c.DB.Disease},
		{"db.gnomad", c.DB.GnomAD},
		{"db.revel", c.DB.REVEL},
		{"db.spliceai", c.DB.SpliceAI},
		{"db.repeatmasker", c.DB.RepeatMasker},
		{"proband.vcf", c.Proband.VCF},
		{"father.vcf", c.Father.VCF},
		{"mother.vcf", c.Mother.VCF},
	}
	for _, o := range optional {
		if o.path == "" {
			continue
		}
		if _, err := os.Stat(o.path); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", o.key, err))
		}
	}

	if c.Trio() && c.Proband.VCF == "" {
		errs = append(errs, errors.New("proband.vcf is required when parent genotypes are given"))
	}
	if c.Workers < 0 {
		errs = append(errs, fmt.Errorf("workers must not be negative, got %d", c.Workers))
	}
	return errors.Join(errs...)
}
