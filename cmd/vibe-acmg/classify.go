package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/inodb/vibe-acmg/internal/acmg"
	"github.com/inodb/vibe-acmg/internal/bayes"
	"github.com/inodb/vibe-acmg/internal/config"
	"github.com/inodb/vibe-acmg/internal/datasource/clinvar"
	"github.com/inodb/vibe-acmg/internal/datasource/disease"
	"github.com/inodb/vibe-acmg/internal/datasource/gnomad"
	"github.com/inodb/vibe-acmg/internal/datasource/repeatmasker"
	"github.com/inodb/vibe-acmg/internal/datasource/revel"
	"github.com/inodb/vibe-acmg/internal/datasource/spliceai"
	"github.com/inodb/vibe-acmg/internal/output"
	"github.com/inodb/vibe-acmg/internal/variant"
	"github.com/inodb/vibe-acmg/internal/vcf"
	"github.com/inodb/vibe-acmg/internal/vep"
)

func (a *app) newClassifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "classify [flags] [vep-file]",
		Short: "Assign ACMG/AMP evidence and classify variants",
		Long: `Read a VEP tab-delimited annotation file, assign ACMG/AMP evidence codes per
variant and transcript, and write the Bayesian classification report.

Every path can also be given in the config file or as a VIBE_ACMG_* environment
variable, e.g. VIBE_ACMG_DB_CLINVAR.`,
		Example: `  vibe-acmg classify --clinvar clinvar.tsv --disease disease.tsv proband.vep.txt
  vibe-acmg classify --proband trio.vcf --proband-sample CHILD \
      --father trio.vcf --father-sample DAD --mother trio.vcf --mother-sample MOM \
      --gnomad gnomad.exomes.vcf.bgz --revel-index revel.duckdb \
      --spliceai spliceai.vcf.gz --repeatmasker hg19.fa.out \
      -o report.tsv --sort proband.vep.txt`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				a.v.Set("vep", args[0])
			}
			cfg, err := config.Load(a.v)
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return usageError{err}
			}
			return runClassify(cmd.Context(), cfg, cmd.OutOrStdout(), a.logger)
		},
	}

	flags := []struct {
		name, key, usage string
	}{
		{"proband", "proband.vcf", "proband genotype VCF"},
		{"proband-sample", "proband.sample", "proband sample name (default: first sample)"},
		{"father", "father.vcf", "father genotype VCF"},
		{"father-sample", "father.sample", "father sample name (default: first sample)"},
		{"mother", "mother.vcf", "mother genotype VCF"},
		{"mother-sample", "mother.sample", "mother sample name (default: first sample)"},
		{"clinvar", "db.clinvar", "ClinVar variant TSV"},
		{"disease", "db.disease", "gene-disease TSV"},
		{"gnomad", "db.gnomad", "gnomAD sites VCF"},
		{"revel", "db.revel", "REVEL CSV"},
		{"revel-index", "db.revel_index", "REVEL DuckDB index (built from --revel when stale)"},
		{"spliceai", "db.spliceai", "SpliceAI VCF"},
		{"repeatmasker", "db.repeatmasker", "RepeatMasker .out file"},
	}
	for _, f := range flags {
		cmd.Flags().String(f.name, "", f.usage)
		a.v.BindPFlag(f.key, cmd.Flags().Lookup(f.name))
	}

	cmd.Flags().StringP("output", "o", "-", "output file (- for stdout)")
	cmd.Flags().Int("workers", 0, "goroutines per rule pass (0 = all CPUs)")
	cmd.Flags().Bool("sort", false, "sort rows by descending posterior probability")
	a.v.BindPFlag("output", cmd.Flags().Lookup("output"))
	a.v.BindPFlag("workers", cmd.Flags().Lookup("workers"))
	a.v.BindPFlag("sort", cmd.Flags().Lookup("sort"))

	return cmd
}

// sources holds the reference collaborators of a run.
type sources struct {
	clinvar  clinvar.DB
	disease  disease.DB
	spliceai spliceai.DB
	repeats  *repeatmasker.Index

	proband, father, mother vcf.Genotypes
}

func runClassify(ctx context.Context, cfg config.Config, stdout io.Writer, logger *zap.Logger) error {
	start := time.Now()
	logger = logger.With(zap.String("run_id", uuid.NewString()))

	store, err := vep.ReadFile(cfg.VEP)
	if err != nil {
		return err
	}
	logger.Info("loaded VEP records",
		zap.String("path", cfg.VEP),
		zap.Int("records", store.Len()),
		zap.Int("variants", len(store.VariantIDs())))

	src, err := loadSources(ctx, cfg, store, logger)
	if err != nil {
		return err
	}
	if err := patchScores(cfg, store, logger); err != nil {
		return err
	}

	rules := []acmg.Rule{
		acmg.NewPVS1(src.clinvar),
		acmg.NewClinVarMatch(src.clinvar),
	}
	if src.proband != nil {
		rules = append(rules, acmg.NewDeNovo(src.proband, src.father, src.mother))
	} else {
		logger.Warn("no proband genotypes, skipping PS2")
	}
	rules = append(rules, acmg.NewPopulation(src.disease))
	if src.repeats != nil {
		rules = append(rules, acmg.NewRepeat(src.repeats))
	} else {
		logger.Warn("no RepeatMasker file, skipping PM4/BP3")
	}
	rules = append(rules,
		acmg.NewMechanism(src.clinvar),
		acmg.NewComputational(src.spliceai),
	)

	engine, err := acmg.NewEngine(rules...)
	if err != nil {
		return err
	}
	engine.SetLogger(logger)
	engine.SetWorkers(cfg.Workers)
	names := make([]string, 0, len(engine.Rules()))
	for _, rule := range engine.Rules() {
		names = append(names, rule.Name())
	}
	logger.Info("running rules", zap.Strings("rules", names), zap.Int("workers", cfg.Workers))
	if err := engine.Run(ctx, store); err != nil {
		return err
	}

	agg := bayes.NewAggregator(src.disease)
	agg.SetLogger(logger)
	rows := agg.Rows(store)
	if cfg.Sort {
		bayes.SortByPosterior(rows)
	}

	if err := writeReport(cfg.Output, stdout, rows); err != nil {
		return err
	}

	logger.Info("classification complete",
		zap.String("output", cfg.Output),
		zap.Int("rows", len(rows)),
		zap.Duration("elapsed", time.Since(start)))
	return nil
}

// loadSources reads the reference files concurrently. The loaders are not
// interruptible, so ctx is only checked before and after the group runs.
func loadSources(ctx context.Context, cfg config.Config, store *variant.Store, logger *zap.Logger) (*sources, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var src sources
	var g errgroup.Group

	g.Go(func() error {
		db, err := clinvar.Load(cfg.DB.ClinVar)
		if err != nil {
			return err
		}
		src.clinvar = db
		logger.Info("loaded ClinVar", zap.Int("genes", len(db)), zap.Int("variants", db.Len()))
		return nil
	})

	g.Go(func() error {
		db, err := disease.Load(cfg.DB.Disease)
		if err != nil {
			return err
		}
		src.disease = db
		logger.Info("loaded diseases", zap.Int("genes", len(db)))
		return nil
	})

	if cfg.DB.SpliceAI != "" {
		g.Go(func() error {
			db, err := spliceai.Load(cfg.DB.SpliceAI, store.HasVariant)
			if err != nil {
				return err
			}
			src.spliceai = db
			logger.Info("loaded SpliceAI", zap.Int("variants", len(db)))
			return nil
		})
	}

	if cfg.DB.RepeatMasker != "" {
		g.Go(func() error {
			idx, err := repeatmasker.Load(cfg.DB.RepeatMasker)
			if err != nil {
				return err
			}
			src.repeats = idx
			logger.Info("loaded RepeatMasker", zap.Int("intervals", idx.Len()))
			return nil
		})
	}

	gr := vcf.NewGenotypeReader(logger)
	genotypes := []struct {
		sample config.Sample
		dst    *vcf.Genotypes
	}{
		{cfg.Proband, &src.proband},
		{cfg.Father, &src.father},
		{cfg.Mother, &src.mother},
	}
	for _, gt := range genotypes {
		if gt.sample.VCF == "" {
			continue
		}
		g.Go(func() error {
			gts, err := gr.ReadGenotypes(gt.sample.VCF, gt.sample.Sample)
			if err != nil {
				return err
			}
			*gt.dst = gts
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return &src, nil
}

// patchScores fills population frequencies and REVEL scores into the store.
func patchScores(cfg config.Config, store *variant.Store, logger *zap.Logger) error {
	if cfg.DB.GnomAD != "" {
		n, err := gnomad.Patch(cfg.DB.GnomAD, store)
		if err != nil {
			return err
		}
		logger.Info("patched gnomAD frequencies", zap.Int("variants", n))
	} else {
		logger.Warn("no gnomAD file, skipping PM2/BA1/BS1")
	}

	switch {
	case cfg.DB.REVELIndex != "":
		idx, err := openRevelIndex(cfg.DB.REVELIndex, cfg.DB.REVEL, false, logger)
		if err != nil {
			return err
		}
		defer idx.Close()
		n, err := idx.Patch(store)
		if err != nil {
			return err
		}
		logger.Info("patched REVEL scores", zap.String("index", cfg.DB.REVELIndex), zap.Int("records", n))
	case cfg.DB.REVEL != "":
		n, err := revel.Patch(cfg.DB.REVEL, store)
		if err != nil {
			return err
		}
		logger.Info("patched REVEL scores", zap.String("path", cfg.DB.REVEL), zap.Int("records", n))
	default:
		logger.Warn("no REVEL scores, PP3/BP4 use SpliceAI only")
	}
	return nil
}

func writeReport(path string, stdout io.Writer, rows []bayes.Row) error {
	w := stdout
	if path != "" && path != "-" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer f.Close()
		w = f
	}

	rw := output.NewReportWriter(w)
	if err := rw.WriteAll(rows); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	if err := rw.Flush(); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}
