package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/inodb/vibe-acmg/internal/datasource/revel"
)

func (a *app) newRevelCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "revel",
		Short: "Manage the REVEL score index",
	}

	var (
		index string
		force bool
	)
	indexCmd := &cobra.Command{
		Use:   "index <revel.csv>",
		Short: "Build a DuckDB index from the REVEL CSV",
		Long: `Bulk-load the REVEL CSV (plain or gzipped) into a DuckDB file so classify
can score records with a single join instead of scanning the CSV.
The index is rebuilt only when the CSV changed, unless --force is given.`,
		Example: `  vibe-acmg revel index revel_with_transcript_ids.csv.gz --index revel.duckdb
  vibe-acmg config set db.revel_index revel.duckdb`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if index == "" {
				index = a.v.GetString("db.revel_index")
			}
			if index == "" {
				return usageError{fmt.Errorf("--index is required (or set db.revel_index)")}
			}
			idx, err := openRevelIndex(index, args[0], force, a.logger)
			if err != nil {
				return err
			}
			return idx.Close()
		},
	}
	indexCmd.Flags().StringVar(&index, "index", "", "DuckDB index path")
	indexCmd.Flags().BoolVar(&force, "force", false, "rebuild even if the index is current")
	cmd.AddCommand(indexCmd)

	return cmd
}

// openRevelIndex opens the index at path, (re)loading it from csvPath when
// it is stale. With an empty csvPath the index must already be populated.
func openRevelIndex(path, csvPath string, force bool, logger *zap.Logger) (*revel.Store, error) {
	idx, err := revel.Open(path)
	if err != nil {
		return nil, err
	}

	switch {
	case csvPath != "" && (force || !idx.Current(csvPath)):
		logger.Info("building REVEL index", zap.String("csv", csvPath), zap.String("index", path))
		if err := idx.Load(csvPath); err != nil {
			idx.Close()
			return nil, err
		}
	case csvPath == "" && !idx.Loaded():
		idx.Close()
		return nil, fmt.Errorf("REVEL index %s is empty; build it with 'vibe-acmg revel index'", path)
	}

	n, err := idx.Count()
	if err != nil {
		idx.Close()
		return nil, err
	}
	logger.Info("REVEL index ready", zap.String("index", path), zap.Int64("rows", n))
	return idx, nil
}
