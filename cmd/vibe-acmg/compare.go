package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/inodb/vibe-acmg/internal/output"
)

func (a *app) newCompareCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "compare <report> <reference>",
		Short: "Compare evidence codes against a reference classification",
		Long: `Compare the ACMG_rule column of a vibe-acmg report against a reference file
with Uploaded_variation, Feature and ACMG_RULE columns, per evidence code,
over the (variant, transcript) pairs both files share.`,
		Example: `  vibe-acmg compare report.tsv reference.tsv`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ours, err := output.LoadReport(args[0])
			if err != nil {
				return err
			}
			ref, err := output.LoadReference(args[1])
			if err != nil {
				return err
			}
			a.logger.Info("loaded evidence",
				zap.String("report", args[0]), zap.Int("report_records", len(ours)),
				zap.String("reference", args[1]), zap.Int("reference_records", len(ref)))

			rows := output.Concordance(ours, ref)
			cw := output.NewConcordanceWriter(cmd.OutOrStdout())
			if err := cw.Write(rows); err != nil {
				return err
			}
			if err := cw.Flush(); err != nil {
				return err
			}
			output.WriteSummary(cmd.OutOrStdout(), rows, len(ref))
			return nil
		},
	}
}
