package main

import (
	"context"
	"fmt"
	"io"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/docdraft/internal/config"
	"github.com/sells-group/docdraft/internal/export"
	"github.com/sells-group/docdraft/internal/ingest"
	"github.com/sells-group/docdraft/internal/job"
	"github.com/sells-group/docdraft/internal/model"
	"github.com/sells-group/docdraft/internal/store"
)

var financeJobPath string

var financeCmd = &cobra.Command{
	Use:   "finance",
	Short: "Draft a monthly variance report from a general ledger",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runFinance(cmd.Context(), cfg, financeJobPath, cmd.OutOrStdout())
	},
}

func runFinance(ctx context.Context, c *config.Config, jobPath string, out io.Writer) error {
	j, err := job.LoadFinance(jobPath)
	if err != nil {
		return err
	}

	env, err := initDraftEnv(ctx, c, "draft")
	if err != nil {
		return err
	}
	defer env.Close()

	rows, err := ingest.ReadLedger(j.InputPath)
	if err != nil {
		return err
	}
	zap.L().Info("ledger loaded", zap.String("path", j.InputPath), zap.Int("rows", len(rows)))

	report, err := env.Drafter.Finance(ctx, j.Period, rows)
	store.Record(ctx, env.Store, model.KindFinance, env.Drafter.Mode(), j.InputPath, report, err)
	if err != nil {
		return eris.Wrap(err, "finance")
	}

	if err := export.WriteJSON(j.Outputs.JSONPath, report); err != nil {
		return err
	}
	if err := export.WriteVarianceCSV(j.Outputs.CSVPath, report); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(out, "Wrote %s and %s\n", j.Outputs.JSONPath, j.Outputs.CSVPath)
	return nil
}

func init() {
	financeCmd.Flags().StringVar(&financeJobPath, "job", "config/finance.yaml", "finance job file")
	rootCmd.AddCommand(financeCmd)
}
