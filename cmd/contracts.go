package main

import (
	"context"
	"fmt"
	"io"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/docdraft/internal/config"
	"github.com/sells-group/docdraft/internal/drafter"
	"github.com/sells-group/docdraft/internal/export"
	"github.com/sells-group/docdraft/internal/ingest"
	"github.com/sells-group/docdraft/internal/job"
	"github.com/sells-group/docdraft/internal/model"
	"github.com/sells-group/docdraft/internal/store"
)

var contractsJobPath string

var contractsCmd = &cobra.Command{
	Use:   "contracts",
	Short: "Summarize contracts into a register",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runContracts(cmd.Context(), cfg, contractsJobPath, cmd.OutOrStdout())
	},
}

func runContracts(ctx context.Context, c *config.Config, jobPath string, out io.Writer) error {
	j, err := job.LoadProcurement(jobPath)
	if err != nil {
		return err
	}

	env, err := initDraftEnv(ctx, c, "draft")
	if err != nil {
		return err
	}
	defer env.Close()

	texts := make([]string, len(j.Contracts))
	for i, path := range j.Contracts {
		if texts[i], err = ingest.ReadText(path); err != nil {
			return err
		}
	}

	summaries, err := drafter.ContractBatch(ctx, env.Drafter, texts, c.Draft.MaxConcurrency)
	if err != nil {
		store.Record(ctx, env.Store, model.KindContract, env.Drafter.Mode(), jobPath, nil, err)
		return eris.Wrap(err, "contracts")
	}
	for i, s := range summaries {
		store.Record(ctx, env.Store, model.KindContract, env.Drafter.Mode(), j.Contracts[i], s, nil)
	}

	if err := export.WriteRegisterCSV(j.Outputs.RegisterPath, summaries); err != nil {
		return err
	}
	written := j.Outputs.RegisterPath
	if j.Outputs.XLSXPath != "" {
		if err := export.WriteRegisterXLSX(j.Outputs.XLSXPath, summaries); err != nil {
			return err
		}
		written += " and " + j.Outputs.XLSXPath
	}

	_, _ = fmt.Fprintf(out, "Wrote %s\n", written)
	return nil
}

func init() {
	contractsCmd.Flags().StringVar(&contractsJobPath, "job", "config/procurement.yaml", "procurement job file")
	rootCmd.AddCommand(contractsCmd)
}
