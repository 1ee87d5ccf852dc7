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

var hrJobPath string

var hrCmd = &cobra.Command{
	Use:   "hr",
	Short: "Answer HR questions from a policy document with citations",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runHR(cmd.Context(), cfg, hrJobPath, cmd.OutOrStdout())
	},
}

func runHR(ctx context.Context, c *config.Config, jobPath string, out io.Writer) error {
	j, err := job.LoadHR(jobPath)
	if err != nil {
		return err
	}

	env, err := initDraftEnv(ctx, c, "draft")
	if err != nil {
		return err
	}
	defer env.Close()

	policy, err := ingest.ReadText(j.PolicyPath)
	if err != nil {
		return err
	}

	answers, err := drafter.PolicyBatch(ctx, env.Drafter, policy, j.Questions, c.Draft.MaxConcurrency)
	if err != nil {
		store.Record(ctx, env.Store, model.KindPolicy, env.Drafter.Mode(), j.PolicyPath, nil, err)
		return eris.Wrap(err, "hr")
	}
	for i, a := range answers {
		store.Record(ctx, env.Store, model.KindPolicy, env.Drafter.Mode(), j.Questions[i], a, nil)
	}

	if err := export.WriteQnALog(j.Outputs.LogPath, j.Questions, answers); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(out, "Wrote %s\n", j.Outputs.LogPath)
	return nil
}

func init() {
	hrCmd.Flags().StringVar(&hrJobPath, "job", "config/hr.yaml", "HR job file")
	rootCmd.AddCommand(hrCmd)
}
