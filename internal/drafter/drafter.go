// Package drafter produces finance reports, policy answers and contract
// summaries either with the rule-based analysis engine or with a hosted
// model whose output is held to the same result schema.
package drafter

import (
	"context"

	"github.com/sells-group/docdraft/internal/analysis"
	"github.com/sells-group/docdraft/internal/config"
	"github.com/sells-group/docdraft/internal/model"
	"github.com/sells-group/docdraft/internal/schema"
	"github.com/sells-group/docdraft/pkg/anthropic"
)

// Drafter drafts the three document kinds.
type Drafter interface {
	Mode() model.DraftMode
	Finance(ctx context.Context, period string, rows []model.LedgerRow) (model.FinanceReport, error)
	Policy(ctx context.Context, policyText, question string) (model.PolicyAnswer, error)
	Contract(ctx context.Context, text string) (model.ContractSummary, error)
}

// New returns the drafter selected by cfg.Mode. A nil client in service
// mode is built from the anthropic settings.
func New(cfg *config.Config, client anthropic.Client) Drafter {
	if cfg.Mode() == model.ModeRuleBased {
		return NewRuleBased(cfg.Options())
	}
	if client == nil {
		client = anthropic.NewClient(cfg.Anthropic.Key, cfg.Anthropic.BaseURL)
	}
	return NewServiceBacked(client, ServiceConfig{
		Model:             cfg.Anthropic.Model,
		MaxTokens:         int64(cfg.Anthropic.MaxTokens),
		RequestsPerSecond: cfg.Anthropic.RequestsPerSecond,
		MaxContractChars:  cfg.Draft.MaxContractChars,
		Options:           cfg.Options(),
	})
}

// RuleBased drafts with the deterministic analysis engine only.
type RuleBased struct {
	opts analysis.Options
}

// NewRuleBased creates a rule-based drafter.
func NewRuleBased(opts analysis.Options) *RuleBased {
	return &RuleBased{opts: opts}
}

// Mode implements Drafter.
func (r *RuleBased) Mode() model.DraftMode { return model.ModeRuleBased }

// Finance implements Drafter.
func (r *RuleBased) Finance(ctx context.Context, period string, rows []model.LedgerRow) (model.FinanceReport, error) {
	if err := ctx.Err(); err != nil {
		return model.FinanceReport{}, err
	}
	report := analysis.AnalyzeVariances(period, rows, r.opts)
	if err := schema.Check(model.KindFinance, report); err != nil {
		return model.FinanceReport{}, err
	}
	return report, nil
}

// Policy implements Drafter.
func (r *RuleBased) Policy(ctx context.Context, policyText, question string) (model.PolicyAnswer, error) {
	if err := ctx.Err(); err != nil {
		return model.PolicyAnswer{}, err
	}
	return analysis.RetrieveCitations(policyText, question, r.opts.CitationK), nil
}

// Contract implements Drafter.
func (r *RuleBased) Contract(ctx context.Context, text string) (model.ContractSummary, error) {
	if err := ctx.Err(); err != nil {
		return model.ContractSummary{}, err
	}
	return analysis.ExtractContractSummary(text), nil
}
