package drafter

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/sells-group/docdraft/internal/analysis"
	"github.com/sells-group/docdraft/internal/model"
	"github.com/sells-group/docdraft/internal/resilience"
	"github.com/sells-group/docdraft/internal/schema"
	"github.com/sells-group/docdraft/pkg/anthropic"
)

// ServiceConfig configures a ServiceBacked drafter.
type ServiceConfig struct {
	Model             string
	MaxTokens         int64
	RequestsPerSecond float64
	MaxContractChars  int
	Options           analysis.Options

	// Retry overrides resilience.DefaultRetryConfig when MaxAttempts > 0.
	Retry resilience.RetryConfig
}

// ServiceBacked drafts with the Anthropic Messages API. Responses are
// decoded through the result schema; a violation is returned unchanged.
type ServiceBacked struct {
	client  anthropic.Client
	cfg     ServiceConfig
	limiter *rate.Limiter
	retry   resilience.RetryConfig
}

// NewServiceBacked creates a service-backed drafter.
func NewServiceBacked(client anthropic.Client, cfg ServiceConfig) *ServiceBacked {
	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}
	retry := cfg.Retry
	if retry.MaxAttempts <= 0 {
		retry = resilience.DefaultRetryConfig()
	}
	return &ServiceBacked{
		client:  client,
		cfg:     cfg,
		limiter: rate.NewLimiter(limit, 1),
		retry:   retry,
	}
}

// Mode implements Drafter.
func (s *ServiceBacked) Mode() model.DraftMode { return model.ModeService }

// Finance implements Drafter. Variances are computed locally and sent as
// the ledger.
func (s *ServiceBacked) Finance(ctx context.Context, period string, rows []model.LedgerRow) (model.FinanceReport, error) {
	user, err := financeUserPrompt(period, analysis.ComputeVariances(rows))
	if err != nil {
		return model.FinanceReport{}, err
	}
	raw, err := s.complete(ctx, model.KindFinance, financeInstruction, user)
	if err != nil {
		return model.FinanceReport{}, err
	}
	return schema.DecodeFinanceReport(raw)
}

// Policy implements Drafter. Only the retrieved citations are sent, never
// the whole policy.
func (s *ServiceBacked) Policy(ctx context.Context, policyText, question string) (model.PolicyAnswer, error) {
	citations := analysis.Citations(policyText, question, s.cfg.Options.CitationK)
	raw, err := s.complete(ctx, model.KindPolicy, policyInstruction, policyUserPrompt(citations, question))
	if err != nil {
		return model.PolicyAnswer{}, err
	}
	return schema.DecodePolicyAnswer(raw)
}

// Contract implements Drafter.
func (s *ServiceBacked) Contract(ctx context.Context, text string) (model.ContractSummary, error) {
	raw, err := s.complete(ctx, model.KindContract, contractInstruction, truncateRunes(text, s.cfg.MaxContractChars))
	if err != nil {
		return model.ContractSummary{}, err
	}
	return schema.DecodeContractSummary(raw)
}

// complete sends one rate-limited, retried request and returns the JSON
// object found in the reply.
func (s *ServiceBacked) complete(ctx context.Context, kind model.DocumentKind, instruction, user string) ([]byte, error) {
	system, err := systemPrompt(kind, instruction)
	if err != nil {
		return nil, err
	}

	temperature := 0.0
	req := anthropic.MessageRequest{
		Model:       s.cfg.Model,
		MaxTokens:   s.cfg.MaxTokens,
		System:      system,
		Messages:    []anthropic.Message{{Role: "user", Content: user}},
		Temperature: &temperature,
	}

	retry := s.retry
	retry.OnRetry = resilience.RetryLogger("anthropic", string(kind))

	resp, err := resilience.DoVal(ctx, retry, func(ctx context.Context) (*anthropic.MessageResponse, error) {
		if err := s.limiter.Wait(ctx); err != nil {
			return nil, err
		}
		return s.client.CreateMessage(ctx, req)
	})
	if err != nil {
		return nil, eris.Wrapf(err, "drafter: %s request", kind)
	}

	resp.Usage.LogCost(s.cfg.Model, string(kind))
	zap.L().Debug("drafter: service response",
		zap.String("kind", string(kind)),
		zap.String("stop_reason", resp.StopReason),
	)

	return []byte(anthropic.ExtractJSON(resp.Text())), nil
}
