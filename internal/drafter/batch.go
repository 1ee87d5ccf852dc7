package drafter

import (
	"context"

	"github.com/rotisserie/eris"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/docdraft/internal/model"
)

// PolicyBatch answers every question against one policy. Results keep the
// order of questions; the first error cancels the rest.
func PolicyBatch(ctx context.Context, d Drafter, policyText string, questions []string, limit int) ([]model.PolicyAnswer, error) {
	out := make([]model.PolicyAnswer, len(questions))
	err := fanOut(ctx, len(questions), limit, func(ctx context.Context, i int) error {
		ans, err := d.Policy(ctx, policyText, questions[i])
		if err != nil {
			return eris.Wrapf(err, "drafter: question %d", i)
		}
		out[i] = ans
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ContractBatch summarizes every contract text, keeping input order.
func ContractBatch(ctx context.Context, d Drafter, texts []string, limit int) ([]model.ContractSummary, error) {
	out := make([]model.ContractSummary, len(texts))
	err := fanOut(ctx, len(texts), limit, func(ctx context.Context, i int) error {
		sum, err := d.Contract(ctx, texts[i])
		if err != nil {
			return eris.Wrapf(err, "drafter: contract %d", i)
		}
		out[i] = sum
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func fanOut(ctx context.Context, n, limit int, fn func(ctx context.Context, i int) error) error {
	if limit < 1 {
		limit = 1
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i := range n {
		g.Go(func() error {
			return fn(gctx, i)
		})
	}
	return g.Wait()
}
