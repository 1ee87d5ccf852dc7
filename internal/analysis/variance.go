package analysis

import (
	"fmt"
	"math"
	"sort"
	"strconv"

	"github.com/sells-group/docdraft/internal/model"
)

// ComputeVariances derives one VarianceRow per LedgerRow, in input order.
func ComputeVariances(rows []model.LedgerRow) []model.VarianceRow {
	out := make([]model.VarianceRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, model.VarianceRow{
			Account:     r.Account,
			Actual:      r.Actual,
			Budget:      r.Budget,
			VariancePct: VariancePct(r.Actual, r.Budget),
		})
	}
	return out
}

// VariancePct returns (actual-budget)/budget*100 rounded to 2 decimals, or 0
// when budget is 0.
func VariancePct(actual, budget float64) float64 {
	if budget == 0 {
		return 0
	}
	return round2((actual - budget) / budget * 100)
}

// round2 rounds the exact decimal value of v to 2 places, ties to even.
func round2(v float64) float64 {
	r, err := strconv.ParseFloat(strconv.FormatFloat(v, 'f', 2, 64), 64)
	if err != nil {
		return v
	}
	if r == 0 {
		return 0 // no negative zero in output
	}
	return r
}

// RankVariances returns a copy of rows ordered by |variance_pct| descending.
// Rows with equal magnitude keep their input order.
func RankVariances(rows []model.VarianceRow) []model.VarianceRow {
	ranked := make([]model.VarianceRow, len(rows))
	copy(ranked, rows)
	sort.SliceStable(ranked, func(i, j int) bool {
		return math.Abs(ranked[i].VariancePct) > math.Abs(ranked[j].VariancePct)
	})
	return ranked
}

// Highlights renders the n largest variances as sentences.
func Highlights(rows []model.VarianceRow, n int) []string {
	top := head(RankVariances(rows), n)
	out := make([]string, 0, len(top))
	for _, r := range top {
		out = append(out, highlight(r))
	}
	return out
}

func highlight(r model.VarianceRow) string {
	direction := "under"
	if r.VariancePct > 0 {
		direction = "over"
	}
	return fmt.Sprintf("%s %s budget by %.2f%% (Actual %.0f vs Budget %.0f)",
		r.Account, direction, math.Abs(r.VariancePct), r.Actual, r.Budget)
}

// VarianceTable returns the n largest variances.
func VarianceTable(rows []model.VarianceRow, n int) []model.VarianceRow {
	return head(RankVariances(rows), n)
}

// AnalyzeVariances drafts a finance report for period from ledger rows.
func AnalyzeVariances(period string, rows []model.LedgerRow, opts Options) model.FinanceReport {
	opts = opts.normalized()
	vars := ComputeVariances(rows)
	return model.FinanceReport{
		Period:        period,
		Highlights:    Highlights(vars, opts.HighlightCount),
		VarianceTable: VarianceTable(vars, opts.TableSize),
		Risks:         FinanceRisks(vars),
	}
}
