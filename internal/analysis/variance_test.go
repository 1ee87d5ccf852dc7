package analysis

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/docdraft/internal/model"
)

func TestVariancePct_ZeroBudget(t *testing.T) {
	t.Parallel()

	for _, actual := range []float64{0, 1, -250, 1e9} {
		assert.Equal(t, 0.0, VariancePct(actual, 0), "actual=%v", actual)
	}
}

func TestVariancePct_Rounding(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		actual, budget float64
		want           float64
	}{
		{"over", 1200, 1000, 20},
		{"under", 800, 1000, -20},
		{"on budget", 500, 500, 0},
		{"repeating decimal", 1001, 3, 33266.67},
		{"small fraction", 1000.1, 1000, 0.01},
		{"negative budget", -50, -100, -50},
		{"half rounds to even", 801, 800, 0.12},
		{"half below exact", 100.125, 100, 0.12},
		{"negative half", 799, 800, -0.12},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.InDelta(t, tt.want, VariancePct(tt.actual, tt.budget), 1e-9)
		})
	}
}

func TestVariancePct_NoNegativeZero(t *testing.T) {
	t.Parallel()

	got := VariancePct(999.99999, 1000)
	assert.Equal(t, 0.0, got)
	assert.False(t, math.Signbit(got))
}

func TestComputeVariances_KeepsCardinalityAndOrder(t *testing.T) {
	t.Parallel()

	rows := []model.LedgerRow{
		{Account: "Marketing", Actual: 1200, Budget: 1000},
		{Account: "COGS", Actual: 800, Budget: 1000},
		{Account: "Misc", Actual: 40, Budget: 0},
	}
	got := ComputeVariances(rows)
	require.Len(t, got, 3)
	assert.Equal(t, model.VarianceRow{Account: "Marketing", Actual: 1200, Budget: 1000, VariancePct: 20}, got[0])
	assert.Equal(t, model.VarianceRow{Account: "COGS", Actual: 800, Budget: 1000, VariancePct: -20}, got[1])
	assert.Equal(t, 0.0, got[2].VariancePct)
}

func TestComputeVariances_Empty(t *testing.T) {
	t.Parallel()

	got := ComputeVariances(nil)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestRankVariances_StableByMagnitude(t *testing.T) {
	t.Parallel()

	rows := []model.VarianceRow{
		{Account: "A", VariancePct: 10},
		{Account: "B", VariancePct: -10},
		{Account: "C", VariancePct: 5},
		{Account: "D", VariancePct: 10},
		{Account: "E", VariancePct: -30},
	}
	ranked := RankVariances(rows)

	var accounts []string
	for _, r := range ranked {
		accounts = append(accounts, r.Account)
	}
	assert.Equal(t, []string{"E", "A", "B", "D", "C"}, accounts)
	assert.Equal(t, "A", rows[0].Account, "input must not be reordered")
}

func TestHighlights_Format(t *testing.T) {
	t.Parallel()

	rows := ComputeVariances([]model.LedgerRow{
		{Account: "Marketing", Actual: 1200, Budget: 1000},
		{Account: "COGS", Actual: 800, Budget: 1000},
		{Account: "Rent", Actual: 1000, Budget: 1000},
	})
	got := Highlights(rows, 3)
	assert.Equal(t, []string{
		"Marketing over budget by 20.00% (Actual 1200 vs Budget 1000)",
		"COGS under budget by 20.00% (Actual 800 vs Budget 1000)",
		"Rent under budget by 0.00% (Actual 1000 vs Budget 1000)",
	}, got)
}

func TestHighlights_RoundsAmounts(t *testing.T) {
	t.Parallel()

	rows := ComputeVariances([]model.LedgerRow{{Account: "Travel", Actual: 1234.4, Budget: 1000.6}})
	got := Highlights(rows, 3)
	require.Len(t, got, 1)
	assert.Equal(t, "Travel over budget by 23.37% (Actual 1234 vs Budget 1001)", got[0])
}

func TestAnalyzeVariances_CardinalityBounds(t *testing.T) {
	t.Parallel()

	var rows []model.LedgerRow
	for i := 0; i < 12; i++ {
		rows = append(rows, model.LedgerRow{Account: "Acct", Actual: float64(100 + i*10), Budget: 100})
	}

	rep := AnalyzeVariances("2025-08", rows, Options{HighlightCount: 10, TableSize: 50})
	assert.Equal(t, "2025-08", rep.Period)
	assert.Len(t, rep.Highlights, MaxHighlights)
	assert.Len(t, rep.VarianceTable, MaxTableRows)
	assert.LessOrEqual(t, len(rep.Risks), MaxFinanceRisks)
	assert.InDelta(t, 110.0, rep.VarianceTable[0].VariancePct, 1e-9)
}

func TestAnalyzeVariances_SmallerSizes(t *testing.T) {
	t.Parallel()

	rows := []model.LedgerRow{
		{Account: "A", Actual: 110, Budget: 100},
		{Account: "B", Actual: 150, Budget: 100},
		{Account: "C", Actual: 90, Budget: 100},
	}
	rep := AnalyzeVariances("Q3", rows, Options{HighlightCount: 1, TableSize: 2})
	require.Len(t, rep.Highlights, 1)
	assert.Contains(t, rep.Highlights[0], "B over budget by 50.00%")
	require.Len(t, rep.VarianceTable, 2)
	assert.Equal(t, "B", rep.VarianceTable[0].Account)
	assert.Equal(t, "A", rep.VarianceTable[1].Account)
}

func TestAnalyzeVariances_SpecExample(t *testing.T) {
	t.Parallel()

	rows := []model.LedgerRow{
		{Account: "Marketing", Actual: 1200, Budget: 1000},
		{Account: "COGS", Actual: 800, Budget: 1000},
	}
	rep := AnalyzeVariances("2025-08", rows, DefaultOptions())
	require.Len(t, rep.VarianceTable, 2)
	assert.Equal(t, 20.0, rep.VarianceTable[0].VariancePct)
	assert.Equal(t, -20.0, rep.VarianceTable[1].VariancePct)
	assert.Equal(t, []string{RiskMarketingOverspend, RiskCOGSUnderspend}, rep.Risks)
}

func TestAnalyzeVariances_Deterministic(t *testing.T) {
	t.Parallel()

	rows := []model.LedgerRow{
		{Account: "A", Actual: 10, Budget: 20},
		{Account: "B", Actual: 30, Budget: 20},
		{Account: "C", Actual: 5, Budget: 0},
	}
	first := AnalyzeVariances("P", rows, DefaultOptions())
	second := AnalyzeVariances("P", rows, DefaultOptions())
	assert.Equal(t, first, second)
}

func TestOptionsNormalized(t *testing.T) {
	t.Parallel()

	got := Options{}.normalized()
	assert.Equal(t, DefaultOptions(), got)

	got = Options{HighlightCount: 2, TableSize: 9, CitationK: 7}.normalized()
	assert.Equal(t, Options{HighlightCount: 2, TableSize: MaxTableRows, CitationK: 7}, got)
}
