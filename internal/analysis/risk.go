package analysis

import (
	"strings"

	"github.com/sells-group/docdraft/internal/model"
)

// Finance and contract risk statements.
const (
	RiskMarketingOverspend = "Marketing spend exceeds threshold (>10%)."
	RiskCOGSUnderspend     = "COGS materially under budget; verify allocations."
	RiskMonitorCashFlow    = "Monitor cash flow and receivables; variances within control limits."
	RiskLegalReview        = "No obvious risk keywords found; legal review still required."
)

const (
	marketingOverspendPct = 10.0
	cogsUnderspendPct     = -5.0
)

// financeRule emits its statement once if any row matches.
type financeRule struct {
	statement string
	matches   func(model.VarianceRow) bool
}

var financeRules = []financeRule{
	{
		statement: RiskMarketingOverspend,
		matches: func(r model.VarianceRow) bool {
			return strings.HasPrefix(strings.ToLower(r.Account), "marketing") && r.VariancePct > marketingOverspendPct
		},
	},
	{
		statement: RiskCOGSUnderspend,
		matches: func(r model.VarianceRow) bool {
			return strings.EqualFold(r.Account, "cogs") && r.VariancePct < cogsUnderspendPct
		},
	},
}

// contractRiskKeywords is checked in order.
var contractRiskKeywords = []string{
	"penalty",
	"liability",
	"termination",
	"indemnify",
	"breach",
	"late fee",
	"non-compete",
}

// FinanceRisks evaluates the finance rules against rows.
func FinanceRisks(rows []model.VarianceRow) []string {
	risks := []string{}
	for _, rule := range financeRules {
		for _, r := range rows {
			if rule.matches(r) {
				risks = append(risks, rule.statement)
				break
			}
		}
	}
	if len(risks) == 0 {
		risks = append(risks, RiskMonitorCashFlow)
	}
	return head(risks, MaxFinanceRisks)
}

// ContractRisks flags every risk keyword present in text.
func ContractRisks(text string) []string {
	lower := strings.ToLower(text)
	risks := []string{}
	for _, kw := range contractRiskKeywords {
		if strings.Contains(lower, kw) {
			risks = append(risks, "Check clause on "+kw)
		}
	}
	if len(risks) == 0 {
		risks = append(risks, RiskLegalReview)
	}
	return head(risks, MaxContractRisks)
}
