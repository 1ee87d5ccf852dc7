package model

// LedgerRow is one general-ledger account line as read from tabular input.
type LedgerRow struct {
	Account string  `json:"account"`
	Actual  float64 `json:"actual"`
	Budget  float64 `json:"budget"`
}

// VarianceRow is a LedgerRow with its percentage deviation from budget.
type VarianceRow struct {
	Account     string  `json:"account"`
	Actual      float64 `json:"actual"`
	Budget      float64 `json:"budget"`
	VariancePct float64 `json:"variance_pct"`
}

// FinanceReport is the drafted variance report for one period.
type FinanceReport struct {
	Period        string        `json:"period"`
	Highlights    []string      `json:"highlights"`
	VarianceTable []VarianceRow `json:"variance_table"`
	Risks         []string      `json:"risks"`
}
