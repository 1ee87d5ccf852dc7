package model

// NotSpecified is the default for scalar contract fields with no matching clause.
const NotSpecified = "Not specified"

// ContractSummary holds the structured fields pulled from a contract.
type ContractSummary struct {
	Parties     []string `json:"parties"`
	Term        string   `json:"term"`
	Renewal     string   `json:"renewal"`
	Payment     string   `json:"payment"`
	Obligations []string `json:"obligations"`
	Risks       []string `json:"risks"`
}
