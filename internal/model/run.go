package model

import (
	"encoding/json"
	"time"
)

// DocumentKind identifies the type of drafted document.
type DocumentKind string

const (
	KindFinance  DocumentKind = "finance_report"
	KindPolicy   DocumentKind = "policy_answer"
	KindContract DocumentKind = "contract_summary"
)

// DraftMode identifies which strategy produced a document.
type DraftMode string

const (
	ModeRuleBased DraftMode = "rule_based"
	ModeService   DraftMode = "service"
)

// RunStatus represents the outcome of a drafting run.
type RunStatus string

const (
	RunStatusComplete RunStatus = "complete"
	RunStatusFailed   RunStatus = "failed"
)

// Run records a single drafted document.
type Run struct {
	ID        string          `json:"id"`
	Kind      DocumentKind    `json:"kind"`
	Mode      DraftMode       `json:"mode"`
	Status    RunStatus       `json:"status"`
	Input     string          `json:"input"` // file path, period or question
	Result    json.RawMessage `json:"result,omitempty"`
	Error     string          `json:"error,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}
