// Package schema defines the result contract shared by the rule-based and
// service-backed drafters and validates documents against it.
package schema

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/rotisserie/eris"

	"github.com/sells-group/docdraft/internal/model"
)

// Contract is the JSON Schema for one document kind plus the field that must
// be a non-empty string for a document to be accepted.
type Contract struct {
	Kind         model.DocumentKind
	Name         string
	PrimaryField string
	Schema       *jsonschema.Schema

	resolved *jsonschema.Resolved
}

// JSON returns the schema document, indented for embedding in prompts.
func (c *Contract) JSON() string {
	data, err := json.MarshalIndent(c.Schema, "", "  ")
	if err != nil {
		return "{}"
	}
	return string(data)
}

var contracts = map[model.DocumentKind]*Contract{
	model.KindFinance:  mustContract(model.KindFinance, "FinanceReport", "period", financeSchema()),
	model.KindPolicy:   mustContract(model.KindPolicy, "PolicyAnswer", "answer", policySchema()),
	model.KindContract: mustContract(model.KindContract, "ContractSummary", "term", contractSchema()),
}

// For returns the contract for kind.
func For(kind model.DocumentKind) (*Contract, error) {
	c, ok := contracts[kind]
	if !ok {
		return nil, eris.Errorf("schema: unknown document kind %q", kind)
	}
	return c, nil
}

func mustContract(kind model.DocumentKind, name, primary string, s *jsonschema.Schema) *Contract {
	resolved, err := s.Resolve(nil)
	if err != nil {
		panic(fmt.Sprintf("schema: resolve %s: %v", name, err))
	}
	return &Contract{
		Kind:         kind,
		Name:         name,
		PrimaryField: primary,
		Schema:       s,
		resolved:     resolved,
	}
}

func financeSchema() *jsonschema.Schema {
	row := object(map[string]*jsonschema.Schema{
		"account":      {Type: "string"},
		"actual":       {Type: "number"},
		"budget":       {Type: "number"},
		"variance_pct": {Type: "number"},
	}, "account", "actual", "budget", "variance_pct")

	return object(map[string]*jsonschema.Schema{
		"period":         {Type: "string"},
		"highlights":     stringArray(3),
		"variance_table": array(row, 5),
		"risks":          stringArray(3),
	}, "period", "highlights", "variance_table", "risks")
}

func policySchema() *jsonschema.Schema {
	return object(map[string]*jsonschema.Schema{
		"answer":    {Type: "string"},
		"citations": {Type: "array", Items: &jsonschema.Schema{Type: "string"}},
	}, "answer", "citations")
}

func contractSchema() *jsonschema.Schema {
	return object(map[string]*jsonschema.Schema{
		"parties":     stringArray(2),
		"term":        {Type: "string"},
		"renewal":     {Type: "string"},
		"payment":     {Type: "string"},
		"obligations": stringArray(5),
		"risks":       stringArray(5),
	}, "parties", "term", "renewal", "payment", "obligations", "risks")
}

func object(props map[string]*jsonschema.Schema, required ...string) *jsonschema.Schema {
	return &jsonschema.Schema{
		Type:       "object",
		Properties: props,
		Required:   required,
	}
}

func array(items *jsonschema.Schema, maxItems int) *jsonschema.Schema {
	return &jsonschema.Schema{
		Type:     "array",
		Items:    items,
		MaxItems: &maxItems,
	}
}

func stringArray(maxItems int) *jsonschema.Schema {
	return array(&jsonschema.Schema{Type: "string"}, maxItems)
}

// ViolationError reports a document that does not satisfy its contract. It is
// fatal for the request that produced it.
type ViolationError struct {
	Kind   model.DocumentKind
	Field  string
	Reason string
}

func (e *ViolationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("schema: %s violates contract at %q: %s", e.Kind, e.Field, e.Reason)
	}
	return fmt.Sprintf("schema: %s violates contract: %s", e.Kind, e.Reason)
}

// Validate checks raw JSON against the contract for kind.
func Validate(kind model.DocumentKind, raw []byte) error {
	c, err := For(kind)
	if err != nil {
		return err
	}

	var instance any
	if err := json.Unmarshal(raw, &instance); err != nil {
		return &ViolationError{Kind: kind, Reason: "invalid JSON: " + err.Error()}
	}
	obj, ok := instance.(map[string]any)
	if !ok {
		return &ViolationError{Kind: kind, Reason: "document is not a JSON object"}
	}
	if err := c.resolved.Validate(obj); err != nil {
		return &ViolationError{Kind: kind, Reason: err.Error()}
	}

	primary, _ := obj[c.PrimaryField].(string)
	if strings.TrimSpace(primary) == "" {
		return &ViolationError{Kind: kind, Field: c.PrimaryField, Reason: "required value is empty"}
	}
	return nil
}

// Check validates a typed document by round-tripping it through JSON.
func Check(kind model.DocumentKind, doc any) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return eris.Wrapf(err, "schema: marshal %s", kind)
	}
	return Validate(kind, raw)
}

func decode[T any](kind model.DocumentKind, raw []byte) (T, error) {
	var out T
	if err := Validate(kind, raw); err != nil {
		return out, err
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, &ViolationError{Kind: kind, Reason: err.Error()}
	}
	return out, nil
}

// DecodeFinanceReport validates and decodes an externally produced report.
func DecodeFinanceReport(raw []byte) (model.FinanceReport, error) {
	return decode[model.FinanceReport](model.KindFinance, raw)
}

// DecodePolicyAnswer validates and decodes an externally produced answer.
func DecodePolicyAnswer(raw []byte) (model.PolicyAnswer, error) {
	return decode[model.PolicyAnswer](model.KindPolicy, raw)
}

// DecodeContractSummary validates and decodes an externally produced summary.
func DecodeContractSummary(raw []byte) (model.ContractSummary, error) {
	return decode[model.ContractSummary](model.KindContract, raw)
}
