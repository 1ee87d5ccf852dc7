package drafter

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/docdraft/internal/model"
	"github.com/sells-group/docdraft/internal/schema"
)

const (
	financeInstruction  = "Draft a monthly variance report from the general-ledger variances provided. Return only JSON for the FinanceReport schema."
	policyInstruction   = "Answer ONLY from the given policy excerpts; if they do not answer the question, answer exactly 'Not in policy.' with no citations. Citations must be excerpts copied verbatim."
	contractInstruction = "Summarize the contract into JSON fields: parties[], term, renewal, payment, obligations[], risks[]. Use 'Not specified' for any field the contract does not state."
)

// systemPrompt appends the JSON Schema for kind to an instruction.
func systemPrompt(kind model.DocumentKind, instruction string) (string, error) {
	c, err := schema.For(kind)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s\n\nRespond with a single JSON object conforming to this JSON Schema (%s) and nothing else:\n%s",
		instruction, c.Name, c.JSON()), nil
}

type financePayload struct {
	Period string              `json:"period"`
	GL     []model.VarianceRow `json:"gl"`
}

func financeUserPrompt(period string, rows []model.VarianceRow) (string, error) {
	data, err := json.Marshal(financePayload{Period: period, GL: rows})
	if err != nil {
		return "", eris.Wrap(err, "drafter: marshal ledger")
	}
	return string(data), nil
}

func policyUserPrompt(citations []string, question string) string {
	var b strings.Builder
	b.WriteString("Excerpts:\n")
	b.WriteString(strings.Join(citations, "\n"))
	b.WriteString("\n\nQuestion: ")
	b.WriteString(question)
	return b.String()
}

// truncateRunes cuts s to at most n runes.
func truncateRunes(s string, n int) string {
	if n <= 0 {
		return s
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}
