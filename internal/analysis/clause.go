package analysis

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/sells-group/docdraft/internal/model"
)

// LabelPattern finds a line that starts with one of its labels followed by
// ':', '.' or '-' and captures the rest of that line.
type LabelPattern struct {
	Field  string
	Labels []string
	re     *regexp.Regexp
}

// NewLabelPattern compiles a case-insensitive, line-anchored pattern for
// labels. Earlier labels win when several could match at the same position.
func NewLabelPattern(field string, labels ...string) *LabelPattern {
	quoted := make([]string, len(labels))
	for i, l := range labels {
		quoted[i] = regexp.QuoteMeta(l)
	}
	expr := `(?im)^[ \t]*(?:` + strings.Join(quoted, "|") + `)[ \t]*[:.\-][ \t]*(.*)$`
	return &LabelPattern{
		Field:  field,
		Labels: labels,
		re:     regexp.MustCompile(expr),
	}
}

// Find returns the value captured on the first labelled line. A label with
// nothing after its separator counts as absent.
func (p *LabelPattern) Find(text string) (string, bool) {
	m := p.re.FindStringSubmatch(normalizeNewlines(text))
	if m == nil {
		return "", false
	}
	v := strings.TrimSpace(m[1])
	return v, v != ""
}

// Value returns the captured value or def when the label is absent.
func (p *LabelPattern) Value(text, def string) string {
	if v, ok := p.Find(text); ok {
		return v
	}
	return def
}

var (
	partiesPattern = NewLabelPattern("parties", "Parties", "Between")
	termPattern    = NewLabelPattern("term", "Term", "Duration")
	renewalPattern = NewLabelPattern("renewal", "Renewal", "Extension")
	paymentPattern = NewLabelPattern("payment", "Payment Terms", "Payment")

	partySeparator    = regexp.MustCompile(`\band\b|,\s*`)
	bulletPattern     = regexp.MustCompile(`(?m)^[ \t]*[-*][ \t]*(.+)$`)
	mandatorySentence = regexp.MustCompile(`(?i)[^.\n]*\b(?:shall|must)\b[^.\n]*\.`)
)

// ExtractParties returns at most two party names.
func ExtractParties(text string) []string {
	line, ok := partiesPattern.Find(text)
	if !ok {
		line = firstLine(text)
	}

	parties := []string{}
	for _, piece := range partySeparator.Split(line, -1) {
		name := strings.TrimFunc(piece, func(r rune) bool {
			return unicode.IsSpace(r) || r == ',' || r == '.'
		})
		if name == "" {
			continue
		}
		parties = append(parties, name)
		if len(parties) == MaxParties {
			break
		}
	}
	return parties
}

// ExtractObligations returns bullet items, or sentences using "shall" or
// "must" when the text has no bullets.
func ExtractObligations(text string) []string {
	text = normalizeNewlines(text)
	obligations := []string{}
	for _, m := range bulletPattern.FindAllStringSubmatch(text, -1) {
		if item := strings.TrimSpace(m[1]); item != "" {
			obligations = append(obligations, item)
		}
	}
	if len(obligations) == 0 {
		for _, s := range mandatorySentence.FindAllString(text, -1) {
			if s = strings.TrimSpace(s); s != "" {
				obligations = append(obligations, s)
			}
		}
	}
	return head(obligations, MaxObligations)
}

// ExtractContractSummary pulls the structured summary fields out of contract
// text. It never fails; unmatched fields fall back to defaults.
func ExtractContractSummary(text string) model.ContractSummary {
	return model.ContractSummary{
		Parties:     ExtractParties(text),
		Term:        termPattern.Value(text, model.NotSpecified),
		Renewal:     renewalPattern.Value(text, model.NotSpecified),
		Payment:     paymentPattern.Value(text, model.NotSpecified),
		Obligations: ExtractObligations(text),
		Risks:       ContractRisks(text),
	}
}
