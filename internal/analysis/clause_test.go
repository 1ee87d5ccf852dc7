package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/docdraft/internal/model"
)

const servicesAgreement = `MASTER SERVICES AGREEMENT
Parties: Acme Corp and Globex LLC
Term: 12 months from the Effective Date
Renewal: Automatically renews for successive one-year periods
Payment Terms: Net 30 from invoice date
- Vendor shall deliver monthly reports
- Client shall provide access to systems
A late fee of 1.5% applies. Either party may seek termination upon breach.`

func TestExtractContractSummary_LabelledContract(t *testing.T) {
	t.Parallel()

	got := ExtractContractSummary(servicesAgreement)
	assert.Equal(t, model.ContractSummary{
		Parties: []string{"Acme Corp", "Globex LLC"},
		Term:    "12 months from the Effective Date",
		Renewal: "Automatically renews for successive one-year periods",
		Payment: "Net 30 from invoice date",
		Obligations: []string{
			"Vendor shall deliver monthly reports",
			"Client shall provide access to systems",
		},
		Risks: []string{
			"Check clause on termination",
			"Check clause on breach",
			"Check clause on late fee",
		},
	}, got)
}

func TestExtractContractSummary_NoLabels(t *testing.T) {
	t.Parallel()

	text := "Acme Corp, Globex LLC and Initech\n" +
		"The supplier must ship goods within ten days. Payment is due on receipt.\n" +
		"The buyer shall inspect deliveries. Notes follow."
	got := ExtractContractSummary(text)

	assert.Equal(t, []string{"Acme Corp", "Globex LLC"}, got.Parties)
	assert.Equal(t, model.NotSpecified, got.Term)
	assert.Equal(t, model.NotSpecified, got.Renewal)
	assert.Equal(t, model.NotSpecified, got.Payment)
	assert.Equal(t, []string{
		"The supplier must ship goods within ten days.",
		"The buyer shall inspect deliveries.",
	}, got.Obligations)
	assert.Equal(t, []string{RiskLegalReview}, got.Risks)
}

func TestExtractContractSummary_EmptyText(t *testing.T) {
	t.Parallel()

	got := ExtractContractSummary("")
	assert.Equal(t, []string{}, got.Parties)
	assert.Equal(t, model.NotSpecified, got.Term)
	assert.Equal(t, model.NotSpecified, got.Renewal)
	assert.Equal(t, model.NotSpecified, got.Payment)
	assert.Equal(t, []string{}, got.Obligations)
	assert.Equal(t, []string{RiskLegalReview}, got.Risks)
}

func TestLabelPattern(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		pattern *LabelPattern
		text    string
		want    string
		found   bool
	}{
		{"colon", termPattern, "Term: 2 years", "2 years", true},
		{"uppercase", termPattern, "TERM: 2 years", "2 years", true},
		{"second label", termPattern, "Duration - 24 months", "24 months", true},
		{"period separator", paymentPattern, "Payment. Net 45", "Net 45", true},
		{"longer label first", paymentPattern, "Payment Terms: Net 30", "Net 30", true},
		{"indented", renewalPattern, "   Extension: one year", "one year", true},
		{"later line", termPattern, "Intro\nTerm: 5 years\nEnd", "5 years", true},
		{"mid sentence", termPattern, "This agreement has a Term: 5 years", "", false},
		{"no separator", termPattern, "Term of the lease is long", "", false},
		{"longer word", termPattern, "Termination: for cause", "", false},
		{"first label wins", termPattern, "Term: 1 year\nTerm: 3 years", "1 year", true},
		{"empty first value", termPattern, "Term:\nTerm: 3 years", "", false},
		{"value on next line ignored", termPattern, "Term:\n3 years", "", false},
		{"crlf", renewalPattern, "Header\r\nRenewal: none\r\n", "none", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := tt.pattern.Find(tt.text)
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLabelPattern_ValueDefault(t *testing.T) {
	t.Parallel()

	p := NewLabelPattern("governing_law", "Governing Law")
	assert.Equal(t, "Delaware", p.Value("Governing Law: Delaware", model.NotSpecified))
	assert.Equal(t, model.NotSpecified, p.Value("nothing here", model.NotSpecified))
	assert.Equal(t, "governing_law", p.Field)
}

func TestExtractParties(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want []string
	}{
		{"between label", "Title\nBetween: Alpha Inc. and Beta Ltd.", []string{"Alpha Inc", "Beta Ltd"}},
		{"parties period", "Parties. One, Two, Three", []string{"One", "Two"}},
		{"first line fallback", "  Northwind and Contoso\nbody", []string{"Northwind", "Contoso"}},
		{"blank first line", "\nNorthwind and Contoso\nbody", []string{}},
		{"empty label uses first line", "Alpha and Beta\nParties:\n", []string{"Alpha", "Beta"}},
		{"and inside word", "Parties: Anderson Brandt and Sandoval", []string{"Anderson Brandt", "Sandoval"}},
		{"drops empty pieces", "Parties: , and ., Gamma", []string{"Gamma"}},
		{"single party", "Parties: Solo LLC", []string{"Solo LLC"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ExtractParties(tt.text))
		})
	}
}

func TestExtractObligations_BulletsWinOverSentences(t *testing.T) {
	t.Parallel()

	text := "The vendor shall comply.\n* Maintain insurance\n- Keep records"
	assert.Equal(t, []string{"Maintain insurance", "Keep records"}, ExtractObligations(text))
}

func TestExtractObligations_Capped(t *testing.T) {
	t.Parallel()

	text := "- one\n- two\n- three\n- four\n- five\n- six\n- seven"
	got := ExtractObligations(text)
	require.Len(t, got, MaxObligations)
	assert.Equal(t, "five", got[4])
}

func TestExtractObligations_CaseInsensitiveKeywords(t *testing.T) {
	t.Parallel()

	text := "Supplier SHALL notify the buyer. Buyer MUST pay. Nothing else matters. Mustard is optional."
	assert.Equal(t, []string{"Supplier SHALL notify the buyer.", "Buyer MUST pay."}, ExtractObligations(text))
}

func TestExtractContractSummary_Deterministic(t *testing.T) {
	t.Parallel()

	assert.Equal(t, ExtractContractSummary(servicesAgreement), ExtractContractSummary(servicesAgreement))
}
