package schema

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/docdraft/internal/analysis"
	"github.com/sells-group/docdraft/internal/model"
)

func requireViolation(t *testing.T, err error) *ViolationError {
	t.Helper()
	require.Error(t, err)
	var ve *ViolationError
	require.True(t, errors.As(err, &ve), "expected *ViolationError, got %T: %v", err, err)
	return ve
}

func TestRuleBasedOutputsConform(t *testing.T) {
	t.Parallel()

	rep := analysis.AnalyzeVariances("2025-08", []model.LedgerRow{
		{Account: "Marketing", Actual: 1200, Budget: 1000},
		{Account: "COGS", Actual: 800, Budget: 1000},
	}, analysis.DefaultOptions())
	assert.NoError(t, Check(model.KindFinance, rep))

	ans := analysis.RetrieveCitations("Employees get 15 vacation days.", "vacation days", 3)
	assert.NoError(t, Check(model.KindPolicy, ans))

	miss := analysis.RetrieveCitations("Employees get 15 vacation days.", "gym", 3)
	assert.NoError(t, Check(model.KindPolicy, miss))

	sum := analysis.ExtractContractSummary("")
	assert.NoError(t, Check(model.KindContract, sum))
}

func TestValidate_MissingRequiredKey(t *testing.T) {
	t.Parallel()

	raw := []byte(`{"period":"2025-08","highlights":[],"variance_table":[]}`)
	ve := requireViolation(t, Validate(model.KindFinance, raw))
	assert.Equal(t, model.KindFinance, ve.Kind)
}

func TestValidate_EmptyPrimaryField(t *testing.T) {
	t.Parallel()

	raw := []byte(`{"period":"  ","highlights":[],"variance_table":[],"risks":[]}`)
	ve := requireViolation(t, Validate(model.KindFinance, raw))
	assert.Equal(t, "period", ve.Field)
	assert.Contains(t, ve.Error(), "period")
}

func TestValidate_WrongType(t *testing.T) {
	t.Parallel()

	raw := []byte(`{"answer":"yes","citations":"line one"}`)
	requireViolation(t, Validate(model.KindPolicy, raw))
}

func TestValidate_VarianceRowMissingField(t *testing.T) {
	t.Parallel()

	raw := []byte(`{"period":"P","highlights":[],"risks":[],
		"variance_table":[{"account":"Rent","actual":1,"budget":1}]}`)
	requireViolation(t, Validate(model.KindFinance, raw))
}

func TestValidate_ArrayBounds(t *testing.T) {
	t.Parallel()

	raw := []byte(`{"parties":["A","B","C"],"term":"1y","renewal":"none","payment":"net 30",
		"obligations":[],"risks":[]}`)
	requireViolation(t, Validate(model.KindContract, raw))
}

func TestValidate_NotJSONObject(t *testing.T) {
	t.Parallel()

	requireViolation(t, Validate(model.KindPolicy, []byte(`not json`)))
	requireViolation(t, Validate(model.KindPolicy, []byte(`["answer"]`)))
}

func TestValidate_UnknownKind(t *testing.T) {
	t.Parallel()

	err := Validate(model.DocumentKind("memo"), []byte(`{}`))
	require.Error(t, err)
	var ve *ViolationError
	assert.False(t, errors.As(err, &ve))
}

func TestDecodeFinanceReport(t *testing.T) {
	t.Parallel()

	raw := []byte(`{"period":"2025-08","highlights":["Rent over budget"],
		"variance_table":[{"account":"Rent","actual":110,"budget":100,"variance_pct":10}],
		"risks":["Monitor"]}`)
	rep, err := DecodeFinanceReport(raw)
	require.NoError(t, err)
	assert.Equal(t, "2025-08", rep.Period)
	require.Len(t, rep.VarianceTable, 1)
	assert.Equal(t, 10.0, rep.VarianceTable[0].VariancePct)
}

func TestDecodePolicyAnswer(t *testing.T) {
	t.Parallel()

	ans, err := DecodePolicyAnswer([]byte(`{"answer":"Not in policy.","citations":[]}`))
	require.NoError(t, err)
	assert.Equal(t, model.NotInPolicy, ans.Answer)

	_, err = DecodePolicyAnswer([]byte(`{"answer":"","citations":[]}`))
	requireViolation(t, err)
}

func TestDecodeContractSummary(t *testing.T) {
	t.Parallel()

	sum, err := DecodeContractSummary([]byte(`{"parties":["Acme"],"term":"12 months","renewal":"Not specified",
		"payment":"Net 30","obligations":["Deliver"],"risks":["Check clause on breach"]}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"Acme"}, sum.Parties)
	assert.Equal(t, "12 months", sum.Term)

	_, err = DecodeContractSummary([]byte(`{"parties":[],"term":"12 months"}`))
	requireViolation(t, err)
}

func TestContractJSON(t *testing.T) {
	t.Parallel()

	c, err := For(model.KindFinance)
	require.NoError(t, err)
	assert.Equal(t, "FinanceReport", c.Name)
	doc := c.JSON()
	assert.Contains(t, doc, `"variance_pct"`)
	assert.Contains(t, doc, `"required"`)
}
