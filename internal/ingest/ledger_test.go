package ingest

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/docdraft/internal/analysis"
	"github.com/sells-group/docdraft/internal/model"
)

func createTestXLSX(t *testing.T, sheets map[string][][]string) string {
	t.Helper()
	f := xlsx.NewFile()
	for name, rows := range sheets {
		sheet, err := f.AddSheet(name)
		require.NoError(t, err)
		for _, rowData := range rows {
			row := sheet.AddRow()
			for _, cellData := range rowData {
				cell := row.AddCell()
				cell.SetString(cellData)
			}
		}
	}
	path := filepath.Join(t.TempDir(), "ledger.xlsx")
	require.NoError(t, f.Save(path))
	return path
}

func TestParseLedgerCSV(t *testing.T) {
	in := "account,actual,budget\n Revenue ,120000,100000\nMarketing,15000,12000\nCOGS,40000,45000\n"
	rows, err := ParseLedgerCSV(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, []model.LedgerRow{
		{Account: "Revenue", Actual: 120000, Budget: 100000},
		{Account: "Marketing", Actual: 15000, Budget: 12000},
		{Account: "COGS", Actual: 40000, Budget: 45000},
	}, rows)
}

func TestParseLedgerCSV_HeaderOrderAndCase(t *testing.T) {
	in := "\ufeffBudget,Account,Actual\n100,Rent,110\n"
	rows, err := ParseLedgerCSV(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, []model.LedgerRow{{Account: "Rent", Actual: 110, Budget: 100}}, rows)
}

func TestParseLedgerCSV_MalformedAmounts(t *testing.T) {
	in := "account,actual,budget\nTravel,abc,\nOffice,\"$1,250.50\",1000\nShort\n\n"
	rows, err := ParseLedgerCSV(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, model.LedgerRow{Account: "Travel"}, rows[0])
	assert.InDelta(t, 1250.50, rows[1].Actual, 0.001)
	assert.Equal(t, model.LedgerRow{Account: "Short"}, rows[2])
}

func TestParseLedgerCSV_NonFiniteAmounts(t *testing.T) {
	in := "account,actual,budget\nRent,NaN,100\nTravel,Inf,-Inf\nOffice,1e999,50\n"
	rows, err := ParseLedgerCSV(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, []model.LedgerRow{
		{Account: "Rent", Actual: 0, Budget: 100},
		{Account: "Travel", Actual: 0, Budget: 0},
		{Account: "Office", Actual: 0, Budget: 50},
	}, rows)

	rep := analysis.AnalyzeVariances("2025-08", rows, analysis.Options{})
	_, err = json.Marshal(rep)
	require.NoError(t, err)
	assert.Equal(t, -100.0, rep.VarianceTable[0].VariancePct)
}

func TestParseLedgerCSV_MissingAccountColumn(t *testing.T) {
	_, err := ParseLedgerCSV(strings.NewReader("name,actual,budget\nx,1,2\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "account")
}

func TestParseLedgerCSV_Empty(t *testing.T) {
	_, err := ParseLedgerCSV(strings.NewReader(""))
	assert.Error(t, err)
}

func TestReadLedger_CSVFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gl.csv")
	require.NoError(t, os.WriteFile(path, []byte("account,actual,budget\nRevenue,10,20\n"), 0644))

	rows, err := ReadLedger(path)
	require.NoError(t, err)
	assert.Equal(t, []model.LedgerRow{{Account: "Revenue", Actual: 10, Budget: 20}}, rows)
}

func TestReadLedger_MissingFile(t *testing.T) {
	_, err := ReadLedger(filepath.Join(t.TempDir(), "nope.csv"))
	assert.Error(t, err)
}

func TestReadLedger_XLSX(t *testing.T) {
	path := createTestXLSX(t, map[string][][]string{
		"GL": {
			{"account", "actual", "budget"},
			{"Revenue", "120000", "100000"},
			{"Marketing", "15000", "12000"},
		},
	})

	rows, err := ReadLedger(path)
	require.NoError(t, err)
	assert.Equal(t, []model.LedgerRow{
		{Account: "Revenue", Actual: 120000, Budget: 100000},
		{Account: "Marketing", Actual: 15000, Budget: 12000},
	}, rows)
}

func TestReadLedgerXLSX_SheetNotFound(t *testing.T) {
	path := createTestXLSX(t, map[string][][]string{"GL": {{"account"}}})
	_, err := ReadLedgerXLSX(path, "Missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}
