// Package ingest reads general-ledger tables and plain-text documents from
// disk.
package ingest

import (
	"encoding/csv"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
	"go.uber.org/zap"

	"github.com/sells-group/docdraft/internal/model"
)

// Ledger column names, matched case-insensitively against the header row.
const (
	ColAccount = "account"
	ColActual  = "actual"
	ColBudget  = "budget"
)

// ReadLedger reads ledger rows from a CSV or XLSX file, chosen by extension.
func ReadLedger(path string) ([]model.LedgerRow, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return ReadLedgerXLSX(path, "")
	default:
		f, err := os.Open(path)
		if err != nil {
			return nil, eris.Wrap(err, "ingest: open ledger")
		}
		defer f.Close() //nolint:errcheck
		return ParseLedgerCSV(f)
	}
}

// ParseLedgerCSV parses a header-led CSV ledger.
func ParseLedgerCSV(r io.Reader) ([]model.LedgerRow, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // allow ragged rows
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, eris.Wrap(err, "ingest: read csv")
	}
	return ledgerFromRecords(records)
}

// ReadLedgerXLSX reads a ledger from the named sheet, or the first sheet
// when sheetName is empty.
func ReadLedgerXLSX(path, sheetName string) ([]model.LedgerRow, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "ingest: open xlsx")
	}

	sheet, err := getSheet(f, sheetName)
	if err != nil {
		return nil, err
	}

	records := make([][]string, 0, len(sheet.Rows))
	for _, row := range sheet.Rows {
		if row == nil {
			continue
		}
		records = append(records, rowToStrings(row))
	}
	return ledgerFromRecords(records)
}

func getSheet(f *xlsx.File, name string) (*xlsx.Sheet, error) {
	if name != "" {
		sheet, ok := f.Sheet[name]
		if !ok {
			return nil, eris.Errorf("ingest: sheet %q not found", name)
		}
		return sheet, nil
	}
	if len(f.Sheets) == 0 {
		return nil, eris.New("ingest: workbook has no sheets")
	}
	return f.Sheets[0], nil
}

func rowToStrings(row *xlsx.Row) []string {
	cells := make([]string, len(row.Cells))
	for j, cell := range row.Cells {
		cells[j] = cell.String()
	}
	return cells
}

// ledgerFromRecords maps rows by header name. Blank lines are skipped.
// Missing or unparseable amounts become 0 and are logged.
func ledgerFromRecords(records [][]string) ([]model.LedgerRow, error) {
	if len(records) == 0 {
		return nil, eris.New("ingest: ledger is empty")
	}

	cols := make(map[string]int, len(records[0]))
	for i, h := range records[0] {
		cols[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))] = i
	}
	if _, ok := cols[ColAccount]; !ok {
		return nil, eris.Errorf("ingest: ledger header has no %q column", ColAccount)
	}

	rows := make([]model.LedgerRow, 0, len(records)-1)
	for n, rec := range records[1:] {
		if blankRecord(rec) {
			continue
		}
		line := n + 2
		rows = append(rows, model.LedgerRow{
			Account: strings.TrimSpace(field(rec, cols, ColAccount)),
			Actual:  parseAmount(field(rec, cols, ColActual), ColActual, line),
			Budget:  parseAmount(field(rec, cols, ColBudget), ColBudget, line),
		})
	}
	return rows, nil
}

func field(rec []string, cols map[string]int, name string) string {
	i, ok := cols[name]
	if !ok || i >= len(rec) {
		return ""
	}
	return rec[i]
}

func blankRecord(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// parseAmount accepts plain finite numbers with optional thousands
// separators and a leading currency sign.
func parseAmount(raw, column string, line int) float64 {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0
	}
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimPrefix(s, "$")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		zap.L().Warn("ingest: non-numeric amount treated as 0",
			zap.String("column", column),
			zap.Int("line", line),
			zap.String("value", raw),
		)
		return 0
	}
	return v
}
