// Package export writes drafted documents to JSON, CSV and XLSX files.
package export

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/docdraft/internal/model"
)

var (
	varianceColumns = []string{"account", "actual", "budget", "variance_pct"}
	qnaColumns      = []string{"question", "answer", "citations"}
	registerColumns = []string{"parties", "term", "renewal", "payment", "obligations", "risks"}
)

// WriteJSON writes v as indented JSON, creating parent directories.
func WriteJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return eris.Wrap(err, "export: marshal json")
	}
	if err := ensureDir(path); err != nil {
		return err
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return eris.Wrapf(err, "export: write %s", path)
	}
	return nil
}

// WriteVarianceCSV writes the report's variance table.
func WriteVarianceCSV(path string, report model.FinanceReport) error {
	rows := make([][]string, 0, len(report.VarianceTable))
	for _, r := range report.VarianceTable {
		rows = append(rows, []string{r.Account, formatFloat(r.Actual), formatFloat(r.Budget), formatFloat(r.VariancePct)})
	}
	return writeCSV(path, varianceColumns, rows)
}

// WriteQnALog writes one row per question. questions and answers are
// paired by index.
func WriteQnALog(path string, questions []string, answers []model.PolicyAnswer) error {
	if len(questions) != len(answers) {
		return eris.Errorf("export: %d questions but %d answers", len(questions), len(answers))
	}
	rows := make([][]string, 0, len(answers))
	for i, a := range answers {
		rows = append(rows, []string{questions[i], a.Answer, strings.Join(a.Citations, " | ")})
	}
	return writeCSV(path, qnaColumns, rows)
}

// WriteRegisterCSV writes one row per contract summary.
func WriteRegisterCSV(path string, summaries []model.ContractSummary) error {
	rows := make([][]string, 0, len(summaries))
	for _, s := range summaries {
		rows = append(rows, registerRow(s))
	}
	return writeCSV(path, registerColumns, rows)
}

func registerRow(s model.ContractSummary) []string {
	return []string{
		strings.Join(s.Parties, " & "),
		s.Term,
		s.Renewal,
		s.Payment,
		strings.Join(s.Obligations, " | "),
		strings.Join(s.Risks, " | "),
	}
}

func writeCSV(path string, header []string, rows [][]string) error {
	if err := ensureDir(path); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrap(err, "export: create file")
	}
	defer f.Close() //nolint:errcheck

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return eris.Wrap(err, "export: write header")
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return eris.Wrap(err, "export: write row")
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return eris.Wrap(err, "export: flush csv")
	}
	return nil
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return eris.Wrapf(err, "export: create dir %s", dir)
	}
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
