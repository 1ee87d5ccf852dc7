package export

import (
	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/docdraft/internal/model"
)

const registerSheet = "Register"

// WriteRegisterXLSX writes the contract register as a single-sheet workbook.
func WriteRegisterXLSX(path string, summaries []model.ContractSummary) error {
	f := xlsx.NewFile()
	sheet, err := f.AddSheet(registerSheet)
	if err != nil {
		return eris.Wrap(err, "export: add sheet")
	}

	addRow(sheet, registerColumns)
	for _, s := range summaries {
		addRow(sheet, registerRow(s))
	}

	if err := ensureDir(path); err != nil {
		return err
	}
	if err := f.Save(path); err != nil {
		return eris.Wrapf(err, "export: save %s", path)
	}
	return nil
}

func addRow(sheet *xlsx.Sheet, values []string) {
	row := sheet.AddRow()
	for _, v := range values {
		row.AddCell().SetString(v)
	}
}
