package dataset

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/KaramelBytes/csvscope/internal/utils"
)

// LoadXLSX reads one sheet of an .xlsx workbook into a Dataset. If no sheet
// is named, SheetIndex selects by 1-based position, defaulting to the first
// sheet.
func LoadXLSX(path string, opt Options) (*Dataset, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, &InputError{Path: path, Reason: "cannot open workbook", Err: err}
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, &InputError{Path: path, Reason: "workbook has no sheets"}
	}
	sheet, err := resolveSheet(sheets, opt)
	if err != nil {
		return nil, &InputError{Path: path, Reason: err.Error()}
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, &InputError{Path: path, Reason: fmt.Sprintf("cannot read sheet %q", sheet), Err: err}
	}
	if len(rows) == 0 {
		return nil, &InputError{Path: path, Reason: fmt.Sprintf("sheet %q is empty", sheet)}
	}
	header := rows[0]
	records := rows[1:]
	if len(records) == 0 {
		return nil, &InputError{Path: path, Reason: "no data rows"}
	}
	if opt.MaxRows > 0 && len(records) > opt.MaxRows {
		records = records[:opt.MaxRows]
	}
	return build(utils.Stem(path), header, records, opt)
}

func resolveSheet(sheets []string, opt Options) (string, error) {
	if opt.SheetName != "" {
		for _, s := range sheets {
			if s == opt.SheetName {
				return s, nil
			}
		}
		return "", fmt.Errorf("sheet %q not found (available: %v)", opt.SheetName, sheets)
	}
	idx := opt.SheetIndex
	if idx <= 0 {
		idx = 1
	}
	if idx > len(sheets) {
		return "", fmt.Errorf("sheet index %d out of range (workbook has %d sheets)", idx, len(sheets))
	}
	return sheets[idx-1], nil
}
