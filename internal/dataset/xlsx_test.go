package dataset

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

func writeWorkbook(t *testing.T) string {
	t.Helper()
	f := excelize.NewFile()
	rows := [][]any{
		{"amount", "label"},
		{1.5, "a"},
		{2.5, "b"},
		{3.5, "a"},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("cell name: %v", err)
		}
		if err := f.SetSheetRow("Sheet1", cell, &row); err != nil {
			t.Fatalf("set row: %v", err)
		}
	}
	path := filepath.Join(t.TempDir(), "book.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save workbook: %v", err)
	}
	return path
}

func TestLoadXLSX(t *testing.T) {
	path := writeWorkbook(t)
	ds, err := Load(path, DefaultOptions())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(ds.Columns) != 2 || ds.Rows != 3 {
		t.Fatalf("got %d columns, %d rows", len(ds.Columns), ds.Rows)
	}
	if ds.Columns[0].Kind != KindNumeric {
		t.Errorf("amount kind = %s, want numeric", ds.Columns[0].Kind)
	}
	if ds.Columns[1].Kind != KindCategorical {
		t.Errorf("label kind = %s, want categorical", ds.Columns[1].Kind)
	}
}

func TestLoadXLSXUnknownSheet(t *testing.T) {
	path := writeWorkbook(t)
	opt := DefaultOptions()
	opt.SheetName = "Nope"
	_, err := LoadXLSX(path, opt)
	var ie *InputError
	if !errors.As(err, &ie) {
		t.Fatalf("err = %v, want *InputError", err)
	}
}
