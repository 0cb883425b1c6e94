package parser

import (
	"errors"
	"testing"

	"github.com/xuri/excelize/v2"
)

func buildWorkbook(t *testing.T, sheetName string, rows [][]any) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		t.Fatalf("rename sheet: %v", err)
	}
	for i, row := range rows {
		for j, cell := range row {
			axis, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				t.Fatalf("cell name: %v", err)
			}
			if err := f.SetCellValue(sheetName, axis, cell); err != nil {
				t.Fatalf("set cell: %v", err)
			}
		}
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	return buf.Bytes()
}

func TestParseWorkbook_HeadersAndRows(t *testing.T) {
	t.Parallel()

	data := buildWorkbook(t, "2025", [][]any{
		{"Item", "Capex", "Opex"},
		{"Router", 1000, 500},
		{"Switch", 250},
	})

	wb, err := ParseWorkbook(data)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(wb.Sheets) != 1 {
		t.Fatalf("want 1 sheet, got %d", len(wb.Sheets))
	}
	sheet := wb.Sheets[0]
	if sheet.Name != "2025" {
		t.Fatalf("sheet name want=2025 got=%s", sheet.Name)
	}
	if len(sheet.Headers) != 3 || sheet.Headers[0] != "Item" {
		t.Fatalf("unexpected headers: %v", sheet.Headers)
	}
	if len(sheet.Rows) != 2 {
		t.Fatalf("want 2 data rows, got %d", len(sheet.Rows))
	}
	if sheet.Rows[0][1] != "1000" {
		t.Fatalf("cell B2 want=1000 got=%q", sheet.Rows[0][1])
	}
	// second row is shorter than the header row
	if len(sheet.Rows[1]) > 3 {
		t.Fatalf("unexpected row width: %v", sheet.Rows[1])
	}
	if wb.TotalRows() != 2 {
		t.Fatalf("TotalRows want=2 got=%d", wb.TotalRows())
	}
}

func TestParseWorkbook_DropsEmptySheets(t *testing.T) {
	t.Parallel()

	f := excelize.NewFile()
	defer f.Close()
	if _, err := f.NewSheet("Empty"); err != nil {
		t.Fatalf("new sheet: %v", err)
	}
	if err := f.SetCellValue("Sheet1", "A1", "Item"); err != nil {
		t.Fatalf("set cell: %v", err)
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("write workbook: %v", err)
	}

	wb, err := ParseWorkbook(buf.Bytes())
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(wb.Sheets) != 1 || wb.Sheets[0].Name != "Sheet1" {
		t.Fatalf("empty sheet should be dropped: %+v", wb.Sheets)
	}
}

func TestParseWorkbook_UnreadableBuffer(t *testing.T) {
	t.Parallel()

	_, err := ParseWorkbook([]byte("this is not a spreadsheet"))
	if !errors.Is(err, ErrUnreadableWorkbook) {
		t.Fatalf("want ErrUnreadableWorkbook, got %v", err)
	}
}
