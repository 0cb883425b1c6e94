package parser

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// ErrUnreadableWorkbook is returned when an uploaded buffer is not a
// parseable spreadsheet container. It aborts the whole import before any
// row processing.
var ErrUnreadableWorkbook = errors.New("unreadable workbook")

// Sheet is one worksheet: the header row plus raw data rows. Cell values
// carry the formatted text of the cell; blank cells are empty strings.
// Rows may be shorter than the header row (trailing blanks are dropped by
// the decoder) — missing cells are treated as blank during mapping.
type Sheet struct {
	Name    string
	Headers []string
	Rows    [][]string
}

// Workbook holds every non-empty sheet of an uploaded file, in workbook order.
type Workbook struct {
	Sheets []Sheet
}

// TotalRows counts data rows across all sheets.
func (w *Workbook) TotalRows() int {
	total := 0
	for _, s := range w.Sheets {
		total += len(s.Rows)
	}
	return total
}

// ParseWorkbook decodes a binary spreadsheet buffer. Row 0 of each sheet is
// treated as the header row; sheets with no rows at all are dropped.
func ParseWorkbook(data []byte) (*Workbook, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadableWorkbook, err)
	}
	defer f.Close()

	wb := &Workbook{}
	for _, sheetName := range f.GetSheetList() {
		rows, err := f.GetRows(sheetName)
		if err != nil {
			return nil, fmt.Errorf("read sheet %q: %w", sheetName, err)
		}
		if len(rows) == 0 {
			continue
		}
		headers := make([]string, len(rows[0]))
		copy(headers, rows[0])
		wb.Sheets = append(wb.Sheets, Sheet{
			Name:    sheetName,
			Headers: headers,
			Rows:    rows[1:],
		})
	}
	return wb, nil
}
