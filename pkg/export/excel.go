package export

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// Sheet is a single worksheet: a header row followed by data rows. Row cells
// may be any type excelize can serialize (string, int64, float64, time.Time).
type Sheet struct {
	Name    string
	Headers []string
	Rows    [][]interface{}
}

// BuildWorkbook renders the sheets into an in-memory .xlsx workbook. The
// header row is bold with a light fill, and every column is widened to fit
// its header.
func BuildWorkbook(sheets ...Sheet) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"DDEBF7"}},
	})
	if err != nil {
		return nil, err
	}

	for i, sheet := range sheets {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sheet.Name); err != nil {
				return nil, err
			}
		} else {
			if _, err := f.NewSheet(sheet.Name); err != nil {
				return nil, err
			}
		}

		headers := make([]interface{}, len(sheet.Headers))
		for j, h := range sheet.Headers {
			headers[j] = h
		}
		if err := f.SetSheetRow(sheet.Name, "A1", &headers); err != nil {
			return nil, err
		}

		lastCol, err := excelize.ColumnNumberToName(len(sheet.Headers))
		if err != nil {
			return nil, err
		}
		if err := f.SetCellStyle(sheet.Name, "A1", lastCol+"1", headerStyle); err != nil {
			return nil, err
		}

		for j, row := range sheet.Rows {
			cell := fmt.Sprintf("A%d", j+2)
			if err := f.SetSheetRow(sheet.Name, cell, &row); err != nil {
				return nil, err
			}
		}

		for j, h := range sheet.Headers {
			col, err := excelize.ColumnNumberToName(j + 1)
			if err != nil {
				return nil, err
			}
			width := float64(len(h)) + 6
			if width < 12 {
				width = 12
			}
			if err := f.SetColWidth(sheet.Name, col, col, width); err != nil {
				return nil, err
			}
		}
	}

	return f.WriteToBuffer()
}
