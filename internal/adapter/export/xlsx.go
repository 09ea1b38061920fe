package export

import (
	"fmt"
	"io"
	"strconv"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/iho/bankrec/internal/domain"
)

// ContentTypeXLSX is the media type of workbooks written here.
const ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// WorkbookWriter writes statement listings as xlsx workbooks.
type WorkbookWriter struct{}

// NewWorkbookWriter creates a new workbook writer.
func NewWorkbookWriter() *WorkbookWriter {
	return &WorkbookWriter{}
}

// WriteStatements writes one row per statement under the export headers.
func (WorkbookWriter) WriteStatements(w io.Writer, sheet string, statements []*domain.Statement, withUser bool) error {
	rows := make([][]any, 0, len(statements))
	for _, row := range TableRows(statements) {
		rows = append(rows, row.Values(withUser))
	}
	return WriteWorkbook(w, sheet, Headers(withUser), rows)
}

// amountNumFmt is the built-in "#,##0.00" number format.
const amountNumFmt = 4

// WriteWorkbook writes a single-sheet workbook with a header row. Columns are
// sized to their longest cell plus two characters. Amount cells stay numeric
// and display with two decimals.
func WriteWorkbook(w io.Writer, sheet string, headers []string, rows [][]any) error {
	f := excelize.NewFile()
	defer f.Close()

	if sheet == "" {
		sheet = "Sheet1"
	}
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return fmt.Errorf("name sheet: %w", err)
	}

	widths := make([]int, len(headers))
	header := make([]any, len(headers))
	for i, h := range headers {
		header[i] = h
		widths[i] = len(h)
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	amountStyle, err := f.NewStyle(&excelize.Style{NumFmt: amountNumFmt})
	if err != nil {
		return fmt.Errorf("create amount style: %w", err)
	}

	for i, row := range rows {
		cells := make([]any, len(row))
		for j, v := range row {
			cells[j] = cellValue(v)
			if j < len(widths) {
				widths[j] = max(widths[j], len(displayValue(v)))
			}
		}

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}

		for j, v := range row {
			if _, ok := v.(decimal.Decimal); !ok {
				continue
			}
			amountCell, err := excelize.CoordinatesToCellName(j+1, i+2)
			if err != nil {
				return err
			}
			if err := f.SetCellStyle(sheet, amountCell, amountCell, amountStyle); err != nil {
				return fmt.Errorf("style %s: %w", amountCell, err)
			}
		}
	}

	for i, width := range widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheet, col, col, float64(width+2)); err != nil {
			return fmt.Errorf("size column %s: %w", col, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// cellValue keeps amounts numeric in the sheet.
func cellValue(v any) any {
	switch val := v.(type) {
	case decimal.Decimal:
		return val.InexactFloat64()
	default:
		return v
	}
}

func displayValue(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case decimal.Decimal:
		return FormatAmount(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case int:
		return strconv.Itoa(val)
	case nil:
		return ""
	default:
		return fmt.Sprint(val)
	}
}
