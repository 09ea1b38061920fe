package export

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/iho/bankrec/internal/domain"
)

// ErrEmptyWorkbook is returned when an import workbook has no sheets.
var ErrEmptyWorkbook = errors.New("workbook has no sheets")

// ReadBankWorkbook reads (code, name) rows from the first sheet of an xlsx
// workbook. The first row is a header and is skipped. Cells are trimmed;
// missing cells come back empty so the importer can count them as errors.
func ReadBankWorkbook(r io.Reader) ([]domain.BankImportRow, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrEmptyWorkbook
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	if len(rows) <= 1 {
		return []domain.BankImportRow{}, nil
	}

	out := make([]domain.BankImportRow, 0, len(rows)-1)
	for _, row := range rows[1:] {
		out = append(out, domain.BankImportRow{
			Code: cell(row, 0),
			Name: cell(row, 1),
		})
	}
	return out, nil
}

func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
