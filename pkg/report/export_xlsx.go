package report

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/goliatone/go-firform/pkg/fir"
)

// WriteXLSX writes one sheet with a header row and one row per record. An
// empty record list still produces the header row.
func WriteXLSX(w io.Writer, records []fir.Record, opts Options) error {
	opts = opts.resolved()

	f := excelize.NewFile()
	defer f.Close()

	sheet := opts.SheetName
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("report: xlsx sheet: %w", err)
	}

	header := toCells(fir.Headers(false))
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("report: xlsx header: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("report: xlsx style: %w", err)
	}
	if err := f.SetRowStyle(sheet, 1, 1, bold); err != nil {
		return fmt.Errorf("report: xlsx style: %w", err)
	}

	for i, record := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("report: xlsx cell: %w", err)
		}
		row := toCells(record.Row(opts.Location))
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("report: xlsx row %d: %w", i+1, err)
		}
	}

	last, err := excelize.ColumnNumberToName(len(fir.Columns))
	if err != nil {
		return fmt.Errorf("report: xlsx columns: %w", err)
	}
	if err := f.SetColWidth(sheet, "A", last, 20); err != nil {
		return fmt.Errorf("report: xlsx columns: %w", err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("report: xlsx write: %w", err)
	}
	return nil
}

func toCells(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
