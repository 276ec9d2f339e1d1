package exporter

import (
	"fmt"
	"log/slog"

	"github.com/xuri/excelize/v2"

	"eventcli/internal/analytics"
	"eventcli/internal/errors"
)

// WriteWorkbook saves every report table as a sheet of one XLSX file.
// Undefined values are written as "n/a".
func WriteWorkbook(path string, tables []ReportTable, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}

	f := excelize.NewFile()
	defer f.Close()

	header, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}
	numeric, err := f.NewStyle(&excelize.Style{NumFmt: 2}) // 0.00
	if err != nil {
		return fmt.Errorf("create number style: %w", err)
	}

	for i, t := range tables {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", t.Sheet); err != nil {
				return fmt.Errorf("rename sheet: %w", err)
			}
		} else if _, err := f.NewSheet(t.Sheet); err != nil {
			return fmt.Errorf("create sheet %s: %w", t.Sheet, err)
		}

		if err := writeSheet(f, t, header, numeric); err != nil {
			return fmt.Errorf("write sheet %s: %w", t.Sheet, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return errors.NewStorageError("failed to save workbook", err).WithContext("path", path)
	}
	logger.Info("Wrote workbook", slog.String("path", path), slog.Int("sheets", len(tables)))
	return nil
}

func writeSheet(f *excelize.File, t ReportTable, headerStyle, numericStyle int) error {
	for col, h := range t.Header {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(t.Sheet, cell, h); err != nil {
			return err
		}
		if err := f.SetCellStyle(t.Sheet, cell, cell, headerStyle); err != nil {
			return err
		}
	}

	for r, row := range t.Rows {
		for col, v := range row {
			cell, err := excelize.CoordinatesToCellName(col+1, r+2)
			if err != nil {
				return err
			}
			if x, ok := v.(float64); ok {
				if !analytics.Defined(x) {
					v = NotAvailable
				} else if err := f.SetCellStyle(t.Sheet, cell, cell, numericStyle); err != nil {
					return err
				}
			}
			if err := f.SetCellValue(t.Sheet, cell, v); err != nil {
				return err
			}
		}
	}

	if len(t.Header) > 0 {
		last, err := excelize.ColumnNumberToName(len(t.Header))
		if err != nil {
			return err
		}
		if err := f.SetColWidth(t.Sheet, "A", "A", 28); err != nil {
			return err
		}
		if len(t.Header) > 1 {
			if err := f.SetColWidth(t.Sheet, "B", last, 16); err != nil {
				return err
			}
		}
	}
	return nil
}
