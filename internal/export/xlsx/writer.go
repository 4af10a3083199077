package xlsx

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spicevault/traders-billing/internal/export/service"
	"github.com/spicevault/traders-billing/internal/platform/logger"
	"github.com/xuri/excelize/v2"
)

// Writer renders a service.Grid into an .xlsx workbook on disk. Title and
// header styling are cosmetic: a styling failure downgrades to a warning and
// the export still succeeds.
type Writer struct {
	dir string
}

func NewWriter(dir string) *Writer {
	return &Writer{dir: dir}
}

func (w *Writer) Write(filename string, grid service.Grid) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	if grid.SheetName != "" {
		if err := f.SetSheetName(sheet, grid.SheetName); err == nil {
			sheet = grid.SheetName
		}
	}

	// Row 1: title merged across the full column span.
	if err := f.SetCellValue(sheet, "A1", grid.Title); err != nil {
		return fmt.Errorf("failed to write title cell: %w", err)
	}
	lastCol, err := excelize.ColumnNumberToName(len(grid.Header))
	if err != nil {
		return fmt.Errorf("failed to resolve title span: %w", err)
	}
	if err := f.MergeCell(sheet, "A1", lastCol+"1"); err != nil {
		return fmt.Errorf("failed to merge title region: %w", err)
	}

	// Row 2: fixed header.
	for i, h := range grid.Header {
		cell, err := excelize.CoordinatesToCellName(i+1, 2)
		if err != nil {
			return fmt.Errorf("failed to address header cell: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return fmt.Errorf("failed to write header cell: %w", err)
		}
	}

	// One row per bill. Total and Pending are numeric cells.
	for r, row := range grid.Rows {
		values := []interface{}{
			row.Index,
			row.Products,
			row.Customer,
			row.Quantity,
			row.Date,
			row.Total.InexactFloat64(),
			row.Pending.InexactFloat64(),
		}
		for c, v := range values {
			cell, err := excelize.CoordinatesToCellName(c+1, r+3)
			if err != nil {
				return fmt.Errorf("failed to address data cell: %w", err)
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return fmt.Errorf("failed to write data cell: %w", err)
			}
		}
	}

	w.applyCosmetics(f, sheet, grid)

	path := filepath.Join(w.dir, diskName(filename))
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook %s: %w", path, err)
	}
	return nil
}

// applyCosmetics sets column widths and title/header styling. None of this is
// part of the export contract, so every failure is logged and ignored.
func (w *Writer) applyCosmetics(f *excelize.File, sheet string, grid service.Grid) {
	for i, width := range grid.ColWidths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			continue
		}
		if err := f.SetColWidth(sheet, col, col, width); err != nil {
			logger.Warn("Export: column width hint skipped: %v", err)
		}
	}

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err == nil {
		if err := f.SetCellStyle(sheet, "A1", "A1", titleStyle); err != nil {
			logger.Warn("Export: title style skipped: %v", err)
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err == nil {
		lastCol, colErr := excelize.ColumnNumberToName(len(grid.Header))
		if colErr == nil {
			if err := f.SetCellStyle(sheet, "A2", lastCol+"2", headerStyle); err != nil {
				logger.Warn("Export: header style skipped: %v", err)
			}
		}
	}
}

// diskName flattens the path separator the logical filename carries in its
// "(<Month> / <Year>)" prefix so the file lands inside the export directory.
func diskName(filename string) string {
	return strings.ReplaceAll(filename, "/", "-")
}
