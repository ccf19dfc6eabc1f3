// Package report writes the pipeline's output tables to a formatted
// spreadsheet. Formatting only: it consumes finished tables and holds
// no pipeline logic.
package report

import (
	"fmt"
	"log/slog"

	"github.com/xuri/excelize/v2"

	"acs-redbook/internal/domain"
)

const (
	headerFill  = "CCCCCC"
	columnWidth = 15
	// The provenance note sits at row 4, two columns right of the data.
	noteRow       = 4
	noteColOffset = 2
)

// Writer renders output tables into a single xlsx workbook, one sheet
// per table.
type Writer struct {
	logger *slog.Logger
}

// NewWriter creates a Writer.
func NewWriter(logger *slog.Logger) *Writer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Writer{logger: logger.With("component", "report")}
}

// Write saves every table to path. Any failure here is fatal to the
// run: nothing was persisted.
func (w *Writer) Write(tables []*domain.OutputTable, path string) error {
	if len(tables) == 0 {
		return fmt.Errorf("no tables to write")
	}

	f := excelize.NewFile()
	defer f.Close() //nolint:errcheck

	styles, err := newStyles(f)
	if err != nil {
		return err
	}

	for i, tbl := range tables {
		if i == 0 {
			// Reuse the workbook's default sheet for the first table.
			if err := f.SetSheetName(f.GetSheetName(0), tbl.SheetName); err != nil {
				return fmt.Errorf("rename sheet for %s: %w", tbl.ID, err)
			}
		} else if _, err := f.NewSheet(tbl.SheetName); err != nil {
			return fmt.Errorf("create sheet for %s: %w", tbl.ID, err)
		}
		if err := w.writeSheet(f, tbl, styles); err != nil {
			return fmt.Errorf("write sheet %q: %w", tbl.SheetName, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook %s: %w", path, err)
	}
	w.logger.Info("workbook written", "path", path, "sheets", len(tables))
	return nil
}

type styleSet struct {
	header  int
	note    int
	percent int
	number  int
}

func newStyles(f *excelize.File) (styleSet, error) {
	var s styleSet
	var err error

	s.header, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{headerFill}, Pattern: 1},
	})
	if err != nil {
		return s, fmt.Errorf("header style: %w", err)
	}

	s.note, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Italic: true, Size: 9},
	})
	if err != nil {
		return s, fmt.Errorf("note style: %w", err)
	}

	percentFmt := `0.0"%"`
	s.percent, err = f.NewStyle(&excelize.Style{CustomNumFmt: &percentFmt})
	if err != nil {
		return s, fmt.Errorf("percent style: %w", err)
	}

	numberFmt := "0.0"
	s.number, err = f.NewStyle(&excelize.Style{CustomNumFmt: &numberFmt})
	if err != nil {
		return s, fmt.Errorf("number style: %w", err)
	}

	return s, nil
}

func (w *Writer) writeSheet(f *excelize.File, tbl *domain.OutputTable, styles styleSet) error {
	sheet := tbl.SheetName

	for c, col := range tbl.Columns {
		cell, err := excelize.CoordinatesToCellName(c+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, col.Header); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, cell, cell, styles.header); err != nil {
			return err
		}
	}

	for rIdx, rec := range tbl.Records {
		for c, col := range tbl.Columns {
			cell, err := excelize.CoordinatesToCellName(c+1, rIdx+2)
			if err != nil {
				return err
			}
			if err := w.writeCell(f, sheet, cell, col, rec, styles); err != nil {
				return err
			}
		}
	}

	// Provenance note beside the data.
	if tbl.SourceNote != "" {
		cell, err := excelize.CoordinatesToCellName(len(tbl.Columns)+noteColOffset, noteRow)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, tbl.SourceNote); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, cell, cell, styles.note); err != nil {
			return err
		}
	}

	lastCol, err := excelize.ColumnNumberToName(len(tbl.Columns))
	if err != nil {
		return err
	}
	return f.SetColWidth(sheet, "A", lastCol, columnWidth)
}

// writeCell renders one cell; absent values leave the cell empty.
func (w *Writer) writeCell(f *excelize.File, sheet, cell string, col domain.Column, rec *domain.Record, styles styleSet) error {
	switch col.Kind {
	case domain.ColumnGeography:
		return f.SetCellValue(sheet, cell, rec.Geography)
	case domain.ColumnRank:
		if rank, ok := rec.Ranks[col.Field]; ok {
			return f.SetCellValue(sheet, cell, rank)
		}
		return nil
	case domain.ColumnPercent, domain.ColumnNumber:
		v, ok := rec.Value(col.Field)
		if !ok {
			return nil
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return err
		}
		style := styles.number
		if col.Kind == domain.ColumnPercent {
			style = styles.percent
		}
		return f.SetCellStyle(sheet, cell, cell, style)
	}
	return nil
}
