package workbook

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/xuri/excelize/v2"
)

// DateTimeFormat is the number format applied to date cells.
const DateTimeFormat = "yyyy-mm-dd hh:mm:ss"

const columnWidth = 18

// ErrNoSheets is returned when Write is given nothing to write.
var ErrNoSheets = errors.New("no sheets to write")

// Sheet is one named table of an output workbook. A nil cell is written empty.
type Sheet struct {
	Name   string
	Header []string
	Rows   [][]any
}

// Write creates the workbook at path with the given sheets in order. The first
// sheet is active. An existing file is replaced.
func Write(path string, sheets []Sheet) error {
	if len(sheets) == 0 {
		return ErrNoSheets
	}

	f := excelize.NewFile()
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			slog.Warn("Failed to close workbook", "path", path, "error", closeErr)
		}
	}()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Border: []excelize.Border{
			{Type: "bottom", Color: "#000000", Style: 1},
		},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	format := DateTimeFormat
	dateStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: &format})
	if err != nil {
		return fmt.Errorf("failed to create date style: %w", err)
	}

	defaultSheet := f.GetSheetName(0)
	for i, sheet := range sheets {
		if i == 0 {
			if err := f.SetSheetName(defaultSheet, sheet.Name); err != nil {
				return fmt.Errorf("failed to name sheet %q: %w", sheet.Name, err)
			}
		} else if _, err := f.NewSheet(sheet.Name); err != nil {
			return fmt.Errorf("failed to create sheet %q: %w", sheet.Name, err)
		}

		if err := writeSheet(f, sheet, headerStyle, dateStyle); err != nil {
			return fmt.Errorf("failed to write sheet %q: %w", sheet.Name, err)
		}
	}
	f.SetActiveSheet(0)

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook %s: %w", path, err)
	}

	slog.Debug("Wrote workbook", "path", path, "sheets", len(sheets))
	return nil
}

func writeSheet(f *excelize.File, sheet Sheet, headerStyle, dateStyle int) error {
	sw, err := f.NewStreamWriter(sheet.Name)
	if err != nil {
		return err
	}

	if len(sheet.Header) > 0 {
		if err := sw.SetColWidth(1, len(sheet.Header), columnWidth); err != nil {
			return err
		}
	}

	header := make([]any, len(sheet.Header))
	for i, name := range sheet.Header {
		header[i] = excelize.Cell{StyleID: headerStyle, Value: name}
	}
	if err := sw.SetRow("A1", header); err != nil {
		return err
	}

	for r, row := range sheet.Rows {
		cells := make([]any, len(row))
		for c, v := range row {
			switch val := v.(type) {
			case nil:
				cells[c] = nil
			case time.Time:
				cells[c] = excelize.Cell{StyleID: dateStyle, Value: val}
			default:
				cells[c] = val
			}
		}
		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return err
		}
		if err := sw.SetRow(cell, cells); err != nil {
			return err
		}
	}

	return sw.Flush()
}
