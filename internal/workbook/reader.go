// Package workbook reads and writes the .xlsx files a reconciliation run
// consumes and produces.
package workbook

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/Veraticus/waybill-match/internal/model"
	"github.com/xuri/excelize/v2"
)

// Workbook errors.
var (
	ErrSheetNotFound = errors.New("sheet not found")
	ErrEmptySheet    = errors.New("sheet has no header row")
	ErrMissingColumn = errors.New("required column missing")
)

// Table is one sheet read into memory. Absent cells are invalid values.
type Table struct {
	index    map[string]int
	Sheet    string
	Header   []string
	Rows     [][]model.Value
	Date1904 bool
}

// ReadTable reads a sheet of the workbook at path. An empty sheet name selects
// the first sheet. Cell values are read raw, so dates arrive as serial numbers
// and are converted with ParseDate.
func ReadTable(path, sheet string) (*Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook %s: %w", path, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			slog.Warn("Failed to close workbook", "path", path, "error", closeErr)
		}
	}()

	if sheet == "" {
		sheet = f.GetSheetName(0)
		if sheet == "" {
			return nil, fmt.Errorf("%w: %s has no sheets", ErrSheetNotFound, path)
		}
	} else if idx, idxErr := f.GetSheetIndex(sheet); idxErr != nil || idx < 0 {
		return nil, fmt.Errorf("%w: %q in %s", ErrSheetNotFound, sheet, path)
	}

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read rows of %q: %w", sheet, err)
	}

	date1904 := false
	if props, propsErr := f.GetWorkbookProps(); propsErr == nil && props.Date1904 != nil {
		date1904 = *props.Date1904
	}

	table, err := newTable(sheet, rows)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	table.Date1904 = date1904

	slog.Debug("Read sheet",
		"path", path,
		"sheet", sheet,
		"columns", len(table.Header),
		"rows", len(table.Rows))

	return table, nil
}

// newTable builds a table from raw rows; the first row is the header.
// Rows with no non-empty cell are dropped.
func newTable(sheet string, rows [][]string) (*Table, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrEmptySheet, sheet)
	}

	t := &Table{
		Sheet:  sheet,
		Header: make([]string, len(rows[0])),
		index:  make(map[string]int, len(rows[0])),
	}
	for i, name := range rows[0] {
		if name == "" {
			name = fmt.Sprintf("Unnamed: %d", i)
		}
		t.Header[i] = name
		if _, dup := t.index[name]; !dup {
			t.index[name] = i
		}
	}

	for _, raw := range rows[1:] {
		row := make([]model.Value, len(t.Header))
		empty := true
		for i := 0; i < len(raw) && i < len(row); i++ {
			if raw[i] == "" {
				continue
			}
			row[i] = model.Text(raw[i])
			empty = false
		}
		if empty {
			continue
		}
		t.Rows = append(t.Rows, row)
	}

	return t, nil
}

// Has reports whether the table has the named column.
func (t *Table) Has(column string) bool {
	_, ok := t.index[column]
	return ok
}

// Require checks that every named column exists.
func (t *Table) Require(columns ...string) error {
	var missing []string
	for _, c := range columns {
		if !t.Has(c) {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w in sheet %q: %v", ErrMissingColumn, t.Sheet, missing)
	}
	return nil
}

// Value returns the cell of row in the named column, absent when the column
// does not exist.
func (t *Table) Value(row int, column string) model.Value {
	i, ok := t.index[column]
	if !ok {
		return model.Null()
	}
	return t.Rows[row][i]
}

// Fields returns the row as a column-name keyed map.
func (t *Table) Fields(row int) map[string]model.Value {
	fields := make(map[string]model.Value, len(t.index))
	for name, i := range t.index {
		fields[name] = t.Rows[row][i]
	}
	return fields
}

// Date parses the named column of row as a date.
func (t *Table) Date(row int, column string) model.Date {
	return ParseDate(t.Value(row, column), t.Date1904)
}
