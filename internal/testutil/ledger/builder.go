// Package ledger builds sales and waybill workbooks for tests.
//
// Example usage:
//
//	sales := ledger.NewSales(t).
//		WithFixture(ledger.FixtureDecember).
//		Row("2024-12-20", "Nuevo Cliente", "E9").
//		Write(dir, "ventas.xlsx")
package ledger

import (
	"path/filepath"
	"testing"

	"github.com/Veraticus/waybill-match/internal/workbook"
)

// Builder accumulates rows of one sheet and writes them as a workbook.
type Builder struct {
	t      *testing.T
	sheet  string
	header []string
	rows   [][]any
}

// SalesHeader is the months-mode sales ledger header.
var SalesHeader = []string{"Fecha", "Cliente", "Envio"}

// DispatchHeader is the sheet-mode dispatch ledger header.
var DispatchHeader = []string{"Fecha", "Nombre Envio", "CO", "Recargo 4%"}

// WaybillHeader is the carrier registry header.
var WaybillHeader = []string{"Destinatario", "Fecha", "Referencia 1", "Referencia 2", "Estado"}

// NewSales starts a months-mode sales sheet.
func NewSales(t *testing.T) *Builder {
	return NewSheet(t, "Sheet1", SalesHeader...)
}

// NewDispatch starts a sheet-mode dispatch sheet with the given name.
func NewDispatch(t *testing.T, sheet string) *Builder {
	return NewSheet(t, sheet, DispatchHeader...)
}

// NewWaybills starts a carrier registry sheet.
func NewWaybills(t *testing.T) *Builder {
	return NewSheet(t, "Guias", WaybillHeader...)
}

// NewSheet starts a sheet with an arbitrary header.
func NewSheet(t *testing.T, sheet string, header ...string) *Builder {
	t.Helper()
	return &Builder{t: t, sheet: sheet, header: header}
}

// Row appends one row. Missing trailing cells are left empty; nil cells are empty.
func (b *Builder) Row(cells ...any) *Builder {
	if len(cells) > len(b.header) {
		b.t.Fatalf("row has %d cells, header has %d", len(cells), len(b.header))
	}
	b.rows = append(b.rows, cells)
	return b
}

// WithFixture appends the rows of a fixture.
func (b *Builder) WithFixture(f Fixture) *Builder {
	for _, r := range f.Rows {
		b.Row(r...)
	}
	return b
}

// Sheet returns the sheet built so far.
func (b *Builder) Sheet() workbook.Sheet {
	return workbook.Sheet{Name: b.sheet, Header: b.header, Rows: b.rows}
}

// Write saves the sheet as dir/name and returns the path.
func (b *Builder) Write(dir, name string) string {
	b.t.Helper()
	path := filepath.Join(dir, name)
	if err := workbook.Write(path, []workbook.Sheet{b.Sheet()}); err != nil {
		b.t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

// WriteWorkbook saves several sheets into one workbook and returns the path.
func WriteWorkbook(t *testing.T, dir, name string, builders ...*Builder) string {
	t.Helper()
	sheets := make([]workbook.Sheet, len(builders))
	for i, b := range builders {
		sheets[i] = b.Sheet()
	}
	path := filepath.Join(dir, name)
	if err := workbook.Write(path, sheets); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}
