package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/waybill-match/internal/workbook"
)

func TestBuilder_WriteAndRead(t *testing.T) {
	dir := t.TempDir()
	path := NewWaybills(t).WithFixture(FixtureWaybills).Write(dir, "guias.xlsx")

	table, err := workbook.ReadTable(path, "")
	require.NoError(t, err)
	assert.Equal(t, "Guias", table.Sheet)
	assert.Equal(t, WaybillHeader, table.Header)
	require.Len(t, table.Rows, len(FixtureWaybills.Rows))
	assert.Equal(t, "Juan  Pérez", table.Value(0, "Destinatario").Text)
	assert.False(t, table.Value(0, "Referencia 2").Valid)
}

func TestWriteWorkbook_SeveralSheets(t *testing.T) {
	dir := t.TempDir()
	path := WriteWorkbook(t, dir, "libro.xlsx",
		NewDispatch(t, "Noviembre").Row("2024-11-01", "Ana", "F"),
		NewDispatch(t, "Diciembre").WithFixture(FixtureDispatch),
	)

	table, err := workbook.ReadTable(path, "Diciembre")
	require.NoError(t, err)
	assert.Len(t, table.Rows, len(FixtureDispatch.Rows))

	first, err := workbook.ReadTable(path, "")
	require.NoError(t, err)
	assert.Equal(t, "Noviembre", first.Sheet)
}
