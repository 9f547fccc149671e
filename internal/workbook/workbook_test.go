package workbook

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/Veraticus/waybill-match/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteAndReadTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "report.xlsx")
	when := time.Date(2024, time.December, 5, 0, 0, 0, 0, time.UTC)

	err := Write(path, []Sheet{
		{
			Name:   "Clasificación Envios",
			Header: []string{"Fecha", "Nombre Envio", "CO"},
			Rows: [][]any{
				{when, "Juan Perez", "F"},
				{nil, "Ana", nil},
			},
		},
		{
			Name:   "Comparación",
			Header: []string{"Similitud"},
			Rows:   [][]any{{0.75}, {nil}, {1.0}},
		},
	})
	require.NoError(t, err)

	first, err := ReadTable(path, "")
	require.NoError(t, err)
	assert.Equal(t, "Clasificación Envios", first.Sheet)
	assert.Equal(t, []string{"Fecha", "Nombre Envio", "CO"}, first.Header)
	require.Len(t, first.Rows, 2)

	saleDate := first.Date(0, "Fecha")
	require.True(t, saleDate.Valid)
	assert.WithinDuration(t, when, saleDate.Time, time.Second)
	assert.Equal(t, model.Text("Juan Perez"), first.Value(0, "Nombre Envio"))
	assert.Equal(t, model.Text("F"), first.Value(0, "CO"))
	assert.False(t, first.Value(1, "Fecha").Valid)
	assert.False(t, first.Value(1, "CO").Valid)

	second, err := ReadTable(path, "Comparación")
	require.NoError(t, err)
	require.Len(t, second.Rows, 2, "the all-empty row is dropped")
	score, ok := second.Value(0, "Similitud").Float()
	require.True(t, ok)
	assert.InDelta(t, 0.75, score, 1e-12)
}

func TestReadTable_Errors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.xlsx")
	require.NoError(t, Write(path, []Sheet{{Name: "Ventas", Header: []string{"Cliente"}}}))

	_, err := ReadTable(path, "Diciembre")
	assert.ErrorIs(t, err, ErrSheetNotFound)

	_, err = ReadTable(filepath.Join(t.TempDir(), "missing.xlsx"), "")
	assert.Error(t, err)
}

func TestWrite_NoSheets(t *testing.T) {
	assert.ErrorIs(t, Write(filepath.Join(t.TempDir(), "x.xlsx"), nil), ErrNoSheets)
}

func TestNewTable(t *testing.T) {
	table, err := newTable("Ventas", [][]string{
		{"Fecha", "", "Cliente", "Cliente"},
		{"45631", "x", "Ana"},
		{},
		{"", "", "", ""},
		{"", "", "Luis", "dup"},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"Fecha", "Unnamed: 1", "Cliente", "Cliente"}, table.Header)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, model.Text("Ana"), table.Value(0, "Cliente"), "first duplicate header wins")
	assert.Equal(t, model.Text("Luis"), table.Value(1, "Cliente"))
	assert.False(t, table.Value(0, "Cliente.1").Valid)
	assert.Len(t, table.Fields(0), 3)

	assert.NoError(t, table.Require("Fecha", "Cliente"))
	err = table.Require("Fecha", "Envio")
	assert.ErrorIs(t, err, ErrMissingColumn)
	assert.Contains(t, err.Error(), "Envio")

	_, err = newTable("Vacia", nil)
	assert.ErrorIs(t, err, ErrEmptySheet)
}

func TestParseDate(t *testing.T) {
	dec5 := time.Date(2024, time.December, 5, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		value     model.Value
		want      time.Time
		wantValid bool
	}{
		{name: "serial", value: model.Text("45631"), want: dec5, wantValid: true},
		{name: "serial with time", value: model.Text("45631.5"), want: dec5.Add(12 * time.Hour), wantValid: true},
		{name: "iso", value: model.Text("2024-12-05"), want: dec5, wantValid: true},
		{name: "iso with time", value: model.Text("2024-12-05 00:00:00"), want: dec5, wantValid: true},
		{name: "month first", value: model.Text("12/5/2024"), want: dec5, wantValid: true},
		{name: "short year", value: model.Text("12/05/24"), want: dec5, wantValid: true},
		{name: "day first fallback", value: model.Text("13/12/2024"), want: time.Date(2024, time.December, 13, 0, 0, 0, 0, time.UTC), wantValid: true},
		{name: "day first short year", value: model.Text("31/12/24"), want: time.Date(2024, time.December, 31, 0, 0, 0, 0, time.UTC), wantValid: true},
		{name: "ambiguous stays month first", value: model.Text("05/12/2024"), want: time.Date(2024, time.May, 12, 0, 0, 0, 0, time.UTC), wantValid: true},
		{name: "absent", value: model.Null(), wantValid: false},
		{name: "blank", value: model.Text("  "), wantValid: false},
		{name: "garbage", value: model.Text("pendiente"), wantValid: false},
		{name: "negative serial", value: model.Text("-3"), wantValid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseDate(tt.value, false)
			assert.Equal(t, tt.wantValid, got.Valid)
			if tt.wantValid {
				assert.True(t, tt.want.Equal(got.Time), "got %s", got.Time)
			}
		})
	}
}
