package main

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/waybill-match/internal/common"
	"github.com/Veraticus/waybill-match/internal/config"
	"github.com/Veraticus/waybill-match/internal/engine"
	"github.com/Veraticus/waybill-match/internal/model"
	"github.com/Veraticus/waybill-match/internal/storage"
	"github.com/Veraticus/waybill-match/internal/testutil/ledger"
	"github.com/Veraticus/waybill-match/internal/workbook"
)

func testViper(t *testing.T) *viper.Viper {
	t.Helper()
	v := viper.New()
	config.SetDefaults(v)
	v.Set(config.KeyArchivePath, filepath.Join(t.TempDir(), "history.db"))
	return v
}

func TestReconcile_Months(t *testing.T) {
	dir := t.TempDir()
	opts := runOptions{
		mode:     engine.ModeMonths,
		sales:    ledger.NewSales(t).WithFixture(ledger.FixtureDecember).Write(dir, "ventas.xlsx"),
		waybills: ledger.NewWaybills(t).WithFixture(ledger.FixtureWaybills).Write(dir, "guias.xlsx"),
		output:   filepath.Join(dir, "out", "comparacion.xlsx"),
		periods:  []string{"2024-12"},
	}

	result, err := reconcile(context.Background(), testViper(t), opts)
	require.NoError(t, err)
	assert.Equal(t, 3, result.Stats.Rows)
	assert.Equal(t, 2, result.Stats.Matched)
	assert.Equal(t, 1, result.Stats.Undated)

	table, err := workbook.ReadTable(opts.output, engine.DefaultPeriodSheet)
	require.NoError(t, err)
	assert.Equal(t, model.PeriodColumns, table.Header)
	require.Len(t, table.Rows, 3)

	assert.Equal(t, "2024-12", table.Value(0, model.ColumnPeriod).Text)
	assert.Equal(t, "juan perez", table.Value(0, model.ColumnClient).Text)
	assert.Equal(t, "E1", table.Value(0, model.ColumnShipment).Text)
	assert.Equal(t, "juan  pérez", table.Value(0, model.ColumnBestMatch).Text)
	assert.Equal(t, "G-001", table.Value(0, model.ColumnReference1).Text)
	assert.False(t, table.Value(0, model.ColumnReference2).Valid)

	assert.Equal(t, "E4", table.Value(1, model.ColumnShipment).Text)
	assert.False(t, table.Value(1, model.ColumnBestMatch).Valid)
	assert.False(t, table.Value(1, model.ColumnSimilarity).Valid)

	assert.Equal(t, "ferreteria lopez", table.Value(2, model.ColumnBestMatch).Text)
	sim, ok := table.Value(2, model.ColumnSimilarity).Float()
	require.True(t, ok)
	assert.InDelta(t, 1.0, sim, 1e-9)
}

func TestReconcile_Sheet(t *testing.T) {
	dir := t.TempDir()
	sales := ledger.WriteWorkbook(t, dir, "despachos.xlsx",
		ledger.NewDispatch(t, "Noviembre").Row("2024-11-01", "Otro", "F"),
		ledger.NewDispatch(t, "Diciembre").WithFixture(ledger.FixtureDispatch),
	)
	opts := runOptions{
		mode:     engine.ModeSheet,
		sales:    sales,
		sheet:    "Diciembre",
		waybills: ledger.NewWaybills(t).WithFixture(ledger.FixtureWaybills).Write(dir, "guias.xlsx"),
		output:   filepath.Join(dir, "diciembre.xlsx"),
	}

	result, err := reconcile(context.Background(), testViper(t), opts)
	require.NoError(t, err)
	assert.Equal(t, 4, result.Stats.Rows)
	assert.Equal(t, 1, result.Stats.Labels[model.LabelForza])
	assert.Equal(t, 1, result.Stats.Labels[model.LabelMensajero])
	assert.Equal(t, 1, result.Stats.Labels[model.LabelCargo])
	assert.Equal(t, 1, result.Stats.Labels[model.LabelUnknown])

	echo, err := workbook.ReadTable(opts.output, engine.DefaultEchoSheet)
	require.NoError(t, err)
	assert.Equal(t, append(append([]string{}, ledger.DispatchHeader...), model.ColumnClassification), echo.Header)
	require.Len(t, echo.Rows, 4)
	assert.Equal(t, "Forza", echo.Value(0, model.ColumnClassification).Text)
	assert.Equal(t, "Cargo", echo.Value(2, model.ColumnClassification).Text)

	cmp, err := workbook.ReadTable(opts.output, engine.DefaultComparisonSheet)
	require.NoError(t, err)
	assert.Equal(t, model.ComparisonColumns, cmp.Header)
	require.Len(t, cmp.Rows, 4)
	assert.Equal(t, "Juan Perez", cmp.Value(0, model.ColumnShipmentName).Text)
	assert.Equal(t, "juan  pérez", cmp.Value(0, model.ColumnBestMatch).Text)
	assert.Equal(t, "EN TRANSITO", cmp.Value(1, model.ColumnStatus).Text)
	assert.Equal(t, "no es fecha", cmp.Value(3, model.ColumnDate).Text)
	assert.False(t, cmp.Value(3, model.ColumnBestMatch).Valid)
}

func TestReconcile_Archive(t *testing.T) {
	dir := t.TempDir()
	v := testViper(t)
	v.Set(config.KeyArchiveEnabled, true)

	opts := runOptions{
		mode:     engine.ModeMonths,
		sales:    ledger.NewSales(t).WithFixture(ledger.FixtureDecember).Write(dir, "ventas.xlsx"),
		waybills: ledger.NewWaybills(t).WithFixture(ledger.FixtureWaybills).Write(dir, "guias.xlsx"),
		output:   filepath.Join(dir, "out.xlsx"),
		periods:  []string{"2024-11", "2024-12"},
	}
	_, err := reconcile(context.Background(), v, opts)
	require.NoError(t, err)

	store, err := storage.NewSQLiteStorage(v.GetString(config.KeyArchivePath))
	require.NoError(t, err)
	defer func() { _ = store.Close() }()
	ctx := context.Background()

	runs, err := store.ListRuns(ctx, 0)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "months", runs[0].Mode)
	assert.Equal(t, []string{"2024-11", "2024-12"}, runs[0].Periods)
	assert.Equal(t, 4, runs[0].Rows)
	assert.Equal(t, opts.output, runs[0].OutputFile)

	rows, err := store.GetRunRows(ctx, runs[0].ID)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, "2024-11", rows[0].Period)
	assert.Equal(t, "maria gonzalez", rows[0].Key)
}

func TestReconcile_Errors(t *testing.T) {
	dir := t.TempDir()
	sales := ledger.NewSales(t).WithFixture(ledger.FixtureDecember).Write(dir, "ventas.xlsx")
	waybills := ledger.NewWaybills(t).WithFixture(ledger.FixtureWaybills).Write(dir, "guias.xlsx")
	noRecipient := ledger.NewSheet(t, "Guias", "Nombre", "Estado").Row("Ana", "OK").Write(dir, "sin_destinatario.xlsx")

	tests := []struct {
		wantErr error
		name    string
		opts    runOptions
	}{
		{
			name:    "missing output",
			opts:    runOptions{mode: engine.ModeMonths, sales: sales, waybills: waybills, periods: []string{"2024-12"}},
			wantErr: common.ErrNoInput,
		},
		{
			name:    "output overwrites input",
			opts:    runOptions{mode: engine.ModeMonths, sales: sales, waybills: waybills, output: sales, periods: []string{"2024-12"}},
			wantErr: common.ErrSameFile,
		},
		{
			name:    "invalid period",
			opts:    runOptions{mode: engine.ModeMonths, sales: sales, waybills: waybills, output: filepath.Join(dir, "o.xlsx"), periods: []string{"12-2024"}},
			wantErr: engine.ErrInvalidPeriod,
		},
		{
			name:    "unknown sheet",
			opts:    runOptions{mode: engine.ModeSheet, sheet: "Enero", sales: sales, waybills: waybills, output: filepath.Join(dir, "o.xlsx")},
			wantErr: workbook.ErrSheetNotFound,
		},
		{
			name:    "missing waybill column",
			opts:    runOptions{mode: engine.ModeMonths, sales: sales, waybills: noRecipient, output: filepath.Join(dir, "o.xlsx"), periods: []string{"2024-12"}},
			wantErr: workbook.ErrMissingColumn,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := reconcile(context.Background(), testViper(t), tt.opts)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
	assert.NoFileExists(t, filepath.Join(dir, "o.xlsx"))
}

func TestReconcile_Progress(t *testing.T) {
	dir := t.TempDir()
	var progress bytes.Buffer
	opts := runOptions{
		mode:     engine.ModeMonths,
		sales:    ledger.NewSales(t).WithFixture(ledger.FixtureDecember).Write(dir, "ventas.xlsx"),
		waybills: ledger.NewWaybills(t).WithFixture(ledger.FixtureWaybills).Write(dir, "guias.xlsx"),
		output:   filepath.Join(dir, "out.xlsx"),
		periods:  []string{"2024-12"},
		progress: &progress,
	}

	_, err := reconcile(context.Background(), testViper(t), opts)
	require.NoError(t, err)
	assert.Contains(t, progress.String(), "Matching sales")
}

func TestReconcile_Canceled(t *testing.T) {
	dir := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	opts := runOptions{
		mode:     engine.ModeSheet,
		sheet:    "Diciembre",
		sales:    ledger.NewDispatch(t, "Diciembre").WithFixture(ledger.FixtureDispatch).Write(dir, "d.xlsx"),
		waybills: ledger.NewWaybills(t).WithFixture(ledger.FixtureWaybills).Write(dir, "guias.xlsx"),
		output:   filepath.Join(dir, "out.xlsx"),
	}
	_, err := reconcile(ctx, testViper(t), opts)
	assert.ErrorIs(t, err, context.Canceled)
	assert.NoFileExists(t, opts.output)
}
