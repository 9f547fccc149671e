package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	"github.com/Veraticus/waybill-match/internal/cli"
	"github.com/Veraticus/waybill-match/internal/common"
	"github.com/Veraticus/waybill-match/internal/config"
	"github.com/Veraticus/waybill-match/internal/engine"
	"github.com/Veraticus/waybill-match/internal/service"
	"github.com/Veraticus/waybill-match/internal/workbook"
)

// runOptions are the per-invocation inputs of months and sheet.
type runOptions struct {
	progress     io.Writer // nil disables the progress bar
	mode         engine.Mode
	sales        string
	waybills     string
	waybillSheet string
	output       string
	sheet        string
	periods      []string
}

// reconcile reads both workbooks, runs the engine and writes the output workbook.
func reconcile(ctx context.Context, v *viper.Viper, opts runOptions) (*engine.Result, error) {
	startedAt := time.Now()

	if err := checkPaths(opts); err != nil {
		return nil, err
	}

	settings, err := config.Load(v, opts.mode, opts.periods)
	if err != nil {
		return nil, err
	}

	salesSheet := ""
	if opts.mode == engine.ModeSheet {
		salesSheet = opts.sheet
	}
	sales, err := workbook.ReadTable(opts.sales, salesSheet)
	if err != nil {
		return nil, common.NewUserError("could not read the sales workbook", err)
	}
	waybills, err := workbook.ReadTable(opts.waybills, opts.waybillSheet)
	if err != nil {
		return nil, common.NewUserError("could not read the waybill workbook", err)
	}

	in, err := settings.Engine.Load(sales, waybills)
	if err != nil {
		return nil, common.NewUserError("input is missing required columns", err)
	}

	var bar *cli.Progress
	e, err := engine.New(settings.Engine, engine.WithProgress(func() { bar.Tick() }))
	if err != nil {
		return nil, err
	}
	if opts.progress != nil && settings.Progress && v.GetString(config.KeyLogFormat) != common.FormatJSON {
		bar = cli.NewProgress(opts.progress, e.Plan(in), "Matching sales")
	}

	result, err := e.Run(ctx, in)
	if err != nil {
		return nil, err
	}
	bar.Finish()

	if err := workbook.Write(opts.output, result.Sheets); err != nil {
		return nil, common.NewUserError("could not write the output workbook", err)
	}
	common.LogInfo("Wrote output workbook", common.Fields{
		"path":   opts.output,
		"sheets": len(result.Sheets),
		"rows":   result.Stats.Rows,
	})

	if settings.Archive {
		info := engine.RunInfo{
			StartedAt:    startedAt,
			SalesFile:    opts.sales,
			WaybillsFile: opts.waybills,
			OutputFile:   opts.output,
			Sheet:        salesSheet,
		}
		if err := archiveRun(ctx, settings.ArchivePath, result, info, e.Config()); err != nil {
			// The workbook is already written; a failed archive only loses history.
			common.LogError(err, "Failed to archive run", common.Fields{"path": settings.ArchivePath})
		}
	}

	return result, nil
}

func checkPaths(opts runOptions) error {
	for name, path := range map[string]string{"--sales": opts.sales, "--waybills": opts.waybills, "--output": opts.output} {
		if path == "" {
			return fmt.Errorf("%w: %s is required", common.ErrNoInput, name)
		}
	}

	out, err := filepath.Abs(opts.output)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", opts.output, err)
	}
	for _, in := range []string{opts.sales, opts.waybills} {
		abs, err := filepath.Abs(in)
		if err != nil {
			return fmt.Errorf("failed to resolve %s: %w", in, err)
		}
		if abs == out {
			return fmt.Errorf("%w: %s", common.ErrSameFile, opts.output)
		}
	}
	return nil
}

func archiveRun(ctx context.Context, path string, result *engine.Result, info engine.RunInfo, cfg engine.Config) error {
	store, err := initArchive(ctx, path)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := store.Close(); closeErr != nil {
			slog.Warn("Failed to close archive", "error", closeErr)
		}
	}()

	run, rows := result.Archive(info, cfg)
	err = common.WithRetry(ctx, func() error {
		return store.SaveRun(ctx, run, rows)
	}, service.RetryOptions{MaxAttempts: 5, InitialDelay: 200 * time.Millisecond})
	if err != nil {
		return err
	}

	slog.Info("Archived run", "id", run.ID, "rows", len(rows))
	return nil
}
