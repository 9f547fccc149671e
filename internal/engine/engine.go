package engine

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"time"

	"github.com/Veraticus/waybill-match/internal/classification"
	"github.com/Veraticus/waybill-match/internal/matcher"
	"github.com/Veraticus/waybill-match/internal/model"
	"github.com/Veraticus/waybill-match/internal/normalize"
	"github.com/Veraticus/waybill-match/internal/workbook"
	"golang.org/x/sync/errgroup"
)

// ProgressFunc is called once per matched source record. It may be called
// from several goroutines at once.
type ProgressFunc func()

// Engine reconciles a sales ledger against a waybill registry.
type Engine struct {
	classifier *classification.Classifier
	assembler  Assembler
	progress   ProgressFunc
	config     Config
}

// Option customizes an Engine.
type Option func(*Engine)

// WithProgress installs a progress callback.
func WithProgress(fn ProgressFunc) Option {
	return func(e *Engine) {
		e.progress = fn
	}
}

// New creates an engine for a validated configuration.
func New(config Config, opts ...Option) (*Engine, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid engine config: %w", err)
	}
	if config.Workers <= 0 {
		config.Workers = runtime.NumCPU()
	}

	e := &Engine{
		config:     config,
		classifier: classification.NewClassifier(config.Rules),
		assembler:  NewAssembler(config.Source),
		progress:   func() {},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Config returns the effective configuration.
func (e *Engine) Config() Config {
	return e.config
}

// job is one source record to match, tagged with the period it was selected for.
type job struct {
	src       *model.SourceRecord
	period    string
	label     model.Label
	periodIdx int
}

// Plan returns how many source records a run over in will match.
// Records selected by more than one period count once per period.
func (e *Engine) Plan(in Input) int {
	return len(e.jobs(in.Sources))
}

// Run matches every selected source record against the reference set and
// assembles the output tables. Output order follows the period list, then
// source order.
func (e *Engine) Run(ctx context.Context, in Input) (*Result, error) {
	start := time.Now()
	sources := in.Sources

	idx := matcher.NewIndex(in.References)
	jobs := e.jobs(sources)

	slog.Info("Starting reconciliation",
		"mode", e.config.Mode,
		"source_records", len(sources),
		"selected", len(jobs),
		"reference_records", idx.Len(),
		"threshold", e.config.Threshold,
		"workers", e.config.Workers)

	matches, err := e.match(ctx, idx, jobs)
	if err != nil {
		return nil, err
	}

	result := e.assemble(in, jobs, matches)
	result.Stats.SourceRecords = len(sources)
	result.Stats.ReferenceRecords = idx.Len()
	result.Stats.Duration = time.Since(start)

	slog.Info("Reconciliation complete",
		"rows", result.Stats.Rows,
		"matched", result.Stats.Matched,
		"unmatched", result.Stats.Unmatched,
		"duration", result.Stats.Duration)

	return result, nil
}

// jobs selects and orders the records to match. Months mode repeats the
// selection per period; undated records are never selected there.
func (e *Engine) jobs(sources []model.SourceRecord) []job {
	var jobs []job
	switch e.config.Mode {
	case ModeMonths:
		for p, period := range e.config.Periods {
			for i := range sources {
				if sources[i].Date.Period() == period {
					jobs = append(jobs, job{src: &sources[i], period: period, periodIdx: p})
				}
			}
		}
	case ModeSheet:
		jobs = make([]job, len(sources))
		for i := range sources {
			jobs[i] = job{
				src:   &sources[i],
				label: e.classifier.Classify(sources[i].Fields),
			}
		}
	}
	return jobs
}

// match runs the best-match search for every job. The index is shared
// read-only; each goroutine writes only its own slot.
func (e *Engine) match(ctx context.Context, idx *matcher.Index, jobs []job) ([]model.MatchResult, error) {
	results := make([]model.MatchResult, len(jobs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.config.Workers)

	for i := range jobs {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			key := normalize.Key(jobs[i].src.Key)
			results[i] = idx.FindBestMatch(key, e.config.Threshold)
			slog.Debug("Matched record",
				"row", jobs[i].src.Row,
				"period", jobs[i].period,
				"key", key,
				"matched", results[i].Matched(),
				"score", results[i].Score)
			e.progress()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("matching interrupted: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("matching interrupted: %w", err)
	}
	return results, nil
}

func (e *Engine) assemble(in Input, jobs []job, matches []model.MatchResult) *Result {
	result := &Result{
		Mode:     e.config.Mode,
		Outcomes: make([]Outcome, len(jobs)),
		Stats:    Stats{Labels: classification.Tally{}},
	}
	if e.config.Mode == ModeMonths {
		result.Stats.Periods = make([]PeriodStats, len(e.config.Periods))
		for i, p := range e.config.Periods {
			result.Stats.Periods[i].Period = p
		}
	}

	for i, j := range jobs {
		m := matches[i]
		result.Outcomes[i] = Outcome{
			Period: j.period,
			Row:    j.src.Row,
			Key:    normalize.Key(j.src.Key),
			Label:  j.label,
			Match:  m,
		}
		result.Stats.add(j, m)

		switch e.config.Mode {
		case ModeMonths:
			result.PeriodRows = append(result.PeriodRows, e.assembler.PeriodRow(j.period, *j.src, m))
		case ModeSheet:
			result.ComparisonRows = append(result.ComparisonRows, e.assembler.ComparisonRow(*j.src, j.label, m))
		}
	}

	switch e.config.Mode {
	case ModeMonths:
		result.Sheets = []workbook.Sheet{periodSheet(e.config.PeriodSheet, result.PeriodRows)}
		for i := range in.Sources {
			if !in.Sources[i].Date.Valid {
				result.Stats.Undated++
			}
		}
	case ModeSheet:
		result.Sheets = []workbook.Sheet{
			e.echoSheet(in.Header, jobs),
			comparisonSheet(e.config.ComparisonSheet, result.ComparisonRows),
		}
	}

	return result
}

func (e *Engine) echoSheet(header []string, jobs []job) workbook.Sheet {
	sheet := workbook.Sheet{
		Name:   e.config.EchoSheet,
		Header: EchoHeader(header),
		Rows:   make([][]any, len(jobs)),
	}
	for i, j := range jobs {
		sheet.Rows[i] = e.assembler.EchoRow(*j.src, j.label)
	}
	return sheet
}
