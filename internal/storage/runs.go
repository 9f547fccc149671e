package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Veraticus/waybill-match/internal/model"
)

// ErrRunNotFound is returned when a run ID is not in the archive.
var ErrRunNotFound = errors.New("run not found")

// SaveRun archives a run summary and its rows in one transaction.
// An empty run.ID is replaced with a new UUID. Lock contention is reported as
// a common.RetryableError.
func (s *SQLiteStorage) SaveRun(ctx context.Context, run *model.Run, rows []model.RunRow) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateRun(run, rows); err != nil {
		return err
	}
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	return markBusy(s.saveRun(ctx, run, rows))
}

func (s *SQLiteStorage) saveRun(ctx context.Context, run *model.Run, rows []model.RunRow) error {
	periods, err := json.Marshal(run.Periods)
	if err != nil {
		return fmt.Errorf("failed to encode periods: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs (id, mode, started_at, duration_ms, threshold, sales_file, waybills_file,
			output_file, sheet, periods, source_records, rows, matched, unmatched)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.Mode, run.StartedAt.UTC(), run.Duration.Milliseconds(), run.Threshold,
		run.SalesFile, run.WaybillsFile, run.OutputFile, run.Sheet, string(periods),
		run.SourceRecords, run.Rows, run.Matched, run.Unmatched)
	if err != nil {
		return fmt.Errorf("failed to save run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO run_rows (run_id, ordinal, source_row, period, match_key, label, recipient, score, status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare row insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, row := range rows {
		if _, err := stmt.ExecContext(ctx,
			run.ID, row.Ordinal, row.SourceRow, row.Period, row.Key, string(row.Label),
			row.Recipient, row.Score, row.Status); err != nil {
			return fmt.Errorf("failed to save row %d: %w", row.Ordinal, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit run: %w", err)
	}
	return nil
}

// ListRuns returns the most recent runs, newest first. A limit <= 0 returns all.
func (s *SQLiteStorage) ListRuns(ctx context.Context, limit int) ([]model.Run, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = -1
	}

	rows, err := s.db.QueryContext(ctx, runSelect+` ORDER BY started_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var runs []model.Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, *run)
	}
	return runs, rows.Err()
}

// GetRun returns one archived run.
func (s *SQLiteStorage) GetRun(ctx context.Context, id string) (*model.Run, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	run, err := scanRun(s.db.QueryRowContext(ctx, runSelect+` WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	return run, err
}

// GetRunRows returns the archived rows of a run in output order.
func (s *SQLiteStorage) GetRunRows(ctx context.Context, id string) ([]model.RunRow, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT ordinal, source_row, period, match_key, label, recipient, score, status
		FROM run_rows WHERE run_id = ? ORDER BY ordinal`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query run rows: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var result []model.RunRow
	for rows.Next() {
		var (
			row       model.RunRow
			period    sql.NullString
			label     sql.NullString
			recipient sql.NullString
			score     sql.NullFloat64
			status    sql.NullString
		)
		if err := rows.Scan(&row.Ordinal, &row.SourceRow, &period, &row.Key, &label,
			&recipient, &score, &status); err != nil {
			return nil, fmt.Errorf("failed to scan run row: %w", err)
		}
		row.Period = period.String
		row.Label = model.Label(label.String)
		if recipient.Valid {
			row.Recipient = &recipient.String
		}
		if score.Valid {
			row.Score = &score.Float64
		}
		if status.Valid {
			row.Status = &status.String
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

// DeleteRun removes a run and its rows.
func (s *SQLiteStorage) DeleteRun(ctx context.Context, id string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx, `DELETE FROM runs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete run: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	return nil
}

const runSelect = `
	SELECT id, mode, started_at, duration_ms, threshold, sales_file, waybills_file, output_file,
		sheet, periods, source_records, rows, matched, unmatched
	FROM runs`

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (*model.Run, error) {
	var (
		run      model.Run
		duration int64
		sheet    sql.NullString
		periods  sql.NullString
	)
	err := sc.Scan(&run.ID, &run.Mode, &run.StartedAt, &duration, &run.Threshold,
		&run.SalesFile, &run.WaybillsFile, &run.OutputFile, &sheet, &periods,
		&run.SourceRecords, &run.Rows, &run.Matched, &run.Unmatched)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan run: %w", err)
	}

	run.Duration = time.Duration(duration) * time.Millisecond
	run.Sheet = sheet.String
	if periods.Valid && periods.String != "" && periods.String != "null" {
		if err := json.Unmarshal([]byte(periods.String), &run.Periods); err != nil {
			return nil, fmt.Errorf("failed to decode periods: %w", err)
		}
	}
	return &run, nil
}
