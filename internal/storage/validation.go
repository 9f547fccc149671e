package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Veraticus/waybill-match/internal/model"
)

// Validation errors.
var (
	ErrNilContext   = errors.New("context cannot be nil")
	ErrEmptyString  = errors.New("string parameter cannot be empty")
	ErrNilParameter = errors.New("parameter cannot be nil")
	ErrInvalidRun   = errors.New("invalid run")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateRun validates a run summary and its rows.
func validateRun(run *model.Run, rows []model.RunRow) error {
	if run == nil {
		return fmt.Errorf("%w: run", ErrNilParameter)
	}
	if strings.TrimSpace(run.Mode) == "" {
		return fmt.Errorf("%w: missing mode", ErrInvalidRun)
	}
	if run.StartedAt.IsZero() {
		return fmt.Errorf("%w: missing start time", ErrInvalidRun)
	}
	if run.Threshold <= 0 || run.Threshold > 1 {
		return fmt.Errorf("%w: threshold must be in (0, 1]", ErrInvalidRun)
	}
	if run.Rows != len(rows) {
		return fmt.Errorf("%w: summary has %d rows, got %d", ErrInvalidRun, run.Rows, len(rows))
	}
	if run.Matched+run.Unmatched != run.Rows {
		return fmt.Errorf("%w: matched + unmatched != rows", ErrInvalidRun)
	}
	for i, row := range rows {
		if row.Ordinal != i {
			return fmt.Errorf("%w: row %d has ordinal %d", ErrInvalidRun, i, row.Ordinal)
		}
		if row.Score != nil && (*row.Score < 0 || *row.Score > 1) {
			return fmt.Errorf("%w: row %d score out of range", ErrInvalidRun, i)
		}
	}
	return nil
}
