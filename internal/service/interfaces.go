// Package service defines the interfaces for application services.
package service

import (
	"context"
	"time"

	"github.com/Veraticus/waybill-match/internal/model"
)

// Archive defines the contract for the run history store.
type Archive interface {
	SaveRun(ctx context.Context, run *model.Run, rows []model.RunRow) error
	ListRuns(ctx context.Context, limit int) ([]model.Run, error)
	GetRun(ctx context.Context, id string) (*model.Run, error)
	GetRunRows(ctx context.Context, id string) ([]model.RunRow, error)
	DeleteRun(ctx context.Context, id string) error

	// Database management
	Migrate(ctx context.Context) error
	Close() error
}

// RetryOptions configures retry behavior for operations.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}
