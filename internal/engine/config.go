// Package engine runs a reconciliation batch: it classifies sales records,
// links each one to its most similar waybill and assembles the output tables.
package engine

import (
	"errors"
	"fmt"
	"time"

	"github.com/Veraticus/waybill-match/internal/classification"
	"github.com/Veraticus/waybill-match/internal/matcher"
	"github.com/Veraticus/waybill-match/internal/model"
)

// Mode selects which filtering and classification steps apply to a run.
type Mode string

// Batch modes.
const (
	// ModeMonths filters sales by YYYY-MM periods and writes one table.
	ModeMonths Mode = "months"
	// ModeSheet classifies one sales sheet and writes an echo and a comparison table.
	ModeSheet Mode = "sheet"
)

// Configuration errors.
var (
	ErrInvalidMode      = errors.New("invalid batch mode")
	ErrInvalidPeriod    = errors.New("invalid period, expected YYYY-MM")
	ErrNoPeriods        = errors.New("at least one period is required")
	ErrInvalidThreshold = errors.New("threshold must be in (0, 1]")
)

// Default sheet names of the output workbook.
const (
	DefaultPeriodSheet     = "Sheet1"
	DefaultEchoSheet       = "Clasificación Envios"
	DefaultComparisonSheet = "Comparación"
)

// SourceColumns names the sales ledger columns a run reads.
type SourceColumns struct {
	Date     string
	Key      string
	Shipment string
}

// ReferenceColumns names the waybill registry columns a run reads.
type ReferenceColumns struct {
	Recipient  string
	Date       string
	Reference1 string
	Reference2 string
	Status     string
}

// Config holds everything a run needs besides its input data.
type Config struct {
	Rules           classification.Rules
	Reference       ReferenceColumns
	Source          SourceColumns
	Mode            Mode
	PeriodSheet     string
	EchoSheet       string
	ComparisonSheet string
	Periods         []string
	Threshold       float64
	Workers         int
}

// DefaultSourceColumns returns the ledger columns for a mode.
func DefaultSourceColumns(mode Mode) SourceColumns {
	if mode == ModeSheet {
		return SourceColumns{Date: "Fecha", Key: "Nombre Envio"}
	}
	return SourceColumns{Date: "Fecha", Key: "Cliente", Shipment: "Envio"}
}

// DefaultReferenceColumns returns the waybill registry columns.
func DefaultReferenceColumns() ReferenceColumns {
	return ReferenceColumns{
		Recipient:  "Destinatario",
		Date:       "Fecha",
		Reference1: "Referencia 1",
		Reference2: "Referencia 2",
		Status:     "Estado",
	}
}

// DefaultConfig returns the configuration for a mode with documented defaults.
func DefaultConfig(mode Mode) Config {
	return Config{
		Mode:            mode,
		Threshold:       matcher.DefaultThreshold,
		Source:          DefaultSourceColumns(mode),
		Reference:       DefaultReferenceColumns(),
		Rules:           classification.DefaultRules(),
		PeriodSheet:     DefaultPeriodSheet,
		EchoSheet:       DefaultEchoSheet,
		ComparisonSheet: DefaultComparisonSheet,
	}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	switch c.Mode {
	case ModeMonths:
		if len(c.Periods) == 0 {
			return ErrNoPeriods
		}
		for _, p := range c.Periods {
			if err := ValidatePeriod(p); err != nil {
				return err
			}
		}
	case ModeSheet:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidMode, c.Mode)
	}

	if c.Threshold <= 0 || c.Threshold > 1 {
		return fmt.Errorf("%w: %v", ErrInvalidThreshold, c.Threshold)
	}
	return nil
}

// ValidatePeriod checks that p is a YYYY-MM month.
func ValidatePeriod(p string) error {
	if len(p) != len(model.PeriodLayout) {
		return fmt.Errorf("%w: %q", ErrInvalidPeriod, p)
	}
	if _, err := time.Parse(model.PeriodLayout, p); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidPeriod, p)
	}
	return nil
}
