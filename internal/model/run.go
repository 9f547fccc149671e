package model

import "time"

// Run is the archived summary of one reconciliation run.
type Run struct {
	StartedAt     time.Time
	ID            string
	Mode          string
	SalesFile     string
	WaybillsFile  string
	OutputFile    string
	Sheet         string
	Periods       []string
	Threshold     float64
	Duration      time.Duration
	SourceRecords int
	Rows          int
	Matched       int
	Unmatched     int
}

// RunRow is the archived outcome of one output row. Recipient, Score and
// Status are nil when the row was not matched.
type RunRow struct {
	Recipient *string
	Score     *float64
	Status    *string
	Period    string
	Key       string
	Label     Label
	Ordinal   int
	SourceRow int
}
