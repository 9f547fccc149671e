package engine

import (
	"time"

	"github.com/Veraticus/waybill-match/internal/classification"
	"github.com/Veraticus/waybill-match/internal/model"
	"github.com/Veraticus/waybill-match/internal/workbook"
)

// Outcome records how one output row was produced.
type Outcome struct {
	Match  model.MatchResult
	Period string
	Key    string // normalized key
	Label  model.Label
	Row    int // source ordinal
}

// PeriodStats summarizes one period of a months run.
type PeriodStats struct {
	Period  string
	Rows    int
	Matched int
}

// Stats summarizes a run.
type Stats struct {
	Labels           classification.Tally
	Periods          []PeriodStats
	SourceRecords    int
	ReferenceRecords int
	Rows             int
	Matched          int
	Unmatched        int
	Undated          int
	Duration         time.Duration
}

func (s *Stats) add(j job, m model.MatchResult) {
	s.Rows++
	if m.Matched() {
		s.Matched++
	} else {
		s.Unmatched++
	}
	if j.label != "" {
		s.Labels.Add(j.label)
	}

	if j.period == "" || j.periodIdx >= len(s.Periods) {
		return
	}
	p := &s.Periods[j.periodIdx]
	p.Rows++
	if m.Matched() {
		p.Matched++
	}
}

// MatchRate returns the share of rows that were matched.
func (s Stats) MatchRate() float64 {
	if s.Rows == 0 {
		return 0
	}
	return float64(s.Matched) / float64(s.Rows)
}

// Result is the outcome of a run.
type Result struct {
	Mode           Mode
	PeriodRows     []model.PeriodRow
	ComparisonRows []model.ComparisonRow
	Outcomes       []Outcome
	Sheets         []workbook.Sheet
	Stats          Stats
}

func periodSheet(name string, rows []model.PeriodRow) workbook.Sheet {
	sheet := workbook.Sheet{
		Name:   name,
		Header: model.PeriodColumns,
		Rows:   make([][]any, len(rows)),
	}
	for i, r := range rows {
		sheet.Rows[i] = r.Values()
	}
	return sheet
}

func comparisonSheet(name string, rows []model.ComparisonRow) workbook.Sheet {
	sheet := workbook.Sheet{
		Name:   name,
		Header: model.ComparisonColumns,
		Rows:   make([][]any, len(rows)),
	}
	for i, r := range rows {
		sheet.Rows[i] = r.Values()
	}
	return sheet
}
