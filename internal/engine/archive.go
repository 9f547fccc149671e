package engine

import (
	"time"

	"github.com/Veraticus/waybill-match/internal/model"
)

// RunInfo names the files and start time of a run for archiving.
type RunInfo struct {
	StartedAt    time.Time
	SalesFile    string
	WaybillsFile string
	OutputFile   string
	Sheet        string
}

// Archive converts a result into its archived summary and rows.
func (r *Result) Archive(info RunInfo, config Config) (*model.Run, []model.RunRow) {
	run := &model.Run{
		Mode:          string(r.Mode),
		StartedAt:     info.StartedAt,
		Duration:      r.Stats.Duration,
		Threshold:     config.Threshold,
		SalesFile:     info.SalesFile,
		WaybillsFile:  info.WaybillsFile,
		OutputFile:    info.OutputFile,
		Sheet:         info.Sheet,
		Periods:       config.Periods,
		SourceRecords: r.Stats.SourceRecords,
		Rows:          r.Stats.Rows,
		Matched:       r.Stats.Matched,
		Unmatched:     r.Stats.Unmatched,
	}

	rows := make([]model.RunRow, len(r.Outcomes))
	for i, o := range r.Outcomes {
		row := model.RunRow{
			Ordinal:   i,
			SourceRow: o.Row,
			Period:    o.Period,
			Key:       o.Key,
			Label:     o.Label,
		}
		if ref := o.Match.Reference; ref != nil {
			recipient := o.Match.NormalizedRecipient
			score := o.Match.Score
			row.Recipient = &recipient
			row.Score = &score
			if ref.Status.Valid {
				status := ref.Status.Text
				row.Status = &status
			}
		}
		rows[i] = row
	}
	return run, rows
}
