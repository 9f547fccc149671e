package engine

import (
	"github.com/Veraticus/waybill-match/internal/model"
	"github.com/Veraticus/waybill-match/internal/normalize"
)

// Assembler merges a source record, its label and its match outcome into an
// output row. It never drops a record: unmatched records get nil match cells.
type Assembler struct {
	source SourceColumns
}

// NewAssembler creates an assembler reading the given ledger columns.
func NewAssembler(source SourceColumns) Assembler {
	return Assembler{source: source}
}

// PeriodRow builds a multi-month row. The client column carries the
// normalized key.
func (a Assembler) PeriodRow(period string, src model.SourceRecord, m model.MatchResult) model.PeriodRow {
	return model.PeriodRow{
		Period:   period,
		SaleDate: src.Date.Cell(),
		Client:   normalize.Key(src.Key),
		Shipment: src.Field(a.source.Shipment).Cell(),
		Match:    matchColumns(m),
	}
}

// ComparisonRow builds a single-sheet row. The name column carries the raw key.
func (a Assembler) ComparisonRow(src model.SourceRecord, label model.Label, m model.MatchResult) model.ComparisonRow {
	return model.ComparisonRow{
		Date:         model.DisplayDate(src.Date, src.RawDate),
		ShipmentName: src.Key.Cell(),
		Label:        label,
		Match:        matchColumns(m),
	}
}

// EchoRow returns the record's original cells in header order followed by its label.
func (a Assembler) EchoRow(src model.SourceRecord, label model.Label) []any {
	row := make([]any, 0, len(src.Columns)+1)
	for _, col := range src.Columns {
		if col == a.source.Date {
			row = append(row, model.DisplayDate(src.Date, src.RawDate))
			continue
		}
		row = append(row, src.Field(col).Cell())
	}
	return append(row, string(label))
}

// EchoHeader returns the echo table header for the ledger header.
func EchoHeader(columns []string) []string {
	header := make([]string, 0, len(columns)+1)
	header = append(header, columns...)
	return append(header, model.ColumnClassification)
}

func matchColumns(m model.MatchResult) model.MatchColumns {
	if !m.Matched() {
		return model.MatchColumns{}
	}
	ref := m.Reference
	return model.MatchColumns{
		Recipient:  m.NormalizedRecipient,
		Similarity: m.Score,
		Date:       model.DisplayDate(ref.Date, ref.RawDate),
		Reference1: ref.Reference1.Cell(),
		Reference2: ref.Reference2.Cell(),
		Status:     ref.Status.Cell(),
	}
}
