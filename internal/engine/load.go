package engine

import (
	"fmt"

	"github.com/Veraticus/waybill-match/internal/model"
	"github.com/Veraticus/waybill-match/internal/workbook"
)

// Input is the data of one run. References are matched in slice order.
type Input struct {
	Header     []string
	Sources    []model.SourceRecord
	References []model.ReferenceRecord
}

// Load converts the sales and waybill tables into run input. Missing required
// columns fail before any matching starts.
func (c Config) Load(sales, waybills *workbook.Table) (Input, error) {
	sources, err := c.LoadSources(sales)
	if err != nil {
		return Input{}, err
	}
	refs, err := c.LoadReferences(waybills)
	if err != nil {
		return Input{}, err
	}
	return Input{Header: sales.Header, Sources: sources, References: refs}, nil
}

// requiredSourceColumns lists the ledger columns a mode cannot run without.
func (c Config) requiredSourceColumns() []string {
	cols := []string{c.Source.Date, c.Source.Key}
	switch c.Mode {
	case ModeMonths:
		cols = append(cols, c.Source.Shipment)
	case ModeSheet:
		cols = append(cols, c.Rules.CarrierField, c.Rules.SurchargeField)
	}
	return cols
}

// LoadSources converts the sales table into source records, keeping every
// column for pass-through output.
func (c Config) LoadSources(t *workbook.Table) ([]model.SourceRecord, error) {
	if err := t.Require(c.requiredSourceColumns()...); err != nil {
		return nil, fmt.Errorf("sales table: %w", err)
	}

	records := make([]model.SourceRecord, len(t.Rows))
	for i := range t.Rows {
		records[i] = model.SourceRecord{
			Row:     i,
			Date:    t.Date(i, c.Source.Date),
			RawDate: t.Value(i, c.Source.Date),
			Key:     t.Value(i, c.Source.Key),
			Fields:  t.Fields(i),
			Columns: t.Header,
		}
	}
	return records, nil
}

// LoadReferences converts the waybill table into reference records in table order.
func (c Config) LoadReferences(t *workbook.Table) ([]model.ReferenceRecord, error) {
	r := c.Reference
	if err := t.Require(r.Recipient, r.Date, r.Reference1, r.Reference2, r.Status); err != nil {
		return nil, fmt.Errorf("waybill table: %w", err)
	}

	records := make([]model.ReferenceRecord, len(t.Rows))
	for i := range t.Rows {
		records[i] = model.ReferenceRecord{
			Recipient:  t.Value(i, r.Recipient),
			Date:       t.Date(i, r.Date),
			RawDate:    t.Value(i, r.Date),
			Reference1: t.Value(i, r.Reference1),
			Reference2: t.Value(i, r.Reference2),
			Status:     t.Value(i, r.Status),
		}
	}
	return records, nil
}
