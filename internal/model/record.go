package model

// SourceRecord is one entry of the sales/dispatch ledger.
type SourceRecord struct {
	Fields  map[string]Value // every original column, pass-through
	Key     Value            // raw key text (client or recipient name)
	RawDate Value            // date cell as read, shown as is unless it is a serial
	Columns []string         // original header order
	Date    Date
	Row     int // zero-based ordinal in the source table
}

// Field returns the named pass-through field, absent when the column is missing.
func (r SourceRecord) Field(name string) Value {
	return r.Fields[name]
}

// ReferenceRecord is one entry of the carrier waybill registry.
type ReferenceRecord struct {
	Recipient  Value
	Reference1 Value
	Reference2 Value
	Status     Value
	RawDate    Value
	Date       Date
}

// DisplayDate returns the cell shown for a date column. Only numeric serial
// cells are shown as the parsed date; text is copied through as typed.
func DisplayDate(d Date, raw Value) any {
	if _, serial := raw.Float(); serial && d.Valid {
		return d.Time
	}
	return raw.Cell()
}

// MatchResult is the outcome of a best-match search for one source record.
// It is either matched (Reference non-nil, Score >= threshold) or unmatched.
type MatchResult struct {
	Reference           *ReferenceRecord
	NormalizedRecipient string
	Score               float64
}

// Unmatched returns the unmatched result.
func Unmatched() MatchResult {
	return MatchResult{}
}

// Matched reports whether a reference record cleared the threshold.
func (m MatchResult) Matched() bool {
	return m.Reference != nil
}
