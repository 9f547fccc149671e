package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValue_Float(t *testing.T) {
	tests := []struct {
		name   string
		value  Value
		want   float64
		wantOK bool
	}{
		{name: "absent", value: Null(), wantOK: false},
		{name: "integer", value: Text("15"), want: 15, wantOK: true},
		{name: "decimal", value: Text("15.5"), want: 15.5, wantOK: true},
		{name: "zero", value: Text("0"), want: 0, wantOK: true},
		{name: "padded", value: Text(" 3 "), want: 3, wantOK: true},
		{name: "text", value: Text("n/a"), wantOK: false},
		{name: "empty but present", value: Text(""), wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.value.Float()
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.InDelta(t, tt.want, got, 1e-9)
			}
		})
	}
}

func TestValue_Cell(t *testing.T) {
	tests := []struct {
		want  any
		name  string
		value Value
	}{
		{name: "absent is nil", value: Null(), want: nil},
		{name: "integer becomes number", value: Text("42"), want: 42.0},
		{name: "decimal becomes number", value: Text("0.04"), want: 0.04},
		{name: "negative number", value: Text("-7.5"), want: -7.5},
		{name: "leading zero stays text", value: Text("00123"), want: "00123"},
		{name: "exponent stays text", value: Text("1e5"), want: "1e5"},
		{name: "name stays text", value: Text("Juan Perez"), want: "Juan Perez"},
		{name: "trailing dot stays text", value: Text("12."), want: "12."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.value.Cell())
		})
	}
}

func TestDate_Period(t *testing.T) {
	assert.Equal(t, "", Date{}.Period())
	assert.Nil(t, Date{}.Cell())

	d := DateOf(time.Date(2024, time.December, 5, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, "2024-12", d.Period())
	assert.Equal(t, d.Time, d.Cell())
}

func TestMatchResult_Matched(t *testing.T) {
	assert.False(t, Unmatched().Matched())

	ref := ReferenceRecord{Recipient: Text("Ana")}
	assert.True(t, MatchResult{Reference: &ref, Score: 0.9}.Matched())
}

func TestLabels(t *testing.T) {
	for _, l := range Labels() {
		assert.True(t, l.IsValid(), l)
	}
	assert.False(t, Label("Other").IsValid())
}

func TestRowValues_ColumnCount(t *testing.T) {
	assert.Len(t, PeriodRow{}.Values(), len(PeriodColumns))
	assert.Len(t, ComparisonRow{}.Values(), len(ComparisonColumns))
}
