// Package model defines the core domain models used throughout the application.
package model

import (
	"strconv"
	"strings"
	"time"
)

// Value is an optional scalar read from a spreadsheet cell.
// A zero Value is absent.
type Value struct {
	Text  string
	Valid bool
}

// Null returns an absent value.
func Null() Value {
	return Value{}
}

// Text returns a present value holding s. Empty strings are still present.
func Text(s string) Value {
	return Value{Text: s, Valid: true}
}

// Number returns a present value holding the canonical text of f.
func Number(f float64) Value {
	return Value{Text: strconv.FormatFloat(f, 'f', -1, 64), Valid: true}
}

// Float interprets the value as a number.
// It reports false for absent values and for text that is not numeric.
func (v Value) Float() (float64, bool) {
	if !v.Valid {
		return 0, false
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v.Text), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// Cell returns the value as a spreadsheet cell: nil when absent, a float64 when
// the text is a plain number, and the raw text otherwise.
func (v Value) Cell() any {
	if !v.Valid {
		return nil
	}
	if looksNumeric(v.Text) {
		if f, err := strconv.ParseFloat(v.Text, 64); err == nil {
			return f
		}
	}
	return v.Text
}

// String implements fmt.Stringer.
func (v Value) String() string {
	if !v.Valid {
		return ""
	}
	return v.Text
}

// looksNumeric rejects identifiers such as "00123" or "1e5" that ParseFloat
// would accept but that were almost certainly typed as text.
func looksNumeric(s string) bool {
	if s == "" || strings.TrimSpace(s) != s {
		return false
	}
	digits := strings.TrimPrefix(s, "-")
	if len(digits) > 1 && digits[0] == '0' && digits[1] != '.' {
		return false
	}
	dot := false
	for i, r := range digits {
		switch {
		case r >= '0' && r <= '9':
		case r == '.' && !dot && i > 0 && i < len(digits)-1:
			dot = true
		default:
			return false
		}
	}
	return digits != ""
}

// Date is an optional calendar date.
type Date struct {
	Time  time.Time
	Valid bool
}

// DateOf returns a present date.
func DateOf(t time.Time) Date {
	return Date{Time: t, Valid: true}
}

// Period returns the YYYY-MM month the date falls in, or "" when absent.
func (d Date) Period() string {
	if !d.Valid {
		return ""
	}
	return d.Time.Format(PeriodLayout)
}

// Cell returns the date as a spreadsheet cell, nil when absent.
func (d Date) Cell() any {
	if !d.Valid {
		return nil
	}
	return d.Time
}

// PeriodLayout is the time layout of a YYYY-MM period.
const PeriodLayout = "2006-01"
