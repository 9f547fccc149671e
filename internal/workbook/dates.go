package workbook

import (
	"strconv"
	"strings"
	"time"

	"github.com/Veraticus/waybill-match/internal/model"
	"github.com/xuri/excelize/v2"
)

// dateLayouts are tried in order for text cells. Slash dates are month first
// and fall back to day first when the leading field cannot be a month.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006/01/02",
	"2006/01/02 15:04:05",
	"1/2/2006",
	"1/2/2006 15:04:05",
	"1/2/2006 15:04",
	"01/02/06",
	"1/2/06",
	"2/1/2006",
	"2/1/2006 15:04:05",
	"2/1/2006 15:04",
	"2/1/06",
	"2 Jan 2006",
	"Jan 2, 2006",
}

// ParseDate converts a cell to a date. Numbers are spreadsheet serial dates;
// text is tried against a fixed set of layouts. Anything else is absent.
func ParseDate(v model.Value, date1904 bool) model.Date {
	if !v.Valid {
		return model.Date{}
	}
	s := strings.TrimSpace(v.Text)
	if s == "" {
		return model.Date{}
	}

	if serial, err := strconv.ParseFloat(s, 64); err == nil {
		if serial <= 0 {
			return model.Date{}
		}
		t, convErr := excelize.ExcelDateToTime(serial, date1904)
		if convErr != nil {
			return model.Date{}
		}
		return model.DateOf(t)
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return model.DateOf(t)
		}
	}
	return model.Date{}
}
