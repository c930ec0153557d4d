// Package dateutils provides the date handling shared by the loader, normalizer
// and aggregator.
package dateutils

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Date layouts shared by parsing and formatting.
const (
	DateLayoutISO   = "2006-01-02"
	DateLayoutMonth = "2006-01"
)

// DayFirstFormats lists the layouts tried by ParseDayFirst, in order.
// Year-first layouts are unambiguous and come first; every other numeric
// layout reads the day before the month.
var DayFirstFormats = []string{
	DateLayoutISO,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006/1/2",
	"2/1/2006",
	"2/1/2006 15:04",
	"2/1/2006 15:04:05",
	"2-1-2006",
	"2.1.2006",
	"2/1/06",
	"2-1-06",
	"2.1.06",
	"2 Jan 2006",
	"2 January 2006",
	"2-Jan-2006",
	"2 Jan 06",
	"2-Jan-06",
}

var whitespace = regexp.MustCompile(`\s+`)

// CleanDateString trims the value and collapses inner whitespace.
func CleanDateString(dateStr string) string {
	return whitespace.ReplaceAllString(strings.TrimSpace(dateStr), " ")
}

// ParseDayFirst parses dateStr with the day-first convention used by UK bank
// statements ("05/01/2024" is 5 January 2024). The result is in UTC.
func ParseDayFirst(dateStr string) (time.Time, error) {
	clean := CleanDateString(dateStr)
	if clean == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	for _, layout := range DayFirstFormats {
		if t, err := time.ParseInLocation(layout, clean, time.UTC); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unable to parse date: %s", clean)
}

// ToISODate formats t as YYYY-MM-DD, or "" for the zero time.
func ToISODate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateLayoutISO)
}
