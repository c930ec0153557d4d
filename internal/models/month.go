package models

import (
	"fmt"
	"time"

	"fjacquet/budget-report/internal/dateutils"
)

// Month is a calendar year-month bucket.
type Month struct {
	Year  int
	Month time.Month
}

// MonthOf truncates t to its year-month bucket.
func MonthOf(t time.Time) Month {
	return Month{Year: t.Year(), Month: t.Month()}
}

// ParseMonth parses the "YYYY-MM" form produced by String.
func ParseMonth(s string) (Month, error) {
	t, err := time.Parse(dateutils.DateLayoutMonth, s)
	if err != nil {
		return Month{}, fmt.Errorf("invalid month %q: %w", s, err)
	}
	return MonthOf(t), nil
}

// String renders the bucket as "YYYY-MM".
func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}

// Before reports whether m is chronologically earlier than other.
func (m Month) Before(other Month) bool {
	if m.Year != other.Year {
		return m.Year < other.Year
	}
	return m.Month < other.Month
}

// IsZero reports whether m is the zero bucket.
func (m Month) IsZero() bool {
	return m.Year == 0 && m.Month == 0
}

// MarshalText renders the month as "YYYY-MM" so it can key JSON/YAML maps.
func (m Month) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText parses "YYYY-MM".
func (m *Month) UnmarshalText(b []byte) error {
	parsed, err := ParseMonth(string(b))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
