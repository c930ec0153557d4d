package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// CategoryTotal is one category line of a ranking.
type CategoryTotal struct {
	Category string          `json:"category" yaml:"category"`
	Amount   decimal.Decimal `json:"amount" yaml:"amount"`
}

// MonthTotal is one month line of the monthly summary.
type MonthTotal struct {
	Month  Month           `json:"month" yaml:"month"`
	Amount decimal.Decimal `json:"amount" yaml:"amount"`
}

// DateRange is the span of dates covered by a statement.
type DateRange struct {
	Start time.Time `json:"start" yaml:"start"`
	End   time.Time `json:"end" yaml:"end"`
}

// IsZero reports whether the range was never set.
func (r DateRange) IsZero() bool {
	return r.Start.IsZero() && r.End.IsZero()
}

// Extend widens the range to include t.
func (r DateRange) Extend(t time.Time) DateRange {
	if r.Start.IsZero() || t.Before(r.Start) {
		r.Start = t
	}
	if r.End.IsZero() || t.After(r.End) {
		r.End = t
	}
	return r
}

func (r DateRange) String() string {
	if r.IsZero() {
		return ""
	}
	return fmt.Sprintf("%s to %s", r.Start.Format("2006-01-02"), r.End.Format("2006-01-02"))
}

// Summary holds every aggregate computed from one statement.
type Summary struct {
	TotalExpenses decimal.Decimal `json:"total_expenses" yaml:"total_expenses"`
	TotalIncome   decimal.Decimal `json:"total_income" yaml:"total_income"`
	Balance       decimal.Decimal `json:"balance" yaml:"balance"`

	CategorySummary []CategoryTotal      `json:"category_summary" yaml:"category_summary"`
	MonthlySummary  []MonthTotal         `json:"monthly_summary" yaml:"monthly_summary"`
	Matrix          *CategoryMonthMatrix `json:"category_month_matrix" yaml:"category_month_matrix"`

	PeakMonth MonthTotal `json:"peak_month" yaml:"peak_month"`
	HasPeak   bool       `json:"has_peak" yaml:"has_peak"`

	TopCategories        []CategoryTotal `json:"top_categories" yaml:"top_categories"`
	TopAverageCategories []CategoryTotal `json:"top_average_categories" yaml:"top_average_categories"`

	Period           DateRange `json:"period" yaml:"period"`
	TransactionCount int       `json:"transaction_count" yaml:"transaction_count"`
	ExpenseCount     int       `json:"expense_count" yaml:"expense_count"`
	IncomeCount      int       `json:"income_count" yaml:"income_count"`
}
