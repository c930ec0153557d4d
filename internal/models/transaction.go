// Package models provides the data structures shared by the report pipeline.
package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// transactionNamespace seeds the name-based IDs of normalized transactions.
var transactionNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("budget-report/transaction"))

// Transaction is one canonical statement row. Amount is signed: negative
// values are expenses, positive values are income.
type Transaction struct {
	ID          string          `json:"id" yaml:"id"`
	Row         int             `json:"row" yaml:"row"`
	Date        time.Time       `json:"date" yaml:"date"`
	Month       Month           `json:"month" yaml:"month"`
	Category    string          `json:"category" yaml:"category"`
	Amount      decimal.Decimal `json:"amount" yaml:"amount"`
	Name        string          `json:"name,omitempty" yaml:"name,omitempty"`
	Description string          `json:"description,omitempty" yaml:"description,omitempty"`
}

// IsExpense reports whether the transaction takes money out.
func (t Transaction) IsExpense() bool {
	return t.Amount.IsNegative()
}

// IsIncome reports whether the transaction brings money in.
func (t Transaction) IsIncome() bool {
	return t.Amount.IsPositive()
}

// Magnitude returns the absolute amount.
func (t Transaction) Magnitude() decimal.Decimal {
	return t.Amount.Abs()
}

// Label returns Name, falling back to Description.
func (t Transaction) Label() string {
	if t.Name != "" {
		return t.Name
	}
	return t.Description
}

// TransactionID derives a stable identifier from a row's content, so two runs
// over the same file yield the same IDs.
func TransactionID(row int, date time.Time, category string, amount decimal.Decimal, label string) string {
	key := fmt.Sprintf("%d|%s|%s|%s|%s", row, date.Format(time.RFC3339), category, amount.String(), label)
	return uuid.NewSHA1(transactionNamespace, []byte(key)).String()
}

// FlaggedTransaction is an expense annotated by the anomaly detector.
// Magnitude is the expense as a positive value; Threshold is the category
// mean plus k standard deviations it was compared against.
type FlaggedTransaction struct {
	Transaction `yaml:",inline"`
	Magnitude decimal.Decimal `json:"magnitude" yaml:"magnitude"`
	Threshold float64         `json:"threshold" yaml:"threshold"`
	Spike     bool            `json:"spike" yaml:"spike"`
}
