package models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"fjacquet/budget-report/internal/dateutils"

	"github.com/shopspring/decimal"
)

// TransactionBuilder provides a fluent API for constructing canonical
// transactions. The first failing step is remembered and returned by Build.
type TransactionBuilder struct {
	tx  Transaction
	err error
}

// NewTransactionBuilder starts a builder with the default category and a zero amount.
func NewTransactionBuilder() *TransactionBuilder {
	return &TransactionBuilder{
		tx: Transaction{
			Category: DefaultCategory,
			Amount:   decimal.Zero,
		},
	}
}

// WithRow sets the source row number.
func (b *TransactionBuilder) WithRow(row int) *TransactionBuilder {
	if b.err == nil {
		b.tx.Row = row
	}
	return b
}

// WithDate parses dateStr day-first ("05/01/2024") or as ISO ("2024-01-05").
func (b *TransactionBuilder) WithDate(dateStr string) *TransactionBuilder {
	if b.err != nil {
		return b
	}
	t, err := dateutils.ParseDayFirst(dateStr)
	if err != nil {
		b.err = fmt.Errorf("invalid date: %w", err)
		return b
	}
	b.tx.Date = t
	return b
}

// WithDateFromTime sets the date directly.
func (b *TransactionBuilder) WithDateFromTime(t time.Time) *TransactionBuilder {
	if b.err == nil {
		b.tx.Date = t
	}
	return b
}

// WithCategory sets the category; blank labels keep the default.
func (b *TransactionBuilder) WithCategory(category string) *TransactionBuilder {
	if b.err == nil && strings.TrimSpace(category) != "" {
		b.tx.Category = strings.TrimSpace(category)
	}
	return b
}

// WithAmount sets the signed amount.
func (b *TransactionBuilder) WithAmount(amount decimal.Decimal) *TransactionBuilder {
	if b.err == nil {
		b.tx.Amount = amount
	}
	return b
}

// WithAmountFromString parses a signed decimal amount.
func (b *TransactionBuilder) WithAmountFromString(amount string) *TransactionBuilder {
	if b.err != nil {
		return b
	}
	d, err := decimal.NewFromString(strings.TrimSpace(amount))
	if err != nil {
		b.err = fmt.Errorf("invalid amount %q: %w", amount, err)
		return b
	}
	b.tx.Amount = d
	return b
}

// WithName sets the counterparty name.
func (b *TransactionBuilder) WithName(name string) *TransactionBuilder {
	if b.err == nil {
		b.tx.Name = name
	}
	return b
}

// WithDescription sets the free-text description.
func (b *TransactionBuilder) WithDescription(description string) *TransactionBuilder {
	if b.err == nil {
		b.tx.Description = description
	}
	return b
}

// Build validates the transaction and fills the derived Month and ID.
func (b *TransactionBuilder) Build() (Transaction, error) {
	if b.err != nil {
		return Transaction{}, fmt.Errorf("builder error: %w", b.err)
	}
	if b.tx.Date.IsZero() {
		return Transaction{}, errors.New("date is required")
	}

	tx := b.tx
	tx.Month = MonthOf(tx.Date)
	tx.ID = TransactionID(tx.Row, tx.Date, tx.Category, tx.Amount, tx.Label())
	return tx, nil
}

// MustBuild is Build for fixtures; it panics on error.
func (b *TransactionBuilder) MustBuild() Transaction {
	tx, err := b.Build()
	if err != nil {
		panic(err)
	}
	return tx
}
