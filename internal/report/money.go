package report

import (
	"fmt"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// DefaultCurrency is the ISO 4217 code used when none is configured.
const DefaultCurrency = "GBP"

// MoneyFormatter renders decimal amounts with a currency symbol, thousands
// separators and two decimals, e.g. "£1,234.50".
type MoneyFormatter struct {
	code string
}

// NewMoneyFormatter validates an ISO 4217 currency code.
func NewMoneyFormatter(code string) (*MoneyFormatter, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		code = DefaultCurrency
	}
	if money.GetCurrency(code) == nil {
		return nil, fmt.Errorf("unknown currency code %q", code)
	}
	return &MoneyFormatter{code: code}, nil
}

// Code returns the currency code.
func (f *MoneyFormatter) Code() string {
	return f.code
}

// Format rounds to cents and renders the amount.
func (f *MoneyFormatter) Format(amount decimal.Decimal) string {
	cents := amount.Round(2).Shift(2).IntPart()
	return money.New(cents, f.code).Display()
}
