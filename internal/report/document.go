package report

import (
	"math"

	"fjacquet/budget-report/internal/models"

	"github.com/shopspring/decimal"
)

// Document is everything the formatter prints for one statement.
type Document struct {
	Source   string                      `json:"source" yaml:"source"`
	Layout   string                      `json:"layout" yaml:"layout"`
	RowsIn   int                         `json:"rows_in" yaml:"rows_in"`
	RowsOut  int                         `json:"rows_out" yaml:"rows_out"`
	Currency string                      `json:"currency" yaml:"currency"`
	Sigma    float64                     `json:"sigma" yaml:"sigma"`
	Summary  models.Summary              `json:"summary" yaml:"summary"`
	Spikes   []models.FlaggedTransaction `json:"spikes" yaml:"spikes"`

	// Signed sums over every transaction, income included.
	NetByCategory []models.CategoryTotal `json:"net_by_category" yaml:"net_by_category"`
	NetByMonth    []models.MonthTotal    `json:"net_by_month" yaml:"net_by_month"`
}

func round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

func roundMonths(totals []models.MonthTotal) []models.MonthTotal {
	out := make([]models.MonthTotal, len(totals))
	for i, m := range totals {
		out[i] = models.MonthTotal{Month: m.Month, Amount: round2(m.Amount)}
	}
	return out
}

func roundTotals(totals []models.CategoryTotal) []models.CategoryTotal {
	out := make([]models.CategoryTotal, len(totals))
	for i, t := range totals {
		out[i] = models.CategoryTotal{Category: t.Category, Amount: round2(t.Amount)}
	}
	return out
}

// rounded returns a copy of the document with every amount rounded to two
// decimals, for machine-readable output.
func (d Document) rounded() Document {
	s := d.Summary
	out := d
	out.Summary.TotalExpenses = round2(s.TotalExpenses)
	out.Summary.TotalIncome = round2(s.TotalIncome)
	out.Summary.Balance = round2(s.Balance)
	out.Summary.CategorySummary = roundTotals(s.CategorySummary)
	out.Summary.TopCategories = roundTotals(s.TopCategories)
	out.Summary.TopAverageCategories = roundTotals(s.TopAverageCategories)
	out.Summary.PeakMonth.Amount = round2(s.PeakMonth.Amount)

	out.Summary.MonthlySummary = roundMonths(s.MonthlySummary)
	out.NetByCategory = roundTotals(d.NetByCategory)
	out.NetByMonth = roundMonths(d.NetByMonth)

	if s.Matrix != nil {
		matrix := *s.Matrix
		matrix.Cells = make([][]decimal.Decimal, len(s.Matrix.Cells))
		for i, row := range s.Matrix.Cells {
			matrix.Cells[i] = make([]decimal.Decimal, len(row))
			for j, v := range row {
				matrix.Cells[i][j] = round2(v)
			}
		}
		out.Summary.Matrix = &matrix
	}

	out.Spikes = make([]models.FlaggedTransaction, len(d.Spikes))
	for i, sp := range d.Spikes {
		sp.Magnitude = round2(sp.Magnitude)
		sp.Threshold = math.Round(sp.Threshold*100) / 100
		out.Spikes[i] = sp
	}
	return out
}
