// Package analysis computes the spending and income aggregates of a
// normalized statement.
package analysis

import (
	"sort"

	"fjacquet/budget-report/internal/logging"
	"fjacquet/budget-report/internal/models"

	"github.com/shopspring/decimal"
)

// DefaultTopN is the length of the category rankings.
const DefaultTopN = 3

// Aggregator builds a models.Summary from canonical transactions.
type Aggregator struct {
	topN   int
	logger logging.Logger
}

// NewAggregator creates an Aggregator whose rankings hold topN entries.
// A non-positive topN means DefaultTopN.
func NewAggregator(topN int, logger logging.Logger) *Aggregator {
	if topN <= 0 {
		topN = DefaultTopN
	}
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Aggregator{topN: topN, logger: logger}
}

// Aggregate computes every summary metric. Expense figures are reported as
// positive magnitudes; income is summed as is.
func (a *Aggregator) Aggregate(txs []models.Transaction) models.Summary {
	var s models.Summary
	s.TotalExpenses = decimal.Zero
	s.TotalIncome = decimal.Zero

	for _, tx := range txs {
		s.Period = s.Period.Extend(tx.Date)
		switch {
		case tx.IsExpense():
			s.TotalExpenses = s.TotalExpenses.Add(tx.Magnitude())
			s.ExpenseCount++
		case tx.IsIncome():
			s.TotalIncome = s.TotalIncome.Add(tx.Amount)
			s.IncomeCount++
		}
	}
	s.TransactionCount = len(txs)
	s.Balance = s.TotalIncome.Sub(s.TotalExpenses)

	expenses := Expenses(txs)
	s.CategorySummary = CategorySummary(expenses)
	s.MonthlySummary = MonthlySummary(expenses)
	s.Matrix = CategoryMonthMatrix(expenses)
	s.PeakMonth, s.HasPeak = PeakMonth(s.MonthlySummary)
	s.TopCategories = top(s.CategorySummary, a.topN)
	s.TopAverageCategories = top(CategoryAverages(expenses), a.topN)

	a.logger.Info("Aggregated transactions",
		logging.F(logging.FieldCount, s.TransactionCount),
		logging.F("expenses", s.ExpenseCount),
		logging.F("incomes", s.IncomeCount),
		logging.F("categories", len(s.CategorySummary)),
		logging.F("months", len(s.MonthlySummary)),
		logging.F("net", TotalSpent(txs).StringFixed(2)))
	return s
}

// Expenses keeps the transactions with a negative amount, in input order.
func Expenses(txs []models.Transaction) []models.Transaction {
	out := make([]models.Transaction, 0, len(txs))
	for _, tx := range txs {
		if tx.IsExpense() {
			out = append(out, tx)
		}
	}
	return out
}

// categoryGroups accumulates per-category values in first-encountered order.
type categoryGroups struct {
	order  []string
	sums   map[string]decimal.Decimal
	counts map[string]int
}

func groupByCategory(txs []models.Transaction, value func(models.Transaction) decimal.Decimal) *categoryGroups {
	g := &categoryGroups{
		sums:   make(map[string]decimal.Decimal),
		counts: make(map[string]int),
	}
	for _, tx := range txs {
		if _, ok := g.sums[tx.Category]; !ok {
			g.order = append(g.order, tx.Category)
			g.sums[tx.Category] = decimal.Zero
		}
		g.sums[tx.Category] = g.sums[tx.Category].Add(value(tx))
		g.counts[tx.Category]++
	}
	return g
}

// sortDescending orders totals by amount, largest first; equal amounts keep
// their input order.
func sortDescending(totals []models.CategoryTotal) {
	sort.SliceStable(totals, func(i, j int) bool {
		return totals[i].Amount.GreaterThan(totals[j].Amount)
	})
}

// CategorySummary sums expense magnitudes per category, largest first.
func CategorySummary(expenses []models.Transaction) []models.CategoryTotal {
	g := groupByCategory(expenses, models.Transaction.Magnitude)
	out := make([]models.CategoryTotal, 0, len(g.order))
	for _, c := range g.order {
		out = append(out, models.CategoryTotal{Category: c, Amount: g.sums[c]})
	}
	sortDescending(out)
	return out
}

// CategoryAverages ranks categories by mean expense magnitude, largest first.
func CategoryAverages(expenses []models.Transaction) []models.CategoryTotal {
	g := groupByCategory(expenses, models.Transaction.Magnitude)
	out := make([]models.CategoryTotal, 0, len(g.order))
	for _, c := range g.order {
		mean := g.sums[c].Div(decimal.NewFromInt(int64(g.counts[c])))
		out = append(out, models.CategoryTotal{Category: c, Amount: mean})
	}
	sortDescending(out)
	return out
}

// MonthlySummary sums expense magnitudes per month, chronologically.
func MonthlySummary(expenses []models.Transaction) []models.MonthTotal {
	return sumByMonth(expenses, models.Transaction.Magnitude)
}

func sumByMonth(txs []models.Transaction, value func(models.Transaction) decimal.Decimal) []models.MonthTotal {
	sums := make(map[models.Month]decimal.Decimal)
	for _, tx := range txs {
		m := models.MonthOf(tx.Date)
		if cur, ok := sums[m]; ok {
			sums[m] = cur.Add(value(tx))
		} else {
			sums[m] = value(tx)
		}
	}
	out := make([]models.MonthTotal, 0, len(sums))
	for m, v := range sums {
		out = append(out, models.MonthTotal{Month: m, Amount: v})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month.Before(out[j].Month) })
	return out
}

// CategoryMonthMatrix cross-tabulates expense magnitudes by month and
// category.
func CategoryMonthMatrix(expenses []models.Transaction) *models.CategoryMonthMatrix {
	months := make([]models.Month, 0, len(expenses))
	categories := make([]string, 0, len(expenses))
	for _, tx := range expenses {
		months = append(months, models.MonthOf(tx.Date))
		categories = append(categories, tx.Category)
	}
	matrix := models.NewCategoryMonthMatrix(months, categories)
	for _, tx := range expenses {
		matrix.Add(models.MonthOf(tx.Date), tx.Category, tx.Magnitude())
	}
	return matrix
}

// PeakMonth returns the month with the highest total. Ties go to the earliest
// month. ok is false when monthly is empty.
func PeakMonth(monthly []models.MonthTotal) (peak models.MonthTotal, ok bool) {
	for i, m := range monthly {
		if i == 0 || m.Amount.GreaterThan(peak.Amount) {
			peak = m
			ok = true
		}
	}
	return peak, ok
}

func top(totals []models.CategoryTotal, n int) []models.CategoryTotal {
	if len(totals) > n {
		totals = totals[:n]
	}
	out := make([]models.CategoryTotal, len(totals))
	copy(out, totals)
	return out
}
