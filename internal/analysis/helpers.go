package analysis

import (
	"fjacquet/budget-report/internal/models"

	"github.com/shopspring/decimal"
)

// The helpers below work on signed amounts over every transaction, income
// included. Use the Aggregator for expense-only figures.

// TotalSpent returns the signed sum of all amounts.
func TotalSpent(txs []models.Transaction) decimal.Decimal {
	sum := decimal.Zero
	for _, tx := range txs {
		sum = sum.Add(tx.Amount)
	}
	return sum
}

// NetByCategory sums signed amounts per category, largest first.
func NetByCategory(txs []models.Transaction) []models.CategoryTotal {
	g := groupByCategory(txs, func(tx models.Transaction) decimal.Decimal { return tx.Amount })
	out := make([]models.CategoryTotal, 0, len(g.order))
	for _, c := range g.order {
		out = append(out, models.CategoryTotal{Category: c, Amount: g.sums[c]})
	}
	sortDescending(out)
	return out
}

// NetByMonth sums signed amounts per month, chronologically.
func NetByMonth(txs []models.Transaction) []models.MonthTotal {
	return sumByMonth(txs, func(tx models.Transaction) decimal.Decimal { return tx.Amount })
}
