package analysis

import (
	"testing"

	"fjacquet/budget-report/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignedHelpers(t *testing.T) {
	txs := []models.Transaction{
		tx("2024-01-01", "Salary", "1000"),
		tx("2024-01-02", "Food", "-20"),
		tx("2024-02-02", "Food", "-30"),
		tx("2024-02-03", "Rent", "-500"),
	}

	assert.Equal(t, "450", TotalSpent(txs).String())

	byCategory := NetByCategory(txs)
	require.Len(t, byCategory, 3)
	assert.Equal(t, []string{"Salary", "Food", "Rent"}, names(byCategory))
	assert.Equal(t, "-50", byCategory[1].Amount.String())

	byMonth := NetByMonth(txs)
	require.Len(t, byMonth, 2)
	assert.Equal(t, "980", byMonth[0].Amount.String())
	assert.Equal(t, "-530", byMonth[1].Amount.String())
}

func TestExpenses(t *testing.T) {
	out := Expenses([]models.Transaction{
		tx("2024-01-01", "Salary", "1000"),
		tx("2024-01-02", "Food", "-20"),
		tx("2024-01-03", "Zero", "0"),
	})
	require.Len(t, out, 1)
	assert.Equal(t, "Food", out[0].Category)
}
