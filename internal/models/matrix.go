package models

import (
	"sort"

	"github.com/shopspring/decimal"
)

// CategoryMonthMatrix cross-tabulates expenses by month (rows, chronological)
// and category (columns, alphabetical). Absent combinations read as zero.
type CategoryMonthMatrix struct {
	Months     []Month             `json:"months" yaml:"months"`
	Categories []string            `json:"categories" yaml:"categories"`
	Cells      [][]decimal.Decimal `json:"cells" yaml:"cells"`
}

// NewCategoryMonthMatrix builds a zero-filled matrix. Months are sorted
// chronologically and categories alphabetically; duplicates are ignored.
func NewCategoryMonthMatrix(months []Month, categories []string) *CategoryMonthMatrix {
	m := &CategoryMonthMatrix{
		Months:     uniqueMonths(months),
		Categories: uniqueStrings(categories),
	}
	m.Cells = make([][]decimal.Decimal, len(m.Months))
	for i := range m.Cells {
		row := make([]decimal.Decimal, len(m.Categories))
		for j := range row {
			row[j] = decimal.Zero
		}
		m.Cells[i] = row
	}
	return m
}

func (m *CategoryMonthMatrix) indexOf(month Month, category string) (int, int, bool) {
	i := sort.Search(len(m.Months), func(i int) bool { return !m.Months[i].Before(month) })
	if i >= len(m.Months) || m.Months[i] != month {
		return 0, 0, false
	}
	j := sort.SearchStrings(m.Categories, category)
	if j >= len(m.Categories) || m.Categories[j] != category {
		return 0, 0, false
	}
	return i, j, true
}

// Get returns the cell for (month, category), zero when absent.
func (m *CategoryMonthMatrix) Get(month Month, category string) decimal.Decimal {
	i, j, ok := m.indexOf(month, category)
	if !ok {
		return decimal.Zero
	}
	return m.Cells[i][j]
}

// Add accumulates amount into (month, category). It reports false when the
// pair is outside the matrix.
func (m *CategoryMonthMatrix) Add(month Month, category string, amount decimal.Decimal) bool {
	i, j, ok := m.indexOf(month, category)
	if !ok {
		return false
	}
	m.Cells[i][j] = m.Cells[i][j].Add(amount)
	return true
}

// Total sums every cell.
func (m *CategoryMonthMatrix) Total() decimal.Decimal {
	sum := decimal.Zero
	for _, row := range m.Cells {
		for _, v := range row {
			sum = sum.Add(v)
		}
	}
	return sum
}

// Max returns the largest cell value, zero for an empty matrix.
func (m *CategoryMonthMatrix) Max() decimal.Decimal {
	largest := decimal.Zero
	for _, row := range m.Cells {
		for _, v := range row {
			if v.GreaterThan(largest) {
				largest = v
			}
		}
	}
	return largest
}

func uniqueMonths(months []Month) []Month {
	seen := make(map[Month]bool, len(months))
	out := make([]Month, 0, len(months))
	for _, mo := range months {
		if !seen[mo] {
			seen[mo] = true
			out = append(out, mo)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}

func uniqueStrings(values []string) []string {
	seen := make(map[string]bool, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	sort.Strings(out)
	return out
}
