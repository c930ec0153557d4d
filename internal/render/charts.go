package render

import (
	"fjacquet/budget-report/internal/models"
)

// Base names of the three chart artifacts.
const (
	ChartCategory = "category_spending"
	ChartMonthly  = "monthly_spending"
	ChartHeatmap  = "category_month_heatmap"
)

// Bar is one labelled value of a bar chart.
type Bar struct {
	Label string
	Value float64
}

// BarChart is a titled series of bars.
type BarChart struct {
	Name   string
	Title  string
	XLabel string
	YLabel string
	Bars   []Bar
}

// Max returns the largest bar value, 0 when empty.
func (c BarChart) Max() float64 {
	var m float64
	for _, b := range c.Bars {
		if b.Value > m {
			m = b.Value
		}
	}
	return m
}

// Heatmap is a month by category grid.
type Heatmap struct {
	Name    string
	Title   string
	Rows    []string
	Columns []string
	Values  [][]float64
}

// Max returns the largest cell value, 0 when empty.
func (h Heatmap) Max() float64 {
	var m float64
	for _, row := range h.Values {
		for _, v := range row {
			if v > m {
				m = v
			}
		}
	}
	return m
}

// Charts is the full set of visualizations for one statement.
type Charts struct {
	Category BarChart
	Monthly  BarChart
	Heatmap  Heatmap
}

// BuildCharts derives the chart data from a summary. Values are rounded to
// cents.
func BuildCharts(s models.Summary, cfg Config) Charts {
	category := BarChart{
		Name:   ChartCategory,
		Title:  cfg.title("Spending by Category"),
		XLabel: "Amount",
		YLabel: "Category",
	}
	for _, c := range s.CategorySummary {
		category.Bars = append(category.Bars, Bar{Label: c.Category, Value: c.Amount.Round(2).InexactFloat64()})
	}

	monthly := BarChart{
		Name:   ChartMonthly,
		Title:  cfg.title("Monthly Spending"),
		XLabel: "Month",
		YLabel: "Amount",
	}
	for _, m := range s.MonthlySummary {
		monthly.Bars = append(monthly.Bars, Bar{Label: m.Month.String(), Value: m.Amount.Round(2).InexactFloat64()})
	}

	heatmap := Heatmap{
		Name:  ChartHeatmap,
		Title: cfg.title("Monthly Spending by Category"),
	}
	if s.Matrix != nil {
		heatmap.Columns = append(heatmap.Columns, s.Matrix.Categories...)
		for i, m := range s.Matrix.Months {
			heatmap.Rows = append(heatmap.Rows, m.String())
			row := make([]float64, len(s.Matrix.Cells[i]))
			for j, v := range s.Matrix.Cells[i] {
				row[j] = v.Round(2).InexactFloat64()
			}
			heatmap.Values = append(heatmap.Values, row)
		}
	}

	return Charts{Category: category, Monthly: monthly, Heatmap: heatmap}
}
