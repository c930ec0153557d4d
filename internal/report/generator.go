// Package report formats statement summaries as text, JSON or YAML.
package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"fjacquet/budget-report/internal/dateutils"
	"fjacquet/budget-report/internal/logging"
	"fjacquet/budget-report/internal/models"

	"gopkg.in/yaml.v3"
)

// Supported output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Formats lists every supported output format.
var Formats = []string{FormatText, FormatJSON, FormatYAML}

// ReportGenerator provides functionality to generate statement reports in various formats.
type ReportGenerator struct {
	logger logging.Logger
	money  *MoneyFormatter
}

// NewReportGenerator creates a new instance of ReportGenerator.
func NewReportGenerator(logger logging.Logger, money *MoneyFormatter) *ReportGenerator {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	if money == nil {
		money = &MoneyFormatter{code: DefaultCurrency}
	}
	return &ReportGenerator{
		logger: logger.WithField(logging.FieldComponent, "ReportGenerator"),
		money:  money,
	}
}

// GenerateReport renders doc in the given format. An empty format means text.
func (g *ReportGenerator) GenerateReport(doc *Document, format string) ([]byte, error) {
	if doc == nil {
		return nil, fmt.Errorf("cannot generate report from nil document")
	}
	switch strings.ToLower(format) {
	case FormatText, "":
		return g.generateTextReport(doc), nil
	case FormatJSON:
		return g.generateJSONReport(doc)
	case FormatYAML, "yml":
		return g.generateYAMLReport(doc)
	default:
		return nil, fmt.Errorf("unsupported report format: %s", format)
	}
}

// generateJSONReport generates a report in JSON format.
func (g *ReportGenerator) generateJSONReport(doc *Document) ([]byte, error) {
	out, err := json.MarshalIndent(doc.rounded(), "", "  ")
	if err != nil {
		g.logger.WithError(err).Error("Failed to marshal JSON report")
		return nil, fmt.Errorf("failed to marshal JSON report: %w", err)
	}
	return append(out, '\n'), nil
}

// generateYAMLReport generates a report in YAML format.
func (g *ReportGenerator) generateYAMLReport(doc *Document) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc.rounded()); err != nil {
		g.logger.WithError(err).Error("Failed to marshal YAML report")
		return nil, fmt.Errorf("failed to marshal YAML report: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to marshal YAML report: %w", err)
	}
	return buf.Bytes(), nil
}

// generateTextReport prints totals, breakdowns, spikes and the closing
// summary, in that order.
func (g *ReportGenerator) generateTextReport(doc *Document) []byte {
	s := doc.Summary
	var b strings.Builder

	fmt.Fprintf(&b, "Total expenses: %s\n", g.money.Format(s.TotalExpenses))
	fmt.Fprintf(&b, "Total income: %s\n", g.money.Format(s.TotalIncome))

	b.WriteString("\nSpending by Category:\n")
	if len(s.CategorySummary) == 0 {
		b.WriteString("  (no expenses)\n")
	}
	width := labelWidth(s.CategorySummary)
	for _, c := range s.CategorySummary {
		fmt.Fprintf(&b, "  %-*s  %s\n", width, c.Category, g.money.Format(c.Amount))
	}

	b.WriteString("\nMonthly Spending:\n")
	if len(s.MonthlySummary) == 0 {
		b.WriteString("  (no expenses)\n")
	}
	for _, m := range s.MonthlySummary {
		fmt.Fprintf(&b, "  %s  %s\n", m.Month, g.money.Format(m.Amount))
	}

	b.WriteString("\nNet by Month:\n")
	if len(doc.NetByMonth) == 0 {
		b.WriteString("  (no transactions)\n")
	}
	for _, m := range doc.NetByMonth {
		fmt.Fprintf(&b, "  %s  %s\n", m.Month, g.money.Format(m.Amount))
	}

	b.WriteString("\nUnusually high transactions:\n")
	if len(doc.Spikes) == 0 {
		b.WriteString("  (none)\n")
	}
	for _, sp := range doc.Spikes {
		line := fmt.Sprintf("  %s  %s  %s", dateutils.ToISODate(sp.Date), sp.Category, g.money.Format(sp.Magnitude))
		if sp.Name != "" {
			line += "  " + sp.Name
		}
		b.WriteString(line + "\n")
	}

	b.WriteString("\nSummary:\n\n")
	fmt.Fprintf(&b, "- Total Income: %s\n", g.money.Format(s.TotalIncome))
	fmt.Fprintf(&b, "- Total Expenses: %s\n", g.money.Format(s.TotalExpenses))
	fmt.Fprintf(&b, "- Balance: %s\n", g.money.Format(s.Balance))
	fmt.Fprintf(&b, "- Top %d Spending Categories: %s\n", len(s.TopCategories), joinCategories(s.TopCategories))
	if s.HasPeak {
		fmt.Fprintf(&b, "- Month with highest spending: %s (%s)\n", s.PeakMonth.Month, g.money.Format(s.PeakMonth.Amount))
	} else {
		b.WriteString("- Month with highest spending: n/a\n")
	}
	fmt.Fprintf(&b, "- Suggested saving areas: %s\n", joinCategories(s.TopAverageCategories))
	if doc.RowsIn != doc.RowsOut {
		fmt.Fprintf(&b, "- Rows skipped: %d of %d\n", doc.RowsIn-doc.RowsOut, doc.RowsIn)
	}

	return []byte(b.String())
}

func labelWidth(totals []models.CategoryTotal) int {
	width := 0
	for _, t := range totals {
		if n := len([]rune(t.Category)); n > width {
			width = n
		}
	}
	return width
}

func joinCategories(totals []models.CategoryTotal) string {
	if len(totals) == 0 {
		return "none"
	}
	names := make([]string, len(totals))
	for i, t := range totals {
		names[i] = t.Category
	}
	return strings.Join(names, ", ")
}
