package common

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"fjacquet/budget-report/internal/config"
	"fjacquet/budget-report/internal/container"
	"fjacquet/budget-report/internal/logging"
	"fjacquet/budget-report/internal/parsererror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const statement = `Date,Name,Category,Amount
01/01/2024,Salary,Income,1000
02/01/2024,Tesco,Food,-20
03/01/2024,Tesco,Food,-20
04/01/2024,Tesco,Food,-20
05/01/2024,Tesco,Food,-20
06/01/2024,Tesco,Food,-20
07/02/2024,Feast,Food,-200
08/02/2024,Rent,Housing,-500
not a date,Oops,Food,-5
`

func newTestContainer(t *testing.T, sinks ...string) *container.Container {
	t.Helper()
	cfg := &config.Config{}
	cfg.Log.Level = "info"
	cfg.Log.Format = "text"
	cfg.CSV.Delimiter = ","
	cfg.Normalize.DefaultCategory = "General"
	cfg.Anomaly.Sigma = 2
	cfg.Report.Format = "text"
	cfg.Report.Currency = "GBP"
	cfg.Report.TopN = 3
	cfg.Render.Enabled = len(sinks) > 0
	cfg.Render.OutputDir = t.TempDir()
	cfg.Render.BarWidth = 20
	cfg.Render.Sinks = sinks

	c, err := container.NewContainer(cfg, logging.NewMockLogger())
	require.NoError(t, err)
	return c
}

func writeStatement(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "statement.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestAnalyze(t *testing.T) {
	c := newTestContainer(t)
	out, err := Analyze(context.Background(), c, writeStatement(t, statement))
	require.NoError(t, err)

	assert.Equal(t, 9, out.Normalized.RowsIn)
	assert.Equal(t, 8, out.Normalized.RowsOut)
	assert.Equal(t, "800", out.Summary.TotalExpenses.String())
	assert.Equal(t, "1000", out.Summary.TotalIncome.String())
	assert.Equal(t, "200", out.Summary.Balance.String())
	require.True(t, out.Summary.HasPeak)
	assert.Equal(t, "2024-02", out.Summary.PeakMonth.Month.String())

	require.Len(t, out.Detection.Spikes, 1)
	assert.Equal(t, "Feast", out.Detection.Spikes[0].Name)
	assert.Equal(t, 6, out.Stats["Food"].Count)
}

func TestAnalyze_EmptyFieldRowsCountAsDropped(t *testing.T) {
	c := newTestContainer(t)
	out, err := Analyze(context.Background(), c, writeStatement(t, statement+",,,\n\n"))
	require.NoError(t, err)

	assert.Equal(t, 10, out.Normalized.RowsIn)
	assert.Equal(t, 8, out.Normalized.RowsOut)
	assert.Equal(t, 2, out.Normalized.Dropped())
}

func TestAnalyze_Deterministic(t *testing.T) {
	c := newTestContainer(t)
	path := writeStatement(t, statement)

	first, err := Analyze(context.Background(), c, path)
	require.NoError(t, err)
	second, err := Analyze(context.Background(), c, path)
	require.NoError(t, err)

	assert.Equal(t, first.Summary, second.Summary)
	assert.Equal(t, first.Detection, second.Detection)
	require.Len(t, second.Normalized.Transactions, len(first.Normalized.Transactions))
	for i, tx := range first.Normalized.Transactions {
		assert.Equal(t, tx.ID, second.Normalized.Transactions[i].ID)
	}
}

func TestAnalyze_Errors(t *testing.T) {
	c := newTestContainer(t)

	_, err := Analyze(context.Background(), c, filepath.Join(t.TempDir(), "missing.csv"))
	require.Error(t, err)
	assert.ErrorIs(t, err, parsererror.ErrLoad)

	_, err = Analyze(context.Background(), c, writeStatement(t, "Date,Description\n01/01/2024,x\n"))
	require.Error(t, err)
	assert.ErrorIs(t, err, parsererror.ErrSchema)
}

func TestWriteReport(t *testing.T) {
	c := newTestContainer(t)
	out, err := Analyze(context.Background(), c, writeStatement(t, statement))
	require.NoError(t, err)

	var text bytes.Buffer
	require.NoError(t, WriteReport(c, out, "text", &text))
	assert.Contains(t, text.String(), "Total expenses: £800.00")
	assert.Contains(t, text.String(), "- Balance: £200.00")
	assert.Contains(t, text.String(), "- Month with highest spending: 2024-02 (£700.00)")
	assert.Contains(t, text.String(), "Feast")
	assert.Contains(t, text.String(), "- Rows skipped: 1 of 9")
	assert.Contains(t, text.String(), "Net by Month:")
	assert.Contains(t, text.String(), "2024-01  £900.00")
	assert.Contains(t, text.String(), "2024-02  -£700.00")

	var js bytes.Buffer
	require.NoError(t, WriteReport(c, out, "json", &js))
	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(js.Bytes(), &decoded))
	assert.Equal(t, "GBP", decoded["currency"])
	assert.Equal(t, "single-amount", decoded["layout"])
	net := decoded["net_by_month"].([]interface{})
	require.Len(t, net, 2)
	assert.Equal(t, "900", net[0].(map[string]interface{})["amount"])

	err = WriteReport(c, out, "html", &bytes.Buffer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported report format")
}

func TestRenderCharts(t *testing.T) {
	c := newTestContainer(t)
	out, err := Analyze(context.Background(), c, writeStatement(t, statement))
	require.NoError(t, err)

	artifacts, err := RenderCharts(context.Background(), c, out, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Empty(t, artifacts)

	c = newTestContainer(t, "terminal", "xlsx")
	var term bytes.Buffer
	artifacts, err = RenderCharts(context.Background(), c, out, &term)
	require.NoError(t, err)
	assert.Contains(t, term.String(), "Spending by Category")

	var files []string
	for _, a := range artifacts {
		if a.Path != "" {
			files = append(files, filepath.Base(a.Path))
			assert.FileExists(t, a.Path)
		}
	}
	assert.ElementsMatch(t, []string{
		"category_spending.xlsx",
		"monthly_spending.xlsx",
		"category_month_heatmap.xlsx",
	}, files)
}

func TestResolveInput(t *testing.T) {
	got, err := ResolveInput("a.csv", nil)
	require.NoError(t, err)
	assert.Equal(t, "a.csv", got)

	got, err = ResolveInput("", []string{"b.csv"})
	require.NoError(t, err)
	assert.Equal(t, "b.csv", got)

	_, err = ResolveInput("a.csv", []string{"b.csv"})
	assert.Error(t, err)

	_, err = ResolveInput("", nil)
	assert.Error(t, err)
}
