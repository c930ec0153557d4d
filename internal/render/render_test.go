package render

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"fjacquet/budget-report/internal/analysis"
	"fjacquet/budget-report/internal/fileutils"
	"fjacquet/budget-report/internal/logging"
	"fjacquet/budget-report/internal/models"

	"github.com/signintech/gopdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sampleCharts(t *testing.T, cfg Config) Charts {
	t.Helper()
	build := func(date, category, amount string) models.Transaction {
		return models.NewTransactionBuilder().WithDate(date).WithCategory(category).WithAmountFromString(amount).MustBuild()
	}
	summary := analysis.NewAggregator(3, logging.NewMockLogger()).Aggregate([]models.Transaction{
		build("2024-01-05", "Food", "-20"),
		build("2024-01-10", "Food", "-25"),
		build("2024-02-01", "Rent", "-500"),
		build("2024-02-02", "Salary", "1500"),
	})
	return BuildCharts(summary, cfg)
}

type stubSink struct {
	name  string
	err   error
	calls *[]string
}

func (s stubSink) Name() string { return s.name }

func (s stubSink) Render(_ context.Context, charts Charts) ([]Artifact, error) {
	*s.calls = append(*s.calls, s.name)
	if s.err != nil {
		return nil, s.err
	}
	return []Artifact{{Sink: s.name, Chart: charts.Category.Name}}, nil
}

func TestConfig_Validate(t *testing.T) {
	assert.NoError(t, DefaultConfig().Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero bar width", func(c *Config) { c.BarWidth = 0 }},
		{"short palette", func(c *Config) { c.Palette = []string{"#000000"} }},
		{"bad colour", func(c *Config) { c.Palette = []string{"#000000", "blue", "#FFFFFF"} }},
		{"unknown sink", func(c *Config) { c.Sinks = []string{"svg"} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestConfig_HasSink(t *testing.T) {
	cfg := Config{Sinks: []string{"Terminal", "xlsx"}}
	assert.True(t, cfg.HasSink(SinkTerminal))
	assert.True(t, cfg.HasSink(SinkXLSX))
	assert.False(t, cfg.HasSink(SinkPDF))
}

func TestBuildCharts(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TitlePrefix = "March:"
	charts := sampleCharts(t, cfg)

	assert.Equal(t, "March: Spending by Category", charts.Category.Title)
	require.Len(t, charts.Category.Bars, 2)
	assert.Equal(t, Bar{Label: "Rent", Value: 500}, charts.Category.Bars[0])
	assert.Equal(t, Bar{Label: "Food", Value: 45}, charts.Category.Bars[1])

	require.Len(t, charts.Monthly.Bars, 2)
	assert.Equal(t, "2024-01", charts.Monthly.Bars[0].Label)
	assert.Equal(t, 500.0, charts.Monthly.Max())

	assert.Equal(t, []string{"2024-01", "2024-02"}, charts.Heatmap.Rows)
	assert.Equal(t, []string{"Food", "Rent"}, charts.Heatmap.Columns)
	assert.Equal(t, [][]float64{{45, 0}, {0, 500}}, charts.Heatmap.Values)
}

func TestScale(t *testing.T) {
	p := DefaultPalette
	assert.Equal(t, "#FFFFCC", hexColour(scale(p, 0, 100)))
	assert.Equal(t, "#41B6C4", hexColour(scale(p, 50, 100)))
	assert.Equal(t, "#253494", hexColour(scale(p, 100, 100)))
	assert.Equal(t, "#FFFFCC", hexColour(scale(p, 10, 0)))
}

func TestParseHex(t *testing.T) {
	c, err := parseHex("41b6c4")
	require.NoError(t, err)
	r, g, b := c.RGB255()
	assert.Equal(t, []uint8{0x41, 0xB6, 0xC4}, []uint8{r, g, b})

	_, err = parseHex("#zzzzzz")
	assert.Error(t, err)
	_, err = parseHex("#fff")
	assert.Error(t, err)
}

func TestTerminalSink_Render(t *testing.T) {
	var out bytes.Buffer
	cfg := DefaultConfig()
	cfg.BarWidth = 10
	sink := NewTerminalSink(&out, cfg)

	artifacts, err := sink.Render(context.Background(), sampleCharts(t, cfg))
	require.NoError(t, err)
	require.Len(t, artifacts, 3)
	assert.Empty(t, artifacts[0].Path)

	text := out.String()
	assert.Contains(t, text, "Spending by Category")
	assert.Contains(t, text, "Monthly Spending by Category")
	assert.Contains(t, text, strings.Repeat("█", 10)+" 500.00")
	assert.Contains(t, text, "45.00")
	assert.Contains(t, text, "2024-02")
}

func TestTerminalSink_EmptyCharts(t *testing.T) {
	var out bytes.Buffer
	_, err := NewTerminalSink(&out, DefaultConfig()).Render(context.Background(), Charts{})
	require.NoError(t, err)
	assert.Equal(t, 3, strings.Count(out.String(), "(no data)"))
}

func TestXLSXSink_Render(t *testing.T) {
	cfg := DefaultConfig()
	cfg.OutputDir = filepath.Join(t.TempDir(), "charts")
	sink := NewXLSXSink(cfg, logging.NewMockLogger())

	artifacts, err := sink.Render(context.Background(), sampleCharts(t, cfg))
	require.NoError(t, err)
	require.Len(t, artifacts, 3)

	for _, a := range artifacts {
		assert.FileExists(t, a.Path)
	}
	assert.Equal(t, filepath.Join(cfg.OutputDir, "category_spending.xlsx"), artifacts[0].Path)
	assert.Equal(t, filepath.Join(cfg.OutputDir, "monthly_spending.xlsx"), artifacts[1].Path)
	assert.Equal(t, filepath.Join(cfg.OutputDir, "category_month_heatmap.xlsx"), artifacts[2].Path)

	f, err := excelize.OpenFile(artifacts[0].Path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()
	rows, err := f.GetRows("Spending by Category")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Rent", rows[1][0])

	heat, err := excelize.OpenFile(artifacts[2].Path)
	require.NoError(t, err)
	defer func() { _ = heat.Close() }()
	sheet := "Monthly Spending by Category"
	head, err := heat.GetRows(sheet)
	require.NoError(t, err)
	assert.Equal(t, []string{"Month", "Food", "Rent"}, head[0])
	raw, err := heat.GetCellValue(sheet, "B2", excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	assert.Equal(t, "45", raw)

	formats, err := heat.GetConditionalFormats(sheet)
	require.NoError(t, err)
	require.Contains(t, formats, "B2:C3")
	assert.Equal(t, "3_color_scale", formats["B2:C3"][0].Type)
}

func TestXLSXSink_EmptyCharts(t *testing.T) {
	cfg := DefaultConfig()
	cfg.OutputDir = t.TempDir()
	charts := BuildCharts(models.Summary{}, cfg)

	artifacts, err := NewXLSXSink(cfg, logging.NewMockLogger()).Render(context.Background(), charts)
	require.NoError(t, err)
	assert.Len(t, artifacts, 3)
}

func TestXLSXSheetErrorsPropagate(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	bars := BarChart{Title: "Spending by category", Bars: []Bar{{Label: "Food", Value: 45}}}
	err := fillBarSheet(f, "Missing", bars, DefaultPalette[1], excelize.Bar)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to set header")

	heat := Heatmap{Rows: []string{"2024-01"}, Columns: []string{"Food"}, Values: [][]float64{{45}}}
	err = fillHeatmapSheet(f, "Missing", heat, DefaultPalette)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to set header")
}

func TestPDFSink_RequiresFont(t *testing.T) {
	cfg := DefaultConfig()
	cfg.OutputDir = t.TempDir()

	_, err := NewPDFSink(cfg, logging.NewMockLogger()).Render(context.Background(), sampleCharts(t, cfg))
	assert.True(t, errors.Is(err, ErrFontRequired))

	cfg.FontPath = filepath.Join(cfg.OutputDir, "missing.ttf")
	_, err = NewPDFSink(cfg, logging.NewMockLogger()).Render(context.Background(), sampleCharts(t, cfg))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "font file not found")
	assert.NoFileExists(t, filepath.Join(cfg.OutputDir, PDFFile))
}

func testFont(t *testing.T) string {
	t.Helper()
	candidates := []string{
		"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
		"/usr/share/fonts/TTF/DejaVuSans.ttf",
		"/usr/share/fonts/dejavu/DejaVuSans.ttf",
		"/Library/Fonts/Arial.ttf",
	}
	for _, c := range candidates {
		if fileutils.FileExists(c) {
			return c
		}
	}
	t.Skip("no TTF font available")
	return ""
}

func TestPDFSink_Render(t *testing.T) {
	cfg := DefaultConfig()
	cfg.OutputDir = t.TempDir()
	cfg.FontPath = testFont(t)

	artifacts, err := NewPDFSink(cfg, logging.NewMockLogger()).Render(context.Background(), sampleCharts(t, cfg))
	require.NoError(t, err)
	require.Len(t, artifacts, 3)
	assert.FileExists(t, filepath.Join(cfg.OutputDir, PDFFile))
}

func TestPageSpans(t *testing.T) {
	assert.Nil(t, pageSpans(0, 34))
	assert.Equal(t, [][2]int{{0, 3}}, pageSpans(3, 34))
	assert.Equal(t, [][2]int{{0, 34}, {34, 40}}, pageSpans(40, 34))
	assert.Equal(t, [][2]int{{0, 34}, {34, 68}}, pageSpans(68, 34))
}

func TestPDFSink_HeatmapSpansPages(t *testing.T) {
	cfg := DefaultConfig()
	cfg.FontPath = testFont(t)

	h := Heatmap{Title: "Monthly spending by category", Columns: []string{"Food", "Rent"}}
	for i := range 40 {
		h.Rows = append(h.Rows, fmt.Sprintf("%04d-%02d", 2020+i/12, i%12+1))
		h.Values = append(h.Values, []float64{float64(i), 500})
	}

	pdf := &gopdf.GoPdf{}
	pdf.Start(gopdf.Config{PageSize: *gopdf.PageSizeA4})
	require.NoError(t, pdf.AddTTFFont(pdfFont, cfg.FontPath))

	sink := NewPDFSink(cfg, logging.NewMockLogger())
	require.NoError(t, sink.heatmapPage(pdf, h))
	assert.Equal(t, 2, pdf.GetNumberOfPages(), "40 months need a continuation page")
}

func TestMultiSink(t *testing.T) {
	var calls []string
	logger := logging.NewMockLogger()
	multi := NewMultiSink(logger,
		stubSink{name: "a", calls: &calls},
		stubSink{name: "b", calls: &calls},
	)
	assert.Equal(t, 2, multi.Len())

	artifacts, err := multi.Render(context.Background(), Charts{Category: BarChart{Name: ChartCategory}})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, calls)
	require.Len(t, artifacts, 2)
	assert.Equal(t, "b", artifacts[1].Sink)
}

func TestMultiSink_StopsOnError(t *testing.T) {
	var calls []string
	boom := errors.New("boom")
	multi := NewMultiSink(logging.NewMockLogger(),
		stubSink{name: "a", calls: &calls},
		stubSink{name: "b", err: boom, calls: &calls},
		stubSink{name: "c", calls: &calls},
	)

	artifacts, err := multi.Render(context.Background(), Charts{})
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "b sink")
	assert.Equal(t, []string{"a", "b"}, calls)
	assert.Len(t, artifacts, 1)
}
