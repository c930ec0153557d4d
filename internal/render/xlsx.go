package render

import (
	"context"
	"fmt"

	"fjacquet/budget-report/internal/fileutils"
	"fjacquet/budget-report/internal/logging"

	"github.com/xuri/excelize/v2"
)

// numFmtTwoDecimals is the built-in "0.00" number format.
const numFmtTwoDecimals = 2

// XLSXSink writes one workbook per chart into Config.OutputDir.
type XLSXSink struct {
	cfg    Config
	logger logging.Logger
}

// NewXLSXSink creates an XLSXSink.
func NewXLSXSink(cfg Config, logger logging.Logger) *XLSXSink {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &XLSXSink{cfg: cfg, logger: logger}
}

// Name implements Sink.
func (x *XLSXSink) Name() string {
	return SinkXLSX
}

// Render implements Sink.
func (x *XLSXSink) Render(ctx context.Context, charts Charts) ([]Artifact, error) {
	if err := fileutils.EnsureDirectoryExists(x.cfg.OutputDir); err != nil {
		return nil, err
	}

	jobs := []struct {
		name  string
		write func(path string) error
	}{
		{charts.Category.Name, func(path string) error { return x.writeBarChart(path, charts.Category, excelize.Bar) }},
		{charts.Monthly.Name, func(path string) error { return x.writeBarChart(path, charts.Monthly, excelize.Col) }},
		{charts.Heatmap.Name, func(path string) error { return x.writeHeatmap(path, charts.Heatmap) }},
	}

	var artifacts []Artifact
	for _, job := range jobs {
		if err := ctx.Err(); err != nil {
			return artifacts, err
		}
		path := fileutils.ArtifactPath(x.cfg.OutputDir, job.name+".xlsx")
		if err := job.write(path); err != nil {
			return artifacts, err
		}
		artifacts = append(artifacts, Artifact{Sink: SinkXLSX, Chart: job.name, Path: path})
	}

	x.logger.Info("Wrote chart workbooks", logging.F(logging.FieldCount, len(artifacts)))
	return artifacts, nil
}

// sheetName trims a chart title to the 31 characters a sheet name allows.
func sheetName(title string) string {
	r := []rune(title)
	if len(r) > 31 {
		r = r[:31]
	}
	return string(r)
}

func cellName(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}

func (x *XLSXSink) newWorkbook(title string) (*excelize.File, string, error) {
	f := excelize.NewFile()
	sheet := sheetName(title)
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		_ = f.Close()
		return nil, "", fmt.Errorf("failed to name sheet: %w", err)
	}
	return f, sheet, nil
}

func (x *XLSXSink) save(f *excelize.File, path string) error {
	defer func() {
		if err := f.Close(); err != nil {
			x.logger.WithError(err).Warn("Failed to close workbook")
		}
	}()
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	return nil
}

func (x *XLSXSink) writeBarChart(path string, c BarChart, kind excelize.ChartType) error {
	f, sheet, err := x.newWorkbook(c.Title)
	if err != nil {
		return err
	}
	if err := fillBarSheet(f, sheet, c, x.cfg.palette()[1], kind); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return x.save(f, path)
}

func fillBarSheet(f *excelize.File, sheet string, c BarChart, colour string, kind excelize.ChartType) error {
	valueStyle, err := f.NewStyle(&excelize.Style{NumFmt: numFmtTwoDecimals})
	if err != nil {
		return fmt.Errorf("failed to create style: %w", err)
	}

	if err := f.SetCellValue(sheet, "A1", c.YLabel); err != nil {
		return fmt.Errorf("failed to set header: %w", err)
	}
	if err := f.SetCellValue(sheet, "B1", c.XLabel); err != nil {
		return fmt.Errorf("failed to set header: %w", err)
	}
	for i, bar := range c.Bars {
		row := i + 2
		if err := f.SetCellValue(sheet, cellName(1, row), bar.Label); err != nil {
			return fmt.Errorf("failed to set label for %s: %w", bar.Label, err)
		}
		if err := f.SetCellValue(sheet, cellName(2, row), bar.Value); err != nil {
			return fmt.Errorf("failed to set value for %s: %w", bar.Label, err)
		}
	}
	if err := f.SetColWidth(sheet, "A", "A", 20); err != nil {
		return fmt.Errorf("failed to set column width: %w", err)
	}
	if err := f.SetColWidth(sheet, "B", "B", 14); err != nil {
		return fmt.Errorf("failed to set column width: %w", err)
	}

	n := len(c.Bars)
	if n == 0 {
		return nil
	}
	last := n + 1
	if err := f.SetCellStyle(sheet, "B2", cellName(2, last), valueStyle); err != nil {
		return fmt.Errorf("failed to style values: %w", err)
	}
	ref := fmt.Sprintf("'%s'!", sheet)
	chart := &excelize.Chart{
		Type: kind,
		Series: []excelize.ChartSeries{{
			Name:       ref + "$B$1",
			Categories: fmt.Sprintf("%s$A$2:$A$%d", ref, last),
			Values:     fmt.Sprintf("%s$B$2:$B$%d", ref, last),
			Fill:       excelize.Fill{Type: "pattern", Color: []string{colour}, Pattern: 1},
		}},
		Title:  []excelize.RichTextRun{{Text: c.Title}},
		Legend: excelize.ChartLegend{Position: "none"},
		XAxis:  excelize.ChartAxis{Title: []excelize.RichTextRun{{Text: c.XLabel}}},
		YAxis:  excelize.ChartAxis{Title: []excelize.RichTextRun{{Text: c.YLabel}}},
	}
	if err := f.AddChart(sheet, "D2", chart); err != nil {
		return fmt.Errorf("failed to add chart: %w", err)
	}
	return nil
}

func (x *XLSXSink) writeHeatmap(path string, h Heatmap) error {
	f, sheet, err := x.newWorkbook(h.Title)
	if err != nil {
		return err
	}
	if err := fillHeatmapSheet(f, sheet, h, x.cfg.palette()); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return x.save(f, path)
}

func fillHeatmapSheet(f *excelize.File, sheet string, h Heatmap, palette []string) error {
	valueStyle, err := f.NewStyle(&excelize.Style{NumFmt: numFmtTwoDecimals})
	if err != nil {
		return fmt.Errorf("failed to create style: %w", err)
	}
	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create style: %w", err)
	}

	if err := f.SetCellValue(sheet, "A1", "Month"); err != nil {
		return fmt.Errorf("failed to set header: %w", err)
	}
	for j, c := range h.Columns {
		if err := f.SetCellValue(sheet, cellName(j+2, 1), c); err != nil {
			return fmt.Errorf("failed to set header %s: %w", c, err)
		}
	}
	for i, label := range h.Rows {
		if err := f.SetCellValue(sheet, cellName(1, i+2), label); err != nil {
			return fmt.Errorf("failed to set row %s: %w", label, err)
		}
		for j, v := range h.Values[i] {
			if err := f.SetCellValue(sheet, cellName(j+2, i+2), v); err != nil {
				return fmt.Errorf("failed to set cell for %s: %w", label, err)
			}
		}
	}
	if err := f.SetCellStyle(sheet, "A1", cellName(len(h.Columns)+1, 1), headerStyle); err != nil {
		return fmt.Errorf("failed to style header: %w", err)
	}

	if len(h.Rows) == 0 || len(h.Columns) == 0 {
		return nil
	}
	corner := cellName(len(h.Columns)+1, len(h.Rows)+1)
	if err := f.SetCellStyle(sheet, "B2", corner, valueStyle); err != nil {
		return fmt.Errorf("failed to style values: %w", err)
	}
	err = f.SetConditionalFormat(sheet, "B2:"+corner, []excelize.ConditionalFormatOptions{{
		Type:     "3_color_scale",
		Criteria: "=",
		MinType:  "min",
		MidType:  "percentile",
		MidValue: "50",
		MaxType:  "max",
		MinColor: palette[0],
		MidColor: palette[1],
		MaxColor: palette[2],
	}})
	if err != nil {
		return fmt.Errorf("failed to format heatmap: %w", err)
	}
	return nil
}
