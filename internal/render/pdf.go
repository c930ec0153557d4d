package render

import (
	"context"
	"fmt"

	"fjacquet/budget-report/internal/fileutils"
	"fjacquet/budget-report/internal/logging"

	"github.com/signintech/gopdf"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// PDFFile is the name of the document written by PDFSink.
const PDFFile = "spending_charts.pdf"

const (
	pdfFont      = "body"
	pageWidth    = 595.0
	pageMargin   = 40.0
	titleY       = 50.0
	chartTop     = 100.0
	barHeight    = 16.0
	barGap       = 6.0
	labelColumn  = 110.0
	valueColumn  = 90.0
	heatmapCellH = 20.0
	pageBottom   = 800.0
)

// PDFSink writes one A4 page per chart into a single PDF document.
type PDFSink struct {
	cfg     Config
	logger  logging.Logger
	printer *message.Printer
}

// NewPDFSink creates a PDFSink. Rendering fails with ErrFontRequired unless
// cfg.FontPath names a TTF font.
func NewPDFSink(cfg Config, logger logging.Logger) *PDFSink {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &PDFSink{cfg: cfg, logger: logger, printer: message.NewPrinter(language.BritishEnglish)}
}

// Name implements Sink.
func (p *PDFSink) Name() string {
	return SinkPDF
}

// Render implements Sink.
func (p *PDFSink) Render(ctx context.Context, charts Charts) ([]Artifact, error) {
	if p.cfg.FontPath == "" {
		return nil, ErrFontRequired
	}
	if !fileutils.FileExists(p.cfg.FontPath) {
		return nil, fmt.Errorf("font file not found: %s", p.cfg.FontPath)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	pdf := &gopdf.GoPdf{}
	pdf.Start(gopdf.Config{PageSize: *gopdf.PageSizeA4})
	if err := pdf.AddTTFFont(pdfFont, p.cfg.FontPath); err != nil {
		return nil, fmt.Errorf("failed to load font %s: %w", p.cfg.FontPath, err)
	}

	for _, c := range []BarChart{charts.Category, charts.Monthly} {
		if err := p.barPage(pdf, c); err != nil {
			return nil, err
		}
	}
	if err := p.heatmapPage(pdf, charts.Heatmap); err != nil {
		return nil, err
	}

	if err := fileutils.EnsureDirectoryExists(p.cfg.OutputDir); err != nil {
		return nil, err
	}
	path := fileutils.ArtifactPath(p.cfg.OutputDir, PDFFile)
	if err := pdf.WritePdf(path); err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", path, err)
	}

	p.logger.Info("Wrote chart PDF", logging.F(logging.FieldOutputFile, path))
	return []Artifact{
		{Sink: SinkPDF, Chart: charts.Category.Name, Path: path},
		{Sink: SinkPDF, Chart: charts.Monthly.Name, Path: path},
		{Sink: SinkPDF, Chart: charts.Heatmap.Name, Path: path},
	}, nil
}

func (p *PDFSink) text(pdf *gopdf.GoPdf, x, y float64, size int, s string) error {
	if err := pdf.SetFont(pdfFont, "", size); err != nil {
		return fmt.Errorf("failed to set font: %w", err)
	}
	pdf.SetXY(x, y)
	if err := pdf.Cell(nil, s); err != nil {
		return fmt.Errorf("failed to write text: %w", err)
	}
	return nil
}

func (p *PDFSink) page(pdf *gopdf.GoPdf, title string) error {
	pdf.AddPage()
	pdf.SetTextColor(33, 33, 33)
	return p.text(pdf, pageMargin, titleY, 18, title)
}

func (p *PDFSink) barPage(pdf *gopdf.GoPdf, c BarChart) error {
	if err := p.page(pdf, c.Title); err != nil {
		return err
	}
	if len(c.Bars) == 0 {
		return p.text(pdf, pageMargin, chartTop, 11, "No data")
	}

	fr, fg, fb := mustColour(p.cfg.palette()[1]).RGB255()
	span := pageWidth - 2*pageMargin - labelColumn - valueColumn
	top := c.Max()
	y := chartTop
	for _, bar := range c.Bars {
		if y+barHeight > pageBottom {
			if err := p.page(pdf, c.Title+" (continued)"); err != nil {
				return err
			}
			y = chartTop
		}
		pdf.SetTextColor(33, 33, 33)
		if err := p.text(pdf, pageMargin, y+2, 10, bar.Label); err != nil {
			return err
		}
		if top > 0 && bar.Value > 0 {
			pdf.SetFillColor(fr, fg, fb)
			pdf.RectFromUpperLeftWithStyle(pageMargin+labelColumn, y, span*bar.Value/top, barHeight, "F")
		}
		if err := p.text(pdf, pageWidth-pageMargin-valueColumn+10, y+2, 10, p.printer.Sprintf("%.2f", bar.Value)); err != nil {
			return err
		}
		y += barHeight + barGap
	}
	return nil
}

// heatmapRowsPerPage is how many month rows fit below the column headers.
const heatmapRowsPerPage = int((pageBottom - chartTop - heatmapCellH) / heatmapCellH)

// pageSpans splits n rows into [start, end) ranges of at most per rows.
func pageSpans(n, per int) [][2]int {
	var spans [][2]int
	for start := 0; start < n; start += per {
		spans = append(spans, [2]int{start, min(start+per, n)})
	}
	return spans
}

func (p *PDFSink) heatmapPage(pdf *gopdf.GoPdf, h Heatmap) error {
	if len(h.Rows) == 0 || len(h.Columns) == 0 {
		if err := p.page(pdf, h.Title); err != nil {
			return err
		}
		return p.text(pdf, pageMargin, chartTop, 11, "No data")
	}

	rowLabel := 60.0
	cellW := (pageWidth - 2*pageMargin - rowLabel) / float64(len(h.Columns))
	fontSize := 9
	if cellW < 45 {
		fontSize = 6
	}

	palette := p.cfg.palette()
	top := h.Max()
	for n, span := range pageSpans(len(h.Rows), heatmapRowsPerPage) {
		title := h.Title
		if n > 0 {
			title += " (continued)"
		}
		if err := p.page(pdf, title); err != nil {
			return err
		}
		for j, c := range h.Columns {
			if err := p.text(pdf, pageMargin+rowLabel+float64(j)*cellW+2, chartTop, fontSize, c); err != nil {
				return err
			}
		}

		y := chartTop + heatmapCellH
		for i := span[0]; i < span[1]; i++ {
			pdf.SetTextColor(33, 33, 33)
			if err := p.text(pdf, pageMargin, y+5, fontSize, h.Rows[i]); err != nil {
				return err
			}
			for j, v := range h.Values[i] {
				x := pageMargin + rowLabel + float64(j)*cellW
				pdf.SetFillColor(scale(palette, v, top).RGB255())
				pdf.RectFromUpperLeftWithStyle(x, y, cellW, heatmapCellH, "F")
				if top > 0 && v/top > 0.5 {
					pdf.SetTextColor(255, 255, 255)
				} else {
					pdf.SetTextColor(0, 0, 0)
				}
				if err := p.text(pdf, x+2, y+5, fontSize, p.printer.Sprintf("%.2f", v)); err != nil {
					return err
				}
			}
			y += heatmapCellH
		}
	}
	return nil
}
