package render

import (
	"context"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// TerminalSink draws bar charts and a shaded heatmap as text.
type TerminalSink struct {
	out      io.Writer
	cfg      Config
	renderer *lipgloss.Renderer
	printer  *message.Printer
}

// NewTerminalSink writes to out, usually stdout.
func NewTerminalSink(out io.Writer, cfg Config) *TerminalSink {
	return &TerminalSink{
		out:      out,
		cfg:      cfg,
		renderer: lipgloss.NewRenderer(out),
		printer:  message.NewPrinter(language.BritishEnglish),
	}
}

// Name implements Sink.
func (t *TerminalSink) Name() string {
	return SinkTerminal
}

// Render implements Sink.
func (t *TerminalSink) Render(ctx context.Context, charts Charts) ([]Artifact, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	box := t.renderer.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)

	blocks := []string{
		box.Render(t.barChart(charts.Category)),
		box.Render(t.barChart(charts.Monthly)),
		box.Render(t.heatmap(charts.Heatmap)),
	}
	if _, err := fmt.Fprintln(t.out, lipgloss.JoinVertical(lipgloss.Left, blocks...)); err != nil {
		return nil, fmt.Errorf("failed to write terminal charts: %w", err)
	}

	return []Artifact{
		{Sink: SinkTerminal, Chart: charts.Category.Name},
		{Sink: SinkTerminal, Chart: charts.Monthly.Name},
		{Sink: SinkTerminal, Chart: charts.Heatmap.Name},
	}, nil
}

func (t *TerminalSink) number(v float64) string {
	return t.printer.Sprintf("%.2f", v)
}

func (t *TerminalSink) barChart(c BarChart) string {
	title := t.renderer.NewStyle().Bold(true)
	bar := t.renderer.NewStyle().Foreground(lipgloss.Color(t.cfg.palette()[1]))

	var b strings.Builder
	b.WriteString(title.Render(c.Title))
	if len(c.Bars) == 0 {
		b.WriteString("\n(no data)")
		return b.String()
	}

	labelWidth := 0
	for _, item := range c.Bars {
		labelWidth = max(labelWidth, lipgloss.Width(item.Label))
	}
	top := c.Max()
	for _, item := range c.Bars {
		n := 0
		if top > 0 {
			n = int(math.Round(item.Value / top * float64(t.cfg.BarWidth)))
		}
		if n == 0 && item.Value > 0 {
			n = 1
		}
		fmt.Fprintf(&b, "\n%-*s %s %s", labelWidth, item.Label, bar.Render(strings.Repeat("█", n)), t.number(item.Value))
	}
	return b.String()
}

func (t *TerminalSink) heatmap(h Heatmap) string {
	title := t.renderer.NewStyle().Bold(true)

	var b strings.Builder
	b.WriteString(title.Render(h.Title))
	if len(h.Rows) == 0 || len(h.Columns) == 0 {
		b.WriteString("\n(no data)")
		return b.String()
	}

	cellWidth := 0
	for _, c := range h.Columns {
		cellWidth = max(cellWidth, lipgloss.Width(c))
	}
	for _, row := range h.Values {
		for _, v := range row {
			cellWidth = max(cellWidth, lipgloss.Width(t.number(v)))
		}
	}
	rowLabelWidth := len("2006-01")
	cell := t.renderer.NewStyle().Width(cellWidth).Align(lipgloss.Right)

	b.WriteString("\n" + strings.Repeat(" ", rowLabelWidth))
	for _, c := range h.Columns {
		b.WriteString(" " + cell.Render(c))
	}

	palette := t.cfg.palette()
	top := h.Max()
	for i, label := range h.Rows {
		fmt.Fprintf(&b, "\n%-*s", rowLabelWidth, label)
		for _, v := range h.Values[i] {
			shade := scale(palette, v, top)
			fg := "#000000"
			if top > 0 && v/top > 0.5 {
				fg = "#FFFFFF"
			}
			styled := cell.Background(lipgloss.Color(hexColour(shade))).Foreground(lipgloss.Color(fg))
			b.WriteString(" " + styled.Render(t.number(v)))
		}
	}
	return b.String()
}
