// Package common contains the report pipeline shared by command handlers.
package common

import (
	"context"
	"fmt"
	"io"
	"time"

	"fjacquet/budget-report/internal/analysis"
	"fjacquet/budget-report/internal/anomaly"
	"fjacquet/budget-report/internal/container"
	"fjacquet/budget-report/internal/logging"
	"fjacquet/budget-report/internal/models"
	"fjacquet/budget-report/internal/normalizer"
	"fjacquet/budget-report/internal/render"
	"fjacquet/budget-report/internal/report"
)

// Outcome is everything computed from one statement.
type Outcome struct {
	Source     string
	Normalized normalizer.Result
	Summary    models.Summary
	Detection  anomaly.Result
	Stats      map[string]anomaly.CategoryStats
}

// Analyze loads, normalizes, aggregates and scans a statement for spikes.
// Load and schema failures are returned unwrapped so callers can match them
// with errors.Is against parsererror.ErrLoad and parsererror.ErrSchema.
func Analyze(ctx context.Context, c *container.Container, inputFile string) (*Outcome, error) {
	log := c.GetLogger().WithField(logging.FieldFile, inputFile)
	start := time.Now()

	table, err := c.GetLoader().Load(ctx, inputFile)
	if err != nil {
		return nil, err
	}

	normalized, err := c.GetNormalizer().Normalize(table)
	if err != nil {
		return nil, err
	}

	summary := c.GetAggregator().Aggregate(normalized.Transactions)
	detection, stats := c.GetDetector().Run(analysis.Expenses(normalized.Transactions))

	log.Info("Statement analyzed",
		logging.F(logging.FieldLayout, normalized.Layout.String()),
		logging.F(logging.FieldRowsIn, normalized.RowsIn),
		logging.F(logging.FieldRowsOut, normalized.RowsOut),
		logging.F("spikes", len(detection.Spikes)),
		logging.F(logging.FieldDurationMS, time.Since(start).Milliseconds()))

	return &Outcome{
		Source:     inputFile,
		Normalized: normalized,
		Summary:    summary,
		Detection:  detection,
		Stats:      stats,
	}, nil
}

// Document assembles the printable report of an outcome.
func (o *Outcome) Document(c *container.Container) *report.Document {
	return &report.Document{
		Source:   o.Source,
		Layout:   o.Normalized.Layout.String(),
		RowsIn:   o.Normalized.RowsIn,
		RowsOut:  o.Normalized.RowsOut,
		Currency: c.GetMoneyFormatter().Code(),
		Sigma:    c.GetDetector().Sigma(),
		Summary:  o.Summary,
		Spikes:   o.Detection.Spikes,

		NetByCategory: analysis.NetByCategory(o.Normalized.Transactions),
		NetByMonth:    analysis.NetByMonth(o.Normalized.Transactions),
	}
}

// WriteReport formats the outcome and writes it to w.
func WriteReport(c *container.Container, o *Outcome, format string, w io.Writer) error {
	out, err := c.GetReportGenerator().GenerateReport(o.Document(c), format)
	if err != nil {
		return err
	}
	if _, err := w.Write(out); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

// RenderCharts draws the summary's charts on every configured sink. Terminal
// charts are written to out.
func RenderCharts(ctx context.Context, c *container.Container, o *Outcome, out io.Writer) ([]render.Artifact, error) {
	sinks := c.Sinks(out)
	if sinks.Len() == 0 {
		c.GetLogger().Debug("Chart rendering disabled")
		return nil, nil
	}
	charts := render.BuildCharts(o.Summary, c.GetRenderConfig())
	return sinks.Render(ctx, charts)
}

// ResolveInput picks the statement path from the --input flag or the first
// positional argument.
func ResolveInput(flag string, args []string) (string, error) {
	switch {
	case flag != "" && len(args) > 0 && args[0] != flag:
		return "", fmt.Errorf("input given both as --input %q and argument %q", flag, args[0])
	case flag != "":
		return flag, nil
	case len(args) > 0:
		return args[0], nil
	default:
		return "", fmt.Errorf("no input file: pass a statement path or --input")
	}
}
