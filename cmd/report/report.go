// Package report provides the command that prints a statement report.
package report

import (
	"bytes"
	"io"
	"strings"

	"fjacquet/budget-report/cmd/common"
	"fjacquet/budget-report/cmd/root"
	"fjacquet/budget-report/internal/fileutils"
	"fjacquet/budget-report/internal/logging"
	"fjacquet/budget-report/internal/validation"

	"github.com/spf13/cobra"
)

var (
	// Input is the --input flag value.
	Input string
	// Output is the --output flag value; empty prints to stdout.
	Output string
)

// Cmd represents the report command
var Cmd = &cobra.Command{
	Use:   "report [statement.csv]",
	Short: "Print a spending report for a statement",
	Long: `Print totals, category and monthly spending, unusually high
transactions and a closing summary for a bank statement CSV, then draw
the configured charts.`,
	Args: cobra.MaximumNArgs(1),
	RunE: reportFunc,
}

func init() {
	flags := Cmd.Flags()
	flags.StringVarP(&Input, "input", "i", "", "Statement CSV file")
	flags.StringVarP(&Output, "output", "o", "", "Write the report to this file instead of stdout")
	flags.StringP("format", "f", "text", "Report format (text, json, yaml)")
	flags.String("currency", "GBP", "ISO 4217 currency code used to print amounts")
	flags.String("category", "General", "Category assigned to rows without one")
	flags.Float64("sigma", 2.0, "Standard deviations above the category mean that mark a spike")
	flags.Int("top", 3, "Number of categories in the rankings")
	flags.String("charts-dir", "charts", "Directory for chart files")
	flags.String("title-prefix", "", "Text prepended to chart titles")
	flags.Int("bar-width", 40, "Width of terminal bar charts")
	flags.String("pdf-font", "", "TTF font used by the pdf sink")
	flags.StringSlice("sinks", []string{"terminal"}, "Chart sinks (terminal, xlsx, pdf)")
	flags.Bool("no-charts", false, "Skip chart rendering")
}

func reportFunc(cmd *cobra.Command, args []string) error {
	input, err := common.ResolveInput(Input, args)
	if err != nil {
		return err
	}
	if Output != "" {
		if err := validation.IsValidOutputPath(Output, input); err != nil {
			return err
		}
	}
	c := root.AppContainer
	format := c.GetConfig().Report.Format

	outcome, err := common.Analyze(cmd.Context(), c, input)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := common.WriteReport(c, outcome, format, &buf); err != nil {
		return err
	}
	if Output != "" {
		if err := fileutils.WriteFile(Output, buf.Bytes()); err != nil {
			return err
		}
		root.Log.Info("Report written", logging.F(logging.FieldOutputFile, Output), logging.F(logging.FieldFormat, format))
	} else if _, err := cmd.OutOrStdout().Write(buf.Bytes()); err != nil {
		return err
	}

	artifacts, err := common.RenderCharts(cmd.Context(), c, outcome, chartWriter(cmd, format))
	if err != nil {
		return err
	}
	for _, a := range artifacts {
		if a.Path != "" {
			root.Log.Info("Chart written", logging.F(logging.FieldOutputFile, a.Path))
		}
	}
	return nil
}

// chartWriter keeps terminal charts off stdout when stdout carries a
// machine-readable report.
func chartWriter(cmd *cobra.Command, format string) io.Writer {
	if Output == "" && !strings.EqualFold(format, "text") {
		return cmd.ErrOrStderr()
	}
	return cmd.OutOrStdout()
}
