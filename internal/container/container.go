// Package container wires the report pipeline's components from configuration
// so commands receive them through constructors rather than globals.
package container

import (
	"fmt"
	"io"
	"strings"

	"fjacquet/budget-report/internal/analysis"
	"fjacquet/budget-report/internal/anomaly"
	"fjacquet/budget-report/internal/common"
	"fjacquet/budget-report/internal/config"
	"fjacquet/budget-report/internal/loader"
	"fjacquet/budget-report/internal/logging"
	"fjacquet/budget-report/internal/normalizer"
	"fjacquet/budget-report/internal/render"
	"fjacquet/budget-report/internal/report"
)

// Container holds all application dependencies. It is immutable after
// creation; components are reached through getters.
type Container struct {
	logger logging.Logger
	config *config.Config

	loader     *loader.Loader
	normalizer *normalizer.Normalizer
	aggregator *analysis.Aggregator
	detector   *anomaly.Detector
	money      *report.MoneyFormatter
	reports    *report.ReportGenerator
	csvStore   *common.CSVStore
	render     render.Config
}

// NewContainer creates and wires all application dependencies around logger.
func NewContainer(cfg *config.Config, logger logging.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger cannot be nil")
	}

	delimiter, err := cfg.Delimiter()
	if err != nil {
		return nil, err
	}

	money, err := report.NewMoneyFormatter(cfg.Report.Currency)
	if err != nil {
		return nil, err
	}

	renderCfg := RenderConfig(cfg)
	if err := renderCfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid render configuration: %w", err)
	}

	normCfg := normalizer.Config{
		DefaultCategory: cfg.Normalize.DefaultCategory,
		NullValues:      normalizer.DefaultNullValues,
	}
	if len(cfg.Normalize.NullValues) > 0 {
		normCfg.NullValues = cfg.Normalize.NullValues
	}

	c := &Container{
		logger:     logger,
		config:     cfg,
		loader:     loader.NewLoader(delimiter, logger),
		normalizer: normalizer.NewNormalizer(normCfg, logger),
		aggregator: analysis.NewAggregator(cfg.Report.TopN, logger),
		detector:   anomaly.NewDetector(cfg.Anomaly.Sigma, logger),
		money:      money,
		reports:    report.NewReportGenerator(logger, money),
		csvStore:   common.NewCSVStore(delimiter, logger),
		render:     renderCfg,
	}

	logger.Debug("Container initialized",
		logging.F(logging.FieldDelimiter, string(delimiter)),
		logging.F("currency", money.Code()),
		logging.F("sinks", strings.Join(renderCfg.Sinks, ",")))
	return c, nil
}

// RenderConfig maps the render section onto render.Config. A disabled
// renderer yields no sinks.
func RenderConfig(cfg *config.Config) render.Config {
	rc := render.DefaultConfig()
	if cfg.Render.OutputDir != "" {
		rc.OutputDir = cfg.Render.OutputDir
	}
	rc.TitlePrefix = cfg.Render.TitlePrefix
	if len(cfg.Render.Palette) > 0 {
		rc.Palette = append([]string(nil), cfg.Render.Palette...)
	}
	if cfg.Render.BarWidth > 0 {
		rc.BarWidth = cfg.Render.BarWidth
	}
	rc.FontPath = cfg.Render.FontPath
	rc.Sinks = nil
	if cfg.Render.Enabled {
		rc.Sinks = append(rc.Sinks, cfg.Render.Sinks...)
	}
	return rc
}

// Sinks builds the configured chart sinks. Terminal charts go to out.
func (c *Container) Sinks(out io.Writer) *render.MultiSink {
	var sinks []render.Sink
	for _, name := range c.render.Sinks {
		switch strings.ToLower(name) {
		case render.SinkTerminal:
			sinks = append(sinks, render.NewTerminalSink(out, c.render))
		case render.SinkXLSX:
			sinks = append(sinks, render.NewXLSXSink(c.render, c.logger))
		case render.SinkPDF:
			sinks = append(sinks, render.NewPDFSink(c.render, c.logger))
		}
	}
	return render.NewMultiSink(c.logger, sinks...)
}

// GetLogger returns the container's logger instance.
func (c *Container) GetLogger() logging.Logger {
	return c.logger
}

// GetConfig returns the container's configuration instance.
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetLoader returns the statement loader.
func (c *Container) GetLoader() *loader.Loader {
	return c.loader
}

// GetNormalizer returns the normalizer.
func (c *Container) GetNormalizer() *normalizer.Normalizer {
	return c.normalizer
}

// GetAggregator returns the aggregator.
func (c *Container) GetAggregator() *analysis.Aggregator {
	return c.aggregator
}

// GetDetector returns the spike detector.
func (c *Container) GetDetector() *anomaly.Detector {
	return c.detector
}

// GetMoneyFormatter returns the currency formatter.
func (c *Container) GetMoneyFormatter() *report.MoneyFormatter {
	return c.money
}

// GetReportGenerator returns the report formatter.
func (c *Container) GetReportGenerator() *report.ReportGenerator {
	return c.reports
}

// GetCSVStore returns the canonical CSV writer.
func (c *Container) GetCSVStore() *common.CSVStore {
	return c.csvStore
}

// GetRenderConfig returns the effective render configuration.
func (c *Container) GetRenderConfig() render.Config {
	return c.render
}
