package container

import (
	"bytes"
	"testing"

	"fjacquet/budget-report/internal/config"
	"fjacquet/budget-report/internal/logging"
	"fjacquet/budget-report/internal/render"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Log.Level = "info"
	cfg.Log.Format = "text"
	cfg.CSV.Delimiter = ","
	cfg.Normalize.DefaultCategory = "General"
	cfg.Anomaly.Sigma = 2
	cfg.Report.Format = "text"
	cfg.Report.Currency = "GBP"
	cfg.Report.TopN = 3
	cfg.Render.Enabled = true
	cfg.Render.OutputDir = "charts"
	cfg.Render.BarWidth = 40
	cfg.Render.Sinks = []string{"terminal"}
	return cfg
}

func TestNewContainer(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*config.Config)
		errorMsg string
	}{
		{name: "valid config", mutate: func(*config.Config) {}},
		{name: "bad delimiter", mutate: func(c *config.Config) { c.CSV.Delimiter = "ab" }, errorMsg: "invalid CSV delimiter"},
		{name: "unknown currency", mutate: func(c *config.Config) { c.Report.Currency = "XXQ" }, errorMsg: "XXQ"},
		{name: "unknown sink", mutate: func(c *config.Config) { c.Render.Sinks = []string{"svg"} }, errorMsg: "unknown render sink"},
		{name: "bad palette", mutate: func(c *config.Config) { c.Render.Palette = []string{"#fff", "#000"} }, errorMsg: "invalid render configuration"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			tt.mutate(cfg)

			c, err := NewContainer(cfg, logging.NewMockLogger())
			if tt.errorMsg != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorMsg)
				assert.Nil(t, c)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, c.GetLoader())
			assert.NotNil(t, c.GetNormalizer())
			assert.NotNil(t, c.GetAggregator())
			assert.NotNil(t, c.GetDetector())
			assert.NotNil(t, c.GetReportGenerator())
			assert.NotNil(t, c.GetCSVStore())
			assert.Equal(t, "GBP", c.GetMoneyFormatter().Code())
			assert.Same(t, cfg, c.GetConfig())
		})
	}
}

func TestNewContainer_NilInputs(t *testing.T) {
	_, err := NewContainer(nil, logging.NewMockLogger())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "configuration cannot be nil")

	_, err = NewContainer(testConfig(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "logger cannot be nil")
}

func TestRenderConfig(t *testing.T) {
	cfg := testConfig()
	cfg.Render.TitlePrefix = "2024"
	cfg.Render.Sinks = []string{"terminal", "xlsx"}

	rc := RenderConfig(cfg)
	assert.Equal(t, "charts", rc.OutputDir)
	assert.Equal(t, "2024", rc.TitlePrefix)
	assert.Equal(t, render.DefaultPalette, rc.Palette)
	assert.Equal(t, []string{"terminal", "xlsx"}, rc.Sinks)

	cfg.Render.Enabled = false
	assert.Empty(t, RenderConfig(cfg).Sinks)
}

func TestContainer_Sinks(t *testing.T) {
	cfg := testConfig()
	cfg.Render.Sinks = []string{"terminal", "XLSX", "pdf"}
	cfg.Render.FontPath = "/nonexistent.ttf"

	c, err := NewContainer(cfg, logging.NewMockLogger())
	require.NoError(t, err)
	assert.Equal(t, 3, c.Sinks(&bytes.Buffer{}).Len())

	cfg.Render.Enabled = false
	c, err = NewContainer(cfg, logging.NewMockLogger())
	require.NoError(t, err)
	assert.Equal(t, 0, c.Sinks(&bytes.Buffer{}).Len())
}
