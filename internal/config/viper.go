// Package config provides Viper-based hierarchical configuration management
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"fjacquet/budget-report/internal/loader"
	"fjacquet/budget-report/internal/logging"
	"fjacquet/budget-report/internal/validation"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. BUDGET_LOG_LEVEL.
const EnvPrefix = "BUDGET"

// Config represents the complete application configuration
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	CSV struct {
		Delimiter string `mapstructure:"delimiter" yaml:"delimiter"`
	} `mapstructure:"csv" yaml:"csv"`

	Normalize struct {
		DefaultCategory string   `mapstructure:"default_category" yaml:"default_category"`
		NullValues      []string `mapstructure:"null_values" yaml:"null_values"`
	} `mapstructure:"normalize" yaml:"normalize"`

	Anomaly struct {
		Sigma float64 `mapstructure:"sigma" yaml:"sigma"`
	} `mapstructure:"anomaly" yaml:"anomaly"`

	Report struct {
		Format   string `mapstructure:"format" yaml:"format"`
		Currency string `mapstructure:"currency" yaml:"currency"`
		TopN     int    `mapstructure:"top_n" yaml:"top_n"`
	} `mapstructure:"report" yaml:"report"`

	Render struct {
		Enabled     bool     `mapstructure:"enabled" yaml:"enabled"`
		OutputDir   string   `mapstructure:"output_dir" yaml:"output_dir"`
		TitlePrefix string   `mapstructure:"title_prefix" yaml:"title_prefix"`
		Palette     []string `mapstructure:"palette" yaml:"palette"`
		BarWidth    int      `mapstructure:"bar_width" yaml:"bar_width"`
		FontPath    string   `mapstructure:"font_path" yaml:"font_path"`
		Sinks       []string `mapstructure:"sinks" yaml:"sinks"`
	} `mapstructure:"render" yaml:"render"`
}

// LoadConfig loads defaults, a config file, BUDGET_* environment variables
// and command line flags keyed by config key, in increasing order of
// precedence. An empty path searches config.yaml in $HOME/.budget-report,
// ./.budget-report and .; a missing explicit file is an error. Flags only
// override when set on the command line.
func LoadConfig(configFile string, flags map[string]*pflag.Flag) (*Config, error) {
	v := viper.New()

	// 1. Set defaults
	setDefaults(v)

	// 2. Config file locations
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("$HOME/.budget-report")
		v.AddConfigPath(".budget-report")
		v.AddConfigPath(".")
	}

	// 3. Environment variables
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for key, flag := range flags {
		if flag == nil {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return nil, fmt.Errorf("failed to bind flag %s: %w", flag.Name, err)
		}
	}

	// 4. Read config file (optional unless explicit)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 5. Validate configuration
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	// CSV defaults
	v.SetDefault("csv.delimiter", ",")

	// Normalizer defaults
	v.SetDefault("normalize.default_category", "General")
	v.SetDefault("normalize.null_values", []string{})

	// Anomaly defaults
	v.SetDefault("anomaly.sigma", 2.0)

	// Report defaults
	v.SetDefault("report.format", "text")
	v.SetDefault("report.currency", "GBP")
	v.SetDefault("report.top_n", 3)

	// Render defaults
	v.SetDefault("render.enabled", true)
	v.SetDefault("render.output_dir", "charts")
	v.SetDefault("render.title_prefix", "")
	v.SetDefault("render.palette", []string{"#FFFFCC", "#41B6C4", "#253494"})
	v.SetDefault("render.bar_width", 40)
	v.SetDefault("render.font_path", "")
	v.SetDefault("render.sinks", []string{"terminal"})
}

// validateConfig validates the configuration values
func validateConfig(config *Config) error {
	// Validate log level
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	// Validate log format
	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	// Validate CSV delimiter
	if _, err := config.Delimiter(); err != nil {
		return err
	}

	if strings.TrimSpace(config.Normalize.DefaultCategory) == "" {
		return fmt.Errorf("normalize.default_category must not be empty")
	}

	if config.Anomaly.Sigma <= 0 {
		return fmt.Errorf("anomaly.sigma must be positive, got: %g", config.Anomaly.Sigma)
	}

	if err := validation.IsValidOutputFormat(config.Report.Format); err != nil {
		return fmt.Errorf("invalid report format: %w", err)
	}

	if config.Report.TopN < 1 {
		return fmt.Errorf("report.top_n must be at least 1, got: %d", config.Report.TopN)
	}

	if config.Render.BarWidth < 1 || config.Render.BarWidth > 200 {
		return fmt.Errorf("render.bar_width must be between 1 and 200, got: %d", config.Render.BarWidth)
	}

	return nil
}

// Delimiter returns the configured CSV delimiter as a rune.
func (c *Config) Delimiter() (rune, error) {
	d, err := loader.ParseDelimiter(c.CSV.Delimiter)
	if err != nil {
		return 0, fmt.Errorf("invalid CSV delimiter: %w", err)
	}
	return d, nil
}

// ConfigureLoggingFromConfig builds the application logger from the log
// section. Logs go to stderr so stdout stays reserved for reports.
func ConfigureLoggingFromConfig(config *Config) logging.Logger {
	return logging.NewLogrusAdapterWithOutput(config.Log.Level, config.Log.Format, os.Stderr)
}
