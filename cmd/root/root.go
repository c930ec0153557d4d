// Package root contains the root command for the application
package root

import (
	"fmt"

	"fjacquet/budget-report/internal/config"
	"fjacquet/budget-report/internal/container"
	"fjacquet/budget-report/internal/logging"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// flagKeys maps command line flags onto configuration keys. Flags that a
// command does not define are skipped.
var flagKeys = map[string]string{
	"log-level":    "log.level",
	"log-format":   "log.format",
	"delimiter":    "csv.delimiter",
	"category":     "normalize.default_category",
	"sigma":        "anomaly.sigma",
	"format":       "report.format",
	"currency":     "report.currency",
	"top":          "report.top_n",
	"charts-dir":   "render.output_dir",
	"title-prefix": "render.title_prefix",
	"bar-width":    "render.bar_width",
	"pdf-font":     "render.font_path",
	"sinks":        "render.sinks",
}

var (
	// Log is the shared logger instance for commands
	Log logging.Logger = logging.NewLogrusAdapter("info", "text")

	// AppContainer is built once the configuration is known.
	AppContainer *container.Container

	// ConfigFile is the --config flag value.
	ConfigFile string

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "budget-report",
		Short: "Summarize a bank statement CSV into a spending report and charts.",
		Long: `budget-report reads a bank statement exported as CSV, reconciles its
amount columns, and reports income, expenses, category and monthly
breakdowns, unusually large transactions and saving suggestions.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: initialize,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
)

// Init registers the persistent flags shared by every command.
func Init() {
	flags := Cmd.PersistentFlags()
	flags.StringVar(&ConfigFile, "config", "", "Config file (default searches ./config.yaml, ./.budget-report and $HOME/.budget-report)")
	flags.String("log-level", "info", "Log level (debug, info, warn, error)")
	flags.String("log-format", "text", "Log format (text, json)")
	flags.StringP("delimiter", "d", ",", "CSV field delimiter (a single character or \\t)")
}

// initialize loads .env and configuration, then wires the container.
func initialize(cmd *cobra.Command, args []string) error {
	if _, err := config.LoadEnv(); err != nil {
		return err
	}

	cfg, err := config.LoadConfig(ConfigFile, boundFlags(cmd.Flags()))
	if err != nil {
		return err
	}
	if nc, _ := cmd.Flags().GetBool("no-charts"); nc {
		cfg.Render.Enabled = false
	}

	Log = config.ConfigureLoggingFromConfig(cfg)
	c, err := container.NewContainer(cfg, Log)
	if err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}
	AppContainer = c
	return nil
}

func boundFlags(flags *pflag.FlagSet) map[string]*pflag.Flag {
	bound := make(map[string]*pflag.Flag)
	for name, key := range flagKeys {
		if f := flags.Lookup(name); f != nil {
			bound[key] = f
		}
	}
	return bound
}
