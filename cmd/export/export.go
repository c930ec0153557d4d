// Package export provides the command that writes the normalized statement
// as canonical CSV.
package export

import (
	"fjacquet/budget-report/cmd/common"
	"fjacquet/budget-report/cmd/root"
	"fjacquet/budget-report/internal/logging"
	"fjacquet/budget-report/internal/validation"

	"github.com/spf13/cobra"
)

var (
	// Input is the --input flag value.
	Input string
	// Output is the --output flag value.
	Output string
	// Spikes is the --spikes flag value.
	Spikes string
)

// Cmd represents the export command
var Cmd = &cobra.Command{
	Use:   "export [statement.csv]",
	Short: "Write the normalized transactions as CSV",
	Long: `Normalize a bank statement and write one row per valid transaction with
its ISO date, month, category and signed amount. Optionally write the
unusually high expenses to a second file.`,
	Args: cobra.MaximumNArgs(1),
	RunE: exportFunc,
}

func init() {
	flags := Cmd.Flags()
	flags.StringVarP(&Input, "input", "i", "", "Statement CSV file")
	flags.StringVarP(&Output, "output", "o", "", "Output CSV file")
	flags.StringVar(&Spikes, "spikes", "", "Also write flagged expenses to this CSV file")
	flags.String("category", "General", "Category assigned to rows without one")
	flags.Float64("sigma", 2.0, "Standard deviations above the category mean that mark a spike")
	_ = Cmd.MarkFlagRequired("output")
}

func exportFunc(cmd *cobra.Command, args []string) error {
	input, err := common.ResolveInput(Input, args)
	if err != nil {
		return err
	}
	if err := validation.IsValidOutputPath(Output, input); err != nil {
		return err
	}
	if Spikes != "" {
		if err := validation.IsValidOutputPath(Spikes, input, Output); err != nil {
			return err
		}
	}
	c := root.AppContainer

	outcome, err := common.Analyze(cmd.Context(), c, input)
	if err != nil {
		return err
	}

	store := c.GetCSVStore()
	if err := store.WriteTransactions(outcome.Normalized.Transactions, Output); err != nil {
		return err
	}
	root.Log.Info("Transactions exported",
		logging.F(logging.FieldOutputFile, Output),
		logging.F(logging.FieldCount, len(outcome.Normalized.Transactions)))

	if Spikes != "" {
		if err := store.WriteSpikes(outcome.Detection.Spikes, Spikes); err != nil {
			return err
		}
		root.Log.Info("Spikes exported",
			logging.F(logging.FieldOutputFile, Spikes),
			logging.F(logging.FieldCount, len(outcome.Detection.Spikes)))
	}
	return nil
}
