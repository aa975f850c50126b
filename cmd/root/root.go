// Package root contains the root command for the application
package root

import (
	"os"

	"fjacquet/bank-import/internal/config"
	"fjacquet/bank-import/internal/export"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// CommonFlags represents the flags that are common to multiple commands
type CommonFlags struct {
	Input        string
	Output       string
	Existing     string
	Profile      string
	Currency     string
	ReportFormat string
}

var (
	// Log is the shared logger instance for commands
	Log = logrus.New()

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "bank-import",
		Short: "A CLI tool to normalize bank exports and flag duplicate transactions.",
		Long: `bank-import is a CLI tool that parses bank export files (CSV, OFX, CAMT.053),
normalizes them into a uniform transaction form, and flags lines that look like
duplicates of transactions already recorded.`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to bank-import!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Initialize and configure logging
			config.LoadEnv()
			Log = config.ConfigureLogging()

			// Ensure CSV delimiter is updated after env variables are loaded
			if delim := os.Getenv("CSV_DELIMITER"); delim != "" {
				Log.WithField("delimiter", delim).Debug("Setting CSV delimiter from environment")
				export.SetDelimiter([]rune(delim)[0])
			}
		},
	}

	// Common flags accessible to all commands
	SharedFlags = CommonFlags{}

	// Specific ingest command flags
	FilterMode string
	CutoffDays int
)

// Init initializes the root command and all flags
func Init() {
	// Add persistent flags to root command for common options
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Input, "input", "i", "", "Input file")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Output, "output", "o", "", "Output file")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Existing, "existing", "e", "", "CSV file with already-recorded transactions")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Profile, "profile", "p", "", "Named import profile to apply")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Currency, "currency", "c", "", "Destination account currency")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.ReportFormat, "report-format", "r", "yaml", "Report format (yaml or json)")
}
