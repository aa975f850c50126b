// Package detect handles the duplicate inspection command
package detect

import (
	"fmt"

	"github.com/spf13/cobra"

	"fjacquet/bank-import/cmd/common"
	"fjacquet/bank-import/cmd/root"
	"fjacquet/bank-import/internal/dedup"
	"fjacquet/bank-import/internal/report"
	"fjacquet/bank-import/internal/validation"
)

// Cmd represents the detect command
var Cmd = &cobra.Command{
	Use:   "detect",
	Short: "Detect duplicates without importing",
	Long: `Detect duplicates in a bank export file against the existing ledger
and within the file itself, and print the match report without writing any
output file.`,
	Run: detectFunc,
}

func detectFunc(cmd *cobra.Command, args []string) {
	root.Log.Info("Detect command called")
	root.Log.Infof("Input file: %s", root.SharedFlags.Input)

	if err := validation.IsValidReportFormat(root.SharedFlags.ReportFormat); err != nil {
		root.Log.Fatalf("Error: %v", err)
	}

	run, err := common.PrepareImport(root.SharedFlags.Input, root.SharedFlags.Existing,
		root.SharedFlags.Profile, root.SharedFlags.Currency, root.Log)
	if err != nil {
		root.Log.Fatalf("Error preparing import: %v", err)
	}

	result, err := run.Container.GetProcessor().Process(run.Content, run.Mapping, run.Formatting, run.Existing, run.Options)
	if err != nil {
		root.Log.Fatalf("Error processing import: %v", err)
	}

	internal := dedup.DetectInternal(result.Transactions, run.Options.Dedup)
	for _, match := range internal {
		root.Log.WithField("confidence", match.Confidence).
			Infof("Rows %d and %d look like the same transaction",
				result.Transactions[match.First].SourceRow,
				result.Transactions[match.Second].SourceRow)
	}

	rendered, err := run.Container.GetReportGenerator().
		Generate(report.Build(result, nil), root.SharedFlags.ReportFormat)
	if err != nil {
		root.Log.Fatalf("Error generating report: %v", err)
	}
	fmt.Println(string(rendered))
	root.Log.Info("Duplicate detection completed successfully!")
}
