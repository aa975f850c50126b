// Package ingest handles the full import pipeline command
package ingest

import (
	"fmt"

	"github.com/spf13/cobra"

	"fjacquet/bank-import/cmd/common"
	"fjacquet/bank-import/cmd/root"
	"fjacquet/bank-import/internal/export"
	"fjacquet/bank-import/internal/importer"
	"fjacquet/bank-import/internal/models"
	"fjacquet/bank-import/internal/oldfilter"
	"fjacquet/bank-import/internal/report"
	"fjacquet/bank-import/internal/validation"
)

// Cmd represents the ingest command
var Cmd = &cobra.Command{
	Use:   "ingest",
	Short: "Import a bank export file",
	Long: `Import a bank export file: normalize its transactions, flag likely
duplicates against the existing ledger, filter old lines per the configured
policy, and write the accepted transactions to the output CSV.`,
	Run: ingestFunc,
}

func init() {
	Cmd.Flags().StringVar(&root.FilterMode, "filter-mode", "", "Old transaction policy (do-not-ignore, ignore-all, ignore-duplicates)")
	Cmd.Flags().IntVar(&root.CutoffDays, "cutoff-days", 0, "Days before the newest existing transaction that counts as old")
}

func ingestFunc(cmd *cobra.Command, args []string) {
	root.Log.Info("Ingest command called")
	root.Log.Infof("Input file: %s", root.SharedFlags.Input)
	root.Log.Infof("Output CSV file: %s", root.SharedFlags.Output)

	if err := validation.IsValidReportFormat(root.SharedFlags.ReportFormat); err != nil {
		root.Log.Fatalf("Error: %v", err)
	}
	if err := validation.IsValidFilterMode(root.FilterMode); err != nil {
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

	filterResult := applyFilter(result, run)

	if root.SharedFlags.Output != "" {
		accepted := make([]models.CandidateTransaction, 0, len(result.Transactions))
		for i := range result.Transactions {
			if filterResult.Decisions[i].Included {
				accepted = append(accepted, result.Transactions[i])
			}
		}
		if err := export.WriteTransactions(accepted, root.SharedFlags.Output, run.Container.GetLogger()); err != nil {
			root.Log.Fatalf("Error writing output CSV: %v", err)
		}
	}

	rendered, err := run.Container.GetReportGenerator().
		Generate(report.Build(result, &filterResult), root.SharedFlags.ReportFormat)
	if err != nil {
		root.Log.Fatalf("Error generating report: %v", err)
	}
	fmt.Println(string(rendered))
	root.Log.Info("Import completed successfully!")
}

func applyFilter(result *importer.Result, run *common.ImportRun) oldfilter.Result {
	cfg := oldfilter.Config{
		Mode:       oldfilter.Mode(root.FilterMode),
		CutoffDays: root.CutoffDays,
	}
	if root.FilterMode == "" {
		cfg.Mode = oldfilter.Mode(run.Container.GetConfig().Filter.Mode)
		cfg.CutoffDays = run.Container.GetConfig().Filter.CutoffDays
	}
	return oldfilter.Filter(result.Transactions, common.NewestExistingDate(run.Existing), cfg)
}
