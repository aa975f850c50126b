// Package batch handles the multi-file import command
package batch

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"fjacquet/bank-import/cmd/common"
	"fjacquet/bank-import/cmd/root"
	internalbatch "fjacquet/bank-import/internal/batch"
	"fjacquet/bank-import/internal/config"
	"fjacquet/bank-import/internal/container"
	"fjacquet/bank-import/internal/export"
	"fjacquet/bank-import/internal/importer"
	"fjacquet/bank-import/internal/logging"
	"fjacquet/bank-import/internal/models"
	"fjacquet/bank-import/internal/validation"
)

// Cmd represents the batch command
var Cmd = &cobra.Command{
	Use:   "batch [paths...]",
	Short: "Import many bank export files in one run",
	Long: `Import every recognizable bank export file under the given files and
directories, check each against the existing ledger, and report aggregate
results.`,
	Args: cobra.MinimumNArgs(1),
	Run:  batchFunc,
}

func batchFunc(cmd *cobra.Command, args []string) {
	root.Log.Info("Batch command called")

	for _, path := range args {
		if err := validation.IsValidInputPath(path); err != nil {
			root.Log.Fatalf("Error: %v", err)
		}
	}
	if err := validation.IsValidCurrencyCode(root.SharedFlags.Currency); err != nil {
		root.Log.Fatalf("Error: %v", err)
	}

	cfg := config.GetGlobalConfig()
	c, err := container.NewContainer(cfg)
	if err != nil {
		root.Log.Fatalf("Error initializing dependencies: %v", err)
	}

	formatting := common.FormattingFromConfig(cfg)
	opts := common.OptionsFromConfig(cfg)
	if root.SharedFlags.Currency != "" {
		opts.Currency = root.SharedFlags.Currency
	}

	var mapping importer.ColumnMapping
	if root.SharedFlags.Profile != "" {
		profile, err := c.GetProfileStore().LoadProfile(root.SharedFlags.Profile)
		if err != nil {
			root.Log.Fatalf("Error loading profile: %v", err)
		}
		mapping = profile.Mapping
		profile.Apply(&formatting, &opts)
	}

	var existing []models.ExistingTransaction
	if root.SharedFlags.Existing != "" {
		adapter := logging.NewLogrusAdapterFromLogger(root.Log)
		existing, err = export.ReadExistingTransactions(root.SharedFlags.Existing, adapter)
		if err != nil {
			root.Log.Fatalf("Error reading existing transactions: %v", err)
		}
	}

	aggregator := internalbatch.NewAggregator(c.GetProcessor(), c.GetLogger())
	result, err := aggregator.ImportPaths(args, mapping, formatting, existing, opts)
	if err != nil {
		root.Log.Fatalf("Error running batch import: %v", err)
	}

	if root.SharedFlags.Output != "" {
		var all []models.CandidateTransaction
		for _, fileResult := range result.Files {
			if fileResult.Err == nil {
				all = append(all, fileResult.Result.Transactions...)
			}
		}
		if err := export.WriteTransactions(all, root.SharedFlags.Output, c.GetLogger()); err != nil {
			root.Log.Fatalf("Error writing output CSV: %v", err)
		}
	}

	root.Log.WithFields(logrus.Fields{
		"files":      len(result.Files),
		"failed":     result.Failed,
		"total":      result.Stats.Total,
		"accepted":   result.Stats.Accepted,
		"duplicates": result.Stats.Duplicates,
		"date_range": result.DateRange.String(),
	}).Info("Batch import completed successfully!")
}
