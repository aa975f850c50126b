// Package common provides shared functionality for CLI commands
package common

import (
	"time"

	"github.com/sirupsen/logrus"

	"fjacquet/bank-import/internal/config"
	"fjacquet/bank-import/internal/container"
	"fjacquet/bank-import/internal/csvparse"
	"fjacquet/bank-import/internal/dedup"
	"fjacquet/bank-import/internal/export"
	"fjacquet/bank-import/internal/fileutils"
	"fjacquet/bank-import/internal/importer"
	"fjacquet/bank-import/internal/logging"
	"fjacquet/bank-import/internal/models"
	"fjacquet/bank-import/internal/validation"
)

// ImportRun bundles everything an import command needs to execute.
type ImportRun struct {
	Container  *container.Container
	Content    []byte
	Mapping    importer.ColumnMapping
	Formatting csvparse.FormattingOptions
	Existing   []models.ExistingTransaction
	Options    importer.Options
}

// PrepareImport loads the input file, the optional named profile, and the
// optional existing-transactions ledger, and resolves the effective
// formatting and import options from configuration plus profile overrides.
func PrepareImport(inputFile, existingFile, profileName, currency string, log *logrus.Logger) (*ImportRun, error) {
	if err := validation.IsValidInputPath(inputFile); err != nil {
		return nil, err
	}
	if err := validation.IsValidCurrencyCode(currency); err != nil {
		return nil, err
	}

	cfg := config.GetGlobalConfig()
	c, err := container.NewContainer(cfg)
	if err != nil {
		return nil, err
	}

	content, err := fileutils.ReadFile(inputFile)
	if err != nil {
		return nil, err
	}

	run := &ImportRun{
		Container:  c,
		Content:    content,
		Formatting: FormattingFromConfig(cfg),
		Options:    OptionsFromConfig(cfg),
	}
	if currency != "" {
		run.Options.Currency = currency
	}

	if profileName != "" {
		profile, err := c.GetProfileStore().LoadProfile(profileName)
		if err != nil {
			return nil, err
		}
		run.Mapping = profile.Mapping
		profile.Apply(&run.Formatting, &run.Options)
	}

	if existingFile != "" {
		adapter := logging.NewLogrusAdapterFromLogger(log)
		existing, err := export.ReadExistingTransactions(existingFile, adapter)
		if err != nil {
			return nil, err
		}
		run.Existing = existing
	}

	return run, nil
}

// FormattingFromConfig builds the effective CSV formatting options from the
// application configuration.
func FormattingFromConfig(cfg *config.Config) csvparse.FormattingOptions {
	return csvparse.FormattingOptions{
		Separator:          []rune(cfg.CSV.Delimiter)[0],
		Quote:              []rune(cfg.CSV.Quote)[0],
		HasHeaders:         cfg.CSV.HasHeaders,
		DateFormat:         cfg.CSV.DateFormat,
		ThousandsSeparator: cfg.CSV.ThousandsSeparator,
		DecimalSeparator:   cfg.CSV.DecimalSeparator,
		MaxRows:            cfg.CSV.MaxRows,
	}
}

// OptionsFromConfig builds the effective import options from the application
// configuration.
func OptionsFromConfig(cfg *config.Config) importer.Options {
	defaults := dedup.DefaultConfig()
	return importer.Options{
		Currency:           cfg.Import.Currency,
		FlipAmount:         cfg.Import.FlipAmount,
		AmountInMinorUnits: cfg.Import.AmountInMinorUnits,
		TwoDigitYearPivot:  cfg.Import.TwoDigitYearPivot,
		Dedup: dedup.Config{
			MaxDateDiffDays:    cfg.Dedup.MaxDateDiffDays,
			MaxAmountDiffMinor: cfg.Dedup.MaxAmountDiffMinor,
			MinConfidence:      cfg.Dedup.MinConfidence,
			DateWeight:         defaults.DateWeight,
			AmountWeight:       defaults.AmountWeight,
			DescriptionWeight:  defaults.DescriptionWeight,
		},
	}
}

// NewestExistingDate returns the most recent date among existing transactions,
// or nil when there are none.
func NewestExistingDate(existing []models.ExistingTransaction) *time.Time {
	var newest *time.Time
	for i := range existing {
		d := existing[i].Date
		if newest == nil || d.After(*newest) {
			newest = &d
		}
	}
	return newest
}
