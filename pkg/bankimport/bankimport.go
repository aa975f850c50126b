// Package bankimport is the public entry point for embedding the import
// pipeline in other programs. It wraps the internal processor behind a small
// surface: parse a bank export, get back normalized transactions with
// duplicate annotations.
package bankimport

import (
	"fjacquet/bank-import/internal/csvparse"
	"fjacquet/bank-import/internal/dedup"
	"fjacquet/bank-import/internal/importer"
	"fjacquet/bank-import/internal/logging"
	"fjacquet/bank-import/internal/models"
	"fjacquet/bank-import/internal/oldfilter"
)

// Re-exported configuration and result types.
type (
	Options           = importer.Options
	Result            = importer.Result
	ColumnMapping     = importer.ColumnMapping
	Field             = importer.Field
	FormattingOptions = csvparse.FormattingOptions
	DedupConfig       = dedup.Config

	CandidateTransaction = models.CandidateTransaction
	ExistingTransaction  = models.ExistingTransaction
	DuplicateMatch       = models.DuplicateMatch
	Money                = models.Money
)

// Field constants for column mappings.
const (
	FieldDate        = importer.FieldDate
	FieldAmount      = importer.FieldAmount
	FieldDescription = importer.FieldDescription
	FieldMerchant    = importer.FieldMerchant
	FieldNotes       = importer.FieldNotes
	FieldCheckNumber = importer.FieldCheckNumber
	FieldCategory    = importer.FieldCategory
	FieldIgnore      = importer.FieldIgnore
)

// DefaultFormattingOptions returns the formatting defaults: comma separator,
// double quote, headers present, ISO dates.
func DefaultFormattingOptions() FormattingOptions {
	return csvparse.DefaultFormattingOptions()
}

// DefaultDedupConfig returns the default duplicate detection thresholds.
func DefaultDedupConfig() DedupConfig {
	return dedup.DefaultConfig()
}

// Import parses content (CSV, OFX, or CAMT.053, detected automatically),
// normalizes its transactions, and annotates likely duplicates against the
// existing ledger.
func Import(content []byte, mapping ColumnMapping, formatting FormattingOptions, existing []ExistingTransaction, opts Options) (*Result, error) {
	return importer.New(defaultLogger()).Process(content, mapping, formatting, existing, opts)
}

// DetectInternal finds likely duplicate pairs within one batch, for example a
// file that contains the same transaction twice.
func DetectInternal(batch []CandidateTransaction, cfg DedupConfig) []models.InternalMatch {
	return dedup.DetectInternal(batch, cfg)
}

// FilterOld applies an old-transaction retention policy to a batch. See the
// oldfilter package for the available modes.
func FilterOld(batch []CandidateTransaction, newestExisting *models.ExistingTransaction, cfg oldfilter.Config) oldfilter.Result {
	if newestExisting == nil {
		return oldfilter.Filter(batch, nil, cfg)
	}
	date := newestExisting.Date
	return oldfilter.Filter(batch, &date, cfg)
}

func defaultLogger() logging.Logger {
	return logging.NewLogrusAdapterFromLogger(logging.GetLogger())
}
