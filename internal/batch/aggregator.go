// Package batch provides functionality for importing and aggregating multiple
// bank export files in one run.
package batch

import (
	"fmt"
	"path/filepath"
	"time"

	"fjacquet/bank-import/internal/csvparse"
	"fjacquet/bank-import/internal/fileutils"
	"fjacquet/bank-import/internal/importer"
	"fjacquet/bank-import/internal/logging"
	"fjacquet/bank-import/internal/models"
	"fjacquet/bank-import/internal/scanner"
)

// DateRange represents a date range with start and end dates
type DateRange struct {
	Start time.Time
	End   time.Time
}

// String returns the date range in the format "YYYY-MM-DD_YYYY-MM-DD"
func (dr DateRange) String() string {
	if dr.Start.IsZero() || dr.End.IsZero() {
		return ""
	}
	return fmt.Sprintf("%s_%s",
		dr.Start.Format("2006-01-02"),
		dr.End.Format("2006-01-02"))
}

// Merge combines this date range with another, returning the overall range
func (dr DateRange) Merge(other DateRange) DateRange {
	start := dr.Start
	end := dr.End

	if dr.Start.IsZero() {
		start = other.Start
	} else if !other.Start.IsZero() && other.Start.Before(start) {
		start = other.Start
	}

	if dr.End.IsZero() {
		end = other.End
	} else if !other.End.IsZero() && other.End.After(end) {
		end = other.End
	}

	return DateRange{Start: start, End: end}
}

// rangeOf computes the date range spanned by a batch of candidates.
func rangeOf(transactions []models.CandidateTransaction) DateRange {
	var dr DateRange
	for i := range transactions {
		d := transactions[i].Date
		if dr.Start.IsZero() || d.Before(dr.Start) {
			dr.Start = d
		}
		if dr.End.IsZero() || d.After(dr.End) {
			dr.End = d
		}
	}
	return dr
}

// FileResult is the outcome of importing one file. Err is set when the file
// failed structurally; the rest of the batch still runs.
type FileResult struct {
	File      string
	Result    *importer.Result
	DateRange DateRange
	Err       error
}

// Result aggregates a whole batch run.
type Result struct {
	Files     []FileResult
	Stats     models.ImportStats
	DateRange DateRange
	Failed    int
}

// Aggregator imports many files through one processor and merges the outcomes.
type Aggregator struct {
	processor *importer.Processor
	scanner   *scanner.FileScanner
	logger    logging.Logger
}

// NewAggregator creates a new Aggregator instance
func NewAggregator(processor *importer.Processor, logger logging.Logger) *Aggregator {
	if logger == nil {
		logger = logging.NewLogrusAdapterFromLogger(logging.GetLogger())
	}
	return &Aggregator{
		processor: processor,
		scanner:   scanner.NewFileScanner(logger),
		logger:    logger,
	}
}

// ImportPaths discovers importable files under the given paths and runs the
// full import pipeline on each. A file that fails structurally is recorded and
// skipped; it does not abort the batch. Candidates from later files are checked
// for duplicates against the same existing ledger as earlier ones.
func (a *Aggregator) ImportPaths(paths []string, mapping importer.ColumnMapping, formatting csvparse.FormattingOptions, existing []models.ExistingTransaction, opts importer.Options) (*Result, error) {
	files, err := a.scanner.ScanPaths(paths)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no importable files found")
	}

	batch := &Result{}
	for _, file := range files {
		fileResult := FileResult{File: file}

		content, err := fileutils.ReadFile(file)
		if err == nil {
			fileResult.Result, err = a.processor.Process(content, mapping, formatting, existing, opts)
		}
		if err != nil {
			a.logger.WithError(err).Warn("Skipping file that failed to import",
				logging.Field{Key: logging.FieldFile, Value: filepath.Base(file)})
			fileResult.Err = err
			batch.Failed++
			batch.Files = append(batch.Files, fileResult)
			continue
		}

		fileResult.DateRange = rangeOf(fileResult.Result.Transactions)
		batch.DateRange = batch.DateRange.Merge(fileResult.DateRange)
		batch.Stats.Total += fileResult.Result.Stats.Total
		batch.Stats.Accepted += fileResult.Result.Stats.Accepted
		batch.Stats.Rejected += fileResult.Result.Stats.Rejected
		batch.Stats.Duplicates += fileResult.Result.Stats.Duplicates
		batch.Files = append(batch.Files, fileResult)
	}

	a.logger.Info("Batch import finished",
		logging.Field{Key: logging.FieldCount, Value: len(batch.Files)},
		logging.Field{Key: "failed", Value: batch.Failed},
		logging.Field{Key: logging.FieldAccepted, Value: batch.Stats.Accepted},
		logging.Field{Key: logging.FieldDuplicates, Value: batch.Stats.Duplicates})
	return batch, nil
}
