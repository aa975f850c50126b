// Package importer orchestrates the import pipeline: format detection,
// parsing, column-to-field mapping, currency-aware amount conversion, per-row
// error collection, and duplicate annotation.
package importer

import (
	"strings"

	"fjacquet/bank-import/internal/camtparser"
	"fjacquet/bank-import/internal/csvparse"
	"fjacquet/bank-import/internal/currencyutils"
	"fjacquet/bank-import/internal/dateutils"
	"fjacquet/bank-import/internal/dedup"
	"fjacquet/bank-import/internal/logging"
	"fjacquet/bank-import/internal/models"
	"fjacquet/bank-import/internal/ofxparser"
	"fjacquet/bank-import/internal/parsererror"
)

// Options configures one import run. Treat as immutable per call.
type Options struct {
	// Currency is the destination account's currency. The tabular path uses
	// it for minor-unit conversion; the statement path treats it as the
	// expected currency and fails fast on a mismatch.
	Currency string

	// FlipAmount negates every parsed amount, for exports that report
	// spending as positive numbers.
	FlipAmount bool

	// AmountInMinorUnits marks the source as already expressing amounts in
	// minor units, skipping decimal-place scaling.
	AmountInMinorUnits bool

	// TwoDigitYearPivot overrides the two-digit-year pivot. Zero means the
	// default.
	TwoDigitYearPivot int

	Dedup dedup.Config
}

// Result is the outcome of one import run: normalized candidates annotated
// with duplicate metadata, row-level errors, parse warnings, and aggregate
// statistics.
type Result struct {
	Transactions []models.CandidateTransaction
	Matches      []models.DuplicateMatch
	Errors       []models.RowError
	Warnings     []string
	Stats        models.ImportStats
}

// Processor runs the import pipeline.
type Processor struct {
	logger logging.Logger
	ofx    *ofxparser.Parser
	camt   *camtparser.Parser
}

// New creates an import processor. A nil logger gets a default.
func New(logger logging.Logger) *Processor {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Processor{
		logger: logger,
		ofx:    ofxparser.New(logger),
		camt:   camtparser.New(logger),
	}
}

// Process inspects raw content for format markers, parses it down the
// matching path, and returns normalized candidates with duplicate annotations.
// Structural and currency failures return an error; row-level problems are
// collected in the result instead.
func (p *Processor) Process(content []byte, mapping ColumnMapping, formatting csvparse.FormattingOptions, existing []models.ExistingTransaction, opts Options) (*Result, error) {
	var result *Result
	var err error

	switch {
	case ofxparser.Sniff(content):
		p.logger.Info("Detected OFX content")
		result, err = p.processStatements(p.ofx.Extract, content, opts)
	case camtparser.Sniff(content):
		p.logger.Info("Detected CAMT.053 content")
		result, err = p.processStatements(p.camt.Extract, content, opts)
	default:
		p.logger.Info("Treating content as delimited text")
		result, err = p.processTabular(content, mapping, formatting, opts)
	}
	if err != nil {
		return nil, err
	}

	p.annotateDuplicates(result, existing, opts.Dedup)

	p.logger.Info("Import processed",
		logging.Field{Key: logging.FieldCount, Value: result.Stats.Total},
		logging.Field{Key: logging.FieldAccepted, Value: result.Stats.Accepted},
		logging.Field{Key: logging.FieldRejected, Value: result.Stats.Rejected},
		logging.Field{Key: logging.FieldDuplicates, Value: result.Stats.Duplicates})
	return result, nil
}

// processTabular parses delimited text and resolves each row independently.
// A row with an unusable date or amount becomes a RowError and is excluded
// from output; a row with a valid date and amount but blank optional fields is
// still a valid transaction.
func (p *Processor) processTabular(content []byte, mapping ColumnMapping, formatting csvparse.FormattingOptions, opts Options) (*Result, error) {
	table := csvparse.Parse(string(content), formatting)

	result := &Result{Warnings: table.Warnings}
	result.Stats.Total = len(table.Rows)

	index := mapping.resolve(table.Headers)
	if _, ok := index[FieldDate]; !ok {
		return nil, &parsererror.InvalidFormatError{
			ExpectedFormat: "delimited text with a mapped date column",
			Msg:            "no column is mapped to the date field",
		}
	}
	if _, ok := index[FieldAmount]; !ok {
		return nil, &parsererror.InvalidFormatError{
			ExpectedFormat: "delimited text with a mapped amount column",
			Msg:            "no column is mapped to the amount field",
		}
	}

	pivot := opts.TwoDigitYearPivot
	if pivot == 0 {
		pivot = dateutils.DefaultTwoDigitYearPivot
	}

	for rowIndex, row := range table.Rows {
		cell := func(field Field) string {
			i, ok := index[field]
			if !ok || i >= len(row) {
				return ""
			}
			return row[i]
		}

		date, ok := dateutils.ParsePattern(cell(FieldDate), formatting.DateFormat, pivot)
		if !ok {
			result.Errors = append(result.Errors, models.RowError{
				RowIndex: rowIndex,
				Raw:      row,
				Message:  "missing or unparseable date '" + cell(FieldDate) + "'",
			})
			continue
		}

		amount, ok := currencyutils.ParseNumber(cell(FieldAmount), formatting.ThousandsSeparator, formatting.DecimalSeparator)
		if !ok {
			result.Errors = append(result.Errors, models.RowError{
				RowIndex: rowIndex,
				Raw:      row,
				Message:  "missing or unparseable amount '" + cell(FieldAmount) + "'",
			})
			continue
		}
		if opts.FlipAmount {
			amount = amount.Neg()
		}

		var money models.Money
		if opts.AmountInMinorUnits {
			money = models.NewMoney(amount.Round(0).IntPart(), opts.Currency)
		} else {
			money = models.NewMoneyFromDecimal(amount, opts.Currency)
		}

		description := cell(FieldDescription)
		if description == "" {
			// The merchant column doubles as the label when no
			// description is present.
			description = cell(FieldMerchant)
		}

		result.Transactions = append(result.Transactions, models.CandidateTransaction{
			Date:         date,
			Amount:       money,
			Description:  description,
			Notes:        cell(FieldNotes),
			CheckNumber:  cell(FieldCheckNumber),
			CategoryHint: cell(FieldCategory),
			SourceRow:    rowIndex,
		})
	}

	result.Stats.Accepted = len(result.Transactions)
	result.Stats.Rejected = len(result.Errors)
	return result, nil
}

// processStatements runs one of the statement extractors and converts each
// statement's transactions using that statement's own declared currency. If
// the caller declared an expected currency and any statement disagrees, the
// whole import fails fast: continuing would mis-scale amounts. Entries the
// extractor could not convert come back as row errors, never as silent drops.
func (p *Processor) processStatements(extract func([]byte) ([]models.Statement, error), content []byte, opts Options) (*Result, error) {
	statements, err := extract(content)
	if err != nil {
		return nil, err
	}

	result := &Result{}
	row := 0
	for i := range statements {
		stmt := &statements[i]
		if opts.Currency != "" && !strings.EqualFold(stmt.Currency, opts.Currency) {
			return nil, &parsererror.CurrencyMismatchError{
				Expected:  strings.ToUpper(opts.Currency),
				Actual:    stmt.Currency,
				AccountID: stmt.AccountID,
			}
		}

		for j := range stmt.Transactions {
			txn := &stmt.Transactions[j]
			result.Stats.Total++

			amount := txn.Amount
			if opts.FlipAmount {
				amount = amount.Neg()
			}

			description := txn.Name
			notes := txn.Memo
			if description == "" {
				// Memo doubles as the label when the source has no
				// payee name.
				description, notes = txn.Memo, ""
			}

			result.Transactions = append(result.Transactions, models.CandidateTransaction{
				Date:         txn.Posted,
				Amount:       models.NewMoneyFromDecimal(amount, stmt.Currency),
				Description:  description,
				Notes:        notes,
				CheckNumber:  txn.CheckNumber,
				CategoryHint: "",
				SourceRow:    row,
			})
			row++
		}

		for _, skip := range stmt.Skipped {
			result.Stats.Total++
			result.Errors = append(result.Errors, models.RowError{
				RowIndex: skip.Index,
				Raw:      skip.Raw,
				Message:  skip.Message,
			})
		}
	}

	result.Stats.Accepted = len(result.Transactions)
	result.Stats.Rejected = len(result.Errors)
	return result, nil
}

// annotateDuplicates runs detection over the full candidate batch and writes
// the confidence and matched id back onto each candidate. The annotation does
// not affect the candidate's identity.
func (p *Processor) annotateDuplicates(result *Result, existing []models.ExistingTransaction, cfg dedup.Config) {
	if cfg == (dedup.Config{}) {
		cfg = dedup.DefaultConfig()
	}

	result.Matches = dedup.Detect(result.Transactions, existing, cfg)
	for _, match := range result.Matches {
		c := &result.Transactions[match.CandidateIndex]
		c.LikelyDuplicate = true
		c.MatchedExistingID = match.ExistingID
		c.MatchConfidence = match.Confidence
	}
	result.Stats.Duplicates = len(result.Matches)
}
