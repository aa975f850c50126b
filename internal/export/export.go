// Package export reads and writes the pipeline's CSV interchange files: the
// ledger of already-recorded transactions on the way in, and normalized import
// candidates on the way out.
package export

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/gocarina/gocsv"

	"fjacquet/bank-import/internal/currencyutils"
	"fjacquet/bank-import/internal/dateutils"
	"fjacquet/bank-import/internal/fileutils"
	"fjacquet/bank-import/internal/logging"
	"fjacquet/bank-import/internal/models"
)

// Delimiter is the delimiter used for CSV output.
var Delimiter rune = ','

// SetDelimiter allows setting the delimiter for CSV output
func SetDelimiter(delim rune) {
	Delimiter = delim
	gocsv.TagSeparator = fmt.Sprintf("%c", delim)
}

// existingRow maps one line of the existing-transactions ledger file.
type existingRow struct {
	ID          string `csv:"id"`
	Date        string `csv:"date"`
	Amount      string `csv:"amount"`
	Currency    string `csv:"currency"`
	Description string `csv:"description"`
}

// candidateRow maps one normalized import candidate to the output file.
type candidateRow struct {
	Date            string `csv:"date"`
	Amount          string `csv:"amount"`
	Currency        string `csv:"currency"`
	Description     string `csv:"description"`
	Notes           string `csv:"notes"`
	CheckNumber     string `csv:"check_number"`
	Category        string `csv:"category"`
	Duplicate       bool   `csv:"duplicate"`
	MatchedID       string `csv:"matched_id"`
	MatchConfidence string `csv:"match_confidence"`
}

// ReadExistingTransactions loads the ledger of already-recorded transactions
// from a CSV file with id, date, amount, currency and description columns.
// Amounts are in major units with a dot decimal separator; dates are ISO.
func ReadExistingTransactions(path string, logger logging.Logger) ([]models.ExistingTransaction, error) {
	logger.Info("Reading existing transactions",
		logging.Field{Key: logging.FieldFile, Value: path})

	file, err := os.Open(path)
	if err != nil {
		logger.WithError(err).Error("Failed to open existing transactions file")
		return nil, fmt.Errorf("error opening existing transactions file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			logger.WithError(err).Warn("Failed to close file")
		}
	}()

	var rows []existingRow
	if err := gocsv.UnmarshalFile(file, &rows); err != nil {
		logger.WithError(err).Error("Failed to parse existing transactions file")
		return nil, fmt.Errorf("error parsing existing transactions file: %w", err)
	}

	existing := make([]models.ExistingTransaction, 0, len(rows))
	for i, row := range rows {
		date, ok := dateutils.ParsePattern(row.Date, "yyyy-MM-dd", dateutils.DefaultTwoDigitYearPivot)
		if !ok {
			return nil, fmt.Errorf("row %d: unparseable date %q", i+1, row.Date)
		}
		amount, ok := currencyutils.ParseNumber(row.Amount, ",", ".")
		if !ok {
			return nil, fmt.Errorf("row %d: unparseable amount %q", i+1, row.Amount)
		}
		existing = append(existing, models.ExistingTransaction{
			ID:          row.ID,
			Date:        date,
			Amount:      models.NewMoneyFromDecimal(amount, row.Currency),
			Description: row.Description,
		})
	}

	logger.Info("Read existing transactions",
		logging.Field{Key: logging.FieldCount, Value: len(existing)})
	return existing, nil
}

// WriteTransactions writes normalized candidates to a CSV file, one line per
// candidate, with duplicate annotations included so downstream tooling can
// review flagged lines.
func WriteTransactions(transactions []models.CandidateTransaction, csvFile string, logger logging.Logger) error {
	if transactions == nil {
		return fmt.Errorf("cannot write nil transactions to CSV")
	}

	logger.Info("Writing transactions to CSV file",
		logging.Field{Key: logging.FieldFile, Value: csvFile},
		logging.Field{Key: logging.FieldCount, Value: len(transactions)})

	file, err := fileutils.CreateFile(csvFile)
	if err != nil {
		logger.WithError(err).Error("Failed to create CSV file")
		return fmt.Errorf("error creating CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			logger.WithError(err).Warn("Failed to close file")
		}
	}()

	rows := make([]candidateRow, 0, len(transactions))
	for i := range transactions {
		t := &transactions[i]
		row := candidateRow{
			Date:        dateutils.ToISODate(t.Date),
			Amount:      t.Amount.Decimal().StringFixed(currencyutils.DecimalPlaces(t.Amount.Currency)),
			Currency:    t.Amount.Currency,
			Description: t.Description,
			Notes:       t.Notes,
			CheckNumber: t.CheckNumber,
			Category:    t.CategoryHint,
			Duplicate:   t.LikelyDuplicate,
			MatchedID:   t.MatchedExistingID,
		}
		if t.LikelyDuplicate {
			row.MatchConfidence = fmt.Sprintf("%.2f", t.MatchConfidence)
		}
		rows = append(rows, row)
	}

	// Configure CSV writer with custom delimiter
	csvWriter := csv.NewWriter(file)
	csvWriter.Comma = Delimiter

	if err := gocsv.MarshalCSV(rows, gocsv.NewSafeCSVWriter(csvWriter)); err != nil {
		logger.WithError(err).Error("Failed to marshal transactions to CSV")
		return fmt.Errorf("error writing CSV data: %w", err)
	}

	logger.Info("Successfully wrote transactions to CSV file",
		logging.Field{Key: logging.FieldFile, Value: csvFile},
		logging.Field{Key: logging.FieldCount, Value: len(transactions)})
	return nil
}
