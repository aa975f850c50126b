package batch

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fjacquet/bank-import/internal/csvparse"
	"fjacquet/bank-import/internal/importer"
	"fjacquet/bank-import/internal/logging"
	"fjacquet/bank-import/internal/models"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDateRangeString(t *testing.T) {
	dr := DateRange{Start: date(2023, time.June, 1), End: date(2023, time.June, 30)}
	assert.Equal(t, "2023-06-01_2023-06-30", dr.String())
	assert.Equal(t, "", DateRange{}.String())
	assert.Equal(t, "", DateRange{Start: date(2023, time.June, 1)}.String())
}

func TestDateRangeMerge(t *testing.T) {
	june := DateRange{Start: date(2023, time.June, 1), End: date(2023, time.June, 30)}
	july := DateRange{Start: date(2023, time.July, 1), End: date(2023, time.July, 31)}

	merged := june.Merge(july)
	assert.Equal(t, date(2023, time.June, 1), merged.Start)
	assert.Equal(t, date(2023, time.July, 31), merged.End)

	assert.Equal(t, june, DateRange{}.Merge(june))
	assert.Equal(t, june, june.Merge(DateRange{}))
}

func TestRangeOf(t *testing.T) {
	transactions := []models.CandidateTransaction{
		{Date: date(2023, time.June, 15)},
		{Date: date(2023, time.June, 3)},
		{Date: date(2023, time.June, 28)},
	}
	dr := rangeOf(transactions)
	assert.Equal(t, date(2023, time.June, 3), dr.Start)
	assert.Equal(t, date(2023, time.June, 28), dr.End)

	assert.True(t, rangeOf(nil).Start.IsZero())
}

func testMapping() importer.ColumnMapping {
	return importer.ColumnMapping{
		"Date":        importer.FieldDate,
		"Amount":      importer.FieldAmount,
		"Description": importer.FieldDescription,
	}
}

func TestImportPaths(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "june.csv"), []byte(
		"Date,Amount,Description\n2023-06-15,-75.50,coffee\n2023-06-20,-12.00,lunch\n"), 0600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "july.csv"), []byte(
		"Date,Amount,Description\n2023-07-02,-30.00,groceries\n"), 0600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("not a bank file"), 0600))

	a := NewAggregator(importer.New(&logging.MockLogger{}), &logging.MockLogger{})
	result, err := a.ImportPaths([]string{dir}, testMapping(), csvparse.DefaultFormattingOptions(), nil, importer.Options{Currency: "USD"})
	require.NoError(t, err)

	assert.Len(t, result.Files, 2)
	assert.Equal(t, 0, result.Failed)
	assert.Equal(t, 3, result.Stats.Total)
	assert.Equal(t, 3, result.Stats.Accepted)
	assert.Equal(t, "2023-06-15_2023-07-02", result.DateRange.String())
}

func TestImportPathsFailedFileDoesNotAbortBatch(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.csv"), []byte(
		"When,Value\n2023-06-15,-75.50\n"), 0600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "good.csv"), []byte(
		"Date,Amount,Description\n2023-06-15,-75.50,coffee\n"), 0600))

	a := NewAggregator(importer.New(&logging.MockLogger{}), &logging.MockLogger{})
	result, err := a.ImportPaths([]string{dir}, testMapping(), csvparse.DefaultFormattingOptions(), nil, importer.Options{Currency: "USD"})
	require.NoError(t, err)

	assert.Len(t, result.Files, 2)
	assert.Equal(t, 1, result.Failed)
	assert.Error(t, result.Files[0].Err)
	assert.NoError(t, result.Files[1].Err)
	assert.Equal(t, 1, result.Stats.Accepted)
}

func TestImportPathsNoImportableFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0600))

	a := NewAggregator(importer.New(&logging.MockLogger{}), &logging.MockLogger{})
	_, err := a.ImportPaths([]string{dir}, testMapping(), csvparse.DefaultFormattingOptions(), nil, importer.Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no importable files")
}

func TestImportPathsChecksExistingLedger(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "june.csv"), []byte(
		"Date,Amount,Description\n2023-06-15,-75.50,STARBUCKS #42\n"), 0600))

	existing := []models.ExistingTransaction{
		{
			ID:          "tx-1",
			Date:        date(2023, time.June, 15),
			Amount:      models.NewMoney(-7550, "USD"),
			Description: "STARBUCKS #42",
		},
	}

	a := NewAggregator(importer.New(&logging.MockLogger{}), &logging.MockLogger{})
	result, err := a.ImportPaths([]string{dir}, testMapping(), csvparse.DefaultFormattingOptions(), existing, importer.Options{Currency: "USD"})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Stats.Duplicates)
}
