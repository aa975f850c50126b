package oldfilter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"fjacquet/bank-import/internal/models"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Newest existing transaction on 2023-06-30, cutoff 7 days back = 2023-06-23.
// Three candidates: an old duplicate, an old non-duplicate, and a recent one.
func sampleBatch() []models.CandidateTransaction {
	return []models.CandidateTransaction{
		{Date: day(2023, time.June, 10), Description: "old duplicate", LikelyDuplicate: true},
		{Date: day(2023, time.June, 10), Description: "old non-duplicate"},
		{Date: day(2023, time.June, 28), Description: "recent"},
	}
}

func TestFilterDoNotIgnore(t *testing.T) {
	newest := day(2023, time.June, 30)
	result := Filter(sampleBatch(), &newest, Config{Mode: ModeDoNotIgnore, CutoffDays: 7})

	assert.Equal(t, 3, result.Stats.Total)
	assert.Equal(t, 3, result.Stats.Included)
	assert.Equal(t, 0, result.Stats.Excluded)
	for _, d := range result.Decisions {
		assert.True(t, d.Included)
	}
	// No cutoff is computed, so the breakdown counters stay zero.
	assert.Equal(t, 0, result.Stats.OldDuplicates)
	assert.Equal(t, 0, result.Stats.OldNonDuplicates)
}

func TestFilterIgnoreAll(t *testing.T) {
	newest := day(2023, time.June, 30)
	result := Filter(sampleBatch(), &newest, Config{Mode: ModeIgnoreAll, CutoffDays: 7})

	assert.False(t, result.Decisions[0].Included)
	assert.False(t, result.Decisions[1].Included)
	assert.True(t, result.Decisions[2].Included)
	assert.Equal(t, 1, result.Stats.Included)
	assert.Equal(t, 2, result.Stats.Excluded)
	assert.Equal(t, 1, result.Stats.OldDuplicates)
	assert.Equal(t, 1, result.Stats.OldNonDuplicates)
}

func TestFilterIgnoreDuplicates(t *testing.T) {
	newest := day(2023, time.June, 30)
	result := Filter(sampleBatch(), &newest, Config{Mode: ModeIgnoreDuplicates, CutoffDays: 7})

	assert.False(t, result.Decisions[0].Included)
	assert.True(t, result.Decisions[1].Included)
	assert.True(t, result.Decisions[2].Included)
	assert.Equal(t, 2, result.Stats.Included)
	assert.Equal(t, 1, result.Stats.Excluded)
	assert.Equal(t, 1, result.Stats.OldDuplicates)
	assert.Equal(t, 1, result.Stats.OldNonDuplicates)
}

func TestFilterNoExistingTransactions(t *testing.T) {
	result := Filter(sampleBatch(), nil, Config{Mode: ModeIgnoreAll, CutoffDays: 7})
	assert.Equal(t, 3, result.Stats.Included)
	for _, d := range result.Decisions {
		assert.True(t, d.Included)
		assert.Equal(t, "no cutoff active", d.Reason)
	}
}

func TestFilterEmptyMode(t *testing.T) {
	newest := day(2023, time.June, 30)
	result := Filter(sampleBatch(), &newest, Config{CutoffDays: 7})
	assert.Equal(t, 3, result.Stats.Included)
}

// A mode string the filter does not recognize must behave like the inactive
// mode: every candidate keeps a decision, nothing is dropped without a reason.
func TestFilterUnrecognizedMode(t *testing.T) {
	newest := day(2023, time.June, 30)
	batch := []models.CandidateTransaction{
		{Date: day(2023, time.June, 10), LikelyDuplicate: true},
	}

	result := Filter(batch, &newest, Config{Mode: "ignore-al", CutoffDays: 7})

	assert.Equal(t, 1, result.Stats.Total)
	assert.Equal(t, result.Stats.Total, result.Stats.Included+result.Stats.Excluded)
	assert.True(t, result.Decisions[0].Included)
	assert.NotEmpty(t, result.Decisions[0].Reason)
}

// The cutoff comparison is strict: a candidate exactly on the cutoff day is
// kept.
func TestFilterCutoffBoundary(t *testing.T) {
	newest := day(2023, time.June, 30)
	batch := []models.CandidateTransaction{
		{Date: day(2023, time.June, 23)}, // exactly on cutoff
		{Date: day(2023, time.June, 22)}, // one day before
	}

	result := Filter(batch, &newest, Config{Mode: ModeIgnoreAll, CutoffDays: 7})
	assert.True(t, result.Decisions[0].Included)
	assert.False(t, result.Decisions[1].Included)
}

func TestFilterZeroCutoffDays(t *testing.T) {
	newest := day(2023, time.June, 30)
	batch := []models.CandidateTransaction{
		{Date: day(2023, time.June, 30)},
		{Date: day(2023, time.June, 29)},
	}

	result := Filter(batch, &newest, Config{Mode: ModeIgnoreAll})
	assert.True(t, result.Decisions[0].Included)
	assert.False(t, result.Decisions[1].Included)
}

func TestFilterEmptyBatch(t *testing.T) {
	newest := day(2023, time.June, 30)
	result := Filter(nil, &newest, Config{Mode: ModeIgnoreAll, CutoffDays: 7})
	assert.Equal(t, 0, result.Stats.Total)
	assert.Empty(t, result.Decisions)
}
