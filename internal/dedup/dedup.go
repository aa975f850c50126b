// Package dedup finds the best-matching existing transaction for each import
// candidate, using month-window bucketing plus a weighted confidence score
// over date, amount, and description.
package dedup

import (
	"sort"
	"time"

	"fjacquet/bank-import/internal/dateutils"
	"fjacquet/bank-import/internal/models"
	"fjacquet/bank-import/internal/textutils"
)

// Config holds the detection thresholds and score weights. Treat values as
// immutable per call; validate once at construction.
type Config struct {
	// MaxDateDiffDays is the largest absolute day difference for which two
	// dates still count as matching. Date match is a hard gate.
	MaxDateDiffDays int

	// MaxAmountDiffMinor is the largest absolute minor-unit difference for
	// which two amounts still count as matching.
	MaxAmountDiffMinor int64

	// MinConfidence is the minimum confidence for a pair to be reported.
	MinConfidence float64

	DateWeight        float64
	AmountWeight      float64
	DescriptionWeight float64
}

// DefaultConfig returns the documented default thresholds: three days, one
// cent, and a 0.7 confidence floor.
func DefaultConfig() Config {
	return Config{
		MaxDateDiffDays:    3,
		MaxAmountDiffMinor: 1,
		MinConfidence:      0.7,
		DateWeight:         0.25,
		AmountWeight:       0.35,
		DescriptionWeight:  0.4,
	}
}

// Detect finds, for each candidate, the best-matching existing transaction
// passing the confidence threshold, or none. Existing transactions are
// bucketed by calendar month with adjacent-month duplication so a transaction
// near a month boundary is discoverable from the neighboring month without a
// full scan; per-candidate cost is bounded by transactions-per-month-window,
// not total history size.
func Detect(candidates []models.CandidateTransaction, existing []models.ExistingTransaction, cfg Config) []models.DuplicateMatch {
	if len(candidates) == 0 || len(existing) == 0 {
		return nil
	}

	buckets := make(map[string][]*models.ExistingTransaction)
	for i := range existing {
		e := &existing[i]
		key := dateutils.MonthKey(e.Date)
		prev, next := dateutils.AdjacentMonthKeys(e.Date)
		buckets[key] = append(buckets[key], e)
		buckets[prev] = append(buckets[prev], e)
		buckets[next] = append(buckets[next], e)
	}

	var matches []models.DuplicateMatch
	for i := range candidates {
		c := &candidates[i]
		var best *models.DuplicateMatch
		for _, e := range buckets[dateutils.MonthKey(c.Date)] {
			confidence, dateMatch, amountMatch, similarity := score(c.Date, c.Amount, c.Description,
				e.Date, e.Amount, e.Description, cfg)
			if confidence < cfg.MinConfidence {
				continue
			}
			if best == nil || confidence > best.Confidence {
				best = &models.DuplicateMatch{
					CandidateIndex:        i,
					ExistingID:            e.ID,
					Confidence:            confidence,
					DateMatch:             dateMatch,
					AmountMatch:           amountMatch,
					DescriptionSimilarity: similarity,
				}
			}
		}
		if best != nil {
			matches = append(matches, *best)
		}
	}
	return matches
}

// DetectInternal scans all unordered pairs within one batch, without month
// bucketing since batches are import-sized rather than ledger-sized. When a
// pair matches, the later transaction (higher source row) is consumed and
// cannot participate in further matches, while the earlier one stays eligible.
// The earlier-row-wins tie-break keeps the result stable regardless of input
// order.
func DetectInternal(batch []models.CandidateTransaction, cfg Config) []models.InternalMatch {
	if len(batch) < 2 {
		return nil
	}

	order := make([]int, len(batch))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return batch[order[a]].SourceRow < batch[order[b]].SourceRow
	})

	consumed := make([]bool, len(batch))
	var matches []models.InternalMatch
	for oi := 0; oi < len(order); oi++ {
		i := order[oi]
		if consumed[i] {
			continue
		}
		a := &batch[i]
		for oj := oi + 1; oj < len(order); oj++ {
			j := order[oj]
			if consumed[j] {
				continue
			}
			b := &batch[j]
			confidence, dateMatch, amountMatch, similarity := score(a.Date, a.Amount, a.Description,
				b.Date, b.Amount, b.Description, cfg)
			if confidence < cfg.MinConfidence {
				continue
			}
			consumed[j] = true
			matches = append(matches, models.InternalMatch{
				First:                 i,
				Second:                j,
				Confidence:            confidence,
				DateMatch:             dateMatch,
				AmountMatch:           amountMatch,
				DescriptionSimilarity: similarity,
			})
		}
	}
	return matches
}

// score computes the weighted confidence for one pair. A date outside the
// window zeroes the score immediately. A matching amount adds its weight and
// unlocks the description term; a mismatched amount halves the accumulated
// score and skips description entirely, since posting-amount rounding can
// legitimately drift slightly past the strict threshold.
func score(aDate time.Time, aAmount models.Money, aDesc string, bDate time.Time, bAmount models.Money, bDesc string, cfg Config) (confidence float64, dateMatch, amountMatch bool, similarity float64) {
	if dateutils.DayDiff(aDate, bDate) > cfg.MaxDateDiffDays {
		return 0, false, false, 0
	}
	dateMatch = true
	confidence = cfg.DateWeight

	diff, err := aAmount.MinorDiff(bAmount)
	if err != nil || diff > cfg.MaxAmountDiffMinor {
		// Amount mismatch heavily penalizes but does not zero out.
		return confidence / 2, dateMatch, false, 0
	}
	amountMatch = true
	confidence += cfg.AmountWeight

	similarity = textutils.SimilarityRatio(
		textutils.NormalizeDescription(aDesc),
		textutils.NormalizeDescription(bDesc),
	)
	confidence += cfg.DescriptionWeight * similarity
	return confidence, dateMatch, amountMatch, similarity
}
