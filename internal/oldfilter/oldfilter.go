// Package oldfilter post-processes import candidates against a cutoff date
// derived from the most recent existing transaction, applying one of three
// retention policies.
package oldfilter

import (
	"time"

	"fjacquet/bank-import/internal/dateutils"
	"fjacquet/bank-import/internal/models"
)

// Mode selects the retention policy for candidates older than the cutoff.
type Mode string

const (
	// ModeDoNotIgnore includes every candidate; no cutoff is computed. This
	// is the safe default for a first import into an empty vault.
	ModeDoNotIgnore Mode = "do-not-ignore"

	// ModeIgnoreAll excludes every candidate strictly before the cutoff.
	ModeIgnoreAll Mode = "ignore-all"

	// ModeIgnoreDuplicates excludes an old candidate only if it was flagged
	// as a likely duplicate. An old candidate matching nothing existing is
	// probably data the user has not seen, even if chronologically old.
	ModeIgnoreDuplicates Mode = "ignore-duplicates"
)

// Config holds the filter policy.
type Config struct {
	Mode       Mode
	CutoffDays int
}

// Decision records whether one candidate passed the filter and why.
type Decision struct {
	Included bool   `json:"included" yaml:"included"`
	Reason   string `json:"reason" yaml:"reason"`
}

// Stats aggregates filter counts. The old-and-duplicate and
// old-and-not-duplicate counts are tracked independent of the active mode, so
// a UI can explain how counts would change if the mode were switched without
// re-running detection.
type Stats struct {
	Total            int `json:"total" yaml:"total"`
	Included         int `json:"included" yaml:"included"`
	Excluded         int `json:"excluded" yaml:"excluded"`
	OldDuplicates    int `json:"old_duplicates" yaml:"old_duplicates"`
	OldNonDuplicates int `json:"old_non_duplicates" yaml:"old_non_duplicates"`
}

// Result holds one decision per candidate, positionally aligned, plus
// aggregate counts.
type Result struct {
	Decisions []Decision
	Stats     Stats
}

// Filter evaluates every candidate against the cutoff derived from the newest
// existing transaction date. A nil newestExisting means there is nothing to
// compare against, so everything is included.
func Filter(candidates []models.CandidateTransaction, newestExisting *time.Time, cfg Config) Result {
	result := Result{
		Decisions: make([]Decision, len(candidates)),
		Stats:     Stats{Total: len(candidates)},
	}

	// Only the two exclusion modes activate the cutoff. Anything else,
	// including an unrecognized mode string, keeps every candidate: a typo in
	// the mode must not drop data.
	active := cfg.Mode == ModeIgnoreAll || cfg.Mode == ModeIgnoreDuplicates
	if !active || newestExisting == nil {
		for i := range result.Decisions {
			result.Decisions[i] = Decision{Included: true, Reason: "no cutoff active"}
		}
		result.Stats.Included = len(candidates)
		return result
	}

	cutoff := dateutils.Truncate(*newestExisting).AddDate(0, 0, -cfg.CutoffDays)

	for i := range candidates {
		c := &candidates[i]
		old := dateutils.Truncate(c.Date).Before(cutoff)
		if !old {
			result.Decisions[i] = Decision{Included: true, Reason: "within cutoff window"}
			result.Stats.Included++
			continue
		}

		if c.LikelyDuplicate {
			result.Stats.OldDuplicates++
		} else {
			result.Stats.OldNonDuplicates++
		}

		switch cfg.Mode {
		case ModeIgnoreAll:
			result.Decisions[i] = Decision{Included: false, Reason: "older than cutoff"}
			result.Stats.Excluded++
		case ModeIgnoreDuplicates:
			if c.LikelyDuplicate {
				result.Decisions[i] = Decision{Included: false, Reason: "older than cutoff and likely duplicate"}
				result.Stats.Excluded++
			} else {
				result.Decisions[i] = Decision{Included: true, Reason: "older than cutoff but not a duplicate"}
				result.Stats.Included++
			}
		}
	}
	return result
}
