// Package models provides the data structures used throughout the import
// pipeline.
package models

import "time"

// CandidateTransaction is a transaction produced by parsing an import file. It
// is not yet confirmed as accepted, duplicate, or filtered. The duplicate
// annotation fields are the only fields attached after construction; they do
// not affect the transaction's identity.
type CandidateTransaction struct {
	Date         time.Time
	Amount       Money
	Description  string
	Notes        string
	CheckNumber  string
	CategoryHint string

	// SourceRow is the zero-based index of the originating row or statement
	// transaction, used for error reporting and the internal-duplicate
	// tie-break.
	SourceRow int

	// Duplicate annotation, written back by the import processor after
	// detection.
	LikelyDuplicate   bool
	MatchedExistingID string
	MatchConfidence   float64
}

// ExistingTransaction is the minimal read-only projection of a stored
// transaction that duplicate detection needs. The engine never reads or writes
// anything else about stored transactions.
type ExistingTransaction struct {
	ID          string
	Date        time.Time
	Amount      Money
	Description string
}

// DuplicateMatch pairs one candidate with its best-matching existing
// transaction. At most one match is produced per candidate, fresh on every
// detection run.
type DuplicateMatch struct {
	CandidateIndex        int
	ExistingID            string
	Confidence            float64
	DateMatch             bool
	AmountMatch           bool
	DescriptionSimilarity float64
}

// InternalMatch pairs two candidates within one import batch that look like
// duplicates of each other. First and Second are batch indexes, with
// First always the earlier transaction by source row.
type InternalMatch struct {
	First                 int
	Second                int
	Confidence            float64
	DateMatch             bool
	AmountMatch           bool
	DescriptionSimilarity float64
}

// RowError records one row that failed validation during import. The row is
// excluded from output but never silently dropped; callers render these.
type RowError struct {
	RowIndex int      `json:"row_index" yaml:"row_index"`
	Raw      []string `json:"raw" yaml:"raw"`
	Message  string   `json:"message" yaml:"message"`
}

// ImportStats aggregates counts over one import run.
type ImportStats struct {
	Total      int `json:"total" yaml:"total"`
	Accepted   int `json:"accepted" yaml:"accepted"`
	Rejected   int `json:"rejected" yaml:"rejected"`
	Duplicates int `json:"duplicates" yaml:"duplicates"`
}
