package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account shapes recognized by the statement extractors.
const (
	AccountTypeBank       = "bank"
	AccountTypeCreditCard = "creditcard"
)

// DefaultCurrency is the fallback currency code used when a source document
// omits one.
const DefaultCurrency = "USD"

// Statement is the uniform record both statement extractors (OFX and
// CAMT.053) map their source documents into. Amounts stay in signed major
// units here; minor-unit conversion happens in the import processor, which
// knows the final currency context.
type Statement struct {
	AccountID   string
	AccountType string
	Currency    string
	StartDate   time.Time // zero when the source omits a date range
	EndDate     time.Time
	Balance     decimal.Decimal
	BalanceDate time.Time

	Transactions []StatementTransaction

	// Skipped records source entries the extractor could not turn into
	// transactions. They travel with the statement so the import processor
	// can surface them as row errors instead of losing them in logs.
	Skipped []SkippedEntry
}

// SkippedEntry describes one source entry dropped during extraction.
type SkippedEntry struct {
	Index   int
	Raw     []string
	Message string
}

// StatementTransaction is one transaction extracted from a statement. ID is
// always non-empty: the source's native identifier when present, otherwise a
// synthesized one, since downstream duplicate/idempotency logic requires a
// stable identifier.
type StatementTransaction struct {
	ID          string
	Type        string
	Posted      time.Time
	Amount      decimal.Decimal // signed, major units
	Name        string
	Memo        string
	CheckNumber string
	RefNumber   string
}
