// Package parsererror defines the typed failure values used at the import
// pipeline's fallible boundaries. Row-level validation problems are data, not
// errors, and live in the models package instead.
package parsererror

import (
	"fmt"
	"strings"
)

// ParseError represents an error during parsing of a single value.
type ParseError struct {
	Parser string
	Field  string
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: failed to parse %s='%s': %v",
		e.Parser, e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// StatementError represents a structural failure while extracting statements
// from an exchange-format document. It carries a human-readable message plus a
// list of structural detail strings for diagnostics. It is fatal for the whole
// import.
type StatementError struct {
	Msg     string
	Details []string
}

func (e *StatementError) Error() string {
	if len(e.Details) == 0 {
		return e.Msg
	}
	return fmt.Sprintf("%s: %s", e.Msg, strings.Join(e.Details, "; "))
}

// CurrencyMismatchError is returned when a statement's declared currency
// disagrees with the currency the caller expects for the destination account.
// Continuing would mis-scale amounts, so this stops the whole import.
type CurrencyMismatchError struct {
	Expected  string
	Actual    string
	AccountID string
}

func (e *CurrencyMismatchError) Error() string {
	if e.AccountID != "" {
		return fmt.Sprintf("currency mismatch for account %s: statement declares %s but %s was expected",
			e.AccountID, e.Actual, e.Expected)
	}
	return fmt.Sprintf("currency mismatch: statement declares %s but %s was expected", e.Actual, e.Expected)
}

// InvalidFormatError represents an error where the input content does not
// conform to any format the import processor recognizes.
type InvalidFormatError struct {
	ExpectedFormat string
	Snippet        string
	Msg            string
}

func (e *InvalidFormatError) Error() string {
	if e.Snippet != "" {
		return fmt.Sprintf("invalid format: %s. Expected: %s. Content snippet: '%s'",
			e.Msg, e.ExpectedFormat, e.Snippet)
	}
	return fmt.Sprintf("invalid format: %s. Expected: %s", e.Msg, e.ExpectedFormat)
}
