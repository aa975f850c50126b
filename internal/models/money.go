package models

import (
	"fmt"

	"github.com/shopspring/decimal"

	"fjacquet/bank-import/internal/currencyutils"
)

// Money represents a monetary amount as an integer count of the currency's
// minor units (cents for USD). All pipeline arithmetic and comparison happens
// on this integer form; floating-point major units never enter the pipeline.
type Money struct {
	Amount   int64  `json:"amount" yaml:"amount"`
	Currency string `json:"currency" yaml:"currency"`
}

// NewMoney creates a Money value from a minor-unit amount and currency code.
func NewMoney(minorUnits int64, currency string) Money {
	return Money{Amount: minorUnits, Currency: currency}
}

// NewMoneyFromDecimal converts a major-unit decimal amount into minor units
// using the currency's decimal-place count, rounding half away from zero.
func NewMoneyFromDecimal(amount decimal.Decimal, currency string) Money {
	return Money{
		Amount:   currencyutils.ToMinorUnits(amount, currency),
		Currency: currency,
	}
}

// ZeroMoney returns a Money value with zero amount in the given currency.
func ZeroMoney(currency string) Money {
	return Money{Currency: currency}
}

// Decimal returns the amount as a major-unit decimal for display.
func (m Money) Decimal() decimal.Decimal {
	return currencyutils.FromMinorUnits(m.Amount, m.Currency)
}

// IsZero returns true if the amount is zero.
func (m Money) IsZero() bool {
	return m.Amount == 0
}

// IsNegative returns true if the amount is negative.
func (m Money) IsNegative() bool {
	return m.Amount < 0
}

// Neg returns the negated amount.
func (m Money) Neg() Money {
	return Money{Amount: -m.Amount, Currency: m.Currency}
}

// Abs returns the absolute amount.
func (m Money) Abs() Money {
	if m.Amount < 0 {
		return m.Neg()
	}
	return m
}

// MinorDiff returns the absolute minor-unit difference between two amounts.
// Returns an error if currencies don't match.
func (m Money) MinorDiff(other Money) (int64, error) {
	if m.Currency != other.Currency {
		return 0, fmt.Errorf("cannot compare different currencies: %s and %s", m.Currency, other.Currency)
	}
	diff := m.Amount - other.Amount
	if diff < 0 {
		diff = -diff
	}
	return diff, nil
}

// Equal returns true if two Money values have the same amount and currency.
func (m Money) Equal(other Money) bool {
	return m.Amount == other.Amount && m.Currency == other.Currency
}

// String returns a display representation such as "-75.50 USD".
func (m Money) String() string {
	return fmt.Sprintf("%s %s", m.Decimal().StringFixed(currencyutils.DecimalPlaces(m.Currency)), m.Currency)
}
