package currencyutils

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestParseNumber(t *testing.T) {
	tests := []struct {
		name         string
		value        string
		thousandsSep string
		decimalSep   string
		expected     string
		ok           bool
	}{
		{"Simple decimal", "123.45", ",", ".", "123.45", true},
		{"Negative decimal", "-123.45", ",", ".", "-123.45", true},
		{"Integer", "100", ",", ".", "100", true},
		{"Thousands separator", "1,234.56", ",", ".", "1234.56", true},
		{"Accounting negative", "(1,234.56)", ",", ".", "-1234.56", true},
		{"European format", "1.234,56", ".", ",", "1234.56", true},
		{"Apostrophe thousands", "1'234.56", "'", ".", "1234.56", true},
		{"Currency symbol EUR", "€123.45", ",", ".", "123.45", true},
		{"Currency symbol USD", "$1,234.56", ",", ".", "1234.56", true},
		{"Surrounding spaces", "  123.45  ", ",", ".", "123.45", true},
		{"Empty string", "", ",", ".", "0", false},
		{"Only symbol", "€", ",", ".", "0", false},
		{"Non-numeric", "abc", ",", ".", "0", false},
		{"Malformed decimal", "12.34.56", ",", ".", "0", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result, ok := ParseNumber(tc.value, tc.thousandsSep, tc.decimalSep)
			assert.Equal(t, tc.ok, ok)
			if tc.ok {
				expected, err := decimal.NewFromString(tc.expected)
				assert.NoError(t, err)
				assert.True(t, expected.Equal(result), "Expected %s but got %s", tc.expected, result.String())
			}
		})
	}
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		name         string
		amount       string
		thousandsSep string
		decimalSep   string
		places       int32
		expected     string
	}{
		{"US format", "1234.5", ",", ".", 2, "1,234.50"},
		{"Negative US format", "-1234.5", ",", ".", 2, "-1,234.50"},
		{"European format", "1234.56", ".", ",", 2, "1.234,56"},
		{"Zero places", "1234567", ",", ".", 0, "1,234,567"},
		{"No thousands separator", "1234.56", "", ".", 2, "1234.56"},
		{"Small amount", "7.5", ",", ".", 2, "7.50"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			amount, err := decimal.NewFromString(tc.amount)
			assert.NoError(t, err)
			assert.Equal(t, tc.expected, FormatNumber(amount, tc.thousandsSep, tc.decimalSep, tc.places))
		})
	}
}

// Formatting an amount and parsing it back must return the original value for
// any separator convention.
func TestFormatParseRoundTrip(t *testing.T) {
	amounts := []string{"0", "1", "-1", "999.99", "-999.99", "1234567.89", "-1234567.89", "0.01"}
	separators := []struct{ thousands, decimal string }{
		{",", "."},
		{".", ","},
		{"'", "."},
		{"", "."},
	}

	for _, a := range amounts {
		for _, sep := range separators {
			amount, err := decimal.NewFromString(a)
			assert.NoError(t, err)

			formatted := FormatNumber(amount, sep.thousands, sep.decimal, 2)
			parsed, ok := ParseNumber(formatted, sep.thousands, sep.decimal)
			assert.True(t, ok, "failed to parse %q back", formatted)
			assert.True(t, amount.Equal(parsed), "round trip of %s via %q gave %s", a, formatted, parsed.String())
		}
	}
}

func TestDecimalPlaces(t *testing.T) {
	assert.Equal(t, int32(2), DecimalPlaces("USD"))
	assert.Equal(t, int32(2), DecimalPlaces("chf"))
	assert.Equal(t, int32(0), DecimalPlaces("JPY"))
	assert.Equal(t, int32(3), DecimalPlaces("BHD"))
	assert.Equal(t, int32(2), DecimalPlaces(""))
	assert.Equal(t, int32(2), DecimalPlaces("XYZ"))
}

func TestToMinorUnits(t *testing.T) {
	tests := []struct {
		name     string
		amount   string
		currency string
		expected int64
	}{
		{"Whole dollars", "75", "USD", 7500},
		{"Dollars and cents", "-75.50", "USD", -7550},
		{"Rounds half away from zero", "10.005", "USD", 1001},
		{"Rounds half away from zero negative", "-10.005", "USD", -1001},
		{"Zero-decimal currency", "1234", "JPY", 1234},
		{"Three-decimal currency", "1.234", "BHD", 1234},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			amount, err := decimal.NewFromString(tc.amount)
			assert.NoError(t, err)
			assert.Equal(t, tc.expected, ToMinorUnits(amount, tc.currency))
		})
	}
}

func TestFromMinorUnits(t *testing.T) {
	assert.True(t, decimal.RequireFromString("-75.50").Equal(FromMinorUnits(-7550, "USD")))
	assert.True(t, decimal.RequireFromString("1234").Equal(FromMinorUnits(1234, "JPY")))
	assert.True(t, decimal.RequireFromString("1.234").Equal(FromMinorUnits(1234, "BHD")))
}
