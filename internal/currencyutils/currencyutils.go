// Package currencyutils provides locale-aware number parsing and minor-unit
// conversion used throughout the import pipeline.
package currencyutils

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// currencySymbols matches currency symbols and whitespace that may surround an
// amount in bank exports.
var currencySymbols = regexp.MustCompile(`[€$£¥₣₤₧₹₺₽₩฿₫₲₴₸₼₪\s]`)

// decimalPlaces maps ISO 4217 codes to their minor-unit exponent where it is
// not the common 2. Sourced from the ISO 4217 table.
var decimalPlaces = map[string]int32{
	"BIF": 0, "CLP": 0, "DJF": 0, "GNF": 0, "ISK": 0, "JPY": 0,
	"KMF": 0, "KRW": 0, "PYG": 0, "RWF": 0, "UGX": 0, "UYI": 0,
	"VND": 0, "VUV": 0, "XAF": 0, "XOF": 0, "XPF": 0,
	"BHD": 3, "IQD": 3, "JOD": 3, "KWD": 3, "LYD": 3, "OMR": 3, "TND": 3,
}

// DecimalPlaces returns the number of minor-unit decimal places for a currency
// code. Unknown or empty codes get the common 2.
func DecimalPlaces(currency string) int32 {
	if places, ok := decimalPlaces[strings.ToUpper(currency)]; ok {
		return places
	}
	return 2
}

// ParseNumber parses a single cell into a decimal amount using the configured
// thousands and decimal separators. It strips currency symbols, treats a value
// fully wrapped in parentheses as negative (accounting notation) and honors a
// leading minus sign. The second return value is false when the cell is empty
// or unparseable; callers must check it rather than rely on a zero value.
func ParseNumber(value, thousandsSep, decimalSep string) (decimal.Decimal, bool) {
	cleaned := currencySymbols.ReplaceAllString(strings.TrimSpace(value), "")
	if cleaned == "" {
		return decimal.Zero, false
	}

	negative := false
	if strings.HasPrefix(cleaned, "(") && strings.HasSuffix(cleaned, ")") {
		negative = true
		cleaned = cleaned[1 : len(cleaned)-1]
	}
	if strings.HasPrefix(cleaned, "-") {
		negative = true
		cleaned = strings.TrimPrefix(cleaned, "-")
	}

	if thousandsSep != "" {
		cleaned = strings.ReplaceAll(cleaned, thousandsSep, "")
	}
	if decimalSep != "" && decimalSep != "." {
		cleaned = strings.ReplaceAll(cleaned, decimalSep, ".")
	}

	amount, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, false
	}
	if negative {
		amount = amount.Neg()
	}
	return amount, true
}

// FormatNumber renders a decimal with the given thousands and decimal
// separators. It is the inverse of ParseNumber for well-formed values and
// exists mainly so previews can echo amounts back in the user's locale.
func FormatNumber(amount decimal.Decimal, thousandsSep, decimalSep string, places int32) string {
	fixed := amount.StringFixed(places)

	negative := strings.HasPrefix(fixed, "-")
	fixed = strings.TrimPrefix(fixed, "-")

	intPart := fixed
	fracPart := ""
	if i := strings.IndexByte(fixed, '.'); i >= 0 {
		intPart, fracPart = fixed[:i], fixed[i+1:]
	}

	if thousandsSep != "" {
		var groups []string
		for len(intPart) > 3 {
			groups = append([]string{intPart[len(intPart)-3:]}, groups...)
			intPart = intPart[:len(intPart)-3]
		}
		groups = append([]string{intPart}, groups...)
		intPart = strings.Join(groups, thousandsSep)
	}

	out := intPart
	if fracPart != "" {
		sep := decimalSep
		if sep == "" {
			sep = "."
		}
		out += sep + fracPart
	}
	if negative {
		out = "-" + out
	}
	return out
}

// ToMinorUnits converts a major-unit decimal amount to an integer count of the
// currency's minor units, rounding half away from zero. All downstream
// arithmetic and comparison operates on this integer form.
func ToMinorUnits(amount decimal.Decimal, currency string) int64 {
	return amount.Shift(DecimalPlaces(currency)).Round(0).IntPart()
}

// FromMinorUnits converts an integer minor-unit amount back to a major-unit
// decimal for display.
func FromMinorUnits(minor int64, currency string) decimal.Decimal {
	return decimal.NewFromInt(minor).Shift(-DecimalPlaces(currency))
}
