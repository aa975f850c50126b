package csvparse

import (
	"regexp"
	"strings"
)

// separatorCandidates is the fixed set of separators considered by detection.
var separatorCandidates = []rune{',', ';', '\t', '|'}

// headerKeywords corroborate header-presence detection when they occur
// case-insensitively in the first row.
var headerKeywords = []string{
	"date", "amount", "description", "merchant", "payee", "memo",
	"notes", "category", "balance", "debit", "credit", "check",
}

var numericToken = regexp.MustCompile(`^\(?-?[\d.,'\s]+\)?$`)

// DetectSeparator counts occurrences of each candidate separator in the first
// line and picks the highest count, defaulting to comma when nothing occurs.
func DetectSeparator(text string) rune {
	firstLine := normalizeLineEndings(text)
	if i := strings.IndexByte(firstLine, '\n'); i >= 0 {
		firstLine = firstLine[:i]
	}

	best := ','
	bestCount := 0
	for _, candidate := range separatorCandidates {
		count := strings.Count(firstLine, string(candidate))
		if count > bestCount {
			best = candidate
			bestCount = count
		}
	}
	return best
}

// DetectHeaderRow guesses whether the first row is a header. If the first row
// contains no numeric-looking tokens while the second does, it is assumed to
// be a header; otherwise known header keywords in the first row are treated as
// corroborating evidence. The session's quote character governs record and
// field splitting; zero means double quote.
func DetectHeaderRow(text string, sep, quote rune) bool {
	if quote == 0 {
		quote = '"'
	}
	records := splitRecords(normalizeLineEndings(text), quote)
	if len(records) == 0 {
		return false
	}

	first := splitFields(records[0], sep, quote)
	if len(records) >= 2 {
		second := splitFields(records[1], sep, quote)
		if !hasNumericToken(first) && hasNumericToken(second) {
			return true
		}
	}

	for _, cell := range first {
		lowered := strings.ToLower(strings.TrimSpace(cell))
		for _, keyword := range headerKeywords {
			if strings.Contains(lowered, keyword) {
				return true
			}
		}
	}
	return false
}

func hasNumericToken(row []string) bool {
	for _, cell := range row {
		cell = strings.TrimSpace(cell)
		if cell == "" {
			continue
		}
		if numericToken.MatchString(cell) && strings.ContainsAny(cell, "0123456789") {
			return true
		}
	}
	return false
}
