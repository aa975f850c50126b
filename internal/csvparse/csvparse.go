// Package csvparse turns raw delimited text into header and row arrays,
// tolerant of quoted fields, escaped quotes, and quoted newlines.
//
// encoding/csv is deliberately not used here: the pipeline needs a
// configurable quote character, ragged rows kept with per-row warnings, and
// field trimming after unquoting, none of which the standard reader offers.
package csvparse

import (
	"fmt"
	"strings"
)

// FormattingOptions is the immutable per-session parse configuration. It is
// created once per import session and never mutated mid-parse.
type FormattingOptions struct {
	Separator          rune
	HasHeaders         bool
	ThousandsSeparator string
	DecimalSeparator   string
	DateFormat         string
	Quote              rune

	// MaxRows truncates the data rows after full parsing, for preview
	// rendering. Zero means unlimited.
	MaxRows int
}

// DefaultFormattingOptions returns the options used when the caller supplies
// none: comma-separated, quoted with double quotes, US number formatting and
// ISO dates.
func DefaultFormattingOptions() FormattingOptions {
	return FormattingOptions{
		Separator:          ',',
		HasHeaders:         true,
		ThousandsSeparator: ",",
		DecimalSeparator:   ".",
		DateFormat:         "yyyy-MM-dd",
		Quote:              '"',
	}
}

// ParsedTable is the result of parsing delimited text. Every row conceptually
// aligns to Headers by position; length mismatches are recorded as warnings,
// not errors, and the ragged row is kept.
type ParsedTable struct {
	Headers   []string
	Rows      [][]string
	Truncated bool
	Warnings  []string
}

// Parse splits raw text into headers and rows according to opts. It never
// returns an error: empty input yields an empty table with a warning, and all
// structural oddities become warnings. The caller decides what is fatal.
func Parse(text string, opts FormattingOptions) ParsedTable {
	if opts.Separator == 0 {
		opts.Separator = ','
	}
	if opts.Quote == 0 {
		opts.Quote = '"'
	}

	table := ParsedTable{}

	records := splitRecords(normalizeLineEndings(text), opts.Quote)
	if len(records) == 0 {
		table.Warnings = append(table.Warnings, "input contains no data")
		return table
	}

	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, splitFields(record, opts.Separator, opts.Quote))
	}

	if opts.HasHeaders {
		table.Headers = headersFromRow(rows[0])
		rows = rows[1:]
	} else {
		width := 0
		for _, row := range rows {
			if len(row) > width {
				width = len(row)
			}
		}
		table.Headers = syntheticHeaders(width)
	}

	for i, row := range rows {
		if len(row) != len(table.Headers) {
			table.Warnings = append(table.Warnings,
				fmt.Sprintf("row %d has %d fields, expected %d", i, len(row), len(table.Headers)))
		}
	}
	table.Rows = rows

	if opts.MaxRows > 0 && len(table.Rows) > opts.MaxRows {
		table.Rows = table.Rows[:opts.MaxRows]
		table.Truncated = true
	}

	return table
}

// normalizeLineEndings converts CRLF and lone CR to LF so record splitting
// only has to deal with one convention.
func normalizeLineEndings(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.ReplaceAll(text, "\r", "\n")
}

// splitRecords splits text into physical records honoring quote state: a
// newline inside an open quote does not terminate a record, and a doubled
// quote inside a quoted field is an escaped literal quote. Blank lines are
// skipped entirely.
func splitRecords(text string, quote rune) []string {
	var records []string
	var current strings.Builder
	inQuote := false

	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		c := runes[i]
		switch {
		case c == quote:
			if inQuote && i+1 < len(runes) && runes[i+1] == quote {
				current.WriteRune(quote)
				current.WriteRune(quote)
				i++
				continue
			}
			inQuote = !inQuote
			current.WriteRune(c)
		case c == '\n' && !inQuote:
			if strings.TrimSpace(current.String()) != "" {
				records = append(records, current.String())
			}
			current.Reset()
		default:
			current.WriteRune(c)
		}
	}
	if strings.TrimSpace(current.String()) != "" {
		records = append(records, current.String())
	}
	return records
}

// splitFields splits one record into fields on sep, honoring the same quoting
// rule. Each field is unquoted and trimmed of surrounding whitespace.
func splitFields(record string, sep, quote rune) []string {
	var fields []string
	var current strings.Builder
	inQuote := false

	runes := []rune(record)
	for i := 0; i < len(runes); i++ {
		c := runes[i]
		switch {
		case c == quote:
			if inQuote && i+1 < len(runes) && runes[i+1] == quote {
				current.WriteRune(quote)
				i++
				continue
			}
			inQuote = !inQuote
		case c == sep && !inQuote:
			fields = append(fields, strings.TrimSpace(current.String()))
			current.Reset()
		default:
			current.WriteRune(c)
		}
	}
	fields = append(fields, strings.TrimSpace(current.String()))
	return fields
}

// headersFromRow uses the first row as headers, replacing blank header cells
// with a positional placeholder name.
func headersFromRow(row []string) []string {
	headers := make([]string, len(row))
	for i, h := range row {
		if strings.TrimSpace(h) == "" {
			headers[i] = fmt.Sprintf("Column %d", i+1)
		} else {
			headers[i] = h
		}
	}
	return headers
}

// syntheticHeaders builds positional headers for tables without a header row.
func syntheticHeaders(width int) []string {
	headers := make([]string, width)
	for i := range headers {
		headers[i] = fmt.Sprintf("Column %d", i+1)
	}
	return headers
}
