// Package dateutils provides pattern-driven date parsing and the calendar
// helpers used by duplicate detection and the old-transaction filter.
package dateutils

import (
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"
)

// DateLayoutISO is the canonical layout all dates are normalized to.
const DateLayoutISO = "2006-01-02"

// DefaultTwoDigitYearPivot is the pivot below which a two-digit year is read
// as 2000+year rather than 1900+year. The pivot is a heuristic with no
// universal correctness, so it stays overridable per import session.
const DefaultTwoDigitYearPivot = 50

type token int

const (
	tokenYear4 token = iota
	tokenYear2
	tokenMonth2
	tokenMonth
	tokenDay2
	tokenDay
)

// compiledPattern is a date format string turned into an anchored regexp plus
// the token order of its capture groups.
type compiledPattern struct {
	re     *regexp.Regexp
	tokens []token
}

var (
	patternCacheMu sync.RWMutex
	patternCache   = map[string]*compiledPattern{}
)

// compilePattern translates a format string such as "dd/MM/yyyy" into a
// regular expression with one capture group per year/month/day token. Any
// other character is matched literally.
func compilePattern(format string) *compiledPattern {
	patternCacheMu.RLock()
	cached, ok := patternCache[format]
	patternCacheMu.RUnlock()
	if ok {
		return cached
	}

	var sb strings.Builder
	var tokens []token
	sb.WriteString("^")

	for i := 0; i < len(format); {
		c := format[i]
		run := 1
		for i+run < len(format) && format[i+run] == c {
			run++
		}
		switch {
		case c == 'y' && run >= 4:
			sb.WriteString(`(\d{4})`)
			tokens = append(tokens, tokenYear4)
		case c == 'y' && run >= 2:
			sb.WriteString(`(\d{2})`)
			tokens = append(tokens, tokenYear2)
		case c == 'M' && run >= 2:
			sb.WriteString(`(\d{2})`)
			tokens = append(tokens, tokenMonth2)
		case c == 'M':
			sb.WriteString(`(\d{1,2})`)
			tokens = append(tokens, tokenMonth)
		case c == 'd' && run >= 2:
			sb.WriteString(`(\d{2})`)
			tokens = append(tokens, tokenDay2)
		case c == 'd':
			sb.WriteString(`(\d{1,2})`)
			tokens = append(tokens, tokenDay)
		default:
			sb.WriteString(regexp.QuoteMeta(format[i : i+run]))
		}
		i += run
	}
	sb.WriteString("$")

	compiled := &compiledPattern{
		re:     regexp.MustCompile(sb.String()),
		tokens: tokens,
	}
	patternCacheMu.Lock()
	patternCache[format] = compiled
	patternCacheMu.Unlock()
	return compiled
}

// ParsePattern parses a date string against a token format ("yyyy", "yy",
// "MM", "M", "dd", "d"; everything else literal). A two-digit year below the
// pivot is read as 2000+year, otherwise 1900+year. Out-of-range month or day
// values cause rejection, as do days that do not exist in their month, such
// as February 31. The second return value is false when the string does not
// match.
func ParsePattern(value, format string, pivot int) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" || format == "" {
		return time.Time{}, false
	}

	compiled := compilePattern(format)
	matches := compiled.re.FindStringSubmatch(value)
	if matches == nil {
		return time.Time{}, false
	}

	year, month, day := 0, 0, 0
	for i, tok := range compiled.tokens {
		n, err := strconv.Atoi(matches[i+1])
		if err != nil {
			return time.Time{}, false
		}
		switch tok {
		case tokenYear4:
			year = n
		case tokenYear2:
			if n < pivot {
				year = 2000 + n
			} else {
				year = 1900 + n
			}
		case tokenMonth2, tokenMonth:
			month = n
		case tokenDay2, tokenDay:
			day = n
		}
	}

	if year == 0 || month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, false
	}
	date := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	// time.Date normalizes impossible dates like February 31 into the next
	// month. A shifted date would land in the wrong comparison bucket, so it
	// is rejected instead.
	if date.Day() != day || date.Month() != time.Month(month) {
		return time.Time{}, false
	}
	return date, true
}

// ToISODate formats a time.Time value as an ISO date (YYYY-MM-DD).
func ToISODate(date time.Time) string {
	return date.Format(DateLayoutISO)
}

// Truncate drops the time component, normalizing to midnight UTC.
func Truncate(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
}

// DayDiff returns the absolute difference between two dates in whole days,
// ignoring any time component.
func DayDiff(a, b time.Time) int {
	diff := Truncate(a).Sub(Truncate(b))
	if diff < 0 {
		diff = -diff
	}
	return int(diff.Hours() / 24)
}

// MonthKey returns the YYYY-MM bucket key for a date.
func MonthKey(date time.Time) string {
	return date.Format("2006-01")
}

// AdjacentMonthKeys returns the bucket keys for the previous and next calendar
// months of a date.
func AdjacentMonthKeys(date time.Time) (prev, next string) {
	first := time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, time.UTC)
	return first.AddDate(0, -1, 0).Format("2006-01"), first.AddDate(0, 1, 0).Format("2006-01")
}

// CompareDates compares two dates by calendar day and returns -1, 0 or 1.
func CompareDates(a, b time.Time) int {
	a, b = Truncate(a), Truncate(b)
	switch {
	case a.Before(b):
		return -1
	case a.After(b):
		return 1
	default:
		return 0
	}
}
