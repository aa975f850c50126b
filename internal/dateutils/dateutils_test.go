package dateutils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParsePattern(t *testing.T) {
	tests := []struct {
		name      string
		value     string
		format    string
		pivot     int
		ok        bool
		expectedY int
		expectedM time.Month
		expectedD int
	}{
		{"ISO format", "2023-01-15", "yyyy-MM-dd", 50, true, 2023, time.January, 15},
		{"European slashes", "15/01/2023", "dd/MM/yyyy", 50, true, 2023, time.January, 15},
		{"European dots", "15.01.2023", "dd.MM.yyyy", 50, true, 2023, time.January, 15},
		{"US format", "01/15/2023", "MM/dd/yyyy", 50, true, 2023, time.January, 15},
		{"Single-digit tokens", "2023-1-5", "yyyy-M-d", 50, true, 2023, time.January, 5},
		{"Two-digit year below pivot", "15/01/49", "dd/MM/yy", 50, true, 2049, time.January, 15},
		{"Two-digit year at pivot", "15/01/50", "dd/MM/yy", 50, true, 1950, time.January, 15},
		{"Two-digit year above pivot", "15/01/99", "dd/MM/yy", 50, true, 1999, time.January, 15},
		{"Custom pivot", "15/01/30", "dd/MM/yy", 20, true, 1930, time.January, 15},
		{"Month thirteen rejected", "15/13/2023", "dd/MM/yyyy", 50, false, 0, 0, 0},
		{"Month zero rejected", "15/00/2023", "dd/MM/yyyy", 50, false, 0, 0, 0},
		{"Day zero rejected", "00/01/2023", "dd/MM/yyyy", 50, false, 0, 0, 0},
		{"Day thirty-two rejected", "32/01/2023", "dd/MM/yyyy", 50, false, 0, 0, 0},
		{"February thirty-first rejected", "31/02/2023", "dd/MM/yyyy", 50, false, 0, 0, 0},
		{"April thirty-first rejected", "31/04/2023", "dd/MM/yyyy", 50, false, 0, 0, 0},
		{"Leap day accepted", "29/02/2024", "dd/MM/yyyy", 50, true, 2024, time.February, 29},
		{"Leap day in common year rejected", "29/02/2023", "dd/MM/yyyy", 50, false, 0, 0, 0},
		{"Wrong separator", "15-01-2023", "dd/MM/yyyy", 50, false, 0, 0, 0},
		{"Trailing garbage", "15/01/2023x", "dd/MM/yyyy", 50, false, 0, 0, 0},
		{"Empty value", "", "dd/MM/yyyy", 50, false, 0, 0, 0},
		{"Empty format", "15/01/2023", "", 50, false, 0, 0, 0},
		{"Not a date", "hello", "dd/MM/yyyy", 50, false, 0, 0, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			date, ok := ParsePattern(tc.value, tc.format, tc.pivot)
			assert.Equal(t, tc.ok, ok)
			if tc.ok {
				assert.Equal(t, tc.expectedY, date.Year())
				assert.Equal(t, tc.expectedM, date.Month())
				assert.Equal(t, tc.expectedD, date.Day())
			}
		})
	}
}

func TestParsePatternWhitespace(t *testing.T) {
	date, ok := ParsePattern("  2023-01-15  ", "yyyy-MM-dd", DefaultTwoDigitYearPivot)
	assert.True(t, ok)
	assert.Equal(t, "2023-01-15", ToISODate(date))
}

func TestToISODate(t *testing.T) {
	date := time.Date(2023, time.March, 7, 13, 45, 0, 0, time.UTC)
	assert.Equal(t, "2023-03-07", ToISODate(date))
}

func TestTruncate(t *testing.T) {
	date := time.Date(2023, time.March, 7, 13, 45, 59, 123, time.UTC)
	truncated := Truncate(date)
	assert.Equal(t, time.Date(2023, time.March, 7, 0, 0, 0, 0, time.UTC), truncated)
}

func TestDayDiff(t *testing.T) {
	a := time.Date(2023, time.January, 10, 23, 0, 0, 0, time.UTC)
	b := time.Date(2023, time.January, 13, 1, 0, 0, 0, time.UTC)
	assert.Equal(t, 3, DayDiff(a, b))
	assert.Equal(t, 3, DayDiff(b, a))
	assert.Equal(t, 0, DayDiff(a, a))
}

func TestMonthKey(t *testing.T) {
	assert.Equal(t, "2023-01", MonthKey(time.Date(2023, time.January, 31, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2023-12", MonthKey(time.Date(2023, time.December, 1, 0, 0, 0, 0, time.UTC)))
}

func TestAdjacentMonthKeys(t *testing.T) {
	tests := []struct {
		name string
		date time.Time
		prev string
		next string
	}{
		{"Mid-year", time.Date(2023, time.June, 15, 0, 0, 0, 0, time.UTC), "2023-05", "2023-07"},
		{"January wraps to previous year", time.Date(2023, time.January, 31, 0, 0, 0, 0, time.UTC), "2022-12", "2023-02"},
		{"December wraps to next year", time.Date(2023, time.December, 1, 0, 0, 0, 0, time.UTC), "2023-11", "2024-01"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			prev, next := AdjacentMonthKeys(tc.date)
			assert.Equal(t, tc.prev, prev)
			assert.Equal(t, tc.next, next)
		})
	}
}

func TestCompareDates(t *testing.T) {
	early := time.Date(2023, time.January, 1, 23, 0, 0, 0, time.UTC)
	late := time.Date(2023, time.January, 2, 1, 0, 0, 0, time.UTC)
	assert.Equal(t, -1, CompareDates(early, late))
	assert.Equal(t, 1, CompareDates(late, early))
	assert.Equal(t, 0, CompareDates(early, early.Add(2*time.Hour)))
}
