// Package textutils provides the edit-distance and normalized-similarity
// primitives used for fuzzy description comparison.
package textutils

import (
	"regexp"
	"strings"
)

var nonAlphanumeric = regexp.MustCompile(`[^a-z0-9 ]`)
var whitespaceRuns = regexp.MustCompile(`\s+`)

// NormalizeDescription prepares a transaction description for comparison:
// lowercase, any non-alphanumeric character becomes a space, runs of
// whitespace collapse to one space, and the result is trimmed. Two strings
// are compared only after independently normalizing each.
func NormalizeDescription(s string) string {
	s = strings.ToLower(s)
	s = nonAlphanumeric.ReplaceAllString(s, " ")
	s = whitespaceRuns.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// Levenshtein computes the classic dynamic-programming edit distance between
// two strings, over runes.
func Levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min3(curr[j-1]+1, prev[j]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}

// LevenshteinWithin computes the edit distance between a and b but aborts as
// soon as the distance is guaranteed to exceed threshold, returning
// threshold+1. It uses two rolling rows, so memory is O(min(m,n)) and
// dissimilar pairs bail out without the full O(m*n) work. Use it whenever only
// a yes/no "similar enough" answer is needed.
func LevenshteinWithin(a, b string, threshold int) int {
	ra, rb := []rune(a), []rune(b)
	// Iterate over the longer string so the rows span the shorter one.
	if len(rb) > len(ra) {
		ra, rb = rb, ra
	}
	if len(ra)-len(rb) > threshold {
		return threshold + 1
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		rowMin := curr[0]
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min3(curr[j-1]+1, prev[j]+1, prev[j-1]+cost)
			if curr[j] < rowMin {
				rowMin = curr[j]
			}
		}
		if rowMin > threshold {
			return threshold + 1
		}
		prev, curr = curr, prev
	}

	if prev[len(rb)] > threshold {
		return threshold + 1
	}
	return prev[len(rb)]
}

// SimilarityRatio returns 1 - distance/max(len(a), len(b)) with explicit
// special cases: identical strings and two empty strings score 1, one empty
// string scores 0.
func SimilarityRatio(a, b string) float64 {
	if a == b {
		return 1
	}
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 || len(rb) == 0 {
		return 0
	}

	maxLen := len(ra)
	if len(rb) > maxLen {
		maxLen = len(rb)
	}
	return 1 - float64(Levenshtein(a, b))/float64(maxLen)
}

// IsSimilar reports whether a and b are at least minRatio similar after
// normalization. It converts the ratio threshold into a maximum edit distance
// so LevenshteinWithin can abort early on clearly dissimilar pairs.
func IsSimilar(a, b string, minRatio float64) bool {
	na, nb := NormalizeDescription(a), NormalizeDescription(b)
	if na == nb {
		return true
	}
	la, lb := len([]rune(na)), len([]rune(nb))
	if la == 0 || lb == 0 {
		return minRatio <= 0
	}

	maxLen := la
	if lb > maxLen {
		maxLen = lb
	}
	allowed := int(float64(maxLen) * (1 - minRatio))
	return LevenshteinWithin(na, nb, allowed) <= allowed
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}
