package textutils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeDescription(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"Lowercases", "STARBUCKS", "starbucks"},
		{"Strips punctuation", "PAYPAL *NETFLIX.COM", "paypal netflix com"},
		{"Collapses whitespace", "COFFEE   SHOP\t#42", "coffee shop 42"},
		{"Trims edges", "  card payment  ", "card payment"},
		{"Empty", "", ""},
		{"Only punctuation", "***", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, NormalizeDescription(tc.input))
		})
	}
}

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		name     string
		a        string
		b        string
		expected int
	}{
		{"Identical", "kitten", "kitten", 0},
		{"Classic", "kitten", "sitting", 3},
		{"Empty vs word", "", "word", 4},
		{"Word vs empty", "word", "", 4},
		{"Both empty", "", "", 0},
		{"Single substitution", "cat", "bat", 1},
		{"Unicode runes", "café", "cafe", 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Levenshtein(tc.a, tc.b))
		})
	}
}

func TestLevenshteinWithin(t *testing.T) {
	tests := []struct {
		name      string
		a         string
		b         string
		threshold int
		expected  int
	}{
		{"Within threshold", "kitten", "sitting", 3, 3},
		{"Exceeds threshold", "kitten", "sitting", 2, 3},
		{"Length gap alone exceeds", "ab", "abcdefgh", 3, 4},
		{"Zero threshold identical", "same", "same", 0, 0},
		{"Zero threshold different", "same", "sane", 0, 1},
		{"Empty against short", "", "ab", 5, 2},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, LevenshteinWithin(tc.a, tc.b, tc.threshold))
		})
	}
}

// The bounded distance must agree with the full distance whenever the full
// distance is inside the threshold.
func TestLevenshteinWithinMatchesFull(t *testing.T) {
	pairs := [][2]string{
		{"grocery store downtown", "grocery store dwntown"},
		{"starbucks coffee 42", "starbucks cofee 42"},
		{"acme corp payroll", "acme corp payrol"},
	}
	for _, p := range pairs {
		full := Levenshtein(p[0], p[1])
		assert.Equal(t, full, LevenshteinWithin(p[0], p[1], full))
		assert.Equal(t, full, LevenshteinWithin(p[0], p[1], full+5))
	}
}

func TestSimilarityRatio(t *testing.T) {
	assert.Equal(t, 1.0, SimilarityRatio("same", "same"))
	assert.Equal(t, 1.0, SimilarityRatio("", ""))
	assert.Equal(t, 0.0, SimilarityRatio("", "word"))
	assert.Equal(t, 0.0, SimilarityRatio("word", ""))

	// One substitution in a ten-rune string.
	assert.InDelta(t, 0.9, SimilarityRatio("abcdefghij", "abcdefghiX"), 1e-9)
	// Completely different strings of equal length.
	assert.Equal(t, 0.0, SimilarityRatio("aaaa", "bbbb"))
}

func TestIsSimilar(t *testing.T) {
	tests := []struct {
		name     string
		a        string
		b        string
		minRatio float64
		expected bool
	}{
		{"Identical after normalization", "STARBUCKS #42", "starbucks 42", 0.9, true},
		{"Small typo passes", "grocery store downtown", "grocery store dwntown", 0.8, true},
		{"Unrelated fails", "grocery store", "airline ticket", 0.8, false},
		{"Both empty after normalization", "***", "!!!", 0.9, true},
		{"One empty strict", "starbucks", "***", 0.5, false},
		{"One empty zero ratio", "starbucks", "***", 0, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, IsSimilar(tc.a, tc.b, tc.minRatio))
		})
	}
}

// Raising the ratio threshold can only shrink the set of accepted pairs.
func TestIsSimilarThresholdMonotonicity(t *testing.T) {
	pairs := [][2]string{
		{"grocery store downtown", "grocery store dwntown"},
		{"starbucks coffee", "starbucks cofee"},
		{"acme corp", "acme inc"},
		{"completely different", "nothing alike here"},
	}
	thresholds := []float64{0.1, 0.3, 0.5, 0.7, 0.9, 1.0}

	for _, p := range pairs {
		prev := true
		for _, ratio := range thresholds {
			ok := IsSimilar(p[0], p[1], ratio)
			if !prev {
				assert.False(t, ok, "pair %q/%q accepted at %.1f after rejection at a lower threshold", p[0], p[1], ratio)
			}
			prev = ok
		}
	}
}
