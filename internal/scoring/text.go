package scoring

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"resuscan/internal/errors"
)

// textStats caches the decompositions every scorer needs.
type textStats struct {
	raw      string
	lower    string
	lines    []string
	nonEmpty []string
	words    []string
	runes    int
}

func newTextStats(text string) *textStats {
	ts := &textStats{
		raw:   text,
		lower: strings.ToLower(text),
		lines: strings.Split(text, "\n"),
		words: strings.Fields(text),
		runes: utf8.RuneCountInString(text),
	}
	for _, line := range ts.lines {
		if strings.TrimSpace(line) != "" {
			ts.nonEmpty = append(ts.nonEmpty, line)
		}
	}
	return ts
}

// countPresent reports how many of terms occur in the lowercased text.
func (ts *textStats) countPresent(terms []string) float64 {
	n := 0
	for _, term := range terms {
		if strings.Contains(ts.lower, term) {
			n++
		}
	}
	return float64(n)
}

// isUpper reports whether s has at least one cased letter and no
// lowercase or titlecase letters.
func isUpper(s string) bool {
	cased := false
	for _, r := range s {
		switch {
		case unicode.IsLower(r), unicode.IsTitle(r):
			return false
		case unicode.IsUpper(r):
			cased = true
		}
	}
	return cased
}

// CheckInput rejects text that cannot be scored. Any valid UTF-8 string,
// including the empty string, is accepted.
func CheckInput(text string) error {
	if !utf8.ValidString(text) {
		return errors.NewValidationError(errors.ErrCodeInvalidInput, "resume text is not valid UTF-8", nil)
	}
	return nil
}
