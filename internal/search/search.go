// Package search filters transactions with user-supplied regular
// expressions and marks matched substrings for display. Patterns come
// straight from an input box, so every entry point tolerates garbage:
// a pattern that will not compile filters nothing (fail-open) rather
// than hiding data behind a typo.
package search

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/krendl/spendwise/internal/tracker"
)

// Compile builds a matcher from a user pattern, case-insensitively
// unless told otherwise. Returns nil for an empty or malformed pattern;
// callers must treat nil as "pattern invalid, do not filter".
func Compile(pattern string, caseSensitive bool) *regexp.Regexp {
	if pattern == "" {
		return nil
	}
	if !caseSensitive {
		pattern = "(?i)" + pattern
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil
	}
	return re
}

// Filter returns the transactions whose description, category, amount or
// date matches the pattern. An empty or malformed pattern returns the
// input unchanged.
func Filter(txns []tracker.Transaction, pattern string, caseSensitive bool) []tracker.Transaction {
	if pattern == "" {
		return txns
	}
	re := Compile(pattern, caseSensitive)
	if re == nil {
		return txns
	}
	var out []tracker.Transaction
	for _, t := range txns {
		if re.MatchString(t.Description) ||
			re.MatchString(t.Category) ||
			re.MatchString(strconv.FormatFloat(t.Amount, 'f', -1, 64)) ||
			re.MatchString(t.Date) {
			out = append(out, t)
		}
	}
	return out
}

// Marker wraps a matched substring for display, e.g. a lipgloss style's
// Render.
type Marker func(string) string

// Highlight wraps every non-overlapping match of re in the marker. The
// matched text is scrubbed of terminal escape bytes first so record
// content cannot smuggle styling of its own. A nil matcher or marker
// returns text unchanged.
func Highlight(text string, re *regexp.Regexp, mark Marker) string {
	if re == nil || mark == nil || text == "" {
		return text
	}
	return re.ReplaceAllStringFunc(text, func(m string) string {
		return mark(scrub(m))
	})
}

// scrub drops ESC and other C0 control bytes, keeping tabs and spaces.
func scrub(s string) string {
	return strings.Map(func(r rune) rune {
		if r < 0x20 && r != '\t' {
			return -1
		}
		return r
	}, s)
}

// Suggestion is a canned example pattern with a human label.
type Suggestion struct {
	Label   string
	Pattern string
}

// Suggestions returns the fixed teaching catalog shown next to the
// search box. Static reference data, not derived from the dataset.
func Suggestions() []Suggestion {
	return []Suggestion{
		{Label: "Find amounts with cents", Pattern: `\.\d{2}\b`},
		{Label: "Find coffee or tea", Pattern: `(coffee|tea)`},
		{Label: "Find duplicate words", Pattern: `\b(\w+)\s+\1\b`},
		{Label: "Find Food category", Pattern: `^Food$`},
		{Label: "Find amounts over $50", Pattern: `[5-9]\d\.\d{2}|\d{3,}`},
	}
}
