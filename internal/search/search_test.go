package search

import (
	"testing"

	"github.com/krendl/spendwise/internal/tracker"
)

func sample() []tracker.Transaction {
	return []tracker.Transaction{
		{ID: "1", Description: "Morning Coffee", Category: "Food", Amount: 4.5, Date: "2025-03-15"},
		{ID: "2", Description: "Tea", Category: "Food", Amount: 2, Date: "2025-03-16"},
		{ID: "3", Description: "Bus ticket", Category: "Transport", Amount: 120, Date: "2025-03-17"},
	}
}

func TestCompile(t *testing.T) {
	if re := Compile("", false); re != nil {
		t.Fatalf("empty pattern should not compile to a matcher")
	}
	if re := Compile("(", false); re != nil {
		t.Fatalf("malformed pattern should return nil, got %v", re)
	}
	re := Compile("coffee", false)
	if re == nil || !re.MatchString("Morning Coffee") {
		t.Fatalf("case-insensitive compile failed")
	}
	if re := Compile("coffee", true); re == nil || re.MatchString("Morning Coffee") {
		t.Fatalf("case-sensitive compile should not match different case")
	}
}

func TestFilterMatchesAnyField(t *testing.T) {
	txns := sample()

	got := Filter(txns, "coffee", false)
	if len(got) != 1 || got[0].ID != "1" {
		t.Fatalf("description match: got %v", got)
	}

	got = Filter(txns, "transport", false)
	if len(got) != 1 || got[0].ID != "3" {
		t.Fatalf("category match: got %v", got)
	}

	got = Filter(txns, "4.5", false)
	if len(got) != 1 || got[0].ID != "1" {
		t.Fatalf("amount match: got %v", got)
	}

	got = Filter(txns, "2025-03-16", false)
	if len(got) != 1 || got[0].ID != "2" {
		t.Fatalf("date match: got %v", got)
	}
}

func TestFilterFailsOpen(t *testing.T) {
	txns := sample()

	got := Filter(txns, "(", false)
	if len(got) != len(txns) {
		t.Fatalf("invalid pattern must not hide data: got %d of %d rows", len(got), len(txns))
	}
	got = Filter(txns, "", false)
	if len(got) != len(txns) {
		t.Fatalf("empty pattern should return input unchanged")
	}
	got = Filter(txns, "zzz-no-match", false)
	if len(got) != 0 {
		t.Fatalf("no-match pattern should return nothing, got %v", got)
	}
}

func TestHighlight(t *testing.T) {
	mark := func(s string) string { return "[" + s + "]" }

	re := Compile("coffee", false)
	got := Highlight("Morning Coffee, more coffee", re, mark)
	want := "Morning [Coffee], more [coffee]"
	if got != want {
		t.Fatalf("Highlight = %q, want %q", got, want)
	}

	if got := Highlight("text", nil, mark); got != "text" {
		t.Fatalf("nil matcher should return text unchanged, got %q", got)
	}

	// escape bytes inside a match cannot leak styling into the output
	re = Compile("a.b", false)
	got = Highlight("a\x1bb", re, mark)
	if got != "[ab]" {
		t.Fatalf("scrubbed highlight = %q", got)
	}
}

func TestSuggestionsCatalog(t *testing.T) {
	suggestions := Suggestions()
	if len(suggestions) != 5 {
		t.Fatalf("expected 5 canned suggestions, got %d", len(suggestions))
	}
	for _, s := range suggestions {
		if s.Label == "" || s.Pattern == "" {
			t.Fatalf("incomplete suggestion: %+v", s)
		}
	}
}
