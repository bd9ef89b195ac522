package validate

import "testing"

func TestDescriptionRules(t *testing.T) {
	cases := []struct {
		name  string
		value string
		want  string
	}{
		{"valid", "Morning coffee", ""},
		{"empty", "", "Description is required"},
		{"only spaces", "   ", "Description is required"},
		{"leading space", " coffee", "Description cannot have leading or trailing spaces"},
		{"trailing space", "coffee ", "Description cannot have leading or trailing spaces"},
		{"double internal space", "morning  coffee", "Description cannot have multiple consecutive spaces"},
		{"single spaces ok", "a b c", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Field(FieldDescription, tc.value); got != tc.want {
				t.Fatalf("Field(description, %q) = %q, want %q", tc.value, got, tc.want)
			}
		})
	}
}

func TestDuplicateWordRule(t *testing.T) {
	cases := []struct {
		name  string
		value string
		dup   bool
	}{
		{"no duplicates", "morning coffee", false},
		{"exact duplicate", "coffee coffee", true},
		{"case-insensitive duplicate", "Coffee coffee", true},
		{"duplicate mid-sentence", "paid the the bill", true},
		{"hyphen separated", "go-go dancing", false},
		{"substring is not a word dup", "the theory", false},
		{"numbers count as words", "room 101 101", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Field(FieldDuplicateWords, tc.value)
			if tc.dup && got != "Description contains duplicate consecutive words" {
				t.Fatalf("value %q: got %q, want duplicate-word error", tc.value, got)
			}
			if !tc.dup && got != "" {
				t.Fatalf("value %q: unexpected error %q", tc.value, got)
			}
		})
	}
}

func TestAmountRules(t *testing.T) {
	cases := []struct {
		name  string
		value string
		want  string
	}{
		{"integer", "12", ""},
		{"two decimals", "12.50", ""},
		{"zero", "0", ""},
		{"empty", "", "Amount is required"},
		{"not a number", "abc", "Amount must be a number"},
		{"negative", "-5", "Amount cannot be negative"},
		{"three decimals parse but fail format", "1.005", "Amount must be a valid number with up to 2 decimal places"},
		{"leading zero", "01", "Amount must be a valid number with up to 2 decimal places"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Field(FieldAmount, tc.value); got != tc.want {
				t.Fatalf("Field(amount, %q) = %q, want %q", tc.value, got, tc.want)
			}
		})
	}
}

func TestDateRules(t *testing.T) {
	cases := []struct {
		name  string
		value string
		want  string
	}{
		{"valid", "2025-03-15", ""},
		{"leap day", "2024-02-29", ""},
		{"empty", "", "Date is required"},
		{"wrong shape", "15/03/2025", "Date must be in YYYY-MM-DD format"},
		{"month 13", "2025-13-01", "Date must be in YYYY-MM-DD format"},
		{"day 32", "2025-01-32", "Date must be in YYYY-MM-DD format"},
		{"not a real day", "2025-02-30", "Invalid date"},
		{"non-leap feb 29", "2025-02-29", "Invalid date"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Field(FieldDate, tc.value); got != tc.want {
				t.Fatalf("Field(date, %q) = %q, want %q", tc.value, got, tc.want)
			}
		})
	}
}

func TestCategoryRules(t *testing.T) {
	cases := []struct {
		name  string
		value string
		want  string
	}{
		{"single word", "Food", ""},
		{"hyphenated", "Books-Used", ""},
		{"spaced words", "Eating Out", ""},
		{"empty", "", "Category is required"},
		{"digits", "Food2", "Category must contain only letters, spaces, and hyphens"},
		{"double space", "Eating  Out", "Category must contain only letters, spaces, and hyphens"},
		{"trailing hyphen", "Food-", "Category must contain only letters, spaces, and hyphens"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Field(FieldCategory, tc.value); got != tc.want {
				t.Fatalf("Field(category, %q) = %q, want %q", tc.value, got, tc.want)
			}
		})
	}
}

func TestCheckCollectsFirstErrorPerField(t *testing.T) {
	errs := Check(Record{
		Description: " bad  desc desc",
		Amount:      "-1",
		Category:    "Food2",
		Date:        "2025-02-30",
	})
	if errs[FieldDescription] != "Description cannot have leading or trailing spaces" {
		t.Fatalf("description error = %q", errs[FieldDescription])
	}
	if errs[FieldDuplicateWords] != "Description contains duplicate consecutive words" {
		t.Fatalf("duplicate-word error = %q", errs[FieldDuplicateWords])
	}
	if errs[FieldAmount] != "Amount cannot be negative" {
		t.Fatalf("amount error = %q", errs[FieldAmount])
	}
	if errs[FieldDate] != "Invalid date" {
		t.Fatalf("date error = %q", errs[FieldDate])
	}
	if errs[FieldCategory] != "Category must contain only letters, spaces, and hyphens" {
		t.Fatalf("category error = %q", errs[FieldCategory])
	}
}

func TestCheckValidRecordHasNoErrors(t *testing.T) {
	errs := Check(Record{
		Description: "Morning coffee",
		Amount:      "4.50",
		Category:    "Food",
		Date:        "2025-03-15",
	})
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
}

func TestSuggestCategory(t *testing.T) {
	categories := []string{"Food", "Books", "Transport", "Entertainment", "Fees", "Other"}

	if got := SuggestCategory("Fod", categories); got != "Food" {
		t.Fatalf("SuggestCategory(Fod) = %q, want Food", got)
	}
	if got := SuggestCategory("transprot", categories); got != "Transport" {
		t.Fatalf("SuggestCategory(transprot) = %q, want Transport", got)
	}
	// exact (case-insensitive) matches need no hint
	if got := SuggestCategory("food", categories); got != "" {
		t.Fatalf("SuggestCategory(food) = %q, want empty", got)
	}
	// far from everything
	if got := SuggestCategory("Quantum Mechanics", categories); got != "" {
		t.Fatalf("SuggestCategory(Quantum Mechanics) = %q, want empty", got)
	}
}
