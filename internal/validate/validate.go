// Package validate implements field-level and record-level structural
// checks for user-entered transaction data. Each field runs its rules in
// order and reports the first failure as a human-readable message.
package validate

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/agnivade/levenshtein"
)

// Field names understood by Field and used as keys in Record results.
const (
	FieldDescription    = "description"
	FieldDuplicateWords = "duplicateWords"
	FieldAmount         = "amount"
	FieldDate           = "date"
	FieldCategory       = "category"
)

var (
	trimmedRe    = regexp.MustCompile(`^\S(?:[\s\S]*\S)?$`)
	multiSpaceRe = regexp.MustCompile(`\s{2,}`)
	amountRe     = regexp.MustCompile(`^(0|[1-9]\d*)(\.\d{1,2})?$`)
	dateRe       = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])-(0[1-9]|[12]\d|3[01])$`)
	categoryRe   = regexp.MustCompile(`^[A-Za-z]+(?:[ -][A-Za-z]+)*$`)
	wordRe       = regexp.MustCompile(`\w+`)
	spacesRe     = regexp.MustCompile(`^\s+$`)
)

// Record is the validation input: raw field values as the user typed
// them. Amount stays a string so the 2-decimal rule can inspect the
// original form ("1.005" must fail even though it parses).
type Record struct {
	Description string
	Amount      string
	Category    string
	Date        string
}

// Field validates one named field and returns the first failing rule's
// message, or "" when the value passes. Unknown field names pass.
func Field(name, value string) string {
	switch name {
	case FieldDescription:
		return checkDescription(value)
	case FieldDuplicateWords:
		return checkDuplicateWords(value)
	case FieldAmount:
		return checkAmount(value)
	case FieldDate:
		return checkDate(value)
	case FieldCategory:
		return checkCategory(value)
	}
	return ""
}

// Check runs every field rule plus the duplicate-word check and returns
// a field→message map for everything that failed. An empty map means the
// record is valid.
func Check(r Record) map[string]string {
	errs := make(map[string]string)
	if msg := checkDescription(r.Description); msg != "" {
		errs[FieldDescription] = msg
	}
	if msg := checkDuplicateWords(r.Description); msg != "" {
		errs[FieldDuplicateWords] = msg
	}
	if msg := checkAmount(r.Amount); msg != "" {
		errs[FieldAmount] = msg
	}
	if msg := checkDate(r.Date); msg != "" {
		errs[FieldDate] = msg
	}
	if msg := checkCategory(r.Category); msg != "" {
		errs[FieldCategory] = msg
	}
	return errs
}

func checkDescription(value string) string {
	if strings.TrimSpace(value) == "" {
		return "Description is required"
	}
	if !trimmedRe.MatchString(value) {
		return "Description cannot have leading or trailing spaces"
	}
	if multiSpaceRe.MatchString(value) {
		return "Description cannot have multiple consecutive spaces"
	}
	return ""
}

// checkDuplicateWords flags a word immediately repeating itself,
// case-insensitively. Go's regexp has no backreferences, so the words are
// tokenized and compared pairwise instead.
func checkDuplicateWords(value string) string {
	words := wordRe.FindAllStringIndex(value, -1)
	for i := 1; i < len(words); i++ {
		gap := value[words[i-1][1]:words[i][0]]
		if gap == "" || !spacesRe.MatchString(gap) {
			continue
		}
		prev := value[words[i-1][0]:words[i-1][1]]
		cur := value[words[i][0]:words[i][1]]
		if strings.EqualFold(prev, cur) {
			return "Description contains duplicate consecutive words"
		}
	}
	return ""
}

func checkAmount(value string) string {
	if value == "" {
		return "Amount is required"
	}
	n, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return "Amount must be a number"
	}
	if n < 0 {
		return "Amount cannot be negative"
	}
	if !amountRe.MatchString(value) {
		return "Amount must be a valid number with up to 2 decimal places"
	}
	return ""
}

func checkDate(value string) string {
	if value == "" {
		return "Date is required"
	}
	if !dateRe.MatchString(value) {
		return "Date must be in YYYY-MM-DD format"
	}
	if _, err := time.Parse("2006-01-02", value); err != nil {
		return "Invalid date"
	}
	return ""
}

func checkCategory(value string) string {
	if value == "" {
		return "Category is required"
	}
	if !categoryRe.MatchString(value) {
		return "Category must contain only letters, spaces, and hyphens"
	}
	return ""
}

const suggestMaxDistance = 3

// SuggestCategory returns the configured category nearest to the input,
// or "" when nothing is within editing distance. The category list is a
// soft constraint, so this only powers a hint, never a rejection.
func SuggestCategory(input string, categories []string) string {
	in := strings.ToLower(strings.TrimSpace(input))
	if in == "" {
		return ""
	}
	best := ""
	bestDist := suggestMaxDistance + 1
	for _, c := range categories {
		if strings.EqualFold(c, input) {
			return ""
		}
		d := levenshtein.ComputeDistance(in, strings.ToLower(c))
		if d < bestDist {
			bestDist = d
			best = c
		}
	}
	return best
}
