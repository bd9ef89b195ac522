package tracker

import (
	"sort"
	"strings"
	"time"
)

// SortTransactions returns a new slice ordered by the store's current
// sort cursor. The input is not mutated.
func (s *Store) SortTransactions(txns []Transaction) []Transaction {
	return sortTransactions(txns, s.sortBy, s.sortOrder)
}

// sortTransactions is a stable sort by one key. Ties keep their original
// relative order so repeated re-sorts are visually stable.
func sortTransactions(txns []Transaction, sortBy, sortOrder string) []Transaction {
	out := make([]Transaction, len(txns))
	copy(out, txns)

	less := func(a, b Transaction) bool {
		switch sortBy {
		case SortByDescription:
			return strings.ToLower(a.Description) < strings.ToLower(b.Description)
		case SortByAmount:
			return a.Amount < b.Amount
		case SortByCategory:
			return strings.ToLower(a.Category) < strings.ToLower(b.Category)
		case SortByDate:
			return dateBefore(a.Date, b.Date)
		default:
			return false
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if sortOrder == SortDesc {
			return less(out[j], out[i])
		}
		return less(out[i], out[j])
	})
	return out
}

// dateBefore compares calendar dates, falling back to a string compare
// for anything unparsable (with YYYY-MM-DD the two coincide anyway).
func dateBefore(a, b string) bool {
	ta, errA := time.Parse("2006-01-02", a)
	tb, errB := time.Parse("2006-01-02", b)
	if errA != nil || errB != nil {
		return a < b
	}
	return ta.Before(tb)
}
