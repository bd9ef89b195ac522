package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"

	"github.com/krendl/spendwise/internal/tracker"
)

var importDateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// ExportJSON serializes the collection as indented, human-readable JSON.
func ExportJSON(txns []tracker.Transaction) ([]byte, error) {
	if txns == nil {
		txns = []tracker.Transaction{}
	}
	return json.MarshalIndent(txns, "", "  ")
}

// ImportJSON parses and validates a full collection. The payload must be
// a top-level array and every record must pass the structural rules;
// the first violation aborts the whole import. On success the caller
// hands the result to the store's SetTransactions.
func ImportJSON(data []byte) ([]tracker.Transaction, error) {
	var raw []map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("import data must be an array of transactions")
	}
	// a literal null decodes to a nil slice without error; an empty
	// array decodes to a non-nil empty slice
	if raw == nil {
		return nil, fmt.Errorf("import data must be an array of transactions")
	}

	txns := make([]tracker.Transaction, 0, len(raw))
	for _, item := range raw {
		t, err := importRecord(item)
		if err != nil {
			return nil, err
		}
		txns = append(txns, t)
	}
	return txns, nil
}

// importRecord applies the bulk-import rules, which are stricter than
// form validation: ids and timestamps must already exist.
func importRecord(item map[string]any) (tracker.Transaction, error) {
	var t tracker.Transaction

	id, ok := item["id"].(string)
	if !ok || id == "" {
		return t, fmt.Errorf("each transaction must have a valid id")
	}
	desc, ok := item["description"].(string)
	if !ok || desc == "" {
		return t, fmt.Errorf("each transaction must have a valid description")
	}
	amount, ok := item["amount"].(float64)
	if !ok || amount < 0 {
		return t, fmt.Errorf("each transaction must have a valid amount")
	}
	category, ok := item["category"].(string)
	if !ok || category == "" {
		return t, fmt.Errorf("each transaction must have a valid category")
	}
	date, ok := item["date"].(string)
	if !ok || !importDateRe.MatchString(date) {
		return t, fmt.Errorf("each transaction must have a valid date")
	}
	createdAt, okC := item["createdAt"].(string)
	updatedAt, okU := item["updatedAt"].(string)
	if !okC || createdAt == "" || !okU || updatedAt == "" {
		return t, fmt.Errorf("each transaction must have createdAt and updatedAt timestamps")
	}

	t = tracker.Transaction{
		ID:          id,
		Description: desc,
		Amount:      amount,
		Category:    category,
		Date:        date,
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	}
	return t, nil
}

// ExportToFile writes the exported collection to path.
func ExportToFile(path string, txns []tracker.Transaction) error {
	data, err := ExportJSON(txns)
	if err != nil {
		return fmt.Errorf("encode export: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write export: %w", err)
	}
	return nil
}

// ImportFromFile reads and validates a collection from path. A failed
// read or parse leaves the store untouched; the caller only applies the
// result on success.
func ImportFromFile(path string) ([]tracker.Transaction, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read import: %w", err)
	}
	return ImportJSON(data)
}
