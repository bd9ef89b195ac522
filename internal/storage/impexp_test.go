package storage

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/krendl/spendwise/internal/tracker"
)

func validBatch() []tracker.Transaction {
	txns := make([]tracker.Transaction, 0, 5)
	days := []string{"11", "12", "13", "14", "15"}
	for i, d := range days {
		txns = append(txns, tracker.Transaction{
			ID:          "txn_abc_0000" + d,
			Description: "Record " + d,
			Amount:      float64(i) + 0.5,
			Category:    "Food",
			Date:        "2025-03-" + d,
			CreatedAt:   "2025-03-" + d + "T10:00:00Z",
			UpdatedAt:   "2025-03-" + d + "T10:00:00Z",
		})
	}
	return txns
}

func TestExportImportRoundTrip(t *testing.T) {
	txns := validBatch()

	data, err := ExportJSON(txns)
	require.NoError(t, err)

	got, err := ImportJSON(data)
	require.NoError(t, err)
	require.Equal(t, txns, got)
}

func TestImportRejectsNonArray(t *testing.T) {
	for _, payload := range []string{
		`{"id": "txn_1", "description": "single object"}`,
		`null`,
		`"[]"`,
		`42`,
	} {
		got, err := ImportJSON([]byte(payload))
		require.Error(t, err, "payload %s", payload)
		require.Contains(t, err.Error(), "must be an array")
		require.Nil(t, got)
	}
}

func TestImportIsAllOrNothing(t *testing.T) {
	txns := validBatch()
	txns[2].Date = "" // one bad record poisons the batch
	data, err := ExportJSON(txns)
	require.NoError(t, err)

	got, err := ImportJSON(data)
	require.Error(t, err)
	require.Nil(t, got)
	require.Contains(t, err.Error(), "valid date")
}

func TestImportStructuralRules(t *testing.T) {
	base := `[{"id":"txn_1","description":"Coffee","amount":4.5,"category":"Food","date":"2025-03-15","createdAt":"2025-03-15T10:00:00Z","updatedAt":"2025-03-15T10:00:00Z"}]`

	cases := []struct {
		name    string
		payload string
		wantErr string
	}{
		{"valid", base, ""},
		{"missing id", `[{"description":"x","amount":1,"category":"Food","date":"2025-03-15","createdAt":"a","updatedAt":"a"}]`, "valid id"},
		{"numeric id", `[{"id":7,"description":"x","amount":1,"category":"Food","date":"2025-03-15","createdAt":"a","updatedAt":"a"}]`, "valid id"},
		{"missing description", `[{"id":"txn_1","amount":1,"category":"Food","date":"2025-03-15","createdAt":"a","updatedAt":"a"}]`, "valid description"},
		{"negative amount", `[{"id":"txn_1","description":"x","amount":-1,"category":"Food","date":"2025-03-15","createdAt":"a","updatedAt":"a"}]`, "valid amount"},
		{"string amount", `[{"id":"txn_1","description":"x","amount":"4.5","category":"Food","date":"2025-03-15","createdAt":"a","updatedAt":"a"}]`, "valid amount"},
		{"missing category", `[{"id":"txn_1","description":"x","amount":1,"date":"2025-03-15","createdAt":"a","updatedAt":"a"}]`, "valid category"},
		{"bad date shape", `[{"id":"txn_1","description":"x","amount":1,"category":"Food","date":"15/03/2025","createdAt":"a","updatedAt":"a"}]`, "valid date"},
		{"missing timestamps", `[{"id":"txn_1","description":"x","amount":1,"category":"Food","date":"2025-03-15"}]`, "createdAt and updatedAt"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ImportJSON([]byte(tc.payload))
			if tc.wantErr == "" {
				require.NoError(t, err)
				require.Len(t, got, 1)
				return
			}
			require.Error(t, err)
			require.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestExportEmptyCollectionIsAnArray(t *testing.T) {
	data, err := ExportJSON(nil)
	require.NoError(t, err)
	require.Equal(t, "[]", string(data))

	got, err := ImportJSON(data)
	require.NoError(t, err)
	require.Empty(t, got)
}
