package tracker

import (
	"math/rand"
	"strconv"
	"time"
)

// Transaction is one recorded expense.
type Transaction struct {
	ID          string  `json:"id"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Category    string  `json:"category"`
	Date        string  `json:"date"` // YYYY-MM-DD
	CreatedAt   string  `json:"createdAt"`
	UpdatedAt   string  `json:"updatedAt"`
}

// Currency describes one configured currency.
type Currency struct {
	Symbol string  `json:"symbol"`
	Rate   float64 `json:"rate"` // relative to the reference currency
}

// Settings holds user-configurable global parameters.
type Settings struct {
	BaseCurrency string              `json:"baseCurrency"`
	Budget       float64             `json:"budget"`
	Currencies   map[string]Currency `json:"currencies"`
	Categories   []string            `json:"categories"`
}

// Clone returns a copy safe to hand to callers; the currency map and
// category slice are duplicated so snapshot holders cannot write back.
func (s Settings) Clone() Settings {
	out := s
	out.Currencies = make(map[string]Currency, len(s.Currencies))
	for code, c := range s.Currencies {
		out.Currencies[code] = c
	}
	out.Categories = append([]string(nil), s.Categories...)
	return out
}

// DefaultSettings returns the first-run configuration.
func DefaultSettings() Settings {
	return Settings{
		BaseCurrency: "USD",
		Budget:       500,
		Currencies: map[string]Currency{
			"USD": {Symbol: "$", Rate: 1.0},
			"EUR": {Symbol: "€", Rate: 0.92},
			"GBP": {Symbol: "£", Rate: 0.79},
		},
		Categories: []string{"Food", "Books", "Transport", "Entertainment", "Fees", "Other"},
	}
}

// TransactionPatch is a partial update; nil fields are left untouched.
type TransactionPatch struct {
	Description *string
	Amount      *float64
	Category    *string
	Date        *string
}

func (p TransactionPatch) apply(t *Transaction) {
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Amount != nil {
		t.Amount = *p.Amount
	}
	if p.Category != nil {
		t.Category = *p.Category
	}
	if p.Date != nil {
		t.Date = *p.Date
	}
}

// SettingsPatch is a partial settings update. Non-nil maps and slices
// replace the existing value wholesale.
type SettingsPatch struct {
	BaseCurrency *string
	Budget       *float64
	Currencies   map[string]Currency
	Categories   []string
}

func (p SettingsPatch) apply(s *Settings) {
	if p.BaseCurrency != nil {
		s.BaseCurrency = *p.BaseCurrency
	}
	if p.Budget != nil {
		s.Budget = *p.Budget
	}
	if p.Currencies != nil {
		s.Currencies = p.Currencies
	}
	if p.Categories != nil {
		s.Categories = p.Categories
	}
}

const idAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// newID builds a human-inspectable identifier: base36 millis plus five
// base36 random characters. Uniqueness against the live collection is the
// caller's job.
func newID(now time.Time) string {
	suffix := make([]byte, 5)
	for i := range suffix {
		suffix[i] = idAlphabet[rand.Intn(len(idAlphabet))]
	}
	return "txn_" + strconv.FormatInt(now.UnixMilli(), 36) + "_" + string(suffix)
}
