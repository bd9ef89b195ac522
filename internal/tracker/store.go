package tracker

import (
	"time"

	"github.com/rs/zerolog"
)

// Backend mirrors the store's data to durable storage. Load methods
// substitute empty/default data when nothing usable is persisted; Save
// methods report success, and a false return never blocks a mutation.
type Backend interface {
	LoadTransactions() []Transaction
	SaveTransactions([]Transaction) bool
	LoadSettings() Settings
	SaveSettings(Settings) bool
	ClearAllData() bool
}

// Sort keys and directions for the transactions view.
const (
	SortByDate        = "date"
	SortByDescription = "description"
	SortByAmount      = "amount"
	SortByCategory    = "category"

	SortAsc  = "asc"
	SortDesc = "desc"
)

// State is a read snapshot handed to listeners and GetState callers.
type State struct {
	Transactions  []Transaction
	Settings      Settings
	SearchPattern string
	SortBy        string
	SortOrder     string
	EditingID     string
}

// Listener receives a snapshot after every mutation.
type Listener func(State)

type listenerEntry struct {
	id int
	fn Listener
}

// Store is the single authoritative holder of transactions and settings.
// Every mutation writes through to the backend, then notifies listeners
// synchronously in registration order.
//
// The store is not safe for concurrent use: the TUI update loop is its
// only caller, matching a single event-loop ownership model.
type Store struct {
	backend Backend
	log     zerolog.Logger
	now     func() time.Time

	transactions  []Transaction
	settings      Settings
	searchPattern string
	sortBy        string
	sortOrder     string
	editingID     string

	listeners  []listenerEntry
	nextListID int
}

// New builds a store around the given backend. The logger records
// degraded persistence writes; the in-memory state is never rolled back.
func New(backend Backend, log zerolog.Logger) *Store {
	return &Store{
		backend:   backend,
		log:       log,
		now:       time.Now,
		settings:  DefaultSettings(),
		sortBy:    SortByDate,
		sortOrder: SortDesc,
	}
}

// Initialize replaces all in-memory state with persisted data, then
// notifies. Cursor fields reset to their defaults.
func (s *Store) Initialize() {
	s.transactions = s.backend.LoadTransactions()
	s.settings = s.backend.LoadSettings()
	s.searchPattern = ""
	s.sortBy = SortByDate
	s.sortOrder = SortDesc
	s.editingID = ""
	s.notify()
}

// Subscribe registers a listener and returns its disposer. Listeners run
// in registration order.
func (s *Store) Subscribe(fn Listener) func() {
	id := s.nextListID
	s.nextListID++
	s.listeners = append(s.listeners, listenerEntry{id: id, fn: fn})
	return func() {
		for i, e := range s.listeners {
			if e.id == id {
				s.listeners = append(s.listeners[:i], s.listeners[i+1:]...)
				return
			}
		}
	}
}

// notify dispatches over a copy so a listener can unsubscribe (itself
// or another) mid-dispatch without skipping anyone in this round.
func (s *Store) notify() {
	entries := make([]listenerEntry, len(s.listeners))
	copy(entries, s.listeners)
	for _, e := range entries {
		e.fn(s.GetState())
	}
}

// GetState returns a read snapshot. The slice and settings are copies;
// the store remains the only writer.
func (s *Store) GetState() State {
	txns := make([]Transaction, len(s.transactions))
	copy(txns, s.transactions)
	return State{
		Transactions:  txns,
		Settings:      s.settings.Clone(),
		SearchPattern: s.searchPattern,
		SortBy:        s.sortBy,
		SortOrder:     s.sortOrder,
		EditingID:     s.editingID,
	}
}

// AddTransaction assigns a fresh id, stamps both timestamps, appends,
// persists and notifies. Returns the stored record.
func (s *Store) AddTransaction(description string, amount float64, category, date string) Transaction {
	now := s.now().UTC()
	t := Transaction{
		ID:          s.generateID(now),
		Description: description,
		Amount:      amount,
		Category:    category,
		Date:        date,
		CreatedAt:   now.Format(time.RFC3339),
		UpdatedAt:   now.Format(time.RFC3339),
	}
	s.transactions = append(s.transactions, t)
	s.persistTransactions()
	s.notify()
	return t
}

// UpdateTransaction merges the patch over the record with the given id
// and refreshes UpdatedAt. Returns false when the id is absent.
func (s *Store) UpdateTransaction(id string, patch TransactionPatch) bool {
	for i := range s.transactions {
		if s.transactions[i].ID != id {
			continue
		}
		patch.apply(&s.transactions[i])
		s.transactions[i].UpdatedAt = s.now().UTC().Format(time.RFC3339)
		s.persistTransactions()
		s.notify()
		return true
	}
	return false
}

// DeleteTransaction removes the record with the given id, preserving the
// relative order of the rest. Returns false when the id is absent.
func (s *Store) DeleteTransaction(id string) bool {
	for i := range s.transactions {
		if s.transactions[i].ID != id {
			continue
		}
		s.transactions = append(s.transactions[:i], s.transactions[i+1:]...)
		s.persistTransactions()
		s.notify()
		return true
	}
	return false
}

// SetTransactions replaces the whole collection (bulk import path).
func (s *Store) SetTransactions(txns []Transaction) {
	s.transactions = txns
	s.persistTransactions()
	s.notify()
}

// UpdateSettings merges the patch into settings, persists and notifies.
func (s *Store) UpdateSettings(patch SettingsPatch) {
	patch.apply(&s.settings)
	if !s.backend.SaveSettings(s.settings) {
		s.log.Error().Msg("settings write failed; keeping in-memory state")
	}
	s.notify()
}

// SetSearchPattern updates the search cursor field only.
func (s *Store) SetSearchPattern(pattern string) {
	s.searchPattern = pattern
	s.notify()
}

// SetSorting updates the sort cursor fields only.
func (s *Store) SetSorting(sortBy, sortOrder string) {
	s.sortBy = sortBy
	s.sortOrder = sortOrder
	s.notify()
}

// SetEditingID updates the editing cursor field only. Empty means no
// record is being edited.
func (s *Store) SetEditingID(id string) {
	s.editingID = id
	s.notify()
}

func (s *Store) persistTransactions() {
	if !s.backend.SaveTransactions(s.transactions) {
		s.log.Error().Int("count", len(s.transactions)).
			Msg("transaction write failed; keeping in-memory state")
	}
}

// generateID returns an id unseen in the live collection, regenerating on
// the (unlikely) collision.
func (s *Store) generateID(now time.Time) string {
	for {
		id := newID(now)
		if !s.hasID(id) {
			return id
		}
	}
}

func (s *Store) hasID(id string) bool {
	for i := range s.transactions {
		if s.transactions[i].ID == id {
			return true
		}
	}
	return false
}
