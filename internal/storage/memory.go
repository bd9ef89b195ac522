package storage

import "github.com/krendl/spendwise/internal/tracker"

// MemoryBackend keeps everything in process. It backs --ephemeral runs
// and tests; FailSaves simulates a degraded persistence layer.
type MemoryBackend struct {
	Transactions []tracker.Transaction
	Settings     *tracker.Settings
	FailSaves    bool

	SaveCalls int
}

// NewMemoryBackend returns an empty in-process backend.
func NewMemoryBackend() *MemoryBackend { return &MemoryBackend{} }

func (m *MemoryBackend) LoadTransactions() []tracker.Transaction {
	out := make([]tracker.Transaction, len(m.Transactions))
	copy(out, m.Transactions)
	return out
}

func (m *MemoryBackend) SaveTransactions(txns []tracker.Transaction) bool {
	m.SaveCalls++
	if m.FailSaves {
		return false
	}
	m.Transactions = make([]tracker.Transaction, len(txns))
	copy(m.Transactions, txns)
	return true
}

func (m *MemoryBackend) LoadSettings() tracker.Settings {
	if m.Settings == nil {
		return tracker.DefaultSettings()
	}
	return m.Settings.Clone()
}

func (m *MemoryBackend) SaveSettings(s tracker.Settings) bool {
	m.SaveCalls++
	if m.FailSaves {
		return false
	}
	clone := s.Clone()
	m.Settings = &clone
	return true
}

func (m *MemoryBackend) ClearAllData() bool {
	if m.FailSaves {
		return false
	}
	m.Transactions = nil
	m.Settings = nil
	return true
}
