// Package storage mirrors the tracker's state to durable storage and
// handles the JSON import/export boundary. The durable form is a
// two-key JSON blob table in sqlite, a direct stand-in for the browser
// key-value store the data model grew up in.
package storage

import (
	"database/sql"
	"embed"
	"encoding/json"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"

	"github.com/krendl/spendwise/internal/tracker"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

const (
	keyTransactions = "transactions"
	keySettings     = "settings"
)

// SQLiteBackend persists the store's state as JSON blobs in a kv table.
// Load failures degrade to empty/default data; save failures report
// false and are the caller's to log.
type SQLiteBackend struct {
	db  *sql.DB
	log zerolog.Logger
}

// OpenSQLite opens (creating if needed) the database at path and applies
// pending migrations.
func OpenSQLite(path string, log zerolog.Logger) (*SQLiteBackend, error) {
	dsn := fmt.Sprintf("file:%s?_foreign_keys=on&_busy_timeout=5000", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1) // sqlite
	db.SetConnMaxLifetime(0)

	if err := runMigrations(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &SQLiteBackend{db: db, log: log}, nil
}

func runMigrations(db *sql.DB) error {
	driver, err := sqlite3.WithInstance(db, &sqlite3.Config{})
	if err != nil {
		return err
	}
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return err
	}
	m, err := migrate.NewWithInstance("iofs", src, "sqlite3", driver)
	if err != nil {
		return err
	}
	err = m.Up()
	if err == migrate.ErrNoChange {
		return nil
	}
	return err
}

// Close releases the underlying database handle.
func (b *SQLiteBackend) Close() error { return b.db.Close() }

// LoadTransactions returns the persisted collection, or an empty one
// when nothing usable is stored.
func (b *SQLiteBackend) LoadTransactions() []tracker.Transaction {
	var txns []tracker.Transaction
	if !b.loadJSON(keyTransactions, &txns) {
		return []tracker.Transaction{}
	}
	return txns
}

// SaveTransactions writes the collection, reporting success.
func (b *SQLiteBackend) SaveTransactions(txns []tracker.Transaction) bool {
	return b.saveJSON(keyTransactions, txns)
}

// LoadSettings returns the persisted settings, or the defaults when
// nothing usable is stored.
func (b *SQLiteBackend) LoadSettings() tracker.Settings {
	var s tracker.Settings
	if !b.loadJSON(keySettings, &s) || s.Currencies == nil {
		return tracker.DefaultSettings()
	}
	return s
}

// SaveSettings writes the settings, reporting success.
func (b *SQLiteBackend) SaveSettings(s tracker.Settings) bool {
	return b.saveJSON(keySettings, s)
}

// ClearAllData deletes both persisted keys.
func (b *SQLiteBackend) ClearAllData() bool {
	_, err := b.db.Exec(`DELETE FROM kv WHERE key IN (?, ?)`, keyTransactions, keySettings)
	if err != nil {
		b.log.Error().Err(err).Msg("clear data")
		return false
	}
	return true
}

func (b *SQLiteBackend) loadJSON(key string, out any) bool {
	var blob string
	err := b.db.QueryRow(`SELECT value FROM kv WHERE key = ?`, key).Scan(&blob)
	if err == sql.ErrNoRows {
		return false
	}
	if err != nil {
		b.log.Error().Err(err).Str("key", key).Msg("load failed; using defaults")
		return false
	}
	if err := json.Unmarshal([]byte(blob), out); err != nil {
		b.log.Error().Err(err).Str("key", key).Msg("corrupt value; using defaults")
		return false
	}
	return true
}

func (b *SQLiteBackend) saveJSON(key string, v any) bool {
	blob, err := json.Marshal(v)
	if err != nil {
		b.log.Error().Err(err).Str("key", key).Msg("encode failed")
		return false
	}
	_, err = b.db.Exec(
		`INSERT INTO kv(key, value) VALUES(?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, string(blob))
	if err != nil {
		b.log.Error().Err(err).Str("key", key).Msg("save failed")
		return false
	}
	return true
}
