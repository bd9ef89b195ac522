package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/krendl/spendwise/internal/config"
	"github.com/krendl/spendwise/internal/logger"
	"github.com/krendl/spendwise/internal/storage"
	"github.com/krendl/spendwise/internal/tracker"
	"github.com/krendl/spendwise/internal/tui"
)

func main() {
	ephemeral := flag.Bool("ephemeral", false, "run with in-memory storage (nothing persisted)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	zl, closeLog, err := logger.New(cfg.Log.Path)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = closeLog() }()

	var backend tracker.Backend
	if *ephemeral || cfg.Storage.Ephemeral {
		backend = storage.NewMemoryBackend()
	} else {
		if err := os.MkdirAll(filepath.Dir(cfg.Storage.Path), 0o755); err != nil {
			log.Fatalf("mkdir data dir: %v", err)
		}
		sb, err := storage.OpenSQLite(cfg.Storage.Path, zl)
		if err != nil {
			log.Fatalf("open storage: %v", err)
		}
		defer sb.Close()
		backend = sb
	}

	store := tracker.New(backend, zl)
	store.Initialize()

	p := tea.NewProgram(tui.New(store, backend, cfg, zl), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		zl.Error().Err(err).Msg("tui exited")
		log.Fatalf("error: %v", err)
	}
}
