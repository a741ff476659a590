package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"synapse/internal/config"
	"synapse/internal/logging"
	"synapse/internal/store"
	"synapse/internal/tabs"
	"synapse/internal/ui"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "synapse:", err)
		os.Exit(1)
	}
}

func run() error {
	dataDir := flag.String("data-dir", "", "override data directory")
	backend := flag.String("backend", "", "storage backend: file, sqlite or memory")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if *dataDir != "" {
		cfg.DataDir = *dataDir
	}
	if *backend != "" {
		cfg.StorageBackend = *backend
	}

	log := logging.New(cfg.LogFile)
	log.Info().Str("backend", cfg.StorageBackend).Str("data_dir", cfg.DataDir).Msg("starting")

	kv, closeKV, err := openKV(cfg)
	if err != nil {
		return err
	}
	defer closeKV()

	s := store.New(kv)
	if err := s.Initialize(); err != nil {
		return fmt.Errorf("initialize store: %w", err)
	}

	m := ui.New(s, tabs.ClipboardQuerier{}, log, cfg.Colors)
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run program: %w", err)
	}
	log.Info().Msg("exiting")
	return nil
}

func openKV(cfg config.Config) (store.KV, func(), error) {
	switch cfg.StorageBackend {
	case config.BackendFile:
		return store.NewFileKV(cfg.DataDir), func() {}, nil
	case config.BackendSQLite:
		if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
			return nil, nil, fmt.Errorf("create data dir: %w", err)
		}
		kv, err := store.OpenSQLiteKV(filepath.Join(cfg.DataDir, "synapse.db"))
		if err != nil {
			return nil, nil, err
		}
		return kv, func() { kv.Close() }, nil
	case config.BackendMemory:
		return store.NewMemKV(), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
}
