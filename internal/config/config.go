// Package config loads and saves user settings. Settings live in a JSON
// file under ~/.config/synapse; a .env file and environment variables
// override the storage-related fields.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// Storage backends.
const (
	BackendFile    = "file"
	BackendSQLite  = "sqlite"
	BackendMemory  = "memory"
	defaultBackend = BackendFile
)

// ColorConfig holds the ANSI color indexes the panel is rendered with.
type ColorConfig struct {
	TitleBg    int `json:"title_bg"`
	TitleFg    int `json:"title_fg"`
	StatusBg   int `json:"status_bg"`
	StatusFg   int `json:"status_fg"`
	Border     int `json:"border_color"`
	SelectedFg int `json:"selected_fg"`
	AccentFg   int `json:"accent_fg"`
	ToastBg    int `json:"toast_bg"`
	ToastFg    int `json:"toast_fg"`
}

// Config is the persisted application configuration.
type Config struct {
	DataDir        string      `json:"data_dir"`
	StorageBackend string      `json:"storage_backend"`
	LogFile        string      `json:"log_file"`
	Colors         ColorConfig `json:"colors"`
}

func configPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, ".config", "synapse", "config.json"), nil
}

// Default returns the configuration used when no config file exists.
func Default() (Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return Config{}, fmt.Errorf("get home dir: %w", err)
	}
	dataDir := filepath.Join(home, ".local", "share", "synapse")
	return Config{
		DataDir:        dataDir,
		StorageBackend: defaultBackend,
		LogFile:        filepath.Join(dataDir, "synapse.log"),
		Colors: ColorConfig{
			TitleBg:    4,   // Blue
			TitleFg:    15,  // Bright White
			StatusBg:   8,   // Dark Gray
			StatusFg:   7,   // Light Gray
			Border:     12,  // Bright Blue
			SelectedFg: 11,  // Bright Yellow
			AccentFg:   14,  // Bright Cyan
			ToastBg:    235, // Dark Gray
			ToastFg:    250, // Light Gray
		},
	}, nil
}

// Load reads the config file, creating it with defaults when missing,
// then applies .env and environment overrides.
func Load() (Config, error) {
	path, err := configPath()
	if err != nil {
		return Config{}, err
	}

	var cfg Config
	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		cfg, err = Default()
		if err != nil {
			return Config{}, err
		}
		if err := Save(cfg); err != nil {
			return Config{}, err
		}
	case err != nil:
		return Config{}, fmt.Errorf("read config: %w", err)
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
	}

	applyEnv(&cfg)

	if cfg.StorageBackend == "" {
		cfg.StorageBackend = defaultBackend
	}
	return cfg, nil
}

// Save writes the config to disk, creating the config directory if
// needed.
func Save(cfg Config) error {
	path, err := configPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), dirPerm); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, filePerm); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// applyEnv overlays SYNAPSE_* variables from the environment and an
// optional .env file in the working directory.
func applyEnv(cfg *Config) {
	_ = godotenv.Load()

	if v := os.Getenv("SYNAPSE_DATA_DIR"); v != "" {
		cfg.DataDir = v
	}
	if v := os.Getenv("SYNAPSE_STORAGE_BACKEND"); v != "" {
		cfg.StorageBackend = v
	}
	if v := os.Getenv("SYNAPSE_LOG_FILE"); v != "" {
		cfg.LogFile = v
	}
}
