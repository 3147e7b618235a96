package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/lzyyzznl/work-tools/internal/logger"
)

// StorageBackend selects the persistence port implementation
type StorageBackend string

const (
	BackendSQLite   StorageBackend = "sqlite"
	BackendJSONFile StorageBackend = "jsonfile"
)

// IsValid checks if the backend is a known value
func (b StorageBackend) IsValid() bool {
	switch b {
	case BackendSQLite, BackendJSONFile:
		return true
	}
	return false
}

// Config is the complete configuration for the engine host
type Config struct {
	// DataDir is where the storage backend keeps its files
	DataDir string `mapstructure:"data_dir"`

	// Storage selects the persistence backend
	Storage StorageBackend `mapstructure:"storage"`

	// HistoryMax caps the rename history log
	HistoryMax int `mapstructure:"history_max"`

	// Log configures logging
	Log LogConfig `mapstructure:"log"`
}

// LogConfig mirrors the logger package options in config-file shape
type LogConfig struct {
	Level    string `mapstructure:"level"`
	Format   string `mapstructure:"format"`
	File     string `mapstructure:"file"`
	MaxSize  int    `mapstructure:"max_size_mb"`
	MaxAge   int    `mapstructure:"max_age_days"`
	Backups  int    `mapstructure:"max_backups"`
	Compress bool   `mapstructure:"compress"`
}

// LoggerConfig translates the log section into logger options. File output
// is enabled when a path is set.
func (c LogConfig) LoggerConfig() logger.Config {
	return logger.Config{
		Level:  logger.ParseLevel(c.Level),
		Format: logger.ParseFormat(c.Format),
		File: logger.FileConfig{
			Enabled:    c.File != "",
			Path:       c.File,
			MaxSizeMB:  c.MaxSize,
			MaxAgeDays: c.MaxAge,
			MaxBackups: c.Backups,
			Compress:   c.Compress,
		},
	}
}

// Validate checks if the configuration is complete and consistent
func (c *Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("data_dir cannot be empty")
	}
	if !c.Storage.IsValid() {
		return fmt.Errorf("unknown storage backend: %s", c.Storage)
	}
	if c.HistoryMax <= 0 {
		return fmt.Errorf("history_max must be positive, got %d", c.HistoryMax)
	}
	return nil
}

// DefaultDataDir returns the per-user data directory for the tool
func DefaultDataDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "work-tools")
	}
	return ".work-tools"
}

// ExpandPath expands ~ and environment variables in a path
func ExpandPath(path string) string {
	if len(path) > 0 && path[0] == '~' {
		home, err := os.UserHomeDir()
		if err == nil {
			if len(path) > 1 && (path[1] == '/' || path[1] == filepath.Separator) {
				path = filepath.Join(home, path[2:])
			} else if len(path) == 1 {
				path = home
			}
		}
	}
	path = os.ExpandEnv(path)
	return filepath.Clean(path)
}
