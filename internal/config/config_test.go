package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lzyyzznl/work-tools/internal/logger"
)

func TestLoadFromString_Defaults(t *testing.T) {
	cfg, err := LoadFromString("")
	if err != nil {
		t.Fatalf("LoadFromString failed: %v", err)
	}

	if cfg.Storage != BackendSQLite {
		t.Errorf("default storage = %s", cfg.Storage)
	}
	if cfg.HistoryMax != 50 {
		t.Errorf("default history_max = %d", cfg.HistoryMax)
	}
	if cfg.DataDir == "" {
		t.Error("default data_dir empty")
	}
	if cfg.Log.Level != "info" || cfg.Log.Format != "text" {
		t.Errorf("default log config = %+v", cfg.Log)
	}
}

func TestLoadFromString_Overrides(t *testing.T) {
	yaml := `
data_dir: /tmp/wt-test
storage: jsonfile
history_max: 10
log:
  level: debug
  format: json
  file: /tmp/wt-test/app.log
`
	cfg, err := LoadFromString(yaml)
	if err != nil {
		t.Fatalf("LoadFromString failed: %v", err)
	}

	if cfg.DataDir != filepath.Clean("/tmp/wt-test") {
		t.Errorf("data_dir = %s", cfg.DataDir)
	}
	if cfg.Storage != BackendJSONFile {
		t.Errorf("storage = %s", cfg.Storage)
	}
	if cfg.HistoryMax != 10 {
		t.Errorf("history_max = %d", cfg.HistoryMax)
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != "json" {
		t.Errorf("log config = %+v", cfg.Log)
	}
}

func TestLoadFromString_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"unknown backend", "storage: redis"},
		{"zero history", "history_max: 0"},
		{"negative history", "history_max: -5"},
		{"empty data dir", `data_dir: ""`},
		{"malformed yaml", "storage: [unclosed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadFromString(tt.yaml); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestLoad_ExplicitFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := "storage: jsonfile\nhistory_max: 25\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Storage != BackendJSONFile || cfg.HistoryMax != 25 {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestLoad_ExplicitFileMissing(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("missing explicit config file must fail")
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home dir")
	}

	got := ExpandPath("~/data")
	if got != filepath.Join(home, "data") {
		t.Errorf("ExpandPath(~/data) = %s", got)
	}

	if got := ExpandPath("~"); got != home {
		t.Errorf("ExpandPath(~) = %s", got)
	}

	t.Setenv("WT_TEST_DIR", "/opt/wt")
	got = ExpandPath("$WT_TEST_DIR/data")
	if !strings.HasPrefix(got, filepath.Clean("/opt/wt")) {
		t.Errorf("env expansion = %s", got)
	}
}

func TestLoggerConfig(t *testing.T) {
	lc := LogConfig{Level: "debug", Format: "json", File: "/tmp/wt/app.log", MaxSize: 5}
	got := lc.LoggerConfig()

	if got.Level != logger.LevelDebug || got.Format != logger.FormatJSON {
		t.Errorf("level/format = %v/%v", got.Level, got.Format)
	}
	if !got.File.Enabled || got.File.Path != "/tmp/wt/app.log" || got.File.MaxSizeMB != 5 {
		t.Errorf("file config = %+v", got.File)
	}

	if (LogConfig{}).LoggerConfig().File.Enabled {
		t.Error("file output must stay disabled without a path")
	}
}

func TestStorageBackend_IsValid(t *testing.T) {
	if !BackendSQLite.IsValid() || !BackendJSONFile.IsValid() {
		t.Error("known backends must be valid")
	}
	if StorageBackend("memcached").IsValid() {
		t.Error("unknown backend must be invalid")
	}
}
