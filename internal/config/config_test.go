package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"fabline/internal/config"
)

func TestDefaultHasUsableIntervals(t *testing.T) {
	cfg := config.Default()
	if cfg.Workflow.PollInterval <= 0 {
		t.Fatalf("expected positive poll interval, got %d", cfg.Workflow.PollInterval)
	}
	if cfg.Workflow.RetryInterval <= 0 {
		t.Fatalf("expected positive retry interval, got %d", cfg.Workflow.RetryInterval)
	}
	if cfg.Logging.Format != "console" {
		t.Fatalf("expected console default format, got %q", cfg.Logging.Format)
	}
}

func TestLoadAppliesFileOverDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	contents := `
[paths]
data_dir = "` + filepath.Join(dir, "data") + `"
log_dir = "` + filepath.Join(dir, "logs") + `"

[backend]
base_url = "https://orders.example.com/api/"

[workflow]
poll_interval = 5
`
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !exists {
		t.Fatal("expected config file to be reported as existing")
	}
	if resolved != path {
		t.Fatalf("resolved path = %q, want %q", resolved, path)
	}
	if cfg.Workflow.PollInterval != 5 {
		t.Fatalf("poll interval = %d, want 5", cfg.Workflow.PollInterval)
	}
	if cfg.Workflow.RetryInterval != 30 {
		t.Fatalf("retry interval = %d, want default 30", cfg.Workflow.RetryInterval)
	}
	if strings.HasSuffix(cfg.Backend.BaseURL, "/") {
		t.Fatalf("base URL should be trimmed, got %q", cfg.Backend.BaseURL)
	}
}

func TestLoadRejectsMissingBackend(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte("[backend]\nbase_url = \"\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, _, _, err := config.Load(path); err == nil {
		t.Fatal("expected error for missing backend.base_url")
	}
}

func TestLoadRejectsBadLogFormat(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	contents := "[backend]\nbase_url = \"https://orders.example.com\"\n\n[logging]\nformat = \"xml\"\n"
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, _, _, err := config.Load(path); err == nil {
		t.Fatal("expected error for unsupported log format")
	}
}

func TestSampleConfigParses(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte(config.SampleConfig()), 0o644); err != nil {
		t.Fatalf("write sample config: %v", err)
	}

	if _, _, _, err := config.Load(path); err != nil {
		t.Fatalf("sample config should load cleanly: %v", err)
	}
}
