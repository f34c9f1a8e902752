package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load with defaults failed: %v", err)
	}

	if cfg.App.LogLevel != "info" {
		t.Errorf("Default log level should be info, got %q", cfg.App.LogLevel)
	}
	if cfg.Dashboard.PreviewLimit != 100 {
		t.Errorf("Default preview limit should be 100, got %d", cfg.Dashboard.PreviewLimit)
	}
	if cfg.Dashboard.WordCloudLimit != 60 {
		t.Errorf("Default word cloud limit should be 60, got %d", cfg.Dashboard.WordCloudLimit)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Default port should be 8080, got %d", cfg.Server.Port)
	}
	if cfg.Data.Path == "" {
		t.Error("Default data path should not be empty")
	}
}

func TestLoadFromFile(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `app:
  log_level: debug
dashboard:
  preview_limit: 25
server:
  port: 3000
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.App.LogLevel != "debug" {
		t.Errorf("log_level should come from the file, got %q", cfg.App.LogLevel)
	}
	if cfg.Dashboard.PreviewLimit != 25 {
		t.Errorf("preview_limit should come from the file, got %d", cfg.Dashboard.PreviewLimit)
	}
	if cfg.Server.Port != 3000 {
		t.Errorf("port should come from the file, got %d", cfg.Server.Port)
	}
	// Values absent from the file keep their defaults.
	if cfg.Dashboard.WordCloudLimit != 60 {
		t.Errorf("wordcloud_limit should keep its default, got %d", cfg.Dashboard.WordCloudLimit)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("server:\n  port: 99999\n"), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Error("Expected an error for an out-of-range port")
	}
}

func TestLoadIsMemoized(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	first, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	second, err := Load("")
	if err != nil {
		t.Fatalf("Second load failed: %v", err)
	}
	if first != second {
		t.Error("Repeated loads should return the cached configuration")
	}
	if Get() != first {
		t.Error("Get should return the cached configuration")
	}
}
