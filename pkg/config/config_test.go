package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	if config.Fanbox.PageSize != 300 {
		t.Errorf("Expected default page size to be 300, got %d", config.Fanbox.PageSize)
	}

	if config.Fanbox.CookieName != "FANBOXSESSID" {
		t.Errorf("Expected default cookie name FANBOXSESSID, got %s", config.Fanbox.CookieName)
	}

	if config.Output.Directory != "." {
		t.Errorf("Expected default output directory to be ., got %s", config.Output.Directory)
	}

	if config.Output.Overwrite {
		t.Error("Expected overwrite to be disabled by default")
	}

	if config.Fanbox.RequestTimeout != 0 {
		t.Errorf("Expected no request timeout by default, got %v", config.Fanbox.RequestTimeout)
	}

	if err := config.Validate(); err != nil {
		t.Errorf("Expected default config to be valid, got %v", err)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("FANBOXDL_OUTPUT_DIR", "/tmp/fanbox")
	t.Setenv("FANBOXDL_OVERWRITE", "true")
	t.Setenv("FANBOXDL_PAGE_SIZE", "50")
	t.Setenv("FANBOXDL_REQUEST_TIMEOUT", "45s")
	t.Setenv("FANBOXDL_LOG_LEVEL", "debug")

	config := DefaultConfig()
	if err := config.LoadFromEnv(); err != nil {
		t.Fatalf("Failed to load from environment: %v", err)
	}

	if config.Output.Directory != "/tmp/fanbox" {
		t.Errorf("Expected output directory /tmp/fanbox, got %s", config.Output.Directory)
	}
	if !config.Output.Overwrite {
		t.Error("Expected overwrite to be enabled")
	}
	if config.Fanbox.PageSize != 50 {
		t.Errorf("Expected page size 50, got %d", config.Fanbox.PageSize)
	}
	if config.Fanbox.RequestTimeout != 45*time.Second {
		t.Errorf("Expected request timeout 45s, got %v", config.Fanbox.RequestTimeout)
	}
	if config.Logging.Level != "debug" {
		t.Errorf("Expected log level debug, got %s", config.Logging.Level)
	}

	// Unset variables leave defaults alone
	if config.Fanbox.Origin != "https://fanbox.cc" {
		t.Errorf("Expected origin to keep its default, got %s", config.Fanbox.Origin)
	}
}

func TestLoadFromEnvInvalidValue(t *testing.T) {
	t.Setenv("FANBOXDL_PAGE_SIZE", "many")

	config := DefaultConfig()
	if err := config.LoadFromEnv(); err == nil {
		t.Error("Expected error for non-numeric page size")
	}
}

func TestLoadFromFile(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "config.yaml")

	content := `fanbox:
  page_size: 100
  request_timeout: 1m
output:
  directory: /srv/fanbox
  overwrite: true
naming:
  legacy_numbering: true
logging:
  level: error
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	config := DefaultConfig()
	if err := config.LoadFromFile(configPath); err != nil {
		t.Fatalf("Failed to load config file: %v", err)
	}

	if config.Fanbox.PageSize != 100 {
		t.Errorf("Expected page size 100, got %d", config.Fanbox.PageSize)
	}
	if config.Fanbox.RequestTimeout != time.Minute {
		t.Errorf("Expected request timeout 1m, got %v", config.Fanbox.RequestTimeout)
	}
	if config.Output.Directory != "/srv/fanbox" || !config.Output.Overwrite {
		t.Errorf("Unexpected output config: %+v", config.Output)
	}
	if !config.Naming.LegacyNumbering {
		t.Error("Expected legacy numbering to be enabled")
	}
	if config.Logging.Level != "error" {
		t.Errorf("Expected log level error, got %s", config.Logging.Level)
	}
	// Keys absent from the file keep their defaults
	if config.Fanbox.CookieName != "FANBOXSESSID" {
		t.Errorf("Expected cookie name to keep its default, got %s", config.Fanbox.CookieName)
	}
}

func TestLoadFromFileInvalidYAML(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(configPath, []byte("output: [unclosed"), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	config := DefaultConfig()
	if err := config.LoadFromFile(configPath); err == nil {
		t.Error("Expected error for invalid YAML")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"relative api url", func(c *Config) { c.Fanbox.APIBaseURL = "api.fanbox.cc" }, "absolute URL"},
		{"empty origin", func(c *Config) { c.Fanbox.Origin = "" }, "origin"},
		{"empty cookie name", func(c *Config) { c.Fanbox.CookieName = "" }, "cookie name"},
		{"zero page size", func(c *Config) { c.Fanbox.PageSize = 0 }, "page size"},
		{"negative timeout", func(c *Config) { c.Fanbox.RequestTimeout = -time.Second }, "timeout"},
		{"empty output", func(c *Config) { c.Output.Directory = "" }, "output directory"},
		{"bad log level", func(c *Config) { c.Logging.Level = "verbose" }, "log level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultConfig()
			tt.mutate(config)
			err := config.Validate()
			if err == nil {
				t.Fatal("Expected validation error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Expected error to mention %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestMergeCommandLineFlags(t *testing.T) {
	config := DefaultConfig()
	config.MergeCommandLineFlags(map[string]interface{}{
		"output":           "out",
		"clobber":          true,
		"legacy-numbering": true,
		"log-level":        "debug",
		"no-color":         true,
	})

	if config.Output.Directory != "out" {
		t.Errorf("Expected output directory out, got %s", config.Output.Directory)
	}
	if !config.Output.Overwrite {
		t.Error("Expected overwrite to be enabled")
	}
	if !config.Naming.LegacyNumbering {
		t.Error("Expected legacy numbering to be enabled")
	}
	if config.Logging.Level != "debug" || !config.Logging.NoColor {
		t.Errorf("Unexpected logging config: %+v", config.Logging)
	}
}

func TestLoadPrecedence(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	content := "output:\n  directory: from-file\nlogging:\n  level: info\n"
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	t.Setenv("FANBOXDL_LOG_LEVEL", "error")

	config, err := Load(configPath, map[string]interface{}{"output": "from-flag"})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if config.Output.Directory != "from-flag" {
		t.Errorf("Expected flag to win, got %s", config.Output.Directory)
	}
	if config.Logging.Level != "error" {
		t.Errorf("Expected env to override file, got %s", config.Logging.Level)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	config := DefaultConfig()
	config.Output.Directory = "/data"
	if err := config.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded := DefaultConfig()
	if err := loaded.LoadFromFile(path); err != nil {
		t.Fatalf("LoadFromFile failed: %v", err)
	}
	if loaded.Output.Directory != "/data" {
		t.Errorf("Expected /data, got %s", loaded.Output.Directory)
	}
}
