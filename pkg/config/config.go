package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration options for the downloader
type Config struct {
	// API endpoint and request settings
	Fanbox FanboxConfig `yaml:"fanbox" json:"fanbox"`

	// Output settings
	Output OutputConfig `yaml:"output" json:"output"`

	// File naming
	Naming NamingConfig `yaml:"naming" json:"naming"`

	// Logging configuration
	Logging LoggingConfig `yaml:"logging" json:"logging"`
}

// FanboxConfig holds API-specific configuration
type FanboxConfig struct {
	APIBaseURL     string        `yaml:"api_base_url" json:"api_base_url" env:"FANBOXDL_API_BASE_URL"`
	Origin         string        `yaml:"origin" json:"origin" env:"FANBOXDL_ORIGIN"`
	CookieName     string        `yaml:"cookie_name" json:"cookie_name" env:"FANBOXDL_COOKIE_NAME"`
	UserAgent      string        `yaml:"user_agent" json:"user_agent" env:"FANBOXDL_USER_AGENT"`
	PageSize       int           `yaml:"page_size" json:"page_size" env:"FANBOXDL_PAGE_SIZE"`
	RequestTimeout time.Duration `yaml:"request_timeout" json:"request_timeout" env:"FANBOXDL_REQUEST_TIMEOUT"`
}

// OutputConfig holds output directory configuration
type OutputConfig struct {
	Directory string `yaml:"directory" json:"directory" env:"FANBOXDL_OUTPUT_DIR"`
	Overwrite bool   `yaml:"overwrite" json:"overwrite" env:"FANBOXDL_OVERWRITE"`
}

// NamingConfig controls how destination prefixes are numbered
type NamingConfig struct {
	// LegacyNumbering restores the original suffix counter that resets on
	// every post whose date is unique. It can assign the same prefix twice.
	LegacyNumbering bool `yaml:"legacy_numbering" json:"legacy_numbering" env:"FANBOXDL_LEGACY_NUMBERING"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level   string `yaml:"level" json:"level" env:"FANBOXDL_LOG_LEVEL"`
	File    string `yaml:"file" json:"file" env:"FANBOXDL_LOG_FILE"`
	NoColor bool   `yaml:"no_color" json:"no_color" env:"FANBOXDL_NO_COLOR"`
}

// DefaultConfig returns a Config instance with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Fanbox: FanboxConfig{
			APIBaseURL: "https://api.fanbox.cc",
			Origin:     "https://fanbox.cc",
			CookieName: "FANBOXSESSID",
			PageSize:   300,
		},
		Output: OutputConfig{
			Directory: ".",
			Overwrite: false,
		},
		Logging: LoggingConfig{
			Level: "warn",
		},
	}
}

// LoadFromEnv overrides fields whose FANBOXDL_* variable is set
func (c *Config) LoadFromEnv() error {
	if err := env.Parse(c); err != nil {
		return fmt.Errorf("failed to parse environment: %w", err)
	}
	return nil
}

// LoadFromFile loads configuration from a YAML file
func (c *Config) LoadFromFile(path string) error {
	if path == "" {
		path = findConfigFile()
		if path == "" {
			return nil // No config file found, not an error
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	return nil
}

// DefaultLocations lists the config files searched when no path is given,
// in order of precedence.
func DefaultLocations() []string {
	home := os.Getenv("HOME")
	return []string{
		".fanboxdl.yaml",
		".fanboxdl.yml",
		filepath.Join(home, ".config", "fanboxdl", "config.yaml"),
		filepath.Join(home, ".config", "fanboxdl", "config.yml"),
	}
}

func findConfigFile() string {
	for _, loc := range DefaultLocations() {
		if _, err := os.Stat(loc); err == nil {
			return loc
		}
	}
	return ""
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	var errs []error

	if u, err := url.Parse(c.Fanbox.APIBaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Errorf("api base url %q is not an absolute URL", c.Fanbox.APIBaseURL))
	}
	if c.Fanbox.Origin == "" {
		errs = append(errs, errors.New("origin header is required"))
	}
	if c.Fanbox.CookieName == "" {
		errs = append(errs, errors.New("session cookie name is required"))
	}
	if c.Fanbox.PageSize <= 0 {
		errs = append(errs, errors.New("page size must be positive"))
	}
	if c.Fanbox.RequestTimeout < 0 {
		errs = append(errs, errors.New("request timeout cannot be negative"))
	}

	if c.Output.Directory == "" {
		errs = append(errs, errors.New("output directory is required"))
	}

	validLogLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true,
	}
	if !validLogLevels[strings.ToLower(c.Logging.Level)] {
		errs = append(errs, fmt.Errorf("invalid log level %q", c.Logging.Level))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// Save saves the configuration to a file
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// MergeCommandLineFlags merges command line flags into the configuration.
// Only keys present in the map are applied.
func (c *Config) MergeCommandLineFlags(flags map[string]interface{}) {
	if dir, ok := flags["output"].(string); ok && dir != "" {
		c.Output.Directory = dir
	}
	if overwrite, ok := flags["clobber"].(bool); ok {
		c.Output.Overwrite = overwrite
	}
	if legacy, ok := flags["legacy-numbering"].(bool); ok {
		c.Naming.LegacyNumbering = legacy
	}
	if logLevel, ok := flags["log-level"].(string); ok && logLevel != "" {
		c.Logging.Level = logLevel
	}
	if logFile, ok := flags["log-file"].(string); ok && logFile != "" {
		c.Logging.File = logFile
	}
	if noColor, ok := flags["no-color"].(bool); ok {
		c.Logging.NoColor = noColor
	}
}

// Load loads configuration from all sources with proper precedence
// Precedence order: Command line flags > Environment variables > .env file > Config file > Defaults
func Load(configPath string, flags map[string]interface{}) (*Config, error) {
	// godotenv never overrides variables that are already set
	_ = godotenv.Load(".env")
	_ = godotenv.Load(filepath.Join(os.Getenv("HOME"), ".fanboxdl.env"))

	config := DefaultConfig()

	if err := config.LoadFromFile(configPath); err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	if err := config.LoadFromEnv(); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	config.MergeCommandLineFlags(flags)

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}
