package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path"
	"time"

	"github.com/BurntSushi/toml"
)

const baseCfgPath = "rssreader/config.toml"

const (
	DefaultUserAgent = "rssreader/1.0"
	DefaultTimeout   = "30s"
)

type Config struct {
	Source      string            `toml:"source"`          // Feed read when no source argument is given
	JSON        bool              `toml:"json"`            // Print JSON instead of text
	Limit       *int              `toml:"limit"`           // Maximum number of items (unset = all)
	StripHTML   bool              `toml:"strip_html"`      // Remove markup from item descriptions
	UserAgent   string            `toml:"user_agent"`      // User-Agent header sent when fetching
	Timeout     string            `toml:"timeout"`         // HTTP timeout, e.g. "30s"
	FilterNames []string          `toml:"filters_enabled"` // Filters applied unless overridden on the command line
	Filters     map[string]Filter `toml:"filters"`         // Named filters that can be referenced by name
}

// Filter defines rules for filtering feed items
type Filter struct {
	MinLength         int      `toml:"min_length"`         // Minimum character count (0 = no limit)
	MinWords          int      `toml:"min_words"`          // Minimum word count (0 = no limit)
	ExcludePatterns   []string `toml:"exclude_patterns"`   // Regex patterns to exclude
	RequireParagraphs bool     `toml:"require_paragraphs"` // Must have multiple lines/paragraphs
}

// HTTPTimeout returns the parsed fetch timeout
func (c Config) HTTPTimeout() (time.Duration, error) {
	if c.Timeout == "" {
		return time.ParseDuration(DefaultTimeout)
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 0, fmt.Errorf("invalid timeout '%s' with %w", c.Timeout, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("invalid timeout '%s': must not be negative", c.Timeout)
	}
	return d, nil
}

// Validate reports every problem found in the config.
// Filter names are checked when the filter pipeline is built.
func (c Config) Validate() error {
	var errs []error
	if _, err := c.HTTPTimeout(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func Read(path string) (Config, error) {
	conf := Default()
	dat, err := os.ReadFile(path)
	if err != nil {
		return conf, err
	}
	_, err = toml.Decode(string(dat), &conf)
	if err != nil {
		return conf, fmt.Errorf("failed to decode config at %s with %w", path, err)
	}
	return conf, nil
}

func Write(cfgPath string, cfg Config) error {
	blob, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode config with %w", err)
	}
	basePath := path.Dir(cfgPath)
	err = os.MkdirAll(basePath, os.ModePerm)
	if err != nil {
		return fmt.Errorf("failed to create base config directory at '%s' with %w", basePath, err)
	}
	err = os.WriteFile(cfgPath, blob, 0644)
	if err != nil {
		return fmt.Errorf("failed to write into config file at '%s' with %w", cfgPath, err)
	}
	slog.Info("config written", "at", cfgPath)
	return nil
}

func Default() Config {
	return Config{
		UserAgent:   DefaultUserAgent,
		Timeout:     DefaultTimeout,
		FilterNames: []string{},
		Filters:     map[string]Filter{},
	}
}

func DefaultPath() string {
	var xdgHome = os.Getenv("XDG_CONFIG_HOME")
	if xdgHome != "" {
		return path.Join(xdgHome, baseCfgPath)
	}

	var home = os.Getenv("HOME")
	if home != "" {
		return path.Join(home, ".config", baseCfgPath)
	}

	return "config.toml"
}
