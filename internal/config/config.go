// Package config provides configuration management for the offer scraper.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Source kinds.
const (
	KindPDF  = "pdf"
	KindHTML = "html"
)

// Configuration validation errors.
var (
	ErrNoSources              = errors.New("at least one source is required")
	ErrNoEnabledSources       = errors.New("at least one source must be enabled")
	ErrSourceMissingName      = errors.New("source name is required")
	ErrSourceMissingURL       = errors.New("source url is required")
	ErrSourceInvalidKind      = errors.New("source kind must be 'pdf' or 'html'")
	ErrSourceMissingExtractor = errors.New("source extractor is required")
	ErrInvalidTimeout         = errors.New("fetch.timeout_sec must be at least 1")
	ErrInvalidMaxBody         = errors.New("fetch.max_body_kb must be at least 1")
	ErrMissingOutputDir       = errors.New("output.dir is required")
	ErrMissingFilePrefix      = errors.New("output.file_prefix is required")
	ErrInvalidLogLevel        = errors.New("logging.level must be one of: debug, info, warn, error")
)

// Config represents the complete scraper configuration.
type Config struct {
	Scraper ScraperConfig `yaml:"scraper"`
}

// ScraperConfig contains scraper-specific settings.
type ScraperConfig struct {
	Sources []SourceConfig `yaml:"sources"`
	Fetch   FetchConfig    `yaml:"fetch"`
	Output  OutputConfig   `yaml:"output"`
	Logging LoggingConfig  `yaml:"logging"`
}

// SourceConfig describes one partner store to scrape.
type SourceConfig struct {
	Name       string   `yaml:"name"`
	URL        string   `yaml:"url"`
	BackupURLs []string `yaml:"backup_urls"`
	Kind       string   `yaml:"kind"`
	Extractor  string   `yaml:"extractor"`
	Enabled    bool     `yaml:"enabled"`
}

// GetAllURLs returns the primary URL followed by any backup URLs.
func (s *SourceConfig) GetAllURLs() []string {
	urls := []string{s.URL}
	urls = append(urls, s.BackupURLs...)

	return urls
}

// FetchConfig defines HTTP fetch behavior.
type FetchConfig struct {
	TimeoutSec int    `yaml:"timeout_sec"`
	UserAgent  string `yaml:"user_agent"`
	MaxBodyKb  int    `yaml:"max_body_kb"`
}

// GetTimeout returns the fetch timeout duration.
func (f *FetchConfig) GetTimeout() time.Duration {
	return time.Duration(f.TimeoutSec) * time.Second
}

// OutputConfig defines CSV output behavior.
type OutputConfig struct {
	Dir        string `yaml:"dir"`
	FilePrefix string `yaml:"file_prefix"`
}

// LoggingConfig defines logging behavior.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// DefaultUserAgent mirrors a desktop Chrome UA; several partner sites reject
// requests with obvious bot user agents.
const DefaultUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) " +
	"AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"

// DefaultConfig returns the built-in configuration covering all Trumf
// partner sources, so the binary runs without a config file.
func DefaultConfig() *Config {
	return &Config{
		Scraper: ScraperConfig{
			Sources: []SourceConfig{
				{
					Name:      "Meny",
					URL:       "https://kundeavis.meny.no/",
					Kind:      KindPDF,
					Extractor: "meny",
					Enabled:   true,
				},
				{
					Name:       "Spar",
					URL:        "https://etilbudsavis.no/Spar",
					BackupURLs: []string{"https://etilbudsavis.no/Meny"},
					Kind:       KindHTML,
					Extractor:  "etilbudsavis",
					Enabled:    true,
				},
				{
					Name:      "Kiwi",
					URL:       "https://etilbudsavis.no/KIWI",
					Kind:      KindHTML,
					Extractor: "etilbudsavis",
					Enabled:   true,
				},
				{
					Name:      "Joker",
					URL:       "https://etilbudsavis.no/Joker",
					Kind:      KindHTML,
					Extractor: "etilbudsavis",
					Enabled:   true,
				},
				{
					Name:      "Norli",
					URL:       "https://www.norli.no/kampanje/tilbud",
					Kind:      KindHTML,
					Extractor: "norli",
					Enabled:   true,
				},
				{
					Name:      "Mester Grønn",
					URL:       "https://www.mestergronn.no/mg/ukens-tilbud.html",
					Kind:      KindHTML,
					Extractor: "mestergronn",
					Enabled:   true,
				},
			},
			Fetch: FetchConfig{
				TimeoutSec: 30,
				UserAgent:  DefaultUserAgent,
				MaxBodyKb:  10240,
			},
			Output: OutputConfig{
				Dir:        "data",
				FilePrefix: "trumf-tilbud",
			},
			Logging: LoggingConfig{
				Level: "info",
			},
		},
	}
}

// LoadConfig loads configuration from a YAML file.
func LoadConfig(filepath string) (*Config, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// applyDefaults fills unset fetch/output/logging fields from the built-in
// configuration so config files only need to list sources.
func applyDefaults(cfg *Config) {
	def := DefaultConfig()

	if cfg.Scraper.Fetch.TimeoutSec == 0 {
		cfg.Scraper.Fetch.TimeoutSec = def.Scraper.Fetch.TimeoutSec
	}

	if cfg.Scraper.Fetch.UserAgent == "" {
		cfg.Scraper.Fetch.UserAgent = def.Scraper.Fetch.UserAgent
	}

	if cfg.Scraper.Fetch.MaxBodyKb == 0 {
		cfg.Scraper.Fetch.MaxBodyKb = def.Scraper.Fetch.MaxBodyKb
	}

	if cfg.Scraper.Output.Dir == "" {
		cfg.Scraper.Output.Dir = def.Scraper.Output.Dir
	}

	if cfg.Scraper.Output.FilePrefix == "" {
		cfg.Scraper.Output.FilePrefix = def.Scraper.Output.FilePrefix
	}

	if cfg.Scraper.Logging.Level == "" {
		cfg.Scraper.Logging.Level = def.Scraper.Logging.Level
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if len(c.Scraper.Sources) == 0 {
		return ErrNoSources
	}

	enabledCount := 0

	for i, src := range c.Scraper.Sources {
		if src.Name == "" {
			return fmt.Errorf("%w: source[%d]", ErrSourceMissingName, i)
		}

		if src.URL == "" {
			return fmt.Errorf("%w: source[%d]", ErrSourceMissingURL, i)
		}

		if src.Kind != KindPDF && src.Kind != KindHTML {
			return fmt.Errorf("%w: source[%d]", ErrSourceInvalidKind, i)
		}

		if src.Extractor == "" {
			return fmt.Errorf("%w: source[%d]", ErrSourceMissingExtractor, i)
		}

		if src.Enabled {
			enabledCount++
		}
	}

	if enabledCount == 0 {
		return ErrNoEnabledSources
	}

	if c.Scraper.Fetch.TimeoutSec < 1 {
		return ErrInvalidTimeout
	}

	if c.Scraper.Fetch.MaxBodyKb < 1 {
		return ErrInvalidMaxBody
	}

	if c.Scraper.Output.Dir == "" {
		return ErrMissingOutputDir
	}

	if c.Scraper.Output.FilePrefix == "" {
		return ErrMissingFilePrefix
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Scraper.Logging.Level] {
		return ErrInvalidLogLevel
	}

	return nil
}

// GetEnabledSources returns only enabled sources, in declared order.
func (c *Config) GetEnabledSources() []SourceConfig {
	var enabled []SourceConfig

	for _, src := range c.Scraper.Sources {
		if src.Enabled {
			enabled = append(enabled, src)
		}
	}

	return enabled
}

// String returns a string representation of the config.
func (c *Config) String() string {
	return fmt.Sprintf(
		"Config{Sources: %d, Timeout: %ds, Output: %s}",
		len(c.Scraper.Sources),
		c.Scraper.Fetch.TimeoutSec,
		c.Scraper.Output.Dir,
	)
}
