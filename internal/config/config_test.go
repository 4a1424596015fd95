package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "scraper.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	return path
}

const validConfigYAML = `
scraper:
  sources:
    - name: Norli
      url: https://www.norli.no/kampanje/tilbud
      kind: html
      extractor: norli
      enabled: true
    - name: Meny
      url: https://kundeavis.meny.no/
      kind: pdf
      extractor: meny
      enabled: false
  fetch:
    timeout_sec: 10
  output:
    dir: out
    file_prefix: tilbud
  logging:
    level: debug
`

func TestLoadConfig(t *testing.T) {
	path := writeConfigFile(t, validConfigYAML)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if len(cfg.Scraper.Sources) != 2 {
		t.Fatalf("len(Sources) = %d, want 2", len(cfg.Scraper.Sources))
	}

	if cfg.Scraper.Fetch.TimeoutSec != 10 {
		t.Errorf("TimeoutSec = %d, want 10", cfg.Scraper.Fetch.TimeoutSec)
	}

	if cfg.Scraper.Output.Dir != "out" {
		t.Errorf("Output.Dir = %q, want out", cfg.Scraper.Output.Dir)
	}

	if cfg.Scraper.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Scraper.Logging.Level)
	}
}

func TestLoadConfig_AppliesDefaults(t *testing.T) {
	path := writeConfigFile(t, `
scraper:
  sources:
    - name: Norli
      url: https://www.norli.no/kampanje/tilbud
      kind: html
      extractor: norli
      enabled: true
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	def := DefaultConfig()

	if cfg.Scraper.Fetch.TimeoutSec != def.Scraper.Fetch.TimeoutSec {
		t.Errorf("TimeoutSec = %d, want default %d", cfg.Scraper.Fetch.TimeoutSec, def.Scraper.Fetch.TimeoutSec)
	}

	if cfg.Scraper.Fetch.UserAgent == "" {
		t.Error("UserAgent default was not applied")
	}

	if cfg.Scraper.Output.Dir != "data" {
		t.Errorf("Output.Dir = %q, want data", cfg.Scraper.Output.Dir)
	}

	if cfg.Scraper.Output.FilePrefix != "trumf-tilbud" {
		t.Errorf("Output.FilePrefix = %q, want trumf-tilbud", cfg.Scraper.Output.FilePrefix)
	}

	if cfg.Scraper.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q, want info", cfg.Scraper.Logging.Level)
	}
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("LoadConfig expected error for missing file")
	}
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	path := writeConfigFile(t, "scraper: [not a mapping")

	if _, err := LoadConfig(path); err == nil {
		t.Error("LoadConfig expected error for invalid YAML")
	}
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		cfg := DefaultConfig()

		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{
			name:    "valid default",
			mutate:  func(*Config) {},
			wantErr: nil,
		},
		{
			name:    "no sources",
			mutate:  func(c *Config) { c.Scraper.Sources = nil },
			wantErr: ErrNoSources,
		},
		{
			name: "no enabled sources",
			mutate: func(c *Config) {
				for i := range c.Scraper.Sources {
					c.Scraper.Sources[i].Enabled = false
				}
			},
			wantErr: ErrNoEnabledSources,
		},
		{
			name:    "missing name",
			mutate:  func(c *Config) { c.Scraper.Sources[0].Name = "" },
			wantErr: ErrSourceMissingName,
		},
		{
			name:    "missing url",
			mutate:  func(c *Config) { c.Scraper.Sources[0].URL = "" },
			wantErr: ErrSourceMissingURL,
		},
		{
			name:    "invalid kind",
			mutate:  func(c *Config) { c.Scraper.Sources[0].Kind = "xml" },
			wantErr: ErrSourceInvalidKind,
		},
		{
			name:    "missing extractor",
			mutate:  func(c *Config) { c.Scraper.Sources[0].Extractor = "" },
			wantErr: ErrSourceMissingExtractor,
		},
		{
			name:    "invalid timeout",
			mutate:  func(c *Config) { c.Scraper.Fetch.TimeoutSec = 0 },
			wantErr: ErrInvalidTimeout,
		},
		{
			name:    "invalid max body",
			mutate:  func(c *Config) { c.Scraper.Fetch.MaxBodyKb = 0 },
			wantErr: ErrInvalidMaxBody,
		},
		{
			name:    "missing output dir",
			mutate:  func(c *Config) { c.Scraper.Output.Dir = "" },
			wantErr: ErrMissingOutputDir,
		},
		{
			name:    "missing file prefix",
			mutate:  func(c *Config) { c.Scraper.Output.FilePrefix = "" },
			wantErr: ErrMissingFilePrefix,
		},
		{
			name:    "invalid log level",
			mutate:  func(c *Config) { c.Scraper.Logging.Level = "trace" },
			wantErr: ErrInvalidLogLevel,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(cfg)

			err := cfg.Validate()

			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}

				return
			}

			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestGetEnabledSources_PreservesOrder(t *testing.T) {
	cfg := DefaultConfig()

	enabled := cfg.GetEnabledSources()
	if len(enabled) != 6 {
		t.Fatalf("len(enabled) = %d, want 6", len(enabled))
	}

	wantOrder := []string{"Meny", "Spar", "Kiwi", "Joker", "Norli", "Mester Grønn"}
	for i, want := range wantOrder {
		if enabled[i].Name != want {
			t.Errorf("enabled[%d].Name = %q, want %q", i, enabled[i].Name, want)
		}
	}
}

func TestSourceConfig_GetAllURLs(t *testing.T) {
	src := SourceConfig{
		URL:        "https://etilbudsavis.no/Spar",
		BackupURLs: []string{"https://etilbudsavis.no/Meny"},
	}

	urls := src.GetAllURLs()
	if len(urls) != 2 {
		t.Fatalf("len(urls) = %d, want 2", len(urls))
	}

	if urls[0] != "https://etilbudsavis.no/Spar" {
		t.Errorf("urls[0] = %q, want primary URL first", urls[0])
	}
}

func TestDefaultConfig_IsValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() = %v, want nil", err)
	}
}

func TestFetchConfig_GetTimeout(t *testing.T) {
	fc := FetchConfig{TimeoutSec: 30}
	if fc.GetTimeout().Seconds() != 30 {
		t.Errorf("GetTimeout() = %v, want 30s", fc.GetTimeout())
	}
}
