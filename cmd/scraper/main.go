// Package main provides the command-line scraper that collects the current
// Trumf partner offers into a timestamped CSV file.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/K37722/trumfscraper/internal/aggregator"
	"github.com/K37722/trumfscraper/internal/config"
	"github.com/K37722/trumfscraper/internal/csvwriter"
	"github.com/K37722/trumfscraper/internal/fetcher"
	"github.com/K37722/trumfscraper/internal/logger"
	"github.com/K37722/trumfscraper/internal/report"
)

const defaultConfigPath = "configs/scraper.yaml"

func main() {
	configFile := flag.String("config", "", "Path to YAML configuration file")
	outputDir := flag.String("output", "", "Output directory (overrides config)")
	logLevel := flag.String("log-level", "", "Log level: debug, info, warn, error (overrides config)")

	flag.Parse()

	cfg, err := loadConfig(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if *outputDir != "" {
		cfg.Scraper.Output.Dir = *outputDir
	}

	if *logLevel != "" {
		cfg.Scraper.Logging.Level = *logLevel
	}

	log := logger.NewLogger(cfg.Scraper.Logging.Level)
	log.Info("starting scrape cycle", "sources", len(cfg.GetEnabledSources()))

	client := fetcher.NewClient(&cfg.Scraper.Fetch)

	agg, err := aggregator.New(cfg, client, log)
	if err != nil {
		log.Error("invalid source configuration", "err", err)
		os.Exit(1)
	}

	offers, results := agg.Collect(context.Background())

	path, err := csvwriter.Write(offers, cfg.Scraper.Output.Dir, cfg.Scraper.Output.FilePrefix, time.Now())
	if err != nil {
		log.Error("failed to write output file", "err", err)
		os.Exit(1)
	}

	fmt.Print(report.Summary(results))
	fmt.Println(report.Saved(len(offers), path))
}

// loadConfig resolves the configuration: an explicit file, then the default
// config path when present, then the built-in source list.
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadConfig(path)
	}

	if _, err := os.Stat(defaultConfigPath); err == nil {
		return config.LoadConfig(defaultConfigPath)
	}

	return config.DefaultConfig(), nil
}
