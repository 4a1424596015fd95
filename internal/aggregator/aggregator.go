// Package aggregator drives the scrape cycle across all configured sources.
package aggregator

import (
	"context"
	"fmt"

	"github.com/K37722/trumfscraper/internal/config"
	"github.com/K37722/trumfscraper/internal/extract"
	"github.com/K37722/trumfscraper/internal/fetcher"
	"github.com/K37722/trumfscraper/internal/logger"
	"github.com/K37722/trumfscraper/internal/models"
	"github.com/K37722/trumfscraper/internal/normalizer"
)

// SourceResult records the outcome of one source for the run summary.
type SourceResult struct {
	Store string
	Count int
	Err   error
}

// Aggregator runs fetch -> extract -> normalize for each source in declared
// order and concatenates the results. A failing source is logged and
// skipped; the run itself never aborts for one bad source.
type Aggregator struct {
	client     *fetcher.Client
	norm       *normalizer.Normalizer
	extractors []extract.Extractor
	log        *logger.Logger
}

// New builds an aggregator from the enabled sources in the configuration.
// An unknown extractor name is a configuration error.
func New(cfg *config.Config, client *fetcher.Client, log *logger.Logger) (*Aggregator, error) {
	sources := cfg.GetEnabledSources()

	extractors := make([]extract.Extractor, 0, len(sources))

	for _, src := range sources {
		ext, err := extract.ForSource(src)
		if err != nil {
			return nil, fmt.Errorf("source %q: %w", src.Name, err)
		}

		extractors = append(extractors, ext)
	}

	return &Aggregator{
		client:     client,
		norm:       normalizer.NewNormalizer(),
		extractors: extractors,
		log:        log,
	}, nil
}

// NewWithExtractors builds an aggregator over an explicit extractor list.
func NewWithExtractors(client *fetcher.Client, extractors []extract.Extractor, log *logger.Logger) *Aggregator {
	return &Aggregator{
		client:     client,
		norm:       normalizer.NewNormalizer(),
		extractors: extractors,
		log:        log,
	}
}

// Collect runs all extractors sequentially and returns every normalized
// offer in scrape order, plus one result entry per source.
func (a *Aggregator) Collect(ctx context.Context) ([]models.Offer, []SourceResult) {
	var offers []models.Offer

	results := make([]SourceResult, 0, len(a.extractors))

	for _, ext := range a.extractors {
		store := ext.Store()

		a.log.Debug("scraping source", "store", store)

		raws, err := ext.Extract(ctx, a.client)
		if err != nil {
			a.log.Warn("failed to collect offers, skipping source", "store", store, "err", err)
			results = append(results, SourceResult{Store: store, Err: err})

			continue
		}

		normalized := a.norm.NormalizeAll(store, raws)
		offers = append(offers, normalized...)

		a.log.Info("collected offers", "store", store, "count", len(normalized))
		results = append(results, SourceResult{Store: store, Count: len(normalized)})
	}

	return offers, results
}
