package extract

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/K37722/trumfscraper/internal/fetcher"
	"github.com/K37722/trumfscraper/internal/models"
)

var prisClassPattern = regexp.MustCompile(`(?i)pris|price`)

// MesterGronn extracts offers from the Mester Grønn weekly offers page,
// which lays out one ".mg-box" block per offer.
type MesterGronn struct {
	store string
	url   string
}

// NewMesterGronn creates the Mester Grønn offers page extractor.
func NewMesterGronn(store, url string) *MesterGronn {
	return &MesterGronn{
		store: store,
		url:   url,
	}
}

// Store returns the partner store name.
func (m *MesterGronn) Store() string {
	return m.store
}

// Extract pulls one offer per box: heading as title, the first price-classed
// node as price and the first paragraph as extra info.
func (m *MesterGronn) Extract(ctx context.Context, client *fetcher.Client) ([]models.RawOffer, error) {
	page, err := client.Get(ctx, m.url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch offers page: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page.Text()))
	if err != nil {
		return nil, fmt.Errorf("failed to parse offers page: %w", err)
	}

	var offers []models.RawOffer

	doc.Find(".mg-box").Each(func(_ int, block *goquery.Selection) {
		title := strings.TrimSpace(block.Find("h2, h3").First().Text())
		if title == "" {
			return
		}

		offers = append(offers, models.RawOffer{
			Title: title,
			Price: nodeText(findByClass(block, prisClassPattern)),
			Extra: strings.TrimSpace(block.Find("p").First().Text()),
		})
	})

	return offers, nil
}
