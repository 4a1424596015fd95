package extract

import (
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/K37722/trumfscraper/internal/fetcher"
	"github.com/K37722/trumfscraper/internal/models"
)

// Norli extracts offers from the Norli campaign page, a Magento product
// grid. The discounted price wins over the base price; when both exist the
// base price is kept as extra info.
type Norli struct {
	store string
	url   string
}

// NewNorli creates the Norli campaign page extractor.
func NewNorli(store, url string) *Norli {
	return &Norli{
		store: store,
		url:   url,
	}
}

// Store returns the partner store name.
func (n *Norli) Store() string {
	return n.store
}

// Extract pulls title/price pairs from the product grid. Items without a
// title are skipped.
func (n *Norli) Extract(ctx context.Context, client *fetcher.Client) ([]models.RawOffer, error) {
	page, err := client.Get(ctx, n.url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch campaign page: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page.Text()))
	if err != nil {
		return nil, fmt.Errorf("failed to parse campaign page: %w", err)
	}

	var offers []models.RawOffer

	doc.Find(".product-item-info").Each(func(_ int, item *goquery.Selection) {
		title := strings.TrimSpace(item.Find(".product-item-link").First().Text())
		if title == "" {
			return
		}

		basePrice := strings.TrimSpace(item.Find(".price").First().Text())
		special := strings.TrimSpace(item.Find(".special-price .price").First().Text())

		price := special
		if price == "" {
			price = basePrice
		}

		extra := ""
		if special != "" && basePrice != "" {
			extra = "Førpris: " + basePrice
		}

		offers = append(offers, models.RawOffer{
			Title: title,
			Price: price,
			Extra: extra,
		})
	})

	return offers, nil
}
