package extract

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/K37722/trumfscraper/internal/fetcher"
	"github.com/K37722/trumfscraper/internal/models"
)

var (
	priceClassPattern = regexp.MustCompile(`(?i)price`)
	descClassPattern  = regexp.MustCompile(`(?i)description|subtitle`)
)

// Etilbudsavis extracts offers from etilbudsavis.no catalogue pages. It is
// shared by Spar, Kiwi and Joker, which all publish their circulars there.
// A source may list backup URLs (alternate store slugs) tried in order until
// one yields offers.
type Etilbudsavis struct {
	store string
	urls  []string
}

// NewEtilbudsavis creates an etilbudsavis.no extractor for the given store.
func NewEtilbudsavis(store string, urls []string) *Etilbudsavis {
	return &Etilbudsavis{
		store: store,
		urls:  urls,
	}
}

// Store returns the partner store name.
func (e *Etilbudsavis) Store() string {
	return e.store
}

// Extract tries each configured URL in order and returns the first
// non-empty offer set. When every URL fails the per-URL errors are joined.
func (e *Etilbudsavis) Extract(ctx context.Context, client *fetcher.Client) ([]models.RawOffer, error) {
	var errs []error

	for _, url := range e.urls {
		page, err := client.Get(ctx, url)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", url, err))

			continue
		}

		offers := parseCataloguePage(page.Text())
		if len(offers) > 0 {
			return offers, nil
		}
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	return nil, nil
}

// parseCataloguePage pulls offers out of a catalogue page. Newer versions
// of the site expose the catalogue inside a __NEXT_DATA__ JSON blob; older
// ones render visible offer cards. Both are read, JSON first.
func parseCataloguePage(html string) []models.RawOffer {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil
	}

	var offers []models.RawOffer

	if raw := doc.Find("script#__NEXT_DATA__").Text(); raw != "" {
		offers = append(offers, nextDataOffers(raw)...)
	}

	doc.Find("[class*=OfferCard]").Each(func(_ int, card *goquery.Selection) {
		title := strings.TrimSpace(card.Find("h2, h3, h4").First().Text())
		if title == "" {
			return
		}

		offers = append(offers, models.RawOffer{
			Title: title,
			Price: nodeText(findByClass(card, priceClassPattern)),
			Extra: nodeText(findByClass(card, descClassPattern)),
		})
	})

	return offers
}

// nextData mirrors the fragment of the __NEXT_DATA__ document the catalogue
// items live under. Item fields vary between deployments, so items are kept
// raw and probed key by key.
type nextData struct {
	Props struct {
		PageProps struct {
			Catalogue *struct {
				Offers []json.RawMessage `json:"offers"`
				Items  []json.RawMessage `json:"items"`
			} `json:"catalogue"`
		} `json:"pageProps"`
	} `json:"props"`
}

func nextDataOffers(raw string) []models.RawOffer {
	var data nextData
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return nil
	}

	catalogue := data.Props.PageProps.Catalogue
	if catalogue == nil {
		return nil
	}

	items := catalogue.Offers
	if len(items) == 0 {
		items = catalogue.Items
	}

	var offers []models.RawOffer

	for _, rawItem := range items {
		var item map[string]any
		if err := json.Unmarshal(rawItem, &item); err != nil {
			continue
		}

		title := firstStringField(item, "heading", "title", "name")
		if title == "" {
			continue
		}

		offers = append(offers, models.RawOffer{
			Title: title,
			Price: firstScalarField(item, "priceText", "price"),
			Extra: firstStringField(item, "description", "subtitle"),
		})
	}

	return offers
}

// firstStringField returns the first non-empty string value among the keys.
func firstStringField(item map[string]any, keys ...string) string {
	for _, key := range keys {
		if value, ok := item[key].(string); ok {
			if trimmed := strings.TrimSpace(value); trimmed != "" {
				return trimmed
			}
		}
	}

	return ""
}

// firstScalarField is firstStringField extended to numeric values; price
// fields appear both as display strings and as plain numbers.
func firstScalarField(item map[string]any, keys ...string) string {
	for _, key := range keys {
		switch value := item[key].(type) {
		case string:
			if trimmed := strings.TrimSpace(value); trimmed != "" {
				return trimmed
			}
		case float64:
			return strconv.FormatFloat(value, 'f', -1, 64)
		}
	}

	return ""
}
