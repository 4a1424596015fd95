// Package normalizer converts raw offer tuples into canonical offer records.
package normalizer

import (
	"regexp"
	"strings"

	"github.com/K37722/trumfscraper/internal/models"
	"github.com/K37722/trumfscraper/pkg/utils"
)

// Normalizer performs the light text cleanup between extraction and output.
// It never fails: missing fields become empty strings.
type Normalizer struct {
	krSpacingPattern *regexp.Regexp
}

// NewNormalizer creates a new normalizer instance.
func NewNormalizer() *Normalizer {
	return &Normalizer{
		// "29,90kr" / "kr29,90" -> "29,90 kr" / "kr 29,90"
		krSpacingPattern: regexp.MustCompile(`(?i)(\d)(kr)|(kr)(\d)`),
	}
}

// Normalize converts one raw tuple into a canonical offer for the store.
func (n *Normalizer) Normalize(store string, raw models.RawOffer) models.Offer {
	return models.Offer{
		Store: strings.TrimSpace(store),
		Title: utils.CollapseWhitespace(raw.Title),
		Price: n.normalizePrice(raw.Price),
		Extra: utils.CollapseWhitespace(raw.Extra),
	}
}

// NormalizeAll converts a slice of raw tuples in order.
func (n *Normalizer) NormalizeAll(store string, raws []models.RawOffer) []models.Offer {
	offers := make([]models.Offer, 0, len(raws))

	for _, raw := range raws {
		offers = append(offers, n.Normalize(store, raw))
	}

	return offers
}

// normalizePrice collapses whitespace and inserts the conventional space
// between the amount and the currency marker.
func (n *Normalizer) normalizePrice(price string) string {
	clean := utils.CollapseWhitespace(price)

	return n.krSpacingPattern.ReplaceAllString(clean, "$1$3 $2$4")
}
