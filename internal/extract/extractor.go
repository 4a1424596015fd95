// Package extract contains the per-source offer extractors. Each partner
// site has its own markup, so every extractor carries site-specific
// selectors and heuristics that must be revisited whenever the site changes.
package extract

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/K37722/trumfscraper/internal/config"
	"github.com/K37722/trumfscraper/internal/fetcher"
	"github.com/K37722/trumfscraper/internal/models"
)

// ErrUnknownExtractor is returned when a source names an extractor that does
// not exist.
var ErrUnknownExtractor = errors.New("unknown extractor")

// Extractor converts raw fetched content of one source into raw offer
// tuples. Implementations skip malformed items instead of failing the
// whole source.
type Extractor interface {
	// Store returns the partner store name stamped on every offer.
	Store() string

	// Extract fetches the source and pulls out its current offers.
	Extract(ctx context.Context, client *fetcher.Client) ([]models.RawOffer, error)
}

// ForSource builds the extractor declared by a source config entry.
func ForSource(src config.SourceConfig) (Extractor, error) {
	switch src.Extractor {
	case "meny":
		return NewMeny(src.Name, src.URL), nil
	case "etilbudsavis":
		return NewEtilbudsavis(src.Name, src.GetAllURLs()), nil
	case "norli":
		return NewNorli(src.Name, src.URL), nil
	case "mestergronn":
		return NewMesterGronn(src.Name, src.URL), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownExtractor, src.Extractor)
	}
}

// findByClass returns the first descendant whose class attribute matches the
// pattern, or nil. Partner sites hash their class names, so extractors match
// substrings instead of exact classes.
func findByClass(sel *goquery.Selection, pattern *regexp.Regexp) *goquery.Selection {
	var found *goquery.Selection

	sel.Find("*").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		class, ok := s.Attr("class")
		if ok && pattern.MatchString(class) {
			found = s

			return false
		}

		return true
	})

	return found
}

// nodeText returns the trimmed text of a selection, or "" for nil.
func nodeText(sel *goquery.Selection) string {
	if sel == nil {
		return ""
	}

	return strings.TrimSpace(sel.Text())
}
