package extract

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/ledongthuc/pdf"

	"github.com/K37722/trumfscraper/internal/fetcher"
	"github.com/K37722/trumfscraper/internal/models"
)

// Meny extraction errors.
var (
	ErrNoPDFLink = errors.New("no PDF link found on circular page")
)

var (
	// Attributes that may carry the circular PDF reference.
	pdfCandidateAttrs = []string{"href", "src", "data-src", "data-href"}

	absolutePDFPattern = regexp.MustCompile(`https?://[^\s'"<>]+\.pdf(?:\?[^'"<>]*)?`)
	quotedPDFPattern   = regexp.MustCompile(`['"]([^'"]+\.pdf(?:\?[^'"]*)?)['"]`)

	digitPattern = regexp.MustCompile(`\d`)
)

// Meny extracts offers from the Meny customer circular, which is published
// as a PDF document linked from a landing page.
type Meny struct {
	store string
	url   string
}

// NewMeny creates the Meny circular extractor.
func NewMeny(store, url string) *Meny {
	return &Meny{
		store: store,
		url:   url,
	}
}

// Store returns the partner store name.
func (m *Meny) Store() string {
	return m.store
}

// Extract locates the circular PDF, downloads it and pulls title/price
// pairs out of its text. Lines without digits carry no offer and are
// dropped.
func (m *Meny) Extract(ctx context.Context, client *fetcher.Client) ([]models.RawOffer, error) {
	page, err := client.Get(ctx, m.url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch circular page: %w", err)
	}

	pdfURL := FindPDFLink(page.Text(), page.URL)
	if pdfURL == "" {
		return nil, ErrNoPDFLink
	}

	blob, err := client.Get(ctx, pdfURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch circular PDF: %w", err)
	}

	lines, err := pdfTextLines(blob.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to extract PDF text: %w", err)
	}

	return offersFromLines(lines), nil
}

// offersFromLines applies the circular line heuristics: blank lines and
// lines without digits carry no offer, the rest split into title/price.
func offersFromLines(lines []string) []models.RawOffer {
	var offers []models.RawOffer

	for _, line := range lines {
		clean := strings.TrimSpace(line)
		if clean == "" || !digitPattern.MatchString(clean) {
			continue
		}

		title, price := SplitPriceLine(clean)
		offers = append(offers, models.RawOffer{
			Title: title,
			Price: price,
		})
	}

	return offers
}

// FindPDFLink locates the circular PDF URL inside a landing page. It first
// scans element attributes, then falls back to a raw text search: some
// deployments reference the PDF only from inline script configuration
// objects rather than DOM elements. Returns "" when nothing is found.
func FindPDFLink(html string, base *url.URL) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err == nil {
		var pdfURL string

		doc.Find("*").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
			for _, attr := range pdfCandidateAttrs {
				value, ok := sel.Attr(attr)
				if !ok || value == "" {
					continue
				}

				if strings.Contains(strings.ToLower(value), ".pdf") {
					pdfURL = resolveURL(base, value)

					return false
				}
			}

			return true
		})

		if pdfURL != "" {
			return pdfURL
		}
	}

	if match := absolutePDFPattern.FindString(html); match != "" {
		return match
	}

	if match := quotedPDFPattern.FindStringSubmatch(html); match != nil {
		return resolveURL(base, match[1])
	}

	return ""
}

// resolveURL resolves a possibly relative reference against the page URL.
func resolveURL(base *url.URL, ref string) string {
	if base == nil {
		return ref
	}

	resolved, err := base.Parse(ref)
	if err != nil {
		return ref
	}

	return resolved.String()
}

// pdfTextLines extracts the text content of every page, grouped into lines
// by vertical position, mirroring the layout order of the circular.
func pdfTextLines(data []byte) ([]string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}

	var lines []string

	for pageNum := 1; pageNum <= reader.NumPage(); pageNum++ {
		page := reader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}

		rows, err := page.GetTextByRow()
		if err != nil {
			// A single unreadable page should not discard the rest of
			// the circular.
			continue
		}

		for _, row := range rows {
			var sb strings.Builder
			for _, text := range row.Content {
				sb.WriteString(text.S)
			}

			lines = append(lines, sb.String())
		}
	}

	return lines, nil
}
