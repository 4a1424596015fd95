// Package models defines data structures shared by the scraper pipeline.
package models

// RawOffer is a single offer as pulled out of a page or circular, before
// normalization. Fields may carry stray whitespace; Price and Extra may be
// empty when the source does not expose them.
type RawOffer struct {
	Title string
	Price string
	Extra string
}

// Offer is one normalized weekly discount entry for a product at a partner
// store. Offers are immutable after creation and appear in the output in
// scrape order.
type Offer struct {
	Store string
	Title string
	Price string
	Extra string
}

// Row returns the offer as CSV cells in output column order.
func (o Offer) Row() []string {
	return []string{o.Store, o.Title, o.Price, o.Extra}
}
