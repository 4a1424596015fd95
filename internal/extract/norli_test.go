package extract

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

const norliPage = `<html><body>
<div class="product-item-info">
  <a class="product-item-link">Kokebok for nybegynnere</a>
  <span class="price">299,00 kr</span>
  <div class="special-price"><span class="price">199,00 kr</span></div>
</div>
<div class="product-item-info">
  <a class="product-item-link">Krimroman</a>
  <span class="price">249,00 kr</span>
</div>
<div class="product-item-info">
  <span class="price">99,00 kr</span>
</div>
</body></html>`

func TestNorli_Extract(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(norliPage))
	}))
	defer server.Close()

	ext := NewNorli("Norli", server.URL)

	offers, err := ext.Extract(context.Background(), testFetchClient())
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	// The item without a title link is skipped.
	if len(offers) != 2 {
		t.Fatalf("len(offers) = %d, want 2", len(offers))
	}

	// Discounted item: special price wins, base price becomes extra info.
	if offers[0].Title != "Kokebok for nybegynnere" {
		t.Errorf("Title = %q, want Kokebok for nybegynnere", offers[0].Title)
	}

	if offers[0].Price != "199,00 kr" {
		t.Errorf("Price = %q, want 199,00 kr", offers[0].Price)
	}

	if offers[0].Extra != "Førpris: 299,00 kr" {
		t.Errorf("Extra = %q, want Førpris: 299,00 kr", offers[0].Extra)
	}

	// Plain item: base price, no extra.
	if offers[1].Title != "Krimroman" || offers[1].Price != "249,00 kr" {
		t.Errorf("offers[1] = %+v, want Krimroman / 249,00 kr", offers[1])
	}

	if offers[1].Extra != "" {
		t.Errorf("offers[1].Extra = %q, want empty", offers[1].Extra)
	}
}

func TestNorli_Extract_FetchFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	ext := NewNorli("Norli", server.URL)

	if _, err := ext.Extract(context.Background(), testFetchClient()); err == nil {
		t.Error("Extract expected error on HTTP 404")
	}
}
