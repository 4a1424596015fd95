// Package fetcher performs the HTTP requests against partner sites.
package fetcher

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/go-resty/resty/v2"

	"github.com/K37722/trumfscraper/internal/config"
)

// Fetch errors.
var (
	ErrUnexpectedStatus = errors.New("unexpected status code")
	ErrBodyTooLarge     = errors.New("response body exceeds size limit")
)

// Result holds a fetched response body together with the final URL after
// redirects, which relative links in the body must be resolved against.
type Result struct {
	Body []byte
	URL  *url.URL
}

// Text returns the body as a string.
func (r *Result) Text() string {
	return string(r.Body)
}

// Client fetches raw page content and binary blobs. There is no retry or
// backoff; a failed fetch fails the source.
type Client struct {
	rest      *resty.Client
	maxBodyKb int
}

// NewClient creates a fetch client from the fetch configuration.
func NewClient(cfg *config.FetchConfig) *Client {
	rest := resty.New().
		SetTimeout(cfg.GetTimeout()).
		SetHeader("User-Agent", cfg.UserAgent).
		SetHeader("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	return &Client{
		rest:      rest,
		maxBodyKb: cfg.MaxBodyKb,
	}
}

// Get performs a single HTTP GET against the given URL. Non-2xx responses
// and oversized bodies are errors.
func (c *Client) Get(ctx context.Context, rawURL string) (*Result, error) {
	resp, err := c.rest.R().SetContext(ctx).Get(rawURL)
	if err != nil {
		return nil, fmt.Errorf("request failed for %s: %w", rawURL, err)
	}

	if resp.StatusCode() < 200 || resp.StatusCode() > 299 {
		return nil, fmt.Errorf("%w: %d for %s", ErrUnexpectedStatus, resp.StatusCode(), rawURL)
	}

	body := resp.Body()
	if c.maxBodyKb > 0 && len(body) > c.maxBodyKb*1024 {
		return nil, fmt.Errorf("%w: %d bytes from %s", ErrBodyTooLarge, len(body), rawURL)
	}

	finalURL := resp.RawResponse.Request.URL

	return &Result{
		Body: body,
		URL:  finalURL,
	}, nil
}
