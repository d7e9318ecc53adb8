// Package scrape fetches web pages over plain HTTP and exposes them as
// goquery documents for CSS-selector extraction.
package scrape

import (
	"bytes"
	"context"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"
)

const maxBodyBytes = 512 * 1024

// Page is a fetched and parsed web page.
type Page struct {
	URL        string
	StatusCode int
	Server     string // Server response header, when present
	Doc        *goquery.Document
}

// Client fetches pages with per-call timeouts and a browser-like user agent.
// All research fetches go through one Client so connection pooling is shared.
type Client struct {
	http      *http.Client
	userAgent string
	limiter   *rate.Limiter
}

// NewClient creates a Client. The transport carries dial/TLS timeouts; the
// per-request deadline comes from the caller's context. Outbound requests are
// unthrottled until Throttle is called.
func NewClient(userAgent string) *Client {
	return &Client{
		http: &http.Client{
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 10 * time.Second,
				}).DialContext,
				TLSHandshakeTimeout: 10 * time.Second,
			},
		},
		userAgent: userAgent,
		limiter:   rate.NewLimiter(rate.Inf, 1),
	}
}

// Throttle caps the outbound request rate across all fetches and probes, so
// bursts of page probes stay polite to the target site. Non-positive rates
// leave the client unthrottled.
func (c *Client) Throttle(requestsPerSec float64) {
	if requestsPerSec > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(requestsPerSec), 1)
	}
}

// Fetch downloads a URL and parses it into a goquery document.
func (c *Client) Fetch(ctx context.Context, targetURL string) (*Page, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, eris.Wrap(err, "scrape: rate limit wait")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return nil, eris.Wrap(err, "scrape: create request")
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "scrape: fetch")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return nil, eris.Errorf("scrape: status %d for %s", resp.StatusCode, targetURL)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, eris.Wrap(err, "scrape: read body")
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, eris.Wrap(err, "scrape: parse html")
	}

	return &Page{
		URL:        targetURL,
		StatusCode: resp.StatusCode,
		Server:     resp.Header.Get("Server"),
		Doc:        doc,
	}, nil
}

// Probe issues a GET and reports the status code without reading the body.
// Used by the website resolver's domain guessing.
func (c *Client) Probe(ctx context.Context, targetURL string) (int, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return 0, eris.Wrap(err, "scrape: rate limit wait")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return 0, eris.Wrap(err, "scrape: create probe request")
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, eris.Wrap(err, "scrape: probe")
	}
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4*1024))
	_ = resp.Body.Close()

	return resp.StatusCode, nil
}

// Text returns the page body text, whitespace-collapsed and lowercased.
func (p *Page) Text() string {
	if p == nil || p.Doc == nil {
		return ""
	}
	text := p.Doc.Find("body").Text()
	return strings.ToLower(strings.Join(strings.Fields(text), " "))
}
