package tvdb

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"golang.org/x/net/html"

	"shunt/internal/catalog"
	"shunt/internal/config"
	"shunt/internal/services"
)

// CacheInfo captures CDN cache diagnostics from the response headers.
// TheTVDB fronts its public pages with a CDN, so a stale Age explains
// why a freshly aired episode is missing from a fetch.
type CacheInfo struct {
	Age    time.Duration
	HasAge bool
	XCache string
}

// Describe renders the cache diagnostics in human-readable form.
func (c CacheInfo) Describe() string {
	if !c.HasAge {
		return "no Age header (likely not served from CDN cache)"
	}
	total := int(c.Age.Seconds())
	desc := fmt.Sprintf("cache age %ds (%dh %dm %ds)", total, total/3600, (total%3600)/60, total%60)
	if c.XCache != "" {
		desc += ", status " + c.XCache
	}
	return desc
}

// FetchResult is one scraped episode listing plus response diagnostics.
type FetchResult struct {
	Episodes []catalog.Episode
	Cache    CacheInfo
	URL      string
}

// Fetcher defines the scrape operations the fetch pipeline uses.
type Fetcher interface {
	AllSeasons(ctx context.Context) (*FetchResult, error)
	Specials(ctx context.Context) (*FetchResult, error)
}

// Client scrapes TheTVDB series pages.
type Client struct {
	cfg        config.TVDB
	userAgent  string
	httpClient *http.Client
}

var _ Fetcher = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// New creates a scraper client for the configured series.
func New(cfg config.TVDB, opts ...Option) (*Client, error) {
	cfg.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if cfg.BaseURL == "" {
		return nil, errors.New("tvdb base url required")
	}
	cfg.SeriesSlug = strings.TrimSpace(cfg.SeriesSlug)
	if cfg.SeriesSlug == "" {
		return nil, errors.New("tvdb series slug required")
	}
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	client := &Client{
		cfg:        cfg,
		userAgent:  strings.TrimSpace(cfg.UserAgent),
		httpClient: &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// AllSeasons scrapes the all-seasons page: every regular season plus
// the specials block, in whatever order the page lists them.
func (c *Client) AllSeasons(ctx context.Context) (*FetchResult, error) {
	return c.fetch(ctx, c.cfg.AllSeasonsURL(), false)
}

// Specials scrapes the season-0 page. Specials pages sometimes omit
// the SE code, so parsing falls back to "Episode N" labels there.
func (c *Client) Specials(ctx context.Context) (*FetchResult, error) {
	return c.fetch(ctx, c.cfg.SpecialsURL(), true)
}

func (c *Client) fetch(ctx context.Context, url string, specialsPage bool) (*FetchResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	requestStart := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := time.Since(requestStart)
	if err != nil {
		return nil, services.Wrap(services.ErrNetwork, "tvdb", "fetch",
			fmt.Sprintf("execute request (latency=%v)", latency), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, services.Wrap(services.ErrNetwork, "tvdb", "fetch",
			fmt.Sprintf("page returned %d (latency=%v)", resp.StatusCode, latency), nil)
	}

	result := &FetchResult{URL: url, Cache: cacheInfo(resp.Header)}

	root, err := html.Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse tvdb page: %w", err)
	}
	result.Episodes = c.extractEpisodes(root, specialsPage)
	return result, nil
}

func cacheInfo(header http.Header) CacheInfo {
	info := CacheInfo{XCache: header.Get("X-Cache")}
	if raw := header.Get("Age"); raw != "" {
		if seconds, err := strconv.Atoi(raw); err == nil {
			info.HasAge = true
			info.Age = time.Duration(seconds) * time.Second
		}
	}
	return info
}
