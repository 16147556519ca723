package mediathek

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ulikunitz/xz"

	"shunt/internal/config"
	"shunt/internal/services"
)

// Record is one raw Filmliste film entry. Fields are positional; the
// indices the pipeline cares about are title (2), broadcast date (3),
// start time (4), duration (5) and description (7).
type Record []any

// String returns the field at index i when it is a string, else "".
func (r Record) String(i int) string {
	if i < 0 || i >= len(r) {
		return ""
	}
	s, _ := r[i].(string)
	return s
}

// Client downloads the Filmliste and extracts matching records.
type Client struct {
	url        string
	userAgent  string
	keywords   []string
	httpClient *http.Client
}

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

// WithUserAgent sets the User-Agent header on download requests.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = strings.TrimSpace(ua)
	}
}

// New creates a Filmliste client from the mediathek configuration.
func New(cfg config.Mediathek, opts ...Option) (*Client, error) {
	url := strings.TrimSpace(cfg.FilmlisteURL)
	if url == "" {
		return nil, errors.New("filmliste url required")
	}
	if len(cfg.Keywords) == 0 {
		return nil, errors.New("at least one filter keyword required")
	}
	keywords := make([]string, 0, len(cfg.Keywords))
	for _, kw := range cfg.Keywords {
		kw = foldForMatch(kw)
		if kw != "" {
			keywords = append(keywords, kw)
		}
	}
	if len(keywords) == 0 {
		return nil, errors.New("at least one filter keyword required")
	}
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}
	client := &Client{
		url:        url,
		keywords:   keywords,
		httpClient: &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// Extract downloads the compressed Filmliste and returns every film
// record where some single field contains all configured keywords.
func (c *Client) Extract(ctx context.Context) ([]Record, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, services.Wrap(services.ErrNetwork, "mediathek", "download", "", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, services.Wrap(services.ErrNetwork, "mediathek", "download",
			fmt.Sprintf("filmliste returned %d", resp.StatusCode), nil)
	}

	reader, err := xz.NewReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("open xz stream: %w", err)
	}
	return c.scan(reader)
}

// scan walks the decompressed document token by token. The Filmliste
// is a single object with repeated keys, which json.Unmarshal would
// collapse; json.Decoder.Token sees every "X" entry.
func (c *Client) scan(r io.Reader) ([]Record, error) {
	dec := json.NewDecoder(r)

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("read filmliste: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("unexpected filmliste start token %v", tok)
	}

	var matches []Record
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("read filmliste key: %w", err)
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected filmliste key token %v", keyTok)
		}

		if key != "X" {
			var skipped json.RawMessage
			if err := dec.Decode(&skipped); err != nil {
				return nil, fmt.Errorf("skip %q value: %w", key, err)
			}
			continue
		}

		var record Record
		if err := dec.Decode(&record); err != nil {
			return nil, fmt.Errorf("decode film record: %w", err)
		}
		if c.matches(record) {
			matches = append(matches, record)
		}
	}
	return matches, nil
}

// matches reports whether any single string field carries every
// keyword. Requiring one field (rather than the record as a whole)
// keeps unrelated films that merely mention a keyword out.
func (c *Client) matches(record Record) bool {
	for _, field := range record {
		s, ok := field.(string)
		if !ok {
			continue
		}
		folded := foldForMatch(s)
		all := true
		for _, kw := range c.keywords {
			if !strings.Contains(folded, kw) {
				all = false
				break
			}
		}
		if all {
			return true
		}
	}
	return false
}

// foldForMatch lowercases and folds typographic dashes so that
// "Eisenbahn–Romantik" and "eisenbahn-romantik" compare equal.
func foldForMatch(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, "–", "-")
	s = strings.ReplaceAll(s, "—", "-")
	return s
}
