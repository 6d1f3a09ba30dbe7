// Package catalog queries the Broadcom Compatibility Guide for certified
// server listings.
//
// The guide exposes a JSON search endpoint. A search is filtered by partner
// name and matched by model keyword; the response lists the certified CPU
// series and supported releases of every matching listing.
//
// Every failure to obtain a decodable response (transport error, timeout,
// non-2xx status, malformed JSON) is reported as ErrUnavailable so callers
// can keep it apart from an empty result.
package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// ErrUnavailable is returned when the catalog cannot be queried.
var ErrUnavailable = errors.New("compatibility catalog unavailable")

// DefaultProgram is the catalog program holding server certifications.
const DefaultProgram = "server"

// Client is a compatibility catalog client.
type Client struct {
	baseURL    string
	program    string
	limit      int
	timeout    time.Duration
	httpClient *http.Client
	limiter    *rate.Limiter
	userAgent  string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the HTTP client used for searches.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithProgram sets the catalog program (default "server").
func WithProgram(program string) Option {
	return func(c *Client) { c.program = program }
}

// WithLimit sets the number of entries requested per search.
func WithLimit(limit int) Option {
	return func(c *Client) { c.limit = limit }
}

// WithTimeout bounds each search call.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithRateLimit paces searches to rps requests per second. A zero rps
// disables pacing.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *Client) {
		if rps <= 0 {
			c.limiter = nil
			return
		}
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// WithUserAgent sets the User-Agent header of searches.
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// New creates a catalog client for the search endpoint at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("baseURL is required")
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("invalid baseURL: %w", err)
	}

	c := &Client{
		baseURL:    baseURL,
		program:    DefaultProgram,
		limit:      20,
		timeout:    30 * time.Second,
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Search runs one catalog search.
func (c *Client) Search(ctx context.Context, q Query) (*Result, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	payload, err := json.Marshal(searchRequest{
		ProgramID: c.program,
		Filters: []searchFilter{
			{DisplayKey: "partnerName", FilterValues: []string{q.Vendor}},
		},
		Keyword: []string{q.Keyword},
		Date:    dateRange{},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal search: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.searchURL(), bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create search request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	log.WithFields(log.Fields{"vendor": q.Vendor, "keyword": q.Keyword}).Debug("searching compatibility catalog")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%w: catalog returned status %d: %s", ErrUnavailable, resp.StatusCode, bytes.TrimSpace(body))
	}

	var result Result
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrUnavailable, err)
	}
	if result.Data == nil {
		return nil, fmt.Errorf("%w: response has no data", ErrUnavailable)
	}

	return &result, nil
}

func (c *Client) searchURL() string {
	params := url.Values{}
	params.Set("limit", strconv.Itoa(c.limit))
	params.Set("page", "1")
	params.Set("sortBy", "partnerName")
	params.Set("sortType", "ASC")
	return c.baseURL + "?" + params.Encode()
}
