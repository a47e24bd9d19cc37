package serp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/skinsage/backend/internal/domain"
	"golang.org/x/time/rate"
)

// Client handles communication with the SerpAPI search backend
type Client struct {
	httpClient  *http.Client
	apiKey      string
	baseURL     string
	rateLimiter *rate.Limiter
	debug       bool
}

// NewClient creates a new search provider client. timeout bounds each
// call; a timed-out call surfaces as a transport error and the cascade
// treats it as zero results for that variant.
func NewClient(apiKey, baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	// SerpAPI plans are quota-based; ~1 request/sec with a small burst
	// keeps a single cascade well inside any plan
	limiter := rate.NewLimiter(rate.Limit(1), 5)

	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		apiKey:      apiKey,
		baseURL:     baseURL,
		rateLimiter: limiter,
	}
}

// SetDebug enables verbose request logging
func (c *Client) SetDebug(debug bool) {
	c.debug = debug
}

// Search issues one query against the provider in the given mode.
// A provider-reported soft error (quota, parse issue) is returned as a
// response with Error set, not as a Go error: the caller decides how to
// degrade. There is no retry here - the cascade's fallback variants are
// the recovery mechanism.
func (c *Client) Search(ctx context.Context, query string, mode domain.SearchMode, region string) (*domain.SearchResponse, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter error: %w", err)
	}

	reqURL := c.buildURL(query, mode, region)
	if c.debug {
		log.Printf("[SERP] %s search: %q (region=%s)", mode, query, region)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "SkinSage/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrSearchAPIFailure, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading body: %v", domain.ErrSearchAPIFailure, err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", domain.ErrSearchAPIFailure, resp.StatusCode)
	}

	var searchResp domain.SearchResponse
	if err := json.Unmarshal(body, &searchResp); err != nil {
		return nil, fmt.Errorf("%w: decoding response: %v", domain.ErrSearchAPIFailure, err)
	}

	if searchResp.Error != "" && c.debug {
		log.Printf("[SERP] provider soft error: %s", searchResp.Error)
	}

	return &searchResp, nil
}

// buildURL assembles the provider request URL for the given mode
func (c *Client) buildURL(query string, mode domain.SearchMode, region string) string {
	params := url.Values{}
	params.Add("q", query)
	params.Add("api_key", c.apiKey)
	params.Add("hl", "en")
	params.Add("gl", region)
	params.Add("google_domain", "google."+region)

	switch mode {
	case domain.ModeCommerce:
		params.Add("engine", "google_shopping")
	default:
		params.Add("engine", "google")
	}

	return fmt.Sprintf("%s/search.json?%s", c.baseURL, params.Encode())
}
