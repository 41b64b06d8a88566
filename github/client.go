package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const (
	defaultBaseURL   = "https://api.github.com"
	defaultUserAgent = "gistgrab"

	// maxPageSize is the largest page the gists endpoint accepts.
	maxPageSize = 100
)

// Client is a GitHub gists API client. It implements Lister and RawFetcher.
type Client struct {
	baseURL    string
	token      string
	userAgent  string
	httpClient *http.Client
	logger     zerolog.Logger
	observer   PageObserver
}

// NewClient creates a new gists API client.
func NewClient(logger zerolog.Logger, opts ...Option) *Client {
	client := &Client{
		baseURL:   defaultBaseURL,
		userAgent: defaultUserAgent,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// ListGists retrieves gists for username, requesting pages of pageSize
// until limit gists have accumulated or the API runs out of pages.
//
// A negative limit means all available gists; a limit of zero returns an
// empty list without issuing any request. pageSize is clamped to the API
// maximum of 100; values <= 0 use the maximum. Listing is all-or-nothing:
// any page failure discards gists accumulated from earlier pages.
func (c *Client) ListGists(ctx context.Context, username string, limit, pageSize int) ([]Gist, error) {
	if pageSize <= 0 || pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	if limit == 0 {
		return []Gist{}, nil
	}

	var allGists []Gist
	page := 1

	for {
		gists, hasNext, err := c.fetchPage(ctx, username, page, pageSize)
		if err != nil {
			return nil, err
		}

		allGists = append(allGists, gists...)

		if limit > 0 && len(allGists) >= limit {
			allGists = allGists[:limit]
			break
		}

		// A short page means the API has no more gists even when it
		// omits the Link header.
		if !hasNext || len(gists) < pageSize {
			break
		}

		page++
	}

	c.logger.Debug().
		Str("username", username).
		Int("count", len(allGists)).
		Int("pages", page).
		Msg("Finished listing gists")

	return allGists, nil
}

// fetchPage retrieves a single page and reports whether the API advertises
// a further page.
func (c *Client) fetchPage(ctx context.Context, username string, page, pageSize int) ([]Gist, bool, error) {
	params := url.Values{}
	params.Set("per_page", strconv.Itoa(pageSize))
	params.Set("page", strconv.Itoa(page))

	endpoint := fmt.Sprintf("%s/users/%s/gists?%s", c.baseURL, url.PathEscape(username), params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, false, fmt.Errorf("failed to create request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, false, &APIError{Kind: KindTransport, Page: page, URL: endpoint, Err: err}
	}
	defer resp.Body.Close()

	rl := parseRateLimit(resp.Header)
	c.logger.Info().
		Str("username", username).
		Int("page", page).
		Int("status", resp.StatusCode).
		Interface("rate_limit", rl.Limit).
		Interface("rate_remaining", rl.Remaining).
		Msg("Fetched gist page")

	if rl.Exhausted() {
		// Deliberately no throttling here; the next request will fail
		// with a normal HTTP error if the window has not reset.
		c.logger.Warn().Int("page", page).Msg("Rate limit remaining is zero")
	}

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, false, &APIError{Kind: KindHTTP, StatusCode: resp.StatusCode, Page: page, URL: endpoint}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, false, &APIError{Kind: KindTransport, Page: page, URL: endpoint, Err: err}
	}

	var gists []Gist
	if err := json.Unmarshal(body, &gists); err != nil {
		return nil, false, &APIError{Kind: KindDecode, Page: page, URL: endpoint, Err: err}
	}

	if c.observer != nil {
		c.observer.OnPageFetched(page, len(gists), rl)
	}

	return gists, hasNextPage(resp.Header), nil
}

// FetchRaw retrieves the raw content of a single gist file.
func (c *Client) FetchRaw(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &APIError{Kind: KindTransport, URL: rawURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, &APIError{Kind: KindHTTP, StatusCode: resp.StatusCode, URL: rawURL}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &APIError{Kind: KindTransport, URL: rawURL, Err: err}
	}

	return body, nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("User-Agent", c.userAgent)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
}

// hasNextPage checks the Link header for a rel="next" entry.
func hasNextPage(header http.Header) bool {
	return strings.Contains(header.Get("Link"), `rel="next"`)
}

// parseRateLimit reads the rate-limit headers from a response. Absent or
// malformed headers leave the corresponding field nil.
func parseRateLimit(header http.Header) RateLimit {
	var rl RateLimit
	if v, err := strconv.Atoi(header.Get("x-ratelimit-limit")); err == nil {
		rl.Limit = &v
	}
	if v, err := strconv.Atoi(header.Get("x-ratelimit-remaining")); err == nil {
		rl.Remaining = &v
	}
	return rl
}
