// Package pisearch is a client for the angio.net Pi digit-search service.
package pisearch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const defaultEndpoint = "https://www.angio.net/newpi/piquery"

// ErrUpstream means the search service was reachable and returned a
// well-formed response, but reported a failure of its own.
var ErrUpstream = errors.New("pi search service reported an error")

// Result is the response body of one piquery call.
type Result struct {
	Status  string  `json:"status"`
	Elapsed int64   `json:"et"`
	Matches []Match `json:"r"`
}

// Match is a single search hit. Position is the 1-based digit offset of the
// first occurrence; Count is the number of occurrences in the searched range.
type Match struct {
	Key          string `json:"k"`
	SearchType   int    `json:"st"`
	Status       string `json:"status"`
	Position     uint64 `json:"p"`
	DigitsBefore string `json:"db"`
	DigitsAfter  string `json:"da"`
	Count        uint32 `json:"c"`
}

// NotFound reports whether the result carries no usable match: either the
// match list is empty or the first entry is flagged "notfound" by the
// service.
func (r *Result) NotFound() bool {
	return len(r.Matches) == 0 || r.Matches[0].Status == "notfound"
}

// Client queries the Pi search HTTP API.
type Client struct {
	endpoint   string
	httpClient *http.Client
}

// NewClient creates a Pi search client. If endpoint is empty, the public
// angio.net endpoint is used.
func NewClient(endpoint string) *Client {
	if endpoint == "" {
		endpoint = defaultEndpoint
	}
	return &Client{
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Search looks up a digit string in Pi. The query must already be normalized
// (digits only). Returns ErrUpstream (wrapped) if the service itself reports
// status "error".
func (c *Client) Search(ctx context.Context, query string) (*Result, error) {
	reqURL := c.endpoint + "?q=" + url.QueryEscape(query)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(body))
	}

	var result Result
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}

	if result.Status == "error" {
		return nil, fmt.Errorf("search %q: %w", query, ErrUpstream)
	}

	return &result, nil
}
