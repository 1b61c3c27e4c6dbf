package register

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"zhlaw/internal"
	"zhlaw/internal/config"
)

const maxErrorBody = 512

// Client downloads register documents over HTTP. A failed request is returned
// to the caller as-is; there is no retry.
type Client struct {
	httpClient *http.Client
	limiter    *RateLimiter
}

func NewClient(cfg config.Config) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: time.Duration(cfg.FetchTimeoutMs) * time.Millisecond},
		limiter:    NewRateLimiter(cfg.FetchRateLimitRPS),
	}
}

func (c *Client) Fetch(ctx context.Context, rawURL string) ([]internal.LawEntry, error) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return nil, fmt.Errorf("empty register url")
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", rawURL, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet := body
		if len(snippet) > maxErrorBody {
			snippet = snippet[:maxErrorBody]
		}
		return nil, fmt.Errorf("register fetch %s: status=%d body=%s", rawURL, resp.StatusCode, string(snippet))
	}

	entries, err := DecodeEntries(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", rawURL, err)
	}
	return entries, nil
}

// FetchAll fetches every source in order and concatenates their entries. The
// first failure aborts the whole fetch.
func (c *Client) FetchAll(ctx context.Context, urls []string) ([]internal.LawEntry, error) {
	all := make([]internal.LawEntry, 0)
	for _, u := range urls {
		entries, err := c.Fetch(ctx, u)
		if err != nil {
			return nil, err
		}
		all = append(all, entries...)
	}
	return all, nil
}
