package register

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"

	"zhlaw/internal/config"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func newTestClient(t *testing.T, fn roundTripFunc) *Client {
	t.Helper()
	cfg, _ := config.Load()
	cfg.FetchRateLimitRPS = 1000
	client := NewClient(cfg)
	client.httpClient = &http.Client{Transport: fn}
	return client
}

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     make(http.Header),
	}
}

func TestFetchAllConcatenatesSources(t *testing.T) {
	calls := 0
	client := newTestClient(t, func(r *http.Request) (*http.Response, error) {
		calls++
		if r.Header.Get("Accept") != "application/json" {
			t.Fatalf("accept=%q", r.Header.Get("Accept"))
		}
		switch r.URL.Path {
		case "/a.json":
			return jsonResponse(http.StatusOK, `[{"abkuerzung":"StG","zhlaw_url_dynamic":"u1"}]`), nil
		case "/b.json":
			return jsonResponse(http.StatusOK, `[{"abkuerzung":"GG"},{"abkuerzung":"VRG"}]`), nil
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
			return nil, nil
		}
	})

	entries, err := client.FetchAll(context.Background(), []string{"https://zh.test/a.json", "https://zh.test/b.json"})
	if err != nil {
		t.Fatal(err)
	}
	if calls != 2 {
		t.Fatalf("calls=%d", calls)
	}
	if len(entries) != 3 || entries[0].Abkuerzung != "StG" || entries[2].Abkuerzung != "VRG" {
		t.Fatalf("entries=%+v", entries)
	}
}

func TestFetchDoesNotRetry(t *testing.T) {
	calls := 0
	client := newTestClient(t, func(r *http.Request) (*http.Response, error) {
		calls++
		return jsonResponse(http.StatusServiceUnavailable, `down`), nil
	})

	_, err := client.Fetch(context.Background(), "https://zh.test/laws.json")
	if err == nil || !strings.Contains(err.Error(), "status=503") {
		t.Fatalf("err=%v", err)
	}
	if calls != 1 {
		t.Fatalf("calls=%d", calls)
	}
}

func TestFetchAllStopsAtFirstFailure(t *testing.T) {
	calls := 0
	client := newTestClient(t, func(r *http.Request) (*http.Response, error) {
		calls++
		return jsonResponse(http.StatusOK, `not json`), nil
	})

	if _, err := client.FetchAll(context.Background(), []string{"https://zh.test/a", "https://zh.test/b"}); err == nil {
		t.Fatal("expected error")
	}
	if calls != 1 {
		t.Fatalf("calls=%d", calls)
	}
}

func TestFetchRejectsEmptyURL(t *testing.T) {
	client := newTestClient(t, func(r *http.Request) (*http.Response, error) {
		t.Fatal("no request expected")
		return nil, nil
	})
	if _, err := client.Fetch(context.Background(), "  "); err == nil {
		t.Fatal("expected error")
	}
}

func TestRateLimiterHonoursContext(t *testing.T) {
	limiter := NewRateLimiter(1)
	ctx, cancel := context.WithCancel(context.Background())
	if err := limiter.Wait(ctx); err != nil {
		t.Fatal(err)
	}
	cancel()
	if err := limiter.Wait(ctx); err == nil {
		t.Fatal("expected context error")
	}
}
