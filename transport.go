package yandexid

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// defaultRequestTimeout bounds a single request when the caller's context
// carries no deadline.
const defaultRequestTimeout = 30 * time.Second

// Transport issues a single HTTP request on behalf of a client. It returns
// the response for any status code; interpreting non-2xx statuses is the
// caller's job, because Yandex reports OAuth errors in the body regardless
// of status. Implementations must be safe for concurrent use.
type Transport interface {
	Request(ctx context.Context, method, path string, query url.Values, form url.Values, headers http.Header) (*Response, error)
}

// Response is the transport-level result of a request.
type Response struct {
	StatusCode int
	Body       []byte
}

// RateLimitConfig configures optional client-side rate limiting using a
// token bucket. The zero value disables limiting.
type RateLimitConfig struct {
	// Rate is requests per second allowed. Zero disables limiting.
	Rate int

	// Burst is the maximum burst size. Defaults to Rate when zero.
	Burst int
}

// limiter builds a token-bucket limiter, or nil when limiting is disabled.
func (c RateLimitConfig) limiter() *rate.Limiter {
	if c.Rate <= 0 {
		return nil
	}
	burst := c.Burst
	if burst <= 0 {
		burst = c.Rate
	}
	return rate.NewLimiter(rate.Limit(c.Rate), burst)
}

// httpTransport is the default Transport over net/http. Every request gets
// the SDK User-Agent; form bodies are URL-encoded POST payloads.
type httpTransport struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

func newHTTPTransport(baseURL string, httpClient *http.Client, timeout time.Duration, rl RateLimitConfig) *httpTransport {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}
	return &httpTransport{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: httpClient,
		limiter:    rl.limiter(),
	}
}

// Request implements Transport.
func (t *httpTransport) Request(ctx context.Context, method, path string, query url.Values, form url.Values, headers http.Header) (*Response, error) {
	if t.limiter != nil {
		if err := t.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limit wait: %w", err)
		}
	}

	requestURL := t.baseURL + path
	if len(query) > 0 {
		requestURL += "?" + query.Encode()
	}

	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, method, requestURL, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	for key, values := range headers {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}
	req.Header.Set("User-Agent", userAgent)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return &Response{StatusCode: resp.StatusCode, Body: data}, nil
}

// ensureContextTimeout ensures the context has a deadline, adding one if
// needed. If the context already has a deadline, the original context is
// returned with a no-op cancel.
func ensureContextTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, hasDeadline := ctx.Deadline(); hasDeadline {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}
