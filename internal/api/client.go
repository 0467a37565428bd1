package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	defaultTimeout = 8 * time.Second

	// Error bodies are bounded; anything larger is truncated before
	// normalization.
	maxErrorBody = 64 << 10
)

// Client issues typed calls against the eShop backend API. It owns its
// base URL and HTTP client explicitly; the bearer token travels in the
// request context and is attached by the transport.
type Client struct {
	base *url.URL
	http *http.Client
}

// Option customises client construction.
type Option func(*Client)

// WithHTTPClient substitutes the underlying HTTP client (tests).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithTimeout overrides the default per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// New constructs a backend API client rooted at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("api: base URL is required")
	}
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("api: parse base URL: %w", err)
	}

	c := &Client{
		base: parsed,
		http: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}

	// Wrap whatever transport the HTTP client carries so the bearer
	// token is attached to every outgoing request.
	c.http.Transport = &authTransport{base: c.http.Transport}
	return c, nil
}

func (c *Client) newRequest(ctx context.Context, method, endpoint string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.resolve(endpoint), body)
	if err != nil {
		return nil, fmt.Errorf("api: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	return req, nil
}

func (c *Client) newJSONRequest(ctx context.Context, method, endpoint string, payload any) (*http.Request, error) {
	var buf bytes.Buffer
	if payload != nil {
		enc := json.NewEncoder(&buf)
		enc.SetEscapeHTML(false)
		if err := enc.Encode(payload); err != nil {
			return nil, fmt.Errorf("api: encode payload: %w", err)
		}
	}
	req, err := c.newRequest(ctx, method, endpoint, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

func (c *Client) resolve(endpoint string) string {
	trimmed := strings.TrimPrefix(endpoint, "/")
	ref := &url.URL{Path: trimmed}
	// Keep the query out of Path or String() would percent-encode the
	// separator and the backend would see a literal-? path.
	if i := strings.IndexByte(trimmed, '?'); i >= 0 {
		ref.Path, ref.RawQuery = trimmed[:i], trimmed[i+1:]
	}
	return c.base.ResolveReference(ref).String()
}

// do executes the request and converts any failure status into an
// annotated *RequestError. A nil error guarantees a 2xx response.
func (c *Client) do(req *http.Request) (*http.Response, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("api: request failed: %w", err)
	}
	if resp.StatusCode >= 400 {
		return nil, failureFromResponse(resp)
	}
	return resp, nil
}

// doJSON executes the request and decodes the body into T. An empty
// body yields a nil T without error; malformed JSON propagates as a
// hard failure.
func doJSON[T any](c *Client, req *http.Request) (*T, error) {
	resp, err := c.do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("api: read response: %w", err)
	}
	return ParseJSON[T](body)
}

// doEmpty executes the request and discards any successful body.
func doEmpty(c *Client, req *http.Request) error {
	resp, err := c.do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxErrorBody))
	return nil
}

// failureFromResponse builds the annotated failure for a non-2xx
// response. The normalized record is attached before the session
// expiry decision so downstream handlers always observe a fully
// annotated error, even when a redirect follows.
func failureFromResponse(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	_ = resp.Body.Close()

	re := &RequestError{
		Status:     resp.StatusCode,
		StatusText: strings.TrimPrefix(resp.Status, fmt.Sprintf("%d ", resp.StatusCode)),
		URL:        requestURL(resp),
		Body:       body,
	}
	if isJSONContent(resp.Header.Get("Content-Type")) {
		var payload any
		if json.Unmarshal(body, &payload) == nil {
			re.Payload = payload
		}
	}

	re.attach(NormalizeBody(re))

	if resp.StatusCode == http.StatusUnauthorized &&
		requestHadBearer(resp.Request) &&
		!isAuthEndpoint(requestPath(resp)) {
		re.SessionExpired = true
	}
	return re
}

func requestURL(resp *http.Response) string {
	if resp == nil || resp.Request == nil || resp.Request.URL == nil {
		return ""
	}
	return resp.Request.URL.String()
}

func requestPath(resp *http.Response) string {
	if resp == nil || resp.Request == nil || resp.Request.URL == nil {
		return ""
	}
	return resp.Request.URL.Path
}

func requestHadBearer(req *http.Request) bool {
	if req == nil {
		return false
	}
	return strings.HasPrefix(strings.ToLower(req.Header.Get("Authorization")), "bearer ")
}

func isJSONContent(contentType string) bool {
	contentType = strings.ToLower(contentType)
	return strings.Contains(contentType, "application/json") || strings.Contains(contentType, "+json")
}

// isAuthEndpoint reports whether the path targets login or
// registration. A 401 from those endpoints is an inline validation
// failure, never a session invalidation.
func isAuthEndpoint(path string) bool {
	return strings.HasSuffix(path, "/api/auth/login") || strings.HasSuffix(path, "/api/auth/register")
}
