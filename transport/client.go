// Package transport implements the stateless HTTP request executor the SDK
// talks to the backend through. It performs a single attempt per call: no
// retries, no response interpretation beyond reading the body.
package transport

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/ayetstudios/sdk-go/internal/httpclient"
)

// Client executes GET/POST requests against a configurable base URL.
type Client struct {
	httpClient *http.Client
	baseURL    string
	bundleID   string
	log        *slog.Logger

	mu        sync.RWMutex
	userAgent string
}

// New constructs a transport Client.
func New(opts ...Option) *Client {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.httpClient == nil {
		o.httpClient = httpclient.New(httpclient.WithTimeout(o.timeout))
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	return &Client{
		httpClient: o.httpClient,
		baseURL:    strings.TrimRight(o.baseURL, "/"),
		bundleID:   o.bundleID,
		userAgent:  o.userAgent,
		log:        o.logger.With("component", "transport"),
	}
}

// SetUserAgent replaces the outbound User-Agent header. The SDK calls this
// once the embedded browser reports the real user agent.
func (c *Client) SetUserAgent(ua string) {
	c.mu.Lock()
	c.userAgent = ua
	c.mu.Unlock()
	c.log.Debug("user agent updated", "user_agent", ua)
}

// Post issues a POST with a JSON body and returns the raw response body.
// The body is returned for any HTTP status; an error means the request did
// not complete at the transport level.
func (c *Client) Post(ctx context.Context, path string, body []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request %s: %w", path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	c.setCommonHeaders(req)

	c.log.Debug("POST", "url", req.URL.String(), "body", string(body))
	return c.do(req, path)
}

// Get issues a GET with query parameters and returns the raw response body.
func (c *Client) Get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	rawURL := c.baseURL + path
	if len(query) > 0 {
		rawURL += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request %s: %w", path, err)
	}
	c.setCommonHeaders(req)

	c.log.Debug("GET", "url", req.URL.String())
	return c.do(req, path)
}

func (c *Client) setCommonHeaders(req *http.Request) {
	c.mu.RLock()
	ua := c.userAgent
	c.mu.RUnlock()

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", ua)
	req.Header.Set("X-Package-Name", c.bundleID)
}

func (c *Client) do(req *http.Request, path string) ([]byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", req.Method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response %s: %w", path, err)
	}
	c.log.Debug("response", "code", resp.StatusCode, "body", string(raw))
	return raw, nil
}
