package transport

import (
	"log/slog"
	"net/http"
	"time"
)

// DefaultBaseURL is the production API endpoint.
const DefaultBaseURL = "https://www.ayetstudios.com"

type Option func(*options)

type options struct {
	baseURL    string
	userAgent  string
	bundleID   string
	httpClient *http.Client
	timeout    time.Duration
	logger     *slog.Logger
}

func defaultOptions() options {
	return options{
		baseURL:   DefaultBaseURL,
		userAgent: "AyetSDK-Go",
		timeout:   30 * time.Second,
	}
}

// WithBaseURL overrides the API base URL.
func WithBaseURL(url string) Option {
	return func(o *options) { o.baseURL = url }
}

// WithUserAgent sets the initial outbound User-Agent header.
func WithUserAgent(ua string) Option {
	return func(o *options) { o.userAgent = ua }
}

// WithBundleID sets the application identifier sent as X-Package-Name.
func WithBundleID(id string) Option {
	return func(o *options) { o.bundleID = id }
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(o *options) { o.httpClient = client }
}

// WithTimeout customizes the request timeout of the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(o *options) { o.timeout = d }
}

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}
