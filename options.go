package ayet

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/ayetstudios/sdk-go/core"
)

// Default URLs for the presentation surfaces.
const (
	DefaultOfferwallBaseURL    = "https://offerwall.ayet.io"
	DefaultSurveywallBaseURL   = "https://surveys.ayet.io"
	DefaultRewardStatusBaseURL = "https://support.ayet.io"
)

// ClientOption configures a Client.
type ClientOption func(*options)

type options struct {
	transport  core.Transport
	device     core.DeviceSource
	surface    core.Surface
	logger     *slog.Logger
	httpClient *http.Client

	baseURL             string
	offerwallBaseURL    string
	surveywallBaseURL   string
	rewardStatusBaseURL string
	bundleID            string

	settleDelay  time.Duration
	syncDelay    time.Duration
	probeTimeout time.Duration
	freshFor     time.Duration
}

func defaultOptions() options {
	return options{
		offerwallBaseURL:    DefaultOfferwallBaseURL,
		surveywallBaseURL:   DefaultSurveywallBaseURL,
		rewardStatusBaseURL: DefaultRewardStatusBaseURL,

		settleDelay:  500 * time.Millisecond,
		syncDelay:    2 * time.Second,
		probeTimeout: 5 * time.Second,
		freshFor:     60 * time.Minute,
	}
}

// WithTransport replaces the backend transport.
func WithTransport(t core.Transport) ClientOption {
	return func(o *options) { o.transport = t }
}

// WithDeviceSource replaces the device snapshot collector.
func WithDeviceSource(d core.DeviceSource) ClientOption {
	return func(o *options) { o.device = d }
}

// WithSurface replaces the embedded browser surface.
func WithSurface(s core.Surface) ClientOption {
	return func(o *options) { o.surface = s }
}

// WithLogger sets the structured logger for the SDK and its collaborators.
func WithLogger(l *slog.Logger) ClientOption {
	return func(o *options) { o.logger = l }
}

// WithHTTPClient sets the HTTP client used by the default transport.
func WithHTTPClient(c *http.Client) ClientOption {
	return func(o *options) { o.httpClient = c }
}

// WithBaseURL overrides the API base URL of the default transport.
func WithBaseURL(url string) ClientOption {
	return func(o *options) { o.baseURL = url }
}

// WithOfferwallBaseURL overrides the offerwall presentation base URL.
func WithOfferwallBaseURL(url string) ClientOption {
	return func(o *options) { o.offerwallBaseURL = url }
}

// WithSurveywallBaseURL overrides the surveywall presentation base URL.
func WithSurveywallBaseURL(url string) ClientOption {
	return func(o *options) { o.surveywallBaseURL = url }
}

// WithRewardStatusBaseURL overrides the reward status presentation base URL.
func WithRewardStatusBaseURL(url string) ClientOption {
	return func(o *options) { o.rewardStatusBaseURL = url }
}

// WithBundleID sets the application identifier the default transport sends.
func WithBundleID(id string) ClientOption {
	return func(o *options) { o.bundleID = id }
}

// WithSettleDelay tunes the init debounce settle delay.
func WithSettleDelay(d time.Duration) ClientOption {
	return func(o *options) { o.settleDelay = d }
}

// WithSyncDelay tunes the attribute-mutation debounce delay.
func WithSyncDelay(d time.Duration) ClientOption {
	return func(o *options) { o.syncDelay = d }
}

// WithProbeTimeout bounds the one-time user-agent/client-hints probe.
func WithProbeTimeout(d time.Duration) ClientOption {
	return func(o *options) { o.probeTimeout = d }
}

// WithFreshnessWindow tunes how long a cached session suppresses non-forced
// init attempts.
func WithFreshnessWindow(d time.Duration) ClientOption {
	return func(o *options) { o.freshFor = d }
}
