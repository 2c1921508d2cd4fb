package ayet

import (
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/ayetstudios/sdk-go/core"
	"github.com/ayetstudios/sdk-go/device"
	"github.com/ayetstudios/sdk-go/transport"
	"github.com/ayetstudios/sdk-go/webview"
)

// Client is the session manager for the ayet backend. It owns the cached
// session and all identity/attribute state; collaborators read through
// accessors and never mutate it directly.
type Client struct {
	transport core.Transport
	device    core.DeviceSource
	surface   core.Surface
	log       *slog.Logger
	opts      options

	mu sync.Mutex

	placementID        int
	externalIdentifier string
	age                *int
	gender             core.Gender
	tracking           [trackingSlots]string

	offerwallBaseURL    string
	surveywallBaseURL   string
	rewardStatusBaseURL string

	deviceUUID  string
	session     *core.Session
	initialized bool
	lastInitAt  time.Time

	initGen    uint64
	appliedGen uint64
	attempt    *initAttempt

	syncGen   uint64
	syncTimer *time.Timer

	probe   *core.ProbeResult
	probeCh chan struct{}

	hasClickedOffer bool
}

const trackingSlots = 5

// New creates a Client. Without options it talks to the production backend
// through the default transport, collects device snapshots from the host,
// and presents content in a lazily launched headless browser.
func New(opts ...ClientOption) *Client {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	logger := o.logger
	if logger == nil {
		logger = slog.Default()
	}

	c := &Client{
		transport: o.transport,
		device:    o.device,
		surface:   o.surface,
		log:       logger.With("component", "ayet"),
		opts:      o,

		offerwallBaseURL:    o.offerwallBaseURL,
		surveywallBaseURL:   o.surveywallBaseURL,
		rewardStatusBaseURL: o.rewardStatusBaseURL,
	}

	if c.transport == nil {
		topts := []transport.Option{
			transport.WithBundleID(o.bundleID),
			transport.WithLogger(logger),
		}
		if o.baseURL != "" {
			topts = append(topts, transport.WithBaseURL(o.baseURL))
		}
		if o.httpClient != nil {
			topts = append(topts, transport.WithHTTPClient(o.httpClient))
		}
		c.transport = transport.New(topts...)
	}
	if c.device == nil {
		c.device = device.New()
	}
	if c.surface == nil {
		c.surface = webview.New(webview.WithLogger(logger))
	}
	return c
}

// Initialize records the placement context and external identifier and
// schedules a session init. Safe to call repeatedly; each call is debounced.
func (c *Client) Initialize(placementID int, externalIdentifier string) {
	c.mu.Lock()
	c.placementID = placementID
	c.externalIdentifier = externalIdentifier
	c.mu.Unlock()

	c.log.Debug("initialize", "placement_id", placementID, "external_identifier", externalIdentifier)
	c.ScheduleInit(false)
}

// SetExternalIdentifier changes the external identifier. Refused with a
// warning once a session exists: the identifier is part of the session's
// identity on the backend.
func (c *Client) SetExternalIdentifier(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.initialized {
		c.log.Warn("cannot change external identifier after initialization")
		return
	}
	c.externalIdentifier = id
	c.log.Debug("external identifier set", "external_identifier", id)
}

// ExternalIdentifier returns the configured external identifier.
func (c *Client) ExternalIdentifier() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.externalIdentifier
}

// IsInitialized reports whether a session init has succeeded.
func (c *Client) IsInitialized() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.initialized
}

// Session returns the cached session, or nil if no init has succeeded.
// Sessions are immutable; the returned value never changes under the caller.
func (c *Client) Session() *core.Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session
}

// SetAge records the user's age and schedules a delayed re-sync.
func (c *Client) SetAge(age int) {
	c.mu.Lock()
	c.age = &age
	c.mu.Unlock()
	c.log.Debug("age set", "age", age)
	c.scheduleBatchedSync()
}

// SetGender records the user's gender and schedules a delayed re-sync.
func (c *Client) SetGender(g core.Gender) {
	c.mu.Lock()
	c.gender = g
	c.mu.Unlock()
	c.log.Debug("gender set", "gender", string(g))
	c.scheduleBatchedSync()
}

// SetTrackingCustom stores one of the five opaque tracking values forwarded
// on outbound requests. Slots are numbered 1 through 5. Tracking values are
// fire-and-forget and never trigger a re-sync.
func (c *Client) SetTrackingCustom(slot int, value string) {
	if slot < 1 || slot > trackingSlots {
		c.log.Warn("tracking slot out of range", "slot", slot)
		return
	}
	c.mu.Lock()
	c.tracking[slot-1] = value
	c.mu.Unlock()
	c.log.Debug("tracking value set", "slot", slot, "value", value)
}

// SetOfferwallBaseURL overrides the offerwall presentation base URL.
func (c *Client) SetOfferwallBaseURL(url string) {
	c.mu.Lock()
	c.offerwallBaseURL = url
	c.mu.Unlock()
	c.log.Debug("offerwall base URL set", "url", url)
}

// SetSurveywallBaseURL overrides the surveywall presentation base URL.
func (c *Client) SetSurveywallBaseURL(url string) {
	c.mu.Lock()
	c.surveywallBaseURL = url
	c.mu.Unlock()
	c.log.Debug("surveywall base URL set", "url", url)
}

// SetRewardStatusBaseURL overrides the reward status presentation base URL.
func (c *Client) SetRewardStatusBaseURL(url string) {
	c.mu.Lock()
	c.rewardStatusBaseURL = url
	c.mu.Unlock()
	c.log.Debug("reward status base URL set", "url", url)
}

// RecordClick marks that the user interacted with presented content since
// the last foreground transition. The presentation surface calls this.
func (c *Client) RecordClick() {
	c.mu.Lock()
	c.hasClickedOffer = true
	c.mu.Unlock()
}

// Close releases resources held by the client: any pending sync timer and
// the presentation surface, if it is closeable (the default headless browser
// surface is).
func (c *Client) Close() error {
	c.mu.Lock()
	if c.syncTimer != nil {
		c.syncTimer.Stop()
		c.syncTimer = nil
	}
	if c.attempt != nil && c.attempt.cancel != nil {
		c.attempt.cancel()
	}
	surface := c.surface
	c.mu.Unlock()

	if closer, ok := surface.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

func (c *Client) trackingValues() [trackingSlots]string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tracking
}
