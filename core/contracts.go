package core

import (
	"context"
	"net/url"
)

// Transport executes requests against the backend. Implementations are
// stateless request executors: no retries, no response interpretation.
type Transport interface {
	Post(ctx context.Context, path string, body []byte) ([]byte, error)
	Get(ctx context.Context, path string, query url.Values) ([]byte, error)
}

// UserAgentSetter is implemented by transports whose outbound User-Agent can
// be replaced once the embedded browser reports the real one.
type UserAgentSetter interface {
	SetUserAgent(ua string)
}

// DeviceSnapshot is a point-in-time set of device attributes forwarded to the
// backend verbatim. Keys are conditional on what the host can provide.
type DeviceSnapshot map[string]any

// DeviceSource collects device snapshots. Implementations must be pure: no
// state carried across calls.
type DeviceSource interface {
	Snapshot(ctx context.Context) DeviceSnapshot
}

// ProbeResult is what the embedded browser surface learned about itself.
type ProbeResult struct {
	UserAgent   string
	ClientHints map[string]any
	Partitioned bool
}

// Presentation describes a URL to render in the embedded browser surface.
type Presentation struct {
	URL             string
	UserAgent       string
	PlaceholderHTML string

	// OnClick is invoked when the user interacts with presented content.
	OnClick func()
}

// Surface is the embedded browser the SDK presents content in and probes for
// user-agent/client-hint data.
type Surface interface {
	// Probe loads a blank page under baseURL and reports the user agent,
	// high-entropy client hints, and storage partitioning mode. Callers
	// bound it with a context deadline and accept partial data on timeout.
	Probe(ctx context.Context, baseURL string) (ProbeResult, error)

	// Present renders the URL. It replaces any previously presented content.
	Present(ctx context.Context, p Presentation) error

	// Reload reloads the currently presented content, if any.
	Reload(ctx context.Context) error
}
