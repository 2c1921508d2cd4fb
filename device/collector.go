// Package device collects point-in-time device attribute snapshots for init
// requests. The key set mirrors what the backend expects from mobile SDKs;
// attributes the Go host cannot determine are supplied through options by the
// embedding application or omitted.
package device

import (
	"context"
	"runtime"

	"github.com/google/uuid"

	"github.com/ayetstudios/sdk-go/core"
)

// Collector implements core.DeviceSource. Snapshots are pure reads; the only
// state is the vendor id, which stays stable for the process lifetime.
type Collector struct {
	opts     options
	vendorID string
}

// New constructs a Collector.
func New(opts ...Option) *Collector {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	vendorID := o.vendorID
	if vendorID == "" {
		vendorID = uuid.NewString()
	}
	return &Collector{opts: o, vendorID: vendorID}
}

// Snapshot gathers the current device attributes.
func (c *Collector) Snapshot(ctx context.Context) core.DeviceSnapshot {
	o := c.opts

	info := core.DeviceSnapshot{
		"make":      o.make_,
		"model":     o.model,
		"device":    o.model,
		"product":   o.model,
		"brand":     o.make_,
		"hardware":  runtime.GOARCH,
		"board":     runtime.GOARCH,
		"os_name":   runtime.GOOS,
		"vendor_id": c.vendorID,
	}

	if o.osVersion != "" {
		info["os_version"] = o.osVersion
	}

	if o.advertisingID != "" {
		info["idfa"] = o.advertisingID
		info["limit_ad_tracking"] = false
	} else {
		info["limit_ad_tracking"] = true
	}

	if o.buildID != "" {
		info["build_id"] = o.buildID
		info["build_type"] = "release"
		info["build_tags"] = "release-keys"
		info["build_time"] = 0
	}

	if o.screenWidth > 0 && o.screenHeight > 0 {
		info["screen_width"] = o.screenWidth
		info["screen_height"] = o.screenHeight
		info["screen_density"] = o.screenDensity
		info["screen_dpi"] = int(o.screenDensity * 160)
	}

	return info
}
