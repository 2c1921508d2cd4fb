package ayet

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/ayetstudios/sdk-go/core"
	"github.com/ayetstudios/sdk-go/obs"
)

// initAttempt is one scheduled session init. The cancel func only stops an
// attempt that has not yet passed its settle delay; once the evaluation and
// network phase begin, the attempt runs to completion and its result is
// applied or discarded by generation.
type initAttempt struct {
	gen    uint64
	cancel context.CancelFunc
	done   chan struct{}
}

// ScheduleInit schedules a session init. The call returns immediately; the
// attempt waits out a short settle delay during which any newer call
// supersedes it. Non-forced attempts are skipped while the cached session is
// inside the freshness window.
func (c *Client) ScheduleInit(forced bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.scheduleInitLocked(forced)
}

func (c *Client) scheduleInitLocked(forced bool) {
	if c.attempt != nil {
		c.attempt.cancel()
	}
	c.initGen++
	ctx, cancel := context.WithCancel(context.Background())
	a := &initAttempt{gen: c.initGen, cancel: cancel, done: make(chan struct{})}
	c.attempt = a
	go c.runInit(ctx, a, forced)
}

// awaitInit joins the most recently scheduled init attempt, if any. It never
// triggers a new one.
func (c *Client) awaitInit(ctx context.Context) error {
	c.mu.Lock()
	a := c.attempt
	c.mu.Unlock()
	if a == nil {
		return nil
	}
	select {
	case <-a.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *Client) runInit(ctx context.Context, a *initAttempt, forced bool) {
	defer close(a.done)
	defer a.cancel()

	settle := time.NewTimer(c.opts.settleDelay)
	defer settle.Stop()
	select {
	case <-settle.C:
	case <-ctx.Done():
		// Superseded before evaluation; the newer attempt owns the trigger.
		return
	}
	// Past this point cancellation is ignored: a dispatched attempt runs to
	// completion and its result is arbitrated by generation.

	c.mu.Lock()
	now := time.Now()
	if !forced && !c.lastInitAt.IsZero() && now.Sub(c.lastInitAt) < c.opts.freshFor {
		sinceLast := now.Sub(c.lastInitAt)
		c.mu.Unlock()
		c.log.Debug("init: skipping, cached session is fresh", "since_last", sinceLast)
		return
	}
	placementID := c.placementID
	external := c.externalIdentifier
	age := c.age
	gender := c.gender
	deviceUUID := c.deviceUUID
	offerwallBaseURL := c.offerwallBaseURL
	c.mu.Unlock()

	if forced {
		c.log.Debug("init: forced sync")
	}

	if placementID == 0 || external == "" {
		c.log.Error("init: not configured", "err", ErrNotConfigured)
		return
	}

	requestID := uuid.NewString()
	opCtx, rec := obs.StartOp(context.Background(), "ayet.init",
		attribute.Bool("ayet.forced", forced),
		attribute.Int64("ayet.generation", int64(a.gen)),
		attribute.String("ayet.request_id", requestID),
	)

	probe := c.ensureProbe(offerwallBaseURL)
	snapshot := c.device.Snapshot(opCtx)

	sess, err := c.performInit(opCtx, initRequest{
		PlacementID:        placementID,
		ExternalIdentifier: external,
		IsPartitioned:      probe.Partitioned,
		UserAgent:          probe.UserAgent,
		ClientHints:        probe.ClientHints,
		DeviceUUID:         deviceUUID,
		DeviceInfo:         snapshot,
		Age:                age,
		Gender:             string(gender),
	})
	rec.End(err)
	if err != nil {
		// Failed attempts leave the previous session untouched and are not
		// retried; the next trigger is the only recovery path.
		c.log.Error("init failed", "err", err, "request_id", requestID)
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if a.gen <= c.appliedGen {
		// A later trigger already applied its result; this one is stale.
		c.log.Debug("init: discarding superseded result", "generation", a.gen, "applied", c.appliedGen)
		return
	}
	c.appliedGen = a.gen
	c.session = sess
	c.deviceUUID = sess.Device.UUID
	c.lastInitAt = time.Now()
	c.initialized = true
	c.log.Debug("init complete", "device_uuid", sess.Device.UUID, "placements", len(sess.Placements))
}

func (c *Client) performInit(ctx context.Context, req initRequest) (*core.Session, error) {
	body, err := encodeInitRequest(req)
	if err != nil {
		return nil, err
	}
	raw, err := c.transport.Post(ctx, "/rest/v1/sdk/init", body)
	if err != nil {
		return nil, err
	}
	return parseInitResponse(raw)
}

// ensureProbe runs the user-agent/client-hints probe exactly once per
// process and caches the result. Concurrent callers wait for the first
// probe to finish. A probe failure or timeout yields partial data with
// partitioned storage assumed on.
func (c *Client) ensureProbe(baseURL string) core.ProbeResult {
	c.mu.Lock()
	if c.probe != nil {
		p := *c.probe
		c.mu.Unlock()
		return p
	}
	if c.probeCh != nil {
		ch := c.probeCh
		c.mu.Unlock()
		<-ch
		c.mu.Lock()
		p := *c.probe
		c.mu.Unlock()
		return p
	}
	ch := make(chan struct{})
	c.probeCh = ch
	surface := c.surface
	c.mu.Unlock()

	result := core.ProbeResult{Partitioned: true}
	if surface != nil {
		ctx, cancel := context.WithTimeout(context.Background(), c.opts.probeTimeout)
		res, err := surface.Probe(ctx, baseURL)
		cancel()
		if err != nil {
			c.log.Error("client hints probe failed, proceeding with partial data", "err", err)
		}
		result = res
		if result.UserAgent != "" {
			if setter, ok := c.transport.(core.UserAgentSetter); ok {
				setter.SetUserAgent(result.UserAgent)
			}
		}
	}

	c.mu.Lock()
	c.probe = &result
	c.mu.Unlock()
	close(ch)
	return result
}

// cachedProbe returns the probe result if the probe already ran; it never
// triggers one.
func (c *Client) cachedProbe() (core.ProbeResult, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.probe == nil {
		return core.ProbeResult{}, false
	}
	return *c.probe, true
}
