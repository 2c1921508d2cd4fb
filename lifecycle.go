package ayet

import "context"

// LifecycleEvent is a host application lifecycle transition pushed into the
// SDK. The SDK deliberately knows nothing about any UI framework's
// notification mechanism; the host forwards events over a channel.
type LifecycleEvent int

const (
	// EventForeground signals the application returned to the foreground.
	EventForeground LifecycleEvent = iota
	// EventBackground signals the application left the foreground. Carried
	// for symmetry; the SDK takes no action on it today.
	EventBackground
)

// Run consumes lifecycle events until the context is cancelled or the
// channel closes. Call it from a goroutine the host owns.
func (c *Client) Run(ctx context.Context, events <-chan LifecycleEvent) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			if ev == EventForeground {
				c.handleForeground(ctx)
			}
		}
	}
}

// handleForeground restores backend session continuity after an external
// browser round trip. Partitioned storage contexts can lose session cookies
// while the app is backgrounded, so a recorded click forces a resync and a
// reload of whatever is on screen. The click flag is cleared either way.
func (c *Client) handleForeground(ctx context.Context) {
	c.mu.Lock()
	partitioned := c.probe == nil || c.probe.Partitioned
	clicked := c.hasClickedOffer
	c.hasClickedOffer = false
	if !partitioned || !clicked {
		c.mu.Unlock()
		return
	}
	c.log.Debug("foreground: forcing resync after click in partitioned mode")
	c.scheduleInitLocked(true)
	c.mu.Unlock()

	if err := c.awaitInit(ctx); err != nil {
		return
	}
	if c.surface != nil {
		if err := c.surface.Reload(ctx); err != nil {
			c.log.Error("foreground: reload failed", "err", err)
		}
	}
}
