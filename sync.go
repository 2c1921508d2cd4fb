package ayet

import "time"

// scheduleBatchedSync coalesces a burst of attribute mutations into a single
// forced init, timed from the last mutation (trailing-edge debounce). Each
// call supersedes the previous pending sync.
func (c *Client) scheduleBatchedSync() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.syncGen++
	gen := c.syncGen
	if c.syncTimer != nil {
		c.syncTimer.Stop()
	}
	c.syncTimer = time.AfterFunc(c.opts.syncDelay, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if gen != c.syncGen {
			// A newer mutation re-armed the debounce; this timer is stale.
			return
		}
		c.log.Debug("sync: triggering forced init", "delay", c.opts.syncDelay)
		c.scheduleInitLocked(true)
	})
}
