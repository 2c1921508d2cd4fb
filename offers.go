package ayet

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"go.opentelemetry.io/otel/attribute"

	"github.com/ayetstudios/sdk-go/core"
	"github.com/ayetstudios/sdk-go/obs"
)

// Offers fetches the offer feed for an offerwall_api placement and returns
// the offers array verbatim as a JSON string.
func (c *Client) Offers(ctx context.Context, ref PlacementRef) (string, error) {
	c.log.Debug("Offers", "placement", ref.String())

	p, err := c.resolvePlacement(ctx, ref)
	if err != nil {
		c.log.Error("Offers: placement unavailable", "placement", ref.String(), "err", err)
		return "", err
	}
	if err := authorizePlacement(p, core.KindOfferwallAPI); err != nil {
		c.log.Error("Offers: wrong placement kind", "err", err)
		return "", err
	}

	return c.fetchOffers(ctx, p.ID)
}

func (c *Client) fetchOffers(ctx context.Context, adSlotID int) (_ string, err error) {
	ctx, rec := obs.StartOp(ctx, "ayet.feed",
		attribute.Int("ayet.adslot", adSlotID),
	)
	defer func() { rec.End(err) }()

	c.mu.Lock()
	external := c.externalIdentifier
	tracking := c.tracking
	c.mu.Unlock()

	if external == "" {
		c.log.Error("fetchOffers: external identifier missing")
		return "", ErrNotConfigured
	}

	params := url.Values{}
	params.Set("external_identifier", external)
	params.Set("include_mobile_offers", "true")

	// Reuse whatever the probe already learned; the feed never waits on it.
	if probe, ok := c.cachedProbe(); ok {
		if probe.UserAgent != "" {
			params.Set("user_agent", probe.UserAgent)
		}
		if len(probe.ClientHints) > 0 {
			if hints, err := json.Marshal(probe.ClientHints); err == nil {
				params.Set("client_hints", string(hints))
			}
		}
	}

	for i, v := range tracking {
		if v != "" {
			params.Set(fmt.Sprintf("custom_%d", i+1), v)
		}
	}

	raw, err := c.transport.Get(ctx, fmt.Sprintf("/rest/v1/sdk/feed/%d", adSlotID), params)
	if err != nil {
		c.log.Error("fetchOffers failed", "err", err)
		return "", err
	}

	offers, err := parseFeedResponse(raw)
	if err != nil {
		c.log.Error("fetchOffers: bad response", "err", err)
		return "", err
	}
	c.log.Debug("fetchOffers complete", "bytes", len(offers))
	return offers, nil
}
