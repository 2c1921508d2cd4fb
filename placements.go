package ayet

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/ayetstudios/sdk-go/core"
)

// PlacementRef identifies a placement by id or by name. Names that parse as
// integers resolve by id instead.
type PlacementRef struct {
	id   int
	name string
	byID bool
}

// PlacementID references a placement by its numeric id.
func PlacementID(id int) PlacementRef {
	return PlacementRef{id: id, byID: true}
}

// PlacementName references a placement by name. First match wins; a numeric
// name is treated as an id.
func PlacementName(name string) PlacementRef {
	return PlacementRef{name: name}
}

func (r PlacementRef) String() string {
	if r.byID {
		return strconv.Itoa(r.id)
	}
	return r.name
}

// resolvePlacement joins the in-flight init (if any) and looks the reference
// up in the cached session. It never triggers a new init.
func (c *Client) resolvePlacement(ctx context.Context, ref PlacementRef) (core.Placement, error) {
	if err := c.awaitInit(ctx); err != nil {
		return core.Placement{}, err
	}

	sess := c.Session()
	if sess == nil {
		return core.Placement{}, ErrNoSession
	}

	if !ref.byID {
		if id, err := strconv.Atoi(ref.name); err == nil {
			ref = PlacementID(id)
		}
	}

	var (
		p  core.Placement
		ok bool
	)
	if ref.byID {
		p, ok = sess.PlacementByID(ref.id)
	} else {
		p, ok = sess.PlacementByName(ref.name)
	}
	if !ok {
		return core.Placement{}, fmt.Errorf("placement %q: %w", ref.String(), ErrPlacementNotFound)
	}
	return p, nil
}

func authorizePlacement(p core.Placement, required core.PlacementKind) error {
	if p.Kind != required {
		return &PlacementKindError{Placement: p, Required: required}
	}
	return nil
}

// ShowOfferwall resolves an offerwall placement and presents it in the
// browser surface.
func (c *Client) ShowOfferwall(ctx context.Context, ref PlacementRef) error {
	c.log.Debug("ShowOfferwall", "placement", ref.String())

	p, err := c.resolvePlacement(ctx, ref)
	if err != nil {
		c.log.Error("ShowOfferwall: placement unavailable", "placement", ref.String(), "err", err)
		return err
	}
	if err := authorizePlacement(p, core.KindOfferwall); err != nil {
		c.log.Error("ShowOfferwall: wrong placement kind", "err", err)
		return err
	}

	c.mu.Lock()
	external := c.externalIdentifier
	base := c.offerwallBaseURL
	tracking := c.tracking
	var placeholder string
	if c.session != nil {
		placeholder = c.session.Placeholders.Offerwall
	}
	c.mu.Unlock()

	if external == "" {
		c.log.Error("ShowOfferwall: external identifier missing")
		return ErrNotConfigured
	}

	// Parameter names and ordering are fixed by the backend.
	var b strings.Builder
	b.WriteString(strings.TrimRight(base, "/"))
	fmt.Fprintf(&b, "/offers?adSlot=%d", p.ID)
	fmt.Fprintf(&b, "&external_identifier=%s", external)
	b.WriteString("&goSdk=true")
	for i, v := range tracking {
		if v != "" {
			fmt.Fprintf(&b, "&custom_%d=%s", i+1, v)
		}
	}

	c.log.Debug("ShowOfferwall url", "url", b.String())
	return c.present(ctx, b.String(), placeholder)
}

// ShowSurveywall resolves a surveywall placement and presents it in the
// browser surface.
func (c *Client) ShowSurveywall(ctx context.Context, ref PlacementRef) error {
	c.log.Debug("ShowSurveywall", "placement", ref.String())

	p, err := c.resolvePlacement(ctx, ref)
	if err != nil {
		c.log.Error("ShowSurveywall: placement unavailable", "placement", ref.String(), "err", err)
		return err
	}
	if err := authorizePlacement(p, core.KindWebSurveywall); err != nil {
		c.log.Error("ShowSurveywall: wrong placement kind", "err", err)
		return err
	}

	c.mu.Lock()
	external := c.externalIdentifier
	base := c.surveywallBaseURL
	var placeholder string
	if c.session != nil {
		placeholder = c.session.Placeholders.Surveywall
	}
	c.mu.Unlock()

	if external == "" {
		c.log.Error("ShowSurveywall: external identifier missing")
		return ErrNotConfigured
	}

	var b strings.Builder
	b.WriteString(strings.TrimRight(base, "/"))
	fmt.Fprintf(&b, "/surveys?adSlot=%d", p.ID)
	fmt.Fprintf(&b, "&external_identifier=%s", external)
	b.WriteString("&goSdk=true")

	c.log.Debug("ShowSurveywall url", "url", b.String())
	return c.present(ctx, b.String(), placeholder)
}

// ShowRewardStatus presents the reward status page. It joins any in-flight
// init first but needs no placement.
func (c *Client) ShowRewardStatus(ctx context.Context) error {
	c.log.Debug("ShowRewardStatus")

	if err := c.awaitInit(ctx); err != nil {
		return err
	}

	c.mu.Lock()
	external := c.externalIdentifier
	placementID := c.placementID
	base := c.rewardStatusBaseURL
	var placeholder string
	if c.session != nil {
		placeholder = c.session.Placeholders.RewardStatus
	}
	c.mu.Unlock()

	if external == "" || placementID == 0 {
		c.log.Error("ShowRewardStatus: external identifier or placement id missing")
		return ErrNotConfigured
	}

	var b strings.Builder
	b.WriteString(strings.TrimRight(base, "/"))
	fmt.Fprintf(&b, "/offers?externalIdentifier=%s", url.QueryEscape(external))
	fmt.Fprintf(&b, "&placementId=%d", placementID)
	b.WriteString("&goSdk=true")

	c.log.Debug("ShowRewardStatus url", "url", b.String())
	return c.present(ctx, b.String(), placeholder)
}

func (c *Client) present(ctx context.Context, rawURL, placeholder string) error {
	if c.surface == nil {
		return ErrNoSurface
	}
	probe, _ := c.cachedProbe()
	return c.surface.Present(ctx, core.Presentation{
		URL:             rawURL,
		UserAgent:       probe.UserAgent,
		PlaceholderHTML: placeholder,
		OnClick:         c.RecordClick,
	})
}
