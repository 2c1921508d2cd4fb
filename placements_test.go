package ayet

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestShowOfferwallByID(t *testing.T) {
	c, _, sf := newTestClient(t)
	c.Initialize(42, "u1")
	waitFor(t, time.Second, "session", func() bool { return c.Session() != nil })

	if err := c.ShowOfferwall(context.Background(), PlacementID(7)); err != nil {
		t.Fatalf("ShowOfferwall: %v", err)
	}

	p, ok := sf.LastPresented()
	if !ok {
		t.Fatal("nothing presented")
	}
	wantURL := "https://offerwall.ayet.io/offers?adSlot=7&external_identifier=u1&goSdk=true"
	if p.URL != wantURL {
		t.Fatalf("url = %s, want %s", p.URL, wantURL)
	}
	if p.PlaceholderHTML != "<p>loading</p>" {
		t.Errorf("placeholder = %q", p.PlaceholderHTML)
	}
	if p.UserAgent != "Mozilla/5.0 (Mock WebView)" {
		t.Errorf("user agent = %q", p.UserAgent)
	}
	if p.OnClick == nil {
		t.Error("click hook not wired")
	}
}

func TestShowOfferwallTrackingParams(t *testing.T) {
	c, _, sf := newTestClient(t)
	c.Initialize(42, "u1")
	waitFor(t, time.Second, "session", func() bool { return c.Session() != nil })

	c.SetTrackingCustom(1, "a")
	c.SetTrackingCustom(3, "b")

	if err := c.ShowOfferwall(context.Background(), PlacementID(7)); err != nil {
		t.Fatalf("ShowOfferwall: %v", err)
	}
	p, _ := sf.LastPresented()
	if !strings.HasSuffix(p.URL, "&goSdk=true&custom_1=a&custom_3=b") {
		t.Fatalf("tracking params wrong or misordered: %s", p.URL)
	}
}

func TestShowOfferwallKindMismatch(t *testing.T) {
	c, _, sf := newTestClient(t)
	c.Initialize(42, "u1")
	waitFor(t, time.Second, "session", func() bool { return c.Session() != nil })

	// Placement 9 is a web_surveywall.
	err := c.ShowOfferwall(context.Background(), PlacementID(9))
	var kindErr *PlacementKindError
	if !errors.As(err, &kindErr) {
		t.Fatalf("expected PlacementKindError, got %v", err)
	}
	if kindErr.Required != "offerwall" {
		t.Errorf("required kind = %s", kindErr.Required)
	}
	if sf.PresentedCount() != 0 {
		t.Error("mismatched placement must not be presented")
	}
}

func TestShowSurveywallKindEnforced(t *testing.T) {
	c, _, sf := newTestClient(t)
	c.Initialize(42, "u1")
	waitFor(t, time.Second, "session", func() bool { return c.Session() != nil })

	// Offerwall placement used for a survey action (scenario A inverse).
	err := c.ShowSurveywall(context.Background(), PlacementID(7))
	var kindErr *PlacementKindError
	if !errors.As(err, &kindErr) {
		t.Fatalf("expected PlacementKindError, got %v", err)
	}

	if err := c.ShowSurveywall(context.Background(), PlacementID(9)); err != nil {
		t.Fatalf("ShowSurveywall: %v", err)
	}
	p, _ := sf.LastPresented()
	want := "https://surveys.ayet.io/surveys?adSlot=9&external_identifier=u1&goSdk=true"
	if p.URL != want {
		t.Fatalf("url = %s, want %s", p.URL, want)
	}
}

func TestNumericNameResolvesByID(t *testing.T) {
	c, _, sf := newTestClient(t)
	c.Initialize(42, "u1")
	waitFor(t, time.Second, "session", func() bool { return c.Session() != nil })

	if err := c.ShowOfferwall(context.Background(), PlacementName("7")); err != nil {
		t.Fatalf("ShowOfferwall by numeric name: %v", err)
	}
	byName, _ := sf.LastPresented()

	if err := c.ShowOfferwall(context.Background(), PlacementID(7)); err != nil {
		t.Fatalf("ShowOfferwall by id: %v", err)
	}
	byID, _ := sf.LastPresented()

	if byName.URL != byID.URL {
		t.Fatalf("numeric-name and id lookups diverge: %s vs %s", byName.URL, byID.URL)
	}
}

func TestResolvePlacementIdempotent(t *testing.T) {
	c, _, _ := newTestClient(t)
	c.Initialize(42, "u1")
	waitFor(t, time.Second, "session", func() bool { return c.Session() != nil })

	a, err := c.resolvePlacement(context.Background(), PlacementName("main"))
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	b, err := c.resolvePlacement(context.Background(), PlacementName("main"))
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if a != b {
		t.Fatalf("same lookup returned different placements: %+v vs %+v", a, b)
	}
	if a.ID != 7 || a.Kind != "offerwall" {
		t.Fatalf("unexpected placement: %+v", a)
	}
}

func TestUnknownPlacement(t *testing.T) {
	c, _, _ := newTestClient(t)
	c.Initialize(42, "u1")
	waitFor(t, time.Second, "session", func() bool { return c.Session() != nil })

	if err := c.ShowOfferwall(context.Background(), PlacementID(99)); !errors.Is(err, ErrPlacementNotFound) {
		t.Fatalf("expected ErrPlacementNotFound, got %v", err)
	}
	if err := c.ShowOfferwall(context.Background(), PlacementName("nope")); !errors.Is(err, ErrPlacementNotFound) {
		t.Fatalf("expected ErrPlacementNotFound, got %v", err)
	}
}

func TestResolutionJoinsInFlightInit(t *testing.T) {
	c, _, sf := newTestClient(t)

	// Present immediately after scheduling; resolution must wait for the
	// init rather than failing on the not-yet-cached session.
	c.Initialize(42, "u1")
	if err := c.ShowOfferwall(context.Background(), PlacementID(7)); err != nil {
		t.Fatalf("ShowOfferwall during init: %v", err)
	}
	if sf.PresentedCount() != 1 {
		t.Fatal("nothing presented after join")
	}
}

func TestShowRewardStatus(t *testing.T) {
	c, _, sf := newTestClient(t)
	c.Initialize(42, "u1")
	waitFor(t, time.Second, "session", func() bool { return c.Session() != nil })

	if err := c.ShowRewardStatus(context.Background()); err != nil {
		t.Fatalf("ShowRewardStatus: %v", err)
	}
	p, _ := sf.LastPresented()
	want := "https://support.ayet.io/offers?externalIdentifier=u1&placementId=42&goSdk=true"
	if p.URL != want {
		t.Fatalf("url = %s, want %s", p.URL, want)
	}
}

func TestShowRewardStatusUnconfigured(t *testing.T) {
	c, _, _ := newTestClient(t)

	if err := c.ShowRewardStatus(context.Background()); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}
