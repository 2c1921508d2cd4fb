// Package ayet is the Go client SDK for the ayet ad-serving backend.
//
// The SDK manages a cached backend session: it decides when a session
// initialization request fires (debounced, deduplicated, freshness-gated),
// coalesces attribute mutations into a single delayed re-sync, resolves
// placements against the cached session, and presents offerwall/surveywall
// content through an embedded browser surface.
//
//	client := ayet.New()
//	client.Initialize(42, "user-123")
//
//	err := client.ShowOfferwall(ctx, ayet.PlacementName("main"))
//
// Transport, device fingerprinting, and the browser surface are capability
// interfaces (see package core); production implementations live in the
// transport, device, and webview packages and are wired in by default.
package ayet
