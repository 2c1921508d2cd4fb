package ayet

import (
	"errors"
	"fmt"

	"github.com/ayetstudios/sdk-go/core"
)

// Sentinel errors for common failure cases.
var (
	// ErrNotConfigured is returned when the placement id or external
	// identifier has not been set before an operation that needs them.
	ErrNotConfigured = errors.New("placement id or external identifier not configured")

	// ErrNoSession is returned when an operation needs a session but no
	// init has succeeded yet.
	ErrNoSession = errors.New("no session available")

	// ErrPlacementNotFound is returned when a placement reference matches
	// nothing in the cached session.
	ErrPlacementNotFound = errors.New("placement not found")

	// ErrNoSurface is returned when a presentation is requested but no
	// browser surface is configured.
	ErrNoSurface = errors.New("no presentation surface configured")
)

// PlacementKindError reports a placement used for an action its kind does
// not permit.
type PlacementKindError struct {
	Placement core.Placement
	Required  core.PlacementKind
}

func (e *PlacementKindError) Error() string {
	return fmt.Sprintf("placement %d (%s) is %s, not %s", e.Placement.ID, e.Placement.Name, e.Placement.Kind, e.Required)
}

// ProtocolError reports a malformed response or an explicit server-side
// error status.
type ProtocolError struct {
	Op      string // "init" or "feed"
	Message string // server-supplied error message, if any
	Err     error  // underlying decode error, if any
}

func (e *ProtocolError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: server error: %s", e.Op, e.Message)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *ProtocolError) Unwrap() error {
	return e.Err
}
