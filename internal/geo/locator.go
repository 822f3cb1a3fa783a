// Package geo resolves device coordinates and turns them into a locality.
// Position acquisition and reverse geocoding are separate concerns: a failed
// lookup still leaves usable coordinates behind.
package geo

import (
	"context"
	"fmt"
)

// State is the resolver's lifecycle: idle until invoked, requesting while a
// position is being acquired, then resolved or failed.
type State int

const (
	StateIdle State = iota
	StateRequesting
	StateResolved
	StateFailed
)

type Position struct {
	Latitude  float64
	Longitude float64
}

// PositionProvider is the platform's geolocation capability. A nil provider
// means the platform has none.
type PositionProvider interface {
	// CurrentPosition requests the device position exactly once, with
	// platform-default accuracy and timeout.
	CurrentPosition(ctx context.Context) (Position, error)
}

// ErrorCode classifies a failed position acquisition.
type ErrorCode int

const (
	ErrUnknown ErrorCode = iota
	ErrPermissionDenied
	ErrPositionUnavailable
	ErrTimeout
)

type PositionError struct {
	Code ErrorCode
	Err  error
}

func (e *PositionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("geolocation failed: %v", e.Err)
	}
	return "geolocation failed"
}

func (e *PositionError) Unwrap() error { return e.Err }

// The fixed user-facing messages for each failure category.
const (
	MsgUnsupported         = "Geolocation is not available on this device. Enter your location manually."
	MsgPermissionDenied    = "Location permission was denied. Enter your location manually."
	MsgPositionUnavailable = "Your position could not be determined. Enter your location manually."
	MsgTimeout             = "Timed out while detecting your location. Try again or enter it manually."
	MsgUnknown             = "Could not detect your location. Enter it manually."
)

// FailureMessage maps a position acquisition error to one of the four fixed
// human-readable messages.
func FailureMessage(err error) string {
	posErr, ok := err.(*PositionError)
	if !ok {
		return MsgUnknown
	}
	switch posErr.Code {
	case ErrPermissionDenied:
		return MsgPermissionDenied
	case ErrPositionUnavailable:
		return MsgPositionUnavailable
	case ErrTimeout:
		return MsgTimeout
	default:
		return MsgUnknown
	}
}
