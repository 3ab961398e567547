package domain

import "errors"

// Sentinel errors for the failure modes callers branch on. Adapters and
// domain functions wrap these with fmt.Errorf("...: %w", ...) so errors.Is
// still matches after context is added.
var (
	// ErrProviderUnavailable: the forecast provider returned a non-success
	// transport status or could not be reached.
	ErrProviderUnavailable = errors.New("weather provider unavailable")

	// ErrNoForecastForToday: the provider answered, but no entry in the
	// payload falls on today's calendar date.
	ErrNoForecastForToday = errors.New("no forecast for today")

	// ErrMalformedPayload: a provider payload was missing expected fields
	// or could not be parsed.
	ErrMalformedPayload = errors.New("malformed provider payload")

	// ErrDirectoryUnavailable: a directory listing call failed either
	// layer of the platform status check.
	ErrDirectoryUnavailable = errors.New("directory unavailable")

	// ErrDeliveryRejected: the messaging platform refused a post.
	ErrDeliveryRejected = errors.New("delivery rejected")

	// ErrInvalidBearing: a wind bearing was NaN or infinite.
	ErrInvalidBearing = errors.New("invalid wind bearing")
)
