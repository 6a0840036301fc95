package service

import (
	"context"

	"TravelPulse/internal/domain/models"
)

// SignalProvider produces one signal for a trip. Ordinary failures are reported
// through the returned Outcome, never by panicking.
type SignalProvider interface {
	Key() models.SignalKey
	Fetch(ctx context.Context, q models.TripQuery) models.Outcome
}

// Blocking is implemented by providers whose Fetch performs outbound I/O.
// The aggregator runs them on its bounded worker pool.
type Blocking interface {
	Blocking() bool
}

// IsBlocking reports whether p asks for pooled dispatch.
func IsBlocking(p SignalProvider) bool {
	b, ok := p.(Blocking)
	return ok && b.Blocking()
}
