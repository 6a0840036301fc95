package repository

import "context"

// Metrics records aggregation telemetry.
type Metrics interface {
	RecordProviderOutcome(signal, outcome string)
	RecordProviderLatency(signal string, seconds float64)
	RecordScore(score int)
	RecordError(kind string)
}

// RateLimiter decides whether a client may issue another request.
type RateLimiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}
