package models

import "time"

// SignalKey names one facet of trip feasibility.
type SignalKey string

const (
	SignalWeather  SignalKey = "weather"
	SignalSafety   SignalKey = "safety"
	SignalCurrency SignalKey = "currency"
	SignalHolidays SignalKey = "holidays"
	SignalFlights  SignalKey = "flights"
)

// AllSignalKeys is the canonical key order. Missing signals are reported in this order.
var AllSignalKeys = []SignalKey{
	SignalWeather,
	SignalSafety,
	SignalCurrency,
	SignalHolidays,
	SignalFlights,
}

// IsKnown reports whether k is one of AllSignalKeys.
func (k SignalKey) IsKnown() bool {
	for _, known := range AllSignalKeys {
		if k == known {
			return true
		}
	}
	return false
}

const (
	MinScore = 0
	MaxScore = 100
)

// Signal is a scored, attributed opinion about one facet of a trip.
// It is a value type; build it with NewSignal so the score is clamped.
type Signal struct {
	Score   int    `json:"score"`
	Summary string `json:"summary"`
	Source  string `json:"source"`
}

// NewSignal builds a Signal with score clamped into [MinScore, MaxScore].
func NewSignal(score int, summary, source string) Signal {
	return Signal{Score: ClampScore(score), Summary: summary, Source: source}
}

// ClampScore bounds s to [MinScore, MaxScore].
func ClampScore(s int) int {
	if s < MinScore {
		return MinScore
	}
	if s > MaxScore {
		return MaxScore
	}
	return s
}

// TripQuery is the provider input.
type TripQuery struct {
	Destination string
	StartDate   time.Time
	EndDate     time.Time
}

// AggregationResult partitions the known keys into present signals and missing ones.
type AggregationResult struct {
	Signals map[SignalKey]Signal
	Missing []SignalKey
}
