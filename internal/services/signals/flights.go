package signals

import (
	"context"
	"time"

	"TravelPulse/internal/domain/models"
	domsvc "TravelPulse/internal/domain/service"
	"TravelPulse/internal/refdata"
)

const (
	flightsSource = "Heuristic Flight Model"
	// DefaultFlightIndex is the base for known cities without a curated index.
	DefaultFlightIndex = 60
)

// FlightsProvider estimates fare pressure from a per-city price index and the
// travel month.
type FlightsProvider struct {
	ref *refdata.Dataset
}

func NewFlightsProvider(ref *refdata.Dataset) *FlightsProvider {
	return &FlightsProvider{ref: ref}
}

func (p *FlightsProvider) Key() models.SignalKey { return models.SignalFlights }

func (p *FlightsProvider) Fetch(_ context.Context, q models.TripQuery) models.Outcome {
	city, ok := p.ref.City(q.Destination)
	if !ok {
		return models.Absent("destination city unknown")
	}
	base := DefaultFlightIndex
	if city.FlightIndex != nil {
		base = *city.FlightIndex
	}

	score := models.ClampScore(base + SeasonAdjustment(q.StartDate.Month()))
	return models.Found(models.NewSignal(score, flightSummary(score), flightsSource))
}

// SeasonAdjustment is negative in peak months and positive off-season.
func SeasonAdjustment(m time.Month) int {
	switch m {
	case time.June, time.July, time.August, time.December:
		return -10
	case time.March, time.April, time.September, time.October:
		return 0
	default:
		return 5
	}
}

func flightSummary(score int) string {
	switch {
	case score >= 75:
		return "Flight prices are affordable"
	case score >= 60:
		return "Flight prices are moderate"
	default:
		return "Flight prices are expensive"
	}
}

var _ domsvc.SignalProvider = (*FlightsProvider)(nil)
