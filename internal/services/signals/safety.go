package signals

import (
	"context"

	"TravelPulse/internal/domain/models"
	domsvc "TravelPulse/internal/domain/service"
	"TravelPulse/internal/refdata"
)

const (
	safetySource  = "Country Risk Dataset (Fallback)"
	maxRiskRating = 5
)

// SafetyProvider reads curated advisories from the reference dataset.
type SafetyProvider struct {
	ref *refdata.Dataset
}

func NewSafetyProvider(ref *refdata.Dataset) *SafetyProvider {
	return &SafetyProvider{ref: ref}
}

func (p *SafetyProvider) Key() models.SignalKey { return models.SignalSafety }

func (p *SafetyProvider) Fetch(_ context.Context, q models.TripQuery) models.Outcome {
	country, ok := p.ref.CountryOf(q.Destination)
	if !ok {
		return models.Absent("destination country unknown")
	}
	if country.Safety == nil {
		return models.Absent("no advisory for " + country.Code)
	}
	return models.Found(models.NewSignal(SafetyScore(country.Safety.Risk), country.Safety.Advisory, safetySource))
}

// SafetyScore maps a 0..5 risk rating to 100..0, truncating toward zero.
func SafetyScore(risk float64) int {
	return models.ClampScore(int((maxRiskRating-risk)*20 + 1e-9))
}

var _ domsvc.SignalProvider = (*SafetyProvider)(nil)
