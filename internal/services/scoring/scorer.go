// Package scoring combines per-signal scores into one weighted feasibility score.
package scoring

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"TravelPulse/internal/domain/models"
)

var (
	ErrWeightSum      = errors.New("scoring: weights must sum to 1.0")
	ErrNegativeWeight = errors.New("scoring: negative weight")
	ErrKeyMismatch    = errors.New("scoring: provider keys and weight keys differ")
)

const (
	sumTolerance = 0.001
	// floorEpsilon absorbs float error on averages that are exact integers.
	floorEpsilon = 1e-9
)

// Feasibility thresholds on the total score.
const (
	ThresholdHigh   = 80
	ThresholdMedium = 60
)

// WeightTable maps each signal to its relative importance. Treat as read-only.
type WeightTable map[models.SignalKey]float64

// DefaultWeights returns the production weight distribution.
func DefaultWeights() WeightTable {
	return WeightTable{
		models.SignalWeather:  0.30,
		models.SignalSafety:   0.25,
		models.SignalCurrency: 0.20,
		models.SignalHolidays: 0.15,
		models.SignalFlights:  0.10,
	}
}

// Sum returns the total of all weights.
func (w WeightTable) Sum() float64 {
	var s float64
	for _, v := range w {
		s += v
	}
	return s
}

// Validate checks the table against the set of keys the providers emit.
// A key without a weight would otherwise be dropped from scoring silently.
func (w WeightTable) Validate(keys []models.SignalKey) error {
	for k, v := range w {
		if v < 0 {
			return fmt.Errorf("%w: %s=%f", ErrNegativeWeight, k, v)
		}
	}
	if math.Abs(w.Sum()-1.0) > sumTolerance {
		return fmt.Errorf("%w: got %.4f", ErrWeightSum, w.Sum())
	}

	seen := make(map[models.SignalKey]bool, len(keys))
	var missing []string
	for _, k := range keys {
		seen[k] = true
		if _, ok := w[k]; !ok {
			missing = append(missing, string(k))
		}
	}
	var extra []string
	for k := range w {
		if !seen[k] {
			extra = append(extra, string(k))
		}
	}
	if len(missing) > 0 || len(extra) > 0 {
		sort.Strings(extra)
		return fmt.Errorf("%w: unweighted=%v unprovided=%v", ErrKeyMismatch, missing, extra)
	}
	return nil
}

// Score returns the weighted average of the present signals, renormalised over
// the weights of those signals only, floored to an integer in [0,100].
// Signals with no weight (or a zero weight) are ignored.
func (w WeightTable) Score(signals map[models.SignalKey]models.Signal) int {
	if len(signals) == 0 {
		return 0
	}

	var weightedSum, weightSum float64
	for key, sig := range signals {
		weight, ok := w[key]
		if !ok || weight <= 0 {
			continue
		}
		weightedSum += float64(sig.Score) * weight
		weightSum += weight
	}
	if weightSum == 0 {
		return 0
	}

	return models.ClampScore(int(math.Floor(weightedSum/weightSum + floorEpsilon)))
}

// Feasibility buckets a total score.
func Feasibility(score int) models.Feasibility {
	switch {
	case score >= ThresholdHigh:
		return models.FeasibilityHigh
	case score >= ThresholdMedium:
		return models.FeasibilityMedium
	default:
		return models.FeasibilityLow
	}
}
