package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"TravelPulse/internal/domain/models"
	domrepo "TravelPulse/internal/domain/repository"
	"TravelPulse/internal/services/scoring"
	"TravelPulse/pkg/metrics"
)

const DefaultRequestTimeout = 10 * time.Second

var (
	ErrDestinationRequired = errors.New("destination required")
	ErrInvalidDateRange    = errors.New("end_date must not be before start_date")
)

// TravelScoreUseCase aggregates the signals for a trip and scores them.
type TravelScoreUseCase struct {
	agg     *SignalAggregator
	weights scoring.WeightTable
	metrics domrepo.Metrics
	timeout time.Duration
}

// NewTravelScoreUseCase fails when the weight table does not match the
// aggregator's signal keys exactly.
func NewTravelScoreUseCase(agg *SignalAggregator, weights scoring.WeightTable, m domrepo.Metrics, timeout time.Duration) (*TravelScoreUseCase, error) {
	if err := weights.Validate(agg.Keys()); err != nil {
		return nil, fmt.Errorf("weight table: %w", err)
	}
	if m == nil {
		m = metrics.Noop{}
	}
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}
	return &TravelScoreUseCase{agg: agg, weights: weights, metrics: m, timeout: timeout}, nil
}

// Evaluate returns the scored view of a trip. Provider failures never surface
// here; only an invalid query is an error.
func (uc *TravelScoreUseCase) Evaluate(ctx context.Context, q models.TripQuery) (*models.TravelScore, error) {
	if strings.TrimSpace(q.Destination) == "" {
		return nil, ErrDestinationRequired
	}
	if q.EndDate.Before(q.StartDate) {
		return nil, ErrInvalidDateRange
	}

	// Overall timeout
	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	res := uc.agg.Aggregate(ctx, q)
	total := uc.weights.Score(res.Signals)
	uc.metrics.RecordScore(total)

	return &models.TravelScore{
		Query:       q,
		TotalScore:  total,
		Feasibility: scoring.Feasibility(total),
		Signals:     res.Signals,
		Missing:     res.Missing,
	}, nil
}
