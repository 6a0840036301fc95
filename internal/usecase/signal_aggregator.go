package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"

	"TravelPulse/internal/domain/models"
	domrepo "TravelPulse/internal/domain/repository"
	domsvc "TravelPulse/internal/domain/service"
	applogger "TravelPulse/pkg/logger"
	"TravelPulse/pkg/metrics"
)

const (
	DefaultCallTimeout = 5 * time.Second
	DefaultPoolSize    = 8
)

var (
	ErrProviderPanic   = errors.New("signal provider panicked")
	ErrDuplicateSignal = errors.New("duplicate signal provider")
	ErrUnknownSignal   = errors.New("unknown signal key")
	ErrUncoveredSignal = errors.New("no provider for signal")
	ErrInvalidPoolSize = errors.New("worker pool size must be positive")
)

// SignalAggregator fans a trip query out to every provider and partitions the
// results into present and missing signals. It never fails as a whole.
type SignalAggregator struct {
	providers []domsvc.SignalProvider
	pool      *semaphore.Weighted
	poolSize  int64
	timeout   time.Duration
	metrics   domrepo.Metrics
	l         *applogger.Logger
}

// AggregatorOption configures SignalAggregator.
type AggregatorOption func(*SignalAggregator)

// WithCallTimeout bounds each provider call. Zero disables the bound.
func WithCallTimeout(d time.Duration) AggregatorOption {
	return func(a *SignalAggregator) { a.timeout = d }
}

// WithPoolSize sets how many blocking providers may run at once.
func WithPoolSize(n int) AggregatorOption {
	return func(a *SignalAggregator) { a.poolSize = int64(n) }
}

// WithMetrics injects a metrics recorder.
func WithMetrics(m domrepo.Metrics) AggregatorOption {
	return func(a *SignalAggregator) { a.metrics = m }
}

// WithLogger injects a structured logger.
func WithLogger(l *applogger.Logger) AggregatorOption {
	return func(a *SignalAggregator) { a.l = l }
}

// NewSignalAggregator requires exactly one provider per known signal key.
func NewSignalAggregator(providers []domsvc.SignalProvider, opts ...AggregatorOption) (*SignalAggregator, error) {
	a := &SignalAggregator{
		providers: providers,
		poolSize:  DefaultPoolSize,
		timeout:   DefaultCallTimeout,
		metrics:   metrics.Noop{},
		l:         applogger.Nop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.poolSize <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidPoolSize, a.poolSize)
	}
	a.pool = semaphore.NewWeighted(a.poolSize)

	seen := make(map[models.SignalKey]bool, len(providers))
	for _, p := range providers {
		k := p.Key()
		if !k.IsKnown() {
			return nil, fmt.Errorf("%w: %q", ErrUnknownSignal, k)
		}
		if seen[k] {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateSignal, k)
		}
		seen[k] = true
	}
	for _, k := range models.AllSignalKeys {
		if !seen[k] {
			return nil, fmt.Errorf("%w: %s", ErrUncoveredSignal, k)
		}
	}
	return a, nil
}

// Keys returns the signal keys this aggregator produces, in canonical order.
func (a *SignalAggregator) Keys() []models.SignalKey {
	keys := make([]models.SignalKey, len(models.AllSignalKeys))
	copy(keys, models.AllSignalKeys)
	return keys
}

// Aggregate runs every provider concurrently and waits for all of them to settle.
func (a *SignalAggregator) Aggregate(ctx context.Context, q models.TripQuery) models.AggregationResult {
	outcomes := make([]models.Outcome, len(a.providers))

	var wg sync.WaitGroup
	for i, p := range a.providers {
		wg.Add(1)
		go func(i int, p domsvc.SignalProvider) {
			defer wg.Done()
			outcomes[i] = a.run(ctx, p, q)
		}(i, p)
	}
	wg.Wait()

	byKey := make(map[models.SignalKey]models.Outcome, len(outcomes))
	for i, p := range a.providers {
		byKey[p.Key()] = outcomes[i]
	}

	res := models.AggregationResult{
		Signals: make(map[models.SignalKey]models.Signal, len(byKey)),
		Missing: make([]models.SignalKey, 0, len(byKey)),
	}
	for _, key := range models.AllSignalKeys {
		o, ok := byKey[key]
		if ok && o.OK() {
			sig := o.Signal
			sig.Score = models.ClampScore(sig.Score)
			res.Signals[key] = sig
			continue
		}
		res.Missing = append(res.Missing, key)
	}
	return res
}

func (a *SignalAggregator) run(ctx context.Context, p domsvc.SignalProvider, q models.TripQuery) models.Outcome {
	key := p.Key()
	start := time.Now()

	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	var out models.Outcome
	if domsvc.IsBlocking(p) {
		if err := a.pool.Acquire(ctx, 1); err != nil {
			out = models.Failed(fmt.Errorf("acquire worker: %w", err))
		} else {
			out = a.invoke(ctx, p, q, func() { a.pool.Release(1) })
		}
	} else {
		out = a.invoke(ctx, p, q, nil)
	}

	a.observe(key, out, time.Since(start))
	return out
}

// invoke runs Fetch in its own goroutine so a provider that ignores its context
// is abandoned at the deadline. release runs once Fetch has actually returned.
func (a *SignalAggregator) invoke(ctx context.Context, p domsvc.SignalProvider, q models.TripQuery, release func()) models.Outcome {
	done := make(chan models.Outcome, 1)
	go func() {
		if release != nil {
			defer release()
		}
		done <- a.safeFetch(ctx, p, q)
	}()

	select {
	case out := <-done:
		return out
	case <-ctx.Done():
		return models.Failed(ctx.Err())
	}
}

func (a *SignalAggregator) safeFetch(ctx context.Context, p domsvc.SignalProvider, q models.TripQuery) (out models.Outcome) {
	defer func() {
		if r := recover(); r != nil {
			a.metrics.RecordError("provider_panic")
			out = models.Failed(fmt.Errorf("%w: %v", ErrProviderPanic, r))
		}
	}()
	return p.Fetch(ctx, q)
}

func (a *SignalAggregator) observe(key models.SignalKey, out models.Outcome, took time.Duration) {
	a.metrics.RecordProviderOutcome(string(key), out.Kind.String())
	a.metrics.RecordProviderLatency(string(key), took.Seconds())

	switch out.Kind {
	case models.OutcomeFailed:
		a.l.Warn("signal provider failed",
			applogger.String("signal", string(key)),
			applogger.Error(out.Err),
			applogger.Duration("duration_ms", took),
		)
	case models.OutcomeAbsent:
		a.l.Debug("signal absent",
			applogger.String("signal", string(key)),
			applogger.String("reason", out.Reason),
		)
	}
}
