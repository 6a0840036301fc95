package usecase

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"TravelPulse/internal/domain/models"
	domsvc "TravelPulse/internal/domain/service"
)

// stubProvider returns a canned outcome after an optional delay.
type stubProvider struct {
	key       models.SignalKey
	outcome   models.Outcome
	delay     time.Duration
	ignoreCtx bool
	panicWith interface{}
	blocking  bool

	running *int32
	peak    *int32
}

func (s *stubProvider) Key() models.SignalKey { return s.key }

func (s *stubProvider) Blocking() bool { return s.blocking }

func (s *stubProvider) Fetch(ctx context.Context, _ models.TripQuery) models.Outcome {
	if s.running != nil {
		n := atomic.AddInt32(s.running, 1)
		defer atomic.AddInt32(s.running, -1)
		for {
			p := atomic.LoadInt32(s.peak)
			if n <= p || atomic.CompareAndSwapInt32(s.peak, p, n) {
				break
			}
		}
	}
	if s.delay > 0 {
		if s.ignoreCtx {
			time.Sleep(s.delay)
		} else {
			select {
			case <-time.After(s.delay):
			case <-ctx.Done():
				return models.Failed(ctx.Err())
			}
		}
	}
	if s.panicWith != nil {
		panic(s.panicWith)
	}
	return s.outcome
}

func found(key models.SignalKey, score int) *stubProvider {
	return &stubProvider{key: key, outcome: models.Found(models.NewSignal(score, string(key)+" ok", "stub"))}
}

func absent(key models.SignalKey) *stubProvider {
	return &stubProvider{key: key, outcome: models.Absent("unknown destination")}
}

func failed(key models.SignalKey) *stubProvider {
	return &stubProvider{key: key, outcome: models.Failed(errors.New("upstream 503"))}
}

func providers(ps ...*stubProvider) []domsvc.SignalProvider {
	out := make([]domsvc.SignalProvider, 0, len(ps))
	for _, p := range ps {
		out = append(out, p)
	}
	return out
}

func allFound(score int) []*stubProvider {
	ps := make([]*stubProvider, 0, len(models.AllSignalKeys))
	for _, k := range models.AllSignalKeys {
		ps = append(ps, found(k, score))
	}
	return ps
}

func tokyoQuery() models.TripQuery {
	return models.TripQuery{
		Destination: "Tokyo",
		StartDate:   time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC),
	}
}
