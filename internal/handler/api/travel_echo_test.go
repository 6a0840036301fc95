package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"TravelPulse/internal/domain/models"
	domsvc "TravelPulse/internal/domain/service"
	"TravelPulse/internal/services/scoring"
	"TravelPulse/internal/usecase"
	xhttp "TravelPulse/pkg/http"
)

type staticProvider struct {
	key models.SignalKey
	out models.Outcome
}

func (p staticProvider) Key() models.SignalKey { return p.key }

func (p staticProvider) Fetch(context.Context, models.TripQuery) models.Outcome { return p.out }

type fakeLimiter struct {
	allow bool
	err   error
	keys  []string
}

func (f *fakeLimiter) Allow(_ context.Context, key string) (bool, error) {
	f.keys = append(f.keys, key)
	return f.allow, f.err
}

type scorerFunc func(ctx context.Context, q models.TripQuery) (*models.TravelScore, error)

func (f scorerFunc) Evaluate(ctx context.Context, q models.TripQuery) (*models.TravelScore, error) {
	return f(ctx, q)
}

func workedExampleUseCase(t *testing.T) *usecase.TravelScoreUseCase {
	t.Helper()
	agg, err := usecase.NewSignalAggregator([]domsvc.SignalProvider{
		staticProvider{models.SignalWeather, models.Found(models.NewSignal(80, "Current temperature 22.0°C with clear sky", "OpenWeatherMap"))},
		staticProvider{models.SignalSafety, models.Found(models.NewSignal(90, "Very safe", "Country Risk Dataset"))},
		staticProvider{models.SignalCurrency, models.Found(models.NewSignal(70, "Destination currency (JPY) is moderate compared to INR", "Frankfurter API"))},
		staticProvider{models.SignalHolidays, models.Absent("no data")},
		staticProvider{models.SignalFlights, models.Failed(errors.New("upstream down"))},
	})
	require.NoError(t, err)
	uc, err := usecase.NewTravelScoreUseCase(agg, scoring.DefaultWeights(), nil, time.Second)
	require.NoError(t, err)
	return uc
}

func newTestServer(h *TravelEchoHandler) *xhttp.Server {
	reg := prometheus.NewRegistry()
	return xhttp.NewServer(h, xhttp.WithMetrics(reg, reg, ""))
}

func get(s *xhttp.Server, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.Echo().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func envelopeCodes(t *testing.T, rec *httptest.ResponseRecorder) []string {
	t.Helper()
	var env struct {
		Status int `json:"status"`
		Data   []struct {
			Code  string `json:"code"`
			Field string `json:"field"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.Equal(t, rec.Code, env.Status)
	codes := make([]string, 0, len(env.Data))
	for _, d := range env.Data {
		codes = append(codes, d.Code+":"+d.Field)
	}
	return codes
}

func TestTravelSignal_WorkedExample(t *testing.T) {
	s := newTestServer(NewTravelEchoHandler(nil, workedExampleUseCase(t), nil))
	rec := get(s, "/travel-signal?destination=Tokyo&start_date=2026-04-01&end_date=2026-04-07")

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var body map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.ElementsMatch(t,
		[]string{"destination", "start_date", "end_date", "total_score", "feasibility", "signals", "missing_signals"},
		keys(body))

	var res models.TravelResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, "Tokyo", res.Destination)
	assert.Equal(t, "2026-04-01", res.StartDate)
	assert.Equal(t, "2026-04-07", res.EndDate)
	assert.Equal(t, 80, res.TotalScore)
	assert.Equal(t, models.FeasibilityHigh, res.Feasibility)
	assert.Equal(t, []models.SignalKey{models.SignalHolidays, models.SignalFlights}, res.MissingSignals)
	require.Len(t, res.Signals, 3)
	assert.Equal(t, "OpenWeatherMap", res.Signals[models.SignalWeather].Source)
}

func TestTravelSignal_EmptyCollectionsSerializeAsEmpty(t *testing.T) {
	uc := scorerFunc(func(context.Context, models.TripQuery) (*models.TravelScore, error) {
		return &models.TravelScore{Feasibility: models.FeasibilityLow}, nil
	})
	s := newTestServer(NewTravelEchoHandler(nil, uc, nil))
	rec := get(s, "/travel-signal?destination=Tokyo&start_date=2026-04-01&end_date=2026-04-07")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"signals":{}`)
	assert.Contains(t, rec.Body.String(), `"missing_signals":[]`)
}

func TestTravelSignal_ValidationErrors(t *testing.T) {
	uc := scorerFunc(func(context.Context, models.TripQuery) (*models.TravelScore, error) {
		t.Error("use case must not run for invalid input")
		return nil, nil
	})
	s := newTestServer(NewTravelEchoHandler(nil, uc, nil))

	cases := []struct {
		name   string
		target string
		want   []string
	}{
		{"all missing", "/travel-signal", []string{"ERR_REQUIRED:destination", "ERR_REQUIRED:start_date", "ERR_REQUIRED:end_date"}},
		{"bad start", "/travel-signal?destination=Tokyo&start_date=04/01/2026&end_date=2026-04-07", []string{"ERR_DATETIME:start_date"}},
		{"impossible date", "/travel-signal?destination=Tokyo&start_date=2026-02-30&end_date=2026-04-07", []string{"ERR_DATETIME:start_date"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := get(s, tc.target)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, tc.want, envelopeCodes(t, rec))
		})
	}
}

func TestTravelSignal_EndBeforeStart(t *testing.T) {
	s := newTestServer(NewTravelEchoHandler(nil, workedExampleUseCase(t), nil))
	rec := get(s, "/travel-signal?destination=Tokyo&start_date=2026-04-07&end_date=2026-04-01")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, []string{"ERR_DATE_RANGE:end_date"}, envelopeCodes(t, rec))
}

func TestTravelSignal_UnexpectedErrorIs500(t *testing.T) {
	uc := scorerFunc(func(context.Context, models.TripQuery) (*models.TravelScore, error) {
		return nil, errors.New("weights corrupted")
	})
	s := newTestServer(NewTravelEchoHandler(nil, uc, nil))
	rec := get(s, "/travel-signal?destination=Tokyo&start_date=2026-04-01&end_date=2026-04-07")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "weights corrupted")
}

func TestTravelSignal_RateLimited(t *testing.T) {
	lim := &fakeLimiter{allow: false}
	s := newTestServer(NewTravelEchoHandler(nil, workedExampleUseCase(t), lim))
	rec := get(s, "/travel-signal?destination=Tokyo&start_date=2026-04-01&end_date=2026-04-07")

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, []string{"ERR_RATE_LIMITED:"}, envelopeCodes(t, rec))
	assert.Len(t, lim.keys, 1)
}

func TestTravelSignal_LimiterErrorFailsOpen(t *testing.T) {
	lim := &fakeLimiter{err: errors.New("redis unreachable")}
	s := newTestServer(NewTravelEchoHandler(nil, workedExampleUseCase(t), lim))
	rec := get(s, "/travel-signal?destination=Tokyo&start_date=2026-04-01&end_date=2026-04-07")

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHealth(t *testing.T) {
	s := newTestServer(NewTravelEchoHandler(nil, nil, nil))
	rec := get(s, "/health")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func keys(m map[string]json.RawMessage) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
