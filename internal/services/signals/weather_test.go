package signals

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"TravelPulse/internal/domain/models"
	domsvc "TravelPulse/internal/domain/service"
)

func TestOpenWeatherProvider_Found(t *testing.T) {
	srv := jsonServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/data/2.5/weather", r.URL.Path)
		assert.Equal(t, "Tokyo, Japan", r.URL.Query().Get("q"))
		assert.Equal(t, "secret", r.URL.Query().Get("appid"))
		assert.Equal(t, "metric", r.URL.Query().Get("units"))
		w.Write([]byte(`{"main":{"temp":22.5},"weather":[{"description":"clear sky"}]}`))
	})

	p := NewOpenWeatherProvider(srv.URL, "secret", time.Second)
	out := p.Fetch(context.Background(), trip("Tokyo,   Japan", "2026-04-01", "2026-04-07"))

	require.Equal(t, models.OutcomeFound, out.Kind, "err=%v", out.Err)
	assert.Equal(t, 85, out.Signal.Score)
	assert.Equal(t, "Current temperature 22.5°C with clear sky", out.Signal.Summary)
	assert.Equal(t, "OpenWeatherMap", out.Signal.Source)
	assert.True(t, domsvc.IsBlocking(p))
}

func TestOpenWeatherProvider_SummaryKeepsTemperaturePrecision(t *testing.T) {
	srv := jsonServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"main":{"temp":12.34},"weather":[{"description":"light rain"}]}`))
	})

	p := NewOpenWeatherProvider(srv.URL, "secret", time.Second)
	out := p.Fetch(context.Background(), trip("Lyon", "2026-04-01", "2026-04-07"))

	require.Equal(t, models.OutcomeFound, out.Kind, "err=%v", out.Err)
	assert.Equal(t, 70, out.Signal.Score)
	assert.Equal(t, "Current temperature 12.34°C with light rain", out.Signal.Summary)
}

func TestOpenWeatherProvider_NoKeyIsAbsent(t *testing.T) {
	p := NewOpenWeatherProvider("http://127.0.0.1:1", "  ", time.Second)
	out := p.Fetch(context.Background(), trip("Tokyo", "2026-04-01", "2026-04-07"))
	assert.Equal(t, models.OutcomeAbsent, out.Kind)
}

func TestOpenWeatherProvider_UpstreamErrors(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
		want   models.OutcomeKind
	}{
		{"unknown city", http.StatusNotFound, `{"cod":"404","message":"city not found"}`, models.OutcomeAbsent},
		{"server error", http.StatusInternalServerError, `oops`, models.OutcomeFailed},
		{"bad key", http.StatusUnauthorized, `{"cod":401}`, models.OutcomeFailed},
		{"missing temp", http.StatusOK, `{"main":{},"weather":[{"description":"rain"}]}`, models.OutcomeFailed},
		{"no conditions", http.StatusOK, `{"main":{"temp":10},"weather":[]}`, models.OutcomeFailed},
		{"not json", http.StatusOK, `<html>`, models.OutcomeFailed},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := jsonServer(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				w.Write([]byte(tc.body))
			})
			p := NewOpenWeatherProvider(srv.URL, "k", time.Second)
			out := p.Fetch(context.Background(), trip("Atlantis", "2026-04-01", "2026-04-07"))
			assert.Equal(t, tc.want, out.Kind)
		})
	}
}

func TestWeatherScore(t *testing.T) {
	cases := map[float64]int{
		18: 85, 22: 85, 28: 85,
		10: 70, 17.9: 70, 28.1: 70, 35: 70,
		9.9: 50, 35.1: 50, -5: 50,
	}
	for temp, want := range cases {
		assert.Equal(t, want, WeatherScore(temp), "temp=%v", temp)
	}
}
