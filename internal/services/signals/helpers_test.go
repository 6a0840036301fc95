package signals

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"TravelPulse/internal/domain/models"
	"TravelPulse/internal/refdata"
)

const testDataset = `
countries:
  JP: {currency: JPY, safety: {risk: 1.2, advisory: "Exercise normal safety precautions."}}
  IN: {currency: INR, safety: {risk: 2.8, advisory: "Exercise increased caution in crowded areas."}}
  AU: {currency: AUD}
cities:
  tokyo: {country: JP, flight_index: 65}
  kyoto: {country: JP}
  mumbai: {country: IN, flight_index: 85}
  sydney: {country: AU}
`

func testRef(t *testing.T) *refdata.Dataset {
	t.Helper()
	d, err := refdata.Parse([]byte(testDataset))
	require.NoError(t, err)
	return d
}

func trip(dest, start, end string) models.TripQuery {
	s, _ := time.Parse("2006-01-02", start)
	e, _ := time.Parse("2006-01-02", end)
	return models.TripQuery{Destination: dest, StartDate: s, EndDate: e}
}

func jsonServer(t *testing.T, h http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return srv
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
