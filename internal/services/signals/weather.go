package signals

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"TravelPulse/internal/domain/models"
	domsvc "TravelPulse/internal/domain/service"
	xhttp "TravelPulse/pkg/http"
	"TravelPulse/pkg/util"
)

const weatherSource = "OpenWeatherMap"

// OpenWeatherProvider scores current conditions at the destination.
type OpenWeatherProvider struct {
	remote
	base   *HTTPServiceBase
	apiKey string
}

func NewOpenWeatherProvider(baseURL, apiKey string, timeout time.Duration) *OpenWeatherProvider {
	return &OpenWeatherProvider{
		base:   NewHTTPServiceBase(baseURL, timeout),
		apiKey: strings.TrimSpace(apiKey),
	}
}

type weatherResp struct {
	Main *struct {
		Temp *float64 `json:"temp"`
	} `json:"main"`
	Weather []struct {
		Description string `json:"description"`
	} `json:"weather"`
}

func (p *OpenWeatherProvider) Key() models.SignalKey { return models.SignalWeather }

func (p *OpenWeatherProvider) Fetch(ctx context.Context, q models.TripQuery) models.Outcome {
	if p.apiKey == "" {
		return models.Absent("weather api key not configured")
	}
	city := util.CollapseSpaces(q.Destination)
	if city == "" {
		return models.Absent("empty destination")
	}

	var wr weatherResp
	err := p.base.GetJSON(ctx, "/data/2.5/weather", map[string][]string{
		"q":     {city},
		"appid": {p.apiKey},
		"units": {"metric"},
	}, &wr)
	if err != nil {
		if xhttp.StatusCode(err) == http.StatusNotFound {
			return models.Absent("city not known upstream")
		}
		return models.Failed(fmt.Errorf("fetch weather: %w", err))
	}
	if wr.Main == nil || wr.Main.Temp == nil || len(wr.Weather) == 0 {
		return models.Failed(fmt.Errorf("weather: %w", ErrMalformedResponse))
	}

	temp := *wr.Main.Temp
	summary := fmt.Sprintf("Current temperature %s°C with %s", strconv.FormatFloat(temp, 'f', -1, 64), wr.Weather[0].Description)
	return models.Found(models.NewSignal(WeatherScore(temp), summary, weatherSource))
}

// WeatherScore bands a temperature in Celsius: comfortable, tolerable, harsh.
func WeatherScore(celsius float64) int {
	switch {
	case celsius >= 18 && celsius <= 28:
		return 85
	case (celsius >= 10 && celsius < 18) || (celsius > 28 && celsius <= 35):
		return 70
	default:
		return 50
	}
}

var _ domsvc.SignalProvider = (*OpenWeatherProvider)(nil)
