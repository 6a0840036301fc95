package signals

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"TravelPulse/internal/domain/models"
	domsvc "TravelPulse/internal/domain/service"
	"TravelPulse/internal/refdata"
	xhttp "TravelPulse/pkg/http"
	"TravelPulse/pkg/util"
)

const (
	holidaysSource     = "Nager.Date API"
	holidayPenalty     = 20
	holidayMaxPenalty  = 60
	holidayMaxYearSpan = 3
)

// NagerHolidayProvider penalizes trips that overlap public holidays.
type NagerHolidayProvider struct {
	remote
	base *HTTPServiceBase
	ref  *refdata.Dataset
}

func NewNagerHolidayProvider(baseURL string, timeout time.Duration, ref *refdata.Dataset) *NagerHolidayProvider {
	return &NagerHolidayProvider{base: NewHTTPServiceBase(baseURL, timeout), ref: ref}
}

type holidayResp struct {
	Date      string `json:"date"`
	LocalName string `json:"localName"`
	Name      string `json:"name"`
}

func (p *NagerHolidayProvider) Key() models.SignalKey { return models.SignalHolidays }

func (p *NagerHolidayProvider) Fetch(ctx context.Context, q models.TripQuery) models.Outcome {
	if q.StartDate.IsZero() || q.EndDate.IsZero() {
		return models.Absent("trip dates missing")
	}
	country, ok := p.ref.CountryOf(q.Destination)
	if !ok {
		return models.Absent("destination country unknown")
	}

	years := util.YearsSpanned(q.StartDate, q.EndDate)
	if len(years) > holidayMaxYearSpan {
		return models.Absent("trip spans too many years")
	}

	count := 0
	for _, year := range years {
		n, err := p.countInYear(ctx, year, country.Code, q.StartDate, q.EndDate)
		if err != nil {
			if xhttp.StatusCode(err) == http.StatusNotFound {
				return models.Absent("country not supported upstream")
			}
			return models.Failed(fmt.Errorf("fetch holidays: %w", err))
		}
		count += n
	}

	summary := fmt.Sprintf("%d public holidays may increase crowd levels", count)
	return models.Found(models.NewSignal(HolidayScore(count), summary, holidaysSource))
}

func (p *NagerHolidayProvider) countInYear(ctx context.Context, year int, code string, from, to time.Time) (int, error) {
	var hs []holidayResp
	path := fmt.Sprintf("/api/v3/PublicHolidays/%d/%s", year, code)
	if err := p.base.GetJSON(ctx, path, nil, &hs); err != nil {
		if errors.Is(err, xhttp.ErrNoContent) {
			return 0, nil
		}
		return 0, err
	}

	count := 0
	for _, h := range hs {
		d, ok := util.ParseDate(h.Date)
		if !ok {
			return 0, fmt.Errorf("holiday date %q: %w", h.Date, ErrMalformedResponse)
		}
		if util.WithinDays(d, from, to) {
			count++
		}
	}
	return count, nil
}

// HolidayScore starts at 100 and loses 20 per holiday, capped at 60 lost.
func HolidayScore(count int) int {
	penalty := count * holidayPenalty
	if penalty > holidayMaxPenalty {
		penalty = holidayMaxPenalty
	}
	return 100 - penalty
}

var _ domsvc.SignalProvider = (*NagerHolidayProvider)(nil)
