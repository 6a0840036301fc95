package signals

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"TravelPulse/internal/domain/models"
	domsvc "TravelPulse/internal/domain/service"
	"TravelPulse/internal/refdata"
)

const (
	currencySource      = "Frankfurter API"
	DefaultBaseCurrency = "INR"
)

var (
	rateExpensive = decimal.NewFromInt(1)
	rateModerate  = decimal.NewFromFloat(0.5)
)

// FrankfurterProvider compares the destination currency against a base currency.
type FrankfurterProvider struct {
	remote
	base         *HTTPServiceBase
	ref          *refdata.Dataset
	baseCurrency string
}

func NewFrankfurterProvider(baseURL, baseCurrency string, timeout time.Duration, ref *refdata.Dataset) *FrankfurterProvider {
	baseCurrency = strings.ToUpper(strings.TrimSpace(baseCurrency))
	if baseCurrency == "" {
		baseCurrency = DefaultBaseCurrency
	}
	return &FrankfurterProvider{
		base:         NewHTTPServiceBase(baseURL, timeout),
		ref:          ref,
		baseCurrency: baseCurrency,
	}
}

type ratesResp struct {
	Base  string                     `json:"base"`
	Date  string                     `json:"date"`
	Rates map[string]decimal.Decimal `json:"rates"`
}

func (p *FrankfurterProvider) Key() models.SignalKey { return models.SignalCurrency }

func (p *FrankfurterProvider) Fetch(ctx context.Context, q models.TripQuery) models.Outcome {
	country, ok := p.ref.CountryOf(q.Destination)
	if !ok {
		return models.Absent("destination country unknown")
	}
	dest := country.Currency
	if dest == "" || dest == p.baseCurrency {
		return models.Found(models.NewSignal(90, "Local currency matches base currency", currencySource))
	}

	var rr ratesResp
	err := p.base.GetJSON(ctx, "/latest", map[string][]string{
		"from": {p.baseCurrency},
		"to":   {dest},
	}, &rr)
	if err != nil {
		return models.Failed(fmt.Errorf("fetch rates: %w", err))
	}
	rate, ok := rr.Rates[dest]
	if !ok {
		return models.Failed(fmt.Errorf("rate for %s: %w", dest, ErrMalformedResponse))
	}

	score, label := CurrencyScore(rate)
	summary := fmt.Sprintf("Destination currency (%s) is %s compared to %s", dest, label, p.baseCurrency)
	return models.Found(models.NewSignal(score, summary, currencySource))
}

// CurrencyScore bands an exchange rate (destination units per base unit).
func CurrencyScore(rate decimal.Decimal) (int, string) {
	switch {
	case rate.GreaterThan(rateExpensive):
		return 40, "expensive"
	case rate.GreaterThan(rateModerate):
		return 60, "moderate"
	default:
		return 80, "affordable"
	}
}

var _ domsvc.SignalProvider = (*FrankfurterProvider)(nil)
