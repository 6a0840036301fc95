package di

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"TravelPulse/internal/domain/repository"
	domsvc "TravelPulse/internal/domain/service"
	"TravelPulse/internal/handler/api"
	"TravelPulse/internal/refdata"
	"TravelPulse/internal/service/ratelimit"
	"TravelPulse/internal/services/scoring"
	"TravelPulse/internal/services/signals"
	"TravelPulse/internal/usecase"
	"TravelPulse/pkg/config"
	xhttp "TravelPulse/pkg/http"
	applogger "TravelPulse/pkg/logger"
	"TravelPulse/pkg/metrics"
	"TravelPulse/pkg/server"
)

// ProvideLogger creates the application logger from config.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	l, err := applogger.New(&applogger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return l.With(applogger.String("env", cfg.Environment)), nil
}

// ProvideRegistry exposes the registry every collector is registered on.
func ProvideRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics(reg *prometheus.Registry) repository.Metrics {
	return metrics.NewWithRegisterer(reg)
}

// ProvideRefData loads the reference dataset.
func ProvideRefData(cfg *config.Config, l *applogger.Logger) (*refdata.Dataset, error) {
	d, err := refdata.Load(cfg.RefData.Path)
	if err != nil {
		return nil, fmt.Errorf("refdata: %w", err)
	}
	l.Info("refdata loaded",
		applogger.String("path", cfg.RefData.Path),
		applogger.Int("cities", d.Cities()),
	)
	return d, nil
}

// ProvideSignalProviders builds one provider per signal key.
func ProvideSignalProviders(cfg *config.Config, ref *refdata.Dataset, l *applogger.Logger) []domsvc.SignalProvider {
	p := cfg.Providers
	if p.Weather.APIKey == "" {
		l.Warn("weather api key not configured, weather signal will be missing")
	}
	return []domsvc.SignalProvider{
		signals.NewOpenWeatherProvider(p.Weather.BaseURL, p.Weather.APIKey, p.CallTimeout),
		signals.NewSafetyProvider(ref),
		signals.NewFrankfurterProvider(p.Currency.BaseURL, p.Currency.BaseCurrency, p.CallTimeout, ref),
		signals.NewNagerHolidayProvider(p.Holidays.BaseURL, p.CallTimeout, ref),
		signals.NewFlightsProvider(ref),
	}
}

// ProvideSignalAggregator creates the fan-out aggregator.
func ProvideSignalAggregator(
	cfg *config.Config,
	providers []domsvc.SignalProvider,
	m repository.Metrics,
	l *applogger.Logger,
) (*usecase.SignalAggregator, error) {
	return usecase.NewSignalAggregator(providers,
		usecase.WithCallTimeout(cfg.Providers.CallTimeout),
		usecase.WithPoolSize(cfg.Providers.PoolSize),
		usecase.WithMetrics(m),
		usecase.WithLogger(l),
	)
}

// ProvideWeights returns the scoring weight table.
func ProvideWeights() scoring.WeightTable {
	return scoring.DefaultWeights()
}

// ProvideTravelScoreUseCase creates the scoring use case.
func ProvideTravelScoreUseCase(
	cfg *config.Config,
	agg *usecase.SignalAggregator,
	w scoring.WeightTable,
	m repository.Metrics,
) (*usecase.TravelScoreUseCase, error) {
	return usecase.NewTravelScoreUseCase(agg, w, m, cfg.Providers.RequestTimeout)
}

// ProvideRateLimiter picks the configured backend. The none backend yields nil.
func ProvideRateLimiter(cfg *config.Config, l *applogger.Logger) (repository.RateLimiter, func(), error) {
	rl := cfg.RateLimit
	switch rl.Backend {
	case config.RateLimitMemory:
		return ratelimit.New(rl.Capacity, rl.RefillPerSec), func() {}, nil
	case config.RateLimitRedis:
		r := ratelimit.NewRedisLimiter(ratelimit.RedisConfig{
			Addr:     rl.Redis.Addr,
			Password: rl.Redis.Password,
			DB:       rl.Redis.DB,
			Prefix:   rl.Redis.Prefix,
		}, rl.Limit, rl.Window)
		cleanup := func() {
			if err := r.Close(); err != nil {
				l.Warn("redis limiter close error", applogger.Error(err))
			}
		}
		return r, cleanup, nil
	case config.RateLimitNone:
		return nil, func() {}, nil
	}
	return nil, nil, fmt.Errorf("unknown rate limit backend %q", rl.Backend)
}

// ProvideTravelHandler creates the HTTP handler.
func ProvideTravelHandler(l *applogger.Logger, uc *usecase.TravelScoreUseCase, rl repository.RateLimiter) xhttp.Handler {
	return api.NewTravelEchoHandler(l, uc, rl)
}

// ProvideHTTPServer creates the Echo server.
func ProvideHTTPServer(cfg *config.Config, l *applogger.Logger, reg *prometheus.Registry, h xhttp.Handler) *xhttp.Server {
	return xhttp.NewServer(h,
		xhttp.WithPort(cfg.Server.Port),
		xhttp.WithTimeouts(cfg.Server.ReadTimeout, cfg.Server.WriteTimeout, cfg.Server.ShutdownTimeout),
		xhttp.WithCORSOrigins(cfg.Server.CORSOrigins),
		xhttp.WithMetrics(reg, reg, cfg.Metrics.Path),
		xhttp.WithSlowThreshold(cfg.Server.SlowThreshold),
		xhttp.WithLogger(l),
	)
}

// ProvideApp creates the application server.
func ProvideApp(cfg *config.Config, l *applogger.Logger, srv *xhttp.Server) *server.App {
	return server.New(cfg, l, srv)
}
