//go:build wireinject
// +build wireinject

package di

import (
	"github.com/google/wire"

	"TravelPulse/pkg/config"
	"TravelPulse/pkg/server"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, func(), error) {
	wire.Build(
		// Observability
		ProvideLogger,
		ProvideRegistry,
		ProvideMetrics,

		// Reference data and signal providers
		ProvideRefData,
		ProvideSignalProviders,

		// Use cases
		ProvideSignalAggregator,
		ProvideWeights,
		ProvideTravelScoreUseCase,

		// Transport
		ProvideRateLimiter,
		ProvideTravelHandler,
		ProvideHTTPServer,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil, nil
}
