package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"TravelPulse/internal/domain/models"
	domrepo "TravelPulse/internal/domain/repository"
	"TravelPulse/internal/usecase"
	xhttp "TravelPulse/pkg/http"
	xlogger "TravelPulse/pkg/logger"
)

// TravelScorer is the use case behind GET /travel-signal.
type TravelScorer interface {
	Evaluate(ctx context.Context, q models.TripQuery) (*models.TravelScore, error)
}

// TravelEchoHandler serves the travel feasibility endpoints.
type TravelEchoHandler struct {
	logger  *xlogger.Logger
	uc      TravelScorer
	limiter domrepo.RateLimiter
}

// NewTravelEchoHandler builds the handler. A nil limiter disables rate limiting.
func NewTravelEchoHandler(logger *xlogger.Logger, uc TravelScorer, limiter domrepo.RateLimiter) *TravelEchoHandler {
	if logger == nil {
		logger = xlogger.Nop()
	}
	return &TravelEchoHandler{logger: logger, uc: uc, limiter: limiter}
}

func (h *TravelEchoHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/travel-signal", h.TravelSignal)
	e.GET("/health", h.Health)
}

func (h *TravelEchoHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (h *TravelEchoHandler) TravelSignal(c echo.Context) error {
	ctx := c.Request().Context()

	if h.limiter != nil {
		ok, err := h.limiter.Allow(ctx, c.RealIP())
		if err != nil {
			// fail open
			h.logger.Warn("rate limiter error", xlogger.Error(err))
		} else if !ok {
			return xhttp.AppErrorResponse(c, xhttp.TooManyRequestsError("too many requests, retry later"))
		}
	}

	req := &models.TravelRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	start, _ := xhttp.ParseDate(req.StartDate)
	end, _ := xhttp.ParseDate(req.EndDate)

	res, err := h.uc.Evaluate(ctx, models.TripQuery{
		Destination: req.Destination,
		StartDate:   start,
		EndDate:     end,
	})
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidDateRange):
			return xhttp.BadRequestResponse(c, []xhttp.ValidationError{{
				Code:    "ERR_DATE_RANGE",
				Field:   "end_date",
				Message: err.Error(),
			}})
		case errors.Is(err, usecase.ErrDestinationRequired):
			return xhttp.BadRequestResponse(c, []xhttp.ValidationError{{
				Code:    "ERR_REQUIRED",
				Field:   "destination",
				Message: "destination is required",
			}})
		}
		h.logger.Error("travel score usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, xhttp.InternalError("could not evaluate trip").WithError(err))
	}

	h.logger.Info("travel score computed",
		xlogger.String("destination", req.Destination),
		xlogger.Int("total_score", res.TotalScore),
		xlogger.Int("signals", len(res.Signals)),
		xlogger.Int("missing", len(res.Missing)),
	)
	return c.JSON(http.StatusOK, toTravelResponse(req, res))
}

func toTravelResponse(req *models.TravelRequest, res *models.TravelScore) models.TravelResponse {
	signals := res.Signals
	if signals == nil {
		signals = map[models.SignalKey]models.Signal{}
	}
	missing := res.Missing
	if missing == nil {
		missing = []models.SignalKey{}
	}
	return models.TravelResponse{
		Destination:    req.Destination,
		StartDate:      req.StartDate,
		EndDate:        req.EndDate,
		TotalScore:     res.TotalScore,
		Feasibility:    res.Feasibility,
		Signals:        signals,
		MissingSignals: missing,
	}
}
