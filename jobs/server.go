package jobs

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"jobs-api/jobs/application"
)

const DefaultBodyLimit = "64K"

type ServerOptions struct {
	Service application.ApplyService
	Health  *application.HealthService

	// Metrics, quando não nil, é servido em GET /metrics.
	Metrics http.Handler

	// BodyLimit no formato do echo ("64K", "1M"). Vazio usa DefaultBodyLimit.
	BodyLimit string
	Logger    *zerolog.Logger
}

// NewServer monta o echo com middlewares, rotas e o error handler da API.
func NewServer(opts ServerOptions) *echo.Echo {
	if opts.BodyLimit == "" {
		opts.BodyLimit = DefaultBodyLimit
	}
	logger := opts.Logger
	if logger == nil {
		logger = &log.Logger
	}

	h := NewHandler(opts.Service, opts.Health)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = h.HandleError

	e.Use(middleware.Recover())
	e.Use(RequestID())
	e.Use(RequestLogger(*logger))
	e.Use(middleware.CORS())
	e.Use(middleware.BodyLimit(opts.BodyLimit))

	RegisterRoutes(e, h)
	if opts.Metrics != nil {
		RegisterMetrics(e, opts.Metrics)
	}
	return e
}
