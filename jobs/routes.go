package jobs

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// RegisterRoutes registra as rotas públicas da API.
func RegisterRoutes(e *echo.Echo, h *Handler) {
	e.GET("/", h.HandleIndex)

	// ex: GET /intern-junior/apply
	e.GET("/:slug/apply", h.HandleDescribe)
	e.POST("/:slug/apply", h.HandleApply)

	e.GET("/healthz", h.HandleHealthCheck)
}

// RegisterMetrics expõe o handler do Prometheus em /metrics.
func RegisterMetrics(e *echo.Echo, metrics http.Handler) {
	e.GET("/metrics", echo.WrapHandler(metrics))
}
