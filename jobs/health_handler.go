package jobs

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"jobs-api/jobs/application"
)

// HandleHealthCheck verifica o estado da aplicação e dependências
// GET /healthz
func (h *Handler) HandleHealthCheck(c echo.Context) error {
	health := h.health.CheckHealth(c.Request().Context())

	status := http.StatusOK
	if health.Status == application.StatusUnavailable {
		status = http.StatusServiceUnavailable
	}
	return c.JSON(status, health)
}
