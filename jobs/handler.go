package jobs

import (
	"errors"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"jobs-api/jobs/application"
	"jobs-api/jobs/domain"
)

const (
	welcomeMessage = "Welcome to Enerlab Jobs API"
	usageMessage   = "GET /{slug}/apply to get challenge instructions, POST /{slug}/apply to submit your solution"
)

var availableEndpoints = []string{"GET /", "GET /{slug}/apply", "POST /{slug}/apply"}

type Handler struct {
	svc    application.ApplyService
	health *application.HealthService
}

func NewHandler(svc application.ApplyService, health *application.HealthService) *Handler {
	if health == nil {
		health = application.NewHealthService()
	}
	return &Handler{svc: svc, health: health}
}

type indexResponse struct {
	Message       string              `json:"message"`
	AvailableJobs []domain.JobSummary `json:"availableJobs"`
	Usage         string              `json:"usage"`
}

type positionNotFoundResponse struct {
	Error         string              `json:"error"`
	AvailableJobs []domain.JobSummary `json:"availableJobs"`
}

type notFoundResponse struct {
	Error              string              `json:"error"`
	AvailableEndpoints []string            `json:"availableEndpoints"`
	AvailableJobs      []domain.JobSummary `json:"availableJobs"`
}

// HandleIndex lista as vagas abertas.
// GET /
func (h *Handler) HandleIndex(c echo.Context) error {
	return c.JSON(http.StatusOK, indexResponse{
		Message:       welcomeMessage,
		AvailableJobs: h.svc.Jobs(),
		Usage:         usageMessage,
	})
}

// HandleDescribe devolve as instruções do desafio.
// GET /:slug/apply
func (h *Handler) HandleDescribe(c echo.Context) error {
	resp, err := h.svc.Describe(c.Param("slug"))
	if errors.Is(err, application.ErrUnknownPosition) {
		return h.positionNotFound(c)
	}
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, resp)
}

// HandleApply valida a candidatura. 200 em sucesso, 400 em qualquer falha de validação.
// POST /:slug/apply
func (h *Handler) HandleApply(c echo.Context) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		// estouro do BODY_LIMIT chega aqui como *echo.HTTPError (413)
		return err
	}

	res, err := h.svc.Submit(c.Request().Context(), c.Param("slug"), body)
	if errors.Is(err, application.ErrUnknownPosition) {
		return h.positionNotFound(c)
	}
	if err != nil {
		return err
	}

	status := http.StatusOK
	if !res.Success {
		status = http.StatusBadRequest
	}
	return c.JSON(status, res)
}

func (h *Handler) positionNotFound(c echo.Context) error {
	return c.JSON(http.StatusNotFound, positionNotFoundResponse{
		Error:         "Job position not found",
		AvailableJobs: h.svc.Jobs(),
	})
}
