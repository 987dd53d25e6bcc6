package jobs

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
)

// HandleError substitui o error handler do echo.
//
// Rota inexistente e método não suportado viram o mesmo 404 com a lista de
// endpoints e vagas. O resto segue o handler padrão do echo.
func (h *Handler) HandleError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var he *echo.HTTPError
	if errors.As(err, &he) && (he.Code == http.StatusNotFound || he.Code == http.StatusMethodNotAllowed) {
		if jerr := c.JSON(http.StatusNotFound, notFoundResponse{
			Error:              "Not found",
			AvailableEndpoints: availableEndpoints,
			AvailableJobs:      h.svc.Jobs(),
		}); jerr != nil {
			c.Logger().Error(jerr)
		}
		return
	}

	c.Echo().DefaultHTTPErrorHandler(err, c)
}
