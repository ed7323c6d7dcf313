package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"loan-backoffice/internal/apperr"
)

type Handler struct{ version string }

func NewHandler(version string) *Handler { return &Handler{version: version} }

func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339Nano),
	})
}

func (h *Handler) V1Status(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "healthy", "version": h.version})
}

// APINotFound answers unknown /api paths with JSON instead of the SPA shell.
func (h *Handler) APINotFound(c echo.Context) error {
	return apperr.NotFound("API endpoint not found")
}
