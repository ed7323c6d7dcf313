package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"loan-backoffice/internal/usecase/dashboard"
)

type DashboardHandler struct{ uc *dashboard.Usecase }

func NewDashboardHandler(uc *dashboard.Usecase) *DashboardHandler { return &DashboardHandler{uc: uc} }

func (h *DashboardHandler) Stats(c echo.Context) error {
	s, err := h.uc.Stats(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, s)
}

func (h *DashboardHandler) Analytics(c echo.Context) error {
	a, err := h.uc.Analytics(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, Envelope{Success: true, Data: a})
}
