package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	ucborrower "loan-backoffice/internal/usecase/borrower"
)

type BorrowerHandler struct{ uc *ucborrower.Usecase }

func NewBorrowerHandler(uc *ucborrower.Usecase) *BorrowerHandler { return &BorrowerHandler{uc: uc} }

func (h *BorrowerHandler) list(c echo.Context, alwaysPaginate bool) error {
	pq, err := parsePage(c)
	if err != nil {
		return err
	}
	paginate := alwaysPaginate || pq.Set
	offset, limit := 0, 0
	if paginate {
		offset, limit = pq.Offset(), pq.Limit
	}
	res, err := h.uc.List(c.Request().Context(), c.QueryParam("search"), offset, limit)
	if err != nil {
		return err
	}
	if !paginate {
		return c.JSON(http.StatusOK, res.Borrowers)
	}
	return c.JSON(http.StatusOK, Envelope{
		Success:    true,
		Data:       res.Borrowers,
		Message:    "Borrowers retrieved successfully",
		Pagination: pq.Pagination(res.Total),
	})
}

func (h *BorrowerHandler) List(c echo.Context) error { return h.list(c, false) }

func (h *BorrowerHandler) ListV1(c echo.Context) error { return h.list(c, true) }

func (h *BorrowerHandler) Get(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	d, err := h.uc.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, d)
}
