package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"loan-backoffice/internal/domain/loan"
	"loan-backoffice/internal/domain/payment"
	ucloan "loan-backoffice/internal/usecase/loan"
)

type LoanHandler struct{ uc *ucloan.Usecase }

func NewLoanHandler(uc *ucloan.Usecase) *LoanHandler { return &LoanHandler{uc: uc} }

type createLoanReq struct {
	Amount       *decimal.Decimal `json:"amount"       validate:"required,positive,decimal2"`
	InterestRate *decimal.Decimal `json:"interestRate" validate:"required,percent,decimal2"`
	Term         int              `json:"term"         validate:"required,gte=1,lte=600"`
	BorrowerID   uint64           `json:"borrowerId"   validate:"required"`
	Purpose      string           `json:"purpose"      validate:"required,min=5"`
}

type applyLoanReq struct {
	Amount  *decimal.Decimal `json:"amount"  validate:"required,positive,decimal2"`
	Term    int              `json:"term"    validate:"required,gte=1,lte=600"`
	Purpose string           `json:"purpose" validate:"required,min=5"`
}

// Status values are checked by the usecase so the response names the status error.
type updateStatusReq struct {
	Status string `json:"status" validate:"required"`
}

type recordPaymentReq struct {
	Amount      *decimal.Decimal `json:"amount"      validate:"required,positive,decimal2"`
	PaymentDate string           `json:"paymentDate" validate:"required,isodate"`
}

// list serves both /api/loans and /api/v1/loans. The versioned route always paginates.
func (h *LoanHandler) list(c echo.Context, alwaysPaginate bool) error {
	pq, err := parsePage(c)
	if err != nil {
		return err
	}
	from, err := queryDate(c, "startDate", false)
	if err != nil {
		return err
	}
	to, err := queryDate(c, "endDate", true)
	if err != nil {
		return err
	}
	in := ucloan.ListInput{Status: c.QueryParam("status"), From: from, To: to}
	paginate := alwaysPaginate || pq.Set
	if paginate {
		in.Offset, in.Limit = pq.Offset(), pq.Limit
	}
	res, err := h.uc.List(c.Request().Context(), in)
	if err != nil {
		return err
	}
	env := Envelope{Success: true, Data: res.Loans, Message: "Loans retrieved successfully"}
	if paginate {
		env.Pagination = pq.Pagination(res.Total)
	}
	return c.JSON(http.StatusOK, env)
}

func (h *LoanHandler) List(c echo.Context) error { return h.list(c, false) }

func (h *LoanHandler) ListV1(c echo.Context) error { return h.list(c, true) }

func (h *LoanHandler) Create(c echo.Context) error {
	var req createLoanReq
	if err := bind(c, &req); err != nil {
		return err
	}
	l, err := h.uc.Create(c.Request().Context(), ucloan.CreateLoanInput{
		BorrowerID:   req.BorrowerID,
		Amount:       *req.Amount,
		InterestRate: *req.InterestRate,
		Term:         req.Term,
		Purpose:      req.Purpose,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, l)
}

func (h *LoanHandler) Get(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	dto, err := h.uc.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LoanHandler) UpdateStatus(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var req updateStatusReq
	if err := bind(c, &req); err != nil {
		return err
	}
	l, err := h.uc.UpdateStatus(c.Request().Context(), ucloan.UpdateStatusInput{
		LoanID:  id,
		Status:  loan.Status(req.Status),
		ActorID: actorID(c),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, l)
}

func (h *LoanHandler) RecordPayment(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var req recordPaymentReq
	if err := bind(c, &req); err != nil {
		return err
	}
	date, _ := parseDate(req.PaymentDate)
	p, err := h.uc.RecordPayment(c.Request().Context(), ucloan.RecordPaymentInput{
		LoanID:      id,
		Amount:      *req.Amount,
		PaymentDate: date,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, p)
}

func (h *LoanHandler) ListPayments(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	ps, err := h.uc.ListPayments(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ps)
}

func (h *LoanHandler) UpdatePaymentStatus(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var req updateStatusReq
	if err := bind(c, &req); err != nil {
		return err
	}
	p, err := h.uc.UpdatePaymentStatus(c.Request().Context(), ucloan.UpdatePaymentStatusInput{
		PaymentID: id,
		Status:    payment.Status(req.Status),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}

func (h *LoanHandler) CustomerLoans(c echo.Context) error {
	ls, err := h.uc.CustomerLoans(c.Request().Context(), actorID(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ls)
}

func (h *LoanHandler) Apply(c echo.Context) error {
	var req applyLoanReq
	if err := bind(c, &req); err != nil {
		return err
	}
	l, err := h.uc.Apply(c.Request().Context(), ucloan.ApplyInput{
		UserID:  actorID(c),
		Amount:  *req.Amount,
		Term:    req.Term,
		Purpose: req.Purpose,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, l)
}
