package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"loan-backoffice/internal/adapter/middleware"
	"loan-backoffice/internal/domain/document"
	ucdocument "loan-backoffice/internal/usecase/document"
)

type DocumentHandler struct{ uc *ucdocument.Usecase }

func NewDocumentHandler(uc *ucdocument.Usecase) *DocumentHandler { return &DocumentHandler{uc: uc} }

type uploadDocumentReq struct {
	BorrowerID   uint64  `json:"borrowerId"   validate:"required"`
	LoanID       *uint64 `json:"loanId"       validate:"omitempty,gte=1"`
	DocumentType string  `json:"documentType" validate:"required,doctype"`
	FileName     string  `json:"fileName"     validate:"required,max=255"`
	FileURL      string  `json:"fileUrl"      validate:"required,max=1024"`
}

type verifyDocumentReq struct {
	Status string `json:"status" validate:"required,verdict"`
}

func (h *DocumentHandler) Upload(c echo.Context) error {
	var req uploadDocumentReq
	if err := bind(c, &req); err != nil {
		return err
	}
	actor, _ := middleware.CurrentUser(c)
	d, err := h.uc.Upload(c.Request().Context(), ucdocument.UploadInput{
		ActorID:      actor.ID,
		ActorRole:    actor.Role,
		BorrowerID:   req.BorrowerID,
		LoanID:       req.LoanID,
		DocumentType: document.Type(req.DocumentType),
		FileName:     req.FileName,
		FileURL:      req.FileURL,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, d)
}

func (h *DocumentHandler) ListByBorrower(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	docs, err := h.uc.ListByBorrower(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, docs)
}

func (h *DocumentHandler) Verify(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var req verifyDocumentReq
	if err := bind(c, &req); err != nil {
		return err
	}
	d, err := h.uc.Verify(c.Request().Context(), ucdocument.VerifyInput{
		DocumentID: id,
		Status:     document.VerificationStatus(req.Status),
		ActorID:    actorID(c),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, d)
}
