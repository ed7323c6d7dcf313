package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"

	"loan-backoffice/internal/apperr"
)

func runErrorHandler(t *testing.T, production bool, method string, err error) (*httptest.ResponseRecorder, *test.Hook) {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)
	hook := test.NewLocal(log)

	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(method, "/api/loans", nil), rec)
	ErrorHandler(log, production)(err, c)
	return rec, hook
}

func TestErrorHandler(t *testing.T) {
	cases := []struct {
		name       string
		production bool
		err        error
		wantCode   int
		wantMsg    string
		wantLogged bool
	}{
		{"validation", true, apperr.Validation("Invalid status"), http.StatusBadRequest, "Invalid status", false},
		{"not found", true, apperr.NotFound("Loan not found"), http.StatusNotFound, "Loan not found", false},
		{"forbidden sentinel", true, apperr.ErrForbidden, http.StatusForbidden, "Forbidden", false},
		{"echo http error", true, echo.NewHTTPError(http.StatusUnsupportedMediaType, "Unsupported Media Type"), http.StatusUnsupportedMediaType, "Unsupported Media Type", false},
		{"internal in production", true, apperr.Internal("load loan", errors.New("dial tcp: refused")), http.StatusInternalServerError, msgInternal, true},
		{"plain error in production", true, errors.New("boom"), http.StatusInternalServerError, msgInternal, true},
		{"plain error in development", false, errors.New("boom"), http.StatusInternalServerError, "boom", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec, hook := runErrorHandler(t, tc.production, http.MethodGet, tc.err)
			if rec.Code != tc.wantCode {
				t.Fatalf("code = %d, want %d", rec.Code, tc.wantCode)
			}
			var body ErrorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("invalid JSON %q: %v", rec.Body.String(), err)
			}
			if body.Error != tc.wantMsg {
				t.Fatalf("error = %q, want %q", body.Error, tc.wantMsg)
			}
			if logged := len(hook.AllEntries()) > 0; logged != tc.wantLogged {
				t.Fatalf("logged = %v, want %v", logged, tc.wantLogged)
			}
		})
	}
}

func TestErrorHandler_FieldDetails(t *testing.T) {
	err := apperr.InvalidFields([]FieldError{{Field: "amount", Message: "is required"}})
	rec, _ := runErrorHandler(t, true, http.MethodPost, err)
	var body ErrorResponse
	if e := json.Unmarshal(rec.Body.Bytes(), &body); e != nil {
		t.Fatal(e)
	}
	if rec.Code != http.StatusBadRequest || len(body.Details) != 1 || body.Details[0].Field != "amount" {
		t.Fatalf("unexpected response %d %s", rec.Code, rec.Body.String())
	}
}

func TestErrorHandler_HeadHasNoBody(t *testing.T) {
	rec, _ := runErrorHandler(t, true, http.MethodHead, apperr.NotFound("x"))
	if rec.Code != http.StatusNotFound || rec.Body.Len() != 0 {
		t.Fatalf("unexpected response %d %q", rec.Code, rec.Body.String())
	}
}
