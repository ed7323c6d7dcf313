package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"loan-backoffice/internal/apperr"
)

const msgInternal = "Internal server error"

// ErrorHandler maps handler errors to JSON responses. Unexpected errors are
// logged in full; clients in production only see a generic message.
func ErrorHandler(log *logrus.Logger, production bool) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		status, body := http.StatusInternalServerError, ErrorResponse{Error: msgInternal}

		var he *echo.HTTPError
		var ae *apperr.Error
		switch {
		case errors.As(err, &he):
			status = he.Code
			if msg, ok := he.Message.(string); ok {
				body.Error = msg
			} else {
				body.Error = http.StatusText(he.Code)
			}
			if status >= http.StatusInternalServerError {
				logFailure(log, c, err)
			}
		case errors.As(err, &ae) && ae.Kind != apperr.KindInternal:
			status = ae.Kind.Status()
			body = ErrorResponse{Error: ae.Msg, Details: ae.Fields}
		default:
			logFailure(log, c, err)
			if !production {
				body.Error = err.Error()
			}
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(status)
		} else {
			err = c.JSON(status, body)
		}
		if err != nil {
			log.WithError(err).Warn("write error response")
		}
	}
}

func logFailure(log *logrus.Logger, c echo.Context, err error) {
	log.WithError(err).WithFields(logrus.Fields{
		"request_id": c.Response().Header().Get(echo.HeaderXRequestID),
		"method":     c.Request().Method,
		"path":       c.Request().URL.Path,
	}).Error("request failed")
}
