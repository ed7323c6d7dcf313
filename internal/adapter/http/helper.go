package http

import (
	"errors"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"loan-backoffice/internal/adapter/middleware"
	"loan-backoffice/internal/apperr"
)

const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100
)

var (
	errInvalidBody = apperr.Validation("Invalid request body")
	errInvalidID   = apperr.Validation("Invalid id")
)

// Envelope is the wrapper used by list endpoints.
type Envelope struct {
	Success    bool        `json:"success"`
	Data       any         `json:"data"`
	Message    string      `json:"message,omitempty"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

type pageQuery struct {
	Page  int
	Limit int
	// Set is true when the client asked for a page.
	Set bool
}

func (p pageQuery) Offset() int { return (p.Page - 1) * p.Limit }

func (p pageQuery) Pagination(total int64) *Pagination {
	return &Pagination{
		Page:       p.Page,
		Limit:      p.Limit,
		Total:      total,
		TotalPages: int(math.Ceil(float64(total) / float64(p.Limit))),
	}
}

// parsePage reads page and limit. Missing values fall back to page 1 and 10 per page;
// limit is capped at 100.
func parsePage(c echo.Context) (pageQuery, error) {
	q := pageQuery{Page: defaultPage, Limit: defaultLimit}
	if v := c.QueryParam("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return q, apperr.InvalidFields([]FieldError{{Field: "page", Message: "must be a positive integer"}})
		}
		q.Page, q.Set = n, true
	}
	if v := c.QueryParam("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return q, apperr.InvalidFields([]FieldError{{Field: "limit", Message: "must be a positive integer"}})
		}
		q.Limit, q.Set = min(n, maxLimit), true
	}
	return q, nil
}

// bind decodes the body and runs the registered validator.
func bind(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		var he *echo.HTTPError
		if errors.As(err, &he) && he.Code == http.StatusUnsupportedMediaType {
			return err
		}
		return errInvalidBody
	}
	return c.Validate(req)
}

func paramID(c echo.Context, name string) (uint64, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, errInvalidID
	}
	return id, nil
}

// queryDate parses an optional date filter. A bare date used as an upper bound
// covers the whole day.
func queryDate(c echo.Context, name string, upper bool) (time.Time, error) {
	v := c.QueryParam(name)
	if v == "" {
		return time.Time{}, nil
	}
	t, err := parseDate(v)
	if err != nil {
		return time.Time{}, apperr.InvalidFields([]FieldError{{Field: name, Message: "must be a date (YYYY-MM-DD) or RFC3339 timestamp"}})
	}
	if upper && len(v) == len(dateLayout) {
		t = t.AddDate(0, 0, 1)
	}
	return t.UTC(), nil
}

// actorID is the id of the signed-in user. Routes reaching it sit behind RequireAuth or RequireRole.
func actorID(c echo.Context) uint64 {
	if u, ok := middleware.CurrentUser(c); ok {
		return u.ID
	}
	if s, ok := middleware.CurrentSession(c); ok {
		return s.UserID
	}
	return 0
}
