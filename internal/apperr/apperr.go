package apperr

import (
	"errors"
	"net/http"
)

type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindConflict
	KindTooManyRequests
)

// FieldError describes one rejected input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error carries a client-safe message and the kind used to pick the HTTP status.
type Error struct {
	Kind   Kind
	Msg    string
	Fields []FieldError
	Err    error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

func New(kind Kind, msg string) *Error { return &Error{Kind: kind, Msg: msg} }

func Validation(msg string) *Error { return New(KindValidation, msg) }

func InvalidFields(fields []FieldError) *Error {
	return &Error{Kind: KindValidation, Msg: "validation failed", Fields: fields}
}

func NotFound(msg string) *Error { return New(KindNotFound, msg) }

func Forbidden(msg string) *Error { return New(KindForbidden, msg) }

// Internal wraps an unexpected failure. The message never reaches clients in production.
func Internal(msg string, err error) *Error { return &Error{Kind: KindInternal, Msg: msg, Err: err} }

// Wrap passes *Error values through and turns anything else into Internal.
func Wrap(msg string, err error) error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return err
	}
	return Internal(msg, err)
}

// KindOf returns the kind of the first *Error in err's chain, KindInternal otherwise.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

func (k Kind) Status() int {
	switch k {
	case KindValidation:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindTooManyRequests:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

var (
	ErrUnauthorized = New(KindUnauthorized, "Unauthorized")
	ErrForbidden    = New(KindForbidden, "Forbidden")
)
