package auth

import (
	"github.com/shopspring/decimal"

	"loan-backoffice/internal/apperr"
	"loan-backoffice/internal/domain/session"
	"loan-backoffice/internal/domain/user"
)

var (
	// ErrInvalidCredentials is returned for unknown users and wrong passwords alike.
	ErrInvalidCredentials = apperr.New(apperr.KindUnauthorized, "Invalid credentials")
	// ErrAccountInactive is only reported after the password matched.
	ErrAccountInactive = apperr.New(apperr.KindForbidden, "Account is inactive")
)

type LoginInput struct {
	Username string
	Password string
	// PreviousSessionID is revoked on success so a pre-login id is never reused.
	PreviousSessionID string
}

type LoginResult struct {
	User    *user.User
	Session *session.Session
}

type RegisterInput struct {
	Username         string
	Password         string
	Email            string
	FullName         string
	PhoneNumber      string
	Address          string
	EmploymentStatus string
	MonthlyIncome    decimal.Decimal
}
