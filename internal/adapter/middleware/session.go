package middleware

import (
	"errors"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	sessionadp "loan-backoffice/internal/adapter/session"
	"loan-backoffice/internal/apperr"
	"loan-backoffice/internal/domain/session"
	"loan-backoffice/internal/domain/user"
)

const (
	ctxSession = "session"
	ctxUser    = "user"
)

type SessionConfig struct {
	Store   session.Store
	Codec   *sessionadp.Codec
	TTL     time.Duration
	Sliding bool
	Log     *logrus.Logger
}

// LoadSession attaches the session named by the cookie, if any. It never rejects a request.
func LoadSession(cfg SessionConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ck, err := c.Cookie(sessionadp.CookieName)
			if err != nil || ck.Value == "" {
				return next(c)
			}
			id, err := cfg.Codec.Decode(ck.Value)
			if err != nil {
				return next(c)
			}
			ctx := c.Request().Context()
			s, err := cfg.Store.Get(ctx, id)
			if err != nil {
				if !errors.Is(err, session.ErrNotFound) {
					cfg.Log.WithError(err).Warn("session lookup failed")
				}
				return next(c)
			}

			if cfg.Sliding {
				err := cfg.Store.Touch(ctx, s, time.Now(), cfg.TTL)
				switch {
				case errors.Is(err, session.ErrNotFound):
					return next(c)
				case err != nil:
					cfg.Log.WithError(err).Warn("session renew failed")
				default:
					if v, err := cfg.Codec.Encode(s); err == nil {
						c.SetCookie(cfg.Codec.Cookie(v, s.ExpiresAt))
					}
				}
			}
			c.Set(ctxSession, s)
			return next(c)
		}
	}
}

func CurrentSession(c echo.Context) (*session.Session, bool) {
	s, ok := c.Get(ctxSession).(*session.Session)
	return s, ok && s != nil
}

// CurrentUser is set by RequireRole with the freshly loaded account.
func CurrentUser(c echo.Context) (*user.User, bool) {
	u, ok := c.Get(ctxUser).(*user.User)
	return u, ok && u != nil
}

func RequireAuth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if _, ok := CurrentSession(c); !ok {
				return apperr.ErrUnauthorized
			}
			return next(c)
		}
	}
}

// RequireRole reloads the account on every call, so role or status changes apply to the next request.
// The role cached in the session is never consulted.
func RequireRole(users user.Repository, roles ...user.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			s, ok := CurrentSession(c)
			if !ok {
				return apperr.ErrUnauthorized
			}
			u, err := users.GetByID(c.Request().Context(), s.UserID)
			if err != nil {
				if errors.Is(err, user.ErrNotFound) {
					return apperr.ErrForbidden
				}
				return err
			}
			if !u.Active() || !u.Role.In(roles) {
				return apperr.ErrForbidden
			}
			c.Set(ctxUser, u)
			return next(c)
		}
	}
}
