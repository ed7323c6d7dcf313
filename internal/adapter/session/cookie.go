package session

import (
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	domain "loan-backoffice/internal/domain/session"
)

const CookieName = "sessionId"

var ErrInvalidCookie = errors.New("invalid session cookie")

// Codec signs the session id into the cookie value. The id is the JWT "jti".
type Codec struct {
	secret []byte
	secure bool
	domain string
}

func NewCodec(secret string, secure bool, cookieDomain string) *Codec {
	return &Codec{secret: []byte(secret), secure: secure, domain: cookieDomain}
}

func (c *Codec) Encode(s *domain.Session) (string, error) {
	claims := jwt.RegisteredClaims{
		ID:        s.ID,
		IssuedAt:  jwt.NewNumericDate(s.CreatedAt),
		ExpiresAt: jwt.NewNumericDate(s.ExpiresAt),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
}

// Decode verifies signature and expiry and returns the session id.
func (c *Codec) Decode(value string) (string, error) {
	var claims jwt.RegisteredClaims
	tok, err := jwt.ParseWithClaims(value, &claims, func(t *jwt.Token) (any, error) {
		return c.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil || !tok.Valid || claims.ID == "" {
		return "", ErrInvalidCookie
	}
	return claims.ID, nil
}

func (c *Codec) Cookie(value string, expires time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/",
		Domain:   c.domain,
		Expires:  expires,
		MaxAge:   int(time.Until(expires).Seconds()),
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteStrictMode,
	}
}

func (c *Codec) Clear() *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		Domain:   c.domain,
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteStrictMode,
	}
}
