package middleware

import (
	"context"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"loan-backoffice/internal/apperr"
)

type RateLimitConfig struct {
	Redis   *redis.Client
	Name    string
	Limit   int
	Window  time.Duration
	Message string
	Log     *logrus.Logger
}

func rateKey(name, client string) string { return "rl:" + name + ":" + client }

// hit counts one request in the client's window. The window opens on the first hit
// and resets when the key expires.
func hit(ctx context.Context, rdb *redis.Client, key string, window time.Duration) (int64, time.Duration, error) {
	n, err := rdb.Incr(ctx, key).Result()
	if err != nil {
		return 0, 0, err
	}
	if n == 1 {
		if err := rdb.PExpire(ctx, key, window).Err(); err != nil {
			return 0, 0, err
		}
		return n, window, nil
	}
	ttl, err := rdb.PTTL(ctx, key).Result()
	if err != nil {
		return 0, 0, err
	}
	if ttl < 0 {
		// counter lost its expiry; restart the window
		if err := rdb.PExpire(ctx, key, window).Err(); err != nil {
			return 0, 0, err
		}
		ttl = window
	}
	return n, ttl, nil
}

func ceilSeconds(d time.Duration) int64 {
	s := int64(d / time.Second)
	if d%time.Second != 0 {
		s++
	}
	return s
}

// RateLimit is a fixed-window limiter keyed by client address. Store errors let the request through.
func RateLimit(cfg RateLimitConfig) echo.MiddlewareFunc {
	if cfg.Message == "" {
		cfg.Message = "Too many requests, please try again later"
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx, cancel := context.WithTimeout(c.Request().Context(), time.Second)
			defer cancel()

			n, ttl, err := hit(ctx, cfg.Redis, rateKey(cfg.Name, c.RealIP()), cfg.Window)
			if err != nil {
				cfg.Log.WithError(err).WithField("limiter", cfg.Name).Warn("rate limit store unavailable")
				return next(c)
			}

			remaining := int64(cfg.Limit) - n
			if remaining < 0 {
				remaining = 0
			}
			reset := ceilSeconds(ttl)
			h := c.Response().Header()
			h.Set("RateLimit-Limit", strconv.Itoa(cfg.Limit))
			h.Set("RateLimit-Remaining", strconv.FormatInt(remaining, 10))
			h.Set("RateLimit-Reset", strconv.FormatInt(reset, 10))

			if n > int64(cfg.Limit) {
				h.Set("Retry-After", strconv.FormatInt(reset, 10))
				return apperr.New(apperr.KindTooManyRequests, cfg.Message)
			}
			return next(c)
		}
	}
}
