package middleware

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLimitedEcho(t *testing.T, limit int, window time.Duration) (*miniredis.Miniredis, *echo.Echo) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	e := echo.New()
	e.HTTPErrorHandler = errorHandler
	e.IPExtractor = echo.ExtractIPDirect()
	e.POST("/login", func(c echo.Context) error { return c.NoContent(http.StatusOK) }, RateLimit(RateLimitConfig{
		Redis: rdb, Name: "login", Limit: limit, Window: window,
		Message: "Too many login attempts, please try again later", Log: quietLog(),
	}))
	return mr, e
}

func post(e *echo.Echo, remote string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	req.RemoteAddr = remote
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestRateLimit_SixthAttemptRejected(t *testing.T) {
	_, e := newLimitedEcho(t, 5, 15*time.Minute)

	for i := 1; i <= 5; i++ {
		rec := post(e, "10.0.0.1:1234")
		require.Equal(t, http.StatusOK, rec.Code, "attempt %d", i)
		assert.Equal(t, strconv.Itoa(5-i), rec.Header().Get("RateLimit-Remaining"))
	}

	rec := post(e, "10.0.0.1:1234")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Contains(t, rec.Body.String(), "Too many login attempts")
	retry, err := strconv.Atoi(rec.Header().Get("Retry-After"))
	require.NoError(t, err)
	assert.InDelta(t, 900, retry, 2)
	assert.Equal(t, "5", rec.Header().Get("RateLimit-Limit"))
	assert.Equal(t, "0", rec.Header().Get("RateLimit-Remaining"))
}

func TestRateLimit_PerClient(t *testing.T) {
	_, e := newLimitedEcho(t, 1, time.Minute)

	assert.Equal(t, http.StatusOK, post(e, "10.0.0.1:1").Code)
	assert.Equal(t, http.StatusTooManyRequests, post(e, "10.0.0.1:2").Code)
	assert.Equal(t, http.StatusOK, post(e, "10.0.0.2:1").Code)
}

func TestRateLimit_WindowResets(t *testing.T) {
	mr, e := newLimitedEcho(t, 1, time.Minute)

	assert.Equal(t, http.StatusOK, post(e, "10.0.0.3:1").Code)
	assert.Equal(t, http.StatusTooManyRequests, post(e, "10.0.0.3:1").Code)

	mr.FastForward(61 * time.Second)
	assert.Equal(t, http.StatusOK, post(e, "10.0.0.3:1").Code)
}

func TestRateLimit_FailsOpen(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
	e := echo.New()
	e.HTTPErrorHandler = errorHandler
	e.POST("/login", func(c echo.Context) error { return c.NoContent(http.StatusOK) }, RateLimit(RateLimitConfig{
		Redis: rdb, Name: "login", Limit: 1, Window: time.Minute, Log: quietLog(),
	}))

	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, post(e, "10.0.0.4:1").Code)
	}
}

func TestCeilSeconds(t *testing.T) {
	assert.Equal(t, int64(1), ceilSeconds(10*time.Millisecond))
	assert.Equal(t, int64(2), ceilSeconds(2*time.Second))
	assert.Equal(t, int64(0), ceilSeconds(0))
}
