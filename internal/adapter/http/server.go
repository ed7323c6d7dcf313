package http

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"loan-backoffice/internal/adapter/middleware"
	sessionadp "loan-backoffice/internal/adapter/session"
	"loan-backoffice/internal/domain/session"
	"loan-backoffice/internal/domain/user"
	"loan-backoffice/internal/usecase/auth"
	ucborrower "loan-backoffice/internal/usecase/borrower"
	"loan-backoffice/internal/usecase/dashboard"
	ucdocument "loan-backoffice/internal/usecase/document"
	ucloan "loan-backoffice/internal/usecase/loan"
	ucuser "loan-backoffice/internal/usecase/user"
)

const loginLimitMessage = "Too many login attempts, please try again later"

type Deps struct {
	Auth      *auth.Usecase
	Users     *ucuser.Usecase
	Loans     *ucloan.Usecase
	Borrowers *ucborrower.Usecase
	Documents *ucdocument.Usecase
	Dashboard *dashboard.Usecase

	UserRepo user.Repository
	Sessions session.Store
	Codec    *sessionadp.Codec
	Redis    *redis.Client
	Log      *logrus.Logger
}

type ServerConfig struct {
	Production      bool
	TrustProxy      bool
	Version         string
	SessionTTL      time.Duration
	SessionSliding  bool
	RateLimitWindow time.Duration
	LoginRateLimit  int
	APIRateLimit    int
	IdempotencyTTL  time.Duration
	StaticDir       string
}

func isAPI(c echo.Context) bool {
	p := c.Request().URL.Path
	return p == "/api" || strings.HasPrefix(p, "/api/")
}

// NewServer builds the echo instance with every route registered.
func NewServer(d Deps, cfg ServerConfig) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = NewValidator()
	e.HTTPErrorHandler = ErrorHandler(d.Log, cfg.Production)
	if cfg.TrustProxy {
		e.IPExtractor = echo.ExtractIPFromXFFHeader()
	} else {
		e.IPExtractor = echo.ExtractIPDirect()
	}

	e.Use(echomw.RequestIDWithConfig(echomw.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogStatus:    true,
		LogURI:       true,
		LogMethod:    true,
		LogLatency:   true,
		LogRemoteIP:  true,
		LogRequestID: true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			d.Log.WithFields(logrus.Fields{
				"request_id": v.RequestID,
				"method":     v.Method,
				"uri":        v.URI,
				"status":     v.Status,
				"latency_ms": v.Latency.Milliseconds(),
				"remote_ip":  v.RemoteIP,
			}).Info("request")
			return nil
		},
	}))
	e.Use(echomw.Recover())
	if cfg.StaticDir != "" {
		e.Use(echomw.StaticWithConfig(echomw.StaticConfig{
			Root:    cfg.StaticDir,
			HTML5:   true,
			Skipper: isAPI,
		}))
	}

	register(e, d, cfg)
	return e
}

func register(e *echo.Echo, d Deps, cfg ServerConfig) {
	h := NewHandler(cfg.Version)
	authH := NewAuthHandler(d.Auth, d.Codec)
	userH := NewUserHandler(d.Users)
	loanH := NewLoanHandler(d.Loans)
	borrowerH := NewBorrowerHandler(d.Borrowers)
	docH := NewDocumentHandler(d.Documents)
	dashH := NewDashboardHandler(d.Dashboard)

	e.GET("/health", h.Health)

	api := e.Group("/api",
		middleware.RateLimit(middleware.RateLimitConfig{
			Redis: d.Redis, Name: "api", Limit: cfg.APIRateLimit, Window: cfg.RateLimitWindow, Log: d.Log,
		}),
		middleware.LoadSession(middleware.SessionConfig{
			Store: d.Sessions, Codec: d.Codec, TTL: cfg.SessionTTL, Sliding: cfg.SessionSliding, Log: d.Log,
		}),
	)
	authed := middleware.RequireAuth()
	idem := middleware.Idempotency(d.Redis, cfg.IdempotencyTTL, d.Log)
	role := func(roles ...user.Role) echo.MiddlewareFunc { return middleware.RequireRole(d.UserRepo, roles...) }
	loanManagers := role(user.LoanManagers...)
	userAdmins := role(user.UserAdmins...)
	staff := role(user.Staff...)

	// auth
	api.POST("/auth/login", authH.Login, middleware.RateLimit(middleware.RateLimitConfig{
		Redis: d.Redis, Name: "login", Limit: cfg.LoginRateLimit, Window: cfg.RateLimitWindow,
		Message: loginLimitMessage, Log: d.Log,
	}))
	api.POST("/auth/logout", authH.Logout)
	api.POST("/auth/register", authH.Register)
	api.GET("/auth/me", authH.Me, authed)

	// users
	api.GET("/users", userH.List, userAdmins)
	api.POST("/users", userH.Create, userAdmins)
	api.PATCH("/users/:id/role", userH.UpdateRole, userAdmins)
	api.PATCH("/users/:id/status", userH.UpdateStatus, userAdmins)

	// loans and payments
	api.GET("/loans", loanH.List, loanManagers)
	api.POST("/loans", loanH.Create, loanManagers, idem)
	api.GET("/loans/:id", loanH.Get, staff)
	api.PATCH("/loans/:id/status", loanH.UpdateStatus, loanManagers)
	api.POST("/loans/:id/payments", loanH.RecordPayment, staff, idem)
	api.GET("/loans/:id/payments", loanH.ListPayments, staff)
	api.PATCH("/payments/:id/status", loanH.UpdatePaymentStatus, staff)

	// customer portal
	borrowerOnly := role(user.RoleBorrower)
	api.GET("/customer/loans", loanH.CustomerLoans, borrowerOnly)
	api.POST("/customer/loans/apply", loanH.Apply, borrowerOnly, idem)

	// borrowers and documents
	api.GET("/borrowers", borrowerH.List, loanManagers)
	api.GET("/borrowers/:id", borrowerH.Get, loanManagers)
	api.GET("/borrowers/:id/documents", docH.ListByBorrower, staff)
	api.POST("/documents", docH.Upload, role(user.Everyone...))
	api.PATCH("/documents/:id/verification", docH.Verify, loanManagers)

	api.GET("/dashboard/stats", dashH.Stats, staff)

	v1 := api.Group("/v1")
	v1.GET("/status", h.V1Status)
	v1.GET("/loans", loanH.ListV1, loanManagers)
	v1.GET("/borrowers", borrowerH.ListV1, loanManagers)
	v1.GET("/analytics/dashboard", dashH.Analytics, userAdmins)

	api.Any("/*", h.APINotFound)
}
