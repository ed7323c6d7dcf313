package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	httpadp "loan-backoffice/internal/adapter/http"
	"loan-backoffice/internal/adapter/notify"
	"loan-backoffice/internal/adapter/repository/mysql"
	sessionadp "loan-backoffice/internal/adapter/session"
	"loan-backoffice/internal/config"
	domainSession "loan-backoffice/internal/domain/session"
	"loan-backoffice/internal/infrastructure/cache"
	"loan-backoffice/internal/infrastructure/db"
	"loan-backoffice/internal/infrastructure/logger"
	"loan-backoffice/internal/infrastructure/scheduler"
	"loan-backoffice/internal/usecase/auth"
	"loan-backoffice/internal/usecase/borrower"
	"loan-backoffice/internal/usecase/dashboard"
	"loan-backoffice/internal/usecase/document"
	"loan-backoffice/internal/usecase/loan"
	"loan-backoffice/internal/usecase/user"
)

var version = "dev"

func main() {
	cfg := config.Load()
	log := logger.New(cfg.LogLevel)
	if err := cfg.Validate(); err != nil {
		log.WithError(err).Fatal("invalid config")
	}

	gdb, err := db.OpenGorm(cfg.DBDriver, cfg.DSN(), !cfg.Production())
	if err != nil {
		log.WithError(err).Fatal("open database")
	}
	if err := db.Migrate(gdb); err != nil {
		log.WithError(err).Fatal("migrate database")
	}

	rdb, err := cache.Open(context.Background(), cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		log.WithError(err).Fatal("connect redis")
	}
	defer rdb.Close()

	var sessions domainSession.Store
	if cfg.SessionStore == "memory" {
		sessions = sessionadp.NewMemoryStore()
	} else {
		sessions = sessionadp.NewRedisStore(rdb)
	}
	cookieDomain := ""
	if cfg.Production() {
		cookieDomain = cfg.CookieDomain
	}
	codec := sessionadp.NewCodec(cfg.SessionSecret, cfg.Production(), cookieDomain)

	users := mysql.NewUserRepository(gdb)
	borrowers := mysql.NewBorrowerRepository(gdb)
	loans := mysql.NewLoanRepository(gdb)
	payments := mysql.NewPaymentRepository(gdb)
	docs := mysql.NewDocumentRepository(gdb)
	tx := mysql.NewGormUoW(gdb)

	mailer := notify.NewMailer(notify.SMTPConfig{
		Host: cfg.SMTPHost, Port: cfg.SMTPPort, User: cfg.SMTPUser, Pass: cfg.SMTPPass, From: cfg.MailFrom,
	}, log)
	authUC, err := auth.NewUsecase(users, tx, sessions, mailer, log, auth.Config{
		BcryptCost: cfg.BcryptCost,
		SessionTTL: cfg.SessionTTL,
	})
	if err != nil {
		log.WithError(err).Fatal("init auth")
	}
	dash := dashboard.NewUsecase(loans, borrowers, mysql.NewAnalyticsRepository(gdb), log)

	e := httpadp.NewServer(httpadp.Deps{
		Auth:      authUC,
		Users:     user.NewUsecase(users, log, cfg.BcryptCost),
		Loans:     loan.NewUsecase(loans, borrowers, payments, tx, log),
		Borrowers: borrower.NewUsecase(borrowers, loans),
		Documents: document.NewUsecase(docs, borrowers, loans, log),
		Dashboard: dash,
		UserRepo:  users,
		Sessions:  sessions,
		Codec:     codec,
		Redis:     rdb,
		Log:       log,
	}, httpadp.ServerConfig{
		Production:      cfg.Production(),
		TrustProxy:      cfg.TrustProxy,
		Version:         version,
		SessionTTL:      cfg.SessionTTL,
		SessionSliding:  cfg.SessionSliding,
		RateLimitWindow: cfg.RateLimitWindow,
		LoginRateLimit:  cfg.LoginRateLimit,
		APIRateLimit:    cfg.APIRateLimit,
		IdempotencyTTL:  time.Duration(cfg.IdempTTLSecs) * time.Second,
		StaticDir:       cfg.StaticDir,
	})

	sched := scheduler.New(log)
	mustAdd(log, sched.Add("session-prune", cfg.SessionPruneSpec, func(ctx context.Context) error {
		n, err := sessions.Prune(ctx, time.Now())
		if n > 0 {
			log.WithField("removed", n).Info("pruned expired sessions")
		}
		return err
	}))
	mustAdd(log, sched.Add("loan-volume-snapshot", cfg.SnapshotSpec, dash.SnapshotLoanVolume))
	sched.Start()

	// seed this month's figure so the chart is not empty after a fresh deploy
	if err := dash.SnapshotLoanVolume(context.Background()); err != nil {
		log.WithError(err).Warn("initial loan volume snapshot")
	}

	go func() {
		addr := ":" + cfg.AppPort
		log.WithFields(logrus.Fields{"addr": addr, "env": cfg.AppEnv}).Info("listening")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("server stopped")
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("shutdown")
	}
	sched.Stop(shutdownCtx)
	log.Info("bye")
}

func mustAdd(log *logrus.Logger, err error) {
	if err != nil {
		log.WithError(err).Fatal("schedule job")
	}
}
