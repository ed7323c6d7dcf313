package db

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"loan-backoffice/internal/domain/analytics"
	"loan-backoffice/internal/domain/borrower"
	"loan-backoffice/internal/domain/document"
	"loan-backoffice/internal/domain/loan"
	"loan-backoffice/internal/domain/payment"
	"loan-backoffice/internal/domain/user"
)

// OpenGorm opens the configured driver ("mysql" or "sqlite").
func OpenGorm(driver, dsn string, verbose bool) (*gorm.DB, error) {
	var dial gorm.Dialector
	switch driver {
	case "mysql":
		dial = mysql.Open(dsn)
	case "sqlite":
		dial = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("db: unsupported driver %q", driver)
	}
	level := logger.Warn
	if verbose {
		level = logger.Info
	}
	return openWithLevel(dial, level)
}

// OpenGormWithDialector is used by tests to inject a prepared connection.
func OpenGormWithDialector(dial gorm.Dialector) (*gorm.DB, error) {
	return openWithLevel(dial, logger.Silent)
}

func openWithLevel(dial gorm.Dialector, level logger.LogLevel) (*gorm.DB, error) {
	cfg := &gorm.Config{
		Logger:         logger.Default.LogMode(level),
		TranslateError: true,
	}
	db, err := gorm.Open(dial, cfg)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(30)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := sqlDB.Ping(); err != nil {
		return nil, err
	}
	logrus.WithField("dialect", dial.Name()).Info("gorm: connected")
	return db, nil
}

// Models lists every persisted entity in dependency order.
func Models() []any {
	return []any{
		&user.User{},
		&borrower.Borrower{},
		&loan.Loan{},
		&payment.Payment{},
		&document.Document{},
		&analytics.Snapshot{},
	}
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}
	return nil
}
