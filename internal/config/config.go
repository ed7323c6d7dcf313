package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"

	// DefaultSessionSecret is only acceptable outside production.
	DefaultSessionSecret = "dev-session-secret-change-me"
)

type Config struct {
	AppPort  string
	AppEnv   string
	LogLevel string

	DBDriver   string
	MySQLHost  string
	MySQLPort  string
	MySQLDB    string
	MySQLUser  string
	MySQLPass  string
	SQLitePath string

	RedisAddr string
	RedisDB   int

	SessionSecret    string
	SessionTTL       time.Duration
	SessionSliding   bool
	SessionStore     string
	SessionPruneSpec string
	CookieDomain     string

	BcryptCost int

	RateLimitWindow time.Duration
	LoginRateLimit  int
	APIRateLimit    int
	TrustProxy      bool

	IdempTTLSecs int

	StaticDir string

	SMTPHost string
	SMTPPort string
	SMTPUser string
	SMTPPass string
	MailFrom string

	SnapshotSpec string
}

func getenv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func getint(k string, d int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return d
}

func getbool(k string, d bool) bool {
	if v := os.Getenv(k); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return d
}

func getduration(k string, d time.Duration) time.Duration {
	if v := os.Getenv(k); v != "" {
		if n, err := time.ParseDuration(v); err == nil {
			return n
		}
	}
	return d
}

// Load reads a .env file when one exists, then the process environment.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		AppPort:  getenv("APP_PORT", "8080"),
		AppEnv:   getenv("APP_ENV", EnvDevelopment),
		LogLevel: getenv("LOG_LEVEL", "info"),

		DBDriver:   getenv("DB_DRIVER", "mysql"),
		MySQLHost:  getenv("MYSQL_HOST", "mysql"),
		MySQLPort:  getenv("MYSQL_PORT", "3306"),
		MySQLDB:    getenv("MYSQL_DB", "loans"),
		MySQLUser:  getenv("MYSQL_USER", "loans"),
		MySQLPass:  getenv("MYSQL_PASS", "loans"),
		SQLitePath: getenv("SQLITE_PATH", "loans.db"),

		RedisAddr: getenv("REDIS_ADDR", "redis:6379"),
		RedisDB:   getint("REDIS_DB", 0),

		SessionSecret:    getenv("SESSION_SECRET", DefaultSessionSecret),
		SessionTTL:       getduration("SESSION_TTL", 24*time.Hour),
		SessionSliding:   getbool("SESSION_SLIDING", false),
		SessionStore:     getenv("SESSION_STORE", "redis"),
		SessionPruneSpec: getenv("SESSION_PRUNE_SPEC", "@every 1h"),
		CookieDomain:     getenv("COOKIE_DOMAIN", ""),

		BcryptCost: getint("BCRYPT_COST", 12),

		RateLimitWindow: getduration("RATE_LIMIT_WINDOW", 15*time.Minute),
		LoginRateLimit:  getint("LOGIN_RATE_LIMIT", 5),
		APIRateLimit:    getint("API_RATE_LIMIT", 100),
		TrustProxy:      getbool("TRUST_PROXY", false),

		IdempTTLSecs: getint("IDEMPOTENCY_TTL_SECONDS", 300),

		StaticDir: getenv("STATIC_DIR", "dist/public"),

		SMTPHost: getenv("SMTP_HOST", ""),
		SMTPPort: getenv("SMTP_PORT", "587"),
		SMTPUser: getenv("SMTP_USER", ""),
		SMTPPass: getenv("SMTP_PASS", ""),
		MailFrom: getenv("MAIL_FROM", "no-reply@localhost"),

		SnapshotSpec: getenv("SNAPSHOT_SPEC", "@daily"),
	}
}

func (c *Config) Production() bool { return c.AppEnv == EnvProduction }

func (c *Config) Validate() error {
	switch c.DBDriver {
	case "mysql":
		if c.MySQLHost == "" || c.MySQLPort == "" || c.MySQLDB == "" || c.MySQLUser == "" {
			return errors.New("missing MySQL config (MYSQL_HOST/PORT/DB/USER)")
		}
		// ensure port is valid
		if _, err := net.LookupPort("tcp", c.MySQLPort); err != nil {
			return fmt.Errorf("invalid MYSQL_PORT %q: %w", c.MySQLPort, err)
		}
	case "sqlite":
		if c.SQLitePath == "" {
			return errors.New("missing SQLITE_PATH")
		}
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}
	if c.AppPort == "" {
		return errors.New("missing APP_PORT")
	}
	if c.AppEnv != EnvDevelopment && c.AppEnv != EnvProduction {
		return fmt.Errorf("invalid APP_ENV %q", c.AppEnv)
	}
	if c.BcryptCost < 10 || c.BcryptCost > 12 {
		return fmt.Errorf("BCRYPT_COST must be between 10 and 12, got %d", c.BcryptCost)
	}
	if c.SessionSecret == "" {
		return errors.New("missing SESSION_SECRET")
	}
	if c.Production() && c.SessionSecret == DefaultSessionSecret {
		return errors.New("SESSION_SECRET must be set in production")
	}
	if c.SessionTTL <= 0 {
		return errors.New("SESSION_TTL must be positive")
	}
	if c.SessionStore != "redis" && c.SessionStore != "memory" {
		return fmt.Errorf("invalid SESSION_STORE %q", c.SessionStore)
	}
	if c.LoginRateLimit <= 0 || c.APIRateLimit <= 0 || c.RateLimitWindow <= 0 {
		return errors.New("rate limits and window must be positive")
	}
	return nil
}

func (c *Config) mysqlAddr() string { return net.JoinHostPort(c.MySQLHost, c.MySQLPort) }

func (c *Config) MySQLDSN() string {
	// parseTime needed for DATETIME
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?parseTime=true&charset=utf8mb4,utf8",
		c.MySQLUser, c.MySQLPass, c.mysqlAddr(), c.MySQLDB)
}

// DSN returns the connection string for the configured driver.
func (c *Config) DSN() string {
	if c.DBDriver == "sqlite" {
		return c.SQLitePath
	}
	return c.MySQLDSN()
}
