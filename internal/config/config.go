package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	SessionStrategyJWT  = "jwt"
	SessionStrategyHMAC = "hmac"

	IdentityProviderLocal  = "local"
	IdentityProviderRemote = "remote"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress        string
	DatabaseURI       string
	SessionSecret     string
	SessionStrategy   string
	SessionTTL        time.Duration
	IdentityProvider  string
	IdentityURL       string
	IdentityAPIKey    string
	AdminToken        string
	MinPasswordLength int
	ReferralAttempts  int
	LedgerRetryLimit  int
	TrendWindow       time.Duration
	ReconcileInterval time.Duration
	ReconcileBatch    int
	WorkerPoolSize    int
	ShutdownTimeout   time.Duration
	LogLevel          string
}

const (
	defaultRunAddress        = ":8080"
	defaultSessionSecret     = "change-me-in-production"
	defaultSessionTTL        = 24 * time.Hour
	defaultMinPasswordLength = 6
	defaultReferralAttempts  = 5
	defaultLedgerRetryLimit  = 5
	defaultTrendWindow       = 30 * 24 * time.Hour
	defaultReconcileInterval = time.Minute
	defaultReconcileBatch    = 32
	defaultWorkerPoolSize    = 4
	defaultShutdownTimeout   = 10 * time.Second
	defaultLogLevel          = "info"
	defaultEnvFile           = ".env"
)

// Load parses configuration from an optional .env file, environment variables and flags.
func Load() (*Config, error) {
	envFile := getString(os.LookupEnv, "ENV_FILE", defaultEnvFile)
	if err := loadEnvFile(envFile); err != nil {
		return nil, err
	}
	return load(os.Args[1:], os.LookupEnv)
}

// loadEnvFile populates unset variables from path. A missing file is not an error.
func loadEnvFile(path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("stat env file: %w", err)
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load env file: %w", err)
	}
	return nil
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:        getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:       getString(lookup, "DATABASE_URI", ""),
		SessionSecret:     getString(lookup, "SESSION_SECRET", defaultSessionSecret),
		SessionStrategy:   getString(lookup, "SESSION_STRATEGY", SessionStrategyJWT),
		SessionTTL:        getDuration(lookup, "SESSION_TTL", defaultSessionTTL),
		IdentityProvider:  getString(lookup, "IDENTITY_PROVIDER", IdentityProviderLocal),
		IdentityURL:       getString(lookup, "IDENTITY_URL", ""),
		IdentityAPIKey:    getString(lookup, "IDENTITY_API_KEY", ""),
		AdminToken:        getString(lookup, "ADMIN_TOKEN", ""),
		MinPasswordLength: getInt(lookup, "MIN_PASSWORD_LENGTH", defaultMinPasswordLength),
		ReferralAttempts:  getInt(lookup, "REFERRAL_ATTEMPTS", defaultReferralAttempts),
		LedgerRetryLimit:  getInt(lookup, "LEDGER_RETRY_LIMIT", defaultLedgerRetryLimit),
		TrendWindow:       getDuration(lookup, "TREND_WINDOW", defaultTrendWindow),
		ReconcileInterval: getDuration(lookup, "RECONCILE_INTERVAL", defaultReconcileInterval),
		ReconcileBatch:    getInt(lookup, "RECONCILE_BATCH", defaultReconcileBatch),
		WorkerPoolSize:    getInt(lookup, "WORKER_POOL_SIZE", defaultWorkerPoolSize),
		ShutdownTimeout:   getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
		LogLevel:          getString(lookup, "LOG_LEVEL", defaultLogLevel),
	}

	fs := flag.NewFlagSet("fundraiser", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		sessionTTLStr        = cfg.SessionTTL.String()
		trendWindowStr       = cfg.TrendWindow.String()
		reconcileIntervalStr = cfg.ReconcileInterval.String()
		shutdownTimeoutStr   = cfg.ShutdownTimeout.String()
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.SessionSecret, "session-secret", cfg.SessionSecret, "Secret for signing session tokens")
	fs.StringVar(&cfg.SessionStrategy, "session-strategy", cfg.SessionStrategy, "Session token format: jwt or hmac")
	fs.StringVar(&sessionTTLStr, "session-ttl", sessionTTLStr, "Session token lifetime")
	fs.StringVar(&cfg.IdentityProvider, "identity", cfg.IdentityProvider, "Identity provider: local or remote")
	fs.StringVar(&cfg.IdentityURL, "identity-url", cfg.IdentityURL, "Remote identity service base URL")
	fs.StringVar(&cfg.IdentityAPIKey, "identity-key", cfg.IdentityAPIKey, "API key sent to the remote identity service")
	fs.StringVar(&cfg.AdminToken, "admin-token", cfg.AdminToken, "Token guarding administrative endpoints")
	fs.IntVar(&cfg.MinPasswordLength, "min-password", cfg.MinPasswordLength, "Minimum password length")
	fs.IntVar(&cfg.ReferralAttempts, "referral-attempts", cfg.ReferralAttempts, "Referral code generation attempts")
	fs.IntVar(&cfg.LedgerRetryLimit, "ledger-retries", cfg.LedgerRetryLimit, "Retries for conflicting donation updates")
	fs.StringVar(&trendWindowStr, "trend-window", trendWindowStr, "Leaderboard trend window")
	fs.StringVar(&reconcileIntervalStr, "reconcile-interval", reconcileIntervalStr, "Interval between orphan profile scans")
	fs.IntVar(&cfg.ReconcileBatch, "reconcile-batch", cfg.ReconcileBatch, "Maximum identities per reconcile scan")
	fs.IntVar(&cfg.WorkerPoolSize, "worker-pool", cfg.WorkerPoolSize, "Number of concurrent reconcile workers")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level: debug, info, warn, error")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.SessionTTL, err = time.ParseDuration(sessionTTLStr); err != nil {
		return nil, fmt.Errorf("invalid session ttl: %w", err)
	}

	if cfg.TrendWindow, err = time.ParseDuration(trendWindowStr); err != nil {
		return nil, fmt.Errorf("invalid trend window: %w", err)
	}

	if cfg.ReconcileInterval, err = time.ParseDuration(reconcileIntervalStr); err != nil {
		return nil, fmt.Errorf("invalid reconcile interval: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if secretFile, ok := lookup("SESSION_SECRET_FILE"); ok && secretFile != "" {
		content, err := os.ReadFile(secretFile)
		if err != nil {
			return nil, fmt.Errorf("read session secret file: %w", err)
		}
		cfg.SessionSecret = strings.TrimSpace(string(content))
	}

	cfg.normalize()

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}

	switch cfg.SessionStrategy {
	case SessionStrategyJWT, SessionStrategyHMAC:
	default:
		return nil, fmt.Errorf("unknown session strategy %q", cfg.SessionStrategy)
	}

	switch cfg.IdentityProvider {
	case IdentityProviderLocal:
	case IdentityProviderRemote:
		if cfg.IdentityURL == "" {
			return nil, fmt.Errorf("identity url must be provided for remote identity provider")
		}
	default:
		return nil, fmt.Errorf("unknown identity provider %q", cfg.IdentityProvider)
	}

	return cfg, nil
}

func (cfg *Config) normalize() {
	cfg.SessionStrategy = strings.ToLower(strings.TrimSpace(cfg.SessionStrategy))
	cfg.IdentityProvider = strings.ToLower(strings.TrimSpace(cfg.IdentityProvider))

	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = defaultSessionTTL
	}
	if cfg.MinPasswordLength <= 0 {
		cfg.MinPasswordLength = defaultMinPasswordLength
	}
	if cfg.ReferralAttempts <= 0 {
		cfg.ReferralAttempts = defaultReferralAttempts
	}
	if cfg.LedgerRetryLimit <= 0 {
		cfg.LedgerRetryLimit = defaultLedgerRetryLimit
	}
	if cfg.TrendWindow <= 0 {
		cfg.TrendWindow = defaultTrendWindow
	}
	if cfg.ReconcileInterval <= 0 {
		cfg.ReconcileInterval = defaultReconcileInterval
	}
	if cfg.ReconcileBatch <= 0 {
		cfg.ReconcileBatch = defaultReconcileBatch
	}
	if cfg.WorkerPoolSize <= 0 {
		cfg.WorkerPoolSize = defaultWorkerPoolSize
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getInt(lookup envLookup, key string, def int) int {
	if v, ok := lookup(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
