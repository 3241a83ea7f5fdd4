package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress      string
	DatabaseURI     string
	JWTSecret       string
	TokenTTL        time.Duration
	LogLevel        string
	ShutdownTimeout time.Duration

	TaxRateBPS       int64
	SeedCatalog      bool
	FeedPollInterval time.Duration

	FulfillmentPollInterval time.Duration
	FulfillmentBatch        int
	FulfillmentWorkers      int
	DownloadBaseURL         string
	DownloadSecret          string
	DownloadTTL             time.Duration

	AdminEmail    string
	AdminPassword string
}

const (
	defaultRunAddress              = ":8080"
	defaultJWTSecret               = "change-me-in-production"
	defaultTokenTTL                = 24 * time.Hour
	defaultLogLevel                = "info"
	defaultShutdownTimeout         = 10 * time.Second
	defaultFeedPollInterval        = 5 * time.Second
	defaultFulfillmentPollInterval = 3 * time.Second
	defaultFulfillmentBatch        = 32
	defaultFulfillmentWorkers      = 2
	defaultDownloadBaseURL         = "http://localhost:8080/api/downloads"
	defaultDownloadTTL             = 72 * time.Hour
)

// Load parses configuration from flags and environment variables.
func Load() (*Config, error) {
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:              getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:             getString(lookup, "DATABASE_URI", ""),
		JWTSecret:               getString(lookup, "JWT_SECRET", defaultJWTSecret),
		TokenTTL:                getDuration(lookup, "TOKEN_TTL", defaultTokenTTL),
		LogLevel:                getString(lookup, "LOG_LEVEL", defaultLogLevel),
		ShutdownTimeout:         getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
		TaxRateBPS:              int64(getInt(lookup, "TAX_RATE_BPS", 0)),
		SeedCatalog:             getBool(lookup, "SEED_CATALOG", true),
		FeedPollInterval:        getDuration(lookup, "FEED_POLL_INTERVAL", defaultFeedPollInterval),
		FulfillmentPollInterval: getDuration(lookup, "FULFILLMENT_POLL_INTERVAL", defaultFulfillmentPollInterval),
		FulfillmentBatch:        getInt(lookup, "FULFILLMENT_BATCH", defaultFulfillmentBatch),
		FulfillmentWorkers:      getInt(lookup, "FULFILLMENT_WORKERS", defaultFulfillmentWorkers),
		DownloadBaseURL:         getString(lookup, "DOWNLOAD_BASE_URL", defaultDownloadBaseURL),
		DownloadSecret:          getString(lookup, "DOWNLOAD_SECRET", ""),
		DownloadTTL:             getDuration(lookup, "DOWNLOAD_TTL", defaultDownloadTTL),
		AdminEmail:              getString(lookup, "ADMIN_EMAIL", ""),
		AdminPassword:           getString(lookup, "ADMIN_PASSWORD", ""),
	}

	fs := flag.NewFlagSet("beatstore", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		shutdownTimeoutStr = cfg.ShutdownTimeout.String()
		feedIntervalStr    = cfg.FeedPollInterval.String()
		fulfillIntervalStr = cfg.FulfillmentPollInterval.String()
		taxRate            = int(cfg.TaxRateBPS)
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.JWTSecret, "jwt-secret", cfg.JWTSecret, "Secret for signing auth tokens")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level: debug, info, warn, error")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")
	fs.IntVar(&taxRate, "tax-rate", taxRate, "Order tax rate in basis points")
	fs.BoolVar(&cfg.SeedCatalog, "seed", cfg.SeedCatalog, "Seed the demo catalog on startup")
	fs.StringVar(&feedIntervalStr, "feed-interval", feedIntervalStr, "Interval between realtime feed refreshes")
	fs.StringVar(&fulfillIntervalStr, "fulfillment-interval", fulfillIntervalStr, "Interval between fulfillment polls")
	fs.IntVar(&cfg.FulfillmentBatch, "fulfillment-batch", cfg.FulfillmentBatch, "Maximum orders per fulfillment batch")
	fs.IntVar(&cfg.FulfillmentWorkers, "fulfillment-workers", cfg.FulfillmentWorkers, "Number of concurrent fulfillment workers")
	fs.StringVar(&cfg.DownloadBaseURL, "download-url", cfg.DownloadBaseURL, "Base URL of signed download links")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if cfg.FeedPollInterval, err = time.ParseDuration(feedIntervalStr); err != nil {
		return nil, fmt.Errorf("invalid feed interval: %w", err)
	}

	if cfg.FulfillmentPollInterval, err = time.ParseDuration(fulfillIntervalStr); err != nil {
		return nil, fmt.Errorf("invalid fulfillment interval: %w", err)
	}

	if secretFile, ok := lookup("JWT_SECRET_FILE"); ok && secretFile != "" {
		content, err := os.ReadFile(secretFile)
		if err != nil {
			return nil, fmt.Errorf("read jwt secret file: %w", err)
		}
		cfg.JWTSecret = strings.TrimSpace(string(content))
	}

	cfg.TaxRateBPS = int64(taxRate)
	if cfg.TaxRateBPS < 0 {
		return nil, fmt.Errorf("tax rate must not be negative")
	}

	if cfg.DownloadSecret == "" {
		cfg.DownloadSecret = cfg.JWTSecret
	}

	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = defaultTokenTTL
	}

	if cfg.FulfillmentWorkers <= 0 {
		cfg.FulfillmentWorkers = defaultFulfillmentWorkers
	}

	if cfg.FulfillmentBatch <= 0 {
		cfg.FulfillmentBatch = defaultFulfillmentBatch
	}

	if cfg.FulfillmentPollInterval <= 0 {
		cfg.FulfillmentPollInterval = defaultFulfillmentPollInterval
	}

	if cfg.FeedPollInterval <= 0 {
		cfg.FeedPollInterval = defaultFeedPollInterval
	}

	if cfg.DownloadTTL <= 0 {
		cfg.DownloadTTL = defaultDownloadTTL
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}

	if (cfg.AdminEmail == "") != (cfg.AdminPassword == "") {
		return nil, fmt.Errorf("admin email and password must be provided together")
	}

	return cfg, nil
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

func getBool(lookup envLookup, key string, def bool) bool {
	if v, ok := lookup(key); ok && v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
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
