package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress         string
	DatabaseURI        string
	DatabaseMaxConns   int
	PharmacyAPIAddress string
	JWTSecret          string
	TokenStrategy      string
	LogLevel           string
	DefaultWarehouseID int64
	MedicinePageSize   int
	OrderSyncInterval  time.Duration
	WorkerPoolSize     int
	ShutdownTimeout    time.Duration
	SyncBatchSize      int
	KafkaBrokers       []string
	KafkaTopic         string
}

const (
	defaultRunAddress        = ":8080"
	defaultDatabaseMaxConns  = 10
	defaultJWTSecret         = "change-me-in-production"
	defaultTokenStrategy     = "hmac"
	defaultLogLevel          = "info"
	defaultWarehouseID       = 73
	defaultMedicinePageSize  = 10
	defaultOrderSyncInterval = 30 * time.Second
	defaultWorkerPoolSize    = 4
	defaultShutdownTimeout   = 10 * time.Second
	defaultSyncBatchSize     = 32
	defaultKafkaTopic        = "order-status"
	envFile                  = ".env"
)

// Load parses configuration from an optional .env file, environment variables and flags.
func Load() (*Config, error) {
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load %s: %w", envFile, err)
	}
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:         getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:        getString(lookup, "DATABASE_URI", ""),
		DatabaseMaxConns:   getInt(lookup, "DATABASE_MAX_CONNS", defaultDatabaseMaxConns),
		PharmacyAPIAddress: getString(lookup, "PHARMACY_API_ADDRESS", ""),
		JWTSecret:          getString(lookup, "JWT_SECRET", defaultJWTSecret),
		TokenStrategy:      getString(lookup, "TOKEN_STRATEGY", defaultTokenStrategy),
		LogLevel:           getString(lookup, "LOG_LEVEL", defaultLogLevel),
		DefaultWarehouseID: int64(getInt(lookup, "DEFAULT_WAREHOUSE_ID", defaultWarehouseID)),
		MedicinePageSize:   getInt(lookup, "MEDICINE_PAGE_SIZE", defaultMedicinePageSize),
		OrderSyncInterval:  getDuration(lookup, "ORDER_SYNC_INTERVAL", defaultOrderSyncInterval),
		WorkerPoolSize:     getInt(lookup, "WORKER_POOL_SIZE", defaultWorkerPoolSize),
		ShutdownTimeout:    getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
		SyncBatchSize:      getInt(lookup, "SYNC_BATCH_SIZE", defaultSyncBatchSize),
		KafkaTopic:         getString(lookup, "KAFKA_TOPIC", defaultKafkaTopic),
	}

	fs := flag.NewFlagSet("pharmadash", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		syncIntervalStr    = cfg.OrderSyncInterval.String()
		shutdownTimeoutStr = cfg.ShutdownTimeout.String()
		brokersStr         = getString(lookup, "KAFKA_BROKERS", "")
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.IntVar(&cfg.DatabaseMaxConns, "db-max-conns", cfg.DatabaseMaxConns, "Maximum PostgreSQL pool connections")
	fs.StringVar(&cfg.PharmacyAPIAddress, "r", cfg.PharmacyAPIAddress, "Pharmacy API base URL")
	fs.StringVar(&cfg.JWTSecret, "jwt-secret", cfg.JWTSecret, "Secret for signing auth tokens")
	fs.StringVar(&cfg.TokenStrategy, "token-strategy", cfg.TokenStrategy, "Auth token format: hmac or jwt")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level: debug, info, warn, error")
	fs.Int64Var(&cfg.DefaultWarehouseID, "warehouse", cfg.DefaultWarehouseID, "Warehouse used when a user has none selected")
	fs.IntVar(&cfg.MedicinePageSize, "page-size", cfg.MedicinePageSize, "Default medicines page size")
	fs.IntVar(&cfg.WorkerPoolSize, "worker-pool", cfg.WorkerPoolSize, "Number of concurrent sync workers")
	fs.StringVar(&syncIntervalStr, "sync-interval", syncIntervalStr, "Interval between order snapshot refreshes")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")
	fs.IntVar(&cfg.SyncBatchSize, "sync-batch", cfg.SyncBatchSize, "Maximum warehouses per refresh round")
	fs.StringVar(&brokersStr, "kafka-brokers", brokersStr, "Comma separated Kafka brokers for status events")
	fs.StringVar(&cfg.KafkaTopic, "kafka-topic", cfg.KafkaTopic, "Kafka topic for status events")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.OrderSyncInterval, err = time.ParseDuration(syncIntervalStr); err != nil {
		return nil, fmt.Errorf("invalid sync interval: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	cfg.KafkaBrokers = splitList(brokersStr)

	if secretFile, ok := lookup("JWT_SECRET_FILE"); ok && secretFile != "" {
		content, err := os.ReadFile(secretFile)
		if err != nil {
			return nil, fmt.Errorf("read jwt secret file: %w", err)
		}
		cfg.JWTSecret = strings.TrimSpace(string(content))
	}

	if cfg.WorkerPoolSize <= 0 {
		cfg.WorkerPoolSize = defaultWorkerPoolSize
	}

	if cfg.DatabaseMaxConns <= 0 {
		cfg.DatabaseMaxConns = defaultDatabaseMaxConns
	}

	if cfg.SyncBatchSize <= 0 {
		cfg.SyncBatchSize = defaultSyncBatchSize
	}

	if cfg.MedicinePageSize <= 0 {
		cfg.MedicinePageSize = defaultMedicinePageSize
	}

	if cfg.OrderSyncInterval <= 0 {
		cfg.OrderSyncInterval = defaultOrderSyncInterval
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.DefaultWarehouseID <= 0 {
		cfg.DefaultWarehouseID = defaultWarehouseID
	}

	switch cfg.TokenStrategy {
	case "hmac", "jwt":
	default:
		return nil, fmt.Errorf("unknown token strategy %q", cfg.TokenStrategy)
	}

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}

	if cfg.PharmacyAPIAddress == "" {
		return nil, fmt.Errorf("pharmacy api address must be provided")
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

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
