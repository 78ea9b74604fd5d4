package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
// All environment variables are read here and nowhere else.
type Config struct {
	// Server
	Port string
	Env  string // development, staging, production

	// Database
	Database DatabaseConfig

	// Redis
	Redis RedisConfig

	// Market data provider
	Yahoo YahooConfig

	// Screening engine
	Engine EngineConfig

	// Trading parameters
	Trading TradingConfig

	// Logging
	LogLevel  string
	LogFormat string
}

// DatabaseConfig holds PostgreSQL configuration.
type DatabaseConfig struct {
	URL string

	// Connection pool
	MaxConns        int
	MinConns        int
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
}

// RedisConfig holds Redis configuration.
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	Enabled  bool
}

// YahooConfig holds Yahoo Finance client configuration.
type YahooConfig struct {
	BaseURL         string
	Timeout         time.Duration
	CallsPerMinute  int           // client-side rate limit
	SeriesCacheTTL  time.Duration // OHLCV series cache
	ProfileCacheTTL time.Duration // issuer profile cache
}

// EngineConfig holds evaluation-engine configuration.
type EngineConfig struct {
	Workers       int    // concurrent symbol evaluations
	DefaultPeriod string // history window requested from the data source
	DefaultRange  string // bar interval
}

// TradingConfig holds risk-management parameters for signal generation.
type TradingConfig struct {
	StopLossPct     float64 // fraction, e.g. 0.05
	TakeProfitPct   float64 // fraction, e.g. 0.15
	MinHoldingDays  int
	RebalanceDays   int
	MinPositionSize float64 // fraction of portfolio
	MaxPositionSize float64
	MaxPositions    int
	InitialCapital  float64
}

// Load reads configuration from environment variables.
// Only this function calls os.Getenv().
func Load() (*Config, error) {
	loadEnvFile()

	cfg := &Config{
		Port: getEnv("PORT", "8090"),
		Env:  getEnv("ENV", "development"),

		Database: DatabaseConfig{
			URL:             getEnv("DATABASE_URL", ""),
			MaxConns:        getEnvAsInt("DB_MAX_CONNS", 25),
			MinConns:        getEnvAsInt("DB_MIN_CONNS", 5),
			MaxConnLifetime: getEnvAsDuration("DB_MAX_CONN_LIFETIME", "1h"),
			MaxConnIdleTime: getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", "30m"),
		},

		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
			Enabled:  getEnvAsBool("REDIS_ENABLED", false),
		},

		Yahoo: YahooConfig{
			BaseURL:         getEnv("YAHOO_BASE_URL", "https://query1.finance.yahoo.com"),
			Timeout:         getEnvAsDuration("YAHOO_TIMEOUT", "30s"),
			CallsPerMinute:  getEnvAsInt("YAHOO_CALLS_PER_MINUTE", 60),
			SeriesCacheTTL:  getEnvAsDuration("YAHOO_SERIES_CACHE_TTL", "1h"),
			ProfileCacheTTL: getEnvAsDuration("YAHOO_PROFILE_CACHE_TTL", "24h"),
		},

		Engine: EngineConfig{
			Workers:       getEnvAsInt("ENGINE_WORKERS", 4),
			DefaultPeriod: getEnv("ENGINE_PERIOD", "1y"),
			DefaultRange:  getEnv("ENGINE_INTERVAL", "1d"),
		},

		Trading: TradingConfig{
			StopLossPct:     getEnvAsFloat("STOP_LOSS_PCT", 0.05),
			TakeProfitPct:   getEnvAsFloat("TAKE_PROFIT_PCT", 0.15),
			MinHoldingDays:  getEnvAsInt("MIN_HOLDING_DAYS", 5),
			RebalanceDays:   getEnvAsInt("REBALANCE_DAYS", 30),
			MinPositionSize: getEnvAsFloat("MIN_POSITION_SIZE", 0.02),
			MaxPositionSize: getEnvAsFloat("MAX_POSITION_SIZE", 0.10),
			MaxPositions:    getEnvAsInt("MAX_POSITIONS", 10),
			InitialCapital:  getEnvAsFloat("INITIAL_CAPITAL", 100_000),
		},

		LogLevel:  getEnv("LOG_LEVEL", "debug"),
		LogFormat: getEnv("LOG_FORMAT", "json"),
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// validate checks if configuration values are consistent.
func (c *Config) validate() error {
	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return fmt.Errorf("ENV must be one of: development, staging, production")
	}

	if c.Engine.Workers < 1 {
		return fmt.Errorf("ENGINE_WORKERS must be at least 1")
	}

	if c.Trading.StopLossPct <= 0 || c.Trading.TakeProfitPct <= 0 {
		return fmt.Errorf("STOP_LOSS_PCT and TAKE_PROFIT_PCT must be positive")
	}

	if c.Trading.MinPositionSize > c.Trading.MaxPositionSize {
		return fmt.Errorf("MIN_POSITION_SIZE must not exceed MAX_POSITION_SIZE")
	}

	return nil
}

// Helper functions (private, only used within this file)

// loadEnvFile tries to load .env from multiple locations
func loadEnvFile() {
	paths := []string{
		".env",
	}

	// Also try relative to executable
	if exe, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exe)
		paths = append(paths,
			filepath.Join(exeDir, ".env"),
			filepath.Join(exeDir, "..", ".env"),
		)
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			return
		}
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		valueStr = defaultValue
	}

	duration, err := time.ParseDuration(valueStr)
	if err != nil {
		duration, _ = time.ParseDuration(defaultValue)
	}

	return duration
}
