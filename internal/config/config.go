// Package config loads runtime settings from the environment and an optional .env file.
package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/TraderofBozz/Anubis-Bot/internal/enrichment"
	"github.com/TraderofBozz/Anubis-Bot/internal/ingestion"
)

// Defaults applied when the matching variable is unset or malformed.
const (
	DefaultSolanaRPCURL = "https://api.mainnet-beta.solana.com"
	DefaultKafkaTopic   = "anubis.wallet_scored"
	DefaultPlatforms    = "pump_fun"
)

// Config holds application configuration.
type Config struct {
	SolanaRPCURL string

	// Storage. Empty DSNs select the in-memory stores.
	PostgresDSN   string
	ClickhouseDSN string

	// Price cache. Empty RedisAddr disables caching.
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	PriceCacheTTL time.Duration
	PriceAPIURL   string

	// Kafka. No brokers disables publishing.
	KafkaBrokers []string
	KafkaTopic   string

	Scan   ScanConfig
	Enrich EnrichConfig

	WeightsPath string
	MetricsAddr string
}

// ScanConfig holds scanner and pipeline defaults.
type ScanConfig struct {
	DaysBack       int
	PageSize       int
	Platforms      string // comma-separated platform tags
	PageDelay      time.Duration
	MaxPageRetries int
}

// EnrichConfig holds price lookup pacing.
type EnrichConfig struct {
	Delay time.Duration
}

// LoadFromEnv reads .env (if present) and then the process environment.
// Variables already set in the environment win over .env entries.
func LoadFromEnv(logger *log.Logger, files ...string) *Config {
	if logger == nil {
		logger = log.Default()
	}
	if err := godotenv.Load(files...); err != nil {
		logger.Println("No .env file found, using environment variables")
	}

	return &Config{
		SolanaRPCURL: getEnvOrDefault("SOLANA_RPC_URL", DefaultSolanaRPCURL),

		PostgresDSN:   os.Getenv("POSTGRES_DSN"),
		ClickhouseDSN: os.Getenv("CLICKHOUSE_DSN"),

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       getEnvInt("REDIS_DB", 0),
		PriceCacheTTL: getEnvDuration("PRICE_CACHE_TTL", 10*time.Minute),
		PriceAPIURL:   getEnvOrDefault("PRICE_API_URL", enrichment.DefaultJupiterURL),

		KafkaBrokers: splitCSV(os.Getenv("KAFKA_BROKERS")),
		KafkaTopic:   getEnvOrDefault("KAFKA_TOPIC", DefaultKafkaTopic),

		Scan: ScanConfig{
			DaysBack:       getEnvInt("SCAN_DAYS_BACK", 7),
			PageSize:       getEnvInt("SCAN_PAGE_SIZE", ingestion.DefaultPageSize),
			Platforms:      getEnvOrDefault("SCAN_PLATFORMS", DefaultPlatforms),
			PageDelay:      getEnvMillis("SCAN_PAGE_DELAY_MS", ingestion.DefaultPageDelay),
			MaxPageRetries: getEnvInt("SCAN_MAX_PAGE_RETRIES", ingestion.DefaultMaxPageRetries),
		},
		Enrich: EnrichConfig{
			Delay: getEnvMillis("ENRICH_DELAY_MS", enrichment.DefaultLookupDelay),
		},

		WeightsPath: os.Getenv("SCORING_WEIGHTS"),
		MetricsAddr: os.Getenv("METRICS_ADDR"),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if v, err := strconv.Atoi(value); err == nil {
			return v
		}
	}
	return defaultValue
}

func getEnvMillis(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if v, err := strconv.Atoi(value); err == nil && v >= 0 {
			return time.Duration(v) * time.Millisecond
		}
	}
	return defaultValue
}

// getEnvDuration accepts Go duration strings ("90s") or plain seconds.
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(value); err == nil {
		return time.Duration(secs) * time.Second
	}
	return defaultValue
}

func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
