package config

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"
	"time"
)

var quiet = log.New(io.Discard, "", 0)

var envKeys = []string{
	"SOLANA_RPC_URL", "POSTGRES_DSN", "CLICKHOUSE_DSN", "REDIS_ADDR", "REDIS_PASSWORD", "REDIS_DB",
	"PRICE_CACHE_TTL", "PRICE_API_URL", "KAFKA_BROKERS", "KAFKA_TOPIC",
	"SCAN_DAYS_BACK", "SCAN_PAGE_SIZE", "SCAN_PLATFORMS", "SCAN_PAGE_DELAY_MS", "SCAN_MAX_PAGE_RETRIES",
	"ENRICH_DELAY_MS", "SCORING_WEIGHTS", "METRICS_ADDR",
}

// clearEnv unsets every variable the loader reads and restores them afterwards.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range envKeys {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestLoadFromEnv_Defaults(t *testing.T) {
	clearEnv(t)

	cfg := LoadFromEnv(quiet, filepath.Join(t.TempDir(), "missing.env"))

	if cfg.SolanaRPCURL != DefaultSolanaRPCURL {
		t.Errorf("SolanaRPCURL = %q", cfg.SolanaRPCURL)
	}
	if cfg.PostgresDSN != "" || cfg.RedisAddr != "" {
		t.Errorf("storage should default to empty, got %q %q", cfg.PostgresDSN, cfg.RedisAddr)
	}
	if cfg.KafkaBrokers != nil {
		t.Errorf("KafkaBrokers = %v, want nil", cfg.KafkaBrokers)
	}
	if cfg.Scan.DaysBack != 7 || cfg.Scan.PageSize != 1000 || cfg.Scan.MaxPageRetries != 5 {
		t.Errorf("scan defaults = %+v", cfg.Scan)
	}
	if cfg.Scan.PageDelay != 500*time.Millisecond {
		t.Errorf("PageDelay = %v", cfg.Scan.PageDelay)
	}
	if cfg.Enrich.Delay != 100*time.Millisecond {
		t.Errorf("Enrich.Delay = %v", cfg.Enrich.Delay)
	}
	if cfg.PriceCacheTTL != 10*time.Minute {
		t.Errorf("PriceCacheTTL = %v", cfg.PriceCacheTTL)
	}
}

func TestLoadFromEnv_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("POSTGRES_DSN", "postgres://u:p@localhost:5432/anubis")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092,,")
	t.Setenv("SCAN_PAGE_DELAY_MS", "250")
	t.Setenv("SCAN_MAX_PAGE_RETRIES", "-1")
	t.Setenv("PRICE_CACHE_TTL", "90")
	t.Setenv("SCAN_PAGE_SIZE", "not-a-number")

	cfg := LoadFromEnv(quiet, filepath.Join(t.TempDir(), "missing.env"))

	if cfg.PostgresDSN != "postgres://u:p@localhost:5432/anubis" {
		t.Errorf("PostgresDSN = %q", cfg.PostgresDSN)
	}
	if len(cfg.KafkaBrokers) != 2 || cfg.KafkaBrokers[1] != "k2:9092" {
		t.Errorf("KafkaBrokers = %v", cfg.KafkaBrokers)
	}
	if cfg.Scan.PageDelay != 250*time.Millisecond {
		t.Errorf("PageDelay = %v", cfg.Scan.PageDelay)
	}
	if cfg.Scan.MaxPageRetries != -1 {
		t.Errorf("MaxPageRetries = %d", cfg.Scan.MaxPageRetries)
	}
	if cfg.PriceCacheTTL != 90*time.Second {
		t.Errorf("PriceCacheTTL = %v", cfg.PriceCacheTTL)
	}
	if cfg.Scan.PageSize != 1000 {
		t.Errorf("malformed PageSize should fall back, got %d", cfg.Scan.PageSize)
	}
}

func TestLoadFromEnv_DotEnvFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("KAFKA_TOPIC", "from-env")

	path := filepath.Join(t.TempDir(), ".env")
	content := "REDIS_ADDR=localhost:6379\nKAFKA_TOPIC=from-file\nSCAN_PLATFORMS=pump_fun,moonshot\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write .env: %v", err)
	}

	cfg := LoadFromEnv(quiet, path)

	if cfg.RedisAddr != "localhost:6379" {
		t.Errorf("RedisAddr = %q", cfg.RedisAddr)
	}
	if cfg.Scan.Platforms != "pump_fun,moonshot" {
		t.Errorf("Platforms = %q", cfg.Scan.Platforms)
	}
	if cfg.KafkaTopic != "from-env" {
		t.Errorf("environment should win over .env, got %q", cfg.KafkaTopic)
	}
}
