package main

import (
	"context"
	"fmt"
	"log"

	"github.com/redis/go-redis/v9"

	"github.com/TraderofBozz/Anubis-Bot/internal/config"
	"github.com/TraderofBozz/Anubis-Bot/internal/enrichment"
	"github.com/TraderofBozz/Anubis-Bot/internal/storage"
	chstore "github.com/TraderofBozz/Anubis-Bot/internal/storage/clickhouse"
	"github.com/TraderofBozz/Anubis-Bot/internal/storage/memory"
	"github.com/TraderofBozz/Anubis-Bot/internal/storage/migrations"
	pgstore "github.com/TraderofBozz/Anubis-Bot/internal/storage/postgres"
)

// backends holds opened stores and the connections behind them.
type backends struct {
	stores  storage.Stores
	closers []func()
}

func (b *backends) Close() {
	for i := len(b.closers) - 1; i >= 0; i-- {
		b.closers[i]()
	}
}

// openBackends selects memory stores when useMemory is set or no Postgres
// DSN is configured. With migrate set, both schemas are applied first.
func openBackends(ctx context.Context, cfg *config.Config, useMemory, migrate bool, logger *log.Logger) (*backends, error) {
	if useMemory || cfg.PostgresDSN == "" {
		logger.Println("Using in-memory storage")
		return &backends{stores: memory.NewStores()}, nil
	}

	b := &backends{}
	pool, err := pgstore.NewPool(ctx, cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}
	b.closers = append(b.closers, pool.Close)

	if migrate {
		applied, err := migrations.RunPostgresMigrations(ctx, pool)
		if err != nil {
			b.Close()
			return nil, fmt.Errorf("postgres migrations: %w", err)
		}
		logger.Printf("Applied %d PostgreSQL migrations", len(applied))
	}
	b.stores = pgstore.NewStores(pool)
	logger.Println("Connected to PostgreSQL")

	if cfg.ClickhouseDSN == "" {
		return b, nil
	}

	var conn *chstore.Conn
	if migrate {
		conn, err = migrations.RunClickhouseMigrations(ctx, cfg.ClickhouseDSN)
	} else {
		conn, err = chstore.NewConn(ctx, cfg.ClickhouseDSN)
	}
	if err != nil {
		b.Close()
		return nil, fmt.Errorf("clickhouse: %w", err)
	}
	b.closers = append(b.closers, func() { conn.Close() })
	b.stores.ScoreHistory = chstore.NewScoreHistoryStore(conn)
	logger.Println("Connected to ClickHouse")

	return b, nil
}

// newPriceSource returns the Jupiter client, cached in Redis when an
// address is configured and reachable.
func newPriceSource(ctx context.Context, cfg *config.Config, logger *log.Logger) (enrichment.PriceSource, func()) {
	var prices enrichment.PriceSource = enrichment.NewJupiterClient(cfg.PriceAPIURL, nil)
	if cfg.RedisAddr == "" {
		return prices, func() {}
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Printf("Redis unavailable at %s, price cache disabled: %v", cfg.RedisAddr, err)
		rdb.Close()
		return prices, func() {}
	}
	logger.Printf("Caching prices in Redis at %s (ttl %s)", cfg.RedisAddr, cfg.PriceCacheTTL)
	return enrichment.NewCachedPriceSource(prices, rdb, cfg.PriceCacheTTL, logger), func() { rdb.Close() }
}
