package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/TraderofBozz/Anubis-Bot/internal/storage/migrations"
	pgstore "github.com/TraderofBozz/Anubis-Bot/internal/storage/postgres"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply PostgreSQL and ClickHouse schema migrations",
	RunE:  runMigrate,
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	logger := newLogger()
	cfg := loadConfig(logger)
	if cfg.PostgresDSN == "" {
		return fmt.Errorf("POSTGRES_DSN is not set")
	}
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	pool, err := pgstore.NewPool(ctx, cfg.PostgresDSN)
	if err != nil {
		return err
	}
	defer pool.Close()

	applied, err := migrations.RunPostgresMigrations(ctx, pool)
	if err != nil {
		return err
	}
	for _, file := range applied {
		fmt.Fprintf(out, "postgres: %s\n", file)
	}

	if cfg.ClickhouseDSN == "" {
		fmt.Fprintln(out, "clickhouse: skipped (CLICKHOUSE_DSN not set)")
		return nil
	}
	conn, err := migrations.RunClickhouseMigrations(ctx, cfg.ClickhouseDSN)
	if err != nil {
		return err
	}
	defer conn.Close()
	fmt.Fprintln(out, "clickhouse: schema up to date")
	return nil
}
