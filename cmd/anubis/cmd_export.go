package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/TraderofBozz/Anubis-Bot/internal/domain"
	"github.com/TraderofBozz/Anubis-Bot/internal/reporting"
)

var exportFlags struct {
	out   string
	limit int
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write stored wallet profiles to CSV",
	RunE:  runExport,
}

func init() {
	f := exportCmd.Flags()
	f.StringVarP(&exportFlags.out, "out", "o", "", "Output CSV path (required)")
	f.IntVar(&exportFlags.limit, "limit", 0, "Export only the top N wallets by score (0 = all)")

	_ = exportCmd.MarkFlagRequired("out")
}

func runExport(cmd *cobra.Command, _ []string) error {
	logger := newLogger()
	cfg := loadConfig(logger)
	if cfg.PostgresDSN == "" {
		return fmt.Errorf("POSTGRES_DSN is not set")
	}

	be, err := openBackends(cmd.Context(), cfg, false, false, logger)
	if err != nil {
		return err
	}
	defer be.Close()

	profiles, err := be.stores.Profiles.List(cmd.Context(), exportFlags.limit)
	if err != nil {
		return fmt.Errorf("list profiles: %w", err)
	}
	if err := writeCSVFile(exportFlags.out, profiles); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Exported %d profiles to %s\n", len(profiles), exportFlags.out)
	return nil
}

func writeCSVFile(path string, profiles []*domain.WalletProfile) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := reporting.WriteProfilesCSV(f, profiles); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}
