package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/TraderofBozz/Anubis-Bot/internal/storage"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the most recent scan run",
	RunE:  runStatus,
}

var walletCmd = &cobra.Command{
	Use:   "wallet <address>",
	Short: "Show a wallet's stored profile and score history",
	Args:  cobra.ExactArgs(1),
	RunE:  runWallet,
}

func runStatus(cmd *cobra.Command, _ []string) error {
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

	out := cmd.OutOrStdout()
	run, err := be.stores.ScanRuns.Latest(cmd.Context())
	if errors.Is(err, storage.ErrNotFound) {
		fmt.Fprintln(out, "No scans recorded yet. Run 'anubis scan' first.")
		return nil
	}
	if err != nil {
		return fmt.Errorf("latest scan: %w", err)
	}

	fmt.Fprintf(out, "Scan:       %s\n", run.ScanID)
	fmt.Fprintf(out, "Status:     %s\n", run.Status)
	fmt.Fprintf(out, "Started:    %s\n", time.Unix(run.StartedAt, 0).UTC().Format(time.RFC3339))
	if run.FinishedAt > 0 {
		fmt.Fprintf(out, "Finished:   %s\n", time.Unix(run.FinishedAt, 0).UTC().Format(time.RFC3339))
	}
	fmt.Fprintf(out, "Window:     %d days, %s\n", run.DaysBack, strings.Join(run.Platforms, ", "))
	fmt.Fprintf(out, "Signatures: %d\n", run.Signatures)
	fmt.Fprintf(out, "Launches:   %d\n", run.Launches)
	fmt.Fprintf(out, "Wallets:    %d\n", run.Wallets)
	fmt.Fprintf(out, "Profiles:   %d\n", run.Profiles)
	if run.Error != "" {
		fmt.Fprintf(out, "Error:      %s\n", run.Error)
	}
	return nil
}

func runWallet(cmd *cobra.Command, args []string) error {
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

	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	wallet := args[0]

	p, err := be.stores.Profiles.Get(ctx, wallet)
	if errors.Is(err, storage.ErrNotFound) {
		fmt.Fprintf(out, "Wallet %s has not been profiled.\n", wallet)
		return nil
	}
	if err != nil {
		return fmt.Errorf("get profile: %w", err)
	}

	m := p.Metrics
	fmt.Fprintf(out, "Wallet:    %s\n", p.Wallet)
	fmt.Fprintf(out, "Score:     %.2f (%s, risk %s, priority %d)\n", p.Score.Score, p.Score.DeveloperTier, p.Score.RiskRating, p.Score.AlertPriority)
	fmt.Fprintf(out, "Launches:  %d total, %d successful (%.1f%%)\n", m.TotalLaunches, m.SuccessfulLaunches, m.SuccessRate)
	fmt.Fprintf(out, "Velocity:  %.2f/day, %s\n", m.AvgDailyLaunches, m.Velocity)
	if len(p.AlertReasons) > 0 {
		fmt.Fprintf(out, "Alerts:    %s\n", strings.Join(p.AlertReasons, "; "))
	}

	tokens, err := be.stores.Successful.GetByCreator(ctx, wallet)
	if err != nil {
		return fmt.Errorf("successful tokens: %w", err)
	}
	for _, t := range tokens {
		fmt.Fprintf(out, "  success  %s  peak $%.0f\n", t.Mint, t.PeakMarketCap)
	}

	if be.stores.ScoreHistory == nil {
		return nil
	}
	history, err := be.stores.ScoreHistory.GetByWallet(ctx, wallet)
	if err != nil {
		return fmt.Errorf("score history: %w", err)
	}
	if len(history) > 0 {
		fmt.Fprintln(out, "History:")
	}
	for _, s := range history {
		fmt.Fprintf(out, "  %s  %6.2f  %s  %s\n", time.Unix(s.ScoredAt, 0).UTC().Format(time.RFC3339), s.Score, s.DeveloperTier, s.ScanID)
	}
	return nil
}
