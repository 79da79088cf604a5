package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/TraderofBozz/Anubis-Bot/internal/discovery"
	"github.com/TraderofBozz/Anubis-Bot/internal/enrichment"
	"github.com/TraderofBozz/Anubis-Bot/internal/ingestion"
	"github.com/TraderofBozz/Anubis-Bot/internal/observability"
	"github.com/TraderofBozz/Anubis-Bot/internal/pipeline"
	"github.com/TraderofBozz/Anubis-Bot/internal/publish"
	"github.com/TraderofBozz/Anubis-Bot/internal/reporting"
	"github.com/TraderofBozz/Anubis-Bot/internal/scoring"
	"github.com/TraderofBozz/Anubis-Bot/internal/solana"
)

var scanFlags struct {
	days        int
	pageSize    int
	platforms   string
	useMemory   bool
	migrate     bool
	weights     string
	metricsAddr string
	csvPath     string
	noMetadata  bool
}

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Run one scan-and-score pass over recent launches",
	RunE:  runScan,
}

func init() {
	f := scanCmd.Flags()
	f.IntVar(&scanFlags.days, "days", 0, "Look-back window in days (default from SCAN_DAYS_BACK)")
	f.IntVar(&scanFlags.pageSize, "page-size", 0, "Signatures per RPC page (default from SCAN_PAGE_SIZE)")
	f.StringVar(&scanFlags.platforms, "platforms", "", "Comma-separated platform tags (default from SCAN_PLATFORMS)")
	f.BoolVar(&scanFlags.useMemory, "use-memory", false, "Use in-memory storage instead of PostgreSQL")
	f.BoolVar(&scanFlags.migrate, "migrate", false, "Apply schema migrations before scanning")
	f.StringVar(&scanFlags.weights, "weights", "", "YAML scoring weights file (default from SCORING_WEIGHTS)")
	f.StringVar(&scanFlags.metricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address (default from METRICS_ADDR)")
	f.StringVar(&scanFlags.csvPath, "csv", "", "Also write scored profiles to this CSV file")
	f.BoolVar(&scanFlags.noMetadata, "no-metadata", false, "Skip Metaplex name/symbol lookups")
}

func runScan(cmd *cobra.Command, _ []string) error {
	logger := newLogger()
	cfg := loadConfig(logger)

	if scanFlags.days > 0 {
		cfg.Scan.DaysBack = scanFlags.days
	}
	if scanFlags.pageSize > 0 {
		cfg.Scan.PageSize = scanFlags.pageSize
	}
	if scanFlags.platforms != "" {
		cfg.Scan.Platforms = scanFlags.platforms
	}
	if scanFlags.weights != "" {
		cfg.WeightsPath = scanFlags.weights
	}
	if scanFlags.metricsAddr != "" {
		cfg.MetricsAddr = scanFlags.metricsAddr
	}

	platforms, err := discovery.ResolvePlatforms(cfg.Scan.Platforms)
	if err != nil {
		return err
	}

	var weights *scoring.Weights
	if cfg.WeightsPath != "" {
		w, err := scoring.LoadWeights(cfg.WeightsPath)
		if err != nil {
			return err
		}
		weights = &w
		logger.Printf("Loaded scoring weights from %s", cfg.WeightsPath)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	metrics := observability.NewMetrics(observability.DefaultNamespace)

	be, err := openBackends(ctx, cfg, scanFlags.useMemory, scanFlags.migrate, logger)
	if err != nil {
		return err
	}
	defer be.Close()

	prices, closePrices := newPriceSource(ctx, cfg, logger)
	defer closePrices()

	var sink publish.Sink
	if len(cfg.KafkaBrokers) > 0 {
		ks, err := publish.NewKafkaSink(cfg.KafkaBrokers, cfg.KafkaTopic, nil)
		if err != nil {
			return err
		}
		defer ks.Close()
		sink = ks
		logger.Printf("Publishing alerts to Kafka topic %s", cfg.KafkaTopic)
	}

	rpc := solana.NewHTTPClient(cfg.SolanaRPCURL, solana.WithObserver(metrics.ObserveRPC))

	enrichOpts := enrichment.Options{Delay: cfg.Enrich.Delay}
	if !scanFlags.noMetadata {
		enrichOpts.Metadata = solana.NewMetadataFetcher(rpc)
	}

	p, err := pipeline.NewPipeline(rpc, prices, pipeline.Options{
		DaysBack:  cfg.Scan.DaysBack,
		Platforms: platforms,
		Scanner: ingestion.Options{
			PageSize:       cfg.Scan.PageSize,
			PageDelay:      cfg.Scan.PageDelay,
			MaxPageRetries: cfg.Scan.MaxPageRetries,
		},
		Enricher: enrichOpts,
		Weights:  weights,
		Stores:   be.stores,
		Sink:     sink,
		Metrics:  metrics,
		Logger:   logger,
	})
	if err != nil {
		return err
	}

	var res *pipeline.Result
	var runErr error

	g, gctx := errgroup.WithContext(ctx)
	var srv *http.Server
	if cfg.MetricsAddr != "" {
		srv = &http.Server{Addr: cfg.MetricsAddr, Handler: metrics.Handler()}
		g.Go(func() error {
			logger.Printf("Starting metrics server on %s", cfg.MetricsAddr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("metrics server: %w", err)
			}
			return nil
		})
	}
	g.Go(func() error {
		res, runErr = p.Run(gctx)
		if srv != nil {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			srv.Shutdown(shutdownCtx)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}

	if res != nil && res.Run != nil {
		report := reporting.NewGenerator().Build(res.Run, res.Profiles, res.Persist.Successful)
		fmt.Fprint(cmd.OutOrStdout(), reporting.RenderMarkdown(report))
	}

	if runErr != nil {
		return runErr
	}

	if scanFlags.csvPath != "" {
		if err := writeCSVFile(scanFlags.csvPath, res.Profiles); err != nil {
			return err
		}
		logger.Printf("Wrote %d profiles to %s", len(res.Profiles), scanFlags.csvPath)
	}
	return nil
}
