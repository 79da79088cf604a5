// Package pipeline drives one scan-and-score run through its six phases:
// scan, aggregate, enrich, analyze, score and persist.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/TraderofBozz/Anubis-Bot/internal/discovery"
	"github.com/TraderofBozz/Anubis-Bot/internal/domain"
	"github.com/TraderofBozz/Anubis-Bot/internal/enrichment"
	"github.com/TraderofBozz/Anubis-Bot/internal/idhash"
	"github.com/TraderofBozz/Anubis-Bot/internal/ingestion"
	"github.com/TraderofBozz/Anubis-Bot/internal/observability"
	"github.com/TraderofBozz/Anubis-Bot/internal/publish"
	"github.com/TraderofBozz/Anubis-Bot/internal/scoring"
	"github.com/TraderofBozz/Anubis-Bot/internal/solana"
	"github.com/TraderofBozz/Anubis-Bot/internal/storage"
)

// DefaultDaysBack is the look-back window when Options.DaysBack is zero.
const DefaultDaysBack = 7

// Phase names used in logs and metrics.
const (
	PhaseScan      = "scan"
	PhaseAggregate = "aggregate"
	PhaseEnrich    = "enrich"
	PhaseAnalyze   = "analyze"
	PhaseScore     = "score"
	PhasePersist   = "persist"
)

// ErrNoPlatforms is returned by Run when no platform is configured.
var ErrNoPlatforms = errors.New("no platforms to scan")

// Options contains configuration for creating a Pipeline.
type Options struct {
	DaysBack  int
	Platforms []discovery.Platform

	Scanner  ingestion.Options
	Enricher enrichment.Options
	Weights  *scoring.Weights // nil uses scoring.DefaultWeights

	Stores  storage.Stores
	Sink    publish.Sink           // optional, receives auto-alert profiles
	Metrics *observability.Metrics // optional

	Logger *log.Logger
	Clock  func() time.Time
}

// Result describes a finished run.
type Result struct {
	Run      *domain.ScanRun
	Profiles []*domain.WalletProfile
	Scan     ingestion.ScanStats
	Enrich   enrichment.EnrichStats
	Persist  PersistStats
}

// Pipeline runs the scan-and-score batch job.
type Pipeline struct {
	rpc       solana.RPCClient
	prices    enrichment.PriceSource
	extractor *discovery.Extractor
	engine    *scoring.Engine
	opts      Options
}

// NewPipeline creates a Pipeline reading transactions from rpc and market
// caps from prices.
func NewPipeline(rpc solana.RPCClient, prices enrichment.PriceSource, opts Options) (*Pipeline, error) {
	if opts.DaysBack == 0 {
		opts.DaysBack = DefaultDaysBack
	}
	if opts.DaysBack < 0 {
		return nil, fmt.Errorf("days back must be positive, got %d", opts.DaysBack)
	}
	if len(opts.Platforms) == 0 {
		return nil, ErrNoPlatforms
	}
	if opts.Stores.Launches == nil || opts.Stores.Profiles == nil || opts.Stores.Successful == nil {
		return nil, fmt.Errorf("launch, profile and successful token stores are required")
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Clock == nil {
		opts.Clock = func() time.Time { return time.Now().UTC() }
	}
	if opts.Scanner.Logger == nil {
		opts.Scanner.Logger = opts.Logger
	}
	if opts.Enricher.Logger == nil {
		opts.Enricher.Logger = opts.Logger
	}
	if opts.Metrics != nil && opts.Enricher.Observe == nil {
		opts.Enricher.Observe = opts.Metrics.ObserveEnrichment
	}

	weights := scoring.DefaultWeights()
	if opts.Weights != nil {
		weights = *opts.Weights
	}
	if err := weights.Validate(); err != nil {
		return nil, err
	}

	return &Pipeline{
		rpc:       rpc,
		prices:    prices,
		extractor: discovery.NewExtractor(),
		engine:    scoring.NewEngine(weights),
		opts:      opts,
	}, nil
}

// Run executes all phases in order. Row-level failures are logged and
// skipped; only scan aborts, context cancellation and invalid input fail
// the run. The scan run record is finished in both cases.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	started := p.opts.Clock()
	platforms := make([]string, 0, len(p.opts.Platforms))
	for _, pl := range p.opts.Platforms {
		platforms = append(platforms, pl.Name)
	}

	run := &domain.ScanRun{
		ScanID:    idhash.ScanID(started.Unix(), p.opts.DaysBack, platforms),
		StartedAt: started.Unix(),
		DaysBack:  p.opts.DaysBack,
		Platforms: platforms,
		Status:    domain.ScanRunning,
	}
	tracked := p.startRun(ctx, run)

	p.opts.Logger.Printf("Scan %s started: %d days back, platforms %v", run.ScanID, run.DaysBack, platforms)

	res := &Result{Run: run}
	ws := NewWorkingSet()
	err := p.runPhases(ctx, ws, res, started)

	run.FinishedAt = p.opts.Clock().Unix()
	run.Wallets = len(ws.Histories)
	run.Profiles = res.Persist.Profiles
	if err != nil {
		run.Status = domain.ScanFailed
		run.Error = err.Error()
	} else {
		run.Status = domain.ScanCompleted
	}
	if tracked {
		p.finishRun(run)
	}
	if p.opts.Metrics != nil {
		p.opts.Metrics.RecordRun(string(run.Status), time.Unix(run.FinishedAt, 0))
	}
	res.Profiles = ws.Profiles

	if err != nil {
		p.opts.Logger.Printf("Scan %s failed: %v", run.ScanID, err)
		return res, err
	}
	p.opts.Logger.Printf("Scan %s completed: %d signatures, %d launches, %d wallets, %d profiles",
		run.ScanID, run.Signatures, run.Launches, run.Wallets, run.Profiles)
	return res, nil
}

func (p *Pipeline) runPhases(ctx context.Context, ws *WorkingSet, res *Result, started time.Time) error {
	cutoff := started.Add(-time.Duration(p.opts.DaysBack) * 24 * time.Hour)

	steps := []struct {
		name string
		fn   func() error
	}{
		{PhaseScan, func() error { return p.scan(ctx, ws, res, cutoff) }},
		{PhaseAggregate, func() error { p.aggregate(ws, res); return nil }},
		{PhaseEnrich, func() error { return p.enrich(ctx, ws, res) }},
		{PhaseAnalyze, func() error { p.analyze(ws); return nil }},
		{PhaseScore, func() error { p.score(ws); return nil }},
		{PhasePersist, func() error { return p.persist(ctx, ws, res) }},
	}

	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return err
		}
		t0 := time.Now()
		err := step.fn()
		if p.opts.Metrics != nil {
			p.opts.Metrics.ObservePhase(step.name, time.Since(t0))
		}
		if err != nil {
			return fmt.Errorf("%s phase: %w", step.name, err)
		}
	}
	return nil
}

// startRun records the run as RUNNING. A failure is logged and the run
// continues untracked.
func (p *Pipeline) startRun(ctx context.Context, run *domain.ScanRun) bool {
	if p.opts.Stores.ScanRuns == nil {
		return false
	}
	if err := p.opts.Stores.ScanRuns.Start(ctx, run); err != nil {
		p.opts.Logger.Printf("Failed to record scan run %s: %v", run.ScanID, err)
		p.recordWriteError("scan_runs")
		return false
	}
	return true
}

// finishRun uses a fresh context so a cancelled run is still closed out.
func (p *Pipeline) finishRun(run *domain.ScanRun) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := p.opts.Stores.ScanRuns.Finish(ctx, run); err != nil {
		p.opts.Logger.Printf("Failed to finish scan run %s: %v", run.ScanID, err)
		p.recordWriteError("scan_runs")
	}
}

func (p *Pipeline) recordWriteError(table string) {
	if p.opts.Metrics != nil {
		p.opts.Metrics.RecordWriteError(table)
	}
}
