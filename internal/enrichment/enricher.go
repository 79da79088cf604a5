package enrichment

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/TraderofBozz/Anubis-Bot/internal/domain"
)

// DefaultLookupDelay is the pause after each price lookup.
const DefaultLookupDelay = 100 * time.Millisecond

// Options contains configuration for creating an Enricher.
type Options struct {
	Delay    time.Duration
	Metadata MetadataSource // optional
	Logger   *log.Logger
	Sleep    func(ctx context.Context, d time.Duration) error
	// Observe is called after every price lookup with its outcome.
	Observe func(outcome string)
}

// Lookup outcomes passed to Options.Observe.
const (
	OutcomePriced  = "priced"
	OutcomeNoPrice = "no_price"
	OutcomeError   = "error"
)

// EnrichStats counts what Enrich did.
type EnrichStats struct {
	Lookups   int
	Priced    int
	Failed    int
	Successes int // priced above domain.SuccessMarketCap
	Metadata  int
}

// Enricher attaches market caps (and optionally names) to launch events,
// one lookup at a time.
type Enricher struct {
	prices PriceSource
	opts   Options
}

// NewEnricher creates an Enricher.
func NewEnricher(prices PriceSource, opts Options) *Enricher {
	if opts.Delay == 0 {
		opts.Delay = DefaultLookupDelay
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Sleep == nil {
		opts.Sleep = sleepContext
	}
	return &Enricher{prices: prices, opts: opts}
}

// Enrich looks up every event that has a mint. A failed lookup marks the
// event with a zero market cap and is never fatal. Only context
// cancellation stops the pass early.
func (e *Enricher) Enrich(ctx context.Context, events []*domain.LaunchEvent) (EnrichStats, error) {
	var stats EnrichStats

	for _, ev := range events {
		if ev == nil || ev.Mint == "" {
			continue
		}
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		stats.Lookups++
		mcap, err := e.prices.MarketCap(ctx, ev.Mint)
		switch {
		case err == nil:
			ev.SetMarketCap(mcap)
			stats.Priced++
			e.observe(OutcomePriced)
		case errors.Is(err, ErrNoPrice):
			ev.SetMarketCap(0)
			stats.Failed++
			e.observe(OutcomeNoPrice)
		default:
			if ctx.Err() != nil {
				return stats, ctx.Err()
			}
			e.opts.Logger.Printf("Price lookup failed for %s: %v", ev.Mint, err)
			ev.SetMarketCap(0)
			stats.Failed++
			e.observe(OutcomeError)
		}
		if ev.IsSuccess {
			stats.Successes++
		}

		if e.opts.Metadata != nil && e.applyMetadata(ctx, ev) {
			stats.Metadata++
		}

		if err := e.opts.Sleep(ctx, e.opts.Delay); err != nil {
			return stats, err
		}
	}

	return stats, nil
}

func (e *Enricher) applyMetadata(ctx context.Context, ev *domain.LaunchEvent) bool {
	meta, err := e.opts.Metadata.Fetch(ctx, ev.Mint)
	if err != nil {
		e.opts.Logger.Printf("Metadata lookup failed for %s: %v", ev.Mint, err)
		return false
	}
	if meta == nil {
		return false
	}
	if meta.Name != "" {
		name := meta.Name
		ev.TokenName = &name
	}
	if meta.Symbol != "" {
		symbol := meta.Symbol
		ev.TokenSymbol = &symbol
	}
	return true
}

func (e *Enricher) observe(outcome string) {
	if e.opts.Observe != nil {
		e.opts.Observe(outcome)
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
