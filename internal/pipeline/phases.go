package pipeline

import (
	"context"
	"errors"
	"time"

	"github.com/TraderofBozz/Anubis-Bot/internal/domain"
	"github.com/TraderofBozz/Anubis-Bot/internal/enrichment"
	"github.com/TraderofBozz/Anubis-Bot/internal/ingestion"
	"github.com/TraderofBozz/Anubis-Bot/internal/metrics"
	"github.com/TraderofBozz/Anubis-Bot/internal/publish"
	"github.com/TraderofBozz/Anubis-Bot/internal/scoring"
	"github.com/TraderofBozz/Anubis-Bot/internal/solana"
)

// PersistStats counts the outcome of the persist phase.
type PersistStats struct {
	LaunchesInserted int
	LaunchesExisting int
	Successful       int
	Profiles         int
	Snapshots        int
	Published        int
	Failures         int
}

// scan walks every platform with one scanner, so the dedup set spans all of them.
func (p *Pipeline) scan(ctx context.Context, ws *WorkingSet, res *Result, cutoff time.Time) error {
	scanner := ingestion.NewScanner(p.rpc, p.opts.Scanner)

	for _, platform := range p.opts.Platforms {
		launches := 0
		stats, err := scanner.Scan(ctx, platform.ProgramID, cutoff, func(tx *solana.Transaction) error {
			ev, ok := p.extractor.Extract(tx, platform)
			if !ok {
				return nil
			}
			launches++
			if !ws.Aggregator.Add(ev) {
				p.opts.Logger.Printf("Discarding launch %s on %s: missing mint or creator", tx.Signature, platform.Name)
			}
			return nil
		})

		if m := p.opts.Metrics; m != nil {
			m.PagesFetched.WithLabelValues(platform.Name).Add(float64(stats.Pages))
			m.SignaturesRead.WithLabelValues(platform.Name).Add(float64(stats.Signatures))
			m.LaunchesFound.WithLabelValues(platform.Name).Add(float64(launches))
			m.PageRetries.WithLabelValues(platform.Name).Add(float64(stats.PageRetries))
			m.TxFetchErrors.WithLabelValues(platform.Name).Add(float64(stats.FetchErrors))
		}
		res.Run.Signatures += stats.Signatures

		if err != nil {
			res.Scan = scanner.Stats()
			return err
		}
		p.opts.Logger.Printf("Scanned %s: %d pages, %d signatures, %d launches",
			platform.Name, stats.Pages, stats.Signatures, launches)
	}

	res.Scan = scanner.Stats()
	return nil
}

func (p *Pipeline) aggregate(ws *WorkingSet, res *Result) {
	ws.Histories = ws.Aggregator.Histories()
	for _, h := range ws.Histories {
		res.Run.Launches += len(h.Launches)
	}
	if m := p.opts.Metrics; m != nil {
		m.EventsDiscarded.Add(float64(ws.Aggregator.Discarded()))
	}
	p.opts.Logger.Printf("Aggregated %d launches into %d wallets (%d discarded)",
		res.Run.Launches, len(ws.Histories), ws.Aggregator.Discarded())
}

func (p *Pipeline) enrich(ctx context.Context, ws *WorkingSet, res *Result) error {
	enricher := enrichment.NewEnricher(p.prices, p.opts.Enricher)
	stats, err := enricher.Enrich(ctx, ws.Events())
	res.Enrich = stats
	if err != nil {
		return err
	}
	p.opts.Logger.Printf("Enriched %d launches: %d priced, %d failed, %d successful",
		stats.Lookups, stats.Priced, stats.Failed, stats.Successes)
	return nil
}

// analyze derives metrics per wallet. Wallets without launches are skipped.
func (p *Pipeline) analyze(ws *WorkingSet) {
	for _, h := range ws.Histories {
		m, err := metrics.Analyze(h)
		if err != nil {
			if !errors.Is(err, metrics.ErrEmptyHistory) {
				p.opts.Logger.Printf("Skipping wallet %s: %v", h.Wallet, err)
			}
			continue
		}
		scoring.ApplyEarnings(m, h.Launches)
		ws.Metrics[h.Wallet] = m
	}
}

func (p *Pipeline) score(ws *WorkingSet) {
	scoredAt := p.opts.Clock().Unix()
	for _, h := range ws.Histories {
		m, ok := ws.Metrics[h.Wallet]
		if !ok {
			continue
		}
		sc := p.engine.Score(m)
		ws.Scores[h.Wallet] = sc

		profile := &domain.WalletProfile{
			Wallet:   h.Wallet,
			Metrics:  *m,
			Score:    sc,
			ScoredAt: scoredAt,
		}
		profile.AlertReasons = scoring.AlertReasons(profile)
		ws.Profiles = append(ws.Profiles, profile)
	}
	if m := p.opts.Metrics; m != nil {
		m.WalletsProfiled.Add(float64(len(ws.Profiles)))
	}
}

// persist writes launches, the successful token archive, profiles, score
// history and alert events. Every failure is per row and never fatal.
func (p *Pipeline) persist(ctx context.Context, ws *WorkingSet, res *Result) error {
	stores := p.opts.Stores
	stats := &res.Persist
	archivedAt := p.opts.Clock().Unix()

	for _, ev := range ws.Events() {
		if err := ctx.Err(); err != nil {
			return err
		}
		inserted, err := stores.Launches.Upsert(ctx, ev)
		if err != nil {
			p.opts.Logger.Printf("Failed to store launch %s: %v", ev.Mint, err)
			p.recordWriteError("token_launches")
			stats.Failures++
			continue
		}
		if inserted {
			stats.LaunchesInserted++
		} else {
			stats.LaunchesExisting++
		}

		if !ev.IsSuccess {
			continue
		}
		mcap := ev.MarketCapOrZero()
		err = stores.Successful.Upsert(ctx, &domain.SuccessfulToken{
			Mint:           ev.Mint,
			Creator:        ev.Creator,
			Platform:       ev.Platform,
			TokenName:      ev.TokenName,
			TokenSymbol:    ev.TokenSymbol,
			LaunchTime:     ev.LaunchTime,
			PeakMarketCap:  mcap,
			SeedAmount:     ev.SeedAmount,
			EstimatedGainX: scoring.EarningsMultiple(mcap),
			ArchivedAt:     archivedAt,
		})
		if err != nil {
			p.opts.Logger.Printf("Failed to archive successful token %s: %v", ev.Mint, err)
			p.recordWriteError("successful_tokens_archive")
			stats.Failures++
			continue
		}
		stats.Successful++
	}

	var stored []*domain.WalletProfile
	for _, profile := range ws.Profiles {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := stores.Profiles.Upsert(ctx, profile); err != nil {
			p.opts.Logger.Printf("Failed to store profile %s: %v", profile.Wallet, err)
			p.recordWriteError("wallet_profiles")
			stats.Failures++
			continue
		}
		stored = append(stored, profile)
	}
	stats.Profiles = len(stored)

	if stores.ScoreHistory != nil && len(stored) > 0 {
		if err := stores.ScoreHistory.Append(ctx, stored, res.Run.ScanID); err != nil {
			p.opts.Logger.Printf("Failed to append score history: %v", err)
			p.recordWriteError("wallet_score_history")
			stats.Failures++
		} else {
			stats.Snapshots = len(stored)
		}
	}

	if p.opts.Sink != nil {
		for _, profile := range stored {
			if !profile.Score.AutoAlert {
				continue
			}
			event := publish.NewWalletScored(res.Run.ScanID, profile)
			if err := p.opts.Sink.Emit(ctx, publish.EventWalletScored, profile.Wallet, event); err != nil {
				p.opts.Logger.Printf("Failed to publish %s: %v", profile.Wallet, err)
				stats.Failures++
				continue
			}
			stats.Published++
		}
	}

	p.opts.Logger.Printf("Persisted %d new launches, %d successful tokens, %d profiles (%d failures)",
		stats.LaunchesInserted, stats.Successful, stats.Profiles, stats.Failures)
	return nil
}
