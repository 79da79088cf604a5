package reporting

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/TraderofBozz/Anubis-Bot/internal/domain"
	"github.com/TraderofBozz/Anubis-Bot/internal/storage"
)

var (
	tierOrder = []domain.DeveloperTier{domain.TierElite, domain.TierPro, domain.TierAmateur, domain.TierScammer}
	riskOrder = []domain.RiskRating{domain.RiskLow, domain.RiskMedium, domain.RiskHigh, domain.RiskExtreme}
)

// Generator builds reports from a scan run and its profiles.
type Generator struct {
	now func() time.Time // Injectable clock for deterministic output
}

// NewGenerator creates a new report generator.
func NewGenerator() *Generator {
	return &Generator{
		now: func() time.Time { return time.Now().UTC() },
	}
}

// WithClock sets a custom clock function for deterministic output.
func (g *Generator) WithClock(now func() time.Time) *Generator {
	g.now = now
	return g
}

// Build summarizes profiles scored by run. run may be nil.
func (g *Generator) Build(run *domain.ScanRun, profiles []*domain.WalletProfile, successfulTokens int) *Report {
	r := &Report{
		GeneratedAt: g.now(),
		Counts: Counts{
			Wallets:          len(profiles),
			Profiles:         len(profiles),
			SuccessfulTokens: successfulTokens,
		},
	}
	if run != nil {
		r.ScanID = run.ScanID
		r.DaysBack = run.DaysBack
		r.Platforms = append([]string(nil), run.Platforms...)
		r.Status = string(run.Status)
		r.Error = run.Error
		r.Counts.Signatures = run.Signatures
		r.Counts.Launches = run.Launches
		r.Counts.Wallets = run.Wallets
		r.Counts.Profiles = run.Profiles
	}

	tiers := make(map[domain.DeveloperTier]int)
	risks := make(map[domain.RiskRating]int)
	for _, p := range profiles {
		tiers[p.Score.DeveloperTier]++
		risks[p.Score.RiskRating]++
	}
	for _, t := range tierOrder {
		r.TierDistribution = append(r.TierDistribution, Bucket{Label: string(t), Count: tiers[t]})
	}
	for _, rr := range riskOrder {
		r.RiskDistribution = append(r.RiskDistribution, Bucket{Label: string(rr), Count: risks[rr]})
	}

	r.TopWallets = topByScore(profiles, TopWalletsLimit)
	r.SerialSpammers = serialSpammers(profiles)
	r.Alerts = alerts(profiles)
	return r
}

// Generate loads every stored profile and builds a report for run.
func (g *Generator) Generate(ctx context.Context, run *domain.ScanRun, profiles storage.WalletProfileStore) (*Report, error) {
	all, err := profiles.List(ctx, 0)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	successful := 0
	for _, p := range all {
		successful += p.Metrics.SuccessfulLaunches
	}
	return g.Build(run, all, successful), nil
}

func topByScore(profiles []*domain.WalletProfile, limit int) []WalletRow {
	sorted := append([]*domain.WalletProfile(nil), profiles...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Score.Score != sorted[j].Score.Score {
			return sorted[i].Score.Score > sorted[j].Score.Score
		}
		return sorted[i].Wallet < sorted[j].Wallet
	})
	if len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return toRows(sorted)
}

func serialSpammers(profiles []*domain.WalletProfile) []WalletRow {
	var spam []*domain.WalletProfile
	for _, p := range profiles {
		if p.Metrics.Velocity == domain.VelocitySerialSpammer {
			spam = append(spam, p)
		}
	}
	sort.SliceStable(spam, func(i, j int) bool {
		if spam[i].Metrics.AvgDailyLaunches != spam[j].Metrics.AvgDailyLaunches {
			return spam[i].Metrics.AvgDailyLaunches > spam[j].Metrics.AvgDailyLaunches
		}
		return spam[i].Wallet < spam[j].Wallet
	})
	return toRows(spam)
}

func alerts(profiles []*domain.WalletProfile) []WalletRow {
	var hits []*domain.WalletProfile
	for _, p := range profiles {
		if p.Score.AutoAlert {
			hits = append(hits, p)
		}
	}
	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].Score.AlertPriority != hits[j].Score.AlertPriority {
			return hits[i].Score.AlertPriority < hits[j].Score.AlertPriority
		}
		if hits[i].Score.Score != hits[j].Score.Score {
			return hits[i].Score.Score > hits[j].Score.Score
		}
		return hits[i].Wallet < hits[j].Wallet
	})
	return toRows(hits)
}

func toRows(profiles []*domain.WalletProfile) []WalletRow {
	if len(profiles) == 0 {
		return nil
	}
	rows := make([]WalletRow, 0, len(profiles))
	for _, p := range profiles {
		rows = append(rows, WalletRow{
			Wallet:             p.Wallet,
			Score:              p.Score.Score,
			DeveloperTier:      string(p.Score.DeveloperTier),
			RiskRating:         string(p.Score.RiskRating),
			TotalLaunches:      p.Metrics.TotalLaunches,
			SuccessfulLaunches: p.Metrics.SuccessfulLaunches,
			SuccessRate:        p.Metrics.SuccessRate,
			AvgDailyLaunches:   p.Metrics.AvgDailyLaunches,
			BestMarketCap:      p.Metrics.BestMarketCap,
			AlertPriority:      p.Score.AlertPriority,
			Reasons:            append([]string(nil), p.AlertReasons...),
		})
	}
	return rows
}
