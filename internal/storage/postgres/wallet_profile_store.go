package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/TraderofBozz/Anubis-Bot/internal/domain"
	"github.com/TraderofBozz/Anubis-Bot/internal/storage"
)

// WalletProfileStore implements storage.WalletProfileStore using PostgreSQL.
type WalletProfileStore struct {
	pool *Pool
}

// NewWalletProfileStore creates a new WalletProfileStore.
func NewWalletProfileStore(pool *Pool) *WalletProfileStore {
	return &WalletProfileStore{pool: pool}
}

// Compile-time interface check.
var _ storage.WalletProfileStore = (*WalletProfileStore)(nil)

const profileColumns = `
	wallet_address,
	total_launches, successful_launches, success_rate,
	weekend_ratio, asia_session_ratio, eu_session_ratio, us_session_ratio, peak_degen_ratio,
	launch_velocity_type, avg_daily_launches, avg_interval_minutes, min_interval_minutes,
	hour_variance, peak_launch_hour,
	avg_seed_amount, seed_variance, best_market_cap, avg_market_cap,
	total_invested, estimated_earnings, estimated_profit, roi_percentage,
	primary_platform, first_seen, last_active,
	success_score, earnings_score, scam_score, time_consistency_score, anubis_score,
	risk_rating, developer_tier, alert_priority, auto_alert, alert_reasons,
	scored_at
`

// Upsert stores a profile, overwriting every metric and score column of an
// existing wallet (ON CONFLICT DO UPDATE).
func (s *WalletProfileStore) Upsert(ctx context.Context, p *domain.WalletProfile) error {
	if p == nil || p.Wallet == "" {
		return storage.ErrInvalidInput
	}

	query := `
		INSERT INTO wallet_profiles (` + profileColumns + `)
		VALUES (
			$1,
			$2, $3, $4,
			$5, $6, $7, $8, $9,
			$10, $11, $12, $13,
			$14, $15,
			$16, $17, $18, $19,
			$20, $21, $22, $23,
			$24, $25, $26,
			$27, $28, $29, $30, $31,
			$32, $33, $34, $35, $36,
			$37
		)
		ON CONFLICT (wallet_address) DO UPDATE SET
			total_launches = EXCLUDED.total_launches,
			successful_launches = EXCLUDED.successful_launches,
			success_rate = EXCLUDED.success_rate,
			weekend_ratio = EXCLUDED.weekend_ratio,
			asia_session_ratio = EXCLUDED.asia_session_ratio,
			eu_session_ratio = EXCLUDED.eu_session_ratio,
			us_session_ratio = EXCLUDED.us_session_ratio,
			peak_degen_ratio = EXCLUDED.peak_degen_ratio,
			launch_velocity_type = EXCLUDED.launch_velocity_type,
			avg_daily_launches = EXCLUDED.avg_daily_launches,
			avg_interval_minutes = EXCLUDED.avg_interval_minutes,
			min_interval_minutes = EXCLUDED.min_interval_minutes,
			hour_variance = EXCLUDED.hour_variance,
			peak_launch_hour = EXCLUDED.peak_launch_hour,
			avg_seed_amount = EXCLUDED.avg_seed_amount,
			seed_variance = EXCLUDED.seed_variance,
			best_market_cap = EXCLUDED.best_market_cap,
			avg_market_cap = EXCLUDED.avg_market_cap,
			total_invested = EXCLUDED.total_invested,
			estimated_earnings = EXCLUDED.estimated_earnings,
			estimated_profit = EXCLUDED.estimated_profit,
			roi_percentage = EXCLUDED.roi_percentage,
			primary_platform = EXCLUDED.primary_platform,
			first_seen = EXCLUDED.first_seen,
			last_active = EXCLUDED.last_active,
			success_score = EXCLUDED.success_score,
			earnings_score = EXCLUDED.earnings_score,
			scam_score = EXCLUDED.scam_score,
			time_consistency_score = EXCLUDED.time_consistency_score,
			anubis_score = EXCLUDED.anubis_score,
			risk_rating = EXCLUDED.risk_rating,
			developer_tier = EXCLUDED.developer_tier,
			alert_priority = EXCLUDED.alert_priority,
			auto_alert = EXCLUDED.auto_alert,
			alert_reasons = EXCLUDED.alert_reasons,
			scored_at = EXCLUDED.scored_at,
			updated_at = NOW()
	`

	m, sc := p.Metrics, p.Score
	reasons := p.AlertReasons
	if reasons == nil {
		reasons = []string{}
	}

	_, err := s.pool.Exec(ctx, query,
		p.Wallet,
		m.TotalLaunches, m.SuccessfulLaunches, m.SuccessRate,
		m.WeekendRatio, m.AsiaRatio, m.EURatio, m.USRatio, m.PeakDegenRatio,
		string(m.Velocity), m.AvgDailyLaunches, m.AvgIntervalMinutes, m.MinIntervalMinutes,
		m.HourVariance, m.PeakLaunchHour,
		m.AvgSeed, m.SeedVariance, m.BestMarketCap, m.AvgMarketCap,
		m.TotalInvested, m.EstimatedEarnings, m.EstimatedProfit, m.ROIPercentage,
		m.PrimaryPlatform, m.FirstSeen, m.LastActive,
		sc.SuccessScore, sc.EarningsScore, sc.ScamScore, sc.TimeConsistencyScore, sc.Score,
		string(sc.RiskRating), string(sc.DeveloperTier), sc.AlertPriority, sc.AutoAlert, reasons,
		p.ScoredAt,
	)
	if err != nil {
		return fmt.Errorf("upsert wallet profile %s: %w", p.Wallet, err)
	}
	return nil
}

// Get retrieves a profile by wallet. Returns ErrNotFound if not exists.
func (s *WalletProfileStore) Get(ctx context.Context, wallet string) (*domain.WalletProfile, error) {
	query := `SELECT ` + profileColumns + ` FROM wallet_profiles WHERE wallet_address = $1`

	p, err := scanProfile(s.pool.QueryRow(ctx, query, wallet))
	if err != nil {
		if isNotFoundError(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get wallet profile: %w", err)
	}
	return p, nil
}

// List returns profiles ordered by score DESC, wallet ASC. limit <= 0 returns all.
func (s *WalletProfileStore) List(ctx context.Context, limit int) ([]*domain.WalletProfile, error) {
	query := `
		SELECT ` + profileColumns + `
		FROM wallet_profiles
		ORDER BY anubis_score DESC, wallet_address ASC
	`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT $1`
		args = append(args, limit)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list wallet profiles: %w", err)
	}
	defer rows.Close()

	var result []*domain.WalletProfile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("scan wallet profile: %w", err)
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate wallet profiles: %w", err)
	}
	return result, nil
}

func scanProfile(row pgx.Row) (*domain.WalletProfile, error) {
	var (
		p                    domain.WalletProfile
		velocity, risk, tier string
	)
	m, sc := &p.Metrics, &p.Score

	err := row.Scan(
		&p.Wallet,
		&m.TotalLaunches, &m.SuccessfulLaunches, &m.SuccessRate,
		&m.WeekendRatio, &m.AsiaRatio, &m.EURatio, &m.USRatio, &m.PeakDegenRatio,
		&velocity, &m.AvgDailyLaunches, &m.AvgIntervalMinutes, &m.MinIntervalMinutes,
		&m.HourVariance, &m.PeakLaunchHour,
		&m.AvgSeed, &m.SeedVariance, &m.BestMarketCap, &m.AvgMarketCap,
		&m.TotalInvested, &m.EstimatedEarnings, &m.EstimatedProfit, &m.ROIPercentage,
		&m.PrimaryPlatform, &m.FirstSeen, &m.LastActive,
		&sc.SuccessScore, &sc.EarningsScore, &sc.ScamScore, &sc.TimeConsistencyScore, &sc.Score,
		&risk, &tier, &sc.AlertPriority, &sc.AutoAlert, &p.AlertReasons,
		&p.ScoredAt,
	)
	if err != nil {
		return nil, err
	}

	m.Wallet = p.Wallet
	m.Velocity = domain.Velocity(velocity)
	sc.RiskRating = domain.RiskRating(risk)
	sc.DeveloperTier = domain.DeveloperTier(tier)
	if len(p.AlertReasons) == 0 {
		p.AlertReasons = nil
	}
	return &p, nil
}
