package clickhouse

import (
	"context"
	"fmt"

	"github.com/TraderofBozz/Anubis-Bot/internal/domain"
	"github.com/TraderofBozz/Anubis-Bot/internal/storage"
)

// ScoreHistoryStore implements storage.ScoreHistoryStore using ClickHouse.
type ScoreHistoryStore struct {
	conn *Conn
}

// NewScoreHistoryStore creates a new ScoreHistoryStore.
func NewScoreHistoryStore(conn *Conn) *ScoreHistoryStore {
	return &ScoreHistoryStore{conn: conn}
}

// Compile-time interface check.
var _ storage.ScoreHistoryStore = (*ScoreHistoryStore)(nil)

// Append writes one snapshot per profile in a single batch.
func (s *ScoreHistoryStore) Append(ctx context.Context, profiles []*domain.WalletProfile, scanID string) error {
	if scanID == "" {
		return storage.ErrInvalidInput
	}
	if len(profiles) == 0 {
		return nil
	}

	batch, err := s.conn.PrepareBatch(ctx, `
		INSERT INTO wallet_score_history (
			scan_id, wallet, anubis_score, success_score, earnings_score, scam_score,
			time_consistency, risk_rating, developer_tier,
			total_launches, successful_launches, velocity, scored_at
		)
	`)
	if err != nil {
		return fmt.Errorf("prepare batch: %w", err)
	}

	for _, p := range profiles {
		snap := domain.NewScoreSnapshot(scanID, p)
		err := batch.Append(
			snap.ScanID, snap.Wallet, snap.Score, snap.SuccessScore, snap.EarningsScore, snap.ScamScore,
			snap.TimeConsistency, string(snap.RiskRating), string(snap.DeveloperTier),
			uint32(snap.TotalLaunches), uint32(snap.SuccessfulLaunches), string(snap.Velocity), snap.ScoredAt,
		)
		if err != nil {
			return fmt.Errorf("append snapshot %s: %w", snap.Wallet, err)
		}
	}

	if err := batch.Send(); err != nil {
		return fmt.Errorf("send batch: %w", err)
	}
	return nil
}

// GetByWallet retrieves a wallet's snapshots ordered by scored_at ASC.
func (s *ScoreHistoryStore) GetByWallet(ctx context.Context, wallet string) ([]*domain.ScoreSnapshot, error) {
	rows, err := s.conn.Query(ctx, `
		SELECT scan_id, wallet, anubis_score, success_score, earnings_score, scam_score,
		       time_consistency, risk_rating, developer_tier,
		       total_launches, successful_launches, velocity, scored_at
		FROM wallet_score_history
		WHERE wallet = ?
		ORDER BY scored_at ASC, scan_id ASC
	`, wallet)
	if err != nil {
		return nil, fmt.Errorf("query score history: %w", err)
	}
	defer rows.Close()

	var result []*domain.ScoreSnapshot
	for rows.Next() {
		var (
			snap              domain.ScoreSnapshot
			risk, tier, vel   string
			total, successful uint32
		)
		if err := rows.Scan(
			&snap.ScanID, &snap.Wallet, &snap.Score, &snap.SuccessScore, &snap.EarningsScore, &snap.ScamScore,
			&snap.TimeConsistency, &risk, &tier,
			&total, &successful, &vel, &snap.ScoredAt,
		); err != nil {
			return nil, fmt.Errorf("scan score snapshot: %w", err)
		}
		snap.RiskRating = domain.RiskRating(risk)
		snap.DeveloperTier = domain.DeveloperTier(tier)
		snap.Velocity = domain.Velocity(vel)
		snap.TotalLaunches = int(total)
		snap.SuccessfulLaunches = int(successful)
		result = append(result, &snap)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate score history: %w", err)
	}
	return result, nil
}
