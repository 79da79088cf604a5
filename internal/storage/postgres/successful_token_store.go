package postgres

import (
	"context"
	"fmt"

	"github.com/TraderofBozz/Anubis-Bot/internal/domain"
	"github.com/TraderofBozz/Anubis-Bot/internal/storage"
)

// SuccessfulTokenStore implements storage.SuccessfulTokenStore using PostgreSQL.
type SuccessfulTokenStore struct {
	pool *Pool
}

// NewSuccessfulTokenStore creates a new SuccessfulTokenStore.
func NewSuccessfulTokenStore(pool *Pool) *SuccessfulTokenStore {
	return &SuccessfulTokenStore{pool: pool}
}

// Compile-time interface check.
var _ storage.SuccessfulTokenStore = (*SuccessfulTokenStore)(nil)

// Upsert archives a token. On conflict the peak market cap only grows and
// known names are never replaced by NULL.
func (s *SuccessfulTokenStore) Upsert(ctx context.Context, t *domain.SuccessfulToken) error {
	if t == nil || t.Mint == "" || t.Creator == "" {
		return storage.ErrInvalidInput
	}

	query := `
		INSERT INTO successful_tokens_archive (
			mint_address, creator_wallet, platform, token_name, token_symbol,
			launch_time, peak_mcap, seed_amount, estimated_gain_x, archived_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (mint_address) DO UPDATE SET
			peak_mcap = GREATEST(successful_tokens_archive.peak_mcap, EXCLUDED.peak_mcap),
			estimated_gain_x = GREATEST(successful_tokens_archive.estimated_gain_x, EXCLUDED.estimated_gain_x),
			token_name = COALESCE(EXCLUDED.token_name, successful_tokens_archive.token_name),
			token_symbol = COALESCE(EXCLUDED.token_symbol, successful_tokens_archive.token_symbol),
			archived_at = EXCLUDED.archived_at
	`

	_, err := s.pool.Exec(ctx, query,
		t.Mint,
		t.Creator,
		t.Platform,
		t.TokenName,
		t.TokenSymbol,
		t.LaunchTime,
		t.PeakMarketCap,
		t.SeedAmount,
		t.EstimatedGainX,
		t.ArchivedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert successful token %s: %w", t.Mint, err)
	}
	return nil
}

// GetByCreator retrieves archived tokens of a wallet, ordered by peak market cap DESC.
func (s *SuccessfulTokenStore) GetByCreator(ctx context.Context, creator string) ([]*domain.SuccessfulToken, error) {
	query := `
		SELECT mint_address, creator_wallet, platform, token_name, token_symbol,
		       launch_time, peak_mcap, seed_amount, estimated_gain_x, archived_at
		FROM successful_tokens_archive
		WHERE creator_wallet = $1
		ORDER BY peak_mcap DESC, mint_address ASC
	`

	rows, err := s.pool.Query(ctx, query, creator)
	if err != nil {
		return nil, fmt.Errorf("get successful tokens by creator: %w", err)
	}
	defer rows.Close()

	var result []*domain.SuccessfulToken
	for rows.Next() {
		var t domain.SuccessfulToken
		if err := rows.Scan(
			&t.Mint, &t.Creator, &t.Platform, &t.TokenName, &t.TokenSymbol,
			&t.LaunchTime, &t.PeakMarketCap, &t.SeedAmount, &t.EstimatedGainX, &t.ArchivedAt,
		); err != nil {
			return nil, fmt.Errorf("scan successful token: %w", err)
		}
		result = append(result, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate successful tokens: %w", err)
	}
	return result, nil
}
