package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/TraderofBozz/Anubis-Bot/internal/domain"
	"github.com/TraderofBozz/Anubis-Bot/internal/storage"
)

// LaunchStore implements storage.LaunchStore using PostgreSQL.
type LaunchStore struct {
	pool *Pool
}

// NewLaunchStore creates a new LaunchStore.
func NewLaunchStore(pool *Pool) *LaunchStore {
	return &LaunchStore{pool: pool}
}

// Compile-time interface check.
var _ storage.LaunchStore = (*LaunchStore)(nil)

const launchColumns = `
	mint_address, creator_wallet, platform, signature, slot,
	launch_time, launch_hour, launch_day, is_weekend, time_slot,
	seed_amount, market_cap, is_success, token_name, token_symbol
`

// Upsert inserts a launch; an existing mint is left untouched (ON CONFLICT DO NOTHING).
func (s *LaunchStore) Upsert(ctx context.Context, e *domain.LaunchEvent) (bool, error) {
	if !e.HasIdentity() {
		return false, storage.ErrInvalidInput
	}

	query := `
		INSERT INTO token_launches (` + launchColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		ON CONFLICT (mint_address) DO NOTHING
	`

	tag, err := s.pool.Exec(ctx, query,
		e.Mint,
		e.Creator,
		e.Platform,
		e.Signature,
		e.Slot,
		e.LaunchTime,
		e.LaunchHour,
		e.LaunchDay,
		e.IsWeekend,
		string(e.TimeSlot),
		e.SeedAmount,
		e.MarketCap,
		e.IsSuccess,
		e.TokenName,
		e.TokenSymbol,
	)
	if err != nil {
		return false, fmt.Errorf("upsert launch %s: %w", e.Mint, err)
	}
	return tag.RowsAffected() == 1, nil
}

// GetByMint retrieves a launch by mint. Returns ErrNotFound if not exists.
func (s *LaunchStore) GetByMint(ctx context.Context, mint string) (*domain.LaunchEvent, error) {
	query := `SELECT ` + launchColumns + ` FROM token_launches WHERE mint_address = $1`

	e, err := scanLaunch(s.pool.QueryRow(ctx, query, mint))
	if err != nil {
		if isNotFoundError(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get launch by mint: %w", err)
	}
	return e, nil
}

// GetByCreator retrieves all launches of a wallet, ordered by launch_time ASC.
func (s *LaunchStore) GetByCreator(ctx context.Context, creator string) ([]*domain.LaunchEvent, error) {
	query := `
		SELECT ` + launchColumns + `
		FROM token_launches
		WHERE creator_wallet = $1
		ORDER BY launch_time ASC, mint_address ASC
	`

	rows, err := s.pool.Query(ctx, query, creator)
	if err != nil {
		return nil, fmt.Errorf("get launches by creator: %w", err)
	}
	defer rows.Close()

	var result []*domain.LaunchEvent
	for rows.Next() {
		e, err := scanLaunch(rows)
		if err != nil {
			return nil, fmt.Errorf("scan launch: %w", err)
		}
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate launches: %w", err)
	}
	return result, nil
}

func scanLaunch(row pgx.Row) (*domain.LaunchEvent, error) {
	var (
		e    domain.LaunchEvent
		slot string
	)
	err := row.Scan(
		&e.Mint,
		&e.Creator,
		&e.Platform,
		&e.Signature,
		&e.Slot,
		&e.LaunchTime,
		&e.LaunchHour,
		&e.LaunchDay,
		&e.IsWeekend,
		&slot,
		&e.SeedAmount,
		&e.MarketCap,
		&e.IsSuccess,
		&e.TokenName,
		&e.TokenSymbol,
	)
	if err != nil {
		return nil, err
	}
	e.TimeSlot = domain.TimeSlot(slot)
	return &e, nil
}
