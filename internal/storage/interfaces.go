package storage

import (
	"context"

	"github.com/TraderofBozz/Anubis-Bot/internal/domain"
)

// LaunchStore provides access to token_launches storage.
type LaunchStore interface {
	// Upsert stores a launch keyed by mint. A mint that already exists is
	// left untouched and reported as inserted=false.
	// Returns ErrInvalidInput if the event has no mint or creator.
	Upsert(ctx context.Context, e *domain.LaunchEvent) (inserted bool, err error)

	// GetByMint retrieves a launch by mint. Returns ErrNotFound if not exists.
	GetByMint(ctx context.Context, mint string) (*domain.LaunchEvent, error)

	// GetByCreator retrieves all launches of a wallet, ordered by launch_time ASC.
	GetByCreator(ctx context.Context, creator string) ([]*domain.LaunchEvent, error)
}

// WalletProfileStore provides access to wallet_profiles storage.
type WalletProfileStore interface {
	// Upsert stores a profile keyed by wallet, overwriting metrics and
	// score fields of an existing row.
	Upsert(ctx context.Context, p *domain.WalletProfile) error

	// Get retrieves a profile by wallet. Returns ErrNotFound if not exists.
	Get(ctx context.Context, wallet string) (*domain.WalletProfile, error)

	// List returns profiles ordered by score DESC, wallet ASC.
	// limit <= 0 returns all profiles.
	List(ctx context.Context, limit int) ([]*domain.WalletProfile, error)
}

// SuccessfulTokenStore provides access to successful_tokens_archive storage.
type SuccessfulTokenStore interface {
	// Upsert archives a token keyed by mint. An existing row keeps the
	// higher of the stored and new peak market cap.
	Upsert(ctx context.Context, t *domain.SuccessfulToken) error

	// GetByCreator retrieves archived tokens of a wallet, ordered by peak market cap DESC.
	GetByCreator(ctx context.Context, creator string) ([]*domain.SuccessfulToken, error)
}

// ScoreHistoryStore provides access to the wallet_score_history archive.
// Append-only: every scan adds a snapshot per scored wallet.
type ScoreHistoryStore interface {
	// Append records one snapshot per profile under scanID.
	Append(ctx context.Context, profiles []*domain.WalletProfile, scanID string) error

	// GetByWallet retrieves a wallet's snapshots ordered by scored_at ASC.
	GetByWallet(ctx context.Context, wallet string) ([]*domain.ScoreSnapshot, error)
}

// ScanRunStore provides access to scan_runs storage.
type ScanRunStore interface {
	// Start records a new run. Returns ErrDuplicateKey if scan_id exists.
	Start(ctx context.Context, run *domain.ScanRun) error

	// Finish updates status, counters and finish time of a run.
	// Returns ErrNotFound if the run was never started.
	Finish(ctx context.Context, run *domain.ScanRun) error

	// Get retrieves a run by ID. Returns ErrNotFound if not exists.
	Get(ctx context.Context, scanID string) (*domain.ScanRun, error)

	// Latest returns the most recently started run. Returns ErrNotFound if none.
	Latest(ctx context.Context) (*domain.ScanRun, error)
}

// Stores bundles the stores a pipeline run writes to.
type Stores struct {
	Launches     LaunchStore
	Profiles     WalletProfileStore
	Successful   SuccessfulTokenStore
	ScoreHistory ScoreHistoryStore // optional
	ScanRuns     ScanRunStore      // optional
}
