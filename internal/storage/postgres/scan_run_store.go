package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/TraderofBozz/Anubis-Bot/internal/domain"
	"github.com/TraderofBozz/Anubis-Bot/internal/storage"
)

// ScanRunStore implements storage.ScanRunStore using PostgreSQL.
type ScanRunStore struct {
	pool *Pool
}

// NewScanRunStore creates a new ScanRunStore.
func NewScanRunStore(pool *Pool) *ScanRunStore {
	return &ScanRunStore{pool: pool}
}

// Compile-time interface check.
var _ storage.ScanRunStore = (*ScanRunStore)(nil)

const scanRunColumns = `
	scan_id, started_at, finished_at, days_back, platforms, status, error,
	signatures, launches, wallets, profiles
`

// Start records a new run. Returns ErrDuplicateKey if scan_id exists.
func (s *ScanRunStore) Start(ctx context.Context, run *domain.ScanRun) error {
	if run == nil || run.ScanID == "" {
		return storage.ErrInvalidInput
	}

	platforms := run.Platforms
	if platforms == nil {
		platforms = []string{}
	}

	_, err := s.pool.Exec(ctx, `
		INSERT INTO scan_runs (`+scanRunColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`,
		run.ScanID, run.StartedAt, run.FinishedAt, run.DaysBack, platforms,
		string(run.Status), run.Error,
		run.Signatures, run.Launches, run.Wallets, run.Profiles,
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			return storage.ErrDuplicateKey
		}
		return fmt.Errorf("insert scan run: %w", err)
	}
	return nil
}

// Finish updates status, counters and finish time of a run.
func (s *ScanRunStore) Finish(ctx context.Context, run *domain.ScanRun) error {
	if run == nil || run.ScanID == "" {
		return storage.ErrInvalidInput
	}

	tag, err := s.pool.Exec(ctx, `
		UPDATE scan_runs
		SET finished_at = $2,
		    status = $3,
		    error = $4,
		    signatures = $5,
		    launches = $6,
		    wallets = $7,
		    profiles = $8
		WHERE scan_id = $1
	`,
		run.ScanID, run.FinishedAt, string(run.Status), run.Error,
		run.Signatures, run.Launches, run.Wallets, run.Profiles,
	)
	if err != nil {
		return fmt.Errorf("finish scan run: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// Get retrieves a run by ID. Returns ErrNotFound if not exists.
func (s *ScanRunStore) Get(ctx context.Context, scanID string) (*domain.ScanRun, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+scanRunColumns+` FROM scan_runs WHERE scan_id = $1`, scanID)
	return s.scanOne(row)
}

// Latest returns the most recently started run.
func (s *ScanRunStore) Latest(ctx context.Context) (*domain.ScanRun, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT `+scanRunColumns+`
		FROM scan_runs
		ORDER BY started_at DESC, scan_id DESC
		LIMIT 1
	`)
	return s.scanOne(row)
}

func (s *ScanRunStore) scanOne(row pgx.Row) (*domain.ScanRun, error) {
	var (
		run    domain.ScanRun
		status string
	)
	err := row.Scan(
		&run.ScanID, &run.StartedAt, &run.FinishedAt, &run.DaysBack, &run.Platforms,
		&status, &run.Error,
		&run.Signatures, &run.Launches, &run.Wallets, &run.Profiles,
	)
	if err != nil {
		if isNotFoundError(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("scan scan run: %w", err)
	}
	run.Status = domain.ScanStatus(status)
	return &run, nil
}
