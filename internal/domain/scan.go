package domain

// ScanStatus is the lifecycle state of a scan run.
type ScanStatus string

const (
	ScanRunning   ScanStatus = "RUNNING"
	ScanCompleted ScanStatus = "COMPLETED"
	ScanFailed    ScanStatus = "FAILED"
)

// String returns the string representation of ScanStatus.
func (s ScanStatus) String() string {
	return string(s)
}

// ScanRun records one execution of the pipeline.
// Corresponds to scan_runs table in PostgreSQL.
type ScanRun struct {
	ScanID     string // see idhash.ScanID
	StartedAt  int64  // unix seconds
	FinishedAt int64  // unix seconds, 0 while running
	DaysBack   int
	Platforms  []string
	Status     ScanStatus
	Error      string

	Signatures int // signature summaries read
	Launches   int // launch events kept after aggregation
	Wallets    int
	Profiles   int // wallet profiles persisted
}

// ScoreSnapshot is one wallet's score as recorded by one scan.
// Corresponds to wallet_score_history table in ClickHouse.
type ScoreSnapshot struct {
	ScanID             string
	Wallet             string
	Score              float64
	SuccessScore       float64
	EarningsScore      float64
	ScamScore          float64
	TimeConsistency    float64
	RiskRating         RiskRating
	DeveloperTier      DeveloperTier
	TotalLaunches      int
	SuccessfulLaunches int
	Velocity           Velocity
	ScoredAt           int64 // unix seconds
}

// NewScoreSnapshot flattens a profile for the score history archive.
func NewScoreSnapshot(scanID string, p *WalletProfile) *ScoreSnapshot {
	return &ScoreSnapshot{
		ScanID:             scanID,
		Wallet:             p.Wallet,
		Score:              p.Score.Score,
		SuccessScore:       p.Score.SuccessScore,
		EarningsScore:      p.Score.EarningsScore,
		ScamScore:          p.Score.ScamScore,
		TimeConsistency:    p.Score.TimeConsistencyScore,
		RiskRating:         p.Score.RiskRating,
		DeveloperTier:      p.Score.DeveloperTier,
		TotalLaunches:      p.Metrics.TotalLaunches,
		SuccessfulLaunches: p.Metrics.SuccessfulLaunches,
		Velocity:           p.Metrics.Velocity,
		ScoredAt:           p.ScoredAt,
	}
}
