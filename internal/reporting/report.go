package reporting

import "time"

// TopWalletsLimit is the number of wallets listed in Report.TopWallets.
const TopWalletsLimit = 5

// Report is the end-of-scan summary.
type Report struct {
	// Metadata
	GeneratedAt time.Time
	ScanID      string
	DaysBack    int
	Platforms   []string
	Status      string
	Error       string

	Counts Counts

	// Distributions in fixed enum order, zero buckets included.
	TierDistribution []Bucket
	RiskDistribution []Bucket

	// TopWallets is sorted by score DESC, wallet ASC.
	TopWallets []WalletRow
	// SerialSpammers is sorted by avg daily launches DESC, wallet ASC.
	SerialSpammers []WalletRow
	// Alerts lists every auto-alert wallet in alert priority order.
	Alerts []WalletRow
}

// Counts summarizes pipeline volumes.
type Counts struct {
	Signatures       int
	Launches         int
	Wallets          int
	Profiles         int
	SuccessfulTokens int
}

// Bucket is one row of a distribution table.
type Bucket struct {
	Label string
	Count int
}

// WalletRow is a condensed wallet profile.
type WalletRow struct {
	Wallet             string
	Score              float64
	DeveloperTier      string
	RiskRating         string
	TotalLaunches      int
	SuccessfulLaunches int
	SuccessRate        float64
	AvgDailyLaunches   float64
	BestMarketCap      float64
	AlertPriority      int
	Reasons            []string
}
