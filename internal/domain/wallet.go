package domain

// Velocity classifies how often a wallet launches tokens.
type Velocity string

const (
	VelocitySerialSpammer Velocity = "SERIAL_SPAMMER"
	VelocityHighFrequency Velocity = "HIGH_FREQUENCY"
	VelocityModerate      Velocity = "MODERATE"
	VelocitySelective     Velocity = "SELECTIVE"
)

// String returns the string representation of Velocity.
func (v Velocity) String() string {
	return string(v)
}

// IsValid checks if the velocity is a valid value.
func (v Velocity) IsValid() bool {
	switch v {
	case VelocitySerialSpammer, VelocityHighFrequency, VelocityModerate, VelocitySelective:
		return true
	}
	return false
}

// WalletMetrics is the derived per-wallet record for one scan window.
// Every field is computed from the wallet's launch history.
// Ratio fields are percentages in [0,100].
type WalletMetrics struct {
	Wallet string

	// Counts
	TotalLaunches      int
	SuccessfulLaunches int
	SuccessRate        float64 // percent

	// Session ratios (percent)
	WeekendRatio   float64
	AsiaRatio      float64
	EURatio        float64
	USRatio        float64
	PeakDegenRatio float64

	// Timing
	Velocity           Velocity
	AvgDailyLaunches   float64
	AvgIntervalMinutes *float64 // nil with fewer than 2 launches
	MinIntervalMinutes *float64 // nil with fewer than 2 launches
	HourVariance       *float64 // population variance of launch hours, nil with fewer than 2 launches
	PeakLaunchHour     int

	// Seed capital (SOL)
	AvgSeed      float64
	SeedVariance float64

	// Market outcomes
	BestMarketCap float64
	AvgMarketCap  float64

	// Earnings (SOL), see scoring.ApplyEarnings
	TotalInvested     float64
	EstimatedEarnings float64
	EstimatedProfit   float64
	ROIPercentage     float64

	PrimaryPlatform string
	FirstSeen       int64 // unix seconds
	LastActive      int64 // unix seconds
}
