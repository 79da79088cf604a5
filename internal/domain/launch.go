package domain

// TimeSlot is the hour-of-day bucket a launch falls into (UTC).
type TimeSlot string

const (
	TimeSlotAsiaMorning TimeSlot = "ASIA_MORNING"
	TimeSlotEUMorning   TimeSlot = "EU_MORNING"
	TimeSlotUSMorning   TimeSlot = "US_MORNING"
	TimeSlotPeakDegen   TimeSlot = "PEAK_DEGEN"
	TimeSlotOther       TimeSlot = "OTHER"
)

// TimeSlots lists the four named slots in classification order.
// TimeSlotOther is the fallback and is not included.
var TimeSlots = []TimeSlot{
	TimeSlotAsiaMorning,
	TimeSlotEUMorning,
	TimeSlotUSMorning,
	TimeSlotPeakDegen,
}

// String returns the string representation of TimeSlot.
func (s TimeSlot) String() string {
	return string(s)
}

// IsValid checks if the time slot is a valid value.
func (s TimeSlot) IsValid() bool {
	switch s {
	case TimeSlotAsiaMorning, TimeSlotEUMorning, TimeSlotUSMorning, TimeSlotPeakDegen, TimeSlotOther:
		return true
	}
	return false
}

// SuccessMarketCap is the market cap a token must exceed to count as a success.
const SuccessMarketCap = 100_000.0

// LaunchEvent is one token-creation transaction observed on-chain.
// Corresponds to token_launches table in PostgreSQL.
type LaunchEvent struct {
	Signature  string // transaction signature, unique within a scan
	Slot       int64
	Mint       string // token mint, empty when extraction failed
	Creator    string // fee payer, empty when extraction failed
	Platform   string // launchpad tag (pump_fun, moonshot, ...)
	LaunchTime int64  // block time (unix seconds), 0 when unknown
	LaunchHour int    // 0-23, UTC
	LaunchDay  int    // 0-6, Monday = 0
	IsWeekend  bool   // Saturday or Sunday
	TimeSlot   TimeSlot
	SeedAmount float64 // SOL spent by the creator in the launch tx, >= 0

	// Filled by enrichment.
	MarketCap   *float64 // nil until enriched, 0 on lookup failure
	IsSuccess   bool     // MarketCap > SuccessMarketCap
	TokenName   *string
	TokenSymbol *string
}

// HasIdentity reports whether the event carries both a mint and a creator.
// Events without them cannot be grouped or stored.
func (e *LaunchEvent) HasIdentity() bool {
	return e != nil && e.Mint != "" && e.Creator != ""
}

// MarketCapOrZero returns the enriched market cap, or 0 if not enriched.
func (e *LaunchEvent) MarketCapOrZero() float64 {
	if e.MarketCap == nil {
		return 0
	}
	return *e.MarketCap
}

// SetMarketCap records an enrichment result and derives IsSuccess.
func (e *LaunchEvent) SetMarketCap(mcap float64) {
	e.MarketCap = &mcap
	e.IsSuccess = mcap > SuccessMarketCap
}

// WalletLaunchHistory is the launches of a single creator wallet,
// ordered by launch time.
type WalletLaunchHistory struct {
	Wallet   string
	Launches []*LaunchEvent
}

// SuccessfulToken is an archived launch that crossed the success threshold.
// Corresponds to successful_tokens_archive table in PostgreSQL.
type SuccessfulToken struct {
	Mint           string
	Creator        string
	Platform       string
	TokenName      *string
	TokenSymbol    *string
	LaunchTime     int64
	PeakMarketCap  float64
	SeedAmount     float64
	EstimatedGainX float64 // earnings multiple applied to the seed
	ArchivedAt     int64   // unix seconds
}
