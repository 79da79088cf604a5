// Package metrics derives behavioral and financial metrics from a wallet's
// launch history.
package metrics

import (
	"errors"

	"github.com/TraderofBozz/Anubis-Bot/internal/domain"
)

// ErrEmptyHistory is returned when a wallet has no launches to analyze.
var ErrEmptyHistory = errors.New("empty launch history")

// Velocity thresholds in launches per day. Comparisons are strict.
const (
	SerialSpammerDaily = 5.0
	HighFrequencyDaily = 2.0
	ModerateDaily      = 0.5
)

const secondsPerDay = 86400.0

// Analyze computes WalletMetrics for one wallet.
// Launches must be ordered by launch time (see aggregation.SortLaunches).
// The result is a pure function of the history. Earnings fields are left
// zero; scoring.ApplyEarnings fills them.
func Analyze(history *domain.WalletLaunchHistory) (*domain.WalletMetrics, error) {
	if history == nil || len(history.Launches) == 0 {
		return nil, ErrEmptyHistory
	}
	launches := history.Launches
	n := len(launches)

	m := &domain.WalletMetrics{
		Wallet:        history.Wallet,
		TotalLaunches: n,
		FirstSeen:     launches[0].LaunchTime,
		LastActive:    launches[n-1].LaunchTime,
	}

	var (
		seeds      = make([]float64, n)
		caps       = make([]float64, n)
		hours      = make([]float64, n)
		slotCounts = make(map[domain.TimeSlot]int)
		hourCounts = make(map[int]int)
		platforms  = make(map[string]int)
		weekend    int
	)

	for i, l := range launches {
		seeds[i] = l.SeedAmount
		caps[i] = l.MarketCapOrZero()
		hours[i] = float64(l.LaunchHour)
		slotCounts[l.TimeSlot]++
		hourCounts[l.LaunchHour]++
		if l.Platform != "" {
			platforms[l.Platform]++
		}
		if l.IsWeekend {
			weekend++
		}
		if l.IsSuccess {
			m.SuccessfulLaunches++
		}
	}

	m.SuccessRate = computeRatio(m.SuccessfulLaunches, n)

	m.WeekendRatio = computeRatio(weekend, n)
	m.AsiaRatio = computeRatio(slotCounts[domain.TimeSlotAsiaMorning], n)
	m.EURatio = computeRatio(slotCounts[domain.TimeSlotEUMorning], n)
	m.USRatio = computeRatio(slotCounts[domain.TimeSlotUSMorning], n)
	m.PeakDegenRatio = computeRatio(slotCounts[domain.TimeSlotPeakDegen], n)

	m.AvgSeed = computeMean(seeds)
	m.SeedVariance = computeVariance(seeds, m.AvgSeed)

	m.BestMarketCap = computeMax(caps)
	m.AvgMarketCap = computeMean(caps)

	m.PeakLaunchHour = computeMode(hourCounts)
	if len(platforms) > 0 {
		m.PrimaryPlatform = computeMode(platforms)
	}

	m.Velocity, m.AvgDailyLaunches = classifyVelocity(launches)

	if n >= 2 {
		intervals := make([]float64, n-1)
		for i := 1; i < n; i++ {
			intervals[i-1] = float64(launches[i].LaunchTime-launches[i-1].LaunchTime) / 60
		}
		avg := computeMean(intervals)
		minInterval := computeMin(intervals)
		m.AvgIntervalMinutes = &avg
		m.MinIntervalMinutes = &minInterval

		hourMean := computeMean(hours)
		hv := computeVariance(hours, hourMean)
		m.HourVariance = &hv
	}

	return m, nil
}

// classifyVelocity returns the velocity class and launches per active day.
// The active day span is last minus first launch in days, at least 1.
func classifyVelocity(launches []*domain.LaunchEvent) (domain.Velocity, float64) {
	n := len(launches)
	if n <= 1 {
		return domain.VelocitySelective, float64(n)
	}

	span := float64(launches[n-1].LaunchTime-launches[0].LaunchTime) / secondsPerDay
	if span < 1 {
		span = 1
	}
	avgDaily := float64(n) / span

	switch {
	case avgDaily > SerialSpammerDaily:
		return domain.VelocitySerialSpammer, avgDaily
	case avgDaily > HighFrequencyDaily:
		return domain.VelocityHighFrequency, avgDaily
	case avgDaily > ModerateDaily:
		return domain.VelocityModerate, avgDaily
	default:
		return domain.VelocitySelective, avgDaily
	}
}
