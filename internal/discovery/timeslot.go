package discovery

import (
	"time"

	"github.com/TraderofBozz/Anubis-Bot/internal/domain"
)

// LaunchTiming is the calendar breakdown of a launch's block time.
type LaunchTiming struct {
	Hour      int // 0-23 UTC
	Day       int // 0-6, Monday = 0
	IsWeekend bool
	Slot      domain.TimeSlot
}

// TimingFromBlockTime derives the launch timing from a block time in unix seconds.
// Without a block time the launch falls to hour 0, day 0, weekday, slot OTHER.
func TimingFromBlockTime(blockTime *int64) LaunchTiming {
	if blockTime == nil {
		return LaunchTiming{Slot: domain.TimeSlotOther}
	}

	t := time.Unix(*blockTime, 0).UTC()
	day := (int(t.Weekday()) + 6) % 7
	return LaunchTiming{
		Hour:      t.Hour(),
		Day:       day,
		IsWeekend: day >= 5,
		Slot:      ClassifyHour(t.Hour()),
	}
}

// ClassifyHour maps an hour of day to its time slot.
// Branches are evaluated in order; hours 0-1 match ASIA_MORNING before
// PEAK_DEGEN is considered, so PEAK_DEGEN only ever holds hours 2-3.
func ClassifyHour(hour int) domain.TimeSlot {
	switch {
	case hour >= 22 || hour < 2:
		return domain.TimeSlotAsiaMorning
	case hour >= 6 && hour < 10:
		return domain.TimeSlotEUMorning
	case hour >= 13 && hour < 17:
		return domain.TimeSlotUSMorning
	case hour >= 0 && hour < 4:
		return domain.TimeSlotPeakDegen
	default:
		return domain.TimeSlotOther
	}
}
