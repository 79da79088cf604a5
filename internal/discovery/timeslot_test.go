package discovery

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/TraderofBozz/Anubis-Bot/internal/domain"
)

// 2024-01-01 00:00:00 UTC, a Monday.
const mondayMidnight int64 = 1704067200

func TestClassifyHour(t *testing.T) {
	want := map[int]domain.TimeSlot{
		0: domain.TimeSlotAsiaMorning, 1: domain.TimeSlotAsiaMorning,
		2: domain.TimeSlotPeakDegen, 3: domain.TimeSlotPeakDegen,
		4: domain.TimeSlotOther, 5: domain.TimeSlotOther,
		6: domain.TimeSlotEUMorning, 7: domain.TimeSlotEUMorning, 8: domain.TimeSlotEUMorning, 9: domain.TimeSlotEUMorning,
		10: domain.TimeSlotOther, 11: domain.TimeSlotOther, 12: domain.TimeSlotOther,
		13: domain.TimeSlotUSMorning, 14: domain.TimeSlotUSMorning, 15: domain.TimeSlotUSMorning, 16: domain.TimeSlotUSMorning,
		17: domain.TimeSlotOther, 18: domain.TimeSlotOther, 19: domain.TimeSlotOther, 20: domain.TimeSlotOther, 21: domain.TimeSlotOther,
		22: domain.TimeSlotAsiaMorning, 23: domain.TimeSlotAsiaMorning,
	}

	for hour := 0; hour < 24; hour++ {
		assert.Equal(t, want[hour], ClassifyHour(hour), "hour %d", hour)
	}
}

func TestClassifyHour_AsiaWinsOverlap(t *testing.T) {
	// Hours 0 and 1 satisfy both the ASIA_MORNING and PEAK_DEGEN ranges.
	assert.Equal(t, domain.TimeSlotAsiaMorning, ClassifyHour(0))
	assert.Equal(t, domain.TimeSlotAsiaMorning, ClassifyHour(1))
}

func TestTimingFromBlockTime(t *testing.T) {
	tests := []struct {
		name    string
		ts      int64
		hour    int
		day     int
		weekend bool
		slot    domain.TimeSlot
	}{
		{"monday midnight", mondayMidnight, 0, 0, false, domain.TimeSlotAsiaMorning},
		{"monday 14h", mondayMidnight + 14*3600, 14, 0, false, domain.TimeSlotUSMorning},
		{"friday 7h", mondayMidnight + 4*86400 + 7*3600, 7, 4, false, domain.TimeSlotEUMorning},
		{"saturday 3h", mondayMidnight + 5*86400 + 3*3600, 3, 5, true, domain.TimeSlotPeakDegen},
		{"sunday 23h", mondayMidnight + 6*86400 + 23*3600, 23, 6, true, domain.TimeSlotAsiaMorning},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := tt.ts
			got := TimingFromBlockTime(&ts)
			assert.Equal(t, LaunchTiming{Hour: tt.hour, Day: tt.day, IsWeekend: tt.weekend, Slot: tt.slot}, got)
		})
	}
}

func TestTimingFromBlockTime_Missing(t *testing.T) {
	got := TimingFromBlockTime(nil)
	assert.Equal(t, LaunchTiming{Hour: 0, Day: 0, IsWeekend: false, Slot: domain.TimeSlotOther}, got)
}
