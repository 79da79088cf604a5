package reporting

import (
	"bytes"
	"context"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/TraderofBozz/Anubis-Bot/internal/domain"
	"github.com/TraderofBozz/Anubis-Bot/internal/storage/memory"
)

func profile(wallet string, score float64, tier domain.DeveloperTier, risk domain.RiskRating) *domain.WalletProfile {
	return &domain.WalletProfile{
		Wallet: wallet,
		Metrics: domain.WalletMetrics{
			TotalLaunches:      4,
			SuccessfulLaunches: 1,
			SuccessRate:        25,
			Velocity:           domain.VelocityModerate,
			AvgDailyLaunches:   1,
		},
		Score: domain.AnubisScore{
			Score:         score,
			DeveloperTier: tier,
			RiskRating:    risk,
			AlertPriority: 5,
		},
	}
}

func testProfiles() []*domain.WalletProfile {
	spam1 := profile("spam1", 10, domain.TierScammer, domain.RiskExtreme)
	spam1.Metrics.Velocity = domain.VelocitySerialSpammer
	spam1.Metrics.AvgDailyLaunches = 12
	spam1.Score.AutoAlert = true
	spam1.Score.AlertPriority = 1
	spam1.AlertReasons = []string{"extreme scam risk"}

	spam2 := profile("spam2", 15, domain.TierScammer, domain.RiskHigh)
	spam2.Metrics.Velocity = domain.VelocitySerialSpammer
	spam2.Metrics.AvgDailyLaunches = 20

	elite := profile("elite", 90, domain.TierElite, domain.RiskLow)
	elite.Score.AutoAlert = true
	elite.Score.AlertPriority = 1
	elite.AlertReasons = []string{"elite developer"}

	return []*domain.WalletProfile{
		spam1,
		spam2,
		elite,
		profile("pro", 70, domain.TierPro, domain.RiskLow),
		profile("am1", 40, domain.TierAmateur, domain.RiskMedium),
		profile("am2", 40, domain.TierAmateur, domain.RiskLow),
		profile("am3", 30, domain.TierAmateur, domain.RiskLow),
	}
}

func TestGenerator_Build(t *testing.T) {
	fixed := time.Date(2024, 1, 3, 12, 0, 0, 0, time.UTC)
	g := NewGenerator().WithClock(func() time.Time { return fixed })

	run := &domain.ScanRun{
		ScanID:     "scan-1",
		DaysBack:   7,
		Platforms:  []string{"pump_fun"},
		Status:     domain.ScanCompleted,
		Signatures: 500,
		Launches:   28,
		Wallets:    7,
		Profiles:   7,
	}
	r := g.Build(run, testProfiles(), 3)

	if !r.GeneratedAt.Equal(fixed) {
		t.Errorf("GeneratedAt = %v", r.GeneratedAt)
	}
	wantCounts := Counts{Signatures: 500, Launches: 28, Wallets: 7, Profiles: 7, SuccessfulTokens: 3}
	if diff := cmp.Diff(wantCounts, r.Counts); diff != "" {
		t.Errorf("counts mismatch (-want +got):\n%s", diff)
	}

	wantTiers := []Bucket{{"ELITE", 1}, {"PRO", 1}, {"AMATEUR", 3}, {"SCAMMER", 2}}
	if diff := cmp.Diff(wantTiers, r.TierDistribution); diff != "" {
		t.Errorf("tier distribution mismatch (-want +got):\n%s", diff)
	}
	wantRisks := []Bucket{{"LOW", 4}, {"MEDIUM", 1}, {"HIGH", 1}, {"EXTREME", 1}}
	if diff := cmp.Diff(wantRisks, r.RiskDistribution); diff != "" {
		t.Errorf("risk distribution mismatch (-want +got):\n%s", diff)
	}

	var top []string
	for _, w := range r.TopWallets {
		top = append(top, w.Wallet)
	}
	if diff := cmp.Diff([]string{"elite", "pro", "am1", "am2", "am3"}, top); diff != "" {
		t.Errorf("top wallets mismatch (-want +got):\n%s", diff)
	}

	if len(r.SerialSpammers) != 2 || r.SerialSpammers[0].Wallet != "spam2" {
		t.Errorf("serial spammers = %+v", r.SerialSpammers)
	}

	if len(r.Alerts) != 2 || r.Alerts[0].Wallet != "elite" || r.Alerts[1].Wallet != "spam1" {
		t.Errorf("alerts = %+v", r.Alerts)
	}
}

func TestGenerator_BuildEmpty(t *testing.T) {
	r := NewGenerator().Build(nil, nil, 0)

	if len(r.TierDistribution) != 4 || len(r.RiskDistribution) != 4 {
		t.Fatalf("distributions must list every bucket: %+v %+v", r.TierDistribution, r.RiskDistribution)
	}
	if r.TopWallets != nil || r.SerialSpammers != nil {
		t.Errorf("expected no rows, got %+v %+v", r.TopWallets, r.SerialSpammers)
	}

	md := RenderMarkdown(r)
	if !strings.Contains(md, "No wallets scored.") {
		t.Errorf("markdown missing empty marker:\n%s", md)
	}
}

func TestGenerator_GenerateFromStore(t *testing.T) {
	ctx := context.Background()
	store := memory.NewWalletProfileStore()
	for _, p := range testProfiles() {
		if err := store.Upsert(ctx, p); err != nil {
			t.Fatalf("Upsert failed: %v", err)
		}
	}

	r, err := NewGenerator().Generate(ctx, nil, store)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if r.Counts.Profiles != 7 {
		t.Errorf("profiles = %d, want 7", r.Counts.Profiles)
	}
	if r.Counts.SuccessfulTokens != 7 {
		t.Errorf("successful tokens = %d, want 7", r.Counts.SuccessfulTokens)
	}
}

func TestRenderMarkdown(t *testing.T) {
	fixed := time.Date(2024, 1, 3, 12, 0, 0, 0, time.UTC)
	run := &domain.ScanRun{ScanID: "scan-1", DaysBack: 7, Platforms: []string{"pump_fun", "moonshot"}, Status: domain.ScanCompleted}
	r := NewGenerator().WithClock(func() time.Time { return fixed }).Build(run, testProfiles(), 0)

	md := RenderMarkdown(r)
	for _, want := range []string{
		"# Anubis Scan Report",
		"Generated: 2024-01-03T12:00:00Z",
		"Platforms: pump_fun, moonshot",
		"| AMATEUR | 3 |",
		"| EXTREME | 1 |",
		"| elite | 90.00 | ELITE | LOW |",
		"| spam2 | 20.00 | 4 | HIGH |",
		"- P1 elite (90.00): elite developer",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q\n%s", want, md)
		}
	}
}

func TestWriteProfilesCSV(t *testing.T) {
	interval := 90.5
	p := profile("w1", 55.5, domain.TierAmateur, domain.RiskLow)
	p.Metrics.AvgIntervalMinutes = &interval
	p.AlertReasons = []string{"a", "b, with comma"}

	var buf bytes.Buffer
	if err := WriteProfilesCSV(&buf, []*domain.WalletProfile{p}); err != nil {
		t.Fatalf("WriteProfilesCSV failed: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("csv output does not parse: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected header + 1 row, got %d", len(records))
	}
	header, row := records[0], records[1]
	if len(header) != len(row) {
		t.Fatalf("header has %d columns, row has %d", len(header), len(row))
	}

	col := func(name string) string {
		for i, h := range header {
			if h == name {
				return row[i]
			}
		}
		t.Fatalf("column %s missing", name)
		return ""
	}
	if got := col("anubis_score"); got != "55.500000" {
		t.Errorf("anubis_score = %q", got)
	}
	if got := col("avg_interval_minutes"); got != "90.500000" {
		t.Errorf("avg_interval_minutes = %q", got)
	}
	if got := col("min_interval_minutes"); got != "" {
		t.Errorf("min_interval_minutes = %q, want empty", got)
	}
	if got := col("alert_reasons"); got != "a; b, with comma" {
		t.Errorf("alert_reasons = %q", got)
	}
}
