package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/TraderofBozz/Anubis-Bot/internal/domain"
	"github.com/TraderofBozz/Anubis-Bot/internal/storage"
)

func testProfile(wallet string, score float64) *domain.WalletProfile {
	hv := 2.5
	return &domain.WalletProfile{
		Wallet: wallet,
		Metrics: domain.WalletMetrics{
			Wallet:        wallet,
			TotalLaunches: 3,
			HourVariance:  &hv,
			Velocity:      domain.VelocityModerate,
		},
		Score: domain.AnubisScore{
			Score:         score,
			RiskRating:    domain.RiskLow,
			DeveloperTier: domain.TierAmateur,
			AlertPriority: 5,
		},
		AlertReasons: []string{"reason"},
		ScoredAt:     1704067200,
	}
}

func TestWalletProfileStore_UpsertOverwrites(t *testing.T) {
	store := NewWalletProfileStore()
	ctx := context.Background()

	if err := store.Upsert(ctx, testProfile("w1", 50)); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}

	updated := testProfile("w1", 85)
	updated.Score.DeveloperTier = domain.TierElite
	if err := store.Upsert(ctx, updated); err != nil {
		t.Fatalf("second Upsert failed: %v", err)
	}

	got, err := store.Get(ctx, "w1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Score.Score != 85 || got.Score.DeveloperTier != domain.TierElite {
		t.Errorf("profile not overwritten: %+v", got.Score)
	}
}

func TestWalletProfileStore_ListOrdering(t *testing.T) {
	store := NewWalletProfileStore()
	ctx := context.Background()

	store.Upsert(ctx, testProfile("b", 70))
	store.Upsert(ctx, testProfile("a", 70))
	store.Upsert(ctx, testProfile("c", 90))
	store.Upsert(ctx, testProfile("d", 10))

	all, err := store.List(ctx, 0)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	want := []string{"c", "a", "b", "d"}
	for i, w := range want {
		if all[i].Wallet != w {
			t.Fatalf("position %d: got %s, want %s", i, all[i].Wallet, w)
		}
	}

	top, _ := store.List(ctx, 2)
	if len(top) != 2 || top[0].Wallet != "c" {
		t.Errorf("limit not applied: %d results", len(top))
	}
}

func TestWalletProfileStore_Errors(t *testing.T) {
	store := NewWalletProfileStore()
	ctx := context.Background()

	if err := store.Upsert(ctx, &domain.WalletProfile{}); !errors.Is(err, storage.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := store.Get(ctx, "nobody"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestWalletProfileStore_Copies(t *testing.T) {
	store := NewWalletProfileStore()
	ctx := context.Background()

	p := testProfile("w", 1)
	store.Upsert(ctx, p)
	*p.Metrics.HourVariance = 99
	p.AlertReasons[0] = "changed"

	got, _ := store.Get(ctx, "w")
	if *got.Metrics.HourVariance != 2.5 || got.AlertReasons[0] != "reason" {
		t.Error("stored profile shares memory with the caller")
	}
}
