package enrichment

import (
	"context"
	"errors"
	"io"
	"log"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TraderofBozz/Anubis-Bot/internal/domain"
	"github.com/TraderofBozz/Anubis-Bot/internal/solana"
)

// stubPrices serves fixed market caps and fails for mints in errs.
type stubPrices struct {
	caps  map[string]float64
	errs  map[string]error
	calls []string
}

func (s *stubPrices) MarketCap(_ context.Context, mint string) (float64, error) {
	s.calls = append(s.calls, mint)
	if err, ok := s.errs[mint]; ok {
		return 0, err
	}
	mcap, ok := s.caps[mint]
	if !ok {
		return 0, ErrNoPrice
	}
	return mcap, nil
}

type stubMetadata map[string]*solana.TokenMetadata

func (s stubMetadata) Fetch(_ context.Context, mint string) (*solana.TokenMetadata, error) {
	if mint == "broken" {
		return nil, errors.New("account decode failed")
	}
	return s[mint], nil
}

func quietOptions(sleeps *[]time.Duration) Options {
	return Options{
		Delay:  50 * time.Millisecond,
		Logger: log.New(io.Discard, "", 0),
		Sleep: func(ctx context.Context, d time.Duration) error {
			*sleeps = append(*sleeps, d)
			return ctx.Err()
		},
	}
}

func TestEnricher_Enrich(t *testing.T) {
	prices := &stubPrices{
		caps: map[string]float64{"winner": 150_000, "small": 50_000, "edge": 100_000},
		errs: map[string]error{"broken": errors.New("connection reset")},
	}
	events := []*domain.LaunchEvent{
		{Signature: "1", Mint: "winner"},
		{Signature: "2", Mint: "small"},
		{Signature: "3", Mint: "edge"},
		{Signature: "4", Mint: "unlisted"},
		{Signature: "5", Mint: "broken"},
		{Signature: "6"}, // no mint, skipped
	}

	var sleeps []time.Duration
	var outcomes []string
	opts := quietOptions(&sleeps)
	opts.Observe = func(o string) { outcomes = append(outcomes, o) }

	stats, err := NewEnricher(prices, opts).Enrich(context.Background(), events)
	require.NoError(t, err)

	assert.Equal(t, EnrichStats{Lookups: 5, Priced: 3, Failed: 2, Successes: 1}, stats)
	assert.Equal(t, []string{"winner", "small", "edge", "unlisted", "broken"}, prices.calls)
	assert.Len(t, sleeps, 5, "one delay after every lookup")
	assert.Equal(t, []string{OutcomePriced, OutcomePriced, OutcomePriced, OutcomeNoPrice, OutcomeError}, outcomes)

	assert.True(t, events[0].IsSuccess)
	assert.Equal(t, 150_000.0, *events[0].MarketCap)
	assert.False(t, events[1].IsSuccess)
	assert.False(t, events[2].IsSuccess, "exactly 100000 is not a success")

	for _, ev := range events[3:5] {
		require.NotNil(t, ev.MarketCap, "failed lookups record a zero market cap")
		assert.Equal(t, 0.0, *ev.MarketCap)
		assert.False(t, ev.IsSuccess)
	}
	assert.Nil(t, events[5].MarketCap)
}

func TestEnricher_Metadata(t *testing.T) {
	prices := &stubPrices{caps: map[string]float64{"a": 1, "b": 1, "broken": 1}}
	meta := stubMetadata{"a": {Name: "Anubis", Symbol: "ANB"}}
	events := []*domain.LaunchEvent{{Mint: "a"}, {Mint: "b"}, {Mint: "broken"}}

	var sleeps []time.Duration
	opts := quietOptions(&sleeps)
	opts.Metadata = meta

	stats, err := NewEnricher(prices, opts).Enrich(context.Background(), events)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Metadata)

	require.NotNil(t, events[0].TokenName)
	assert.Equal(t, "Anubis", *events[0].TokenName)
	assert.Equal(t, "ANB", *events[0].TokenSymbol)
	assert.Nil(t, events[1].TokenName)
	assert.Nil(t, events[2].TokenName)
}

func TestEnricher_ContextCancelled(t *testing.T) {
	prices := &stubPrices{caps: map[string]float64{"a": 1}}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var sleeps []time.Duration
	_, err := NewEnricher(prices, quietOptions(&sleeps)).Enrich(ctx, []*domain.LaunchEvent{{Mint: "a"}})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, prices.calls)
}
