// Package enrichment attaches market data and token metadata to launch events.
package enrichment

import (
	"context"
	"errors"

	"github.com/TraderofBozz/Anubis-Bot/internal/solana"
)

// ErrNoPrice is returned when the price service has no entry for a mint.
var ErrNoPrice = errors.New("no price for mint")

// PriceSource looks up a token's market capitalization in USD.
type PriceSource interface {
	MarketCap(ctx context.Context, mint string) (float64, error)
}

// MetadataSource looks up a token's name and symbol.
// A nil result with nil error means the token has no metadata.
type MetadataSource interface {
	Fetch(ctx context.Context, mint string) (*solana.TokenMetadata, error)
}

var _ MetadataSource = (*solana.MetadataFetcher)(nil)
