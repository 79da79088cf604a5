package enrichment

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultJupiterURL is the Jupiter price API base URL.
const DefaultJupiterURL = "https://price.jup.ag/v4"

// JupiterClient implements PriceSource against the Jupiter price API.
type JupiterClient struct {
	baseURL string
	client  *http.Client
}

var _ PriceSource = (*JupiterClient)(nil)

// NewJupiterClient creates a client for baseURL (DefaultJupiterURL if empty).
func NewJupiterClient(baseURL string, client *http.Client) *JupiterClient {
	if baseURL == "" {
		baseURL = DefaultJupiterURL
	}
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &JupiterClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
	}
}

type jupiterResponse struct {
	Data map[string]struct {
		ID        string  `json:"id"`
		Price     float64 `json:"price"`
		MarketCap float64 `json:"marketCap"`
	} `json:"data"`
}

// MarketCap returns data[mint].marketCap, or ErrNoPrice when the mint is absent.
func (c *JupiterClient) MarketCap(ctx context.Context, mint string) (float64, error) {
	endpoint := c.baseURL + "/price?ids=" + url.QueryEscape(mint)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("price request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return 0, fmt.Errorf("price request: unexpected status %d: %s", resp.StatusCode, string(body))
	}

	var parsed jupiterResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return 0, fmt.Errorf("decode price response: %w", err)
	}

	entry, ok := parsed.Data[mint]
	if !ok {
		return 0, ErrNoPrice
	}
	return entry.MarketCap, nil
}
