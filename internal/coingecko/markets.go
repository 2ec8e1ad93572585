package coingecko

import (
	"context"
	"fmt"
	"net/url"
	"strings"
)

// DefaultVsCurrency is the quote currency for all market values.
const DefaultVsCurrency = "usd"

// GetCoinMarkets fetches the current market snapshot for the given coins.
// Coins unknown to the provider are omitted from the result. An empty id
// list is rejected with ErrNoCoins before any request is made.
func (c *Client) GetCoinMarkets(ctx context.Context, opts MarketsOptions) ([]CoinMarket, error) {
	if len(opts.IDs) == 0 {
		return nil, fmt.Errorf("get coin markets: %w", ErrNoCoins)
	}

	query := url.Values{}

	vs := opts.VsCurrency
	if vs == "" {
		vs = DefaultVsCurrency
	}
	query.Set("vs_currency", vs)
	query.Set("ids", strings.Join(opts.IDs, ","))

	var resp []CoinMarket
	if err := c.get(ctx, "/coins/markets", query, &resp); err != nil {
		return nil, fmt.Errorf("get coin markets: %w", err)
	}

	return resp, nil
}
