package coingecko

import "github.com/shopspring/decimal"

// CoinMarket is one element of the GET /coins/markets response array.
// Numeric fields may be null for thinly traded coins.
type CoinMarket struct {
	ID           string              `json:"id"`
	Symbol       string              `json:"symbol"`
	Name         string              `json:"name"`
	CurrentPrice decimal.NullDecimal `json:"current_price"`
	MarketCap    decimal.NullDecimal `json:"market_cap"`
	TotalVolume  decimal.NullDecimal `json:"total_volume"`
	LastUpdated  string              `json:"last_updated"`
}

// MarketsOptions filters a GET /coins/markets request.
type MarketsOptions struct {
	IDs        []string
	VsCurrency string // defaults to "usd"
}
