// Package coingecko provides the REST client for the CoinGecko market data API.
//
// REST endpoints:
//   - Public: https://api.coingecko.com/api/v3
//   - Pro: https://pro-api.coingecko.com/api/v3
//
// Only GET /coins/markets is used. Values are requested in USD.
package coingecko
