package model

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// -----------------------------------------------------------------------------
// Coin Set
// -----------------------------------------------------------------------------

// defaultCoinIDs is the fixed set of CoinGecko ids collected on every run.
// Callers get it through DefaultCoinSet.
var defaultCoinIDs = []string{
	"bitcoin", "ethereum", "tether", "xrp", "binancecoin",
	"solana", "usd-coin", "dogecoin", "cardano", "tron",
	"avalanche-2", "polkadot", "chainlink", "litecoin", "stellar",
}

// CoinSet is an ordered, immutable set of provider coin ids.
type CoinSet struct {
	ids []string
}

// NewCoinSet copies ids into a new CoinSet. Order is preserved.
func NewCoinSet(ids ...string) CoinSet {
	cp := make([]string, len(ids))
	copy(cp, ids)
	return CoinSet{ids: cp}
}

// DefaultCoinSet returns the compile-time coin set.
func DefaultCoinSet() CoinSet {
	return NewCoinSet(defaultCoinIDs...)
}

// IDs returns a copy of the coin ids.
func (s CoinSet) IDs() []string {
	cp := make([]string, len(s.ids))
	copy(cp, s.ids)
	return cp
}

// Len returns the number of coins.
func (s CoinSet) Len() int {
	return len(s.ids)
}

// Join returns the ids joined with commas, as the provider expects.
func (s CoinSet) Join() string {
	return strings.Join(s.ids, ",")
}

// -----------------------------------------------------------------------------
// Time-Series Types
// -----------------------------------------------------------------------------

// PriceRecord is one coin's market state at fetch time.
type PriceRecord struct {
	Name        string              // Provider display name
	Symbol      string              // Ticker, always uppercase
	Price       decimal.NullDecimal // Current price (USD)
	MarketCap   decimal.NullDecimal // Market capitalization (USD)
	TotalVolume decimal.NullDecimal // Trading volume over the provider window (USD)
	Timestamp   time.Time           // Run timestamp (UTC), shared by the whole snapshot
}

// Snapshot is the set of records produced by one run.
type Snapshot struct {
	Timestamp time.Time
	Records   []PriceRecord
}

// Len returns the number of records in the snapshot.
func (s Snapshot) Len() int {
	return len(s.Records)
}
