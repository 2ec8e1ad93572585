package coingecko

import (
	"strings"
	"time"

	"github.com/ambuso/crypto-etl/internal/model"
)

// ToRecord converts a CoinMarket to a model.PriceRecord stamped with ts.
func (m *CoinMarket) ToRecord(ts time.Time) model.PriceRecord {
	return model.PriceRecord{
		Name:        m.Name,
		Symbol:      strings.ToUpper(m.Symbol),
		Price:       m.CurrentPrice,
		MarketCap:   m.MarketCap,
		TotalVolume: m.TotalVolume,
		Timestamp:   ts.UTC(),
	}
}

// ToSnapshot converts a markets response into a snapshot. Every record
// shares ts, normalised to UTC.
func ToSnapshot(markets []CoinMarket, ts time.Time) model.Snapshot {
	ts = ts.UTC()
	records := make([]model.PriceRecord, 0, len(markets))
	for i := range markets {
		records = append(records, markets[i].ToRecord(ts))
	}
	return model.Snapshot{
		Timestamp: ts,
		Records:   records,
	}
}
