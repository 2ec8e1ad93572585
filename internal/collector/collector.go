package collector

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/ambuso/crypto-etl/internal/coingecko"
	"github.com/ambuso/crypto-etl/internal/metrics"
	"github.com/ambuso/crypto-etl/internal/model"
)

// MarketSource fetches current market data. *coingecko.Client satisfies it.
type MarketSource interface {
	GetCoinMarkets(ctx context.Context, opts coingecko.MarketsOptions) ([]coingecko.CoinMarket, error)
}

// SnapshotWriter persists a snapshot atomically. *writer.PriceWriter satisfies it.
type SnapshotWriter interface {
	WriteSnapshot(ctx context.Context, snap model.Snapshot) (int, error)
}

// Config holds collector configuration.
type Config struct {
	Coins      model.CoinSet
	VsCurrency string
}

// DefaultConfig returns the compile-time coin set quoted in USD.
func DefaultConfig() Config {
	return Config{
		Coins:      model.DefaultCoinSet(),
		VsCurrency: coingecko.DefaultVsCurrency,
	}
}

// Collector runs fetch, transform and persist for one scheduled tick.
type Collector struct {
	cfg    Config
	source MarketSource
	sink   SnapshotWriter
	logger *slog.Logger
	now    func() time.Time
}

// New creates a new Collector.
func New(cfg Config, source MarketSource, sink SnapshotWriter, logger *slog.Logger) *Collector {
	if logger == nil {
		logger = slog.Default()
	}
	return &Collector{
		cfg:    cfg,
		source: source,
		sink:   sink,
		logger: logger,
		now:    time.Now,
	}
}

// Run performs one complete collection cycle. It returns a *FetchError if
// the provider request fails and a *PersistError if the database write
// fails; both are logged before returning.
func (c *Collector) Run(ctx context.Context) error {
	start := time.Now()
	logger := c.logger.With("run_id", uuid.NewString())

	defer func() {
		metrics.RunDuration.Observe(time.Since(start).Seconds())
	}()

	markets, err := c.source.GetCoinMarkets(ctx, coingecko.MarketsOptions{
		IDs:        c.cfg.Coins.IDs(),
		VsCurrency: c.cfg.VsCurrency,
	})
	if err != nil {
		logger.Error("failed to fetch data from api",
			"coins", c.cfg.Coins.Len(),
			"error", err,
		)
		c.recordFailure(metrics.KindFetch)
		return &FetchError{Err: err}
	}
	metrics.CoinsReturned.Set(float64(len(markets)))

	if missing := c.cfg.Coins.Len() - len(markets); missing > 0 {
		logger.Debug("provider omitted coins", "requested", c.cfg.Coins.Len(), "missing", missing)
	}

	// One timestamp for the whole snapshot.
	snap := coingecko.ToSnapshot(markets, c.now())

	rows, err := c.sink.WriteSnapshot(ctx, snap)
	if err != nil {
		logger.Error("database error",
			"rows", snap.Len(),
			"error", err,
		)
		c.recordFailure(metrics.KindPersist)
		return &PersistError{Err: err}
	}

	metrics.RunsTotal.WithLabelValues(metrics.OutcomeSuccess).Inc()
	metrics.RowsInserted.Add(float64(rows))
	metrics.LastSuccess.Set(float64(snap.Timestamp.Unix()))

	logger.Info("data inserted successfully",
		"rows", rows,
		"timestamp", snap.Timestamp,
		"duration", time.Since(start),
	)
	return nil
}

func (c *Collector) recordFailure(kind string) {
	metrics.RunsTotal.WithLabelValues(metrics.OutcomeFailure).Inc()
	metrics.ErrorsTotal.WithLabelValues(kind).Inc()
}
