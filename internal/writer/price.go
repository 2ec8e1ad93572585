package writer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/ambuso/crypto-etl/internal/model"
)

// PriceWriter appends price snapshots to crypto.crypto_prices.
type PriceWriter struct {
	db     DB
	logger *slog.Logger

	mu      sync.Mutex
	metrics WriterMetrics
}

// New creates a new PriceWriter.
func New(db DB, logger *slog.Logger) *PriceWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &PriceWriter{
		db:     db,
		logger: logger,
	}
}

// EnsureSchema creates the target schema and table if they do not exist.
func (w *PriceWriter) EnsureSchema(ctx context.Context) error {
	return w.inTx(ctx, func(tx pgx.Tx) error {
		return ensureSchema(ctx, tx)
	})
}

// WriteSnapshot ensures the schema and inserts every record of snap in one
// transaction. On any error the transaction is rolled back and no rows are
// visible. Returns the number of rows inserted.
func (w *PriceWriter) WriteSnapshot(ctx context.Context, snap model.Snapshot) (int, error) {
	start := time.Now()

	err := w.inTx(ctx, func(tx pgx.Tx) error {
		if err := ensureSchema(ctx, tx); err != nil {
			return err
		}
		if snap.Len() == 0 {
			return nil
		}
		return batchInsert(ctx, tx, snap.Records)
	})
	if err != nil {
		return 0, err
	}

	w.mu.Lock()
	w.metrics.Inserts += int64(snap.Len())
	w.mu.Unlock()

	w.logger.Debug("wrote snapshot",
		"rows", snap.Len(),
		"timestamp", snap.Timestamp,
		"duration", time.Since(start),
	)

	return snap.Len(), nil
}

// Stats returns the row count and newest timestamp in the price table.
func (w *PriceWriter) Stats(ctx context.Context) (TableStats, error) {
	var stats TableStats
	if err := w.db.QueryRow(ctx, statsSQL).Scan(&stats.Rows, &stats.LastTimestamp); err != nil {
		return TableStats{}, fmt.Errorf("query table stats: %w", err)
	}
	return stats, nil
}

// Metrics returns current writer counters.
func (w *PriceWriter) Metrics() WriterMetrics {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.metrics
}

// inTx runs fn inside a transaction. The deferred rollback releases the
// connection on every path and is a no-op once the commit succeeded.
func (w *PriceWriter) inTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := w.db.Begin(ctx)
	if err != nil {
		w.recordError()
		return fmt.Errorf("begin transaction: %w", err)
	}

	committed := false
	defer func() {
		if committed {
			return
		}
		// A failed commit already closed the transaction.
		switch rbErr := tx.Rollback(ctx); {
		case rbErr == nil:
			w.mu.Lock()
			w.metrics.Rollbacks++
			w.mu.Unlock()
		case !errors.Is(rbErr, pgx.ErrTxClosed):
			w.logger.Warn("rollback failed", "error", rbErr)
		}
	}()

	if err := fn(tx); err != nil {
		w.recordError()
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		w.recordError()
		return fmt.Errorf("commit: %w", err)
	}
	committed = true

	w.mu.Lock()
	w.metrics.Commits++
	w.mu.Unlock()
	return nil
}

func (w *PriceWriter) recordError() {
	w.mu.Lock()
	w.metrics.Errors++
	w.mu.Unlock()
}

// batchInsert queues one INSERT per record and sends them as a pgx.Batch.
func batchInsert(ctx context.Context, tx pgx.Tx, records []model.PriceRecord) error {
	batch := &pgx.Batch{}
	for _, r := range records {
		batch.Queue(insertPriceSQL, r.Name, r.Symbol, r.Price, r.MarketCap, r.TotalVolume, r.Timestamp)
	}

	results := tx.SendBatch(ctx, batch)

	for i := range records {
		if _, err := results.Exec(); err != nil {
			results.Close()
			return fmt.Errorf("insert %s (row %d): %w", records[i].Symbol, i, err)
		}
	}

	if err := results.Close(); err != nil {
		return fmt.Errorf("close batch: %w", err)
	}
	return nil
}
