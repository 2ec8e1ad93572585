package writer

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
)

// DB is the subset of *pgxpool.Pool used by the writer.
type DB interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// WriterMetrics holds counters for a writer.
type WriterMetrics struct {
	Inserts   int64
	Commits   int64
	Rollbacks int64
	Errors    int64
}

// TableStats summarises the price table.
type TableStats struct {
	Rows          int64
	LastTimestamp *time.Time // nil when the table is empty
}
