// Package writertest provides an in-memory database double for writer tests.
package writertest

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DB stands in for a PostgreSQL pool. Committed rows become visible in
// Rows; rows staged by a transaction are discarded on rollback.
type DB struct {
	mu sync.Mutex

	schemaCreated bool
	tableCreated  bool
	ddlCount      int
	rows          [][]any
	txs           []*Tx

	// Failure injection.
	BeginErr  error
	DDLErr    error
	FailAtRow int // 1-based row within a batch; 0 disables
	CommitErr error
}

// Begin starts a fake transaction.
func (db *DB) Begin(ctx context.Context) (pgx.Tx, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	if db.BeginErr != nil {
		return nil, db.BeginErr
	}
	tx := &Tx{db: db}
	db.txs = append(db.txs, tx)
	return tx, nil
}

// QueryRow answers the writer's stats query with the committed row count.
func (db *DB) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	db.mu.Lock()
	defer db.mu.Unlock()
	return row{count: int64(len(db.rows))}
}

// Rows returns a copy of the committed rows, one []any per INSERT.
func (db *DB) Rows() [][]any {
	db.mu.Lock()
	defer db.mu.Unlock()
	return append([][]any(nil), db.rows...)
}

// SchemaCreated reports whether both the schema and the table exist.
func (db *DB) SchemaCreated() bool {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.schemaCreated && db.tableCreated
}

// DDLCount returns the number of DDL statements executed.
func (db *DB) DDLCount() int {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.ddlCount
}

// Txs returns every transaction begun so far.
func (db *DB) Txs() []*Tx {
	db.mu.Lock()
	defer db.mu.Unlock()
	return append([]*Tx(nil), db.txs...)
}

// OpenTxs returns the number of transactions neither committed nor rolled back.
func (db *DB) OpenTxs() int {
	db.mu.Lock()
	defer db.mu.Unlock()
	n := 0
	for _, tx := range db.txs {
		if !tx.closed {
			n++
		}
	}
	return n
}

// Tx is a fake pgx.Tx. Methods the writer does not use panic via the nil
// embedded interface.
type Tx struct {
	pgx.Tx

	db         *DB
	staged     [][]any
	closed     bool
	committed  bool
	rolledBack bool
}

// Committed reports whether the transaction committed.
func (tx *Tx) Committed() bool { return tx.committed }

// RolledBack reports whether the transaction rolled back.
func (tx *Tx) RolledBack() bool { return tx.rolledBack }

// Closed reports whether the transaction released its connection.
func (tx *Tx) Closed() bool { return tx.closed }

func (tx *Tx) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if tx.closed {
		return pgconn.CommandTag{}, pgx.ErrTxClosed
	}
	tx.db.mu.Lock()
	defer tx.db.mu.Unlock()
	if tx.db.DDLErr != nil {
		return pgconn.CommandTag{}, tx.db.DDLErr
	}
	tx.db.ddlCount++
	switch {
	case strings.HasPrefix(sql, "CREATE SCHEMA IF NOT EXISTS"):
		tx.db.schemaCreated = true
	case strings.HasPrefix(sql, "CREATE TABLE IF NOT EXISTS"):
		tx.db.tableCreated = true
	default:
		return pgconn.CommandTag{}, errors.New("unexpected statement: " + sql)
	}
	return pgconn.NewCommandTag("CREATE"), nil
}

func (tx *Tx) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults {
	return &batchResults{tx: tx, queries: b.QueuedQueries}
}

func (tx *Tx) Commit(ctx context.Context) error {
	if tx.closed {
		return pgx.ErrTxClosed
	}
	tx.closed = true
	tx.db.mu.Lock()
	defer tx.db.mu.Unlock()
	if tx.db.CommitErr != nil {
		return tx.db.CommitErr
	}
	tx.committed = true
	tx.db.rows = append(tx.db.rows, tx.staged...)
	return nil
}

func (tx *Tx) Rollback(ctx context.Context) error {
	if tx.closed {
		return pgx.ErrTxClosed
	}
	tx.closed = true
	tx.rolledBack = true
	tx.staged = nil
	return nil
}

type batchResults struct {
	pgx.BatchResults

	tx      *Tx
	queries []*pgx.QueuedQuery
	next    int
}

func (r *batchResults) Exec() (pgconn.CommandTag, error) {
	if r.next >= len(r.queries) {
		return pgconn.CommandTag{}, errors.New("no more results")
	}
	q := r.queries[r.next]
	r.next++
	if r.tx.db.FailAtRow == r.next {
		return pgconn.CommandTag{}, errors.New("simulated insert failure")
	}
	r.tx.staged = append(r.tx.staged, q.Arguments)
	return pgconn.NewCommandTag("INSERT 0 1"), nil
}

func (r *batchResults) Close() error {
	return nil
}

type row struct {
	count int64
}

func (r row) Scan(dest ...any) error {
	*dest[0].(*int64) = r.count
	return nil
}
