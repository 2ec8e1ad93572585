// Package writer persists price snapshots to PostgreSQL.
//
// Target table: crypto.crypto_prices (created on first use).
//
// Writes are append-only: rows are never updated or deleted. A snapshot is
// written in a single transaction, so either every row of a run lands or
// none does.
package writer
