package writer

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

const (
	schemaName = "crypto"
	tableName  = schemaName + ".crypto_prices"
)

// schemaStatements are safe to run on every write.
var schemaStatements = []string{
	`CREATE SCHEMA IF NOT EXISTS ` + schemaName,
	`CREATE TABLE IF NOT EXISTS ` + tableName + ` (
		name TEXT,
		symbol TEXT,
		price NUMERIC,
		market_cap NUMERIC,
		total_volume NUMERIC,
		timestamp TIMESTAMP
	)`,
}

const insertPriceSQL = `
	INSERT INTO ` + tableName + ` (name, symbol, price, market_cap, total_volume, timestamp)
	VALUES ($1, $2, $3, $4, $5, $6)
`

const statsSQL = `SELECT count(*), max(timestamp) FROM ` + tableName

// ensureSchema creates the schema and table inside tx if absent.
func ensureSchema(ctx context.Context, tx pgx.Tx) error {
	for _, stmt := range schemaStatements {
		if _, err := tx.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
