// Package model defines shared data types used across the crypto price collector.
//
// Types mirror the crypto.crypto_prices table.
//
// Conventions:
//   - Prices, market caps and volumes: arbitrary-precision decimals in USD
//   - Timestamps: time.Time in UTC, one value per collection run
//   - Coins: provider ids (e.g. "bitcoin"), symbols uppercased on ingest
package model
