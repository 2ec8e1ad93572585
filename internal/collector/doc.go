// Package collector implements one price collection cycle.
//
// A run fetches the market snapshot for a fixed coin set, stamps every
// record with a single UTC timestamp and appends the batch to PostgreSQL in
// one transaction. Runs do not retry; the scheduler owns retry policy.
package collector
