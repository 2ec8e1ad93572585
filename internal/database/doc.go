// Package database provides connection pool management for PostgreSQL.
//
// The collector holds one small pool. Each run borrows a single connection
// for its transaction and returns it on commit or rollback.
package database
