// Package postgres implements the store interfaces against PostgreSQL
// using database/sql with the pgx stdlib driver. All implementations
// accept a store.DBTX so they work against a pooled connection or a
// transaction, and translate PostgreSQL error codes into the store
// package's error taxonomy via MapError.
package postgres
