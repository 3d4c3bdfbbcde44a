// Package store defines the persistence interfaces consumed by the
// service layer, the shared error taxonomy for store implementations,
// and the transaction helper used to coordinate multi-entity writes.
// Concrete implementations live in internal/platform/postgres.
package store
