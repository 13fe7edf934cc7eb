// Package postgres implements the store interfaces on PostgreSQL via
// database/sql with the pgx stdlib driver. Constraint violations surface as
// the store package's sentinel errors through MapError, so services never
// see driver-specific error types.
package postgres
