// Package store defines the persistence interfaces for the application's
// entities along with the shared error vocabulary and transaction plumbing.
// Implementations live under internal/platform/postgres; services depend
// only on these interfaces.
//
// Every read and mutation that touches user-owned data is scoped by user ID
// at the query level, so an entity belonging to another user is
// indistinguishable from one that does not exist.
package store
