// Package users persists credential records: username, salt and verifier.
//
// # Overview
//
// Repository is the contract the auth service depends on. Three
// implementations share it:
//
//   - SQLiteRepository over dbx.DBTX (modernc.org/sqlite)
//   - PostgresRepository over dbx.DBTX (pgx stdlib driver)
//   - BoltRepository over a bbolt database
//
// # Errors
//
// Create returns common.ErrorAlreadyExists when the username is taken, and
// GetByUserName returns common.ErrorNotFound when it is absent. Every other
// failure is a wrapped driver error.
//
// # Concurrency
//
// Each call is a single atomic statement (or one bbolt update), so the
// uniqueness of usernames is enforced by the store, not by a read-then-write.
package users
