// Package sqlite provides a SQLite-based session store.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO, enabling easy cross-compilation. Each completed preparation run is stored
// as one session row keyed by the source file name, so a run can be reloaded for
// review or re-export without repeating the rewrite calls.
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory.
//
// # Data Location
//
// By default, the database is stored at ~/.aufbereiter/data/sessions.db
//
// # Thread Safety
//
// All operations are thread-safe. The store uses database-level locking provided
// by SQLite in WAL mode.
package sqlite
