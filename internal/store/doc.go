// Package store provides SQLite-backed durable storage for todo items.
//
// The store owns record identity: ids are assigned by SQLite on insert and
// never change. Each operation touches a single row and commits on its own;
// there is no batching and no optimistic concurrency, so concurrent updates
// to the same id are last-write-wins.
//
// # Table
//
//	todo(id INTEGER PRIMARY KEY AUTOINCREMENT,
//	     title VARCHAR(80) NOT NULL,
//	     completed BOOLEAN NOT NULL DEFAULT 0)
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout: Wait for locks (5 seconds unless overridden)
//
// Two drivers are supported: mattn/go-sqlite3 (cgo, the default) and
// modernc.org/sqlite (pure Go) for builds with CGO_ENABLED=0.
package store
