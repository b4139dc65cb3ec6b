// Package sqlite implements the SQLite storage backend for taskdeck: the
// tasks and categories tables, the canonical sorted task view, partial
// updates, and the transactional reorder operation.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/dukaforge/taskdeck/pkg/types"
)

// dbFileName is the database file created inside the data directory.
const dbFileName = "taskdeck.db"

// Backend owns the database handle and its connection pool. It is
// constructed once at process start via Open and released via Close; every
// request borrows connections from the pool and the reorder transaction is
// the only multi-statement unit.
type Backend struct {
	db    *sql.DB
	clock types.Clock
}

// Open creates the data directory if needed, opens the database, and
// bootstraps the schema. A nil clock falls back to the wall clock.
func Open(dataDir string, clock types.Clock) (*Backend, error) {
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}

	db, err := sql.Open("sqlite", filepath.Join(dataDir, dbFileName))
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing schema: %w", err)
	}

	if clock == nil {
		clock = types.SystemClock()
	}
	return &Backend{db: db, clock: clock}, nil
}

// Close releases the connection pool. Close is idempotent.
func (b *Backend) Close() error {
	if b.db == nil {
		return nil
	}
	err := b.db.Close()
	b.db = nil
	return err
}

// Ping verifies the database is reachable. Used by the liveness probe.
func (b *Backend) Ping(ctx context.Context) error {
	return b.db.PingContext(ctx)
}

// today returns the current local calendar date in ISO form. Deadline
// validation compares against this snapshot, taken once per request.
func (b *Backend) today() string {
	return types.ISODate(b.clock.Now())
}
