package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite" // driver: sqlite

	"github.com/ridoystarlord/tablegen/config"
)

// DriverName is the database/sql driver used for every connection.
const DriverName = "sqlite"

const pingTimeout = 5 * time.Second

// Executor runs a statement that returns no rows. It is satisfied by
// *sql.DB, *sql.Conn and *sql.Tx.
type Executor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// Querier runs statements that return rows.
type Querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

var (
	db     *sql.DB
	dbOnce sync.Once
	dbErr  error
)

// Open opens the SQLite database at location (a file path or a "file:" DSN)
// and pings it.
func Open(ctx context.Context, location string) (*sql.DB, error) {
	if strings.TrimSpace(location) == "" {
		return nil, fmt.Errorf("database location must not be empty")
	}

	conn, err := sql.Open(DriverName, location)
	if err != nil {
		return nil, fmt.Errorf("unable to open database %s: %w", location, err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := conn.PingContext(pingCtx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("unable to ping database %s: %w", location, err)
	}

	return conn, nil
}

// GetDB returns the process-wide connection to the configured database.
func GetDB() (*sql.DB, error) {
	dbOnce.Do(func() {
		cfg, err := config.Load()
		if err != nil {
			dbErr = err
			return
		}
		db, dbErr = Open(context.Background(), cfg.Database)
	})

	return db, dbErr
}

// Close closes the process-wide connection and resets it, so a later GetDB
// opens a fresh one. It is safe to call more than once.
func Close() {
	if db != nil {
		db.Close()
	}
	db, dbErr = nil, nil
	dbOnce = sync.Once{}
}
