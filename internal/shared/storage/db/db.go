package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // register the CGO-free sqlite driver
)

// ErrUninitialized is returned when a repository is used before the store
// handle has been opened.
var ErrUninitialized = errors.New("store not initialized")

// Options controls embedded store behavior.
type Options struct {
	BusyTimeout time.Duration
	PingTimeout time.Duration
}

var openDB = sql.Open

// DefaultOptions returns defaults suitable for a single-process archive.
func DefaultOptions() Options {
	return Options{
		BusyTimeout: 5 * time.Second,
		PingTimeout: 5 * time.Second,
	}
}

// Connect opens the embedded sqlite database file at path and verifies it.
// The parent directory is created if missing. The returned *sql.DB should
// be shared and re-used by callers.
func Connect(ctx context.Context, path string, opts Options) (*sql.DB, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("database path is empty")
	}

	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create database dir: %w", err)
		}
	}

	database, err := openDB("sqlite", dsn(path, opts))
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// sqlite allows a single writer; one connection avoids SQLITE_BUSY churn.
	database.SetMaxOpenConns(1)

	pingTimeout := opts.PingTimeout
	if pingTimeout <= 0 {
		pingTimeout = 5 * time.Second
	}
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := database.PingContext(pingCtx); err != nil {
		database.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return database, nil
}

func dsn(path string, opts Options) string {
	busy := opts.BusyTimeout
	if busy <= 0 {
		busy = 5 * time.Second
	}
	q := url.Values{}
	q.Add("_pragma", fmt.Sprintf("busy_timeout(%d)", busy.Milliseconds()))
	q.Add("_pragma", "journal_mode(WAL)")
	q.Add("_pragma", "foreign_keys(1)")
	return "file:" + path + "?" + q.Encode()
}
