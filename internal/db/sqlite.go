// Package db provides database connectivity helpers and migration support
// for the SQLite profile store.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"time"
)

// SQLite DSN parameters for production hardening.
const (
	defaultBusyTimeout = "5000" // 5 seconds
	defaultSynchronous = "NORMAL"
	defaultJournalMode = "WAL"
)

// Privileged is a store handle that bypasses per-row access policies. It is
// a distinct type so that every call site reaching for the policy bypass is
// a visible, reviewable choice rather than an implicit property of which
// pool was imported. Backed by a single-connection write pool, which also
// serializes the bootstrap provisioning upsert.
type Privileged struct {
	DB *sql.DB
}

// Scoped is a store handle subject to per-row access policies. Backed by a
// read-only pool sized for concurrent request handling.
type Scoped struct {
	DB *sql.DB
}

// openSQLite opens a *sql.DB pool for the given SQLite file path.
//
// mode controls write-safety and pool sizing:
//   - "write": MaxOpenConns=1, MaxIdleConns=1, includes _txlock=immediate
//   - "read":  MaxOpenConns=maxOpen (use 0 for default of 4), no _txlock
//
// Both modes set WAL journal, busy_timeout=5000ms, synchronous=NORMAL,
// and foreign_keys=on.
func openSQLite(path string, mode string, maxOpen int) (*sql.DB, error) {
	if mode != "read" && mode != "write" {
		return nil, fmt.Errorf("invalid SQLite mode %q: must be \"read\" or \"write\"", mode)
	}

	dsn := buildDSN(path, mode)

	pool, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite (%s): %w", mode, err)
	}

	switch mode {
	case "write":
		pool.SetMaxOpenConns(1)
		pool.SetMaxIdleConns(1)
	case "read":
		if maxOpen <= 0 {
			maxOpen = 4
		}
		pool.SetMaxOpenConns(maxOpen)
		pool.SetMaxIdleConns(maxOpen)
	}
	pool.SetConnMaxLifetime(time.Hour)

	// Verify the connection is usable.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := pool.PingContext(ctx); err != nil {
		_ = pool.Close()
		return nil, fmt.Errorf("ping sqlite (%s): %w", mode, err)
	}

	return pool, nil
}

// OpenHandles opens the privileged and scoped handle pair for the same
// SQLite file. The privileged handle owns the single write connection; the
// scoped handle gets a read pool (scopedMaxOpen 0 defaults to 4).
func OpenHandles(path string, scopedMaxOpen int) (*Privileged, *Scoped, error) {
	writeDB, err := openSQLite(path, "write", 0)
	if err != nil {
		return nil, nil, err
	}

	readDB, err := openSQLite(path, "read", scopedMaxOpen)
	if err != nil {
		_ = writeDB.Close()
		return nil, nil, err
	}

	return &Privileged{DB: writeDB}, &Scoped{DB: readDB}, nil
}

// Close closes both handles, returning the first error encountered.
func Close(priv *Privileged, scoped *Scoped) error {
	var firstErr error
	if scoped != nil && scoped.DB != nil {
		firstErr = scoped.DB.Close()
	}
	if priv != nil && priv.DB != nil {
		if err := priv.DB.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// buildDSN constructs a SQLite DSN with hardened parameters.
func buildDSN(path string, mode string) string {
	params := url.Values{}
	params.Set("_journal_mode", defaultJournalMode)
	params.Set("_busy_timeout", defaultBusyTimeout)
	params.Set("_synchronous", defaultSynchronous)
	params.Set("_foreign_keys", "on")

	if mode == "write" {
		params.Set("_txlock", "immediate")
	}

	return path + "?" + params.Encode()
}
