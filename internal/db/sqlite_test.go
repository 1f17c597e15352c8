package db

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenHandles(t *testing.T) {
	path := filepath.Join(t.TempDir(), "handles.sqlite")

	priv, scoped, err := OpenHandles(path, 4)
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(priv, scoped) })

	require.NoError(t, priv.DB.Ping())
	require.NoError(t, scoped.DB.Ping())

	// The privileged pool is single-connection to serialize writes.
	assert.Equal(t, 1, priv.DB.Stats().MaxOpenConnections)
	assert.Equal(t, 4, scoped.DB.Stats().MaxOpenConnections)
}

func TestOpenSQLite_InvalidMode(t *testing.T) {
	_, err := openSQLite("ignored.sqlite", "banana", 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid SQLite mode")
}

func TestBuildDSN(t *testing.T) {
	dsn := buildDSN("meta.sqlite", "write")
	assert.True(t, strings.HasPrefix(dsn, "meta.sqlite?"))
	assert.Contains(t, dsn, "_journal_mode=WAL")
	assert.Contains(t, dsn, "_busy_timeout=5000")
	assert.Contains(t, dsn, "_txlock=immediate")

	dsn = buildDSN("meta.sqlite", "read")
	assert.NotContains(t, dsn, "_txlock")
}

func TestRunMigrations_CreatesProfiles(t *testing.T) {
	priv, scoped := OpenTestHandles(t)

	ctx := context.Background()
	_, err := priv.DB.ExecContext(ctx,
		`INSERT INTO profiles (id, user_id, email, role) VALUES (?, ?, ?, ?)`,
		"p1", "u1", "u1@example.com", "student")
	require.NoError(t, err)

	var count int
	require.NoError(t, scoped.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM profiles`).Scan(&count))
	assert.Equal(t, 1, count)
}
