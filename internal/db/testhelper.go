package db

import (
	"path/filepath"
	"testing"
)

// OpenTestHandles opens a hardened privileged/scoped handle pair in
// t.TempDir(), runs all pending migrations on the privileged pool, and
// registers cleanup.
func OpenTestHandles(t *testing.T) (*Privileged, *Scoped) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.sqlite")

	priv, scoped, err := OpenHandles(path, 4)
	if err != nil {
		t.Fatalf("open test sqlite: %v", err)
	}
	t.Cleanup(func() {
		_ = Close(priv, scoped)
	})

	if err := RunMigrations(priv.DB); err != nil {
		t.Fatalf("run migrations: %v", err)
	}

	return priv, scoped
}
