package cli

import (
	"context"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	internaldb "github.com/pnoren1/Course-App-sub003/internal/db"
	"github.com/pnoren1/Course-App-sub003/internal/db/repository"
	"github.com/pnoren1/Course-App-sub003/internal/domain"
)

func TestBootstrapCmd(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "profiles.sqlite")

	cmd := newBootstrapCmd()
	cmd.SetArgs([]string{"--db", dbPath, "--user-id", "user-9", "--email", "admin@example.com"})
	require.NoError(t, cmd.Execute())

	priv, scoped, err := internaldb.OpenHandles(dbPath, 1)
	require.NoError(t, err)
	defer func() { _ = internaldb.Close(priv, scoped) }()

	p, err := repository.NewProfileRepo(priv).GetByUserID(context.Background(), "user-9")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, p.Role)
	require.NotNil(t, p.Email)
	assert.Equal(t, "admin@example.com", *p.Email)
}

func TestBootstrapCmdIsIdempotent(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "profiles.sqlite")

	for i := 0; i < 2; i++ {
		cmd := newBootstrapCmd()
		cmd.SetArgs([]string{"--db", dbPath, "--user-id", "user-9"})
		require.NoError(t, cmd.Execute())
	}

	priv, scoped, err := internaldb.OpenHandles(dbPath, 1)
	require.NoError(t, err)
	defer func() { _ = internaldb.Close(priv, scoped) }()

	p, err := repository.NewProfileRepo(priv).GetByUserID(context.Background(), "user-9")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, p.Role)
}

func TestBootstrapCmdRequiresUserID(t *testing.T) {
	cmd := newBootstrapCmd()
	cmd.SetArgs([]string{"--db", filepath.Join(t.TempDir(), "p.sqlite")})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required")
}
