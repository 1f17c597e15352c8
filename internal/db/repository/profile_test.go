package repository

import (
	"context"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	internaldb "github.com/pnoren1/Course-App-sub003/internal/db"
	"github.com/pnoren1/Course-App-sub003/internal/domain"
)

func setupRepos(t *testing.T) (*ProfileRepo, *DirectoryRepo, *internaldb.Privileged) {
	t.Helper()
	priv, scoped := internaldb.OpenTestHandles(t)
	return NewProfileRepo(priv), NewDirectoryRepo(scoped), priv
}

func insertProfile(t *testing.T, priv *internaldb.Privileged, userID string, email *string, role string, orgID, groupID *string) {
	t.Helper()
	_, err := priv.DB.Exec(
		`INSERT INTO profiles (id, user_id, email, role, organization_id, group_id) VALUES (?, ?, ?, ?, ?, ?)`,
		domain.NewID(), userID, email, role, orgID, groupID)
	require.NoError(t, err)
}

func strPtr(s string) *string { return &s }

func TestProfileRepo_GetByUserID(t *testing.T) {
	profiles, _, priv := setupRepos(t)
	ctx := context.Background()

	insertProfile(t, priv, "u1", strPtr("u1@example.com"), "org_admin", strPtr("org-1"), nil)

	p, err := profiles.GetByUserID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "u1", p.UserID)
	assert.Equal(t, domain.RoleOrgAdmin, p.Role)
	require.NotNil(t, p.OrganizationID)
	assert.Equal(t, "org-1", *p.OrganizationID)
	assert.Nil(t, p.GroupID)
}

func TestProfileRepo_GetByUserID_NotFound(t *testing.T) {
	profiles, _, _ := setupRepos(t)

	_, err := profiles.GetByUserID(context.Background(), "missing")
	require.Error(t, err)
	var notFound *domain.ProfileNotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestProfileRepo_GetByUserID_Ambiguous(t *testing.T) {
	profiles, _, priv := setupRepos(t)
	ctx := context.Background()

	// Two rows for the same user id is a data-integrity fault the loader
	// must surface, never resolve by taking the first row.
	insertProfile(t, priv, "u1", strPtr("a@example.com"), "student", nil, nil)
	insertProfile(t, priv, "u1", strPtr("b@example.com"), "admin", nil, nil)

	_, err := profiles.GetByUserID(ctx, "u1")
	require.Error(t, err)
	var ambiguous *domain.ProfileAmbiguousError
	require.ErrorAs(t, err, &ambiguous)
}

func TestProfileRepo_GetByUserID_UnknownRole(t *testing.T) {
	profiles, _, priv := setupRepos(t)

	insertProfile(t, priv, "u1", strPtr("u1@example.com"), "superuser", nil, nil)

	p, err := profiles.GetByUserID(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleUnknown, p.Role, "deprecated role must decode to least privilege")
}

func TestProfileRepo_UpsertAdmin_Insert(t *testing.T) {
	profiles, _, _ := setupRepos(t)
	ctx := context.Background()

	p, err := profiles.UpsertAdmin(ctx, domain.UpsertAdminProfileRequest{
		UserID: "boot-1",
		Email:  strPtr("boot@example.com"),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, p.Role)
	assert.NotEmpty(t, p.ID)

	got, err := profiles.GetByUserID(ctx, "boot-1")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, got.Role)
}

func TestProfileRepo_UpsertAdmin_PromotesExisting(t *testing.T) {
	profiles, _, priv := setupRepos(t)
	ctx := context.Background()

	insertProfile(t, priv, "u1", strPtr("u1@example.com"), "student", strPtr("org-1"), nil)

	p, err := profiles.UpsertAdmin(ctx, domain.UpsertAdminProfileRequest{UserID: "u1"})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, p.Role)
	require.NotNil(t, p.Email)
	assert.Equal(t, "u1@example.com", *p.Email, "nil email must not clear the stored one")
	require.NotNil(t, p.OrganizationID, "upsert must not touch organization scope")

	// Idempotent under repeated calls: still exactly one row.
	_, err = profiles.UpsertAdmin(ctx, domain.UpsertAdminProfileRequest{UserID: "u1"})
	require.NoError(t, err)

	got, err := profiles.GetByUserID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, got.Role)
}

func TestProfileRepo_UpsertAdmin_Validation(t *testing.T) {
	profiles, _, _ := setupRepos(t)

	_, err := profiles.UpsertAdmin(context.Background(), domain.UpsertAdminProfileRequest{})
	require.Error(t, err)
	var validation *domain.ValidationError
	require.ErrorAs(t, err, &validation)
}

func TestDirectoryRepo_Counts(t *testing.T) {
	_, directory, priv := setupRepos(t)
	ctx := context.Background()

	insertProfile(t, priv, "u1", strPtr("u1@example.com"), "student", strPtr("org-1"), strPtr("grp-1"))
	insertProfile(t, priv, "u2", strPtr("u2@example.com"), "instructor", strPtr("org-1"), nil)
	insertProfile(t, priv, "u3", strPtr("u3@example.com"), "student", strPtr("org-1"), strPtr("grp-1"))
	insertProfile(t, priv, "u4", nil, "student", strPtr("org-1"), strPtr("grp-1")) // null email: excluded
	insertProfile(t, priv, "u5", strPtr("u5@example.com"), "student", strPtr("org-2"), nil)

	all, err := directory.CountAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(4), all)

	org, err := directory.CountByOrganization(ctx, "org-1")
	require.NoError(t, err)
	assert.Equal(t, uint64(3), org)

	grp, err := directory.CountByGroup(ctx, "grp-1")
	require.NoError(t, err)
	assert.Equal(t, uint64(2), grp)

	none, err := directory.CountByOrganization(ctx, "org-missing")
	require.NoError(t, err)
	assert.Equal(t, uint64(0), none)
}
