// Package repository implements the domain repository interfaces over the
// SQLite profile store.
package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	internaldb "github.com/pnoren1/Course-App-sub003/internal/db"
	"github.com/pnoren1/Course-App-sub003/internal/domain"
)

var _ domain.ProfileRepository = (*ProfileRepo)(nil)

// ProfileRepo reads and provisions authorization profiles. It requires the
// privileged handle: profile reads happen before the caller's authorization
// is established, so they cannot run under per-row policies.
type ProfileRepo struct {
	h *internaldb.Privileged
}

// NewProfileRepo creates a ProfileRepo on the privileged handle.
func NewProfileRepo(h *internaldb.Privileged) *ProfileRepo {
	return &ProfileRepo{h: h}
}

const profileColumns = `id, user_id, email, role, organization_id, group_id, created_at, updated_at`

func scanProfile(scan func(dest ...any) error) (*domain.Profile, error) {
	var (
		p    domain.Profile
		role string
	)
	err := scan(&p.ID, &p.UserID, &p.Email, &role, &p.OrganizationID, &p.GroupID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	p.Role = domain.ParseRole(role)
	return &p, nil
}

// GetByUserID returns the single profile for a user id.
//
// Exactly one row is expected. Zero rows is a ProfileNotFoundError — the
// principal is real but has no authorization record yet. More than one row
// is a data-integrity fault surfaced as ProfileAmbiguousError, never
// resolved by taking the first row.
func (r *ProfileRepo) GetByUserID(ctx context.Context, userID string) (*domain.Profile, error) {
	rows, err := r.h.DB.QueryContext(ctx,
		`SELECT `+profileColumns+` FROM profiles WHERE user_id = ?`, userID)
	if err != nil {
		return nil, domain.ErrUpstreamUnavailable("profile store read: %v", err)
	}
	defer rows.Close() //nolint:errcheck

	var found *domain.Profile
	for rows.Next() {
		p, err := scanProfile(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan profile: %w", err)
		}
		if found != nil {
			return nil, domain.ErrProfileAmbiguous("multiple profiles for user %s", userID)
		}
		found = p
	}
	if err := rows.Err(); err != nil {
		return nil, domain.ErrUpstreamUnavailable("profile store read: %v", err)
	}
	if found == nil {
		return nil, domain.ErrProfileNotFound("no profile for user %s", userID)
	}
	return found, nil
}

// UpsertAdmin creates or promotes the profile for the given user id to the
// admin role. The transaction runs on the single-connection privileged pool,
// which keeps concurrent duplicate calls from racing into two rows.
func (r *ProfileRepo) UpsertAdmin(ctx context.Context, req domain.UpsertAdminProfileRequest) (*domain.Profile, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	tx, err := r.h.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, domain.ErrUpstreamUnavailable("profile store begin: %v", err)
	}
	defer tx.Rollback() //nolint:errcheck

	now := time.Now().UTC()
	res, err := tx.ExecContext(ctx,
		`UPDATE profiles SET role = ?, email = COALESCE(?, email), updated_at = ? WHERE user_id = ?`,
		string(domain.RoleAdmin), req.Email, now, req.UserID)
	if err != nil {
		return nil, domain.ErrUpstreamUnavailable("profile store update: %v", err)
	}
	updated, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("rows affected: %w", err)
	}
	if updated > 1 {
		return nil, domain.ErrProfileAmbiguous("multiple profiles for user %s", req.UserID)
	}

	if updated == 0 {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO profiles (id, user_id, email, role, created_at, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			domain.NewID(), req.UserID, req.Email, string(domain.RoleAdmin), now, now)
		if err != nil {
			return nil, domain.ErrUpstreamUnavailable("profile store insert: %v", err)
		}
	}

	row := tx.QueryRowContext(ctx,
		`SELECT `+profileColumns+` FROM profiles WHERE user_id = ?`, req.UserID)
	p, err := scanProfile(row.Scan)
	if err != nil {
		return nil, fmt.Errorf("read back profile: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, domain.ErrUpstreamUnavailable("profile store commit: %v", err)
	}
	return p, nil
}

var _ domain.DirectoryRepository = (*DirectoryRepo)(nil)

// DirectoryRepo computes recipient audiences over the profile table. It runs
// on the scoped handle: audience counts are ordinary policy-subject reads.
type DirectoryRepo struct {
	h *internaldb.Scoped
}

// NewDirectoryRepo creates a DirectoryRepo on the scoped handle.
func NewDirectoryRepo(h *internaldb.Scoped) *DirectoryRepo {
	return &DirectoryRepo{h: h}
}

func (r *DirectoryRepo) count(ctx context.Context, query string, args ...any) (uint64, error) {
	var n sql.NullInt64
	if err := r.h.DB.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, domain.ErrUpstreamUnavailable("directory count: %v", err)
	}
	if n.Int64 < 0 {
		return 0, nil
	}
	return uint64(n.Int64), nil
}

// CountAll counts profiles with a non-null email.
func (r *DirectoryRepo) CountAll(ctx context.Context) (uint64, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM profiles WHERE email IS NOT NULL`)
}

// CountByOrganization counts profiles in one organization with a non-null email.
func (r *DirectoryRepo) CountByOrganization(ctx context.Context, organizationID string) (uint64, error) {
	return r.count(ctx,
		`SELECT COUNT(*) FROM profiles WHERE organization_id = ? AND email IS NOT NULL`,
		organizationID)
}

// CountByGroup counts profiles in one group with a non-null email.
func (r *DirectoryRepo) CountByGroup(ctx context.Context, groupID string) (uint64, error) {
	return r.count(ctx,
		`SELECT COUNT(*) FROM profiles WHERE group_id = ? AND email IS NOT NULL`,
		groupID)
}
