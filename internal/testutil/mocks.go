// Package testutil provides shared mock implementations of domain interfaces
// for use in tests across the codebase. This follows the Go convention of a
// shared test utility package (like net/http/httptest).
package testutil

import (
	"context"

	"github.com/pnoren1/Course-App-sub003/internal/domain"
)

// === Identity Resolver Mock ===

// MockResolver implements domain.IdentityResolver for testing. Tokens maps a
// raw credential to the principal it resolves to; unknown tokens fail as
// unauthenticated. Err, when set, fails every call. Calls counts invocations.
type MockResolver struct {
	Tokens map[string]domain.Principal
	Err    error
	Calls  int

	ResolveFn func(ctx context.Context, rawCredential string) (*domain.Principal, error)
}

// Resolve implements the interface method for testing.
func (m *MockResolver) Resolve(ctx context.Context, rawCredential string) (*domain.Principal, error) {
	m.Calls++
	if m.ResolveFn != nil {
		return m.ResolveFn(ctx, rawCredential)
	}
	if m.Err != nil {
		return nil, m.Err
	}
	p, ok := m.Tokens[rawCredential]
	if !ok {
		return nil, domain.ErrUnauthenticated("invalid credential")
	}
	return &p, nil
}

// === Profile Repository Mock ===

// MockProfileRepo implements domain.ProfileRepository for testing. Rows maps
// a user id to its profile rows; zero rows reads as not found and more than
// one as ambiguous, matching the real repository. Err, when set, fails every
// call.
type MockProfileRepo struct {
	Rows map[string][]domain.Profile
	Err  error

	GetFn    func(ctx context.Context, userID string) (*domain.Profile, error)
	UpsertFn func(ctx context.Context, req domain.UpsertAdminProfileRequest) (*domain.Profile, error)
}

// GetByUserID implements the interface method for testing.
func (m *MockProfileRepo) GetByUserID(ctx context.Context, userID string) (*domain.Profile, error) {
	if m.GetFn != nil {
		return m.GetFn(ctx, userID)
	}
	if m.Err != nil {
		return nil, m.Err
	}
	rows := m.Rows[userID]
	switch len(rows) {
	case 0:
		return nil, domain.ErrProfileNotFound("no profile for user %s", userID)
	case 1:
		p := rows[0]
		return &p, nil
	default:
		return nil, domain.ErrProfileAmbiguous("multiple profiles for user %s", userID)
	}
}

// UpsertAdmin implements the interface method for testing.
func (m *MockProfileRepo) UpsertAdmin(ctx context.Context, req domain.UpsertAdminProfileRequest) (*domain.Profile, error) {
	if m.UpsertFn != nil {
		return m.UpsertFn(ctx, req)
	}
	if m.Err != nil {
		return nil, m.Err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	p := domain.Profile{ID: domain.NewID(), UserID: req.UserID, Email: req.Email, Role: domain.RoleAdmin}
	if rows := m.Rows[req.UserID]; len(rows) == 1 {
		p = rows[0]
		p.Role = domain.RoleAdmin
		if req.Email != nil {
			p.Email = req.Email
		}
	}
	if m.Rows == nil {
		m.Rows = map[string][]domain.Profile{}
	}
	m.Rows[req.UserID] = []domain.Profile{p}
	return &p, nil
}

// === Directory Repository Mock ===

// MockDirectoryRepo implements domain.DirectoryRepository for testing.
type MockDirectoryRepo struct {
	All     uint64
	ByOrg   uint64
	ByGroup uint64
	Err     error
}

// CountAll implements the interface method for testing.
func (m *MockDirectoryRepo) CountAll(context.Context) (uint64, error) {
	return m.All, m.Err
}

// CountByOrganization implements the interface method for testing.
func (m *MockDirectoryRepo) CountByOrganization(context.Context, string) (uint64, error) {
	return m.ByOrg, m.Err
}

// CountByGroup implements the interface method for testing.
func (m *MockDirectoryRepo) CountByGroup(context.Context, string) (uint64, error) {
	return m.ByGroup, m.Err
}
