package security

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pnoren1/Course-App-sub003/internal/domain"
)

const sessionCookie = "access_token"

// === Test Resolver ===

type stubResolver struct {
	principal *domain.Principal
	err       error
	calls     int
}

func (s *stubResolver) Resolve(_ context.Context, _ string) (*domain.Principal, error) {
	s.calls++
	return s.principal, s.err
}

// === Test Profile Repository ===

type stubProfiles struct {
	profiles map[string]*domain.Profile
	err      error
	calls    int
}

func (s *stubProfiles) GetByUserID(_ context.Context, userID string) (*domain.Profile, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	p, ok := s.profiles[userID]
	if !ok {
		return nil, domain.ErrProfileNotFound("no profile for user %s", userID)
	}
	return p, nil
}

func (s *stubProfiles) UpsertAdmin(_ context.Context, req domain.UpsertAdminProfileRequest) (*domain.Profile, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	p := &domain.Profile{ID: domain.NewID(), UserID: req.UserID, Email: req.Email, Role: domain.RoleAdmin}
	if s.profiles == nil {
		s.profiles = map[string]*domain.Profile{}
	}
	s.profiles[req.UserID] = p
	return p, nil
}

func principalFor(id string) *domain.Principal {
	return &domain.Principal{ID: id, Email: id + "@example.com"}
}

func profileWithRole(userID string, role domain.Role) *domain.Profile {
	return &domain.Profile{ID: domain.NewID(), UserID: userID, Role: role}
}

func guardFor(resolver domain.IdentityResolver, profiles domain.ProfileRepository) *Guard {
	return NewGuard(resolver, profiles, sessionCookie, nil)
}

func bearerRequest(token string) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Bearer "+token)
	return r
}

func TestGuard_NoCredential(t *testing.T) {
	resolver := &stubResolver{}
	g := guardFor(resolver, &stubProfiles{})

	for _, min := range []Requirement{RequireNone, RequireAdmin, RequireSystemAdmin} {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		_, err := g.Authorize(r, min)
		var unauthenticated *domain.UnauthenticatedError
		require.ErrorAs(t, err, &unauthenticated, "requirement %s", min)
	}
	assert.Zero(t, resolver.calls, "no resolution without a credential")
}

func TestGuard_RoleMatrix(t *testing.T) {
	tests := []struct {
		role            domain.Role
		min             Requirement
		wantErr         bool
		wantSystemAdmin bool
	}{
		{domain.RoleStudent, RequireAdmin, true, false},
		{domain.RoleInstructor, RequireAdmin, true, false},
		{domain.RoleModerator, RequireAdmin, true, false},
		{domain.RoleOrgAdmin, RequireAdmin, false, false},
		{domain.RoleOrgAdmin, RequireSystemAdmin, true, false},
		{domain.RoleAdmin, RequireAdmin, false, true},
		{domain.RoleAdmin, RequireSystemAdmin, false, true},
		{domain.RoleStudent, RequireNone, false, false},
		{domain.Role("superuser"), RequireAdmin, true, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.role)+"/"+tt.min.String(), func(t *testing.T) {
			g := guardFor(
				&stubResolver{principal: principalFor("u1")},
				&stubProfiles{profiles: map[string]*domain.Profile{
					"u1": profileWithRole("u1", tt.role),
				}},
			)

			ac, err := g.Authorize(bearerRequest("tok"), tt.min)
			if tt.wantErr {
				var insufficient *domain.InsufficientRoleError
				require.ErrorAs(t, err, &insufficient)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "u1", ac.Principal.ID)
			assert.Equal(t, tt.role, ac.Profile.Role)
			assert.Equal(t, tt.wantSystemAdmin, ac.Capabilities.IsSystemAdmin)
		})
	}
}

func TestGuard_HeaderOnlySystemAdmin(t *testing.T) {
	// Credential via header only, admin role, no organization scope.
	g := guardFor(
		&stubResolver{principal: principalFor("admin-1")},
		&stubProfiles{profiles: map[string]*domain.Profile{
			"admin-1": profileWithRole("admin-1", domain.RoleAdmin),
		}},
	)

	ac, err := g.Authorize(bearerRequest("tok"), RequireSystemAdmin)
	require.NoError(t, err)
	assert.True(t, ac.Capabilities.IsAdmin)
	assert.True(t, ac.Capabilities.IsSystemAdmin)
	assert.Nil(t, ac.Profile.OrganizationID)
}

func TestGuard_CookieOnlyProfileNotFound(t *testing.T) {
	g := guardFor(
		&stubResolver{principal: principalFor("u-new")},
		&stubProfiles{},
	)

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: sessionCookie, Value: "tok-cookie"})

	_, err := g.Authorize(r, RequireNone)
	var notFound *domain.ProfileNotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestGuard_ProfileAmbiguous(t *testing.T) {
	g := guardFor(
		&stubResolver{principal: principalFor("u1")},
		&stubProfiles{err: domain.ErrProfileAmbiguous("multiple profiles for user u1")},
	)

	_, err := g.Authorize(bearerRequest("tok"), RequireNone)
	var ambiguous *domain.ProfileAmbiguousError
	require.ErrorAs(t, err, &ambiguous)
}

func TestGuard_UpstreamUnavailableNotRetried(t *testing.T) {
	resolver := &stubResolver{err: domain.ErrUpstreamUnavailable("identity provider unavailable: timeout")}
	g := guardFor(resolver, &stubProfiles{})

	_, err := g.Authorize(bearerRequest("tok"), RequireNone)
	var unavailable *domain.UpstreamUnavailableError
	require.ErrorAs(t, err, &unavailable)
	assert.Equal(t, 1, resolver.calls, "guard must surface the failure without retrying")
}

func TestGuard_Idempotent(t *testing.T) {
	resolver := &stubResolver{principal: principalFor("u1")}
	profiles := &stubProfiles{profiles: map[string]*domain.Profile{
		"u1": profileWithRole("u1", domain.RoleOrgAdmin),
	}}
	g := guardFor(resolver, profiles)

	r := bearerRequest("tok")
	first, err := g.Authorize(r, RequireAdmin)
	require.NoError(t, err)
	second, err := g.Authorize(r, RequireAdmin)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	// Idempotent does not mean cached: the profile is re-read each time so
	// a revoked role takes effect on the next call.
	assert.Equal(t, 2, profiles.calls)

	profiles.profiles["u1"] = profileWithRole("u1", domain.RoleStudent)
	_, err = g.Authorize(r, RequireAdmin)
	var insufficient *domain.InsufficientRoleError
	require.ErrorAs(t, err, &insufficient)
}

func TestGuard_Authenticate(t *testing.T) {
	profiles := &stubProfiles{}
	g := guardFor(&stubResolver{principal: principalFor("u-boot")}, profiles)

	p, err := g.Authenticate(bearerRequest("tok"))
	require.NoError(t, err)
	assert.Equal(t, "u-boot", p.ID)
	assert.Zero(t, profiles.calls, "authenticate must not touch the profile store")

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	_, err = g.Authenticate(r)
	var unauthenticated *domain.UnauthenticatedError
	require.ErrorAs(t, err, &unauthenticated)
}
