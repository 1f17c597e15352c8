package domain

import "context"

// IdentityResolver exchanges a raw credential for a verified Principal.
// Implemented by identity.Resolver.
//
// Resolution is read-only and idempotent: invalid or expired credentials
// yield an UnauthenticatedError, transient provider failures an
// UpstreamUnavailableError. Retry policy, if any, belongs to the caller.
type IdentityResolver interface {
	Resolve(ctx context.Context, rawCredential string) (*Principal, error)
}

// ProfileRepository reads and provisions authorization profiles through a
// privileged store handle that bypasses per-row access policies. The
// bypass is deliberate: a principal's own session may not be allowed to
// read its own profile row before authorization has been established.
type ProfileRepository interface {
	// GetByUserID returns the single profile for a user id. Zero rows is a
	// ProfileNotFoundError; more than one is a ProfileAmbiguousError.
	GetByUserID(ctx context.Context, userID string) (*Profile, error)

	// UpsertAdmin creates or promotes the profile for the given user id to
	// the admin role. Bootstrap provisioning only.
	UpsertAdmin(ctx context.Context, req UpsertAdminProfileRequest) (*Profile, error)
}

// DirectoryRepository computes recipient audiences over the profile table
// through a policy-scoped store handle.
type DirectoryRepository interface {
	// CountAll counts profiles with a non-null email.
	CountAll(ctx context.Context) (uint64, error)
	// CountByOrganization counts profiles in one organization with a non-null email.
	CountByOrganization(ctx context.Context, organizationID string) (uint64, error)
	// CountByGroup counts profiles in one group with a non-null email.
	CountByGroup(ctx context.Context, groupID string) (uint64, error)
}
