package domain

import "time"

// Role is the closed set of roles the profile store may assign. Values read
// from storage that match none of the constants decode to RoleUnknown, which
// carries zero capabilities.
type Role string

const (
	RoleStudent    Role = "student"
	RoleInstructor Role = "instructor"
	RoleModerator  Role = "moderator"
	RoleOrgAdmin   Role = "org_admin"
	RoleAdmin      Role = "admin"
	RoleUnknown    Role = ""
)

// ParseRole decodes a stored role string. Unrecognized values map to
// RoleUnknown so a deprecated role degrades to least privilege.
func ParseRole(s string) Role {
	switch Role(s) {
	case RoleStudent, RoleInstructor, RoleModerator, RoleOrgAdmin, RoleAdmin:
		return Role(s)
	default:
		return RoleUnknown
	}
}

// Profile is the stored authorization record for one principal. Owned by the
// profile store; read-only from this layer except for the bootstrap
// provisioning upsert.
type Profile struct {
	ID             string
	UserID         string
	Email          *string
	Role           Role
	OrganizationID *string
	GroupID        *string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Capabilities are derived from a profile on every request and never cached.
type Capabilities struct {
	IsAdmin       bool // admin or org_admin
	IsSystemAdmin bool // admin only: no organization scope restriction
	IsOrgScoped   bool // org_admin: scoped to one organization
}

// AuthContext is the tuple the Authorization Guard hands to endpoint code.
// Lifetime is a single request.
type AuthContext struct {
	Principal    Principal
	Profile      Profile
	Capabilities Capabilities
}

// UpsertAdminProfileRequest holds parameters for the bootstrap provisioning
// path, which grants the admin role to a known subject.
type UpsertAdminProfileRequest struct {
	UserID string
	Email  *string
}

// Validate checks that the request is well-formed.
func (r *UpsertAdminProfileRequest) Validate() error {
	if r.UserID == "" {
		return ErrValidation("user_id is required")
	}
	return nil
}
