// Package security implements the authorization guard and the services
// built on its output.
package security

import "github.com/pnoren1/Course-App-sub003/internal/domain"

// Capabilities derives coarse capabilities from a profile. Pure function,
// recomputed on every request and never cached: role changes must take
// effect on the very next request.
//
// Any role value is valid input. RoleUnknown (an unrecognized or deprecated
// value from storage) maps to zero capabilities so it degrades to least
// privilege instead of failing the request.
func Capabilities(p domain.Profile) domain.Capabilities {
	switch p.Role {
	case domain.RoleAdmin:
		return domain.Capabilities{IsAdmin: true, IsSystemAdmin: true}
	case domain.RoleOrgAdmin:
		return domain.Capabilities{IsAdmin: true, IsOrgScoped: true}
	default:
		return domain.Capabilities{}
	}
}
